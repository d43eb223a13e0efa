package main

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/diwise/api-repository/internal/pkg/sword/base"
	"github.com/diwise/api-repository/internal/pkg/sword/client"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type options struct {
	username   string
	password   string
	onBehalfOf string
	validate   bool
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "sword-client",
		Short:        "Command line client for SWORD 1.3 deposit servers",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := zerolog.InfoLevel
			if opts.debug {
				level = zerolog.DebugLevel
			}
			log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
			cmd.SetContext(logging.NewContextWithLogger(cmd.Context(), log))
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.username, "username", "u", os.Getenv("SWORD_USERNAME"), "Username for HTTP Basic authentication")
	flags.StringVarP(&opts.password, "password", "p", os.Getenv("SWORD_PASSWORD"), "Password for HTTP Basic authentication")
	flags.StringVar(&opts.onBehalfOf, "on-behalf-of", "", "Perform a mediated request on behalf of this user")
	flags.BoolVar(&opts.validate, "validate", false, "Print a validation report for the received document")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(serviceDocumentCmd(opts), depositCmd(opts))

	return cmd
}

func serviceDocumentCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "servicedocument <url>",
		Short: "Retrieve and print a service document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(opts.username, opts.password)

			doc, status, err := c.GetServiceDocument(cmd.Context(), args[0], opts.onBehalfOf)
			if err != nil {
				return fmt.Errorf("failed to retrieve service document (%s): %w", status, err)
			}

			body, err := doc.Marshall()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, body)

			if opts.validate {
				doc.Validate(base.Properties{}).Report(out)
			}

			return nil
		},
	}
}

func depositCmd(opts *options) *cobra.Command {
	msg := client.PostMessage{}

	c := &cobra.Command{
		Use:   "deposit <collection url> <file>",
		Short: "Deposit a file into a collection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readFile(args[1])
			if err != nil {
				return err
			}

			msg.Destination = args[0]
			msg.Data = data
			msg.OnBehalfOf = opts.onBehalfOf
			if msg.Filename == "" {
				msg.Filename = filepath.Base(args[1])
			}
			if msg.ContentType == "" {
				msg.ContentType = contentTypeOf(msg.Filename)
			}

			return deposit(cmd.Context(), cmd.OutOrStdout(), client.New(opts.username, opts.password), msg, opts.validate)
		},
	}

	flags := c.Flags()
	flags.StringVar(&msg.Filename, "filename", "", "Filename sent in Content-Disposition (defaults to the name of the file)")
	flags.StringVar(&msg.ContentType, "content-type", "", "Content type of the file (guessed from the extension if omitted)")
	flags.StringVar(&msg.Packaging, "packaging", "", "Packaging format sent in X-Packaging")
	flags.StringVar(&msg.UserAgent, "user-agent", "", "User-Agent to send")
	flags.BoolVar(&msg.NoOp, "no-op", false, "Ask the server not to store the deposit")
	flags.BoolVar(&msg.Verbose, "verbose", false, "Ask the server for a verbose description")
	flags.BoolVar(&msg.UseMD5, "md5", true, "Send a Content-MD5 checksum")
	flags.BoolVar(&msg.CorruptMD5, "corrupt-md5", false, "Send a checksum that does not match the file")

	return c
}

func deposit(ctx context.Context, out io.Writer, c client.Client, msg client.PostMessage, validate bool) error {
	log := logging.GetFromContext(ctx)

	resp, status, err := c.PostFile(ctx, msg)
	if err != nil {
		return fmt.Errorf("deposit failed (%s): %w", status, err)
	}

	log.Info().Str("status", status.String()).Str("location", resp.Location).Msg("deposit complete")

	body, err := resp.Marshall()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, body)

	if validate {
		props := base.Properties{
			base.HeaderNoOp:    fmt.Sprint(msg.NoOp),
			base.HeaderVerbose: fmt.Sprint(msg.Verbose),
		}
		if msg.Packaging != "" {
			props[base.HeaderPackaging] = msg.Packaging
		}
		if msg.OnBehalfOf != "" {
			props[base.HeaderOnBehalfOf] = msg.OnBehalfOf
		}

		if resp.IsError() {
			resp.Error.Validate(props).Report(out)
		} else {
			resp.Entry.Validate(props).Report(out)
		}
	}

	if resp.IsError() {
		return fmt.Errorf("server refused the deposit with %s (%s)", resp.Error.ErrorURI, status)
	}

	return nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

func contentTypeOf(filename string) string {
	if t := mime.TypeByExtension(filepath.Ext(filename)); t != "" {
		return t
	}
	return "application/octet-stream"
}
