package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/diwise/api-repository/internal/pkg/application/config"
	"github.com/diwise/api-repository/internal/pkg/application/deposit"
	"github.com/diwise/api-repository/internal/pkg/application/rest"
	"github.com/diwise/api-repository/internal/pkg/application/services/content"
	"github.com/diwise/api-repository/internal/pkg/application/services/eperson"
	"github.com/diwise/api-repository/internal/pkg/application/services/workflow"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/assetstore"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/grobid"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/api-repository/internal/pkg/presentation"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const serviceName string = "api-repository"

var configFileName string
var openApiSpecFileName string

func readOASFile(log zerolog.Logger, path string) []byte {
	oas, err := os.ReadFile(path)
	if err != nil {
		log.Info().Msgf("failed to open the OpenAPI specification file %s.", path)
		return nil
	}

	log.Info().Msgf("read %d bytes from %s into the openapi response.", len(oas), path)
	return oas
}

func main() {
	serviceVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion)
	defer cleanup()

	log.Info().Msgf("Starting up %s ...", serviceName)

	flag.StringVar(&configFileName, "config", "/opt/diwise/config/repository.yaml", "The repository configuration file")
	flag.StringVar(&openApiSpecFileName, "oas", "/opt/diwise/openapi.json", "An OpenAPI specification to be served on /api/openapi")
	flag.Parse()

	cfg, err := config.LoadFile(configFileName)
	if err != nil {
		log.Fatal().Err(err).Msgf("failed to load configuration from %s", configFileName)
	}

	applyEnvironment(log, cfg)

	port := env.GetVariableOrDefault(log, "SERVICE_PORT", "8880")
	dbPath := env.GetVariableOrDefault(log, "REPOSITORY_DB_PATH", "")

	db, err := database.NewDatabaseConnection(ctx, database.NewSQLiteConnector(dbPath))
	if err != nil {
		log.Fatal().Msgf("failed to connect to database, shutting down... %s", err.Error())
	}
	defer db.Close()

	assets, err := assetstore.New(cfg.AssetStore.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open the asset store")
	}

	svc := newServices(db, assets, cfg)

	seeder := config.Seeder{
		Communities: svc.Communities,
		Collections: svc.Collections,
		EPersons:    svc.EPersons,
		Groups:      svc.Groups,
	}
	if err = seeder.Seed(ctx, cfg.Seed); err != nil {
		log.Fatal().Err(err).Msg("failed to seed the repository")
	}

	var extractor grobid.Extractor
	if cfg.Grobid.Enabled {
		log.Info().Str("url", cfg.Grobid.URL).Msg("metadata extraction with grobid is enabled")
		extractor = grobid.New(cfg.Grobid.URL)
	}

	deposits := deposit.New(newDepositSettings(cfg), deposit.Services{
		Collections:    svc.Collections,
		Items:          svc.Items,
		Bundles:        svc.Bundles,
		Bitstreams:     svc.Bitstreams,
		EPersons:       svc.EPersons,
		Groups:         svc.Groups,
		WorkspaceItems: svc.WorkspaceItems,
	}, extractor)

	api := presentation.NewAPI(ctx, chi.NewRouter(),
		presentation.Settings{
			BaseURL:      cfg.Site.BaseURL,
			SwordEnabled: cfg.Sword.Enabled,
			OpenAPI:      readOASFile(log, openApiSpecFileName),
		},
		rest.NewRepositories(cfg.Site.BaseURL, svc),
		deposits,
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Start(ctx, port)
	})

	if err = g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("api-repository stopped unexpectedly")
	}

	log.Info().Msg("api-repository stopped")
}

// applyEnvironment lets the deployment override parts of the configuration file.
func applyEnvironment(log zerolog.Logger, cfg *config.Config) {
	cfg.Site.BaseURL = env.GetVariableOrDefault(log, "REPOSITORY_BASE_URL", cfg.Site.BaseURL)
	cfg.AssetStore.Dir = env.GetVariableOrDefault(log, "REPOSITORY_ASSETSTORE_DIR", cfg.AssetStore.Dir)

	if grobidURL := os.Getenv("GROBID_URL"); grobidURL != "" {
		cfg.Grobid.Enabled = true
		cfg.Grobid.URL = grobidURL
	}
}

func newServices(db database.Datastore, assets assetstore.Store, cfg *config.Config) rest.Services {
	return rest.Services{
		Communities: content.NewCommunityService(db, cfg.Site.HandlePrefix),
		Collections: content.NewCollectionService(db, cfg.Site.HandlePrefix),
		Items: content.NewItemService(db, assets, content.Settings{
			HandlePrefix:   cfg.Site.HandlePrefix,
			HandleResolver: cfg.Site.HandleResolver,
		}),
		Bundles:        content.NewBundleService(db),
		Bitstreams:     content.NewBitstreamService(db, assets),
		EPersons:       eperson.NewEPersonService(db),
		Groups:         eperson.NewGroupService(db),
		WorkspaceItems: workflow.NewWorkspaceItemService(db),
		WorkflowItems:  workflow.NewWorkflowItemService(db),
	}
}

func newDepositSettings(cfg *config.Config) deposit.Settings {
	packaging := make([]deposit.PackagingFormat, 0, len(cfg.Sword.AcceptPackaging))
	for _, p := range cfg.Sword.AcceptPackaging {
		packaging = append(packaging, deposit.PackagingFormat{Format: p.Format, Quality: p.Quality})
	}

	return deposit.Settings{
		SiteName:           cfg.Site.Name,
		BaseURL:            cfg.Site.BaseURL,
		MaxUploadSize:      cfg.Sword.MaxUploadSize,
		Accepts:            cfg.Sword.Accepts,
		AcceptPackaging:    packaging,
		Mediation:          cfg.Sword.Mediation,
		Treatment:          cfg.Sword.Treatment,
		DefaultPolicy:      cfg.Sword.DefaultPolicy,
		AllowFilenameTitle: cfg.Sword.AllowFilenameTitle,
		ExtractMetadata:    cfg.Grobid.Enabled,
	}
}
