package client

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/diwise/api-repository/internal/pkg/sword"
	"github.com/diwise/api-repository/internal/pkg/sword/base"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-repository/sword/client")

var ErrUnexpectedResponse = errors.New("unexpected response from sword server")

// Status is the HTTP status of the last exchange with the server.
type Status struct {
	Code    int
	Message string
}

func (s Status) String() string {
	return fmt.Sprintf("%d %s", s.Code, s.Message)
}

// PostMessage describes a single deposit.
type PostMessage struct {
	Destination string
	Filename    string
	ContentType string
	Data        []byte

	Packaging  string
	OnBehalfOf string
	NoOp       bool
	Verbose    bool

	UseMD5 bool
	// CorruptMD5 sends a checksum that does not match the data, to test
	// how the server handles checksum failures.
	CorruptMD5 bool
	UserAgent  string
}

type Client interface {
	GetServiceDocument(ctx context.Context, url, onBehalfOf string) (*sword.ServiceDocument, Status, error)
	PostFile(ctx context.Context, msg PostMessage) (*sword.DepositResponse, Status, error)
}

type clientImpl struct {
	httpClient http.Client
	username   string
	password   string
	userAgent  string
}

const DefaultUserAgent string = "diwise-sword-client/" + sword.Version

func New(username, password string) Client {
	return &clientImpl{
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		username:  username,
		password:  password,
		userAgent: DefaultUserAgent,
	}
}

func (c *clientImpl) GetServiceDocument(ctx context.Context, url, onBehalfOf string) (*sword.ServiceDocument, Status, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-service-document")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, Status{}, fmt.Errorf("failed to create request: %w", err)
	}

	c.authenticate(req)
	req.Header.Set(base.HeaderUserAgent, c.userAgent)
	if onBehalfOf != "" {
		req.Header.Set(base.HeaderOnBehalfOf, onBehalfOf)
	}

	body, status, _, err := c.do(req)
	if err != nil {
		return nil, status, err
	}

	if status.Code != http.StatusOK {
		err = fmt.Errorf("%w: %s", ErrUnexpectedResponse, status)
		return nil, status, err
	}

	doc := &sword.ServiceDocument{}
	if _, err = doc.Unmarshall(body, nil); err != nil {
		log.Error().Err(err).Msg("failed to parse service document")
		return nil, status, err
	}

	return doc, status, nil
}

func (c *clientImpl) PostFile(ctx context.Context, msg PostMessage) (*sword.DepositResponse, Status, error) {
	var err error

	ctx, span := tracer.Start(ctx, "post-file")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, msg.Destination, bytes.NewReader(msg.Data))
	if err != nil {
		return nil, Status{}, fmt.Errorf("failed to create request: %w", err)
	}

	c.authenticate(req)
	for header, value := range c.headers(msg) {
		req.Header.Set(header, value)
	}
	req.ContentLength = int64(len(msg.Data))

	body, status, header, err := c.do(req)
	if err != nil {
		return nil, status, err
	}

	response := &sword.DepositResponse{
		HTTPStatus: status.Code,
		Location:   header.Get(base.HeaderLocation),
	}

	if len(bytes.TrimSpace(body)) == 0 {
		err = fmt.Errorf("%w: empty body with status %s", ErrUnexpectedResponse, status)
		return nil, status, err
	}

	if _, err = response.Unmarshall(body, nil); err != nil {
		log.Error().Err(err).Msg("failed to parse deposit response")
		return nil, status, err
	}

	return response, status, nil
}

func (c *clientImpl) headers(msg PostMessage) map[string]string {
	h := map[string]string{
		base.HeaderContentType:        msg.ContentType,
		base.HeaderContentDisposition: "filename=" + strconv.Quote(msg.Filename),
		base.HeaderUserAgent:          c.userAgent,
		base.HeaderNoOp:               strconv.FormatBool(msg.NoOp),
		base.HeaderVerbose:            strconv.FormatBool(msg.Verbose),
	}

	if msg.UserAgent != "" {
		h[base.HeaderUserAgent] = msg.UserAgent
	}
	if msg.Packaging != "" {
		h[base.HeaderPackaging] = msg.Packaging
	}
	if msg.OnBehalfOf != "" {
		h[base.HeaderOnBehalfOf] = msg.OnBehalfOf
	}

	if msg.UseMD5 || msg.CorruptMD5 {
		checksum := MD5Hex(msg.Data)
		if msg.CorruptMD5 {
			checksum = corrupt(checksum)
		}
		h[base.HeaderContentMD5] = checksum
	}

	return h
}

func (c *clientImpl) authenticate(req *http.Request) {
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
}

func (c *clientImpl) do(req *http.Request) ([]byte, Status, http.Header, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, Status{}, nil, fmt.Errorf("request to %s failed: %w", req.URL.String(), err)
	}
	defer resp.Body.Close()

	status := Status{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, status, resp.Header, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, status, resp.Header, nil
}

// MD5Hex returns the hex encoded md5 digest of data, the form expected in
// the Content-MD5 header.
func MD5Hex(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

func corrupt(checksum string) string {
	if checksum == "" {
		return "0"
	}
	replacement := byte('0')
	if checksum[0] == '0' {
		replacement = '1'
	}
	return string(replacement) + checksum[1:]
}
