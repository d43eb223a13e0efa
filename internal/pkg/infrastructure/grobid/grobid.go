package grobid

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/diwise/api-repository/internal/pkg/infrastructure/tei"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-repository/grobid")

var ErrNoContent = errors.New("grobid found no header in the document")

//go:generate moq -rm -out extractor_mock.go . Extractor

type Extractor interface {
	ProcessHeader(ctx context.Context, filename string, r io.Reader) (*tei.TEI, error)
}

func New(url string) Extractor {
	return &client{
		url: strings.TrimSuffix(url, "/"),
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type client struct {
	url        string
	httpClient http.Client
}

func (c *client) ProcessHeader(ctx context.Context, filename string, r io.Reader) (*tei.TEI, error) {
	var err error
	ctx, span := tracer.Start(ctx, "process-header")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	part, err := w.CreateFormFile("input", filename)
	if err != nil {
		return nil, err
	}
	if _, err = io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if err = w.WriteField("consolidateHeader", "1"); err != nil {
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/api/processHeaderDocument", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed to call grobid: %w", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		err = ErrNoContent
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("grobid returned unexpected status code %d", resp.StatusCode)
		return nil, err
	}

	doc, err := tei.Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("filename", filename).Msg("extracted document header")

	return doc, nil
}
