package handlers

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/diwise/api-repository/internal/pkg/application/deposit"
	"github.com/diwise/api-repository/internal/pkg/sword"
	"github.com/diwise/api-repository/internal/pkg/sword/atom"
	"github.com/diwise/api-repository/internal/pkg/sword/base"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	ContentTypeAtomService string = "application/atomsvc+xml; charset=UTF-8"
	ContentTypeAtomEntry   string = "application/atom+xml; charset=UTF-8"

	swordRealm string = "SWORD"
)

func NewRetrieveServiceDocumentHandler(logger zerolog.Logger, baseURL string, svc deposit.DepositService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "retrieve-service-document")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		sc, err := authenticateSword(ctx, r, svc)
		if err != nil {
			writeSwordError(w, log, baseURL, err)
			return
		}

		doc, err := svc.ServiceDocument(ctx, sc)
		if err != nil {
			writeSwordError(w, log, baseURL, err)
			return
		}

		body, err := doc.Marshall()
		if err != nil {
			writeSwordError(w, log, baseURL, err)
			return
		}

		w.Header().Set("Content-Type", ContentTypeAtomService)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	})
}

func NewDepositHandler(logger zerolog.Logger, baseURL string, svc deposit.DepositService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "sword-deposit")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		sc, err := authenticateSword(ctx, r, svc)
		if err != nil {
			writeSwordError(w, log, baseURL, err)
			return
		}

		req := newDepositRequest(r)
		req.Collection = pathParam("*")(r)

		resp, err := svc.Deposit(ctx, sc, req)
		if err != nil {
			writeSwordError(w, log, baseURL, err)
			return
		}

		body, err := resp.Marshall()
		if err != nil {
			writeSwordError(w, log, baseURL, err)
			return
		}

		if resp.Location != "" {
			w.Header().Set(base.HeaderLocation, resp.Location)
		}
		w.Header().Set("Content-Type", ContentTypeAtomEntry)
		w.WriteHeader(resp.HTTPStatus)
		w.Write([]byte(body))
	})
}

func NewRetrieveAtomEntryHandler(logger zerolog.Logger, baseURL string, svc deposit.DepositService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "retrieve-atom-entry")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		sc, err := authenticateSword(ctx, r, svc)
		if err != nil {
			writeSwordError(w, log, baseURL, err)
			return
		}

		entry, err := svc.Entry(ctx, sc, pathParam("item")(r))
		if err != nil {
			writeSwordError(w, log, baseURL, err)
			return
		}

		body, err := sword.NewDepositResponse(http.StatusOK, entry).Marshall()
		if err != nil {
			writeSwordError(w, log, baseURL, err)
			return
		}

		w.Header().Set("Content-Type", ContentTypeAtomEntry)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	})
}

func authenticateSword(ctx context.Context, r *http.Request, svc deposit.DepositService) (*deposit.Context, error) {
	username, password, ok := r.BasicAuth()
	if !ok {
		return nil, deposit.ErrAuthentication
	}

	return svc.Authenticate(ctx, username, password, r.Header.Get(base.HeaderOnBehalfOf))
}

func newDepositRequest(r *http.Request) deposit.Request {
	req := deposit.Request{
		ContentType:   r.Header.Get(base.HeaderContentType),
		ContentLength: r.ContentLength,
		Packaging:     strings.TrimSpace(r.Header.Get(base.HeaderPackaging)),
		MD5:           strings.TrimSpace(r.Header.Get(base.HeaderContentMD5)),
		UserAgent:     r.Header.Get(base.HeaderUserAgent),
		NoOp:          isTrue(r.Header.Get(base.HeaderNoOp)),
		Verbose:       isTrue(r.Header.Get(base.HeaderVerbose)),
		Body:          r.Body,
	}

	if cd := r.Header.Get(base.HeaderContentDisposition); cd != "" {
		req.Filename = filenameFromDisposition(cd)
	}

	return req
}

// filenameFromDisposition also accepts the bare filename=... form that
// SWORD 1.3 clients send without a disposition type.
func filenameFromDisposition(cd string) string {
	if _, params, err := mime.ParseMediaType(cd); err == nil && params["filename"] != "" {
		return params["filename"]
	}
	if _, params, err := mime.ParseMediaType("attachment; " + cd); err == nil {
		return params["filename"]
	}
	return ""
}

func isTrue(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "true")
}

// writeSwordError renders err as a sword:error document. Failed
// authentication is answered with a Basic challenge instead.
func writeSwordError(w http.ResponseWriter, log zerolog.Logger, baseURL string, err error) {
	if errors.Is(err, deposit.ErrAuthentication) {
		unauthorized(w, swordRealm)
		return
	}

	var depositErr *deposit.Error
	if !errors.As(err, &depositErr) {
		log.Error().Err(err).Msg("sword request failed")
		depositErr = &deposit.Error{
			Code:    base.ErrorBadRequest,
			Status:  http.StatusInternalServerError,
			Message: "the server failed to process the request",
		}
	}

	doc := sword.NewErrorDocument(depositErr.Code, depositErr.Status)
	doc.ID = atom.NewID("urn:uuid:" + uuid.NewString())
	doc.Title = atom.NewTitle("ERROR")
	doc.Updated = atom.NewUpdated(time.Now().UTC().Format(time.RFC3339))
	doc.Summary = atom.NewSummary(depositErr.Message)
	doc.Treatment = sword.NewTreatment("Processing failed")
	doc.Generator = atom.NewGenerator(strings.TrimSuffix(baseURL, "/"), sword.Version)

	body, marshallErr := sword.NewErrorResponse(doc).Marshall()
	if marshallErr != nil {
		log.Error().Err(marshallErr).Msg("failed to marshall error document")
		w.WriteHeader(depositErr.Status)
		return
	}

	w.Header().Set("Content-Type", ContentTypeAtomEntry)
	w.Header().Set(base.HeaderErrorCode, depositErr.Code)
	w.WriteHeader(depositErr.Status)
	w.Write([]byte(body))
}
