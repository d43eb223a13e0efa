package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/diwise/api-repository/internal/pkg/application/rest"
	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const maxCreateRequestSize int64 = 1 << 20

type createRequest struct {
	Name     string          `json:"name"`
	Metadata domain.Metadata `json:"metadata"`
}

func (c createRequest) metadata() domain.Metadata {
	md := domain.Metadata{}
	md.Merge(c.Metadata)

	if md.First("dc.title") == "" && c.Name != "" {
		md.Set("dc.title", c.Name)
	}

	return md
}

func NewCreateCommunityHandler(logger zerolog.Logger, repos *rest.Repositories) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "create-community")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		body, err := readCreateRequest(r)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		var parent *uuid.UUID
		if p := r.URL.Query().Get("parent"); p != "" {
			id, parseErr := uuid.Parse(p)
			if parseErr != nil {
				err = fmt.Errorf("%w: invalid parent %q", rest.ErrBadRequest, p)
				writeError(w, r, log, err)
				return
			}
			parent = &id
		}

		svc := repos.Services()
		md := body.metadata()

		c, err := svc.Communities.Create(ctx, md.First("dc.title"), parent)
		if err != nil {
			writeError(w, r, log, notFoundAsBadRequest(err))
			return
		}

		if len(md) > 1 {
			c.Metadata = md
			if err = svc.Communities.UpdateMetadata(ctx, c.ID, md); err != nil {
				writeError(w, r, log, err)
				return
			}
		}

		created, err := repos.Communities.FindOne(ctx, c.ID.String())
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		w.Header().Set("Location", created.Links["self"].Href)
		if err = writeHAL(w, http.StatusCreated, created); err != nil {
			log.Error().Err(err).Msg("failed to write response")
		}
	})
}

func NewCreateCollectionHandler(logger zerolog.Logger, repos *rest.Repositories) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "create-collection")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		parent, err := uuid.Parse(r.URL.Query().Get("parent"))
		if err != nil {
			err = fmt.Errorf("%w: a valid parent community is required", rest.ErrBadRequest)
			writeError(w, r, log, err)
			return
		}

		body, err := readCreateRequest(r)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		c, err := repos.Services().Collections.Create(ctx, parent, body.metadata())
		if err != nil {
			writeError(w, r, log, notFoundAsBadRequest(err))
			return
		}

		created, err := repos.Collections.FindOne(ctx, c.ID.String())
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		w.Header().Set("Location", created.Links["self"].Href)
		if err = writeHAL(w, http.StatusCreated, created); err != nil {
			log.Error().Err(err).Msg("failed to write response")
		}
	})
}

func readCreateRequest(r *http.Request) (createRequest, error) {
	body := createRequest{}

	b, err := io.ReadAll(io.LimitReader(r.Body, maxCreateRequestSize))
	if err != nil {
		return body, fmt.Errorf("%w: %s", rest.ErrBadRequest, err.Error())
	}

	if len(strings.TrimSpace(string(b))) > 0 {
		if err = json.Unmarshal(b, &body); err != nil {
			return body, fmt.Errorf("%w: %s", rest.ErrBadRequest, err.Error())
		}
	}

	if body.metadata().First("dc.title") == "" {
		return body, fmt.Errorf("%w: a name or dc.title is required", rest.ErrBadRequest)
	}

	return body, nil
}

// notFoundAsBadRequest reports a missing parent as a client error.
func notFoundAsBadRequest(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", rest.ErrBadRequest, err.Error())
	}
	return err
}
