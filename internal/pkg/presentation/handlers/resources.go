package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/diwise/api-repository/internal/pkg/application/rest"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-repository/api")

// PageFunc returns one page of resources, selected by a path or query argument.
type PageFunc[R any] func(ctx context.Context, arg string, p rest.Pageable) (rest.Page[R], error)

// OneFunc returns a single resource selected by a path or query argument.
type OneFunc[R any] func(ctx context.Context, arg string) (*R, error)

func NewRetrieveResourceHandler[M any, R any](logger zerolog.Logger, repo rest.Repository[M, R]) http.HandlerFunc {
	return newRetrieveOneHandler(logger, "retrieve-"+repo.Name+"-by-id", pathParam("id"), repo.FindOne)
}

func NewRetrieveResourcesHandler[M any, R any](logger zerolog.Logger, baseURL string, repo rest.Repository[M, R]) http.HandlerFunc {
	find := func(ctx context.Context, _ string, p rest.Pageable) (rest.Page[R], error) {
		return repo.FindAll(ctx, p)
	}
	return newRetrievePageHandler(logger, baseURL, "retrieve-"+repo.Name, repo.Name, noParam, find)
}

// NewRetrieveLinkedResourcesHandler serves resources that belong to the object
// identified by the id path parameter, such as the bundles of an item.
func NewRetrieveLinkedResourcesHandler[R any](logger zerolog.Logger, baseURL, name string, find PageFunc[R]) http.HandlerFunc {
	return newRetrievePageHandler(logger, baseURL, "retrieve-linked-"+name, name, pathParam("id"), find)
}

// NewSearchHandler serves a paged search method whose argument, if any, is
// read from the query parameter param.
func NewSearchHandler[R any](logger zerolog.Logger, baseURL, name, param string, find PageFunc[R]) http.HandlerFunc {
	arg := noParam
	if param != "" {
		arg = queryParam(param)
	}
	return newRetrievePageHandler(logger, baseURL, "search-"+name, name, arg, find)
}

func NewSearchOneHandler[R any](logger zerolog.Logger, name, param string, find OneFunc[R]) http.HandlerFunc {
	return newRetrieveOneHandler(logger, "search-"+name, queryParam(param), find)
}

type paramFunc func(r *http.Request) string

func noParam(r *http.Request) string {
	return ""
}

func pathParam(name string) paramFunc {
	return func(r *http.Request) string {
		v, _ := url.PathUnescape(chi.URLParam(r, name))
		return v
	}
}

func queryParam(name string) paramFunc {
	return func(r *http.Request) string {
		return r.URL.Query().Get(name)
	}
}

func newRetrieveOneHandler[R any](logger zerolog.Logger, spanName string, arg paramFunc, find OneFunc[R]) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), spanName)
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		resource, err := find(ctx, arg(r))
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		if err = writeHAL(w, http.StatusOK, resource); err != nil {
			log.Error().Err(err).Msg("failed to write response")
		}
	})
}

func newRetrievePageHandler[R any](logger zerolog.Logger, baseURL, spanName, name string, arg paramFunc, find PageFunc[R]) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), spanName)
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		query := r.URL.Query()

		p, err := rest.ParsePageable(query)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		page, err := find(ctx, arg(r), p)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		body := newHalPage(name, selfURL(baseURL, r), query, page)

		if err = writeHAL(w, http.StatusOK, body); err != nil {
			log.Error().Err(err).Msg("failed to write response")
		}
	})
}
