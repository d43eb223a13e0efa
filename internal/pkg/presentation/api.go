package presentation

import (
	"compress/flate"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/diwise/api-repository/internal/pkg/application/deposit"
	"github.com/diwise/api-repository/internal/pkg/application/rest"
	"github.com/diwise/api-repository/internal/pkg/presentation/handlers"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type API interface {
	// Start serves the API until ctx is cancelled.
	Start(ctx context.Context, port string) error
	Router() chi.Router
}

type Settings struct {
	BaseURL      string
	SwordEnabled bool
	// OpenAPI is served as is on /api/openapi when set.
	OpenAPI []byte
}

type repositoryAPI struct {
	router chi.Router
	log    zerolog.Logger
}

func NewAPI(ctx context.Context, r chi.Router, settings Settings, repos *rest.Repositories, deposits deposit.DepositService) API {
	return newRepositoryAPI(ctx, r, settings, repos, deposits)
}

func newRepositoryAPI(ctx context.Context, r chi.Router, settings Settings, repos *rest.Repositories, deposits deposit.DepositService) *repositoryAPI {
	log := logging.GetFromContext(ctx)

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodHead},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		Debug:            false,
	}).Handler)

	// Enable gzip compression for our responses
	compressor := middleware.NewCompressor(
		flate.DefaultCompression,
		"application/json", handlers.ContentTypeHAL, "application/atom+xml", "application/atomsvc+xml",
	)
	r.Use(compressor.Handler)
	r.Use(otelchi.Middleware("api-repository", otelchi.WithChiRoutes(r)))

	a := &repositoryAPI{
		router: r,
		log:    log,
	}

	a.addHealthHandlers(r)
	a.addRestHandlers(r, settings, repos)

	if settings.SwordEnabled && deposits != nil {
		a.addSwordHandlers(r, settings.BaseURL, deposits)
	}

	return a
}

func (a *repositoryAPI) Router() chi.Router {
	return a.router
}

func (a *repositoryAPI) Start(ctx context.Context, port string) error {
	a.log.Info().Msgf("Starting api-repository on port:%s", port)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	a.log.Info().Msg("shutting down api-repository")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (a *repositoryAPI) addRestHandlers(r chi.Router, settings Settings, repos *rest.Repositories) {
	log := a.log
	svc := repos.Services()
	baseURL := settings.BaseURL

	r.Route("/api", func(r chi.Router) {
		r.Use(handlers.NewAuthenticator(log, svc.EPersons, svc.Groups))

		r.Get("/openapi", a.newRetrieveOpenAPIHandler(settings.OpenAPI))
		r.Get("/api-docs", a.newRetrieveOpenAPIHandler(settings.OpenAPI))

		r.Route("/core", func(r chi.Router) {
			r.Get("/communities", handlers.NewRetrieveResourcesHandler(log, baseURL, repos.Communities))
			r.Get("/communities/search/top", handlers.NewSearchHandler(log, baseURL, "communities", "",
				func(ctx context.Context, _ string, p rest.Pageable) (rest.Page[rest.CommunityRest], error) {
					return repos.TopCommunities(ctx, p)
				}))
			r.Get("/communities/{id}", handlers.NewRetrieveResourceHandler(log, repos.Communities))
			r.Get("/communities/{id}/subcommunities", handlers.NewRetrieveLinkedResourcesHandler(log, baseURL, "subcommunities", repos.Subcommunities))
			r.Get("/communities/{id}/collections", handlers.NewRetrieveLinkedResourcesHandler(log, baseURL, "collections", repos.CollectionsOfCommunity))
			r.With(handlers.RequireAdmin).Post("/communities", handlers.NewCreateCommunityHandler(log, repos))

			r.Get("/collections", handlers.NewRetrieveResourcesHandler(log, baseURL, repos.Collections))
			r.Get("/collections/{id}", handlers.NewRetrieveResourceHandler(log, repos.Collections))
			r.With(handlers.RequireAdmin).Post("/collections", handlers.NewCreateCollectionHandler(log, repos))

			r.Get("/items", handlers.NewRetrieveResourcesHandler(log, baseURL, repos.Items))
			r.Get("/items/search/byHandle", handlers.NewSearchOneHandler(log, "items", "handle", repos.ItemByHandle))
			r.Group(func(r chi.Router) {
				r.Use(handlers.RequireItemAccess(log, repos.ItemByID))
				r.Get("/items/{id}", handlers.NewRetrieveResourceHandler(log, repos.Items))
				r.Get("/items/{id}/bundles", handlers.NewRetrieveLinkedResourcesHandler(log, baseURL, "bundles", repos.BundlesOfItem))
			})

			r.With(handlers.RequireAdmin).Get("/bundles", handlers.NewRetrieveResourcesHandler(log, baseURL, repos.Bundles))
			r.Group(func(r chi.Router) {
				r.Use(handlers.RequireItemAccess(log, repos.ItemOfBundle))
				r.Get("/bundles/{id}", handlers.NewRetrieveResourceHandler(log, repos.Bundles))
				r.Get("/bundles/{id}/bitstreams", handlers.NewRetrieveLinkedResourcesHandler(log, baseURL, "bitstreams", repos.BitstreamsOfBundle))
			})

			r.With(handlers.RequireAdmin).Get("/bitstreams", handlers.NewRetrieveResourcesHandler(log, baseURL, repos.Bitstreams))
			r.Group(func(r chi.Router) {
				r.Use(handlers.RequireItemAccess(log, repos.ItemOfBitstream))
				r.Get("/bitstreams/{id}", handlers.NewRetrieveResourceHandler(log, repos.Bitstreams))
				r.Get("/bitstreams/{id}/content", handlers.NewRetrieveBitstreamContentHandler(log, svc.Bitstreams))
			})
		})

		r.Route("/eperson", func(r chi.Router) {
			r.Use(handlers.RequireAdmin)

			r.Get("/epersons", handlers.NewRetrieveResourcesHandler(log, baseURL, repos.EPersons))
			r.Get("/epersons/search/byEmail", handlers.NewSearchOneHandler(log, "epersons", "email", repos.EPersonByEmail))
			r.Get("/epersons/{id}", handlers.NewRetrieveResourceHandler(log, repos.EPersons))

			r.Get("/groups", handlers.NewRetrieveResourcesHandler(log, baseURL, repos.Groups))
			r.Get("/groups/{id}", handlers.NewRetrieveResourceHandler(log, repos.Groups))
		})

		r.Route("/submission", func(r chi.Router) {
			r.Use(handlers.RequireAuthentication)

			r.With(handlers.RequireAdmin).Get("/workspaceitems", handlers.NewRetrieveResourcesHandler(log, baseURL, repos.WorkspaceItems))
			r.With(handlers.RequireSelfOrAdmin("uuid")).Get("/workspaceitems/search/findBySubmitter", handlers.NewSearchHandler(log, baseURL, "workspaceitems", "uuid", repos.WorkspaceItemsBySubmitter))
			r.With(handlers.RequireItemAccess(log, repos.ItemOfWorkspaceItem)).Get("/workspaceitems/{id}", handlers.NewRetrieveResourceHandler(log, repos.WorkspaceItems))
		})

		r.Route("/workflow", func(r chi.Router) {
			r.Use(handlers.RequireAuthentication)

			r.With(handlers.RequireAdmin).Get("/workflowitems", handlers.NewRetrieveResourcesHandler(log, baseURL, repos.WorkflowItems))
			r.With(handlers.RequireSelfOrAdmin("uuid")).Get("/workflowitems/search/findBySubmitter", handlers.NewSearchHandler(log, baseURL, "workflowitems", "uuid", repos.WorkflowItemsBySubmitter))
			r.With(handlers.RequireItemAccess(log, repos.ItemOfWorkflowItem)).Get("/workflowitems/{id}", handlers.NewRetrieveResourceHandler(log, repos.WorkflowItems))
		})
	})
}

func (a *repositoryAPI) addSwordHandlers(r chi.Router, baseURL string, deposits deposit.DepositService) {
	r.Route("/sword", func(r chi.Router) {
		r.Get("/servicedocument", handlers.NewRetrieveServiceDocumentHandler(a.log, baseURL, deposits))
		r.Post("/deposit/*", handlers.NewDepositHandler(a.log, baseURL, deposits))
		r.Get("/atom/{item}", handlers.NewRetrieveAtomEntryHandler(a.log, baseURL, deposits))
	})
}

func (a *repositoryAPI) addHealthHandlers(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func (a *repositoryAPI) newRetrieveOpenAPIHandler(openapi []byte) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(openapi) == 0 {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(openapi)
	})
}
