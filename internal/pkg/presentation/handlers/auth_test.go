package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diwise/api-repository/internal/pkg/application/rest"
	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestRequireItemAccess(t *testing.T) {
	is := is.New(t)

	submitter := &domain.EPerson{DSO: domain.NewDSO()}
	draft := &domain.Item{DSO: domain.NewDSO(), SubmitterID: &submitter.ID}
	archived := &domain.Item{DSO: domain.NewDSO(), InArchive: true}

	items := map[string]*domain.Item{"draft": draft, "archived": archived}

	r := chi.NewRouter()
	r.With(RequireItemAccess(zerolog.Nop(), func(ctx context.Context, id string) (*domain.Item, error) {
		if item, ok := items[id]; ok {
			return item, nil
		}
		return nil, rest.ErrNotFound
	})).Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	serve := func(id string, u *User) int {
		req := httptest.NewRequest(http.MethodGet, "/items/"+id, nil)
		if u != nil {
			req = req.WithContext(WithUser(req.Context(), u))
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	is.Equal(serve("archived", nil), http.StatusOK)
	is.Equal(serve("missing", nil), http.StatusOK)
	is.Equal(serve("draft", nil), http.StatusUnauthorized)
	is.Equal(serve("draft", &User{EPerson: &domain.EPerson{DSO: domain.NewDSO()}}), http.StatusForbidden)
	is.Equal(serve("draft", &User{EPerson: submitter}), http.StatusOK)
	is.Equal(serve("draft", &User{EPerson: &domain.EPerson{DSO: domain.NewDSO()}, Admin: true}), http.StatusOK)
}

func TestRequireSelfOrAdmin(t *testing.T) {
	is := is.New(t)

	me := &domain.EPerson{DSO: domain.NewDSO()}
	someoneElse := domain.NewDSO().ID

	r := chi.NewRouter()
	r.With(RequireSelfOrAdmin("uuid")).Get("/search", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	serve := func(id string, u *User) int {
		req := httptest.NewRequest(http.MethodGet, "/search?uuid="+id, nil)
		if u != nil {
			req = req.WithContext(WithUser(req.Context(), u))
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	is.Equal(serve(me.ID.String(), nil), http.StatusUnauthorized)
	is.Equal(serve(me.ID.String(), &User{EPerson: me}), http.StatusOK)
	is.Equal(serve(someoneElse.String(), &User{EPerson: me}), http.StatusForbidden)
	is.Equal(serve(someoneElse.String(), &User{EPerson: me, Admin: true}), http.StatusOK)
	is.Equal(serve("not-a-uuid", &User{EPerson: me}), http.StatusOK)
}
