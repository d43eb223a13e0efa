package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/diwise/api-repository/internal/pkg/application/rest"
	"github.com/diwise/api-repository/internal/pkg/application/services/eperson"
	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type userCtxKey struct{}

// User is the eperson a request is performed by.
type User struct {
	EPerson *domain.EPerson
	Admin   bool
}

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(*User)
	return u, ok
}

func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// NewAuthenticator resolves HTTP Basic credentials into a User stored in the
// request context. Requests without credentials pass through anonymously.
func NewAuthenticator(logger zerolog.Logger, epersons eperson.EPersonService, groups eperson.GroupService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()

			e, err := epersons.Authenticate(ctx, username, password)
			if err != nil {
				if errors.Is(err, eperson.ErrInvalidCredentials) {
					unauthorized(w, "api")
					return
				}

				logger.Error().Err(err).Msg("failed to authenticate request")
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			admin, err := groups.IsAdmin(ctx, e.ID)
			if err != nil {
				logger.Error().Err(err).Msg("failed to look up group membership")
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(ctx, &User{EPerson: e, Admin: admin})))
		})
	}
}

func RequireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			unauthorized(w, "api")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok {
			unauthorized(w, "api")
			return
		}
		if !u.Admin {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireItemAccess guards routes whose {id} belongs to an item that may not
// be archived yet. Unknown ids are passed on for the handler to answer.
func RequireItemAccess(logger zerolog.Logger, itemOf rest.ItemOfFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			item, err := itemOf(r.Context(), pathParam("id")(r))
			if err != nil {
				if errors.Is(err, rest.ErrNotFound) {
					next.ServeHTTP(w, r)
					return
				}
				writeError(w, r, logger, err)
				return
			}

			u, authenticated := UserFromContext(r.Context())

			var reader *domain.EPerson
			admin := false
			if authenticated {
				reader, admin = u.EPerson, u.Admin
			}

			if item.IsReadableBy(reader, admin) {
				next.ServeHTTP(w, r)
				return
			}

			if !authenticated {
				unauthorized(w, "api")
				return
			}
			w.WriteHeader(http.StatusForbidden)
		})
	}
}

// RequireSelfOrAdmin lets administrators through and everyone else only when
// the eperson named by the query parameter is themselves.
func RequireSelfOrAdmin(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok {
				unauthorized(w, "api")
				return
			}

			if !u.Admin {
				id, err := uuid.Parse(r.URL.Query().Get(param))
				if err == nil && id != u.EPerson.ID {
					w.WriteHeader(http.StatusForbidden)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, realm string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="`+realm+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
