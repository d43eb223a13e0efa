package eperson

import (
	"context"
	"errors"
	"testing"

	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/repositories/database"
	"github.com/matryer/is"
)

func TestAuthenticate(t *testing.T) {
	is, epersons, _ := setupTest(t)
	ctx := context.Background()

	created, err := epersons.Create(ctx, "user@example.org", "Some", "User", "secret")
	is.NoErr(err)
	is.True(created.Salt != "")
	is.True(created.PasswordHash != "secret")

	e, err := epersons.Authenticate(ctx, "USER@example.org", "secret")
	is.NoErr(err)
	is.Equal(e.ID, created.ID)
	is.True(e.LastActive != nil)

	_, err = epersons.Authenticate(ctx, "user@example.org", "wrong")
	is.True(errors.Is(err, ErrInvalidCredentials))

	_, err = epersons.Authenticate(ctx, "nobody@example.org", "secret")
	is.True(errors.Is(err, ErrInvalidCredentials))
}

func TestEPersonWithoutPasswordCannotLogIn(t *testing.T) {
	is, epersons, _ := setupTest(t)
	ctx := context.Background()

	_, err := epersons.Create(ctx, "nologin@example.org", "", "", "")
	is.NoErr(err)

	_, err = epersons.Authenticate(ctx, "nologin@example.org", "")
	is.True(errors.Is(err, ErrInvalidCredentials))
}

func TestHashPasswordIsDeterministic(t *testing.T) {
	is := is.New(t)

	is.Equal(HashPassword("secret", "00ff"), HashPassword("secret", "00ff"))
	is.True(HashPassword("secret", "00ff") != HashPassword("secret", "ff00"))
	is.Equal(len(HashPassword("secret", "00ff")), 128)
}

func TestIsAdmin(t *testing.T) {
	is, epersons, groups := setupTest(t)
	ctx := context.Background()

	e, err := epersons.Create(ctx, "admin@example.org", "", "", "pw")
	is.NoErr(err)

	admin, err := groups.IsAdmin(ctx, e.ID)
	is.NoErr(err)
	is.True(!admin)

	g, err := groups.FindOrCreate(ctx, domain.GroupAdministrator, true)
	is.NoErr(err)
	is.NoErr(groups.AddMember(ctx, g.ID, e.ID))

	again, err := groups.FindOrCreate(ctx, domain.GroupAdministrator, true)
	is.NoErr(err)
	is.Equal(again.ID, g.ID)

	admin, err = groups.IsAdmin(ctx, e.ID)
	is.NoErr(err)
	is.True(admin)
}

func setupTest(t *testing.T) (*is.I, EPersonService, GroupService) {
	is := is.New(t)

	db, err := database.NewDatabaseConnection(context.Background(), database.NewSQLiteConnector(""))
	is.NoErr(err)
	t.Cleanup(func() { db.Close() })

	return is, NewEPersonService(db), NewGroupService(db)
}
