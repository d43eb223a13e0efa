package config

import (
	"bytes"
	"context"
	"testing"

	"github.com/diwise/api-repository/internal/pkg/application/services/content"
	"github.com/diwise/api-repository/internal/pkg/application/services/eperson"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/repositories/database"
	"github.com/matryer/is"
)

func TestLoad(t *testing.T) {
	is := is.New(t)

	cfg, err := Load(bytes.NewBufferString(configFile))
	is.NoErr(err)

	is.Equal(cfg.Site.Name, "Test Repository")
	is.Equal(cfg.Site.HandlePrefix, "123456789")
	is.Equal(cfg.Sword.MaxUploadSize, int64(1024))
	is.Equal(cfg.Sword.AcceptPackaging[0].Quality, 0.5)
	is.Equal(len(cfg.Seed.Communities[0].Collections), 1)
	is.True(cfg.Grobid.Enabled)
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := LoadFile("/does/not/exist.yaml")
	is.NoErr(err)
	is.Equal(cfg.Site.HandlePrefix, Default().Site.HandlePrefix)
}

func TestSeed(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	cfg, err := Load(bytes.NewBufferString(configFile))
	is.NoErr(err)

	db, err := database.NewDatabaseConnection(ctx, database.NewSQLiteConnector(""))
	is.NoErr(err)
	defer db.Close()

	s := Seeder{
		Communities: content.NewCommunityService(db, cfg.Site.HandlePrefix),
		Collections: content.NewCollectionService(db, cfg.Site.HandlePrefix),
		EPersons:    eperson.NewEPersonService(db),
		Groups:      eperson.NewGroupService(db),
	}

	is.NoErr(s.Seed(ctx, cfg.Seed))
	is.NoErr(s.Seed(ctx, cfg.Seed))

	n, err := db.CountCommunities(ctx)
	is.NoErr(err)
	is.Equal(n, 2)

	collections, err := db.ListCollections(ctx, 10, 0)
	is.NoErr(err)
	is.Equal(len(collections), 1)
	is.Equal(collections[0].Metadata.First("dc.rights"), "CC-BY")
	is.True(collections[0].SubmittersGroupID != nil)

	admin, err := db.GetEPersonByEmail(ctx, "admin@example.org")
	is.NoErr(err)

	isAdmin, err := s.Groups.IsAdmin(ctx, admin.ID)
	is.NoErr(err)
	is.True(isAdmin)

	submitter, err := db.GetEPersonByEmail(ctx, "submitter@example.org")
	is.NoErr(err)

	member, err := db.IsGroupMember(ctx, *collections[0].SubmittersGroupID, submitter.ID)
	is.NoErr(err)
	is.True(member)
}

const configFile string = `
site:
  name: Test Repository
  handlePrefix: "123456789"
sword:
  maxUploadSize: 1024
  acceptPackaging:
    - format: http://purl.org/net/sword-types/METSDSpaceSIP
      q: 0.5
grobid:
  enabled: true
  url: http://grobid:8070
seed:
  administrators:
    - email: admin@example.org
      password: admin
  epersons:
    - email: submitter@example.org
      firstName: Sam
      password: secret
  communities:
    - name: Research
      subcommunities:
        - name: Theses
          collections:
            - name: Master theses
              rights: CC-BY
              submitters:
                - submitter@example.org
`
