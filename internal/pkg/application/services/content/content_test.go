package content

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/assetstore"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/repositories/database"
	"github.com/matryer/is"
)

func TestCreateCommunityAndCollectionMintsHandles(t *testing.T) {
	is, db := setupTest(t)
	ctx := context.Background()

	communities := NewCommunityService(db, "123456789")
	collections := NewCollectionService(db, "123456789")

	top, err := communities.Create(ctx, "Top", nil)
	is.NoErr(err)
	is.Equal(top.Handle, "123456789/1")

	md := domain.Metadata{}
	md.Set("dc.title", "Theses")
	c, err := collections.Create(ctx, top.ID, md)
	is.NoErr(err)
	is.Equal(c.Handle, "123456789/2")

	byHandle, err := collections.FindByHandleOrID(ctx, "123456789/2")
	is.NoErr(err)
	is.Equal(byHandle.ID, c.ID)

	byID, err := collections.FindByHandleOrID(ctx, c.ID.String())
	is.NoErr(err)
	is.Equal(byID.Name(), "Theses")

	_, err = collections.FindByHandleOrID(ctx, "123456789/1")
	is.True(errors.Is(err, database.ErrNotFound))
}

func TestInstallArchivesItem(t *testing.T) {
	is, db := setupTest(t)
	ctx := context.Background()

	ws := newSubmission(is, db, false)

	items := NewItemService(db, nil, Settings{HandlePrefix: "123456789"})
	item, err := items.Install(ctx, ws)
	is.NoErr(err)

	is.True(item.InArchive)
	is.True(item.Handle != "")
	is.Equal(item.Metadata.First("dc.identifier.uri"), "http://hdl.handle.net/"+item.Handle)
	is.True(item.Metadata.First("dc.date.accessioned") != "")
	is.True(item.Metadata.First("dc.date.issued") != "")

	_, err = db.GetWorkspaceItem(ctx, ws.ID)
	is.True(errors.Is(err, database.ErrNotFound))

	found, err := items.FindByHandle(ctx, item.Handle)
	is.NoErr(err)
	is.True(found.InArchive)
}

func TestInstallStartsWorkflowWhenCollectionHasReviewers(t *testing.T) {
	is, db := setupTest(t)
	ctx := context.Background()

	ws := newSubmission(is, db, true)

	items := NewItemService(db, nil, Settings{HandlePrefix: "123456789"})
	item, err := items.Install(ctx, ws)
	is.NoErr(err)
	is.True(!item.InArchive)

	n, err := db.CountWorkflowItems(ctx)
	is.NoErr(err)
	is.Equal(n, 1)
}

func TestCreateAndRetrieveBitstream(t *testing.T) {
	is, db := setupTest(t)
	ctx := context.Background()

	ws := newSubmission(is, db, false)

	assets, err := assetstore.New(t.TempDir())
	is.NoErr(err)

	bundle, err := NewBundleService(db).Create(ctx, ws.ItemID, domain.BundleOriginal)
	is.NoErr(err)

	bitstreams := NewBitstreamService(db, assets)
	b, err := bitstreams.Create(ctx, bundle.ID, "file.txt", "text/plain", strings.NewReader("content"))
	is.NoErr(err)
	is.Equal(b.SizeBytes, int64(7))
	is.Equal(b.Checksum, "9a0364b9e99bb480dd25e1f0284c8555")

	r, err := bitstreams.Retrieve(ctx, b)
	is.NoErr(err)
	defer r.Close()

	data, _ := io.ReadAll(r)
	is.Equal(string(data), "content")
}

func TestDeleteItemRemovesStoredBytes(t *testing.T) {
	is, db := setupTest(t)
	ctx := context.Background()

	ws := newSubmission(is, db, false)

	assets, err := assetstore.New(t.TempDir())
	is.NoErr(err)

	bundle, err := NewBundleService(db).Create(ctx, ws.ItemID, domain.BundleOriginal)
	is.NoErr(err)

	b, err := NewBitstreamService(db, assets).Create(ctx, bundle.ID, "file.txt", "text/plain", strings.NewReader("content"))
	is.NoErr(err)

	items := NewItemService(db, assets, Settings{HandlePrefix: "123456789"})
	is.NoErr(items.Delete(ctx, ws.ItemID))

	_, err = items.Find(ctx, ws.ItemID)
	is.True(errors.Is(err, database.ErrNotFound))

	_, err = db.GetWorkspaceItem(ctx, ws.ID)
	is.True(errors.Is(err, database.ErrNotFound))

	_, err = assets.Retrieve(ctx, b.InternalID)
	is.True(err != nil)

	err = items.Delete(ctx, ws.ItemID)
	is.True(errors.Is(err, database.ErrNotFound))
}

func newSubmission(is *is.I, db database.Datastore, withReviewers bool) *domain.WorkspaceItem {
	ctx := context.Background()

	submitter := &domain.EPerson{DSO: domain.NewDSO(), Email: "submitter@example.org"}
	is.NoErr(db.CreateEPerson(ctx, submitter))

	community := &domain.Community{DSO: domain.NewDSO()}
	is.NoErr(db.CreateCommunity(ctx, community))

	collection := &domain.Collection{DSO: domain.NewDSO(), CommunityID: community.ID}
	if withReviewers {
		reviewers := &domain.Group{Name: "reviewers"}
		is.NoErr(db.CreateGroup(ctx, reviewers))
		collection.WorkflowGroupID = &reviewers.ID
	}
	is.NoErr(db.CreateCollection(ctx, collection))

	item := &domain.Item{DSO: domain.NewDSO(), OwningCollectionID: collection.ID, SubmitterID: &submitter.ID}
	item.Metadata.Set("dc.title", "A submission")
	is.NoErr(db.CreateItem(ctx, item))

	ws := &domain.WorkspaceItem{ItemID: item.ID, CollectionID: collection.ID, SubmitterID: submitter.ID}
	is.NoErr(db.CreateWorkspaceItem(ctx, ws))

	return ws
}

func setupTest(t *testing.T) (*is.I, database.Datastore) {
	is := is.New(t)

	db, err := database.NewDatabaseConnection(context.Background(), database.NewSQLiteConnector(""))
	is.NoErr(err)
	t.Cleanup(func() { db.Close() })

	return is, db
}
