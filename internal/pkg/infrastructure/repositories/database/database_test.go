package database

import (
	"context"
	"errors"
	"testing"

	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/google/uuid"
	"github.com/matryer/is"
)

func TestDatabaseConnection(t *testing.T) {
	is, db := setupTest(t)

	n, err := db.CountCommunities(context.Background())
	is.NoErr(err)
	is.Equal(n, 0)
}

func TestCreateAndGetCommunityWithMetadata(t *testing.T) {
	is, db := setupTest(t)
	ctx := context.Background()

	top := newCommunity("Top", nil)
	is.NoErr(db.CreateCommunity(ctx, top))

	sub := newCommunity("Sub", &top.ID)
	sub.Metadata.Add("dc.description", "first", "en")
	sub.Metadata.Add("dc.description", "second", "sv")
	is.NoErr(db.CreateCommunity(ctx, sub))

	c, err := db.GetCommunity(ctx, sub.ID)
	is.NoErr(err)
	is.Equal(c.Name(), "Sub")
	is.Equal(*c.ParentID, top.ID)
	is.Equal(len(c.Metadata["dc.description"]), 2)
	is.Equal(c.Metadata["dc.description"][1].Value, "second")
	is.Equal(c.Metadata["dc.description"][1].Language, "sv")

	tops, err := db.ListTopCommunities(ctx, 10, 0)
	is.NoErr(err)
	is.Equal(len(tops), 1)
	is.Equal(tops[0].ID, top.ID)

	subs, err := db.ListSubcommunities(ctx, top.ID, 10, 0)
	is.NoErr(err)
	is.Equal(len(subs), 1)

	n, err := db.CountSubcommunities(ctx, top.ID)
	is.NoErr(err)
	is.Equal(n, 1)
}

func TestGetMissingCommunityReturnsNotFound(t *testing.T) {
	is, db := setupTest(t)

	_, err := db.GetCommunity(context.Background(), uuid.New())
	is.True(errors.Is(err, ErrNotFound))
}

func TestListPaging(t *testing.T) {
	is, db := setupTest(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c", "d", "e"} {
		is.NoErr(db.CreateCommunity(ctx, newCommunity(name, nil)))
	}

	page, err := db.ListCommunities(ctx, 2, 4)
	is.NoErr(err)
	is.Equal(len(page), 1)
	is.Equal(page[0].Name(), "e")

	n, err := db.CountCommunities(ctx)
	is.NoErr(err)
	is.Equal(n, 5)
}

func TestItemBundleAndBitstreams(t *testing.T) {
	is, db := setupTest(t)
	ctx := context.Background()

	community := newCommunity("Community", nil)
	is.NoErr(db.CreateCommunity(ctx, community))

	collection := &domain.Collection{DSO: domain.NewDSO(), CommunityID: community.ID}
	collection.Metadata.Set("dc.title", "Collection")
	is.NoErr(db.CreateCollection(ctx, collection))

	item := &domain.Item{DSO: domain.NewDSO(), OwningCollectionID: collection.ID, Discoverable: true}
	item.Metadata.Set("dc.title", "An item")
	is.NoErr(db.CreateItem(ctx, item))

	bundle := &domain.Bundle{DSO: domain.NewDSO(), ItemID: item.ID}
	bundle.Metadata.Set("dc.title", domain.BundleOriginal)
	is.NoErr(db.CreateBundle(ctx, bundle))

	first := &domain.Bitstream{DSO: domain.NewDSO(), BundleID: bundle.ID, SizeBytes: 3, Checksum: "abc"}
	second := &domain.Bitstream{DSO: domain.NewDSO(), BundleID: bundle.ID, Format: "application/pdf"}
	is.NoErr(db.CreateBitstream(ctx, first))
	is.NoErr(db.CreateBitstream(ctx, second))
	is.Equal(first.SequenceID, 1)
	is.Equal(second.SequenceID, 2)

	bitstreams, err := db.ListBitstreamsOfBundle(ctx, bundle.ID, 10, 0)
	is.NoErr(err)
	is.Equal(len(bitstreams), 2)
	is.Equal(bitstreams[0].ChecksumAlgorithm, "MD5")
	is.Equal(bitstreams[0].Format, "application/octet-stream")
	is.Equal(bitstreams[1].Format, "application/pdf")

	bundles, err := db.ListBundlesOfItem(ctx, item.ID, 10, 0)
	is.NoErr(err)
	is.Equal(len(bundles), 1)
	is.Equal(bundles[0].Name(), domain.BundleOriginal)

	item.InArchive = true
	item.Metadata.Set("dc.title", "A new title")
	is.NoErr(db.UpdateItem(ctx, item))

	stored, err := db.GetItem(ctx, item.ID)
	is.NoErr(err)
	is.True(stored.InArchive)
	is.True(stored.Discoverable)
	is.True(!stored.Withdrawn)
	is.Equal(stored.Name(), "A new title")
	is.True(!stored.LastModified.IsZero())
}

func TestOnlyArchivedItemsAreListed(t *testing.T) {
	is, db := setupTest(t)
	ctx := context.Background()

	collection := newCollection(is, db)

	draft := &domain.Item{DSO: domain.NewDSO(), OwningCollectionID: collection.ID}
	draft.Metadata.Set("dc.title", "Draft, not yet submitted")
	is.NoErr(db.CreateItem(ctx, draft))

	archived := &domain.Item{DSO: domain.NewDSO(), OwningCollectionID: collection.ID, InArchive: true}
	archived.Metadata.Set("dc.title", "Published")
	is.NoErr(db.CreateItem(ctx, archived))

	items, err := db.ListItems(ctx, 10, 0)
	is.NoErr(err)
	is.Equal(len(items), 1)
	is.Equal(items[0].ID, archived.ID)

	n, err := db.CountItems(ctx)
	is.NoErr(err)
	is.Equal(n, 1)

	_, err = db.GetItem(ctx, draft.ID)
	is.NoErr(err)
}

func TestDeleteItemRemovesEverythingBelowIt(t *testing.T) {
	is, db := setupTest(t)
	ctx := context.Background()

	collection := newCollection(is, db)

	item := &domain.Item{DSO: domain.NewDSO(), OwningCollectionID: collection.ID}
	item.Metadata.Set("dc.title", "Doomed")
	is.NoErr(db.CreateItem(ctx, item))

	bundle := &domain.Bundle{DSO: domain.NewDSO(), ItemID: item.ID}
	bundle.Metadata.Set("dc.title", domain.BundleOriginal)
	is.NoErr(db.CreateBundle(ctx, bundle))

	bitstream := &domain.Bitstream{DSO: domain.NewDSO(), BundleID: bundle.ID, InternalID: "0123456789"}
	is.NoErr(db.CreateBitstream(ctx, bitstream))

	submitter := &domain.EPerson{DSO: domain.NewDSO(), Email: "doomed@example.org"}
	is.NoErr(db.CreateEPerson(ctx, submitter))
	is.NoErr(db.CreateWorkspaceItem(ctx, &domain.WorkspaceItem{ItemID: item.ID, CollectionID: collection.ID, SubmitterID: submitter.ID}))

	handle, err := db.MintHandle(ctx, "123456789", item.ID)
	is.NoErr(err)

	internalIDs, err := db.DeleteItem(ctx, item.ID)
	is.NoErr(err)
	is.Equal(internalIDs, []string{"0123456789"})

	_, err = db.GetItem(ctx, item.ID)
	is.True(errors.Is(err, ErrNotFound))
	_, err = db.GetBundle(ctx, bundle.ID)
	is.True(errors.Is(err, ErrNotFound))
	_, err = db.GetBitstream(ctx, bitstream.ID)
	is.True(errors.Is(err, ErrNotFound))

	n, err := db.CountWorkspaceItems(ctx)
	is.NoErr(err)
	is.Equal(n, 0)

	_, _, err = db.ResolveHandle(ctx, handle)
	is.True(errors.Is(err, ErrNotFound))

	_, err = db.DeleteItem(ctx, item.ID)
	is.True(errors.Is(err, ErrNotFound))
}

func newCollection(is *is.I, db Datastore) *domain.Collection {
	ctx := context.Background()

	community := newCommunity("Community", nil)
	is.NoErr(db.CreateCommunity(ctx, community))

	collection := &domain.Collection{DSO: domain.NewDSO(), CommunityID: community.ID}
	collection.Metadata.Set("dc.title", "Collection")
	is.NoErr(db.CreateCollection(ctx, collection))

	return collection
}

func TestHandles(t *testing.T) {
	is, db := setupTest(t)
	ctx := context.Background()

	c := newCommunity("Handled", nil)
	is.NoErr(db.CreateCommunity(ctx, c))

	handle, err := db.MintHandle(ctx, "123456789", c.ID)
	is.NoErr(err)
	is.Equal(handle, "123456789/1")

	id, objectType, err := db.ResolveHandle(ctx, "hdl:123456789/1")
	is.NoErr(err)
	is.Equal(id, c.ID)
	is.Equal(objectType, domain.TypeCommunity)

	_, _, err = db.ResolveHandle(ctx, "123456789/99")
	is.True(errors.Is(err, ErrNotFound))
}

func TestInvalidMetadataFieldIsRejected(t *testing.T) {
	is, db := setupTest(t)

	c := newCommunity("Bad", nil)
	c.Metadata.Set("not a field", "x")

	is.True(db.CreateCommunity(context.Background(), c) != nil)
}

func TestEPersonsAndGroups(t *testing.T) {
	is, db := setupTest(t)
	ctx := context.Background()

	e := &domain.EPerson{DSO: domain.NewDSO(), Email: " Jane@Example.org", FirstName: "Jane", CanLogIn: true}
	is.NoErr(db.CreateEPerson(ctx, e))

	found, err := db.GetEPersonByEmail(ctx, "JANE@example.org")
	is.NoErr(err)
	is.Equal(found.ID, e.ID)
	is.Equal(found.Email, "jane@example.org")
	is.True(found.CanLogIn)
	is.True(found.LastActive == nil)

	g := &domain.Group{Name: domain.GroupAdministrator, Permanent: true}
	is.NoErr(db.CreateGroup(ctx, g))
	is.True(g.ID != uuid.Nil)

	member, err := db.IsGroupMember(ctx, g.ID, e.ID)
	is.NoErr(err)
	is.True(!member)

	is.NoErr(db.AddGroupMember(ctx, g.ID, e.ID))
	is.NoErr(db.AddGroupMember(ctx, g.ID, e.ID))

	member, err = db.IsGroupMember(ctx, g.ID, e.ID)
	is.NoErr(err)
	is.True(member)

	byName, err := db.GetGroupByName(ctx, domain.GroupAdministrator)
	is.NoErr(err)
	is.Equal(byName.ID, g.ID)
	is.True(byName.Permanent)
}

func TestWorkspaceAndWorkflowItems(t *testing.T) {
	is, db := setupTest(t)
	ctx := context.Background()

	submitter := &domain.EPerson{DSO: domain.NewDSO(), Email: "submitter@example.org"}
	is.NoErr(db.CreateEPerson(ctx, submitter))

	community := newCommunity("Community", nil)
	is.NoErr(db.CreateCommunity(ctx, community))
	collection := &domain.Collection{DSO: domain.NewDSO(), CommunityID: community.ID}
	is.NoErr(db.CreateCollection(ctx, collection))

	item := &domain.Item{DSO: domain.NewDSO(), OwningCollectionID: collection.ID, SubmitterID: &submitter.ID}
	is.NoErr(db.CreateItem(ctx, item))

	ws := &domain.WorkspaceItem{ItemID: item.ID, CollectionID: collection.ID, SubmitterID: submitter.ID}
	is.NoErr(db.CreateWorkspaceItem(ctx, ws))
	is.True(ws.ID > 0)

	list, err := db.ListWorkspaceItemsBySubmitter(ctx, submitter.ID, 10, 0)
	is.NoErr(err)
	is.Equal(len(list), 1)

	is.NoErr(db.DeleteWorkspaceItem(ctx, ws.ID))
	is.True(errors.Is(db.DeleteWorkspaceItem(ctx, ws.ID), ErrNotFound))

	wf := &domain.WorkflowItem{ItemID: item.ID, CollectionID: collection.ID, SubmitterID: submitter.ID}
	is.NoErr(db.CreateWorkflowItem(ctx, wf))

	stored, err := db.GetWorkflowItem(ctx, wf.ID)
	is.NoErr(err)
	is.Equal(stored.State, domain.WorkflowStepOnePool)

	n, err := db.CountWorkflowItemsBySubmitter(ctx, submitter.ID)
	is.NoErr(err)
	is.Equal(n, 1)
}

func newCommunity(name string, parent *uuid.UUID) *domain.Community {
	c := &domain.Community{DSO: domain.NewDSO(), ParentID: parent}
	c.Metadata.Set("dc.title", name)
	return c
}

func setupTest(t *testing.T) (*is.I, Datastore) {
	is := is.New(t)

	db, err := NewDatabaseConnection(context.Background(), NewSQLiteConnector(""))
	is.NoErr(err)

	t.Cleanup(func() { db.Close() })

	return is, db
}
