package deposit

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/diwise/api-repository/internal/pkg/application/services/content"
	"github.com/diwise/api-repository/internal/pkg/application/services/eperson"
	"github.com/diwise/api-repository/internal/pkg/application/services/workflow"
	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/assetstore"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/grobid"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/tei"
	"github.com/diwise/api-repository/internal/pkg/sword/base"
	"github.com/matryer/is"
)

func TestAuthenticate(t *testing.T) {
	is, f := setupTest(t, nil)
	ctx := context.Background()

	sc, err := f.svc.Authenticate(ctx, "submitter@example.org", "secret", "")
	is.NoErr(err)
	is.Equal(sc.Submitter().Email, "submitter@example.org")

	_, err = f.svc.Authenticate(ctx, "submitter@example.org", "wrong", "")
	is.True(errors.Is(err, ErrAuthentication))

	_, err = f.svc.Authenticate(ctx, "admin@example.org", "admin", "nobody@example.org")
	is.Equal(errorCode(err), base.TargetOwnerUnknown)

	sc, err = f.svc.Authenticate(ctx, "admin@example.org", "admin", "submitter@example.org")
	is.NoErr(err)
	is.Equal(sc.Submitter().Email, "submitter@example.org")
	is.Equal(sc.Authenticated.Email, "admin@example.org")
}

func TestMediationCanBeDisabled(t *testing.T) {
	is, f := setupTest(t, nil)

	f.settings.Mediation = false
	svc := New(f.settings, f.services, nil)

	_, err := svc.Authenticate(context.Background(), "admin@example.org", "admin", "submitter@example.org")
	is.Equal(errorCode(err), base.MediationNotAllowed)
}

func TestServiceDocumentListsAllowedCollections(t *testing.T) {
	is, f := setupTest(t, nil)
	ctx := context.Background()

	doc, err := f.svc.ServiceDocument(ctx, f.login(is, "submitter@example.org", "secret"))
	is.NoErr(err)
	is.Equal(len(doc.Service.Workspaces), 1)
	is.Equal(len(doc.Service.Workspaces[0].Collections), 1)

	c := doc.Service.Workspaces[0].Collections[0]
	is.Equal(c.Location, "https://repo.example.org/sword/deposit/"+f.collection.ID.String())
	is.Equal(c.CollectionPolicy.Value, "CC-BY")
	is.True(c.Mediation.Value)

	doc, err = f.svc.ServiceDocument(ctx, f.login(is, "outsider@example.org", "secret"))
	is.NoErr(err)
	is.Equal(len(doc.Service.Workspaces[0].Collections), 0)

	doc, err = f.svc.ServiceDocument(ctx, f.login(is, "admin@example.org", "admin"))
	is.NoErr(err)
	is.Equal(len(doc.Service.Workspaces[0].Collections), 2)

	xml, err := doc.Marshall()
	is.NoErr(err)
	is.True(strings.Contains(xml, "<sword:version>1.3</sword:version>"))
}

func TestDepositPDFWithExtractedMetadata(t *testing.T) {
	extractor := &grobid.ExtractorMock{
		ProcessHeaderFunc: func(ctx context.Context, filename string, r io.Reader) (*tei.TEI, error) {
			return tei.Parse(strings.NewReader(teiHeader))
		},
	}

	is, f := setupTest(t, extractor)
	ctx := context.Background()

	sc := f.login(is, "submitter@example.org", "secret")

	resp, err := f.svc.Deposit(ctx, sc, Request{
		Collection:  f.collection.Handle,
		Filename:    "paper.pdf",
		ContentType: "application/pdf",
		MD5:         "914240125319291c7cb7e712e419b254",
		Verbose:     true,
		UserAgent:   "test-client",
		Body:        strings.NewReader("%PDF-1.4"),
	})
	is.NoErr(err)

	is.Equal(resp.HTTPStatus, http.StatusCreated)
	is.True(strings.HasPrefix(resp.Location, "https://repo.example.org/sword/atom/"))
	is.Equal(len(extractor.ProcessHeaderCalls()), 1)

	entry := resp.Entry
	is.Equal(entry.Title.Content, "Extracted title")
	is.True(strings.Contains(entry.VerboseDescription.Value, "Extracted"))
	is.Equal(entry.UserAgent.Value, "test-client")
	is.True(!entry.NoOp.Value)
	is.True(entry.Content != nil)

	info := entry.Validate(base.Properties{base.HeaderUserAgent: "test-client"})
	is.True(info.Type() < base.Error)

	items, err := f.db.ListItems(ctx, 10, 0)
	is.NoErr(err)
	is.Equal(len(items), 1)
	is.True(items[0].InArchive)
	is.Equal(items[0].Name(), "Extracted title")
	is.Equal(*items[0].SubmitterID, sc.Authenticated.ID)

	n, err := f.db.CountBitstreams(ctx)
	is.NoErr(err)
	is.Equal(n, 1)

	stored, err := f.svc.Entry(ctx, sc, items[0].ID.String())
	is.NoErr(err)
	is.Equal(stored.Content.Source, entry.Content.Source)
}

func TestDepositWithoutExtractionUsesFilename(t *testing.T) {
	is, f := setupTest(t, nil)

	resp, err := f.svc.Deposit(context.Background(), f.login(is, "submitter@example.org", "secret"), Request{
		Collection:  f.collection.ID.String(),
		Filename:    "my_thesis.zip",
		ContentType: "application/zip",
		Body:        strings.NewReader("PK"),
	})
	is.NoErr(err)
	is.Equal(resp.Entry.Title.Content, "my thesis")
	is.True(resp.Entry.VerboseDescription == nil)
}

func TestDepositFailures(t *testing.T) {
	is, f := setupTest(t, nil)
	ctx := context.Background()

	sc := f.login(is, "submitter@example.org", "secret")

	valid := func() Request {
		return Request{
			Collection:  f.collection.ID.String(),
			Filename:    "file.zip",
			ContentType: "application/zip",
			Body:        strings.NewReader("content"),
		}
	}

	tests := map[string]struct {
		modify func(*Request)
		code   string
		status int
	}{
		"checksum mismatch": {func(r *Request) { r.MD5 = "00000000000000000000000000000000" }, base.ErrorChecksumMismatch, http.StatusPreconditionFailed},
		"content type":      {func(r *Request) { r.ContentType = "text/plain" }, base.ErrorContent, http.StatusUnsupportedMediaType},
		"packaging":         {func(r *Request) { r.Packaging = "http://example.org/unknown" }, base.ErrorContent, http.StatusUnsupportedMediaType},
		"declared size":     {func(r *Request) { r.ContentLength = 2048 }, base.MaxUploadSizeExceeded, http.StatusRequestEntityTooLarge},
		"actual size":       {func(r *Request) { r.Body = strings.NewReader(strings.Repeat("x", 1025)) }, base.MaxUploadSizeExceeded, http.StatusRequestEntityTooLarge},
		"unknown target":    {func(r *Request) { r.Collection = "123456789/999" }, base.ErrorBadRequest, http.StatusNotFound},
		"missing target":    {func(r *Request) { r.Collection = "" }, base.ErrorBadRequest, http.StatusBadRequest},
		"not a submitter":   {func(r *Request) { r.Collection = f.closed.ID.String() }, base.ErrorBadRequest, http.StatusForbidden},
	}

	for name, tc := range tests {
		req := valid()
		tc.modify(&req)

		_, err := f.svc.Deposit(ctx, sc, req)

		var depositErr *Error
		if !errors.As(err, &depositErr) {
			t.Fatalf("%s: expected a deposit error, got %v", name, err)
		}
		is.Equal(depositErr.Code, tc.code)
		is.Equal(depositErr.Status, tc.status)
	}

	n, err := f.db.CountItems(ctx)
	is.NoErr(err)
	is.Equal(n, 0)
}

func TestNoOpDepositStoresNothing(t *testing.T) {
	is, f := setupTest(t, nil)
	ctx := context.Background()

	resp, err := f.svc.Deposit(ctx, f.login(is, "submitter@example.org", "secret"), Request{
		Collection:  f.collection.ID.String(),
		Filename:    "file.zip",
		ContentType: "application/zip",
		NoOp:        true,
		Body:        strings.NewReader("content"),
	})
	is.NoErr(err)
	is.Equal(resp.HTTPStatus, http.StatusAccepted)
	is.True(resp.Entry.NoOp.Value)

	n, err := f.db.CountItems(ctx)
	is.NoErr(err)
	is.Equal(n, 0)
}

func TestEntryOfUnarchivedItemIsPrivate(t *testing.T) {
	is, f := setupTest(t, nil)
	ctx := context.Background()

	submitter := f.login(is, "submitter@example.org", "secret")

	md := domain.Metadata{}
	md.Set("dc.title", "Draft, not yet submitted")
	_, item, err := f.services.WorkspaceItems.Create(ctx, f.collection.ID, submitter.Authenticated.ID, md)
	is.NoErr(err)

	entry, err := f.svc.Entry(ctx, submitter, item.ID.String())
	is.NoErr(err)
	is.Equal(entry.Title.Content, "Draft, not yet submitted")

	_, err = f.svc.Entry(ctx, f.login(is, "admin@example.org", "admin"), item.ID.String())
	is.NoErr(err)

	_, err = f.svc.Entry(ctx, f.login(is, "outsider@example.org", "secret"), item.ID.String())

	var depositErr *Error
	is.True(errors.As(err, &depositErr))
	is.Equal(depositErr.Status, http.StatusForbidden)
}

type assetStore = assetstore.Store

type fullDisk struct {
	assetStore
}

func (fullDisk) Store(ctx context.Context, r io.Reader) (string, int64, string, error) {
	return "", 0, "", errors.New("disk full")
}

func TestFailedDepositLeavesNothingBehind(t *testing.T) {
	is, f := setupTest(t, nil)
	ctx := context.Background()

	services := f.services
	services.Bitstreams = content.NewBitstreamService(f.db, fullDisk{})
	svc := New(f.settings, services, nil)

	sc := f.login(is, "submitter@example.org", "secret")

	_, err := svc.Deposit(ctx, sc, Request{
		Collection:  f.collection.ID.String(),
		Filename:    "file.zip",
		ContentType: "application/zip",
		Body:        strings.NewReader("content"),
	})
	is.True(err != nil)

	n, err := f.db.CountWorkspaceItems(ctx)
	is.NoErr(err)
	is.Equal(n, 0)

	n, err = f.db.CountBundles(ctx)
	is.NoErr(err)
	is.Equal(n, 0)

	n, err = f.db.CountBitstreams(ctx)
	is.NoErr(err)
	is.Equal(n, 0)
}

func errorCode(err error) string {
	var depositErr *Error
	if errors.As(err, &depositErr) {
		return depositErr.Code
	}
	return ""
}

type fixture struct {
	db         database.Datastore
	settings   Settings
	services   Services
	svc        DepositService
	collection *domain.Collection
	closed     *domain.Collection
}

func (f fixture) login(is *is.I, email, password string) *Context {
	sc, err := f.svc.Authenticate(context.Background(), email, password, "")
	is.NoErr(err)
	return sc
}

func setupTest(t *testing.T, extractor grobid.Extractor) (*is.I, fixture) {
	is := is.New(t)
	ctx := context.Background()

	db, err := database.NewDatabaseConnection(ctx, database.NewSQLiteConnector(""))
	is.NoErr(err)
	t.Cleanup(func() { db.Close() })

	assets, err := assetstore.New(t.TempDir())
	is.NoErr(err)

	communities := content.NewCommunityService(db, "123456789")
	collections := content.NewCollectionService(db, "123456789")
	epersons := eperson.NewEPersonService(db)
	groups := eperson.NewGroupService(db)

	services := Services{
		Collections:    collections,
		Items:          content.NewItemService(db, assets, content.Settings{HandlePrefix: "123456789"}),
		Bundles:        content.NewBundleService(db),
		Bitstreams:     content.NewBitstreamService(db, assets),
		EPersons:       epersons,
		Groups:         groups,
		WorkspaceItems: workflow.NewWorkspaceItemService(db),
	}

	admin, err := epersons.Create(ctx, "admin@example.org", "", "", "admin")
	is.NoErr(err)
	submitter, err := epersons.Create(ctx, "submitter@example.org", "Sam", "Submitter", "secret")
	is.NoErr(err)
	_, err = epersons.Create(ctx, "outsider@example.org", "", "", "secret")
	is.NoErr(err)

	admins, err := groups.FindOrCreate(ctx, domain.GroupAdministrator, true)
	is.NoErr(err)
	is.NoErr(groups.AddMember(ctx, admins.ID, admin.ID))

	community, err := communities.Create(ctx, "Research", nil)
	is.NoErr(err)

	md := domain.Metadata{}
	md.Set("dc.title", "Open")
	md.Set("dc.rights", "CC-BY")
	open, err := collections.Create(ctx, community.ID, md)
	is.NoErr(err)

	submitters, err := groups.FindOrCreate(ctx, "COLLECTION_OPEN_SUBMIT", false)
	is.NoErr(err)
	is.NoErr(groups.AddMember(ctx, submitters.ID, submitter.ID))
	open.SubmittersGroupID = &submitters.ID
	is.NoErr(collections.Update(ctx, open))

	closed, err := collections.Create(ctx, community.ID, domain.Metadata{})
	is.NoErr(err)

	settings := Settings{
		SiteName:           "Test Repository",
		BaseURL:            "https://repo.example.org/",
		MaxUploadSize:      1024,
		Accepts:            []string{"application/zip", "application/pdf"},
		AcceptPackaging:    []PackagingFormat{{Format: "http://purl.org/net/sword-types/METSDSpaceSIP", Quality: 1.0}},
		Mediation:          true,
		Treatment:          "Stored as a new item.",
		AllowFilenameTitle: true,
		ExtractMetadata:    extractor != nil,
	}

	return is, fixture{
		db:         db,
		settings:   settings,
		services:   services,
		svc:        New(settings, services, extractor),
		collection: open,
		closed:     closed,
	}
}

const teiHeader string = `<TEI xmlns="http://www.tei-c.org/ns/1.0">
	<teiHeader>
		<fileDesc><titleStmt><title level="a" type="main">Extracted title</title></titleStmt></fileDesc>
	</teiHeader>
</TEI>`
