package presentation

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diwise/api-repository/internal/pkg/application/config"
	"github.com/diwise/api-repository/internal/pkg/application/deposit"
	"github.com/diwise/api-repository/internal/pkg/application/rest"
	"github.com/diwise/api-repository/internal/pkg/application/services/content"
	"github.com/diwise/api-repository/internal/pkg/application/services/eperson"
	"github.com/diwise/api-repository/internal/pkg/application/services/workflow"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/assetstore"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/api-repository/internal/pkg/sword/base"
	"github.com/diwise/api-repository/internal/pkg/sword/client"
	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
)

const (
	adminEmail     string = "admin@example.org"
	submitterEmail string = "submitter@example.org"
	password       string = "secret"
)

func TestHealth(t *testing.T) {
	is, ts := setupTest(t)

	resp, _ := newTestRequest(is, ts, http.MethodGet, "/health", "", nil)
	is.Equal(resp.StatusCode, http.StatusOK)
}

func TestOpenAPIIsNotFoundWhenNotConfigured(t *testing.T) {
	is, ts := setupTest(t)

	resp, _ := newTestRequest(is, ts, http.MethodGet, "/api/openapi", "", nil)
	is.Equal(resp.StatusCode, http.StatusNotFound)
}

func TestListCommunities(t *testing.T) {
	is, ts := setupTest(t)

	resp, body := newTestRequest(is, ts, http.MethodGet, "/api/core/communities?size=5", "", nil)
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(resp.Header.Get("Content-Type"), "application/hal+json")

	page := struct {
		Embedded struct {
			Communities []rest.CommunityRest `json:"communities"`
		} `json:"_embedded"`
		Page struct {
			Size          int `json:"size"`
			TotalElements int `json:"totalElements"`
		} `json:"page"`
		Links rest.Links `json:"_links"`
	}{}
	is.NoErr(json.Unmarshal([]byte(body), &page))

	is.Equal(len(page.Embedded.Communities), 1)
	is.Equal(page.Embedded.Communities[0].Name, "Research")
	is.Equal(page.Embedded.Communities[0].Type, "community")
	is.Equal(page.Page.Size, 5)
	is.Equal(page.Page.TotalElements, 1)
	is.True(strings.HasPrefix(page.Links["self"].Href, ts.URL+"/api/core/communities?"))

	id := page.Embedded.Communities[0].ID

	resp, body = newTestRequest(is, ts, http.MethodGet, "/api/core/communities/"+id+"/collections", "", nil)
	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, `"name":"Papers"`))

	resp, _ = newTestRequest(is, ts, http.MethodGet, "/api/core/communities/search/top", "", nil)
	is.Equal(resp.StatusCode, http.StatusOK)
}

func TestRequestErrors(t *testing.T) {
	is, ts := setupTest(t)

	resp, _ := newTestRequest(is, ts, http.MethodGet, "/api/core/communities?size=-1", "", nil)
	is.Equal(resp.StatusCode, http.StatusBadRequest)

	resp, _ = newTestRequest(is, ts, http.MethodGet, "/api/core/items/not-a-uuid", "", nil)
	is.Equal(resp.StatusCode, http.StatusNotFound)

	resp, _ = newTestRequest(is, ts, http.MethodGet, "/api/core/items/search/byHandle", "", nil)
	is.Equal(resp.StatusCode, http.StatusBadRequest)

	resp, _ = newTestRequest(is, ts, http.MethodGet, "/api/core/items", "nobody@example.org", nil)
	is.Equal(resp.StatusCode, http.StatusUnauthorized)
}

func TestEPersonsRequireAdministrator(t *testing.T) {
	is, ts := setupTest(t)

	resp, _ := newTestRequest(is, ts, http.MethodGet, "/api/eperson/epersons", "", nil)
	is.Equal(resp.StatusCode, http.StatusUnauthorized)
	is.True(resp.Header.Get("WWW-Authenticate") != "")

	resp, _ = newTestRequest(is, ts, http.MethodGet, "/api/eperson/epersons", submitterEmail, nil)
	is.Equal(resp.StatusCode, http.StatusForbidden)

	resp, body := newTestRequest(is, ts, http.MethodGet, "/api/eperson/epersons", adminEmail, nil)
	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, submitterEmail))

	resp, body = newTestRequest(is, ts, http.MethodGet, "/api/eperson/epersons/search/byEmail?email="+submitterEmail, adminEmail, nil)
	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, `"type":"eperson"`))
}

func TestCreateCommunityAndCollection(t *testing.T) {
	is, ts := setupTest(t)

	resp, _ := newTestRequest(is, ts, http.MethodPost, "/api/core/communities", submitterEmail, strings.NewReader(`{"name":"Nope"}`))
	is.Equal(resp.StatusCode, http.StatusForbidden)

	resp, body := newTestRequest(is, ts, http.MethodPost, "/api/core/communities", adminEmail,
		strings.NewReader(`{"name":"Theses","metadata":{"dc.description.abstract":[{"value":"Student theses"}]}}`))
	is.Equal(resp.StatusCode, http.StatusCreated)

	community := rest.CommunityRest{}
	is.NoErr(json.Unmarshal([]byte(body), &community))
	is.Equal(community.Name, "Theses")
	is.Equal(community.Metadata.First("dc.description.abstract"), "Student theses")
	is.Equal(resp.Header.Get("Location"), community.Links["self"].Href)

	resp, _ = newTestRequest(is, ts, http.MethodPost, "/api/core/collections", adminEmail, strings.NewReader(`{"name":"Orphan"}`))
	is.Equal(resp.StatusCode, http.StatusBadRequest)

	resp, body = newTestRequest(is, ts, http.MethodPost, "/api/core/collections?parent="+community.ID, adminEmail, strings.NewReader(`{"name":"Bachelor"}`))
	is.Equal(resp.StatusCode, http.StatusCreated)
	is.True(strings.Contains(body, `"type":"collection"`))
}

func TestSwordRequiresAuthentication(t *testing.T) {
	is, ts := setupTest(t)

	resp, _ := newTestRequest(is, ts, http.MethodGet, "/sword/servicedocument", "", nil)
	is.Equal(resp.StatusCode, http.StatusUnauthorized)
	is.Equal(resp.Header.Get("WWW-Authenticate"), `Basic realm="SWORD"`)
}

func TestSwordDeposit(t *testing.T) {
	is, ts := setupTest(t)
	ctx := context.Background()

	c := client.New(submitterEmail, password)

	doc, status, err := c.GetServiceDocument(ctx, ts.URL+"/sword/servicedocument", "")
	is.NoErr(err)
	is.Equal(status.Code, http.StatusOK)
	is.Equal(len(doc.Service.Workspaces[0].Collections), 1)

	destination := doc.Service.Workspaces[0].Collections[0].Location
	data := []byte("PK deposited package")

	resp, status, err := c.PostFile(ctx, client.PostMessage{
		Destination: destination,
		Filename:    "annual_report.zip",
		ContentType: "application/zip",
		Data:        data,
		Verbose:     true,
		UseMD5:      true,
	})
	is.NoErr(err)
	is.Equal(status.Code, http.StatusCreated)
	is.True(!resp.IsError())
	is.Equal(resp.Entry.Title.Content, "annual report")
	is.True(strings.HasPrefix(resp.Location, ts.URL+"/sword/atom/"))

	entry, body := newTestRequest(is, ts, http.MethodGet, strings.TrimPrefix(resp.Location, ts.URL), submitterEmail, nil)
	is.Equal(entry.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, "annual report"))

	download, downloaded := newTestRequest(is, ts, http.MethodGet, strings.TrimPrefix(resp.Entry.Content.Source, ts.URL), "", nil)
	is.Equal(download.StatusCode, http.StatusOK)
	is.Equal(download.Header.Get("Content-Type"), "application/zip")
	is.Equal(download.Header.Get("X-Content-Type-Options"), "nosniff")
	is.True(strings.HasPrefix(download.Header.Get("Content-Disposition"), "attachment"))
	is.Equal(downloaded, string(data))

	items, body := newTestRequest(is, ts, http.MethodGet, "/api/core/items", "", nil)
	is.Equal(items.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, `"inArchive":true`))
}

func TestSwordDepositWithCorruptChecksum(t *testing.T) {
	is, ts := setupTest(t)

	c := client.New(submitterEmail, password)

	resp, status, err := c.PostFile(context.Background(), client.PostMessage{
		Destination: ts.URL + "/sword/deposit/123456789/2",
		Filename:    "package.zip",
		ContentType: "application/zip",
		Data:        []byte("content"),
		CorruptMD5:  true,
	})
	is.NoErr(err)
	is.Equal(status.Code, http.StatusPreconditionFailed)
	is.True(resp.IsError())
	is.Equal(resp.Error.ErrorURI, base.ErrorChecksumMismatch)
}

func TestSwordDepositByAnOutsiderIsForbidden(t *testing.T) {
	is, ts := setupTest(t)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/sword/deposit/123456789/2", strings.NewReader("content"))
	is.NoErr(err)
	req.SetBasicAuth("outsider@example.org", password)
	req.Header.Set("Content-Type", "application/zip")
	req.Header.Set("Content-Disposition", `filename="package.zip"`)

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	defer resp.Body.Close()

	is.Equal(resp.StatusCode, http.StatusForbidden)
	is.Equal(resp.Header.Get(base.HeaderErrorCode), base.ErrorBadRequest)
}

func TestUnarchivedContentListingsRequireAdministrator(t *testing.T) {
	is, ts := setupTest(t)

	for _, path := range []string{"/api/core/bundles", "/api/core/bitstreams", "/api/core/workspaceitems", "/api/core/workflowitems"} {
		resp, _ := newTestRequest(is, ts, http.MethodGet, path, "", nil)
		is.Equal(resp.StatusCode, http.StatusUnauthorized)

		resp, _ = newTestRequest(is, ts, http.MethodGet, path, submitterEmail, nil)
		is.Equal(resp.StatusCode, http.StatusForbidden)

		resp, _ = newTestRequest(is, ts, http.MethodGet, path, adminEmail, nil)
		is.Equal(resp.StatusCode, http.StatusOK)
	}
}

func newTestRequest(is *is.I, ts *httptest.Server, method, path, user string, body io.Reader) (*http.Response, string) {
	req, err := http.NewRequest(method, ts.URL+path, body)
	is.NoErr(err)

	if user != "" {
		req.SetBasicAuth(user, password)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err) // http request failed
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	is.NoErr(err) // failed to read response body

	return resp, string(respBody)
}

func setupTest(t *testing.T) (*is.I, *httptest.Server) {
	is := is.New(t)
	ctx := context.Background()

	db, err := database.NewDatabaseConnection(ctx, database.NewSQLiteConnector(""))
	is.NoErr(err)

	assets, err := assetstore.New(t.TempDir())
	is.NoErr(err)

	r := chi.NewRouter()
	ts := httptest.NewServer(r)

	t.Cleanup(func() {
		ts.Close()
		db.Close()
	})

	svc := rest.Services{
		Communities:    content.NewCommunityService(db, "123456789"),
		Collections:    content.NewCollectionService(db, "123456789"),
		Items:          content.NewItemService(db, assets, content.Settings{HandlePrefix: "123456789"}),
		Bundles:        content.NewBundleService(db),
		Bitstreams:     content.NewBitstreamService(db, assets),
		EPersons:       eperson.NewEPersonService(db),
		Groups:         eperson.NewGroupService(db),
		WorkspaceItems: workflow.NewWorkspaceItemService(db),
		WorkflowItems:  workflow.NewWorkflowItemService(db),
	}

	seeder := config.Seeder{
		Communities: svc.Communities,
		Collections: svc.Collections,
		EPersons:    svc.EPersons,
		Groups:      svc.Groups,
	}

	err = seeder.Seed(ctx, config.Seed{
		Administrators: []config.Person{{Email: adminEmail, Password: password}},
		EPersons: []config.Person{
			{Email: submitterEmail, FirstName: "Sam", LastName: "Submitter", Password: password},
			{Email: "outsider@example.org", Password: password},
		},
		Communities: []config.Community{{
			Name: "Research",
			Collections: []config.Collection{{
				Name:       "Papers",
				Rights:     "CC-BY",
				Submitters: []string{submitterEmail},
			}},
		}},
	})
	is.NoErr(err)

	deposits := deposit.New(deposit.Settings{
		SiteName:           "Test Repository",
		BaseURL:            ts.URL,
		MaxUploadSize:      1 << 20,
		Accepts:            []string{"application/zip"},
		Mediation:          true,
		Treatment:          "Stored as a new item.",
		AllowFilenameTitle: true,
	}, deposit.Services{
		Collections:    svc.Collections,
		Items:          svc.Items,
		Bundles:        svc.Bundles,
		Bitstreams:     svc.Bitstreams,
		EPersons:       svc.EPersons,
		Groups:         svc.Groups,
		WorkspaceItems: svc.WorkspaceItems,
	}, nil)

	NewAPI(ctx, r, Settings{BaseURL: ts.URL, SwordEnabled: true}, rest.NewRepositories(ts.URL, svc), deposits)

	return is, ts
}
