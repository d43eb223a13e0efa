package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diwise/api-repository/internal/pkg/sword"
	"github.com/diwise/api-repository/internal/pkg/sword/atom"
	"github.com/diwise/api-repository/internal/pkg/sword/base"
	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"
)

func TestGetServiceDocument(t *testing.T) {
	is := is.New(t)

	ms := testutils.NewMockServiceThat(
		testutils.Expects(is, expects.AnyInput()),
		testutils.Returns(
			response.Code(http.StatusOK),
			response.ContentType("application/atomsvc+xml"),
			response.Body([]byte(serviceDocumentXML)),
		),
	)

	doc, status, err := New("admin@example.com", "secret").GetServiceDocument(context.Background(), ms.URL()+"/sword/servicedocument", "")
	is.NoErr(err)
	is.Equal(status.Code, http.StatusOK)
	is.Equal(doc.Service.Version.Value, "1.3")
	is.Equal(len(doc.Service.Workspaces[0].Collections), 1)
}

func TestGetServiceDocumentUnauthorized(t *testing.T) {
	is := is.New(t)

	ms := testutils.NewMockServiceThat(
		testutils.Expects(is, expects.AnyInput()),
		testutils.Returns(response.Code(http.StatusUnauthorized)),
	)

	_, status, err := New("admin@example.com", "wrong").GetServiceDocument(context.Background(), ms.URL(), "")
	is.True(errors.Is(err, ErrUnexpectedResponse))
	is.Equal(status.Code, http.StatusUnauthorized)
}

func TestPostFileSendsSwordHeaders(t *testing.T) {
	is := is.New(t)

	var received *http.Request
	var body []byte

	entry := sword.NewEntry()
	entry.ID = atom.NewID("http://localhost/sword/atom/1")
	entry.Treatment = sword.NewTreatment("stored")
	xml, err := sword.NewDepositResponse(http.StatusCreated, entry).Marshall()
	is.NoErr(err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r
		body, _ = io.ReadAll(r.Body)
		w.Header().Set("Location", "http://localhost/sword/atom/1")
		w.Header().Set("Content-Type", "application/atom+xml")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(xml))
	}))
	defer server.Close()

	data := []byte("%PDF-1.4 not really a pdf")

	resp, status, err := New("admin@example.com", "secret").PostFile(context.Background(), PostMessage{
		Destination: server.URL + "/sword/deposit/123456789/2",
		Filename:    "thesis.pdf",
		ContentType: "application/pdf",
		Data:        data,
		OnBehalfOf:  "student@example.com",
		NoOp:        true,
		Verbose:     true,
		UseMD5:      true,
	})
	is.NoErr(err)

	is.Equal(status.Code, http.StatusCreated)
	is.Equal(resp.Location, "http://localhost/sword/atom/1")
	is.Equal(resp.Entry.Treatment.Value, "stored")

	is.Equal(received.Header.Get(base.HeaderContentType), "application/pdf")
	is.Equal(received.Header.Get(base.HeaderContentDisposition), `filename="thesis.pdf"`)
	is.Equal(received.Header.Get(base.HeaderContentMD5), MD5Hex(data))
	is.Equal(received.Header.Get(base.HeaderOnBehalfOf), "student@example.com")
	is.Equal(received.Header.Get(base.HeaderNoOp), "true")
	is.Equal(received.Header.Get(base.HeaderVerbose), "true")
	is.Equal(received.Header.Get(base.HeaderUserAgent), DefaultUserAgent)
	is.Equal(received.Header.Get(base.HeaderPackaging), "")

	user, password, ok := received.BasicAuth()
	is.True(ok)
	is.Equal(user, "admin@example.com")
	is.Equal(password, "secret")
	is.Equal(body, data)
}

func TestPostFileWithCorruptChecksum(t *testing.T) {
	is := is.New(t)

	doc := sword.NewErrorDocument(base.ErrorChecksumMismatch, http.StatusPreconditionFailed)
	doc.Summary = atom.NewSummary("checksum mismatch")
	xml, err := sword.NewErrorResponse(doc).Marshall()
	is.NoErr(err)

	var checksum string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		checksum = r.Header.Get(base.HeaderContentMD5)
		w.WriteHeader(http.StatusPreconditionFailed)
		w.Write([]byte(xml))
	}))
	defer server.Close()

	data := []byte("some content")

	resp, status, err := New("", "").PostFile(context.Background(), PostMessage{
		Destination: server.URL,
		Filename:    "content.txt",
		ContentType: "text/plain",
		Data:        data,
		CorruptMD5:  true,
	})
	is.NoErr(err)

	is.Equal(status.Code, http.StatusPreconditionFailed)
	is.True(checksum != "")
	is.True(checksum != MD5Hex(data))
	is.True(resp.IsError())
	is.Equal(resp.Error.ErrorURI, base.ErrorChecksumMismatch)
	is.Equal(resp.Error.Status, http.StatusPreconditionFailed)
}

const serviceDocumentXML string = `<?xml version="1.0" encoding="UTF-8"?>
<app:service xmlns:app="http://www.w3.org/2007/app" xmlns:atom="http://www.w3.org/2005/Atom" xmlns:sword="http://purl.org/net/sword/">
  <sword:version>1.3</sword:version>
  <sword:verbose>true</sword:verbose>
  <sword:noOp>true</sword:noOp>
  <app:workspace>
    <atom:title type="text">Test Repository</atom:title>
    <app:collection href="http://localhost/sword/deposit/123456789/2">
      <atom:title type="text">Theses</atom:title>
      <app:accept>application/pdf</app:accept>
    </app:collection>
  </app:workspace>
</app:service>`
