package grobid

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"
)

func TestProcessHeader(t *testing.T) {
	is := is.New(t)

	ms := testutils.NewMockServiceThat(
		testutils.Expects(is, expects.AnyInput()),
		testutils.Returns(
			response.Code(http.StatusOK),
			response.ContentType("application/xml"),
			response.Body([]byte(teiResponse)),
		),
	)

	doc, err := New(ms.URL()).ProcessHeader(context.Background(), "paper.pdf", strings.NewReader("%PDF-1.4"))
	is.NoErr(err)
	is.Equal(doc.Metadata().First("dc.title"), "A paper")
}

func TestProcessHeaderNoContent(t *testing.T) {
	is := is.New(t)

	ms := testutils.NewMockServiceThat(
		testutils.Expects(is, expects.AnyInput()),
		testutils.Returns(response.Code(http.StatusNoContent)),
	)

	_, err := New(ms.URL()).ProcessHeader(context.Background(), "empty.pdf", strings.NewReader(""))
	is.True(errors.Is(err, ErrNoContent))
}

func TestProcessHeaderServerError(t *testing.T) {
	is := is.New(t)

	ms := testutils.NewMockServiceThat(
		testutils.Expects(is, expects.AnyInput()),
		testutils.Returns(response.Code(http.StatusInternalServerError)),
	)

	_, err := New(ms.URL()).ProcessHeader(context.Background(), "broken.pdf", strings.NewReader(""))
	is.True(err != nil)
	is.True(!errors.Is(err, ErrNoContent))
}

func TestProcessHeaderPostsMultipartInput(t *testing.T) {
	is := is.New(t)

	var path, filename, consolidate, content string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		consolidate = r.FormValue("consolidateHeader")

		f, h, err := r.FormFile("input")
		if err == nil {
			filename = h.Filename
			b, _ := io.ReadAll(f)
			content = string(b)
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(teiResponse))
	}))
	defer server.Close()

	_, err := New(server.URL+"/").ProcessHeader(context.Background(), "paper.pdf", strings.NewReader("%PDF-1.4"))
	is.NoErr(err)

	is.Equal(path, "/api/processHeaderDocument")
	is.Equal(filename, "paper.pdf")
	is.Equal(consolidate, "1")
	is.Equal(content, "%PDF-1.4")
}

const teiResponse string = `<TEI xmlns="http://www.tei-c.org/ns/1.0">
	<teiHeader>
		<fileDesc><titleStmt><title level="a" type="main">A paper</title></titleStmt></fileDesc>
	</teiHeader>
</TEI>`
