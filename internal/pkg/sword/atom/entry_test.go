package atom

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/diwise/api-repository/internal/pkg/sword/base"
	"github.com/matryer/is"
)

func TestEntryRoundTrip(t *testing.T) {
	is := is.New(t)

	entry := newTestEntry()

	parsed := NewEntry()
	info, err := parsed.Unmarshall(toDocumentRoot(t, entry.Marshall()), base.Properties{})
	is.NoErr(err)
	is.Equal(info.Type(), base.Valid)

	is.Equal(parsed.ID.Value, "info:entry/1")
	is.Equal(parsed.Title.Content, "A title")
	is.Equal(parsed.Title.Type, TextType)
	is.Equal(parsed.Updated.Raw(), "2008-01-01T10:11:12Z")
	is.Equal(len(parsed.Authors), 1)
	is.Equal(parsed.Authors[0].Name, "Ada Lovelace")
	is.Equal(parsed.Authors[0].Email, "ada@example.com")
	is.Equal(len(parsed.Contributors), 1)
	is.Equal(parsed.Content.Source, "http://localhost/bitstreams/1")
	is.Equal(parsed.Content.Type, "application/pdf")
	is.Equal(parsed.Generator.URI, "http://localhost/sword")
	is.Equal(len(parsed.Links), 1)
	is.Equal(parsed.Links[0].Rel, "edit-media")
	is.Equal(len(parsed.Categories), 1)
	is.Equal(parsed.Categories[0].Term, "thesis")
	is.Equal(parsed.Summary.Content, "A summary")
}

func TestEntryWithoutRequiredElements(t *testing.T) {
	is := is.New(t)

	info := NewEntry().Validate(base.Properties{})
	is.Equal(info.Type(), base.Error)

	missing := map[string]bool{}
	for _, i := range info.Find(base.Error) {
		missing[i.Element.LocalName] = true
	}

	is.True(missing["id"])
	is.True(missing["title"])
	is.True(missing["updated"])
	is.True(missing["generator"])
	is.True(!missing["contributor"]) // only required when depositing on behalf of someone
}

func TestEntryRequiresContributorWhenOnBehalfOf(t *testing.T) {
	is := is.New(t)

	entry := newTestEntry()
	entry.Contributors = nil

	is.Equal(entry.Validate(base.Properties{}).Type(), base.Valid)

	info := entry.Validate(base.Properties{base.HeaderOnBehalfOf: "someone"})
	is.Equal(info.Type(), base.Error)
	is.Equal(info.Find(base.Error)[0].Element.LocalName, "contributor")
}

func TestDuplicateAndUnknownChildren(t *testing.T) {
	is := is.New(t)

	el := newTestEntry().Marshall()
	el.AddChild(NewTitle("Another title").Marshall())
	el.CreateElement("foo:bar").SetText("baz")

	entry := NewEntry()
	info, err := entry.Unmarshall(toDocumentRoot(t, el), base.Properties{})
	is.NoErr(err)

	is.Equal(entry.Title.Content, "A title") // the first title wins
	is.Equal(info.Type(), base.Warning)
	is.Equal(len(info.Find(base.Warning)), 1)
	is.Equal(len(info.Find(base.Info)), 1)
}

func TestUnmarshallWithoutValidation(t *testing.T) {
	is := is.New(t)

	entry := NewEntry()
	info, err := entry.Unmarshall(toDocumentRoot(t, NewEntry().Marshall()), nil)

	is.NoErr(err)
	is.True(info == nil)
}

func TestUnmarshallWrongRootElement(t *testing.T) {
	is := is.New(t)

	_, err := NewEntry().Unmarshall(NewTitle("x").Marshall(), nil)
	is.True(err != nil)

	info, err := NewEntry().Unmarshall(NewTitle("x").Marshall(), base.Properties{})
	is.NoErr(err)
	is.Equal(info.Type(), base.Error)
}

func TestExtensionReceivesForeignChildren(t *testing.T) {
	is := is.New(t)

	el := newTestEntry().Marshall()
	el.CreateElement("sword:treatment").SetText("stored")

	seen := []string{}
	ext := Extension{
		Child: func(child *etree.Element, result *base.ValidationInfo, props base.Properties) (bool, error) {
			seen = append(seen, child.Tag)
			return true, nil
		},
	}

	info, err := NewEntry().UnmarshallWithoutValidate(toDocumentRoot(t, el), base.Properties{}, ext)
	is.NoErr(err)
	is.Equal(seen, []string{"treatment"})
	is.Equal(len(info.Find(base.Info)), 0)
}

func TestTextConstructWithInvalidType(t *testing.T) {
	is := is.New(t)

	el := NewTitle("x").Marshall()
	el.SelectAttr("type").Value = "markdown"

	title := NewTitle("")
	info, err := title.Unmarshall(el, base.Properties{})
	is.NoErr(err)
	is.Equal(info.Type(), base.Error)
}

func TestPersonWithoutName(t *testing.T) {
	is := is.New(t)

	info := NewAuthor("", "http://example.com", "").Validate(base.Properties{})
	is.Equal(info.Type(), base.Error)
}

func TestLinkAndContentRules(t *testing.T) {
	is := is.New(t)

	is.Equal((&Link{Rel: "alternate"}).Validate(base.Properties{}).Type(), base.Error)
	is.Equal(NewContent("http://localhost/x", "").Validate(base.Properties{}).Type(), base.Warning)
	is.Equal(NewContent("", "text/plain").Validate(base.Properties{}).Type(), base.Error)
	is.Equal(NewGenerator("http://localhost", "").Validate(base.Properties{}).Type(), base.Warning)
}

func newTestEntry() *Entry {
	entry := NewEntry()
	entry.ID = NewID("info:entry/1")
	entry.Title = NewTitle("A title")
	entry.Updated = NewUpdated("2008-01-01T10:11:12Z")
	entry.Summary = NewSummary("A summary")
	entry.Authors = []*Person{NewAuthor("Ada Lovelace", "", "ada@example.com")}
	entry.Contributors = []*Person{NewContributor("Charles Babbage", "", "")}
	entry.Content = NewContent("http://localhost/bitstreams/1", "application/pdf")
	entry.Generator = NewGenerator("http://localhost/sword", "1.3")
	entry.Links = []*Link{NewLink("http://localhost/bitstreams/1", "edit-media", "application/pdf")}
	entry.Categories = []*Category{NewCategory("thesis")}
	return entry
}

// toDocumentRoot serializes el and parses it again so that namespace
// declarations are resolved the way they are for a received document.
func toDocumentRoot(t *testing.T, el *etree.Element) *etree.Element {
	doc := etree.NewDocument()
	doc.SetRoot(el)

	s, err := doc.WriteToString()
	if err != nil {
		t.Fatalf("failed to serialize: %s", err.Error())
	}

	parsed := etree.NewDocument()
	if err := parsed.ReadFromString(s); err != nil {
		t.Fatalf("failed to parse: %s", err.Error())
	}

	return parsed.Root()
}
