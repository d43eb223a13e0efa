package atom

import (
	"github.com/diwise/api-repository/internal/pkg/sword/base"
)

func atomName(localName string) base.XmlName {
	return base.NewXmlName(base.PrefixAtom, localName, base.NamespaceAtom)
}

var (
	EntryName       = atomName("entry")
	AuthorName      = atomName("author")
	ContributorName = atomName("contributor")
	CategoryName    = atomName("category")
	ContentName     = atomName("content")
	GeneratorName   = atomName("generator")
	IDName          = atomName("id")
	LinkName        = atomName("link")
	PublishedName   = atomName("published")
	RightsName      = atomName("rights")
	SourceName      = atomName("source")
	SummaryName     = atomName("summary")
	TitleName       = atomName("title")
	UpdatedName     = atomName("updated")

	PersonNameName = atomName("name")
	URIName        = atomName("uri")
	EmailName      = atomName("email")
)

func NewID(id string) *base.StringElement {
	return base.NewStringElement(IDName, id)
}

func NewUpdated(value string) *base.DateElement {
	return base.NewDateElementFromString(UpdatedName, value)
}

func NewPublished(value string) *base.DateElement {
	return base.NewDateElementFromString(PublishedName, value)
}
