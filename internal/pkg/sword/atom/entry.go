package atom

import (
	"github.com/beevik/etree"
	"github.com/diwise/api-repository/internal/pkg/sword/base"
)

// Extension lets documents that build on atom:entry, such as the SWORD
// deposit response, handle child elements that atom does not define.
type Extension struct {
	// Child is called for every child that is not an atom entry element. It
	// reports false if the child is unknown to the extension as well.
	Child func(child *etree.Element, result *base.ValidationInfo, props base.Properties) (bool, error)
}

type Entry struct {
	name base.XmlName

	ID        *base.StringElement
	Title     *TextConstruct
	Updated   *base.DateElement
	Published *base.DateElement
	Content   *Content
	Generator *Generator
	Rights    *TextConstruct
	Summary   *TextConstruct
	Source    *Source

	Authors      []*Person
	Contributors []*Person
	Categories   []*Category
	Links        []*Link
}

func NewEntry() *Entry {
	return NewEntryNamed(EntryName)
}

// NewEntryNamed creates an entry with a different root element.
func NewEntryNamed(name base.XmlName) *Entry {
	return &Entry{name: name}
}

func (e *Entry) XmlName() base.XmlName {
	return e.name
}

func (e *Entry) reset() {
	*e = Entry{name: e.name}
}

func (e *Entry) Marshall() *etree.Element {
	el := base.NewElement(e.name)
	base.DeclareNamespaces(el, base.PrefixSword, base.PrefixAtom)
	e.MarshallElements(el)
	return el
}

// MarshallElements appends the atom children of the entry to el.
func (e *Entry) MarshallElements(el *etree.Element) {
	if e.ID != nil {
		el.AddChild(e.ID.Marshall())
	}
	for _, a := range e.Authors {
		el.AddChild(a.Marshall())
	}
	if e.Content != nil {
		el.AddChild(e.Content.Marshall())
	}
	if e.Generator != nil {
		el.AddChild(e.Generator.Marshall())
	}
	for _, c := range e.Contributors {
		el.AddChild(c.Marshall())
	}
	for _, l := range e.Links {
		el.AddChild(l.Marshall())
	}
	if e.Published != nil {
		el.AddChild(e.Published.Marshall())
	}
	if e.Rights != nil {
		el.AddChild(e.Rights.Marshall())
	}
	if e.Summary != nil {
		el.AddChild(e.Summary.Marshall())
	}
	if e.Title != nil {
		el.AddChild(e.Title.Marshall())
	}
	if e.Source != nil {
		el.AddChild(e.Source.Marshall())
	}
	if e.Updated != nil {
		el.AddChild(e.Updated.Marshall())
	}
	for _, c := range e.Categories {
		el.AddChild(c.Marshall())
	}
}

func (e *Entry) Unmarshall(el *etree.Element, props base.Properties) (*base.ValidationInfo, error) {
	if !base.IsInstanceOf(el, e.name) {
		return base.IncorrectElement(el, e.name, props)
	}

	result, err := e.UnmarshallWithoutValidate(el, props, Extension{})
	if err != nil || props == nil {
		return nil, err
	}

	return e.ValidateWith(result, props), nil
}

// UnmarshallWithoutValidate reads the children of el into the entry, passing
// anything that is not atom to ext. The returned info only holds the
// outcome of unmarshalling and is nil when props is nil.
func (e *Entry) UnmarshallWithoutValidate(el *etree.Element, props base.Properties, ext Extension) (*base.ValidationInfo, error) {
	if !base.IsInstanceOf(el, e.name) {
		return base.IncorrectElement(el, e.name, props)
	}

	e.reset()
	result := base.NewValidationInfo(e.name)

	for _, child := range el.ChildElements() {
		var err error

		switch {
		case base.IsInstanceOf(child, AuthorName):
			author := NewAuthor("", "", "")
			err = base.UnmarshallChild(author, child, result, props)
			e.Authors = append(e.Authors, author)
		case base.IsInstanceOf(child, ContributorName):
			contributor := NewContributor("", "", "")
			err = base.UnmarshallChild(contributor, child, result, props)
			e.Contributors = append(e.Contributors, contributor)
		case base.IsInstanceOf(child, CategoryName):
			category := &Category{}
			err = base.UnmarshallChild(category, child, result, props)
			e.Categories = append(e.Categories, category)
		case base.IsInstanceOf(child, LinkName):
			link := &Link{}
			err = base.UnmarshallChild(link, child, result, props)
			e.Links = append(e.Links, link)
		case base.IsInstanceOf(child, ContentName):
			e.Content, err = base.UnmarshallOnce(e.Content, e.Content != nil, &Content{}, child, result, props)
		case base.IsInstanceOf(child, GeneratorName):
			e.Generator, err = base.UnmarshallOnce(e.Generator, e.Generator != nil, &Generator{}, child, result, props)
		case base.IsInstanceOf(child, IDName):
			e.ID, err = base.UnmarshallOnce(e.ID, e.ID != nil, NewID(""), child, result, props)
		case base.IsInstanceOf(child, PublishedName):
			e.Published, err = base.UnmarshallOnce(e.Published, e.Published != nil, NewPublished(""), child, result, props)
		case base.IsInstanceOf(child, RightsName):
			e.Rights, err = base.UnmarshallOnce(e.Rights, e.Rights != nil, NewRights(""), child, result, props)
		case base.IsInstanceOf(child, SummaryName):
			e.Summary, err = base.UnmarshallOnce(e.Summary, e.Summary != nil, NewSummary(""), child, result, props)
		case base.IsInstanceOf(child, TitleName):
			e.Title, err = base.UnmarshallOnce(e.Title, e.Title != nil, NewTitle(""), child, result, props)
		case base.IsInstanceOf(child, UpdatedName):
			e.Updated, err = base.UnmarshallOnce(e.Updated, e.Updated != nil, NewUpdated(""), child, result, props)
		case base.IsInstanceOf(child, SourceName):
			e.Source, err = base.UnmarshallOnce(e.Source, e.Source != nil, &Source{}, child, result, props)
		default:
			handled := false
			if ext.Child != nil {
				handled, err = ext.Child(child, result, props)
			}
			if !handled && props != nil {
				result.AddUnmarshallElementInfo(base.UnknownElement(child))
			}
		}

		if err != nil {
			return nil, err
		}
	}

	if props == nil {
		return nil, nil
	}

	return result, nil
}

func (e *Entry) Validate(props base.Properties) *base.ValidationInfo {
	return e.ValidateWith(nil, props)
}

// ValidateWith adds the entry level rules to info. A nil info requests a
// full validation that also descends into every child, otherwise the
// children are assumed to have been validated while unmarshalling.
func (e *Entry) ValidateWith(info *base.ValidationInfo, props base.Properties) *base.ValidationInfo {
	validateAll := info == nil

	result := info
	if result == nil {
		result = base.NewValidationInfo(e.name)
	}

	required := []struct {
		name    base.XmlName
		present bool
		element base.Element
	}{
		{IDName, e.ID != nil, e.ID},
		{TitleName, e.Title != nil, e.Title},
		{UpdatedName, e.Updated != nil, e.Updated},
	}

	for _, r := range required {
		if !r.present {
			result.AddValidationInfo(base.MissingElement(r.name, base.Error, ""))
		} else if validateAll {
			result.AddValidationInfo(r.element.Validate(props))
		}
	}

	if len(e.Contributors) == 0 {
		if _, ok := props.Get(base.HeaderOnBehalfOf); ok {
			result.AddValidationInfo(base.MissingElement(ContributorName, base.Error,
				"This item SHOULD contain the value of the X-On-Behalf-Of header, if one was present in the POST request."))
		}
	} else if validateAll {
		for _, c := range e.Contributors {
			result.AddValidationInfo(c.Validate(props))
		}
	}

	if e.Generator == nil {
		result.AddValidationInfo(base.MissingElement(GeneratorName, base.Error,
			"SHOULD contain the URI and version of the server software."))
	} else if validateAll {
		result.AddValidationInfo(e.Generator.Validate(props))
	}

	if !validateAll {
		return result
	}

	for _, l := range e.Links {
		result.AddValidationInfo(l.Validate(props))
	}
	for _, a := range e.Authors {
		result.AddValidationInfo(a.Validate(props))
	}
	if e.Content != nil {
		result.AddValidationInfo(e.Content.Validate(props))
	}
	if e.Published != nil {
		result.AddValidationInfo(e.Published.Validate(props))
	}
	if e.Rights != nil {
		result.AddValidationInfo(e.Rights.Validate(props))
	}
	if e.Summary != nil {
		result.AddValidationInfo(e.Summary.Validate(props))
	}
	for _, c := range e.Categories {
		result.AddValidationInfo(c.Validate(props))
	}

	return result
}
