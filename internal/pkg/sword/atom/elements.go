package atom

import (
	"github.com/beevik/etree"
	"github.com/diwise/api-repository/internal/pkg/sword/base"
)

type Category struct {
	Term    string
	Scheme  string
	Label   string
	Content string
}

func NewCategory(term string) *Category {
	return &Category{Term: term}
}

func (c *Category) XmlName() base.XmlName {
	return CategoryName
}

func (c *Category) Marshall() *etree.Element {
	el := base.NewElement(CategoryName)
	base.SetAttribute(el, "term", c.Term)
	base.SetAttribute(el, "scheme", c.Scheme)
	base.SetAttribute(el, "label", c.Label)
	if c.Content != "" {
		el.SetText(c.Content)
	}
	return el
}

func (c *Category) Unmarshall(el *etree.Element, props base.Properties) (*base.ValidationInfo, error) {
	if !base.IsInstanceOf(el, CategoryName) {
		return base.IncorrectElement(el, CategoryName, props)
	}

	c.Term, _ = base.AttributeValue(el, "term")
	c.Scheme, _ = base.AttributeValue(el, "scheme")
	c.Label, _ = base.AttributeValue(el, "label")
	c.Content = base.ElementValue(el)

	if props == nil {
		return nil, nil
	}

	result := c.Validate(props)
	result.AddUnmarshallValidationInfo(nil, base.UnexpectedAttributes(el, "term", "scheme", "label", "xml:lang", "xml:base"))
	return result, nil
}

func (c *Category) Validate(props base.Properties) *base.ValidationInfo {
	result := base.NewValidationInfo(CategoryName)
	if c.Term == "" && c.Content == "" {
		result.AddAttributeValidationInfo(base.NewAttributeInfo(CategoryName, base.AttributeName("term"), base.MessageMissingAttributeWarning, base.Warning))
	}
	return result
}

// Content refers to the deposited resource through its src attribute.
type Content struct {
	Source string
	Type   string
}

func NewContent(src, mediaType string) *Content {
	return &Content{Source: src, Type: mediaType}
}

func (c *Content) XmlName() base.XmlName {
	return ContentName
}

func (c *Content) Marshall() *etree.Element {
	el := base.NewElement(ContentName)
	base.SetAttribute(el, "type", c.Type)
	base.SetAttribute(el, "src", c.Source)
	return el
}

func (c *Content) Unmarshall(el *etree.Element, props base.Properties) (*base.ValidationInfo, error) {
	if !base.IsInstanceOf(el, ContentName) {
		return base.IncorrectElement(el, ContentName, props)
	}

	c.Type, _ = base.AttributeValue(el, "type")
	c.Source, _ = base.AttributeValue(el, "src")

	if props == nil {
		return nil, nil
	}

	result := c.Validate(props)
	result.AddUnmarshallValidationInfo(nil, base.UnexpectedAttributes(el, "type", "src", "xml:lang", "xml:base"))
	return result, nil
}

func (c *Content) Validate(props base.Properties) *base.ValidationInfo {
	result := base.NewValidationInfo(ContentName)

	if c.Source == "" {
		result.AddAttributeValidationInfo(base.NewAttributeInfo(ContentName, base.AttributeName("src"), base.MessageMissingAttributeError, base.Error))
	} else {
		result.AddAttributeValidationInfo(base.NewValidAttributeInfo(ContentName, base.AttributeName("src")))
	}

	if c.Type == "" {
		result.AddAttributeValidationInfo(base.NewAttributeInfo(ContentName, base.AttributeName("type"), base.MessageMissingAttributeWarning, base.Warning))
	} else {
		result.AddAttributeValidationInfo(base.NewValidAttributeInfo(ContentName, base.AttributeName("type")))
	}

	return result
}

// Generator identifies the server software that produced an entry.
type Generator struct {
	URI     string
	Version string
	Content string
}

func NewGenerator(uri, version string) *Generator {
	return &Generator{URI: uri, Version: version}
}

func (g *Generator) XmlName() base.XmlName {
	return GeneratorName
}

func (g *Generator) Marshall() *etree.Element {
	el := base.NewElement(GeneratorName)
	base.SetAttribute(el, "uri", g.URI)
	base.SetAttribute(el, "version", g.Version)
	if g.Content != "" {
		el.SetText(g.Content)
	}
	return el
}

func (g *Generator) Unmarshall(el *etree.Element, props base.Properties) (*base.ValidationInfo, error) {
	if !base.IsInstanceOf(el, GeneratorName) {
		return base.IncorrectElement(el, GeneratorName, props)
	}

	g.URI, _ = base.AttributeValue(el, "uri")
	g.Version, _ = base.AttributeValue(el, "version")
	g.Content = base.ElementValue(el)

	if props == nil {
		return nil, nil
	}

	result := g.Validate(props)
	result.AddUnmarshallValidationInfo(nil, base.UnexpectedAttributes(el, "uri", "version", "xml:lang", "xml:base"))
	return result, nil
}

func (g *Generator) Validate(props base.Properties) *base.ValidationInfo {
	result := base.NewValidationInfo(GeneratorName)

	for _, attr := range [][2]string{{"uri", g.URI}, {"version", g.Version}} {
		name, value := attr[0], attr[1]
		if value == "" {
			result.AddAttributeValidationInfo(base.NewAttributeInfo(GeneratorName, base.AttributeName(name), base.MessageMissingAttributeWarning, base.Warning))
		} else {
			result.AddAttributeValidationInfo(base.NewValidAttributeInfo(GeneratorName, base.AttributeName(name)))
		}
	}

	return result
}

type Link struct {
	Href     string
	Rel      string
	Type     string
	HrefLang string
	Title    string
	Length   string
}

func NewLink(href, rel, mediaType string) *Link {
	return &Link{Href: href, Rel: rel, Type: mediaType}
}

func (l *Link) XmlName() base.XmlName {
	return LinkName
}

func (l *Link) attributes() [][2]string {
	return [][2]string{
		{"href", l.Href},
		{"rel", l.Rel},
		{"type", l.Type},
		{"hreflang", l.HrefLang},
		{"title", l.Title},
		{"length", l.Length},
	}
}

func (l *Link) Marshall() *etree.Element {
	el := base.NewElement(LinkName)
	for _, attr := range l.attributes() {
		base.SetAttribute(el, attr[0], attr[1])
	}
	return el
}

func (l *Link) Unmarshall(el *etree.Element, props base.Properties) (*base.ValidationInfo, error) {
	if !base.IsInstanceOf(el, LinkName) {
		return base.IncorrectElement(el, LinkName, props)
	}

	l.Href, _ = base.AttributeValue(el, "href")
	l.Rel, _ = base.AttributeValue(el, "rel")
	l.Type, _ = base.AttributeValue(el, "type")
	l.HrefLang, _ = base.AttributeValue(el, "hreflang")
	l.Title, _ = base.AttributeValue(el, "title")
	l.Length, _ = base.AttributeValue(el, "length")

	if props == nil {
		return nil, nil
	}

	result := l.Validate(props)
	result.AddUnmarshallValidationInfo(nil, base.UnexpectedAttributes(el, "href", "rel", "type", "hreflang", "title", "length", "xml:lang", "xml:base"))
	return result, nil
}

func (l *Link) Validate(props base.Properties) *base.ValidationInfo {
	result := base.NewValidationInfo(LinkName)
	if l.Href == "" {
		result.AddAttributeValidationInfo(base.NewAttributeInfo(LinkName, base.AttributeName("href"), base.MessageMissingAttributeError, base.Error))
	}
	return result
}

// Source is kept for compatibility with older SWORD clients. Only its
// generator child is modelled.
type Source struct {
	Generator *Generator
}

func (s *Source) XmlName() base.XmlName {
	return SourceName
}

func (s *Source) Marshall() *etree.Element {
	el := base.NewElement(SourceName)
	if s.Generator != nil {
		el.AddChild(s.Generator.Marshall())
	}
	return el
}

func (s *Source) Unmarshall(el *etree.Element, props base.Properties) (*base.ValidationInfo, error) {
	if !base.IsInstanceOf(el, SourceName) {
		return base.IncorrectElement(el, SourceName, props)
	}

	result := base.NewValidationInfo(SourceName)
	s.Generator = nil

	for _, child := range el.ChildElements() {
		if base.IsInstanceOf(child, GeneratorName) {
			var err error
			s.Generator, err = base.UnmarshallOnce(s.Generator, s.Generator != nil, &Generator{}, child, result, props)
			if err != nil {
				return nil, err
			}
		} else if props != nil {
			result.AddUnmarshallElementInfo(base.UnknownElement(child))
		}
	}

	if props == nil {
		return nil, nil
	}

	return result, nil
}

func (s *Source) Validate(props base.Properties) *base.ValidationInfo {
	result := base.NewValidationInfo(SourceName)
	if s.Generator != nil {
		result.AddValidationInfo(s.Generator.Validate(props))
	}
	return result
}
