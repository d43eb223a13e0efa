package atom

import (
	"github.com/beevik/etree"
	"github.com/diwise/api-repository/internal/pkg/sword/base"
)

type ContentType string

const (
	TextType  ContentType = "text"
	HTMLType  ContentType = "html"
	XHTMLType ContentType = "xhtml"
)

func (t ContentType) isValid() bool {
	return t == TextType || t == HTMLType || t == XHTMLType
}

// TextConstruct is the atom text construct used by title, summary and rights.
type TextConstruct struct {
	name    base.XmlName
	Content string
	Type    ContentType
}

func NewTitle(content string) *TextConstruct {
	return newTextConstruct(TitleName, content)
}

func NewSummary(content string) *TextConstruct {
	return newTextConstruct(SummaryName, content)
}

func NewRights(content string) *TextConstruct {
	return newTextConstruct(RightsName, content)
}

func newTextConstruct(name base.XmlName, content string) *TextConstruct {
	return &TextConstruct{name: name, Content: content, Type: TextType}
}

func (t *TextConstruct) XmlName() base.XmlName {
	return t.name
}

func (t *TextConstruct) Marshall() *etree.Element {
	el := base.NewElement(t.name)
	base.SetAttribute(el, "type", string(t.Type))
	el.SetText(t.Content)
	return el
}

func (t *TextConstruct) Unmarshall(el *etree.Element, props base.Properties) (*base.ValidationInfo, error) {
	if !base.IsInstanceOf(el, t.name) {
		return base.IncorrectElement(el, t.name, props)
	}

	attributes := base.UnexpectedAttributes(el, "type", "xml:lang", "xml:base")

	t.Type = ""
	if value, ok := base.AttributeValue(el, "type"); ok {
		t.Type = ContentType(value)
		attributes = append(attributes, t.validateType())
	}

	t.Content = base.ElementValue(el)

	if props == nil {
		return nil, nil
	}

	return t.validate(attributes), nil
}

func (t *TextConstruct) Validate(props base.Properties) *base.ValidationInfo {
	attributes := []*base.ValidationInfo{}
	if t.Type != "" {
		attributes = append(attributes, t.validateType())
	}
	return t.validate(attributes)
}

func (t *TextConstruct) validateType() *base.ValidationInfo {
	typeAttr := base.AttributeName("type")
	if !t.Type.isValid() {
		info := base.NewAttributeInfo(t.name, typeAttr, "Type must be one of text, html or xhtml.", base.Error)
		info.ContentDescription = string(t.Type)
		return info
	}
	return base.NewValidAttributeInfo(t.name, typeAttr)
}

func (t *TextConstruct) validate(attributes []*base.ValidationInfo) *base.ValidationInfo {
	result := base.NewValidationInfo(t.name)
	result.AddUnmarshallValidationInfo(nil, attributes)

	if t.Content == "" {
		result.Message = base.MessageMissingContent
		result.SetType(base.Warning)
	}

	return result
}
