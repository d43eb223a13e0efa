package sword

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/diwise/api-repository/internal/pkg/sword/base"
)

// ErrorDocument is returned instead of an entry when a deposit fails.
type ErrorDocument struct {
	*Entry

	ErrorURI string
	// Status is the HTTP status the document was, or will be, sent with.
	Status int
}

func NewErrorDocument(errorURI string, status int) *ErrorDocument {
	return &ErrorDocument{Entry: newEntryNamed(ErrorName), ErrorURI: errorURI, Status: status}
}

func (d *ErrorDocument) Marshall() *etree.Element {
	el := base.NewElement(ErrorName)
	base.DeclareNamespaces(el, base.PrefixSword, base.PrefixAtom)
	base.SetAttribute(el, "href", d.ErrorURI)
	d.Entry.MarshallElements(el)
	return el
}

func (d *ErrorDocument) Unmarshall(el *etree.Element, props base.Properties) (*base.ValidationInfo, error) {
	if !base.IsInstanceOf(el, ErrorName) {
		return base.IncorrectElement(el, ErrorName, props)
	}

	d.ErrorURI, _ = base.AttributeValue(el, "href")

	result, err := d.Entry.UnmarshallWithoutValidate(el, props)
	if err != nil || props == nil {
		return nil, err
	}

	result.AddUnmarshallValidationInfo(nil, base.UnexpectedAttributes(el, "href"))

	return d.validate(result, props), nil
}

func (d *ErrorDocument) Validate(props base.Properties) *base.ValidationInfo {
	return d.validate(nil, props)
}

func (d *ErrorDocument) validate(info *base.ValidationInfo, props base.Properties) *base.ValidationInfo {
	result := d.Entry.validate(info, props)
	href := base.AttributeName("href")

	switch {
	case d.ErrorURI == "":
		result.AddAttributeValidationInfo(base.NewAttributeInfo(ErrorName, href, base.MessageMissingAttributeError, base.Error))
	case strings.HasPrefix(d.ErrorURI, base.ErrorURIPrefix) && !base.IsReservedErrorCode(d.ErrorURI):
		info := base.NewAttributeInfo(ErrorName, href,
			"Errors in the SWORD namespace are reserved and legal values are enumerated in the SWORD 1.3 specification. Implementations MAY define their own errors, but MUST use a different namespace to do so.",
			base.Error)
		info.ContentDescription = d.ErrorURI
		result.AddAttributeValidationInfo(info)
	default:
		result.AddAttributeValidationInfo(base.NewValidAttributeInfo(ErrorName, href))
	}

	return result
}
