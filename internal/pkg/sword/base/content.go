package base

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
)

// ContentElement is an element whose value is its character content, such
// as sword:version or atom:updated.
type ContentElement[T any] struct {
	name  XmlName
	Value T

	raw   string
	valid bool
	codec contentCodec[T]
}

type contentCodec[T any] struct {
	parse  func(string) (T, error)
	format func(T) string
}

type (
	StringElement  = ContentElement[string]
	BooleanElement = ContentElement[bool]
	IntegerElement = ContentElement[int]
	DateElement    = ContentElement[time.Time]
)

var stringCodec = contentCodec[string]{
	parse:  func(s string) (string, error) { return s, nil },
	format: func(s string) string { return s },
}

var booleanCodec = contentCodec[bool]{
	parse: func(s string) (bool, error) {
		switch strings.ToLower(s) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return false, fmt.Errorf("%q is not a boolean value", s)
	},
	format: strconv.FormatBool,
}

var integerCodec = contentCodec[int]{
	parse:  strconv.Atoi,
	format: strconv.Itoa,
}

var dateCodec = contentCodec[time.Time]{
	parse:  ParseDate,
	format: func(t time.Time) string { return t.Format(time.RFC3339) },
}

func NewStringElement(name XmlName, value string) *StringElement {
	return newContentElement(name, value, stringCodec)
}

func NewBooleanElement(name XmlName, value bool) *BooleanElement {
	return newContentElement(name, value, booleanCodec)
}

func NewIntegerElement(name XmlName, value int) *IntegerElement {
	return newContentElement(name, value, integerCodec)
}

func NewDateElement(name XmlName, value time.Time) *DateElement {
	return newContentElement(name, value, dateCodec)
}

// NewDateElementFromString keeps value verbatim. An unparsable value is
// reported by Validate.
func NewDateElementFromString(name XmlName, value string) *DateElement {
	e := &DateElement{name: name, codec: dateCodec}
	e.setRaw(value)
	return e
}

func newContentElement[T any](name XmlName, value T, codec contentCodec[T]) *ContentElement[T] {
	e := &ContentElement[T]{name: name, codec: codec}
	e.Set(value)
	return e
}

// Set replaces the value of the element.
func (e *ContentElement[T]) Set(value T) {
	e.Value = value
	e.raw = e.codec.format(value)
	e.valid = true
}

func (e *ContentElement[T]) setRaw(raw string) {
	e.raw = raw
	value, err := e.codec.parse(raw)
	e.valid = (err == nil)
	if e.valid {
		e.Value = value
	}
}

// Raw is the textual form of the value, as read from or written to XML.
func (e *ContentElement[T]) Raw() string {
	return e.raw
}

// IsValid reports if the textual content could be parsed.
func (e *ContentElement[T]) IsValid() bool {
	return e.valid
}

func (e *ContentElement[T]) XmlName() XmlName {
	return e.name
}

func (e *ContentElement[T]) Marshall() *etree.Element {
	el := NewElement(e.name)
	el.SetText(e.raw)
	return el
}

func (e *ContentElement[T]) Unmarshall(el *etree.Element, props Properties) (*ValidationInfo, error) {
	if !IsInstanceOf(el, e.name) {
		return IncorrectElement(el, e.name, props)
	}

	attributes := UnexpectedAttributes(el)
	e.setRaw(ElementValue(el))

	if props == nil {
		return nil, nil
	}

	return e.validate(attributes), nil
}

func (e *ContentElement[T]) Validate(props Properties) *ValidationInfo {
	return e.validate(nil)
}

func (e *ContentElement[T]) validate(attributes []*ValidationInfo) *ValidationInfo {
	result := NewValidationInfo(e.name)
	result.AddUnmarshallValidationInfo(nil, attributes)

	if e.raw == "" {
		result.Message = MessageMissingContent
		result.SetType(Warning)
	} else if !e.valid {
		result.Message = MessageErrorWithContent
		result.ContentDescription = e.raw
		result.SetType(Error)
	}

	return result
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02Z07:00",
	"2006-01-02",
	"2006-01Z07:00",
	"2006-01",
	"2006Z07:00",
	"2006",
}

// ParseDate accepts the xsd:dateTime variants allowed in atom date
// constructs, from a full timestamp down to a bare year.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a supported date format", value)
}
