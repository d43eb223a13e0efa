package base

import (
	"fmt"
	"io"
	"strings"
)

type ValidationInfoType int

const (
	Valid ValidationInfoType = iota
	Info
	Warning
	Error
)

func (t ValidationInfoType) String() string {
	switch t {
	case Valid:
		return "VALID"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	}
	return fmt.Sprintf("ValidationInfoType(%d)", int(t))
}

// Messages used when reporting on SWORD profile conformance.
const (
	MessageUnknownElement          string = "This element is present, but it is not used as part of the SWORD profile"
	MessageUnknownAttribute        string = "This attribute is present, but it is not used as part of the SWORD profile"
	MessageMissingElementWarning   string = "This element is not present, but it SHOULD be included."
	MessageMissingElementError     string = "This element is not present, but at least one MUST be included."
	MessageMissingAttributeWarning string = "This attribute is not present, but it SHOULD be included."
	MessageMissingAttributeError   string = "This attribute is not present, but it MUST be included."
	MessageDuplicateElement        string = "This element has already been included earlier in this document. This element is ignored."
	MessageMissingContent          string = "No content is defined. This element should have content."
	MessageErrorWithContent        string = "There is an error with the value."
)

// Properties is the validation context of an unmarshall operation, usually
// the relevant HTTP headers of the request that produced the document. A nil
// Properties means that no validation is performed.
type Properties map[string]string

func (p Properties) Get(key string) (string, bool) {
	v, ok := p[key]
	return v, ok
}

// ValidationInfo is a node in the validation report of a document. The
// severity of a node is the maximum of its own severity and the severities
// of every descendant.
type ValidationInfo struct {
	Element            XmlName
	Attribute          XmlName
	Message            string
	ContentDescription string

	infoType ValidationInfoType

	elements             []*ValidationInfo
	attributes           []*ValidationInfo
	unmarshallElements   []*ValidationInfo
	unmarshallAttributes []*ValidationInfo
}

func NewValidationInfo(element XmlName) *ValidationInfo {
	return &ValidationInfo{Element: element, infoType: Valid}
}

func NewElementInfo(element XmlName, message string, t ValidationInfoType) *ValidationInfo {
	return &ValidationInfo{Element: element, Message: message, infoType: t}
}

func NewAttributeInfo(element, attribute XmlName, message string, t ValidationInfoType) *ValidationInfo {
	return &ValidationInfo{Element: element, Attribute: attribute, Message: message, infoType: t}
}

// NewValidAttributeInfo records that attribute was present and valid.
func NewValidAttributeInfo(element, attribute XmlName) *ValidationInfo {
	return &ValidationInfo{Element: element, Attribute: attribute, infoType: Valid}
}

func (v *ValidationInfo) AddValidationInfo(info *ValidationInfo) {
	if info != nil {
		v.elements = append(v.elements, info)
	}
}

func (v *ValidationInfo) AddAttributeValidationInfo(info *ValidationInfo) {
	if info != nil {
		v.attributes = append(v.attributes, info)
	}
}

func (v *ValidationInfo) AddUnmarshallElementInfo(info *ValidationInfo) {
	if info != nil {
		v.unmarshallElements = append(v.unmarshallElements, info)
	}
}

func (v *ValidationInfo) AddUnmarshallAttributeInfo(info *ValidationInfo) {
	if info != nil {
		v.unmarshallAttributes = append(v.unmarshallAttributes, info)
	}
}

// AddUnmarshallValidationInfo merges the results of unmarshalling the
// children and attributes of the element into this node.
func (v *ValidationInfo) AddUnmarshallValidationInfo(elements, attributes []*ValidationInfo) {
	for _, e := range elements {
		v.AddUnmarshallElementInfo(e)
	}
	for _, a := range attributes {
		v.AddUnmarshallAttributeInfo(a)
	}
}

// SetType sets the severity of this node, not including its descendants.
func (v *ValidationInfo) SetType(t ValidationInfoType) {
	v.infoType = t
}

// OwnType is the severity recorded for this node alone.
func (v *ValidationInfo) OwnType() ValidationInfoType {
	return v.infoType
}

// Type is the highest severity found in this node and all of its descendants.
func (v *ValidationInfo) Type() ValidationInfoType {
	if v == nil {
		return Valid
	}

	result := v.infoType
	for _, group := range v.children() {
		for _, child := range group {
			if t := child.Type(); t > result {
				result = t
			}
		}
	}

	return result
}

func (v *ValidationInfo) Children() []*ValidationInfo {
	all := []*ValidationInfo{}
	for _, group := range v.children() {
		all = append(all, group...)
	}
	return all
}

func (v *ValidationInfo) children() [][]*ValidationInfo {
	return [][]*ValidationInfo{v.unmarshallAttributes, v.attributes, v.unmarshallElements, v.elements}
}

// Find returns every node in the tree, including v, with the given severity.
func (v *ValidationInfo) Find(t ValidationInfoType) []*ValidationInfo {
	found := []*ValidationInfo{}
	if v == nil {
		return found
	}
	if v.infoType == t {
		found = append(found, v)
	}
	for _, child := range v.Children() {
		found = append(found, child.Find(t)...)
	}
	return found
}

func (v *ValidationInfo) String() string {
	b := &strings.Builder{}
	v.Report(b)
	return b.String()
}

// Report writes an indented, human readable rendition of the tree to w.
func (v *ValidationInfo) Report(w io.Writer) {
	v.report(w, 0)
}

func (v *ValidationInfo) report(w io.Writer, depth int) {
	if v == nil {
		return
	}

	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s %s", indent, v.Type(), v.Element.QualifiedName())
	if !v.Attribute.IsZero() {
		fmt.Fprintf(w, " @%s", v.Attribute.QualifiedName())
	}
	if v.Message != "" {
		fmt.Fprintf(w, ": %s", v.Message)
	}
	if v.ContentDescription != "" {
		fmt.Fprintf(w, " [%s]", v.ContentDescription)
	}
	fmt.Fprintln(w)

	for _, child := range v.Children() {
		child.report(w, depth+1)
	}
}
