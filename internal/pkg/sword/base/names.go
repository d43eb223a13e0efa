package base

import (
	"strings"

	"github.com/beevik/etree"
)

const (
	PrefixAtom    string = "atom"
	PrefixApp     string = "app"
	PrefixSword   string = "sword"
	PrefixDCTerms string = "dcterms"

	NamespaceAtom    string = "http://www.w3.org/2005/Atom"
	NamespaceApp     string = "http://www.w3.org/2007/app"
	NamespaceSword   string = "http://purl.org/net/sword/"
	NamespaceDCTerms string = "http://purl.org/dc/terms/"
)

// wellKnownNamespaces resolves prefixes of detached elements, i.e. elements
// that have been marshalled on their own without namespace declarations.
var wellKnownNamespaces = map[string]string{
	PrefixAtom:    NamespaceAtom,
	PrefixApp:     NamespaceApp,
	PrefixSword:   NamespaceSword,
	PrefixDCTerms: NamespaceDCTerms,
}

// XmlName is the prefix, local name and namespace of an element or attribute.
type XmlName struct {
	Prefix    string
	LocalName string
	Namespace string
}

func NewXmlName(prefix, localName, namespace string) XmlName {
	return XmlName{Prefix: prefix, LocalName: localName, Namespace: namespace}
}

// AttributeName returns the name of an unqualified attribute.
func AttributeName(localName string) XmlName {
	return XmlName{LocalName: localName}
}

func (n XmlName) QualifiedName() string {
	if n.Prefix == "" {
		return n.LocalName
	}
	return n.Prefix + ":" + n.LocalName
}

func (n XmlName) IsZero() bool {
	return n.LocalName == ""
}

// Equal compares namespace and local name. Prefixes are not significant.
func (n XmlName) Equal(other XmlName) bool {
	return n.LocalName == other.LocalName && n.Namespace == other.Namespace
}

func (n XmlName) String() string {
	if n.Namespace == "" {
		return n.QualifiedName()
	}
	return "{" + n.Namespace + "}" + n.QualifiedName()
}

// NameOf resolves the qualified name of el by walking the namespace
// declarations in scope.
func NameOf(el *etree.Element) XmlName {
	if el == nil {
		return XmlName{}
	}
	return XmlName{
		Prefix:    el.Space,
		LocalName: el.Tag,
		Namespace: NamespaceOf(el),
	}
}

func NamespaceOf(el *etree.Element) string {
	for p := el; p != nil; p = p.Parent() {
		for _, a := range p.Attr {
			if el.Space == "" && a.Space == "" && a.Key == "xmlns" {
				return a.Value
			}
			if el.Space != "" && a.Space == "xmlns" && a.Key == el.Space {
				return a.Value
			}
		}
	}

	return wellKnownNamespaces[el.Space]
}

// IsInstanceOf reports if el has the given namespace and local name.
func IsInstanceOf(el *etree.Element, name XmlName) bool {
	return el != nil && NameOf(el).Equal(name)
}

// NewElement creates a detached element for name.
func NewElement(name XmlName) *etree.Element {
	return etree.NewElement(name.QualifiedName())
}

// DeclareNamespaces adds xmlns declarations for the given prefixes to el.
func DeclareNamespaces(el *etree.Element, prefixes ...string) {
	for _, prefix := range prefixes {
		ns, ok := wellKnownNamespaces[prefix]
		if !ok {
			continue
		}
		if el.SelectAttr("xmlns:"+prefix) == nil {
			el.CreateAttr("xmlns:"+prefix, ns)
		}
	}
}

func isNamespaceDeclaration(a etree.Attr) bool {
	return a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns")
}

// ElementValue returns the trimmed character content of el.
func ElementValue(el *etree.Element) string {
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}
