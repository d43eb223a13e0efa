package base

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

var ErrUnmarshall = errors.New("unmarshall failed")

// Element is implemented by every part of the SWORD object model.
//
// Unmarshall replaces the state of the element with the content of el. When
// props is nil no validation is performed and the returned info is nil.
// Validate checks the current state against the SWORD profile.
type Element interface {
	XmlName() XmlName
	Marshall() *etree.Element
	Unmarshall(el *etree.Element, props Properties) (*ValidationInfo, error)
	Validate(props Properties) *ValidationInfo
}

// IncorrectElement handles an element that does not have the expected name.
// Without a validation context this is an error, otherwise the mismatch is
// recorded as an ERROR.
func IncorrectElement(el *etree.Element, expected XmlName, props Properties) (*ValidationInfo, error) {
	if props == nil {
		got := "nil"
		if el != nil {
			got = NameOf(el).QualifiedName()
		}
		return nil, fmt.Errorf("%w: not a %s element (got %s)", ErrUnmarshall, expected.QualifiedName(), got)
	}

	if el == nil {
		return NewElementInfo(expected, "This is not the expected element. Received: nothing", Error), nil
	}

	name := NameOf(el)
	return NewElementInfo(
		name,
		fmt.Sprintf("This is not the expected element. Received: %s for namespaceUri: %s", name.QualifiedName(), name.Namespace),
		Error,
	), nil
}

// DuplicateElement records a repeated singleton child.
func DuplicateElement(el *etree.Element) *ValidationInfo {
	info := NewElementInfo(NameOf(el), MessageDuplicateElement, Warning)
	info.ContentDescription = ElementValue(el)
	return info
}

// UnknownElement records a child that is not part of the SWORD profile.
func UnknownElement(el *etree.Element) *ValidationInfo {
	info := NewElementInfo(NameOf(el), MessageUnknownElement, Info)
	info.ContentDescription = ElementValue(el)
	return info
}

// MissingElement records an absent child with the given severity.
func MissingElement(name XmlName, t ValidationInfoType, detail string) *ValidationInfo {
	message := MessageMissingElementWarning
	if t == Error {
		message = MessageMissingElementError
	}
	if detail != "" {
		message = message + " " + detail
	}
	return NewElementInfo(name, message, t)
}

// UnexpectedAttributes returns an INFO entry for each attribute of el that is
// neither a namespace declaration nor one of known.
func UnexpectedAttributes(el *etree.Element, known ...string) []*ValidationInfo {
	result := []*ValidationInfo{}
	owner := NameOf(el)

	for _, a := range el.Attr {
		if isNamespaceDeclaration(a) {
			continue
		}

		qualified := a.Key
		if a.Space != "" {
			qualified = a.Space + ":" + a.Key
		}

		isKnown := false
		for _, k := range known {
			if k == qualified {
				isKnown = true
				break
			}
		}

		if !isKnown {
			info := NewAttributeInfo(owner, XmlName{Prefix: a.Space, LocalName: a.Key}, MessageUnknownAttribute, Info)
			info.ContentDescription = a.Value
			result = append(result, info)
		}
	}

	return result
}

// AttributeValue returns the value of the attribute key and if it was present.
func AttributeValue(el *etree.Element, key string) (string, bool) {
	a := el.SelectAttr(key)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// SetAttribute creates the attribute key on el unless value is empty.
func SetAttribute(el *etree.Element, key, value string) {
	if value != "" {
		el.CreateAttr(key, value)
	}
}

// UnmarshallChild unmarshalls a repeatable child into e and records the
// outcome in result.
func UnmarshallChild(e Element, child *etree.Element, result *ValidationInfo, props Properties) error {
	info, err := e.Unmarshall(child, props)
	if err != nil {
		return fmt.Errorf("unable to parse %s: %w", NameOf(child).QualifiedName(), err)
	}
	result.AddUnmarshallElementInfo(info)
	return nil
}

// UnmarshallOnce unmarshalls a singleton child into fresh unless the parent
// already holds one (present), in which case the duplicate is reported and
// ignored. It returns the element the parent should keep.
func UnmarshallOnce[E Element](current E, present bool, fresh E, child *etree.Element, result *ValidationInfo, props Properties) (E, error) {
	if present {
		if props != nil {
			result.AddUnmarshallElementInfo(DuplicateElement(child))
		}
		return current, nil
	}

	if err := UnmarshallChild(fresh, child, result, props); err != nil {
		return current, err
	}

	return fresh, nil
}
