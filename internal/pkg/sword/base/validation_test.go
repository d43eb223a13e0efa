package base

import (
	"strings"
	"testing"

	"github.com/matryer/is"
)

var testElement = NewXmlName(PrefixSword, "test", NamespaceSword)

func TestSeverityIsTheMaximumOfAllDescendants(t *testing.T) {
	is := is.New(t)

	root := NewValidationInfo(testElement)
	is.Equal(root.Type(), Valid) // an empty report should be valid

	child := NewValidationInfo(testElement)
	root.AddValidationInfo(child)
	root.AddUnmarshallElementInfo(NewElementInfo(testElement, MessageUnknownElement, Info))
	is.Equal(root.Type(), Info)

	grandchild := NewElementInfo(testElement, MessageMissingElementError, Error)
	child.AddValidationInfo(grandchild)
	is.Equal(child.Type(), Error) // child escalates to its descendant
	is.Equal(root.Type(), Error)  // and so does the root

	is.Equal(root.OwnType(), Valid) // own severity is left untouched
}

func TestSeverityConsidersAttributeInfo(t *testing.T) {
	is := is.New(t)

	root := NewValidationInfo(testElement)
	root.AddUnmarshallAttributeInfo(NewAttributeInfo(testElement, AttributeName("foo"), MessageUnknownAttribute, Info))
	root.AddAttributeValidationInfo(NewAttributeInfo(testElement, AttributeName("href"), MessageMissingAttributeWarning, Warning))

	is.Equal(root.Type(), Warning)
	is.Equal(len(root.Children()), 2)
}

func TestNilInfoIsIgnored(t *testing.T) {
	is := is.New(t)

	root := NewValidationInfo(testElement)
	root.AddValidationInfo(nil)
	root.AddUnmarshallElementInfo(nil)

	is.Equal(len(root.Children()), 0)
	is.Equal(root.Type(), Valid)
}

func TestFindReturnsNodesOfSeverity(t *testing.T) {
	is := is.New(t)

	root := NewValidationInfo(testElement)
	root.AddValidationInfo(NewElementInfo(testElement, "a", Warning))
	root.AddValidationInfo(NewElementInfo(testElement, "b", Error))
	root.AddValidationInfo(NewElementInfo(testElement, "c", Warning))

	is.Equal(len(root.Find(Warning)), 2)
	is.Equal(len(root.Find(Error)), 1)
}

func TestReportIsIndented(t *testing.T) {
	is := is.New(t)

	root := NewValidationInfo(testElement)
	root.AddValidationInfo(NewElementInfo(testElement, MessageMissingContent, Warning))

	report := root.String()
	lines := strings.Split(strings.TrimSpace(report), "\n")

	is.Equal(len(lines), 2)
	is.True(strings.HasPrefix(lines[0], "WARNING sword:test"))
	is.True(strings.HasPrefix(lines[1], "  WARNING sword:test: No content"))
}
