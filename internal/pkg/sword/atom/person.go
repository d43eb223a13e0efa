package atom

import (
	"github.com/beevik/etree"
	"github.com/diwise/api-repository/internal/pkg/sword/base"
)

// Person is an atom person construct, either an author or a contributor.
type Person struct {
	name  base.XmlName
	Name  string
	URI   string
	Email string
}

func NewAuthor(name, uri, email string) *Person {
	return &Person{name: AuthorName, Name: name, URI: uri, Email: email}
}

func NewContributor(name, uri, email string) *Person {
	return &Person{name: ContributorName, Name: name, URI: uri, Email: email}
}

func (p *Person) XmlName() base.XmlName {
	return p.name
}

func (p *Person) Marshall() *etree.Element {
	el := base.NewElement(p.name)

	if p.Name != "" {
		el.AddChild(base.NewStringElement(PersonNameName, p.Name).Marshall())
	}
	if p.URI != "" {
		el.AddChild(base.NewStringElement(URIName, p.URI).Marshall())
	}
	if p.Email != "" {
		el.AddChild(base.NewStringElement(EmailName, p.Email).Marshall())
	}

	return el
}

func (p *Person) Unmarshall(el *etree.Element, props base.Properties) (*base.ValidationInfo, error) {
	if !base.IsInstanceOf(el, p.name) {
		return base.IncorrectElement(el, p.name, props)
	}

	result := base.NewValidationInfo(p.name)
	result.AddUnmarshallValidationInfo(nil, base.UnexpectedAttributes(el, "xml:lang", "xml:base"))

	var name, uri, email *base.StringElement

	for _, child := range el.ChildElements() {
		var err error

		switch {
		case base.IsInstanceOf(child, PersonNameName):
			name, err = base.UnmarshallOnce(name, name != nil, base.NewStringElement(PersonNameName, ""), child, result, props)
		case base.IsInstanceOf(child, URIName):
			uri, err = base.UnmarshallOnce(uri, uri != nil, base.NewStringElement(URIName, ""), child, result, props)
		case base.IsInstanceOf(child, EmailName):
			email, err = base.UnmarshallOnce(email, email != nil, base.NewStringElement(EmailName, ""), child, result, props)
		default:
			if props != nil {
				result.AddUnmarshallElementInfo(base.UnknownElement(child))
			}
		}

		if err != nil {
			return nil, err
		}
	}

	p.Name, p.URI, p.Email = valueOf(name), valueOf(uri), valueOf(email)

	if props == nil {
		return nil, nil
	}

	return p.validate(result), nil
}

func (p *Person) Validate(props base.Properties) *base.ValidationInfo {
	return p.validate(base.NewValidationInfo(p.name))
}

func (p *Person) validate(result *base.ValidationInfo) *base.ValidationInfo {
	if p.Name == "" {
		result.AddValidationInfo(base.MissingElement(PersonNameName, base.Error, ""))
	}
	return result
}

func valueOf(e *base.StringElement) string {
	if e == nil {
		return ""
	}
	return e.Value
}
