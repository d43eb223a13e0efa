package sword

import (
	"strconv"

	"github.com/beevik/etree"
	"github.com/diwise/api-repository/internal/pkg/sword/atom"
	"github.com/diwise/api-repository/internal/pkg/sword/base"
)

// AcceptPackaging is a packaging format accepted by a collection, with an
// optional preference between 0 and 1.
type AcceptPackaging struct {
	Format  string
	Quality float64
	HasQ    bool
}

func NewAcceptPackaging(format string, q float64) *AcceptPackaging {
	return &AcceptPackaging{Format: format, Quality: q, HasQ: true}
}

func (a *AcceptPackaging) XmlName() base.XmlName {
	return AcceptPackagingName
}

func (a *AcceptPackaging) Marshall() *etree.Element {
	el := base.NewElement(AcceptPackagingName)
	if a.HasQ {
		el.CreateAttr("q", strconv.FormatFloat(a.Quality, 'f', -1, 64))
	}
	el.SetText(a.Format)
	return el
}

func (a *AcceptPackaging) Unmarshall(el *etree.Element, props base.Properties) (*base.ValidationInfo, error) {
	if !base.IsInstanceOf(el, AcceptPackagingName) {
		return base.IncorrectElement(el, AcceptPackagingName, props)
	}

	*a = AcceptPackaging{Format: base.ElementValue(el)}
	attributes := base.UnexpectedAttributes(el, "q")

	if q, ok := base.AttributeValue(el, "q"); ok {
		quality, err := strconv.ParseFloat(q, 64)
		if err != nil || quality < 0 || quality > 1 {
			info := base.NewAttributeInfo(AcceptPackagingName, base.AttributeName("q"), "The q value must be a number between 0 and 1.", base.Error)
			info.ContentDescription = q
			attributes = append(attributes, info)
		} else {
			a.Quality, a.HasQ = quality, true
		}
	}

	if props == nil {
		return nil, nil
	}

	result := a.Validate(props)
	result.AddUnmarshallValidationInfo(nil, attributes)
	return result, nil
}

func (a *AcceptPackaging) Validate(props base.Properties) *base.ValidationInfo {
	result := base.NewValidationInfo(AcceptPackagingName)
	if a.Format == "" {
		result.Message = base.MessageMissingContent
		result.SetType(base.Warning)
	}
	return result
}

// Collection describes a deposit target in a service document.
type Collection struct {
	Location string

	Title            *atom.TextConstruct
	Accepts          []*base.StringElement
	AcceptPackaging  []*AcceptPackaging
	CollectionPolicy *base.StringElement
	Abstract         *base.StringElement
	Treatment        *base.StringElement
	Mediation        *base.BooleanElement
	Service          *base.StringElement
}

func NewCollection(location, title string) *Collection {
	return &Collection{Location: location, Title: atom.NewTitle(title)}
}

func (c *Collection) XmlName() base.XmlName {
	return CollectionName
}

func (c *Collection) AddAccepts(mediaTypes ...string) {
	for _, mt := range mediaTypes {
		c.Accepts = append(c.Accepts, NewAccept(mt))
	}
}

func (c *Collection) AddAcceptPackaging(format string, q float64) {
	c.AcceptPackaging = append(c.AcceptPackaging, NewAcceptPackaging(format, q))
}

// AcceptsMediaType reports if mediaType is listed in app:accept. A wildcard
// entry such as */* or application/* matches as well.
func (c *Collection) AcceptsMediaType(mediaType string) bool {
	for _, a := range c.Accepts {
		if mediaTypeMatches(a.Value, mediaType) {
			return true
		}
	}
	return false
}

// AcceptsPackaging reports if format is one of the accepted packaging
// formats. A collection without any sword:acceptPackaging accepts anything.
func (c *Collection) AcceptsPackaging(format string) bool {
	if len(c.AcceptPackaging) == 0 {
		return true
	}
	for _, p := range c.AcceptPackaging {
		if p.Format == format {
			return true
		}
	}
	return false
}

func (c *Collection) Marshall() *etree.Element {
	el := base.NewElement(CollectionName)
	base.SetAttribute(el, "href", c.Location)

	if c.Title != nil {
		el.AddChild(c.Title.Marshall())
	}
	for _, a := range c.Accepts {
		el.AddChild(a.Marshall())
	}
	for _, p := range c.AcceptPackaging {
		el.AddChild(p.Marshall())
	}

	for _, e := range []base.Element{c.CollectionPolicy, c.Abstract, c.Treatment, c.Mediation, c.Service} {
		if !isNil(e) {
			el.AddChild(e.Marshall())
		}
	}

	return el
}

func (c *Collection) Unmarshall(el *etree.Element, props base.Properties) (*base.ValidationInfo, error) {
	if !base.IsInstanceOf(el, CollectionName) {
		return base.IncorrectElement(el, CollectionName, props)
	}

	*c = Collection{}
	result := base.NewValidationInfo(CollectionName)
	result.AddUnmarshallValidationInfo(nil, base.UnexpectedAttributes(el, "href"))

	c.Location, _ = base.AttributeValue(el, "href")

	for _, child := range el.ChildElements() {
		var err error

		switch {
		case base.IsInstanceOf(child, atom.TitleName):
			c.Title, err = base.UnmarshallOnce(c.Title, c.Title != nil, atom.NewTitle(""), child, result, props)
		case base.IsInstanceOf(child, AcceptName):
			accept := NewAccept("")
			err = base.UnmarshallChild(accept, child, result, props)
			c.Accepts = append(c.Accepts, accept)
		case base.IsInstanceOf(child, AcceptPackagingName):
			p := &AcceptPackaging{}
			err = base.UnmarshallChild(p, child, result, props)
			c.AcceptPackaging = append(c.AcceptPackaging, p)
		case base.IsInstanceOf(child, CollectionPolicyName):
			c.CollectionPolicy, err = base.UnmarshallOnce(c.CollectionPolicy, c.CollectionPolicy != nil, NewCollectionPolicy(""), child, result, props)
		case base.IsInstanceOf(child, AbstractName):
			c.Abstract, err = base.UnmarshallOnce(c.Abstract, c.Abstract != nil, NewAbstract(""), child, result, props)
		case base.IsInstanceOf(child, TreatmentName):
			c.Treatment, err = base.UnmarshallOnce(c.Treatment, c.Treatment != nil, NewTreatment(""), child, result, props)
		case base.IsInstanceOf(child, MediationName):
			c.Mediation, err = base.UnmarshallOnce(c.Mediation, c.Mediation != nil, NewMediation(false), child, result, props)
		case base.IsInstanceOf(child, ServiceLinkName):
			c.Service, err = base.UnmarshallOnce(c.Service, c.Service != nil, NewServiceLink(""), child, result, props)
		default:
			if props != nil {
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

	return c.validate(result, props), nil
}

func (c *Collection) Validate(props base.Properties) *base.ValidationInfo {
	return c.validate(nil, props)
}

func (c *Collection) validate(info *base.ValidationInfo, props base.Properties) *base.ValidationInfo {
	validateAll := info == nil
	result := info
	if result == nil {
		result = base.NewValidationInfo(CollectionName)
	}

	href := base.AttributeName("href")
	if c.Location == "" {
		result.AddAttributeValidationInfo(base.NewAttributeInfo(CollectionName, href, base.MessageMissingAttributeError, base.Error))
	} else {
		result.AddAttributeValidationInfo(base.NewValidAttributeInfo(CollectionName, href))
	}

	if c.Title == nil {
		result.AddValidationInfo(base.MissingElement(atom.TitleName, base.Error, ""))
	} else if validateAll {
		result.AddValidationInfo(c.Title.Validate(props))
	}

	if len(c.Accepts) == 0 {
		result.AddValidationInfo(base.MissingElement(AcceptName, base.Error, ""))
	} else if validateAll {
		for _, a := range c.Accepts {
			result.AddValidationInfo(a.Validate(props))
		}
	}

	if len(c.AcceptPackaging) == 0 {
		result.AddValidationInfo(base.MissingElement(AcceptPackagingName, base.Warning, ""))
	} else if validateAll {
		for _, p := range c.AcceptPackaging {
			result.AddValidationInfo(p.Validate(props))
		}
	}

	recommended := []struct {
		name    base.XmlName
		element base.Element
	}{
		{CollectionPolicyName, c.CollectionPolicy},
		{TreatmentName, c.Treatment},
		{MediationName, c.Mediation},
	}

	for _, r := range recommended {
		if isNil(r.element) {
			result.AddValidationInfo(base.MissingElement(r.name, base.Warning, ""))
		} else if validateAll {
			result.AddValidationInfo(r.element.Validate(props))
		}
	}

	if validateAll {
		if c.Abstract != nil {
			result.AddValidationInfo(c.Abstract.Validate(props))
		}
		if c.Service != nil {
			result.AddValidationInfo(c.Service.Validate(props))
		}
	}

	return result
}
