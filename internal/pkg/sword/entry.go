package sword

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/diwise/api-repository/internal/pkg/sword/atom"
	"github.com/diwise/api-repository/internal/pkg/sword/base"
)

// Entry is the atom entry returned after a deposit, extended with the
// SWORD elements that describe how the package was handled.
type Entry struct {
	*atom.Entry

	Treatment          *base.StringElement
	VerboseDescription *base.StringElement
	NoOp               *base.BooleanElement
	Packaging          *base.StringElement
	UserAgent          *base.StringElement
}

func NewEntry() *Entry {
	return newEntryNamed(atom.EntryName)
}

func newEntryNamed(name base.XmlName) *Entry {
	return &Entry{Entry: atom.NewEntryNamed(name)}
}

func (e *Entry) Marshall() *etree.Element {
	el := base.NewElement(e.XmlName())
	base.DeclareNamespaces(el, base.PrefixSword, base.PrefixAtom)
	e.MarshallElements(el)
	return el
}

func (e *Entry) MarshallElements(el *etree.Element) {
	e.Entry.MarshallElements(el)

	for _, child := range []base.Element{e.Treatment, e.VerboseDescription, e.NoOp, e.Packaging, e.UserAgent} {
		if !isNil(child) {
			el.AddChild(child.Marshall())
		}
	}
}

func (e *Entry) Unmarshall(el *etree.Element, props base.Properties) (*base.ValidationInfo, error) {
	if !base.IsInstanceOf(el, e.XmlName()) {
		return base.IncorrectElement(el, e.XmlName(), props)
	}

	result, err := e.UnmarshallWithoutValidate(el, props)
	if err != nil || props == nil {
		return nil, err
	}

	return e.validate(result, props), nil
}

func (e *Entry) UnmarshallWithoutValidate(el *etree.Element, props base.Properties) (*base.ValidationInfo, error) {
	e.Treatment, e.VerboseDescription, e.NoOp, e.Packaging, e.UserAgent = nil, nil, nil, nil, nil
	return e.Entry.UnmarshallWithoutValidate(el, props, atom.Extension{Child: e.unmarshallChild})
}

func (e *Entry) unmarshallChild(child *etree.Element, result *base.ValidationInfo, props base.Properties) (bool, error) {
	var err error

	switch {
	case base.IsInstanceOf(child, TreatmentName):
		e.Treatment, err = base.UnmarshallOnce(e.Treatment, e.Treatment != nil, NewTreatment(""), child, result, props)
	case base.IsInstanceOf(child, VerboseDescriptionName):
		e.VerboseDescription, err = base.UnmarshallOnce(e.VerboseDescription, e.VerboseDescription != nil, NewVerboseDescription(""), child, result, props)
	case base.IsInstanceOf(child, NoOpName):
		e.NoOp, err = base.UnmarshallOnce(e.NoOp, e.NoOp != nil, NewNoOp(false), child, result, props)
	case base.IsInstanceOf(child, PackagingName):
		e.Packaging, err = base.UnmarshallOnce(e.Packaging, e.Packaging != nil, NewPackaging(""), child, result, props)
	case base.IsInstanceOf(child, UserAgentName):
		e.UserAgent, err = base.UnmarshallOnce(e.UserAgent, e.UserAgent != nil, NewUserAgent(""), child, result, props)
	default:
		return false, nil
	}

	return true, err
}

func (e *Entry) Validate(props base.Properties) *base.ValidationInfo {
	return e.validate(nil, props)
}

func (e *Entry) validate(info *base.ValidationInfo, props base.Properties) *base.ValidationInfo {
	validateAll := info == nil
	result := e.Entry.ValidateWith(info, props)

	if e.Treatment == nil {
		result.AddValidationInfo(base.MissingElement(TreatmentName, base.Error, ""))
	} else if validateAll {
		result.AddValidationInfo(e.Treatment.Validate(props))
	}

	if e.VerboseDescription == nil {
		if headerIsTrue(props, base.HeaderVerbose) {
			result.AddValidationInfo(base.MissingElement(VerboseDescriptionName, base.Warning,
				"This element SHOULD be included if the client sent X-Verbose: true."))
		}
	} else if validateAll {
		result.AddValidationInfo(e.VerboseDescription.Validate(props))
	}

	if e.NoOp == nil {
		if headerIsTrue(props, base.HeaderNoOp) {
			result.AddValidationInfo(base.MissingElement(NoOpName, base.Warning,
				"This element SHOULD be included if the client sent X-No-Op: true."))
		}
	} else {
		if validateAll {
			result.AddValidationInfo(e.NoOp.Validate(props))
		}
		if headerIsTrue(props, base.HeaderNoOp) && !e.NoOp.Value {
			info := base.NewElementInfo(NoOpName, "The X-No-Op header was true, but this element does not confirm that no operation took place.", base.Warning)
			info.ContentDescription = e.NoOp.Raw()
			result.AddValidationInfo(info)
		}
	}

	if packaging, ok := props.Get(base.HeaderPackaging); ok && packaging != "" {
		if e.Packaging == nil {
			result.AddValidationInfo(base.MissingElement(PackagingName, base.Warning,
				"This element SHOULD be included if the client sent X-Packaging."))
		} else if e.Packaging.Value != packaging {
			info := base.NewElementInfo(PackagingName, "The value does not match the X-Packaging header: "+packaging, base.Warning)
			info.ContentDescription = e.Packaging.Value
			result.AddValidationInfo(info)
		}
	}
	if e.Packaging != nil && validateAll {
		result.AddValidationInfo(e.Packaging.Validate(props))
	}

	if e.UserAgent == nil {
		if userAgent, ok := props.Get(base.HeaderUserAgent); ok && userAgent != "" {
			result.AddValidationInfo(base.MissingElement(UserAgentName, base.Warning,
				"This element SHOULD be included if the client sent a User-Agent header."))
		}
	} else if validateAll {
		result.AddValidationInfo(e.UserAgent.Validate(props))
	}

	return result
}

func headerIsTrue(props base.Properties, header string) bool {
	value, ok := props.Get(header)
	return ok && strings.EqualFold(strings.TrimSpace(value), "true")
}

func isNil(e base.Element) bool {
	switch v := e.(type) {
	case nil:
		return true
	case *base.StringElement:
		return v == nil
	case *base.BooleanElement:
		return v == nil
	case *base.IntegerElement:
		return v == nil
	case *base.DateElement:
		return v == nil
	}
	return false
}

func mediaTypeMatches(accepted, mediaType string) bool {
	accepted = strings.ToLower(strings.TrimSpace(accepted))
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))

	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}

	if accepted == "*/*" || accepted == mediaType {
		return true
	}

	if strings.HasSuffix(accepted, "/*") {
		return strings.HasPrefix(mediaType, strings.TrimSuffix(accepted, "*"))
	}

	return false
}
