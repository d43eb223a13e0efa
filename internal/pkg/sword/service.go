package sword

import (
	"github.com/beevik/etree"
	"github.com/diwise/api-repository/internal/pkg/sword/atom"
	"github.com/diwise/api-repository/internal/pkg/sword/base"
)

// Service is the root of a SWORD service document.
type Service struct {
	Version       *base.StringElement
	Verbose       *base.BooleanElement
	NoOp          *base.BooleanElement
	MaxUploadSize *base.IntegerElement
	Generator     *atom.Generator

	Workspaces []*Workspace
}

func NewService(version string, verbose, noOp bool) *Service {
	return &Service{
		Version: NewVersion(version),
		Verbose: NewVerbose(verbose),
		NoOp:    NewNoOp(noOp),
	}
}

func (s *Service) XmlName() base.XmlName {
	return ServiceName
}

func (s *Service) AddWorkspace(w *Workspace) {
	s.Workspaces = append(s.Workspaces, w)
}

func (s *Service) Marshall() *etree.Element {
	el := base.NewElement(ServiceName)
	base.DeclareNamespaces(el, base.PrefixApp, base.PrefixAtom, base.PrefixSword, base.PrefixDCTerms)

	if s.Version != nil {
		el.AddChild(s.Version.Marshall())
	}
	if s.Verbose != nil {
		el.AddChild(s.Verbose.Marshall())
	}
	if s.NoOp != nil {
		el.AddChild(s.NoOp.Marshall())
	}
	if s.MaxUploadSize != nil {
		el.AddChild(s.MaxUploadSize.Marshall())
	}
	if s.Generator != nil {
		el.AddChild(s.Generator.Marshall())
	}
	for _, w := range s.Workspaces {
		el.AddChild(w.Marshall())
	}

	return el
}

func (s *Service) Unmarshall(el *etree.Element, props base.Properties) (*base.ValidationInfo, error) {
	if !base.IsInstanceOf(el, ServiceName) {
		return base.IncorrectElement(el, ServiceName, props)
	}

	*s = Service{}
	result := base.NewValidationInfo(ServiceName)

	for _, child := range el.ChildElements() {
		var err error

		switch {
		case base.IsInstanceOf(child, VersionName):
			s.Version, err = base.UnmarshallOnce(s.Version, s.Version != nil, NewVersion(""), child, result, props)
		case base.IsInstanceOf(child, VerboseName):
			s.Verbose, err = base.UnmarshallOnce(s.Verbose, s.Verbose != nil, NewVerbose(false), child, result, props)
		case base.IsInstanceOf(child, NoOpName):
			s.NoOp, err = base.UnmarshallOnce(s.NoOp, s.NoOp != nil, NewNoOp(false), child, result, props)
		case base.IsInstanceOf(child, MaxUploadSizeName):
			s.MaxUploadSize, err = base.UnmarshallOnce(s.MaxUploadSize, s.MaxUploadSize != nil, NewMaxUploadSize(0), child, result, props)
		case base.IsInstanceOf(child, atom.GeneratorName):
			s.Generator, err = base.UnmarshallOnce(s.Generator, s.Generator != nil, &atom.Generator{}, child, result, props)
		case base.IsInstanceOf(child, WorkspaceName):
			w := &Workspace{}
			err = base.UnmarshallChild(w, child, result, props)
			s.Workspaces = append(s.Workspaces, w)
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

	return s.validate(result, props), nil
}

func (s *Service) Validate(props base.Properties) *base.ValidationInfo {
	return s.validate(nil, props)
}

func (s *Service) validate(info *base.ValidationInfo, props base.Properties) *base.ValidationInfo {
	validateAll := info == nil
	result := info
	if result == nil {
		result = base.NewValidationInfo(ServiceName)
	}

	if s.Version == nil {
		result.AddValidationInfo(base.MissingElement(VersionName, base.Error, ""))
	} else if validateAll {
		result.AddValidationInfo(s.Version.Validate(props))
	}

	if s.Verbose == nil {
		result.AddValidationInfo(base.MissingElement(VerboseName, base.Warning, ""))
	} else if validateAll {
		result.AddValidationInfo(s.Verbose.Validate(props))
	}

	if s.NoOp == nil {
		result.AddValidationInfo(base.MissingElement(NoOpName, base.Warning, ""))
	} else if validateAll {
		result.AddValidationInfo(s.NoOp.Validate(props))
	}

	if s.MaxUploadSize != nil && validateAll {
		result.AddValidationInfo(s.MaxUploadSize.Validate(props))
	}

	if len(s.Workspaces) == 0 {
		result.AddValidationInfo(base.MissingElement(WorkspaceName, base.Warning, ""))
	} else if validateAll {
		for _, w := range s.Workspaces {
			result.AddValidationInfo(w.Validate(props))
		}
	}

	return result
}

// Workspace groups the collections that a user may deposit into.
type Workspace struct {
	Title       *atom.TextConstruct
	Collections []*Collection
}

func NewWorkspace(title string) *Workspace {
	return &Workspace{Title: atom.NewTitle(title)}
}

func (w *Workspace) XmlName() base.XmlName {
	return WorkspaceName
}

func (w *Workspace) AddCollection(c *Collection) {
	w.Collections = append(w.Collections, c)
}

func (w *Workspace) Marshall() *etree.Element {
	el := base.NewElement(WorkspaceName)
	if w.Title != nil {
		el.AddChild(w.Title.Marshall())
	}
	for _, c := range w.Collections {
		el.AddChild(c.Marshall())
	}
	return el
}

func (w *Workspace) Unmarshall(el *etree.Element, props base.Properties) (*base.ValidationInfo, error) {
	if !base.IsInstanceOf(el, WorkspaceName) {
		return base.IncorrectElement(el, WorkspaceName, props)
	}

	*w = Workspace{}
	result := base.NewValidationInfo(WorkspaceName)

	for _, child := range el.ChildElements() {
		var err error

		switch {
		case base.IsInstanceOf(child, atom.TitleName):
			w.Title, err = base.UnmarshallOnce(w.Title, w.Title != nil, atom.NewTitle(""), child, result, props)
		case base.IsInstanceOf(child, CollectionName):
			c := &Collection{}
			err = base.UnmarshallChild(c, child, result, props)
			w.Collections = append(w.Collections, c)
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

	return w.validate(result, props), nil
}

func (w *Workspace) Validate(props base.Properties) *base.ValidationInfo {
	return w.validate(nil, props)
}

func (w *Workspace) validate(info *base.ValidationInfo, props base.Properties) *base.ValidationInfo {
	validateAll := info == nil
	result := info
	if result == nil {
		result = base.NewValidationInfo(WorkspaceName)
	}

	if w.Title == nil {
		result.AddValidationInfo(base.MissingElement(atom.TitleName, base.Error, ""))
	} else if validateAll {
		result.AddValidationInfo(w.Title.Validate(props))
	}

	if len(w.Collections) == 0 {
		result.AddValidationInfo(base.MissingElement(CollectionName, base.Warning, ""))
	} else if validateAll {
		for _, c := range w.Collections {
			result.AddValidationInfo(c.Validate(props))
		}
	}

	return result
}
