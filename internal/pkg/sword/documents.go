package sword

import (
	"fmt"
	"net/http"

	"github.com/beevik/etree"
	"github.com/diwise/api-repository/internal/pkg/sword/base"
)

// ServiceDocument wraps the Service element returned from the service
// document endpoint.
type ServiceDocument struct {
	Service *Service
}

func NewServiceDocument(service *Service) *ServiceDocument {
	return &ServiceDocument{Service: service}
}

func (d *ServiceDocument) Marshall() (string, error) {
	return marshallDocument(d.Service.Marshall())
}

func (d *ServiceDocument) Unmarshall(data []byte, props base.Properties) (*base.ValidationInfo, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	d.Service = &Service{}
	return d.Service.Unmarshall(root, props)
}

func (d *ServiceDocument) Validate(props base.Properties) *base.ValidationInfo {
	return d.Service.Validate(props)
}

// DepositResponse is the outcome of a deposit: an entry describing the new
// item, or an error document.
type DepositResponse struct {
	HTTPStatus int
	Location   string

	Entry *Entry
	Error *ErrorDocument
}

func NewDepositResponse(status int, entry *Entry) *DepositResponse {
	return &DepositResponse{HTTPStatus: status, Entry: entry}
}

func NewErrorResponse(doc *ErrorDocument) *DepositResponse {
	return &DepositResponse{HTTPStatus: doc.Status, Error: doc}
}

func (r *DepositResponse) IsError() bool {
	return r.Error != nil
}

func (r *DepositResponse) Marshall() (string, error) {
	if r.Error != nil {
		return marshallDocument(r.Error.Marshall())
	}
	if r.Entry != nil {
		return marshallDocument(r.Entry.Marshall())
	}
	return "", fmt.Errorf("deposit response has neither an entry nor an error document")
}

// Unmarshall reads either an atom entry or a sword:error document. The
// HTTP status is left untouched.
func (r *DepositResponse) Unmarshall(data []byte, props base.Properties) (*base.ValidationInfo, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	r.Entry, r.Error = nil, nil

	if base.IsInstanceOf(root, ErrorName) {
		r.Error = NewErrorDocument("", r.HTTPStatus)
		return r.Error.Unmarshall(root, props)
	}

	r.Entry = NewEntry()
	return r.Entry.Unmarshall(root, props)
}

// StatusAccepted reports if the HTTP status signals a successful deposit.
func (r *DepositResponse) StatusAccepted() bool {
	return r.HTTPStatus == http.StatusCreated || r.HTTPStatus == http.StatusAccepted
}

func marshallDocument(root *etree.Element) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.SetRoot(root)
	doc.Indent(2)

	s, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("failed to write %s document: %w", base.NameOf(root).QualifiedName(), err)
	}

	return s, nil
}

func parseDocument(data []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %s", base.ErrUnmarshall, err.Error())
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: document has no root element", base.ErrUnmarshall)
	}

	return root, nil
}
