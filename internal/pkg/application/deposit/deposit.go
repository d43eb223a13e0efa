package deposit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/diwise/api-repository/internal/pkg/application/services/content"
	"github.com/diwise/api-repository/internal/pkg/application/services/eperson"
	"github.com/diwise/api-repository/internal/pkg/application/services/workflow"
	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/grobid"
	"github.com/diwise/api-repository/internal/pkg/sword"
	"github.com/diwise/api-repository/internal/pkg/sword/base"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-repository/deposit")

var ErrAuthentication = errors.New("authentication failed")

// Error is a deposit failure that is reported to the client as a sword:error document.
type Error struct {
	Code    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

func newError(code string, status int, format string, args ...any) *Error {
	return &Error{Code: code, Status: status, Message: fmt.Sprintf(format, args...)}
}

// Context holds the users a SWORD request is performed by.
type Context struct {
	Authenticated *domain.EPerson
	OnBehalfOf    *domain.EPerson
}

// Submitter is the eperson the deposited item belongs to.
func (c *Context) Submitter() *domain.EPerson {
	if c.OnBehalfOf != nil {
		return c.OnBehalfOf
	}
	return c.Authenticated
}

type Request struct {
	Collection    string
	Filename      string
	ContentType   string
	ContentLength int64
	Packaging     string
	MD5           string
	UserAgent     string
	NoOp          bool
	Verbose       bool
	Body          io.Reader
}

type PackagingFormat struct {
	Format  string
	Quality float64
}

type Settings struct {
	SiteName           string
	BaseURL            string
	MaxUploadSize      int64
	Accepts            []string
	AcceptPackaging    []PackagingFormat
	Mediation          bool
	Treatment          string
	DefaultPolicy      string
	AllowFilenameTitle bool
	ExtractMetadata    bool
}

type Services struct {
	Collections    content.CollectionService
	Items          content.ItemService
	Bundles        content.BundleService
	Bitstreams     content.BitstreamService
	EPersons       eperson.EPersonService
	Groups         eperson.GroupService
	WorkspaceItems workflow.WorkspaceItemService
}

//go:generate moq -rm -out depositservice_mock.go . DepositService

type DepositService interface {
	Authenticate(ctx context.Context, username, password, onBehalfOf string) (*Context, error)
	ServiceDocument(ctx context.Context, sc *Context) (*sword.ServiceDocument, error)
	Deposit(ctx context.Context, sc *Context, req Request) (*sword.DepositResponse, error)
	Entry(ctx context.Context, sc *Context, itemID string) (*sword.Entry, error)
}

func New(settings Settings, svc Services, extractor grobid.Extractor) DepositService {
	settings.BaseURL = strings.TrimSuffix(settings.BaseURL, "/")
	return &depositSvc{settings: settings, svc: svc, extractor: extractor}
}

type depositSvc struct {
	settings  Settings
	svc       Services
	extractor grobid.Extractor
}

func (d *depositSvc) Authenticate(ctx context.Context, username, password, onBehalfOf string) (*Context, error) {
	var err error
	ctx, span := tracer.Start(ctx, "sword-authenticate")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	onBehalfOf = strings.TrimSpace(onBehalfOf)

	if onBehalfOf != "" && !d.settings.Mediation {
		err = newError(base.MediationNotAllowed, http.StatusPreconditionFailed, "mediated deposit to this service is not permitted")
		return nil, err
	}

	log := logging.GetFromContext(ctx)
	log.Info().Str("username", username).Str("onBehalfOf", onBehalfOf).Msg("sword authenticate")

	e, err := d.svc.EPersons.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, eperson.ErrInvalidCredentials) {
			err = ErrAuthentication
		}
		return nil, err
	}

	sc := &Context{Authenticated: e}

	if onBehalfOf != "" {
		sc.OnBehalfOf, err = d.svc.EPersons.FindByEmail(ctx, onBehalfOf)
		if err != nil {
			err = newError(base.TargetOwnerUnknown, http.StatusUnauthorized, "unable to identify on-behalf-of user: %s", onBehalfOf)
			return nil, err
		}
	}

	return sc, nil
}

func (d *depositSvc) isAllowed(ctx context.Context, e *domain.EPerson, c *domain.Collection) (bool, error) {
	admin, err := d.svc.Groups.IsAdmin(ctx, e.ID)
	if err != nil || admin {
		return admin, err
	}

	if c.SubmittersGroupID == nil {
		return false, nil
	}

	return d.svc.Groups.IsMember(ctx, *c.SubmittersGroupID, e.ID)
}

// canSubmitTo requires both the authenticated user and, when present, the
// on-behalf-of user to be allowed to submit.
func (d *depositSvc) canSubmitTo(ctx context.Context, sc *Context, c *domain.Collection) (bool, error) {
	allowed, err := d.isAllowed(ctx, sc.Authenticated, c)
	if err != nil || !allowed {
		return false, err
	}

	if sc.OnBehalfOf == nil {
		return true, nil
	}

	return d.isAllowed(ctx, sc.OnBehalfOf, c)
}

func (d *depositSvc) depositURL(c *domain.Collection) string {
	return d.settings.BaseURL + "/sword/deposit/" + c.ID.String()
}

func (d *depositSvc) atomURL(item *domain.Item) string {
	return d.settings.BaseURL + "/sword/atom/" + item.ID.String()
}

func (d *depositSvc) contentURL(b *domain.Bitstream) string {
	return d.settings.BaseURL + "/api/core/bitstreams/" + b.ID.String() + "/content"
}
