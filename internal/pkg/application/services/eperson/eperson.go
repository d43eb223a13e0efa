package eperson

import (
	"context"
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-repository/eperson")

var ErrInvalidCredentials = errors.New("invalid credentials")

//go:generate moq -rm -out epersonservice_mock.go . EPersonService

type EPersonService interface {
	Find(ctx context.Context, id uuid.UUID) (*domain.EPerson, error)
	FindAll(ctx context.Context, limit, offset int) ([]domain.EPerson, error)
	CountTotal(ctx context.Context) (int, error)
	FindByEmail(ctx context.Context, email string) (*domain.EPerson, error)
	Create(ctx context.Context, email, firstName, lastName, password string) (*domain.EPerson, error)
	// Authenticate returns the eperson with the given email if password matches
	// and the account may log in.
	Authenticate(ctx context.Context, email, password string) (*domain.EPerson, error)
}

func NewEPersonService(db database.Datastore) EPersonService {
	return &epersonSvc{db: db}
}

type epersonSvc struct {
	db database.Datastore
}

func (svc *epersonSvc) Find(ctx context.Context, id uuid.UUID) (*domain.EPerson, error) {
	return svc.db.GetEPerson(ctx, id)
}

func (svc *epersonSvc) FindAll(ctx context.Context, limit, offset int) ([]domain.EPerson, error) {
	return svc.db.ListEPersons(ctx, limit, offset)
}

func (svc *epersonSvc) CountTotal(ctx context.Context) (int, error) {
	return svc.db.CountEPersons(ctx)
}

func (svc *epersonSvc) FindByEmail(ctx context.Context, email string) (*domain.EPerson, error) {
	return svc.db.GetEPersonByEmail(ctx, email)
}

func (svc *epersonSvc) Create(ctx context.Context, email, firstName, lastName, password string) (*domain.EPerson, error) {
	e := &domain.EPerson{
		DSO:       domain.NewDSO(),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		CanLogIn:  password != "",
	}

	e.Metadata.Set("eperson.firstname", firstName)
	e.Metadata.Set("eperson.lastname", lastName)

	if password != "" {
		salt, err := newSalt()
		if err != nil {
			return nil, err
		}
		e.Salt = salt
		e.PasswordHash = HashPassword(password, salt)
	}

	if err := svc.db.CreateEPerson(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create eperson %s: %w", email, err)
	}

	return e, nil
}

func (svc *epersonSvc) Authenticate(ctx context.Context, email, password string) (*domain.EPerson, error) {
	var err error
	ctx, span := tracer.Start(ctx, "authenticate")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	e, err := svc.db.GetEPersonByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		log.Info().Msg("authentication failed for unknown eperson")
		err = ErrInvalidCredentials
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if !e.CanLogIn || !CheckPassword(e, password) {
		log.Info().Str("eperson", e.ID.String()).Msg("authentication failed")
		err = ErrInvalidCredentials
		return nil, err
	}

	now := time.Now().UTC()
	e.LastActive = &now
	if err = svc.db.UpdateEPerson(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

const hashIterations int = 1024

// HashPassword returns the hex encoded, iterated SHA-512 digest of salt and password.
func HashPassword(password, salt string) string {
	s, err := hex.DecodeString(salt)
	if err != nil {
		s = []byte(salt)
	}

	h := sha512.New()
	h.Write(s)
	h.Write([]byte(password))
	digest := h.Sum(nil)

	for i := 1; i < hashIterations; i++ {
		h.Reset()
		h.Write(digest)
		digest = h.Sum(nil)
	}

	return hex.EncodeToString(digest)
}

func CheckPassword(e *domain.EPerson, password string) bool {
	if e.PasswordHash == "" {
		return false
	}
	expected := HashPassword(password, e.Salt)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(e.PasswordHash)) == 1
}

func newSalt() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

//go:generate moq -rm -out groupservice_mock.go . GroupService

type GroupService interface {
	Find(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	FindAll(ctx context.Context, limit, offset int) ([]domain.Group, error)
	CountTotal(ctx context.Context) (int, error)
	FindByName(ctx context.Context, name string) (*domain.Group, error)
	// FindOrCreate returns the group named name, creating it if needed.
	FindOrCreate(ctx context.Context, name string, permanent bool) (*domain.Group, error)
	AddMember(ctx context.Context, group, eperson uuid.UUID) error
	IsMember(ctx context.Context, group, eperson uuid.UUID) (bool, error)
	IsAdmin(ctx context.Context, eperson uuid.UUID) (bool, error)
}

func NewGroupService(db database.Datastore) GroupService {
	return &groupSvc{db: db}
}

type groupSvc struct {
	db database.Datastore
}

func (svc *groupSvc) Find(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	return svc.db.GetGroup(ctx, id)
}

func (svc *groupSvc) FindAll(ctx context.Context, limit, offset int) ([]domain.Group, error) {
	return svc.db.ListGroups(ctx, limit, offset)
}

func (svc *groupSvc) CountTotal(ctx context.Context) (int, error) {
	return svc.db.CountGroups(ctx)
}

func (svc *groupSvc) FindByName(ctx context.Context, name string) (*domain.Group, error) {
	return svc.db.GetGroupByName(ctx, name)
}

func (svc *groupSvc) FindOrCreate(ctx context.Context, name string, permanent bool) (*domain.Group, error) {
	g, err := svc.db.GetGroupByName(ctx, name)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	g = &domain.Group{Name: name, Permanent: permanent}
	if err = svc.db.CreateGroup(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to create group %s: %w", name, err)
	}

	return g, nil
}

func (svc *groupSvc) AddMember(ctx context.Context, group, eperson uuid.UUID) error {
	return svc.db.AddGroupMember(ctx, group, eperson)
}

func (svc *groupSvc) IsMember(ctx context.Context, group, eperson uuid.UUID) (bool, error) {
	return svc.db.IsGroupMember(ctx, group, eperson)
}

func (svc *groupSvc) IsAdmin(ctx context.Context, eperson uuid.UUID) (bool, error) {
	admins, err := svc.db.GetGroupByName(ctx, domain.GroupAdministrator)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return svc.db.IsGroupMember(ctx, admins.ID, eperson)
}
