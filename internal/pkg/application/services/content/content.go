package content

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/assetstore"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-repository/content")

type CommunityService interface {
	Find(ctx context.Context, id uuid.UUID) (*domain.Community, error)
	FindAll(ctx context.Context, limit, offset int) ([]domain.Community, error)
	CountTotal(ctx context.Context) (int, error)
	FindTop(ctx context.Context, limit, offset int) ([]domain.Community, error)
	CountTop(ctx context.Context) (int, error)
	FindSubcommunities(ctx context.Context, id uuid.UUID, limit, offset int) ([]domain.Community, error)
	CountSubcommunities(ctx context.Context, id uuid.UUID) (int, error)
	Create(ctx context.Context, name string, parent *uuid.UUID) (*domain.Community, error)
	UpdateMetadata(ctx context.Context, id uuid.UUID, md domain.Metadata) error
}

func NewCommunityService(db database.Datastore, handlePrefix string) CommunityService {
	return &communitySvc{db: db, handlePrefix: handlePrefix}
}

type communitySvc struct {
	db           database.Datastore
	handlePrefix string
}

func (svc *communitySvc) Find(ctx context.Context, id uuid.UUID) (*domain.Community, error) {
	return svc.db.GetCommunity(ctx, id)
}

func (svc *communitySvc) FindAll(ctx context.Context, limit, offset int) ([]domain.Community, error) {
	return svc.db.ListCommunities(ctx, limit, offset)
}

func (svc *communitySvc) CountTotal(ctx context.Context) (int, error) {
	return svc.db.CountCommunities(ctx)
}

func (svc *communitySvc) FindTop(ctx context.Context, limit, offset int) ([]domain.Community, error) {
	return svc.db.ListTopCommunities(ctx, limit, offset)
}

func (svc *communitySvc) CountTop(ctx context.Context) (int, error) {
	return svc.db.CountTopCommunities(ctx)
}

func (svc *communitySvc) FindSubcommunities(ctx context.Context, id uuid.UUID, limit, offset int) ([]domain.Community, error) {
	return svc.db.ListSubcommunities(ctx, id, limit, offset)
}

func (svc *communitySvc) CountSubcommunities(ctx context.Context, id uuid.UUID) (int, error) {
	return svc.db.CountSubcommunities(ctx, id)
}

func (svc *communitySvc) Create(ctx context.Context, name string, parent *uuid.UUID) (*domain.Community, error) {
	var err error
	ctx, span := tracer.Start(ctx, "create-community")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if parent != nil {
		if _, err = svc.db.GetCommunity(ctx, *parent); err != nil {
			return nil, fmt.Errorf("parent community %s: %w", parent, err)
		}
	}

	c := &domain.Community{DSO: domain.NewDSO(), ParentID: parent}
	c.Metadata.Set("dc.title", name)

	if err = svc.db.CreateCommunity(ctx, c); err != nil {
		return nil, err
	}

	if c.Handle, err = svc.db.MintHandle(ctx, svc.handlePrefix, c.ID); err != nil {
		return nil, err
	}

	log := logging.GetFromContext(ctx)
	log.Info().Str("community", c.ID.String()).Str("handle", c.Handle).Msg("community created")

	return c, nil
}

func (svc *communitySvc) UpdateMetadata(ctx context.Context, id uuid.UUID, md domain.Metadata) error {
	if _, err := svc.db.GetCommunity(ctx, id); err != nil {
		return err
	}
	return svc.db.UpdateMetadata(ctx, id, md)
}

type CollectionService interface {
	Find(ctx context.Context, id uuid.UUID) (*domain.Collection, error)
	FindAll(ctx context.Context, limit, offset int) ([]domain.Collection, error)
	CountTotal(ctx context.Context) (int, error)
	FindByCommunity(ctx context.Context, community uuid.UUID, limit, offset int) ([]domain.Collection, error)
	CountByCommunity(ctx context.Context, community uuid.UUID) (int, error)
	Create(ctx context.Context, community uuid.UUID, md domain.Metadata) (*domain.Collection, error)
	Update(ctx context.Context, c *domain.Collection) error
	// FindByHandleOrID accepts a collection UUID or handle.
	FindByHandleOrID(ctx context.Context, ref string) (*domain.Collection, error)
}

func NewCollectionService(db database.Datastore, handlePrefix string) CollectionService {
	return &collectionSvc{db: db, handlePrefix: handlePrefix}
}

type collectionSvc struct {
	db           database.Datastore
	handlePrefix string
}

func (svc *collectionSvc) Find(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	return svc.db.GetCollection(ctx, id)
}

func (svc *collectionSvc) FindAll(ctx context.Context, limit, offset int) ([]domain.Collection, error) {
	return svc.db.ListCollections(ctx, limit, offset)
}

func (svc *collectionSvc) CountTotal(ctx context.Context) (int, error) {
	return svc.db.CountCollections(ctx)
}

func (svc *collectionSvc) FindByCommunity(ctx context.Context, community uuid.UUID, limit, offset int) ([]domain.Collection, error) {
	return svc.db.ListCollectionsOfCommunity(ctx, community, limit, offset)
}

func (svc *collectionSvc) CountByCommunity(ctx context.Context, community uuid.UUID) (int, error) {
	return svc.db.CountCollectionsOfCommunity(ctx, community)
}

func (svc *collectionSvc) Create(ctx context.Context, community uuid.UUID, md domain.Metadata) (*domain.Collection, error) {
	var err error
	ctx, span := tracer.Start(ctx, "create-collection")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if _, err = svc.db.GetCommunity(ctx, community); err != nil {
		return nil, fmt.Errorf("community %s: %w", community, err)
	}

	c := &domain.Collection{DSO: domain.NewDSO(), CommunityID: community}
	c.Metadata.Merge(md)

	if err = svc.db.CreateCollection(ctx, c); err != nil {
		return nil, err
	}

	if c.Handle, err = svc.db.MintHandle(ctx, svc.handlePrefix, c.ID); err != nil {
		return nil, err
	}

	log := logging.GetFromContext(ctx)
	log.Info().Str("collection", c.ID.String()).Str("handle", c.Handle).Msg("collection created")

	return c, nil
}

func (svc *collectionSvc) Update(ctx context.Context, c *domain.Collection) error {
	if err := svc.db.UpdateCollection(ctx, c); err != nil {
		return err
	}
	return svc.db.UpdateMetadata(ctx, c.ID, c.Metadata)
}

func (svc *collectionSvc) FindByHandleOrID(ctx context.Context, ref string) (*domain.Collection, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return svc.db.GetCollection(ctx, id)
	}

	id, t, err := svc.db.ResolveHandle(ctx, ref)
	if err != nil {
		return nil, err
	}
	if t != domain.TypeCollection {
		return nil, fmt.Errorf("handle %s refers to a %s: %w", ref, t, database.ErrNotFound)
	}

	return svc.db.GetCollection(ctx, id)
}

type BundleService interface {
	Find(ctx context.Context, id uuid.UUID) (*domain.Bundle, error)
	FindAll(ctx context.Context, limit, offset int) ([]domain.Bundle, error)
	CountTotal(ctx context.Context) (int, error)
	FindByItem(ctx context.Context, item uuid.UUID, limit, offset int) ([]domain.Bundle, error)
	CountByItem(ctx context.Context, item uuid.UUID) (int, error)
	Create(ctx context.Context, item uuid.UUID, name string) (*domain.Bundle, error)
}

func NewBundleService(db database.Datastore) BundleService {
	return &bundleSvc{db: db}
}

type bundleSvc struct {
	db database.Datastore
}

func (svc *bundleSvc) Find(ctx context.Context, id uuid.UUID) (*domain.Bundle, error) {
	return svc.db.GetBundle(ctx, id)
}

func (svc *bundleSvc) FindAll(ctx context.Context, limit, offset int) ([]domain.Bundle, error) {
	return svc.db.ListBundles(ctx, limit, offset)
}

func (svc *bundleSvc) CountTotal(ctx context.Context) (int, error) {
	return svc.db.CountBundles(ctx)
}

func (svc *bundleSvc) FindByItem(ctx context.Context, item uuid.UUID, limit, offset int) ([]domain.Bundle, error) {
	return svc.db.ListBundlesOfItem(ctx, item, limit, offset)
}

func (svc *bundleSvc) CountByItem(ctx context.Context, item uuid.UUID) (int, error) {
	return svc.db.CountBundlesOfItem(ctx, item)
}

func (svc *bundleSvc) Create(ctx context.Context, item uuid.UUID, name string) (*domain.Bundle, error) {
	b := &domain.Bundle{DSO: domain.NewDSO(), ItemID: item}
	b.Metadata.Set("dc.title", name)

	if err := svc.db.CreateBundle(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

type BitstreamService interface {
	Find(ctx context.Context, id uuid.UUID) (*domain.Bitstream, error)
	FindAll(ctx context.Context, limit, offset int) ([]domain.Bitstream, error)
	CountTotal(ctx context.Context) (int, error)
	FindByBundle(ctx context.Context, bundle uuid.UUID, limit, offset int) ([]domain.Bitstream, error)
	CountByBundle(ctx context.Context, bundle uuid.UUID) (int, error)
	// Create stores the bytes of r in the asset store and registers them in the bundle.
	Create(ctx context.Context, bundle uuid.UUID, name, format string, r io.Reader) (*domain.Bitstream, error)
	Retrieve(ctx context.Context, b *domain.Bitstream) (io.ReadCloser, error)
}

func NewBitstreamService(db database.Datastore, assets assetstore.Store) BitstreamService {
	return &bitstreamSvc{db: db, assets: assets}
}

type bitstreamSvc struct {
	db     database.Datastore
	assets assetstore.Store
}

func (svc *bitstreamSvc) Find(ctx context.Context, id uuid.UUID) (*domain.Bitstream, error) {
	return svc.db.GetBitstream(ctx, id)
}

func (svc *bitstreamSvc) FindAll(ctx context.Context, limit, offset int) ([]domain.Bitstream, error) {
	return svc.db.ListBitstreams(ctx, limit, offset)
}

func (svc *bitstreamSvc) CountTotal(ctx context.Context) (int, error) {
	return svc.db.CountBitstreams(ctx)
}

func (svc *bitstreamSvc) FindByBundle(ctx context.Context, bundle uuid.UUID, limit, offset int) ([]domain.Bitstream, error) {
	return svc.db.ListBitstreamsOfBundle(ctx, bundle, limit, offset)
}

func (svc *bitstreamSvc) CountByBundle(ctx context.Context, bundle uuid.UUID) (int, error) {
	return svc.db.CountBitstreamsOfBundle(ctx, bundle)
}

func (svc *bitstreamSvc) Create(ctx context.Context, bundle uuid.UUID, name, format string, r io.Reader) (*domain.Bitstream, error) {
	var err error
	ctx, span := tracer.Start(ctx, "create-bitstream")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	b := &domain.Bitstream{DSO: domain.NewDSO(), BundleID: bundle, Format: format, ChecksumAlgorithm: "MD5"}
	b.Metadata.Set("dc.title", name)

	b.InternalID, b.SizeBytes, b.Checksum, err = svc.assets.Store(ctx, r)
	if err != nil {
		return nil, err
	}

	if err = svc.db.CreateBitstream(ctx, b); err != nil {
		svc.assets.Delete(ctx, b.InternalID)
		return nil, err
	}

	return b, nil
}

func (svc *bitstreamSvc) Retrieve(ctx context.Context, b *domain.Bitstream) (io.ReadCloser, error) {
	return svc.assets.Retrieve(ctx, b.InternalID)
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
