package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/assetstore"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
)

//go:generate moq -rm -out itemservice_mock.go . ItemService

type ItemService interface {
	Find(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	FindAll(ctx context.Context, limit, offset int) ([]domain.Item, error)
	CountTotal(ctx context.Context) (int, error)
	FindByHandle(ctx context.Context, handle string) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	// Install archives the item of a workspace item, or hands it over to the
	// workflow when the collection has reviewers.
	Install(ctx context.Context, ws *domain.WorkspaceItem) (*domain.Item, error)
	// Delete removes the item, everything it contains and the stored bytes of its bitstreams.
	Delete(ctx context.Context, id uuid.UUID) error
}

type Settings struct {
	HandlePrefix string
	// HandleResolver is prepended to handles in dc.identifier.uri.
	HandleResolver string
}

func NewItemService(db database.Datastore, assets assetstore.Store, settings Settings) ItemService {
	if settings.HandleResolver == "" {
		settings.HandleResolver = "http://hdl.handle.net/"
	}
	return &itemSvc{db: db, assets: assets, settings: settings}
}

type itemSvc struct {
	db       database.Datastore
	assets   assetstore.Store
	settings Settings
}

func (svc *itemSvc) Find(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	return svc.db.GetItem(ctx, id)
}

func (svc *itemSvc) FindAll(ctx context.Context, limit, offset int) ([]domain.Item, error) {
	return svc.db.ListItems(ctx, limit, offset)
}

func (svc *itemSvc) CountTotal(ctx context.Context) (int, error) {
	return svc.db.CountItems(ctx)
}

func (svc *itemSvc) FindByHandle(ctx context.Context, handle string) (*domain.Item, error) {
	id, t, err := svc.db.ResolveHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if t != domain.TypeItem {
		return nil, fmt.Errorf("handle %s refers to a %s: %w", handle, t, database.ErrNotFound)
	}
	return svc.db.GetItem(ctx, id)
}

func (svc *itemSvc) Update(ctx context.Context, item *domain.Item) error {
	return svc.db.UpdateItem(ctx, item)
}

func (svc *itemSvc) Install(ctx context.Context, ws *domain.WorkspaceItem) (*domain.Item, error) {
	var err error
	ctx, span := tracer.Start(ctx, "install-item")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	item, err := svc.db.GetItem(ctx, ws.ItemID)
	if err != nil {
		return nil, err
	}

	collection, err := svc.db.GetCollection(ctx, ws.CollectionID)
	if err != nil {
		return nil, err
	}

	if collection.WorkflowGroupID != nil {
		wf := &domain.WorkflowItem{
			ItemID:       ws.ItemID,
			CollectionID: ws.CollectionID,
			SubmitterID:  ws.SubmitterID,
			State:        domain.WorkflowStepOnePool,
		}
		if err = svc.db.CreateWorkflowItem(ctx, wf); err != nil {
			return nil, err
		}

		log.Info().Str("item", item.ID.String()).Int("workflowitem", wf.ID).Msg("item submitted to workflow")
	} else {
		if err = svc.archive(ctx, item); err != nil {
			return nil, err
		}

		log.Info().Str("item", item.ID.String()).Str("handle", item.Handle).Msg("item installed in archive")
	}

	if err = svc.db.DeleteWorkspaceItem(ctx, ws.ID); err != nil {
		return nil, err
	}

	return item, nil
}

func (svc *itemSvc) Delete(ctx context.Context, id uuid.UUID) error {
	var err error
	ctx, span := tracer.Start(ctx, "delete-item")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	internalIDs, err := svc.db.DeleteItem(ctx, id)
	if err != nil {
		return err
	}

	for _, internalID := range internalIDs {
		if assetErr := svc.assets.Delete(ctx, internalID); assetErr != nil {
			log.Warn().Err(assetErr).Str("internalID", internalID).Msg("failed to delete asset of removed item")
		}
	}

	log.Info().Str("item", id.String()).Int("bitstreams", len(internalIDs)).Msg("item deleted")

	return nil
}

func (svc *itemSvc) archive(ctx context.Context, item *domain.Item) error {
	handle, err := svc.db.MintHandle(ctx, svc.settings.HandlePrefix, item.ID)
	if err != nil {
		return err
	}
	item.Handle = handle

	accessioned := now()

	item.InArchive = true
	item.Withdrawn = false
	item.Discoverable = true

	item.Metadata.Add("dc.date.accessioned", accessioned, "")
	item.Metadata.Add("dc.date.available", accessioned, "")
	if item.Metadata.First("dc.date.issued") == "" {
		item.Metadata.Set("dc.date.issued", accessioned[:10])
	}
	item.Metadata.Add("dc.identifier.uri", strings.TrimSuffix(svc.settings.HandleResolver, "/")+"/"+handle, "")
	item.Metadata.Add("dc.description.provenance", fmt.Sprintf("Made available on %s (GMT).", accessioned), "en")

	return svc.db.UpdateItem(ctx, item)
}
