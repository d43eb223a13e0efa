package workflow

import (
	"context"

	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-repository/workflow")

type WorkspaceItemService interface {
	Find(ctx context.Context, id int) (*domain.WorkspaceItem, error)
	FindAll(ctx context.Context, limit, offset int) ([]domain.WorkspaceItem, error)
	CountTotal(ctx context.Context) (int, error)
	FindBySubmitter(ctx context.Context, submitter uuid.UUID, limit, offset int) ([]domain.WorkspaceItem, error)
	CountBySubmitter(ctx context.Context, submitter uuid.UUID) (int, error)
	// Create starts a new submission of an item with metadata md into collection.
	Create(ctx context.Context, collection, submitter uuid.UUID, md domain.Metadata) (*domain.WorkspaceItem, *domain.Item, error)
}

func NewWorkspaceItemService(db database.Datastore) WorkspaceItemService {
	return &workspaceSvc{db: db}
}

type workspaceSvc struct {
	db database.Datastore
}

func (svc *workspaceSvc) Find(ctx context.Context, id int) (*domain.WorkspaceItem, error) {
	return svc.db.GetWorkspaceItem(ctx, id)
}

func (svc *workspaceSvc) FindAll(ctx context.Context, limit, offset int) ([]domain.WorkspaceItem, error) {
	return svc.db.ListWorkspaceItems(ctx, limit, offset)
}

func (svc *workspaceSvc) CountTotal(ctx context.Context) (int, error) {
	return svc.db.CountWorkspaceItems(ctx)
}

func (svc *workspaceSvc) FindBySubmitter(ctx context.Context, submitter uuid.UUID, limit, offset int) ([]domain.WorkspaceItem, error) {
	return svc.db.ListWorkspaceItemsBySubmitter(ctx, submitter, limit, offset)
}

func (svc *workspaceSvc) CountBySubmitter(ctx context.Context, submitter uuid.UUID) (int, error) {
	return svc.db.CountWorkspaceItemsBySubmitter(ctx, submitter)
}

func (svc *workspaceSvc) Create(ctx context.Context, collection, submitter uuid.UUID, md domain.Metadata) (*domain.WorkspaceItem, *domain.Item, error) {
	var err error
	ctx, span := tracer.Start(ctx, "create-workspaceitem")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	item := &domain.Item{
		DSO:                domain.NewDSO(),
		OwningCollectionID: collection,
		SubmitterID:        &submitter,
		Discoverable:       true,
	}
	item.Metadata.Merge(md)

	if err = svc.db.CreateItem(ctx, item); err != nil {
		return nil, nil, err
	}

	ws := &domain.WorkspaceItem{
		ItemID:       item.ID,
		CollectionID: collection,
		SubmitterID:  submitter,
	}

	if err = svc.db.CreateWorkspaceItem(ctx, ws); err != nil {
		svc.db.DeleteItem(ctx, item.ID)
		return nil, nil, err
	}

	return ws, item, nil
}

type WorkflowItemService interface {
	Find(ctx context.Context, id int) (*domain.WorkflowItem, error)
	FindAll(ctx context.Context, limit, offset int) ([]domain.WorkflowItem, error)
	CountTotal(ctx context.Context) (int, error)
	FindBySubmitter(ctx context.Context, submitter uuid.UUID, limit, offset int) ([]domain.WorkflowItem, error)
	CountBySubmitter(ctx context.Context, submitter uuid.UUID) (int, error)
}

func NewWorkflowItemService(db database.Datastore) WorkflowItemService {
	return &workflowSvc{db: db}
}

type workflowSvc struct {
	db database.Datastore
}

func (svc *workflowSvc) Find(ctx context.Context, id int) (*domain.WorkflowItem, error) {
	return svc.db.GetWorkflowItem(ctx, id)
}

func (svc *workflowSvc) FindAll(ctx context.Context, limit, offset int) ([]domain.WorkflowItem, error) {
	return svc.db.ListWorkflowItems(ctx, limit, offset)
}

func (svc *workflowSvc) CountTotal(ctx context.Context) (int, error) {
	return svc.db.CountWorkflowItems(ctx)
}

func (svc *workflowSvc) FindBySubmitter(ctx context.Context, submitter uuid.UUID, limit, offset int) ([]domain.WorkflowItem, error) {
	return svc.db.ListWorkflowItemsBySubmitter(ctx, submitter, limit, offset)
}

func (svc *workflowSvc) CountBySubmitter(ctx context.Context, submitter uuid.UUID) (int, error) {
	return svc.db.CountWorkflowItemsBySubmitter(ctx, submitter)
}
