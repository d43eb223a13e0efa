package rest

import (
	"context"
	"strconv"

	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/google/uuid"
)

// ItemOfFunc finds the item an object with the given id belongs to.
type ItemOfFunc func(ctx context.Context, id string) (*domain.Item, error)

func (r *Repositories) ItemByID(ctx context.Context, id string) (*domain.Item, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findItem(ctx, u)
}

func (r *Repositories) ItemOfBundle(ctx context.Context, id string) (*domain.Item, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	b, err := r.svc.Bundles.Find(ctx, u)
	if err != nil {
		return nil, wrapStoreError(err)
	}

	return r.findItem(ctx, b.ItemID)
}

func (r *Repositories) ItemOfBitstream(ctx context.Context, id string) (*domain.Item, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	b, err := r.svc.Bitstreams.Find(ctx, u)
	if err != nil {
		return nil, wrapStoreError(err)
	}

	return r.ItemOfBundle(ctx, b.BundleID.String())
}

func (r *Repositories) ItemOfWorkspaceItem(ctx context.Context, id string) (*domain.Item, error) {
	i, err := strconv.Atoi(id)
	if err != nil {
		return nil, ErrNotFound
	}

	ws, err := r.svc.WorkspaceItems.Find(ctx, i)
	if err != nil {
		return nil, wrapStoreError(err)
	}

	return r.findItem(ctx, ws.ItemID)
}

func (r *Repositories) ItemOfWorkflowItem(ctx context.Context, id string) (*domain.Item, error) {
	i, err := strconv.Atoi(id)
	if err != nil {
		return nil, ErrNotFound
	}

	wf, err := r.svc.WorkflowItems.Find(ctx, i)
	if err != nil {
		return nil, wrapStoreError(err)
	}

	return r.findItem(ctx, wf.ItemID)
}

func (r *Repositories) findItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	item, err := r.svc.Items.Find(ctx, id)
	if err != nil {
		return nil, wrapStoreError(err)
	}
	return item, nil
}
