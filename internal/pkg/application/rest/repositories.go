package rest

import (
	"context"
	"strconv"

	"github.com/diwise/api-repository/internal/pkg/application/services/content"
	"github.com/diwise/api-repository/internal/pkg/application/services/eperson"
	"github.com/diwise/api-repository/internal/pkg/application/services/workflow"
	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/google/uuid"
)

type Services struct {
	Communities    content.CommunityService
	Collections    content.CollectionService
	Items          content.ItemService
	Bundles        content.BundleService
	Bitstreams     content.BitstreamService
	EPersons       eperson.EPersonService
	Groups         eperson.GroupService
	WorkspaceItems workflow.WorkspaceItemService
	WorkflowItems  workflow.WorkflowItemService
}

type Repositories struct {
	Communities    Repository[domain.Community, CommunityRest]
	Collections    Repository[domain.Collection, CollectionRest]
	Items          Repository[domain.Item, ItemRest]
	Bundles        Repository[domain.Bundle, BundleRest]
	Bitstreams     Repository[domain.Bitstream, BitstreamRest]
	EPersons       Repository[domain.EPerson, EPersonRest]
	Groups         Repository[domain.Group, GroupRest]
	WorkspaceItems Repository[domain.WorkspaceItem, WorkspaceItemRest]
	WorkflowItems  Repository[domain.WorkflowItem, WorkflowItemRest]

	svc     Services
	convert Converter
}

func NewRepositories(baseURL string, svc Services) *Repositories {
	c := NewConverter(baseURL)

	return &Repositories{
		Communities:    NewRepository("core", "communities", byUUID(svc.Communities.Find), svc.Communities.FindAll, svc.Communities.CountTotal, c.Community),
		Collections:    NewRepository("core", "collections", byUUID(svc.Collections.Find), svc.Collections.FindAll, svc.Collections.CountTotal, c.Collection),
		Items:          NewRepository("core", "items", byUUID(svc.Items.Find), svc.Items.FindAll, svc.Items.CountTotal, c.Item),
		Bundles:        NewRepository("core", "bundles", byUUID(svc.Bundles.Find), svc.Bundles.FindAll, svc.Bundles.CountTotal, c.Bundle),
		Bitstreams:     NewRepository("core", "bitstreams", byUUID(svc.Bitstreams.Find), svc.Bitstreams.FindAll, svc.Bitstreams.CountTotal, c.Bitstream),
		EPersons:       NewRepository("eperson", "epersons", byUUID(svc.EPersons.Find), svc.EPersons.FindAll, svc.EPersons.CountTotal, c.EPerson),
		Groups:         NewRepository("eperson", "groups", byUUID(svc.Groups.Find), svc.Groups.FindAll, svc.Groups.CountTotal, c.Group),
		WorkspaceItems: NewRepository("submission", "workspaceitems", byInt(svc.WorkspaceItems.Find), svc.WorkspaceItems.FindAll, svc.WorkspaceItems.CountTotal, c.WorkspaceItem),
		WorkflowItems:  NewRepository("workflow", "workflowitems", byInt(svc.WorkflowItems.Find), svc.WorkflowItems.FindAll, svc.WorkflowItems.CountTotal, c.WorkflowItem),

		svc:     svc,
		convert: c,
	}
}

// Services returns the services the repositories are backed by.
func (r *Repositories) Services() Services {
	return r.svc
}

func byUUID[M any](find func(context.Context, uuid.UUID) (*M, error)) FindFunc[M] {
	return func(ctx context.Context, id string) (*M, error) {
		u, err := uuid.Parse(id)
		if err != nil {
			return nil, ErrNotFound
		}
		return find(ctx, u)
	}
}

func byInt[M any](find func(context.Context, int) (*M, error)) FindFunc[M] {
	return func(ctx context.Context, id string) (*M, error) {
		i, err := strconv.Atoi(id)
		if err != nil {
			return nil, ErrNotFound
		}
		return find(ctx, i)
	}
}

func (r *Repositories) TopCommunities(ctx context.Context, p Pageable) (Page[CommunityRest], error) {
	return FindPage(ctx, p, r.svc.Communities.FindTop, r.svc.Communities.CountTop, r.convert.Community)
}

func (r *Repositories) Subcommunities(ctx context.Context, id string, p Pageable) (Page[CommunityRest], error) {
	parent, err := r.parent(ctx, id, func(ctx context.Context, u uuid.UUID) error {
		_, err := r.svc.Communities.Find(ctx, u)
		return err
	})
	if err != nil {
		return Page[CommunityRest]{}, err
	}

	return FindPage(ctx, p,
		func(ctx context.Context, limit, offset int) ([]domain.Community, error) {
			return r.svc.Communities.FindSubcommunities(ctx, parent, limit, offset)
		},
		func(ctx context.Context) (int, error) { return r.svc.Communities.CountSubcommunities(ctx, parent) },
		r.convert.Community)
}

func (r *Repositories) CollectionsOfCommunity(ctx context.Context, id string, p Pageable) (Page[CollectionRest], error) {
	community, err := r.parent(ctx, id, func(ctx context.Context, u uuid.UUID) error {
		_, err := r.svc.Communities.Find(ctx, u)
		return err
	})
	if err != nil {
		return Page[CollectionRest]{}, err
	}

	return FindPage(ctx, p,
		func(ctx context.Context, limit, offset int) ([]domain.Collection, error) {
			return r.svc.Collections.FindByCommunity(ctx, community, limit, offset)
		},
		func(ctx context.Context) (int, error) { return r.svc.Collections.CountByCommunity(ctx, community) },
		r.convert.Collection)
}

func (r *Repositories) BundlesOfItem(ctx context.Context, id string, p Pageable) (Page[BundleRest], error) {
	item, err := r.parent(ctx, id, func(ctx context.Context, u uuid.UUID) error {
		_, err := r.svc.Items.Find(ctx, u)
		return err
	})
	if err != nil {
		return Page[BundleRest]{}, err
	}

	return FindPage(ctx, p,
		func(ctx context.Context, limit, offset int) ([]domain.Bundle, error) {
			return r.svc.Bundles.FindByItem(ctx, item, limit, offset)
		},
		func(ctx context.Context) (int, error) { return r.svc.Bundles.CountByItem(ctx, item) },
		r.convert.Bundle)
}

func (r *Repositories) BitstreamsOfBundle(ctx context.Context, id string, p Pageable) (Page[BitstreamRest], error) {
	bundle, err := r.parent(ctx, id, func(ctx context.Context, u uuid.UUID) error {
		_, err := r.svc.Bundles.Find(ctx, u)
		return err
	})
	if err != nil {
		return Page[BitstreamRest]{}, err
	}

	return FindPage(ctx, p,
		func(ctx context.Context, limit, offset int) ([]domain.Bitstream, error) {
			return r.svc.Bitstreams.FindByBundle(ctx, bundle, limit, offset)
		},
		func(ctx context.Context) (int, error) { return r.svc.Bitstreams.CountByBundle(ctx, bundle) },
		r.convert.Bitstream)
}

func (r *Repositories) EPersonByEmail(ctx context.Context, email string) (*EPersonRest, error) {
	if email == "" {
		return nil, ErrBadRequest
	}

	e, err := r.svc.EPersons.FindByEmail(ctx, email)
	if err != nil {
		return nil, wrapStoreError(err)
	}

	result := r.convert.EPerson(e)
	return &result, nil
}

func (r *Repositories) ItemByHandle(ctx context.Context, handle string) (*ItemRest, error) {
	if handle == "" {
		return nil, ErrBadRequest
	}

	item, err := r.svc.Items.FindByHandle(ctx, handle)
	if err != nil {
		return nil, wrapStoreError(err)
	}

	result := r.convert.Item(item)
	return &result, nil
}

func (r *Repositories) WorkspaceItemsBySubmitter(ctx context.Context, submitter string, p Pageable) (Page[WorkspaceItemRest], error) {
	id, err := uuid.Parse(submitter)
	if err != nil {
		return Page[WorkspaceItemRest]{}, ErrBadRequest
	}

	return FindPage(ctx, p,
		func(ctx context.Context, limit, offset int) ([]domain.WorkspaceItem, error) {
			return r.svc.WorkspaceItems.FindBySubmitter(ctx, id, limit, offset)
		},
		func(ctx context.Context) (int, error) { return r.svc.WorkspaceItems.CountBySubmitter(ctx, id) },
		r.convert.WorkspaceItem)
}

func (r *Repositories) WorkflowItemsBySubmitter(ctx context.Context, submitter string, p Pageable) (Page[WorkflowItemRest], error) {
	id, err := uuid.Parse(submitter)
	if err != nil {
		return Page[WorkflowItemRest]{}, ErrBadRequest
	}

	return FindPage(ctx, p,
		func(ctx context.Context, limit, offset int) ([]domain.WorkflowItem, error) {
			return r.svc.WorkflowItems.FindBySubmitter(ctx, id, limit, offset)
		},
		func(ctx context.Context) (int, error) { return r.svc.WorkflowItems.CountBySubmitter(ctx, id) },
		r.convert.WorkflowItem)
}

func (r *Repositories) parent(ctx context.Context, id string, exists func(context.Context, uuid.UUID) error) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrNotFound
	}

	if err = exists(ctx, u); err != nil {
		return uuid.Nil, wrapStoreError(err)
	}

	return u, nil
}
