package rest

import (
	"context"
	"errors"
	"fmt"

	"github.com/diwise/api-repository/internal/pkg/infrastructure/repositories/database"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotFound = errors.New("not found")
	ErrStore    = errors.New("store failure")
)

type FindFunc[M any] func(ctx context.Context, id string) (*M, error)
type ListFunc[M any] func(ctx context.Context, limit, offset int) ([]M, error)
type CountFunc func(ctx context.Context) (int, error)

// Repository turns a service into pages of rest resources.
type Repository[M any, R any] struct {
	Category string
	Name     string

	find    FindFunc[M]
	list    ListFunc[M]
	count   CountFunc
	convert func(*M) R
}

func NewRepository[M any, R any](category, name string, find FindFunc[M], list ListFunc[M], count CountFunc, convert func(*M) R) Repository[M, R] {
	return Repository[M, R]{
		Category: category,
		Name:     name,
		find:     find,
		list:     list,
		count:    count,
		convert:  convert,
	}
}

func (r Repository[M, R]) FindOne(ctx context.Context, id string) (*R, error) {
	m, err := r.find(ctx, id)
	if err != nil {
		return nil, wrapStoreError(err)
	}

	result := r.convert(m)
	return &result, nil
}

func (r Repository[M, R]) FindAll(ctx context.Context, p Pageable) (Page[R], error) {
	return FindPage(ctx, p, r.list, r.count, r.convert)
}

// FindPage fetches one page and the total count concurrently.
func FindPage[M any, R any](ctx context.Context, p Pageable, list ListFunc[M], count CountFunc, convert func(*M) R) (Page[R], error) {
	var models []M
	var total int

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		models, err = list(gctx, p.Size, p.Offset())
		return err
	})

	g.Go(func() error {
		var err error
		total, err = count(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Page[R]{}, wrapStoreError(err)
	}

	content := make([]R, 0, len(models))
	for i := range models {
		content = append(content, convert(&models[i]))
	}

	return NewPage(content, p, total), nil
}

func wrapStoreError(err error) error {
	if errors.Is(err, database.ErrNotFound) || errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %s", ErrStore, err.Error())
}
