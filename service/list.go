package service

import (
	"context"
	"fmt"

	"taxiservice/pkg/models"
	"taxiservice/pkg/pagination"
)

// ListQuery carries the raw list view parameters.
type ListQuery struct {
	Search string
	Page   string
}

type ListResult[T any] struct {
	Items     []T
	Paginator pagination.Paginator
	Page      pagination.Page
	Search    string
}

func (r *ListResult[T]) IsPaginated() bool {
	return r.Paginator.IsPaginated()
}

// paginate counts the matches first so the requested page can be validated
// before the slice is fetched.
func paginate[T any](
	ctx context.Context,
	q ListQuery,
	perPage int,
	count func(context.Context, string) (int, error),
	list func(context.Context, models.ListFilter) ([]T, error),
) (*ListResult[T], error) {
	total, err := count(ctx, q.Search)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}

	p := pagination.New(total, perPage)
	page, err := p.Page(q.Page)
	if err != nil {
		return nil, err
	}

	items, err := list(ctx, models.ListFilter{Search: q.Search, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	return &ListResult[T]{Items: items, Paginator: p, Page: page, Search: q.Search}, nil
}
