package rest

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
)

var ErrBadRequest = errors.New("bad request")

const (
	DefaultPageSize int = 20
	MaxPageSize     int = 100
)

// Pageable is a zero based page request.
type Pageable struct {
	Page int
	Size int
}

func NewPageable(page, size int) Pageable {
	return Pageable{Page: page, Size: size}
}

// Offset saturates at math.MaxInt instead of overflowing.
func (p Pageable) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// ParsePageable reads the page and size query parameters. A size of zero
// gives the default size and sizes above the maximum are capped. Pages whose
// offset cannot be represented are rejected.
func ParsePageable(q url.Values) (Pageable, error) {
	p := Pageable{Page: 0, Size: DefaultPageSize}

	var err error

	if v := q.Get("page"); v != "" {
		if p.Page, err = strconv.Atoi(v); err != nil || p.Page < 0 {
			return Pageable{}, fmt.Errorf("%w: invalid page %q", ErrBadRequest, v)
		}
	}

	if v := q.Get("size"); v != "" {
		if p.Size, err = strconv.Atoi(v); err != nil || p.Size < 0 {
			return Pageable{}, fmt.Errorf("%w: invalid size %q", ErrBadRequest, v)
		}
	}

	if p.Size == 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	if p.Page > math.MaxInt/p.Size {
		return Pageable{}, fmt.Errorf("%w: page %d is out of range", ErrBadRequest, p.Page)
	}

	return p, nil
}

type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int
	TotalPages    int
}

func NewPage[T any](content []T, p Pageable, total int) Page[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if p.Size > 0 {
		totalPages = (total + p.Size - 1) / p.Size
	}

	return Page[T]{
		Content:       content,
		Number:        p.Page,
		Size:          p.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

func (p Page[T]) HasNext() bool {
	return p.Number+1 < p.TotalPages
}

func (p Page[T]) HasPrevious() bool {
	return p.Number > 0
}
