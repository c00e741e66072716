// Package pagination slices an ordered result set into fixed-size pages.
//
// Page numbers are 1-based. An empty result set still has a single empty
// first page, anything else outside [1, NumPages] is rejected.
package pagination

import (
	"errors"
	"strconv"
	"strings"
)

// LastPage selects the final page regardless of the result size.
const LastPage = "last"

var (
	ErrNotAnInteger = errors.New("page number is not an integer")
	ErrEmptyPage    = errors.New("page number is out of range")
)

type Paginator struct {
	Count    int `json:"count"`
	PerPage  int `json:"per_page"`
	NumPages int `json:"num_pages"`
}

type Page struct {
	Number             int  `json:"number"`
	HasNext            bool `json:"has_next"`
	HasPrevious        bool `json:"has_previous"`
	NextPageNumber     int  `json:"next_page_number,omitempty"`
	PreviousPageNumber int  `json:"previous_page_number,omitempty"`
	StartIndex         int  `json:"start_index"`
	EndIndex           int  `json:"end_index"`

	Offset int `json:"-"`
	Limit  int `json:"-"`
}

func New(count, perPage int) Paginator {
	if perPage <= 0 {
		perPage = 1
	}
	if count < 0 {
		count = 0
	}
	numPages := (count + perPage - 1) / perPage
	if numPages == 0 {
		numPages = 1
	}
	return Paginator{Count: count, PerPage: perPage, NumPages: numPages}
}

func (p Paginator) IsPaginated() bool {
	return p.NumPages > 1
}

// Page resolves a raw "page" query value. Empty means the first page.
func (p Paginator) Page(raw string) (Page, error) {
	raw = strings.TrimSpace(raw)

	var number int
	switch raw {
	case "":
		number = 1
	case LastPage:
		number = p.NumPages
	default:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Page{}, ErrNotAnInteger
		}
		number = n
	}
	return p.PageNumber(number)
}

func (p Paginator) PageNumber(number int) (Page, error) {
	if number < 1 || number > p.NumPages {
		return Page{}, ErrEmptyPage
	}

	offset := (number - 1) * p.PerPage
	end := offset + p.PerPage
	if end > p.Count {
		end = p.Count
	}

	page := Page{
		Number:      number,
		HasNext:     number < p.NumPages,
		HasPrevious: number > 1,
		Offset:      offset,
		Limit:       p.PerPage,
		EndIndex:    end,
	}
	if p.Count > 0 {
		page.StartIndex = offset + 1
	}
	if page.HasNext {
		page.NextPageNumber = number + 1
	}
	if page.HasPrevious {
		page.PreviousPageNumber = number - 1
	}
	return page, nil
}
