package kernel

import "strings"

// PaginationOptions is the page request accepted by list operations
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalize clamps the options into [1, maxSize], using defaultSize when unset
func (p PaginationOptions) Normalize(defaultSize, maxSize int) PaginationOptions {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultSize
	}
	if p.PageSize > maxSize {
		p.PageSize = maxSize
	}
	return p
}

func (p PaginationOptions) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type Page struct {
	Number int `json:"number"`
	Size   int `json:"size"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

// Paginated wraps one page of results
type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}

func NewPaginated[T any](items []T, opts PaginationOptions, total int) Paginated[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if opts.PageSize > 0 {
		pages = (total + opts.PageSize - 1) / opts.PageSize
	}
	return Paginated[T]{
		Items: items,
		Page: Page{
			Number: opts.Page,
			Size:   opts.PageSize,
			Total:  total,
			Pages:  pages,
		},
		Empty: len(items) == 0,
	}
}

// Email is a normalized email address
type Email string

func NewEmail(s string) Email  { return Email(strings.ToLower(strings.TrimSpace(s))) }
func (e Email) String() string { return string(e) }
func (e Email) IsEmpty() bool  { return string(e) == "" }
