// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

// PageQuery carries pagination, ordering and search parameters for list
// operations. OrderBy and SearchBy must name columns registered for the
// target entity or the operation fails with ErrUnknownColumn.
type PageQuery struct {
	Page        int    // 1-based page number.
	Limit       int    // Records per page; must be >= 1.
	OrderBy     string // Column to order by; empty means the entity's base order column (created_at).
	Desc        bool   // Order descending when true.
	SearchBy    string // Column to apply the substring filter on; empty disables search.
	SearchQuery string // Substring to match; empty disables search.
}

// Page is one page of records plus pagination metadata. TotalRecords and
// TotalPages are computed over the filtered set when a search is applied.
type Page[T any] struct {
	Page         int
	Limit        int
	TotalPages   int
	TotalRecords int64
	Records      []T
}

// FieldMatch is a single column equality condition for field lookups.
type FieldMatch struct {
	Column string
	Value  any
}

// TotalPages computes ceil(totalRecords / limit) with a floor of one page,
// so an empty result set still reports a single (empty) page.
func TotalPages(totalRecords int64, limit int) int {
	if limit < 1 {
		return 1
	}

	pages := int((totalRecords + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		return 1
	}

	return pages
}
