// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import "stencil/internal/domain/repository"

// ListInput carries the pagination, ordering and search parameters shared by
// every paginated list operation.
type ListInput struct {
	Page        int
	Limit       int
	OrderBy     string
	Desc        bool
	SearchBy    string
	SearchQuery string
}

// ToPageQuery converts the input to the repository's page query, applying
// the default page and page size.
func (in ListInput) ToPageQuery() repository.PageQuery {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 {
		in.Limit = 10
	}

	return repository.PageQuery{
		Page:        in.Page,
		Limit:       in.Limit,
		OrderBy:     in.OrderBy,
		Desc:        in.Desc,
		SearchBy:    in.SearchBy,
		SearchQuery: in.SearchQuery,
	}
}
