package handler

import (
	"stencil/internal/delivery/http/middleware"
	"stencil/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// listQuery carries the pagination, ordering and search query parameters
// shared by every paginated list endpoint.
type listQuery struct {
	Page        int    `query:"page" validate:"omitempty,min=1"`
	Limit       int    `query:"limit" validate:"omitempty,min=1,max=100"`
	OrderBy     string `query:"order_by"`
	Desc        bool   `query:"desc"`
	SearchBy    string `query:"search_by"`
	SearchQuery string `query:"search_query"`
}

func (q listQuery) toListInput() usecase.ListInput {
	return usecase.ListInput{
		Page:        q.Page,
		Limit:       q.Limit,
		OrderBy:     q.OrderBy,
		Desc:        q.Desc,
		SearchBy:    q.SearchBy,
		SearchQuery: q.SearchQuery,
	}
}

// idList carries the record ids targeted by a bulk fetch or delete.
type idList struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1,dive,required"`
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "invalid id path parameter")
	}

	return id, nil
}

// currentUserID returns the authenticated caller's id set by the auth
// middleware.
func currentUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)

	return userID, ok
}
