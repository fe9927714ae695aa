package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/selatcheck/dashboard/internal/dto"
	"github.com/selatcheck/dashboard/internal/listview"
)

// listPage answers a collection request with one page window plus
// pagination state. Query params: page (1-based) and search. Setting a
// query resets to page 1, then an explicit page navigates within the
// filtered rows; out-of-range pages are ignored.
func listPage[T any](c *fiber.Ctx, rows []T, match listview.Matcher[T]) dto.ListResponse {
	table := listview.NewTable(listview.DefaultPageSize, match)
	table.SetRows(rows)

	if query := c.Query("search"); query != "" {
		table.SetQuery(query)
	}
	if page := c.QueryInt("page", 1); page > 1 {
		table.GoTo(page)
	}

	window := table.Page()
	if window == nil {
		window = []T{}
	}

	return dto.ListResponse{
		Data: window,
		Meta: dto.ListMeta{
			Page:        table.PageIndex(),
			PageSize:    table.PageSize(),
			PageCount:   table.PageCount(),
			Total:       table.Total(),
			HasNext:     table.HasNext(),
			HasPrevious: table.HasPrevious(),
		},
	}
}
