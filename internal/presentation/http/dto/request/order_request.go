package request

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sangkips/shopdash-api/internal/domain/enum"
	"github.com/sangkips/shopdash-api/internal/domain/repository"
	"github.com/sangkips/shopdash-api/pkg/apperror"
	"github.com/sangkips/shopdash-api/pkg/pagination"
	"github.com/sangkips/shopdash-api/pkg/tablequery"
)

// DateLayout is the format of the start_date and end_date query parameters
const DateLayout = "2006-01-02"

// OrderListQuery represents the query string of the orders table
type OrderListQuery struct {
	Search    string   `form:"search"`
	Status    []string `form:"status"`
	StartDate string   `form:"start_date"`
	EndDate   string   `form:"end_date"`
	SortBy    string   `form:"sort_by"`
	SortOrder string   `form:"sort_order"`
	Page      int      `form:"page"`
	PerPage   int      `form:"per_page"`
}

// ToFilterParams validates the query and converts it to filter parameters.
// An inverted date range is not a validation error; it is reported on the
// result and disables date filtering.
func (q *OrderListQuery) ToFilterParams() (*repository.OrderFilterParams, error) {
	var fieldErrors []apperror.FieldError

	params := &repository.OrderFilterParams{
		Search:    q.Search,
		SortBy:    enum.ParseOrderSortField(q.SortBy),
		SortOrder: tablequery.ParseDirection(q.SortOrder),
		Pagination: &pagination.PaginationParams{
			Page:    q.Page,
			PerPage: q.PerPage,
		},
	}
	if q.PerPage == 0 {
		params.Pagination.PerPage = pagination.DefaultPerPage
	} else if !slices.Contains(pagination.PerPageOptions, q.PerPage) {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "per_page",
			Message: fmt.Sprintf("must be one of %v", pagination.PerPageOptions),
		})
	}
	if q.Page < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "page", Message: "must not be negative"})
	}

	for _, s := range q.Status {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		params.Statuses = append(params.Statuses, enum.ParseReceiptStatus(s))
	}

	var err error
	if params.StartDate, err = parseDate(q.StartDate); err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "start_date", Message: err.Error()})
	}
	if params.EndDate, err = parseDate(q.EndDate); err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "end_date", Message: err.Error()})
	}

	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}
	return params, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, errors.New("must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}
