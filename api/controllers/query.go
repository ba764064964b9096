package controllers

import (
	"net/http"
	"strings"

	"github.com/soft99/storefront-backend/api/validators"
	"github.com/soft99/storefront-backend/internal/catalog"
	"github.com/soft99/storefront-backend/pkg/enums"
	pkgerrors "github.com/soft99/storefront-backend/pkg/errors"
	"github.com/soft99/storefront-backend/pkg/models"
	"github.com/soft99/storefront-backend/pkg/pagination"
)

const (
	maxQueryLength = 200
	maxPage        = 100000
	defaultLimit   = 8
	maxLimit       = 50
)

// parseProductFilters reads the product listing filters from the query
// string. status is only honoured when allowStatus is set.
func parseProductFilters(r *http.Request, allowStatus bool) (*models.ProductFilters, error) {
	filters := &models.ProductFilters{
		Category: validators.ParseQueryString(r, "category", maxQueryLength),
		Brand:    validators.ParseQueryString(r, "brand", maxQueryLength),
		Search:   validators.ParseQueryString(r, "search", maxQueryLength),
	}

	if raw := validators.ParseQueryString(r, "type", maxQueryLength); raw != nil {
		t, err := enums.ParseProductType(*raw)
		if err != nil {
			return nil, invalidQuery("type", err)
		}
		filters.Type = &t
	}
	if raw := validators.ParseQueryString(r, "stockStatus", maxQueryLength); raw != nil {
		s, err := enums.ParseStockStatus(*raw)
		if err != nil {
			return nil, invalidQuery("stockStatus", err)
		}
		filters.StockStatus = &s
	}
	if allowStatus {
		if raw := validators.ParseQueryString(r, "status", maxQueryLength); raw != nil {
			s, err := enums.ParseProductStatus(*raw)
			if err != nil {
				return nil, invalidQuery("status", err)
			}
			filters.Status = &s
		}
	}

	var err error
	if filters.MinPrice, err = validators.ParseQueryFloat(r, "minPrice"); err != nil {
		return nil, err
	}
	if filters.MaxPrice, err = validators.ParseQueryFloat(r, "maxPrice"); err != nil {
		return nil, err
	}
	if filters.IsNew, err = validators.ParseQueryBool(r, "isNew"); err != nil {
		return nil, err
	}
	if filters.IsFeatured, err = validators.ParseQueryBool(r, "isFeatured"); err != nil {
		return nil, err
	}
	return filters, nil
}

// parseBrowseInput combines filters, sort and paging. Unknown sort values
// keep the provider's order.
func parseBrowseInput(r *http.Request, allowStatus bool) (catalog.BrowseInput, error) {
	filters, err := parseProductFilters(r, allowStatus)
	if err != nil {
		return catalog.BrowseInput{}, err
	}
	page, perPage, err := parsePaging(r)
	if err != nil {
		return catalog.BrowseInput{}, err
	}
	return catalog.BrowseInput{
		Filters: filters,
		Sort:    enums.SortOption(strings.TrimSpace(r.URL.Query().Get("sort"))),
		Page:    page,
		PerPage: perPage,
	}, nil
}

func parsePaging(r *http.Request) (int, int, error) {
	page, err := validators.ParseQueryInt(r, "page", 1, 1, maxPage)
	if err != nil {
		return 0, 0, err
	}
	perPage, err := validators.ParseQueryInt(r, "perPage", pagination.DefaultPerPage, 1, pagination.MaxPerPage)
	if err != nil {
		return 0, 0, err
	}
	return page, perPage, nil
}

func parseLimit(r *http.Request) (int, error) {
	return validators.ParseQueryInt(r, "limit", defaultLimit, 1, maxLimit)
}

func invalidQuery(field string, err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid query parameter").
		WithDetails(map[string]any{"field": field})
}
