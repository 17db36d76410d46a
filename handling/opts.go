package handling

import (
	"net/http"
	"stitchmart_server/services"
	"stitchmart_server/structs/tables"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ParseProductListOptions parses HTTP query parameters into ProductListOptions
func ParseProductListOptions(r *http.Request) (*services.ProductListOptions, error) {
	query := r.URL.Query()

	if len(query) == 0 {
		return &services.ProductListOptions{}, nil
	}

	opts := &services.ProductListOptions{}
	var err error
	var valInt int
	var valBool bool

	if page := query.Get("page"); page != "" {
		if valInt, err = strconv.Atoi(page); err != nil {
			return nil, err
		}
		opts.Page = valInt
	}

	if pageSize := query.Get("page_size"); pageSize != "" {
		if valInt, err = strconv.Atoi(pageSize); err != nil {
			return nil, err
		}
		opts.PageSize = valInt
	}

	if category := query.Get("category"); category != "" {
		id, err := uuid.Parse(category)
		if err != nil {
			return nil, err
		}
		opts.CategoryId = &id
	}

	if brand := query.Get("brand"); brand != "" {
		opts.Brand = brand
	}

	if searchTerm := query.Get("search"); searchTerm != "" {
		opts.SearchTerm = searchTerm
	}

	if minPrice := query.Get("min_price"); minPrice != "" {
		min, err := strconv.ParseUint(minPrice, 10, 64)
		if err != nil {
			return nil, err
		}
		opts.MinPrice = &min
	}

	if maxPrice := query.Get("max_price"); maxPrice != "" {
		max, err := strconv.ParseUint(maxPrice, 10, 64)
		if err != nil {
			return nil, err
		}
		opts.MaxPrice = &max
	}

	if sizes := query.Get("sizes"); sizes != "" {
		opts.Sizes = splitAndTrim(sizes)
	}

	if inStock := query.Get("in_stock"); inStock != "" {
		if valBool, err = strconv.ParseBool(inStock); err != nil {
			return nil, err
		}
		opts.InStock = &valBool
	}

	if minRating := query.Get("min_rating"); minRating != "" {
		rating, err := strconv.ParseFloat(minRating, 64)
		if err != nil {
			return nil, err
		}
		opts.MinRating = &rating
	}

	if sortBy := query.Get("sort"); sortBy != "" {
		opts.SortBy = sortBy
	}

	if includeImages := query.Get("include_images"); includeImages != "" {
		if valBool, err = strconv.ParseBool(includeImages); err != nil {
			return nil, err
		}
		opts.IncludeImages = valBool
	}

	return opts, nil
}

// ParsePagination reads plain page/page_size parameters.
func ParsePagination(r *http.Request) (page, pageSize int, err error) {
	query := r.URL.Query()

	if p := query.Get("page"); p != "" {
		if page, err = strconv.Atoi(p); err != nil {
			return 0, 0, err
		}
	}
	if ps := query.Get("page_size"); ps != "" {
		if pageSize, err = strconv.Atoi(ps); err != nil {
			return 0, 0, err
		}
	}
	return page, pageSize, nil
}

// ParseOrderListOptions reads order list filters; the caller fills in
// the user scope.
func ParseOrderListOptions(r *http.Request) (*services.OrderListOptions, error) {
	opts := &services.OrderListOptions{}

	page, pageSize, err := ParsePagination(r)
	if err != nil {
		return nil, err
	}
	opts.Page = page
	opts.PageSize = pageSize

	if status := r.URL.Query().Get("status"); status != "" {
		opts.Status = tables.OrderStatus(status)
	}

	return opts, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
