package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hyperjump/tafuta/internal/models"
)

type dateRangeRequest struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

type priceRangeRequest struct {
	Min float64 `json:"min" validate:"min=0"`
	Max float64 `json:"max" validate:"gtefield=Min"`
}

// filtersRequest is the wire form of models.SearchFilters.
type filtersRequest struct {
	DateRange  *dateRangeRequest  `json:"date_range,omitempty"`
	Categories []string           `json:"categories,omitempty" validate:"omitempty,max=50,dive,required,max=100"`
	Status     []string           `json:"status,omitempty" validate:"omitempty,max=20,dive,required,max=50"`
	PriceRange *priceRangeRequest `json:"price_range,omitempty"`
	SortBy     string             `json:"sort_by,omitempty" validate:"omitempty,oneof=relevance date name price"`
	SortOrder  string             `json:"sort_order,omitempty" validate:"omitempty,oneof=asc desc"`
}

func (req filtersRequest) toFilters() (models.SearchFilters, error) {
	f := models.SearchFilters{
		Categories: req.Categories,
		Status:     req.Status,
		SortBy:     models.SortBy(req.SortBy),
		SortOrder:  models.SortOrder(req.SortOrder),
	}
	if req.DateRange != nil {
		dr, err := models.NewDateRange(req.DateRange.Start, req.DateRange.End)
		if err != nil {
			return models.SearchFilters{}, err
		}
		f.DateRange = dr
	}
	if req.PriceRange != nil {
		f.PriceRange = &models.PriceRange{Min: req.PriceRange.Min, Max: req.PriceRange.Max}
	}
	return f.Normalized(), nil
}

// validationMessage flattens validator errors into one line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
