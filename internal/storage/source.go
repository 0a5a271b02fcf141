package storage

import (
	"context"
	"fmt"

	"github.com/hyperjump/tafuta/internal/models"
	"github.com/hyperjump/tafuta/internal/source"
)

// Source exposes the table holding entities of type t as a search source named name.
func Source(st Storage, name string, t models.EntityType) (source.Source, error) {
	var fetch source.FetchFunc
	switch t {
	case models.EntityCustomer:
		fetch = func(ctx context.Context) ([]models.Item, error) {
			list, err := st.ListCustomers(ctx)
			return items(list), err
		}
	case models.EntityProduct:
		fetch = func(ctx context.Context) ([]models.Item, error) {
			list, err := st.ListProducts(ctx)
			return items(list), err
		}
	case models.EntityOrder:
		fetch = func(ctx context.Context) ([]models.Item, error) {
			list, err := st.ListOrders(ctx)
			return items(list), err
		}
	default:
		return nil, fmt.Errorf("%w: %q is not stored", models.ErrUnknownEntityType, t)
	}
	return source.NewFunc(name, t, fetch), nil
}

func items[T models.Item](list []T) []models.Item {
	out := make([]models.Item, len(list))
	for i, v := range list {
		out[i] = v
	}
	return out
}
