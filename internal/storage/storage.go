// Package storage persists the back-office catalog (customers, products and orders) and exposes
// each table as a search source.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/tafuta/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Storage defines catalog persistence operations.
type Storage interface {
	// Customer operations
	UpsertCustomer(ctx context.Context, c *models.Customer) error
	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)

	// Product operations
	UpsertProduct(ctx context.Context, p *models.Product) (created bool, err error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	// Order operations
	UpsertOrder(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context) ([]*models.Order, error)

	// Stats
	Count(ctx context.Context, t models.EntityType) (int64, error)

	Close() error
}
