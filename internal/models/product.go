package models

import "strconv"

// Product is an inventory product.
type Product struct {
	ID            int64    `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	SKU           string   `json:"sku,omitempty" yaml:"sku,omitempty"`
	Barcode       string   `json:"barcode,omitempty" yaml:"barcode,omitempty"`
	CategoryName  string   `json:"category_name,omitempty" yaml:"category_name,omitempty"`
	Category      string   `json:"category,omitempty" yaml:"category,omitempty"` // legacy raw category
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	Price         string   `json:"price,omitempty" yaml:"price,omitempty"`
	CostPrice     string   `json:"cost_price,omitempty" yaml:"cost_price,omitempty"`
	StockQuantity int64    `json:"stock_quantity,omitempty" yaml:"stock_quantity,omitempty"`
	Tags          []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	IsActive      bool     `json:"is_active" yaml:"is_active"`
	CreatedAt     string   `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

func (p *Product) Type() EntityType { return EntityProduct }

func (p *Product) ItemID() string {
	if p.ID == 0 {
		return ""
	}
	return strconv.FormatInt(p.ID, 10)
}

func (p *Product) Fields() []Field {
	var fs fieldSet
	fs.id(p.ItemID())
	fs.str("name", p.Name)
	fs.str("sku", p.SKU)
	fs.str("barcode", p.Barcode)
	fs.str("category_name", p.CategoryName)
	fs.str("category", p.Category)
	fs.str("description", p.Description)
	fs.str("price", p.Price)
	fs.str("cost_price", p.CostPrice)
	fs.num("stock_quantity", p.StockQuantity)
	fs.list("tags", p.Tags)
	fs.str("created_at", p.CreatedAt)
	return fs
}

func (p *Product) DisplayName() string { return p.Name }

func (p *Product) DateText() string { return p.CreatedAt }

func (p *Product) PriceText() string { return p.Price }

// Categories returns the normalized category name and the legacy raw category, when present.
func (p *Product) Categories() []string { return nonEmpty(p.CategoryName, p.Category) }

// Status is empty: products are filtered by category, not status.
func (p *Product) Status() string { return "" }
