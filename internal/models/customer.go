package models

import "strconv"

// Customer is a loyalty-programme customer record.
type Customer struct {
	ID                int64  `json:"id" yaml:"id"`
	Name              string `json:"name" yaml:"name"`
	Phone             string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email             string `json:"email,omitempty" yaml:"email,omitempty"`
	Tier              string `json:"tier,omitempty" yaml:"tier,omitempty"`
	TotalPoints       int64  `json:"total_points,omitempty" yaml:"total_points,omitempty"`
	LifetimePurchases string `json:"lifetime_purchases,omitempty" yaml:"lifetime_purchases,omitempty"`
	Address           string `json:"address,omitempty" yaml:"address,omitempty"`
	Location          string `json:"location,omitempty" yaml:"location,omitempty"`
	IsActive          bool   `json:"is_active" yaml:"is_active"`
	State             string `json:"status,omitempty" yaml:"status,omitempty"`
	CreatedAt         string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

func (c *Customer) Type() EntityType { return EntityCustomer }

func (c *Customer) ItemID() string {
	if c.ID == 0 {
		return ""
	}
	return strconv.FormatInt(c.ID, 10)
}

func (c *Customer) Fields() []Field {
	var fs fieldSet
	fs.id(c.ItemID())
	fs.str("name", c.Name)
	fs.str("phone", c.Phone)
	fs.str("email", c.Email)
	fs.str("tier", c.Tier)
	fs.num("total_points", c.TotalPoints)
	fs.str("lifetime_purchases", c.LifetimePurchases)
	fs.str("address", c.Address)
	fs.str("location", c.Location)
	fs.str("status", c.Status())
	fs.str("created_at", c.CreatedAt)
	return fs
}

func (c *Customer) DisplayName() string { return c.Name }

func (c *Customer) DateText() string { return c.CreatedAt }

// PriceText is empty: customers carry no price.
func (c *Customer) PriceText() string { return "" }

func (c *Customer) Categories() []string { return nil }

// Status returns the explicit status when set, otherwise one derived from IsActive.
func (c *Customer) Status() string {
	if c.State != "" {
		return c.State
	}
	if c.IsActive {
		return "Active"
	}
	return "Inactive"
}
