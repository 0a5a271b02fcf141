package models

// Order is a completed or pending sale.
type Order struct {
	ID            string `json:"id" yaml:"id"`
	SaleNumber    string `json:"sale_number,omitempty" yaml:"sale_number,omitempty"`
	Customer      string `json:"customer,omitempty" yaml:"customer,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty" yaml:"customer_email,omitempty"`
	Cashier       string `json:"cashier,omitempty" yaml:"cashier,omitempty"`
	Date          string `json:"date,omitempty" yaml:"date,omitempty"`
	Amount        string `json:"amount,omitempty" yaml:"amount,omitempty"`
	State         string `json:"status,omitempty" yaml:"status,omitempty"`
	Items         int64  `json:"items,omitempty" yaml:"items,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty" yaml:"payment_method,omitempty"`
	Notes         string `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt     string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

func (o *Order) Type() EntityType { return EntityOrder }

func (o *Order) ItemID() string { return o.ID }

func (o *Order) Fields() []Field {
	var fs fieldSet
	fs.id(o.ID)
	fs.str("sale_number", o.SaleNumber)
	fs.str("customer", o.Customer)
	fs.str("customer_email", o.CustomerEmail)
	fs.str("cashier", o.Cashier)
	fs.str("date", o.Date)
	fs.str("amount", o.Amount)
	fs.str("status", o.State)
	fs.num("items", o.Items)
	fs.str("payment_method", o.PaymentMethod)
	fs.str("notes", o.Notes)
	fs.str("created_at", o.CreatedAt)
	return fs
}

// DisplayName is the customer's name; orders have no name of their own.
func (o *Order) DisplayName() string { return o.Customer }

// DateText returns the sale date, falling back to the creation timestamp.
func (o *Order) DateText() string {
	if o.Date != "" {
		return o.Date
	}
	return o.CreatedAt
}

func (o *Order) PriceText() string { return o.Amount }

func (o *Order) Categories() []string { return nil }

func (o *Order) Status() string { return o.State }

