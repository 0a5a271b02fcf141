package source

import "github.com/hyperjump/tafuta/internal/models"

// backOfficePages are the navigable dashboard screens.
var backOfficePages = []*models.Page{
	{ID: "dashboard", Title: "Dashboard", Path: "/dashboard", Description: "Sales overview, revenue and recent activity"},
	{ID: "customers", Title: "Customers", Path: "/customers", Description: "Customer records and loyalty tiers"},
	{ID: "pos", Title: "Point of Sale", Path: "/pos", Description: "Ring up sales at the till"},
	{ID: "sales", Title: "Sales", Path: "/sales", Description: "Completed, pending and refunded sales"},
	{ID: "orders", Title: "Orders", Path: "/orders", Description: "Order history and status tracking"},
	{ID: "products", Title: "Products", Path: "/products", Description: "Product catalogue, prices and barcodes"},
	{ID: "categories", Title: "Categories", Path: "/categories", Description: "Product categories"},
	{ID: "suppliers", Title: "Suppliers", Path: "/suppliers", Description: "Supplier contacts and purchase terms"},
	{ID: "branches", Title: "Branches", Path: "/branches", Description: "Store branches and locations"},
	{ID: "inventory", Title: "Inventory", Path: "/inventory", Description: "Stock levels, movements and reorder alerts"},
	{ID: "users", Title: "Users", Path: "/users", Description: "Staff accounts and roles"},
	{ID: "shifts", Title: "Shift Management", Path: "/shifts", Description: "Open and close cashier shifts"},
	{ID: "reports", Title: "Reports", Path: "/reports", Description: "Sales, inventory and financial reports"},
	{ID: "cash", Title: "Cash", Path: "/cash", Description: "Cash drawer reconciliation"},
	{ID: "settings", Title: "Settings", Path: "/settings", Description: "System configuration"},
	{ID: "profile", Title: "Profile", Path: "/profile", Description: "Your account and password"},
}

// NewPages returns a Static source over the built-in back-office pages.
func NewPages() *Static {
	items := make([]models.Item, len(backOfficePages))
	for i, p := range backOfficePages {
		cp := *p
		items[i] = &cp
	}
	return NewStatic("pages", models.EntityPage, items...)
}
