package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/tafuta/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist. ":memory:" opens a private in-memory
// database.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every pooled connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS customers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		phone TEXT,
		email TEXT,
		tier TEXT,
		total_points INTEGER DEFAULT 0,
		lifetime_purchases TEXT,
		address TEXT,
		location TEXT,
		is_active INTEGER DEFAULT 1,
		status TEXT,
		created_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_customers_email ON customers(email);

	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		sku TEXT,
		barcode TEXT UNIQUE,
		category_name TEXT,
		category TEXT,
		description TEXT,
		price TEXT,
		cost_price TEXT,
		stock_quantity INTEGER DEFAULT 0,
		tags TEXT,
		is_active INTEGER DEFAULT 1,
		created_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_name);

	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		sale_number TEXT,
		customer TEXT,
		customer_email TEXT,
		cashier TEXT,
		date TEXT,
		amount TEXT,
		status TEXT,
		items INTEGER DEFAULT 0,
		payment_method TEXT,
		notes TEXT,
		created_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_orders_date ON orders(date);
	`
	_, err := db.Exec(schema)
	return err
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

const customerColumns = `id, name, phone, email, tier, total_points, lifetime_purchases, address, location,
	is_active, status, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row scanner) (*models.Customer, error) {
	var c models.Customer
	var phone, email, tier, lifetime, address, location, status, created sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &phone, &email, &tier, &c.TotalPoints, &lifetime, &address,
		&location, &c.IsActive, &status, &created); err != nil {
		return nil, err
	}
	c.Phone, c.Email, c.Tier = phone.String, email.String, tier.String
	c.LifetimePurchases, c.Address, c.Location = lifetime.String, address.String, location.String
	c.State, c.CreatedAt = status.String, created.String
	return &c, nil
}

// UpsertCustomer inserts c, or replaces the row with the same ID. A zero ID is assigned by the
// database.
func (s *SQLiteStorage) UpsertCustomer(ctx context.Context, c *models.Customer) error {
	if c.CreatedAt == "" {
		c.CreatedAt = now()
	}
	var id any
	if c.ID != 0 {
		id = c.ID
	}
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO customers (`+customerColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, phone = excluded.phone, email = excluded.email, tier = excluded.tier,
			total_points = excluded.total_points, lifetime_purchases = excluded.lifetime_purchases,
			address = excluded.address, location = excluded.location, is_active = excluded.is_active,
			status = excluded.status`,
		id, c.Name, c.Phone, c.Email, c.Tier, c.TotalPoints, c.LifetimePurchases, c.Address, c.Location,
		c.IsActive, c.State, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert customer: %w", err)
	}
	if c.ID == 0 {
		c.ID, _ = result.LastInsertId()
	}
	return nil
}

// GetCustomer returns a customer by ID.
func (s *SQLiteStorage) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	c, err := scanCustomer(s.db.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("customer %d: %w", id, ErrNotFound)
	}
	return c, err
}

// ListCustomers returns all customers ordered by ID.
func (s *SQLiteStorage) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const productColumns = `id, name, sku, barcode, category_name, category, description, price, cost_price,
	stock_quantity, tags, is_active, created_at`

func scanProduct(row scanner) (*models.Product, error) {
	var p models.Product
	var sku, barcode, categoryName, category, description, price, costPrice, tags, created sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &sku, &barcode, &categoryName, &category, &description, &price,
		&costPrice, &p.StockQuantity, &tags, &p.IsActive, &created); err != nil {
		return nil, err
	}
	p.SKU, p.Barcode, p.CategoryName, p.Category = sku.String, barcode.String, categoryName.String, category.String
	p.Description, p.Price, p.CostPrice, p.CreatedAt = description.String, price.String, costPrice.String, created.String
	if tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &p.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}
	return &p, nil
}

// UpsertProduct inserts p or updates an existing row. An existing row is found by barcode
// first, then by ID. On update p.ID is set to the stored row's ID. created reports whether a
// new row was inserted.
func (s *SQLiteStorage) UpsertProduct(ctx context.Context, p *models.Product) (bool, error) {
	tagsJSON, err := json.Marshal(p.Tags)
	if err != nil {
		return false, fmt.Errorf("failed to marshal tags: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var existing int64
	if p.Barcode != "" {
		err = tx.QueryRowContext(ctx, `SELECT id FROM products WHERE barcode = ?`, p.Barcode).Scan(&existing)
	} else if p.ID != 0 {
		err = tx.QueryRowContext(ctx, `SELECT id FROM products WHERE id = ?`, p.ID).Scan(&existing)
	} else {
		err = sql.ErrNoRows
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}

	if existing != 0 {
		p.ID = existing
		_, err = tx.ExecContext(ctx,
			`UPDATE products SET name = ?, sku = ?, barcode = ?, category_name = ?, category = ?,
				description = ?, price = ?, cost_price = ?, stock_quantity = ?, tags = ?, is_active = ?
			 WHERE id = ?`,
			p.Name, p.SKU, nullIfEmpty(p.Barcode), p.CategoryName, p.Category, p.Description, p.Price,
			p.CostPrice, p.StockQuantity, string(tagsJSON), p.IsActive, p.ID,
		)
		if err != nil {
			return false, fmt.Errorf("failed to update product: %w", err)
		}
		return false, tx.Commit()
	}

	if p.CreatedAt == "" {
		p.CreatedAt = now()
	}
	var id any
	if p.ID != 0 {
		id = p.ID
	}
	result, err := tx.ExecContext(ctx,
		`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Name, p.SKU, nullIfEmpty(p.Barcode), p.CategoryName, p.Category, p.Description, p.Price,
		p.CostPrice, p.StockQuantity, string(tagsJSON), p.IsActive, p.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert product: %w", err)
	}
	if p.ID == 0 {
		p.ID, _ = result.LastInsertId()
	}
	return true, tx.Commit()
}

// GetProduct returns a product by ID.
func (s *SQLiteStorage) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	p, err := scanProduct(s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return p, err
}

// GetProductByBarcode returns the product carrying barcode.
func (s *SQLiteStorage) GetProductByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	p, err := scanProduct(s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE barcode = ?`, barcode))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product with barcode %s: %w", barcode, ErrNotFound)
	}
	return p, err
}

// ListProducts returns all products ordered by ID.
func (s *SQLiteStorage) ListProducts(ctx context.Context) ([]*models.Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteProduct removes a product by ID.
func (s *SQLiteStorage) DeleteProduct(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}

const orderColumns = `id, sale_number, customer, customer_email, cashier, date, amount, status, items,
	payment_method, notes, created_at`

func scanOrder(row scanner) (*models.Order, error) {
	var o models.Order
	var sale, customer, email, cashier, date, amount, status, payment, notes, created sql.NullString
	if err := row.Scan(&o.ID, &sale, &customer, &email, &cashier, &date, &amount, &status, &o.Items,
		&payment, &notes, &created); err != nil {
		return nil, err
	}
	o.SaleNumber, o.Customer, o.CustomerEmail, o.Cashier = sale.String, customer.String, email.String, cashier.String
	o.Date, o.Amount, o.State = date.String, amount.String, status.String
	o.PaymentMethod, o.Notes, o.CreatedAt = payment.String, notes.String, created.String
	return &o, nil
}

// UpsertOrder inserts o or replaces the row with the same ID. Orders must carry an ID.
func (s *SQLiteStorage) UpsertOrder(ctx context.Context, o *models.Order) error {
	if o.ID == "" {
		return errors.New("order id is required")
	}
	if o.CreatedAt == "" {
		o.CreatedAt = now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO orders (`+orderColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			sale_number = excluded.sale_number, customer = excluded.customer,
			customer_email = excluded.customer_email, cashier = excluded.cashier, date = excluded.date,
			amount = excluded.amount, status = excluded.status, items = excluded.items,
			payment_method = excluded.payment_method, notes = excluded.notes`,
		o.ID, o.SaleNumber, o.Customer, o.CustomerEmail, o.Cashier, o.Date, o.Amount, o.State, o.Items,
		o.PaymentMethod, o.Notes, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert order: %w", err)
	}
	return nil
}

// GetOrder returns an order by ID.
func (s *SQLiteStorage) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	o, err := scanOrder(s.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return o, err
}

// ListOrders returns all orders, newest first.
func (s *SQLiteStorage) ListOrders(ctx context.Context) ([]*models.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY COALESCE(NULLIF(date, ''), created_at) DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Count returns the number of stored records of type t.
func (s *SQLiteStorage) Count(ctx context.Context, t models.EntityType) (int64, error) {
	var table string
	switch t {
	case models.EntityCustomer:
		table = "customers"
	case models.EntityProduct:
		table = "products"
	case models.EntityOrder:
		table = "orders"
	default:
		return 0, fmt.Errorf("%w: %q is not stored", models.ErrUnknownEntityType, t)
	}
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
