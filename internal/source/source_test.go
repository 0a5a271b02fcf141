package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperjump/tafuta/internal/models"
)

func TestStatic_FetchCopies(t *testing.T) {
	s := NewStatic("customers", models.EntityCustomer, &models.Customer{ID: 1, Name: "Sarah"})
	items, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	items[0] = nil
	again, _ := s.Fetch(context.Background())
	if again[0] == nil {
		t.Error("Fetch should return a copy of the collection")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Fetch(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestPages(t *testing.T) {
	p := NewPages()
	if p.Type() != models.EntityPage {
		t.Errorf("type: %s", p.Type())
	}
	items, _ := p.Fetch(context.Background())
	if len(items) != len(backOfficePages) {
		t.Fatalf("got %d pages", len(items))
	}
	if items[0].DisplayName() != "Dashboard" {
		t.Errorf("first page: %q", items[0].DisplayName())
	}
}

func TestFile_LoadAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.yaml")
	content := `
- id: 1
  name: Wireless Headphones
  sku: WH-001
  category_name: Electronics
  price: KSh 129
  tags: [audio, wireless]
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	f, err := NewFile("products", models.EntityProduct, path)
	if err != nil {
		t.Fatal(err)
	}
	items, _ := f.Fetch(context.Background())
	if len(items) != 1 {
		t.Fatalf("got %d items", len(items))
	}
	p := items[0].(*models.Product)
	if p.SKU != "WH-001" || len(p.Tags) != 2 {
		t.Errorf("decoded product: %+v", p)
	}

	if err := os.WriteFile(path, []byte(`[{"id": 2, "name": "Lamp"}, {"id": 3, "name": "Desk"}]`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := f.Reload(); err != nil {
		t.Fatal(err)
	}
	items, _ = f.Fetch(context.Background())
	if len(items) != 2 {
		t.Errorf("after reload got %d items", len(items))
	}

	if err := os.WriteFile(path, []byte("{not yaml"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := f.Reload(); err == nil {
		t.Error("expected reload error for broken file")
	}
	items, _ = f.Fetch(context.Background())
	if len(items) != 2 {
		t.Error("failed reload should keep the previous snapshot")
	}
}

func TestFile_Missing(t *testing.T) {
	if _, err := NewFile("x", models.EntityOrder, filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestHTTP_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count": 1, "results": [{"id": "ORD-001", "customer": "Sarah Johnson", "amount": "KSh 234.99"}]}`))
	}))
	defer srv.Close()

	h := NewHTTP("orders", models.EntityOrder, srv.URL, WithBearerToken("secret"), WithClient(srv.Client()))
	items, err := h.Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].DisplayName() != "Sarah Johnson" {
		t.Errorf("items: %+v", items)
	}

	unauth := NewHTTP("orders", models.EntityOrder, srv.URL)
	if _, err := unauth.Fetch(context.Background()); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestOfType(t *testing.T) {
	list := []Source{
		NewStatic("a", models.EntityCustomer),
		NewPages(),
		NewStatic("b", models.EntityCustomer),
	}
	if got := OfType(list, models.EntityCustomer); len(got) != 2 {
		t.Errorf("got %d customer sources", len(got))
	}
}
