package models

// Page is a navigable back-office screen.
type Page struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Path        string `json:"path,omitempty" yaml:"path,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

func (p *Page) Type() EntityType { return EntityPage }

func (p *Page) ItemID() string { return p.ID }

func (p *Page) Fields() []Field {
	var fs fieldSet
	fs.id(p.ID)
	fs.str("title", p.Title)
	fs.str("path", p.Path)
	fs.str("description", p.Description)
	return fs
}

func (p *Page) DisplayName() string { return p.Title }

func (p *Page) DateText() string { return "" }

func (p *Page) PriceText() string { return "" }

func (p *Page) Categories() []string { return nil }

func (p *Page) Status() string { return "" }
