package ranking

// RankingConfig holds the per-field weights used by the relevance scorer and the locale used
// for name ordering.
type RankingConfig struct {
	NameWeight         int `yaml:"name_weight"`          // default: 10
	TitleWeight        int `yaml:"title_weight"`         // default: 10
	CustomerWeight     int `yaml:"customer_weight"`      // default: 8
	EmailWeight        int `yaml:"email_weight"`         // default: 8
	SKUWeight          int `yaml:"sku_weight"`           // default: 6
	BarcodeWeight      int `yaml:"barcode_weight"`       // default: 6
	DescriptionWeight  int `yaml:"description_weight"`   // default: 5
	SubjectWeight      int `yaml:"subject_weight"`       // default: 5
	CategoryNameWeight int `yaml:"category_name_weight"` // default: 4
	CategoryWeight     int `yaml:"category_weight"`      // default: 4
	TagsWeight         int `yaml:"tags_weight"`          // default: 3
	IDWeight           int `yaml:"id_weight"`            // default: 2

	// Locale is the BCP 47 tag used to collate display names.
	Locale string `yaml:"locale"` // default: "en"
}

// DefaultRankingConfig returns the default weight table.
func DefaultRankingConfig() *RankingConfig {
	return &RankingConfig{
		// Primary name / title
		NameWeight:  10,
		TitleWeight: 10,

		// Actor identity
		CustomerWeight: 8,
		EmailWeight:    8,

		// Codes
		SKUWeight:     6,
		BarcodeWeight: 6,

		// Free text
		DescriptionWeight: 5,
		SubjectWeight:     5,

		// Classification
		CategoryNameWeight: 4,
		CategoryWeight:     4,
		TagsWeight:         3,

		IDWeight: 2,

		Locale: "en",
	}
}

// ApplyDefaults fills in zero values with defaults. A weight cannot be disabled by setting it
// to zero; use a negative value instead.
func (c *RankingConfig) ApplyDefaults() {
	defaults := DefaultRankingConfig()

	fill := func(v *int, d int) {
		if *v == 0 {
			*v = d
		}
	}
	fill(&c.NameWeight, defaults.NameWeight)
	fill(&c.TitleWeight, defaults.TitleWeight)
	fill(&c.CustomerWeight, defaults.CustomerWeight)
	fill(&c.EmailWeight, defaults.EmailWeight)
	fill(&c.SKUWeight, defaults.SKUWeight)
	fill(&c.BarcodeWeight, defaults.BarcodeWeight)
	fill(&c.DescriptionWeight, defaults.DescriptionWeight)
	fill(&c.SubjectWeight, defaults.SubjectWeight)
	fill(&c.CategoryNameWeight, defaults.CategoryNameWeight)
	fill(&c.CategoryWeight, defaults.CategoryWeight)
	fill(&c.TagsWeight, defaults.TagsWeight)
	fill(&c.IDWeight, defaults.IDWeight)

	if c.Locale == "" {
		c.Locale = defaults.Locale
	}
}

// Weights returns the weight table keyed by item field name. Negative weights are left out.
func (c *RankingConfig) Weights() map[string]int {
	all := map[string]int{
		"name":          c.NameWeight,
		"title":         c.TitleWeight,
		"customer":      c.CustomerWeight,
		"email":         c.EmailWeight,
		"sku":           c.SKUWeight,
		"barcode":       c.BarcodeWeight,
		"description":   c.DescriptionWeight,
		"subject":       c.SubjectWeight,
		"category_name": c.CategoryNameWeight,
		"category":      c.CategoryWeight,
		"tags":          c.TagsWeight,
		"id":            c.IDWeight,
	}
	weights := make(map[string]int, len(all))
	for k, w := range all {
		if w > 0 {
			weights[k] = w
		}
	}
	return weights
}
