package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/tafuta/data/catalog.db"
	}
	if cfg.Search.HistorySize == 0 {
		cfg.Search.HistorySize = 10
	}
	if cfg.Search.MaxConcurrentSources == 0 {
		cfg.Search.MaxConcurrentSources = 4
	}
	if cfg.Search.DefaultSortBy == "" {
		cfg.Search.DefaultSortBy = "relevance"
	}
	if cfg.Search.DefaultSortOrder == "" {
		cfg.Search.DefaultSortOrder = "desc"
	}
	cfg.Ranking.ApplyDefaults()
	for i := range cfg.Sources {
		s := &cfg.Sources[i]
		if s.Kind == "" {
			s.Kind = SourceSQLite
		}
		if s.Name == "" {
			s.Name = s.Kind + ":" + s.Type
		}
	}
	// With no sources declared, search the catalog database.
	if cfg.Sources == nil {
		cfg.Sources = []SourceConfig{
			{Name: "customers", Type: "customer", Kind: SourceSQLite},
			{Name: "products", Type: "product", Kind: SourceSQLite},
			{Name: "orders", Type: "order", Kind: SourceSQLite},
		}
	}
	if cfg.Watch.DebounceMS == 0 {
		cfg.Watch.DebounceMS = 400
	}
}
