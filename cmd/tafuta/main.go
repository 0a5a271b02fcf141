// Package main is the Tafuta CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/tafuta/internal/cli"
	"github.com/hyperjump/tafuta/internal/config"
	"github.com/hyperjump/tafuta/internal/filter"
	"github.com/hyperjump/tafuta/internal/importer"
	"github.com/hyperjump/tafuta/internal/models"
	"github.com/hyperjump/tafuta/internal/ranking"
	"github.com/hyperjump/tafuta/internal/search"
	"github.com/hyperjump/tafuta/internal/server"
	"github.com/hyperjump/tafuta/internal/session"
	"github.com/hyperjump/tafuta/internal/source"
	"github.com/hyperjump/tafuta/internal/storage"
	"github.com/hyperjump/tafuta/internal/watcher"
	"github.com/hyperjump/tafuta/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/tafuta/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "filter":
		runFilter()
	case "import":
		runImport()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("tafuta version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (source scans, stale searches, fixture reloads)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	cfg.Debug = debugMode
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Watch.Enabled && len(components.Files) > 0 {
		watchSvc := watcher.ForSources(components.Files,
			watcher.WithLogger(logger),
			watcher.WithDebounce(time.Duration(cfg.Watch.DebounceMS)*time.Millisecond))
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		logger.Info("watching fixture files", zap.Strings("files", watchSvc.Files()))
	}

	sessions := session.NewManager(components.Engine, logger,
		session.WithHistorySize(cfg.Search.HistorySize),
		session.WithFilters(defaultFilters(cfg)))

	srv := server.NewServer(components.Engine, sessions, components.store(), cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// printSearchUsage prints search subcommand usage.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: tafuta search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Every customer, product, order and back-office page whose fields contain the query
(case-insensitive) is returned, best matches first.
  • --sort-by date|name|price reorders the hits; --sort-order asc|desc sets the direction.
  • Relevance is always highest first.

Examples:
  tafuta search sarah
  tafuta search "wireless head"
  tafuta search --sort-by price --sort-order asc lamp
  tafuta search --server http://localhost:8080 --output json WH-001
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// configPathFromArgs returns the value of -config/--config from args if present, else defaultPath.
func configPathFromArgs(args []string, defaultPath string) string {
	for i, a := range args {
		if (a == "-config" || a == "--config") && i+1 < len(args) {
			return args[i+1]
		}
	}
	return defaultPath
}

// sortDefaultsFromConfig loads config at path and returns its default sort key and order.
// On load failure, returns relevance and desc.
func sortDefaultsFromConfig(path string) (sortBy, sortOrder string) {
	sortBy, sortOrder = string(models.SortByRelevance), string(models.SortDesc)
	cfg, _, err := loadConfig(path)
	if err != nil || cfg == nil {
		return sortBy, sortOrder
	}
	return cfg.Search.DefaultSortBy, cfg.Search.DefaultSortOrder
}

// searchArgsReorder moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument, so "tafuta search sarah -sort-by date"
// would otherwise leave -sort-by unparsed.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func defaultFilters(cfg *config.Config) models.SearchFilters {
	return models.SearchFilters{
		SortBy:    models.SortBy(cfg.Search.DefaultSortBy),
		SortOrder: models.SortOrder(cfg.Search.DefaultSortOrder),
	}.Normalized()
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])
	configPath := configPathFromArgs(searchArgs, defaultConfigPath)
	defaultSortBy, defaultSortOrder := sortDefaultsFromConfig(configPath)

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPathFlag := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = search the configured sources directly)")
	sortBy := fs.String("sort-by", defaultSortBy, "sort key: relevance, date, name or price")
	sortOrder := fs.String("sort-order", defaultSortOrder, "sort direction for date, name and price: asc or desc")
	outputFormat := fs.String("output", "text", "output format: text (human-readable), compact (one result per line), or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	filters, err := buildFilters(filterFlags{sortBy: *sortBy, sortOrder: *sortOrder})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	start := time.Now()

	var results []models.SearchResult
	if *serverURL != "" {
		results, err = searchViaHTTP(ctx, *serverURL, queryStr, filters)
	} else {
		results, err = searchDirect(ctx, *configPathFlag, queryStr, filters)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	report := cli.NewSearchReport(queryStr, results, time.Since(start))
	if err := cli.WriteSearchResults(os.Stdout, report, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchDirect(ctx context.Context, configPath, query string, filters models.SearchFilters) ([]models.SearchResult, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := utils.NewCLILogger(cfg.Debug)
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer components.Close()
	return components.Engine.Search(ctx, query, filters)
}

type searchResponse struct {
	Results []models.SearchResult `json:"results"`
}

func searchViaHTTP(ctx context.Context, serverURL, query string, filters models.SearchFilters) ([]models.SearchResult, error) {
	body, err := json.Marshal(map[string]any{
		"query": query,
		"filters": map[string]string{
			"sort_by":    string(filters.SortBy),
			"sort_order": string(filters.SortOrder),
		},
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(serverURL, "/")+"/api/v1/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out.Results, nil
}

// filterFlags holds the raw filter and sort flags shared by search and filter.
type filterFlags struct {
	from, to           string
	categories, status string
	minPrice, maxPrice string
	sortBy, sortOrder  string
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// buildFilters turns flag values into filters. A date range needs both bounds; a price range
// takes either bound, the other defaulting to 0 or unbounded.
func buildFilters(ff filterFlags) (models.SearchFilters, error) {
	var f models.SearchFilters
	switch models.SortBy(ff.sortBy) {
	case "", models.SortByRelevance, models.SortByDate, models.SortByName, models.SortByPrice:
		f.SortBy = models.SortBy(ff.sortBy)
	default:
		return f, fmt.Errorf("invalid --sort-by %q (use relevance, date, name or price)", ff.sortBy)
	}
	switch models.SortOrder(ff.sortOrder) {
	case "", models.SortAsc, models.SortDesc:
		f.SortOrder = models.SortOrder(ff.sortOrder)
	default:
		return f, fmt.Errorf("invalid --sort-order %q (use asc or desc)", ff.sortOrder)
	}

	if ff.from != "" || ff.to != "" {
		if ff.from == "" || ff.to == "" {
			return f, fmt.Errorf("--from and --to must be given together")
		}
		dr, err := models.NewDateRange(ff.from, ff.to)
		if err != nil {
			return f, err
		}
		f.DateRange = dr
	}
	f.Categories = splitList(ff.categories)
	f.Status = splitList(ff.status)

	if ff.minPrice != "" || ff.maxPrice != "" {
		pr := &models.PriceRange{Max: maxPriceUnbounded}
		if ff.minPrice != "" {
			v, err := strconv.ParseFloat(ff.minPrice, 64)
			if err != nil {
				return f, fmt.Errorf("invalid --min-price %q", ff.minPrice)
			}
			pr.Min = v
		}
		if ff.maxPrice != "" {
			v, err := strconv.ParseFloat(ff.maxPrice, 64)
			if err != nil {
				return f, fmt.Errorf("invalid --max-price %q", ff.maxPrice)
			}
			pr.Max = v
		}
		if pr.Max < pr.Min {
			return f, fmt.Errorf("--max-price %g is below --min-price %g", pr.Max, pr.Min)
		}
		f.PriceRange = pr
	}
	return f.Normalized(), nil
}

const maxPriceUnbounded = 1e18

func runFilter() {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	typeName := fs.String("type", "", "entity type: customer, product or order (required)")
	var ff filterFlags
	fs.StringVar(&ff.from, "from", "", "earliest date, inclusive (YYYY-MM-DD or RFC 3339)")
	fs.StringVar(&ff.to, "to", "", "latest date, inclusive; a bare date covers the whole day")
	fs.StringVar(&ff.categories, "category", "", "comma-separated categories")
	fs.StringVar(&ff.status, "status", "", "comma-separated statuses")
	fs.StringVar(&ff.minPrice, "min-price", "", "minimum price or amount, inclusive")
	fs.StringVar(&ff.maxPrice, "max-price", "", "maximum price or amount, inclusive")
	outputFormat := fs.String("output", "text", "output format: text, compact or json")
	_ = fs.Parse(os.Args[2:])

	t, err := models.ParseEntityType(*typeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "--type: %v\n", err)
		os.Exit(1)
	}
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	filters, err := buildFilters(ff)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewCLILogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	components, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	items := fetchAll(context.Background(), source.OfType(components.Sources, t), logger)
	if err := cli.WriteItems(os.Stdout, t, filter.Apply(items, filters), format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// fetchAll concatenates the snapshots of sources. A failing source is logged and skipped.
func fetchAll(ctx context.Context, sources []source.Source, logger *zap.Logger) []models.Item {
	var items []models.Item
	for _, src := range sources {
		got, err := src.Fetch(ctx)
		if err != nil {
			logger.Warn("entity source failed", zap.String("source", src.Name()), zap.Error(err))
			continue
		}
		items = append(items, got...)
	}
	return items
}

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	dryRun := fs.Bool("dry-run", false, "validate and count rows without writing")
	generateBarcodes := fs.Bool("generate-barcodes", false, "generate barcodes for rows that have none instead of skipping them")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(searchArgsReorder(os.Args[2:]))

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: tafuta import [flags] <file.tsv|file.xlsx>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open catalog: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	imp := importer.New(store,
		importer.WithLogger(logger),
		importer.WithDryRun(*dryRun),
		importer.WithGenerateBarcodes(*generateBarcodes))
	stats, err := imp.ImportFile(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
		os.Exit(1)
	}

	if *outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(stats)
		return
	}
	fmt.Println("=== Import Complete ===")
	if stats.DryRun {
		fmt.Println("DRY RUN MODE - No data was saved")
	}
	fmt.Printf("created:            %d\n", stats.Created)
	fmt.Printf("updated:            %d\n", stats.Updated)
	if stats.GeneratedBarcodes > 0 {
		fmt.Printf("generated_barcodes: %d\n", stats.GeneratedBarcodes)
	}
	fmt.Printf("skipped:            %d\n", stats.Skipped)
	fmt.Printf("errors:             %d\n", stats.Errors)
}

type sourceStatus struct {
	Name string            `json:"name"`
	Type models.EntityType `json:"type"`
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Sources        []sourceStatus   `json:"sources"`
	Sessions       int              `json:"sessions"`
	Counts         map[string]int64 `json:"counts,omitempty"`
	DiskUsageBytes *int64           `json:"disk_usage_bytes,omitempty"`
	Config         map[string]any   `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = read the configured sources directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status *statusResponse
	var err error
	if *serverURL != "" {
		status, err = statusViaHTTP(*serverURL)
	} else {
		status, err = statusDirect(*configPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
		os.Exit(1)
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		writeStatusText(os.Stdout, status)
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func writeStatusText(w io.Writer, status *statusResponse) {
	for _, t := range []models.EntityType{models.EntityCustomer, models.EntityProduct, models.EntityOrder} {
		if n, ok := status.Counts[string(t)]; ok {
			fmt.Fprintf(w, "%-19s %d\n", t+"s:", n)
		}
	}
	if status.DiskUsageBytes != nil {
		fmt.Fprintf(w, "disk_usage_bytes:   %d   # catalog database on disk\n", *status.DiskUsageBytes)
	}
	fmt.Fprintf(w, "sessions:           %d\n", status.Sessions)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "# sources")
	for _, s := range status.Sources {
		fmt.Fprintf(w, "%-19s %s\n", s.Name, s.Type)
	}
}

func statusDirect(configPath string) (*statusResponse, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := utils.NewCLILogger(cfg.Debug)
	if err != nil {
		return nil, err
	}
	defer logger.Sync()
	components, err := initializeComponents(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer components.Close()

	status := &statusResponse{
		Config: map[string]any{
			"database_path":          cfg.Storage.DatabasePath,
			"history_size":           cfg.Search.HistorySize,
			"max_concurrent_sources": cfg.Search.MaxConcurrentSources,
			"watch_enabled":          cfg.Watch.Enabled,
		},
	}
	for _, src := range components.Sources {
		status.Sources = append(status.Sources, sourceStatus{Name: src.Name(), Type: src.Type()})
	}
	if components.Storage != nil {
		status.Counts = map[string]int64{}
		for _, t := range []models.EntityType{models.EntityCustomer, models.EntityProduct, models.EntityOrder} {
			n, err := components.Storage.Count(context.Background(), t)
			if err != nil {
				return nil, err
			}
			status.Counts[string(t)] = n
		}
	}
	if diskBytes, err := storage.DiskUsageBytes(storage.DatabaseFiles(cfg.Storage.DatabasePath)...); err == nil {
		status.DiskUsageBytes = &diskBytes
	}
	return status, nil
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(strings.TrimRight(serverURL, "/") + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var out statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// Components holds the wired search stack.
type Components struct {
	Storage *storage.SQLiteStorage // nil when no sqlite source is configured
	Sources []source.Source
	Files   []*source.File
	Engine  *search.Engine
}

func (c *Components) Close() {
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
}

// store returns the catalog as an interface, nil when absent.
func (c *Components) store() storage.Storage {
	if c.Storage == nil {
		return nil
	}
	return c.Storage
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	c := &Components{}
	for _, sc := range cfg.Sources {
		if sc.Kind == config.SourceSQLite {
			store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize storage: %w", err)
			}
			c.Storage = store
			break
		}
	}

	sources, files, err := buildSources(cfg, c.store())
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Sources = sources
	c.Files = files

	c.Engine = search.NewEngine(
		sources,
		ranking.NewScorer(&cfg.Ranking),
		ranking.NewRanker(&cfg.Ranking),
		&cfg.Search,
		search.WithLogger(logger),
	)
	logger.Debug("search engine initialized", zap.Int("sources", len(sources)))
	return c, nil
}

// buildSources creates the configured entity sources in order, followed by the built-in pages
// when enabled. File sources are also returned separately so they can be watched.
func buildSources(cfg *config.Config, store storage.Storage) ([]source.Source, []*source.File, error) {
	var sources []source.Source
	var files []*source.File
	for _, sc := range cfg.Sources {
		t, err := models.ParseEntityType(sc.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("source %s: %w", sc.Name, err)
		}
		switch sc.Kind {
		case config.SourceSQLite:
			if store == nil {
				return nil, nil, fmt.Errorf("source %s: no catalog database", sc.Name)
			}
			src, err := storage.Source(store, sc.Name, t)
			if err != nil {
				return nil, nil, fmt.Errorf("source %s: %w", sc.Name, err)
			}
			sources = append(sources, src)
		case config.SourceFile:
			f, err := source.NewFile(sc.Name, t, sc.Path)
			if err != nil {
				return nil, nil, fmt.Errorf("source %s: %w", sc.Name, err)
			}
			sources = append(sources, f)
			files = append(files, f)
		case config.SourceHTTP:
			var opts []source.HTTPOption
			if sc.Token != "" {
				opts = append(opts, source.WithBearerToken(sc.Token))
			}
			sources = append(sources, source.NewHTTP(sc.Name, t, sc.URL, opts...))
		default:
			return nil, nil, fmt.Errorf("source %s: unknown kind %q", sc.Name, sc.Kind)
		}
	}
	if cfg.Search.PagesEnabledOrDefault() {
		sources = append(sources, source.NewPages())
	}
	return sources, files, nil
}

func printUsage() {
	fmt.Println(`tafuta - Global search and filters for the POS back office

Usage:
  tafuta server [flags]            Start the HTTP server
  tafuta search [flags] <query>    Search customers, products, orders and pages
  tafuta filter [flags]            List records of one type that pass the filters
  tafuta import [flags] <file>     Import a product price list (.tsv or .xlsx)
  tafuta status [flags]            Show sources, record counts and disk usage
  tafuta version                   Show version
  tafuta help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/tafuta/config.yaml)
  --debug            Enable debug logging

Search Flags:
  --config string      Config file path (also used for default sort values)
  --server string      Server URL. Empty (default) searches the configured sources directly.
  --sort-by string     relevance, date, name or price (default from config, or relevance)
  --sort-order string  asc or desc (default from config, or desc)
  --output string      text, compact or json (default: text)

Filter Flags:
  --type string        customer, product or order (required)
  --from, --to string  Inclusive date range
  --category string    Comma-separated categories
  --status string      Comma-separated statuses
  --min-price, --max-price float
  --output string      text, compact or json (default: text)

Import Flags:
  --dry-run            Validate and count without writing
  --generate-barcodes  Generate barcodes for rows that have none

Status Flags:
  --config string    Config file path (for direct mode)
  --server string    Server URL. Empty (default) reads the configured sources directly.
  --output string    Output format: text or json (default: text)

Examples:
  tafuta server
  tafuta search sarah
  tafuta search --sort-by price --sort-order asc lamp
  tafuta search --output json "wireless head"
  tafuta filter --type order --from 2024-11-01 --to 2024-11-30 --status Delivered
  tafuta filter --type product --category Electronics --max-price 150
  tafuta import --dry-run --generate-barcodes ppob.txt
  tafuta status --output json`)
}
