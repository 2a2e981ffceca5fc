package main

// @title           docfinder API
// @version         1.0
// @description     Conversational document discovery over a product documentation catalog.

// @host      localhost:8080
// @BasePath  /
// @schemes   http https

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/docfinder/internal/adapters/driven/sqlite"
	httpadapter "github.com/custodia-labs/docfinder/internal/adapters/driving/http"
	"github.com/custodia-labs/docfinder/internal/config"
	"github.com/custodia-labs/docfinder/internal/core/domain"
)

var version = "dev"

// envFile is the --env-file flag shared by every command
var envFile string

var rootCmd = &cobra.Command{
	Use:   "docfinder",
	Short: "Conversational document discovery over a product documentation catalog",
	Long: `docfinder answers natural-language requests for product documentation.
It extracts a structured intent with a language model, searches the content
catalog with bound parameters only, and summarizes linked HTML and PDF
documents on demand.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search the catalog from the command line",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize [url]",
	Short: "Fetch and summarize one document",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

var importCmd = &cobra.Command{
	Use:   "import [records.json]",
	Short: "Load catalog records into the SQLite catalog",
	Long: `Reads a JSON array of catalog records (keys Product, Doc_type,
Content_Title, Description, Generated_Keywords, Link) and inserts them into
the SQLite catalog at SQLITE_PATH, creating it when needed.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var vocabularyCmd = &cobra.Command{
	Use:   "vocabulary",
	Short: "Print the built-in vocabulary and link policy as YAML",
	Long:  `The output is a valid VOCABULARY_FILE and a starting point for customizing products, document types and allowed domains.`,
	Args:  cobra.NoArgs,
	RunE:  runVocabulary,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(vocabularyCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads and validates configuration and builds the logger
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration:\n%w", err)
	}
	logger, err := cfg.Log.NewLogger()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("docfinder starting", zap.String("version", version))

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return err
	}
	defer a.Close()

	serverCfg := httpadapter.DefaultConfig()
	serverCfg.Host = cfg.Server.Host
	serverCfg.Port = cfg.Server.Port
	serverCfg.Version = version
	serverCfg.AllowedOrigins = cfg.Server.AllowedOrigins

	server := httpadapter.NewServer(serverCfg, httpadapter.Services{
		Chat:    a.chat,
		Search:  a.search,
		Summary: a.summary,
	}, a.catalog, a.cachePinger(), logger.Named("http"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		return err
	}
	logger.Info("docfinder stopped")
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	records, err := a.search.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	return printRecords(cmd, records)
}

func printRecords(cmd *cobra.Command, records []*domain.DocumentRecord) error {
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No documents found.")
		return nil
	}
	for i, r := range records {
		fmt.Fprintf(out, "%d. %s\n", i+1, r.Title)
		fmt.Fprintf(out, "   %s | %s\n", r.Product, r.DocType)
		fmt.Fprintf(out, "   %s\n", r.Link)
	}
	return nil
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Fprintln(cmd.OutOrStdout(), a.summary.Summarize(ctx, args[0]))
	return nil
}

// runImport needs only the SQLite path, so it skips full validation
func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	n, err := importRecords(cmd.Context(), cfg.Catalog.SQLitePath, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d record(s) into %s\n", n, cfg.Catalog.SQLitePath)
	return nil
}

// importRecords inserts a JSON array of records into the SQLite catalog
func importRecords(ctx context.Context, dbPath, jsonPath string) (int, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("read records: %w", err)
	}

	var parsed []*domain.DocumentRecord
	if err := json.Unmarshal(data, &parsed); err != nil {
		return 0, fmt.Errorf("parse records: %w", err)
	}
	records := make([]*domain.DocumentRecord, 0, len(parsed))
	for _, r := range parsed {
		if r != nil {
			records = append(records, r)
		}
	}

	store, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	if err := store.Insert(ctx, records...); err != nil {
		return 0, err
	}
	return len(records), nil
}

func runVocabulary(cmd *cobra.Command, args []string) error {
	data, err := config.DefaultVocabularyFile().Marshal()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
