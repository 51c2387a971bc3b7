// Command loam is a small CLI for inspecting and poking a loam store.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/loamdb/loam-go"
	"github.com/loamdb/loam-go/internal/config"
	logpkg "github.com/loamdb/loam-go/internal/logger"
	"github.com/loamdb/loam-go/internal/metrics"
	"github.com/loamdb/loam-go/internal/version"
)

var (
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "loam",
	Short:         "loam - vector store client",
	Long:          "Command line client for a loam vector store: manage collections, write documents and run similarity queries.",
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real env vars win either way.
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		env := "prod"
		if verbose {
			env = "dev"
		}
		logger, err = logpkg.NewLogger(env, cfg.Logging.Level)
		if err != nil {
			return err
		}

		metrics.RegisterEmbeddingMetrics()
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check store connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.Ping(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("loam %s (commit %s)\n", version.Version, version.Commit)
	},
}

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Manage collections",
}

var collectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		infos, err := client.Collections().List(cmd.Context())
		if err != nil {
			return err
		}
		for _, info := range infos {
			fmt.Printf("%s\t%s\n", info.ID, info.Name)
		}
		return nil
	},
}

var collectionsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		col, err := client.Collections().Create(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("created %s (%s)\n", col.Name(), col.ID())
		return nil
	},
}

var collectionsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.Collections().Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

var (
	addID string
)

var addCmd = &cobra.Command{
	Use:   "add <collection> <text>",
	Short: "Add a document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		col, err := client.Collections().Ensure(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		id := addID
		if id == "" {
			return fmt.Errorf("--id is required")
		}
		if err := col.Add(cmd.Context(), loam.Document{ID: id, Contents: args[1]}); err != nil {
			return err
		}
		fmt.Printf("added %s\n", id)
		return nil
	},
}

var (
	queryResults int
)

var queryCmd = &cobra.Command{
	Use:   "query <collection> <text>",
	Short: "Run a similarity query",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		col, err := client.Collections().Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		res, err := col.Query(cmd.Context(), loam.Text(args[1]),
			loam.WithNResults(queryResults),
			loam.WithInclude(loam.IncludeDocuments, loam.IncludeDistances),
		)
		if err != nil {
			return err
		}
		for _, r := range res.Results {
			fmt.Printf("%.4f\t%s\t%s\n", r.Distance, r.Document.ID, r.Document.Contents)
		}
		return nil
	},
}

var countCmd = &cobra.Command{
	Use:   "count <collection>",
	Short: "Count documents in a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		col, err := client.Collections().Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		n, err := col.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	},
}

func newClient() (*loam.Client, error) {
	opts := []loam.Option{
		loam.WithBaseURL(cfg.Server.BaseURL),
		loam.WithTenant(cfg.Server.Tenant),
		loam.WithDatabase(cfg.Server.Database),
	}
	if cfg.Server.APIKey != "" {
		opts = append(opts, loam.WithAPIKey(cfg.Server.APIKey))
	}
	if cfg.Embedding.Provider == "openai" || cfg.Embedding.APIKey != "" {
		opts = append(opts, loam.WithEmbedder(loam.NewOpenAIEmbedder(loam.OpenAIConfig{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		})))
	}
	if len(cfg.Cache.Addrs) > 0 {
		opts = append(opts, loam.WithEmbeddingCache(cfg.Cache.Addrs, cfg.Cache.Password))
	}
	if verbose {
		opts = append(opts, loam.WithLogger(slog.Default()))
	}
	return loam.New(opts...)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "loam.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	addCmd.Flags().StringVar(&addID, "id", "", "document id")
	queryCmd.Flags().IntVarP(&queryResults, "results", "n", 10, "number of results")

	collectionsCmd.AddCommand(collectionsListCmd, collectionsCreateCmd, collectionsDeleteCmd)
	rootCmd.AddCommand(pingCmd, versionCmd, collectionsCmd, addCmd, queryCmd, countCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error("command failed", zap.Error(err))
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
