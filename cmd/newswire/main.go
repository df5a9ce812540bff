package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"newswire"
	"newswire/internal/config"

	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "newswire",
		Short: "AI-powered news pipeline - RSS ingestion, enrichment, and semantic search",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(syncCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(similarCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(clustersCmd())
	rootCmd.AddCommand(trendsCmd())
	rootCmd.AddCommand(daemonCmd())
	rootCmd.AddCommand(initConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() error {
	if configPath == "" {
		configPath = "./config/config.yaml"
	}
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func newEngine() (*newswire.Engine, error) {
	return newswire.NewEngine(newswire.EngineConfig{
		DataDir:         cfg.DataDir,
		Feeds:           cfg.Feeds,
		OllamaBaseURL:   cfg.Ollama.BaseURL,
		AnalysisModel:   cfg.Ollama.AnalysisModel,
		EmbeddingModel:  cfg.Ollama.EmbeddingModel,
		VectorDimension: cfg.Vector.Dimension,
		ScrapeTimeout:   time.Duration(cfg.Scrape.TimeoutSeconds) * time.Second,
		ScrapeDelay:     time.Duration(cfg.Scrape.DelaySeconds) * time.Second,
	})
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch all configured feeds, enrich new articles, and rebuild the index",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}

			result, err := engine.FetchCycle(context.Background())
			if err != nil {
				return fmt.Errorf("fetch cycle: %w", err)
			}
			return printJSON(result)
		},
	}
}

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reconcile raw and processed stores and refresh the index",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}

			result, err := engine.Sync(context.Background())
			if err != nil {
				return fmt.Errorf("sync: %w", err)
			}
			return printJSON(result)
		},
	}
}

func listCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List processed articles, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}

			articles, err := engine.Articles()
			if err != nil {
				return fmt.Errorf("list articles: %w", err)
			}
			if limit > 0 && len(articles) > limit {
				articles = articles[:limit]
			}

			for _, a := range articles {
				fmt.Printf("%s  %-8s  %s\n", a.ID, a.Domain, a.Title)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of articles to show")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <article-id>",
		Short: "Show a single processed article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}

			article, err := engine.Article(args[0])
			if err != nil {
				return fmt.Errorf("get article: %w", err)
			}
			return printJSON(article)
		},
	}
}

func similarCmd() *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "similar <article-id>",
		Short: "Find articles semantically similar to the given one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}

			// The index lives in memory, so populate it first.
			if _, err := engine.Sync(context.Background()); err != nil {
				return fmt.Errorf("build index: %w", err)
			}

			similar, err := engine.SimilarArticles(context.Background(), args[0], k)
			if err != nil {
				return fmt.Errorf("similar articles: %w", err)
			}

			for _, a := range similar {
				fmt.Printf("%s  %s\n", a.ID, a.Title)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&k, "count", "k", 5, "number of similar articles to return")
	return cmd
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <article-id>",
		Short: "Run LLM analysis on a single article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}

			analysis, err := engine.Analyze(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("analyze article: %w", err)
			}
			return printJSON(analysis)
		},
	}
}

func clustersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clusters",
		Short: "Group the processed corpus into topic clusters via the LLM",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}

			clusters, err := engine.TopicClusters(context.Background())
			if err != nil {
				return fmt.Errorf("topic clusters: %w", err)
			}
			fmt.Println(clusters)
			return nil
		},
	}
}

func trendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trends",
		Short: "Identify trending topics across recent articles via the LLM",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}

			trends, err := engine.TrendingAnalysis(context.Background())
			if err != nil {
				return fmt.Errorf("trending analysis: %w", err)
			}
			fmt.Println(trends)
			return nil
		},
	}
}

func initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Create a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = "./config/config.yaml"
			}

			dir := filepath.Dir(configPath)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}

			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("config file already exists: %s", configPath)
			}

			if err := config.Default().Save(configPath); err != nil {
				return err
			}

			fmt.Printf("Created default config at %s\n", configPath)
			return nil
		},
	}
}
