package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newswire"
	"newswire/internal/config"
)

func main() {
	configPath := flag.String("config", "./config/config.yaml", "path to config file")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "newswire-web: %v\n", err)
		os.Exit(1)
	}

	engine, err := newswire.NewEngine(newswire.EngineConfig{
		DataDir:         cfg.DataDir,
		Feeds:           cfg.Feeds,
		OllamaBaseURL:   cfg.Ollama.BaseURL,
		AnalysisModel:   cfg.Ollama.AnalysisModel,
		EmbeddingModel:  cfg.Ollama.EmbeddingModel,
		VectorDimension: cfg.Vector.Dimension,
		ScrapeTimeout:   time.Duration(cfg.Scrape.TimeoutSeconds) * time.Second,
		ScrapeDelay:     time.Duration(cfg.Scrape.DelaySeconds) * time.Second,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "newswire-web: %v\n", err)
		os.Exit(1)
	}

	mux := newRouter(engine)

	srv := &http.Server{
		Addr:         *addr,
		Handler:      logging(recovery(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // fetch and analysis endpoints are slow
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("newswire-web: listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("newswire-web: %v", err)
		}
	}()

	<-done
	log.Println("newswire-web: shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("newswire-web: shutdown error: %v", err)
	}
	log.Println("newswire-web: stopped")
}
