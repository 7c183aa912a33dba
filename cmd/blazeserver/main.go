// Command blazeserver starts the blaze search HTTP API.
//
// Usage:
//
//	go run ./cmd/blazeserver
//	go run ./cmd/blazeserver -port 9090 -data-dir /var/lib/blaze
//
// Example requests:
//
//	curl -X POST http://localhost:8080/search/index/document \
//	  -H "Content-Type: application/json" \
//	  -d '{"url": "http://example.com/a", "content": "the quick brown fox"}'
//
//	curl "http://localhost:8080/search?query=fox"
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/wizenheimer/blaze"
	"github.com/wizenheimer/blaze/httpapi"
)

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	dataDir := flag.String("data-dir", "./data", "directory for snapshot, segments and stats")
	k1 := flag.Float64("k1", blaze.DefaultBM25Parameters().K1, "BM25 k1 parameter")
	b := flag.Float64("b", blaze.DefaultBM25Parameters().B, "BM25 b parameter")
	debug := flag.Bool("debug", false, "enable debug mode (verbose gin logging)")
	flag.Parse()

	if *debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := slog.Default()

	cfg := blaze.DefaultConfig(*dataDir)
	cfg.BM25 = blaze.BM25Parameters{K1: *k1, B: *b}
	cfg.Logger = logger

	engine, err := blaze.NewEngine(cfg)
	if err != nil {
		logger.Error("failed to start engine", "error", err)
		os.Exit(1)
	}

	service := httpapi.NewService(engine, logger)
	handlers := httpapi.NewHandlers(service)

	router := gin.New()
	router.Use(gin.Recovery())
	if *debug {
		router.Use(gin.Logger())
	}

	search := router.Group("/search")
	httpapi.RegisterRoutes(search, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("shutting down blaze server")
		os.Exit(0)
	}()

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting blaze server", "address", addr, "data_dir", *dataDir)
	if err := router.Run(addr); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
