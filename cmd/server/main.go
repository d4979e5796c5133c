package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/b2b-attribution/engine/internal/attribution"
	"github.com/b2b-attribution/engine/internal/config"
	"github.com/b2b-attribution/engine/internal/server"
	"github.com/b2b-attribution/engine/internal/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	configPath := os.Getenv("ATTRIBUTION_CONFIG_PATH")
	if configPath == "" {
		configPath = "config/weights.yaml"
	}
	weights, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("[WARNING] failed to load %s, using built-in defaults: %v\n", configPath, err)
	} else {
		fmt.Printf("[CONFIG] weight tables loaded from %s\n", configPath)
	}

	ctx := context.Background()
	if err := store.InitDB(ctx, config.LoadDBPoolConfig()); err != nil {
		fmt.Printf("[WARNING] database not initialized: %v\n", err)
		fmt.Println("  Calculate requests will fail until DATABASE_URL is set")
	} else {
		fmt.Println("[STORE] connection pool ready")
		defer store.Close()
	}

	engine := attribution.New(weights, store.NewRecordLoader(), store.NewResultsRepo())
	handler := server.NewHandler(engine)

	mux := http.NewServeMux()
	handler.Register(mux)

	var root http.Handler = mux
	if limit := os.Getenv("ATTRIBUTION_RATE_LIMIT_PER_SEC"); limit != "" {
		var ratePerSecond float64
		var burst int
		fmt.Sscanf(limit, "%f", &ratePerSecond)
		burst = int(ratePerSecond * 2)
		if burst < 1 {
			burst = 1
		}
		root = server.RateLimit(mux, ratePerSecond, burst)
		fmt.Printf("[SERVER] rate limiting enabled: %.1f req/s, burst %d\n", ratePerSecond, burst)
	}

	addr := os.Getenv("ATTRIBUTION_ADDR")
	if addr == "" {
		addr = ":8090"
	}

	fmt.Printf("B2B attribution engine starting on %s...\n", addr)
	fmt.Println("  - POST /attribution/b2b/calculate")
	fmt.Println("  - POST /attribution/b2b/channel-insights")
	fmt.Println("  - POST /attribution/b2b/alignment-report")
	fmt.Println("  - GET  /attribution/b2b/touchpoint-types")
	fmt.Println("  - GET  /attribution/b2b/model-info")
	fmt.Println("  - POST /attribution/calculate  (legacy, deprecated)")
	fmt.Println("  - GET  /attribution/b2b/calculate/progress  (websocket)")

	if err := http.ListenAndServe(addr, root); err != nil {
		fmt.Printf("[FATAL] server exited: %v\n", err)
		os.Exit(1)
	}
}
