package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/logbook-engine/internal/config"
	"github.com/pageza/logbook-engine/internal/engine"
	"github.com/pageza/logbook-engine/internal/persister"
	"github.com/pageza/logbook-engine/internal/repository/postgres"
	"github.com/pageza/logbook-engine/internal/solver"
	"github.com/pageza/logbook-engine/pkg/database"
)

func main() {
	var (
		storeFlag = flag.String("store", os.Getenv("STORE_ID"), "store id to generate a logbook for")
		dateFlag  = flag.String("date", os.Getenv("RUN_DATE"), "ISO-8601 date to generate a logbook for")
	)
	flag.Parse()

	if *storeFlag == "" || *dateFlag == "" {
		log.Fatal("both -store and -date are required")
	}
	storeID, err := uuid.Parse(*storeFlag)
	if err != nil {
		log.Fatalf("invalid -store: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	conn, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	repo := postgres.New(conn.DB)
	boosts := database.NewAdaptiveBoostCache(conn.RedisClient, 24*time.Hour)
	windows := database.NewEligibilityCache(conn.RedisClient, time.Hour)
	p := persister.New(repo, nil, nil)
	eng := engine.New(repo, p, conn, boosts, cfg, nil)
	eng.Backend = solver.GreedyBackend{Windows: windows}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down logbookd...")
		cancel()
	}()

	log.Printf("Generating logbook for store %s date %s", storeID, *dateFlag)
	logbookID, err := eng.Run(ctx, storeID, *dateFlag)
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	log.Printf("Logbook %s generated", logbookID)
}
