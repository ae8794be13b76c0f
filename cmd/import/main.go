package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"community-metrics-service/internal/messages/adapters/csvfile"
	messagesRepoPg "community-metrics-service/internal/messages/adapters/postgres"
	messagesUsecase "community-metrics-service/internal/messages/core/usecase"
	"community-metrics-service/internal/platform/config"
	"community-metrics-service/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	file := flag.String("file", cfg.Source.CSVPath, "CSV snapshot to import")
	dsn := flag.String("dsn", cfg.Postgres.DSN, "Target PostgreSQL DSN")
	flag.Parse()

	logg, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	if *dsn == "" {
		logg.Fatal("A postgres DSN is required (-dsn or POSTGRES_DSN)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB connection
	db, err := sql.Open("postgres", *dsn)
	if err != nil {
		logg.Fatal("Failed to open postgres", zap.Error(err))
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		logg.Fatal("Failed to ping postgres", zap.Error(err))
	}

	if err := messagesRepoPg.Migrate(db, logg); err != nil {
		logg.Fatal("Failed to migrate", zap.Error(err))
	}

	start := time.Now()

	snap, err := csvfile.NewSource(*file).ReadSnapshot(ctx)
	if err != nil {
		logg.Fatal("Failed to read snapshot", zap.String("file", *file), zap.Error(err))
	}

	repo := messagesRepoPg.NewMessageRepository(messagesRepoPg.NewSQLDB(db))
	importUC := messagesUsecase.NewImportMessagesUseCase(repo, logg)

	res, err := importUC.Execute(ctx, messagesUsecase.ImportMessagesInput{Messages: snap.Messages})
	if err != nil {
		logg.Fatal("Import failed", zap.Error(err))
	}

	logg.Info("Import finished",
		zap.String("file", *file),
		zap.String("revision", snap.Revision),
		zap.Int("created", res.Created),
		zap.Int("duplicates", res.Duplicates),
		zap.Duration("duration", time.Since(start)))
}
