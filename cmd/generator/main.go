package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/nocalc-trainer/reviewd/internal/config"
	"github.com/nocalc-trainer/reviewd/internal/db"
	"github.com/nocalc-trainer/reviewd/internal/generator"
	"github.com/nocalc-trainer/reviewd/internal/genstatus"
	"github.com/nocalc-trainer/reviewd/internal/question"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	if cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY is required")
	}

	ctx := context.Background()
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	dbh, err := db.Open(openCtx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	cancel()
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := question.NewSQLStore(dbh, cfg.DBDriver)

	statusMgr, err := genstatus.NewManager(cfg.StatusFilePath)
	if err != nil {
		log.Fatalf("generation status file: %v", err)
	}

	maker := generator.NewMaker(cfg.OpenAIKey, cfg.OpenAIModel)
	req := generator.Request{
		SchemaID:   cfg.GenSchemaID,
		Subject:    cfg.GenSubject,
		Difficulty: question.DifficultyMedium,
	}

	if _, err := statusMgr.Start(cfg.GenTotal); err != nil {
		log.Fatalf("start status: %v", err)
	}

	completed, successful, failed := 0, 0, 0
	for completed < cfg.GenTotal {
		// A stop request from the review app wins between batches.
		if rec := statusMgr.Load(); rec.Status == genstatus.StateStopped {
			log.Printf("generation stopped at %d/%d", completed, cfg.GenTotal)
			return
		}

		size := cfg.GenBatchSize
		if remaining := cfg.GenTotal - completed; remaining < size {
			size = remaining
		}

		batch, err := maker.GenerateBatch(ctx, req, size)
		if err != nil {
			log.Printf("batch failed: %v", err)
			completed += size
			failed += size
		} else {
			for _, q := range batch {
				if err := store.Insert(ctx, q); err != nil {
					log.Printf("insert question %s: %v", q.ID, err)
					failed++
				} else {
					successful++
				}
				completed++
			}
			// The model may return fewer items than asked.
			if short := size - len(batch); short > 0 {
				completed += short
				failed += short
			}
		}

		if _, err := statusMgr.Progress(completed, successful, failed); err != nil {
			log.Printf("progress write: %v", err)
		}
		time.Sleep(time.Duration(cfg.GenPollSeconds) * time.Second)
	}

	if _, err := statusMgr.Complete(); err != nil {
		log.Printf("complete write: %v", err)
	}
	log.Printf("generation finished: %d ok, %d failed of %d", successful, failed, cfg.GenTotal)
}
