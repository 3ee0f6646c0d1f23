// Command kitwatch submits the current draft for generation and watches the
// job until it is terminal, clearing the server-side draft only once the job
// is confirmed COMPLETED. It can also watch an existing job or batch import.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"echome/internal/client"
	"echome/internal/domain"
	"echome/internal/infra"
	"echome/internal/poller"
)

func main() {
	_ = godotenv.Load()

	var (
		baseURL       = flag.String("base", "http://localhost:8080", "API base URL")
		token         = flag.String("token", "", "bearer token; minted for -user when empty")
		user          = flag.String("user", "", "user id for dev token minting")
		jobID         = flag.String("job", "", "watch an existing kit job instead of submitting")
		batchID       = flag.String("batch", "", "watch a batch import")
		urls          = flag.String("import", "", "comma-separated urls to import as a batch")
		kitInterval   = flag.Duration("kit-interval", poller.DefaultKitInterval, "kit status poll interval")
		batchInterval = flag.Duration("batch-interval", poller.DefaultBatchInterval, "batch status poll interval")
	)
	flag.Parse()

	logger := infra.NewLogger(os.Getenv("APP_ENV"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New(*baseURL, *token)
	if *token == "" {
		if _, err := c.Token(ctx, *user); err != nil {
			logger.Fatal().Err(err).Msg("kitwatch: token mint failed")
		}
	}

	switch {
	case *batchID != "" || *urls != "":
		id := *batchID
		if id == "" {
			var err error
			id, err = c.ImportBatch(ctx, strings.Split(*urls, ","))
			if err != nil {
				logger.Fatal().Err(err).Msg("kitwatch: batch import failed")
			}
			logger.Info().Str("batch_id", id).Msg("kitwatch: batch submitted")
		}
		watchBatch(ctx, c, logger, *batchInterval, id)
	default:
		id := *jobID
		submitted := false
		if id == "" {
			var err error
			id, err = c.Generate(ctx)
			if err != nil {
				logger.Fatal().Err(err).Msg("kitwatch: submit failed")
			}
			submitted = true
			logger.Info().Str("job_id", id).Msg("kitwatch: job submitted")
		}
		watchKit(ctx, c, logger, *kitInterval, id, submitted)
	}
}

func watchKit(ctx context.Context, c *client.Client, logger infra.Logger, interval time.Duration, jobID string, clearOnComplete bool) {
	p := poller.New(c.KitStatus)
	p.Interval = interval
	p.OnUpdate = func(job *domain.KitJob) {
		ev := logger.Info().Str("job_id", job.JobID).Str("status", string(job.Status))
		if job.Progress != nil {
			ev = ev.Int("percent", job.Progress.Percent).Str("step", job.Progress.Step)
		}
		ev.Msg("kitwatch: in progress")
	}

	job, err := p.Run(ctx, jobID)
	if err != nil {
		logger.Fatal().Err(err).Msg("kitwatch: watch stopped")
	}
	switch job.Status {
	case domain.JobStatusCompleted:
		for format, payload := range job.Outputs {
			if len(payload.Items) > 0 {
				logger.Info().Str("format", string(format)).Int("items", len(payload.Items)).Msg("kitwatch: output ready")
				continue
			}
			logger.Info().Str("format", string(format)).Int("chars", len(payload.Text)).Msg("kitwatch: output ready")
		}
		// The draft survives failures and interruptions; only a confirmed
		// COMPLETED clears it.
		if clearOnComplete {
			if err := c.ResetDraft(ctx); err != nil {
				logger.Error().Err(err).Msg("kitwatch: draft clear failed")
			} else {
				logger.Info().Msg("kitwatch: draft cleared")
			}
		}
	case domain.JobStatusFailed:
		logger.Error().Str("job_id", job.JobID).Str("error", job.ErrorMessage).Msg("kitwatch: generation failed")
		os.Exit(1)
	}
}

func watchBatch(ctx context.Context, c *client.Client, logger infra.Logger, interval time.Duration, batchID string) {
	p := poller.NewBatch(c.BatchStatus)
	p.Interval = interval
	p.OnUpdate = func(batch *domain.BatchJob) {
		logger.Info().
			Str("batch_id", batch.BatchID).
			Int("percent", batch.ProgressPercent()).
			Int("completed", batch.CompletedItems).
			Int("failed", batch.FailedItems).
			Int("total", batch.TotalItems).
			Msg("kitwatch: batch in progress")
	}

	batch, err := p.Run(ctx, batchID)
	if err != nil {
		logger.Fatal().Err(err).Msg("kitwatch: watch stopped")
	}
	for _, item := range batch.ItemDetails {
		ev := logger.Info().Int("order", item.Order).Str("status", string(item.Status))
		if item.JobID != "" {
			ev = ev.Str("job_id", item.JobID)
		}
		if item.Error != "" {
			ev = ev.Str("error", item.Error)
		}
		ev.Msg("kitwatch: item")
	}
	if batch.Status == domain.JobStatusFailed {
		logger.Error().Str("batch_id", batch.BatchID).Msg("kitwatch: batch failed")
		os.Exit(1)
	}
	logger.Info().Str("batch_id", batch.BatchID).Int("percent", batch.ProgressPercent()).Msg("kitwatch: batch done")
}
