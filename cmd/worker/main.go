package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"echome/internal/domain"
	"echome/internal/infra"
	"echome/internal/infra/credentials"
	"echome/internal/providers/content"
	"echome/internal/providers/genai"
	"echome/internal/sqlinline"
	"echome/internal/storage"
)

// batchFormats is the fixed kit composition for imported sources; single-url
// submissions carry the user's own selection instead.
var batchFormats = []domain.ContentFormat{
	domain.FormatBlogPost,
	domain.FormatTweet,
	domain.FormatLinkedInPost,
}

type kitJob struct {
	ID        string
	UserID    string
	InputType string
	Request   json.RawMessage
}

type batchItem struct {
	BatchID   string
	Order     int
	SourceURL string
	UserID    string
}

type kitWorker struct {
	ctx          context.Context
	runner       *infra.SQLRunner
	logger       infra.Logger
	generators   map[string]content.Generator
	provider     string
	store        *storage.FileStore
	locale       string
	pollInterval time.Duration
}

var errNoWorkAvailable = errors.New("no work available")

func main() {
	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)

	storagePath := cfg.StoragePath
	if storagePath == "" {
		storagePath = "./storage"
	}
	if !filepath.IsAbs(storagePath) {
		if abs, err := filepath.Abs(storagePath); err == nil {
			storagePath = abs
		}
	}
	fileStore, err := storage.NewFileStore(storagePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure storage")
	}

	geminiAPIKey := strings.TrimSpace(cfg.GeminiAPIKey)
	if geminiAPIKey == "" {
		credStore := credentials.NewStore(runner)
		keyFromStore, err := credStore.GeminiAPIKey(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("worker: failed to load gemini api key from store")
		} else {
			geminiAPIKey = keyFromStore
		}
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}
	geminiClient, err := genai.NewClient(genai.Options{
		APIKey:     geminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		Model:      cfg.GeminiModel,
		HTTPClient: httpClient,
		Logger:     &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure gemini client")
	}
	if geminiClient.Synthetic() {
		logger.Warn().Str("model", geminiClient.Model()).Msg("worker: gemini api key missing, using synthetic copy")
	}

	worker := &kitWorker{
		ctx:    ctx,
		runner: runner,
		logger: logger,
		generators: map[string]content.Generator{
			"gemini": content.NewGeminiGenerator(geminiClient),
			"static": content.NewStaticGenerator(),
		},
		provider:     cfg.ContentProvider,
		store:        fileStore,
		locale:       cfg.DefaultLocale,
		pollInterval: cfg.WorkerPollInterval,
	}

	if err := worker.Run(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("worker: stopped with error")
	}
	logger.Info().Msg("worker: stopped")
}

func (w *kitWorker) Run() error {
	w.logger.Info().Msg("worker: started")
	for {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		worked, err := w.step()
		if err != nil {
			w.logger.Error().Err(err).Msg("worker: iteration failed")
		}
		if !worked {
			select {
			case <-w.ctx.Done():
				return w.ctx.Err()
			case <-time.After(w.pollInterval):
			}
		}
	}
}

// step claims at most one unit of work: a queued kit job first, then a
// pending batch item.
func (w *kitWorker) step() (bool, error) {
	job, err := w.claimKitJob()
	if err == nil {
		w.handleKitJob(job)
		return true, nil
	}
	if !errors.Is(err, errNoWorkAvailable) {
		return false, err
	}

	item, err := w.claimBatchItem()
	if err == nil {
		w.handleBatchItem(item)
		return true, nil
	}
	if !errors.Is(err, errNoWorkAvailable) {
		return false, err
	}
	return false, nil
}

func (w *kitWorker) claimKitJob() (kitJob, error) {
	row := w.runner.QueryRow(w.ctx, sqlinline.QClaimKitJob)
	var j kitJob
	if err := row.Scan(&j.ID, &j.UserID, &j.InputType, &j.Request); err != nil {
		if infra.IsNoRows(err) {
			return kitJob{}, errNoWorkAvailable
		}
		return kitJob{}, err
	}
	j.Request = append(json.RawMessage(nil), j.Request...)
	return j, nil
}

func (w *kitWorker) claimBatchItem() (batchItem, error) {
	row := w.runner.QueryRow(w.ctx, sqlinline.QClaimBatchItem)
	var item batchItem
	if err := row.Scan(&item.BatchID, &item.Order, &item.SourceURL, &item.UserID); err != nil {
		if infra.IsNoRows(err) {
			return batchItem{}, errNoWorkAvailable
		}
		return batchItem{}, err
	}
	return item, nil
}

func (w *kitWorker) handleKitJob(j kitJob) {
	w.logger.Info().Str("job_id", j.ID).Str("input_type", j.InputType).Msg("worker: picked kit job")
	var req domain.KitRequest
	if err := json.Unmarshal(j.Request, &req); err != nil {
		w.failJob(j.ID, fmt.Sprintf("decode request: %v", err))
		return
	}
	if err := w.generate(j.ID, &req); err != nil {
		w.logger.Error().Err(err).Str("job_id", j.ID).Msg("worker: kit job failed")
	}
}

func (w *kitWorker) handleBatchItem(item batchItem) {
	w.logger.Info().Str("batch_id", item.BatchID).Int("order", item.Order).Msg("worker: picked batch item")

	req := domain.KitRequest{
		InputType: domain.InputTypeSocialImport,
		Content:   []string{item.SourceURL},
		Locale:    w.locale,
	}
	for _, f := range batchFormats {
		req.SelectedContentTypes = append(req.SelectedContentTypes, domain.BackendContentType(f))
	}
	reqBytes, _ := json.Marshal(req)

	row := w.runner.QueryRow(w.ctx, sqlinline.QEnqueueKitJob, item.UserID, string(req.InputType), reqBytes)
	var jobID string
	if err := row.Scan(&jobID); err != nil {
		w.failBatchItem(item, fmt.Sprintf("enqueue kit: %v", err))
		return
	}
	if _, err := w.runner.Exec(w.ctx, sqlinline.QStartKitJob, jobID); err != nil {
		w.failBatchItem(item, fmt.Sprintf("start kit: %v", err))
		return
	}

	if err := w.generate(jobID, &req); err != nil {
		w.failBatchItem(item, err.Error())
		return
	}
	if _, err := w.runner.Exec(w.ctx, sqlinline.QCompleteBatchItem, item.BatchID, item.Order, jobID); err != nil {
		w.logger.Error().Err(err).Str("batch_id", item.BatchID).Msg("worker: complete batch item failed")
	}
	w.finalizeBatch(item.BatchID)
}

func (w *kitWorker) failBatchItem(item batchItem, msg string) {
	w.logger.Error().Str("batch_id", item.BatchID).Int("order", item.Order).Str("error", msg).Msg("worker: batch item failed")
	if _, err := w.runner.Exec(w.ctx, sqlinline.QFailBatchItem, item.BatchID, item.Order, msg); err != nil {
		w.logger.Error().Err(err).Str("batch_id", item.BatchID).Msg("worker: mark batch item failed")
	}
	w.finalizeBatch(item.BatchID)
}

func (w *kitWorker) finalizeBatch(batchID string) {
	if _, err := w.runner.Exec(w.ctx, sqlinline.QFinalizeBatch, batchID); err != nil {
		w.logger.Error().Err(err).Str("batch_id", batchID).Msg("worker: finalize batch failed")
	}
}

// generate runs the full per-format pipeline for one job and records the
// terminal state. The job must already be PROCESSING.
func (w *kitWorker) generate(jobID string, req *domain.KitRequest) error {
	generator, ok := w.generators[w.provider]
	if !ok {
		generator = w.generators["static"]
	}

	sourceText, err := w.sourceText(req)
	if err != nil {
		w.failJob(jobID, err.Error())
		return err
	}

	formats := make([]domain.ContentFormat, 0, len(req.SelectedContentTypes))
	for _, ct := range req.SelectedContentTypes {
		formats = append(formats, domain.FormatFromBackendType(ct))
	}
	if len(formats) == 0 {
		err := errors.New("no content types selected")
		w.failJob(jobID, err.Error())
		return err
	}

	outputs := make(map[domain.ContentFormat]domain.OutputPayload, len(formats))
	for i, format := range formats {
		w.reportProgress(jobID, domain.JobProgress{
			Step:           string(format),
			Percent:        int(float64(i) / float64(len(formats)) * 100),
			CompletedSteps: i,
			TotalSteps:     len(formats),
		})
		payload, err := generator.Generate(w.ctx, content.GenerateRequest{
			Format:     format,
			SourceText: sourceText,
			Audience:   req.Audience,
			Locale:     req.Locale,
			RequestID:  jobID,
		})
		if err != nil {
			w.failJob(jobID, fmt.Sprintf("generate %s: %v", format, err))
			return err
		}
		outputs[format] = payload
	}

	outputBytes, err := json.Marshal(outputs)
	if err != nil {
		w.failJob(jobID, fmt.Sprintf("encode outputs: %v", err))
		return err
	}
	finalProgress, _ := json.Marshal(domain.JobProgress{
		Percent:        100,
		CompletedSteps: len(formats),
		TotalSteps:     len(formats),
	})
	if _, err := w.runner.Exec(w.ctx, sqlinline.QCompleteKitJob, jobID, outputBytes, finalProgress); err != nil {
		return fmt.Errorf("complete kit: %w", err)
	}
	w.logger.Info().Str("job_id", jobID).Int("formats", len(formats)).Msg("worker: kit completed")
	return nil
}

// sourceText flattens the populated request branch into prompt material.
// Media uploads are not transcribed; their identity anchors the prompt.
func (w *kitWorker) sourceText(req *domain.KitRequest) (string, error) {
	switch {
	case strings.TrimSpace(req.Text) != "":
		return req.Text, nil
	case req.FileID != "":
		data, err := w.store.Read(w.ctx, req.FileID)
		if err != nil {
			return "", fmt.Errorf("read source media: %w", err)
		}
		return fmt.Sprintf("Uploaded %s source %s (%d bytes)", req.InputType, filepath.Base(req.FileID), len(data)), nil
	case len(req.Content) > 0:
		return strings.Join(req.Content, "\n"), nil
	default:
		return "", errors.New("invalid source configuration")
	}
}

func (w *kitWorker) reportProgress(jobID string, progress domain.JobProgress) {
	progressBytes, _ := json.Marshal(progress)
	if _, err := w.runner.Exec(w.ctx, sqlinline.QUpdateKitProgress, jobID, progressBytes); err != nil {
		w.logger.Error().Err(err).Str("job_id", jobID).Msg("worker: update progress failed")
	}
}

func (w *kitWorker) failJob(jobID, msg string) {
	if _, err := w.runner.Exec(w.ctx, sqlinline.QFailKitJob, jobID, msg); err != nil {
		w.logger.Error().Err(err).Str("job_id", jobID).Msg("worker: mark job failed")
	}
}
