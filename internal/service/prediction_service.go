package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/locvowork/payment_probability/internal/domain"
	"github.com/locvowork/payment_probability/internal/history"
	"github.com/locvowork/payment_probability/internal/logger"
	"github.com/locvowork/payment_probability/internal/model"
	"github.com/locvowork/payment_probability/internal/transform"
	"github.com/locvowork/payment_probability/pkg/sheetrange"
)

var (
	ErrReadSheet  = errors.New("failed to read spreadsheet")
	ErrWriteSheet = errors.New("failed to write spreadsheet")
)

// SheetStore is the spreadsheet values API the batch reads from and writes back to.
type SheetStore interface {
	ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error)
	WriteRange(ctx context.Context, spreadsheetID, rng string, values [][]string) error
}

// ArtifactSource hands out the loaded model artifact; model.Cache loads it once per process.
type ArtifactSource interface {
	Get(path string) (*model.Artifact, error)
}

type Options struct {
	SpreadsheetID     string
	ReadRange         string
	DefaultSheetName  string
	ModelPath         string
	ProbabilityColumn string
}

// PredictionService runs one batch: read sheet, validate header, score every row, write back.
type PredictionService interface {
	Run(ctx context.Context) (*domain.Summary, error)
}

type predictionService struct {
	sheets   SheetStore
	models   ArtifactSource
	history  history.Store
	resolver *transform.HeaderResolver
	opts     Options
	now      func() time.Time
}

func NewPredictionService(sheets SheetStore, models ArtifactSource, hist history.Store, opts Options) PredictionService {
	if hist == nil {
		hist = history.Nop{}
	}
	return &predictionService{
		sheets:   sheets,
		models:   models,
		history:  hist,
		resolver: transform.DefaultHeaderResolver(),
		opts:     opts,
		now:      time.Now,
	}
}

func (s *predictionService) Run(ctx context.Context) (*domain.Summary, error) {
	runID := uuid.NewString()
	ctx = logger.WithRunID(ctx, runID)
	started := s.now()

	summary, err := s.run(ctx, runID)
	if err != nil {
		summary.Status = domain.RunStatusFailed
		summary.Error = err.Error()
		logger.ErrorLog(ctx, "Batch failed: %v", err)
	}
	s.record(ctx, summary, started)
	return summary, err
}

func (s *predictionService) run(ctx context.Context, runID string) (*domain.Summary, error) {
	summary := &domain.Summary{RunID: runID}

	artifact, err := s.models.Get(s.opts.ModelPath)
	if err != nil {
		return summary, fmt.Errorf("failed to load model and encoder: %w", err)
	}

	logger.InfoLog(ctx, "Reading spreadsheet %s range %s", s.opts.SpreadsheetID, s.opts.ReadRange)
	values, err := s.sheets.ReadRange(ctx, s.opts.SpreadsheetID, s.opts.ReadRange)
	if err != nil {
		return summary, fmt.Errorf("%w: %w", ErrReadSheet, err)
	}
	if len(values) == 0 {
		logger.WarnLog(ctx, "No data found in range %s", s.opts.ReadRange)
		summary.Status = domain.RunStatusEmpty
		return summary, nil
	}

	header := values[0]
	index, err := s.resolver.Resolve(header)
	if err != nil {
		return summary, err
	}

	tr, err := transform.NewTransformer(artifact, index, len(header))
	if err != nil {
		return summary, err
	}
	for _, name := range tr.UnresolvedFeatures() {
		logger.WarnLog(ctx, "Model feature %q is not produced by the row transformer, using 0", name)
	}

	table := s.augment(ctx, header, values[1:], tr, summary)

	sheet := sheetrange.SheetName(s.opts.ReadRange, s.opts.DefaultSheetName)
	summary.WriteRange = sheetrange.WriteRange(sheet, len(table), len(table[0]))

	logger.InfoLog(ctx, "Updating spreadsheet %s range %s", s.opts.SpreadsheetID, summary.WriteRange)
	if err := s.sheets.WriteRange(ctx, s.opts.SpreadsheetID, summary.WriteRange, table); err != nil {
		return summary, fmt.Errorf("%w: %w", ErrWriteSheet, err)
	}
	summary.Written = true
	summary.Status = domain.RunStatusSucceeded
	return summary, nil
}

// augment scores every data row and returns the output table, header first. An existing
// probability column is overwritten in place, otherwise one is appended.
func (s *predictionService) augment(ctx context.Context, header []string, rows [][]string, tr *transform.Transformer, summary *domain.Summary) [][]string {
	probCol := -1
	for i, name := range header {
		if name == s.opts.ProbabilityColumn {
			probCol = i
			break
		}
	}

	outHeader := append([]string(nil), header...)
	if probCol < 0 {
		outHeader = append(outHeader, s.opts.ProbabilityColumn)
	}
	table := make([][]string, 0, len(rows)+1)
	table = append(table, outHeader)

	if len(rows) == 0 {
		logger.WarnLog(ctx, "Sheet has a header but no data rows")
	} else {
		logger.InfoLog(ctx, "Processing %d rows", len(rows))
	}

	for i, row := range rows {
		sheetRow := i + 2
		res := tr.Transform(row)
		for _, w := range res.Warnings {
			logger.WarnLog(ctx, "Row %d: %s", sheetRow, w)
		}
		if res.Err != nil {
			logger.WarnLog(ctx, "Row %d: %v", sheetRow, res.Err)
			summary.Errored++
		}
		summary.Processed++

		out := res.Cells
		if probCol >= 0 {
			out[probCol] = res.Probability
		} else {
			out = append(out, res.Probability)
		}
		table = append(table, out)
	}

	if summary.Errored > 0 {
		logger.WarnLog(ctx, "Processing finished: %d rows processed, %d with errors", summary.Processed, summary.Errored)
	} else {
		logger.InfoLog(ctx, "Processing finished: %d rows processed successfully", summary.Processed)
	}
	return table
}

func (s *predictionService) record(ctx context.Context, summary *domain.Summary, started time.Time) {
	run := domain.RunRecord{
		ID:            summary.RunID,
		SpreadsheetID: s.opts.SpreadsheetID,
		ReadRange:     s.opts.ReadRange,
		WriteRange:    summary.WriteRange,
		Processed:     summary.Processed,
		Errored:       summary.Errored,
		Status:        summary.Status,
		Error:         summary.Error,
		StartedAt:     started,
		FinishedAt:    s.now(),
	}
	if err := s.history.Record(ctx, run); err != nil {
		logger.ErrorLog(ctx, "failed to record run history: %v", err)
	}
}
