package bootstrap

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/locvowork/payment_probability/internal/config"
	"github.com/locvowork/payment_probability/internal/domain"
	"github.com/locvowork/payment_probability/internal/handler"
	"github.com/locvowork/payment_probability/internal/history"
	"github.com/locvowork/payment_probability/internal/logger"
	"github.com/locvowork/payment_probability/internal/model"
	"github.com/locvowork/payment_probability/internal/service"
	"github.com/locvowork/payment_probability/pkg/googlecloud"
	"github.com/locvowork/payment_probability/pkg/xlsxsheet"
)

// Overrides replace configuration values when non-empty, typically from CLI flags.
type Overrides struct {
	SpreadsheetID string
	ReadRange     string
	ModelPath     string
	SheetBackend  string
}

type App struct {
	Echo    *echo.Echo
	Service service.PredictionService
	History history.Store

	overrides Overrides
}

func NewApp(overrides Overrides) *App {
	return &App{
		Echo:      echo.New(),
		overrides: overrides,
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	a.applyOverrides()
	cfg := config.DefaultEnvConfig

	// Initialize logging
	logger.InitLogging(cfg.LOG_FILE_PATH)
	logger.SetLevel(cfg.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	if cfg.SPREADSHEET_ID == "" {
		return fmt.Errorf("SPREADSHEET_ID is not configured")
	}

	// Model and encoder are loaded once and shared by every run of this process.
	models := model.NewCache()
	if _, err := models.Get(cfg.MODEL_PATH); err != nil {
		return fmt.Errorf("failed to load model and encoder: %w", err)
	}
	logger.InfoLog(ctx, "Model and encoder loaded from %s", cfg.MODEL_PATH)

	sheets, err := newSheetStore(ctx, cfg.SHEET_BACKEND)
	if err != nil {
		return err
	}

	hist, err := newHistoryStore(ctx, cfg.HISTORY_BACKEND)
	if err != nil {
		return err
	}
	a.History = hist

	a.Service = service.NewPredictionService(sheets, models, hist, service.Options{
		SpreadsheetID:     cfg.SPREADSHEET_ID,
		ReadRange:         cfg.READ_RANGE,
		DefaultSheetName:  cfg.DEFAULT_SHEET_NAME,
		ModelPath:         cfg.MODEL_PATH,
		ProbabilityColumn: cfg.PROBABILITY_COLUMN,
	})

	predictionHandler := handler.NewPredictionHandler(a.Service, hist, cfg.REQUIRE_TRIGGER)

	// Register Middlewares
	a.RegisterMiddlewares()

	// Register Routes
	a.RegisterRoutes(predictionHandler)

	return nil
}

func (a *App) applyOverrides() {
	if a.overrides.SpreadsheetID != "" {
		config.DefaultEnvConfig.SPREADSHEET_ID = a.overrides.SpreadsheetID
	}
	if a.overrides.ReadRange != "" {
		config.DefaultEnvConfig.READ_RANGE = a.overrides.ReadRange
	}
	if a.overrides.ModelPath != "" {
		config.DefaultEnvConfig.MODEL_PATH = a.overrides.ModelPath
	}
	if a.overrides.SheetBackend != "" {
		config.DefaultEnvConfig.SHEET_BACKEND = a.overrides.SheetBackend
	}
}

func newSheetStore(ctx context.Context, backend string) (service.SheetStore, error) {
	switch backend {
	case config.SheetBackendXLSX:
		return xlsxsheet.NewStore(), nil
	case config.SheetBackendGoogle:
		creds, err := config.LookupSecret(config.DefaultEnvConfig.GCP_SECRETS_KEY)
		if err != nil {
			return nil, fmt.Errorf("failed to load service account credentials: %w", err)
		}
		client, err := googlecloud.NewSheetsClientFromJSON(ctx, []byte(creds))
		if err != nil {
			return nil, fmt.Errorf("failed to authenticate with Google Sheets: %w", err)
		}
		return client, nil
	}
	return nil, fmt.Errorf("unknown sheet backend %q", backend)
}

func newHistoryStore(ctx context.Context, backend string) (history.Store, error) {
	switch backend {
	case config.HistoryBackendSQLite:
		store, err := history.NewSQLiteStore(config.DefaultEnvConfig.HISTORY_SQLITE_PATH)
		if err != nil {
			return nil, fmt.Errorf("failed to open run history: %w", err)
		}
		return store, nil
	case config.HistoryBackendDatastore:
		gcpClient, err := googlecloud.NewClient(ctx, config.DefaultEnvConfig.GCP_PROJECT_ID)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCP client: %w", err)
		}
		return history.NewDatastoreStore(gcpClient), nil
	}
	return history.Nop{}, nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
}

func (a *App) RegisterRoutes(h *handler.PredictionHandler) {
	a.Echo.GET("/", h.TriggerHandler)
	a.Echo.POST("/run", h.RunHandler)
	a.Echo.GET("/runs", h.ListRunsHandler)
	a.Echo.GET("/runs/:id", h.GetRunHandler)
	a.Echo.GET("/healthz", h.HealthHandler)
}

// RunOnce executes a single batch, the way the job runs outside of serve mode.
func (a *App) RunOnce(ctx context.Context) (*domain.Summary, error) {
	return a.Service.Run(ctx)
}

func (a *App) Run() error {
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}

func (a *App) Close() {
	if a.History != nil {
		if err := a.History.Close(); err != nil {
			logger.ErrorLog(context.Background(), "failed to close run history: %v", err)
		}
	}
}
