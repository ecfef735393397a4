package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	courseinadapter "attend/internal/modules/course/adapter/in"
	courseoutadapter "attend/internal/modules/course/adapter/out"
	courseout "attend/internal/modules/course/port/out"
	courseservice "attend/internal/modules/course/service"
	courseusecase "attend/internal/modules/course/usecase"
	reportinadapter "attend/internal/modules/report/adapter/in"
	reportoutadapter "attend/internal/modules/report/adapter/out"
	reportusecase "attend/internal/modules/report/usecase"
	"attend/internal/platform/clock"
	"attend/internal/platform/config"
	"attend/internal/platform/id"
	"attend/internal/platform/logger"
	uiapp "attend/internal/ui/app"
)

type App struct {
	CourseCLI courseinadapter.CLIHandler
	CourseTUI courseinadapter.TUIHandler
	ReportCLI reportinadapter.CLIHandler
	Log       *logger.Logger

	closers []func() error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	app := &App{Log: log}

	var store courseout.StateStore
	switch cfg.Store {
	case config.StoreSQLite:
		sqliteStore, err := courseoutadapter.NewSQLiteStateStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("new sqlite state store: %w", err)
		}
		app.closers = append(app.closers, sqliteStore.Close)
		store = sqliteStore
	default:
		store = courseoutadapter.NewFileStateStore(cfg.StatePath)
	}
	log.Debug("state store ready", "store", cfg.Store, "data_dir", cfg.DataDir)

	clk := clock.SystemClock{}
	courseSvc := courseservice.NewCourseService(clk, id.TimeOrdered{}, store, log,
		courseservice.Policy{CapMarkAtTotal: cfg.CapMarkAtTotal})
	courseSvc.Load(ctx)
	courseUC := courseusecase.NewInteractor(courseSvc, loc)

	reportUC := reportusecase.NewInteractor(courseUC, clk, reportoutadapter.NewMarkdownReportStore(cfg.ReportDir))

	app.CourseCLI = courseinadapter.NewCLIHandler(courseUC)
	app.CourseTUI = courseinadapter.NewTUIHandler(courseUC)
	app.ReportCLI = reportinadapter.NewCLIHandler(reportUC)
	return app, nil
}

// Close releases stores and flushes the logger.
func (a *App) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.Log.Sync()
	return firstErr
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.CourseTUI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
