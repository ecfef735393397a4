package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"attend/internal/bootstrap"
	"attend/internal/platform/config"
	apperrors "attend/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, apperrors.UserMessage(err))
		os.Exit(1)
	}
}

type globalFlags struct {
	dataDir string
	store   string
	logMode string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "attend",
		Short:         "Track lecture attendance against a target percentage",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", defaultDataDir(), "directory holding attendance data, config.yaml and reports")
	root.PersistentFlags().StringVar(&flags.store, "store", "", "state store: file|sqlite (overrides config)")
	root.PersistentFlags().StringVar(&flags.logMode, "log-mode", "", "log mode: dev|debug|prod (overrides config)")

	root.AddCommand(newCourseCmd(flags))
	root.AddCommand(newSettingsCmd(flags))
	root.AddCommand(newReportCmd(flags))
	root.AddCommand(newTUICmd(flags))
	return root
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "attend")
}

func loadApp(ctx context.Context, flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := config.New(flags.dataDir)
	if err != nil {
		return nil, err
	}
	if flags.store != "" {
		cfg.Store = flags.store
	}
	if flags.logMode != "" {
		cfg.LogMode = flags.logMode
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg)
}

// withApp builds the application for one command and closes it afterwards.
func withApp(flags *globalFlags, fn func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		app, err := loadApp(ctx, flags)
		if err != nil {
			return err
		}
		defer app.Close()
		return fn(ctx, cmd, app, args)
	}
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the attendance dashboard",
		RunE: withApp(flags, func(_ context.Context, _ *cobra.Command, app *bootstrap.App, _ []string) error {
			return bootstrap.RunTUI(app)
		}),
	}
}

func newSettingsCmd(flags *globalFlags) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Show or change preferences"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current preferences",
		RunE: withApp(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			s, err := app.CourseCLI.Settings(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "dark_mode=%t\n", s.DarkMode)
			return nil
		}),
	})
	settings.AddCommand(&cobra.Command{
		Use:   "dark-mode",
		Short: "Toggle dark mode",
		RunE: withApp(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			s, err := app.CourseCLI.ToggleDarkMode(ctx)
			if err != nil {
				return err
			}
			state := "off"
			if s.DarkMode {
				state = "on"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "dark mode %s\n", state)
			return nil
		}),
	})
	return settings
}

func newReportCmd(flags *globalFlags) *cobra.Command {
	report := &cobra.Command{Use: "report", Short: "Export attendance reports"}
	report.AddCommand(&cobra.Command{
		Use:   "export <course-id>",
		Short: "Write a markdown report for a course",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			out, err := app.ReportCLI.Export(ctx, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", out.CourseID, out.Path)
			return nil
		}),
	})
	return report
}
