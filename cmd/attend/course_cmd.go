package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"attend/internal/bootstrap"
)

func newCourseCmd(flags *globalFlags) *cobra.Command {
	course := &cobra.Command{Use: "course", Short: "Manage courses and attendance"}

	var total, target string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a course",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			out, err := app.CourseCLI.Add(ctx, args[0], total, target)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", out.Name, out.ID)
			return nil
		}),
	}
	addCmd.Flags().StringVar(&total, "total", "", "total number of lectures")
	addCmd.Flags().StringVar(&target, "target", "", "target attendance percent (1-100)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List courses with progress",
		RunE: withApp(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			courses, err := app.CourseCLI.List(ctx)
			if err != nil {
				return err
			}
			if len(courses) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no courses")
				return nil
			}
			for _, c := range courses {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), courseLine(c))
			}
			overview, err := app.CourseCLI.Overview(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%d courses, %d on track\n", overview.Total, overview.OnTrack)
			return nil
		}),
	}

	showCmd := &cobra.Command{
		Use:   "show <course-id>",
		Short: "Show progress and statistics for a course",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			detail, err := app.CourseCLI.Show(ctx, args[0])
			if err != nil {
				return err
			}
			writeDetail(cmd.OutOrStdout(), detail)
			return nil
		}),
	}

	var editName, editTotal, editTarget, editAttended string
	editCmd := &cobra.Command{
		Use:   "edit <course-id>",
		Short: "Edit a course; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			current, err := app.CourseCLI.Show(ctx, args[0])
			if err != nil {
				return err
			}
			name, totalArg, targetArg, attendedArg := current.Name, strconv.Itoa(current.TotalLectures), strconv.Itoa(current.TargetPercent), strconv.Itoa(current.Attended)
			if cmd.Flags().Changed("name") {
				name = editName
			}
			if cmd.Flags().Changed("total") {
				totalArg = editTotal
			}
			if cmd.Flags().Changed("target") {
				targetArg = editTarget
			}
			if cmd.Flags().Changed("attended") {
				attendedArg = editAttended
			}
			out, err := app.CourseCLI.Edit(ctx, args[0], name, totalArg, targetArg, attendedArg)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), courseLine(out))
			return nil
		}),
	}
	editCmd.Flags().StringVar(&editName, "name", "", "course name")
	editCmd.Flags().StringVar(&editTotal, "total", "", "total number of lectures")
	editCmd.Flags().StringVar(&editTarget, "target", "", "target attendance percent (1-100)")
	editCmd.Flags().StringVar(&editAttended, "attended", "", "number of attended lectures")

	removeCmd := &cobra.Command{
		Use:   "remove <course-id>",
		Short: "Remove a course",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			if err := app.CourseCLI.Remove(ctx, args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		}),
	}

	markCmd := &cobra.Command{
		Use:   "mark <course-id>",
		Short: "Record attendance at the current time",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			out, err := app.CourseCLI.Mark(ctx, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "marked %s at %s\n", out.Course.Name, out.MarkedAt.Format("2006-01-02 15:04"))
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), courseLine(out.Course))
			if out.TargetReached {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), styles().Good.Render("🎉 Target reached!"))
			}
			return nil
		}),
	}

	var yes bool
	resetCmd := &cobra.Command{
		Use:   "reset <course-id>",
		Short: "Clear all attendance for a course",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			if !yes {
				return fmt.Errorf("reset clears all attendance for %s; rerun with --yes to confirm", args[0])
			}
			out, err := app.CourseCLI.Reset(ctx, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), courseLine(out))
			return nil
		}),
	}
	resetCmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")

	historyCmd := &cobra.Command{
		Use:   "history <course-id>",
		Short: "List attendance events, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
			detail, err := app.CourseCLI.Show(ctx, args[0])
			if err != nil {
				return err
			}
			writeHistory(cmd.OutOrStdout(), detail.History)
			return nil
		}),
	}

	course.AddCommand(addCmd, listCmd, showCmd, editCmd, removeCmd, markCmd, resetCmd, historyCmd)
	return course
}
