package main

import (
	"fmt"
	"io"

	coursedto "attend/internal/modules/course/dto"
	"attend/internal/ui/components"
	"attend/internal/ui/theme"
)

const barWidth = 20

func styles() theme.Styles {
	return theme.New(true)
}

func courseLine(c coursedto.CourseOutput) string {
	s := styles()
	bar := components.ProgressBar(c.Percent, c.TargetPercent, barWidth, s.ForStatus(c.Status), s.Muted, s.Hot)
	return fmt.Sprintf("%s\t%s\t%d/%d\t%5.1f%%\t%s\t%s", c.ID, c.Name, c.Attended, c.TotalLectures, c.Percent, bar, s.ForStatus(c.Status).Render(c.Message))
}

func writeDetail(w io.Writer, d coursedto.CourseDetailOutput) {
	s := styles()
	_, _ = fmt.Fprintln(w, s.Title.Render(d.Name))
	_, _ = fmt.Fprintf(w, "id:         %s\n", d.ID)
	_, _ = fmt.Fprintf(w, "attended:   %d/%d (%.1f%%)\n", d.Attended, d.TotalLectures, d.Percent)
	_, _ = fmt.Fprintf(w, "target:     %d%%\n", d.TargetPercent)
	_, _ = fmt.Fprintf(w, "remaining:  %d\n", max(0, d.Remaining))
	_, _ = fmt.Fprintf(w, "status:     %s\n", s.ForStatus(d.Status).Render(d.Message))
	if d.HasLastMarked {
		_, _ = fmt.Fprintf(w, "last:       %s\n", d.LastMarked.Format("2006-01-02 15:04"))
	}
	st := d.Statistics
	_, _ = fmt.Fprintf(w, "days:       %d\n", st.TotalDays)
	_, _ = fmt.Fprintf(w, "streak:     %d\n", st.LongestStreak)
	_, _ = fmt.Fprintf(w, "per week:   %.1f\n", st.AveragePerWeek)
	_, _ = fmt.Fprintf(w, "busiest:    %s\n", st.MostActiveDay)
	if d.Attended == 0 {
		return
	}
	_, _ = fmt.Fprintln(w)
	for _, slot := range st.TimeSlots {
		_, _ = fmt.Fprintf(w, "%-18s %5.1f%%  %d\n", slot.Label, slot.Percent, slot.Count)
	}
	_, _ = fmt.Fprintln(w)
	for _, wd := range st.Weekdays {
		_, _ = fmt.Fprintf(w, "%-10s %s %d\n", wd.Day, components.ProgressBar(wd.Percent, 0, 12, s.Good, s.Muted, s.Muted), wd.Count)
	}
}

func writeHistory(w io.Writer, history []coursedto.HistoryOutput) {
	if len(history) == 0 {
		_, _ = fmt.Fprintln(w, "no attendance recorded")
		return
	}
	for _, h := range history {
		_, _ = fmt.Fprintf(w, "%d\t%s\n", h.Ordinal, h.At.Format("Mon 2006-01-02 15:04"))
	}
}
