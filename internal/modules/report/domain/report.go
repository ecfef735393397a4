package domain

import (
	"fmt"
	"strings"
	"time"
)

const SchemaVersion = 1

// Report is a point-in-time snapshot of one course's attendance.
type Report struct {
	CourseID       string
	CourseName     string
	Attended       int
	TotalLectures  int
	TargetPercent  int
	CurrentPercent float64
	Status         string
	Message        string
	SafeSkips      int
	Needed         int
	LongestStreak  int
	AveragePerWeek float64
	MostActiveDay  string
	History        []Entry
	ExportedAt     time.Time
}

type Entry struct {
	Ordinal int
	At      time.Time
}

func (r Report) Meta() map[string]any {
	return map[string]any{
		"schema_version":   SchemaVersion,
		"id":               r.CourseID,
		"name":             r.CourseName,
		"attended":         r.Attended,
		"total_lectures":   r.TotalLectures,
		"target_percent":   r.TargetPercent,
		"current_percent":  round1(r.CurrentPercent),
		"status":           r.Status,
		"safe_skips":       r.SafeSkips,
		"longest_streak":   r.LongestStreak,
		"average_per_week": round1(r.AveragePerWeek),
		"most_active_day":  r.MostActiveDay,
		"exported_at":      r.ExportedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (r Report) Body() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", r.CourseName)
	fmt.Fprintf(&sb, "- Attended: %d/%d (%.1f%%)\n", r.Attended, r.TotalLectures, r.CurrentPercent)
	fmt.Fprintf(&sb, "- Target: %d%%\n", r.TargetPercent)
	fmt.Fprintf(&sb, "- Need: %d\n", max(0, r.Needed))
	fmt.Fprintf(&sb, "- Status: %s\n\n", r.Message)
	sb.WriteString("## History\n\n")
	if len(r.History) == 0 {
		sb.WriteString("No attendance recorded yet.\n")
		return sb.String()
	}
	for _, e := range r.History {
		fmt.Fprintf(&sb, "%d. %s\n", e.Ordinal, e.At.Format("Mon 2006-01-02 15:04"))
	}
	return sb.String()
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
