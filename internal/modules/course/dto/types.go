package dto

import "time"

type AddCourseInput struct {
	Name          string
	TotalLectures string
	TargetPercent string
}

type EditCourseInput struct {
	CourseID      string
	Name          string
	TotalLectures string
	TargetPercent string
	Attended      string
}

type CourseOutput struct {
	ID            string
	Name          string
	TotalLectures int
	TargetPercent int
	Attended      int
	Percent       float64
	Remaining     int
	Needed        int
	SafeSkips     int
	Status        string
	Message       string
	LastMarked    time.Time
	HasLastMarked bool
}

type MarkOutput struct {
	Course        CourseOutput
	MarkedAt      time.Time
	TargetReached bool
}

type SlotOutput struct {
	Label   string
	Count   int
	Percent float64
}

type WeekdayOutput struct {
	Day     string
	Count   int
	Percent float64
}

type HistoryOutput struct {
	Ordinal int
	At      time.Time
}

type StatisticsOutput struct {
	TotalDays      int
	LongestStreak  int
	AveragePerWeek float64
	MostActiveDay  string
	TimeSlots      []SlotOutput
	Weekdays       []WeekdayOutput
}

type CourseDetailOutput struct {
	CourseOutput
	Statistics StatisticsOutput
	History    []HistoryOutput
}

type OverviewOutput struct {
	Total   int
	OnTrack int
}

type SettingsOutput struct {
	DarkMode bool
}
