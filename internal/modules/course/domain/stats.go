package domain

import (
	"slices"
	"sort"
	"time"
)

const dayLayout = "2006-01-02"

type Slot int

const (
	SlotMorning Slot = iota
	SlotAfternoon
	SlotEvening
	SlotNight
)

var slotLabels = [...]string{
	SlotMorning:   "Morning (6-12)",
	SlotAfternoon: "Afternoon (12-18)",
	SlotEvening:   "Evening (18-24)",
	SlotNight:     "Night (0-6)",
}

func (s Slot) String() string { return slotLabels[s] }

func SlotOf(hour int) Slot {
	switch {
	case hour >= 6 && hour < 12:
		return SlotMorning
	case hour >= 12 && hour < 18:
		return SlotAfternoon
	case hour >= 18 && hour < 24:
		return SlotEvening
	default:
		return SlotNight
	}
}

type SlotShare struct {
	Slot    Slot
	Count   int
	Percent float64
}

type WeekdayShare struct {
	Weekday time.Weekday
	Count   int
	// Percent is relative to the busiest weekday, for bar scaling.
	Percent float64
}

type HistoryEntry struct {
	Ordinal int
	At      time.Time
}

type Statistics struct {
	TotalDays      int
	LongestStreak  int
	AveragePerWeek float64
	MostActiveDay  time.Weekday
	HasActiveDay   bool
	TimeSlots      []SlotShare
	Weekdays       []WeekdayShare
}

// LongestStreak counts the longest run of consecutive calendar days in loc.
// Several events on one day count once.
func LongestStreak(events []time.Time, loc *time.Location) int {
	if len(events) == 0 {
		return 0
	}
	days := make([]string, 0, len(events))
	for _, e := range events {
		days = append(days, e.In(loc).Format(dayLayout))
	}
	sort.Strings(days)
	days = slices.Compact(days)

	longest, current := 1, 1
	for i := 1; i < len(days); i++ {
		prev, _ := time.Parse(dayLayout, days[i-1])
		cur, _ := time.Parse(dayLayout, days[i])
		if prev.AddDate(0, 0, 1).Equal(cur) {
			current++
			longest = max(longest, current)
		} else {
			current = 1
		}
	}
	return longest
}

// AveragePerWeek divides the event count by the weeks spanned from the first to
// the last event. A zero span yields the count itself.
func AveragePerWeek(events []time.Time) float64 {
	if len(events) == 0 {
		return 0
	}
	first, last := events[0], events[0]
	for _, e := range events[1:] {
		if e.Before(first) {
			first = e
		}
		if e.After(last) {
			last = e
		}
	}
	weeks := last.Sub(first).Hours() / (24 * 7)
	if weeks <= 0 {
		return float64(len(events))
	}
	return float64(len(events)) / weeks
}

// MostActiveDay returns the weekday with the most events. Ties go to the
// weekday encountered first in events.
func MostActiveDay(events []time.Time, loc *time.Location) (time.Weekday, bool) {
	if len(events) == 0 {
		return time.Sunday, false
	}
	var counts [7]int
	order := make([]time.Weekday, 0, 7)
	for _, e := range events {
		d := e.In(loc).Weekday()
		if counts[d] == 0 {
			order = append(order, d)
		}
		counts[d]++
	}
	best := order[0]
	for _, d := range order[1:] {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best, true
}

func TimeSlotDistribution(events []time.Time, loc *time.Location) []SlotShare {
	var counts [len(slotLabels)]int
	for _, e := range events {
		counts[SlotOf(e.In(loc).Hour())]++
	}
	out := make([]SlotShare, 0, len(counts))
	for i, n := range counts {
		share := SlotShare{Slot: Slot(i), Count: n}
		if len(events) > 0 {
			share.Percent = 100 * float64(n) / float64(len(events))
		}
		out = append(out, share)
	}
	return out
}

func WeekdayDistribution(events []time.Time, loc *time.Location) []WeekdayShare {
	var counts [7]int
	for _, e := range events {
		counts[e.In(loc).Weekday()]++
	}
	top := 0
	for _, n := range counts {
		top = max(top, n)
	}
	out := make([]WeekdayShare, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		share := WeekdayShare{Weekday: d, Count: counts[d]}
		if top > 0 {
			share.Percent = 100 * float64(counts[d]) / float64(top)
		}
		out = append(out, share)
	}
	return out
}

// History lists events newest first, numbered so the oldest is 1.
func History(events []time.Time) []HistoryEntry {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b time.Time) int { return b.Compare(a) })
	out := make([]HistoryEntry, len(sorted))
	for i, at := range sorted {
		out[i] = HistoryEntry{Ordinal: len(sorted) - i, At: at}
	}
	return out
}

func ComputeStatistics(c Course, loc *time.Location) Statistics {
	day, ok := MostActiveDay(c.Attended, loc)
	return Statistics{
		TotalDays:      len(c.Attended),
		LongestStreak:  LongestStreak(c.Attended, loc),
		AveragePerWeek: AveragePerWeek(c.Attended),
		MostActiveDay:  day,
		HasActiveDay:   ok,
		TimeSlots:      TimeSlotDistribution(c.Attended, loc),
		Weekdays:       WeekdayDistribution(c.Attended, loc),
	}
}
