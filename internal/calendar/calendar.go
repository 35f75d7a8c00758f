// Package calendar lays tasks with due dates out on a month grid.
package calendar

import (
	"time"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

// Weekdays are the grid column headers, Monday first.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

type Day struct {
	Date    string `json:"date"`
	Day     int    `json:"day"`
	InMonth bool   `json:"in_month"`
	Today   bool   `json:"today"`
}

type Week [7]Day

type Month struct {
	YearMonth
	Name      string              `json:"name"`
	Weekdays  []string            `json:"weekdays"`
	Weeks     []Week              `json:"weeks"`
	Events    map[string][]string `json:"events"`
	Previous  YearMonth           `json:"previous"`
	Following YearMonth           `json:"next"`
	Today     string              `json:"today"`
}

// Normalize rolls a month outside 1..12 into the adjacent year: anything
// below 1 becomes December of the previous year, anything above 12 January
// of the next one.
func Normalize(year, month int) YearMonth {
	switch {
	case month < 1:
		return YearMonth{Year: year - 1, Month: time.December}
	case month > 12:
		return YearMonth{Year: year + 1, Month: time.January}
	}
	return YearMonth{Year: year, Month: time.Month(month)}
}

func (ym YearMonth) Prev() YearMonth {
	if ym.Month == time.January {
		return YearMonth{Year: ym.Year - 1, Month: time.December}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// Grid returns the Monday-first weeks covering the month, padded with days
// of the neighbouring months so that every week has seven days.
func Grid(ym YearMonth) [][7]time.Time {
	first := time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -mondayOffset(first))
	end := last.AddDate(0, 0, 6-mondayOffset(last))

	var weeks [][7]time.Time
	for d := start; !d.After(end); {
		var week [7]time.Time
		for i := range week {
			week[i] = d
			d = d.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// Build maps the due-dated tasks of the month onto its grid. Tasks whose due
// date is missing, malformed or outside the month are skipped.
func Build(tasks []model.Task, ym YearMonth, today time.Time) Month {
	todayISO := today.Format(model.DateLayout)

	grid := Grid(ym)
	weeks := make([]Week, 0, len(grid))
	for _, dates := range grid {
		var week Week
		for i, d := range dates {
			iso := d.Format(model.DateLayout)
			week[i] = Day{
				Date:    iso,
				Day:     d.Day(),
				InMonth: d.Month() == ym.Month,
				Today:   iso == todayISO,
			}
		}
		weeks = append(weeks, week)
	}

	return Month{
		YearMonth: ym,
		Name:      ym.Month.String(),
		Weekdays:  Weekdays,
		Weeks:     weeks,
		Events:    bucket(tasks, ym),
		Previous:  ym.Prev(),
		Following: ym.Next(),
		Today:     todayISO,
	}
}

func bucket(tasks []model.Task, ym YearMonth) map[string][]string {
	events := make(map[string][]string)
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		due, ok := model.ParseDate(*t.DueDate)
		if !ok || due.Year() != ym.Year || due.Month() != ym.Month {
			continue
		}
		key := due.Format(model.DateLayout)
		events[key] = append(events[key], t.Text)
	}
	return events
}

func mondayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
