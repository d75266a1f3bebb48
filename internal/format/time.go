// Package format renders timestamps the way ~/.molshrc asks for.
package format

import (
	"strings"
	"time"
)

// Layout holds Go time layouts for dates and times.
type Layout struct {
	Date      string
	DateShort string
	Time      string
}

// LayoutFrom builds a Layout from the display_date and display_time
// config keys, read through get.
func LayoutFrom(get func(string) (string, bool)) Layout {
	displayDate, _ := get("display_date")
	displayTime, _ := get("display_time")
	return Layout{
		Date:      dateLayout(displayDate),
		DateShort: dateLayoutShort(displayDate),
		Time:      timeLayout(displayTime),
	}
}

// Stamp formats a short date and time.
// Example output: "Jan 23 15:04" or "01/23 3:04 PM"
func (l Layout) Stamp(t time.Time) string {
	return t.Format(l.DateShort) + " " + t.Format(l.Time)
}

// DateTime formats a date and time.
// Example output: "23/01/2024 15:04"
func (l Layout) DateTime(t time.Time) string {
	return t.Format(l.Date) + " " + t.Format(l.Time)
}

// Since formats t for a listing made at now: Stamp within the same year,
// DateTime otherwise.
func (l Layout) Since(t, now time.Time) string {
	if t.Year() == now.Year() {
		return l.Stamp(t)
	}
	return l.DateTime(t)
}

func dateLayout(displayDate string) string {
	switch displayDate {
	case "":
		return "Jan 02 2006"
	case "mm/dd/yyyy":
		return "01/02/2006"
	case "yyyy-mm-dd":
		return "2006-01-02"
	case "dd/mm/yyyy":
		return "02/01/2006"
	default:
		// A custom Go layout such as "Jan 02".
		return displayDate
	}
}

func dateLayoutShort(displayDate string) string {
	switch displayDate {
	case "":
		return "Jan 02"
	case "mm/dd/yyyy":
		return "01/02"
	case "yyyy-mm-dd":
		return "01-02"
	case "dd/mm/yyyy":
		return "02/01"
	default:
		short := displayDate
		for _, year := range []string{"2006", "/06", "-06", " 06"} {
			short = strings.ReplaceAll(short, year, "")
		}
		short = strings.Trim(strings.TrimSpace(short), "/-")
		if short == "" {
			return "Jan 02"
		}
		return short
	}
}

func timeLayout(displayTime string) string {
	if displayTime == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}
