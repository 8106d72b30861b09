package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// DayNames maps day_of_week 1..7 to display names, Monday first.
var DayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Domain errors
var (
	ErrEmptyClassName = errors.New("class name cannot be empty")
	ErrInvalidDay     = errors.New("day of week must be between 1 (Monday) and 7 (Sunday)")
	ErrInvalidStart   = errors.New("start time must be HH:MM or HH:MM:SS")
)

// Class is one recurring weekly group class on the public timetable.
type Class struct {
	ID        string
	ClassName string
	DayOfWeek int    // 1 = Monday .. 7 = Sunday
	StartTime string // HH:MM or HH:MM:SS
}

// Validate checks if the Class has valid data.
// PRE: Class struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Class) Validate() error {
	if strings.TrimSpace(c.ClassName) == "" {
		return ErrEmptyClassName
	}
	if c.DayOfWeek < 1 || c.DayOfWeek > 7 {
		return ErrInvalidDay
	}
	if _, err := parseStart(c.StartTime); err != nil {
		return ErrInvalidStart
	}
	return nil
}

// Slot returns the HH:MM row key for the class.
// PRE: StartTime is at least five characters
func (c *Class) Slot() string {
	if len(c.StartTime) < 5 {
		return c.StartTime
	}
	return c.StartTime[:5]
}

// DayName returns the display name of the class day.
// PRE: Validate() returned nil
func (c *Class) DayName() string {
	return DayNames[c.DayOfWeek-1]
}

func parseStart(s string) (time.Time, error) {
	if t, err := time.Parse("15:04", s); err == nil {
		return t, nil
	}
	return time.Parse("15:04:05", s)
}

// Entry is one bookable cell item in the timetable grid.
type Entry struct {
	ClassName      string `json:"class_name"`
	Day            string `json:"day"`
	Time           string `json:"time"`
	Service        string `json:"service"`
	PrefillMessage string `json:"prefill_message"`
}

// Row is one time slot: seven day columns, Monday first.
type Row struct {
	Time string     `json:"time"`
	Days [7][]Entry `json:"days"`
}

// Grid is the weekly timetable.
type Grid struct {
	Days [7]string `json:"days"`
	Rows []Row     `json:"rows"`
}

// ServiceLabel is the booking form service value a class entry selects.
func ServiceLabel(className string) string {
	return "Group Class: " + className
}

// PrefillMessage is the booking message a class entry prefills.
func PrefillMessage(className, day, slot string) string {
	return fmt.Sprintf("I'm interested in booking the \"%s\" class on %s at %s.", className, day, slot)
}

// BuildGrid groups classes into rows by HH:MM slot, sorted by time. Classes
// with an out-of-range day are skipped. Input order is kept within a cell.
// PRE: none
// POST: every row has exactly seven day columns
func BuildGrid(classes []Class) Grid {
	bySlot := map[string]*Row{}
	var slots []string
	for _, c := range classes {
		if c.DayOfWeek < 1 || c.DayOfWeek > 7 {
			continue
		}
		slot := c.Slot()
		row, ok := bySlot[slot]
		if !ok {
			row = &Row{Time: slot}
			for i := range row.Days {
				row.Days[i] = []Entry{}
			}
			bySlot[slot] = row
			slots = append(slots, slot)
		}
		day := c.DayName()
		row.Days[c.DayOfWeek-1] = append(row.Days[c.DayOfWeek-1], Entry{
			ClassName:      c.ClassName,
			Day:            day,
			Time:           slot,
			Service:        ServiceLabel(c.ClassName),
			PrefillMessage: PrefillMessage(c.ClassName, day, slot),
		})
	}
	sort.Strings(slots)

	grid := Grid{Days: DayNames, Rows: make([]Row, 0, len(slots))}
	for _, s := range slots {
		grid.Rows = append(grid.Rows, *bySlot[s])
	}
	return grid
}
