package models

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceLeave   AttendanceStatus = "Leave"

	// AttendanceNotMarked is only used by views; it is never stored.
	AttendanceNotMarked AttendanceStatus = "Not Marked"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLeave:
		return true
	}
	return false
}

// Attendance is unique per (StaffID, calendar day of Date).
type Attendance struct {
	ID      string           `json:"id"`
	StaffID string           `json:"staff_id"`
	Date    time.Time        `json:"date"`
	Status  AttendanceStatus `json:"status"`
}

// DayKey truncates t to its calendar day in loc.
func DayKey(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DayKey(a, loc).Equal(DayKey(b, loc))
}

// SameMonth reports whether a and b fall in the same month and year in loc.
func SameMonth(a, b time.Time, loc *time.Location) bool {
	a, b = a.In(loc), b.In(loc)
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// DaysInMonth returns the number of days (28-31) in t's month.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
