package staff

import (
	"time"

	"github.com/shopspring/decimal"

	"cafe-backend/internal/models"
	"cafe-backend/internal/store"
)

type SalaryLine struct {
	StaffID          string           `json:"staff_id"`
	Name             string           `json:"name"`
	Role             models.StaffRole `json:"role"`
	BaseSalary       decimal.Decimal  `json:"base_salary"`
	DaysInMonth      int              `json:"days_in_month"`
	PresentDays      int              `json:"present_days"`
	PerDaySalary     decimal.Decimal  `json:"per_day_salary"`
	CalculatedSalary decimal.Decimal  `json:"calculated_salary"`
}

// CalculatedSalary prorates the monthly base salary by the number of Present
// marks the staff member has in now's month.
func CalculatedSalary(s models.Staff, attendance []models.Attendance, now time.Time) SalaryLine {
	days := models.DaysInMonth(now)
	present := 0
	for _, a := range attendance {
		if a.StaffID == s.ID && a.Status == models.AttendancePresent &&
			models.SameMonth(a.Date, now, now.Location()) {
			present++
		}
	}

	daysDec := decimal.NewFromInt(int64(days))
	return SalaryLine{
		StaffID:      s.ID,
		Name:         s.Name,
		Role:         s.Role,
		BaseSalary:   s.Salary,
		DaysInMonth:  days,
		PresentDays:  present,
		PerDaySalary: s.Salary.Div(daysDec),
		// multiply first so whole-day multiples stay exact
		CalculatedSalary: s.Salary.Mul(decimal.NewFromInt(int64(present))).Div(daysDec),
	}
}

// Payroll returns the calculated salary of every staff member, in roster order.
func Payroll(snap store.Snapshot, now time.Time) []SalaryLine {
	lines := make([]SalaryLine, 0, len(snap.Staff))
	for _, s := range snap.Staff {
		lines = append(lines, CalculatedSalary(s, snap.Attendance, now))
	}
	return lines
}

type AttendanceRow struct {
	StaffID string                  `json:"staff_id"`
	Name    string                  `json:"name"`
	Role    models.StaffRole        `json:"role"`
	Status  models.AttendanceStatus `json:"status"`
	// empty when the day has not been marked
	AttendanceID string `json:"attendance_id,omitempty"`
}

// AttendanceForDay lists every staff member with their status on day's
// calendar day, or "Not Marked".
func AttendanceForDay(snap store.Snapshot, day time.Time) []AttendanceRow {
	loc := day.Location()
	rows := make([]AttendanceRow, 0, len(snap.Staff))
	for _, s := range snap.Staff {
		row := AttendanceRow{StaffID: s.ID, Name: s.Name, Role: s.Role, Status: models.AttendanceNotMarked}
		for _, a := range snap.Attendance {
			if a.StaffID == s.ID && models.SameDay(a.Date, day, loc) {
				row.Status = a.Status
				row.AttendanceID = a.ID
				break
			}
		}
		rows = append(rows, row)
	}
	return rows
}
