package store

import (
	"time"

	"cafe-backend/internal/models"
)

// MarkAttendance records status for staffID on date's calendar day. A second
// mark for the same staff and day overwrites the status of the existing
// record, keeping its id and date.
func (s *Store) MarkAttendance(staffID string, date time.Time, status models.AttendanceStatus) (models.Attendance, error) {
	if !status.Valid() {
		return models.Attendance{}, invalid("unknown attendance status %q", status)
	}
	if date.IsZero() {
		return models.Attendance{}, invalid("attendance date is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.staffIndex(staffID) < 0 {
		return models.Attendance{}, invalid("unknown staff %q", staffID)
	}

	for i := range s.attendance {
		a := &s.attendance[i]
		if a.StaffID == staffID && models.SameDay(a.Date, date, s.loc) {
			a.Status = status
			return *a, nil
		}
	}

	a := models.Attendance{
		ID:      s.ids.NewID(prefixAttendance),
		StaffID: staffID,
		Date:    date,
		Status:  status,
	}
	s.attendance = append(s.attendance, a)
	return a, nil
}
