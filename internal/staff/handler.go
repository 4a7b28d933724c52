package staff

import (
	"time"

	"cafe-backend/internal/audit"
	"cafe-backend/internal/auth"
	"cafe-backend/internal/models"
	"cafe-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type MarkAttendanceRequest struct {
	StaffID string                  `json:"staff_id"`
	Date    string                  `json:"date"` // "2024-06-15"
	Status  models.AttendanceStatus `json:"status"`
}

// GET /api/staff
func ListStaffHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(st.Snapshot().Staff)
	}
}

// GET /api/staff/payroll
func PayrollHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(Payroll(st.Snapshot(), st.Now()))
	}
}

// POST /api/admin/staff
func CreateStaffHandler(st *store.Store, trail *audit.Trail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body models.StaffInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid staff payload")
		}
		if body.JoinDate.IsZero() {
			body.JoinDate = st.Now()
		}

		created, err := st.CreateStaff(body)
		if err != nil {
			return err
		}

		actor, role := auth.Actor(c)
		trail.WriteLog(audit.LogOptions{
			Actor: actor, ActorRole: role,
			EntityType: "staff", EntityID: created.ID,
			Action:      models.AuditActionCreate,
			Description: "staff added: " + created.Name,
			After:       created,
		})
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// PUT /api/admin/staff/:id
func UpdateStaffHandler(st *store.Store, trail *audit.Trail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body models.StaffInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid staff payload")
		}

		// omitted join date keeps the current one
		before, saved, err := st.PatchStaff(id, func(s *models.Staff) {
			s.Name = body.Name
			s.Role = body.Role
			s.Shift = body.Shift
			s.Salary = body.Salary
			if !body.JoinDate.IsZero() {
				s.JoinDate = body.JoinDate
			}
		})
		if err != nil {
			return err
		}

		actor, role := auth.Actor(c)
		trail.WriteLog(audit.LogOptions{
			Actor: actor, ActorRole: role,
			EntityType: "staff", EntityID: id,
			Action:      models.AuditActionUpdate,
			Description: "staff updated: " + saved.Name,
			Before:      before,
			After:       saved,
		})
		return c.JSON(saved)
	}
}

// DELETE /api/admin/staff/:id
func DeleteStaffHandler(st *store.Store, trail *audit.Trail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		before, _ := st.Staff(id)

		if err := st.DeleteStaff(id); err != nil {
			return err
		}

		actor, role := auth.Actor(c)
		trail.WriteLog(audit.LogOptions{
			Actor: actor, ActorRole: role,
			EntityType: "staff", EntityID: id,
			Action:      models.AuditActionDelete,
			Description: "staff removed: " + before.Name,
			Before:      before,
		})
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/attendance?date=2024-06-15 (defaults to today)
func AttendanceSheetHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day := st.Now()
		if ds := c.Query("date"); ds != "" {
			parsed, err := time.ParseInLocation("2006-01-02", ds, st.Location())
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
			}
			day = parsed
		}
		return c.JSON(fiber.Map{
			"date": day.Format("2006-01-02"),
			"rows": AttendanceForDay(st.Snapshot(), day),
		})
	}
}

// POST /api/attendance
func MarkAttendanceHandler(st *store.Store, trail *audit.Trail) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body MarkAttendanceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid attendance payload")
		}

		date, err := time.ParseInLocation("2006-01-02", body.Date, st.Location())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}

		rec, err := st.MarkAttendance(body.StaffID, date, body.Status)
		if err != nil {
			return err
		}

		actor, role := auth.Actor(c)
		trail.WriteLog(audit.LogOptions{
			Actor: actor, ActorRole: role,
			EntityType: "attendance", EntityID: rec.ID,
			Action:      models.AuditActionMark,
			Description: body.StaffID + " marked " + string(rec.Status) + " on " + body.Date,
			After:       rec,
		})
		return c.JSON(rec)
	}
}
