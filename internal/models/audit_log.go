package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionMark   AuditAction = "mark"
)

type AuditLog struct {
	ID        uint64    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Which account?
	Actor     string    `json:"actor"`
	ActorRole StaffRole `json:"actor_role"`

	// Which entity? ("product", "order", "staff", "expense", "attendance", "account")
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`

	Action      AuditAction `json:"action"`
	Description string      `json:"description"`

	// Before and after state as JSON ("null" when absent)
	BeforeData string `json:"before_data"`
	AfterData  string `json:"after_data"`
}
