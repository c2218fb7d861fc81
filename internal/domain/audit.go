package domain

import "time"

// AuditEvent records one approved mutating operation. The engine emits these;
// persistence is a collaborator concern.
type AuditEvent struct {
	ID          string
	CompanyCode string
	OfficeCode  *string
	ActorID     string
	ActorName   string
	Action      string
	TargetType  string
	TargetID    *string
	Details     map[string]any
	CreatedAt   time.Time
}
