package events

import (
	"time"

	"github.com/onetouch-fm/facility-service/internal/domain"
)

// Action identifies the mutating operation an event records.
type Action string

const (
	ActionAccountCreate      Action = "account_create"
	ActionAccountUpdate      Action = "account_update"
	ActionAccountDelete      Action = "account_delete"
	ActionItemCreate         Action = "item_create"
	ActionItemUpdate         Action = "item_update"
	ActionItemDelete         Action = "item_delete"
	ActionItemImport         Action = "item_import"
	ActionContractCreate     Action = "contract_create"
	ActionContractUpdate     Action = "contract_update"
	ActionContractDelete     Action = "contract_delete"
	ActionPartnerCreate      Action = "partner_create"
	ActionPartnerUpdate      Action = "partner_update"
	ActionPartnerDelete      Action = "partner_delete"
	ActionCompanyCreate      Action = "company_create"
	ActionCompanyUpdate      Action = "company_update"
	ActionOfficeCreate       Action = "office_create"
	ActionOfficeUpdate       Action = "office_update"
	ActionOfficeDelete       Action = "office_delete"
	ActionReportCreate       Action = "report_create"
	ActionReportStatusUpdate Action = "report_status_update"
	ActionSettingUpdate      Action = "setting_update"
)

// AuditedActions lists every action the audit trail subscribes to.
func AuditedActions() []Action {
	return []Action{
		ActionAccountCreate, ActionAccountUpdate, ActionAccountDelete,
		ActionItemCreate, ActionItemUpdate, ActionItemDelete, ActionItemImport,
		ActionContractCreate, ActionContractUpdate, ActionContractDelete,
		ActionPartnerCreate, ActionPartnerUpdate, ActionPartnerDelete,
		ActionCompanyCreate, ActionCompanyUpdate,
		ActionOfficeCreate, ActionOfficeUpdate, ActionOfficeDelete,
		ActionReportCreate, ActionReportStatusUpdate,
		ActionSettingUpdate,
	}
}

// Actor is the principal behind an event.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Event is emitted for every mutating operation the engine approves.
type Event struct {
	ID          string         `json:"id"`
	Action      Action         `json:"action"`
	CompanyCode string         `json:"company_code"`
	OfficeCode  *string        `json:"office_code,omitempty"`
	Actor       Actor          `json:"actor"`
	TargetType  string         `json:"target_type"`
	TargetID    *string        `json:"target_id,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

// ActorFromPrincipal converts a principal into event actor metadata.
func ActorFromPrincipal(p domain.Principal) Actor {
	return Actor{ID: p.ID, Name: p.Name, Role: string(p.Role)}
}
