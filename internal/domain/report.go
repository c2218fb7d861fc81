package domain

import "time"

// ReportStatus enumerates report lifecycle states.
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusInProgress ReportStatus = "in_progress"
	ReportStatusCompleted  ReportStatus = "completed"
	ReportStatusCancelled  ReportStatus = "cancelled"
)

// Valid reports whether the status is one of the four enumerated values.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusPending, ReportStatusInProgress, ReportStatusCompleted, ReportStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s ReportStatus) Terminal() bool {
	return s == ReportStatusCompleted || s == ReportStatusCancelled
}

// Report is an incident filed by staff against an item or category. The
// assigned partner is resolved at creation time and CompletedAt is set iff
// the status is completed.
type Report struct {
	ID                  string
	CompanyCode         string
	OfficeCode          string
	ItemID              *string
	Type                string
	Title               string
	Category            Category
	Description         string
	Location            string
	Status              ReportStatus
	AssignedPartnerID   *string
	AssignedPartnerName string
	ReporterID          string
	ReporterName        string
	ContractorMemo      string
	PhotoCount          int
	CompletedAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ReportPhoto is metadata for an uploaded photo attached to a report.
type ReportPhoto struct {
	ID         string
	ReportID   string
	StorageKey string
	FileName   string
	MimeType   string
	CreatedAt  time.Time
}
