package dto

import (
	"time"

	"github.com/onetouch-fm/facility-service/internal/domain"
)

// CreateReportRequest payload.
type CreateReportRequest struct {
	ItemID      *string `json:"item_id"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	OfficeCode  string  `json:"office_code"`
}

// UpdateReportStatusRequest payload.
type UpdateReportStatusRequest struct {
	Status string  `json:"status"`
	Memo   *string `json:"memo"`
}

// AddReportPhotoRequest payload; the binary lands in object storage
// separately, only metadata travels here.
type AddReportPhotoRequest struct {
	StorageKey string `json:"storage_key"`
	FileName   string `json:"file_name"`
	MimeType   string `json:"mime_type"`
}

// ReportResponse is the outward report representation.
type ReportResponse struct {
	ID                  string     `json:"id"`
	CompanyCode         string     `json:"company_code"`
	OfficeCode          string     `json:"office_code"`
	ItemID              *string    `json:"item_id,omitempty"`
	Type                string     `json:"type,omitempty"`
	Title               string     `json:"title"`
	Category            string     `json:"category,omitempty"`
	Description         string     `json:"description,omitempty"`
	Location            string     `json:"location,omitempty"`
	Status              string     `json:"status"`
	AssignedPartnerID   *string    `json:"assigned_partner_id,omitempty"`
	AssignedPartnerName string     `json:"assigned_partner_name,omitempty"`
	ReporterID          string     `json:"reporter_id"`
	ReporterName        string     `json:"reporter_name"`
	ContractorMemo      string     `json:"contractor_memo,omitempty"`
	PhotoCount          int        `json:"photo_count"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// NewReportResponse maps a domain report.
func NewReportResponse(report *domain.Report) ReportResponse {
	return ReportResponse{
		ID:                  report.ID,
		CompanyCode:         report.CompanyCode,
		OfficeCode:          report.OfficeCode,
		ItemID:              report.ItemID,
		Type:                report.Type,
		Title:               report.Title,
		Category:            string(report.Category),
		Description:         report.Description,
		Location:            report.Location,
		Status:              string(report.Status),
		AssignedPartnerID:   report.AssignedPartnerID,
		AssignedPartnerName: report.AssignedPartnerName,
		ReporterID:          report.ReporterID,
		ReporterName:        report.ReporterName,
		ContractorMemo:      report.ContractorMemo,
		PhotoCount:          report.PhotoCount,
		CompletedAt:         report.CompletedAt,
		CreatedAt:           report.CreatedAt,
		UpdatedAt:           report.UpdatedAt,
	}
}

// ReportPhotoResponse is photo metadata.
type ReportPhotoResponse struct {
	ID         string    `json:"id"`
	ReportID   string    `json:"report_id"`
	StorageKey string    `json:"storage_key"`
	FileName   string    `json:"file_name"`
	MimeType   string    `json:"mime_type"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewReportPhotoResponse maps photo metadata.
func NewReportPhotoResponse(photo *domain.ReportPhoto) ReportPhotoResponse {
	return ReportPhotoResponse{
		ID:         photo.ID,
		ReportID:   photo.ReportID,
		StorageKey: photo.StorageKey,
		FileName:   photo.FileName,
		MimeType:   photo.MimeType,
		CreatedAt:  photo.CreatedAt,
	}
}
