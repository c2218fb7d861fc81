package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onetouch-fm/facility-service/internal/domain"
)

// ReportFilter captures report listing parameters. PartnerID restricts the
// view to reports assigned to that partner (contractor scope).
type ReportFilter struct {
	CompanyCode *string
	OfficeCode  *string
	PartnerID   *string
	Status      *domain.ReportStatus
	Category    *domain.Category
	Search      *string
	Sort        string
	Limit       int
	Offset      int
}

// ReportRepository encapsulates report persistence.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	List(ctx context.Context, filter ReportFilter) ([]domain.Report, error)
	// TransitionStatus locks the row, runs mutate on the freshest persisted
	// state, and writes the result, all inside one transaction. A mutate
	// error rolls everything back.
	TransitionStatus(ctx context.Context, id string, mutate func(report *domain.Report) error) (*domain.Report, error)
	CreatePhoto(ctx context.Context, photo *domain.ReportPhoto) error
	ListPhotos(ctx context.Context, reportID string) ([]domain.ReportPhoto, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

const reportColumns = `id, company_code, office_code, item_id, type, title, category, description, location,
       status, assigned_partner_id, assigned_partner_name, reporter_id, reporter_name, contractor_memo,
       (SELECT COUNT(*) FROM report_photos rp WHERE rp.report_id = reports.id),
       completed_at, created_at, updated_at`

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	const query = `
        INSERT INTO reports (id, company_code, office_code, item_id, type, title, category, description,
                             location, status, assigned_partner_id, assigned_partner_name, reporter_id, reporter_name)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		report.ID,
		report.CompanyCode,
		report.OfficeCode,
		report.ItemID,
		report.Type,
		report.Title,
		report.Category,
		report.Description,
		report.Location,
		report.Status,
		report.AssignedPartnerID,
		report.AssignedPartnerName,
		report.ReporterID,
		report.ReporterName,
	).Scan(&report.CreatedAt, &report.UpdatedAt)
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	query := fmt.Sprintf(`SELECT %s FROM reports WHERE id=$1`, reportColumns)
	row := r.pool.QueryRow(ctx, query, id)
	return scanReport(row)
}

func (r *reportRepository) List(ctx context.Context, filter ReportFilter) ([]domain.Report, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.PartnerID != nil {
		args = append(args, *filter.PartnerID)
		clauses = append(clauses, fmt.Sprintf("assigned_partner_id=$%d", len(args)))
	} else {
		if filter.CompanyCode != nil {
			args = append(args, *filter.CompanyCode)
			clauses = append(clauses, fmt.Sprintf("company_code=$%d", len(args)))
		}
		if filter.OfficeCode != nil {
			args = append(args, *filter.OfficeCode)
			clauses = append(clauses, fmt.Sprintf("office_code=$%d", len(args)))
		}
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s)", placeholder, placeholder))
	}

	sortColumn := "created_at DESC"
	if filter.Sort == "oldest" {
		sortColumn = "created_at ASC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM reports WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		reportColumns, strings.Join(clauses, " AND "), sortColumn, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *report)
	}
	return result, rows.Err()
}

func (r *reportRepository) TransitionStatus(ctx context.Context, id string, mutate func(report *domain.Report) error) (*domain.Report, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	query := fmt.Sprintf(`SELECT %s FROM reports WHERE id=$1 FOR UPDATE OF reports`, reportColumns)
	report, err := scanReport(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	if err := mutate(report); err != nil {
		return nil, err
	}

	const update = `
        UPDATE reports SET status=$1, contractor_memo=$2, completed_at=$3, updated_at=NOW()
        WHERE id=$4`
	if _, err := tx.Exec(ctx, update,
		report.Status,
		report.ContractorMemo,
		report.CompletedAt,
		report.ID,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return report, nil
}

func (r *reportRepository) CreatePhoto(ctx context.Context, photo *domain.ReportPhoto) error {
	const query = `
        INSERT INTO report_photos (report_id, storage_key, file_name, mime_type)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		photo.ReportID,
		photo.StorageKey,
		photo.FileName,
		photo.MimeType,
	).Scan(&photo.ID, &photo.CreatedAt)
}

func (r *reportRepository) ListPhotos(ctx context.Context, reportID string) ([]domain.ReportPhoto, error) {
	const query = `
        SELECT id, report_id, storage_key, file_name, mime_type, created_at
        FROM report_photos WHERE report_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ReportPhoto
	for rows.Next() {
		var photo domain.ReportPhoto
		if err := rows.Scan(
			&photo.ID,
			&photo.ReportID,
			&photo.StorageKey,
			&photo.FileName,
			&photo.MimeType,
			&photo.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, photo)
	}
	return result, rows.Err()
}

func scanReport(row pgx.Row) (*domain.Report, error) {
	var report domain.Report
	if err := row.Scan(
		&report.ID,
		&report.CompanyCode,
		&report.OfficeCode,
		&report.ItemID,
		&report.Type,
		&report.Title,
		&report.Category,
		&report.Description,
		&report.Location,
		&report.Status,
		&report.AssignedPartnerID,
		&report.AssignedPartnerName,
		&report.ReporterID,
		&report.ReporterName,
		&report.ContractorMemo,
		&report.PhotoCount,
		&report.CompletedAt,
		&report.CreatedAt,
		&report.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &report, nil
}
