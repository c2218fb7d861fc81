package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onetouch-fm/facility-service/internal/domain"
)

// AuditFilter captures audit listing parameters.
type AuditFilter struct {
	CompanyCode *string
	Action      *string
	Limit       int
	Offset      int
}

// AuditRepository persists and lists audit events. The engine only emits
// events; this is the storage collaborator behind the audit worker.
type AuditRepository interface {
	Create(ctx context.Context, event *domain.AuditEvent) error
	List(ctx context.Context, filter AuditFilter) ([]domain.AuditEvent, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository instantiates repository.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Create(ctx context.Context, event *domain.AuditEvent) error {
	const query = `
        INSERT INTO audit_logs (company_code, office_code, actor_id, actor_name, action, target_type, target_id, details)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		event.CompanyCode,
		event.OfficeCode,
		event.ActorID,
		event.ActorName,
		event.Action,
		event.TargetType,
		event.TargetID,
		event.Details,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *auditRepository) List(ctx context.Context, filter AuditFilter) ([]domain.AuditEvent, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CompanyCode != nil {
		args = append(args, *filter.CompanyCode)
		clauses = append(clauses, fmt.Sprintf("company_code=$%d", len(args)))
	}
	if filter.Action != nil {
		args = append(args, *filter.Action)
		clauses = append(clauses, fmt.Sprintf("action=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT id, company_code, office_code, actor_id, actor_name, action, target_type, target_id, details, created_at
        FROM audit_logs WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AuditEvent
	for rows.Next() {
		var event domain.AuditEvent
		if err := rows.Scan(
			&event.ID,
			&event.CompanyCode,
			&event.OfficeCode,
			&event.ActorID,
			&event.ActorName,
			&event.Action,
			&event.TargetType,
			&event.TargetID,
			&event.Details,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
