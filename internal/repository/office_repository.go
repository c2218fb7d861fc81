package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onetouch-fm/facility-service/internal/domain"
)

// OfficeFilter captures office listing parameters.
type OfficeFilter struct {
	CompanyCode *string
	Status      *domain.RecordStatus
	Search      *string
	Limit       int
	Offset      int
}

// OfficeRepository encapsulates office persistence.
type OfficeRepository interface {
	Create(ctx context.Context, office *domain.Office) error
	Update(ctx context.Context, office *domain.Office) error
	GetByCode(ctx context.Context, code string) (*domain.Office, error)
	List(ctx context.Context, filter OfficeFilter) ([]domain.Office, error)
	Deactivate(ctx context.Context, code string) error
}

type officeRepository struct {
	pool *pgxpool.Pool
}

// NewOfficeRepository instantiates repository.
func NewOfficeRepository(pool *pgxpool.Pool) OfficeRepository {
	return &officeRepository{pool: pool}
}

const officeSelect = `
        SELECT o.code, o.company_code, COALESCE(c.name, ''), o.name, o.address, o.phone, o.status, o.created_at, o.updated_at
        FROM offices o
        LEFT JOIN companies c ON c.code = o.company_code`

func (r *officeRepository) Create(ctx context.Context, office *domain.Office) error {
	const query = `
        INSERT INTO offices (code, company_code, name, address, phone, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		office.Code,
		office.CompanyCode,
		office.Name,
		office.Address,
		office.Phone,
		office.Status,
	).Scan(&office.CreatedAt, &office.UpdatedAt)
}

func (r *officeRepository) Update(ctx context.Context, office *domain.Office) error {
	const query = `
        UPDATE offices SET name=$1, address=$2, phone=$3, status=$4, updated_at=NOW()
        WHERE code=$5`
	cmd, err := r.pool.Exec(ctx, query,
		office.Name,
		office.Address,
		office.Phone,
		office.Status,
		office.Code,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *officeRepository) GetByCode(ctx context.Context, code string) (*domain.Office, error) {
	query := officeSelect + ` WHERE o.code=$1`
	var office domain.Office
	if err := r.pool.QueryRow(ctx, query, code).Scan(
		&office.Code,
		&office.CompanyCode,
		&office.CompanyName,
		&office.Name,
		&office.Address,
		&office.Phone,
		&office.Status,
		&office.CreatedAt,
		&office.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &office, nil
}

func (r *officeRepository) List(ctx context.Context, filter OfficeFilter) ([]domain.Office, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CompanyCode != nil {
		args = append(args, *filter.CompanyCode)
		clauses = append(clauses, fmt.Sprintf("o.company_code=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("o.status=$%d", len(args)))
	} else {
		clauses = append(clauses, "o.status='active'")
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(o.name ILIKE %s OR o.code ILIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY o.created_at DESC LIMIT %d OFFSET %d`,
		officeSelect, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Office
	for rows.Next() {
		var office domain.Office
		if err := rows.Scan(
			&office.Code,
			&office.CompanyCode,
			&office.CompanyName,
			&office.Name,
			&office.Address,
			&office.Phone,
			&office.Status,
			&office.CreatedAt,
			&office.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, office)
	}
	return result, rows.Err()
}

func (r *officeRepository) Deactivate(ctx context.Context, code string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE offices SET status='inactive', updated_at=NOW() WHERE code=$1`, code)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
