package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onetouch-fm/facility-service/internal/domain"
)

// CompanyFilter captures company listing parameters.
type CompanyFilter struct {
	Code   *string
	Search *string
	Limit  int
	Offset int
}

// CompanyRepository encapsulates company persistence.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	Update(ctx context.Context, company *domain.Company) error
	GetByCode(ctx context.Context, code string) (*domain.Company, error)
	List(ctx context.Context, filter CompanyFilter) ([]domain.Company, error)
}

type companyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository instantiates repository.
func NewCompanyRepository(pool *pgxpool.Pool) CompanyRepository {
	return &companyRepository{pool: pool}
}

const companyColumns = `code, name, postal_code, prefecture, address, phone, email, status, created_at, updated_at`

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	const query = `
        INSERT INTO companies (code, name, postal_code, prefecture, address, phone, email, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		company.Code,
		company.Name,
		company.PostalCode,
		company.Prefecture,
		company.Address,
		company.Phone,
		company.Email,
		company.Status,
	).Scan(&company.CreatedAt, &company.UpdatedAt)
}

func (r *companyRepository) Update(ctx context.Context, company *domain.Company) error {
	const query = `
        UPDATE companies SET name=$1, postal_code=$2, prefecture=$3, address=$4,
            phone=$5, email=$6, status=$7, updated_at=NOW()
        WHERE code=$8`
	cmd, err := r.pool.Exec(ctx, query,
		company.Name,
		company.PostalCode,
		company.Prefecture,
		company.Address,
		company.Phone,
		company.Email,
		company.Status,
		company.Code,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *companyRepository) GetByCode(ctx context.Context, code string) (*domain.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE code=$1`, companyColumns)
	var company domain.Company
	if err := r.pool.QueryRow(ctx, query, code).Scan(
		&company.Code,
		&company.Name,
		&company.PostalCode,
		&company.Prefecture,
		&company.Address,
		&company.Phone,
		&company.Email,
		&company.Status,
		&company.CreatedAt,
		&company.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) List(ctx context.Context, filter CompanyFilter) ([]domain.Company, error) {
	clauses := []string{"status='active'"}
	args := []any{}

	if filter.Code != nil {
		args = append(args, *filter.Code)
		clauses = append(clauses, fmt.Sprintf("code=$%d", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(name ILIKE %s OR code ILIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM companies WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		companyColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Company
	for rows.Next() {
		var company domain.Company
		if err := rows.Scan(
			&company.Code,
			&company.Name,
			&company.PostalCode,
			&company.Prefecture,
			&company.Address,
			&company.Phone,
			&company.Email,
			&company.Status,
			&company.CreatedAt,
			&company.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, company)
	}
	return result, rows.Err()
}
