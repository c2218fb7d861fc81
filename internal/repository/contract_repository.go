package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onetouch-fm/facility-service/internal/domain"
)

// ContractFilter captures contract listing parameters.
type ContractFilter struct {
	CompanyCode *string
	PartnerID   *string
	Status      *domain.RecordStatus
	Limit       int
	Offset      int
}

// ContractRepository encapsulates contract persistence.
type ContractRepository interface {
	Create(ctx context.Context, contract *domain.Contract) error
	Update(ctx context.Context, contract *domain.Contract) error
	GetByID(ctx context.Context, id string) (*domain.Contract, error)
	List(ctx context.Context, filter ContractFilter) ([]domain.Contract, error)
	// ListActiveByCompany returns the matcher's candidate set in creation
	// order so resolution stays deterministic.
	ListActiveByCompany(ctx context.Context, companyCode string) ([]domain.Contract, error)
	Deactivate(ctx context.Context, id string) error
}

type contractRepository struct {
	pool *pgxpool.Pool
}

// NewContractRepository instantiates repository.
func NewContractRepository(pool *pgxpool.Pool) ContractRepository {
	return &contractRepository{pool: pool}
}

const contractSelect = `
        SELECT c.id, c.partner_id, COALESCE(p.name, ''), c.company_code, c.office_code, c.categories,
               c.status, c.start_date, c.end_date, c.notes, c.created_at, c.updated_at
        FROM contracts c
        LEFT JOIN partners p ON p.id = c.partner_id`

func (r *contractRepository) Create(ctx context.Context, contract *domain.Contract) error {
	const query = `
        INSERT INTO contracts (id, partner_id, company_code, office_code, categories, status, start_date, end_date, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		contract.ID,
		contract.PartnerID,
		contract.CompanyCode,
		contract.OfficeCode,
		contract.Categories,
		contract.Status,
		contract.StartDate,
		contract.EndDate,
		contract.Notes,
	).Scan(&contract.CreatedAt, &contract.UpdatedAt)
}

func (r *contractRepository) Update(ctx context.Context, contract *domain.Contract) error {
	const query = `
        UPDATE contracts SET office_code=$1, categories=$2, status=$3, start_date=$4, end_date=$5,
            notes=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		contract.OfficeCode,
		contract.Categories,
		contract.Status,
		contract.StartDate,
		contract.EndDate,
		contract.Notes,
		contract.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contractRepository) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	row := r.pool.QueryRow(ctx, contractSelect+` WHERE c.id=$1`, id)
	return scanContract(row)
}

func (r *contractRepository) List(ctx context.Context, filter ContractFilter) ([]domain.Contract, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CompanyCode != nil {
		args = append(args, *filter.CompanyCode)
		clauses = append(clauses, fmt.Sprintf("c.company_code=$%d", len(args)))
	}
	if filter.PartnerID != nil {
		args = append(args, *filter.PartnerID)
		clauses = append(clauses, fmt.Sprintf("c.partner_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("c.status=$%d", len(args)))
	} else {
		clauses = append(clauses, "c.status='active'")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY c.created_at DESC LIMIT %d OFFSET %d`,
		contractSelect, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanContracts(rows)
}

func (r *contractRepository) ListActiveByCompany(ctx context.Context, companyCode string) ([]domain.Contract, error) {
	query := contractSelect + ` WHERE c.company_code=$1 AND c.status='active' ORDER BY c.created_at ASC`
	rows, err := r.pool.Query(ctx, query, companyCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanContracts(rows)
}

func (r *contractRepository) Deactivate(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE contracts SET status='inactive', updated_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanContract(row rowScanner) (*domain.Contract, error) {
	var contract domain.Contract
	if err := row.Scan(
		&contract.ID,
		&contract.PartnerID,
		&contract.PartnerName,
		&contract.CompanyCode,
		&contract.OfficeCode,
		&contract.Categories,
		&contract.Status,
		&contract.StartDate,
		&contract.EndDate,
		&contract.Notes,
		&contract.CreatedAt,
		&contract.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &contract, nil
}

func scanContracts(rows pgx.Rows) ([]domain.Contract, error) {
	var result []domain.Contract
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *contract)
	}
	return result, rows.Err()
}
