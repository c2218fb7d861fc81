package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onetouch-fm/facility-service/internal/domain"
)

// AccountFilter captures account listing parameters. CompanyCode and
// OfficeCode come from the caller's resolved scope; Roles from the
// role-visibility rule.
type AccountFilter struct {
	CompanyCode *string
	OfficeCode  *string
	Roles       []domain.Role
	Role        *domain.Role
	Status      *domain.RecordStatus
	Search      *string
	Limit       int
	Offset      int
}

// AccountRepository encapsulates account persistence.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context, filter AccountFilter) ([]domain.Account, error)
	Deactivate(ctx context.Context, id string) error
	TouchLogin(ctx context.Context, id string) error
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository instantiates repository.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

const accountColumns = `id, name, role, company_code, company_name, office_code, office_name,
       password_hash, status, is_first_login, last_login_at, created_at, updated_at`

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (id, name, role, company_code, company_name, office_code, office_name, password_hash, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		account.ID,
		account.Name,
		account.Role,
		account.CompanyCode,
		account.CompanyName,
		account.OfficeCode,
		account.OfficeName,
		account.PasswordHash,
		account.Status,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	const query = `
        UPDATE accounts SET name=$1, role=$2, office_code=$3, office_name=$4,
            password_hash=$5, status=$6, is_first_login=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		account.Name,
		account.Role,
		account.OfficeCode,
		account.OfficeName,
		account.PasswordHash,
		account.Status,
		account.IsFirstLogin,
		account.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE id=$1`, accountColumns)
	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.Name,
		&account.Role,
		&account.CompanyCode,
		&account.CompanyName,
		&account.OfficeCode,
		&account.OfficeName,
		&account.PasswordHash,
		&account.Status,
		&account.IsFirstLogin,
		&account.LastLoginAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) List(ctx context.Context, filter AccountFilter) ([]domain.Account, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CompanyCode != nil {
		args = append(args, *filter.CompanyCode)
		clauses = append(clauses, fmt.Sprintf("company_code=$%d", len(args)))
	}
	if filter.OfficeCode != nil {
		args = append(args, *filter.OfficeCode)
		clauses = append(clauses, fmt.Sprintf("office_code=$%d", len(args)))
	}
	if len(filter.Roles) > 0 {
		placeholders := make([]string, len(filter.Roles))
		for i, role := range filter.Roles {
			args = append(args, role)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("role IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Role != nil {
		args = append(args, *filter.Role)
		clauses = append(clauses, fmt.Sprintf("role=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	} else {
		clauses = append(clauses, "status='active'")
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(name ILIKE %s OR id ILIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		accountColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.Name,
			&account.Role,
			&account.CompanyCode,
			&account.CompanyName,
			&account.OfficeCode,
			&account.OfficeName,
			&account.PasswordHash,
			&account.Status,
			&account.IsFirstLogin,
			&account.LastLoginAt,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, account)
	}
	return result, rows.Err()
}

func (r *accountRepository) Deactivate(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE accounts SET status='inactive', updated_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) TouchLogin(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE accounts SET last_login_at=NOW() WHERE id=$1`, id)
	return err
}
