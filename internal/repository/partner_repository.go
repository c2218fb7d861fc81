package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onetouch-fm/facility-service/internal/domain"
)

// PartnerFilter captures partner listing parameters.
type PartnerFilter struct {
	Status *domain.RecordStatus
	Search *string
	Limit  int
	Offset int
}

// PartnerRepository encapsulates partner and partner-contact persistence.
type PartnerRepository interface {
	Create(ctx context.Context, partner *domain.Partner) error
	Update(ctx context.Context, partner *domain.Partner) error
	GetByID(ctx context.Context, id string) (*domain.Partner, error)
	List(ctx context.Context, filter PartnerFilter) ([]domain.Partner, error)
	MarkDeleted(ctx context.Context, id string) error
	CreateContact(ctx context.Context, contact *domain.PartnerContact) error
	ListContacts(ctx context.Context, partnerID string) ([]domain.PartnerContact, error)
	GetContactByLoginID(ctx context.Context, loginID string) (*domain.PartnerContact, error)
}

type partnerRepository struct {
	pool *pgxpool.Pool
}

// NewPartnerRepository instantiates repository.
func NewPartnerRepository(pool *pgxpool.Pool) PartnerRepository {
	return &partnerRepository{pool: pool}
}

const partnerSelect = `
        SELECT p.id, p.partner_code, p.name, p.phone, p.email, p.address, p.contact_name, p.categories,
               p.status,
               COALESCE((SELECT array_agg(DISTINCT c.company_code) FROM contracts c
                         WHERE c.partner_id = p.id AND c.status = 'active'), '{}'),
               p.created_at, p.updated_at
        FROM partners p`

func (r *partnerRepository) Create(ctx context.Context, partner *domain.Partner) error {
	const query = `
        INSERT INTO partners (id, partner_code, name, phone, email, address, contact_name, categories, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		partner.ID,
		partner.PartnerCode,
		partner.Name,
		partner.Phone,
		partner.Email,
		partner.Address,
		partner.ContactName,
		partner.Categories,
		partner.Status,
	).Scan(&partner.CreatedAt, &partner.UpdatedAt)
}

func (r *partnerRepository) Update(ctx context.Context, partner *domain.Partner) error {
	const query = `
        UPDATE partners SET name=$1, phone=$2, email=$3, address=$4, contact_name=$5,
            categories=$6, status=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		partner.Name,
		partner.Phone,
		partner.Email,
		partner.Address,
		partner.ContactName,
		partner.Categories,
		partner.Status,
		partner.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *partnerRepository) MarkDeleted(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE partners SET status='inactive', updated_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *partnerRepository) GetByID(ctx context.Context, id string) (*domain.Partner, error) {
	row := r.pool.QueryRow(ctx, partnerSelect+` WHERE p.id=$1`, id)
	return scanPartner(row)
}

func (r *partnerRepository) List(ctx context.Context, filter PartnerFilter) ([]domain.Partner, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("p.status=$%d", len(args)))
	} else {
		clauses = append(clauses, "p.status='active'")
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(p.name ILIKE %s OR p.partner_code ILIKE %s OR p.contact_name ILIKE %s)",
			placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY p.created_at DESC LIMIT %d OFFSET %d`,
		partnerSelect, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Partner
	for rows.Next() {
		partner, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *partner)
	}
	return result, rows.Err()
}

func (r *partnerRepository) CreateContact(ctx context.Context, contact *domain.PartnerContact) error {
	const query = `
        INSERT INTO partner_contacts (partner_id, name, login_id, password_hash, phone, is_main, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		contact.PartnerID,
		contact.Name,
		contact.LoginID,
		contact.PasswordHash,
		contact.Phone,
		contact.IsMain,
		contact.Status,
	).Scan(&contact.ID, &contact.CreatedAt)
}

func (r *partnerRepository) ListContacts(ctx context.Context, partnerID string) ([]domain.PartnerContact, error) {
	const query = `
        SELECT id, partner_id, name, login_id, password_hash, phone, is_main, status, created_at
        FROM partner_contacts WHERE partner_id=$1 AND status='active' ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, partnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PartnerContact
	for rows.Next() {
		var contact domain.PartnerContact
		if err := rows.Scan(
			&contact.ID,
			&contact.PartnerID,
			&contact.Name,
			&contact.LoginID,
			&contact.PasswordHash,
			&contact.Phone,
			&contact.IsMain,
			&contact.Status,
			&contact.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, contact)
	}
	return result, rows.Err()
}

func (r *partnerRepository) GetContactByLoginID(ctx context.Context, loginID string) (*domain.PartnerContact, error) {
	const query = `
        SELECT id, partner_id, name, login_id, password_hash, phone, is_main, status, created_at
        FROM partner_contacts WHERE login_id=$1 AND status='active'`
	var contact domain.PartnerContact
	if err := r.pool.QueryRow(ctx, query, loginID).Scan(
		&contact.ID,
		&contact.PartnerID,
		&contact.Name,
		&contact.LoginID,
		&contact.PasswordHash,
		&contact.Phone,
		&contact.IsMain,
		&contact.Status,
		&contact.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &contact, nil
}

func scanPartner(row rowScanner) (*domain.Partner, error) {
	var partner domain.Partner
	if err := row.Scan(
		&partner.ID,
		&partner.PartnerCode,
		&partner.Name,
		&partner.Phone,
		&partner.Email,
		&partner.Address,
		&partner.ContactName,
		&partner.Categories,
		&partner.Status,
		&partner.AssignedCompanies,
		&partner.CreatedAt,
		&partner.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &partner, nil
}
