package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onetouch-fm/facility-service/internal/domain"
)

// ItemFilter captures item listing parameters. PartnerID restricts contractor
// views to items pinned to their partner.
type ItemFilter struct {
	CompanyCode *string
	OfficeCode  *string
	PartnerID   *string
	Category    *domain.Category
	Floor       *string
	Search      *string
	Sort        string
	Limit       int
	Offset      int
}

// CategoryCount is one row of the per-category aggregate.
type CategoryCount struct {
	Category domain.Category
	Count    int
}

// ItemRepository encapsulates inventory persistence.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	Update(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, itemID string) (*domain.Item, error)
	List(ctx context.Context, filter ItemFilter) ([]domain.Item, error)
	Stats(ctx context.Context, companyCode, officeCode, partnerID *string) ([]CategoryCount, []string, error)
	MarkDeleted(ctx context.Context, itemID string) error
	ImportBatch(ctx context.Context, items []domain.Item) error
}

type itemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository instantiates repository.
func NewItemRepository(pool *pgxpool.Pool) ItemRepository {
	return &itemRepository{pool: pool}
}

const itemColumns = `item_id, company_code, office_code, name, category, maker, model, unit, price, stock,
       description, floor, location, assigned_partner_id, assigned_partner_name, status, created_at, updated_at`

const itemInsert = `
        INSERT INTO items (item_id, company_code, office_code, name, category, maker, model, unit, price, stock,
                           description, floor, location, assigned_partner_id, assigned_partner_name)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING created_at, updated_at`

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	return r.pool.QueryRow(ctx, itemInsert,
		item.ItemID,
		item.CompanyCode,
		item.OfficeCode,
		item.Name,
		item.Category,
		item.Maker,
		item.Model,
		item.Unit,
		item.Price,
		item.Stock,
		item.Description,
		item.Floor,
		item.Location,
		item.AssignedPartnerID,
		item.AssignedPartnerName,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	const query = `
        UPDATE items SET name=$1, category=$2, maker=$3, model=$4, unit=$5, price=$6, stock=$7,
            description=$8, floor=$9, location=$10, assigned_partner_id=$11, assigned_partner_name=$12,
            updated_at=NOW()
        WHERE item_id=$13`
	cmd, err := r.pool.Exec(ctx, query,
		item.Name,
		item.Category,
		item.Maker,
		item.Model,
		item.Unit,
		item.Price,
		item.Stock,
		item.Description,
		item.Floor,
		item.Location,
		item.AssignedPartnerID,
		item.AssignedPartnerName,
		item.ItemID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, itemID string) (*domain.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items WHERE item_id=$1`, itemColumns)
	row := r.pool.QueryRow(ctx, query, itemID)
	return scanItem(row)
}

func (r *itemRepository) List(ctx context.Context, filter ItemFilter) ([]domain.Item, error) {
	clauses := []string{"status='active'"}
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
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.Floor != nil {
		args = append(args, *filter.Floor)
		clauses = append(clauses, fmt.Sprintf("floor=$%d", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(name ILIKE %s OR maker ILIKE %s OR model ILIKE %s OR location ILIKE %s)",
			placeholder, placeholder, placeholder, placeholder))
	}

	sortColumn := "updated_at DESC"
	switch filter.Sort {
	case "name":
		sortColumn = "name ASC"
	case "category":
		sortColumn = "category ASC, name ASC"
	case "oldest":
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

	query := fmt.Sprintf(`SELECT %s FROM items WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		itemColumns, strings.Join(clauses, " AND "), sortColumn, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	return result, rows.Err()
}

func (r *itemRepository) Stats(ctx context.Context, companyCode, officeCode, partnerID *string) ([]CategoryCount, []string, error) {
	clauses := []string{"status='active'"}
	args := []any{}
	if companyCode != nil {
		args = append(args, *companyCode)
		clauses = append(clauses, fmt.Sprintf("company_code=$%d", len(args)))
	}
	if officeCode != nil {
		args = append(args, *officeCode)
		clauses = append(clauses, fmt.Sprintf("office_code=$%d", len(args)))
	}
	if partnerID != nil {
		args = append(args, *partnerID)
		clauses = append(clauses, fmt.Sprintf("assigned_partner_id=$%d", len(args)))
	}
	where := strings.Join(clauses, " AND ")

	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT category, COUNT(*) FROM items WHERE %s GROUP BY category ORDER BY COUNT(*) DESC`, where), args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var counts []CategoryCount
	for rows.Next() {
		var entry CategoryCount
		if err := rows.Scan(&entry.Category, &entry.Count); err != nil {
			return nil, nil, err
		}
		counts = append(counts, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	floorRows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT DISTINCT floor FROM items WHERE %s AND floor <> '' ORDER BY floor`, where), args...)
	if err != nil {
		return nil, nil, err
	}
	defer floorRows.Close()

	var floors []string
	for floorRows.Next() {
		var floor string
		if err := floorRows.Scan(&floor); err != nil {
			return nil, nil, err
		}
		floors = append(floors, floor)
	}
	return counts, floors, floorRows.Err()
}

func (r *itemRepository) MarkDeleted(ctx context.Context, itemID string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE items SET status='deleted', updated_at=NOW() WHERE item_id=$1`, itemID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ImportBatch inserts all rows inside one transaction; any failure rolls the
// whole batch back.
func (r *itemRepository) ImportBatch(ctx context.Context, items []domain.Item) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for i := range items {
		item := &items[i]
		if err := tx.QueryRow(ctx, itemInsert,
			item.ItemID,
			item.CompanyCode,
			item.OfficeCode,
			item.Name,
			item.Category,
			item.Maker,
			item.Model,
			item.Unit,
			item.Price,
			item.Stock,
			item.Description,
			item.Floor,
			item.Location,
			item.AssignedPartnerID,
			item.AssignedPartnerName,
		).Scan(&item.CreatedAt, &item.UpdatedAt); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var item domain.Item
	if err := row.Scan(
		&item.ItemID,
		&item.CompanyCode,
		&item.OfficeCode,
		&item.Name,
		&item.Category,
		&item.Maker,
		&item.Model,
		&item.Unit,
		&item.Price,
		&item.Stock,
		&item.Description,
		&item.Floor,
		&item.Location,
		&item.AssignedPartnerID,
		&item.AssignedPartnerName,
		&item.Status,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
