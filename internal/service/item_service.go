package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/onetouch-fm/facility-service/internal/domain"
	"github.com/onetouch-fm/facility-service/internal/events"
	"github.com/onetouch-fm/facility-service/internal/rbac"
	"github.com/onetouch-fm/facility-service/internal/repository"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// ItemService coordinates inventory workflows.
type ItemService struct {
	items        repository.ItemRepository
	dispatcher   events.Dispatcher
	maxBatchRows int
}

// ItemDependencies bundles repositories for item service.
type ItemDependencies struct {
	ItemRepo   repository.ItemRepository
	Dispatcher events.Dispatcher
}

// NewItemService constructs the service.
func NewItemService(maxBatchRows int, deps ItemDependencies) *ItemService {
	if maxBatchRows <= 0 {
		maxBatchRows = 5000
	}
	return &ItemService{
		items:        deps.ItemRepo,
		dispatcher:   deps.Dispatcher,
		maxBatchRows: maxBatchRows,
	}
}

// ItemCreateInput describes item creation payload.
type ItemCreateInput struct {
	Name                string
	Category            domain.Category
	Maker               string
	Model               string
	Unit                string
	Price               int64
	Stock               int
	Description         string
	Floor               string
	Location            string
	OfficeCode          string
	AssignedPartnerID   *string
	AssignedPartnerName string
}

// ItemUpdateInput describes mutable item fields. Pointer fields keep the
// current value when nil; the partner pin is replaced whenever set.
type ItemUpdateInput struct {
	Name                *string
	Category            *domain.Category
	Maker               *string
	Model               *string
	Unit                *string
	Price               *int64
	Stock               *int
	Description         *string
	Floor               *string
	Location            *string
	AssignedPartnerID   *string
	AssignedPartnerName *string
	ClearPartner        bool
}

// ItemListFilter describes item listing filters.
type ItemListFilter struct {
	Category *domain.Category
	Floor    *string
	Search   *string
	Sort     string
	Limit    int
	Offset   int
}

// List returns items inside the caller's scope. Contractors see only items
// pinned to their partner; everyone else is bounded by company/office.
func (s *ItemService) List(ctx context.Context, p domain.Principal, filter ItemListFilter) ([]domain.Item, error) {
	decision := rbac.Authorize(p, nil, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}
	repoFilter := repository.ItemFilter{
		CompanyCode: decision.Scope.CompanyFilter,
		OfficeCode:  decision.Scope.OfficeFilter,
		PartnerID:   decision.Scope.PartnerFilter,
		Category:    filter.Category,
		Floor:       filter.Floor,
		Search:      filter.Search,
		Sort:        filter.Sort,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}
	return s.items.List(ctx, repoFilter)
}

// Stats aggregates per-category counts and known floors for the caller's
// scope. Contractors aggregate only over items pinned to their partner.
func (s *ItemService) Stats(ctx context.Context, p domain.Principal) ([]repository.CategoryCount, []string, error) {
	decision := rbac.Authorize(p, nil, nil)
	if err := decision.Err(); err != nil {
		return nil, nil, err
	}
	return s.items.Stats(ctx,
		decision.Scope.CompanyFilter, decision.Scope.OfficeFilter, decision.Scope.PartnerFilter)
}

// Get fetches one item inside the caller's scope.
func (s *ItemService) Get(ctx context.Context, p domain.Principal, itemID string) (*domain.Item, error) {
	item, err := s.fetch(ctx, itemID)
	if err != nil {
		return nil, err
	}
	decision := rbac.Authorize(p, nil, itemResource(item))
	if err := decision.Err(); err != nil {
		return nil, err
	}
	return item, nil
}

// Create registers an item at an office within the caller's company.
func (s *ItemService) Create(ctx context.Context, p domain.Principal, input ItemCreateInput) (*domain.Item, error) {
	decision := rbac.Authorize(p, adminRoles, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}
	if input.Category != "" && !input.Category.Valid() {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": string(input.Category)})
	}

	officeCode := input.OfficeCode
	if officeCode == "" {
		officeCode = p.OfficeCode
	}
	item := &domain.Item{
		ItemID:              generateID("ITEM"),
		CompanyCode:         p.CompanyCode,
		OfficeCode:          officeCode,
		Name:                input.Name,
		Category:            input.Category,
		Maker:               input.Maker,
		Model:               input.Model,
		Unit:                input.Unit,
		Price:               input.Price,
		Stock:               input.Stock,
		Description:         input.Description,
		Floor:               input.Floor,
		Location:            input.Location,
		AssignedPartnerID:   input.AssignedPartnerID,
		AssignedPartnerName: input.AssignedPartnerName,
		Status:              domain.ItemStatusActive,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, p, events.ActionItemCreate, item, map[string]any{
		"name":     item.Name,
		"category": string(item.Category),
	})
	return item, nil
}

// Update modifies an item inside the caller's scope.
func (s *ItemService) Update(ctx context.Context, p domain.Principal, itemID string, input ItemUpdateInput) (*domain.Item, error) {
	item, err := s.fetch(ctx, itemID)
	if err != nil {
		return nil, err
	}
	decision := rbac.Authorize(p, adminRoles, itemResource(item))
	if err := decision.Err(); err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Category != nil {
		if !input.Category.Valid() {
			return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": string(*input.Category)})
		}
		item.Category = *input.Category
	}
	if input.Maker != nil {
		item.Maker = *input.Maker
	}
	if input.Model != nil {
		item.Model = *input.Model
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.Stock != nil {
		item.Stock = *input.Stock
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Floor != nil {
		item.Floor = *input.Floor
	}
	if input.Location != nil {
		item.Location = *input.Location
	}
	if input.ClearPartner {
		item.AssignedPartnerID = nil
		item.AssignedPartnerName = ""
	} else if input.AssignedPartnerID != nil {
		item.AssignedPartnerID = input.AssignedPartnerID
		if input.AssignedPartnerName != nil {
			item.AssignedPartnerName = *input.AssignedPartnerName
		}
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, p, events.ActionItemUpdate, item, map[string]any{"name": item.Name})
	return item, nil
}

// Delete logically removes an item; rows stay in storage.
func (s *ItemService) Delete(ctx context.Context, p domain.Principal, itemID string) error {
	item, err := s.fetch(ctx, itemID)
	if err != nil {
		return err
	}
	decision := rbac.AuthorizeDelete(p, adminRoles, *itemResource(item))
	if err := decision.Err(); err != nil {
		return err
	}
	if err := s.items.MarkDeleted(ctx, item.ItemID); err != nil {
		return apperrors.MapError(err)
	}
	s.publish(ctx, p, events.ActionItemDelete, item, map[string]any{"name": item.Name})
	return nil
}

// ImportRow is one pre-parsed row of a bulk import.
type ImportRow struct {
	Name        string
	Category    domain.Category
	Maker       string
	Model       string
	Unit        string
	Price       int64
	Stock       int
	Description string
	Floor       string
	Location    string
}

// Import inserts a batch of items in one transaction. The batch is bounded
// and all-or-nothing: a failed row rolls the entire batch back.
func (s *ItemService) Import(ctx context.Context, p domain.Principal, officeCode string, rows []ImportRow) (int, error) {
	decision := rbac.Authorize(p, adminRoles, nil)
	if err := decision.Err(); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, apperrors.NewValidationError("no rows to import", nil)
	}
	if len(rows) > s.maxBatchRows {
		return 0, apperrors.NewValidationError(
			fmt.Sprintf("import batch exceeds %d rows", s.maxBatchRows),
			map[string]any{"rows": len(rows), "max": s.maxBatchRows})
	}

	if officeCode == "" {
		officeCode = p.OfficeCode
	}
	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		name := row.Name
		if name == "" {
			name = "(unnamed)"
		}
		items = append(items, domain.Item{
			ItemID:      generateID("ITEM"),
			CompanyCode: p.CompanyCode,
			OfficeCode:  officeCode,
			Name:        name,
			Category:    row.Category,
			Maker:       row.Maker,
			Model:       row.Model,
			Unit:        row.Unit,
			Price:       row.Price,
			Stock:       row.Stock,
			Description: row.Description,
			Floor:       row.Floor,
			Location:    row.Location,
			Status:      domain.ItemStatusActive,
		})
	}

	if err := s.items.ImportBatch(ctx, items); err != nil {
		return 0, apperrors.MapError(err)
	}
	if s.dispatcher != nil {
		office := officeCode
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:          uuid.NewString(),
			Action:      events.ActionItemImport,
			CompanyCode: p.CompanyCode,
			OfficeCode:  &office,
			Actor:       events.ActorFromPrincipal(p),
			TargetType:  "item",
			Details:     map[string]any{"count": len(items)},
			Timestamp:   time.Now(),
		})
	}
	return len(items), nil
}

func (s *ItemService) fetch(ctx context.Context, itemID string) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("item", map[string]any{"item_id": itemID})
		}
		return nil, apperrors.MapError(err)
	}
	return item, nil
}

func itemResource(item *domain.Item) *rbac.Resource {
	return &rbac.Resource{
		Type:              "item",
		ID:                item.ItemID,
		CompanyCode:       item.CompanyCode,
		OfficeCode:        item.OfficeCode,
		AssignedPartnerID: item.AssignedPartnerID,
	}
}

func (s *ItemService) publish(ctx context.Context, p domain.Principal, action events.Action, item *domain.Item, details map[string]any) {
	if s.dispatcher == nil {
		return
	}
	targetID := item.ItemID
	officeCode := item.OfficeCode
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:          uuid.NewString(),
		Action:      action,
		CompanyCode: item.CompanyCode,
		OfficeCode:  &officeCode,
		Actor:       events.ActorFromPrincipal(p),
		TargetType:  "item",
		TargetID:    &targetID,
		Details:     details,
		Timestamp:   time.Now(),
	})
}
