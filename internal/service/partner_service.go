package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/onetouch-fm/facility-service/internal/auth"
	"github.com/onetouch-fm/facility-service/internal/domain"
	"github.com/onetouch-fm/facility-service/internal/events"
	"github.com/onetouch-fm/facility-service/internal/rbac"
	"github.com/onetouch-fm/facility-service/internal/repository"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// PartnerService manages partner organizations and their contractor logins.
// Partners live outside the company/office hierarchy, so listing is gated by
// role only.
type PartnerService struct {
	partners   repository.PartnerRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewPartnerService constructs the service.
func NewPartnerService(partners repository.PartnerRepository, dispatcher events.Dispatcher, bcryptCost int) *PartnerService {
	return &PartnerService{partners: partners, dispatcher: dispatcher, bcryptCost: bcryptCost}
}

// PartnerInput describes partner payload fields.
type PartnerInput struct {
	PartnerCode string
	Name        string
	Phone       string
	Email       string
	Address     string
	ContactName string
	Categories  []domain.Category
}

// PartnerContactInput describes a contractor login to attach to a partner.
type PartnerContactInput struct {
	Name     string
	LoginID  string
	Password string
	Phone    string
	IsMain   bool
}

// List returns partners visible to administrative callers.
func (s *PartnerService) List(ctx context.Context, p domain.Principal, search *string, limit, offset int) ([]domain.Partner, error) {
	decision := rbac.Authorize(p, adminRoles, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}
	return s.partners.List(ctx, repository.PartnerFilter{
		Search: search,
		Limit:  limit,
		Offset: offset,
	})
}

// Get fetches one partner.
func (s *PartnerService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Partner, error) {
	decision := rbac.Authorize(p, adminRoles, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}
	return s.fetch(ctx, id)
}

// Create registers a partner organization.
func (s *PartnerService) Create(ctx context.Context, p domain.Principal, input PartnerInput) (*domain.Partner, error) {
	decision := rbac.Authorize(p, contractManagerRoles, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	for _, category := range input.Categories {
		if !category.Valid() {
			return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": string(category)})
		}
	}

	partner := &domain.Partner{
		ID:          generateID("PTR"),
		PartnerCode: input.PartnerCode,
		Name:        input.Name,
		Phone:       input.Phone,
		Email:       input.Email,
		Address:     input.Address,
		ContactName: input.ContactName,
		Categories:  input.Categories,
		Status:      domain.RecordStatusActive,
	}
	if err := s.partners.Create(ctx, partner); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, p, events.ActionPartnerCreate, partner)
	return partner, nil
}

// Update modifies a partner organization.
func (s *PartnerService) Update(ctx context.Context, p domain.Principal, id string, input PartnerInput) (*domain.Partner, error) {
	partner, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	decision := rbac.Authorize(p, contractManagerRoles, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}

	if input.PartnerCode != "" {
		partner.PartnerCode = input.PartnerCode
	}
	if input.Name != "" {
		partner.Name = input.Name
	}
	if input.Phone != "" {
		partner.Phone = input.Phone
	}
	if input.Email != "" {
		partner.Email = input.Email
	}
	if input.Address != "" {
		partner.Address = input.Address
	}
	if input.ContactName != "" {
		partner.ContactName = input.ContactName
	}
	if input.Categories != nil {
		for _, category := range input.Categories {
			if !category.Valid() {
				return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": string(category)})
			}
		}
		partner.Categories = input.Categories
	}

	if err := s.partners.Update(ctx, partner); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, p, events.ActionPartnerUpdate, partner)
	return partner, nil
}

// Delete logically removes a partner organization. Contracts pointing at it
// keep their rows; the partner simply stops matching.
func (s *PartnerService) Delete(ctx context.Context, p domain.Principal, id string) error {
	decision := rbac.Authorize(p, systemRoles, nil)
	if err := decision.Err(); err != nil {
		return err
	}
	partner, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if err := s.partners.MarkDeleted(ctx, partner.ID); err != nil {
		return apperrors.MapError(err)
	}
	s.publish(ctx, p, events.ActionPartnerDelete, partner)
	return nil
}

// AddContact attaches a contractor login to a partner.
func (s *PartnerService) AddContact(ctx context.Context, p domain.Principal, partnerID string, input PartnerContactInput) (*domain.PartnerContact, error) {
	decision := rbac.Authorize(p, contractManagerRoles, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}
	if input.LoginID == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("login_id and password are required", nil)
	}
	partner, err := s.fetch(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if existing, err := s.partners.GetContactByLoginID(ctx, input.LoginID); err == nil && existing != nil {
		return nil, apperrors.NewConflict("login_id already exists", map[string]any{"login_id": input.LoginID})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	contact := &domain.PartnerContact{
		PartnerID:    partner.ID,
		Name:         input.Name,
		LoginID:      input.LoginID,
		PasswordHash: hash,
		Phone:        input.Phone,
		IsMain:       input.IsMain,
		Status:       domain.RecordStatusActive,
	}
	if err := s.partners.CreateContact(ctx, contact); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, p, events.ActionPartnerUpdate, partner)
	return contact, nil
}

// ListContacts returns a partner's contractor logins.
func (s *PartnerService) ListContacts(ctx context.Context, p domain.Principal, partnerID string) ([]domain.PartnerContact, error) {
	decision := rbac.Authorize(p, adminRoles, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}
	if _, err := s.fetch(ctx, partnerID); err != nil {
		return nil, err
	}
	return s.partners.ListContacts(ctx, partnerID)
}

func (s *PartnerService) fetch(ctx context.Context, id string) (*domain.Partner, error) {
	partner, err := s.partners.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("partner", map[string]any{"partner_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return partner, nil
}

func (s *PartnerService) publish(ctx context.Context, p domain.Principal, action events.Action, partner *domain.Partner) {
	if s.dispatcher == nil {
		return
	}
	targetID := partner.ID
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:          uuid.NewString(),
		Action:      action,
		CompanyCode: p.CompanyCode,
		Actor:       events.ActorFromPrincipal(p),
		TargetType:  "partner",
		TargetID:    &targetID,
		Details:     map[string]any{"name": partner.Name},
		Timestamp:   time.Now(),
	})
}
