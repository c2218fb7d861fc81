package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/onetouch-fm/facility-service/internal/domain"
	"github.com/onetouch-fm/facility-service/internal/events"
	"github.com/onetouch-fm/facility-service/internal/rbac"
	"github.com/onetouch-fm/facility-service/internal/repository"
	apperrors "github.com/onetouch-fm/facility-service/pkg/util"
)

// SettingService exposes system-wide key/value configuration. Maintenance
// keys are readable by everyone but writable only by a system_admin.
type SettingService struct {
	settings   repository.SettingRepository
	dispatcher events.Dispatcher
}

// NewSettingService constructs the service.
func NewSettingService(settings repository.SettingRepository, dispatcher events.Dispatcher) *SettingService {
	return &SettingService{settings: settings, dispatcher: dispatcher}
}

// List returns every setting for administrative callers.
func (s *SettingService) List(ctx context.Context, p domain.Principal) ([]domain.Setting, error) {
	decision := rbac.Authorize(p, contractManagerRoles, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}
	return s.settings.List(ctx)
}

// Get fetches one setting. A key that was never written resolves to a nil
// value rather than an error.
func (s *SettingService) Get(ctx context.Context, p domain.Principal, key string) (*domain.Setting, error) {
	if !domain.PublicSettingKey(key) {
		decision := rbac.Authorize(p, contractManagerRoles, nil)
		if err := decision.Err(); err != nil {
			return nil, err
		}
	}
	setting, err := s.settings.Get(ctx, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.Setting{Key: key}, nil
		}
		return nil, apperrors.MapError(err)
	}
	return setting, nil
}

// Update writes a setting value.
func (s *SettingService) Update(ctx context.Context, p domain.Principal, key string, value any) (*domain.Setting, error) {
	decision := rbac.Authorize(p, contractManagerRoles, nil)
	if err := decision.Err(); err != nil {
		return nil, err
	}
	if domain.SystemSettingKey(key) && p.Role != domain.RoleSystemAdmin {
		return nil, rbac.Deny(rbac.DenyRoleNotAllowed).Err()
	}
	if key == "" {
		return nil, apperrors.NewValidationError("key is required", nil)
	}

	setting := &domain.Setting{Key: key, Value: value, UpdatedBy: p.ID}
	if err := s.settings.Upsert(ctx, setting); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		targetID := key
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:          uuid.NewString(),
			Action:      events.ActionSettingUpdate,
			CompanyCode: p.CompanyCode,
			Actor:       events.ActorFromPrincipal(p),
			TargetType:  "setting",
			TargetID:    &targetID,
			Details:     map[string]any{"value": value},
			Timestamp:   time.Now(),
		})
	}
	return setting, nil
}
