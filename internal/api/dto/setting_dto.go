package dto

import "github.com/onetouch-fm/facility-service/internal/domain"

// UpdateSettingRequest carries the new value for a setting key.
type UpdateSettingRequest struct {
	Value any `json:"value"`
}

// SettingResponse is one key/value pair. A key that was never written
// carries a null value.
type SettingResponse struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// NewSettingResponse maps a domain setting.
func NewSettingResponse(setting *domain.Setting) SettingResponse {
	return SettingResponse{Key: setting.Key, Value: setting.Value}
}
