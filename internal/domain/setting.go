package domain

import "time"

// Public setting keys readable by any authenticated principal. Everything
// else requires company_admin or above.
const (
	SettingMaintenanceMode    = "maintenanceMode"
	SettingMaintenanceMessage = "maintenanceMessage"
)

// Setting is one system-wide configuration entry. Values are free-form JSON.
type Setting struct {
	Key       string
	Value     any
	UpdatedBy string
	UpdatedAt time.Time
}

// PublicSettingKey reports whether a key may be read without an
// administrative role.
func PublicSettingKey(key string) bool {
	return key == SettingMaintenanceMode || key == SettingMaintenanceMessage
}

// SystemSettingKey reports whether a key may only be written by a
// system_admin.
func SystemSettingKey(key string) bool {
	return key == SettingMaintenanceMode || key == SettingMaintenanceMessage
}
