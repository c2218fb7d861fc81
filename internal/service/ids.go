package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// generateID builds prefixed record keys like RPT-1712134567890-a3f9,
// matching the external key format used across the system.
func generateID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:4]
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), suffix)
}
