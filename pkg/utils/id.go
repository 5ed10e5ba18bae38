package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateRunID generates a tuning run ID with a timestamp prefix
func GenerateRunID() string {
	timestamp := time.Now().Format("20060102-150405")
	return fmt.Sprintf("run-%s-%s", timestamp, uuid.NewString()[:8])
}
