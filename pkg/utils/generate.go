package utils

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// GenerateBookingRef creates a human readable booking reference.
// Format: KRG-YYYYMMDD-HHMMSS-NNNN
func GenerateBookingRef(now time.Time) string {
	return fmt.Sprintf("KRG-%s-%s-%04d",
		now.Format("20060102"),
		now.Format("150405"),
		rand.IntN(10000),
	)
}
