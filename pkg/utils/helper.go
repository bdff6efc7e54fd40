package utils

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the wire and storage format of appointment dates.
const DateLayout = "2006-01-02"

// ParseID parses a positive store-assigned identifier.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	return id, nil
}

// ParseDate parses a calendar date in DateLayout, as UTC midnight.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return date, nil
}
