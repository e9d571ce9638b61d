package validator

import (
	"time"

	"github.com/mkadlec/product-audit-api/internal/apierr"
)

// DateTimeLayout is the only accepted wire format for date strings.
const DateTimeLayout = "2006-01-02 15:04:05"

// DateTime parses value under DateTimeLayout. Empty input yields nil; any
// other malformed input names the field and the expected pattern.
func DateTime(value, fieldName string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse(DateTimeLayout, value)
	if err != nil {
		return nil, apierr.BadRequest("Invalid format for %s: '%s' (expected YYYY-MM-DD HH:MM:SS)", fieldName, value)
	}
	return &t, nil
}
