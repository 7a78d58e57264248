package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a request value that failed validation
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ParseOrderID normalises an order id taken from a route parameter or a
// request body into the store's key type. Leading and trailing whitespace is
// ignored; anything other than a positive base-10 integer is rejected.
func ParseOrderID(raw string) (uint, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, &ValidationError{
			Code:    "INVALID_ORDER_ID",
			Message: "Order ID is required",
		}
	}

	id, err := strconv.ParseUint(value, 10, 0)
	if err != nil || id == 0 {
		return 0, &ValidationError{
			Code:    "INVALID_ORDER_ID",
			Message: fmt.Sprintf("Order ID must be a positive integer, got %q", raw),
		}
	}

	return uint(id), nil
}

// OrderIDFromJSON parses an orderId taken verbatim from a JSON body. The value
// may be a number or a numeric string; null or a missing value is reported
// the same way as an empty id.
func OrderIDFromJSON(raw json.RawMessage) (uint, error) {
	text := strings.TrimSpace(string(raw))
	if text == "null" {
		text = ""
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal([]byte(text), &s); err != nil {
			return 0, &ValidationError{
				Code:    "INVALID_ORDER_ID",
				Message: fmt.Sprintf("Order ID must be a positive integer, got %s", text),
			}
		}
		text = s
	}
	return ParseOrderID(text)
}
