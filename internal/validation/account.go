package validation

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAccountID parses an account id given on the command line or in a prompt.
func ParseAccountID(input string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("account id %q is not a whole number", input)
	}
	return id, nil
}

// ParseBalance parses an opening balance in cents.
func ParseBalance(input string) (int64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, nil
	}

	balance, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("balance %q is not a whole number of cents", input)
	}
	if balance < 0 {
		return 0, fmt.Errorf("initial balance can't be negative")
	}
	return balance, nil
}

// ValidateAccountID validates account id input
// Accepts any (for survey compatibility)
func ValidateAccountID(val any) error {
	input, ok := val.(string)
	if !ok {
		return fmt.Errorf("account id must be a string")
	}
	_, err := ParseAccountID(input)
	return err
}

// ValidateBalance validates opening balance input
func ValidateBalance(val any) error {
	input, ok := val.(string)
	if !ok {
		return fmt.Errorf("balance must be a string")
	}
	_, err := ParseBalance(input)
	return err
}
