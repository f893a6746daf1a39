package enums

import (
	"fmt"
	"strings"
)

// TransactionType distinguishes stock-in from stock-out movements. The
// literal IN/OUT strings are what the stock_transactions table stores;
// direction is carried by the type, never by the sign of the quantity.
type TransactionType string

const (
	TransactionTypeIn  TransactionType = "IN"
	TransactionTypeOut TransactionType = "OUT"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeIn,
	TransactionTypeOut,
}

// IsValid reports whether the value matches the canonical transaction type enum.
func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// Delta returns the signed quantity adjustment for the given movement size.
func (t TransactionType) Delta(quantity int) int {
	if t == TransactionTypeOut {
		return -quantity
	}
	return quantity
}

// ParseTransactionType converts raw input into a TransactionType,
// accepting any casing ("in", "In", "IN").
func ParseTransactionType(value string) (TransactionType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validTransactionTypes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}
