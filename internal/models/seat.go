package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Seat class row tiers. Rows 1-2 are First, 3-4 Business, the rest Economy.
const (
	firstClassMaxRow    = 2
	businessClassMaxRow = 4
)

var seatColumns = "ABCDEF"

// ParseSeatNumber splits a seat identifier like "12A" into row and column.
// The column must be one of A-F and the row a positive integer.
func ParseSeatNumber(seat string) (int, byte, error) {
	seat = strings.ToUpper(strings.TrimSpace(seat))
	if len(seat) < 2 {
		return 0, 0, fmt.Errorf("seat %q is too short", seat)
	}

	col := seat[len(seat)-1]
	if !strings.ContainsRune(seatColumns, rune(col)) {
		return 0, 0, fmt.Errorf("seat %q has invalid column %q", seat, string(col))
	}

	row, err := strconv.Atoi(seat[:len(seat)-1])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("seat %q has invalid row", seat)
	}

	return row, col, nil
}

// SeatClassForRow maps a seat row to its pricing tier
func SeatClassForRow(row int) string {
	switch {
	case row <= firstClassMaxRow:
		return ClassFirst
	case row <= businessClassMaxRow:
		return ClassBusiness
	default:
		return ClassEconomy
	}
}

// NormalizeSeatNumber canonicalizes a seat identifier ("7c " -> "7C")
func NormalizeSeatNumber(seat string) string {
	return strings.ToUpper(strings.TrimSpace(seat))
}
