package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// formatAmount renders v in the given ISO 4217 currency, e.g. "€12.50".
func formatAmount(v float64, code string) string {
	cur := money.GetCurrency(strings.ToUpper(code))
	if cur == nil {
		return decimal.NewFromFloat(v).StringFixed(2) + " " + code
	}
	minor := decimal.NewFromFloat(v).Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// parseShares parses "a=1,b=2.5" into a share map.
func parseShares(s string) (map[string]float64, error) {
	shares := make(map[string]float64)
	if strings.TrimSpace(s) == "" {
		return shares, nil
	}
	for _, pair := range strings.Split(s, ",") {
		id, value, ok := strings.Cut(pair, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("malformed share %q: want member=value", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed share value for %s: %w", id, err)
		}
		shares[id] = v
	}
	return shares, nil
}

// splitList parses a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
