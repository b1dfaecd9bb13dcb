// Package calculator implements expense splitting and settlement math.
// Everything here is a pure function of its inputs.
package calculator

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput reports an empty member set, a non-positive amount,
	// a negative share or a share assigned to a non-member.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnnormalizedSplit reports manual shares that do not sum to 1.0
	// when strict normalization is requested.
	ErrUnnormalizedSplit = errors.New("split shares do not sum to 1")
)

// ShareTolerance is the allowed deviation of a share sum from 1.0.
const ShareTolerance = 1e-9

// Equal shares are quantized to multiples of 2^-shareBits so that every
// partial sum is exactly representable in a float64.
const shareBits = 40

// SplitMode selects how an expense is divided.
type SplitMode string

const (
	ModeEqual  SplitMode = "equal"
	ModeManual SplitMode = "manual"
)

// Normalization selects how manual shares are checked.
type Normalization string

const (
	// Normalize divides every share by the sum of all shares.
	Normalize Normalization = "normalize"
	// Strict rejects shares whose sum is not 1.0 within ShareTolerance.
	Strict Normalization = "strict"
	// Raw keeps the shares exactly as entered.
	Raw Normalization = "raw"
)

// SplitRequest is a validated-on-use description of one expense split.
type SplitRequest struct {
	Amount  float64
	Payer   string
	Members []string
	Mode    SplitMode

	// Shares holds the raw per-member values for ModeManual.
	Shares map[string]float64

	// Normalization applies to ModeManual; empty means Normalize.
	Normalization Normalization
}

// Compute validates the request and returns the share mapping.
func Compute(req SplitRequest) (map[string]float64, error) {
	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) || req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive, got %v", ErrInvalidInput, req.Amount)
	}
	if req.Payer == "" {
		return nil, fmt.Errorf("%w: payer required", ErrInvalidInput)
	}
	if !contains(req.Members, req.Payer) {
		return nil, fmt.Errorf("%w: payer %q is not a group member", ErrInvalidInput, req.Payer)
	}

	switch req.Mode {
	case ModeEqual, "":
		return EqualSplit(req.Members, req.Payer)
	case ModeManual:
		return ManualSplit(req.Members, req.Shares, req.Normalization)
	default:
		return nil, fmt.Errorf("%w: unknown split mode %q", ErrInvalidInput, req.Mode)
	}
}

// EqualSplit gives every member the same share.
//
// 1/n is rarely exact, so each member receives 1/n rounded down to a multiple
// of 2^-40 and the designated member absorbs the remainder. The result sums
// to exactly 1.0 in any summation order. If designated is not a member, the
// first member absorbs the remainder.
func EqualSplit(members []string, designated string) (map[string]float64, error) {
	ordered, err := memberSet(members)
	if err != nil {
		return nil, err
	}
	if !contains(ordered, designated) {
		designated = ordered[0]
	}

	n := len(ordered)
	share := math.Ldexp(math.Floor(math.Ldexp(1/float64(n), shareBits)), -shareBits)

	split := make(map[string]float64, n)
	for _, m := range ordered {
		split[m] = share
	}
	split[designated] = 1 - float64(n-1)*share
	return split, nil
}

// ManualSplit turns raw per-member values into a share mapping.
//
// Every member appears in the result (missing entries become 0). Values for
// non-members, negative values and an all-zero input are rejected.
func ManualSplit(members []string, shares map[string]float64, norm Normalization) (map[string]float64, error) {
	ordered, err := memberSet(members)
	if err != nil {
		return nil, err
	}
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: no shares given", ErrInvalidInput)
	}

	set := make(map[string]struct{}, len(ordered))
	for _, m := range ordered {
		set[m] = struct{}{}
	}

	var sum float64
	for id, v := range shares {
		if _, ok := set[id]; !ok {
			return nil, fmt.Errorf("%w: share for non-member %q", ErrInvalidInput, id)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("%w: share for %q must be a non-negative number, got %v", ErrInvalidInput, id, v)
		}
		sum += v
	}
	if sum <= 0 {
		return nil, fmt.Errorf("%w: shares sum to zero", ErrInvalidInput)
	}

	split := make(map[string]float64, len(ordered))
	for _, m := range ordered {
		split[m] = shares[m]
	}

	switch norm {
	case Normalize, "":
		for m, v := range split {
			split[m] = v / sum
		}
	case Strict:
		if err := ValidateSplit(split); err != nil {
			return nil, err
		}
	case Raw:
	default:
		return nil, fmt.Errorf("%w: unknown normalization %q", ErrInvalidInput, norm)
	}
	return split, nil
}

// ValidateSplit checks that shares are non-negative and sum to 1.0 within
// ShareTolerance.
func ValidateSplit(split map[string]float64) error {
	if len(split) == 0 {
		return fmt.Errorf("%w: empty split", ErrInvalidInput)
	}
	var sum float64
	for id, v := range split {
		if math.IsNaN(v) || v < 0 {
			return fmt.Errorf("%w: share for %q must be non-negative", ErrInvalidInput, id)
		}
		sum += v
	}
	if math.Abs(sum-1) > ShareTolerance {
		return fmt.Errorf("%w: sum is %v", ErrUnnormalizedSplit, sum)
	}
	return nil
}

// memberSet deduplicates members keeping first-seen order.
func memberSet(members []string) ([]string, error) {
	seen := make(map[string]struct{}, len(members))
	ordered := make([]string, 0, len(members))
	for _, m := range members {
		if m == "" {
			return nil, fmt.Errorf("%w: empty member id", ErrInvalidInput)
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		ordered = append(ordered, m)
	}
	if len(ordered) == 0 {
		return nil, fmt.Errorf("%w: must have at least one member", ErrInvalidInput)
	}
	return ordered, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
