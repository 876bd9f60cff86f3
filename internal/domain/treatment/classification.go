package treatment

import "strings"

// classificationLength is the exact digit count of a tariff classification
// code. This is a bit-exact contract with the authority.
const classificationLength = 8

// NormalizeClassificationCode strips the separators users commonly type into
// classification codes (dots, dashes, slashes, spaces).  It does not validate;
// pair with IsValidClassificationCode.
func NormalizeClassificationCode(code string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '-', '/', ' ':
			return -1
		}
		return r
	}, code)
}

// IsValidClassificationCode reports whether code is exactly 8 numeric digits.
// Callers must normalize first.
func IsValidClassificationCode(code string) bool {
	if len(code) != classificationLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CodeGate is the synchronous format decision made on every classification
// edit, before any lookup is considered.
type CodeGate int

const (
	// GateIncomplete: empty or fewer than 8 digits — keep editing, no call.
	GateIncomplete CodeGate = iota
	// GateReady: exactly 8 digits — a lookup may be issued.
	GateReady
	// GateRejected: non-empty, wrong length or non-numeric — reject the
	// input outright.
	GateRejected
)

// GateClassificationCode classifies a raw user-entered code.  Separators are
// stripped before the decision.
func GateClassificationCode(raw string) (normalized string, gate CodeGate) {
	normalized = NormalizeClassificationCode(raw)
	switch {
	case normalized == "":
		return normalized, GateIncomplete
	case IsValidClassificationCode(normalized):
		return normalized, GateReady
	case len(normalized) < classificationLength && allDigits(normalized):
		return normalized, GateIncomplete
	default:
		return normalized, GateRejected
	}
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

//Personal.AI order the ending
