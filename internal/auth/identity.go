package auth

import (
	"math"
	"strconv"
	"strings"

	"github.com/iliyamo/cinetour/internal/apperr"
)

// maxJSONIdentity is the largest integer a JSON number carries exactly.
const maxJSONIdentity = 1<<53 - 1

// ParseIdentity validates a path segment naming an identity (or any other
// numeric resource id).  Only positive base-10 integers are accepted.
// Existence is not checked here.
func ParseIdentity(raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.BadRequest("Invalid id")
	}
	return id, nil
}

// IdentityFromNumber validates an identity given as a JSON number: it must
// be finite, positive and integral.
func IdentityFromNumber(v float64) (uint64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || v > maxJSONIdentity || v != math.Trunc(v) {
		return 0, false
	}
	return uint64(v), true
}
