package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/OmerAlfiel/Shahen-website/pkg/errors"
)

// ParseQueryInt reads an integer query parameter. Values outside [min, max]
// are clamped rather than rejected.
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, key+" must be numeric")
	}
	if value < min {
		return min, nil
	}
	if value > max {
		return max, nil
	}
	return value, nil
}

// ParseQueryChoice returns the query value when it is one of allowed,
// otherwise defaultVal. Matching is case-sensitive.
func ParseQueryChoice(r *http.Request, key, defaultVal string, allowed ...string) string {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	for _, candidate := range allowed {
		if raw == candidate {
			return candidate
		}
	}
	return defaultVal
}
