package riot

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("not found")

// ErrNoAuth: no hay entitlements todavía (cliente cerrado o sin login).
var ErrNoAuth = errors.New("riot: not authenticated")

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("riot api status %d: %s", e.Status, e.Body)
}

// tokenExpired reconoce el 400 que devuelve glz/pd con el JWT vencido.
func (e *APIError) tokenExpired() bool {
	if e.Status != 400 {
		return false
	}
	b := strings.ToUpper(e.Body)
	return strings.Contains(b, "BAD_CLAIMS") || strings.Contains(b, "TOKEN")
}
