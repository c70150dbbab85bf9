/*
errors.go - Centralized error types for the engine

PURPOSE:
  All engine error types in one place. Callers (the reports builder and
  the HTTP layer) match these with errors.Is / errors.As to choose a
  status code.

ERROR CATEGORIES:
  1. Window errors      - Malformed or inverted report ranges
  2. Permission errors  - Tenant-level reporting feature flag off
  3. Lookup errors      - Referenced tenant or employee does not exist

NOT ERRORS BY DESIGN:
  - An empty employee selection: reports return a well-formed empty
    employee list with the window metadata intact.
  - An out-of-range rounding step: silently coerced to 0 (see window.go).
  - Zero-length intervals and negative minute totals: clamped or dropped
    by the computation, never surfaced.

SEE ALSO:
  - window.go: Returns InvalidWindowError
  - reports:   Maps these to HTTP statuses
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidWindow is returned when a report range is missing,
	// malformed, or has from after to.
	ErrInvalidWindow = errors.New("invalid report window")

	// ErrReportsDisabled is returned when the tenant's reporting feature
	// flag is off. Surfaced as a permission error by the transport layer.
	ErrReportsDisabled = errors.New("reports are disabled for this tenant")

	// ErrTenantNotFound is returned when a referenced tenant doesn't exist.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidWindowError reports why a requested range was rejected.
type InvalidWindowError struct {
	From   string
	To     string
	Reason string
}

func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("invalid report window [%s, %s]: %s", e.From, e.To, e.Reason)
}

func (e *InvalidWindowError) Unwrap() error { return ErrInvalidWindow }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidWindow)
}

// IsPermissionError returns true if the error should map to 403.
func IsPermissionError(err error) bool {
	return errors.Is(err, ErrReportsDisabled)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTenantNotFound) || errors.Is(err, ErrEmployeeNotFound)
}
