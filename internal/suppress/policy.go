package suppress

import (
	"fmt"

	"quell/internal/diag"
)

// Policy selects diagnostics by location and suppression state. The three
// switches are independent; a diagnostic must pass all of them.
type Policy struct {
	IncludeNoLocation   bool
	IncludeSuppressed   bool
	IncludeUnsuppressed bool
}

// DefaultPolicy keeps diagnostics without a location and unsuppressed ones,
// and drops suppressed ones.
func DefaultPolicy() Policy {
	return Policy{
		IncludeNoLocation:   true,
		IncludeSuppressed:   false,
		IncludeUnsuppressed: true,
	}
}

// Allows reports whether d passes every switch of the policy.
func (p Policy) Allows(d *diag.Diagnostic) bool {
	if !p.IncludeNoLocation && !d.InSource() {
		return false
	}
	if !p.IncludeSuppressed && d.Suppressed {
		return false
	}
	if !p.IncludeUnsuppressed && !d.Suppressed {
		return false
	}
	return true
}

func (p Policy) String() string {
	return fmt.Sprintf("no-location=%t suppressed=%t unsuppressed=%t",
		p.IncludeNoLocation, p.IncludeSuppressed, p.IncludeUnsuppressed)
}
