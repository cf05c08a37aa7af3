package session

import "github.com/carelink/hospital-portal/internal/core/domain"

// Decision is the route gate's verdict for a protected view.
type Decision string

const (
	// DecisionDefer means the session is still resolving; render only a
	// loading indicator, never protected content and never a redirect.
	DecisionDefer                Decision = "defer"
	DecisionRedirectLogin        Decision = "redirect_login"
	DecisionRedirectUnauthorized Decision = "redirect_unauthorized"
	DecisionAllow                Decision = "allow"
)

// Decide is the pure route-gating function. It performs no I/O and is safe to
// call on every render: the same snapshot and role set always yield the same
// decision.
func Decide(snap Snapshot, requiredRoles []domain.Role) Decision {
	if snap.State == StateLoading || snap.State == StateUninitialized {
		return DecisionDefer
	}
	if !snap.Authenticated() {
		return DecisionRedirectLogin
	}
	if len(requiredRoles) == 0 {
		return DecisionAllow
	}
	for _, r := range requiredRoles {
		if snap.User.Role == r {
			return DecisionAllow
		}
	}
	return DecisionRedirectUnauthorized
}
