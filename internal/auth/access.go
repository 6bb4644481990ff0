package auth

import "errors"

// ErrAuthFailure - bad credentials. The caller re-prompts; nothing is
// persisted or changed.
var ErrAuthFailure = errors.New("invalid credentials")

// Views the UI can navigate to.
const (
	ViewPOS       = "pos"
	ViewInventory = "inventory"
	ViewReports   = "reports"
	ViewSettings  = "settings"
	ViewUsers     = "users"
)

// Roles.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// CanAccess is the single RBAC predicate: every navigation and
// report-scope decision goes through here rather than re-deriving
// booleans from role strings at each call site.
//
// admin reaches every view; manager reaches pos, inventory and
// reports; cashier reaches pos and reports (reports being limited to
// self scope, see ReportScope). Everything else is denied.
func CanAccess(role, view string) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleManager:
		return view == ViewPOS || view == ViewInventory || view == ViewReports
	case RoleCashier:
		return view == ViewPOS || view == ViewReports
	}
	return false
}

// Scope controls whether a report reflects only the acting user's own
// sales or the whole store's.
type Scope string

const (
	ScopeSelf  Scope = "self"
	ScopeStore Scope = "store"
)

// ReportScope resolves the effective report scope for a role. A
// cashier is always restricted to their own sales; an admin always
// sees the whole store; a manager sees the store only when they
// explicitly ask for it, and defaults to self otherwise.
func ReportScope(role string, requested Scope) Scope {
	switch role {
	case RoleAdmin:
		return ScopeStore
	case RoleManager:
		if requested == ScopeStore {
			return ScopeStore
		}
		return ScopeSelf
	default:
		return ScopeSelf
	}
}
