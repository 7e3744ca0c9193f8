package service

// PrincipalKind distinguishes the two authenticated actor types.
type PrincipalKind string

const (
	// PrincipalTeacher has full CRUD over everything it owns.
	PrincipalTeacher PrincipalKind = "teacher"
	// PrincipalManager is a student sub-account restricted to scoring a
	// fixed classroom's allowed rules.
	PrincipalManager PrincipalKind = "manager"
)

// Principal is the authenticated actor extracted from a bearer token.
// For teachers UserID is set; for managers ManagerID is set and the owning
// tenant and classroom are resolved from the manager row on each call, so
// revoking a manager or shrinking its rule set takes effect immediately.
type Principal struct {
	Kind      PrincipalKind
	UserID    uint
	ManagerID uint
}

// IsTeacher reports whether the principal is a full teacher account.
func (p Principal) IsTeacher() bool { return p.Kind == PrincipalTeacher }
