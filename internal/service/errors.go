package service

import "errors"

// Domain outcomes surfaced to the HTTP boundary. Handlers map these to
// status codes; anything else is a 500.
var (
	ErrCredentialsInvalid = errors.New("invalid credentials")
	ErrUserExists         = errors.New("username or email already registered")
	ErrUserNotFound       = errors.New("user not found")

	ErrClassroomNotFound = errors.New("classroom not found")
	ErrDefaultClassroom  = errors.New("default classroom cannot be deleted")

	ErrStudentNotFound = errors.New("student not found")
	ErrStudentExists   = errors.New("student with this grade, class and number already exists")

	ErrRuleNotFound = errors.New("rule not found")

	ErrManagerNotFound   = errors.New("student manager not found")
	ErrManagerExists     = errors.New("username already taken")
	ErrRuleNotAllowed    = errors.New("rule not permitted for this account")
	ErrOperationNotAllow = errors.New("operation not permitted for this account")
	ErrRuleNotInClass    = errors.New("rule does not belong to this classroom")

	ErrShareNotFound  = errors.New("share link not found or disabled")
	ErrPeriodInvalid  = errors.New("invalid leaderboard period")
	ErrDateInvalid    = errors.New("invalid date")
	ErrNothingToApply = errors.New("no fields to update")
)
