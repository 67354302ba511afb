package domain

import "time"

// Session is the runtime handle for an authenticated identity. A nil or zero
// Session is anonymous.
type Session struct {
	Token     string
	TokenID   string
	UserID    string
	Role      Role
	ExpiresAt time.Time
}

// Authenticated reports whether s represents a logged-in user.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != ""
}

// Clear moves the session back to the anonymous state.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	*s = Session{}
}

// Operation names a gated marketplace operation.
type Operation string

const (
	OpPostJob                Operation = "post_job"
	OpListMyJobs             Operation = "list_my_jobs"
	OpDeleteJob              Operation = "delete_job"
	OpListApplicationsForJob Operation = "list_applications_for_job"
	OpApplyToJob             Operation = "apply_to_job"
	OpListMyApplications     Operation = "list_my_applications"
)

// requiredRoles defines which role may invoke each gated operation.
var requiredRoles = map[Operation]Role{
	OpPostJob:                RolePoster,
	OpListMyJobs:             RolePoster,
	OpDeleteJob:              RolePoster,
	OpListApplicationsForJob: RolePoster,
	OpApplyToJob:             RoleSeeker,
	OpListMyApplications:     RoleSeeker,
}

// Permits reports whether role r may perform op. Unknown operations are
// never permitted.
func (r Role) Permits(op Operation) bool {
	required, ok := requiredRoles[op]
	return ok && required == r
}
