package rbac

import (
	"edudash/internal/model"
)

// permissions is the full capability table. It is defined at process start
// and immutable during a run; there is no wildcard and no inheritance
// between roles, every set is explicit and complete.
var permissions = map[model.Role][]string{
	model.RoleAdmin: {
		"view_all_users",
		"create_user",
		"delete_user",
		"edit_user",
		"view_all_courses",
		"create_course",
		"delete_course",
		"edit_course",
		"view_all_analytics",
		"configure_system",
		"manage_ml_models",
	},
	model.RoleTeacher: {
		"view_own_courses",
		"edit_own_courses",
		"create_content",
		"view_student_progress",
		"provide_feedback",
		"adjust_schedules",
		"create_assessments",
		"view_class_analytics",
	},
	model.RoleStudent: {
		"view_own_courses",
		"submit_assignments",
		"take_assessments",
		"view_own_progress",
		"view_recommendations",
		"adjust_own_schedule",
	},
}

var capabilitySets = buildSets()

func buildSets() map[model.Role]map[string]struct{} {
	sets := make(map[model.Role]map[string]struct{}, len(permissions))
	for role, capabilities := range permissions {
		set := make(map[string]struct{}, len(capabilities))
		for _, capability := range capabilities {
			set[capability] = struct{}{}
		}
		sets[role] = set
	}
	return sets
}

// HasPermission reports whether role holds capability. A role without an
// entry in the table grants nothing.
func HasPermission(role model.Role, capability string) bool {
	set, ok := capabilitySets[role]
	if !ok {
		return false
	}
	_, ok = set[capability]
	return ok
}

// Capabilities returns the ordered capability list for a role. The result
// is a copy; the table itself never changes.
func Capabilities(role model.Role) []string {
	capabilities, ok := permissions[role]
	if !ok {
		return nil
	}
	out := make([]string, len(capabilities))
	copy(out, capabilities)
	return out
}

// Authorize runs op only when role holds capability; otherwise it returns
// ErrPermissionDenied without executing any part of op.
func Authorize(role model.Role, capability string, op func() error) error {
	if !HasPermission(role, capability) {
		return model.ErrPermissionDenied
	}
	return op()
}
