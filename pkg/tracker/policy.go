package tracker

// Pure authorization predicates over (session, resource). All of them treat
// a nil session as logged out and deny.

// CanView reports whether the session may view the dashboard, project list,
// and project details: any authenticated session.
func CanView(s *Session) bool {
	return s != nil
}

// CanCreateProject reports whether the session may create projects: admins
// only.
func CanCreateProject(s *Session) bool {
	return s.IsAdmin()
}

// CanEditProject reports whether the session may edit the project's core
// fields: admins, or the project's manager.
func CanEditProject(s *Session, p *Project) bool {
	if s == nil || p == nil {
		return false
	}

	return s.IsAdmin() || s.UserID == p.ManagerID
}

// CanDeleteProject reports whether the session may delete projects: admins
// only.
func CanDeleteProject(s *Session) bool {
	return s.IsAdmin()
}

// CanManageTeam reports whether the session may view team management and
// add or edit members: admins only.
func CanManageTeam(s *Session) bool {
	return s.IsAdmin()
}

// CanModifyTasks reports whether the session may add, advance, or delete
// tasks on any project: any authenticated session, with no ownership check.
func CanModifyTasks(s *Session) bool {
	return s != nil
}

// CanDeleteUser reports whether the session may delete the user with the
// given id. Deleting one's own account is denied regardless of role.
func CanDeleteUser(s *Session, id int) bool {
	if s == nil || s.UserID == id {
		return false
	}

	return s.IsAdmin()
}
