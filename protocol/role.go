package protocol

// Role identifies a player's slot in the room.
type Role string

const (
	RoleUnassigned Role = "unassigned"
	RoleTeacher1   Role = "teacher1"
	RoleTeacher2   Role = "teacher2"
	RolePupil1     Role = "pupil1"
	RolePupil2     Role = "pupil2"
)

// Team names, matching the winner values on the wire.
const (
	TeamTeacher = "teacher"
	TeamPupil   = "pupil"
)

// ValidRoles lists the claimable slots in lobby order.
var ValidRoles = []Role{RoleTeacher1, RoleTeacher2, RolePupil1, RolePupil2}

// Valid reports whether r is a claimable slot.
func (r Role) Valid() bool {
	switch r {
	case RoleTeacher1, RoleTeacher2, RolePupil1, RolePupil2:
		return true
	}
	return false
}

// Team returns "teacher" or "pupil", or "" for unassigned/unknown roles.
func (r Role) Team() string {
	switch r {
	case RoleTeacher1, RoleTeacher2:
		return TeamTeacher
	case RolePupil1, RolePupil2:
		return TeamPupil
	}
	return ""
}

// Slot returns the 0-based slot index within the role's team, or -1.
func (r Role) Slot() int {
	switch r {
	case RoleTeacher1, RolePupil1:
		return 0
	case RoleTeacher2, RolePupil2:
		return 1
	}
	return -1
}
