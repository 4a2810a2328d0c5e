package user

import "time"

// Role is the closed set of user roles.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superAdmin"
)

// DepartmentHR members may manage the holiday registry and view all
// attendance even without an admin role.
const DepartmentHR = "HR"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Department   string
	GoogleID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanViewAllAttendance reports whether a role/department pair may read every
// user's records.
func CanViewAllAttendance(role Role, department string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin || department == DepartmentHR
}

// CanManageHolidays reports whether a role/department pair may write the
// holiday registry.
func CanManageHolidays(role Role, department string) bool {
	return role == RoleSuperAdmin || department == DepartmentHR
}
