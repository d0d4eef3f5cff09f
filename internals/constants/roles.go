package constants

import "fmt"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess   = "Only admins may access %s."
	ErrOnlyTeachersCanAccess = "Only teachers or admins may access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

var (
	AllRoles = []string{RoleAdmin, RoleTeacher}

	TeacherAndAbove = []string{RoleTeacher, RoleAdmin}

	AdminOnly = []string{RoleAdmin}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
