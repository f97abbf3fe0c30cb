package auth

// Role is a hospital-scoped role held by a HospitalUser. A principal may hold
// at most one active role per hospital.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RolePharmacist   Role = "pharmacist"
	RoleReceptionist Role = "receptionist"
	RolePatient      Role = "patient"
)

var validRoles = map[Role]bool{
	RoleAdmin:        true,
	RoleDoctor:       true,
	RolePharmacist:   true,
	RoleReceptionist: true,
	RolePatient:      true,
}

func (r Role) Valid() bool { return validRoles[r] }

// Landing returns the role's default landing path. Unauthorized role access
// redirects there rather than erroring.
func (r Role) Landing() string {
	if !r.Valid() {
		return "/"
	}
	return "/" + string(r)
}
