// Package nav holds the role-keyed navigation tables the presentation layer
// renders after sign-in. Each role maps to an ordered list of items; the
// first item is always the role's own dashboard.
package nav

import "github.com/hims/hims/internal/platform/auth"

// Item is a single navigation entry.
type Item struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
}

var tables = map[auth.Role][]Item{
	auth.RoleAdmin: {
		{Label: "Dashboard", Path: "/admin", Icon: "dashboard"},
		{Label: "Staff Management", Path: "/admin/staff", Icon: "users"},
		{Label: "Hospital Settings", Path: "/admin/settings", Icon: "hospital"},
		{Label: "Reports", Path: "/admin/reports", Icon: "clipboard"},
	},
	auth.RoleDoctor: {
		{Label: "Dashboard", Path: "/doctor", Icon: "dashboard"},
		{Label: "My Patients", Path: "/doctor/patients", Icon: "users"},
		{Label: "Appointments", Path: "/doctor/appointments", Icon: "calendar"},
		{Label: "Consultations", Path: "/doctor/consultations", Icon: "stethoscope"},
		{Label: "Prescriptions", Path: "/doctor/prescriptions", Icon: "file"},
	},
	auth.RolePharmacist: {
		{Label: "Dashboard", Path: "/pharmacist", Icon: "dashboard"},
		{Label: "Prescriptions", Path: "/pharmacist/prescriptions", Icon: "pill"},
		{Label: "Inventory", Path: "/pharmacist/inventory", Icon: "clipboard"},
	},
	auth.RoleReceptionist: {
		{Label: "Dashboard", Path: "/receptionist", Icon: "dashboard"},
		{Label: "Patients", Path: "/receptionist/patients", Icon: "users"},
		{Label: "Appointments", Path: "/receptionist/appointments", Icon: "calendar"},
		{Label: "Registration", Path: "/receptionist/register", Icon: "user"},
	},
	auth.RolePatient: {
		{Label: "Dashboard", Path: "/patient", Icon: "dashboard"},
		{Label: "My Profile", Path: "/patient/profile", Icon: "user"},
		{Label: "Medical History", Path: "/patient/history", Icon: "file"},
		{Label: "Appointments", Path: "/patient/appointments", Icon: "calendar"},
		{Label: "Prescriptions", Path: "/patient/prescriptions", Icon: "pill"},
	},
}

// ItemsFor returns the ordered navigation items for a role. Unknown roles get
// an empty list, never a panic.
func ItemsFor(role auth.Role) []Item {
	items := tables[role]
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
