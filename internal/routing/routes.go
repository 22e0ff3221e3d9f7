package routing

import (
	"strings"

	"github.com/you/hmsauth/domain"
)

// Well-known shell paths.
const (
	LoginPath        = "/login"
	VerifyOTPPath    = "/verify-otp"
	UnauthorizedPath = "/unauthorized"
)

// Route is one navigable view of the portal. Roles is the exact set the
// guard admits; InMenu marks routes rendered in the side navigation.
type Route struct {
	Path   string
	Label  string
	Roles  []domain.Role
	InMenu bool
}

// NavLink is one entry of a role-scoped navigation menu.
type NavLink struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// table is the single source of truth for role-gated views. The guard
// middleware, the casbin policy seed and the navigation menus are all
// derived from it, so they cannot drift apart.
var table = []Route{
	// Patient
	{Path: "/patient/dashboard", Label: "Dashboard", Roles: []domain.Role{domain.RolePatient}, InMenu: true},
	{Path: "/patient/appointments", Label: "Appointments", Roles: []domain.Role{domain.RolePatient}, InMenu: true},
	{Path: "/patient/prescriptions", Label: "Prescriptions", Roles: []domain.Role{domain.RolePatient}, InMenu: true},
	{Path: "/patient/reports", Label: "Reports", Roles: []domain.Role{domain.RolePatient}, InMenu: true},
	{Path: "/patient/profile", Label: "Profile", Roles: []domain.Role{domain.RolePatient}, InMenu: true},

	// Doctor
	{Path: "/doctor/dashboard", Label: "Dashboard", Roles: []domain.Role{domain.RoleDoctor}, InMenu: true},
	{Path: "/doctor/patients", Label: "Patients", Roles: []domain.Role{domain.RoleDoctor}, InMenu: true},
	{Path: "/doctor/appointments", Label: "Appointments", Roles: []domain.Role{domain.RoleDoctor}, InMenu: true},
	{Path: "/doctor/emr/:patientId", Label: "EMR", Roles: []domain.Role{domain.RoleDoctor}},
	{Path: "/doctor/reports", Label: "Reports", Roles: []domain.Role{domain.RoleDoctor}, InMenu: true},

	// Admin
	{Path: "/admin/dashboard", Label: "Dashboard", Roles: []domain.Role{domain.RoleAdmin}, InMenu: true},
	{Path: "/admin/users", Label: "Users", Roles: []domain.Role{domain.RoleAdmin}, InMenu: true},
	{Path: "/admin/doctors", Label: "Doctors", Roles: []domain.Role{domain.RoleAdmin}, InMenu: true},
	{Path: "/admin/appointments", Label: "Appointments", Roles: []domain.Role{domain.RoleAdmin}, InMenu: true},
	{Path: "/admin/departments", Label: "Departments", Roles: []domain.Role{domain.RoleAdmin}, InMenu: true},
	{Path: "/admin/billing", Label: "Billing", Roles: []domain.Role{domain.RoleAdmin}, InMenu: true},
	{Path: "/admin/analytics", Label: "Analytics", Roles: []domain.Role{domain.RoleAdmin}, InMenu: true},

	// Staff
	{Path: "/staff/register-patient", Label: "Register Patient", Roles: []domain.Role{domain.RoleStaff}, InMenu: true},
	{Path: "/staff/book-appointment", Label: "Book Appointment", Roles: []domain.Role{domain.RoleStaff}, InMenu: true},
	{Path: "/staff/upload-reports", Label: "Upload Reports", Roles: []domain.Role{domain.RoleStaff}, InMenu: true},
}

// Table returns the full route table.
func Table() []Route {
	out := make([]Route, len(table))
	copy(out, table)
	return out
}

// DefaultRouteFor maps a role to its landing route. Unknown or empty roles
// fall back to the login path.
func DefaultRouteFor(role domain.Role) string {
	switch role {
	case domain.RolePatient:
		return "/patient/dashboard"
	case domain.RoleDoctor:
		return "/doctor/dashboard"
	case domain.RoleAdmin:
		return "/admin/dashboard"
	case domain.RoleStaff:
		return "/staff/register-patient"
	default:
		return LoginPath
	}
}

// Match resolves a concrete navigation path against the route table.
// Pattern segments starting with ":" match any single non-empty segment.
func Match(path string) (Route, bool) {
	for _, r := range table {
		if matchPath(r.Path, path) {
			return r, true
		}
	}
	return Route{}, false
}

func matchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}
	pp := strings.Split(pattern, "/")
	ps := strings.Split(path, "/")
	if len(pp) != len(ps) {
		return false
	}
	for i := range pp {
		if strings.HasPrefix(pp[i], ":") {
			if ps[i] == "" {
				return false
			}
			continue
		}
		if pp[i] != ps[i] {
			return false
		}
	}
	return true
}

// NavigableRoutesFor returns the ordered menu entries for a role. Every
// returned path is one the guard admits for the same role.
func NavigableRoutesFor(role domain.Role) []NavLink {
	var links []NavLink
	for _, r := range table {
		if !r.InMenu {
			continue
		}
		for _, allowed := range r.Roles {
			if allowed == role {
				links = append(links, NavLink{Label: r.Label, Path: r.Path})
				break
			}
		}
	}
	return links
}
