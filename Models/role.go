package Models

// Roles are a closed set. Handlers call the capability helpers below before
// any mutation instead of branching on the raw string.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

func IsValidRole(role string) bool {
	return role == RolePatient || role == RoleDoctor || role == RoleAdmin
}

// CanManageCatalog: vaccine create/edit/delete.
func CanManageCatalog(role string) bool {
	return role == RoleDoctor || role == RoleAdmin
}

// CanManageCampaigns: campaign create/edit/delete. Reads stay open to any
// authenticated user.
func CanManageCampaigns(role string) bool {
	return role == RoleAdmin
}

// CanModifySchedules: dose date changes on an existing booking.
func CanModifySchedules(role string) bool {
	return role == RoleDoctor
}

// CanViewAllSchedules: patients only ever see their own bookings.
func CanViewAllSchedules(role string) bool {
	return role == RoleDoctor || role == RoleAdmin
}

// CanManageOrders: order status updates and deletes.
func CanManageOrders(role string) bool {
	return role == RoleAdmin
}
