package domain

// UserRole defines the roles a staff member can hold within a shop.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleCashier UserRole = "cashier"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleCashier
}

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	UserID string   `json:"userId"`
	ShopID string   `json:"shopId"`
	Role   UserRole `json:"role"`
	Name   string   `json:"name"`
}

// CanAccessShift reports whether the caller may read or close shift. Admins reach every
// shift of their shop, cashiers only their own.
func (a Actor) CanAccessShift(shift *Shift) bool {
	return a.Role == RoleAdmin || shift.CashierID == a.UserID
}
