package models

const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

// AdminID is the fixed sentinel identity id for the class admin.
const AdminID = "admin"

// Identity is the acting user for a session. Student IDs are the sanitized
// seat number so repeat logins resolve to the same order.
type Identity struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	SeatNumber string `json:"seatNumber"`
	Role       string `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
