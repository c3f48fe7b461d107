package models

import "encoding/json"

// User is the session subject
type User struct {
	ID         ID       `json:"id"`
	Username   string   `json:"username,omitempty"`
	Email      string   `json:"email"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Phone      string   `json:"phone,omitempty"`
	Location   string   `json:"location,omitempty"`
	Department string   `json:"department,omitempty"`
	Position   string   `json:"position,omitempty"`
	JoinDate   string   `json:"join_date,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	Avatar     string   `json:"avatar,omitempty"`
	Role       RoleType `json:"role"`
}

// UnmarshalJSON accepts snake_case and camelCase spellings of the name
// and join date fields. camelCase wins when both are present.
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var raw struct {
		plain
		FirstNameS string `json:"first_name"`
		LastNameS  string `json:"last_name"`
		JoinDateC  string `json:"joinDate"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*u = User(raw.plain)
	u.FirstName = firstNonEmpty(u.FirstName, raw.FirstNameS)
	u.LastName = firstNonEmpty(u.LastName, raw.LastNameS)
	u.JoinDate = firstNonEmpty(u.JoinDate, raw.JoinDateC)
	return nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Identity returns the user as a person reference
func (u User) Identity() Identity {
	return Identity{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// Activity types
const (
	ActivityComment = "comment"
	ActivityLike    = "like"
	ActivityView    = "view"
	ActivityPost    = "post"
)

// Activity is an entry in the user's recent activity feed
type Activity struct {
	ID        ID     `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
}

// Notification is a message addressed to the user
type Notification struct {
	ID        ID     `json:"id"`
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
	Read      bool   `json:"read"`
}

// UserStats summarises the user base
type UserStats struct {
	TotalUsers        int `json:"total_users"`
	ActiveUsers       int `json:"active_users"`
	NewUsersThisMonth int `json:"new_users_this_month"`
}
