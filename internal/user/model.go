package user

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	Role      Role
	CreatedAt time.Time
}

// Stats is the admin rollup of registered customers.
type Stats struct {
	TotalUsers int64 `json:"totalUsers"`
}
