package domain

import "time"

// User exists to scope drawings, favorites and activity. The tracker is
// single-tenant: the boundary resolves the current user to the first row
// and passes the id down as an opaque identifier.
type User struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
