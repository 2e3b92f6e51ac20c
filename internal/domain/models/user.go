package models

// User is an account that can sign in. Role is "user", "admin" or "owner".
type User struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Username     string `db:"username" json:"username"`
	Email        string `db:"email" json:"email"`
	Phone        string `db:"phone" json:"phone"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         string `db:"role" json:"role"`
	Status       string `db:"status" json:"status"`
}
