package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username string `json:"username"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	Password string `json:"-"`
	Country  string `json:"country"`
	Role     string `json:"role"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Actor is the authenticated identity carried through a request. It never
// holds the password and is the sole authorization gate.
type Actor struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Country  string `json:"country"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == "admin"
}
