package models

import (
	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin Role = "admin"
)

// Admin is the studio's single back-office login, built from configuration at startup.
type Admin struct {
	Username string
	Password string `json:"-"` // bcrypt hash, never the plain value
}

// NewAdmin hashes the configured password once so logins never compare plain text.
func NewAdmin(username, password string) (*Admin, error) {
	a := &Admin{Username: username}
	if err := a.SetPassword(password); err != nil {
		return nil, err
	}
	return a, nil
}

// SetPassword hashes a password and sets it on the admin
func (a *Admin) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the admin's hashed password
func (a *Admin) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password))
	return err == nil
}

// Authenticate reports whether the pair matches this admin.
func (a *Admin) Authenticate(username, password string) bool {
	return username == a.Username && a.CheckPassword(password)
}
