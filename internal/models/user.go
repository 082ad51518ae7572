package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User represents an account. The password field holds a bcrypt hash and is
// never serialized into responses.
type User struct {
	ID        string    `firestore:"id" json:"id"`
	Username  string    `firestore:"username" json:"username"`
	Email     string    `firestore:"email" json:"email"`
	Password  string    `firestore:"password" json:"-"`
	Image     string    `firestore:"image,omitempty" json:"image,omitempty"`
	Status    string    `firestore:"status" json:"status"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// SetPassword replaces the stored hash with a bcrypt hash of plain.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}
