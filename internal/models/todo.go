package models

import (
	"time"
)

// Todo represents a todo item
type Todo struct {
	ID        string    `firestore:"id" json:"id"`
	UserID    string    `firestore:"userId,omitempty" json:"userId,omitempty"`
	Content   string    `firestore:"content" json:"content"`
	Status    bool      `firestore:"status" json:"status"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
