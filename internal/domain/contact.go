package domain

import (
	"time"
)

// ContactMessage is a message submitted through the public contact form.
// Messages are created outside this service; the admin panel only lists,
// inspects, and deletes them.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
