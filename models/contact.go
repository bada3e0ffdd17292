package models

import "time"

// ContactMessage statuses.
const (
	ContactStatusNew        = "new"
	ContactStatusInProgress = "in_progress"
	ContactStatusResolved   = "resolved"
)

// ContactRoles is the closed set of roles a sender may pick.
var ContactRoles = []string{
	"As a Client",
	"As a Frontend Developer",
	"As a Backend Developer",
	"As a Full Stack Developer",
}

// ContactStatuses is the closed set of workflow states for a message.
var ContactStatuses = []string{ContactStatusNew, ContactStatusInProgress, ContactStatusResolved}

// ValidContactRole reports whether role is one of the predefined options.
func ValidContactRole(role string) bool {
	for _, v := range ContactRoles {
		if role == v {
			return true
		}
	}
	return false
}

// ValidContactStatus reports whether status is one of the predefined options.
func ValidContactStatus(status string) bool {
	for _, v := range ContactStatuses {
		if status == v {
			return true
		}
	}
	return false
}

// ContactMessage is an inbound message from the portfolio contact form.
type ContactMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FirstName   string    `gorm:"size:100;not null" json:"first_name"`
	LastName    string    `gorm:"size:100" json:"last_name"`
	Email       string    `gorm:"size:255;not null" json:"email"`
	PhoneNumber string    `gorm:"size:32" json:"phone_number"`
	Role        string    `gorm:"size:50;not null" json:"role"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	IsRead      bool      `gorm:"default:false" json:"is_read"`
	Status      string    `gorm:"size:20;not null;default:'new'" json:"status"`
	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submitted_at"`
}
