package model

import "time"

// Contact submission statuses.
const (
	ContactPending  = "pending"
	ContactReplied  = "replied"
	ContactArchived = "archived"
)

// ContactStatuses lists every valid contact submission status.
var ContactStatuses = []string{ContactPending, ContactReplied, ContactArchived}

// ContactSubmission is a message sent through the public contact form.
type ContactSubmission struct {
	Base
	SoftDelete
	Name      string     `json:"name" gorm:"not null"`
	Email     string     `json:"email" gorm:"type:varchar(255);not null;index"`
	Phone     string     `json:"phone"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message" gorm:"not null"`
	Status    string     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	IPAddress string     `json:"ip_address" gorm:"type:varchar(64)"`
	RepliedAt *time.Time `json:"replied_at"`
}

// Newsletter subscription statuses.
const (
	NewsletterSubscribed   = "subscribed"
	NewsletterUnsubscribed = "unsubscribed"
)

// NewsletterSubscription is one email address on the mailing list.
type NewsletterSubscription struct {
	Base
	SoftDelete
	Email            string     `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Status           string     `json:"status" gorm:"type:varchar(20);not null;default:'subscribed';index"`
	UnsubscribeToken string     `json:"-" gorm:"type:varchar(64);not null;uniqueIndex"`
	SubscribedAt     time.Time  `json:"subscribed_at"`
	UnsubscribedAt   *time.Time `json:"unsubscribed_at"`
}
