package entity

import (
	"fmt"
	"strings"
	"time"
)

// NotificationRecord document fields.
const (
	NotificationFieldUserID    = "userId"
	NotificationFieldTitle     = "title"
	NotificationFieldMessage   = "message"
	NotificationFieldType      = "type"
	NotificationFieldRead      = "read"
	NotificationFieldCreatedAt = "createdAt"
)

// NotificationType tags the purpose of a notification record.
type NotificationType string

const (
	// NotificationTypeWelcome is emitted once per account creation.
	NotificationTypeWelcome NotificationType = "welcome"
)

const welcomeTitle = "Welcome to MarketBridge!"

// NotificationRecord is an in-app notification addressed to one account.
// Only the Read flag changes after creation, and not by this service.
type NotificationRecord struct {
	ID        string           `json:"id" firestore:"-"`
	UserID    string           `json:"userId" firestore:"userId"`
	Title     string           `json:"title" firestore:"title"`
	Message   string           `json:"message" firestore:"message"`
	Type      NotificationType `json:"type" firestore:"type"`
	Read      bool             `json:"read" firestore:"read"`
	CreatedAt *time.Time       `json:"createdAt,omitempty" firestore:"createdAt,omitempty"`
}

// WelcomeNotificationID is the deterministic key of an account's welcome record.
func WelcomeNotificationID(accountKey string) string {
	return "welcome_" + accountKey
}

// NewWelcomeNotification builds the welcome record for a freshly created account.
func NewWelcomeNotification(accountKey, displayName string) *NotificationRecord {
	greeting := "Welcome!"
	if name := strings.TrimSpace(displayName); name != "" {
		greeting = fmt.Sprintf("Welcome %s!", name)
	}

	return &NotificationRecord{
		ID:      WelcomeNotificationID(accountKey),
		UserID:  accountKey,
		Title:   welcomeTitle,
		Message: greeting + " Start exploring fresh produce from local farmers.",
		Type:    NotificationTypeWelcome,
		Read:    false,
	}
}
