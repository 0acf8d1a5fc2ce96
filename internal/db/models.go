package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents a signed-in account, created on first successful login.
type User struct {
	Email     string
	CreatedAt time.Time
}

// Playlist is the local record of a remote playlist built for a user.
// Duplicates on (Email, Name) are allowed; there is no foreign key to users.
type Playlist struct {
	ID        uuid.UUID
	Email     string
	Name      string
	URL       string
	CreatedAt time.Time
}

// AnalyticsEvent records the category bucket of one processed song line.
type AnalyticsEvent struct {
	Email    string
	Category string
}
