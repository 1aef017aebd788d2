package domain

import "time"

// Durable storage keys.
const (
	KeyUsers    = "users"
	KeySession  = "user"
	KeyLanguage = "language"

	profileImagePrefix = "profile_image_"
)

// ProfileImageKey is the storage key of the avatar for userID.
func ProfileImageKey(userID string) string {
	return profileImagePrefix + userID
}

// StorageChange is broadcast after a durable key was rewritten so that other
// views and instances can re-read it.
type StorageChange struct {
	Key string    `json:"key"`
	At  time.Time `json:"at"`
}
