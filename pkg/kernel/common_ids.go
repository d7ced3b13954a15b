package kernel

import "github.com/google/uuid"

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

// GenerateID returns a fresh random identifier suitable for any of the ID types
func GenerateID() string {
	return uuid.NewString()
}
