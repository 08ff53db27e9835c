package storage

import (
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/habitboard/internal/constants"
)

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

// NewFriendCode returns a random upper-case hex code of
// constants.FriendCodeLength characters.
func NewFriendCode() string {
	id := uuid.New()
	return strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:constants.FriendCodeLength])
}

// FriendCodeAttempts bounds the retries when a generated code collides.
const FriendCodeAttempts = 5
