package redis

import (
	"fmt"

	"github.com/pjessen/partywords/internal/model"
)

// Key prefix for all stored data
const keyPrefix = "partywords"

// hostKey returns the Redis key for a HostAccount
func hostKey(id model.UserID) string {
	return fmt.Sprintf("%s:host:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// wordPackKey returns the Redis key for a WordPack
func wordPackKey(name string) string {
	return fmt.Sprintf("%s:wordpack:%s", keyPrefix, name)
}

// wordPackIndexKey returns the Redis key for the SET of word pack names
func wordPackIndexKey() string {
	return fmt.Sprintf("%s:idx:wordpacks", keyPrefix)
}
