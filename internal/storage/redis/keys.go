package redis

import (
	"fmt"

	"github.com/mcoot/qrclock-gateway/internal/model"
)

// Key prefix for all gateway data
const keyPrefix = "qrclock"

// adminKey returns the Redis key for an admin hash
func adminKey(id model.AdminID) string {
	return fmt.Sprintf("%s:admin:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the SET of admin IDs using a username
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// Hash fields of an admin record
const (
	fieldID       = "admin_id"
	fieldName     = "admin_name"
	fieldUsername = "username"
	fieldPassword = "password"
	fieldPIN      = "pin"
)
