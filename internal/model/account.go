package model

import "time"

// HostAccount is a registered host identity.
// Hosts are the elevated identity class allowed to create parties.
// Stored separately from live party membership.
type HostAccount struct {
	UserID       UserID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WordPack is a named reusable custom word list saved by a host
type WordPack struct {
	Name      string
	OwnerID   UserID
	Words     []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
