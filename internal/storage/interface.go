package storage

import (
	"context"

	"github.com/pjessen/partywords/internal/model"
)

// Storage defines the interface for data persistence.
// Live parties are deliberately absent: they are transient, owned by the
// in-memory party registry, and die with the process.
type Storage interface {
	// Host account operations
	SaveHost(ctx context.Context, host *model.HostAccount) error
	GetHost(ctx context.Context, id model.UserID) (*model.HostAccount, error)
	GetHostByUsername(ctx context.Context, username string) (*model.HostAccount, error)

	// Word pack operations
	SaveWordPack(ctx context.Context, pack *model.WordPack) error
	GetWordPack(ctx context.Context, name string) (*model.WordPack, error)
	ListWordPacks(ctx context.Context) ([]*model.WordPack, error)
	DeleteWordPack(ctx context.Context, name string) error
}
