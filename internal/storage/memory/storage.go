package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pjessen/partywords/internal/model"
	"github.com/pjessen/partywords/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	hosts         map[model.UserID]*model.HostAccount
	usernameIndex map[string]model.UserID
	wordPacks     map[string]*model.WordPack
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		hosts:         make(map[model.UserID]*model.HostAccount),
		usernameIndex: make(map[string]model.UserID),
		wordPacks:     make(map[string]*model.WordPack),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Host account operations

func (s *Storage) SaveHost(ctx context.Context, host *model.HostAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hosts[host.UserID] = host
	s.usernameIndex[host.Username] = host.UserID
	return nil
}

func (s *Storage) GetHost(ctx context.Context, id model.UserID) (*model.HostAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	host, ok := s.hosts[id]
	if !ok {
		return nil, model.ErrHostNotFound
	}
	return host, nil
}

func (s *Storage) GetHostByUsername(ctx context.Context, username string) (*model.HostAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrHostNotFound
	}
	host, ok := s.hosts[id]
	if !ok {
		return nil, model.ErrHostNotFound
	}
	return host, nil
}

// Word pack operations

func (s *Storage) SaveWordPack(ctx context.Context, pack *model.WordPack) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wordPacks[pack.Name] = pack
	return nil
}

func (s *Storage) GetWordPack(ctx context.Context, name string) (*model.WordPack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pack, ok := s.wordPacks[name]
	if !ok {
		return nil, model.ErrWordPackNotFound
	}
	return pack, nil
}

func (s *Storage) ListWordPacks(ctx context.Context) ([]*model.WordPack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	packs := make([]*model.WordPack, 0, len(s.wordPacks))
	for _, p := range s.wordPacks {
		packs = append(packs, p)
	}
	sort.Slice(packs, func(i, j int) bool {
		return packs[i].Name < packs[j].Name
	})
	return packs, nil
}

func (s *Storage) DeleteWordPack(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.wordPacks, name)
	return nil
}
