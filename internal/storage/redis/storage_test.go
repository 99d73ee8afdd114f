package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/pjessen/partywords/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	client := goredis.NewClient(&goredis.Options{Addr: s.mini.Addr()})
	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	s.storage.Close()
}

func (s *StorageSuite) host(id model.UserID, username string) *model.HostAccount {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &model.HostAccount{
		UserID:       id,
		Username:     username,
		PasswordHash: "$2a$10$fake",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (s *StorageSuite) TestSaveAndGetHost() {
	h := s.host("user-1", "alice")
	s.Require().NoError(s.storage.SaveHost(s.ctx, h))

	got, err := s.storage.GetHost(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(h, got)
}

func (s *StorageSuite) TestGetHostNotFound() {
	_, err := s.storage.GetHost(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrHostNotFound)
}

func (s *StorageSuite) TestGetHostByUsername() {
	s.Require().NoError(s.storage.SaveHost(s.ctx, s.host("user-1", "alice")))

	got, err := s.storage.GetHostByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), got.UserID)

	_, err = s.storage.GetHostByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrHostNotFound)
}

func (s *StorageSuite) TestWordPackRoundTrip() {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pack := &model.WordPack{
		Name:      "animals",
		OwnerID:   "user-1",
		Words:     []string{"cat", "dog"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Require().NoError(s.storage.SaveWordPack(s.ctx, pack))

	got, err := s.storage.GetWordPack(s.ctx, "animals")
	s.Require().NoError(err)
	s.Equal(pack, got)
}

func (s *StorageSuite) TestGetWordPackNotFound() {
	_, err := s.storage.GetWordPack(s.ctx, "nope")
	s.ErrorIs(err, model.ErrWordPackNotFound)
}

func (s *StorageSuite) TestListWordPacksSorted() {
	for _, name := range []string{"zebra", "animals", "middle"} {
		s.Require().NoError(s.storage.SaveWordPack(s.ctx, &model.WordPack{
			Name:  name,
			Words: []string{"w"},
		}))
	}

	packs, err := s.storage.ListWordPacks(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(packs, 3)
	s.Equal("animals", packs[0].Name)
	s.Equal("middle", packs[1].Name)
	s.Equal("zebra", packs[2].Name)
}

func (s *StorageSuite) TestListSkipsStaleIndexEntries() {
	s.Require().NoError(s.storage.SaveWordPack(s.ctx, &model.WordPack{Name: "animals", Words: []string{"cat"}}))
	s.Require().NoError(s.storage.SaveWordPack(s.ctx, &model.WordPack{Name: "plants", Words: []string{"fern"}}))

	// Drop the value but leave the index entry behind
	s.mini.Del(wordPackKey("animals"))

	packs, err := s.storage.ListWordPacks(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(packs, 1)
	s.Equal("plants", packs[0].Name)
}

func (s *StorageSuite) TestDeleteWordPack() {
	s.Require().NoError(s.storage.SaveWordPack(s.ctx, &model.WordPack{Name: "animals", Words: []string{"cat"}}))
	s.Require().NoError(s.storage.DeleteWordPack(s.ctx, "animals"))

	_, err := s.storage.GetWordPack(s.ctx, "animals")
	s.ErrorIs(err, model.ErrWordPackNotFound)

	packs, err := s.storage.ListWordPacks(s.ctx)
	s.Require().NoError(err)
	s.Empty(packs)
}
