package party

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pjessen/partywords/internal/dependencies/mocks"
	"github.com/pjessen/partywords/internal/model"
	"github.com/pjessen/partywords/internal/testutil"
)

type RegistrySuite struct {
	suite.Suite
	clock    *mocks.MockClock
	random   *mocks.MockRandom
	registry *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.registry = NewRegistry(s.clock, s.random, testutil.NopLogger())
}

func (s *RegistrySuite) host() model.Member {
	return model.Member{UserID: "host-1", Username: "Host"}
}

func (s *RegistrySuite) TestCreatePartyDefaults() {
	s.random.QueueString("ABC123")
	p, err := s.registry.CreateParty(s.host())
	s.Require().NoError(err)

	s.Equal(model.PartyCode("ABC123"), p.Code)
	s.Equal(model.UserID("host-1"), p.HostID)
	s.Equal(model.PartyStatusLobby, p.Status)
	s.Equal(model.DefaultSettings(), p.Settings)
	s.Nil(p.Game)

	// The host starts unassigned
	s.Require().Len(p.Unassigned, 1)
	s.Equal(model.RoleUnassigned, p.Unassigned[0].Role)
	s.Empty(p.Red.Spymasters)
	s.Empty(p.Blue.Spymasters)
}

func (s *RegistrySuite) TestCreatePartyRegeneratesCollidingCodes() {
	s.random.QueueString("SAME01", "SAME01", "OTHER2")

	first, err := s.registry.CreateParty(s.host())
	s.Require().NoError(err)
	second, err := s.registry.CreateParty(model.Member{UserID: "host-2"})
	s.Require().NoError(err)

	s.Equal(model.PartyCode("SAME01"), first.Code)
	s.Equal(model.PartyCode("OTHER2"), second.Code)
	s.Equal(2, s.registry.Count())
}

func (s *RegistrySuite) TestWithPartyUnknownCode() {
	err := s.registry.WithParty("NOPE00", func(p *model.Party) error { return nil })
	s.ErrorIs(err, model.ErrPartyNotFound)
}

func (s *RegistrySuite) TestWithPartyUpdatesTimestampOnSuccess() {
	s.random.QueueString("ABC123")
	p, err := s.registry.CreateParty(s.host())
	s.Require().NoError(err)
	created := p.UpdatedAt

	s.clock.Advance(time.Minute)
	err = s.registry.WithParty(p.Code, func(p *model.Party) error { return nil })
	s.Require().NoError(err)

	err = s.registry.WithParty(p.Code, func(p *model.Party) error {
		s.Equal(created.Add(time.Minute), p.UpdatedAt)
		return nil
	})
	s.Require().NoError(err)
}

func (s *RegistrySuite) TestDeleteFiresHookAndForgetsParty() {
	s.random.QueueString("ABC123")
	p, err := s.registry.CreateParty(s.host())
	s.Require().NoError(err)

	var deleted model.PartyCode
	s.registry.SetOnDelete(func(code model.PartyCode) { deleted = code })

	s.registry.Delete(p.Code)

	s.Equal(p.Code, deleted)
	s.False(s.registry.Exists(p.Code))
	err = s.registry.WithParty(p.Code, func(p *model.Party) error { return nil })
	s.ErrorIs(err, model.ErrPartyNotFound)
}

func (s *RegistrySuite) TestSweepCollectsExpiredEmptyParties() {
	s.registry.SetGracePeriod(10 * time.Minute)

	s.random.QueueString("EMPTY1", "BUSY01")
	empty, err := s.registry.CreateParty(s.host())
	s.Require().NoError(err)
	busy, err := s.registry.CreateParty(model.Member{UserID: "host-2"})
	s.Require().NoError(err)

	s.registry.NoteRoomEmpty(empty.Code)
	s.registry.NoteRoomOccupied(busy.Code)

	// Under the grace period nothing is collected
	s.clock.Advance(9 * time.Minute)
	s.Empty(s.registry.Sweep())

	s.clock.Advance(2 * time.Minute)
	swept := s.registry.Sweep()
	s.Equal([]model.PartyCode{empty.Code}, swept)
	s.False(s.registry.Exists(empty.Code))
	s.True(s.registry.Exists(busy.Code))
}

func (s *RegistrySuite) TestReoccupiedRoomIsNotSwept() {
	s.registry.SetGracePeriod(10 * time.Minute)
	s.random.QueueString("ABC123")
	p, err := s.registry.CreateParty(s.host())
	s.Require().NoError(err)

	s.registry.NoteRoomEmpty(p.Code)
	s.clock.Advance(5 * time.Minute)
	s.registry.NoteRoomOccupied(p.Code)
	s.clock.Advance(20 * time.Minute)

	s.Empty(s.registry.Sweep())
	s.True(s.registry.Exists(p.Code))
}
