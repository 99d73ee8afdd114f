package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pjessen/partywords/internal/dependencies/mocks"
	"github.com/pjessen/partywords/internal/model"
	"github.com/pjessen/partywords/internal/storage/memory"
	"github.com/pjessen/partywords/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.service = NewService(memory.New(), s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestGuestSession() {
	session, err := s.service.CreateGuestSession("  alice ", "https://avatars/1.png")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.NotEmpty(session.UserID)
	s.Equal("alice", session.Username)
	s.Equal("https://avatars/1.png", session.AvatarURL)
	s.False(session.Host)

	got, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(session, got)
}

func (s *ServiceSuite) TestGuestSessionsAreDistinct() {
	a, err := s.service.CreateGuestSession("alice", "")
	s.Require().NoError(err)
	b, err := s.service.CreateGuestSession("alice", "")
	s.Require().NoError(err)

	s.NotEqual(a.Token, b.Token)
	s.NotEqual(a.UserID, b.UserID)
}

func (s *ServiceSuite) TestGuestRequiresUsername() {
	_, err := s.service.CreateGuestSession("   ", "")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestRegisterAndLogin() {
	host, err := s.service.RegisterHost(s.ctx, "alice", "correct horse", "https://avatars/1.png")
	s.Require().NoError(err)
	s.Equal("alice", host.Username)
	s.NotEqual("correct horse", host.PasswordHash)
	s.Equal(s.clock.Now(), host.CreatedAt)

	session, err := s.service.Login(s.ctx, "alice", "correct horse")
	s.Require().NoError(err)
	s.True(session.Host)
	s.Equal(host.UserID, session.UserID)
	s.Equal("https://avatars/1.png", session.AvatarURL)
}

func (s *ServiceSuite) TestRegisterRejectsShortPassword() {
	_, err := s.service.RegisterHost(s.ctx, "alice", "short", "")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestRegisterRejectsTakenUsername() {
	_, err := s.service.RegisterHost(s.ctx, "alice", "correct horse", "")
	s.Require().NoError(err)

	_, err = s.service.RegisterHost(s.ctx, "alice", "battery staple", "")
	s.ErrorIs(err, ErrUsernameTaken)
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.RegisterHost(s.ctx, "alice", "correct horse", "")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "alice", "battery staple")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownUsername() {
	_, err := s.service.Login(s.ctx, "nobody", "whatever")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestValidateUnknownToken() {
	_, err := s.service.ValidateSession("not-a-token")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestRequireHost() {
	guest, err := s.service.CreateGuestSession("alice", "")
	s.Require().NoError(err)

	_, err = s.service.RequireHost(guest.Token)
	s.ErrorIs(err, ErrNotElevated)

	_, err = s.service.RegisterHost(s.ctx, "bob", "correct horse", "")
	s.Require().NoError(err)
	session, err := s.service.Login(s.ctx, "bob", "correct horse")
	s.Require().NoError(err)

	got, err := s.service.RequireHost(session.Token)
	s.Require().NoError(err)
	s.Equal(session, got)
}

func (s *ServiceSuite) TestRevokeSession() {
	session, err := s.service.CreateGuestSession("alice", "")
	s.Require().NoError(err)

	s.service.RevokeSession(session.Token)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)

	// Revoking again is a no-op
	s.service.RevokeSession(session.Token)
}

func (s *ServiceSuite) TestSessionMember() {
	session, err := s.service.CreateGuestSession("alice", "https://avatars/1.png")
	s.Require().NoError(err)

	m := session.Member()
	s.Equal(session.UserID, m.UserID)
	s.Equal("alice", m.Username)
	s.Equal("https://avatars/1.png", m.AvatarURL)
	s.Equal(model.RoleUnassigned, m.Role)
	s.False(m.Ready)
}
