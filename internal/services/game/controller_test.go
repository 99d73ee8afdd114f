package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pjessen/partywords/internal/dependencies/mocks"
	"github.com/pjessen/partywords/internal/dependencies/random"
	"github.com/pjessen/partywords/internal/model"
	"github.com/pjessen/partywords/internal/services/board"
	"github.com/pjessen/partywords/internal/services/party"
	"github.com/pjessen/partywords/internal/services/timer"
	"github.com/pjessen/partywords/internal/services/words"
	"github.com/pjessen/partywords/internal/storage/memory"
	"github.com/pjessen/partywords/internal/testutil"
)

const (
	hostID model.UserID = "host-1"
	redOp  model.UserID = "red-op"
	blueSM model.UserID = "blue-sm"
	blueOp model.UserID = "blue-op"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	registry   *party.Registry
	generator  *board.Generator
	scheduler  *timer.Scheduler
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
	code       model.PartyCode
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.registry = party.NewRegistry(s.clock, s.random, logger)
	s.generator = board.NewGenerator(words.New(s.storage, s.clock, logger), s.random, logger)
	s.scheduler = timer.NewScheduler(time.Second, logger)
	s.controller = NewController(s.registry, s.generator, s.scheduler, s.clock, s.random, logger)
	s.ctx = context.Background()

	s.random.QueueString("PARTY1")
	p, err := s.registry.CreateParty(model.Member{UserID: hostID, Username: "Host"})
	s.Require().NoError(err)
	s.code = p.Code

	// Seat the host as red spymaster and fill out both teams
	err = s.registry.WithParty(s.code, func(p *model.Party) error {
		p.Unassigned = nil
		p.Red.Spymasters = []model.Member{{UserID: hostID, Username: "Host", Role: model.RoleSpymaster}}
		p.Red.Operatives = []model.Member{{UserID: redOp, Username: "RedOp", Role: model.RoleOperative}}
		p.Blue.Spymasters = []model.Member{{UserID: blueSM, Username: "BlueSM", Role: model.RoleSpymaster}}
		p.Blue.Operatives = []model.Member{{UserID: blueOp, Username: "BlueOp", Role: model.RoleOperative}}
		return nil
	})
	s.Require().NoError(err)
}

// startGame starts a game with the given tweaks applied to the default
// settings first
func (s *ControllerSuite) startGame(tweak func(st *model.Settings)) {
	if tweak != nil {
		err := s.registry.WithParty(s.code, func(p *model.Party) error {
			tweak(&p.Settings)
			return nil
		})
		s.Require().NoError(err)
	}
	s.Require().NoError(s.controller.StartGame(s.ctx, s.code, hostID))
	s.random.Reset()
}

// game returns the current game state
func (s *ControllerSuite) game() *model.GameState {
	var g *model.GameState
	err := s.registry.WithParty(s.code, func(p *model.Party) error {
		g = p.Game
		return nil
	})
	s.Require().NoError(err)
	s.Require().NotNil(g)
	return g
}

func (s *ControllerSuite) status() model.PartyStatus {
	var st model.PartyStatus
	err := s.registry.WithParty(s.code, func(p *model.Party) error {
		st = p.Status
		return nil
	})
	s.Require().NoError(err)
	return st
}

// tileIndex finds an unrevealed, non-lucky tile with the given owner
func (s *ControllerSuite) tileIndex(owner model.TileOwner) int {
	g := s.game()
	for i, t := range g.Board {
		if t.Owner == owner && !t.Revealed && !t.Lucky {
			return i
		}
	}
	s.FailNow("no unrevealed tile with owner " + string(owner))
	return -1
}

// toOperativeTurn gives a hint so red operatives may act
func (s *ControllerSuite) toOperativeTurn(count int) {
	s.Require().NoError(s.controller.GiveHint(s.code, hostID, "ocean", count))
}

// StartGame tests

func (s *ControllerSuite) TestStartGameInitialState() {
	s.startGame(nil)

	g := s.game()
	s.Equal(model.PartyStatusInGame, s.status())
	s.Len(g.Board, 25)
	s.Equal(model.TeamRed, g.Turn.Team)
	s.Equal(model.TurnRoleSpymaster, g.Turn.Role)
	s.Nil(g.Turn.Hint)
	s.Equal(8, g.Remaining[model.TeamRed])
	s.Equal(8, g.Remaining[model.TeamBlue])
	s.Nil(g.Crazy)
	s.Nil(g.Timer)
	s.Empty(g.Logs)
}

func (s *ControllerSuite) TestStartGameBoardQuotas() {
	s.startGame(nil)

	counts := map[model.TileOwner]int{}
	seen := map[string]bool{}
	for _, t := range s.game().Board {
		counts[t.Owner]++
		s.False(seen[t.Word], "duplicate word %q", t.Word)
		seen[t.Word] = true
	}
	s.Equal(8, counts[model.OwnerRed])
	s.Equal(8, counts[model.OwnerBlue])
	s.Equal(1, counts[model.OwnerAssassin])
	s.Equal(8, counts[model.OwnerNeutral])
}

func (s *ControllerSuite) TestStartGameRequiresHost() {
	err := s.controller.StartGame(s.ctx, s.code, redOp)
	s.ErrorIs(err, model.ErrNotHost)
}

func (s *ControllerSuite) TestStartGameRequiresLobby() {
	s.startGame(nil)
	err := s.controller.StartGame(s.ctx, s.code, hostID)
	s.ErrorIs(err, model.ErrInvalidState)
}

func (s *ControllerSuite) TestStartGameRejectsSettingsChangedDuringGeneration() {
	// Board generation runs outside the party guard. Flip the mode while
	// the generator is shuffling; the commit must notice and refuse to
	// pair the classic board with crazy rules.
	logger := testutil.NopLogger()
	hooked := &shuffleHook{Random: s.random, fn: func() {
		err := s.registry.WithParty(s.code, func(p *model.Party) error {
			p.Settings.Mode = model.ModeCrazy
			return nil
		})
		s.Require().NoError(err)
	}}
	generator := board.NewGenerator(words.New(s.storage, s.clock, logger), hooked, logger)
	controller := NewController(s.registry, generator, s.scheduler, s.clock, s.random, logger)

	err := controller.StartGame(s.ctx, s.code, hostID)
	s.ErrorIs(err, model.ErrInvalidState)
	s.Equal(model.PartyStatusLobby, s.status())

	// The updated settings stand and a retry starts cleanly
	s.Require().NoError(s.controller.StartGame(s.ctx, s.code, hostID))
	s.NotNil(s.game().Crazy)
}

// shuffleHook runs fn before the first Intn call and then delegates
type shuffleHook struct {
	random.Random
	once sync.Once
	fn   func()
}

func (h *shuffleHook) Intn(n int) int {
	h.once.Do(h.fn)
	return h.Random.Intn(n)
}

func (s *ControllerSuite) TestStartGameCrazyMarksOneLuckyNeutral() {
	s.startGame(func(st *model.Settings) {
		st.Mode = model.ModeCrazy
	})

	g := s.game()
	s.NotNil(g.Crazy)
	lucky := 0
	for _, t := range g.Board {
		if t.Lucky {
			lucky++
			s.Equal(model.OwnerNeutral, t.Owner)
		}
	}
	s.Equal(1, lucky)
}

// GiveHint tests

func (s *ControllerSuite) TestGiveHintGrantsCountPlusOneGuesses() {
	s.startGame(nil)
	s.Require().NoError(s.controller.GiveHint(s.code, hostID, "ocean", 2))

	g := s.game()
	s.Equal(model.TurnRoleOperative, g.Turn.Role)
	s.Require().NotNil(g.Turn.Hint)
	s.Equal("ocean", g.Turn.Hint.Word)
	s.Equal(2, g.Turn.Hint.Count)
	s.Equal(3, g.Turn.Hint.RemainingGuesses)

	s.Require().Len(g.Logs, 1)
	s.Equal(model.LogHint, g.Logs[0].Type)
	s.Equal(model.TeamRed, g.Logs[0].Team)
	s.Equal("ocean", g.Logs[0].HintWord)
}

func (s *ControllerSuite) TestGiveHintRejectsWrongTeam() {
	s.startGame(nil)
	err := s.controller.GiveHint(s.code, blueSM, "ocean", 2)
	s.ErrorIs(err, model.ErrNotYourTurn)
}

func (s *ControllerSuite) TestGiveHintRejectsOperative() {
	s.startGame(nil)
	err := s.controller.GiveHint(s.code, redOp, "ocean", 2)
	s.ErrorIs(err, model.ErrWrongRole)
}

func (s *ControllerSuite) TestGiveHintRejectsDuringOperativePhase() {
	s.startGame(nil)
	s.toOperativeTurn(2)
	err := s.controller.GiveHint(s.code, hostID, "river", 1)
	s.ErrorIs(err, model.ErrWrongRole)
}

// RevealTile tests

func (s *ControllerSuite) TestRevealOwnTileConsumesOneGuess() {
	s.startGame(nil)
	s.toOperativeTurn(2)

	idx := s.tileIndex(model.OwnerRed)
	s.Require().NoError(s.controller.RevealTile(s.code, redOp, idx))

	g := s.game()
	s.True(g.Board[idx].Revealed)
	s.Equal(7, g.Remaining[model.TeamRed])
	s.Equal(2, g.Turn.Hint.RemainingGuesses)
	s.Equal(model.TeamRed, g.Turn.Team)

	last := g.Logs[len(g.Logs)-1]
	s.Equal(model.LogGuess, last.Type)
	s.True(last.Success)
	s.Equal(model.OwnerRed, last.Owner)
}

func (s *ControllerSuite) TestRevealExhaustingGuessesSwitchesTurn() {
	s.startGame(nil)
	s.toOperativeTurn(0) // one guess

	s.Require().NoError(s.controller.RevealTile(s.code, redOp, s.tileIndex(model.OwnerRed)))

	g := s.game()
	s.Equal(model.TeamBlue, g.Turn.Team)
	s.Equal(model.TurnRoleSpymaster, g.Turn.Role)
	s.Nil(g.Turn.Hint)
	s.Empty(g.Turn.Suspicions)
}

func (s *ControllerSuite) TestRevealOpponentTileSwitchesTurn() {
	s.startGame(nil)
	s.toOperativeTurn(3)

	idx := s.tileIndex(model.OwnerBlue)
	s.Require().NoError(s.controller.RevealTile(s.code, redOp, idx))

	g := s.game()
	s.Equal(7, g.Remaining[model.TeamBlue])
	s.Equal(model.TeamBlue, g.Turn.Team)
	s.Equal(model.TurnRoleSpymaster, g.Turn.Role)
	s.False(g.Logs[len(g.Logs)-1].Success)
}

func (s *ControllerSuite) TestRevealNeutralSwitchesTurn() {
	s.startGame(nil)
	s.toOperativeTurn(3)

	s.Require().NoError(s.controller.RevealTile(s.code, redOp, s.tileIndex(model.OwnerNeutral)))

	g := s.game()
	s.Equal(model.TeamBlue, g.Turn.Team)
	s.Equal(8, g.Remaining[model.TeamRed])
	s.Equal(8, g.Remaining[model.TeamBlue])
}

func (s *ControllerSuite) TestRevealAssassinEndsGame() {
	s.startGame(nil)
	s.toOperativeTurn(3)

	s.Require().NoError(s.controller.RevealTile(s.code, redOp, s.tileIndex(model.OwnerAssassin)))

	g := s.game()
	s.Equal(model.TeamBlue, g.Winner)
	s.Equal(model.PartyStatusGameOver, s.status())

	// No further moves are accepted
	err := s.controller.RevealTile(s.code, redOp, s.tileIndex(model.OwnerRed))
	s.ErrorIs(err, model.ErrInvalidState)
}

func (s *ControllerSuite) TestRevealLastTeamTileWinsGame() {
	s.startGame(nil)

	// Leave red a single unrevealed tile
	err := s.registry.WithParty(s.code, func(p *model.Party) error {
		remaining := 0
		for i := range p.Game.Board {
			t := &p.Game.Board[i]
			if t.Owner == model.OwnerRed {
				if remaining > 0 {
					t.Revealed = true
				}
				remaining++
			}
		}
		p.Game.Remaining[model.TeamRed] = 1
		return nil
	})
	s.Require().NoError(err)

	s.toOperativeTurn(1)
	s.Require().NoError(s.controller.RevealTile(s.code, redOp, s.tileIndex(model.OwnerRed)))

	g := s.game()
	s.Equal(model.TeamRed, g.Winner)
	s.Equal(model.PartyStatusGameOver, s.status())
}

func (s *ControllerSuite) TestRevealRejectsAlreadyRevealed() {
	s.startGame(nil)
	s.toOperativeTurn(3)

	idx := s.tileIndex(model.OwnerRed)
	s.Require().NoError(s.controller.RevealTile(s.code, redOp, idx))
	err := s.controller.RevealTile(s.code, redOp, idx)
	s.ErrorIs(err, model.ErrAlreadyRevealed)

	// Rejection left the turn state alone
	s.Equal(2, s.game().Turn.Hint.RemainingGuesses)
}

func (s *ControllerSuite) TestRevealRejectsOutOfRangeIndex() {
	s.startGame(nil)
	s.toOperativeTurn(1)
	s.ErrorIs(s.controller.RevealTile(s.code, redOp, -1), model.ErrInvalidTile)
	s.ErrorIs(s.controller.RevealTile(s.code, redOp, 25), model.ErrInvalidTile)
}

func (s *ControllerSuite) TestRevealRejectsBeforeHint() {
	s.startGame(nil)
	err := s.controller.RevealTile(s.code, redOp, 0)
	s.ErrorIs(err, model.ErrWrongRole)
}

func (s *ControllerSuite) TestRevealRejectsWrongTeam() {
	s.startGame(nil)
	s.toOperativeTurn(1)
	err := s.controller.RevealTile(s.code, blueOp, s.tileIndex(model.OwnerRed))
	s.ErrorIs(err, model.ErrNotYourTurn)
}

func (s *ControllerSuite) TestRevealRejectsSpymaster() {
	s.startGame(nil)
	s.toOperativeTurn(1)
	err := s.controller.RevealTile(s.code, hostID, s.tileIndex(model.OwnerRed))
	s.ErrorIs(err, model.ErrWrongRole)
}

// Crazy mode reveal tests

func (s *ControllerSuite) TestCrazyNeutralDoublesKeepsTurn() {
	s.startGame(func(st *model.Settings) {
		st.Mode = model.ModeCrazy
	})
	s.toOperativeTurn(3)

	s.random.QueueIntn(2, 2) // dice 3,3
	s.Require().NoError(s.controller.RevealTile(s.code, redOp, s.tileIndex(model.OwnerNeutral)))

	g := s.game()
	s.Equal(model.TeamRed, g.Turn.Team)
	s.Equal(model.TurnRoleOperative, g.Turn.Role)
	s.Equal(3, g.Turn.Hint.RemainingGuesses)

	last := g.Logs[len(g.Logs)-1]
	s.Require().NotNil(last.Dice)
	s.True(last.Dice.Doubles())
}

func (s *ControllerSuite) TestCrazyNeutralNonDoublesSwitchesTurn() {
	s.startGame(func(st *model.Settings) {
		st.Mode = model.ModeCrazy
	})
	s.toOperativeTurn(3)

	s.random.QueueIntn(0, 3) // dice 1,4
	s.Require().NoError(s.controller.RevealTile(s.code, redOp, s.tileIndex(model.OwnerNeutral)))

	g := s.game()
	s.Equal(model.TeamBlue, g.Turn.Team)
	s.Equal(model.TurnRoleSpymaster, g.Turn.Role)
}

func (s *ControllerSuite) TestCrazyLuckyRevealDrawsBonusForTeam() {
	s.startGame(func(st *model.Settings) {
		st.Mode = model.ModeCrazy
	})
	s.toOperativeTurn(3)

	luckyIdx := s.game().LuckyIndex()
	s.Require().GreaterOrEqual(luckyIdx, 0)

	s.random.QueueIntn(0, 3, 0, 0) // dice 1,4; bonus pick; lucky reassign
	s.Require().NoError(s.controller.RevealTile(s.code, redOp, luckyIdx))

	g := s.game()
	bonus := g.Crazy.HiddenInfo[model.TeamRed].BonusTile
	s.Require().NotNil(bonus)
	s.NotEqual(luckyIdx, bonus.Index)
	s.False(g.Board[bonus.Index].Revealed)
	s.Equal(g.Board[bonus.Index].Word, bonus.Word)
	s.Equal(g.Board[bonus.Index].Owner, bonus.Owner)
	s.NotEqual(model.OwnerRed, bonus.Owner)
	s.Nil(g.Crazy.HiddenInfo[model.TeamBlue].BonusTile)

	last := g.Logs[len(g.Logs)-1]
	s.Require().NotNil(last.Lucky)
	s.Equal(g.Board[luckyIdx].Word, last.Lucky.Word)
}

func (s *ControllerSuite) TestCrazyLuckyBonusNeverFromOwnTeam() {
	s.startGame(func(st *model.Settings) {
		st.Mode = model.ModeCrazy
	})
	s.toOperativeTurn(3)

	// Leave the lucky neutral and red tiles as the only unrevealed ones
	luckyIdx := s.game().LuckyIndex()
	s.Require().GreaterOrEqual(luckyIdx, 0)
	err := s.registry.WithParty(s.code, func(p *model.Party) error {
		for i := range p.Game.Board {
			t := &p.Game.Board[i]
			if i != luckyIdx && t.Owner != model.OwnerRed {
				t.Revealed = true
			}
		}
		return nil
	})
	s.Require().NoError(err)

	s.random.QueueIntn(2, 2) // dice 3,3
	s.Require().NoError(s.controller.RevealTile(s.code, redOp, luckyIdx))

	// No eligible tile exists, so no bonus is granted
	g := s.game()
	s.Nil(g.Crazy.HiddenInfo[model.TeamRed].BonusTile)
	last := g.Logs[len(g.Logs)-1]
	s.Require().NotNil(last.Lucky)
	s.Nil(last.Lucky.Bonus)
}

func (s *ControllerSuite) TestCrazyLuckyReassignedAfterReveal() {
	s.startGame(func(st *model.Settings) {
		st.Mode = model.ModeCrazy
	})
	s.toOperativeTurn(3)

	luckyIdx := s.game().LuckyIndex()
	s.random.QueueIntn(0, 3, 0, 0)
	s.Require().NoError(s.controller.RevealTile(s.code, redOp, luckyIdx))

	g := s.game()
	next := g.LuckyIndex()
	s.Require().GreaterOrEqual(next, 0)
	s.NotEqual(luckyIdx, next)
	s.Equal(model.OwnerNeutral, g.Board[next].Owner)
	s.False(g.Board[next].Revealed)
}

// Suspicion tests

func (s *ControllerSuite) TestSuspectTileTogglesPerUserAndTile() {
	s.startGame(nil)
	actor := model.Member{UserID: redOp, Username: "RedOp"}

	s.Require().NoError(s.controller.SuspectTile(s.code, actor, 3))
	s.Len(s.game().Turn.Suspicions, 1)

	// Same user, same tile: removed
	s.Require().NoError(s.controller.SuspectTile(s.code, actor, 3))
	s.Empty(s.game().Turn.Suspicions)

	// Different users on the same tile coexist
	other := model.Member{UserID: blueOp, Username: "BlueOp"}
	s.Require().NoError(s.controller.SuspectTile(s.code, actor, 3))
	s.Require().NoError(s.controller.SuspectTile(s.code, other, 3))
	s.Len(s.game().Turn.Suspicions, 2)
}

func (s *ControllerSuite) TestSuspicionsClearedOnTurnSwitch() {
	s.startGame(nil)
	s.toOperativeTurn(0)
	s.Require().NoError(s.controller.SuspectTile(s.code, model.Member{UserID: redOp}, 3))

	s.Require().NoError(s.controller.RevealTile(s.code, redOp, s.tileIndex(model.OwnerRed)))
	s.Empty(s.game().Turn.Suspicions)
}

// Reset tests

func (s *ControllerSuite) TestResetReturnsToLobby() {
	s.startGame(nil)
	err := s.registry.WithParty(s.code, func(p *model.Party) error {
		p.Red.Operatives[0].Ready = true
		return nil
	})
	s.Require().NoError(err)

	s.Require().NoError(s.controller.ResetGame(s.code, hostID))

	s.Equal(model.PartyStatusLobby, s.status())
	err = s.registry.WithParty(s.code, func(p *model.Party) error {
		s.Nil(p.Game)
		p.EachMember(func(m *model.Member) {
			s.False(m.Ready)
		})
		return nil
	})
	s.Require().NoError(err)
}

func (s *ControllerSuite) TestResetRequiresHost() {
	s.startGame(nil)
	s.ErrorIs(s.controller.ResetGame(s.code, redOp), model.ErrNotHost)
}

// Timer tests

func (s *ControllerSuite) enableTimer() {
	s.startGame(func(st *model.Settings) {
		st.Timer = model.TimerSettings{
			Enabled:          true,
			SpymasterSeconds: 120,
			OperativeSeconds: 60,
		}
	})
}

func (s *ControllerSuite) TestStartGameArmsSpymasterTimer() {
	s.enableTimer()

	g := s.game()
	s.Require().NotNil(g.Timer)
	s.Equal(120, g.Timer.SecondsLeft)
	s.Equal(s.clock.Now().Add(120*time.Second), g.Timer.EndAt)
}

func (s *ControllerSuite) TestTickRecomputesSecondsLeft() {
	s.enableTimer()

	s.clock.Advance(30 * time.Second)
	s.True(s.controller.TickTimer(s.code))
	s.Equal(90, s.game().Timer.SecondsLeft)

	// Partial seconds round up
	s.clock.Advance(500 * time.Millisecond)
	s.True(s.controller.TickTimer(s.code))
	s.Equal(90, s.game().Timer.SecondsLeft)
}

func (s *ControllerSuite) TestExpirySwitchesToOpponentSpymaster() {
	s.enableTimer()
	s.toOperativeTurn(2)

	g := s.game()
	s.Equal(60, g.Timer.SecondsLeft)

	s.clock.Advance(61 * time.Second)
	s.True(s.controller.TickTimer(s.code))

	g = s.game()
	s.Equal(model.TeamBlue, g.Turn.Team)
	s.Equal(model.TurnRoleSpymaster, g.Turn.Role)
	s.Nil(g.Turn.Hint)
	s.Equal(120, g.Timer.SecondsLeft)
	s.Equal(s.clock.Now().Add(120*time.Second), g.Timer.EndAt)
}

func (s *ControllerSuite) TestHintReplacesTimerWindow() {
	s.enableTimer()
	s.clock.Advance(100 * time.Second)
	s.toOperativeTurn(1)

	g := s.game()
	s.Equal(60, g.Timer.SecondsLeft)
	s.Equal(s.clock.Now().Add(60*time.Second), g.Timer.EndAt)
}

func (s *ControllerSuite) TestTickStopsWhenTimerDisabled() {
	s.startGame(nil)
	s.False(s.controller.TickTimer(s.code))
}

func (s *ControllerSuite) TestTickStopsWhenPartyGone() {
	s.enableTimer()
	s.registry.Delete(s.code)
	s.False(s.controller.TickTimer(s.code))
}
