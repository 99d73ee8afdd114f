package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/pjessen/partywords/internal/dependencies/clock"
	"github.com/pjessen/partywords/internal/dependencies/random"
	"github.com/pjessen/partywords/internal/model"
	"github.com/pjessen/partywords/internal/services/board"
	"github.com/pjessen/partywords/internal/services/party"
	"github.com/pjessen/partywords/internal/services/timer"
)

// Controller drives the turn state machine for in-game parties.
// Every transition validates first and mutates only on success, under the
// party's exclusive guard, so rejected commands leave state untouched.
type Controller struct {
	registry  *party.Registry
	generator *board.Generator
	scheduler *timer.Scheduler
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	registry *party.Registry,
	generator *board.Generator,
	scheduler *timer.Scheduler,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		registry:  registry,
		generator: generator,
		scheduler: scheduler,
		clock:     clock,
		random:    random,
		logger:    logger.With(slog.String("component", "game")),
	}
}

// StartGame builds a board from the party's settings and moves the party
// in-game. Only the host may start, and only from the lobby.
//
// Word resolution may touch storage, so the board is generated before the
// party guard is taken; the commit re-checks that the lobby state still
// holds.
func (c *Controller) StartGame(ctx context.Context, code model.PartyCode, actorID model.UserID) error {
	var settings model.Settings
	err := c.registry.WithParty(code, func(p *model.Party) error {
		if p.HostID != actorID {
			return model.ErrNotHost
		}
		if p.Status != model.PartyStatusLobby {
			return model.ErrInvalidState
		}
		settings = p.Settings
		return nil
	})
	if err != nil {
		return err
	}

	layout, err := c.generator.Generate(ctx, settings)
	if err != nil {
		return err
	}

	timerEnabled := false
	err = c.registry.WithParty(code, func(p *model.Party) error {
		if p.HostID != actorID {
			return model.ErrNotHost
		}
		if p.Status != model.PartyStatusLobby {
			return model.ErrInvalidState
		}
		// The board was generated outside the guard; a settings change
		// that raced in meanwhile would pair it with mismatched rules
		if !p.Settings.Equal(settings) {
			return model.ErrInvalidState
		}

		game := &model.GameState{
			Board: layout.Tiles,
			Turn: model.TurnState{
				Team: model.TeamRed,
				Role: model.TurnRoleSpymaster,
			},
			Remaining: map[model.Team]int{
				model.TeamRed:  layout.RedCount,
				model.TeamBlue: layout.BlueCount,
			},
			Logs: []model.LogEntry{},
		}
		if p.Settings.Mode == model.ModeCrazy {
			game.Crazy = model.NewCrazyState()
		}

		p.Status = model.PartyStatusInGame
		p.Game = game
		c.armTimer(p)
		timerEnabled = p.Settings.Timer.Enabled
		return nil
	})
	if err != nil {
		return err
	}

	if timerEnabled {
		c.scheduler.Start(code)
	}

	c.logger.Info("game started",
		slog.String("code", string(code)),
		slog.Int("board_size", settings.BoardSize),
		slog.String("mode", string(settings.Mode)),
	)
	return nil
}

// GiveHint records the spymaster's clue and hands the turn to the
// operatives with count+1 guesses
func (c *Controller) GiveHint(code model.PartyCode, actorID model.UserID, word string, count int) error {
	if word == "" || count < 0 {
		return model.ErrInvalidState
	}

	return c.registry.WithParty(code, func(p *model.Party) error {
		actor, err := c.actingMember(p, actorID)
		if err != nil {
			return err
		}
		if p.Game.Turn.Role != model.TurnRoleSpymaster {
			return model.ErrWrongRole
		}
		team, _ := p.MemberTeam(actorID)
		if team != p.Game.Turn.Team {
			return model.ErrNotYourTurn
		}
		if actor.Role != model.RoleSpymaster {
			return model.ErrWrongRole
		}

		p.Game.Turn.Role = model.TurnRoleOperative
		p.Game.Turn.Hint = &model.Hint{
			Word:             word,
			Count:            count,
			RemainingGuesses: count + 1,
		}
		p.Game.Logs = append(p.Game.Logs, model.LogEntry{
			Type:      model.LogHint,
			Team:      team,
			Username:  actor.Username,
			HintWord:  word,
			HintCount: count,
		})
		c.armTimer(p)
		return nil
	})
}

// RevealTile resolves an operative's guess against the board
func (c *Controller) RevealTile(code model.PartyCode, actorID model.UserID, index int) error {
	gameOver := false
	err := c.registry.WithParty(code, func(p *model.Party) error {
		actor, err := c.actingMember(p, actorID)
		if err != nil {
			return err
		}
		if p.Game.Turn.Role != model.TurnRoleOperative {
			return model.ErrWrongRole
		}
		team, _ := p.MemberTeam(actorID)
		if team != p.Game.Turn.Team {
			return model.ErrNotYourTurn
		}
		if actor.Role != model.RoleOperative {
			return model.ErrWrongRole
		}
		if index < 0 || index >= len(p.Game.Board) {
			return model.ErrInvalidTile
		}
		tile := &p.Game.Board[index]
		if tile.Revealed {
			return model.ErrAlreadyRevealed
		}

		// Validation done; everything below commits.
		game := p.Game
		crazy := p.Settings.Mode == model.ModeCrazy

		var dice *model.DiceRoll
		if crazy && tile.Owner == model.OwnerNeutral {
			dice = &model.DiceRoll{
				Die1: c.random.Intn(6) + 1,
				Die2: c.random.Intn(6) + 1,
			}
		}

		var lucky *model.LuckyCard
		if crazy && tile.Lucky {
			lucky = &model.LuckyCard{Word: tile.Word}
			if bonus := c.drawBonusTile(game, team, index); bonus != nil {
				lucky.Bonus = bonus
				game.Crazy.HiddenInfo[team].BonusTile = bonus
			}
		}

		game.Logs = append(game.Logs, model.LogEntry{
			Type:     model.LogGuess,
			Team:     team,
			Username: actor.Username,
			Word:     tile.Word,
			Success:  tile.Owner == model.OwnerForTeam(team),
			Owner:    tile.Owner,
			Dice:     dice,
			Lucky:    lucky,
		})

		tile.Revealed = true
		if crazy {
			c.maintainLucky(game)
		}

		if owner, ok := tileTeam(tile.Owner); ok {
			game.Remaining[owner]--
			if game.Remaining[owner] == 0 {
				// All of a team's words found: that team wins
				game.Winner = owner
				p.Status = model.PartyStatusGameOver
				gameOver = true
				return nil
			}
		}

		if tile.Owner == model.OwnerAssassin {
			game.Winner = team.Opponent()
			p.Status = model.PartyStatusGameOver
			gameOver = true
			return nil
		}

		// Doubles on a neutral tile keep the turn, an explicit exception
		// to the wrong-tile turn switch
		if crazy && tile.Owner == model.OwnerNeutral && dice != nil && dice.Doubles() {
			return nil
		}

		if tile.Owner != model.OwnerForTeam(team) {
			c.switchTurn(p)
			return nil
		}

		if game.Turn.Hint != nil {
			game.Turn.Hint.RemainingGuesses--
			if game.Turn.Hint.RemainingGuesses <= 0 {
				c.switchTurn(p)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if gameOver {
		c.scheduler.Stop(code)
		c.logger.Info("game over", slog.String("code", string(code)))
	}
	return nil
}

// SuspectTile toggles the actor's suspicion marker on a tile.
// Applying it twice with the same (user, index) restores the prior state.
func (c *Controller) SuspectTile(code model.PartyCode, actor model.Member, index int) error {
	return c.registry.WithParty(code, func(p *model.Party) error {
		if p.Status != model.PartyStatusInGame || p.Game == nil {
			return model.ErrInvalidState
		}
		if index < 0 || index >= len(p.Game.Board) {
			return model.ErrInvalidTile
		}

		turn := &p.Game.Turn
		for i, s := range turn.Suspicions {
			if s.UserID == actor.UserID && s.TileIndex == index {
				turn.Suspicions = append(turn.Suspicions[:i], turn.Suspicions[i+1:]...)
				return nil
			}
		}
		turn.Suspicions = append(turn.Suspicions, model.Suspicion{
			UserID:    actor.UserID,
			Username:  actor.Username,
			AvatarURL: actor.AvatarURL,
			TileIndex: index,
		})
		return nil
	})
}

// ResetGame returns the party to the lobby, discarding the game state.
// Host only. Accepted from any status, including mid-game.
func (c *Controller) ResetGame(code model.PartyCode, actorID model.UserID) error {
	err := c.registry.WithParty(code, func(p *model.Party) error {
		if p.HostID != actorID {
			return model.ErrNotHost
		}
		p.Status = model.PartyStatusLobby
		p.Game = nil
		p.EachMember(func(m *model.Member) {
			m.Ready = false
		})
		return nil
	})
	if err != nil {
		return err
	}

	c.scheduler.Stop(code)
	c.logger.Info("game reset", slog.String("code", string(code)))
	return nil
}

// TickTimer advances the party's countdown by one poll. It returns false
// when the countdown no longer applies and the scheduler should stop.
// Expiry forces the same turn-switch transition as a wrong guess.
func (c *Controller) TickTimer(code model.PartyCode) bool {
	alive := true
	err := c.registry.WithParty(code, func(p *model.Party) error {
		if p.Status != model.PartyStatusInGame || p.Game == nil ||
			!p.Settings.Timer.Enabled || p.Game.Timer == nil {
			alive = false
			return nil
		}

		// Recompute from the wall clock rather than decrementing
		left := secondsLeft(p.Game.Timer.EndAt, c.clock.Now())
		p.Game.Timer.SecondsLeft = left

		if left <= 0 {
			c.switchTurn(p)
		}
		return nil
	})
	if err != nil {
		// Party gone; stop ticking
		return false
	}
	return alive
}

// secondsLeft is ceil((endAt-now)/1s), floored at zero
func secondsLeft(endAt, now time.Time) int {
	d := endAt.Sub(now)
	if d <= 0 {
		return 0
	}
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}

// switchTurn flips the acting team, resets the role to spymaster, clears
// the hint and suspicions, and re-arms the timer for the new role
func (c *Controller) switchTurn(p *model.Party) {
	p.Game.Turn = model.TurnState{
		Team: p.Game.Turn.Team.Opponent(),
		Role: model.TurnRoleSpymaster,
	}
	c.armTimer(p)
}

// armTimer replaces the countdown window for the current turn role.
// A fresh window always replaces the prior one on any turn change.
func (c *Controller) armTimer(p *model.Party) {
	if !p.Settings.Timer.Enabled || p.Game == nil {
		return
	}
	secs := p.Settings.Timer.RoleSeconds(p.Game.Turn.Role)
	p.Game.Timer = &model.CountdownState{
		EndAt:       c.clock.Now().Add(time.Duration(secs) * time.Second),
		SecondsLeft: secs,
	}
}

// actingMember validates that the party is in-game and the actor belongs
// to it, returning the member
func (c *Controller) actingMember(p *model.Party, actorID model.UserID) (*model.Member, error) {
	if p.Status != model.PartyStatusInGame || p.Game == nil {
		return nil, model.ErrInvalidState
	}
	m := p.GetMember(actorID)
	if m == nil {
		return nil, model.ErrNotInParty
	}
	return m, nil
}

// tileTeam maps a tile owner to its team, if it has one
func tileTeam(owner model.TileOwner) (model.Team, bool) {
	switch owner {
	case model.OwnerRed:
		return model.TeamRed, true
	case model.OwnerBlue:
		return model.TeamBlue, true
	default:
		return "", false
	}
}
