package party

import (
	"log/slog"

	"github.com/pjessen/partywords/internal/model"
)

// Controller implements the lobby-facing party operations on top of the
// registry. Every mutation runs under the party's exclusive guard and
// validates before touching state.
type Controller struct {
	registry *Registry
	logger   *slog.Logger
}

// NewController creates a new party Controller
func NewController(registry *Registry, logger *slog.Logger) *Controller {
	return &Controller{
		registry: registry,
		logger:   logger.With(slog.String("component", "party")),
	}
}

// Join adds the member to the party's unassigned pool. Joining a party
// the member already belongs to is a no-op, so reconnects simply trigger
// a fresh snapshot for the caller.
func (c *Controller) Join(code model.PartyCode, member model.Member) error {
	return c.registry.WithParty(code, func(p *model.Party) error {
		if p.GetMember(member.UserID) != nil {
			return nil
		}
		member.Role = model.RoleUnassigned
		member.Ready = false
		p.Unassigned = append(p.Unassigned, member)
		return nil
	})
}

// Leave removes the member from the party entirely
func (c *Controller) Leave(code model.PartyCode, userID model.UserID) error {
	return c.registry.WithParty(code, func(p *model.Party) error {
		if p.GetMember(userID) == nil {
			return model.ErrNotInParty
		}
		p.RemoveMember(userID)
		return nil
	})
}

// AssignRole moves the member onto a team seat. The member is removed
// from every bucket first, so they occupy exactly one seat afterwards.
// Spymaster seats are capped by the party settings.
func (c *Controller) AssignRole(code model.PartyCode, userID model.UserID, team model.Team, role model.MemberRole) error {
	if role != model.RoleSpymaster && role != model.RoleOperative {
		return model.ErrInvalidState
	}
	if team != model.TeamRed && team != model.TeamBlue {
		return model.ErrInvalidState
	}

	return c.registry.WithParty(code, func(p *model.Party) error {
		m := p.GetMember(userID)
		if m == nil {
			return model.ErrNotInParty
		}

		roster := p.Roster(team)
		if role == model.RoleSpymaster {
			// The cap ignores the member's own seat when they already hold it
			already := false
			for _, s := range roster.Spymasters {
				if s.UserID == userID {
					already = true
					break
				}
			}
			if !already && len(roster.Spymasters) >= p.Settings.MaxSpymasters {
				return model.ErrTeamFull
			}
		}

		moved := *m
		moved.Role = role
		moved.Ready = false

		p.RemoveMember(userID)
		if role == model.RoleSpymaster {
			roster.Spymasters = append(roster.Spymasters, moved)
		} else {
			roster.Operatives = append(roster.Operatives, moved)
		}
		return nil
	})
}

// Unassign returns the member to the unassigned pool
func (c *Controller) Unassign(code model.PartyCode, userID model.UserID) error {
	return c.registry.WithParty(code, func(p *model.Party) error {
		m := p.GetMember(userID)
		if m == nil {
			return model.ErrNotInParty
		}
		moved := *m
		moved.Role = model.RoleUnassigned
		moved.Ready = false

		p.RemoveMember(userID)
		p.Unassigned = append(p.Unassigned, moved)
		return nil
	})
}

// SetReady flips the member's ready flag
func (c *Controller) SetReady(code model.PartyCode, userID model.UserID, ready bool) error {
	return c.registry.WithParty(code, func(p *model.Party) error {
		m := p.GetMember(userID)
		if m == nil {
			return model.ErrNotInParty
		}
		m.Ready = ready
		return nil
	})
}

// UpdateSettings replaces the party settings. Host only, lobby only, and
// the candidate settings must validate before anything is stored.
//
// Lowering MaxSpymasters below a team's current spymaster count is
// accepted; the cap is enforced on the next seat assignment.
func (c *Controller) UpdateSettings(code model.PartyCode, actorID model.UserID, settings model.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return c.registry.WithParty(code, func(p *model.Party) error {
		if p.HostID != actorID {
			return model.ErrNotHost
		}
		if p.Status != model.PartyStatusLobby {
			return model.ErrInvalidState
		}
		p.Settings = settings
		c.logger.Info("settings updated",
			slog.String("code", string(code)),
			slog.Int("board_size", settings.BoardSize),
			slog.String("mode", string(settings.Mode)),
		)
		return nil
	})
}

// Snapshot returns a deep copy of the party for read-only use outside
// the guard
func (c *Controller) Snapshot(code model.PartyCode) (*model.Party, error) {
	var snap *model.Party
	err := c.registry.WithParty(code, func(p *model.Party) error {
		snap = clone(p)
		return nil
	})
	return snap, err
}

// clone deep-copies a party so callers can read it without the guard
func clone(p *model.Party) *model.Party {
	out := *p
	out.Unassigned = append([]model.Member(nil), p.Unassigned...)
	out.Red = cloneRoster(p.Red)
	out.Blue = cloneRoster(p.Blue)
	out.Settings.Dictionary.CustomWords = append([]string(nil), p.Settings.Dictionary.CustomWords...)
	if p.Game != nil {
		out.Game = cloneGame(p.Game)
	}
	return &out
}

func cloneRoster(r model.TeamRoster) model.TeamRoster {
	return model.TeamRoster{
		Spymasters: append([]model.Member(nil), r.Spymasters...),
		Operatives: append([]model.Member(nil), r.Operatives...),
	}
}

func cloneGame(g *model.GameState) *model.GameState {
	out := *g
	out.Board = append([]model.Tile(nil), g.Board...)
	out.Logs = append([]model.LogEntry(nil), g.Logs...)
	out.Turn.Suspicions = append([]model.Suspicion(nil), g.Turn.Suspicions...)
	if g.Turn.Hint != nil {
		hint := *g.Turn.Hint
		out.Turn.Hint = &hint
	}
	out.Remaining = make(map[model.Team]int, len(g.Remaining))
	for k, v := range g.Remaining {
		out.Remaining[k] = v
	}
	if g.Timer != nil {
		t := *g.Timer
		out.Timer = &t
	}
	if g.Crazy != nil {
		crazy := model.CrazyState{
			UsedAbilities: make(map[model.Team]*model.AbilityUse, len(g.Crazy.UsedAbilities)),
			HiddenInfo:    make(map[model.Team]*model.TeamSecrets, len(g.Crazy.HiddenInfo)),
		}
		for k, v := range g.Crazy.UsedAbilities {
			use := *v
			if v.PeekResult != nil {
				res := *v.PeekResult
				use.PeekResult = &res
			}
			crazy.UsedAbilities[k] = &use
		}
		for k, v := range g.Crazy.HiddenInfo {
			secrets := *v
			if v.BonusTile != nil {
				b := *v.BonusTile
				secrets.BonusTile = &b
			}
			crazy.HiddenInfo[k] = &secrets
		}
		out.Crazy = &crazy
	}
	return &out
}
