package game

import (
	"log/slog"

	"github.com/pjessen/partywords/internal/model"
)

// Crazy-mode ability operations. Each team gets one spymaster swap and one
// operative peek per game; a second use fails with ErrAbilityUsed and
// leaves state unchanged.

// UseSpymasterSwap exchanges the owner labels of one of the acting team's
// tiles and a neutral tile. Both must be unrevealed.
func (c *Controller) UseSpymasterSwap(code model.PartyCode, actorID model.UserID, teamTileIdx, neutralTileIdx int) error {
	return c.registry.WithParty(code, func(p *model.Party) error {
		actor, game, team, err := c.abilityContext(p, actorID)
		if err != nil {
			return err
		}
		if game.Turn.Role != model.TurnRoleSpymaster || actor.Role != model.RoleSpymaster {
			return model.ErrWrongRole
		}
		used := game.Crazy.UsedAbilities[team]
		if used.Swapped {
			return model.ErrAbilityUsed
		}

		if !validTileIndex(game, teamTileIdx) || !validTileIndex(game, neutralTileIdx) {
			return model.ErrInvalidTile
		}
		teamTile := &game.Board[teamTileIdx]
		neutralTile := &game.Board[neutralTileIdx]
		if teamTile.Revealed || neutralTile.Revealed {
			return model.ErrAlreadyRevealed
		}
		if teamTile.Owner != model.OwnerForTeam(team) || neutralTile.Owner != model.OwnerNeutral {
			return model.ErrInvalidTile
		}

		teamTile.Owner, neutralTile.Owner = neutralTile.Owner, teamTile.Owner
		c.maintainLucky(game)
		used.Swapped = true

		game.Logs = append(game.Logs, model.LogEntry{
			Type:     model.LogAbility,
			Team:     team,
			Username: actor.Username,
			Action:   model.AbilitySwap,
		})
		c.logger.Debug("spymaster swap used",
			slog.String("code", string(code)),
			slog.String("team", string(team)),
		)
		return nil
	})
}

// UseOperativePeek answers whether a board row holds an unrevealed tile
// belonging to the acting team. The result is stored per-team; callers
// deliver it to that team only.
func (c *Controller) UseOperativePeek(code model.PartyCode, actorID model.UserID, row int) error {
	return c.registry.WithParty(code, func(p *model.Party) error {
		actor, game, team, err := c.abilityContext(p, actorID)
		if err != nil {
			return err
		}
		if game.Turn.Role != model.TurnRoleOperative || actor.Role != model.RoleOperative {
			return model.ErrWrongRole
		}
		used := game.Crazy.UsedAbilities[team]
		if used.PeekUsed {
			return model.ErrAbilityUsed
		}

		size := game.BoardSize()
		if row < 0 || row >= size {
			return model.ErrInvalidRow
		}

		want := model.OwnerForTeam(team)
		has := false
		for i := row * size; i < (row+1)*size; i++ {
			t := game.Board[i]
			if !t.Revealed && t.Owner == want {
				has = true
				break
			}
		}

		used.PeekUsed = true
		used.PeekResult = &model.PeekResult{Row: row, HasTeamWord: has}

		game.Logs = append(game.Logs, model.LogEntry{
			Type:     model.LogAbility,
			Team:     team,
			Username: actor.Username,
			Action:   model.AbilityPeek,
		})
		c.logger.Debug("operative peek used",
			slog.String("code", string(code)),
			slog.String("team", string(team)),
		)
		return nil
	})
}

// abilityContext validates the shared ability preconditions: crazy mode,
// in-game, actor present, and it being the actor's team's turn
func (c *Controller) abilityContext(p *model.Party, actorID model.UserID) (*model.Member, *model.GameState, model.Team, error) {
	actor, err := c.actingMember(p, actorID)
	if err != nil {
		return nil, nil, "", err
	}
	if p.Settings.Mode != model.ModeCrazy || p.Game.Crazy == nil {
		return nil, nil, "", model.ErrInvalidState
	}
	team, ok := p.MemberTeam(actorID)
	if !ok {
		return nil, nil, "", model.ErrNotInParty
	}
	if team != p.Game.Turn.Team {
		return nil, nil, "", model.ErrNotYourTurn
	}
	return actor, p.Game, team, nil
}

// drawBonusTile picks a random unrevealed tile not owned by the revealing
// team and returns its identity for that team's eyes only. Revealing the
// identity of an own-team tile would hand out a free correct guess, so
// those are never candidates.
func (c *Controller) drawBonusTile(game *model.GameState, team model.Team, exclude int) *model.BonusTile {
	own := model.OwnerForTeam(team)
	candidates := make([]int, 0, len(game.Board))
	for i, t := range game.Board {
		if i == exclude || t.Revealed || t.Owner == own {
			continue
		}
		candidates = append(candidates, i)
	}
	if len(candidates) == 0 {
		return nil
	}
	idx := candidates[c.random.Intn(len(candidates))]
	return &model.BonusTile{
		Index: idx,
		Word:  game.Board[idx].Word,
		Owner: game.Board[idx].Owner,
	}
}

// maintainLucky keeps exactly one unrevealed neutral tile marked lucky
// for as long as any unrevealed neutral remains
func (c *Controller) maintainLucky(game *model.GameState) {
	intact := false
	for i := range game.Board {
		t := &game.Board[i]
		if !t.Lucky {
			continue
		}
		if !t.Revealed && t.Owner == model.OwnerNeutral {
			intact = true
			continue
		}
		t.Lucky = false
	}
	if intact {
		return
	}
	neutrals := game.UnrevealedNeutrals()
	if len(neutrals) == 0 {
		return
	}
	game.Board[neutrals[c.random.Intn(len(neutrals))]].Lucky = true
}

func validTileIndex(game *model.GameState, idx int) bool {
	return idx >= 0 && idx < len(game.Board)
}
