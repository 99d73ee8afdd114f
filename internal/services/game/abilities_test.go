package game

import (
	"github.com/pjessen/partywords/internal/model"
)

// Ability tests run on the ControllerSuite from controller_test.go

func (s *ControllerSuite) startCrazy() {
	s.startGame(func(st *model.Settings) {
		st.Mode = model.ModeCrazy
	})
}

// Spymaster swap

func (s *ControllerSuite) TestSwapExchangesOwners() {
	s.startCrazy()

	teamIdx := s.tileIndex(model.OwnerRed)
	neutralIdx := s.tileIndex(model.OwnerNeutral)
	s.Require().NoError(s.controller.UseSpymasterSwap(s.code, hostID, teamIdx, neutralIdx))

	g := s.game()
	s.Equal(model.OwnerNeutral, g.Board[teamIdx].Owner)
	s.Equal(model.OwnerRed, g.Board[neutralIdx].Owner)
	s.True(g.Crazy.UsedAbilities[model.TeamRed].Swapped)

	// Team tile totals are unchanged
	s.Equal(8, g.Remaining[model.TeamRed])

	last := g.Logs[len(g.Logs)-1]
	s.Equal(model.LogAbility, last.Type)
	s.Equal(model.AbilitySwap, last.Action)
}

func (s *ControllerSuite) TestSwapIsOneShotPerTeam() {
	s.startCrazy()

	s.Require().NoError(s.controller.UseSpymasterSwap(s.code, hostID,
		s.tileIndex(model.OwnerRed), s.tileIndex(model.OwnerNeutral)))

	teamIdx := s.tileIndex(model.OwnerRed)
	neutralIdx := s.tileIndex(model.OwnerNeutral)
	err := s.controller.UseSpymasterSwap(s.code, hostID, teamIdx, neutralIdx)
	s.ErrorIs(err, model.ErrAbilityUsed)

	// The rejected swap changed nothing
	g := s.game()
	s.Equal(model.OwnerRed, g.Board[teamIdx].Owner)
	s.Equal(model.OwnerNeutral, g.Board[neutralIdx].Owner)
}

func (s *ControllerSuite) TestSwapValidatesOwners() {
	s.startCrazy()

	neutralIdx := s.tileIndex(model.OwnerNeutral)
	blueIdx := s.tileIndex(model.OwnerBlue)
	err := s.controller.UseSpymasterSwap(s.code, hostID, blueIdx, neutralIdx)
	s.ErrorIs(err, model.ErrInvalidTile)
	s.False(s.game().Crazy.UsedAbilities[model.TeamRed].Swapped)
}

func (s *ControllerSuite) TestSwapRejectsOperative() {
	s.startCrazy()
	s.toOperativeTurn(1)
	err := s.controller.UseSpymasterSwap(s.code, redOp,
		s.tileIndex(model.OwnerRed), s.tileIndex(model.OwnerNeutral))
	s.ErrorIs(err, model.ErrWrongRole)
}

func (s *ControllerSuite) TestSwapRejectedInClassicMode() {
	s.startGame(nil)
	err := s.controller.UseSpymasterSwap(s.code, hostID, 0, 1)
	s.ErrorIs(err, model.ErrInvalidState)
}

func (s *ControllerSuite) TestSwapOnLuckyTileReassignsLucky() {
	s.startCrazy()

	luckyIdx := s.game().LuckyIndex()
	teamIdx := s.tileIndex(model.OwnerRed)
	s.random.QueueIntn(0) // reassignment pick
	s.Require().NoError(s.controller.UseSpymasterSwap(s.code, hostID, teamIdx, luckyIdx))

	g := s.game()
	// The swapped tile now belongs to red and cannot stay lucky
	s.Equal(model.OwnerRed, g.Board[luckyIdx].Owner)
	s.False(g.Board[luckyIdx].Lucky)

	next := g.LuckyIndex()
	s.Require().GreaterOrEqual(next, 0)
	s.Equal(model.OwnerNeutral, g.Board[next].Owner)
}

// Operative peek

func (s *ControllerSuite) TestPeekReportsRowContents() {
	s.startCrazy()
	s.toOperativeTurn(1)

	// Build the expected answer from the board itself
	g := s.game()
	row := 2
	want := false
	for i := row * 5; i < (row+1)*5; i++ {
		if g.Board[i].Owner == model.OwnerRed && !g.Board[i].Revealed {
			want = true
		}
	}

	s.Require().NoError(s.controller.UseOperativePeek(s.code, redOp, row))

	g = s.game()
	use := g.Crazy.UsedAbilities[model.TeamRed]
	s.True(use.PeekUsed)
	s.Require().NotNil(use.PeekResult)
	s.Equal(row, use.PeekResult.Row)
	s.Equal(want, use.PeekResult.HasTeamWord)

	// The other team's ability is untouched
	s.False(g.Crazy.UsedAbilities[model.TeamBlue].PeekUsed)
}

func (s *ControllerSuite) TestPeekIsOneShotPerTeam() {
	s.startCrazy()
	s.toOperativeTurn(2)

	s.Require().NoError(s.controller.UseOperativePeek(s.code, redOp, 0))
	err := s.controller.UseOperativePeek(s.code, redOp, 1)
	s.ErrorIs(err, model.ErrAbilityUsed)

	// The stored result still answers the first peek
	s.Equal(0, s.game().Crazy.UsedAbilities[model.TeamRed].PeekResult.Row)
}

func (s *ControllerSuite) TestPeekValidatesRow() {
	s.startCrazy()
	s.toOperativeTurn(1)

	s.ErrorIs(s.controller.UseOperativePeek(s.code, redOp, -1), model.ErrInvalidRow)
	s.ErrorIs(s.controller.UseOperativePeek(s.code, redOp, 5), model.ErrInvalidRow)
	s.False(s.game().Crazy.UsedAbilities[model.TeamRed].PeekUsed)
}

func (s *ControllerSuite) TestPeekRejectsSpymaster() {
	s.startCrazy()
	s.toOperativeTurn(1)
	err := s.controller.UseOperativePeek(s.code, hostID, 0)
	s.ErrorIs(err, model.ErrWrongRole)
}

func (s *ControllerSuite) TestPeekRejectsDuringSpymasterPhase() {
	s.startCrazy()
	err := s.controller.UseOperativePeek(s.code, redOp, 0)
	s.ErrorIs(err, model.ErrWrongRole)
}
