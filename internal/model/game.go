package model

import "time"

// TurnRole is the role expected to act in the current turn
type TurnRole string

const (
	TurnRoleSpymaster TurnRole = "spymaster"
	TurnRoleOperative TurnRole = "operative"
)

// Hint is the clue a spymaster gave for the current turn
type Hint struct {
	Word             string
	Count            int
	RemainingGuesses int
}

// Suspicion marks a tile a member suspects during the current turn
type Suspicion struct {
	UserID    UserID
	Username  string
	AvatarURL string
	TileIndex int
}

// TurnState tracks whose turn it is and the hint lifecycle
type TurnState struct {
	Team       Team
	Role       TurnRole
	Hint       *Hint
	Suspicions []Suspicion
}

// CountdownState is the wall-clock window for the active role's timer
type CountdownState struct {
	EndAt       time.Time
	SecondsLeft int
}

// PeekResult is the stored outcome of an operative row peek
type PeekResult struct {
	Row         int
	HasTeamWord bool
}

// AbilityUse tracks a team's one-shot abilities for the current game
type AbilityUse struct {
	Swapped    bool
	PeekUsed   bool
	PeekResult *PeekResult
}

// BonusTile is a tile identity disclosed privately to one team.
// The tile's own Revealed flag stays false.
type BonusTile struct {
	Index int
	Word  string
	Owner TileOwner
}

// TeamSecrets holds crazy-mode information visible to a single team
type TeamSecrets struct {
	BonusTile *BonusTile
}

// CrazyState is the ability layer present when the game mode is crazy
type CrazyState struct {
	UsedAbilities map[Team]*AbilityUse
	HiddenInfo    map[Team]*TeamSecrets
}

// NewCrazyState returns a fresh crazy-mode layer with nothing used
func NewCrazyState() *CrazyState {
	return &CrazyState{
		UsedAbilities: map[Team]*AbilityUse{
			TeamRed:  {},
			TeamBlue: {},
		},
		HiddenInfo: map[Team]*TeamSecrets{
			TeamRed:  {},
			TeamBlue: {},
		},
	}
}

// GameState is the full state of one in-progress or finished game
type GameState struct {
	Board     []Tile
	Turn      TurnState
	Remaining map[Team]int
	Logs      []LogEntry
	Winner    Team // empty until the game ends
	Timer     *CountdownState
	Crazy     *CrazyState // nil in classic mode
}

// BoardSize returns the side length of the square board
func (g *GameState) BoardSize() int {
	size := 0
	for size*size < len(g.Board) {
		size++
	}
	return size
}

// LuckyIndex returns the index of the unrevealed lucky tile, or -1
func (g *GameState) LuckyIndex() int {
	for i := range g.Board {
		if g.Board[i].Lucky && !g.Board[i].Revealed {
			return i
		}
	}
	return -1
}

// UnrevealedNeutrals returns the indices of unrevealed neutral tiles
func (g *GameState) UnrevealedNeutrals() []int {
	var indices []int
	for i := range g.Board {
		if g.Board[i].Owner == OwnerNeutral && !g.Board[i].Revealed {
			indices = append(indices, i)
		}
	}
	return indices
}
