package model

// TileOwner is the hidden allegiance of a board tile
type TileOwner string

const (
	OwnerRed      TileOwner = "red"
	OwnerBlue     TileOwner = "blue"
	OwnerNeutral  TileOwner = "neutral"
	OwnerAssassin TileOwner = "assassin"
)

// OwnerForTeam returns the tile owner matching a team
func OwnerForTeam(team Team) TileOwner {
	if team == TeamRed {
		return OwnerRed
	}
	return OwnerBlue
}

// Tile is a single word card on the board
type Tile struct {
	Word     string
	Owner    TileOwner
	Revealed bool
	Lucky    bool
}
