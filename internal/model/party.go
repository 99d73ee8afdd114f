package model

import "time"

// PartyCode is the human-readable join code for a party
type PartyCode string

// PartyStatus represents the lifecycle phase of a party
type PartyStatus string

const (
	PartyStatusLobby    PartyStatus = "lobby"
	PartyStatusInGame   PartyStatus = "in_game"
	PartyStatusGameOver PartyStatus = "game_over"
)

// Team identifies one of the two playing teams
type Team string

const (
	TeamRed  Team = "red"
	TeamBlue Team = "blue"
)

// Teams lists both teams in a stable order
func Teams() []Team {
	return []Team{TeamRed, TeamBlue}
}

// Opponent returns the other team
func (t Team) Opponent() Team {
	if t == TeamRed {
		return TeamBlue
	}
	return TeamRed
}

// TeamRoster holds a team's members split by role
type TeamRoster struct {
	Spymasters []Member
	Operatives []Member
}

// Party is a joinable session grouping players before and during one game
type Party struct {
	Code       PartyCode
	HostID     UserID
	Settings   Settings
	Red        TeamRoster
	Blue       TeamRoster
	Unassigned []Member
	Status     PartyStatus
	Game       *GameState // nil while in the lobby
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Roster returns the roster for the given team
func (p *Party) Roster(team Team) *TeamRoster {
	if team == TeamRed {
		return &p.Red
	}
	return &p.Blue
}

// GetMember returns the member with the given user ID wherever they sit,
// or nil if they are not in the party
func (p *Party) GetMember(userID UserID) *Member {
	for i := range p.Unassigned {
		if p.Unassigned[i].UserID == userID {
			return &p.Unassigned[i]
		}
	}
	for _, team := range Teams() {
		roster := p.Roster(team)
		for i := range roster.Spymasters {
			if roster.Spymasters[i].UserID == userID {
				return &roster.Spymasters[i]
			}
		}
		for i := range roster.Operatives {
			if roster.Operatives[i].UserID == userID {
				return &roster.Operatives[i]
			}
		}
	}
	return nil
}

// MemberTeam returns the team a member currently plays for, or false if
// they are unassigned or absent
func (p *Party) MemberTeam(userID UserID) (Team, bool) {
	for _, team := range Teams() {
		roster := p.Roster(team)
		for i := range roster.Spymasters {
			if roster.Spymasters[i].UserID == userID {
				return team, true
			}
		}
		for i := range roster.Operatives {
			if roster.Operatives[i].UserID == userID {
				return team, true
			}
		}
	}
	return "", false
}

func removeFromBucket(members []Member, userID UserID) []Member {
	for i := range members {
		if members[i].UserID == userID {
			return append(members[:i], members[i+1:]...)
		}
	}
	return members
}

// RemoveMember removes the user from every bucket. Callers re-insert into
// exactly one bucket, preserving the single-location invariant.
func (p *Party) RemoveMember(userID UserID) {
	p.Unassigned = removeFromBucket(p.Unassigned, userID)
	for _, team := range Teams() {
		roster := p.Roster(team)
		roster.Spymasters = removeFromBucket(roster.Spymasters, userID)
		roster.Operatives = removeFromBucket(roster.Operatives, userID)
	}
}

// MemberCount returns the total number of members across all buckets
func (p *Party) MemberCount() int {
	n := len(p.Unassigned)
	for _, team := range Teams() {
		roster := p.Roster(team)
		n += len(roster.Spymasters) + len(roster.Operatives)
	}
	return n
}

// EachMember calls fn for every member in the party
func (p *Party) EachMember(fn func(m *Member)) {
	for i := range p.Unassigned {
		fn(&p.Unassigned[i])
	}
	for _, team := range Teams() {
		roster := p.Roster(team)
		for i := range roster.Spymasters {
			fn(&roster.Spymasters[i])
		}
		for i := range roster.Operatives {
			fn(&roster.Operatives[i])
		}
	}
}

// TeamUserIDs returns the user IDs of everyone playing for the given team
func (p *Party) TeamUserIDs(team Team) []UserID {
	roster := p.Roster(team)
	ids := make([]UserID, 0, len(roster.Spymasters)+len(roster.Operatives))
	for _, m := range roster.Spymasters {
		ids = append(ids, m.UserID)
	}
	for _, m := range roster.Operatives {
		ids = append(ids, m.UserID)
	}
	return ids
}
