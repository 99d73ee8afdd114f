package response

import (
	"time"

	"github.com/pjessen/partywords/internal/model"
)

// PartyView is the state snapshot sent to one viewer. Tile identities and
// crazy-mode secrets are redacted per viewer, so the same party renders
// differently for spymasters, operatives, and spectators.
type PartyView struct {
	Code       string       `json:"code"`
	HostID     string       `json:"hostId"`
	Status     string       `json:"status"`
	Settings   SettingsView `json:"settings"`
	Red        RosterView   `json:"red"`
	Blue       RosterView   `json:"blue"`
	Unassigned []MemberView `json:"unassigned"`
	Game       *GameView    `json:"game,omitempty"`
}

// SettingsView mirrors the party settings
type SettingsView struct {
	BoardSize     int      `json:"boardSize"`
	MaxSpymasters int      `json:"maxSpymasters"`
	AssassinCount int      `json:"assassinCount"`
	Mode          string   `json:"mode"`
	TimerEnabled  bool     `json:"timerEnabled"`
	SpymasterSecs int      `json:"spymasterSeconds"`
	OperativeSecs int      `json:"operativeSeconds"`
	Dictionary    string   `json:"dictionary"`
	CustomWords   []string `json:"customWords,omitempty"`
	WordPack      string   `json:"wordPack,omitempty"`
}

// MemberView is one player's public identity
type MemberView struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Role      string `json:"role"`
	Ready     bool   `json:"ready"`
}

// RosterView is one team's seats
type RosterView struct {
	Spymasters []MemberView `json:"spymasters"`
	Operatives []MemberView `json:"operatives"`
}

// TileView is one board tile as the viewer may see it. Owner and the
// lucky marker are omitted until the tile is revealed, unless the viewer
// is a spymaster or the game is over.
type TileView struct {
	Word     string `json:"word"`
	Revealed bool   `json:"revealed"`
	Owner    string `json:"owner,omitempty"`
	Lucky    bool   `json:"lucky,omitempty"`
}

// HintView is the current clue
type HintView struct {
	Word             string `json:"word"`
	Count            int    `json:"count"`
	RemainingGuesses int    `json:"remainingGuesses"`
}

// SuspicionView marks a suspected tile
type SuspicionView struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	TileIndex int    `json:"tileIndex"`
}

// TurnView is the active turn
type TurnView struct {
	Team       string          `json:"team"`
	Role       string          `json:"role"`
	Hint       *HintView       `json:"hint,omitempty"`
	Suspicions []SuspicionView `json:"suspicions"`
}

// TimerView is the countdown as last computed
type TimerView struct {
	EndAt       time.Time `json:"endAt"`
	SecondsLeft int       `json:"secondsLeft"`
}

// DiceView is a crazy-mode dice roll attached to a guess
type DiceView struct {
	Die1 int `json:"die1"`
	Die2 int `json:"die2"`
}

// LuckyView is a lucky-card draw attached to a guess
type LuckyView struct {
	Word string `json:"word"`
}

// LogView is one game log entry. Guess entries carry the revealed owner,
// which is public once the tile is turned over.
type LogView struct {
	Type      string     `json:"type"`
	Team      string     `json:"team"`
	Username  string     `json:"username"`
	HintWord  string     `json:"hintWord,omitempty"`
	HintCount int        `json:"hintCount,omitempty"`
	Word      string     `json:"word,omitempty"`
	Success   bool       `json:"success,omitempty"`
	Owner     string     `json:"owner,omitempty"`
	Dice      *DiceView  `json:"dice,omitempty"`
	Lucky     *LuckyView `json:"lucky,omitempty"`
	Action    string     `json:"action,omitempty"`
}

// BonusTileView is a privately disclosed tile identity
type BonusTileView struct {
	Index int    `json:"index"`
	Word  string `json:"word"`
	Owner string `json:"owner"`
}

// PeekResultView is a team's stored row peek answer
type PeekResultView struct {
	Row         int  `json:"row"`
	HasTeamWord bool `json:"hasTeamWord"`
}

// AbilityUseView is a team's public ability usage
type AbilityUseView struct {
	Swapped  bool `json:"swapped"`
	PeekUsed bool `json:"peekUsed"`
}

// CrazyView is the ability layer as the viewer may see it. Usage flags
// are public; the peek result and bonus tile belong to the viewer's team
// alone.
type CrazyView struct {
	UsedAbilities map[string]AbilityUseView `json:"usedAbilities"`
	PeekResult    *PeekResultView           `json:"peekResult,omitempty"`
	BonusTile     *BonusTileView            `json:"bonusTile,omitempty"`
}

// GameView is the in-game state as the viewer may see it
type GameView struct {
	Board     []TileView     `json:"board"`
	Turn      TurnView       `json:"turn"`
	Remaining map[string]int `json:"remaining"`
	Logs      []LogView      `json:"logs"`
	Winner    string         `json:"winner,omitempty"`
	Timer     *TimerView     `json:"timer,omitempty"`
	Crazy     *CrazyView     `json:"crazy,omitempty"`
}

// NewPartyView renders a party for one viewer
func NewPartyView(p *model.Party, viewer model.UserID) PartyView {
	view := PartyView{
		Code:       string(p.Code),
		HostID:     string(p.HostID),
		Status:     string(p.Status),
		Settings:   newSettingsView(p.Settings),
		Red:        newRosterView(p.Red),
		Blue:       newRosterView(p.Blue),
		Unassigned: newMemberViews(p.Unassigned),
	}
	if p.Game != nil {
		view.Game = newGameView(p, viewer)
	}
	return view
}

func newSettingsView(s model.Settings) SettingsView {
	return SettingsView{
		BoardSize:     s.BoardSize,
		MaxSpymasters: s.MaxSpymasters,
		AssassinCount: s.AssassinCount,
		Mode:          string(s.Mode),
		TimerEnabled:  s.Timer.Enabled,
		SpymasterSecs: s.Timer.SpymasterSeconds,
		OperativeSecs: s.Timer.OperativeSeconds,
		Dictionary:    string(s.Dictionary.Kind),
		CustomWords:   s.Dictionary.CustomWords,
		WordPack:      s.Dictionary.Pack,
	}
}

func newMemberView(m model.Member) MemberView {
	return MemberView{
		UserID:    string(m.UserID),
		Username:  m.Username,
		AvatarURL: m.AvatarURL,
		Role:      string(m.Role),
		Ready:     m.Ready,
	}
}

func newMemberViews(members []model.Member) []MemberView {
	out := make([]MemberView, 0, len(members))
	for _, m := range members {
		out = append(out, newMemberView(m))
	}
	return out
}

func newRosterView(r model.TeamRoster) RosterView {
	return RosterView{
		Spymasters: newMemberViews(r.Spymasters),
		Operatives: newMemberViews(r.Operatives),
	}
}

func newGameView(p *model.Party, viewer model.UserID) *GameView {
	game := p.Game
	gameOver := p.Status == model.PartyStatusGameOver

	seesIdentities := gameOver
	var viewerTeam model.Team
	hasTeam := false
	if m := p.GetMember(viewer); m != nil {
		if m.Role == model.RoleSpymaster {
			seesIdentities = true
		}
		viewerTeam, hasTeam = p.MemberTeam(viewer)
	}

	board := make([]TileView, len(game.Board))
	for i, t := range game.Board {
		tv := TileView{Word: t.Word, Revealed: t.Revealed}
		if t.Revealed || seesIdentities {
			tv.Owner = string(t.Owner)
			tv.Lucky = t.Lucky
		}
		board[i] = tv
	}

	turn := TurnView{
		Team:       string(game.Turn.Team),
		Role:       string(game.Turn.Role),
		Suspicions: make([]SuspicionView, 0, len(game.Turn.Suspicions)),
	}
	if game.Turn.Hint != nil {
		turn.Hint = &HintView{
			Word:             game.Turn.Hint.Word,
			Count:            game.Turn.Hint.Count,
			RemainingGuesses: game.Turn.Hint.RemainingGuesses,
		}
	}
	for _, s := range game.Turn.Suspicions {
		turn.Suspicions = append(turn.Suspicions, SuspicionView{
			UserID:    string(s.UserID),
			Username:  s.Username,
			AvatarURL: s.AvatarURL,
			TileIndex: s.TileIndex,
		})
	}

	remaining := make(map[string]int, len(game.Remaining))
	for team, n := range game.Remaining {
		remaining[string(team)] = n
	}

	logs := make([]LogView, 0, len(game.Logs))
	for _, entry := range game.Logs {
		logs = append(logs, newLogView(entry))
	}

	view := &GameView{
		Board:     board,
		Turn:      turn,
		Remaining: remaining,
		Logs:      logs,
		Winner:    string(game.Winner),
	}
	if game.Timer != nil {
		view.Timer = &TimerView{
			EndAt:       game.Timer.EndAt,
			SecondsLeft: game.Timer.SecondsLeft,
		}
	}
	if game.Crazy != nil {
		view.Crazy = newCrazyView(game.Crazy, viewerTeam, hasTeam)
	}
	return view
}

func newLogView(entry model.LogEntry) LogView {
	lv := LogView{
		Type:      string(entry.Type),
		Team:      string(entry.Team),
		Username:  entry.Username,
		HintWord:  entry.HintWord,
		HintCount: entry.HintCount,
		Word:      entry.Word,
		Success:   entry.Success,
		Owner:     string(entry.Owner),
		Action:    string(entry.Action),
	}
	if entry.Dice != nil {
		lv.Dice = &DiceView{Die1: entry.Dice.Die1, Die2: entry.Dice.Die2}
	}
	if entry.Lucky != nil {
		lv.Lucky = &LuckyView{Word: entry.Lucky.Word}
	}
	return lv
}

func newCrazyView(crazy *model.CrazyState, viewerTeam model.Team, hasTeam bool) *CrazyView {
	view := &CrazyView{
		UsedAbilities: make(map[string]AbilityUseView, len(crazy.UsedAbilities)),
	}
	for team, use := range crazy.UsedAbilities {
		view.UsedAbilities[string(team)] = AbilityUseView{
			Swapped:  use.Swapped,
			PeekUsed: use.PeekUsed,
		}
	}
	if !hasTeam {
		return view
	}
	if use := crazy.UsedAbilities[viewerTeam]; use != nil && use.PeekResult != nil {
		view.PeekResult = &PeekResultView{
			Row:         use.PeekResult.Row,
			HasTeamWord: use.PeekResult.HasTeamWord,
		}
	}
	if secrets := crazy.HiddenInfo[viewerTeam]; secrets != nil && secrets.BonusTile != nil {
		view.BonusTile = &BonusTileView{
			Index: secrets.BonusTile.Index,
			Word:  secrets.BonusTile.Word,
			Owner: string(secrets.BonusTile.Owner),
		}
	}
	return view
}
