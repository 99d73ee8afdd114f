package ws

import "encoding/json"

// Client-to-server command events
const (
	EventJoinParty           = "join_party"
	EventLeaveParty          = "leave_party"
	EventJoinTeam            = "join_team"
	EventUnassignPlayer      = "unassign_player"
	EventSetReady            = "set_ready"
	EventUpdateSettings      = "update_settings"
	EventStartGame           = "start_game"
	EventGiveHint            = "give_hint"
	EventRevealTile          = "reveal_tile"
	EventSuspectWord         = "suspect_word"
	EventUseSpymasterAbility = "use_spymaster_ability"
	EventUseOperativeAbility = "use_operative_ability"
	EventResetGame           = "reset_game"
)

// Server-to-client events
const (
	EventPartyState   = "party_state"
	EventPeekResult   = "peek_result"
	EventCommandError = "command_error"
)

// Envelope frames every message in both directions
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Command payloads

type JoinPartyPayload struct {
	Code string `json:"code"`
}

type JoinTeamPayload struct {
	Team string `json:"team"`
	Role string `json:"role"`
}

type SetReadyPayload struct {
	Ready bool `json:"ready"`
}

type UpdateSettingsPayload struct {
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

type GiveHintPayload struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type TilePayload struct {
	Index int `json:"index"`
}

type SwapPayload struct {
	TeamTileIndex    int `json:"teamTileIndex"`
	NeutralTileIndex int `json:"neutralTileIndex"`
}

type PeekPayload struct {
	Row int `json:"row"`
}

// CommandErrorPayload is sent privately to the offending client
type CommandErrorPayload struct {
	Event   string `json:"event"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func mustEnvelope(event string, data any) []byte {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			// Payloads are our own structs; a failure here is a bug
			panic(err)
		}
		raw = b
	}
	out, err := json.Marshal(Envelope{Event: event, Data: raw})
	if err != nil {
		panic(err)
	}
	return out
}
