package model

import "slices"

// GameMode selects the rule set for a game
type GameMode string

const (
	ModeClassic GameMode = "classic"
	ModeCrazy   GameMode = "crazy"
)

// DictionaryKind identifies a word supply
type DictionaryKind string

const (
	DictionaryEnglish DictionaryKind = "english"
	DictionaryFrench  DictionaryKind = "french"
	DictionaryCustom  DictionaryKind = "custom"
)

// TimerSettings configures the per-role countdown
type TimerSettings struct {
	Enabled          bool
	SpymasterSeconds int
	OperativeSeconds int
}

// RoleSeconds returns the configured countdown for the given turn role
func (t TimerSettings) RoleSeconds(role TurnRole) int {
	if role == TurnRoleSpymaster {
		return t.SpymasterSeconds
	}
	return t.OperativeSeconds
}

// DictionarySettings selects the word supply for board generation.
// Custom dictionaries carry words inline or reference a stored pack.
type DictionarySettings struct {
	Kind        DictionaryKind
	CustomWords []string
	Pack        string
}

// Settings holds the configurable rules for a party.
// Mutable only while the party is in the lobby.
type Settings struct {
	BoardSize     int
	MaxSpymasters int
	Timer         TimerSettings
	Dictionary    DictionarySettings
	AssassinCount int
	Mode          GameMode
}

// DefaultSettings returns the settings a fresh party starts with
func DefaultSettings() Settings {
	return Settings{
		BoardSize:     5,
		MaxSpymasters: 1,
		Timer: TimerSettings{
			Enabled:          false,
			SpymasterSeconds: 120,
			OperativeSeconds: 60,
		},
		Dictionary: DictionarySettings{
			Kind: DictionaryEnglish,
		},
		AssassinCount: 1,
		Mode:          ModeClassic,
	}
}

// Equal reports whether two settings are identical, including the custom
// word list
func (s Settings) Equal(o Settings) bool {
	if s.BoardSize != o.BoardSize ||
		s.MaxSpymasters != o.MaxSpymasters ||
		s.Timer != o.Timer ||
		s.AssassinCount != o.AssassinCount ||
		s.Mode != o.Mode {
		return false
	}
	return s.Dictionary.Kind == o.Dictionary.Kind &&
		s.Dictionary.Pack == o.Dictionary.Pack &&
		slices.Equal(s.Dictionary.CustomWords, o.Dictionary.CustomWords)
}

// Validate checks the settings against the allowed ranges.
// Malformed settings are rejected at the boundary before any mutation.
func (s Settings) Validate() error {
	if s.BoardSize < 5 || s.BoardSize > 7 {
		return ErrInvalidSettings
	}
	if s.MaxSpymasters < 1 {
		return ErrInvalidSettings
	}
	if s.AssassinCount < 0 {
		return ErrInvalidSettings
	}
	if s.Timer.Enabled && (s.Timer.SpymasterSeconds <= 0 || s.Timer.OperativeSeconds <= 0) {
		return ErrInvalidSettings
	}
	switch s.Dictionary.Kind {
	case DictionaryEnglish, DictionaryFrench:
	case DictionaryCustom:
		if len(s.Dictionary.CustomWords) == 0 && s.Dictionary.Pack == "" {
			return ErrInvalidSettings
		}
	default:
		return ErrInvalidSettings
	}
	switch s.Mode {
	case ModeClassic, ModeCrazy:
	default:
		return ErrInvalidSettings
	}
	return nil
}
