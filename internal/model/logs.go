package model

// LogType discriminates log entry variants
type LogType string

const (
	LogHint    LogType = "hint"
	LogGuess   LogType = "guess"
	LogAbility LogType = "ability"
)

// AbilityAction names the ability recorded in an ability log entry
type AbilityAction string

const (
	AbilitySwap AbilityAction = "swap"
	AbilityPeek AbilityAction = "peek"
)

// DiceRoll is the pair of dice rolled for a neutral reveal in crazy mode
type DiceRoll struct {
	Die1 int
	Die2 int
}

// Doubles reports whether both dice match
func (d DiceRoll) Doubles() bool {
	return d.Die1 == d.Die2
}

// LuckyCard is the lucky-tile payload attached to a guess log entry
type LuckyCard struct {
	Word  string
	Bonus *BonusTile
}

// LogEntry is an append-only record of an accepted command.
// Type selects which optional fields are populated. Entries are never
// mutated after append; ordering is the causal order of accepted commands.
type LogEntry struct {
	Type     LogType
	Team     Team
	Username string

	// Hint fields
	HintWord  string
	HintCount int

	// Guess fields
	Word    string
	Success bool
	Owner   TileOwner
	Dice    *DiceRoll
	Lucky   *LuckyCard

	// Ability fields
	Action AbilityAction
}
