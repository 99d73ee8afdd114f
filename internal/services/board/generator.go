package board

import (
	"context"
	"log/slog"

	"github.com/pjessen/partywords/internal/dependencies/random"
	"github.com/pjessen/partywords/internal/model"
	"github.com/pjessen/partywords/internal/services/words"
)

// Layout is a freshly generated board plus its team quotas
type Layout struct {
	Tiles     []model.Tile
	RedCount  int
	BlueCount int
}

// Generator builds shuffled, fully-typed tile sets from a word supply
type Generator struct {
	words  *words.Service
	random random.Random
	logger *slog.Logger
}

// NewGenerator creates a new board Generator
func NewGenerator(words *words.Service, random random.Random, logger *slog.Logger) *Generator {
	return &Generator{
		words:  words,
		random: random,
		logger: logger.With(slog.String("component", "board")),
	}
}

// Generate produces a boardSize² tile set for the given settings.
// Each team owns floor(total*0.35) tiles, the assassin count comes from
// settings, and the remainder is neutral. In crazy mode one neutral tile
// is flagged lucky.
func (g *Generator) Generate(ctx context.Context, settings model.Settings) (*Layout, error) {
	total := settings.BoardSize * settings.BoardSize
	teamCount := total * 35 / 100
	neutralCount := total - 2*teamCount - settings.AssassinCount
	if neutralCount < 0 {
		return nil, model.ErrInvalidSettings
	}

	supply, err := g.words.Resolve(ctx, settings.Dictionary)
	if err != nil {
		return nil, err
	}
	if len(supply) < total {
		return nil, model.ErrInsufficientWords
	}

	g.shuffleStrings(supply)
	selected := supply[:total]

	owners := make([]model.TileOwner, 0, total)
	for i := 0; i < teamCount; i++ {
		owners = append(owners, model.OwnerRed)
	}
	for i := 0; i < teamCount; i++ {
		owners = append(owners, model.OwnerBlue)
	}
	for i := 0; i < settings.AssassinCount; i++ {
		owners = append(owners, model.OwnerAssassin)
	}
	for i := 0; i < neutralCount; i++ {
		owners = append(owners, model.OwnerNeutral)
	}
	g.shuffleOwners(owners)

	tiles := make([]model.Tile, total)
	for i, word := range selected {
		tiles[i] = model.Tile{Word: word, Owner: owners[i]}
	}

	if settings.Mode == model.ModeCrazy {
		g.assignLucky(tiles)
	}

	g.logger.Debug("board generated",
		slog.Int("total", total),
		slog.Int("per_team", teamCount),
		slog.Int("assassins", settings.AssassinCount),
		slog.Int("neutral", neutralCount),
	)

	return &Layout{
		Tiles:     tiles,
		RedCount:  teamCount,
		BlueCount: teamCount,
	}, nil
}

// assignLucky flags one random neutral tile as lucky, if any exist
func (g *Generator) assignLucky(tiles []model.Tile) {
	var neutrals []int
	for i := range tiles {
		if tiles[i].Owner == model.OwnerNeutral {
			neutrals = append(neutrals, i)
		}
	}
	if len(neutrals) == 0 {
		return
	}
	tiles[neutrals[g.random.Intn(len(neutrals))]].Lucky = true
}

// Fisher-Yates using the injected randomness so shuffles are seedable

func (g *Generator) shuffleStrings(items []string) {
	for i := len(items) - 1; i > 0; i-- {
		j := g.random.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

func (g *Generator) shuffleOwners(items []model.TileOwner) {
	for i := len(items) - 1; i > 0; i-- {
		j := g.random.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
