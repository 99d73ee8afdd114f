package words

import (
	"bufio"
	"context"
	"embed"
	"log/slog"
	"strings"

	"github.com/pjessen/partywords/internal/dependencies/clock"
	"github.com/pjessen/partywords/internal/model"
	"github.com/pjessen/partywords/internal/storage"
)

//go:embed data/english.txt data/french.txt
var listFS embed.FS

// Service provides the word supply for board generation.
// Built-in dictionaries are embedded in the binary; custom dictionaries
// arrive inline with settings or as stored word packs.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	builtin map[model.DictionaryKind][]string
}

// New creates a new word Service with the embedded dictionaries loaded
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	s := &Service{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "words")),
		builtin: make(map[model.DictionaryKind][]string),
	}
	s.builtin[model.DictionaryEnglish] = mustLoadEmbedded("data/english.txt")
	s.builtin[model.DictionaryFrench] = mustLoadEmbedded("data/french.txt")
	return s
}

func mustLoadEmbedded(path string) []string {
	f, err := listFS.Open(path)
	if err != nil {
		// Embedded files are compiled in; a miss is a build defect
		panic(err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	return Normalize(words)
}

// Normalize trims, lowercases, and deduplicates a word list while
// preserving first-occurrence order
func Normalize(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	result := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		result = append(result, w)
	}
	return result
}

// Resolve returns the distinct words for the given dictionary settings
func (s *Service) Resolve(ctx context.Context, d model.DictionarySettings) ([]string, error) {
	switch d.Kind {
	case model.DictionaryEnglish, model.DictionaryFrench:
		src := s.builtin[d.Kind]
		out := make([]string, len(src))
		copy(out, src)
		return out, nil
	case model.DictionaryCustom:
		if d.Pack != "" {
			pack, err := s.storage.GetWordPack(ctx, d.Pack)
			if err != nil {
				return nil, err
			}
			return Normalize(pack.Words), nil
		}
		return Normalize(d.CustomWords), nil
	default:
		return nil, model.ErrInvalidSettings
	}
}

// Count returns the number of distinct words in a built-in dictionary
func (s *Service) Count(kind model.DictionaryKind) int {
	return len(s.builtin[kind])
}

// SavePack normalizes and stores a named word pack
func (s *Service) SavePack(ctx context.Context, name string, ownerID model.UserID, words []string) (*model.WordPack, error) {
	name = strings.TrimSpace(name)
	normalized := Normalize(words)
	if name == "" || len(normalized) == 0 {
		return nil, model.ErrInvalidSettings
	}

	now := s.clock.Now()
	pack := &model.WordPack{
		Name:      name,
		OwnerID:   ownerID,
		Words:     normalized,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing, err := s.storage.GetWordPack(ctx, name); err == nil {
		pack.CreatedAt = existing.CreatedAt
	}

	if err := s.storage.SaveWordPack(ctx, pack); err != nil {
		return nil, err
	}

	s.logger.Info("word pack saved",
		slog.String("pack", name),
		slog.Int("words", len(normalized)),
	)
	return pack, nil
}

// GetPack retrieves a stored word pack
func (s *Service) GetPack(ctx context.Context, name string) (*model.WordPack, error) {
	return s.storage.GetWordPack(ctx, name)
}

// ListPacks lists all stored word packs
func (s *Service) ListPacks(ctx context.Context) ([]*model.WordPack, error) {
	return s.storage.ListWordPacks(ctx)
}

// DeletePack removes a stored word pack
func (s *Service) DeletePack(ctx context.Context, name string) error {
	return s.storage.DeleteWordPack(ctx, name)
}
