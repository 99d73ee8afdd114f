package party

import (
	"log/slog"
	"sync"
	"time"

	"github.com/pjessen/partywords/internal/dependencies/clock"
	"github.com/pjessen/partywords/internal/dependencies/random"
	"github.com/pjessen/partywords/internal/model"
)

const (
	// CodeLength is the length of generated party codes
	CodeLength = 6
	// CodeAlphabet is the characters used in party codes
	CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// DefaultGracePeriod is how long an empty party survives before the
	// janitor collects it
	DefaultGracePeriod = 10 * time.Minute
)

// entry pairs a party with its exclusive-access guard.
// Every transition for a code serializes through entry.mu, so a manual
// reveal and a timer expiry can never interleave.
type entry struct {
	mu         sync.Mutex
	party      *model.Party
	emptySince time.Time // zero while the party's room has connections
}

// Registry is the in-memory directory of active parties keyed by join code.
// Parties are transient: they are never persisted and die with the process.
type Registry struct {
	clock       clock.Clock
	random      random.Random
	logger      *slog.Logger
	gracePeriod time.Duration

	mu      sync.RWMutex
	parties map[model.PartyCode]*entry

	// onDelete is invoked after a party is removed, outside any lock.
	// Used to tear down the party's timer and broadcast room.
	onDelete func(code model.PartyCode)
}

// NewRegistry creates a new party Registry
func NewRegistry(clock clock.Clock, random random.Random, logger *slog.Logger) *Registry {
	return &Registry{
		clock:       clock,
		random:      random,
		logger:      logger.With(slog.String("component", "party-registry")),
		gracePeriod: DefaultGracePeriod,
		parties:     make(map[model.PartyCode]*entry),
	}
}

// SetGracePeriod overrides how long empty parties are kept
func (r *Registry) SetGracePeriod(d time.Duration) {
	r.gracePeriod = d
}

// SetOnDelete registers a cleanup hook called when a party is removed
func (r *Registry) SetOnDelete(fn func(code model.PartyCode)) {
	r.onDelete = fn
}

// CreateParty creates a new party hosted by the given member and returns it.
// The host starts in the unassigned bucket. Code collisions regenerate;
// an existing party is never overwritten.
func (r *Registry) CreateParty(host model.Member) (*model.Party, error) {
	now := r.clock.Now()
	host.Role = model.RoleUnassigned
	host.Ready = false

	r.mu.Lock()
	defer r.mu.Unlock()

	var code model.PartyCode
	for {
		code = model.PartyCode(r.random.String(CodeLength, CodeAlphabet))
		if _, exists := r.parties[code]; !exists {
			break
		}
	}

	p := &model.Party{
		Code:       code,
		HostID:     host.UserID,
		Settings:   model.DefaultSettings(),
		Unassigned: []model.Member{host},
		Status:     model.PartyStatusLobby,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.parties[code] = &entry{party: p, emptySince: now}

	r.logger.Info("party created",
		slog.String("code", string(code)),
		slog.String("host", string(host.UserID)),
	)
	return p, nil
}

func (r *Registry) lookup(code model.PartyCode) *entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.parties[code]
}

// WithParty runs fn with exclusive access to the party's state.
// fn must validate before mutating so that a rejected command leaves the
// party unchanged. Timer ticks and client commands for the same code all
// pass through here.
func (r *Registry) WithParty(code model.PartyCode, fn func(p *model.Party) error) error {
	e := r.lookup(code)
	if e == nil {
		return model.ErrPartyNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.party == nil {
		// Deleted while we waited on the lock
		return model.ErrPartyNotFound
	}

	if err := fn(e.party); err != nil {
		return err
	}
	e.party.UpdatedAt = r.clock.Now()
	return nil
}

// Delete removes a party from the registry
func (r *Registry) Delete(code model.PartyCode) {
	r.mu.Lock()
	e, ok := r.parties[code]
	if ok {
		delete(r.parties, code)
	}
	r.mu.Unlock()
	if !ok {
		return
	}

	e.mu.Lock()
	e.party = nil
	e.mu.Unlock()

	if r.onDelete != nil {
		r.onDelete(code)
	}
	r.logger.Info("party deleted", slog.String("code", string(code)))
}

// Exists reports whether a party with the given code is registered
func (r *Registry) Exists(code model.PartyCode) bool {
	return r.lookup(code) != nil
}

// Count returns the number of registered parties
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.parties)
}

// NoteRoomOccupied records that the party's room has at least one connection
func (r *Registry) NoteRoomOccupied(code model.PartyCode) {
	if e := r.lookup(code); e != nil {
		e.mu.Lock()
		e.emptySince = time.Time{}
		e.mu.Unlock()
	}
}

// NoteRoomEmpty records that the party's room lost its last connection
func (r *Registry) NoteRoomEmpty(code model.PartyCode) {
	if e := r.lookup(code); e != nil {
		e.mu.Lock()
		e.emptySince = r.clock.Now()
		e.mu.Unlock()
	}
}

// Sweep deletes parties whose rooms have been empty longer than the grace
// period and returns the collected codes
func (r *Registry) Sweep() []model.PartyCode {
	now := r.clock.Now()

	r.mu.RLock()
	var expired []model.PartyCode
	for code, e := range r.parties {
		e.mu.Lock()
		if !e.emptySince.IsZero() && now.Sub(e.emptySince) >= r.gracePeriod {
			expired = append(expired, code)
		}
		e.mu.Unlock()
	}
	r.mu.RUnlock()

	for _, code := range expired {
		r.Delete(code)
	}
	if len(expired) > 0 {
		r.logger.Info("empty parties swept", slog.Int("count", len(expired)))
	}
	return expired
}
