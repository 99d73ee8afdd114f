package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/pjessen/partywords/internal/api/response"
	"github.com/pjessen/partywords/internal/model"
	"github.com/pjessen/partywords/internal/services/auth"
	"github.com/pjessen/partywords/internal/services/game"
	"github.com/pjessen/partywords/internal/services/party"
)

// Handler upgrades party websocket connections and dispatches commands.
// Successful commands broadcast a fresh per-viewer party snapshot to the
// room; failures go back to the offending client alone.
type Handler struct {
	upgrader websocket.Upgrader
	auth     *auth.Service
	parties  *party.Controller
	games    *game.Controller
	registry *party.Registry
	hubs     *HubManager
	logger   *slog.Logger
}

// NewHandler creates a new websocket Handler
func NewHandler(
	authService *auth.Service,
	parties *party.Controller,
	games *game.Controller,
	registry *party.Registry,
	hubs *HubManager,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		auth:     authService,
		parties:  parties,
		games:    games,
		registry: registry,
		hubs:     hubs,
		logger:   logger.With(slog.String("component", "ws")),
	}
}

// ServeHTTP handles GET /ws/{code}. The session token travels in the
// query string because browsers cannot set headers on websocket dials.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code := model.PartyCode(mux.Vars(r)["code"])

	session, err := h.auth.ValidateSession(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "invalid session", http.StatusUnauthorized)
		return
	}
	if !h.registry.Exists(code) {
		http.Error(w, "party not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", slog.Any("error", err))
		return
	}

	if err := h.parties.Join(code, session.Member()); err != nil {
		h.sendDirect(conn, EventJoinParty, err)
		_ = conn.Close()
		return
	}

	hub := h.hubs.GetOrCreateHub(code)
	client := newClient(hub, conn, session.UserID, h.logger)
	if !hub.register(client) {
		_ = conn.Close()
		return
	}
	h.registry.NoteRoomOccupied(code)

	go client.writePump()
	go func() {
		client.readPump(func(c *Client, env Envelope) {
			h.dispatch(code, c, env)
		})
		if hub.ClientCount() == 0 {
			h.registry.NoteRoomEmpty(code)
		}
	}()

	h.BroadcastState(code)
}

// dispatch routes one command envelope from a client
func (h *Handler) dispatch(code model.PartyCode, c *Client, env Envelope) {
	var err error
	switch env.Event {
	case EventJoinParty:
		// Already joined on connect; re-broadcast for reconnects
	case EventLeaveParty:
		err = h.parties.Leave(code, c.userID)
	case EventJoinTeam:
		var p JoinTeamPayload
		if err = decode(env.Data, &p); err == nil {
			err = h.parties.AssignRole(code, c.userID, model.Team(p.Team), model.MemberRole(p.Role))
		}
	case EventUnassignPlayer:
		err = h.parties.Unassign(code, c.userID)
	case EventSetReady:
		var p SetReadyPayload
		if err = decode(env.Data, &p); err == nil {
			err = h.parties.SetReady(code, c.userID, p.Ready)
		}
	case EventUpdateSettings:
		var p UpdateSettingsPayload
		if err = decode(env.Data, &p); err == nil {
			err = h.parties.UpdateSettings(code, c.userID, settingsFromPayload(p))
		}
	case EventStartGame:
		err = h.games.StartGame(context.Background(), code, c.userID)
	case EventGiveHint:
		var p GiveHintPayload
		if err = decode(env.Data, &p); err == nil {
			err = h.games.GiveHint(code, c.userID, p.Word, p.Count)
		}
	case EventRevealTile:
		var p TilePayload
		if err = decode(env.Data, &p); err == nil {
			err = h.games.RevealTile(code, c.userID, p.Index)
		}
	case EventSuspectWord:
		var p TilePayload
		if err = decode(env.Data, &p); err == nil {
			member := model.Member{UserID: c.userID}
			if snap, snapErr := h.parties.Snapshot(code); snapErr == nil {
				if m := snap.GetMember(c.userID); m != nil {
					member = *m
				}
			}
			err = h.games.SuspectTile(code, member, p.Index)
		}
	case EventUseSpymasterAbility:
		var p SwapPayload
		if err = decode(env.Data, &p); err == nil {
			err = h.games.UseSpymasterSwap(code, c.userID, p.TeamTileIndex, p.NeutralTileIndex)
		}
	case EventUseOperativeAbility:
		var p PeekPayload
		if err = decode(env.Data, &p); err == nil {
			if err = h.games.UseOperativePeek(code, c.userID, p.Row); err == nil {
				h.sendPeekResult(code, c.userID)
			}
		}
	case EventResetGame:
		err = h.games.ResetGame(code, c.userID)
	default:
		err = errors.New("unknown event")
	}

	if err != nil {
		h.sendError(c, env.Event, err)
		return
	}
	h.BroadcastState(code)
}

// BroadcastState publishes a per-viewer snapshot of the party to its room
func (h *Handler) BroadcastState(code model.PartyCode) {
	hub := h.hubs.GetHub(code)
	if hub == nil {
		return
	}
	snap, err := h.parties.Snapshot(code)
	if err != nil {
		return
	}
	hub.Publish(func(viewer model.UserID) []byte {
		return mustEnvelope(EventPartyState, response.NewPartyView(snap, viewer))
	})
}

// sendPeekResult delivers the stored peek answer to the actor's team only
func (h *Handler) sendPeekResult(code model.PartyCode, actorID model.UserID) {
	hub := h.hubs.GetHub(code)
	if hub == nil {
		return
	}
	snap, err := h.parties.Snapshot(code)
	if err != nil || snap.Game == nil || snap.Game.Crazy == nil {
		return
	}
	team, ok := snap.MemberTeam(actorID)
	if !ok {
		return
	}
	use := snap.Game.Crazy.UsedAbilities[team]
	if use == nil || use.PeekResult == nil {
		return
	}
	msg := mustEnvelope(EventPeekResult, response.PeekResultView{
		Row:         use.PeekResult.Row,
		HasTeamWord: use.PeekResult.HasTeamWord,
	})
	hub.SendToUsers(snap.TeamUserIDs(team), msg)
}

func (h *Handler) sendError(c *Client, event string, err error) {
	payload := CommandErrorPayload{
		Event:   event,
		Code:    errorCode(err),
		Message: err.Error(),
	}
	if !c.enqueue(mustEnvelope(EventCommandError, payload)) {
		h.logger.Warn("ws error message dropped",
			slog.String("user_id", string(c.userID)))
	}
}

// sendDirect writes an error on a connection that never joined a hub
func (h *Handler) sendDirect(conn *websocket.Conn, event string, err error) {
	payload := CommandErrorPayload{
		Event:   event,
		Code:    errorCode(err),
		Message: err.Error(),
	}
	_ = conn.WriteMessage(websocket.TextMessage, mustEnvelope(EventCommandError, payload))
}

// errorCode maps domain errors to stable wire codes
func errorCode(err error) string {
	switch {
	case errors.Is(err, model.ErrPartyNotFound):
		return "party_not_found"
	case errors.Is(err, model.ErrNotHost):
		return "not_host"
	case errors.Is(err, model.ErrNotInParty):
		return "not_in_party"
	case errors.Is(err, model.ErrTeamFull):
		return "team_full"
	case errors.Is(err, model.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, model.ErrWrongRole):
		return "wrong_role"
	case errors.Is(err, model.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, model.ErrAlreadyRevealed):
		return "already_revealed"
	case errors.Is(err, model.ErrInvalidTile):
		return "invalid_tile"
	case errors.Is(err, model.ErrInvalidRow):
		return "invalid_row"
	case errors.Is(err, model.ErrAbilityUsed):
		return "ability_used"
	case errors.Is(err, model.ErrInvalidSettings):
		return "invalid_settings"
	case errors.Is(err, model.ErrInsufficientWords):
		return "insufficient_words"
	case errors.Is(err, model.ErrWordPackNotFound):
		return "word_pack_not_found"
	default:
		return "internal_error"
	}
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return errors.New("missing payload")
	}
	return json.Unmarshal(raw, v)
}

func settingsFromPayload(p UpdateSettingsPayload) model.Settings {
	return model.Settings{
		BoardSize:     p.BoardSize,
		MaxSpymasters: p.MaxSpymasters,
		AssassinCount: p.AssassinCount,
		Mode:          model.GameMode(p.Mode),
		Timer: model.TimerSettings{
			Enabled:          p.TimerEnabled,
			SpymasterSeconds: p.SpymasterSecs,
			OperativeSeconds: p.OperativeSecs,
		},
		Dictionary: model.DictionarySettings{
			Kind:        model.DictionaryKind(p.Dictionary),
			CustomWords: p.CustomWords,
			Pack:        p.WordPack,
		},
	}
}
