package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pjessen/partywords/internal/api/middleware"
	"github.com/pjessen/partywords/internal/api/response"
	"github.com/pjessen/partywords/internal/model"
	"github.com/pjessen/partywords/internal/services/party"
)

// PartyHandler handles party lifecycle endpoints. Gameplay itself runs
// over the websocket; these endpoints cover creation and the snapshot a
// reconnecting client fetches before re-opening its socket.
type PartyHandler struct {
	registry *party.Registry
	parties  *party.Controller
}

// NewPartyHandler creates a new party handler
func NewPartyHandler(registry *party.Registry, parties *party.Controller) *PartyHandler {
	return &PartyHandler{
		registry: registry,
		parties:  parties,
	}
}

// Create handles POST /api/v1/parties. Host accounts only.
func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	p, err := h.registry.CreateParty(session.Member())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PartyCreatedResponse{Code: string(p.Code)})
}

// Get handles GET /api/v1/parties/{code}. The snapshot is rendered for
// the caller, so spymasters get tile identities and everyone else does
// not.
func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := model.PartyCode(mux.Vars(r)["code"])

	snap, err := h.parties.Snapshot(code)
	if err != nil {
		WriteError(w, err)
		return
	}

	var viewer model.UserID
	if session := middleware.GetSession(r.Context()); session != nil {
		viewer = session.UserID
	}

	response.JSON(w, http.StatusOK, response.NewPartyView(snap, viewer))
}
