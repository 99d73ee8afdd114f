package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pjessen/partywords/internal/api/middleware"
	"github.com/pjessen/partywords/internal/api/request"
	"github.com/pjessen/partywords/internal/api/response"
	"github.com/pjessen/partywords/internal/model"
	"github.com/pjessen/partywords/internal/services/words"
)

// WordsHandler handles dictionary and word pack endpoints
type WordsHandler struct {
	wordsService *words.Service
}

// NewWordsHandler creates a new words handler
func NewWordsHandler(wordsService *words.Service) *WordsHandler {
	return &WordsHandler{wordsService: wordsService}
}

// ListDictionaries handles GET /api/v1/dictionaries
func (h *WordsHandler) ListDictionaries(w http.ResponseWriter, r *http.Request) {
	kinds := []model.DictionaryKind{model.DictionaryEnglish, model.DictionaryFrench}
	out := make([]response.DictionaryResponse, 0, len(kinds))
	for _, kind := range kinds {
		out = append(out, response.DictionaryResponse{
			Kind:      string(kind),
			WordCount: h.wordsService.Count(kind),
		})
	}
	response.JSON(w, http.StatusOK, out)
}

// ListPacks handles GET /api/v1/wordpacks
func (h *WordsHandler) ListPacks(w http.ResponseWriter, r *http.Request) {
	packs, err := h.wordsService.ListPacks(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.WordPackResponse, 0, len(packs))
	for _, pack := range packs {
		out = append(out, response.WordPackFromModel(pack, false))
	}
	response.JSON(w, http.StatusOK, out)
}

// GetPack handles GET /api/v1/wordpacks/{name}
func (h *WordsHandler) GetPack(w http.ResponseWriter, r *http.Request) {
	pack, err := h.wordsService.GetPack(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.WordPackFromModel(pack, true))
}

// SavePack handles PUT /api/v1/wordpacks/{name}. Host accounts only.
func (h *WordsHandler) SavePack(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	name := mux.Vars(r)["name"]

	var req request.SaveWordPackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if name == "" {
		WriteError(w, NewInvalidRequestError("pack name is required"))
		return
	}
	if len(req.Words) == 0 {
		WriteError(w, NewInvalidRequestError("words are required"))
		return
	}

	pack, err := h.wordsService.SavePack(r.Context(), name, session.UserID, req.Words)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.WordPackFromModel(pack, true))
}

// DeletePack handles DELETE /api/v1/wordpacks/{name}. Host accounts only.
func (h *WordsHandler) DeletePack(w http.ResponseWriter, r *http.Request) {
	if err := h.wordsService.DeletePack(r.Context(), mux.Vars(r)["name"]); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}
