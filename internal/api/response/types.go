package response

import (
	"github.com/pjessen/partywords/internal/model"
	"github.com/pjessen/partywords/internal/services/auth"
)

// AuthResponse carries a session token and its identity
type AuthResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Host      bool   `json:"host"`
}

// AuthResponseFromSession builds an AuthResponse
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Token:     s.Token,
		UserID:    string(s.UserID),
		Username:  s.Username,
		AvatarURL: s.AvatarURL,
		Host:      s.Host,
	}
}

// PartyCreatedResponse carries the join code of a fresh party
type PartyCreatedResponse struct {
	Code string `json:"code"`
}

// WordPackResponse is one stored word pack
type WordPackResponse struct {
	Name      string   `json:"name"`
	WordCount int      `json:"wordCount"`
	Words     []string `json:"words,omitempty"`
}

// WordPackFromModel builds a WordPackResponse. Words are included only
// when full is set; listings carry just the count.
func WordPackFromModel(pack *model.WordPack, full bool) WordPackResponse {
	out := WordPackResponse{
		Name:      pack.Name,
		WordCount: len(pack.Words),
	}
	if full {
		out.Words = pack.Words
	}
	return out
}

// DictionaryResponse describes one selectable dictionary
type DictionaryResponse struct {
	Kind      string `json:"kind"`
	WordCount int    `json:"wordCount"`
}
