package request

// CreateGuestRequest is the body for POST /players/guest
type CreateGuestRequest struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

// RegisterRequest is the body for POST /hosts/register
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	AvatarURL string `json:"avatarUrl"`
}

// LoginRequest is the body for POST /hosts/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SaveWordPackRequest is the body for PUT /wordpacks/{name}
type SaveWordPackRequest struct {
	Words []string `json:"words"`
}
