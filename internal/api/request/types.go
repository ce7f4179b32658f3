package request

// LoginRequest is the request body for obtaining an access token
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// CreateSessionRequest is the request body for opening a lobby session
type CreateSessionRequest struct {
	GameServer string `json:"gameServer"`
}
