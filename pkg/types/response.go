package types

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the JSON body every API endpoint responds with.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}
