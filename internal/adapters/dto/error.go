package dto

// ErrorResponse is the body of every API error. Upstream is true when the
// failure came from the registry rather than from the request.
type ErrorResponse struct {
	Error    string `json:"error"`
	Kind     string `json:"kind,omitempty"`
	Upstream bool   `json:"upstream"`
}
