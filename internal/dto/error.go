package dto

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path"`
}
