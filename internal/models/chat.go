package models

// ChatRequest is the payload sent to the chat endpoints.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ChatResponse is the reply from the AI chat.
type ChatResponse struct {
	Reply          string `json:"reply"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// EchoResponse is the reply from the static echo endpoint.
type EchoResponse struct {
	Reply string `json:"reply"`
}

// ErrorResponse is the flat error shape all endpoints return.
type ErrorResponse struct {
	Error string `json:"error"`
}
