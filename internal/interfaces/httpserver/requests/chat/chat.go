package chatrequests

// SendMessageRequest is the body of POST /chat/message. SessionID is
// optional: absent on the first turn of a new conversation.
type SendMessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}
