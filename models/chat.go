package models

// ChatMessage is one entry of the per-question tutor conversation.
type ChatMessage struct {
	ID        int64  `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// ChatRequest is the body of POST /ai/chat.
type ChatRequest struct {
	QuestionID int64  `json:"question_id"`
	Message    string `json:"message"`
	Language   string `json:"language,omitempty"`
}

// ChatReply is the tutor's answer to a [ChatRequest].
type ChatReply struct {
	Reply string `json:"reply"`
}
