package domain

import (
	"encoding/base64"
	"time"
)

// Message roles understood by every provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// CompletionRequest represents a unified LLM request.
type CompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// Message represents a chat message.
type Message struct {
	Role    string  `json:"role"` // user, assistant, system
	Content string  `json:"content"`
	Images  []Image `json:"images,omitempty"`
}

// Image is a decoded image attached to a message.
type Image struct {
	MediaType string `json:"media_type"`
	Data      []byte `json:"data"`
}

// Base64 returns the standard base64 encoding of the image bytes.
func (i Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURL renders the image as a data URL.
func (i Image) DataURL() string {
	return "data:" + i.MediaType + ";base64," + i.Base64()
}

// CompletionResponse represents a unified LLM response.
type CompletionResponse struct {
	ID         string    `json:"id"`
	Model      string    `json:"model"`
	Provider   string    `json:"provider"`
	Content    string    `json:"content"`
	Usage      Usage     `json:"usage"`
	FinishTime time.Time `json:"finish_time"`
}

// Usage tracks token consumption.
type Usage struct {
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	Cost             float64 `json:"cost,omitempty"`
}

// OCRResult is the outcome of a screen analysis.
type OCRResult struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// CloudConfidence is reported for vision-model analyses, which carry no score of their own.
const CloudConfidence = 100.0

// HistoryTurn is one prior follow-up exchange supplied by the client.
type HistoryTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ChatMessage is one prior role-tagged turn supplied by the client.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
