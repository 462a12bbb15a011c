package domain

import (
	"strings"

	"github.com/rishabhsai/RishBOT/internal/imaging"
)

// SolveRequest asks for a step-by-step solution.
type SolveRequest struct {
	Problem string `json:"problem"`
	Type    string `json:"type"`
}

// Validate checks required fields.
func (r *SolveRequest) Validate() error {
	if r == nil || !present(r.Problem, r.Type) {
		return NewValidationError("Problem and type are required")
	}
	return nil
}

// WriteRequest asks for an essay.
type WriteRequest struct {
	Topic          string `json:"topic"`
	Type           string `json:"type"`
	Tone           string `json:"tone"`
	Length         string `json:"length"`
	AdditionalInfo string `json:"additionalInfo"`
}

// Validate checks required fields. AdditionalInfo may be empty.
func (r *WriteRequest) Validate() error {
	if r == nil || !present(r.Topic, r.Type, r.Tone, r.Length) {
		return NewValidationError("All fields are required")
	}
	return nil
}

// ModifyRequest asks for a rewrite of part of an essay.
type ModifyRequest struct {
	Text        string `json:"text"`
	Context     string `json:"context"`
	Type        string `json:"type"`
	Tone        string `json:"tone"`
	Instruction string `json:"instruction"`
}

// Validate checks required fields. Instruction may be empty.
func (r *ModifyRequest) Validate() error {
	if r == nil || !present(r.Text, r.Context, r.Type, r.Tone) {
		return NewValidationError("All fields are required")
	}
	return nil
}

// ExpandStepRequest asks for more detail on a solution. It has two shapes:
// a single step ({step, problem, type}) or a follow-up question on a full
// solution ({problem, solution, followUp, type, history}).
type ExpandStepRequest struct {
	Step     string        `json:"step"`
	Problem  string        `json:"problem"`
	Type     string        `json:"type"`
	Solution string        `json:"solution"`
	FollowUp string        `json:"followUp"`
	History  []HistoryTurn `json:"history"`
}

// IsFollowUp reports whether the request uses the follow-up shape.
func (r *ExpandStepRequest) IsFollowUp() bool {
	return r.FollowUp != "" || r.Solution != ""
}

// Validate checks the required fields of whichever shape is in use.
func (r *ExpandStepRequest) Validate() error {
	if r == nil {
		return NewValidationError("Step, problem, and type are required")
	}
	if r.IsFollowUp() {
		if !present(r.Problem, r.Solution, r.FollowUp, r.Type) {
			return NewValidationError("Problem, solution, followUp, and type are required")
		}
		return nil
	}
	if !present(r.Step, r.Problem, r.Type) {
		return NewValidationError("Step, problem, and type are required")
	}
	return nil
}

// ChatRequest is a student's question about one solution step.
type ChatRequest struct {
	Message string `json:"message"`
	Step    string `json:"step"`
	Problem string `json:"problem"`
	Type    string `json:"type"`
}

// Validate checks required fields.
func (r *ChatRequest) Validate() error {
	if r == nil || !present(r.Message, r.Step, r.Problem, r.Type) {
		return NewValidationError("Message, step, problem, and type are required")
	}
	return nil
}

// AnalyzeScreenRequest carries a captured screenshot as a data URL.
type AnalyzeScreenRequest struct {
	Image string `json:"image"`
	Mode  string `json:"mode,omitempty"`
}

// Validate checks the image and mode.
func (r *AnalyzeScreenRequest) Validate() error {
	if r == nil || !present(r.Image) {
		return NewValidationError("No image provided")
	}
	if _, err := ParseMode(r.Mode); err != nil {
		return NewValidationError("Mode must be local or cloud")
	}
	return nil
}

// DecodeImage parses the data URL.
func (r *AnalyzeScreenRequest) DecodeImage() (Image, error) {
	mediaType, data, err := imaging.ParseDataURL(r.Image)
	if err != nil {
		return Image{}, NewValidationError("Image must be a base64-encoded data URL")
	}
	return Image{MediaType: mediaType, Data: data}, nil
}

// ScreenChatRequest is a question about previously extracted screen text.
type ScreenChatRequest struct {
	ExtractedText string        `json:"extractedText"`
	UserQuery     string        `json:"userQuery"`
	ChatHistory   []ChatMessage `json:"chatHistory"`
}

// Validate checks required fields. ChatHistory must be sent but may be an empty list.
func (r *ScreenChatRequest) Validate() error {
	if r == nil || !present(r.ExtractedText, r.UserQuery) || r.ChatHistory == nil {
		return NewValidationError("Extracted text, user query, and chat history are required")
	}
	return nil
}

// present reports whether every value has non-whitespace content.
func present(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
