package domain

import (
	"fmt"
	"strings"
)

// Field values are substituted verbatim. Templates follow the wording the
// frontend was tuned against; change them together with the UI copy.

const screenAssistantSystemPrompt = "You are an AI assistant specialized in analyzing screen content. " +
	"Provide concise and helpful answers based on the provided extracted text."

// AnalyzeScreenPrompt is sent alongside the screenshot to vision models.
const AnalyzeScreenPrompt = "Analyze this image. Extract all visible text and provide a general summary " +
	"or description of the content. If there are any mathematical equations, attempt to identify them."

// SolvePrompt builds the prompt for /api/solve.
func SolvePrompt(req *SolveRequest) string {
	return fmt.Sprintf("Solve this %s problem step by step: %s", req.Type, req.Problem)
}

// WritePrompt builds the prompt for /api/write.
func WritePrompt(req *WriteRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s %s essay about \"%s\" in a %s tone.", req.Length, req.Type, req.Topic, req.Tone)
	if req.AdditionalInfo != "" {
		fmt.Fprintf(&b, " Here is some additional information to consider: %s.", req.AdditionalInfo)
	}
	b.WriteString(" Don't write in markdown.")
	return b.String()
}

// ModifyPrompt builds the prompt for /api/modify.
func ModifyPrompt(req *ModifyRequest) string {
	return fmt.Sprintf(
		"Based on the following context and essay type/tone, please fulfill this request: \"%s\". "+
			"The original essay is a %s essay with a %s tone. Here's the full essay: \n\n%s\n\n"+
			"And here is the specific text to modify: %s. "+
			"Just respond with the changes, do not say stuff like \"Sure, here is the changed paragraph\". "+
			"Just respond with the changed paragraph, no other details, and do not use markdown.",
		req.Instruction, req.Type, req.Tone, req.Context, req.Text,
	)
}

// ExpandStepPrompt builds the prompt for /api/expand-step in either shape.
func ExpandStepPrompt(req *ExpandStepRequest) string {
	if !req.IsFollowUp() {
		return fmt.Sprintf(
			"Explain this step of a %s problem in more detail.\n"+
				"Original problem: %s\n"+
				"Step: %s\n\n"+
				"Break the step down, show any intermediate work and explain why it is valid. "+
				"Get straight to the point.",
			req.Type, req.Problem, req.Step,
		)
	}

	var b strings.Builder
	fmt.Fprintf(&b,
		"You are an expert at explaining %s problems. Here is the original problem and the solution "+
			"provided so far. The user may ask follow-up questions. Always get straight to the point. "+
			"Do NOT say things like 'Sure' or 'Here's a detailed response to the follow-up question:', "+
			"just answer directly.\n\nOriginal problem: %s\nSolution so far: %s",
		req.Type, req.Problem, req.Solution,
	)
	b.WriteString(FormatHistory(req.History))
	fmt.Fprintf(&b, "\nFollow-up request: %s\n\nRespond to the follow-up in detail, concisely, and explain", req.FollowUp)
	return b.String()
}

// FormatHistory renders prior exchanges as numbered Q/A pairs in their original order.
func FormatHistory(history []HistoryTurn) string {
	var b strings.Builder
	for i, turn := range history {
		fmt.Fprintf(&b, "\n\nQ%d: %s\nA%d: %s", i+1, turn.Question, i+1, turn.Answer)
	}
	return b.String()
}

// ChatPrompt builds the prompt for /api/chat.
func ChatPrompt(req *ChatRequest) string {
	return fmt.Sprintf(`I'm helping a student understand a step in solving a %s problem.
Original problem: %s
Current step: %s

Student's question: %s

Please provide a helpful and detailed response that:
1. Directly addresses the student's question
2. Provides additional context if needed
3. Uses clear and simple language
4. Includes examples if helpful
5. Encourages understanding rather than just memorization

Make your response conversational and supportive.`, req.Type, req.Problem, req.Step, req.Message)
}

// ScreenChatMessages builds the role-tagged conversation for /api/screen/chat:
// a system message carrying the extracted text, the client's history in order,
// then the new question.
func ScreenChatMessages(req *ScreenChatRequest) []Message {
	messages := make([]Message, 0, len(req.ChatHistory)+2)
	messages = append(messages, Message{
		Role: RoleSystem,
		Content: fmt.Sprintf("%s\n\nHere is the extracted text from the screen:\n\n\"\"\"\n%s\n\"\"\"",
			screenAssistantSystemPrompt, req.ExtractedText),
	})

	for _, msg := range req.ChatHistory {
		messages = append(messages, Message{Role: normalizeRole(msg.Role), Content: msg.Content})
	}

	messages = append(messages, Message{
		Role:    RoleUser,
		Content: "Based on this, answer the following question: " + req.UserQuery,
	})
	return messages
}

// normalizeRole maps client roles onto user/assistant; anything unknown is treated as user.
func normalizeRole(role string) string {
	switch strings.ToLower(role) {
	case RoleAssistant, "ai", "model":
		return RoleAssistant
	default:
		return RoleUser
	}
}
