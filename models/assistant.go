package models

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AssistantContext is the shop state snapshot sent with every
// assistant request.
type AssistantContext struct {
	TryOnModeActive   bool     `json:"tryOnModeActive"`
	TriedProducts     []string `json:"triedProducts"`
	CartItems         []string `json:"cartItems"`
	AvailableProducts []string `json:"availableProducts"`
}

// AssistantRequest is the request body of the assistant boundary.
type AssistantRequest struct {
	Message             string           `json:"message"`
	Context             AssistantContext `json:"context"`
	ConversationHistory []ChatMessage    `json:"conversationHistory"`
	Products            []Product        `json:"products"`
}

// Assistant action types. These two are the entire action vocabulary;
// no other side effect may originate from the assistant.
const (
	ActionToggleTryOn = "toggle_tryon"
	ActionAddToCart   = "add_to_cart"
)

// AssistantAction is a side effect requested by the assistant.
type AssistantAction struct {
	Type        string `json:"type"`
	Value       bool   `json:"value,omitempty"`
	ProductName string `json:"productName,omitempty"`
}

// AssistantResponse is the response body of the assistant boundary.
// Products lists catalog items mentioned by name in the reply.
type AssistantResponse struct {
	Response string           `json:"response"`
	Action   *AssistantAction `json:"action,omitempty"`
	Products []Product        `json:"products"`
}
