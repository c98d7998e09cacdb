// Package assistant is the conversational shopping helper. Its
// intelligence is delegated to Gemini; locally it only builds the shop
// context prompt, declares the two permitted tools and maps the model's
// reply back onto shop actions.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/styleshop/fitting-room/catalog"
	"github.com/styleshop/fitting-room/models"
	"github.com/styleshop/fitting-room/shop"
)

const chatModel = "gemini-2.5-flash"

// historyWindow limits how many prior turns are replayed to the model.
const historyWindow = 6

const fallbackReply = "¿En qué más te puedo ayudar?"

// Assistant answers shopper messages through Gemini with tool calling.
type Assistant struct {
	apiKey string
}

// New returns an assistant using the given Gemini API key.
func New(apiKey string) *Assistant {
	return &Assistant{apiKey: apiKey}
}

// Respond sends the message with shop context and the two tool
// declarations, returning the reply text, at most one requested action
// and the catalog products mentioned by name.
func (a *Assistant) Respond(ctx context.Context, req models.AssistantRequest) (models.AssistantResponse, error) {
	if a.apiKey == "" {
		return models.AssistantResponse{}, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(a.apiKey))
	if err != nil {
		return models.AssistantResponse{}, fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel(chatModel)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(BuildSystemPrompt(req.Context))},
	}
	model.Tools = []*genai.Tool{{FunctionDeclarations: toolDeclarations()}}

	chat := model.StartChat()
	chat.History = historyContents(req.ConversationHistory)

	resp, err := chat.SendMessage(ctx, genai.Text(req.Message))
	if err != nil {
		return models.AssistantResponse{}, fmt.Errorf("failed to generate content: %v", err)
	}

	text, call := extractReply(resp)
	if text == "" {
		text = fallbackReply
	}

	out := models.AssistantResponse{
		Response: text,
		Products: MentionedProducts(text, req.Products),
	}
	if call != nil {
		out.Action = ActionFromCall(call.Name, call.Args)
	}
	return out, nil
}

// BuildSystemPrompt renders the fashion-assistant instructions with the
// current shop context baked in.
func BuildSystemPrompt(ctx models.AssistantContext) string {
	mode := "inactivo"
	if ctx.TryOnModeActive {
		mode = "activo"
	}
	tried := strings.Join(ctx.TriedProducts, ", ")
	if tried == "" {
		tried = "ninguna"
	}
	cart := strings.Join(ctx.CartItems, ", ")
	if cart == "" {
		cart = "vacío"
	}

	return fmt.Sprintf(`Eres un asistente de moda inteligente para una tienda de ropa online.

Tu rol es ayudar al usuario con:
1. Activar/desactivar el modo "Probar ahora" (actualmente: %s)
2. Recomendar prendas similares basándote en su historial
3. Agregar prendas al carrito

Contexto actual:
- Prendas probadas: %s
- Carrito: %s
- Productos disponibles: %s

Instrucciones importantes:
- Sé amigable, conciso y útil
- Si el usuario quiere activar/desactivar el modo prueba, confirma la acción
- Si pide recomendaciones, sugiere productos similares basándote en lo que ha probado
- Si quiere agregar algo al carrito, confirma qué producto específico
- Usa emojis ocasionalmente para ser más amigable

Formato de respuesta:
- Para acciones, tu respuesta debe ser clara sobre lo que vas a hacer
- Si recomiendas productos, menciónalos por nombre exacto`,
		mode, tried, cart, strings.Join(ctx.AvailableProducts, ", "))
}

// toolDeclarations lists the entire action vocabulary: toggling try-on
// mode and adding a named product to the cart. Nothing else may
// originate from the assistant.
func toolDeclarations() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		{
			Name:        "toggle_tryon_mode",
			Description: "Activa o desactiva el modo de prueba virtual de prendas",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"enable": {
						Type:        genai.TypeBoolean,
						Description: "true para activar, false para desactivar",
					},
				},
				Required: []string{"enable"},
			},
		},
		{
			Name:        "add_to_cart",
			Description: "Agrega un producto específico al carrito de compras",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"product_name": {
						Type:        genai.TypeString,
						Description: "Nombre exacto del producto a agregar",
					},
				},
				Required: []string{"product_name"},
			},
		},
	}
}

func historyContents(history []models.ChatMessage) []*genai.Content {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := "user"
		if m.Role == "assistant" || m.Role == "model" {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return contents
}

func extractReply(resp *genai.GenerateContentResponse) (string, *genai.FunctionCall) {
	var text strings.Builder
	var call *genai.FunctionCall

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			switch p := part.(type) {
			case genai.Text:
				text.WriteString(string(p))
			case genai.FunctionCall:
				if call == nil {
					fc := p
					call = &fc
				}
			}
		}
	}
	return strings.TrimSpace(text.String()), call
}

// ActionFromCall maps a tool call onto an assistant action. Unknown
// tool names yield no action.
func ActionFromCall(name string, args map[string]any) *models.AssistantAction {
	switch name {
	case "toggle_tryon_mode":
		enable, _ := args["enable"].(bool)
		return &models.AssistantAction{Type: models.ActionToggleTryOn, Value: enable}
	case "add_to_cart":
		productName, _ := args["product_name"].(string)
		if productName == "" {
			return nil
		}
		return &models.AssistantAction{Type: models.ActionAddToCart, ProductName: productName}
	default:
		return nil
	}
}

// MentionedProducts returns the products whose names appear in the
// reply text, case-insensitively.
func MentionedProducts(text string, products []models.Product) []models.Product {
	lower := strings.ToLower(text)
	mentioned := []models.Product{}
	for _, p := range products {
		if strings.Contains(lower, strings.ToLower(p.Name)) {
			mentioned = append(mentioned, p)
		}
	}
	return mentioned
}

// ApplyAction executes an assistant action against the shop store. An
// unknown product name is reported, not fatal.
func ApplyAction(store *shop.Store, action *models.AssistantAction) error {
	if action == nil {
		return nil
	}
	switch action.Type {
	case models.ActionToggleTryOn:
		store.SetTryOnMode(action.Value)
		return nil
	case models.ActionAddToCart:
		p, ok := catalog.FindByName(action.ProductName)
		if !ok {
			return fmt.Errorf("unknown product %q", action.ProductName)
		}
		store.AddToCart(p)
		return nil
	default:
		return fmt.Errorf("unknown action type %q", action.Type)
	}
}
