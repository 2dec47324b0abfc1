package handler

import (
	"context"
	"net/http"
	"time"

	"reachout/internal/model"
)

// messageCharLimit is LinkedIn's hard cap for connection-request messages.
// Checked here authoritatively, independent of any client-side check.
const messageCharLimit = 300

const previewLength = 50

// maxVariations caps the fan-out of concurrent generation calls paid with the
// caller's API key.
const maxVariations = 5

// Generator is the slice of the text-generation client the handler needs.
type Generator interface {
	GenerateOne(ctx context.Context, target, sender model.Profile, custom, apiKey string) (string, error)
	GenerateMany(ctx context.Context, target, sender model.Profile, count int, custom, apiKey string) ([]string, error)
}

// MessageSender is the slice of the gateway client the handler needs.
type MessageSender interface {
	SendMessage(ctx context.Context, accountID, recipient, text string) (string, error)
}

type MessageHandler struct {
	gen        Generator
	gw         MessageSender
	production bool
	now        func() time.Time
}

func NewMessageHandler(gen Generator, gw MessageSender, production bool) *MessageHandler {
	return &MessageHandler{gen: gen, gw: gw, production: production, now: time.Now}
}

// POST /api/message/generate
func (h *MessageHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Target       *model.Profile `json:"targetProfileData"`
		Sender       *model.Profile `json:"senderProfileData"`
		CustomPrompt string         `json:"customPrompt"`
		Variations   int            `json:"variations"`
		OpenAIAPIKey string         `json:"openaiApiKey"`
	}
	if err := decodeBody(r, &req); err != nil || req.Target == nil || req.Sender == nil {
		writeFailure(w, http.StatusBadRequest, "Both target and sender profile data are required")
		return
	}
	if req.Variations == 0 {
		req.Variations = 1
	}
	if req.Variations < 1 || req.Variations > maxVariations {
		writeFailure(w, http.StatusBadRequest, "variations must be between 1 and 5")
		return
	}

	var messages []string
	var err error
	if req.Variations > 1 {
		messages, err = h.gen.GenerateMany(r.Context(), *req.Target, *req.Sender, req.Variations, req.CustomPrompt, req.OpenAIAPIKey)
	} else {
		var one string
		one, err = h.gen.GenerateOne(r.Context(), *req.Target, *req.Sender, req.CustomPrompt, req.OpenAIAPIKey)
		messages = []string{one}
	}
	if err != nil {
		writeClientError(w, err, h.production)
		return
	}

	writeSuccess(w, map[string]any{
		"messages": messages,
		"target_profile_used": map[string]string{
			"name":      req.Target.Name,
			"job_title": req.Target.JobTitle,
			"company":   req.Target.Company,
			"industry":  req.Target.Industry,
		},
		"sender_profile_used": map[string]string{
			"name":      req.Sender.Name,
			"job_title": req.Sender.JobTitle,
			"company":   req.Sender.Company,
		},
	})
}

// POST /api/message/send
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID   string `json:"accountId"`
		RecipientID string `json:"recipientId"`
		Message     string `json:"message"`
	}
	if err := decodeBody(r, &req); err != nil || req.AccountID == "" || req.RecipientID == "" || req.Message == "" {
		writeFailure(w, http.StatusBadRequest, "Account ID, recipient ID, and message are required")
		return
	}

	runes := []rune(req.Message)
	if len(runes) > messageCharLimit {
		writeFailure(w, http.StatusBadRequest, "Message exceeds LinkedIn character limit (300 characters)")
		return
	}

	messageID, err := h.gw.SendMessage(r.Context(), req.AccountID, req.RecipientID, req.Message)
	if err != nil {
		writeClientError(w, err, h.production)
		return
	}

	preview := req.Message
	if len(runes) > previewLength {
		preview = string(runes[:previewLength]) + "..."
	}
	writeSuccess(w, map[string]any{
		"message_sent":    true,
		"message_id":      messageID,
		"sent_at":         h.now().UTC().Format(time.RFC3339),
		"message_preview": preview,
	})
}
