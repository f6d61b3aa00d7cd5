package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "supportchat/internal/domain/chat"
	"supportchat/internal/infrastructure/metrics"
	chatrequests "supportchat/internal/interfaces/httpserver/requests/chat"
	chatresponses "supportchat/internal/interfaces/httpserver/responses/chat"
)

// ChatHandler translates the HTTP wire contract into chat service calls.
// Clients never see raw internal errors: every failure maps to one of a
// small set of generic messages per endpoint.
type ChatHandler struct {
	service domain.Service
	log     zerolog.Logger
}

// NewChatHandler wires dependencies for the chat routes.
func NewChatHandler(service domain.Service, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		log:     log.With().Str("component", "chat-handler").Logger(),
	}
}

// SendMessage godoc
// @Summary      Post a user message and receive the assistant reply
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      chatrequests.SendMessageRequest  true  "user message with optional session id"
// @Success      200  {object}  chatresponses.SendMessageResponse
// @Failure      400  {object}  chatresponses.ErrorResponse
// @Failure      404  {object}  chatresponses.ErrorResponse
// @Failure      500  {object}  chatresponses.ErrorResponse
// @Router       /chat/message [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req chatrequests.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, chatresponses.ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.service.SendMessage(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, chatresponses.ErrorResponse{Error: "Message cannot be empty"})
		case errors.Is(err, domain.ErrConversationNotFound):
			c.JSON(http.StatusNotFound, chatresponses.ErrorResponse{Error: "Conversation not found"})
		default:
			metrics.RecordTurn("error")
			h.log.Error().Err(err).Msg("send message failed")
			c.JSON(http.StatusInternalServerError, chatresponses.ErrorResponse{Error: "Unexpected server error"})
		}
		return
	}

	if result.Fallback {
		metrics.RecordTurn("fallback")
	} else {
		metrics.RecordTurn("ok")
	}

	c.JSON(http.StatusOK, chatresponses.SendMessageResponse{
		Reply:     result.Reply,
		SessionID: result.SessionID,
	})
}

// GetHistory godoc
// @Summary      Fetch the full message history of a conversation
// @Tags         chat
// @Produce      json
// @Param        sessionId  path      string  true  "session identifier"
// @Success      200  {object}  chatresponses.HistoryResponse
// @Failure      400  {object}  chatresponses.ErrorResponse
// @Failure      404  {object}  chatresponses.ErrorResponse
// @Failure      500  {object}  chatresponses.ErrorResponse
// @Router       /chat/history/{sessionId} [get]
func (h *ChatHandler) GetHistory(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, chatresponses.ErrorResponse{Error: "sessionId is required"})
		return
	}

	messages, err := h.service.History(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, chatresponses.ErrorResponse{Error: "Conversation not found"})
			return
		}
		h.log.Error().Err(err).Str("session_id", sessionID).Msg("fetch history failed")
		c.JSON(http.StatusInternalServerError, chatresponses.ErrorResponse{Error: "Failed to fetch conversation history"})
		return
	}

	c.JSON(http.StatusOK, chatresponses.NewHistoryResponse(sessionID, messages))
}

// ListConversations godoc
// @Summary      List all conversations, newest first
// @Tags         chat
// @Produce      json
// @Success      200  {array}   chatresponses.ConversationSummaryResponse
// @Failure      500  {object}  chatresponses.ErrorResponse
// @Router       /chat/conversations [get]
func (h *ChatHandler) ListConversations(c *gin.Context) {
	summaries, err := h.service.ListConversations(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list conversations failed")
		c.JSON(http.StatusInternalServerError, chatresponses.ErrorResponse{Error: "Failed to fetch conversations"})
		return
	}

	c.JSON(http.StatusOK, chatresponses.NewConversationListResponse(summaries))
}
