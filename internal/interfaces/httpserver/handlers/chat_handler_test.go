package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "supportchat/internal/domain/chat"
	"supportchat/internal/interfaces/httpserver/handlers"
)

// MockChatService is a mock implementation of chat.Service for testing.
type MockChatService struct {
	SendMessageFunc       func(ctx context.Context, sessionID, text string) (*domain.TurnResult, error)
	HistoryFunc           func(ctx context.Context, sessionID string) ([]domain.Message, error)
	ListConversationsFunc func(ctx context.Context) ([]domain.ConversationSummary, error)
}

func (m *MockChatService) SendMessage(ctx context.Context, sessionID, text string) (*domain.TurnResult, error) {
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, sessionID, text)
	}
	return nil, nil
}

func (m *MockChatService) History(ctx context.Context, sessionID string) ([]domain.Message, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, sessionID)
	}
	return nil, nil
}

func (m *MockChatService) ListConversations(ctx context.Context) ([]domain.ConversationSummary, error) {
	if m.ListConversationsFunc != nil {
		return m.ListConversationsFunc(ctx)
	}
	return nil, nil
}

func setupChatTestRouter(handler *handlers.ChatHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/chat")
	{
		group.POST("/message", handler.SendMessage)
		group.GET("/history/:sessionId", handler.GetHistory)
		group.GET("/conversations", handler.ListConversations)
	}
	return r
}

func TestChatHandler_SendMessage(t *testing.T) {
	mockService := &MockChatService{
		SendMessageFunc: func(ctx context.Context, sessionID, text string) (*domain.TurnResult, error) {
			if text != "where is my order?" {
				t.Errorf("Expected message to pass through, got %q", text)
			}
			return &domain.TurnResult{Reply: "5-7 business days", SessionID: "conv_abc123"}, nil
		},
	}

	handler := handlers.NewChatHandler(mockService, zerolog.Nop())
	router := setupChatTestRouter(handler)

	body, _ := json.Marshal(map[string]string{"message": "where is my order?"})
	req, _ := http.NewRequest("POST", "/chat/message", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["reply"] != "5-7 business days" {
		t.Errorf("Expected reply '5-7 business days', got %v", response["reply"])
	}
	if response["sessionId"] != "conv_abc123" {
		t.Errorf("Expected sessionId 'conv_abc123', got %v", response["sessionId"])
	}
}

func TestChatHandler_SendMessage_EmptyMessage(t *testing.T) {
	mockService := &MockChatService{
		SendMessageFunc: func(ctx context.Context, sessionID, text string) (*domain.TurnResult, error) {
			return nil, domain.ErrEmptyMessage
		},
	}

	handler := handlers.NewChatHandler(mockService, zerolog.Nop())
	router := setupChatTestRouter(handler)

	body, _ := json.Marshal(map[string]string{"message": "   "})
	req, _ := http.NewRequest("POST", "/chat/message", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["error"] != "Message cannot be empty" {
		t.Errorf("Unexpected error message: %v", response["error"])
	}
}

func TestChatHandler_SendMessage_MalformedBody(t *testing.T) {
	handler := handlers.NewChatHandler(&MockChatService{}, zerolog.Nop())
	router := setupChatTestRouter(handler)

	req, _ := http.NewRequest("POST", "/chat/message", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["error"] != "Invalid request body" {
		t.Errorf("Expected parse failures to get their own message, got %v", response["error"])
	}
}

func TestChatHandler_SendMessage_UnknownSession(t *testing.T) {
	mockService := &MockChatService{
		SendMessageFunc: func(ctx context.Context, sessionID, text string) (*domain.TurnResult, error) {
			return nil, domain.ErrConversationNotFound
		},
	}

	handler := handlers.NewChatHandler(mockService, zerolog.Nop())
	router := setupChatTestRouter(handler)

	body, _ := json.Marshal(map[string]string{"message": "hi", "sessionId": "conv_missing"})
	req, _ := http.NewRequest("POST", "/chat/message", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestChatHandler_SendMessage_InternalError(t *testing.T) {
	mockService := &MockChatService{
		SendMessageFunc: func(ctx context.Context, sessionID, text string) (*domain.TurnResult, error) {
			return nil, errors.New("database down")
		},
	}

	handler := handlers.NewChatHandler(mockService, zerolog.Nop())
	router := setupChatTestRouter(handler)

	body, _ := json.Marshal(map[string]string{"message": "hi"})
	req, _ := http.NewRequest("POST", "/chat/message", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["error"] != "Unexpected server error" {
		t.Errorf("Internal details must not leak, got %v", response["error"])
	}
}

func TestChatHandler_GetHistory(t *testing.T) {
	mockService := &MockChatService{
		HistoryFunc: func(ctx context.Context, sessionID string) ([]domain.Message, error) {
			if sessionID != "conv_abc123" {
				t.Errorf("Expected sessionId 'conv_abc123', got %q", sessionID)
			}
			return []domain.Message{
				{Sender: domain.SenderUser, Text: "hi"},
				{Sender: domain.SenderAI, Text: "hello"},
			}, nil
		},
	}

	handler := handlers.NewChatHandler(mockService, zerolog.Nop())
	router := setupChatTestRouter(handler)

	req, _ := http.NewRequest("GET", "/chat/history/conv_abc123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		SessionID string `json:"sessionId"`
		Messages  []struct {
			Sender string `json:"sender"`
			Text   string `json:"text"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.SessionID != "conv_abc123" {
		t.Errorf("Expected sessionId 'conv_abc123', got %q", response.SessionID)
	}
	if len(response.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(response.Messages))
	}
	if response.Messages[0].Sender != "user" || response.Messages[0].Text != "hi" {
		t.Errorf("Unexpected first message: %+v", response.Messages[0])
	}
}

func TestChatHandler_GetHistory_NotFound(t *testing.T) {
	mockService := &MockChatService{
		HistoryFunc: func(ctx context.Context, sessionID string) ([]domain.Message, error) {
			return nil, domain.ErrConversationNotFound
		},
	}

	handler := handlers.NewChatHandler(mockService, zerolog.Nop())
	router := setupChatTestRouter(handler)

	req, _ := http.NewRequest("GET", "/chat/history/conv_missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestChatHandler_ListConversations(t *testing.T) {
	title := "Where is my order?"
	mockService := &MockChatService{
		ListConversationsFunc: func(ctx context.Context) ([]domain.ConversationSummary, error) {
			return []domain.ConversationSummary{
				{ID: "conv_newer", Title: &title},
				{ID: "conv_older", Title: nil},
			}, nil
		},
	}

	handler := handlers.NewChatHandler(mockService, zerolog.Nop())
	router := setupChatTestRouter(handler)

	req, _ := http.NewRequest("GET", "/chat/conversations", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response) != 2 {
		t.Fatalf("Expected 2 conversations, got %d", len(response))
	}
	if response[0]["id"] != "conv_newer" || response[0]["title"] != title {
		t.Errorf("Unexpected first conversation: %v", response[0])
	}
	if response[1]["title"] != nil {
		t.Errorf("Expected null title for conversation without user messages, got %v", response[1]["title"])
	}
}

func TestChatHandler_ListConversations_Error(t *testing.T) {
	mockService := &MockChatService{
		ListConversationsFunc: func(ctx context.Context) ([]domain.ConversationSummary, error) {
			return nil, errors.New("database down")
		},
	}

	handler := handlers.NewChatHandler(mockService, zerolog.Nop())
	router := setupChatTestRouter(handler)

	req, _ := http.NewRequest("GET", "/chat/conversations", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}
