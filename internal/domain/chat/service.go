package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

var (
	// ErrEmptyMessage rejects blank user input before any side effect.
	ErrEmptyMessage = errors.New("message cannot be empty")
	// ErrConversationNotFound is returned for session ids the store has
	// never issued.
	ErrConversationNotFound = errors.New("conversation not found")
)

// FallbackReply is persisted and returned whenever the reply generator
// fails; the substitution never fails the turn.
const FallbackReply = "Sorry, I'm having trouble responding right now. Please try again."

// Service describes the business logic surface for chat operations.
type Service interface {
	// SendMessage runs one user turn: persist the message, resolve history,
	// generate a reply, persist it, and return it together with the session
	// id (newly minted when none was supplied).
	SendMessage(ctx context.Context, sessionID, text string) (*TurnResult, error)
	History(ctx context.Context, sessionID string) ([]Message, error)
	ListConversations(ctx context.Context) ([]ConversationSummary, error)
}

type service struct {
	store     Store
	cache     HistoryCache
	generator ReplyGenerator
	resolver  *HistoryResolver
	log       zerolog.Logger
}

// NewService wires the chat orchestrator with its collaborators. limit
// bounds the history window handed to the reply generator.
func NewService(store Store, cache HistoryCache, generator ReplyGenerator, limit int, log zerolog.Logger) Service {
	return &service{
		store:     store,
		cache:     cache,
		generator: generator,
		resolver:  NewHistoryResolver(store, cache, limit, log),
		log:       log.With().Str("component", "chat-service").Logger(),
	}
}

// SendMessage is a linear pipeline. The two durable writes (user message,
// reply) are the only fatal points; cache appends and reply generation
// degrade without aborting the turn. Concurrent turns on the same session
// are not serialized: their relative ordering is whatever the store's
// insertion order yields.
func (s *service) SendMessage(ctx context.Context, sessionID, text string) (*TurnResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	conversationID := sessionID
	if conversationID == "" {
		conv, err := s.store.CreateConversation(ctx)
		if err != nil {
			s.log.Error().Err(err).Msg("create conversation")
			return nil, err
		}
		conversationID = conv.ID
	} else {
		exists, err := s.store.ConversationExists(ctx, conversationID)
		if err != nil {
			s.log.Error().Err(err).Str("conversation_id", conversationID).Msg("look up conversation")
			return nil, err
		}
		if !exists {
			return nil, ErrConversationNotFound
		}
	}

	// Durability checkpoint: everything downstream assumes the user message
	// is recorded.
	if _, err := s.store.CreateMessage(ctx, conversationID, SenderUser, text); err != nil {
		s.log.Error().Err(err).Str("conversation_id", conversationID).Msg("persist user message")
		return nil, err
	}
	s.cache.Append(ctx, conversationID, SenderUser, text)

	history, err := s.resolver.Resolve(ctx, conversationID)
	if err != nil {
		s.log.Error().Err(err).Str("conversation_id", conversationID).Msg("resolve history")
		return nil, err
	}

	fallback := false
	reply, err := s.generator.Generate(ctx, history, text)
	if err != nil {
		s.log.Warn().Err(err).Str("conversation_id", conversationID).
			Msg("reply generation failed, using fallback reply")
		reply = FallbackReply
		fallback = true
	}

	// The reply (fallback included) becomes part of the permanent record, so
	// this write shares the fatal semantics of the user-message write.
	if _, err := s.store.CreateMessage(ctx, conversationID, SenderAI, reply); err != nil {
		s.log.Error().Err(err).Str("conversation_id", conversationID).Msg("persist reply")
		return nil, err
	}
	s.cache.Append(ctx, conversationID, SenderAI, reply)

	return &TurnResult{Reply: reply, SessionID: conversationID, Fallback: fallback}, nil
}

func (s *service) History(ctx context.Context, sessionID string) ([]Message, error) {
	exists, err := s.store.ConversationExists(ctx, sessionID)
	if err != nil {
		s.log.Error().Err(err).Str("conversation_id", sessionID).Msg("look up conversation")
		return nil, err
	}
	if !exists {
		return nil, ErrConversationNotFound
	}
	return s.store.MessagesAsc(ctx, sessionID)
}

func (s *service) ListConversations(ctx context.Context) ([]ConversationSummary, error) {
	return s.store.ListConversations(ctx)
}
