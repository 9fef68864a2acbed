package usecase

import (
	"context"
	_ "embed"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/relboard/pkg/domain/interfaces"
	"github.com/m-mizutani/relboard/pkg/domain/model"
	"github.com/m-mizutani/relboard/pkg/domain/types"
)

//go:embed prompts/chat_system.md
var chatSystemPrompt string

type chatSession struct {
	mu        sync.Mutex
	id        types.ChatSessionID
	state     types.ChatState
	messages  []model.ChatMessage
	createdAt time.Time
	cancel    context.CancelFunc
	closed    bool
}

func (s *chatSession) snapshot() *model.ChatSession {
	return &model.ChatSession{
		ID:        s.id,
		State:     s.state,
		Messages:  append([]model.ChatMessage{}, s.messages...),
		CreatedAt: s.createdAt,
	}
}

type chatUseCase struct {
	llmClient gollem.LLMClient
	cfg       *config

	mu       sync.RWMutex
	sessions map[types.ChatSessionID]*chatSession
}

// NewChat creates a new instance of ChatUseCase
func NewChat(llmClient gollem.LLMClient, opts ...Option) interfaces.ChatUseCase {
	return &chatUseCase{
		llmClient: llmClient,
		cfg:       newConfig(opts...),
		sessions:  make(map[types.ChatSessionID]*chatSession),
	}
}

// CreateSession opens an idle chat panel with empty history
func (uc *chatUseCase) CreateSession(ctx context.Context) (*model.ChatSession, error) {
	s := &chatSession{
		id:        types.ChatSessionID(uuid.NewString()),
		state:     types.ChatStateIdle,
		createdAt: uc.cfg.now(),
	}

	uc.mu.Lock()
	uc.sessions[s.id] = s
	uc.mu.Unlock()

	ctxlog.From(ctx).Debug("Chat session created", "session_id", s.id)
	return s.snapshot(), nil
}

// GetSession returns a snapshot of the session
func (uc *chatUseCase) GetSession(ctx context.Context, id types.ChatSessionID) (*model.ChatSession, error) {
	s, err := uc.lookup(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

// Submit runs one turn: Idle -> Sending -> Idle. Only one request per
// session is in flight; a second submit while sending fails with ErrTagBusy.
func (uc *chatUseCase) Submit(ctx context.Context, id types.ChatSessionID, content string) (*model.ChatSession, error) {
	logger := ctxlog.From(ctx)

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, goerr.New("message is empty", goerr.T(types.ErrTagInvalidInput))
	}

	s, err := uc.lookup(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.state == types.ChatStateSending {
		s.mu.Unlock()
		return nil, goerr.New("chat request already in flight", goerr.T(types.ErrTagBusy), goerr.V("session_id", id))
	}
	s.messages = append(s.messages, model.ChatMessage{
		Role:      types.ChatRoleUser,
		Content:   content,
		CreatedAt: uc.cfg.now(),
	})
	s.state = types.ChatStateSending
	callCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	history := append([]model.ChatMessage{}, s.messages[:len(s.messages)-1]...)
	s.mu.Unlock()

	reply, callErr := uc.complete(callCtx, history, content)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = types.ChatStateIdle
	s.cancel = nil

	if s.closed {
		return nil, goerr.New("chat session closed", goerr.T(types.ErrTagNotFound), goerr.V("session_id", id))
	}
	if callErr != nil {
		logger.Warn("Chat turn failed", "session_id", id, "error", callErr)
		return nil, goerr.Wrap(callErr, "chat completion failed", goerr.T(types.ErrTagLLM), goerr.V("session_id", id))
	}

	s.messages = append(s.messages, model.ChatMessage{
		Role:      types.ChatRoleAssistant,
		Content:   reply,
		CreatedAt: uc.cfg.now(),
	})
	logger.Info("Chat turn completed", "session_id", id, "messages", len(s.messages))
	return s.snapshot(), nil
}

// CloseSession cancels any in-flight request and forgets the session
func (uc *chatUseCase) CloseSession(ctx context.Context, id types.ChatSessionID) error {
	uc.mu.Lock()
	s, ok := uc.sessions[id]
	delete(uc.sessions, id)
	uc.mu.Unlock()

	if !ok {
		return goerr.New("chat session not found", goerr.T(types.ErrTagNotFound), goerr.V("session_id", id))
	}

	s.mu.Lock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	ctxlog.From(ctx).Debug("Chat session closed", "session_id", id)
	return nil
}

func (uc *chatUseCase) lookup(id types.ChatSessionID) (*chatSession, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	s, ok := uc.sessions[id]
	if !ok {
		return nil, goerr.New("chat session not found", goerr.T(types.ErrTagNotFound), goerr.V("session_id", id))
	}
	return s, nil
}

// complete replays the earlier turns as session history and sends content
// as the new user turn
func (uc *chatUseCase) complete(ctx context.Context, history []model.ChatMessage, content string) (string, error) {
	opts := []gollem.SessionOption{
		gollem.WithSessionSystemPrompt(uc.cfg.systemPrompt),
	}
	if len(history) > 0 {
		h, err := toLLMHistory(history)
		if err != nil {
			return "", err
		}
		opts = append(opts, gollem.WithSessionHistory(h))
	}

	session, err := uc.llmClient.NewSession(ctx, opts...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.Generate(ctx, []gollem.Input{gollem.Text(content)})
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate LLM content")
	}

	reply := strings.TrimSpace(strings.Join(resp.Texts, ""))
	if reply == "" {
		return "", goerr.New("empty response from LLM")
	}
	return reply, nil
}

// toLLMHistory maps each chat message to one history message of the same role
func toLLMHistory(messages []model.ChatMessage) (*gollem.History, error) {
	h := &gollem.History{
		Version:  gollem.HistoryVersion,
		Messages: make([]gollem.Message, 0, len(messages)),
	}
	for _, msg := range messages {
		role := gollem.RoleUser
		if msg.Role == types.ChatRoleAssistant {
			role = gollem.RoleAssistant
		}

		text, err := gollem.NewTextContent(msg.Content)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to build chat history", goerr.V("role", msg.Role))
		}
		h.Messages = append(h.Messages, gollem.Message{
			Role:     role,
			Contents: []gollem.MessageContent{text},
		})
	}
	return h, nil
}
