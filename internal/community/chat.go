package community

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AlexZhen345/LifeOS/internal/storage"
)

// ChatID derives the shared conversation id for two users. Both sides always
// compute the same id regardless of who asks.
func ChatID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "_" + b
}

// SendMessage appends a chat message between matched partners.
func (s *Service) SendMessage(ctx context.Context, fromID, toID, content string) (*storage.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("message content is required")
	}
	matched, err := s.MatchedPartners(ctx, fromID)
	if err != nil {
		return nil, err
	}
	found := false
	for _, p := range matched {
		if p.ID == toID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("not matched with %s; send a match request first", toID)
	}

	messages, err := s.repo.Messages(ctx)
	if err != nil {
		return nil, err
	}
	msg := storage.ChatMessage{
		ID:         uuid.NewString(),
		ChatID:     ChatID(fromID, toID),
		SenderID:   fromID,
		ReceiverID: toID,
		Content:    content,
		CreatedAt:  time.Now(),
	}
	messages = append(messages, msg)
	if err := s.repo.SaveMessages(ctx, messages); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Conversation returns every message between the two users, oldest first.
func (s *Service) Conversation(ctx context.Context, userID, partnerID string) ([]storage.ChatMessage, error) {
	messages, err := s.repo.Messages(ctx)
	if err != nil {
		return nil, err
	}
	chatID := ChatID(userID, partnerID)
	var out []storage.ChatMessage
	for _, m := range messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// MarkConversationRead marks every message addressed to the reader in the
// conversation as read.
func (s *Service) MarkConversationRead(ctx context.Context, readerID, partnerID string) error {
	messages, err := s.repo.Messages(ctx)
	if err != nil {
		return err
	}
	chatID := ChatID(readerID, partnerID)
	changed := false
	for i := range messages {
		if messages[i].ChatID == chatID && messages[i].ReceiverID == readerID && !messages[i].Read {
			messages[i].Read = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.repo.SaveMessages(ctx, messages)
}

// ChatUnread counts unread messages addressed to the user across all
// conversations.
func (s *Service) ChatUnread(ctx context.Context, userID string) (int, error) {
	messages, err := s.repo.Messages(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, m := range messages {
		if m.ReceiverID == userID && !m.Read {
			n++
		}
	}
	return n, nil
}

// TotalUnread is the badge count: unread chat messages, pending match
// requests, and unacknowledged tea-house activity.
func (s *Service) TotalUnread(ctx context.Context, userID string) (int, error) {
	chat, err := s.ChatUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	pending, err := s.PendingRequests(ctx, userID)
	if err != nil {
		return 0, err
	}
	teahouse, err := s.TeaHouseUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	return chat + len(pending) + teahouse, nil
}
