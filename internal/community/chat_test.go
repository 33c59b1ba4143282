package community

import (
	"context"
	"testing"
)

func TestChatIDIsOrderIndependent(t *testing.T) {
	if ChatID("b", "a") != "a_b" || ChatID("a", "b") != "a_b" {
		t.Fatalf("chat ids: %q %q", ChatID("b", "a"), ChatID("a", "b"))
	}
}

func TestSendMessageRequiresMatch(t *testing.T) {
	svc := newTestCommunity(t)
	ctx := context.Background()
	syncLooking(t, svc, "acct-1", SyncProfileInput{})

	if _, err := svc.SendMessage(ctx, "acct-1", "seed-user-luna", "hello"); err == nil {
		t.Fatal("message sent without a match")
	}

	req, err := svc.SendRequest(ctx, "acct-1", "seed-user-luna", "hi")
	if err != nil {
		t.Fatalf("send request: %v", err)
	}
	if _, err := svc.RespondRequest(ctx, "seed-user-luna", req.ID, true); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := svc.SendMessage(ctx, "acct-1", "seed-user-luna", "hello"); err != nil {
		t.Fatalf("matched message: %v", err)
	}
	if _, err := svc.SendMessage(ctx, "acct-1", "seed-user-luna", "   "); err == nil {
		t.Fatal("blank message accepted")
	}
}

func TestConversationAndUnread(t *testing.T) {
	svc := newTestCommunity(t)
	ctx := context.Background()
	syncLooking(t, svc, "acct-1", SyncProfileInput{})

	req, err := svc.SendRequest(ctx, "acct-1", "seed-user-luna", "hi")
	if err != nil {
		t.Fatalf("send request: %v", err)
	}
	if _, err := svc.RespondRequest(ctx, "seed-user-luna", req.ID, true); err != nil {
		t.Fatalf("accept: %v", err)
	}

	for _, text := range []string{"first", "second"} {
		if _, err := svc.SendMessage(ctx, "seed-user-luna", "acct-1", text); err != nil {
			t.Fatalf("send %q: %v", text, err)
		}
	}
	if _, err := svc.SendMessage(ctx, "acct-1", "seed-user-luna", "reply"); err != nil {
		t.Fatalf("reply: %v", err)
	}

	conv, err := svc.Conversation(ctx, "acct-1", "seed-user-luna")
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}
	if len(conv) != 3 || conv[0].Content != "first" || conv[2].Content != "reply" {
		t.Fatalf("conversation order wrong: %+v", conv)
	}

	if n, _ := svc.ChatUnread(ctx, "acct-1"); n != 2 {
		t.Fatalf("unread=%d, want 2", n)
	}
	// My own outgoing message does not count against Luna's read state here;
	// she has one unread reply.
	if n, _ := svc.ChatUnread(ctx, "seed-user-luna"); n != 1 {
		t.Fatalf("partner unread=%d, want 1", n)
	}

	if err := svc.MarkConversationRead(ctx, "acct-1", "seed-user-luna"); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if n, _ := svc.ChatUnread(ctx, "acct-1"); n != 0 {
		t.Fatalf("unread after read=%d, want 0", n)
	}
	if n, _ := svc.ChatUnread(ctx, "seed-user-luna"); n != 1 {
		t.Fatalf("partner unread changed to %d", n)
	}
}

func TestTotalUnreadSumsSources(t *testing.T) {
	svc := newTestCommunity(t)
	ctx := context.Background()
	syncLooking(t, svc, "acct-1", SyncProfileInput{})

	post, err := svc.CreatePost(ctx, testAuthor(), "badge test", nil)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := svc.ToggleLike(ctx, "acct-2", post.ID); err != nil {
		t.Fatalf("like: %v", err)
	}

	// A pending incoming request adds one.
	syncLooking(t, svc, "acct-2", SyncProfileInput{})
	if _, err := svc.SendRequest(ctx, "acct-2", "acct-1", "pair?"); err != nil {
		t.Fatalf("request: %v", err)
	}

	if n, err := svc.TotalUnread(ctx, "acct-1"); err != nil || n != 2 {
		t.Fatalf("total unread=%d err=%v, want 2", n, err)
	}
}
