package community

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/AlexZhen345/LifeOS/internal/storage"
)

func newTestCommunity(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "lifeos.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewService(storage.NewKV(db))
}

func testAuthor() Author {
	return Author{ID: "acct-1", Name: "Ada", Avatar: "🙂"}
}

func TestPostsSeedOnce(t *testing.T) {
	svc := newTestCommunity(t)
	ctx := context.Background()

	posts, err := svc.Posts(ctx)
	if err != nil {
		t.Fatalf("posts: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("seeded %d posts, want 3", len(posts))
	}

	if _, err := svc.CreatePost(ctx, testAuthor(), "hello tea house", nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	posts, err = svc.Posts(ctx)
	if err != nil {
		t.Fatalf("posts: %v", err)
	}
	if len(posts) != 4 {
		t.Fatalf("got %d posts after one create, want 4", len(posts))
	}
	if posts[0].Content != "hello tea house" {
		t.Fatalf("newest post not first: %q", posts[0].Content)
	}
}

func TestCreatePostRequiresContent(t *testing.T) {
	svc := newTestCommunity(t)
	if _, err := svc.CreatePost(context.Background(), testAuthor(), "   ", nil); err == nil {
		t.Fatal("blank post accepted")
	}
}

func TestDeletePostOwnerOnly(t *testing.T) {
	svc := newTestCommunity(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, testAuthor(), "mine", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.DeletePost(ctx, "someone-else", post.ID); err == nil {
		t.Fatal("foreign delete accepted")
	}
	if err := svc.DeletePost(ctx, "acct-1", post.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := svc.DeletePost(ctx, "acct-1", post.ID); err == nil {
		t.Fatal("double delete accepted")
	}
}

func TestToggleLikeRoundTrip(t *testing.T) {
	svc := newTestCommunity(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, testAuthor(), "like me", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	liked, err := svc.ToggleLike(ctx, "acct-2", post.ID)
	if err != nil || !liked {
		t.Fatalf("first toggle: liked=%v err=%v", liked, err)
	}
	liked, err = svc.ToggleLike(ctx, "acct-2", post.ID)
	if err != nil || liked {
		t.Fatalf("second toggle: liked=%v err=%v", liked, err)
	}
	if _, err := svc.ToggleLike(ctx, "acct-2", "nope"); err == nil {
		t.Fatal("liking a missing post succeeded")
	}
}

func TestToggleCommentLike(t *testing.T) {
	svc := newTestCommunity(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, testAuthor(), "comment likes", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	comment, err := svc.AddComment(ctx, testAuthor(), post.ID, "first", "")
	if err != nil {
		t.Fatalf("comment: %v", err)
	}
	liked, err := svc.ToggleCommentLike(ctx, "acct-2", post.ID, comment.ID)
	if err != nil || !liked {
		t.Fatalf("like: liked=%v err=%v", liked, err)
	}
	liked, err = svc.ToggleCommentLike(ctx, "acct-2", post.ID, comment.ID)
	if err != nil || liked {
		t.Fatalf("unlike: liked=%v err=%v", liked, err)
	}
	if _, err := svc.ToggleCommentLike(ctx, "acct-2", post.ID, "nope"); err == nil {
		t.Fatal("liking a missing comment succeeded")
	}
}

func TestTeaHouseUnreadTracksDeltas(t *testing.T) {
	svc := newTestCommunity(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, testAuthor(), "unread test", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if n, err := svc.TeaHouseUnread(ctx, "acct-1"); err != nil || n != 0 {
		t.Fatalf("fresh post unread=%d err=%v, want 0", n, err)
	}

	if _, err := svc.ToggleLike(ctx, "acct-2", post.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	other := Author{ID: "acct-2", Name: "Bo", Avatar: "🙂"}
	if _, err := svc.AddComment(ctx, other, post.ID, "nice", ""); err != nil {
		t.Fatalf("comment: %v", err)
	}
	if n, _ := svc.TeaHouseUnread(ctx, "acct-1"); n != 2 {
		t.Fatalf("unread=%d, want 2", n)
	}

	if err := svc.AcknowledgeTeaHouse(ctx, "acct-1"); err != nil {
		t.Fatalf("acknowledge: %v", err)
	}
	if n, _ := svc.TeaHouseUnread(ctx, "acct-1"); n != 0 {
		t.Fatalf("unread after ack=%d, want 0", n)
	}

	// Unliking below the acknowledged count never goes negative.
	if _, err := svc.ToggleLike(ctx, "acct-2", post.ID); err != nil {
		t.Fatalf("unlike: %v", err)
	}
	if n, _ := svc.TeaHouseUnread(ctx, "acct-1"); n != 0 {
		t.Fatalf("unread after unlike=%d, want 0", n)
	}
}
