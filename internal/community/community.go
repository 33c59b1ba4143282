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

// Service owns the shared social collections: tea-house posts, partner
// profiles, match requests, and chats. All accounts on the machine read and
// write the same collections.
type Service struct {
	repo *storage.CommunityRepo
}

func NewService(kv *storage.KV) *Service {
	return &Service{repo: storage.NewCommunityRepo(kv)}
}

// NotFoundError reports a missing post, comment, or request.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// Author identifies who is acting: the account id plus its display fields.
type Author struct {
	ID     string
	Name   string
	Avatar string
}

// Posts returns every tea-house post, newest first. The first read seeds a
// handful of sample posts so the room is never empty.
func (s *Service) Posts(ctx context.Context) ([]storage.Post, error) {
	posts, err := s.repo.Posts(ctx)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = samplePosts()
		if err := s.repo.SavePosts(ctx, posts); err != nil {
			return nil, err
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

// CreatePost publishes a new post.
func (s *Service) CreatePost(ctx context.Context, author Author, content string, tags []string) (*storage.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("post content is required")
	}
	posts, err := s.Posts(ctx)
	if err != nil {
		return nil, err
	}
	post := storage.Post{
		ID:           uuid.NewString(),
		AuthorID:     author.ID,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		Content:      content,
		Likes:        []string{},
		Comments:     []storage.Comment{},
		CreatedAt:    time.Now(),
		Tags:         tags,
	}
	posts = append(posts, post)
	if err := s.repo.SavePosts(ctx, posts); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes a post the author owns.
func (s *Service) DeletePost(ctx context.Context, authorID, postID string) error {
	posts, err := s.Posts(ctx)
	if err != nil {
		return err
	}
	for i := range posts {
		if posts[i].ID != postID {
			continue
		}
		if posts[i].AuthorID != authorID {
			return fmt.Errorf("post %s belongs to another user", postID)
		}
		posts = append(posts[:i], posts[i+1:]...)
		return s.repo.SavePosts(ctx, posts)
	}
	return &NotFoundError{Kind: "post", ID: postID}
}

// ToggleLike likes a post, or unlikes it if the user already has. Returns
// the new liked state.
func (s *Service) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	posts, err := s.Posts(ctx)
	if err != nil {
		return false, err
	}
	for i := range posts {
		if posts[i].ID != postID {
			continue
		}
		liked := false
		likes := posts[i].Likes[:0]
		for _, id := range posts[i].Likes {
			if id == userID {
				liked = true
				continue
			}
			likes = append(likes, id)
		}
		if !liked {
			likes = append(likes, userID)
		}
		posts[i].Likes = likes
		return !liked, s.repo.SavePosts(ctx, posts)
	}
	return false, &NotFoundError{Kind: "post", ID: postID}
}

// AddComment appends a comment to a post. ReplyTo optionally names an
// existing comment on the same post.
func (s *Service) AddComment(ctx context.Context, author Author, postID, content, replyTo string) (*storage.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("comment content is required")
	}
	posts, err := s.Posts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID != postID {
			continue
		}
		comment := storage.Comment{
			ID:           uuid.NewString(),
			PostID:       postID,
			AuthorID:     author.ID,
			AuthorName:   author.Name,
			AuthorAvatar: author.Avatar,
			Content:      content,
			Likes:        []string{},
			CreatedAt:    time.Now(),
			ReplyTo:      replyTo,
		}
		posts[i].Comments = append(posts[i].Comments, comment)
		if err := s.repo.SavePosts(ctx, posts); err != nil {
			return nil, err
		}
		return &comment, nil
	}
	return nil, &NotFoundError{Kind: "post", ID: postID}
}

// ToggleCommentLike likes or unlikes a comment on a post.
func (s *Service) ToggleCommentLike(ctx context.Context, userID, postID, commentID string) (bool, error) {
	posts, err := s.Posts(ctx)
	if err != nil {
		return false, err
	}
	for i := range posts {
		if posts[i].ID != postID {
			continue
		}
		for j := range posts[i].Comments {
			if posts[i].Comments[j].ID != commentID {
				continue
			}
			liked := false
			likes := posts[i].Comments[j].Likes[:0]
			for _, id := range posts[i].Comments[j].Likes {
				if id == userID {
					liked = true
					continue
				}
				likes = append(likes, id)
			}
			if !liked {
				likes = append(likes, userID)
			}
			posts[i].Comments[j].Likes = likes
			return !liked, s.repo.SavePosts(ctx, posts)
		}
		return false, &NotFoundError{Kind: "comment", ID: commentID}
	}
	return false, &NotFoundError{Kind: "post", ID: postID}
}

// TeaHouseUnread counts fresh likes and comments on the user's own posts
// since they last acknowledged them.
func (s *Service) TeaHouseUnread(ctx context.Context, userID string) (int, error) {
	posts, err := s.Posts(ctx)
	if err != nil {
		return 0, err
	}
	state, err := s.readState(ctx, userID)
	if err != nil {
		return 0, err
	}
	unread := 0
	for _, p := range posts {
		if p.AuthorID != userID {
			continue
		}
		if d := len(p.Likes) - state.AcknowledgedLikes[p.ID]; d > 0 {
			unread += d
		}
		if d := len(p.Comments) - state.AcknowledgedComments[p.ID]; d > 0 {
			unread += d
		}
	}
	return unread, nil
}

// AcknowledgeTeaHouse marks every current like and comment on the user's
// posts as seen.
func (s *Service) AcknowledgeTeaHouse(ctx context.Context, userID string) error {
	posts, err := s.Posts(ctx)
	if err != nil {
		return err
	}
	states, err := s.repo.ReadStates(ctx)
	if err != nil {
		return err
	}
	state := storage.TeaHouseReadState{
		UserID:               userID,
		LastReadTime:         time.Now(),
		AcknowledgedLikes:    map[string]int{},
		AcknowledgedComments: map[string]int{},
	}
	for _, p := range posts {
		if p.AuthorID != userID {
			continue
		}
		state.AcknowledgedLikes[p.ID] = len(p.Likes)
		state.AcknowledgedComments[p.ID] = len(p.Comments)
	}
	replaced := false
	for i := range states {
		if states[i].UserID == userID {
			states[i] = state
			replaced = true
			break
		}
	}
	if !replaced {
		states = append(states, state)
	}
	return s.repo.SaveReadStates(ctx, states)
}

func (s *Service) readState(ctx context.Context, userID string) (storage.TeaHouseReadState, error) {
	states, err := s.repo.ReadStates(ctx)
	if err != nil {
		return storage.TeaHouseReadState{}, err
	}
	for _, st := range states {
		if st.UserID == userID {
			if st.AcknowledgedLikes == nil {
				st.AcknowledgedLikes = map[string]int{}
			}
			if st.AcknowledgedComments == nil {
				st.AcknowledgedComments = map[string]int{}
			}
			return st, nil
		}
	}
	return storage.TeaHouseReadState{
		UserID:               userID,
		AcknowledgedLikes:    map[string]int{},
		AcknowledgedComments: map[string]int{},
	}, nil
}
