package storage

import "context"

const (
	postsKey        = "community/posts"
	partnersKey     = "community/partners"
	requestsKey     = "community/requests"
	messagesKey     = "community/messages"
	teaHouseReadKey = "community/teahouse_read"
)

// CommunityRepo stores the flat community collections: posts, partner
// profiles, match requests, chat messages, and tea house read state. Each
// collection is one JSON document shared by every local account.
type CommunityRepo struct {
	kv *KV
}

func NewCommunityRepo(kv *KV) *CommunityRepo {
	return &CommunityRepo{kv: kv}
}

func (r *CommunityRepo) Posts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if _, _, err := r.kv.GetJSON(ctx, postsKey, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *CommunityRepo) SavePosts(ctx context.Context, posts []Post) error {
	return r.kv.ForceJSON(ctx, postsKey, posts)
}

func (r *CommunityRepo) Partners(ctx context.Context) ([]PartnerProfile, error) {
	var partners []PartnerProfile
	if _, _, err := r.kv.GetJSON(ctx, partnersKey, &partners); err != nil {
		return nil, err
	}
	return partners, nil
}

func (r *CommunityRepo) SavePartners(ctx context.Context, partners []PartnerProfile) error {
	return r.kv.ForceJSON(ctx, partnersKey, partners)
}

func (r *CommunityRepo) Requests(ctx context.Context) ([]MatchRequest, error) {
	var requests []MatchRequest
	if _, _, err := r.kv.GetJSON(ctx, requestsKey, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *CommunityRepo) SaveRequests(ctx context.Context, requests []MatchRequest) error {
	return r.kv.ForceJSON(ctx, requestsKey, requests)
}

func (r *CommunityRepo) Messages(ctx context.Context) ([]ChatMessage, error) {
	var messages []ChatMessage
	if _, _, err := r.kv.GetJSON(ctx, messagesKey, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *CommunityRepo) SaveMessages(ctx context.Context, messages []ChatMessage) error {
	return r.kv.ForceJSON(ctx, messagesKey, messages)
}

func (r *CommunityRepo) ReadStates(ctx context.Context) ([]TeaHouseReadState, error) {
	var states []TeaHouseReadState
	if _, _, err := r.kv.GetJSON(ctx, teaHouseReadKey, &states); err != nil {
		return nil, err
	}
	return states, nil
}

func (r *CommunityRepo) SaveReadStates(ctx context.Context, states []TeaHouseReadState) error {
	return r.kv.ForceJSON(ctx, teaHouseReadKey, states)
}
