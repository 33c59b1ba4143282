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

// SyncProfileInput carries the user-editable parts of a partner profile.
// Level and attributes always come from the character document.
type SyncProfileInput struct {
	Interests    []string
	Goals        []string
	Introduction string
	IsLooking    bool
	MatchTags    []string
}

// SyncProfile upserts the account's partner profile from its character
// state. The first read seeds sample partners so matching has a field to
// work against.
func (s *Service) SyncProfile(ctx context.Context, accountID string, data *storage.UserData, in SyncProfileInput) (*storage.PartnerProfile, error) {
	if data == nil {
		return nil, fmt.Errorf("no character document for account %s", accountID)
	}
	partners, err := s.partners(ctx)
	if err != nil {
		return nil, err
	}

	profile := storage.PartnerProfile{
		ID:           accountID,
		Name:         data.Profile.Name,
		Avatar:       "🙂",
		Level:        data.Attributes.Level,
		Interests:    in.Interests,
		Goals:        in.Goals,
		Introduction: strings.TrimSpace(in.Introduction),
		Attributes:   data.Attributes.Rewards,
		IsLooking:    in.IsLooking,
		MatchTags:    in.MatchTags,
		LastActive:   time.Now(),
	}
	if len(profile.Interests) == 0 {
		profile.Interests = data.Skills.Skills
	}
	if len(profile.Goals) == 0 {
		profile.Goals = data.Skills.LearningGoals
	}

	replaced := false
	for i := range partners {
		if partners[i].ID == accountID {
			partners[i] = profile
			replaced = true
			break
		}
	}
	if !replaced {
		partners = append(partners, profile)
	}
	if err := s.repo.SavePartners(ctx, partners); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Service) partners(ctx context.Context) ([]storage.PartnerProfile, error) {
	partners, err := s.repo.Partners(ctx)
	if err != nil {
		return nil, err
	}
	if partners == nil {
		partners = samplePartners()
		if err := s.repo.SavePartners(ctx, partners); err != nil {
			return nil, err
		}
	}
	return partners, nil
}

// Partner returns one profile by id, or nil.
func (s *Service) Partner(ctx context.Context, id string) (*storage.PartnerProfile, error) {
	partners, err := s.partners(ctx)
	if err != nil {
		return nil, err
	}
	for i := range partners {
		if partners[i].ID == id {
			return &partners[i], nil
		}
	}
	return nil, nil
}

// Match is a candidate partner with its compatibility score.
type Match struct {
	Profile storage.PartnerProfile
	Score   int
}

// Matches scores every looking partner against the user's profile and
// returns the best 20. Shared goals weigh heaviest, then shared interests,
// then shared match tags.
func (s *Service) Matches(ctx context.Context, accountID string) ([]Match, error) {
	partners, err := s.partners(ctx)
	if err != nil {
		return nil, err
	}
	var me *storage.PartnerProfile
	for i := range partners {
		if partners[i].ID == accountID {
			me = &partners[i]
			break
		}
	}
	if me == nil {
		return nil, fmt.Errorf("no partner profile for this account; sync one first")
	}

	var out []Match
	for _, p := range partners {
		if p.ID == accountID || !p.IsLooking {
			continue
		}
		score := 2*overlap(me.Interests, p.Interests) +
			3*overlap(me.Goals, p.Goals) +
			overlap(me.MatchTags, p.MatchTags)
		out = append(out, Match{Profile: p, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > 20 {
		out = out[:20]
	}
	return out, nil
}

func overlap(a, b []string) int {
	set := make(map[string]bool, len(a))
	for _, s := range a {
		set[strings.ToLower(strings.TrimSpace(s))] = true
	}
	n := 0
	for _, s := range b {
		if set[strings.ToLower(strings.TrimSpace(s))] {
			n++
		}
	}
	return n
}

// SendRequest creates a pending match request. Duplicate pending requests
// to the same partner are rejected.
func (s *Service) SendRequest(ctx context.Context, fromID, toID, message string) (*storage.MatchRequest, error) {
	if fromID == toID {
		return nil, fmt.Errorf("cannot send a match request to yourself")
	}
	target, err := s.Partner(ctx, toID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, &NotFoundError{Kind: "partner", ID: toID}
	}
	requests, err := s.repo.Requests(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range requests {
		if r.FromUserID == fromID && r.ToUserID == toID && r.Status == storage.MatchPending {
			return nil, fmt.Errorf("a request to %s is already pending", target.Name)
		}
	}
	req := storage.MatchRequest{
		ID:         uuid.NewString(),
		FromUserID: fromID,
		ToUserID:   toID,
		Message:    strings.TrimSpace(message),
		Status:     storage.MatchPending,
		CreatedAt:  time.Now(),
	}
	requests = append(requests, req)
	if err := s.repo.SaveRequests(ctx, requests); err != nil {
		return nil, err
	}
	return &req, nil
}

// RespondRequest accepts or rejects a pending request addressed to userID.
func (s *Service) RespondRequest(ctx context.Context, userID, requestID string, accept bool) (*storage.MatchRequest, error) {
	requests, err := s.repo.Requests(ctx)
	if err != nil {
		return nil, err
	}
	for i := range requests {
		if requests[i].ID != requestID {
			continue
		}
		if requests[i].ToUserID != userID {
			return nil, fmt.Errorf("request %s is not addressed to this account", requestID)
		}
		if requests[i].Status != storage.MatchPending {
			return nil, fmt.Errorf("request %s was already %s", requestID, requests[i].Status)
		}
		if accept {
			requests[i].Status = storage.MatchAccepted
		} else {
			requests[i].Status = storage.MatchRejected
		}
		if err := s.repo.SaveRequests(ctx, requests); err != nil {
			return nil, err
		}
		return &requests[i], nil
	}
	return nil, &NotFoundError{Kind: "request", ID: requestID}
}

// PendingRequests returns the requests waiting on userID, newest first.
func (s *Service) PendingRequests(ctx context.Context, userID string) ([]storage.MatchRequest, error) {
	requests, err := s.repo.Requests(ctx)
	if err != nil {
		return nil, err
	}
	var out []storage.MatchRequest
	for _, r := range requests {
		if r.ToUserID == userID && r.Status == storage.MatchPending {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// MatchedPartners returns the partners userID has an accepted request with,
// in either direction.
func (s *Service) MatchedPartners(ctx context.Context, userID string) ([]storage.PartnerProfile, error) {
	requests, err := s.repo.Requests(ctx)
	if err != nil {
		return nil, err
	}
	ids := map[string]bool{}
	for _, r := range requests {
		if r.Status != storage.MatchAccepted {
			continue
		}
		if r.FromUserID == userID {
			ids[r.ToUserID] = true
		} else if r.ToUserID == userID {
			ids[r.FromUserID] = true
		}
	}
	var out []storage.PartnerProfile
	for id := range ids {
		p, err := s.Partner(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			out = append(out, *p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
