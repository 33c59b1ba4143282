package community

import (
	"context"
	"testing"

	"github.com/AlexZhen345/LifeOS/internal/storage"
)

func testUserData(name string) *storage.UserData {
	data := &storage.UserData{}
	data.Profile.Name = name
	data.Attributes.Level = 4
	data.Attributes.Rewards = storage.Rewards{INT: 80, VIT: 40, WIL: 60}
	data.Skills.Skills = []string{"programming", "chess"}
	data.Skills.LearningGoals = []string{"ship a side project"}
	return data
}

func syncLooking(t *testing.T, svc *Service, id string, in SyncProfileInput) *storage.PartnerProfile {
	t.Helper()
	in.IsLooking = true
	profile, err := svc.SyncProfile(context.Background(), id, testUserData("Ada"), in)
	if err != nil {
		t.Fatalf("sync profile %s: %v", id, err)
	}
	return profile
}

func TestSyncProfileDefaultsFromSkills(t *testing.T) {
	svc := newTestCommunity(t)

	profile := syncLooking(t, svc, "acct-1", SyncProfileInput{})
	if len(profile.Interests) != 2 || profile.Interests[0] != "programming" {
		t.Fatalf("interests not defaulted from skills: %v", profile.Interests)
	}
	if len(profile.Goals) != 1 || profile.Goals[0] != "ship a side project" {
		t.Fatalf("goals not defaulted: %v", profile.Goals)
	}
	if profile.Level != 4 {
		t.Fatalf("level=%d, want 4", profile.Level)
	}

	// A second sync replaces rather than duplicates.
	syncLooking(t, svc, "acct-1", SyncProfileInput{Introduction: "hi"})
	got, err := svc.Partner(context.Background(), "acct-1")
	if err != nil || got == nil {
		t.Fatalf("partner lookup: %v %v", got, err)
	}
	if got.Introduction != "hi" {
		t.Fatalf("profile not replaced on re-sync: %q", got.Introduction)
	}
}

func TestMatchesScoreAndFilter(t *testing.T) {
	svc := newTestCommunity(t)
	ctx := context.Background()

	syncLooking(t, svc, "acct-1", SyncProfileInput{
		Interests: []string{"programming", "running"},
		Goals:     []string{"ship a side project"},
		MatchTags: []string{"morning"},
	})
	matches, err := svc.Matches(ctx, "acct-1")
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	for _, m := range matches {
		if m.Profile.ID == "acct-1" {
			t.Fatal("matched against self")
		}
		if m.Profile.ID == "seed-user-bram" {
			t.Fatal("matched a profile that is not looking")
		}
	}
	// Felix shares both interests, the goal, and the morning tag:
	// 2*2 + 3*1 + 1 = 8. Nobody else comes close.
	if matches[0].Profile.ID != "seed-user-felix" || matches[0].Score != 8 {
		t.Fatalf("best match %s score=%d, want seed-user-felix score=8",
			matches[0].Profile.ID, matches[0].Score)
	}
}

func TestMatchesNeedsSyncedProfile(t *testing.T) {
	svc := newTestCommunity(t)
	if _, err := svc.Matches(context.Background(), "acct-nobody"); err == nil {
		t.Fatal("matching without a profile succeeded")
	}
}

func TestMatchesOverlapIsCaseInsensitive(t *testing.T) {
	svc := newTestCommunity(t)
	syncLooking(t, svc, "acct-1", SyncProfileInput{
		Interests: []string{"  Programming ", "CHESS"},
		Goals:     []string{"unrelated"},
	})
	matches, err := svc.Matches(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	var iris *Match
	for i := range matches {
		if matches[i].Profile.ID == "seed-user-iris" {
			iris = &matches[i]
		}
	}
	if iris == nil || iris.Score != 2 {
		t.Fatalf("iris match=%+v, want interest overlap score 2", iris)
	}
}

func TestRequestLifecycle(t *testing.T) {
	svc := newTestCommunity(t)
	ctx := context.Background()
	syncLooking(t, svc, "acct-1", SyncProfileInput{})

	if _, err := svc.SendRequest(ctx, "acct-1", "acct-1", "hi"); err == nil {
		t.Fatal("self-request accepted")
	}
	if _, err := svc.SendRequest(ctx, "acct-1", "ghost", "hi"); err == nil {
		t.Fatal("request to unknown partner accepted")
	}

	req, err := svc.SendRequest(ctx, "acct-1", "seed-user-luna", "let's pair up")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.SendRequest(ctx, "acct-1", "seed-user-luna", "again"); err == nil {
		t.Fatal("duplicate pending request accepted")
	}

	pending, err := svc.PendingRequests(ctx, "seed-user-luna")
	if err != nil || len(pending) != 1 || pending[0].ID != req.ID {
		t.Fatalf("pending=%v err=%v", pending, err)
	}

	if _, err := svc.RespondRequest(ctx, "acct-1", req.ID, true); err == nil {
		t.Fatal("sender responded to their own request")
	}
	accepted, err := svc.RespondRequest(ctx, "seed-user-luna", req.ID, true)
	if err != nil || accepted.Status != storage.MatchAccepted {
		t.Fatalf("accept: %+v err=%v", accepted, err)
	}
	if _, err := svc.RespondRequest(ctx, "seed-user-luna", req.ID, false); err == nil {
		t.Fatal("responded to a settled request")
	}

	// Accepting clears the pending slot, so a fresh request is allowed.
	if _, err := svc.SendRequest(ctx, "acct-1", "seed-user-luna", "round two"); err != nil {
		t.Fatalf("post-accept request: %v", err)
	}

	matched, err := svc.MatchedPartners(ctx, "acct-1")
	if err != nil || len(matched) != 1 || matched[0].ID != "seed-user-luna" {
		t.Fatalf("matched=%v err=%v", matched, err)
	}
	// The accepted match is visible from both sides.
	matched, err = svc.MatchedPartners(ctx, "seed-user-luna")
	if err != nil || len(matched) != 1 || matched[0].ID != "acct-1" {
		t.Fatalf("reverse matched=%v err=%v", matched, err)
	}
}
