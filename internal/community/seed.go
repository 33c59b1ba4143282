package community

import (
	"time"

	"github.com/AlexZhen345/LifeOS/internal/storage"
)

// Seed content shown before any local account has posted or synced a
// profile. Fixed ids keep the seeding idempotent.

func samplePosts() []storage.Post {
	now := time.Now()
	return []storage.Post{
		{
			ID:           "seed-post-1",
			AuthorID:     "seed-user-luna",
			AuthorName:   "Luna",
			AuthorAvatar: "🌙",
			Content:      "Day 30 of my reading streak. An hour before bed, phone in another room. The first week was the hard part.",
			Likes:        []string{"seed-user-felix", "seed-user-iris"},
			Comments: []storage.Comment{
				{
					ID:           "seed-comment-1",
					PostID:       "seed-post-1",
					AuthorID:     "seed-user-felix",
					AuthorName:   "Felix",
					AuthorAvatar: "🦊",
					Content:      "Same here. The streak counter is doing more work than my willpower at this point.",
					Likes:        []string{},
					CreatedAt:    now.Add(-46 * time.Hour),
				},
			},
			CreatedAt: now.Add(-48 * time.Hour),
			Tags:      []string{"reading", "habits"},
		},
		{
			ID:           "seed-post-2",
			AuthorID:     "seed-user-felix",
			AuthorName:   "Felix",
			AuthorAvatar: "🦊",
			Content:      "Finally hit level 5. Splitting big tasks into 30-minute pieces made the difference for me.",
			Likes:        []string{"seed-user-luna"},
			Comments:     []storage.Comment{},
			CreatedAt:    now.Add(-24 * time.Hour),
			Tags:         []string{"milestones"},
		},
		{
			ID:           "seed-post-3",
			AuthorID:     "seed-user-iris",
			AuthorName:   "Iris",
			AuthorAvatar: "🌸",
			Content:      "Looking for a study partner for morning sessions, 7 to 9. Mostly working through algorithms right now.",
			Likes:        []string{},
			Comments:     []storage.Comment{},
			CreatedAt:    now.Add(-6 * time.Hour),
			Tags:         []string{"study", "partners"},
		},
	}
}

func samplePartners() []storage.PartnerProfile {
	now := time.Now()
	return []storage.PartnerProfile{
		{
			ID:           "seed-user-luna",
			Name:         "Luna",
			Avatar:       "🌙",
			Level:        7,
			Interests:    []string{"reading", "writing", "meditation"},
			Goals:        []string{"publish a short story", "read 40 books this year"},
			Introduction: "Night person trying to become a morning person. Accountability welcome.",
			Attributes:   storage.Rewards{INT: 140, VIT: 60, CHA: 85, GOLD: 110, WIL: 95},
			IsLooking:    true,
			MatchTags:    []string{"evening", "quiet"},
			LastActive:   now.Add(-3 * time.Hour),
		},
		{
			ID:           "seed-user-felix",
			Name:         "Felix",
			Avatar:       "🦊",
			Level:        5,
			Interests:    []string{"programming", "running", "chess"},
			Goals:        []string{"ship a side project", "run a half marathon"},
			Introduction: "Software developer. I keep my streaks alive by telling people about them.",
			Attributes:   storage.Rewards{INT: 180, VIT: 120, CHA: 55, GOLD: 90, WIL: 130},
			IsLooking:    true,
			MatchTags:    []string{"morning", "tech"},
			LastActive:   now.Add(-30 * time.Minute),
		},
		{
			ID:           "seed-user-iris",
			Name:         "Iris",
			Avatar:       "🌸",
			Level:        9,
			Interests:    []string{"programming", "languages", "cooking"},
			Goals:        []string{"pass the algorithms course", "learn conversational Spanish"},
			Introduction: "Student. Early sessions, strict pomodoros, generous coffee breaks.",
			Attributes:   storage.Rewards{INT: 210, VIT: 80, CHA: 100, GOLD: 70, WIL: 150},
			IsLooking:    true,
			MatchTags:    []string{"morning", "study"},
			LastActive:   now.Add(-10 * time.Minute),
		},
		{
			ID:           "seed-user-bram",
			Name:         "Bram",
			Avatar:       "🐻",
			Level:        3,
			Interests:    []string{"weightlifting", "cooking"},
			Goals:        []string{"cook at home five nights a week"},
			Introduction: "Taking a break from matching for a while.",
			Attributes:   storage.Rewards{INT: 70, VIT: 160, CHA: 60, GOLD: 120, WIL: 90},
			IsLooking:    false,
			MatchTags:    []string{"evening"},
			LastActive:   now.Add(-72 * time.Hour),
		},
	}
}
