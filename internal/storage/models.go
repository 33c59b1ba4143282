package storage

import "time"

// AccountInfo is one entry in the global account list.
type AccountInfo struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActiveAt time.Time `json:"lastActiveAt"`
}

// Rewards is the closed set of gameplay attributes. Every reward grant and
// attribute snapshot uses this fixed shape rather than an open map.
type Rewards struct {
	INT  int `json:"INT"`
	VIT  int `json:"VIT"`
	CHA  int `json:"CHA"`
	GOLD int `json:"GOLD"`
	WIL  int `json:"WIL"`
}

// Add returns r with every field of other added.
func (r Rewards) Add(other Rewards) Rewards {
	r.INT += other.INT
	r.VIT += other.VIT
	r.CHA += other.CHA
	r.GOLD += other.GOLD
	r.WIL += other.WIL
	return r
}

// Sub returns r with every field of other subtracted. No floor: reversing a
// completion may drive an attribute negative.
func (r Rewards) Sub(other Rewards) Rewards {
	r.INT -= other.INT
	r.VIT -= other.VIT
	r.CHA -= other.CHA
	r.GOLD -= other.GOLD
	r.WIL -= other.WIL
	return r
}

// Total is the sum of all five attributes.
func (r Rewards) Total() int {
	return r.INT + r.VIT + r.CHA + r.GOLD + r.WIL
}

// IsZero reports whether every field is zero.
func (r Rewards) IsZero() bool {
	return r == Rewards{}
}

// Attributes is the character's progression state. XP stays below
// XPForNextLevel except transiently inside a level-up resolution.
type Attributes struct {
	Rewards
	Level          int `json:"level"`
	XP             int `json:"xp"`
	XPForNextLevel int `json:"xpForNextLevel"`
}

type Profile struct {
	Name                 string   `json:"name"`
	Age                  int      `json:"age,omitempty"`
	Occupation           string   `json:"occupation,omitempty"`
	WakeUpTime           string   `json:"wakeUpTime,omitempty"` // HH:MM
	SleepTime            string   `json:"sleepTime,omitempty"`  // HH:MM
	DailyAvailableHours  float64  `json:"dailyAvailableHours,omitempty"`
	PreferredWorkPeriods []string `json:"preferredWorkPeriods,omitempty"` // morning|afternoon|evening|night
	JoinLeaderboard      bool     `json:"joinLeaderboard"`
	LeaderboardNickname  string   `json:"leaderboardNickname,omitempty"`
}

type Skills struct {
	Skills                []string `json:"skills"`
	LearningGoals         []string `json:"learningGoals"`
	Strengths             []string `json:"strengths"`
	Weaknesses            []string `json:"weaknesses"`
	PreferredTaskDuration int      `json:"preferredTaskDuration,omitempty"` // minutes
}

// TaskRecord is one entry in the per-account task history. Records are
// appended on creation and mutated in place; they are never erased.
type TaskRecord struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	ScheduledDate  string  `json:"scheduledDate"` // YYYY-MM-DD, local time
	CompletedDate  string  `json:"completedDate,omitempty"`
	Duration       int     `json:"duration"` // planned minutes
	ActualDuration int     `json:"actualDuration,omitempty"`
	Completed      bool    `json:"completed"`
	Category       string  `json:"category,omitempty"`
	Rewards        Rewards `json:"rewards"`
	CheckInPhoto   string  `json:"checkInPhoto,omitempty"`
	Deleted        bool    `json:"deleted,omitempty"`
}

type CheckInRecord struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	TaskTitle string    `json:"taskTitle"`
	PhotoData string    `json:"photoData,omitempty"` // data URI thumbnail
	Timestamp time.Time `json:"timestamp"`
	Rewards   Rewards   `json:"rewards"`
}

type Stats struct {
	TotalTasksCreated     int     `json:"totalTasksCreated"`
	TotalTasksCompleted   int     `json:"totalTasksCompleted"`
	AverageCompletionRate float64 `json:"averageCompletionRate"`
	AverageDelayDays      float64 `json:"averageDelayDays"`
	StreakDays            int     `json:"streakDays"`
	LastActiveDate        string  `json:"lastActiveDate,omitempty"` // YYYY-MM-DD
}

// UserData is the whole per-account document. Writes replace it in full.
type UserData struct {
	Profile        Profile         `json:"profile"`
	Skills         Skills          `json:"skills"`
	TaskHistory    []TaskRecord    `json:"taskHistory"`
	CheckInRecords []CheckInRecord `json:"checkInRecords"`
	Stats          Stats           `json:"stats"`
	Attributes     Attributes      `json:"attributes"`
	Achievements   []string        `json:"achievements,omitempty"` // unlocked ids
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`

	// version is the kv document version this copy was loaded at. Save
	// uses it for the check-and-set write; zero means create.
	version int64
}

// Task finds a task history record by id. Returns nil when absent.
func (u *UserData) Task(id string) *TaskRecord {
	for i := range u.TaskHistory {
		if u.TaskHistory[i].ID == id {
			return &u.TaskHistory[i]
		}
	}
	return nil
}

// HasAchievement reports whether the achievement id is already unlocked.
func (u *UserData) HasAchievement(id string) bool {
	for _, a := range u.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// ScheduleItemType classifies a day-schedule entry.
type ScheduleItemType string

const (
	ScheduleTask    ScheduleItemType = "task"
	ScheduleMeal    ScheduleItemType = "meal"
	ScheduleBreak   ScheduleItemType = "break"
	ScheduleRoutine ScheduleItemType = "routine"
)

func (t ScheduleItemType) IsValid() bool {
	switch t {
	case ScheduleTask, ScheduleMeal, ScheduleBreak, ScheduleRoutine:
		return true
	default:
		return false
	}
}

// ScheduleItem is a time-boxed entry in one day's plan. Items of type task
// may carry a LinkedTaskID pointing at a task history record; the two are
// kept in lock-step completion state by the engine.
type ScheduleItem struct {
	ID           string           `json:"id"`
	Time         string           `json:"time"` // HH:MM
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	Duration     int              `json:"duration"` // minutes
	Type         ScheduleItemType `json:"type"`
	Rewards      Rewards          `json:"rewards"`
	Completed    bool             `json:"completed"`
	LinkedTaskID string           `json:"linkedTaskId,omitempty"`
}

// Community collections: each is a flat JSON document shared by all accounts.

type Comment struct {
	ID           string    `json:"id"`
	PostID       string    `json:"postId"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar"`
	Content      string    `json:"content"`
	Likes        []string  `json:"likes"`
	CreatedAt    time.Time `json:"createdAt"`
	ReplyTo      string    `json:"replyTo,omitempty"`
}

type Post struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar"`
	Content      string    `json:"content"`
	Likes        []string  `json:"likes"` // user ids
	Comments     []Comment `json:"comments"`
	CreatedAt    time.Time `json:"createdAt"`
	Tags         []string  `json:"tags,omitempty"`
}

type PartnerProfile struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar"`
	Level        int       `json:"level"`
	Interests    []string  `json:"interests"`
	Goals        []string  `json:"goals"`
	Introduction string    `json:"introduction"`
	Attributes   Rewards   `json:"attributes"`
	IsLooking    bool      `json:"isLooking"`
	MatchTags    []string  `json:"matchTags"`
	LastActive   time.Time `json:"lastActive"`
}

type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchAccepted MatchStatus = "accepted"
	MatchRejected MatchStatus = "rejected"
)

type MatchRequest struct {
	ID         string      `json:"id"`
	FromUserID string      `json:"fromUserId"`
	ToUserID   string      `json:"toUserId"`
	Message    string      `json:"message"`
	Status     MatchStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
}

type ChatMessage struct {
	ID         string    `json:"id"`
	ChatID     string    `json:"chatId"` // both user ids, sorted and joined
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	Read       bool      `json:"read"`
}

// TeaHouseReadState tracks, per user, how many likes/comments on their own
// posts they have already seen. Unread counts are derived from the deltas.
type TeaHouseReadState struct {
	UserID               string         `json:"userId"`
	LastReadTime         time.Time      `json:"lastReadTime"`
	AcknowledgedLikes    map[string]int `json:"acknowledgedLikes"`    // post id -> like count
	AcknowledgedComments map[string]int `json:"acknowledgedComments"` // post id -> comment count
}
