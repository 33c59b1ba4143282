package engine

// XPPerTask is the fixed XP award for completing any task, independent of
// its attribute rewards.
const XPPerTask = 20

// XPForLevel returns the XP threshold to advance past the given level:
// level N requires N * 100.
func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return level * 100
}

type LevelUpResult struct {
	XP             int
	Level          int
	XPForNextLevel int
	LeveledUp      bool
}

// ResolveLevelUp consumes XP against successive level thresholds until the
// remainder is below the next threshold. Evaluated iteratively so a single
// large grant advances multiple levels with exact arithmetic: the same
// total XP yields the same (level, xp) whether granted at once or in parts.
func ResolveLevelUp(xp, level, xpForNext int) LevelUpResult {
	if level < 1 {
		level = 1
	}
	if xpForNext <= 0 {
		xpForNext = XPForLevel(level)
	}

	leveledUp := false
	for xp >= xpForNext {
		xp -= xpForNext
		level++
		xpForNext = XPForLevel(level)
		leveledUp = true
	}
	return LevelUpResult{XP: xp, Level: level, XPForNextLevel: xpForNext, LeveledUp: leveledUp}
}
