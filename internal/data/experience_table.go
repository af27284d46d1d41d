package data

// MaxCharacterLevel is the maximum achievable character level.
const MaxCharacterLevel = 50

// experienceTable holds cumulative XP required to reach each level.
// Index = level (0-50). Level 0 and 1 require 0 XP. The XP needed to
// advance starts at 100 and grows by half per level, truncated.
var experienceTable = buildExperienceTable()

func buildExperienceTable() [MaxCharacterLevel + 1]int64 {
	var table [MaxCharacterLevel + 1]int64
	need := int64(100)
	for level := 2; level <= MaxCharacterLevel; level++ {
		table[level] = table[level-1] + need
		need = need * 3 / 2
	}
	return table
}

// ExpForLevel returns cumulative XP required to reach the given level.
// Returns 0 for level <= 1 and the cap threshold for level > MaxCharacterLevel.
func ExpForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	if level > MaxCharacterLevel {
		level = MaxCharacterLevel
	}
	return experienceTable[level]
}

// LevelForExp returns the level corresponding to the given cumulative XP.
// Scans upward from startLevel to find the highest level whose threshold is <= exp.
func LevelForExp(exp int64, startLevel int) int {
	if startLevel < 1 {
		startLevel = 1
	}
	level := startLevel
	for level < MaxCharacterLevel {
		if experienceTable[level+1] > exp {
			break
		}
		level++
	}
	return level
}
