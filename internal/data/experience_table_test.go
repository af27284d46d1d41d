package data

import "testing"

func TestExpForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int64
	}{
		{0, 0},
		{1, 0},
		{2, 100},
		{3, 250},
		{4, 475},
		{5, 812},
		{10, 7464},
	}

	for _, tt := range tests {
		got := ExpForLevel(tt.level)
		if got != tt.want {
			t.Errorf("ExpForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}

	// Beyond the cap clamps to the cap threshold.
	if ExpForLevel(MaxCharacterLevel+10) != ExpForLevel(MaxCharacterLevel) {
		t.Error("levels beyond the cap should clamp to the cap threshold")
	}
}

func TestLevelForExp(t *testing.T) {
	tests := []struct {
		exp        int64
		startLevel int
		want       int
	}{
		{0, 1, 1},
		{99, 1, 1},
		{100, 1, 2},
		{101, 1, 2},
		{249, 1, 2},
		{250, 1, 3},
		{7464, 1, 10},
		{7464, 10, 10},
	}

	for _, tt := range tests {
		got := LevelForExp(tt.exp, tt.startLevel)
		if got != tt.want {
			t.Errorf("LevelForExp(%d, %d) = %d, want %d", tt.exp, tt.startLevel, got, tt.want)
		}
	}

	if got := LevelForExp(1<<62, 1); got != MaxCharacterLevel {
		t.Errorf("huge exp should cap at %d, got %d", MaxCharacterLevel, got)
	}
}

func TestExperienceTableMonotonic(t *testing.T) {
	for i := 1; i < MaxCharacterLevel; i++ {
		if experienceTable[i] >= experienceTable[i+1] {
			t.Errorf("experienceTable[%d]=%d >= experienceTable[%d]=%d, must be strictly increasing",
				i, experienceTable[i], i+1, experienceTable[i+1])
		}
	}
}
