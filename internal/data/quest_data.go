package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Quest objective types the engine tracks. The wildcard target "any"
// matches every kill on a kill objective.
const (
	ObjectiveKill    = "kill"
	ObjectiveCollect = "collect"

	TargetAny = "any"
)

// QuestObjective is one requirement within a quest.
type QuestObjective struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	Target      string `yaml:"target"`
	Count       int    `yaml:"count"`
	Optional    bool   `yaml:"optional,omitempty"`
}

// QuestReward is everything granted when a quest is turned in.
type QuestReward struct {
	XP            int64    `yaml:"xp,omitempty"`
	Gold          int64    `yaml:"gold,omitempty"`
	Items         []string `yaml:"items,omitempty"`
	SkillPoints   int      `yaml:"skill_points,omitempty"`
	UnlockQuest   string   `yaml:"unlock_quest,omitempty"`
	UnlockAbility string   `yaml:"unlock_ability,omitempty"`
}

// QuestTemplate is the static definition of one quest.
type QuestTemplate struct {
	ID               string           `yaml:"id"`
	Name             string           `yaml:"name"`
	Description      string           `yaml:"description"`
	Giver            string           `yaml:"giver"`
	LevelRequirement int              `yaml:"level_requirement"`
	Main             bool             `yaml:"main,omitempty"`
	Repeatable       bool             `yaml:"repeatable,omitempty"`
	Prereqs          []string         `yaml:"prereqs,omitempty"`
	Objectives       []QuestObjective `yaml:"objectives"`
	Rewards          QuestReward      `yaml:"rewards"`
}

// Objective looks up one of the quest's objectives by id.
func (q *QuestTemplate) Objective(id string) (QuestObjective, bool) {
	for _, obj := range q.Objectives {
		if obj.ID == id {
			return obj, true
		}
	}
	return QuestObjective{}, false
}

var validObjectiveTypes = map[string]bool{
	ObjectiveKill:    true,
	ObjectiveCollect: true,
}

func loadQuests(path string) (map[string]*QuestTemplate, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var file struct {
		Quests []*QuestTemplate `yaml:"quests"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	quests := make(map[string]*QuestTemplate, len(file.Quests))
	for _, q := range file.Quests {
		if q.ID == "" {
			return nil, fmt.Errorf("%s: quest without id", path)
		}
		if _, dup := quests[q.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate quest id %q", path, q.ID)
		}
		if len(q.Objectives) == 0 {
			return nil, fmt.Errorf("%s: quest %q: no objectives", path, q.ID)
		}
		if q.LevelRequirement < 1 {
			q.LevelRequirement = 1
		}
		seen := make(map[string]bool, len(q.Objectives))
		for i := range q.Objectives {
			obj := &q.Objectives[i]
			if obj.ID == "" {
				return nil, fmt.Errorf("%s: quest %q: objective without id", path, q.ID)
			}
			if seen[obj.ID] {
				return nil, fmt.Errorf("%s: quest %q: duplicate objective id %q", path, q.ID, obj.ID)
			}
			seen[obj.ID] = true
			if !validObjectiveTypes[obj.Type] {
				return nil, fmt.Errorf("%s: quest %q: objective %q: unknown type %q", path, q.ID, obj.ID, obj.Type)
			}
			if obj.Target == "" {
				return nil, fmt.Errorf("%s: quest %q: objective %q: empty target", path, q.ID, obj.ID)
			}
			if obj.Count < 1 {
				obj.Count = 1
			}
		}
		quests[q.ID] = q
	}

	// Prerequisite references must stay inside the quest set.
	for _, q := range quests {
		for _, pre := range q.Prereqs {
			if _, ok := quests[pre]; !ok {
				return nil, fmt.Errorf("%s: quest %q: unknown prerequisite quest %q", path, q.ID, pre)
			}
		}
		if q.Rewards.UnlockQuest != "" {
			if _, ok := quests[q.Rewards.UnlockQuest]; !ok {
				return nil, fmt.Errorf("%s: quest %q: unknown unlock quest %q", path, q.ID, q.Rewards.UnlockQuest)
			}
		}
	}

	return quests, nil
}
