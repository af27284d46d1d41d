package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skillmine/core/internal/game/skilltree"
)

func loadSkillGraph(path string) (*skilltree.Graph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var file struct {
		Nodes []skilltree.Node `yaml:"nodes"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	g, err := skilltree.NewGraph(file.Nodes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
