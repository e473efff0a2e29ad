package prefabs

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// EncounterSpec is the whole boss rush: phase order, per-boss tuning and
// shared arena settings.
type EncounterSpec struct {
	Name        string              `yaml:"name"`
	Seed        int64               `yaml:"seed"`
	Arena       VecSpec             `yaml:"arena"`
	SettleDelay float64             `yaml:"settle_delay"`
	Phases      []string            `yaml:"phases"`
	Bosses      map[string]BossSpec `yaml:"bosses"`
}

type BossSpec struct {
	Name         string             `yaml:"name"`
	Color        YAMLColor          `yaml:"color"`
	Position     VecSpec            `yaml:"position"`
	Spawn        VecSpec            `yaml:"spawn"`
	Health       int                `yaml:"health"`
	HealthPhases int                `yaml:"health_phases"`
	Difficulty   DifficultySpec     `yaml:"difficulty"`
	Weakpoints   WeakpointSpec      `yaml:"weakpoints"`
	Patterns     []PatternSpec      `yaml:"patterns"`
	Scripts      []string           `yaml:"scripts"`
	Clips        map[string]float64 `yaml:"clips"`
	Parts        []PartSpec         `yaml:"parts"`
}

type DifficultySpec struct {
	Tutorial  float64            `yaml:"tutorial"`
	Easy      float64            `yaml:"easy"`
	Normal    float64            `yaml:"normal"`
	Speeds    map[string]float64 `yaml:"speeds"`
	Durations map[string]float64 `yaml:"durations"`
	Counts    map[string]int     `yaml:"counts"`
}

type WeakpointSpec struct {
	Slots            []VecSpec `yaml:"slots"`
	Required         int       `yaml:"required"`
	TutorialRequired int       `yaml:"tutorial_required"`
	Health           int       `yaml:"health"`
	Radius           float64   `yaml:"radius"`
	Lifetime         float64   `yaml:"lifetime"`
	RespawnDelay     float64   `yaml:"respawn_delay"`
	ExtraDelay       float64   `yaml:"extra_delay"`
	DeliveryTime     float64   `yaml:"delivery_time"`
	HitSound         string    `yaml:"hit_sound"`
	DeathSound       string    `yaml:"death_sound"`
}

type PatternSpec struct {
	Name   string   `yaml:"name"`
	Attack string   `yaml:"attack"`
	Rows   []string `yaml:"rows"`
}

type PartSpec struct {
	Name   string  `yaml:"name"`
	Offset VecSpec `yaml:"offset"`
	Radius float64 `yaml:"radius"`
}

// VecSpec accepts either {x: 1, y: 2} or [1, 2].
type VecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v VecSpec) Vector() cp.Vector { return cp.Vector{X: v.X, Y: v.Y} }

func (v *VecSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var xy []float64
		if err := value.Decode(&xy); err != nil {
			return err
		}
		if len(xy) != 2 {
			return fmt.Errorf("vector needs 2 values, got %d (line %d)", len(xy), value.Line)
		}
		v.X, v.Y = xy[0], xy[1]
		return nil
	case yaml.MappingNode:
		var m struct {
			X float64 `yaml:"x"`
			Y float64 `yaml:"y"`
		}
		if err := value.Decode(&m); err != nil {
			return err
		}
		v.X, v.Y = m.X, m.Y
		return nil
	default:
		return fmt.Errorf("vector must be a list or a map (line %d)", value.Line)
	}
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// ParseEncounterSpec decodes and validates an encounter document.
func ParseEncounterSpec(data []byte) (*EncounterSpec, error) {
	var spec EncounterSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal encounter: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadEncounterSpec reads path from disk, or the packaged encounter.yaml
// when path is empty.
func LoadEncounterSpec(path string) (*EncounterSpec, error) {
	if path == "" {
		spec, err := LoadSpec[EncounterSpec](DefaultEncounter)
		if err != nil {
			return nil, err
		}
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		return &spec, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", path, err)
	}
	return ParseEncounterSpec(data)
}
