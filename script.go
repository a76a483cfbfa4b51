package choreo

import (
	"fmt"
	"math"

	"github.com/fogleman/ease"
	"gopkg.in/yaml.v3"
)

// easings maps script names to easing functions.
var easings = map[string]ease.Function{
	"linear":         ease.Linear,
	"in-quad":        ease.InQuad,
	"out-quad":       ease.OutQuad,
	"in-out-quad":    ease.InOutQuad,
	"in-cubic":       ease.InCubic,
	"out-cubic":      ease.OutCubic,
	"in-out-cubic":   ease.InOutCubic,
	"in-quart":       ease.InQuart,
	"out-quart":      ease.OutQuart,
	"in-out-quart":   ease.InOutQuart,
	"in-sine":        ease.InSine,
	"out-sine":       ease.OutSine,
	"in-out-sine":    ease.InOutSine,
	"in-expo":        ease.InExpo,
	"out-expo":       ease.OutExpo,
	"in-out-expo":    ease.InOutExpo,
	"in-circ":        ease.InCirc,
	"out-circ":       ease.OutCirc,
	"in-out-circ":    ease.InOutCirc,
	"in-elastic":     ease.InElastic,
	"out-elastic":    ease.OutElastic,
	"in-out-elastic": ease.InOutElastic,
	"in-back":        ease.InBack,
	"out-back":       ease.OutBack,
	"in-out-back":    ease.InOutBack,
	"in-bounce":      ease.InBounce,
	"out-bounce":     ease.OutBounce,
	"in-out-bounce":  ease.InOutBounce,
}

// EasingByName returns the easing function registered under name. An empty
// name returns the default easing.
func EasingByName(name string) (ease.Function, bool) {
	if name == "" {
		return DefaultEasing, true
	}
	fn, ok := easings[name]
	return fn, ok
}

// Script is a declarative animation sequence: each step becomes one batch
// on the scene timeline, in order.
type Script struct {
	Steps []ScriptStep `yaml:"steps"`
}

// ScriptStep describes one transform op or wait.
type ScriptStep struct {
	Op string `yaml:"op"` // scale, rotate, move, or wait

	Factor float64 `yaml:"factor"` // scale
	Angle  float64 `yaml:"angle"`  // rotate, degrees
	DX     float64 `yaml:"dx"`     // move
	DY     float64 `yaml:"dy"`
	DZ     float64 `yaml:"dz"`

	Duration float64 `yaml:"duration"` // ms; 0 means the default
	Easing   string  `yaml:"easing"`   // registry name; "" means the default
}

// LoadScript parses a YAML animation script and validates every step.
func LoadScript(data []byte) (*Script, error) {
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("script has no steps")
	}
	for i, step := range sc.Steps {
		switch step.Op {
		case "scale", "rotate", "move", "wait":
		default:
			return nil, fmt.Errorf("step %d: unknown op %q", i, step.Op)
		}
		if _, ok := EasingByName(step.Easing); !ok {
			return nil, fmt.Errorf("step %d: unknown easing %q", i, step.Easing)
		}
		if step.Op == "wait" && step.Duration <= 0 {
			return nil, fmt.Errorf("step %d: wait needs a positive duration", i)
		}
	}
	return &sc, nil
}

// Apply enqueues the script's steps on the scene timeline, in order.
func (sc *Script) Apply(s *Scene) {
	for _, step := range sc.Steps {
		fn, _ := EasingByName(step.Easing)
		switch step.Op {
		case "scale":
			s.Scale(step.Factor, step.Duration, fn)
		case "rotate":
			s.Rotate(step.Angle*math.Pi/180, step.Duration, fn)
		case "move":
			s.Move(step.DX, step.DY, step.DZ, step.Duration, fn)
		case "wait":
			s.Wait(step.Duration)
		}
	}
}
