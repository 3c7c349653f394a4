package config

import "fmt"

// PacePreset represents a named animation speed.
type PacePreset string

const (
	PaceSlow    PacePreset = "slow"
	PaceNormal  PacePreset = "normal"
	PaceFast    PacePreset = "fast"
	PaceInstant PacePreset = "instant"
)

// InstantSteps is the per-tick step budget of the instant preset. It is large
// enough to finish any grid the visualizer can show in a single tick.
const InstantSteps = 1 << 20

// Paces lists the presets from slowest to fastest.
var Paces = []PacePreset{PaceSlow, PaceNormal, PaceFast, PaceInstant}

// ParsePace validates a preset name. The empty string is PaceNormal.
func ParsePace(s string) (PacePreset, error) {
	switch p := PacePreset(s); p {
	case "":
		return PaceNormal, nil
	case PaceSlow, PaceNormal, PaceFast, PaceInstant:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown pace %q", s)
	}
}

// SettingsForPace returns the fps and steps per tick of a preset.
func SettingsForPace(p PacePreset) (fps, stepsPerTick int) {
	switch p {
	case PaceSlow:
		return 5, 1
	case PaceFast:
		return 30, 4
	case PaceInstant:
		return 30, InstantSteps
	default:
		return 20, 1
	}
}

// ApplyPace modifies the visualizer config based on a pace preset.
func ApplyPace(cfg *VisualizerConfig, p PacePreset) {
	cfg.Pace = p
	cfg.FPS, cfg.StepsPerTick = SettingsForPace(p)
}

// Speed is an adjustable animation rate, stepped with Faster and Slower.
// Below one step per tick, the rate is expressed as a tick interval.
type Speed struct {
	StepsPerTick int
	TicksPerStep int
}

// SpeedFrom builds a Speed from the visualizer config.
func SpeedFrom(cfg VisualizerConfig) Speed {
	s := Speed{StepsPerTick: cfg.StepsPerTick, TicksPerStep: 1}
	if s.StepsPerTick < 1 {
		s.StepsPerTick = 1
	}
	return s
}

// Faster doubles the rate.
func (s Speed) Faster() Speed {
	if s.TicksPerStep > 1 {
		s.TicksPerStep /= 2
		return s
	}
	if s.StepsPerTick < InstantSteps {
		s.StepsPerTick *= 2
	}
	return s
}

// Slower halves the rate, down to one step every 32 ticks.
func (s Speed) Slower() Speed {
	if s.StepsPerTick > 1 {
		s.StepsPerTick /= 2
		return s
	}
	if s.TicksPerStep < 32 {
		s.TicksPerStep *= 2
	}
	return s
}

// StepsAt returns how many steps to take on the given tick number.
func (s Speed) StepsAt(tick int) int {
	if s.TicksPerStep > 1 {
		if tick%s.TicksPerStep == 0 {
			return 1
		}
		return 0
	}
	return s.StepsPerTick
}

// String describes the rate.
func (s Speed) String() string {
	if s.TicksPerStep > 1 {
		return fmt.Sprintf("1/%d", s.TicksPerStep)
	}
	if s.StepsPerTick >= InstantSteps {
		return "max"
	}
	return fmt.Sprintf("%dx", s.StepsPerTick)
}
