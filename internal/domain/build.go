package domain

import (
	"fmt"

	chorederrors "github.com/chored-dev/chored/internal/errors"
)

// LastStage is the stage reference that resolves to the most recently
// defined stage of a BuildSpec.
const LastStage = "last"

// StepKind identifies which variant a Step holds.
type StepKind string

// Step kinds.
const (
	StepKindCopy StepKind = "copy"
	StepKindRun  StepKind = "run"
)

// StepCopy copies Src from the build context to Dest in the image.
type StepCopy struct {
	Src  string `yaml:"src" mapstructure:"src"`
	Dest string `yaml:"dest" mapstructure:"dest"`
}

// StepRun executes Command (exec form) in the image.
type StepRun struct {
	Command []string `yaml:"command" mapstructure:"command"`
}

// Step is one instruction of a stage. Exactly one of Copy or Run is set.
//
// In YAML a step is written as either
//
//	- copy: {src: project, dest: project}
//	- run: {command: [sbt, about]}
type Step struct {
	Copy *StepCopy `yaml:"copy,omitempty" mapstructure:"copy"`
	Run  *StepRun  `yaml:"run,omitempty" mapstructure:"run"`
}

// CopyStep builds a copy step.
func CopyStep(src, dest string) Step {
	return Step{Copy: &StepCopy{Src: src, Dest: dest}}
}

// RunStep builds a run step.
func RunStep(command ...string) Step {
	cmd := make([]string, len(command))
	copy(cmd, command)
	return Step{Run: &StepRun{Command: cmd}}
}

// Kind reports the variant held by the step, or "" for an empty step.
func (s Step) Kind() StepKind {
	switch {
	case s.Copy != nil:
		return StepKindCopy
	case s.Run != nil:
		return StepKindRun
	default:
		return ""
	}
}

// Validate checks that exactly one variant is set and that it is complete.
func (s Step) Validate() error {
	if s.Copy != nil && s.Run != nil {
		return fmt.Errorf("%w: step sets both copy and run", chorederrors.ErrConfigInvalid)
	}
	switch s.Kind() {
	case StepKindCopy:
		if s.Copy.Src == "" || s.Copy.Dest == "" {
			return fmt.Errorf("%w: copy step needs src and dest", chorederrors.ErrConfigInvalid)
		}
	case StepKindRun:
		if len(s.Run.Command) == 0 {
			return fmt.Errorf("%w: run step has no command", chorederrors.ErrConfigInvalid)
		}
	default:
		return fmt.Errorf("%w: empty step", chorederrors.ErrConfigInvalid)
	}
	return nil
}

// Stage is a named layer group in a multi-stage image build.
type Stage struct {
	Name    string
	From    string
	Workdir string
	Steps   []Step
	// Cmd is the default container command; empty leaves the base image's.
	Cmd []string
}

// BuildSpec is the full container build description for a project.
type BuildSpec struct {
	// URL is the image repository, e.g. ghcr.io/owner/repo.
	URL    string
	Stages []Stage
}

// Stage returns the stage with the given name. LastStage resolves to the
// final stage in definition order.
func (b BuildSpec) Stage(name string) (Stage, error) {
	if name == LastStage {
		if len(b.Stages) == 0 {
			return Stage{}, fmt.Errorf("%w: spec has no stages", chorederrors.ErrStageNotFound)
		}
		return b.Stages[len(b.Stages)-1], nil
	}
	for _, s := range b.Stages {
		if s.Name == name {
			return s, nil
		}
	}
	return Stage{}, fmt.Errorf("%w: %s", chorederrors.ErrStageNotFound, name)
}

// Validate enforces unique, non-empty stage names and well-formed steps.
func (b BuildSpec) Validate() error {
	seen := make(map[string]struct{}, len(b.Stages))
	for _, s := range b.Stages {
		if s.Name == "" || s.Name == LastStage {
			return fmt.Errorf("%w: invalid stage name %q", chorederrors.ErrConfigInvalid, s.Name)
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("%w: %s", chorederrors.ErrDuplicateStage, s.Name)
		}
		seen[s.Name] = struct{}{}
		if s.From == "" {
			return fmt.Errorf("%w: stage %s has no base image", chorederrors.ErrConfigInvalid, s.Name)
		}
		for i, step := range s.Steps {
			if err := step.Validate(); err != nil {
				return fmt.Errorf("stage %s step %d: %w", s.Name, i, err)
			}
		}
	}
	return nil
}
