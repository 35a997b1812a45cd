package scenario

import (
	stderrors "errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind identifies what a step does.
type Kind string

const (
	KindPointer  Kind = "pointer"
	KindDispatch Kind = "dispatch"
	KindInsert   Kind = "insert"
	KindRemove   Kind = "remove"
	KindScroll   Kind = "scroll"
	KindLayout   Kind = "layout"
	KindOff      Kind = "off"
	KindFlush    Kind = "flush"
)

var pointerKinds = map[string]bool{
	"move": true, "over": true, "out": true,
	"down": true, "up": true, "cancel": true,
}

// Step is one action of a replay. Exactly one of the kind fields is set.
type Step struct {
	// Pointer runs a pointer sequence (move, over, out, down, up, cancel)
	// on Target at At.
	Pointer string `yaml:"pointer,omitempty"`

	// Dispatch sends one native event of this type to Target.
	Dispatch string `yaml:"dispatch,omitempty"`

	// Insert parses this HTML under Parent (the body by default) and
	// appends the resulting elements.
	Insert string `yaml:"insert,omitempty"`

	// Remove detaches every element matching this selector.
	Remove string `yaml:"remove,omitempty"`

	// Scroll sets the [x, y] scroll offset.
	Scroll []float64 `yaml:"scroll,omitempty"`

	// Layout updates element boxes.
	Layout Layout `yaml:"layout,omitempty"`

	// Off clears callbacks of an existing binding.
	Off *OffStep `yaml:"off,omitempty"`

	// Flush delivers pending mutation records.
	Flush bool `yaml:"flush,omitempty"`

	Target string    `yaml:"target,omitempty"`
	Parent string    `yaml:"parent,omitempty"`
	At     []float64 `yaml:"at,omitempty"`
	Button int       `yaml:"button,omitempty"`
	Key    string    `yaml:"key,omitempty"`

	Pos Pos `yaml:"-"`
}

// OffStep names a binding and the arguments passed to its Off.
type OffStep struct {
	Selector string   `yaml:"selector"`
	Context  string   `yaml:"context,omitempty"`
	Args     []string `yaml:"args,omitempty"`
}

// UnmarshalYAML records the position of the step.
func (s *Step) UnmarshalYAML(value *yaml.Node) error {
	type plain Step
	if err := value.Decode((*plain)(s)); err != nil {
		return err
	}
	s.Pos = Pos{Line: value.Line, Column: value.Column}
	return nil
}

// Kind returns the step kind, or "" when none or several kinds are set.
func (s *Step) Kind() Kind {
	var kinds []Kind
	if s.Pointer != "" {
		kinds = append(kinds, KindPointer)
	}
	if s.Dispatch != "" {
		kinds = append(kinds, KindDispatch)
	}
	if s.Insert != "" {
		kinds = append(kinds, KindInsert)
	}
	if s.Remove != "" {
		kinds = append(kinds, KindRemove)
	}
	if s.Scroll != nil {
		kinds = append(kinds, KindScroll)
	}
	if s.Layout != nil {
		kinds = append(kinds, KindLayout)
	}
	if s.Off != nil {
		kinds = append(kinds, KindOff)
	}
	if s.Flush {
		kinds = append(kinds, KindFlush)
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

func (s *Step) validate() error {
	switch s.Kind() {
	case "":
		return stderrors.New("exactly one of pointer, dispatch, insert, remove, scroll, layout, off or flush must be set")
	case KindPointer:
		if !pointerKinds[s.Pointer] {
			return fmt.Errorf("unknown pointer kind %q", s.Pointer)
		}
		if len(s.At) != 2 {
			return stderrors.New("pointer needs at: [x, y]")
		}
		if s.Target == "" {
			return stderrors.New("pointer needs a target")
		}
	case KindDispatch:
		if s.Target == "" {
			return stderrors.New("dispatch needs a target")
		}
		if len(s.At) != 0 && len(s.At) != 2 {
			return stderrors.New("at must be [x, y]")
		}
	case KindScroll:
		if len(s.Scroll) != 2 {
			return stderrors.New("scroll must be [x, y]")
		}
	case KindLayout:
		for sel, box := range s.Layout {
			if len(box) != 4 {
				return fmt.Errorf("layout %q must be [x, y, width, height]", sel)
			}
		}
	case KindOff:
		if s.Off.Selector == "" {
			return stderrors.New("off needs a selector")
		}
	}
	return nil
}
