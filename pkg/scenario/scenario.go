package scenario

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/live/internal/errors"
	"github.com/vango-dev/live/pkg/dom"
)

// Scenario is a parsed scenario document.
type Scenario struct {
	// HTML is the page every replay starts from.
	HTML string `yaml:"html"`

	// Layout assigns document-coordinate boxes, [x, y, width, height], to
	// every element matching each selector.
	Layout Layout `yaml:"layout,omitempty"`

	// Scroll is the initial [x, y] scroll offset.
	Scroll []float64 `yaml:"scroll,omitempty"`

	// Batch holds mutation records until an explicit flush step.
	Batch bool `yaml:"batch,omitempty"`

	Bindings []BindingSpec `yaml:"bindings,omitempty"`
	Steps    []Step        `yaml:"steps,omitempty"`

	// Expect lists the invocations a replay must produce, in order.
	Expect []string `yaml:"expect,omitempty"`

	// File is the path the scenario was loaded from, if any.
	File string `yaml:"-"`
}

// Layout maps selectors to [x, y, width, height] boxes.
type Layout map[string][]float64

// BindingSpec declares one binding and the callback recorded for it.
type BindingSpec struct {
	Selector string `yaml:"selector"`

	// Context selects the context element. Empty means the body.
	Context string `yaml:"context,omitempty"`

	// Future binds once an element matching it is inserted. It excludes
	// Context.
	Future string `yaml:"future,omitempty"`

	Namespace string `yaml:"namespace,omitempty"`
	Events    string `yaml:"events"`

	// Cancel makes the callback return false.
	Cancel bool `yaml:"cancel,omitempty"`

	Pos Pos `yaml:"-"`
}

// Pos is a line and column in the scenario source.
type Pos struct {
	Line   int
	Column int
}

// UnmarshalYAML records the position of the binding.
func (b *BindingSpec) UnmarshalYAML(value *yaml.Node) error {
	type plain BindingSpec
	if err := value.Decode((*plain)(b)); err != nil {
		return err
	}
	b.Pos = Pos{Line: value.Line, Column: value.Column}
	return nil
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("L003").WithDetail("Could not read " + path).Wrap(err)
	}
	s, err := Parse(data)
	if err != nil {
		var le *errors.LiveError
		if stderrors.As(err, &le) && le.Location != nil {
			le.WithLocation(path, le.Location.Line, le.Location.Column)
		}
		return nil, err
	}
	s.File = path
	return s, nil
}

// Parse decodes a scenario document. Unknown fields are rejected.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.New("L003").WithDetail("The scenario document is empty.")
		}
		le := errors.New("L003").Wrap(err)
		if line := yamlErrorLine(err); line > 0 {
			le.Location = &errors.Location{Line: line}
		}
		return nil, le
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// yamlErrorLine extracts "line N" from a yaml.v3 error.
func yamlErrorLine(err error) int {
	msg := err.Error()
	if i := strings.Index(msg, "line "); i >= 0 {
		var line int
		if _, scanErr := fmt.Sscanf(msg[i:], "line %d", &line); scanErr == nil {
			return line
		}
	}
	return 0
}

// validate checks the document shape. Selectors are checked by Check.
func (s *Scenario) validate() error {
	if len(s.Scroll) != 0 && len(s.Scroll) != 2 {
		return s.fail("L003", Pos{}, "scroll must be [x, y]")
	}
	for sel, box := range s.Layout {
		if len(box) != 4 {
			return s.fail("L003", Pos{}, "layout %q must be [x, y, width, height]", sel)
		}
	}
	for _, b := range s.Bindings {
		switch {
		case b.Selector == "":
			return s.fail("L003", b.Pos, "binding has no selector")
		case b.Context != "" && b.Future != "":
			return s.fail("L003", b.Pos, "binding %q sets both context and future", b.Selector)
		}
	}
	for i := range s.Steps {
		if err := s.Steps[i].validate(); err != nil {
			return s.fail("L003", s.Steps[i].Pos, "step %d: %v", i+1, err)
		}
	}
	return nil
}

// fail builds a coded error positioned in the scenario source.
func (s *Scenario) fail(code string, pos Pos, format string, args ...any) *errors.LiveError {
	le := errors.New(code).WithDetailf(format, args...)
	if pos.Line > 0 {
		if s.File != "" {
			le.WithLocation(s.File, pos.Line, pos.Column)
		} else {
			le.Location = &errors.Location{Line: pos.Line, Column: pos.Column}
		}
	}
	return le
}

// Check compiles every selector the scenario uses and returns one error
// per problem.
func (s *Scenario) Check() []error {
	var errs []error
	compile := func(pos Pos, what, expr string) {
		if expr == "" {
			return
		}
		if _, err := dom.Compile(expr); err != nil {
			errs = append(errs, s.fail("L001", pos, "%s %q", what, expr).Wrap(err))
		}
	}

	for _, sel := range s.Layout.selectors() {
		compile(Pos{}, "layout selector", sel)
	}
	for _, b := range s.Bindings {
		compile(b.Pos, "binding selector", b.Selector)
		compile(b.Pos, "binding context", b.Context)
		compile(b.Pos, "binding future", b.Future)
	}
	for _, st := range s.Steps {
		compile(st.Pos, "step target", st.Target)
		compile(st.Pos, "step parent", st.Parent)
		compile(st.Pos, "step remove", st.Remove)
		for _, sel := range st.Layout.selectors() {
			compile(st.Pos, "step layout selector", sel)
		}
		if st.Off != nil {
			compile(st.Pos, "off selector", st.Off.Selector)
			compile(st.Pos, "off context", st.Off.Context)
		}
	}
	return errs
}

// selectors returns the layout keys in a stable order.
func (l Layout) selectors() []string {
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Apply sets the box of every element matching each selector.
func (l Layout) Apply(doc *dom.Document) error {
	for _, sel := range l.selectors() {
		nodes, err := doc.QuerySelectorAll(sel)
		if err != nil {
			return err
		}
		box := l[sel]
		for _, n := range nodes {
			n.SetRect(dom.Rect{X: box[0], Y: box[1], Width: box[2], Height: box[3]})
		}
	}
	return nil
}

// NewDocument parses the scenario page and applies its layout and scroll.
func (s *Scenario) NewDocument() (*dom.Document, error) {
	doc, err := dom.ParseString(s.HTML)
	if err != nil {
		return nil, errors.New("L003").WithDetail("The html field could not be parsed.").Wrap(err)
	}
	if err := s.Layout.Apply(doc); err != nil {
		return nil, errors.New("L001").Wrap(err)
	}
	if len(s.Scroll) == 2 {
		doc.ScrollTo(s.Scroll[0], s.Scroll[1])
	}
	return doc, nil
}
