package nav

import "strings"

// Behavior is the scroll animation style.
type Behavior string

// Block is the vertical alignment of a scrolled-to element.
type Block string

const (
	BehaviorSmooth Behavior = "smooth"
	BlockStart     Block    = "start"
)

// ScrollOptions mirrors the options passed to Element.scrollIntoView.
type ScrollOptions struct {
	Behavior Behavior `json:"behavior"`
	Block    Block    `json:"block"`
}

// Element is a scroll target inside the document.
type Element interface {
	ScrollIntoView(opts ScrollOptions)
}

// Viewport is the document and window surface the coordinator scrolls.
type Viewport interface {
	ElementByID(id string) (Element, bool)
	ScrollTo(x, y int, behavior Behavior)
}

// OnNavigate produces the single scroll outcome for a committed navigation:
// scroll the fragment target into view, or scroll the window to the origin when
// there is no fragment. A fragment naming no element scrolls nothing.
func OnNavigate(loc Location, vp Viewport) {
	if vp == nil {
		return
	}
	if loc.Hash != "" {
		id := strings.TrimPrefix(loc.Hash, "#")
		if el, ok := vp.ElementByID(id); ok && el != nil {
			el.ScrollIntoView(ScrollOptions{Behavior: BehaviorSmooth, Block: BlockStart})
		}
		return
	}
	vp.ScrollTo(0, 0, BehaviorSmooth)
}

// ScrollAction names what the client should do after navigating.
type ScrollAction string

const (
	ScrollNone    ScrollAction = "none"
	ScrollTop     ScrollAction = "top"
	ScrollElement ScrollAction = "element"
)

// ScrollInstruction is the recorded outcome of OnNavigate against a Plan.
type ScrollInstruction struct {
	Action   ScrollAction `json:"action"`
	Target   string       `json:"target,omitempty"`
	X        int          `json:"x,omitempty"`
	Y        int          `json:"y,omitempty"`
	Behavior Behavior     `json:"behavior,omitempty"`
	Block    Block        `json:"block,omitempty"`
}

// Plan is a Viewport backed by the set of element ids a page renders. It records
// the scroll OnNavigate performs instead of moving anything.
type Plan struct {
	ids         map[string]struct{}
	Instruction ScrollInstruction
}

// NewPlan returns a Plan for a page rendering the given element ids.
func NewPlan(ids []string) *Plan {
	p := &Plan{ids: make(map[string]struct{}, len(ids)), Instruction: ScrollInstruction{Action: ScrollNone}}
	for _, id := range ids {
		if id != "" {
			p.ids[id] = struct{}{}
		}
	}
	return p
}

type planElement struct {
	plan *Plan
	id   string
}

func (e planElement) ScrollIntoView(opts ScrollOptions) {
	e.plan.Instruction = ScrollInstruction{
		Action:   ScrollElement,
		Target:   e.id,
		Behavior: opts.Behavior,
		Block:    opts.Block,
	}
}

// ElementByID implements Viewport.
func (p *Plan) ElementByID(id string) (Element, bool) {
	if _, ok := p.ids[id]; !ok {
		return nil, false
	}
	return planElement{plan: p, id: id}, true
}

// ScrollTo implements Viewport.
func (p *Plan) ScrollTo(x, y int, behavior Behavior) {
	p.Instruction = ScrollInstruction{Action: ScrollTop, X: x, Y: y, Behavior: behavior}
}

// PlanNavigation runs OnNavigate for loc against a page rendering ids.
func PlanNavigation(loc Location, ids []string) ScrollInstruction {
	p := NewPlan(ids)
	OnNavigate(loc, p)
	return p.Instruction
}
