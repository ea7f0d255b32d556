package action

// Action is what a key binding does.
type Action interface {
	Do()

	// Explain describes the action for the help.
	Explain() string
}

// Simple is an Action that calls a func.
type Simple struct {
	do      func()
	explain func() string
}

// New returns an action with a fixed explanation.
func New(explanation string, do func()) *Simple {
	return NewSimple(func() string { return explanation }, do)
}

// NewSimple returns an action whose explanation is computed on every call to
// Explain.
func NewSimple(explainer func() string, do func()) *Simple {
	return &Simple{do: do, explain: explainer}
}

func (a *Simple) Do()             { a.do() }
func (a *Simple) Explain() string { return a.explain() }
