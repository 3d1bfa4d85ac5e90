package mock

import "github.com/fwojciec/docset"

var _ docset.Workspace = (*Workspace)(nil)

// Workspace is a mock implementation of docset.Workspace.
type Workspace struct {
	CreateFn  func(l docset.Layout) error
	AbortFn   func(l docset.Layout) error
	ReleaseFn func(l docset.Layout) error
}

func (w *Workspace) Create(l docset.Layout) error {
	return w.CreateFn(l)
}

func (w *Workspace) Abort(l docset.Layout) error {
	return w.AbortFn(l)
}

func (w *Workspace) Release(l docset.Layout) error {
	return w.ReleaseFn(l)
}

var _ docset.Reporter = (*Reporter)(nil)

// Reporter is a mock implementation of docset.Reporter. Nil funcs are
// ignored so tests only stub the messages they inspect.
type Reporter struct {
	SuccessFn func(msg string)
	WarningFn func(msg string)
}

func (r *Reporter) Success(msg string) {
	if r.SuccessFn != nil {
		r.SuccessFn(msg)
	}
}

func (r *Reporter) Warning(msg string) {
	if r.WarningFn != nil {
		r.WarningFn(msg)
	}
}
