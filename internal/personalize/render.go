package personalize

import (
	"io"

	"github.com/patrickwarner/smartdocs/internal/environment"
	"github.com/patrickwarner/smartdocs/internal/models"
	"github.com/patrickwarner/smartdocs/internal/rewriter"
)

// Apply registers every rule active for os on rw.
func Apply(rw *rewriter.Rewriter, rules []Rule, os environment.OS) error {
	for _, r := range rules {
		if !r.Applies(os) {
			continue
		}
		if err := rw.On(r.Selector, handler(r.Action)); err != nil {
			return err
		}
	}
	return nil
}

func handler(a Action) rewriter.Handler {
	switch a.Kind {
	case ActionHide:
		return func(e *rewriter.Element) { e.SetAttribute("style", HiddenStyle) }
	case ActionRemove:
		return func(e *rewriter.Element) { e.Remove() }
	case ActionActivateBadge:
		return func(e *rewriter.Element) {
			if v, ok := e.GetAttribute("data-os"); ok && v == a.Value {
				e.SetAttribute("class", "os-badge active")
			}
		}
	default:
		return func(e *rewriter.Element) { e.SetAttribute(a.Name, a.Value) }
	}
}

// NewRewriter builds a rewriter carrying p's rules for env.
func NewRewriter(p Policy, env models.Environment) (*rewriter.Rewriter, error) {
	rw := rewriter.New()
	if err := Apply(rw, Rules(p, env), env.OS); err != nil {
		return nil, err
	}
	return rw, nil
}

// Render streams src to dst personalized for env under p.
func Render(dst io.Writer, src io.Reader, p Policy, env models.Environment) error {
	rw, err := NewRewriter(p, env)
	if err != nil {
		return err
	}
	return rw.Transform(dst, src)
}
