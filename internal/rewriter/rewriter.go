// Package rewriter applies selector-scoped element handlers to an HTML
// document while it streams from a reader to a writer.
//
// The document is tokenized, never parsed into a tree. Open elements are
// kept on a stack whose entries are linked as parents, which is enough for
// cascadia to evaluate type, class, attribute and descendant selectors.
// End tags that HTML leaves implied (a <p> ended by a block, an <li> by
// the next <li>) are inferred from the incoming start tag.
// Sibling and structural pseudo-class selectors never match.
package rewriter

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Handler mutates a matched element before its start tag is written.
type Handler func(*Element)

type matcher interface {
	Match(n *html.Node) bool
}

type rule struct {
	selector string
	match    matcher
	handler  Handler
}

// compiled caches parsed selector groups keyed by selector text.
var compiled sync.Map

func compile(selector string) (matcher, error) {
	if m, ok := compiled.Load(selector); ok {
		return m.(matcher), nil
	}
	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("compile selector %q: %w", selector, err)
	}
	compiled.Store(selector, group)
	return group, nil
}

// Rewriter holds an ordered list of rules. It is safe for concurrent use
// once every rule has been registered.
type Rewriter struct {
	rules []rule
}

// New returns an empty Rewriter. With no rules it copies input verbatim.
func New() *Rewriter {
	return &Rewriter{}
}

// On registers h for elements matching selector. Handlers of every rule
// that matches an element run in registration order.
func (rw *Rewriter) On(selector string, h Handler) error {
	m, err := compile(selector)
	if err != nil {
		return err
	}
	rw.rules = append(rw.rules, rule{selector: selector, match: m, handler: h})
	return nil
}

// Len reports the number of registered rules.
func (rw *Rewriter) Len() int {
	return len(rw.rules)
}

// Stream returns the transformed document as a reader. The transformation
// runs in its own goroutine and stops when the reader is closed.
func (rw *Rewriter) Stream(src io.Reader) io.ReadCloser {
	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(rw.Transform(pw, src))
	}()
	return pr
}

// Transform copies src to dst, applying the registered rules. Tokens that
// no handler touched are written byte for byte. Malformed markup is passed
// through; only read and write errors are returned.
func (rw *Rewriter) Transform(dst io.Writer, src io.Reader) error {
	w := bufio.NewWriter(dst)
	z := html.NewTokenizer(src)

	var (
		open    []*html.Node
		skip    int // len(open) when a removed element was pushed; 0 when not skipping
		raw     []byte
		matched []Handler
	)

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				return fmt.Errorf("read document: %w", err)
			}
			return w.Flush()
		}
		raw = append(raw[:0], z.Raw()...)

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			open = closeImplied(open, tok.DataAtom)
			if skip > len(open) {
				// The removed element was closed implicitly.
				skip = 0
			}
			void := tt == html.SelfClosingTagToken || isVoid(tok.DataAtom)
			node := &html.Node{
				Type:     html.ElementNode,
				Data:     tok.Data,
				DataAtom: tok.DataAtom,
				Attr:     tok.Attr,
			}
			if len(open) > 0 {
				node.Parent = open[len(open)-1]
			}

			if skip > 0 {
				if !void {
					open = append(open, node)
				}
				continue
			}

			matched = matched[:0]
			for _, r := range rw.rules {
				if r.match.Match(node) {
					matched = append(matched, r.handler)
				}
			}
			el := &Element{node: node}
			for _, h := range matched {
				h(el)
				if el.removed {
					break
				}
			}

			if el.removed {
				if !void {
					open = append(open, node)
					skip = len(open)
				}
				continue
			}
			if !void {
				open = append(open, node)
			}
			if el.modified {
				tok.Attr = node.Attr
				if _, err := w.WriteString(tok.String()); err != nil {
					return err
				}
				continue
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			i := lastOpen(open, string(name))
			if i < 0 {
				// Stray end tag.
				if skip > 0 {
					continue
				}
				break
			}
			open = open[:i]
			if skip > 0 {
				switch {
				case i > skip-1:
					continue
				case i == skip-1:
					skip = 0
					continue
				default:
					// An ancestor closed the removed element implicitly.
					skip = 0
				}
			}

		default:
			if skip > 0 {
				continue
			}
		}

		if _, err := w.Write(raw); err != nil {
			return err
		}
	}
}

// lastOpen returns the index of the innermost open element named name, or -1.
func lastOpen(open []*html.Node, name string) int {
	for i := len(open) - 1; i >= 0; i-- {
		if open[i].Data == name {
			return i
		}
	}
	return -1
}

var (
	// scopeBoundary stops the search for an element to close implicitly.
	scopeBoundary = []atom.Atom{
		atom.Applet, atom.Button, atom.Caption, atom.Html, atom.Marquee,
		atom.Object, atom.Table, atom.Td, atom.Template, atom.Th,
	}
	listBoundary  = append([]atom.Atom{atom.Ol, atom.Ul, atom.Menu}, scopeBoundary...)
	dlBoundary    = append([]atom.Atom{atom.Dl}, scopeBoundary...)
	rowBoundary   = []atom.Atom{atom.Table, atom.Tbody, atom.Thead, atom.Tfoot, atom.Template, atom.Html}
	cellBoundary  = []atom.Atom{atom.Tr, atom.Table, atom.Template, atom.Html}
	groupBoundary = []atom.Atom{atom.Table, atom.Template, atom.Html}
)

// closesParagraph holds the start tags that end an open <p>.
var closesParagraph = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Center: true, atom.Details: true, atom.Dialog: true, atom.Dir: true,
	atom.Div: true, atom.Dl: true, atom.Dd: true, atom.Dt: true,
	atom.Fieldset: true, atom.Figcaption: true, atom.Figure: true, atom.Footer: true,
	atom.Form: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.Header: true, atom.Hgroup: true, atom.Hr: true,
	atom.Li: true, atom.Listing: true, atom.Main: true, atom.Menu: true, atom.Nav: true,
	atom.Ol: true, atom.P: true, atom.Plaintext: true, atom.Pre: true, atom.Search: true,
	atom.Section: true, atom.Summary: true, atom.Table: true, atom.Ul: true, atom.Xmp: true,
}

// closeImplied pops the elements that a start tag a ends without an end tag.
func closeImplied(open []*html.Node, a atom.Atom) []*html.Node {
	switch a {
	case atom.Li:
		open = closeNearest(open, []atom.Atom{atom.Li}, listBoundary)
	case atom.Dt, atom.Dd:
		open = closeNearest(open, []atom.Atom{atom.Dt, atom.Dd}, dlBoundary)
	case atom.Option:
		open = closeCurrent(open, atom.Option)
	case atom.Optgroup:
		open = closeCurrent(open, atom.Option)
		open = closeCurrent(open, atom.Optgroup)
	case atom.Tr:
		open = closeNearest(open, []atom.Atom{atom.Tr}, rowBoundary)
	case atom.Td, atom.Th:
		open = closeNearest(open, []atom.Atom{atom.Td, atom.Th}, cellBoundary)
	case atom.Tbody, atom.Thead, atom.Tfoot:
		open = closeNearest(open, []atom.Atom{atom.Tbody, atom.Thead, atom.Tfoot}, groupBoundary)
	}
	if closesParagraph[a] {
		open = closeNearest(open, []atom.Atom{atom.P}, scopeBoundary)
	}
	return open
}

// closeNearest pops the innermost open element in targets together with
// everything above it, unless a boundary element is reached first.
func closeNearest(open []*html.Node, targets, boundary []atom.Atom) []*html.Node {
	for i := len(open) - 1; i >= 0; i-- {
		a := open[i].DataAtom
		if slices.Contains(targets, a) {
			return open[:i]
		}
		if slices.Contains(boundary, a) {
			return open
		}
	}
	return open
}

// closeCurrent pops the current element when it is a.
func closeCurrent(open []*html.Node, a atom.Atom) []*html.Node {
	if n := len(open); n > 0 && open[n-1].DataAtom == a {
		return open[:n-1]
	}
	return open
}

func isVoid(a atom.Atom) bool {
	switch a {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr, atom.Img,
		atom.Input, atom.Link, atom.Meta, atom.Param, atom.Source, atom.Track, atom.Wbr:
		return true
	}
	return false
}
