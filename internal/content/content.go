// Package content holds the base documents served by the documentation
// handlers. The documents are constant for the life of the process; handlers
// only ever transform copies streamed from them.
package content

import (
	"bytes"
	_ "embed"
	"io"
)

var (
	//go:embed documentation.html
	documentation []byte

	//go:embed silent.html
	silentDocumentation []byte

	//go:embed demo_fallback.html
	demoFallback []byte
)

// Documentation is the primary page. It carries user-* meta tags, .os-badge
// badges and .os-mac/.os-windows/.os-linux sections.
func Documentation() io.Reader { return bytes.NewReader(documentation) }

// SilentDocumentation is the primary page without detection indicators.
func SilentDocumentation() io.Reader { return bytes.NewReader(silentDocumentation) }

// DemoFallback returns a copy of the page served when the remote demo cannot
// be fetched.
func DemoFallback() []byte { return bytes.Clone(demoFallback) }
