package content

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentationMarkers(t *testing.T) {
	doc, err := io.ReadAll(Documentation())
	require.NoError(t, err)

	for _, marker := range []string{
		`<meta name="user-os" content="unknown">`,
		`<meta name="user-browser" content="unknown">`,
		`<meta name="user-country" content="unknown">`,
		`class="os-badge" data-os="mac"`,
		`<div class="os-mac">`,
		`<div class="os-windows">`,
		`<div class="os-linux">`,
	} {
		assert.Contains(t, string(doc), marker)
	}
}

func TestSilentDocumentationHasNoIndicators(t *testing.T) {
	doc, err := io.ReadAll(SilentDocumentation())
	require.NoError(t, err)

	assert.Contains(t, string(doc), `<div class="os-windows">`)
	assert.NotContains(t, string(doc), "user-os")
	assert.NotContains(t, string(doc), "os-badge")
}

func TestDemoFallbackIsACopy(t *testing.T) {
	a := DemoFallback()
	assert.Contains(t, string(a), "/examples/cloudflare-docs-demo.html")
	assert.Contains(t, string(a), "go run ./cmd/server")

	a[0] = 'X'
	assert.Equal(t, byte('<'), DemoFallback()[0])
}
