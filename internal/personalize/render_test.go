package personalize

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickwarner/smartdocs/internal/content"
	"github.com/patrickwarner/smartdocs/internal/environment"
	"github.com/patrickwarner/smartdocs/internal/models"
)

func render(t *testing.T, p Policy, e models.Environment, src io.Reader) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, Render(&out, src, p, e))
	return out.String()
}

var sectionTag = regexp.MustCompile(`<div class="os-(mac|windows|linux)"( style="display: none;")?>`)

// visibility counts shown and hidden section tags per OS group.
func visibility(doc string) map[string][2]int {
	counts := map[string][2]int{}
	for _, m := range sectionTag.FindAllStringSubmatch(doc, -1) {
		c := counts[m[1]]
		if m[2] == "" {
			c[0]++
		} else {
			c[1]++
		}
		counts[m[1]] = c
	}
	return counts
}

func TestRender_DocumentationForWindows(t *testing.T) {
	e := env(environment.ClassifyOS("Mozilla/5.0 (Windows NT 10.0; Win64; x64)"))
	out := render(t, Indicator, e, content.Documentation())

	assert.Equal(t, map[string][2]int{
		"mac":     {0, 3},
		"windows": {3, 0},
		"linux":   {0, 3},
	}, visibility(out))
	assert.Contains(t, out, `<meta name="user-os" content="windows">`)
	assert.Contains(t, out, `<meta name="user-browser" content="firefox">`)
	assert.Contains(t, out, `<meta name="user-country" content="CA">`)
	assert.Contains(t, out, `<span class="os-badge active" data-os="windows">`)
	assert.Contains(t, out, `<span class="os-badge" data-os="mac">`)
	assert.Equal(t, 1, strings.Count(out, "os-badge active"))
}

func TestRender_UnknownHidesEverySection(t *testing.T) {
	out := render(t, Indicator, env(environment.OSUnknown), content.Documentation())

	assert.Equal(t, map[string][2]int{
		"mac":     {0, 3},
		"windows": {0, 3},
		"linux":   {0, 3},
	}, visibility(out))
	assert.NotContains(t, out, "os-badge active")
}

func TestRender_SilentExposesNothing(t *testing.T) {
	out := render(t, Silent, env(environment.OSLinux), content.Documentation())

	assert.Equal(t, map[string][2]int{
		"mac":     {0, 3},
		"windows": {0, 3},
		"linux":   {3, 0},
	}, visibility(out))
	assert.Contains(t, out, `<meta name="user-os" content="unknown">`)
	assert.NotContains(t, out, "os-badge active")
}

const demoDoc = `<html><head><meta name="user-os" content="unknown"></head><body>` +
	`<div class="os-indicator"><span class="os-mac">mac</span><span class="os-windows">win</span><span class="os-linux">linux</span></div>` +
	`<div class="os-mac">brew</div><div class="os-windows">winget</div><div class="os-linux">apt</div>` +
	`</body></html>`

func TestRender_DemoRemovesIndicatorsAndAliasesMobile(t *testing.T) {
	out := render(t, Demo, env(environment.OSIOS), strings.NewReader(demoDoc))

	assert.Equal(t, `<html><head><meta name="user-os" content="ios"></head><body>`+
		`<div class="os-indicator"><span class="os-mac">mac</span></div>`+
		`<div class="os-mac">brew</div>`+
		`<div class="os-windows" style="display: none;">winget</div>`+
		`<div class="os-linux" style="display: none;">apt</div>`+
		`</body></html>`, out)
}

func TestRender_DemoWithImpliedEndTags(t *testing.T) {
	list := `<ul class="os-indicator"><li class="os-mac">Mac<li class="os-windows">Win<li class="os-linux">Linux</ul><p>after</p>`
	out := render(t, Demo, env(environment.OSWindows), strings.NewReader(list))
	assert.Equal(t, `<ul class="os-indicator"><li class="os-windows">Win</ul><p>after</p>`, out)

	para := `<p class="os-indicator">Detected:<div class="os-windows">Windows section body</div>`
	out = render(t, Demo, env(environment.OSMac), strings.NewReader(para))
	assert.Equal(t, `<p class="os-indicator">Detected:<div class="os-windows" style="display: none;">Windows section body</div>`, out)
}

func TestRender_DemoUnknownRemovesAllIndicators(t *testing.T) {
	out := render(t, Demo, env(environment.OSUnknown), strings.NewReader(demoDoc))
	assert.Contains(t, out, `<div class="os-indicator"></div>`)
}

func TestRender_Idempotent(t *testing.T) {
	for _, p := range []Policy{Silent, Indicator, Demo} {
		for _, os := range environment.AllOS {
			e := env(os)
			once := render(t, p, e, content.Documentation())
			twice := render(t, p, e, strings.NewReader(once))
			assert.Equal(t, once, twice, "%s/%s", p.Name, os)
			assert.Equal(t, visibility(once), visibility(render(t, p, e, content.Documentation())))
		}
	}
}

func TestRender_DoesNotMutateBaseDocument(t *testing.T) {
	before, err := io.ReadAll(content.Documentation())
	require.NoError(t, err)

	_ = render(t, Indicator, env(environment.OSMac), content.Documentation())

	after, err := io.ReadAll(content.Documentation())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
