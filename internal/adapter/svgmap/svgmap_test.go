package svgmap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSVG = `<?xml version="1.0" encoding="UTF-8"?>
<!-- plan -->
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 100 100">
  <g id="parcels">
    <path data-place="12a" d="M0 0h10v10z" fill="#ccc"/>
    <path data-place="12А" d="M10 0h10v10z" style="stroke:#000;fill:#eee"></path>
    <path data-place="99" d="M20 0h10v10z"/>
    <path d="M30 0h10v10z"/>
    <rect data-place="7" width="5" height="5"/>
  </g>
  <text x="1" y="2">Участок &amp; дорога</text>
</svg>
`

func TestPlaces(t *testing.T) {
	places, err := Places([]byte(testSVG))
	require.NoError(t, err)

	want := []string{"12a", "12А", "99"}
	if diff := cmp.Diff(want, places); diff != "" {
		t.Errorf("Places mismatch (-want +got):\n%s", diff)
	}
}

func TestPlaces_NotSVG(t *testing.T) {
	_, err := Places([]byte(`<html><body/></html>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want <svg>")
}

func TestPlaces_Empty(t *testing.T) {
	_, err := Places(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no <svg> element")
}

func TestColorize(t *testing.T) {
	fills := map[string]string{
		"12a": "#57ED1D",
		"12А": "#57ED1D",
	}
	out, err := Colorize([]byte(testSVG), func(place string) (string, bool) {
		c, ok := fills[place]
		return c, ok
	})
	require.NoError(t, err)
	got := string(out)

	assert.Contains(t, got, `<path data-place="12a" d="M0 0h10v10z" fill="#ccc" style="fill:#57ED1D"/>`)
	assert.Contains(t, got, `<path data-place="12А" d="M10 0h10v10z" style="stroke:#000;fill:#57ED1D"></path>`)
	// Unmatched shapes and everything else are copied verbatim.
	assert.Contains(t, got, `<path data-place="99" d="M20 0h10v10z"/>`)
	assert.Contains(t, got, `<rect data-place="7" width="5" height="5"/>`)
	assert.Contains(t, got, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, got, `<!-- plan -->`)
	assert.Contains(t, got, `xmlns:xlink="http://www.w3.org/1999/xlink"`)
	assert.Contains(t, got, `Участок &amp; дорога`)

	places, err := Places(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"12a", "12А", "99"}, places)
}

func TestColorize_NoMatchesIsIdentity(t *testing.T) {
	out, err := Colorize([]byte(testSVG), func(string) (string, bool) { return "", false })
	require.NoError(t, err)
	assert.Equal(t, testSVG, string(out))
}

func TestColorize_EscapesAttributeValues(t *testing.T) {
	src := `<svg><path data-place="1" title="a &amp; &quot;b&quot;"/></svg>`
	out, err := Colorize([]byte(src), func(string) (string, bool) { return "#BEC2CF", true })
	require.NoError(t, err)
	assert.Equal(t, `<svg><path data-place="1" title="a &amp; &#34;b&#34;" style="fill:#BEC2CF"/></svg>`, string(out))
}

func TestMergeFill(t *testing.T) {
	tests := []struct {
		style string
		want  string
	}{
		{"", "fill:#000000"},
		{"fill:red", "fill:#000000"},
		{"stroke:#000; FILL : red ;opacity:.5;", "stroke:#000;opacity:.5;fill:#000000"},
		{"fill-opacity:0.3", "fill-opacity:0.3;fill:#000000"},
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeFill(tt.style, "#000000"))
		})
	}
}
