package view

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/couchcryptid/metarflow-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testReport = "KJFK 251651Z 27015G25KT 10SM FEW250 22/12 A3012 RMK AO2"

func TestLoadTemplates(t *testing.T) {
	require.NoError(t, LoadTemplates())
	assert.NotNil(t, pages)
}

func TestLoadTemplates_FailureEmpty(t *testing.T) {
	// Empty FS has no templates to parse.
	err := loadTemplatesFromFS(fstest.MapFS{}, "templates")
	assert.Error(t, err)
}

func TestLoadTemplates_FailureParse(t *testing.T) {
	badFS := fstest.MapFS{
		"templates/index.html":         {Data: []byte("{{ .")},
		"templates/partials/head.html": {Data: []byte(`{{define "head"}}{{end}}`)},
	}
	err := loadTemplatesFromFS(badFS, "templates")
	assert.Error(t, err)

	require.NoError(t, LoadTemplates())
}

func TestRender_NotLoaded(t *testing.T) {
	prev := pages
	pages = nil
	t.Cleanup(func() { pages = prev })

	var buf bytes.Buffer
	err := RenderIndex(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not loaded")
}

func TestRenderIndex(t *testing.T) {
	require.NoError(t, LoadTemplates())

	var buf bytes.Buffer
	require.NoError(t, RenderIndex(&buf))

	out := buf.String()
	assert.Contains(t, out, "<title>metarflow - METAR Weather Viewer</title>")
	assert.Contains(t, out, `action="/metar"`)
	assert.Contains(t, out, `href="/privacy"`)
}

func TestRenderPrivacy(t *testing.T) {
	require.NoError(t, LoadTemplates())

	var buf bytes.Buffer
	require.NoError(t, RenderPrivacy(&buf))
	assert.Contains(t, buf.String(), "Privacy Policy")
}

func TestRenderError_EscapesMessage(t *testing.T) {
	require.NoError(t, LoadTemplates())

	var buf bytes.Buffer
	require.NoError(t, RenderError(&buf, "Error fetching METAR: <script>boom</script>"))

	out := buf.String()
	assert.Contains(t, out, "Error fetching METAR: &lt;script&gt;boom&lt;/script&gt;")
	assert.NotContains(t, out, "<script>boom")
}

func TestRenderResults(t *testing.T) {
	require.NoError(t, LoadTemplates())

	data := NewResultsData(domain.Decode(testReport, "KJFK"))

	var buf bytes.Buffer
	require.NoError(t, RenderResults(&buf, data))

	out := buf.String()
	assert.Contains(t, out, "270 degrees (W) at 15 knots, gusting to 25 knots")
	assert.Contains(t, out, "Few at 25000 feet")
	assert.Contains(t, out, "30.12 inches of mercury")
	assert.Contains(t, out, "Automated station")
	assert.Contains(t, out, `<pre id="raw-metar-text">`+testReport+`</pre>`)
	assert.NotContains(t, out, "stat-value empty")
}

func TestRenderResults_Placeholders(t *testing.T) {
	require.NoError(t, LoadTemplates())

	data := NewResultsData(domain.Decode("", "KXYZ"))

	var buf bytes.Buffer
	require.NoError(t, RenderResults(&buf, data))

	out := buf.String()
	assert.Equal(t, 9, strings.Count(out, "stat-value empty"))
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, ">None<")
}

func TestFavicon(t *testing.T) {
	svg, err := Favicon()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(svg, []byte("<svg")))
}
