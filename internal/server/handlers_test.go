package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-builder/internal/persistence"
	"github.com/jonathan/portfolio-builder/internal/types"
)

func decodeBody[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v))
	return v
}

func TestState_Defaults(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, "/state", nil)
	require.Equal(t, http.StatusOK, w.Code)

	state := decodeBody[StateResponse](t, w.Body.Bytes())
	assert.Equal(t, types.DefaultSections(), state.Sections)
	assert.Equal(t, types.DefaultCustomizations(), state.Customizations)
	assert.Equal(t, types.DefaultTemplate, state.Fields.Template)
	assert.Equal(t, types.ThemeLight, state.Theme)
}

func TestSetFields_RendersAndPersists(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodPut, "/fields", map[string]string{"name": "Ada", "skills": "Go, SQL"})
	require.Equal(t, http.StatusOK, w.Code)

	state := decodeBody[StateResponse](t, w.Body.Bytes())
	assert.Equal(t, "Ada", state.Fields.Name)

	markup := ts.do(http.MethodGet, "/preview/markup", nil).Body.String()
	assert.Contains(t, markup, "<h1>Ada</h1>")
	assert.Contains(t, markup, "<li>Go</li><li>SQL</li>")

	persisted, ok := persistence.NewBridge(ts.store).Load(context.Background())
	require.True(t, ok)
	assert.Equal(t, "Ada", persisted.Name)
}

func TestSetFields_UnknownField(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodPut, "/fields", map[string]string{"nickname": "x"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "nickname")
}

func TestSetFields_InvalidColor(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodPut, "/fields", map[string]string{"primaryColor": "blueish"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "primaryColor")
}

func TestSetFields_InvalidJSON(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodPut, "/fields", "{ not json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestSetTemplate(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodPut, "/template", types.TemplateRequest{Template: "modern"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "modern", decodeBody[StateResponse](t, w.Body.Bytes()).Fields.Template)

	w = ts.do(http.MethodPut, "/template", types.TemplateRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetCustomizations(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodPut, "/customizations", types.CustomizationsRequest{PrimaryColor: "#ff0000"})
	require.Equal(t, http.StatusOK, w.Code)

	cust := decodeBody[types.Customizations](t, w.Body.Bytes())
	assert.Equal(t, "#ff0000", cust.PrimaryColor)
	assert.Equal(t, "Arial", cust.FontFamily)

	assert.Contains(t, ts.live.HTML(), "--primary-color: #ff0000;")
}

func TestSetCustomizations_Empty(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodPut, "/customizations", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "nothing to update")
}

func TestSections_AddRemoveMove(t *testing.T) {
	ts := newTestServer(t, map[string]string{"name": "Ada"})

	w := ts.do(http.MethodPost, "/sections", types.AddSectionRequest{Name: "experience"})
	require.Equal(t, http.StatusCreated, w.Code)
	sections := decodeBody[SectionsResponse](t, w.Body.Bytes()).Sections
	assert.Equal(t, types.SectionID("experience"), sections[len(sections)-1])

	w = ts.do(http.MethodDelete, "/sections/skills", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, decodeBody[SectionsResponse](t, w.Body.Bytes()).Sections, types.SectionSkills)

	w = ts.do(http.MethodPost, "/sections/1/up", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		[]types.SectionID{"education", "about", "projects", "contact", "experience"},
		decodeBody[SectionsResponse](t, w.Body.Bytes()).Sections)

	w = ts.do(http.MethodPost, "/sections/0/down", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		[]types.SectionID{"about", "education", "projects", "contact", "experience"},
		decodeBody[SectionsResponse](t, w.Body.Bytes()).Sections)
}

func TestSections_MoveOutOfBoundsIsNoop(t *testing.T) {
	ts := newTestServer(t, nil)

	for _, path := range []string{"/sections/0/up", "/sections/4/down", "/sections/99/up", "/sections/-1/down"} {
		w := ts.do(http.MethodPost, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, types.DefaultSections(), decodeBody[SectionsResponse](t, w.Body.Bytes()).Sections, path)
	}
}

func TestSections_BadIndex(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodPost, "/sections/first/up", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "index")
}

func TestSections_AddEmptyName(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodPost, "/sections", types.AddSectionRequest{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, types.DefaultSections(), ts.session.Order())
}

func TestSections_MarkupFollowsOrder(t *testing.T) {
	ts := newTestServer(t, map[string]string{"name": "Ada", "skills": "Go"})

	ts.do(http.MethodPost, "/sections/1/up", nil)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(ts.do(http.MethodGet, "/preview/markup", nil).Body.String()))
	require.NoError(t, err)
	first, _ := doc.Find("div.section").First().Attr("class")
	assert.Equal(t, "section skills", first)
}

func TestTheme_ToggleAndSet(t *testing.T) {
	ts := newTestServer(t, nil)
	before := ts.session.Markup()

	w := ts.do(http.MethodPost, "/theme/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.ThemeDark, decodeBody[ThemeResponse](t, w.Body.Bytes()).Theme)
	assert.Equal(t, before, ts.session.Markup())

	value, ok, err := ts.store.Get(context.Background(), persistence.KeyTheme)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "dark", value)

	w = ts.do(http.MethodPut, "/theme", types.ThemeRequest{Theme: "light"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.ThemeLight, decodeBody[ThemeResponse](t, ts.do(http.MethodGet, "/theme", nil).Body.Bytes()).Theme)

	w = ts.do(http.MethodPut, "/theme", types.ThemeRequest{Theme: "sepia"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreviewPage(t *testing.T) {
	ts := newTestServer(t, map[string]string{"name": "Ada"})
	ts.do(http.MethodPost, "/theme/toggle", nil)

	w := ts.do(http.MethodGet, "/preview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "Ada's Portfolio", doc.Find("title").Text())
	assert.True(t, doc.Find("body").HasClass("dark"))

	preview := doc.Find("#portfolio-preview")
	require.Equal(t, 1, preview.Length())
	assert.True(t, preview.HasClass("portfolio"))
	assert.True(t, preview.HasClass("minimal"))
	assert.Equal(t, "Ada", preview.Find("h1").Text())
}

func TestExportHTML(t *testing.T) {
	ts := newTestServer(t, map[string]string{"name": "Ada", "bio": "<script>x()</script>"})

	w := ts.do(http.MethodGet, "/export/html", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="portfolio.html"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "<title>Ada's Portfolio</title>")
	assert.Contains(t, w.Body.String(), "<script>x()</script>")

	ts.sanitize = true
	w = ts.do(http.MethodGet, "/export/html", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<script>x()</script>")
}

func TestExportText(t *testing.T) {
	ts := newTestServer(t, map[string]string{"name": "Ada", "skills": "Go, SQL"})

	w := ts.do(http.MethodGet, "/export/text", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="portfolio.txt"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "Skills\n- Go\n- SQL")
}

func TestPreviewEvents_Disabled(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.live = nil

	w := ts.do(http.MethodGet, "/preview/events", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
