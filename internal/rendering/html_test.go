package rendering

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderDoc(t *testing.T, tree Tree) *goquery.Document {
	t.Helper()
	html, err := HTML(tree)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestRenderHTML_Modern(t *testing.T) {
	page := renderDoc(t, Render(testDocument(), types.TemplateModern))

	assert.Equal(t, 1, page.Find(`[data-template="modern"]`).Length())
	assert.Equal(t, "Ada Lovelace", page.Find("aside.cv-sidebar h1.cv-name").Text())
	assert.Equal(t, 5, page.Find("aside .cv-contact").Length())
	assert.Equal(t, "linkedin.com/in/ada", page.Find(`.cv-contact[data-kind="linkedin"]`).Text())

	assert.Equal(t, 2, page.Find("aside .cv-section").Length())
	assert.Equal(t, 3, page.Find("aside .cv-tag").Length())

	assert.Equal(t, ModernSummaryLabel, page.Find("main .cv-summary h3").Text())
	assert.Equal(t, 2, page.Find("main .cv-summary p").Length())

	entry := page.Find(`main .cv-entry[data-item-id="1"]`)
	assert.Equal(t, "Analytical Engine", entry.Find("h4").Text())
	assert.Equal(t, "1842 - 1843", entry.Find(".cv-date").Text())
	assert.Equal(t, "Collaborator", entry.Find(".cv-subtitle").Text())
	assert.Equal(t, 2, entry.Find(".cv-paragraph").Length())

	empty := page.Find(`main .cv-section[data-section-id="sec_edu"]`)
	assert.Equal(t, "Education", empty.Find("h3").Text())
	assert.Equal(t, 0, empty.Find(".cv-entry").Length())
}

func TestRenderHTML_Classic(t *testing.T) {
	page := renderDoc(t, Render(testDocument(), types.TemplateClassic))

	assert.Equal(t, 1, page.Find(`[data-template="classic"]`).Length())
	assert.Equal(t, 0, page.Find("aside").Length())
	assert.Equal(t, "LinkedIn", page.Find(`header .cv-contact[data-kind="linkedin"]`).Text())
	assert.Equal(t, ClassicSummaryLabel, page.Find(".cv-summary h3").Text())

	assert.Equal(t, 2, page.Find(`.cv-section[data-section-id="sec_skills"] ul.cv-grid li`).Length())
	assert.Equal(t, 1, page.Find(`.cv-section[data-section-id="sec_lang"] .cv-tag`).Length())

	var order []string
	page.Find(".cv-section").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("data-section-id")
		order = append(order, id)
	})
	assert.Equal(t, []string{"sec_exp", "sec_skills", "sec_edu", "sec_lang"}, order)
}

func TestRenderHTML_EscapesContent(t *testing.T) {
	doc := testDocument()
	doc.PersonalInfo.FullName = `<script>alert("x")</script>`

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, Render(doc, types.TemplateModern)))

	assert.NotContains(t, buf.String(), `<script>alert`)
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestRenderHTML_ThemeColorAndPageSize(t *testing.T) {
	doc := testDocument()
	doc.ThemeColor = "#059669"

	html, err := HTML(Render(doc, types.TemplateModern))
	require.NoError(t, err)
	assert.Contains(t, html, "--theme: #059669")
	assert.Contains(t, html, "size: A4")

	doc.ThemeColor = "red; background: url(evil)"
	html, err = HTML(Render(doc, types.TemplateModern))
	require.NoError(t, err)
	assert.Contains(t, html, "--theme: "+DefaultThemeColor)
	assert.NotContains(t, html, "evil")
}

func TestSafeThemeColor(t *testing.T) {
	assert.Equal(t, "#fff", SafeThemeColor("#fff"))
	assert.Equal(t, "#2563EB", SafeThemeColor("#2563EB"))
	assert.Equal(t, DefaultThemeColor, SafeThemeColor(""))
	assert.Equal(t, DefaultThemeColor, SafeThemeColor("blue"))
}

func TestTemplateError(t *testing.T) {
	cause := assert.AnError
	err := &TemplateError{Layout: "classic", Stage: "execute", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "page template execute failed for classic layout: "+cause.Error(), err.Error())

	parseErr := &TemplateError{Stage: "parse", Cause: cause}
	assert.Equal(t, "page template parse failed: "+cause.Error(), parseErr.Error())
}
