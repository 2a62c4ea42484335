package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testDocument() types.Document {
	return types.Document{
		PersonalInfo: types.PersonalInfo{
			FullName: "Ada Lovelace",
			Title:    "Analyst",
			Email:    "ada@example.com",
			Location: "London",
			Summary:  "First programmer.",
			LinkedIn: "https://linkedin.com/in/ada",
		},
		Sections: []types.Section{
			{ID: "sec_exp", Type: types.SectionExperience, Title: "Experience", Items: []types.Item{
				{ID: "1", Title: "Analytical Engine", Subtitle: "Collaborator", Date: "1842", Description: "Notes A-G\nBernoulli numbers"},
			}},
			{ID: "sec_skills", Type: types.SectionSkills, Title: "Skills", Items: []types.Item{
				{ID: "2", Title: "Mathematics"}, {ID: "3", Title: "Poetry"}, {ID: "4", Title: "Çeviri"},
			}},
		},
		ThemeColor: "#059669",
		Template:   types.TemplateModern,
	}
}

func uncompressed() *PDFPrinter {
	return &PDFPrinter{logger: zap.NewNop(), compress: false}
}

func TestPDFPrinter_Modern(t *testing.T) {
	out, err := uncompressed().Print(context.Background(), rendering.Render(testDocument(), types.TemplateModern))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "LOVELACE")
	assert.Contains(t, string(out), "Analytical Engine")
	assert.Contains(t, string(out), "Bernoulli numbers")
	assert.Contains(t, string(out), "linkedin.com/in/ada")
	assert.Contains(t, string(out), "ABOUT ME")
}

func TestPDFPrinter_Classic(t *testing.T) {
	out, err := uncompressed().Print(context.Background(), rendering.Render(testDocument(), types.TemplateClassic))
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "%PDF-"))
	assert.Contains(t, s, "ADA LOVELACE")
	assert.Contains(t, s, "LinkedIn")
	assert.Contains(t, s, "SUMMARY")
	assert.Contains(t, s, "Mathematics")
}

func TestPDFPrinter_PaginatesLongDocuments(t *testing.T) {
	doc := testDocument()
	items := make([]types.Item, 0, 60)
	for i := 0; i < 60; i++ {
		items = append(items, types.Item{
			ID:          fmt.Sprintf("job-%d", i),
			Title:       fmt.Sprintf("Position %d", i),
			Subtitle:    "Company",
			Date:        "2020 - 2024",
			Description: "Built things\nShipped things\nMaintained things",
		})
	}
	doc.Sections[0].Items = items

	for _, tmpl := range []types.Template{types.TemplateModern, types.TemplateClassic} {
		p := uncompressed()
		pdf := p.layout(rendering.Render(doc, tmpl))
		require.NoError(t, pdf.Error())
		assert.Greater(t, pdf.PageCount(), 1, "template %s", tmpl)
	}
}

func TestPDFPrinter_LongSidebarReusesMainPages(t *testing.T) {
	doc := testDocument()
	skills := make([]types.Item, 0, 200)
	for i := 0; i < 200; i++ {
		skills = append(skills, types.Item{ID: fmt.Sprintf("s%d", i), Title: fmt.Sprintf("Skill number %d", i)})
	}
	doc.Sections[1].Items = skills

	pdf := uncompressed().layout(rendering.Render(doc, types.TemplateModern))
	require.NoError(t, pdf.Error())
	assert.GreaterOrEqual(t, pdf.PageCount(), 2)
}

func TestPDFPrinter_EmptyDocument(t *testing.T) {
	out, err := NewPDFPrinter(nil).Print(context.Background(), rendering.Render(types.Document{}, types.TemplateModern))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestPDFPrinter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPDFPrinter(nil).Print(ctx, rendering.Render(testDocument(), types.TemplateModern))
	var exportErr *ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, EnginePDF, exportErr.Engine)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseHexColor(t *testing.T) {
	assert.Equal(t, rgb{5, 150, 105}, parseHexColor("#059669"))
	assert.Equal(t, rgb{255, 255, 255}, parseHexColor("#fff"))
	assert.Equal(t, rgb{37, 99, 235}, parseHexColor("nope"))
}

func TestNew(t *testing.T) {
	p, err := New(EnginePDF, 0, nil)
	require.NoError(t, err)
	assert.IsType(t, &PDFPrinter{}, p)

	p, err = New(EngineBrowser, 5*time.Second, nil)
	require.NoError(t, err)
	require.IsType(t, &BrowserPrinter{}, p)
	assert.Equal(t, 5*time.Second, p.(*BrowserPrinter).timeout)

	_, err = New("latex", 0, nil)
	var exportErr *ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Contains(t, err.Error(), "unknown export engine")
}
