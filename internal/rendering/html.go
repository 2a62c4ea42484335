package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"regexp"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// DefaultThemeColor is used when a document carries a color that is not a hex value
const DefaultThemeColor = "#2563eb"

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var (
	pageOnce sync.Once
	pageTmpl *template.Template
	pageErr  error
)

type pageData struct {
	Tree        Tree
	Theme       template.CSS
	Classic     bool
	GridColumns int
	Sidebar     Column
	Main        Column
	Single      Column
}

func loadPage() (*template.Template, error) {
	pageOnce.Do(func() {
		tmpl, err := template.New("page").ParseFS(templateFS, "templates/*.tmpl")
		if err != nil {
			pageErr = &TemplateError{Stage: "parse", Cause: err}
			return
		}
		pageTmpl = tmpl
	})
	return pageTmpl, pageErr
}

// RenderHTML writes the tree as a standalone A4 HTML page
func RenderHTML(w io.Writer, tree Tree) error {
	tmpl, err := loadPage()
	if err != nil {
		return err
	}

	data := pageData{
		Tree:        tree,
		Theme:       template.CSS(SafeThemeColor(tree.ThemeColor)),
		Classic:     tree.Template == types.TemplateClassic,
		GridColumns: ClassicGridColumns,
	}
	data.Sidebar, _ = tree.Column(ColumnSidebar)
	data.Main, _ = tree.Column(ColumnMain)
	data.Single, _ = tree.Column(ColumnSingle)

	if err := tmpl.ExecuteTemplate(w, "page", data); err != nil {
		return &TemplateError{Layout: string(tree.Template), Stage: "execute", Cause: err}
	}
	return nil
}

// HTML renders the tree into a string
func HTML(tree Tree) (string, error) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, tree); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SafeThemeColor returns color when it is a hex color, or DefaultThemeColor
func SafeThemeColor(color string) string {
	if hexColor.MatchString(color) {
		return color
	}
	return DefaultThemeColor
}
