package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"minicrm/internal/domain"
	"minicrm/internal/policy"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin/render"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Renderer holds one template set per page, each combined with the layout.
// It implements gin's render.HTMLRender.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		t = r.pages["error"]
	}
	return render.HTML{Template: t, Name: "layout", Data: data}
}

var funcs = template.FuncMap{
	"color":      policy.ColorFor,
	"canConvert": policy.CanConvert,
	"money":      FormatMoney,
	"stages":     func() []domain.Stage { return domain.Stages },
	"roles":      func() []domain.UserRole { return domain.UserRoles },
}

// FormatMoney renders v with thousands separators, keeping its decimals.
func FormatMoney(v decimal.Decimal) string {
	if v.IsInteger() {
		return humanize.BigComma(v.BigInt())
	}
	return humanize.BigCommaf(v.BigFloat())
}
