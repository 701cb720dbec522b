package export

import (
	"fmt"
	"strings"
	"text/template"
	"time"
)

// DefaultFilenameTemplate is used when no template is configured.
const DefaultFilenameTemplate = "BomTree_{{.Model}}_{{.Date}}"

// FilenameContext is the data available to filename templates.
type FilenameContext struct {
	Model  string
	Date   string
	Format string
	Extra  map[string]string
}

// FilenameGenerator renders export filenames from a user-configurable
// template. Template failures and empty or unsafe results are replaced by a
// deterministic fallback, never surfaced as errors.
type FilenameGenerator struct {
	// Template overrides DefaultFilenameTemplate when non-empty.
	Template string

	// Now is a test seam; nil means time.Now.
	Now func() time.Time
}

// Generate produces the filename for one export, extension included.
func (g FilenameGenerator) Generate(model, format string, extra map[string]string) string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	fctx := FilenameContext{
		Model:  model,
		Date:   now().Format("2006-01-02"),
		Format: format,
		Extra:  extra,
	}

	text := g.Template
	if text == "" {
		text = DefaultFilenameTemplate
	}

	root := ""
	if tmpl, err := template.New("filename").Parse(text); err == nil {
		var sb strings.Builder
		if err := tmpl.Execute(&sb, fctx); err == nil {
			root = sb.String()
		}
	}
	root = sanitizeComponent(root)

	if root == "" {
		root = sanitizeComponent(fmt.Sprintf("BomTree_%s_%s", model, fctx.Date))
	}

	extension := "." + format
	if strings.HasSuffix(strings.ToLower(root), strings.ToLower(extension)) {
		return root
	}
	return root + extension
}

// sanitizeComponent returns a filesystem-safe filename component.
func sanitizeComponent(value string) string {
	filename := strings.TrimSpace(value)

	for _, ch := range []string{"\\", "/", "\n", "\r", "\t", "\x00"} {
		filename = strings.ReplaceAll(filename, ch, "_")
	}

	return strings.TrimRight(filename, ".")
}
