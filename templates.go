package chartgen

import (
	"io/fs"

	"github.com/goliatone/go-chartgen/pkg/renderers/page"
)

// EmbeddedTemplates exposes the built-in HTML page templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return page.TemplatesFS()
}
