package page

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// DefaultScriptURL is the plotting library bundle referenced when no asset
// override is configured.
const DefaultScriptURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

// ThemeAssetScript is the theme asset key consulted for the library bundle.
const ThemeAssetScript = "plotly.script"

// TemplatesFS exposes the embedded page templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
