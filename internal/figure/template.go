package figure

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-chartgen/pkg/colors"
)

// Template is a named set of presentation defaults: the discrete colorway,
// the continuous scale and the background/font colors applied to the layout.
type Template struct {
	Name            string
	Colorway        []string
	ContinuousScale []string
	PaperBGColor    string
	PlotBGColor     string
	FontColor       string
	GridColor       string
}

var (
	templatesMu sync.RWMutex
	templates   = map[string]Template{
		"plotly": {
			Name: "plotly", Colorway: colors.Plotly, ContinuousScale: colors.Plasma,
			PaperBGColor: "white", PlotBGColor: "#E5ECF6", FontColor: "#2a3f5f", GridColor: "white",
		},
		"plotly_white": {
			Name: "plotly_white", Colorway: colors.Plotly, ContinuousScale: colors.Plasma,
			PaperBGColor: "white", PlotBGColor: "white", FontColor: "#2a3f5f", GridColor: "#EBF0F8",
		},
		"plotly_dark": {
			Name: "plotly_dark", Colorway: colors.Plotly, ContinuousScale: colors.Plasma,
			PaperBGColor: "rgb(17,17,17)", PlotBGColor: "rgb(17,17,17)", FontColor: "#f2f5fa", GridColor: "#283442",
		},
		"ggplot2": {
			Name:            "ggplot2",
			Colorway:        []string{"#F8766D", "#A3A500", "#00BF7D", "#00B0F6", "#E76BF3"},
			ContinuousScale: []string{"rgb(20,44,66)", "rgb(90,179,244)"},
			PaperBGColor:    "white", PlotBGColor: "rgb(237,237,237)", FontColor: "rgb(51,51,51)", GridColor: "white",
		},
		"seaborn": {
			Name: "seaborn",
			Colorway: []string{
				"rgb(76,114,176)", "rgb(221,132,82)", "rgb(85,168,104)", "rgb(196,78,82)", "rgb(129,114,179)",
				"rgb(147,120,96)", "rgb(218,139,195)", "rgb(140,140,140)", "rgb(204,185,116)", "rgb(100,181,205)",
			},
			ContinuousScale: colors.Viridis,
			PaperBGColor:    "white", PlotBGColor: "rgb(234,234,242)", FontColor: "rgb(36,36,36)", GridColor: "white",
		},
		"simple_white": {
			Name: "simple_white", Colorway: colors.D3, ContinuousScale: colors.Viridis,
			PaperBGColor: "white", PlotBGColor: "white", FontColor: "rgb(36,36,36)", GridColor: "rgb(232,232,232)",
		},
		"none": {Name: "none"},
	}
)

// RegisterTemplate adds or replaces a named template.
func RegisterTemplate(tmpl Template) {
	name := strings.ToLower(strings.TrimSpace(tmpl.Name))
	if name == "" {
		return
	}
	tmpl.Name = name
	templatesMu.Lock()
	templates[name] = tmpl
	templatesMu.Unlock()
}

// LookupTemplate returns the named template.
func LookupTemplate(name string) (Template, bool) {
	templatesMu.RLock()
	defer templatesMu.RUnlock()
	tmpl, ok := templates[strings.ToLower(strings.TrimSpace(name))]
	return tmpl, ok
}

// TemplateNames lists the registered template names.
func TemplateNames() []string {
	templatesMu.RLock()
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	templatesMu.RUnlock()
	sort.Strings(names)
	return names
}
