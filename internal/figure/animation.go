package figure

// animationControls adds the frame slider and the play/pause buttons.
func (a *assembly) animationControls(l *Layout, frames []Frame) {
	if len(frames) == 0 {
		return
	}
	steps := make([]map[string]any, len(frames))
	for i, frame := range frames {
		steps[i] = map[string]any{
			"args":   []any{[]string{frame.Name}, animateOptions(0)},
			"label":  frame.Name,
			"method": "animate",
		}
	}
	l.Sliders = []map[string]any{{
		"active":       0,
		"currentvalue": map[string]any{"prefix": a.args.Label(a.args.AnimationFrame) + "="},
		"len":          0.9,
		"pad":          map[string]any{"b": 10, "t": 60},
		"steps":        steps,
		"x":            0.1,
		"xanchor":      "left",
		"y":            0,
		"yanchor":      "top",
	}}
	l.UpdateMenus = []map[string]any{{
		"buttons": []map[string]any{
			{"args": []any{nil, animateOptions(500)}, "label": "&#9654;", "method": "animate"},
			{"args": []any{[]any{nil}, animateOptions(0)}, "label": "&#9724;", "method": "animate"},
		},
		"direction":  "left",
		"pad":        map[string]any{"r": 10, "t": 70},
		"showactive": false,
		"type":       "buttons",
		"x":          0.1,
		"xanchor":    "right",
		"y":          0,
		"yanchor":    "top",
	}}
}

func animateOptions(duration int) map[string]any {
	return map[string]any{
		"frame":       map[string]any{"duration": duration, "redraw": true},
		"mode":        "immediate",
		"fromcurrent": true,
		"transition":  map[string]any{"duration": duration, "easing": "linear"},
	}
}
