// Package express provides one function per chart type. Each accepts a
// dataset frame and an Args value naming the columns mapped to visual
// channels, and forwards them to figure.MakeFigure together with the trace
// constructor, the trace patch, the grouped channels and the layout patch of
// that chart type.
//
//	fig, err := express.Scatter(frame, express.Args{X: "gdp", Y: "life_exp", Color: "continent"})
//
// Callers that dispatch by name use Lookup with a Kind.
package express
