package figure

// Constructor is the trace type produced by MakeFigure.
type Constructor string

const (
	Scatter            Constructor = "scatter"
	Bar                Constructor = "bar"
	Histogram          Constructor = "histogram"
	Violin             Constructor = "violin"
	Box                Constructor = "box"
	Histogram2D        Constructor = "histogram2d"
	Histogram2DContour Constructor = "histogram2dcontour"
	ScatterPolar       Constructor = "scatterpolar"
	BarPolar           Constructor = "barpolar"
	Scatter3D          Constructor = "scatter3d"
	ScatterTernary     Constructor = "scatterternary"
	Splom              Constructor = "splom"
	Parcoords          Constructor = "parcoords"
	Parcats            Constructor = "parcats"
	ScatterGeo         Constructor = "scattergeo"
	Choropleth         Constructor = "choropleth"
	ScatterMapbox      Constructor = "scattermapbox"
)

type family int

const (
	familyCartesian family = iota
	familyPolar
	familyScene
	familyTernary
	familyDimensions
	familyGeo
	familyMapbox
)

// colorSupport describes how a constructor can map a color column.
type colorSupport int

const (
	colorDiscreteOnly colorSupport = iota
	colorEither
	colorContinuousOnly
	colorNone
)

// constructorInfo describes a trace type. markers reports whether colors land
// on marker.color rather than line.color; oriented types pick a horizontal
// or vertical orientation.
type constructorInfo struct {
	family    family
	color     colorSupport
	markers   bool
	oriented  bool
	marginals bool
	errorBars bool
}

var constructors = map[Constructor]constructorInfo{
	Scatter:            {family: familyCartesian, color: colorEither, markers: true, marginals: true, errorBars: true},
	Bar:                {family: familyCartesian, color: colorEither, markers: true, oriented: true, errorBars: true},
	Histogram:          {family: familyCartesian, color: colorDiscreteOnly, markers: true, oriented: true, marginals: true},
	Violin:             {family: familyCartesian, color: colorDiscreteOnly, markers: true, oriented: true},
	Box:                {family: familyCartesian, color: colorDiscreteOnly, markers: true, oriented: true},
	Histogram2D:        {family: familyCartesian, color: colorNone, marginals: true},
	Histogram2DContour: {family: familyCartesian, color: colorDiscreteOnly, marginals: true},
	ScatterPolar:       {family: familyPolar, color: colorEither, markers: true},
	BarPolar:           {family: familyPolar, color: colorEither, markers: true},
	Scatter3D:          {family: familyScene, color: colorEither, markers: true, errorBars: true},
	ScatterTernary:     {family: familyTernary, color: colorEither, markers: true},
	Splom:              {family: familyDimensions, color: colorEither, markers: true},
	Parcoords:          {family: familyDimensions, color: colorContinuousOnly},
	Parcats:            {family: familyDimensions, color: colorContinuousOnly},
	ScatterGeo:         {family: familyGeo, color: colorEither, markers: true},
	Choropleth:         {family: familyGeo, color: colorContinuousOnly},
	ScatterMapbox:      {family: familyMapbox, color: colorEither, markers: true},
}

// Constructors lists every supported trace type.
func Constructors() []Constructor {
	return []Constructor{
		Scatter, Bar, Histogram, Violin, Box, Histogram2D, Histogram2DContour,
		ScatterPolar, BarPolar, Scatter3D, ScatterTernary, Splom, Parcoords,
		Parcats, ScatterGeo, Choropleth, ScatterMapbox,
	}
}

// Valid reports whether the constructor is known.
func (c Constructor) Valid() bool {
	_, ok := constructors[c]
	return ok
}
