// Package colors holds the named discrete color sequences and continuous
// color scales used by the figure builder, plus helpers to parse, reverse and
// sample them. Sampling interpolates in CIE-Lab through go-colorful so
// renderers that need concrete per-point colors stay perceptually even.
package colors
