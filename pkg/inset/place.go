package inset

import "github.com/quiltviz/quilt/pkg/geom"

// Place resolves an inset box against a host plot's geometry.
//
// host is the host plot's absolute rectangle and panel its absolute
// data rectangle; ref selects which of the two the box is measured
// against. The returned rectangle is in the same absolute coordinate
// space as the inputs.
func Place(host, panel geom.Rect, box Box, ref Reference, dpi float64) (geom.Rect, error) {
	region := host
	if ref == RefPanel {
		region = panel
	}
	return box.Resolve(region, dpi)
}
