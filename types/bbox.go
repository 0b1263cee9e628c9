package types

import "math"

// BBox is an axis aligned bounding box. The zero value is not a valid box;
// use EmptyBBox to get a box that can be grown with Extend.
type BBox [2]Vec3

// Return an inverted box that any point will expand.
func EmptyBBox() BBox {
	inf := float32(math.Inf(1))
	return BBox{
		Vec3{inf, inf, inf},
		Vec3{-inf, -inf, -inf},
	}
}

// Grow the box so that it contains p.
func (b BBox) Extend(p Vec3) BBox {
	return BBox{MinVec3(b[0], p), MaxVec3(b[1], p)}
}

// True if no point has been added to the box.
func (b BBox) IsEmpty() bool {
	return b[0][0] > b[1][0]
}

// Get the box center.
func (b BBox) Center() Vec3 {
	return b[0].Add(b[1]).Mul(0.5)
}

// Get the box extents along each axis.
func (b BBox) Size() Vec3 {
	return b[1].Sub(b[0])
}
