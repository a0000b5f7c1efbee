package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BoundingBox is the axis-aligned min/max box enclosing the currently
// displayed content. Min must be <= Max component-wise; a degenerate box
// (a single point) is valid and occurs for empty or singleton scenes.
// Interactors read it to scale drag sensitivity and clipping planes.
type BoundingBox struct {
	// Min is the corner with the smallest coordinates.
	Min mgl32.Vec3

	// Max is the corner with the largest coordinates.
	Max mgl32.Vec3
}

// NewBoundingBox creates a BoundingBox from two corners, swapping components
// as needed so that Min <= Max holds on every axis.
//
// Parameters:
//   - a: one corner of the box
//   - b: the opposite corner of the box
//
// Returns:
//   - BoundingBox: the normalized box
func NewBoundingBox(a, b mgl32.Vec3) BoundingBox {
	var bb BoundingBox
	for i := 0; i < 3; i++ {
		if a[i] <= b[i] {
			bb.Min[i] = a[i]
			bb.Max[i] = b[i]
		} else {
			bb.Min[i] = b[i]
			bb.Max[i] = a[i]
		}
	}
	return bb
}

// Center returns the midpoint of the box.
//
// Returns:
//   - mgl32.Vec3: the box center
func (b BoundingBox) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Extent returns the per-axis size of the box (Max - Min).
//
// Returns:
//   - mgl32.Vec3: the box extents
func (b BoundingBox) Extent() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// ExtentNorm returns the length of the box diagonal. This is the "model size"
// used to scale pan, dolly, and fly movement to the displayed content.
//
// Returns:
//   - float32: the diagonal length (0 for a degenerate box)
func (b BoundingBox) ExtentNorm() float32 {
	return b.Extent().Len()
}

// MaxExtent returns the largest single-axis size of the box.
//
// Returns:
//   - float32: the maximum of the three extents
func (b BoundingBox) MaxExtent() float32 {
	e := b.Extent()
	m := e[0]
	if e[1] > m {
		m = e[1]
	}
	if e[2] > m {
		m = e[2]
	}
	return m
}

// Union returns the smallest box containing both b and other.
//
// Parameters:
//   - other: the box to merge with
//
// Returns:
//   - BoundingBox: the merged box
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	var out BoundingBox
	for i := 0; i < 3; i++ {
		out.Min[i] = min(b.Min[i], other.Min[i])
		out.Max[i] = max(b.Max[i], other.Max[i])
	}
	return out
}

// Transformed returns the axis-aligned box enclosing this box after applying
// the given rigid transform to all eight corners.
//
// Parameters:
//   - m: the transform to apply
//
// Returns:
//   - BoundingBox: the enclosing box of the transformed corners
func (b BoundingBox) Transformed(m mgl32.Mat4) BoundingBox {
	corners := [8]mgl32.Vec3{
		{b.Min[0], b.Min[1], b.Min[2]},
		{b.Max[0], b.Min[1], b.Min[2]},
		{b.Min[0], b.Max[1], b.Min[2]},
		{b.Max[0], b.Max[1], b.Min[2]},
		{b.Min[0], b.Min[1], b.Max[2]},
		{b.Max[0], b.Min[1], b.Max[2]},
		{b.Min[0], b.Max[1], b.Max[2]},
		{b.Max[0], b.Max[1], b.Max[2]},
	}

	first := mgl32.TransformCoordinate(corners[0], m)
	out := BoundingBox{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := mgl32.TransformCoordinate(c, m)
		for i := 0; i < 3; i++ {
			out.Min[i] = min(out.Min[i], p[i])
			out.Max[i] = max(out.Max[i], p[i])
		}
	}
	return out
}
