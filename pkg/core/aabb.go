package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Intersect computes the entry and exit distances of a ray through the box
// using the slab method. An empty intersection is signaled by tNear >= tFar;
// no error is ever raised. tNear may be negative when the ray origin is
// inside the box, in which case the caller should clamp it to zero.
//
// Axes with an exactly zero direction component are handled explicitly:
// the axis is unconstrained if the origin lies inside its slab, otherwise
// the ray can never enter the box. This keeps 0*Inf NaNs out of the
// min/max reduction.
func (aabb AABB) Intersect(ray Ray) (tNear, tFar float64) {
	tNear = math.Inf(-1)
	tFar = math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		var minVal, maxVal, origin, direction float64

		switch axis {
		case 0: // X axis
			minVal = aabb.Min.X
			maxVal = aabb.Max.X
			origin = ray.Origin.X
			direction = ray.Direction.X
		case 1: // Y axis
			minVal = aabb.Min.Y
			maxVal = aabb.Max.Y
			origin = ray.Origin.Y
			direction = ray.Direction.Y
		case 2: // Z axis
			minVal = aabb.Min.Z
			maxVal = aabb.Max.Z
			origin = ray.Origin.Z
			direction = ray.Direction.Z
		}

		if direction == 0 {
			// Ray is parallel to this slab
			if origin < minVal || origin > maxVal {
				return math.Inf(1), math.Inf(-1)
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (minVal - origin) * invDirection
		t2 := (maxVal - origin) * invDirection

		// Ensure t1 <= t2 (swap if needed)
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		// Update overall intersection interval
		tNear = math.Max(tNear, t1)
		tFar = math.Min(tFar, t2)

		if tNear >= tFar {
			return tNear, tFar
		}
	}

	return tNear, tFar
}

// Hit tests if a ray intersects the box anywhere in front of its origin
func (aabb AABB) Hit(ray Ray) bool {
	tNear, tFar := aabb.Intersect(ray)
	return math.Max(tNear, 0) < tFar
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// Contains reports whether the point lies inside or on the box
func (aabb AABB) Contains(p Vec3) bool {
	return p.X >= aabb.Min.X && p.X <= aabb.Max.X &&
		p.Y >= aabb.Min.Y && p.Y <= aabb.Max.Y &&
		p.Z >= aabb.Min.Z && p.Z <= aabb.Max.Z
}

// IsValid returns true if the box has positive extent on every axis
func (aabb AABB) IsValid() bool {
	return aabb.Min.X < aabb.Max.X &&
		aabb.Min.Y < aabb.Max.Y &&
		aabb.Min.Z < aabb.Max.Z
}
