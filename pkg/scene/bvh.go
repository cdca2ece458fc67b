package scene

import (
	"sort"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// bvhNode represents a node in the Bounding Volume Hierarchy
type bvhNode struct {
	BoundingBox core.AABB
	Left        *bvhNode
	Right       *bvhNode
	Shapes      []Shape // Multiple shapes for leaf nodes (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection
type BVH struct {
	Root *bvhNode
}

// NewBVH constructs a BVH from a slice of shapes
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{Root: nil}
	}

	// Sorting reorders the slice, the caller's copy stays untouched
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return &BVH{Root: buildBVH(shapesCopy)}
}

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 8

// buildBVH recursively builds the BVH with a median split along the
// longest axis
func buildBVH(shapes []Shape) *bvhNode {
	boundingBox := shapes[0].BoundingBox()
	for _, shape := range shapes[1:] {
		boundingBox = boundingBox.Union(shape.BoundingBox())
	}

	if len(shapes) <= leafThreshold {
		return &bvhNode{BoundingBox: boundingBox, Shapes: shapes}
	}

	axis := boundingBox.LongestAxis()
	sortShapesByAxis(shapes, axis)

	mid := len(shapes) / 2
	return &bvhNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(shapes[:mid]),
		Right:       buildBVH(shapes[mid:]),
	}
}

// sortShapesByAxis sorts shapes by their bounding box center along the specified axis
func sortShapesByAxis(shapes []Shape, axis int) {
	component := func(v core.Vec3) float64 {
		switch axis {
		case 0:
			return v.X
		case 1:
			return v.Y
		default:
			return v.Z
		}
	}
	sort.SliceStable(shapes, func(i, j int) bool {
		return component(shapes[i].BoundingBox().Center()) < component(shapes[j].BoundingBox().Center())
	})
}

// Intersect finds the closest hit within [ray.MinT, ray.MaxT]
func (bvh *BVH) Intersect(ray core.Ray) (core.SurfaceInteraction, bool) {
	if bvh.Root == nil {
		return core.SurfaceInteraction{}, false
	}
	var closest core.SurfaceInteraction
	hit := bvh.intersectNode(bvh.Root, &ray, &closest)
	return closest, hit
}

// intersectNode shrinks ray.MaxT to every hit it finds
func (bvh *BVH) intersectNode(node *bvhNode, ray *core.Ray, closest *core.SurfaceInteraction) bool {
	if !node.BoundingBox.Hit(*ray, ray.MaxT) {
		return false
	}

	if node.Shapes != nil {
		hitAnything := false
		for _, shape := range node.Shapes {
			if si, ok := shape.Intersect(*ray); ok {
				hitAnything = true
				ray.MaxT = si.T
				*closest = si
			}
		}
		return hitAnything
	}

	hitLeft := bvh.intersectNode(node.Left, ray, closest)
	hitRight := bvh.intersectNode(node.Right, ray, closest)
	return hitLeft || hitRight
}

// Occluded reports whether any shape intersects the ray
func (bvh *BVH) Occluded(ray core.Ray) bool {
	return bvh.Root != nil && bvh.occludedNode(bvh.Root, ray)
}

func (bvh *BVH) occludedNode(node *bvhNode, ray core.Ray) bool {
	if !node.BoundingBox.Hit(ray, ray.MaxT) {
		return false
	}
	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if _, ok := shape.Intersect(ray); ok {
				return true
			}
		}
		return false
	}
	return bvh.occludedNode(node.Left, ray) || bvh.occludedNode(node.Right, ray)
}

// Bounds returns the box around every shape
func (bvh *BVH) Bounds() core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes  int
	leafNodes   int
	maxDepth    int
	totalShapes int
}

// getStats returns statistics about the BVH structure
func (bvh *BVH) getStats() bvhStats {
	stats := bvhStats{}
	if bvh.Root != nil {
		bvh.collectStats(bvh.Root, 0, &stats)
	}
	return stats
}

func (bvh *BVH) collectStats(node *bvhNode, depth int, stats *bvhStats) {
	stats.totalNodes++
	stats.maxDepth = max(stats.maxDepth, depth)

	if node.Shapes != nil {
		stats.leafNodes++
		stats.totalShapes += len(node.Shapes)
		return
	}
	bvh.collectStats(node.Left, depth+1, stats)
	bvh.collectStats(node.Right, depth+1, stats)
}
