package stylefx

import "math"

// identityAffine is the identity matrix [a, b, c, d, tx, ty].
var identityAffine = [6]float64{1, 0, 0, 1, 0, 0}

// localMatrix builds a node's local matrix in the order
//
//	Translate(-Pivot) -> Scale -> Skew -> Rotate -> Translate(X, Y)
//
// which matches a CSS transform applied around a transform-origin.
func localMatrix(n *Node) [6]float64 {
	sx, sy := n.ScaleX, n.ScaleY
	sin, cos := math.Sincos(n.Rotation)

	var kx, ky float64
	if n.SkewX != 0 {
		kx = math.Tan(n.SkewX)
	}
	if n.SkewY != 0 {
		ky = math.Tan(n.SkewY)
	}

	// scale then skew
	a, b := sx, ky*sx
	c, d := kx*sy, sy
	tx := -n.PivotX*sx - kx*n.PivotY*sy
	ty := -ky*n.PivotX*sx - n.PivotY*sy

	return [6]float64{
		cos*a - sin*b,
		sin*a + cos*b,
		cos*c - sin*d,
		sin*c + cos*d,
		cos*tx - sin*ty + n.X,
		sin*tx + cos*ty + n.Y,
	}
}

// mulAffine returns p * c.
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func mulAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invAffine inverts m, falling back to identity when m is singular.
func invAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if math.Abs(det) < 1e-12 {
		return identityAffine
	}
	inv := 1.0 / det
	a, b := m[3]*inv, -m[1]*inv
	c, d := -m[2]*inv, m[0]*inv
	return [6]float64{a, b, c, d, -(a*m[4] + c*m[5]), -(b*m[4] + d*m[5])}
}

func applyAffine(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// axisAligned reports whether m maps rectangles to upright rectangles
// without mirroring.
func axisAligned(m [6]float64) bool {
	return m[1] == 0 && m[2] == 0 && m[0] >= 0 && m[3] >= 0
}

// refreshWorld recomputes world matrices and alpha for dirty nodes and their
// subtrees. force is set when an ancestor was recomputed.
func refreshWorld(n *Node, parent [6]float64, parentAlpha float64, force bool) {
	recompute := n.transformDirty || force
	if recompute {
		n.worldTransform = mulAffine(parent, localMatrix(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}
	for _, child := range n.children {
		refreshWorld(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// SetPosition sets the node's local X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X, n.Y = x, y
	n.transformDirty = true
}

// SetSize sets Width and Height.
func (n *Node) SetSize(w, h float64) {
	n.Width, n.Height = w, h
	n.transformDirty = true
}

// SetScale sets ScaleX and ScaleY and marks the node dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX, n.ScaleY = sx, sy
	n.transformDirty = true
}

// SetRotation sets the rotation in radians and marks the node dirty.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
	n.transformDirty = true
}

// SetSkew sets SkewX and SkewY in radians and marks the node dirty.
func (n *Node) SetSkew(kx, ky float64) {
	n.SkewX, n.SkewY = kx, ky
	n.transformDirty = true
}

// SetPivot sets PivotX and PivotY and marks the node dirty.
func (n *Node) SetPivot(px, py float64) {
	n.PivotX, n.PivotY = px, py
	n.transformDirty = true
}

// SetAlpha sets the node's alpha and marks it dirty.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// MarkDirty forces recomputation on the next frame after fields were set
// directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// WorldToLocal converts a world-space point to this node's local space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return applyAffine(invAffine(n.worldTransform), wx, wy)
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return applyAffine(n.worldTransform, lx, ly)
}

// WorldBounds returns the axis-aligned bounds of the node's Width x Height
// box in world space.
func (n *Node) WorldBounds() Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{0, 0}, {n.Width, 0}, {0, n.Height}, {n.Width, n.Height}} {
		x, y := applyAffine(n.worldTransform, p[0], p[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
