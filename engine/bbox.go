package engine

// BoundingBox is a 2D area given by an inclusive min and max coordinate
// pair: a point with I == IMax is still inside the box.
type BoundingBox struct {
	IMin, JMin, IMax, JMax int8
}

// NewBoundingBox returns the box covering the single point (i, j).
func NewBoundingBox(i, j int8) BoundingBox {
	return BoundingBox{IMin: i, JMin: j, IMax: i, JMax: j}
}

// Contains reports whether (i, j) lies inside the box.
func (b BoundingBox) Contains(i, j int8) bool {
	return i >= b.IMin && j >= b.JMin && i <= b.IMax && j <= b.JMax
}

// Expand grows the box to cover the point (i, j).
func (b *BoundingBox) Expand(i, j int8) {
	b.IMin = min(b.IMin, i)
	b.IMax = max(b.IMax, i)
	b.JMin = min(b.JMin, j)
	b.JMax = max(b.JMax, j)
}
