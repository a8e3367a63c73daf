package components

// CellTappedMsg is emitted when the grid cursor is activated.
type CellTappedMsg struct {
	Bucket int // Grid window index
	Cell   int // Cell index within the grid
}

// PageRequestMsg is emitted when the grid cursor runs off a page edge.
type PageRequestMsg struct {
	Diff int
}
