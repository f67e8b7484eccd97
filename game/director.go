package game

// Director plays the game on its own, one press at a time
type Director interface {
	// Init prepares the director for a freshly generated board. It is called
	// again after every reset.
	Init(*Engine)

	// Act performs a single press. It returns false when there was nothing left
	// to do.
	Act() bool
}
