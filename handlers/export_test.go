package handlers

// SetRandIntn swaps the chef identifier source for deterministic tests
func SetRandIntn(h *Handler, f func(n int) int) {
	h.randIntn = f
}
