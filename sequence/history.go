package sequence

// history records snapshots of some state S for undo and redo.
type history[S any] struct {
	depth   int
	pending S
	undo    []S
	redo    []S
}

// begin opens an edit bracket. Only the outermost bracket takes a snapshot.
func (h *history[S]) begin(snapshot func() S) {
	if h.depth == 0 {
		h.pending = snapshot()
	}
	h.depth++
}

// end closes an edit bracket. When the outermost bracket closes and changed
// reports that the state differs from the snapshot, the snapshot becomes an
// undo step.
func (h *history[S]) end(changed func(before S) bool) {
	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth > 0 {
		return
	}
	if changed(h.pending) {
		h.undo = append(h.undo, h.pending)
		h.redo = h.redo[:0]
	}
	var zero S
	h.pending = zero
}

// step pops a snapshot from from, pushes cur onto to, and returns the
// snapshot.
func step[S any](from, to *[]S, cur S) (S, bool) {
	if len(*from) == 0 {
		var zero S
		return zero, false
	}
	s := (*from)[len(*from)-1]
	*from = (*from)[:len(*from)-1]
	*to = append(*to, cur)
	return s, true
}

func (h *history[S]) undoStep(cur S) (S, bool) {
	if h.depth > 0 {
		var zero S
		return zero, false
	}
	return step(&h.undo, &h.redo, cur)
}

func (h *history[S]) redoStep(cur S) (S, bool) {
	if h.depth > 0 {
		var zero S
		return zero, false
	}
	return step(&h.redo, &h.undo, cur)
}
