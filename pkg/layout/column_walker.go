package layout

// partEntry is the next part of a multicol container to process: regular
// column content, resumed at BreakToken (nil at the very start), or a
// column spanner.
type partEntry struct {
	BreakToken *BreakToken
	Spanner    *Node
}

// multicolPartWalker iterates over the parts of a multicol container for
// one outer fragment. Break tokens carried from a previous outer fragment
// come first; after that the walker follows spanners and column content
// discovered while laying out this fragment.
type multicolPartWalker struct {
	container   *Node
	parentToken *BreakToken
	// childIdx indexes the next child token of parentToken.
	childIdx int

	current         partEntry
	spanner         *Node
	nextColumnToken *BreakToken
	finished        bool
}

func newMulticolPartWalker(container *Node, bt *BreakToken) *multicolPartWalker {
	w := &multicolPartWalker{container: container, parentToken: bt}
	w.updateCurrent()
	// An empty entry is the start of the first fragment. Anywhere else it
	// means there is nothing left inside the container.
	if IsResumingLayout(bt) && w.current.BreakToken == nil && bt.HasSeenAllChildren {
		w.finished = true
	}
	return w
}

// Current returns the part to process. It must not be called once the
// walker is finished.
func (w *multicolPartWalker) Current() partEntry {
	if w.finished {
		panic("layout: multicol part walker used after it finished")
	}
	return w.current
}

func (w *multicolPartWalker) IsFinished() bool { return w.finished }

// Next moves to the next part.
func (w *multicolPartWalker) Next() {
	if w.finished {
		return
	}
	w.moveToNext()
	if !w.finished {
		w.updateCurrent()
	}
}

// MoveToSpanner restarts the walk at spanner and the spanners that follow
// it, then at nextColumnToken.
func (w *multicolPartWalker) MoveToSpanner(spanner *Node, nextColumnToken *BreakToken) {
	if !spanner.ColumnSpanAll {
		panic("layout: " + spanner.String() + " is not a column spanner")
	}
	*w = multicolPartWalker{container: w.container}
	w.spanner = spanner
	w.nextColumnToken = nextColumnToken
	w.updateCurrent()
}

// AddNextColumnBreakToken restarts the walk at column content resuming at
// token.
func (w *multicolPartWalker) AddNextColumnBreakToken(token *BreakToken) {
	*w = multicolPartWalker{container: w.container}
	w.nextColumnToken = token
	w.updateCurrent()
}

func (w *multicolPartWalker) updateCurrent() {
	if w.parentToken != nil && w.childIdx < len(w.parentToken.ChildTokens) {
		token := w.parentToken.ChildTokens[w.childIdx]
		w.current = partEntry{BreakToken: token}
		if token.Node != w.container {
			w.current.Spanner = token.Node
		}
		return
	}
	if w.spanner != nil {
		w.current = partEntry{Spanner: w.spanner}
		return
	}
	if w.nextColumnToken != nil {
		w.current = partEntry{BreakToken: w.nextColumnToken}
		return
	}
	w.current = partEntry{}
}

func (w *multicolPartWalker) moveToNext() {
	if w.parentToken != nil && w.childIdx < len(w.parentToken.ChildTokens) {
		w.childIdx++
		if w.childIdx < len(w.parentToken.ChildTokens) {
			return
		}
	}

	if w.spanner != nil {
		if next := w.spanner.NextSibling(); next != nil && next.ColumnSpanAll {
			w.spanner = next
			return
		}
		w.spanner = nil
		if w.nextColumnToken != nil {
			return
		}
	}

	w.finished = true
}
