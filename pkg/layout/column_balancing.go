package layout

import "go.uber.org/zap"

// contentRun is the content between two forced breaks (or a forced break
// and the start or end of a row), measured in a single column of
// unlimited height.
type contentRun struct {
	contentBlockSize float64
	implicitBreaks   int
}

// columnBlockSize is the column height needed when the run is split evenly
// at its implicit breaks.
func (r contentRun) columnBlockSize() float64 {
	return divideCeil(r.contentBlockSize, r.implicitBreaks+1)
}

type contentRuns struct {
	runs                    []contentRun
	tallestContentBlockSize float64
}

func (c *contentRuns) add(contentBlockSize float64) {
	c.runs = append(c.runs, contentRun{contentBlockSize: contentBlockSize})
	c.tallestContentBlockSize = max(c.tallestContentBlockSize, contentBlockSize)
}

// tallestRun returns the run needing the tallest columns. Ties go to the
// earliest run.
func (c *contentRuns) tallestRun() *contentRun {
	best := &c.runs[0]
	for i := 1; i < len(c.runs); i++ {
		if c.runs[i].columnBlockSize() > best.columnBlockSize() {
			best = &c.runs[i]
		}
	}
	return best
}

func (c *contentRuns) tallestColumnBlockSize() float64 {
	return c.tallestRun().columnBlockSize()
}

// distributeImplicitBreaks hands the columns left over after the forced
// breaks to the runs, one at a time, always to the run that currently
// needs the tallest columns.
func (c *contentRuns) distributeImplicitBreaks(usedColumnCount int) {
	for columns := len(c.runs); columns < usedColumnCount; columns++ {
		c.tallestRun().implicitBreaks++
	}
}

// calculateBalancedColumnBlockSize estimates the smallest column height
// that fits the row content in the used number of columns, assuming the
// content can break anywhere. Layout of the real columns then stretches
// the height if the estimate was too low.
func (a *columnAlgorithm) calculateBalancedColumnBlockSize(columnSize Size, token *BreakToken) float64 {
	space := a.balancingSpace(columnSize)

	var runs contentRuns
	a.tallestUnbreakable = 0
	for {
		result := a.le.layoutBlockFlow(a.node, space, token, FragmentColumnBox)
		f := result.Fragment
		runs.add(max(columnContentBlockSize(f), f.Size.Height))
		a.tallestUnbreakable = max(a.tallestUnbreakable, result.TallestUnbreakableBlockSize)

		// The row ends at a spanner.
		if result.ColumnSpanner != nil {
			break
		}
		token = f.BreakToken
		if token == nil {
			break
		}
	}

	if a.space.IsInitialColumnBalancingPass() {
		// An outer balancing pass needs this to size its own columns.
		a.b.propagateTallestUnbreakable(a.tallestUnbreakable)
	}

	if a.tallestUnbreakable >= runs.tallestContentBlockSize {
		return a.constrainColumnBlockSize(a.tallestUnbreakable)
	}

	runs.distributeImplicitBreaks(a.usedColumnCount)
	size := a.constrainColumnBlockSize(runs.tallestColumnBlockSize())
	a.le.logger.Debug("initial balanced column size",
		zapNode("multicol", a.node), zap.Float64("size", size), zap.Int("runs", len(runs.runs)))
	return size
}

// stretchColumnBlockSize grows the columns by the smallest shortage seen.
func (a *columnAlgorithm) stretchColumnBlockSize(minimalSpaceShortage, currentColumnSize float64) float64 {
	return a.constrainColumnBlockSize(currentColumnSize + minimalSpaceShortage)
}

// constrainColumnBlockSize limits a column height by the space left in the
// outer fragmentainer and by the container's block size properties. It
// never goes below the tallest unbreakable content, unless max-height or
// height forbid it.
func (a *columnAlgorithm) constrainColumnBlockSize(size float64) float64 {
	if a.isConstrainedByOuterFragmentationContext {
		size = min(size, fragmentainerSpaceAtBFCStart(a.space)-a.intrinsicBlockSize)
	}
	size = max(size, a.tallestUnbreakable)

	// The block size properties apply to the border box.
	extra := a.bp.BlockSum()
	size += extra

	fullBP := a.node.borderPadding().BlockSum()
	maxSize := MaxLayoutSize
	if mx := resolveMaxBlockLength(a.space, a.node.MaxHeight); mx != MaxLayoutSize {
		maxSize = mx + fullBP
	}
	if h := resolveMainBlockLength(a.space, a.node.Height); isDefinite(h) {
		maxSize = min(maxSize, h+fullBP)
	}
	maxSize = max(maxSize, resolveMinBlockLength(a.space, a.node.MinHeight)+fullBP)

	if maxSize != MaxLayoutSize {
		// Earlier fragments and rows already used part of it.
		if a.bt != nil {
			maxSize -= a.bt.ConsumedBlockSize
		}
		maxSize -= a.currentContentBlockOffset()
		size = min(size, maxSize)
	}
	return Snap(max(size-extra, 0))
}

// columnContentBlockSize is the block-end of the content in a column,
// including descendants that overflow their parents. Clipped boxes hide
// their overflow.
func columnContentBlockSize(f *Fragment) float64 {
	total := 0.0
	for _, c := range f.Children {
		size := c.Fragment.Size.Height
		if c.Fragment.Type == FragmentBox && len(c.Fragment.Children) > 0 &&
			(c.Fragment.Node == nil || !c.Fragment.Node.OverflowClip) {
			size = max(size, columnContentBlockSize(c.Fragment))
		}
		total = max(total, c.Offset.Y+size)
	}
	return total
}
