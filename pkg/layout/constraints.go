package layout

// FragmentationType is the kind of fragmentation context a space is in.
type FragmentationType int

const (
	FragmentNone FragmentationType = iota
	FragmentColumn
	FragmentPage
)

func (t FragmentationType) String() string {
	switch t {
	case FragmentColumn:
		return "column"
	case FragmentPage:
		return "page"
	}
	return "none"
}

// ConstraintSpace is the input to a layout algorithm. It is a value type:
// the With* helpers return modified copies and never touch the receiver,
// so a space can be reused across relayout attempts.
type ConstraintSpace struct {
	AvailableSize            Size
	PercentageResolutionSize Size

	FragmentationType FragmentationType
	// FragmentainerBlockSize is Indefinite while balancing columns.
	FragmentainerBlockSize float64
	// FragmentainerOffsetAtBFC is the block offset of the block formatting
	// context start within the current fragmentainer.
	FragmentainerOffsetAtBFC float64

	IsAnonymous             bool
	IsNewFormattingContext  bool
	IsInColumnBFC           bool
	IsInsideBalancedColumns bool
	// DiscardStartMargin drops the block-start margin of the first child
	// after an unforced break.
	DiscardStartMargin bool
}

// NewConstraintSpace creates a non-fragmented space with the given
// available size.
func NewConstraintSpace(width, height float64) ConstraintSpace {
	return ConstraintSpace{
		AvailableSize:            Size{Width: width, Height: height},
		PercentageResolutionSize: Size{Width: width, Height: height},
		FragmentainerBlockSize:   Indefinite,
		IsNewFormattingContext:   true,
	}
}

// WithAvailableSize returns a copy with a new available size.
func (cs ConstraintSpace) WithAvailableSize(size Size) ConstraintSpace {
	cs.AvailableSize = size
	return cs
}

// WithPercentageResolutionSize returns a copy with a new percentage base.
func (cs ConstraintSpace) WithPercentageResolutionSize(size Size) ConstraintSpace {
	cs.PercentageResolutionSize = size
	return cs
}

// WithFragmentation returns a copy in a fragmentation context of the given
// type with the given fragmentainer block size.
func (cs ConstraintSpace) WithFragmentation(t FragmentationType, fragmentainerBlockSize float64) ConstraintSpace {
	cs.FragmentationType = t
	cs.FragmentainerBlockSize = fragmentainerBlockSize
	if t == FragmentNone {
		cs.FragmentainerBlockSize = Indefinite
	}
	return cs
}

// WithFragmentainerOffset returns a copy with the block offset of the BFC
// start within the fragmentainer.
func (cs ConstraintSpace) WithFragmentainerOffset(offset float64) ConstraintSpace {
	cs.FragmentainerOffsetAtBFC = offset
	return cs
}

func (cs ConstraintSpace) HasBlockFragmentation() bool {
	return cs.FragmentationType != FragmentNone
}

func (cs ConstraintSpace) HasKnownFragmentainerBlockSize() bool {
	return cs.HasBlockFragmentation() && isDefinite(cs.FragmentainerBlockSize)
}

// IsInitialColumnBalancingPass reports whether this is the strip layout
// used to estimate a balanced column height: columns of unknown size.
func (cs ConstraintSpace) IsInitialColumnBalancingPass() bool {
	return cs.FragmentationType == FragmentColumn && !isDefinite(cs.FragmentainerBlockSize)
}

// fragmentainerCapacity is the usable size of a fragmentainer. It is at
// least one pixel so that every fragmentainer makes progress.
func fragmentainerCapacity(space ConstraintSpace) float64 {
	if space.FragmentainerBlockSize < 1 {
		return 1
	}
	return space.FragmentainerBlockSize
}

// fragmentainerSpaceAtBFCStart is the space left in the current
// fragmentainer at the start of the BFC.
func fragmentainerSpaceAtBFCStart(space ConstraintSpace) float64 {
	return space.FragmentainerBlockSize - space.FragmentainerOffsetAtBFC
}
