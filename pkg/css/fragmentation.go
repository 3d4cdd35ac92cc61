package css

// BreakBetween is a break-before or break-after value.
type BreakBetween int

const (
	BreakAuto BreakBetween = iota
	BreakAvoid
	BreakAvoidColumn
	BreakAvoidPage
	BreakColumn
	BreakPage
	BreakLeft
	BreakRight
	BreakAlways
)

var breakBetweenValues = map[string]BreakBetween{
	"auto":         BreakAuto,
	"avoid":        BreakAvoid,
	"avoid-column": BreakAvoidColumn,
	"avoid-page":   BreakAvoidPage,
	"column":       BreakColumn,
	"page":         BreakPage,
	"left":         BreakLeft,
	"right":        BreakRight,
	"recto":        BreakRight,
	"verso":        BreakLeft,
	"always":       BreakAlways,
}

func (b BreakBetween) String() string {
	for k, v := range breakBetweenValues {
		if v == b && k != "recto" && k != "verso" {
			return k
		}
	}
	return "auto"
}

// BreakInside is the break-inside value.
type BreakInside int

const (
	BreakInsideAuto BreakInside = iota
	BreakInsideAvoid
	BreakInsideAvoidColumn
	BreakInsideAvoidPage
)

func (s *Style) GetBreakBefore() BreakBetween { return s.breakBetween("break-before") }
func (s *Style) GetBreakAfter() BreakBetween  { return s.breakBetween("break-after") }

func (s *Style) breakBetween(property string) BreakBetween {
	v, ok := s.Get(property)
	if !ok {
		return BreakAuto
	}
	return breakBetweenValues[v]
}

func (s *Style) GetBreakInside() BreakInside {
	switch v, _ := s.Get("break-inside"); v {
	case "avoid":
		return BreakInsideAvoid
	case "avoid-column":
		return BreakInsideAvoidColumn
	case "avoid-page":
		return BreakInsideAvoidPage
	}
	return BreakInsideAuto
}
