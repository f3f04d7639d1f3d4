package grid

import "github.com/aretw0/sweetwater/pkg/domain"

// Heading is a unit vector along one of the four cardinal directions.
type Heading struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

var (
	Up    = Heading{DX: 0, DY: -1}
	Down  = Heading{DX: 0, DY: 1}
	Left  = Heading{DX: -1, DY: 0}
	Right = Heading{DX: 1, DY: 0}
)

// Cardinals lists the four headings in the order wall steering considers them.
var Cardinals = []Heading{Left, Right, Up, Down}

// Reverse returns the opposite heading.
func (h Heading) Reverse() Heading {
	return Heading{DX: -h.DX, DY: -h.DY}
}

// IsPerpendicular reports whether h and o are at a right angle.
func (h Heading) IsPerpendicular(o Heading) bool {
	return h.DX*o.DX+h.DY*o.DY == 0
}

// Apply moves c one step along h.
func (h Heading) Apply(c domain.Cell) domain.Cell {
	return domain.Cell{Col: c.Col + h.DX, Row: c.Row + h.DY}
}

// HeadingFor maps a directional intent to a heading.
func HeadingFor(intent domain.Intent) (Heading, bool) {
	switch intent {
	case domain.IntentUp:
		return Up, true
	case domain.IntentDown:
		return Down, true
	case domain.IntentLeft:
		return Left, true
	case domain.IntentRight:
		return Right, true
	}
	return Heading{}, false
}
