package tui

import (
	"strings"

	"github.com/aretw0/sweetwater/pkg/domain"
	"github.com/muesli/termenv"
)

// Every grid cell is drawn two columns wide so emoji pickups line up.
const (
	emptyCell = "  "
	headCell  = "██"
	bodyCell  = "▓▓"
)

// RenderBoard draws the board inside a frame. Colours come from out's profile,
// so a termenv.Ascii output yields plain text.
func RenderBoard(b *domain.Board, out *termenv.Output) string {
	if b == nil || b.Width <= 0 || b.Height <= 0 {
		return ""
	}

	head := out.Color("#facc15")
	body := out.Color("#a3e635")
	if !b.Running {
		head = out.Color("#f87171")
		body = out.Color("#fca5a5")
	}

	occupied := make(map[domain.Cell]int, len(b.Occupant))
	for i, c := range b.Occupant {
		if _, ok := occupied[c]; !ok {
			occupied[c] = i
		}
	}

	var sb strings.Builder
	border := strings.Repeat("─", b.Width*2)
	sb.WriteString("┌" + border + "┐\n")
	for row := 0; row < b.Height; row++ {
		sb.WriteString("│")
		for col := 0; col < b.Width; col++ {
			cell := domain.Cell{Col: col, Row: row}
			if i, ok := occupied[cell]; ok {
				if i == 0 {
					sb.WriteString(out.String(headCell).Foreground(head).String())
				} else {
					sb.WriteString(out.String(bodyCell).Foreground(body).String())
				}
				continue
			}
			if b.Pickup != nil && b.Pickup.Cell == cell {
				sb.WriteString(b.Pickup.Symbol)
				continue
			}
			sb.WriteString(emptyCell)
		}
		sb.WriteString("│\n")
	}
	sb.WriteString("└" + border + "┘")
	return sb.String()
}
