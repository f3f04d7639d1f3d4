package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/sweetwater/pkg/domain"
	"github.com/muesli/termenv"
)

// Presenter draws snapshots as full terminal frames.
type Presenter struct {
	w      io.Writer
	out    *termenv.Output
	render func(string) (string, error)
	raw    bool

	// Card bodies are static for a whole stage, so the rendered markdown is cached.
	lastBody     string
	lastRendered string
}

// PresenterOption configures a Presenter.
type PresenterOption func(*Presenter)

// WithRawMode translates line endings for a terminal in raw mode.
func WithRawMode(raw bool) PresenterOption {
	return func(p *Presenter) {
		p.raw = raw
	}
}

// WithMarkdownRenderer overrides the card body renderer.
func WithMarkdownRenderer(render func(string) (string, error)) PresenterOption {
	return func(p *Presenter) {
		p.render = render
	}
}

// WithProfile forces a colour profile (termenv.Ascii disables colours).
func WithProfile(profile termenv.Profile) PresenterOption {
	return func(p *Presenter) {
		p.out = termenv.NewOutput(p.w, termenv.WithProfile(profile))
	}
}

// NewPresenter creates a presenter writing to w.
func NewPresenter(w io.Writer, opts ...PresenterOption) *Presenter {
	p := &Presenter{
		w:      w,
		out:    termenv.NewOutput(w),
		render: NewRenderer(60),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Present clears the screen and draws snap.
func (p *Presenter) Present(ctx context.Context, snap domain.Snapshot) error {
	frame := p.Frame(snap)
	if p.raw {
		frame = strings.ReplaceAll(frame, "\n", "\r\n")
	}
	p.out.ClearScreen()
	_, err := io.WriteString(p.w, frame)
	return err
}

// Frame builds the text of a frame without writing it.
func (p *Presenter) Frame(snap domain.Snapshot) string {
	var sb strings.Builder

	sb.WriteString(p.header(snap))
	sb.WriteString("\n\n")

	if snap.Card != nil {
		sb.WriteString(p.out.String(snap.Card.Title).Bold().String())
		sb.WriteString("\n")
		if body := p.body(snap.Card.Body); body != "" {
			sb.WriteString(body)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if snap.Board != nil {
		sb.WriteString(RenderBoard(snap.Board, p.out))
		sb.WriteString("\n")
		c := snap.Board.Counters
		fmt.Fprintf(&sb, "preferred %d  neutral %d  walls %d  self %d\n\n",
			c.Preferred, c.Neutral, c.WallHits, c.SelfHits)
	}

	if snap.Card != nil && snap.Card.Prompt != "" {
		sb.WriteString(p.out.String(snap.Card.Prompt).Faint().String())
		sb.WriteString("\n")
	}
	return sb.String()
}

func (p *Presenter) header(snap domain.Snapshot) string {
	parts := []string{
		p.out.String(strings.ToUpper(string(snap.Stage))).Bold().Foreground(p.out.Color("#38bdf8")).String(),
		fmt.Sprintf("score %d", snap.Score),
		fmt.Sprintf("awareness ×%.2f", snap.Awareness),
	}
	if snap.Stage != domain.StageTitle {
		parts = append(parts, fmt.Sprintf("%.1fs", snap.Remaining))
	}
	if snap.Persona != nil {
		parts = append(parts, snap.Persona.Emoji+" "+snap.Persona.Name)
	}
	return strings.Join(parts, "  │  ")
}

func (p *Presenter) body(markdown string) string {
	if markdown == "" {
		return ""
	}
	if markdown == p.lastBody {
		return p.lastRendered
	}
	rendered, err := p.render(markdown)
	if err != nil {
		rendered = markdown
	}
	p.lastBody, p.lastRendered = markdown, rendered
	return rendered
}
