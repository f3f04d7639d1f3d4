package stages

import (
	"fmt"
	"time"

	"github.com/aretw0/sweetwater/pkg/domain"
	"github.com/aretw0/sweetwater/pkg/ports"
)

const (
	marketingDuration = 8 * time.Second
	marketingOutro    = 1500 * time.Millisecond
)

// Marketing introduces the run and gifts the baseline awareness multiplier.
type Marketing struct {
	opts  Options
	host  ports.StageHost
	timer *countdown
	done  bool
}

// NewMarketing creates the marketing stage.
func NewMarketing(opts ...Option) *Marketing {
	return &Marketing{opts: resolve(marketingDuration, opts)}
}

func (m *Marketing) ID() domain.StageID { return domain.StageMarketing }

func (m *Marketing) Start(host ports.StageHost) {
	m.host = host
	m.done = false

	host.Show(&domain.Card{
		Title: "🎯 Marketing Mentor",
		Body: fmt.Sprintf(`Welcome to Sweetwater Arcade! You're about to help customers find their perfect gear.

Each customer has unique needs - from bedroom producers to touring professionals.

Your awareness and skill will guide them to the right solutions.

**Baseline Multiplier Gift: ×%.1f**`, host.Catalog().Baseline()),
		Prompt: "Press SPACE to continue...",
	}, nil)

	host.AdjustAwareness(0)
	m.timer = startCountdown(host, m.opts.Duration, m.opts.Frame, m.complete)
}

func (m *Marketing) HandleInput(intent domain.Intent) {
	if intent == domain.IntentConfirm {
		m.complete()
	}
}

func (m *Marketing) complete() {
	if m.done {
		return
	}
	m.done = true
	m.timer.Stop()

	m.host.ApplyBaseline()
	m.host.Logger().Info("Marketing complete", "awareness", m.host.Session().Awareness)
	m.host.Scheduler().AfterFunc(marketingOutro, m.host.Advance)
}

func (m *Marketing) Cleanup() {
	m.timer.Stop()
}
