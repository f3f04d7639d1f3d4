package stages

import (
	"fmt"
	"time"

	"github.com/aretw0/sweetwater/pkg/domain"
	"github.com/aretw0/sweetwater/pkg/ports"
)

const (
	wildCustomerDuration = 6 * time.Second
	wildCustomerOutro    = time.Second
)

// WildCustomer picks the persona the rest of the run caters to.
type WildCustomer struct {
	opts  Options
	host  ports.StageHost
	timer *countdown
	done  bool
}

// NewWildCustomer creates the wild customer stage.
func NewWildCustomer(opts ...Option) *WildCustomer {
	return &WildCustomer{opts: resolve(wildCustomerDuration, opts)}
}

func (w *WildCustomer) ID() domain.StageID { return domain.StageWildCustomer }

func (w *WildCustomer) Start(host ports.StageHost) {
	w.host = host
	w.done = false

	persona := host.SelectPersona()
	host.Show(customerCard(persona), nil)
	w.timer = startCountdown(host, w.opts.Duration, w.opts.Frame, w.complete)
}

func customerCard(p *domain.Persona) *domain.Card {
	if p == nil {
		return &domain.Card{
			Title:  "A wild customer appeared!",
			Body:   "They wandered off before saying what they need.",
			Prompt: "Press SPACE to continue...",
		}
	}
	return &domain.Card{
		Title: "A wild customer appeared!",
		Body: fmt.Sprintf("# %s %s\n\n%s\n\n**Needs:** %s",
			p.Emoji, p.Name, p.Description, p.Needs),
		Prompt: "Press SPACE to help them...",
	}
}

func (w *WildCustomer) HandleInput(intent domain.Intent) {
	if intent == domain.IntentConfirm {
		w.complete()
	}
}

func (w *WildCustomer) complete() {
	if w.done {
		return
	}
	w.done = true
	w.timer.Stop()

	w.host.Logger().Info("Wild customer complete")
	w.host.Scheduler().AfterFunc(wildCustomerOutro, w.host.Advance)
}

func (w *WildCustomer) Cleanup() {
	w.timer.Stop()
}
