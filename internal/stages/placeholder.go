package stages

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/sweetwater/pkg/domain"
	"github.com/aretw0/sweetwater/pkg/ports"
)

// Placeholder is a stage that shows a card and advances once its countdown expires.
type Placeholder struct {
	id    domain.StageID
	opts  Options
	card  func(host ports.StageHost) *domain.Card
	timer *countdown
}

func (p *Placeholder) ID() domain.StageID { return p.id }

func (p *Placeholder) Start(host ports.StageHost) {
	host.Show(p.card(host), nil)
	p.timer = startCountdown(host, p.opts.Duration, p.opts.Frame, host.Advance)
}

func (p *Placeholder) Cleanup() {
	p.timer.Stop()
}

// NewMerch creates the merch stage.
func NewMerch(opts ...Option) *Placeholder {
	return &Placeholder{
		id:   domain.StageMerch,
		opts: resolve(5*time.Second, opts),
		card: staticCard("📦 Merch Department", "Stacking the shelves..."),
	}
}

// NewWarehouse creates the warehouse stage.
func NewWarehouse(opts ...Option) *Placeholder {
	return &Placeholder{
		id:   domain.StageWarehouse,
		opts: resolve(5*time.Second, opts),
		card: staticCard("🏭 Warehouse", "Dodging forklifts on the way to the loading dock..."),
	}
}

// NewITHub creates the IT hub stage, which lists the upgrade catalog.
func NewITHub(opts ...Option) *Placeholder {
	return &Placeholder{
		id:   domain.StageITHub,
		opts: resolve(3*time.Second, opts),
		card: func(host ports.StageHost) *domain.Card {
			upgrades := host.Catalog().Upgrades
			if len(upgrades) == 0 {
				return &domain.Card{Title: "💻 IT Hub", Body: "No upgrades in stock today."}
			}
			var b strings.Builder
			b.WriteString("Upgrades on offer:\n\n")
			for _, u := range upgrades {
				fmt.Fprintf(&b, "- **%s**", u.Name)
				if u.Description != "" {
					fmt.Fprintf(&b, " - %s", u.Description)
				}
				b.WriteString("\n")
			}
			return &domain.Card{Title: "💻 IT Hub", Body: b.String()}
		},
	}
}

// NewCelebration creates the final stage.
func NewCelebration(opts ...Option) *Placeholder {
	return &Placeholder{
		id:   domain.StageCelebration,
		opts: resolve(5*time.Second, opts),
		card: func(host ports.StageHost) *domain.Card {
			s := host.Session()
			return &domain.Card{
				Title: "🎉 Celebration",
				Body:  fmt.Sprintf("Final score: **%d** (awareness ×%.2f)", s.Score, s.Awareness),
			}
		},
	}
}

func staticCard(title, body string) func(ports.StageHost) *domain.Card {
	return func(ports.StageHost) *domain.Card {
		return &domain.Card{Title: title, Body: body}
	}
}
