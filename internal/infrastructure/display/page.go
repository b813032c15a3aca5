package display

import (
	"context"
	"strings"
	"sync"

	"ad-widget/internal/domain"
	"ad-widget/internal/render"
)

// Card is one rendered ad. Dismiss is bound to the ad's ID when the card is
// built.
type Card struct {
	Ad      domain.Advertisement
	Fading  bool
	Dismiss func(ctx context.Context) error
}

type Snapshot struct {
	Loading bool
	Cards   []Card
	Markup  string
}

// Display is the mutable part of the page: the loading indicator and the
// card container.
type Display interface {
	SetLoading(loading bool)
	Loading() bool
	Replace(cards []Card)
	MarkFading(id int64) bool
	Card(id int64) (Card, bool)
	Snapshot() Snapshot
}

// Page keeps the display state in memory. Writers do not coordinate with
// each other: whichever Replace runs last is what is shown.
type Page struct {
	mu      sync.RWMutex
	loading bool
	cards   []Card
	opts    render.Options
}

func NewPage(opts render.Options) *Page {
	return &Page{opts: opts}
}

func (p *Page) SetLoading(loading bool) {
	p.mu.Lock()
	p.loading = loading
	p.mu.Unlock()
}

func (p *Page) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// Replace swaps the whole card list. A nil or empty list clears the page.
func (p *Page) Replace(cards []Card) {
	next := make([]Card, len(cards))
	copy(next, cards)

	p.mu.Lock()
	p.cards = next
	p.mu.Unlock()
}

// MarkFading reports whether a card with the given ID was on the page.
func (p *Page) MarkFading(id int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.cards {
		if p.cards[i].Ad.ID == id {
			p.cards[i].Fading = true
			return true
		}
	}
	return false
}

func (p *Page) Card(id int64) (Card, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, c := range p.cards {
		if c.Ad.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

func (p *Page) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	cards := make([]Card, len(p.cards))
	copy(cards, p.cards)

	var b strings.Builder
	for _, c := range cards {
		b.WriteString(render.CardHTML(c.Ad, c.Fading, p.opts))
	}

	return Snapshot{
		Loading: p.loading,
		Cards:   cards,
		Markup:  b.String(),
	}
}
