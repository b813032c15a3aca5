package display

import (
	"strings"
	"testing"

	"ad-widget/internal/domain"
	"ad-widget/internal/render"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(id int64, title string) Card {
	return Card{Ad: domain.Advertisement{ID: id, Title: title}}
}

func TestPage_Replace(t *testing.T) {
	p := NewPage(render.Options{})

	p.Replace([]Card{card(1, "one"), card(2, "two")})
	assert.Len(t, p.Snapshot().Cards, 2)

	p.Replace([]Card{card(3, "three")})
	snap := p.Snapshot()
	require.Len(t, snap.Cards, 1)
	assert.Equal(t, int64(3), snap.Cards[0].Ad.ID)

	p.Replace(nil)
	snap = p.Snapshot()
	assert.Empty(t, snap.Cards)
	assert.Empty(t, snap.Markup)
}

func TestPage_ReplaceCopiesInput(t *testing.T) {
	p := NewPage(render.Options{})

	cards := []Card{card(1, "one")}
	p.Replace(cards)
	cards[0] = card(9, "nine")

	_, ok := p.Card(1)
	assert.True(t, ok)
}

func TestPage_Loading(t *testing.T) {
	p := NewPage(render.Options{})
	assert.False(t, p.Loading())

	p.SetLoading(true)
	assert.True(t, p.Loading())
	assert.True(t, p.Snapshot().Loading)

	p.SetLoading(false)
	assert.False(t, p.Loading())
}

func TestPage_MarkFading(t *testing.T) {
	p := NewPage(render.Options{})
	p.Replace([]Card{card(1, "one"), card(2, "two")})

	assert.True(t, p.MarkFading(2))
	assert.False(t, p.MarkFading(3))

	c, ok := p.Card(2)
	require.True(t, ok)
	assert.True(t, c.Fading)

	c, ok = p.Card(1)
	require.True(t, ok)
	assert.False(t, c.Fading)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.Snapshot().Markup))
	require.NoError(t, err)
	assert.True(t, doc.Find("#ad-card-2").HasClass(render.FadeClass))
	assert.False(t, doc.Find("#ad-card-1").HasClass(render.FadeClass))
}

func TestPage_CardMissing(t *testing.T) {
	p := NewPage(render.Options{})
	_, ok := p.Card(9)
	assert.False(t, ok)
}

func TestPage_SnapshotIsCopy(t *testing.T) {
	p := NewPage(render.Options{})
	p.Replace([]Card{card(1, "one")})

	snap := p.Snapshot()
	p.Replace(nil)

	assert.Len(t, snap.Cards, 1)
}
