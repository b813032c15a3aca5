// Package render builds the HTML for ad cards.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"ad-widget/internal/domain"
)

const (
	DefaultImagePrefix = "/static/images/"
	DefaultDismissPath = "/widget/dislike"

	// FadeClass is the CSS class carrying the fade-out transition.
	FadeClass = "fade-out"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"/", "&#x2F;",
	"`", "&#x60;",
	"=", "&#x3D;",
)

// EscapeHTML replaces every markup-significant character of s with its
// entity. Only free text (title, category) goes through it.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// FormatCTR renders a click-through rate with two decimals, e.g. "12.35%".
func FormatCTR(ctr float64) string {
	return strconv.FormatFloat(ctr, 'f', 2, 64) + "%"
}

type Options struct {
	ImagePrefix string
	DismissPath string
}

func (o Options) withDefaults() Options {
	if o.ImagePrefix == "" {
		o.ImagePrefix = DefaultImagePrefix
	}
	if o.DismissPath == "" {
		o.DismissPath = DefaultDismissPath
	}
	return o
}

// CardID is the DOM id of the card for an ad.
func CardID(id int64) string {
	return fmt.Sprintf("ad-card-%d", id)
}

// CardHTML returns the markup of one card. Image path and target page are
// trusted backend values and are written as-is.
func CardHTML(ad domain.Advertisement, fading bool, opts Options) string {
	opts = opts.withDefaults()

	class := "card ad-card"
	if fading {
		class += " " + FadeClass
	}

	title := EscapeHTML(ad.Title)

	var b strings.Builder
	b.WriteString(`<div class="col-md-4">`)
	fmt.Fprintf(&b, `<div class="%s" id="%s">`, class, CardID(ad.ID))
	fmt.Fprintf(&b, `<img src="%s%s" alt="%s">`, opts.ImagePrefix, ad.ImageURL, title)
	b.WriteString(`<div class="card-body">`)
	fmt.Fprintf(&b, `<h5 class="card-title">%s</h5>`, title)
	fmt.Fprintf(&b, `<p class="card-text text-muted">%s • CTR: %s</p>`, EscapeHTML(ad.Category), FormatCTR(ad.CTR))
	b.WriteString(`<div>`)
	fmt.Fprintf(&b, `<a href="%s" class="btn btn-primary btn-sm" target="_blank">Visit</a>`, ad.TargetPage)
	fmt.Fprintf(&b, `<form method="post" action="%s/%d" class="d-inline">`, opts.DismissPath, ad.ID)
	b.WriteString(`<button type="submit" class="btn btn-outline-danger btn-sm ms-2">👎 Dislike</button>`)
	b.WriteString(`</form></div></div></div></div>`)

	return b.String()
}
