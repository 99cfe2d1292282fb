package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

// cardCache memoizes rendered joke markdown keyed by style, width and text.
// Glamour renderers are expensive to build, so they are kept per style:width.
type cardCache struct {
	mu        sync.Mutex
	renderers map[string]*glamour.TermRenderer
	rendered  map[string]string
}

func newCardCache() *cardCache {
	return &cardCache{
		renderers: make(map[string]*glamour.TermRenderer),
		rendered:  make(map[string]string),
	}
}

// render returns text as glamour-rendered markdown wrapped at width. When the
// renderer fails the plain text is word-wrapped instead.
func (c *cardCache) render(text, style string, width int) string {
	if width < 10 {
		width = 10
	}
	key := fmt.Sprintf("%s:%d", style, width)

	c.mu.Lock()
	defer c.mu.Unlock()

	if out, ok := c.rendered[key+":"+text]; ok {
		return out
	}

	r, ok := c.renderers[key]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return wordwrap.String(text, width)
		}
		c.renderers[key] = r
	}

	out, err := r.Render(escapeMarkdown(text))
	if err != nil {
		return wordwrap.String(text, width)
	}
	out = strings.Trim(out, "\n")

	// A joke is short; keep the cache bounded to the recent few.
	if len(c.rendered) > 64 {
		c.rendered = make(map[string]string)
	}
	c.rendered[key+":"+text] = out
	return out
}
