package template

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/orayew2002/marriage-form/logger"
)

// placeholderPat matches a {{key}} token.
var placeholderPat = regexp.MustCompile(`\{\{\s*[A-Za-z0-9_.]+\s*\}\}`)

// Placeholder wraps key as a template token ("groom_name" → "{{groom_name}}").
func Placeholder(key string) string {
	return "{{" + key + "}}"
}

// ReplaceHandler accumulates key→value pairs and registers a single shared
// handler for all of them. Because the registry stops at the first matched
// handler per cell, sharing one handler replaces ALL pairs in one pass, even
// when a cell holds several tokens ("{{day}} {{month}} {{year}}").
type ReplaceHandler struct {
	pairs []replacePair
}

type replacePair struct{ key, val string }

// NewReplaceHandler creates an empty ReplaceHandler.
func NewReplaceHandler() *ReplaceHandler {
	return &ReplaceHandler{}
}

// Add appends a token→val pair. Returns h so calls can be chained.
func (h *ReplaceHandler) Add(token, val string) *ReplaceHandler {
	h.pairs = append(h.pairs, replacePair{token, val})
	return h
}

// AddValues adds one {{key}} pair per map entry, in key order.
func (h *ReplaceHandler) AddValues(values map[string]string) *ReplaceHandler {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		h.Add(Placeholder(k), values[k])
	}
	return h
}

// Register registers h into r for every token added.
func (h *ReplaceHandler) Register(r *Registry) {
	for _, p := range h.pairs {
		r.Register(p.key, h.apply)
	}
}

func (h *ReplaceHandler) apply(ctx context.Context, c Cell) error {
	cell := c.Name()

	styleID, _ := c.File.GetCellStyle(c.Sheet, cell)

	oldnew := make([]string, 0, 2*len(h.pairs))
	known := make(map[string]bool, len(h.pairs))
	for _, p := range h.pairs {
		oldnew = append(oldnew, p.key, p.val)
		known[p.key] = true
	}
	// One pass: substituted values are never scanned again for tokens.
	replaced := strings.NewReplacer(oldnew...).Replace(c.Value)

	if err := c.File.SetCellStr(c.Sheet, cell, replaced); err != nil {
		return fmt.Errorf("replace %s: %w", cell, err)
	}

	if styleID != 0 {
		if err := c.File.SetCellStyle(c.Sheet, cell, cell, styleID); err != nil {
			return fmt.Errorf("restore style %s: %w", cell, err)
		}
	}

	var left []string
	for _, tok := range placeholderPat.FindAllString(c.Value, -1) {
		if !known[tok] {
			left = append(left, tok)
		}
	}
	if len(left) > 0 {
		logger.WarnLog(ctx, "unresolved placeholders %v in %s!%s", left, c.Sheet, cell)
	}

	return nil
}

// RegisterUnresolvedHandler registers a catch-all for {{...}} tokens no other
// handler claimed. The cell is left as is and a warning is logged. Register it last.
func RegisterUnresolvedHandler(r *Registry) {
	r.Register("{{", func(ctx context.Context, c Cell) error {
		if left := placeholderPat.FindAllString(c.Value, -1); len(left) > 0 {
			logger.WarnLog(ctx, "unresolved placeholders %v in %s!%s", left, c.Sheet, c.Name())
		}
		return nil
	})
}
