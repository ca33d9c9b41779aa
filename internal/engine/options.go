package engine

import "strings"

// Option configures an Engine during creation.
type Option func(*Engine)

// WithWrap sets whether swaps wrap around at group boundaries.
func WithWrap(wrap bool) Option {
	return func(e *Engine) {
		e.wrap = wrap
	}
}

// WithEnabledFiletypes restricts swapping to the named filetypes.
// An empty list enables every registered filetype.
func WithEnabledFiletypes(filetypes ...string) Option {
	return func(e *Engine) {
		if len(filetypes) == 0 {
			e.enabled = nil
			return
		}
		e.enabled = make(map[string]bool, len(filetypes))
		for _, ft := range filetypes {
			if ft = strings.ToLower(strings.TrimSpace(ft)); ft != "" {
				e.enabled[ft] = true
			}
		}
	}
}
