package refresh

import "context"

// Hook binds Options to a no-argument callback for a build's initialization phase.
type Hook struct {
	opts Options
	ctx  context.Context
}

// NewHook creates a Hook that runs with opts and a background context.
func NewHook(opts Options) *Hook {
	return &Hook{opts: opts, ctx: context.Background()}
}

// WithContext returns a copy of the hook that runs under ctx.
func (h *Hook) WithContext(ctx context.Context) *Hook {
	return &Hook{opts: h.opts, ctx: ctx}
}

// Run performs the refresh once. The error is returned unmodified so the caller can fail the build.
func (h *Hook) Run() error {
	_, err := FetchAndCacheEvents(h.ctx, h.opts)
	return err
}
