// Package sweep orchestrates dynamic content reveals on live pages.
// It coordinates lazy-load scrolling, sequential clicking of tab/accordion/
// pagination triggers, bounded mutation waits, and re-extraction after each
// reveal, merging the results.
package sweep

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	webscrape "github.com/codermillat/WebScrape-sub000"
	wsgoquery "github.com/codermillat/WebScrape-sub000/goquery"
)

// pollInterval is the spacing between signature probes during a mutation
// wait. The wait resolves as soon as the container signature changes or the
// bound elapses, whichever comes first.
const pollInterval = 150 * time.Millisecond

// scrollStepRatio is the fraction of the viewport height advanced per
// lazy-load scroll step.
const scrollStepRatio = 0.9

// state is one node of the sweep state machine.
type state int

const (
	stateIdle state = iota
	statePreload
	stateReveal
	stateExtract
	stateDone
)

// Ensure Orchestrator implements webscrape.Sweeper at compile time.
var _ webscrape.Sweeper = (*Orchestrator)(nil)

// Orchestrator runs the sweep state machine over a live page session.
// Reveals are strictly sequential: one trigger's mutation is awaited before
// the next trigger fires, because concurrent triggers would race on the
// same DOM subtree and produce inconsistent "before" signatures.
type Orchestrator struct {
	Sessions webscrape.SessionOpener
	Walker   webscrape.Walker
	Logger   *slog.Logger

	// Sleep is the timer used between scroll steps and signature probes.
	// Overridable so tests advance instantly. Defaults to a context-aware
	// real sleep.
	Sleep func(ctx context.Context, d time.Duration)
}

// run carries the per-sweep mutable state through the machine.
type run struct {
	session  webscrape.PageSession
	cfg      webscrape.SweepConfig
	url      string
	result   *webscrape.SweepResult
	seen     map[string]bool // normalized line → seen
	stalled  int
	clicked  map[string]bool // kind+label of triggers already fired
	nextTrig *webscrape.Trigger
}

// Sweep navigates to the URL and runs the reveal/extract loop until a full
// trigger pass completes, the container signature stalls twice in a row, or
// the safety counter is exhausted.
func (o *Orchestrator) Sweep(ctx context.Context, url string, cfg webscrape.SweepConfig) (*webscrape.SweepResult, error) {
	if cfg.MutationWait <= 0 {
		cfg.MutationWait = webscrape.DefaultMutationWait
	}
	if cfg.ScrollDelay <= 0 {
		cfg.ScrollDelay = webscrape.DefaultScrollDelay
	}
	if cfg.Limit <= 0 {
		cfg.Limit = webscrape.DefaultSweepLimit
	}

	session, err := o.Sessions.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	r := &run{
		session: session,
		cfg:     cfg,
		url:     url,
		result:  &webscrape.SweepResult{Termination: webscrape.SweepCompleted},
		seen:    make(map[string]bool),
		clicked: make(map[string]bool),
	}

	// Advance one state transition per iteration.
	st := stateIdle
	for st != stateDone {
		if ctx.Err() != nil {
			return r.result, ctx.Err()
		}
		switch st {
		case stateIdle:
			if err := session.Navigate(ctx, url); err != nil {
				return nil, err
			}
			st = statePreload
		case statePreload:
			o.preload(ctx, r)
			st = stateExtract
		case stateExtract:
			o.extract(ctx, r)
			st = stateReveal
		case stateReveal:
			st = o.reveal(ctx, r)
		}
	}

	return r.result, nil
}

// Close releases the session opener.
func (o *Orchestrator) Close() error {
	return o.Sessions.Close()
}

// preload scrolls stepwise to the full scroll height to trigger lazy-loaded
// content, then returns to the top. Scroll failures degrade silently; the
// page is still extracted as-is.
func (o *Orchestrator) preload(ctx context.Context, r *run) {
	scrollHeight, viewport, err := r.session.Metrics(ctx)
	if err != nil || viewport <= 0 {
		return
	}
	step := viewport * scrollStepRatio
	for y := step; y < scrollHeight; y += step {
		if err := r.session.ScrollTo(ctx, y); err != nil {
			break
		}
		o.sleep(ctx, r.cfg.ScrollDelay)
		// Lazy loading can grow the page while we scroll.
		if sh, _, err := r.session.Metrics(ctx); err == nil && sh > scrollHeight {
			scrollHeight = sh
		}
	}
	_ = r.session.ScrollTo(ctx, 0)
}

// reveal fires the next unclicked trigger and waits for its mutation.
// It returns the next machine state.
func (o *Orchestrator) reveal(ctx context.Context, r *run) state {
	if r.result.Iterations >= r.cfg.Limit {
		r.result.Termination = webscrape.SweepLimitExceeded
		return stateDone
	}
	if r.stalled >= webscrape.SweepStalledLimit {
		r.result.Termination = webscrape.SweepStalled
		return stateDone
	}

	trigger, ok := o.nextTrigger(ctx, r)
	if !ok {
		// Full trigger pass complete.
		r.result.Termination = webscrape.SweepCompleted
		return stateDone
	}

	// Grid layouts hide fees behind per-item toggles that must be expanded
	// before the page-level pagination advances.
	if r.cfg.DrillDown && trigger.Kind == webscrape.TriggerPagination {
		o.drillDown(ctx, r)
	}

	r.result.Iterations++
	before := o.containerSignature(ctx, r)

	if err := r.session.Click(ctx, trigger); err != nil {
		if o.Logger != nil {
			o.Logger.Debug("trigger click failed", "label", trigger.Label, "error", err)
		}
		r.stalled++
		return stateReveal
	}

	if o.waitMutation(ctx, r, before) {
		r.result.Reveals++
		r.stalled = 0
		return stateExtract
	}

	// Timeout means "no new content"; proceed to the next trigger.
	r.stalled++
	return stateReveal
}

// nextTrigger re-enumerates triggers and returns the first not yet fired.
// Re-enumeration matters for pagination, where each click replaces the
// control set.
func (o *Orchestrator) nextTrigger(ctx context.Context, r *run) (webscrape.Trigger, bool) {
	triggers, err := r.session.Triggers(ctx)
	if err != nil {
		return webscrape.Trigger{}, false
	}
	for _, t := range triggers {
		if t.Kind == webscrape.TriggerItemToggle {
			continue // handled by drillDown
		}
		key := string(t.Kind) + "\x00" + t.Label
		if r.clicked[key] {
			continue
		}
		r.clicked[key] = true
		return t, true
	}
	return webscrape.Trigger{}, false
}

// drillDown expands per-item toggles in the current page of a grid/list
// layout, awaiting each reveal, before the caller advances pagination.
func (o *Orchestrator) drillDown(ctx context.Context, r *run) {
	triggers, err := r.session.Triggers(ctx)
	if err != nil {
		return
	}
	for _, t := range triggers {
		if t.Kind != webscrape.TriggerItemToggle {
			continue
		}
		before := o.containerSignature(ctx, r)
		if err := r.session.Click(ctx, t); err != nil {
			continue
		}
		if o.waitMutation(ctx, r, before) {
			r.result.Reveals++
			o.extract(ctx, r)
		}
	}
}

// extract re-runs the walker scoped to the main container and merges new
// lines, deduplicated by normalized line text.
func (o *Orchestrator) extract(ctx context.Context, r *run) {
	html, err := r.session.HTML(ctx)
	if err != nil {
		return
	}
	opts := webscrape.DefaultWalkOptions()
	opts.ExcludeBoilerplate = true
	result, err := o.Walker.Walk(html, r.url, opts)
	if err != nil {
		return
	}
	for _, line := range result.Lines() {
		key := webscrape.NormalizeLine(line)
		if key == "" || r.seen[key] {
			continue
		}
		r.seen[key] = true
		r.result.Lines = append(r.result.Lines, line)
	}
}

// waitMutation polls the container signature until it differs from before
// or the bounded wait elapses. Returns true when a mutation was observed.
func (o *Orchestrator) waitMutation(ctx context.Context, r *run, before string) bool {
	deadline := time.Now().Add(r.cfg.MutationWait)
	for {
		if sig := o.containerSignature(ctx, r); sig != "" && sig != before {
			return true
		}
		if time.Now().After(deadline) || ctx.Err() != nil {
			return false
		}
		o.sleep(ctx, pollInterval)
	}
}

// containerSignature fingerprints the main container as text length plus
// text prefix, cheap enough to poll.
func (o *Orchestrator) containerSignature(ctx context.Context, r *run) string {
	html, err := r.session.HTML(ctx)
	if err != nil {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	text := wsgoquery.SelectMainContainer(doc).Text()
	return webscrape.CheapSignature(text)
}

func (o *Orchestrator) sleep(ctx context.Context, d time.Duration) {
	if o.Sleep != nil {
		o.Sleep(ctx, d)
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
