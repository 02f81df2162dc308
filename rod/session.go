package rod

import (
	"context"
	"fmt"

	webscrape "github.com/codermillat/WebScrape-sub000"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure the rod types implement the session interfaces at compile time.
var (
	_ webscrape.SessionOpener = (*Opener)(nil)
	_ webscrape.PageSession   = (*Session)(nil)
)

// Opener opens live page sessions backed by a managed Chrome browser.
type Opener struct {
	manager *BrowserManager
}

// NewOpener creates an Opener. Close must be called when done.
func NewOpener() (*Opener, error) {
	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	return &Opener{manager: manager}, nil
}

// Open creates a new page session.
func (o *Opener) Open(ctx context.Context) (webscrape.PageSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, err := o.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	o.manager.IncrementPageCount()
	return &Session{page: page}, nil
}

// Close releases browser resources.
func (o *Opener) Close() error {
	return o.manager.Close()
}

// Session is one attached live page.
type Session struct {
	page    *rod.Page
	nextID  int
}

// Navigate loads the URL and waits for the load event.
func (s *Session) Navigate(ctx context.Context, url string) error {
	page := s.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return err
	}
	return page.WaitLoad()
}

// Metrics returns the scroll height and viewport height.
func (s *Session) Metrics(ctx context.Context) (float64, float64, error) {
	obj, err := s.page.Context(ctx).Eval(`() => [document.documentElement.scrollHeight, window.innerHeight]`)
	if err != nil {
		return 0, 0, err
	}
	arr := obj.Value.Arr()
	if len(arr) != 2 {
		return 0, 0, fmt.Errorf("unexpected metrics shape")
	}
	return arr[0].Num(), arr[1].Num(), nil
}

// ScrollTo scrolls the viewport to the vertical offset.
func (s *Session) ScrollTo(ctx context.Context, y float64) error {
	_, err := s.page.Context(ctx).Eval(`(y) => window.scrollTo(0, y)`, y)
	return err
}

// HTML returns the page's current rendered HTML.
func (s *Session) HTML(ctx context.Context) (string, error) {
	return s.page.Context(ctx).HTML()
}

// triggerJS enumerates reveal controls and tags each with a stable
// attribute so a later click can address it even after re-enumeration.
// It reports computed style, bounding box and landmark ancestry so the Go
// side applies the visibility and positional filters.
const triggerJS = `(startID) => {
	const found = [];
	let id = startID;
	const push = (el, kind) => {
		if (el.dataset.wsTriggerId === undefined) {
			el.dataset.wsTriggerId = String(id++);
		}
		const cs = getComputedStyle(el);
		const box = el.getBoundingClientRect();
		found.push({
			id: Number(el.dataset.wsTriggerId),
			kind: kind,
			label: (el.innerText || el.getAttribute('aria-label') || '').trim().slice(0, 80),
			display: cs.display,
			visibility: cs.visibility,
			opacity: Number(cs.opacity),
			width: box.width,
			height: box.height,
			top: box.top,
			bottom: box.bottom,
			chrome: el.closest('header, nav, footer, aside') !== null,
		});
	};
	const seen = new Set();
	const collect = (selector, kind) => {
		for (const el of document.querySelectorAll(selector)) {
			if (seen.has(el)) continue;
			seen.add(el);
			push(el, kind);
		}
	};
	collect('[role=tab], .nav-tabs a, [data-toggle="tab"], [data-bs-toggle="tab"]', 'tab');
	collect('.accordion-button, [data-toggle="collapse"], [data-bs-toggle="collapse"], details > summary', 'accordion');
	collect('.pagination a, .pagination button, .page-link, a[rel=next], .pager a', 'pagination');
	for (const el of document.querySelectorAll('li button, li a, .card button, .card a')) {
		if (seen.has(el)) continue;
		const text = (el.innerText || '').trim();
		if (/fee|fees/i.test(text) && text.length <= 40) {
			seen.add(el);
			push(el, 'item_toggle');
		}
	}
	return [found, id, window.innerHeight];
}`

// Triggers enumerates tab/accordion/pagination controls and per-item fee
// toggles in document order. Hidden controls and controls boxed inside the
// sticky header/footer zones with landmark ancestry are excluded.
func (s *Session) Triggers(ctx context.Context) ([]webscrape.Trigger, error) {
	obj, err := s.page.Context(ctx).Eval(triggerJS, s.nextID)
	if err != nil {
		return nil, err
	}
	arr := obj.Value.Arr()
	if len(arr) != 3 {
		return nil, fmt.Errorf("unexpected trigger enumeration shape")
	}
	s.nextID = int(arr[1].Int())
	viewport := arr[2].Num()

	var triggers []webscrape.Trigger
	for _, item := range arr[0].Arr() {
		style := webscrape.NodeStyle{
			Display:    item.Get("display").Str(),
			Visibility: item.Get("visibility").Str(),
			Opacity:    item.Get("opacity").Num(),
			Width:      item.Get("width").Num(),
			Height:     item.Get("height").Num(),
		}
		if !style.Visible() {
			continue
		}
		box := webscrape.NodeBox{
			Top:    item.Get("top").Num(),
			Bottom: item.Get("bottom").Num(),
		}
		if item.Get("chrome").Bool() && webscrape.InChromeZone(box, viewport) {
			continue
		}
		triggers = append(triggers, webscrape.Trigger{
			ID:    int(item.Get("id").Int()),
			Kind:  webscrape.TriggerKind(item.Get("kind").Str()),
			Label: item.Get("label").Str(),
		})
	}
	return triggers, nil
}

// Click fires a previously enumerated trigger.
func (s *Session) Click(ctx context.Context, t webscrape.Trigger) error {
	obj, err := s.page.Context(ctx).Eval(`(id) => {
		const el = document.querySelector('[data-ws-trigger-id="' + id + '"]');
		if (!el) return false;
		el.scrollIntoView({block: 'center'});
		el.click();
		return true;
	}`, t.ID)
	if err != nil {
		return err
	}
	if !obj.Value.Bool() {
		return webscrape.Errorf(webscrape.ENOTFOUND, "trigger %d no longer present", t.ID)
	}
	return nil
}

// Close releases the page.
func (s *Session) Close() error {
	return s.page.Close()
}
