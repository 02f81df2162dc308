package sweep_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	webscrape "github.com/codermillat/WebScrape-sub000"
	"github.com/codermillat/WebScrape-sub000/goquery"
	"github.com/codermillat/WebScrape-sub000/mock"
	"github.com/codermillat/WebScrape-sub000/sweep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noSleep(context.Context, time.Duration) {}

func newOrchestrator(session webscrape.PageSession) *sweep.Orchestrator {
	return &sweep.Orchestrator{
		Sessions: &mock.SessionOpener{
			OpenFn: func(ctx context.Context) (webscrape.PageSession, error) {
				return session, nil
			},
		},
		Walker: goquery.NewWalker(),
		Sleep:  noSleep,
	}
}

// paginatedSession simulates a server-rendered course list whose pagination
// control replaces itself on every page.
func paginatedSession(pages int) (*mock.PageSession, *int) {
	page := 1
	htmlFor := func(p int) string {
		return fmt.Sprintf(`<html><body><main>
<h1>Courses</h1>
<p>Fee page %d: ₹%d0,000 per year</p>
</main></body></html>`, p, p)
	}

	session := &mock.PageSession{
		NavigateFn: func(ctx context.Context, url string) error { return nil },
		MetricsFn: func(ctx context.Context) (float64, float64, error) {
			return 3000, 900, nil
		},
		ScrollToFn: func(ctx context.Context, y float64) error { return nil },
		HTMLFn: func(ctx context.Context) (string, error) {
			return htmlFor(page), nil
		},
		TriggersFn: func(ctx context.Context) ([]webscrape.Trigger, error) {
			if page >= pages {
				return nil, nil
			}
			return []webscrape.Trigger{
				{ID: 1, Kind: webscrape.TriggerPagination, Label: fmt.Sprintf("Page %d", page+1)},
			}, nil
		},
		ClickFn: func(ctx context.Context, t webscrape.Trigger) error {
			page++
			return nil
		},
	}
	return session, &page
}

func TestOrchestrator_Sweep(t *testing.T) {
	t.Parallel()

	t.Run("pagination pass completes and merges pages", func(t *testing.T) {
		t.Parallel()

		session, page := paginatedSession(3)
		o := newOrchestrator(session)

		res, err := o.Sweep(context.Background(), "https://example.edu/courses", webscrape.SweepConfig{})

		require.NoError(t, err)
		assert.Equal(t, webscrape.SweepCompleted, res.Termination)
		assert.Equal(t, 3, *page)
		assert.Equal(t, 2, res.Reveals)
		assert.Equal(t, 2, res.Iterations)

		assert.Contains(t, res.Lines, "H1: Courses")
		assert.Contains(t, res.Lines, "Fee page 1: ₹10,000 per year")
		assert.Contains(t, res.Lines, "Fee page 2: ₹20,000 per year")
		assert.Contains(t, res.Lines, "Fee page 3: ₹30,000 per year")

		// The shared heading merges to a single line across pages.
		count := 0
		for _, l := range res.Lines {
			if l == "H1: Courses" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("stalls after consecutive unproductive reveals", func(t *testing.T) {
		t.Parallel()

		static := `<html><body><main><h1>Fees</h1><p>Tuition ₹50,000 per year</p></main></body></html>`
		session := &mock.PageSession{
			NavigateFn: func(ctx context.Context, url string) error { return nil },
			MetricsFn: func(ctx context.Context) (float64, float64, error) {
				return 900, 900, nil
			},
			ScrollToFn: func(ctx context.Context, y float64) error { return nil },
			HTMLFn: func(ctx context.Context) (string, error) {
				return static, nil
			},
			TriggersFn: func(ctx context.Context) ([]webscrape.Trigger, error) {
				return []webscrape.Trigger{
					{ID: 1, Kind: webscrape.TriggerAccordion, Label: "Hostel"},
					{ID: 2, Kind: webscrape.TriggerAccordion, Label: "Transport"},
					{ID: 3, Kind: webscrape.TriggerAccordion, Label: "Exam"},
				}, nil
			},
			ClickFn: func(ctx context.Context, t webscrape.Trigger) error { return nil },
		}
		o := newOrchestrator(session)

		res, err := o.Sweep(context.Background(), "https://example.edu/fees",
			webscrape.SweepConfig{MutationWait: time.Millisecond})

		require.NoError(t, err)
		assert.Equal(t, webscrape.SweepStalled, res.Termination)
		assert.Equal(t, 0, res.Reveals)
		assert.Equal(t, webscrape.SweepStalledLimit, res.Iterations)
		assert.Contains(t, res.Lines, "Tuition ₹50,000 per year")
	})

	t.Run("safety counter bounds runaway pagination", func(t *testing.T) {
		t.Parallel()

		counter := 0
		session := &mock.PageSession{
			NavigateFn: func(ctx context.Context, url string) error { return nil },
			MetricsFn: func(ctx context.Context) (float64, float64, error) {
				return 900, 900, nil
			},
			ScrollToFn: func(ctx context.Context, y float64) error { return nil },
			HTMLFn: func(ctx context.Context) (string, error) {
				return fmt.Sprintf(`<html><body><main><p>Listing %d with fee ₹%d</p></main></body></html>`, counter, counter), nil
			},
			TriggersFn: func(ctx context.Context) ([]webscrape.Trigger, error) {
				return []webscrape.Trigger{
					{ID: 1, Kind: webscrape.TriggerPagination, Label: fmt.Sprintf("Page %d", counter+2)},
				}, nil
			},
			ClickFn: func(ctx context.Context, t webscrape.Trigger) error {
				counter++
				return nil
			},
		}
		o := newOrchestrator(session)

		res, err := o.Sweep(context.Background(), "https://example.edu/courses",
			webscrape.SweepConfig{Limit: 3})

		require.NoError(t, err)
		assert.Equal(t, webscrape.SweepLimitExceeded, res.Termination)
		assert.Equal(t, 3, res.Iterations)
		assert.Equal(t, 3, res.Reveals)
	})

	t.Run("preload scrolls to the bottom and back", func(t *testing.T) {
		t.Parallel()

		var offsets []float64
		session, _ := paginatedSession(1)
		session.ScrollToFn = func(ctx context.Context, y float64) error {
			offsets = append(offsets, y)
			return nil
		}
		o := newOrchestrator(session)

		_, err := o.Sweep(context.Background(), "https://example.edu/courses", webscrape.SweepConfig{})

		require.NoError(t, err)
		require.NotEmpty(t, offsets)
		assert.Equal(t, 810.0, offsets[0])
		assert.Equal(t, 0.0, offsets[len(offsets)-1])
		assert.GreaterOrEqual(t, len(offsets), 4)
	})

	t.Run("navigation failure aborts the sweep", func(t *testing.T) {
		t.Parallel()

		session, _ := paginatedSession(1)
		session.NavigateFn = func(ctx context.Context, url string) error {
			return webscrape.Errorf(webscrape.EUNAVAILABLE, "page load failed")
		}
		o := newOrchestrator(session)

		_, err := o.Sweep(context.Background(), "https://example.edu/courses", webscrape.SweepConfig{})

		require.Error(t, err)
		assert.Equal(t, webscrape.EUNAVAILABLE, webscrape.ErrorCode(err))
	})

	t.Run("session open failure", func(t *testing.T) {
		t.Parallel()

		o := &sweep.Orchestrator{
			Sessions: &mock.SessionOpener{
				OpenFn: func(ctx context.Context) (webscrape.PageSession, error) {
					return nil, webscrape.Errorf(webscrape.EUNAVAILABLE, "browser unavailable")
				},
			},
			Walker: goquery.NewWalker(),
			Sleep:  noSleep,
		}

		_, err := o.Sweep(context.Background(), "https://example.edu/courses", webscrape.SweepConfig{})

		require.Error(t, err)
	})

	t.Run("cancelled context stops between transitions", func(t *testing.T) {
		t.Parallel()

		session, _ := paginatedSession(100)
		o := newOrchestrator(session)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := o.Sweep(ctx, "https://example.edu/courses", webscrape.SweepConfig{})

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestOrchestrator_DrillDown(t *testing.T) {
	t.Parallel()

	// A grid page where each course hides its fee behind a toggle. With
	// DrillDown the toggles expand before pagination advances.
	expanded := false
	page := 1
	htmlFor := func() string {
		if !expanded {
			return fmt.Sprintf(`<html><body><main><p>Course grid page %d</p></main></body></html>`, page)
		}
		return fmt.Sprintf(`<html><body><main>
<p>Course grid page %d</p>
<p>B.Tech fee ₹1,20,000 per year (page %d)</p>
</main></body></html>`, page, page)
	}

	session := &mock.PageSession{
		NavigateFn: func(ctx context.Context, url string) error { return nil },
		MetricsFn: func(ctx context.Context) (float64, float64, error) {
			return 900, 900, nil
		},
		ScrollToFn: func(ctx context.Context, y float64) error { return nil },
		HTMLFn: func(ctx context.Context) (string, error) {
			return htmlFor(), nil
		},
		TriggersFn: func(ctx context.Context) ([]webscrape.Trigger, error) {
			if page >= 2 {
				return nil, nil
			}
			return []webscrape.Trigger{
				{ID: 1, Kind: webscrape.TriggerItemToggle, Label: "View fee"},
				{ID: 2, Kind: webscrape.TriggerPagination, Label: "Next"},
			}, nil
		},
		ClickFn: func(ctx context.Context, t webscrape.Trigger) error {
			if t.Kind == webscrape.TriggerItemToggle {
				expanded = true
				return nil
			}
			page++
			expanded = false
			return nil
		},
	}

	o := newOrchestrator(session)

	res, err := o.Sweep(context.Background(), "https://example.edu/courses",
		webscrape.SweepConfig{DrillDown: true})

	require.NoError(t, err)
	assert.Equal(t, webscrape.SweepCompleted, res.Termination)
	assert.Contains(t, res.Lines, "B.Tech fee ₹1,20,000 per year (page 1)")
	assert.Contains(t, res.Lines, "Course grid page 2")
	assert.Equal(t, 2, res.Reveals)
}
