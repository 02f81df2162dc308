package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	webscrape "github.com/codermillat/WebScrape-sub000"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ webscrape.CaptureService = (*CaptureService)(nil)

// CaptureService implements webscrape.CaptureService using SQLite.
type CaptureService struct {
	db *DB
}

// NewCaptureService creates a new CaptureService.
func NewCaptureService(db *DB) *CaptureService {
	return &CaptureService{db: db}
}

// AddCapture records a capture of text for the page identified by url.
func (s *CaptureService) AddCapture(ctx context.Context, url, title, label, text string, opts webscrape.AddCaptureOptions) (*webscrape.AddCaptureResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, webscrape.Errorf(webscrape.EINVALID, "capture text required")
	}

	key := webscrape.NormalizePageKey(url)
	sig := webscrape.Signature(text)
	sig2 := webscrape.StableSignature(text)

	if !opts.Force {
		dup, err := s.isDuplicate(ctx, key, sig, sig2)
		if err != nil {
			return nil, err
		}
		if dup {
			return &webscrape.AddCaptureResult{PageKey: key, Duplicate: true}, nil
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	// Upsert the page, refreshing its title and update time.
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO pages (key, url, title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET title = excluded.title, updated_at = excluded.updated_at
	`, key, url, title, now, now); err != nil {
		return nil, err
	}

	var position int
	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(position), -1) + 1 FROM captures WHERE page_key = ?
	`, key).Scan(&position); err != nil {
		return nil, err
	}

	capture := &webscrape.Capture{
		ID:       uuid.New().String(),
		PageKey:  key,
		Label:    label,
		Preview:  webscrape.Preview(text),
		Length:   len(text),
		Sig:      sig,
		Sig2:     sig2,
		Selected: true,
	}
	if err := capture.Validate(); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO captures (id, page_key, label, preview, length, sig, sig2, selected, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
	`, capture.ID, key, label, capture.Preview, capture.Length, sig, sig2, position, now); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO capture_bodies (capture_id, kind, body) VALUES (?, ?, ?)
	`, capture.ID, webscrape.BodyKindRaw, text); err != nil {
		return nil, err
	}
	if opts.LLMBody != "" {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO capture_bodies (capture_id, kind, body) VALUES (?, ?, ?)
		`, capture.ID, webscrape.BodyKindLLM, opts.LLMBody); err != nil {
			return nil, err
		}
	}

	// Register both signatures globally so other pages reject the same
	// content. Forced inserts may collide, so ignore conflicts.
	for _, g := range []string{sig, sig2} {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO signatures (sig, url, created_at) VALUES (?, ?, ?)
			ON CONFLICT(sig) DO NOTHING
		`, g, url, now); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &webscrape.AddCaptureResult{PageKey: key, CaptureID: capture.ID}, nil
}

// isDuplicate reports whether either signature already exists on the page
// or in the global registry.
func (s *CaptureService) isDuplicate(ctx context.Context, key, sig, sig2 string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM captures
		WHERE page_key = ? AND (sig = ? OR sig2 = ?)
	`, key, sig, sig2).Scan(&n)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM signatures WHERE sig IN (?, ?)
	`, sig, sig2).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindPages returns all pages with their captures, most recently updated
// first.
func (s *CaptureService) FindPages(ctx context.Context) ([]*webscrape.Page, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, url, title, page_sig, collapsed, created_at, updated_at
		FROM pages
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*webscrape.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, page := range pages {
		page.Captures, err = s.findCaptures(ctx, page.Key)
		if err != nil {
			return nil, err
		}
	}

	return pages, nil
}

// FindPageByKey returns one page with its captures.
func (s *CaptureService) FindPageByKey(ctx context.Context, key string) (*webscrape.Page, error) {
	var page webscrape.Page
	var collapsed int
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT key, url, title, page_sig, collapsed, created_at, updated_at
		FROM pages
		WHERE key = ?
	`, key).Scan(&page.Key, &page.URL, &page.Title, &page.PageSig, &collapsed, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, webscrape.Errorf(webscrape.ENOTFOUND, "page not found")
	}
	if err != nil {
		return nil, err
	}

	page.Collapsed = collapsed != 0
	if page.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if page.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	page.Captures, err = s.findCaptures(ctx, key)
	if err != nil {
		return nil, err
	}

	return &page, nil
}

// findCaptures returns a page's captures in insertion order.
func (s *CaptureService) findCaptures(ctx context.Context, key string) ([]*webscrape.Capture, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, page_key, label, preview, length, sig, sig2, selected, created_at
		FROM captures
		WHERE page_key = ?
		ORDER BY position ASC
	`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var captures []*webscrape.Capture
	for rows.Next() {
		var c webscrape.Capture
		var selected int
		var createdAt string

		if err := rows.Scan(&c.ID, &c.PageKey, &c.Label, &c.Preview, &c.Length,
			&c.Sig, &c.Sig2, &selected, &createdAt); err != nil {
			return nil, err
		}

		c.Selected = selected != 0
		if c.Timestamp, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		captures = append(captures, &c)
	}

	return captures, rows.Err()
}

// CaptureBody returns the stored body of a capture for the given kind.
func (s *CaptureService) CaptureBody(ctx context.Context, captureID, kind string) (string, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `
		SELECT body FROM capture_bodies WHERE capture_id = ? AND kind = ?
	`, captureID, kind).Scan(&body)

	if err == sql.ErrNoRows {
		return "", webscrape.Errorf(webscrape.ENOTFOUND, "capture body not found")
	}
	if err != nil {
		return "", err
	}
	return body, nil
}

// SetSelected sets the selection state of a capture.
func (s *CaptureService) SetSelected(ctx context.Context, captureID string, selected bool) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE captures SET selected = ? WHERE id = ?
	`, boolToInt(selected), captureID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return webscrape.Errorf(webscrape.ENOTFOUND, "capture not found")
	}
	return nil
}

// CombineSelected concatenates the full raw bodies of a page's selected
// captures in order, appending a source trailer if not already present.
func (s *CaptureService) CombineSelected(ctx context.Context, pageKey string) (string, error) {
	page, err := s.FindPageByKey(ctx, pageKey)
	if err != nil {
		return "", err
	}

	var parts []string
	for _, c := range page.Captures {
		if !c.Selected {
			continue
		}
		body, err := s.CaptureBody(ctx, c.ID, webscrape.BodyKindRaw)
		if err != nil {
			return "", err
		}
		parts = append(parts, body)
	}

	combined := strings.Join(parts, "\n\n")
	if !strings.Contains(combined, "Source: ") && page.URL != "" {
		combined += "\n\nSource: " + page.URL
	}
	return combined, nil
}

// DeleteCapture removes a capture, its bodies, and its global signatures.
func (s *CaptureService) DeleteCapture(ctx context.Context, captureID string) error {
	var sig, sig2 string
	err := s.db.QueryRowContext(ctx, `
		SELECT sig, sig2 FROM captures WHERE id = ?
	`, captureID).Scan(&sig, &sig2)

	if err == sql.ErrNoRows {
		return webscrape.Errorf(webscrape.ENOTFOUND, "capture not found")
	}
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM captures WHERE id = ?", captureID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM capture_bodies WHERE capture_id = ?", captureID); err != nil {
		return err
	}
	// Release the signatures so the same content can be captured again.
	if _, err := tx.ExecContext(ctx, "DELETE FROM signatures WHERE sig IN (?, ?)", sig, sig2); err != nil {
		return err
	}

	return tx.Commit()
}

// DeletePage removes a page with all its captures, bodies and global
// signatures.
func (s *CaptureService) DeletePage(ctx context.Context, key string) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sig, sig2 FROM captures WHERE page_key = ?
	`, key)
	if err != nil {
		return err
	}
	defer rows.Close()

	var ids, sigs []string
	for rows.Next() {
		var id, sig, sig2 string
		if err := rows.Scan(&id, &sig, &sig2); err != nil {
			return err
		}
		ids = append(ids, id)
		sigs = append(sigs, sig, sig2)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "DELETE FROM pages WHERE key = ?", key)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return webscrape.Errorf(webscrape.ENOTFOUND, "page not found")
	}

	// Captures cascade with the page; bodies and signatures do not.
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, "DELETE FROM capture_bodies WHERE capture_id = ?", id); err != nil {
			return err
		}
	}
	for _, sig := range sigs {
		if _, err := tx.ExecContext(ctx, "DELETE FROM signatures WHERE sig = ?", sig); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// scanPage scans a page row without its captures.
func scanPage(rows *sql.Rows) (*webscrape.Page, error) {
	var page webscrape.Page
	var collapsed int
	var createdAt, updatedAt string

	if err := rows.Scan(&page.Key, &page.URL, &page.Title, &page.PageSig,
		&collapsed, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	page.Collapsed = collapsed != 0
	var err error
	if page.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if page.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return &page, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
