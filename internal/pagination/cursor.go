// Package pagination implements the opaque cursor codec for seek-based
// pagination. A cursor encodes the ordering key of the last row a page
// included; the next page resumes strictly after that key. Cursors are
// self-contained, so concurrent pagination needs no server-side state.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/taskboardhq/taskboard-api/internal/domain"
)

// ErrInvalidCursor is returned when a cursor token fails to decode, encodes
// a different sort mode than the one requested, or carries fields outside
// the valid ordering domain.
var ErrInvalidCursor = errors.New("invalid cursor")

// SortMode identifies the ordering key shape a cursor was produced under.
// A cursor is only valid for the mode that produced it; switching sort modes
// mid-pagination is rejected rather than translated.
type SortMode string

const (
	// SortByID orders by (id) alone — creation order.
	SortByID SortMode = "id"

	// SortByPriority orders by (priority, id); id is the tie-break that
	// keeps pages deterministic when priorities collide.
	SortByPriority SortMode = "priority_id"
)

// Cursor is the decoded ordering key of the last-returned row.
// Priority is only meaningful when Mode is SortByPriority.
type Cursor struct {
	Mode     SortMode
	Priority int
	ID       int64
}

// wireCursor is the serialized token payload. Field names are short on
// purpose: the token travels on every page request.
type wireCursor struct {
	Mode     SortMode `json:"m"`
	Priority int      `json:"p,omitempty"`
	ID       int64    `json:"id"`
}

// Encode serializes the cursor into an opaque URL-safe token.
// The cursor must carry a valid ordering key for its mode.
func Encode(c Cursor) (string, error) {
	if err := validate(c); err != nil {
		return "", err
	}

	payload, err := json.Marshal(wireCursor{
		Mode:     c.Mode,
		Priority: c.Priority,
		ID:       c.ID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(payload), nil
}

// Decode parses an opaque token back into a cursor, verifying it was
// produced under the requested sort mode. Any malformed token, foreign
// mode, or out-of-domain ordering field yields ErrInvalidCursor.
func Decode(token string, mode SortMode) (Cursor, error) {
	payload, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: malformed token", ErrInvalidCursor)
	}

	var wire wireCursor
	if err := json.Unmarshal(payload, &wire); err != nil {
		return Cursor{}, fmt.Errorf("%w: malformed payload", ErrInvalidCursor)
	}

	c := Cursor{Mode: wire.Mode, Priority: wire.Priority, ID: wire.ID}

	if c.Mode != mode {
		return Cursor{}, fmt.Errorf(
			"%w: cursor was created under a different sort mode", ErrInvalidCursor)
	}

	if err := validate(c); err != nil {
		return Cursor{}, err
	}

	return c, nil
}

// validate checks the ordering-domain invariants for the cursor's mode.
func validate(c Cursor) error {
	switch c.Mode {
	case SortByID, SortByPriority:
	default:
		return fmt.Errorf("%w: unknown sort mode %q", ErrInvalidCursor, c.Mode)
	}

	if c.ID < 1 {
		return fmt.Errorf("%w: id out of range", ErrInvalidCursor)
	}

	if c.Mode == SortByPriority {
		if c.Priority < domain.MinPriority || c.Priority > domain.MaxPriority {
			return fmt.Errorf("%w: priority out of range", ErrInvalidCursor)
		}
	} else if c.Priority != 0 {
		return fmt.Errorf("%w: unexpected priority component", ErrInvalidCursor)
	}

	return nil
}
