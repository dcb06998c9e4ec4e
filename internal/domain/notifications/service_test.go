package notifications

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Notification
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Notification{}}
}

func (r *testRepo) Create(ctx context.Context, n Notification) error {
	if n.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[n.ID] = n
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Notification, error) {
	n, ok := r.byID[id]
	if !ok {
		return Notification{}, errRepoNotFound
	}
	return n, nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string, onlyUnread bool) ([]Notification, error) {
	out := make([]Notification, 0)
	for _, n := range r.byID {
		if n.UserID != userID {
			continue
		}
		if onlyUnread && n.Read {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *testRepo) MarkRead(ctx context.Context, id string) error {
	n, ok := r.byID[id]
	if !ok {
		return errRepoNotFound
	}
	n.Read = true
	r.byID[id] = n
	return nil
}

func (r *testRepo) MarkAllRead(ctx context.Context, userID string) error {
	for id, n := range r.byID {
		if n.UserID == userID && !n.Read {
			n.Read = true
			r.byID[id] = n
		}
	}
	return nil
}

func (r *testRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, n := range r.byID {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Emit_CreatesUnread(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	n, err := svc.Emit(context.Background(), "u1", TypeAdoptionStatus, "Your application was approved.", "app-1")
	if err != nil {
		t.Fatalf("Emit returned error: %v", err)
	}
	if n.Read {
		t.Fatalf("expected unread on emit")
	}
	if n.CreatedAt != now || n.RelatedID != "app-1" {
		t.Fatalf("unexpected notification: %#v", n)
	}
}

func TestService_Emit_RejectsUnknownType(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Emit(context.Background(), "u1", Type("SOMETHING_ELSE"), "msg", "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_ListByUser_UnreadFilter(t *testing.T) {
	svc := NewService(newTestRepo())

	n1, _ := svc.Emit(context.Background(), "u1", TypeAdoptionStatus, "first", "a1")
	if _, err := svc.Emit(context.Background(), "u1", TypeRatingReceived, "second", "r1"); err != nil {
		t.Fatalf("Emit error: %v", err)
	}
	if _, err := svc.MarkRead(context.Background(), n1.ID, "u1"); err != nil {
		t.Fatalf("MarkRead error: %v", err)
	}

	all, err := svc.ListByUser(context.Background(), "u1", false)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(all))
	}

	unread, err := svc.ListByUser(context.Background(), "u1", true)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(unread) != 1 || unread[0].Message != "second" {
		t.Fatalf("expected only the unread one, got %#v", unread)
	}
}

func TestService_MarkRead_AddresseeOnly_Idempotent(t *testing.T) {
	svc := NewService(newTestRepo())

	n, _ := svc.Emit(context.Background(), "u1", TypeApplicationViewed, "viewed", "a1")

	if _, err := svc.MarkRead(context.Background(), n.ID, "someone-else"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-addressee, got %v", err)
	}

	read, err := svc.MarkRead(context.Background(), n.ID, "u1")
	if err != nil {
		t.Fatalf("MarkRead error: %v", err)
	}
	if !read.Read {
		t.Fatalf("expected read=true")
	}

	// idempotente
	read2, err := svc.MarkRead(context.Background(), n.ID, "u1")
	if err != nil {
		t.Fatalf("MarkRead #2 error: %v", err)
	}
	if !read2.Read {
		t.Fatalf("expected read=true after idempotent mark")
	}
}

func TestService_MarkRead_Unknown_NotFound(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.MarkRead(context.Background(), "missing", "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_MarkAllRead_And_UnreadCount(t *testing.T) {
	svc := NewService(newTestRepo())

	for i := 0; i < 3; i++ {
		if _, err := svc.Emit(context.Background(), "u1", TypeAdoptionStatus, "msg", ""); err != nil {
			t.Fatalf("Emit error: %v", err)
		}
	}
	if _, err := svc.Emit(context.Background(), "u2", TypeAdoptionStatus, "other user", ""); err != nil {
		t.Fatalf("Emit error: %v", err)
	}

	count, err := svc.UnreadCount(context.Background(), "u1")
	if err != nil {
		t.Fatalf("UnreadCount error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 unread, got %d", count)
	}

	if err := svc.MarkAllRead(context.Background(), "u1"); err != nil {
		t.Fatalf("MarkAllRead error: %v", err)
	}

	count, _ = svc.UnreadCount(context.Background(), "u1")
	if count != 0 {
		t.Fatalf("expected 0 unread after mark-all, got %d", count)
	}

	// Las de otros usuarios no se tocan.
	count, _ = svc.UnreadCount(context.Background(), "u2")
	if count != 1 {
		t.Fatalf("expected u2 untouched, got %d unread", count)
	}
}
