package ratings

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-adoption-market/internal/domain/notifications"
)

// -------------------------
// Fakes (in-memory)
// -------------------------

type testRepo struct {
	byID      map[string]Rating
	existsErr error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Rating{}}
}

func (r *testRepo) Create(ctx context.Context, rt Rating) error {
	if rt.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[rt.ID] = rt
	return nil
}

func (r *testRepo) Exists(ctx context.Context, applicationID, adopterUserID string) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	for _, rt := range r.byID {
		if rt.ApplicationID == applicationID && rt.AdopterUserID == adopterUserID {
			return true, nil
		}
	}
	return false, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Rating, error) {
	out := make([]Rating, 0)
	for _, rt := range r.byID {
		if rt.OwnerUserID == ownerUserID {
			out = append(out, rt)
		}
	}
	return out, nil
}

// testApps mapea applicationID -> ownerUserID.
type testApps struct {
	owners map[string]string
}

func (a *testApps) OwnerOfApplication(ctx context.Context, applicationID string) (string, error) {
	owner, ok := a.owners[applicationID]
	if !ok {
		return "", errors.New("apps: not found")
	}
	return owner, nil
}

type testNotifier struct {
	sent []notifications.Notification
	fail bool
}

func (n *testNotifier) Notify(ctx context.Context, userID string, t notifications.Type, message, relatedID string) (notifications.Notification, error) {
	if n.fail {
		return notifications.Notification{}, errors.New("notifier: down")
	}
	out := notifications.Notification{UserID: userID, Type: t, Message: message, RelatedID: relatedID}
	n.sent = append(n.sent, out)
	return out, nil
}

func newTestService() (*Service, *testRepo, *testApps, *testNotifier) {
	repo := newTestRepo()
	apps := &testApps{owners: map[string]string{}}
	notifier := &testNotifier{}
	svc := NewService(repo, apps, notifier, nil)
	return svc, repo, apps, notifier
}

// -------------------------
// Tests
// -------------------------

func TestService_Submit_PersistsAndNotifiesOwner(t *testing.T) {
	svc, _, apps, notifier := newTestService()
	apps.owners["app-1"] = "owner-1"

	now := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	rt, err := svc.Submit(context.Background(), "app-1", "adopter-1", "Great owner, very responsive.", 5)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if rt.OwnerUserID != "owner-1" {
		t.Fatalf("expected owner derived from application, got %s", rt.OwnerUserID)
	}
	if rt.Stars != 5 || rt.CreatedAt != now {
		t.Fatalf("unexpected rating: %#v", rt)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].UserID != "owner-1" || notifier.sent[0].Type != notifications.TypeRatingReceived {
		t.Fatalf("expected RATING_RECEIVED to owner, got %#v", notifier.sent)
	}
}

func TestService_Submit_StarsOutOfRange_NothingPersisted(t *testing.T) {
	svc, repo, apps, _ := newTestService()
	apps.owners["app-1"] = "owner-1"

	for _, stars := range []int{0, -1, 6, 100} {
		_, err := svc.Submit(context.Background(), "app-1", "adopter-1", "x", stars)
		if !errors.Is(err, ErrInvalidStars) {
			t.Fatalf("stars=%d: expected ErrInvalidStars, got %v", stars, err)
		}
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected nothing persisted for invalid stars")
	}
}

func TestService_Submit_UnknownApplication_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Submit(context.Background(), "app-missing", "adopter-1", "x", 4)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Submit_Duplicate_Conflict(t *testing.T) {
	svc, repo, apps, _ := newTestService()
	apps.owners["app-1"] = "owner-1"

	if _, err := svc.Submit(context.Background(), "app-1", "adopter-1", "first", 4); err != nil {
		t.Fatalf("Submit #1 error: %v", err)
	}
	_, err := svc.Submit(context.Background(), "app-1", "adopter-1", "second", 2)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected a single persisted rating, got %d", len(repo.byID))
	}
}

func TestService_Submit_ExistsFailure_IsPersistenceError(t *testing.T) {
	svc, repo, apps, _ := newTestService()
	apps.owners["app-1"] = "owner-1"
	repo.existsErr = errors.New("store down")

	_, err := svc.Submit(context.Background(), "app-1", "adopter-1", "x", 3)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestService_Submit_NotifierDown_RatingStillPersisted(t *testing.T) {
	svc, repo, apps, notifier := newTestService()
	apps.owners["app-1"] = "owner-1"
	notifier.fail = true

	rt, err := svc.Submit(context.Background(), "app-1", "adopter-1", "x", 4)
	if err != nil {
		t.Fatalf("expected submit to succeed despite notifier failure, got %v", err)
	}
	if _, ok := repo.byID[rt.ID]; !ok {
		t.Fatalf("expected rating persisted")
	}
}

func TestService_AverageForOwner(t *testing.T) {
	svc, _, apps, _ := newTestService()
	apps.owners["app-1"] = "owner-1"
	apps.owners["app-2"] = "owner-1"

	if _, err := svc.Submit(context.Background(), "app-1", "adopter-1", "", 5); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if _, err := svc.Submit(context.Background(), "app-2", "adopter-2", "", 2); err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	avg, count, err := svc.AverageForOwner(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("AverageForOwner error: %v", err)
	}
	if count != 2 || avg != 3.5 {
		t.Fatalf("expected avg 3.5 over 2 ratings, got %v over %d", avg, count)
	}

	avg, count, err = svc.AverageForOwner(context.Background(), "owner-without-ratings")
	if err != nil {
		t.Fatalf("AverageForOwner error: %v", err)
	}
	if count != 0 || avg != 0 {
		t.Fatalf("expected zero values without ratings, got %v over %d", avg, count)
	}
}
