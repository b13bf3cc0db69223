package redis

import (
	"context"
	"math"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) (*redislib.Client, *miniredis.Miniredis, context.Context) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr, context.Background()
}

func TestLocationStore_UpdateAndRead(t *testing.T) {
	client, _, ctx := newTestClient(t)
	store := NewLocationStore(client)

	if err := store.UpdateLocation(ctx, "mech-01", 43.4643, -80.5204); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := store.UpdateLocation(ctx, "mech-02", 43.6532, -79.3832); err != nil {
		t.Fatalf("update: %v", err)
	}

	positions, err := store.AllLocations(ctx)
	if err != nil {
		t.Fatalf("all locations: %v", err)
	}
	if len(positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(positions))
	}

	byID := make(map[string]MechanicPosition)
	for _, p := range positions {
		byID[p.MechanicID] = p
	}
	got, ok := byID["mech-01"]
	if !ok {
		t.Fatal("expected mech-01 in the roster")
	}
	// Geo coordinates round-trip with limited precision.
	if math.Abs(got.Lat-43.4643) > 0.001 || math.Abs(got.Lng-(-80.5204)) > 0.001 {
		t.Errorf("unexpected mech-01 position: %+v", got)
	}
}

func TestLocationStore_FindNearbySortsClosestFirst(t *testing.T) {
	client, _, ctx := newTestClient(t)
	store := NewLocationStore(client)

	// Waterloo, Toronto, Ottawa.
	store.UpdateLocation(ctx, "far", 45.4215, -75.6972)
	store.UpdateLocation(ctx, "near", 43.4643, -80.5204)
	store.UpdateLocation(ctx, "mid", 43.6532, -79.3832)

	// Search from Kitchener, next to Waterloo.
	positions, err := store.FindNearbyMechanics(ctx, 43.4516, -80.4925, 600)
	if err != nil {
		t.Fatalf("find nearby: %v", err)
	}
	if len(positions) != 3 {
		t.Fatalf("expected 3 positions, got %d", len(positions))
	}
	if positions[0].MechanicID != "near" {
		t.Errorf("expected the closest mechanic first, got %q", positions[0].MechanicID)
	}
	if positions[2].MechanicID != "far" {
		t.Errorf("expected the farthest mechanic last, got %q", positions[2].MechanicID)
	}
}

func TestLocationStore_Remove(t *testing.T) {
	client, _, ctx := newTestClient(t)
	store := NewLocationStore(client)

	store.UpdateLocation(ctx, "mech-01", 43.4643, -80.5204)
	if err := store.RemoveLocation(ctx, "mech-01"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	positions, err := store.AllLocations(ctx)
	if err != nil {
		t.Fatalf("all locations: %v", err)
	}
	if len(positions) != 0 {
		t.Errorf("expected an empty roster, got %+v", positions)
	}
}

func TestLockStore_AcquireRelease(t *testing.T) {
	client, mr, ctx := newTestClient(t)
	store := NewLockStore(client)

	ok, err := store.AcquireJobLock(ctx, "job-1", 10*time.Second)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !ok {
		t.Fatal("expected the first acquire to succeed")
	}

	ok, err = store.AcquireJobLock(ctx, "job-1", 10*time.Second)
	if err != nil {
		t.Fatalf("second acquire: %v", err)
	}
	if ok {
		t.Error("expected the second acquire to be rejected")
	}

	if err := store.ReleaseJobLock(ctx, "job-1"); err != nil {
		t.Fatalf("release: %v", err)
	}
	ok, _ = store.AcquireJobLock(ctx, "job-1", 10*time.Second)
	if !ok {
		t.Error("expected the lock to be free after release")
	}

	// The claim lock expires on its own.
	mr.FastForward(11 * time.Second)
	ok, _ = store.AcquireJobLock(ctx, "job-1", 10*time.Second)
	if !ok {
		t.Error("expected the lock to expire after its TTL")
	}
}

func TestSessionStore_RoundTrip(t *testing.T) {
	client, mr, ctx := newTestClient(t)
	store := NewSessionStore(client)

	if err := store.SaveSession(ctx, "tok-1", "admin-01", time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}

	userID, err := store.GetSession(ctx, "tok-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if userID != "admin-01" {
		t.Errorf("expected admin-01, got %q", userID)
	}

	// Unknown tokens resolve to an empty id, not an error.
	userID, err = store.GetSession(ctx, "nope")
	if err != nil {
		t.Fatalf("get unknown: %v", err)
	}
	if userID != "" {
		t.Errorf("expected an empty id for an unknown token, got %q", userID)
	}

	if err := store.DeleteSession(ctx, "tok-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	userID, _ = store.GetSession(ctx, "tok-1")
	if userID != "" {
		t.Errorf("expected an empty id after delete, got %q", userID)
	}

	// Tokens expire with their TTL.
	store.SaveSession(ctx, "tok-2", "admin-01", time.Minute)
	mr.FastForward(2 * time.Minute)
	userID, _ = store.GetSession(ctx, "tok-2")
	if userID != "" {
		t.Errorf("expected an empty id after expiry, got %q", userID)
	}
}
