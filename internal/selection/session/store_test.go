package session

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"catalogo_backend/internal/selection/engine"
	"catalogo_backend/platform/logger"
)

func testCatalog() engine.Catalog {
	services := []engine.Item{
		{Kind: engine.KindService, ID: uuid.New(), Name: "Consultoría", PriceCents: 10000},
	}
	return engine.NewCatalog(uuid.New(), "Marketing", services, nil)
}

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore(time.Hour, logger.New("development"))
	defer store.Close()

	created, err := store.Create(testCatalog())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if created.Token() == "" {
		t.Fatal("session token must not be empty")
	}

	got, err := store.Get(created.Token())
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got != created {
		t.Fatal("get must return the same session instance")
	}
}

func TestStoreUnknownToken(t *testing.T) {
	store := NewStore(time.Hour, logger.New("development"))
	defer store.Close()

	if _, err := store.Get("no-such-token"); err == nil {
		t.Fatal("unknown token must return an error")
	}
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(10*time.Millisecond, logger.New("development"))
	defer store.Close()

	created, err := store.Create(testCatalog())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	time.Sleep(25 * time.Millisecond)

	if _, err := store.Get(created.Token()); err == nil {
		t.Fatal("expired session must be gone")
	}
	if store.Len() != 0 {
		t.Fatalf("expired session should be removed lazily, len = %d", store.Len())
	}
}

func TestStoreGetSlidesExpiry(t *testing.T) {
	store := NewStore(40*time.Millisecond, logger.New("development"))
	defer store.Close()

	created, err := store.Create(testCatalog())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	// Keep touching the session past the original TTL.
	for i := 0; i < 3; i++ {
		time.Sleep(25 * time.Millisecond)
		if _, err := store.Get(created.Token()); err != nil {
			t.Fatalf("touched session expired at step %d: %v", i, err)
		}
	}
}

func TestSessionToggleRejectsUnknownKey(t *testing.T) {
	store := NewStore(time.Hour, logger.New("development"))
	defer store.Close()

	session, err := store.Create(testCatalog())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if _, err := session.Toggle("service-" + uuid.NewString()); err == nil {
		t.Fatal("toggling a key outside the snapshot must fail")
	}
}

func TestSessionSnapshotConsistency(t *testing.T) {
	store := NewStore(time.Hour, logger.New("development"))
	defer store.Close()

	catalog := testCatalog()
	session, err := store.Create(catalog)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	key := catalog.Services[0].Key()
	if _, err := session.Toggle(key); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	session.ChangeQuantity(key, 2)
	session.UpdateView(func(v *engine.ViewState) { v.UseQuantities = true })

	snap := session.Snapshot()
	if len(snap.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(snap.Entries))
	}
	if snap.Entries[0].Quantity != 3 {
		t.Fatalf("quantity = %d, want 3", snap.Entries[0].Quantity)
	}
	if snap.TotalCents != 30000 {
		t.Fatalf("total = %d, want 30000", snap.TotalCents)
	}
}
