package events

import (
	"errors"
	"testing"
	"time"

	"github.com/go-logr/logr"

	"github.com/garunski/stylestore/pkg/stylestore/database"
)

func setupTestEventDB(t *testing.T) (*database.DB, *Storage) {
	db, err := database.NewTestDB(t)
	if err != nil {
		t.Fatalf("failed to create test DB: %v", err)
	}
	return db, NewStorage(db, logr.Discard())
}

func storeAt(t *testing.T, storage *Storage, event Event, at time.Time) {
	t.Helper()
	event.Timestamp = at
	if err := storage.StoreEvent(event); err != nil {
		t.Fatalf("StoreEvent() error = %v", err)
	}
}

func TestStorage_StoreEventAssignsID(t *testing.T) {
	_, storage := setupTestEventDB(t)

	if err := storage.StoreEvent(Stored("roads", "/data/roads.sld")); err != nil {
		t.Fatalf("StoreEvent() error = %v", err)
	}

	got, err := storage.ListEvents(EventFilters{})
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListEvents() returned %d events, want 1", len(got))
	}
	if got[0].ID == "" {
		t.Error("StoreEvent() did not assign an ID")
	}
	if got[0].Details["location"] != "/data/roads.sld" {
		t.Errorf("Details[location] = %v, want /data/roads.sld", got[0].Details["location"])
	}
}

func TestStorage_ListEventsNoDuplicates(t *testing.T) {
	_, storage := setupTestEventDB(t)
	now := time.Now()

	storeAt(t, storage, Stored("roads", "roads.sld"), now.Add(-2*time.Minute))
	storeAt(t, storage, Removed("roads", "roads.sld"), now.Add(-time.Minute))
	storeAt(t, storage, Failed("rivers", "store", errors.New("disk full")), now)

	got, err := storage.ListEvents(EventFilters{})
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListEvents() returned %d events, want 3", len(got))
	}
	if got[0].TypeName != "rivers" || got[2].Type != EventTypeStored {
		t.Errorf("ListEvents() not ordered newest first: %+v", got)
	}
}

func TestStorage_ListEventsFilters(t *testing.T) {
	_, storage := setupTestEventDB(t)
	now := time.Now()

	storeAt(t, storage, Stored("roads", "roads.sld"), now.Add(-3*time.Hour))
	storeAt(t, storage, Stored("rivers", "rivers.sld"), now.Add(-2*time.Hour))
	storeAt(t, storage, Removed("roads", "roads.sld"), now.Add(-time.Hour))
	storeAt(t, storage, Failed("roads", "store", errors.New("boom")), now)

	tests := []struct {
		name    string
		filters EventFilters
		want    int
	}{
		{name: "by type name", filters: EventFilters{TypeName: "roads"}, want: 3},
		{name: "by kind", filters: EventFilters{Type: EventTypeStored}, want: 2},
		{name: "type name and kind", filters: EventFilters{TypeName: "roads", Type: EventTypeStored}, want: 1},
		{name: "since", filters: EventFilters{Since: now.Add(-90 * time.Minute)}, want: 2},
		{name: "until", filters: EventFilters{Until: now.Add(-90 * time.Minute)}, want: 2},
		{name: "limit", filters: EventFilters{Limit: 1}, want: 1},
		{name: "offset", filters: EventFilters{Offset: 3}, want: 1},
		{name: "offset past end", filters: EventFilters{Offset: 10}, want: 0},
		{name: "unknown type name", filters: EventFilters{TypeName: "lakes"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := storage.ListEvents(tt.filters)
			if err != nil {
				t.Fatalf("ListEvents() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("ListEvents() returned %d events, want %d", len(got), tt.want)
			}
		})
	}
}

func TestStorage_TypeNamePrefixIsolation(t *testing.T) {
	_, storage := setupTestEventDB(t)

	storeAt(t, storage, Stored("roads", "roads.sld"), time.Now())
	storeAt(t, storage, Stored("roads_major", "roads_major.sld"), time.Now())

	got, err := storage.GetEventsByTypeName("roads", 10)
	if err != nil {
		t.Fatalf("GetEventsByTypeName() error = %v", err)
	}
	if len(got) != 1 || got[0].TypeName != "roads" {
		t.Errorf("GetEventsByTypeName(roads) = %+v, want only roads", got)
	}
}

func TestStorage_GetRecentErrors(t *testing.T) {
	_, storage := setupTestEventDB(t)

	storeAt(t, storage, Stored("roads", "roads.sld"), time.Now())
	storeAt(t, storage, Failed("roads", "decode", errors.New("bad xml")), time.Now())

	got, err := storage.GetRecentErrors(10)
	if err != nil {
		t.Fatalf("GetRecentErrors() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("GetRecentErrors() returned %d events, want 1", len(got))
	}
	if got[0].Error != "bad xml" || got[0].Operation != "decode" {
		t.Errorf("GetRecentErrors()[0] = %+v", got[0])
	}
}

func TestStorage_CleanupOldEvents(t *testing.T) {
	db, storage := setupTestEventDB(t)
	now := time.Now()

	storeAt(t, storage, Stored("roads", "roads.sld"), now.Add(-48*time.Hour))
	storeAt(t, storage, Failed("roads", "store", errors.New("boom")), now.Add(-47*time.Hour))
	storeAt(t, storage, Stored("rivers", "rivers.sld"), now)

	if err := storage.CleanupOldEvents(now.Add(-24 * time.Hour)); err != nil {
		t.Fatalf("CleanupOldEvents() error = %v", err)
	}

	got, err := storage.ListEvents(EventFilters{})
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if len(got) != 1 || got[0].TypeName != "rivers" {
		t.Errorf("ListEvents() after cleanup = %+v, want only rivers", got)
	}

	keys, err := db.Keys(byStylePrefix + "roads/")
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("index keys for roads left behind: %v", keys)
	}
	keys, err = db.Keys(byTypePrefix + string(EventTypeError) + "/")
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("index keys for errors left behind: %v", keys)
	}
}

func TestStorage_CleanupRemovesCorruptEntries(t *testing.T) {
	db, storage := setupTestEventDB(t)

	if err := db.Set(allPrefix+"00000000000000000001/broken", []byte("{not json")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := storage.CleanupOldEvents(time.Now()); err != nil {
		t.Fatalf("CleanupOldEvents() error = %v", err)
	}
	ok, err := db.Has(allPrefix + "00000000000000000001/broken")
	if err != nil {
		t.Fatalf("Has() error = %v", err)
	}
	if ok {
		t.Error("corrupt event survived cleanup")
	}
}

func TestStorage_CleanupRemovesIndexOfCorruptEntries(t *testing.T) {
	db, storage := setupTestEventDB(t)

	suffix := "00000000000000000002/broken"
	keys := []string{
		allPrefix + suffix,
		byStylePrefix + "roads/" + suffix,
		byTypePrefix + string(EventTypeStored) + "/" + suffix,
	}
	for _, key := range keys {
		if err := db.Set(key, []byte("{not json")); err != nil {
			t.Fatalf("Set(%s) error = %v", key, err)
		}
	}

	kept := Stored("roads", "styles/roads")
	if err := storage.StoreEvent(kept); err != nil {
		t.Fatalf("StoreEvent() error = %v", err)
	}

	if err := storage.CleanupOldEvents(time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("CleanupOldEvents() error = %v", err)
	}

	for _, key := range keys {
		ok, err := db.Has(key)
		if err != nil {
			t.Fatalf("Has(%s) error = %v", key, err)
		}
		if ok {
			t.Errorf("%s survived cleanup", key)
		}
	}

	got, err := storage.GetEventsByTypeName("roads", 10)
	if err != nil {
		t.Fatalf("GetEventsByTypeName() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("GetEventsByTypeName() returned %d events, want the one recent event", len(got))
	}
}

func TestIndexSuffix(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{key: byStylePrefix + "roads/00000000000000000001/id", want: "00000000000000000001/id"},
		{key: byTypePrefix + "error/00000000000000000001/id", want: "00000000000000000001/id"},
		{key: "plain", want: ""},
	}
	for _, tt := range tests {
		if got := indexSuffix(tt.key); got != tt.want {
			t.Errorf("indexSuffix(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
