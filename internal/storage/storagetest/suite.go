// Package storagetest holds behavioural tests shared by every
// storage.Provider implementation.
package storagetest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/julianstephens/habitboard/internal/calendar"
	apperrors "github.com/julianstephens/habitboard/internal/errors"
	"github.com/julianstephens/habitboard/internal/models"
	"github.com/julianstephens/habitboard/internal/storage"
)

// Factory returns an initialized, empty-enough store. Tests create their
// own uniquely named users so a shared database can be reused.
type Factory func(t *testing.T) storage.Provider

// Run executes the shared provider tests against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("Habits", func(t *testing.T) { testHabits(t, newStore(t)) })
	t.Run("Toggle", func(t *testing.T) { testToggle(t, newStore(t)) })
	t.Run("ConcurrentToggle", func(t *testing.T) { testConcurrentToggle(t, newStore(t)) })
	t.Run("Friends", func(t *testing.T) { testFriends(t, newStore(t)) })
	t.Run("ExportImport", func(t *testing.T) { testExportImport(t, newStore(t), newStore(t)) })
}

func uniqueName(prefix string) string {
	return prefix + "_" + storage.NewID()[:8]
}

// NewUser creates a user with a unique username.
func NewUser(t *testing.T, store storage.Provider, prefix string) models.User {
	t.Helper()
	u, err := store.CreateUser(context.Background(), models.User{
		Username: uniqueName(prefix),
		FullName: prefix,
	})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	return u
}

// NewHabit creates a habit owned by ownerID.
func NewHabit(t *testing.T, store storage.Provider, ownerID, name, at string, created calendar.Date) models.Habit {
	t.Helper()
	h, err := store.CreateHabit(context.Background(), ownerID, models.HabitFields{
		Name:          name,
		Icon:          "📝",
		TargetDays:    30,
		ScheduledTime: at,
	}, created)
	if err != nil {
		t.Fatalf("CreateHabit() error = %v", err)
	}
	return h
}

func testUsers(t *testing.T, store storage.Provider) {
	ctx := context.Background()

	u := NewUser(t, store, "alice")
	if u.ID == "" || len(u.FriendCode) != 8 {
		t.Fatalf("CreateUser() = %+v, want generated id and friend code", u)
	}

	byName, err := store.GetUserByUsername(ctx, u.Username)
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if byName.ID != u.ID || byName.FriendCode != u.FriendCode {
		t.Errorf("GetUserByUsername() = %+v, want %+v", byName, u)
	}

	byCode, err := store.GetUserByFriendCode(ctx, u.FriendCode)
	if err != nil || byCode.ID != u.ID {
		t.Errorf("GetUserByFriendCode() = (%+v, %v)", byCode, err)
	}

	if _, err := store.GetUser(ctx, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetUser(missing) error = %v, want ErrNotFound", err)
	}

	again, err := store.EnsureUser(ctx, models.User{Username: u.Username})
	if err != nil {
		t.Fatalf("EnsureUser() error = %v", err)
	}
	if again.ID != u.ID {
		t.Errorf("EnsureUser() created a second user %s", again.ID)
	}

	fresh, err := store.EnsureUser(ctx, models.User{Username: uniqueName("bob"), FullName: "Bob"})
	if err != nil {
		t.Fatalf("EnsureUser(new) error = %v", err)
	}
	if fresh.ID == "" || fresh.FullName != "Bob" {
		t.Errorf("EnsureUser(new) = %+v", fresh)
	}

	if _, err := store.CreateUser(ctx, models.User{Username: uniqueName("carol"), FriendCode: u.FriendCode}); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("CreateUser(duplicate code) error = %v, want ErrValidation", err)
	}
}

func testHabits(t *testing.T, store storage.Provider) {
	ctx := context.Background()
	owner := NewUser(t, store, "owner")
	other := NewUser(t, store, "other")

	created := calendar.MustDate(2024, 3, 1)
	late := NewHabit(t, store, owner.ID, "Journal", "21:00", created)
	early := NewHabit(t, store, owner.ID, "Run", "06:30", created)
	NewHabit(t, store, other.ID, "Not mine", "07:00", created)

	habits, err := store.ListHabits(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListHabits() error = %v", err)
	}
	if len(habits) != 2 {
		t.Fatalf("ListHabits() returned %d habits, want 2", len(habits))
	}
	if habits[0].ID != early.ID || habits[1].ID != late.ID {
		t.Errorf("ListHabits() not ordered by scheduled_time: %s, %s", habits[0].Name, habits[1].Name)
	}

	got, err := store.GetHabit(ctx, late.ID)
	if err != nil {
		t.Fatalf("GetHabit() error = %v", err)
	}
	if got != late {
		t.Errorf("GetHabit() = %+v, want %+v", got, late)
	}
	if got.CreatedAt != created {
		t.Errorf("CreatedAt = %s, want %s", got.CreatedAt, created)
	}

	name := "Evening journal"
	target := 20
	updated, err := store.UpdateHabit(ctx, late.ID, models.HabitPatch{Name: &name, TargetDays: &target})
	if err != nil {
		t.Fatalf("UpdateHabit() error = %v", err)
	}
	if updated.Name != name || updated.TargetDays != 20 || updated.Icon != late.Icon || updated.CreatedAt != created {
		t.Errorf("UpdateHabit() = %+v", updated)
	}
	reloaded, _ := store.GetHabit(ctx, late.ID)
	if reloaded != updated {
		t.Errorf("reloaded = %+v, want %+v", reloaded, updated)
	}

	if _, err := store.GetHabit(ctx, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetHabit(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := store.UpdateHabit(ctx, "missing", models.HabitPatch{Name: &name}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("UpdateHabit(missing) error = %v, want ErrNotFound", err)
	}
}

func testToggle(t *testing.T, store storage.Provider) {
	ctx := context.Background()
	owner := NewUser(t, store, "toggler")
	intruder := NewUser(t, store, "intruder")
	h := NewHabit(t, store, owner.ID, "Read", "09:00", calendar.MustDate(2024, 1, 1))

	day := calendar.MustDate(2024, 3, 5)
	added, err := store.ApplyToggle(ctx, owner.ID, h.ID, day)
	if err != nil || !added {
		t.Fatalf("ApplyToggle() = (%v, %v), want (true, nil)", added, err)
	}
	if _, err := store.ApplyToggle(ctx, owner.ID, h.ID, calendar.MustDate(2024, 4, 1)); err != nil {
		t.Fatalf("ApplyToggle(april) error = %v", err)
	}

	logs, err := store.ListLogs(ctx, owner.ID, 2024, 3)
	if err != nil {
		t.Fatalf("ListLogs() error = %v", err)
	}
	want := models.LogEntry{HabitID: h.ID, Date: "2024-03-05", Completed: true}
	if len(logs) != 1 || logs[0] != want {
		t.Errorf("ListLogs() = %+v, want [%+v]", logs, want)
	}

	added, err = store.ApplyToggle(ctx, owner.ID, h.ID, day)
	if err != nil || added {
		t.Fatalf("second ApplyToggle() = (%v, %v), want (false, nil)", added, err)
	}
	logs, _ = store.ListLogs(ctx, owner.ID, 2024, 3)
	if len(logs) != 0 {
		t.Errorf("ListLogs() after removal = %+v", logs)
	}

	if _, err := store.ApplyToggle(ctx, intruder.ID, h.ID, day); !errors.Is(err, apperrors.ErrUnknownHabit) {
		t.Errorf("ApplyToggle(other owner) error = %v, want ErrUnknownHabit", err)
	}
	if _, err := store.ApplyToggle(ctx, owner.ID, "missing", day); !errors.Is(err, apperrors.ErrUnknownHabit) {
		t.Errorf("ApplyToggle(missing) error = %v, want ErrUnknownHabit", err)
	}
	if _, err := store.ListLogs(ctx, owner.ID, 2024, 13); !errors.Is(err, apperrors.ErrInvalidDate) {
		t.Errorf("ListLogs(month 13) error = %v, want ErrInvalidDate", err)
	}
}

func testConcurrentToggle(t *testing.T, store storage.Provider) {
	ctx := context.Background()
	owner := NewUser(t, store, "racer")
	h := NewHabit(t, store, owner.ID, "Meditate", "08:00", calendar.MustDate(2024, 1, 1))
	day := calendar.MustDate(2024, 6, 15)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.ApplyToggle(ctx, owner.ID, h.ID, day); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent ApplyToggle() error = %v", err)
	}

	logs, err := store.ListLogs(ctx, owner.ID, 2024, 6)
	if err != nil {
		t.Fatalf("ListLogs() error = %v", err)
	}
	// an even number of toggles leaves the day unchecked
	if len(logs) != 0 {
		t.Errorf("after %d toggles ListLogs() = %+v, want empty", workers, logs)
	}
}

func testFriends(t *testing.T, store storage.Provider) {
	ctx := context.Background()
	alice := NewUser(t, store, "alice")
	bob := NewUser(t, store, "bob")

	friend, created, err := store.AddFriend(ctx, alice.ID, bob.FriendCode)
	if err != nil {
		t.Fatalf("AddFriend() error = %v", err)
	}
	if !created || friend.ID != bob.ID {
		t.Errorf("AddFriend() = (%s, %v), want (%s, true)", friend.ID, created, bob.ID)
	}

	_, created, err = store.AddFriend(ctx, alice.ID, bob.FriendCode)
	if err != nil || created {
		t.Errorf("repeat AddFriend() = (%v, %v), want (false, nil)", created, err)
	}
	_, created, err = store.AddFriend(ctx, bob.ID, alice.FriendCode)
	if err != nil || created {
		t.Errorf("reverse AddFriend() = (%v, %v), want (false, nil)", created, err)
	}

	for _, pair := range [][2]models.User{{alice, bob}, {bob, alice}} {
		friends, err := store.ListFriends(ctx, pair[0].ID)
		if err != nil {
			t.Fatalf("ListFriends() error = %v", err)
		}
		if len(friends) != 1 || friends[0].ID != pair[1].ID {
			t.Errorf("ListFriends(%s) = %+v, want [%s]", pair[0].Username, friends, pair[1].Username)
		}
	}

	if _, _, err := store.AddFriend(ctx, alice.ID, alice.FriendCode); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("AddFriend(self) error = %v, want ErrValidation", err)
	}
	if _, _, err := store.AddFriend(ctx, alice.ID, "00000000"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("AddFriend(unknown) error = %v, want ErrNotFound", err)
	}
}

func testExportImport(t *testing.T, src, dst storage.Provider) {
	ctx := context.Background()
	alice := NewUser(t, src, "alice")
	bob := NewUser(t, src, "bob")
	h := NewHabit(t, src, alice.ID, "Stretch", "07:00", calendar.MustDate(2024, 2, 1))
	if _, err := src.ApplyToggle(ctx, alice.ID, h.ID, calendar.MustDate(2024, 2, 3)); err != nil {
		t.Fatalf("ApplyToggle() error = %v", err)
	}
	if _, _, err := src.AddFriend(ctx, alice.ID, bob.FriendCode); err != nil {
		t.Fatalf("AddFriend() error = %v", err)
	}

	snap, err := storage.Export(ctx, src)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if err := dst.Import(ctx, snap); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	got, err := dst.GetUserByFriendCode(ctx, alice.FriendCode)
	if err != nil || got.ID != alice.ID {
		t.Errorf("imported user = (%+v, %v)", got, err)
	}
	habits, err := dst.ListHabits(ctx, alice.ID)
	if err != nil || len(habits) != 1 || habits[0] != h {
		t.Errorf("imported habits = (%+v, %v), want [%+v]", habits, err, h)
	}
	logs, err := dst.ListLogs(ctx, alice.ID, 2024, 2)
	if err != nil || len(logs) != 1 || logs[0].Date != "2024-02-03" {
		t.Errorf("imported logs = (%+v, %v)", logs, err)
	}
	friends, err := dst.ListFriends(ctx, bob.ID)
	if err != nil || len(friends) != 1 || friends[0].ID != alice.ID {
		t.Errorf("imported friends = (%+v, %v)", friends, err)
	}

	// importing twice is harmless
	if err := dst.Import(ctx, snap); err != nil {
		t.Errorf("second Import() error = %v", err)
	}
}
