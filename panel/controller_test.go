package panel

import (
	"errors"
	"mypanel/launcher"
	"mypanel/models"
	"mypanel/storage"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

type fakeStore struct {
	loaded   models.Slots
	loadErr  error
	saveErr  error
	resetErr error
	saves    []models.Slots
	resets   int
}

func (s *fakeStore) Load() (models.Slots, error) { return s.loaded, s.loadErr }

func (s *fakeStore) Save(slots models.Slots) error {
	s.saves = append(s.saves, slots)
	return s.saveErr
}

func (s *fakeStore) Reset() error {
	s.resets++
	return s.resetErr
}

type fakeLauncher struct {
	valid     map[string]bool
	launchErr error
	opened    []string
	launched  []string
}

func (l *fakeLauncher) Validate(path string) error {
	if l.valid[path] {
		return nil
	}
	return launcher.ErrInvalidTarget
}

func (l *fakeLauncher) IsBundle(path string) bool { return filepath.Ext(path) == launcher.BundleExt }

func (l *fakeLauncher) Open(path string) error {
	l.opened = append(l.opened, path)
	return l.launchErr
}

func (l *fakeLauncher) LaunchApp(path string) error {
	l.launched = append(l.launched, path)
	return l.launchErr
}

type fakeDialogs struct {
	pick       string
	pickErr    error
	confirm    bool
	pickTitles []string
	startDirs  []string
	warnings   []string
	errors     []error
	infos      []string
}

func (d *fakeDialogs) PickFile(title, startDir string) (string, error) {
	d.pickTitles = append(d.pickTitles, title)
	d.startDirs = append(d.startDirs, startDir)
	return d.pick, d.pickErr
}

func (d *fakeDialogs) Confirm(title, message string) bool { return d.confirm }

func (d *fakeDialogs) Warn(title, message string) { d.warnings = append(d.warnings, title) }

func (d *fakeDialogs) ShowError(title string, err error) { d.errors = append(d.errors, err) }

func (d *fakeDialogs) Info(title, message string) { d.infos = append(d.infos, title) }

func newTestController(valid ...string) (*Controller, *fakeStore, *fakeLauncher, *fakeDialogs) {
	store := &fakeStore{}
	l := &fakeLauncher{valid: map[string]bool{}}
	for _, p := range valid {
		l.valid[p] = true
	}
	d := &fakeDialogs{}
	return New(store, l, d), store, l, d
}

func TestLoadUsesStore(t *testing.T) {
	c, store, _, _ := newTestController()
	store.loaded = models.FromPaths([]string{"/tmp/a.txt"})

	var notified models.Slots
	c.OnChange = func(s models.Slots) { notified = s }
	c.Load()

	if c.Slots() != store.loaded {
		t.Errorf("Slots() = %v, want %v", c.Slots().Paths(), store.loaded.Paths())
	}
	if notified != store.loaded {
		t.Error("OnChange should be called after Load")
	}
}

func TestLoadFailureLeavesEmptySlots(t *testing.T) {
	c, store, _, d := newTestController()
	store.loadErr = storage.ErrConfigUnreadable

	c.Load()

	if c.Slots() != (models.Slots{}) {
		t.Errorf("Expected empty slots, got %v", c.Slots().Paths())
	}
	if len(d.errors)+len(d.warnings) != 0 {
		t.Error("Load failure should not be shown to the user")
	}
}

func TestSelectSlotValid(t *testing.T) {
	c, store, _, d := newTestController("/tmp/docs/a.txt")
	d.pick = "/tmp/docs/a.txt"

	if err := c.SelectSlot(2); err != nil {
		t.Fatalf("SelectSlot returned error: %v", err)
	}

	slot, _ := c.Slot(2)
	if slot.Path != "/tmp/docs/a.txt" || slot.Label() != models.LabelOpen {
		t.Errorf("Slot 3 = %+v (%s), want assigned", slot, slot.Label())
	}
	if len(store.saves) != 1 || store.saves[0][2].Path != "/tmp/docs/a.txt" {
		t.Errorf("Expected one save with the new path, got %v", store.saves)
	}
	if d.pickTitles[0] != "Select file 3" {
		t.Errorf("Unexpected picker title %q", d.pickTitles[0])
	}

	// The next picker starts where the last file was found
	d.pick = ""
	c.SelectSlot(3)
	if d.startDirs[1] != "/tmp/docs" {
		t.Errorf("Expected start dir /tmp/docs, got %q", d.startDirs[1])
	}
}

func TestSelectSlotInvalid(t *testing.T) {
	c, store, _, d := newTestController()
	d.pick = "/tmp/does-not-exist.txt"

	err := c.SelectSlot(2)
	if !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("Expected ErrInvalidSelection, got %v", err)
	}
	if c.Slots() != (models.Slots{}) {
		t.Errorf("Slots should be unchanged, got %v", c.Slots().Paths())
	}
	if len(store.saves) != 0 {
		t.Errorf("Save should not be called, got %d saves", len(store.saves))
	}
	if len(d.warnings) != 1 {
		t.Errorf("Expected one warning, got %v", d.warnings)
	}
}

func TestSelectSlotCancelled(t *testing.T) {
	c, store, _, d := newTestController()
	d.pick = ""

	if err := c.SelectSlot(0); err != nil {
		t.Errorf("Cancel should not be an error, got %v", err)
	}
	if len(store.saves) != 0 || len(d.warnings) != 0 {
		t.Error("Cancel should neither save nor warn")
	}
}

func TestSelectSlotDialogError(t *testing.T) {
	c, store, _, d := newTestController()
	d.pickErr = errors.New("no display")

	if err := c.SelectSlot(0); err == nil {
		t.Error("Expected dialog error")
	}
	if len(d.errors) != 1 || len(store.saves) != 0 {
		t.Error("Dialog error should be shown and nothing saved")
	}
}

func TestSelectSlotSaveFailureKeepsSlot(t *testing.T) {
	c, store, _, d := newTestController("/tmp/a.txt")
	store.saveErr = storage.ErrConfigWriteFailed
	d.pick = "/tmp/a.txt"

	if err := c.SelectSlot(0); err != nil {
		t.Errorf("Save failure should only be logged, got %v", err)
	}
	if slot, _ := c.Slot(0); slot.Path != "/tmp/a.txt" {
		t.Error("Slot should stay assigned in memory after a failed save")
	}
	if len(d.errors) != 0 {
		t.Error("Save failure should not be shown to the user")
	}
}

func TestOpenSlotEmpty(t *testing.T) {
	c, _, l, d := newTestController()

	err := c.OpenSlot(1)
	if !errors.Is(err, ErrEmptySlot) {
		t.Errorf("Expected ErrEmptySlot, got %v", err)
	}
	if len(l.opened)+len(l.launched) != 0 {
		t.Error("Launcher must not be invoked for an empty slot")
	}
	if len(d.warnings) != 1 {
		t.Errorf("Expected one warning, got %v", d.warnings)
	}
}

func TestOpenSlotDispatch(t *testing.T) {
	c, store, l, _ := newTestController("/tmp/a.txt", "/Applications/Notes.app")
	store.loaded = models.FromPaths([]string{"/tmp/a.txt", "/Applications/Notes.app"})
	c.Load()

	if err := c.OpenSlot(0); err != nil {
		t.Fatalf("OpenSlot(0) returned error: %v", err)
	}
	if err := c.OpenSlot(1); err != nil {
		t.Fatalf("OpenSlot(1) returned error: %v", err)
	}
	if !reflect.DeepEqual(l.opened, []string{"/tmp/a.txt"}) {
		t.Errorf("opened = %v", l.opened)
	}
	if !reflect.DeepEqual(l.launched, []string{"/Applications/Notes.app"}) {
		t.Errorf("launched = %v", l.launched)
	}
}

func TestOpenSlotStalePath(t *testing.T) {
	c, store, l, d := newTestController()
	store.loaded = models.FromPaths([]string{"/tmp/was-here.txt"})
	c.Load()

	err := c.OpenSlot(0)
	if !errors.Is(err, launcher.ErrLaunchFailed) {
		t.Errorf("Expected ErrLaunchFailed, got %v", err)
	}
	if len(l.opened) != 0 {
		t.Error("Launcher must not run for a stale path")
	}
	if len(d.errors) != 1 {
		t.Error("Stale path should be reported")
	}
	if slot, _ := c.Slot(0); !slot.Assigned() {
		t.Error("A stale slot stays assigned")
	}
}

func TestOpenSlotLaunchFailure(t *testing.T) {
	c, store, l, d := newTestController("/tmp/a.txt")
	store.loaded = models.FromPaths([]string{"/tmp/a.txt"})
	l.launchErr = errors.New("no handler")
	c.Load()

	if err := c.OpenSlot(0); !errors.Is(err, l.launchErr) {
		t.Errorf("Expected launch error, got %v", err)
	}
	if len(d.errors) != 1 || !errors.Is(d.errors[0], l.launchErr) {
		t.Errorf("Expected launch error to be shown, got %v", d.errors)
	}
}

func TestHandleSlotClick(t *testing.T) {
	c, store, l, d := newTestController("/tmp/a.txt")
	d.pick = "/tmp/a.txt"

	// Unassigned: select
	if err := c.HandleSlotClick(4); err != nil {
		t.Fatalf("First click returned error: %v", err)
	}
	if len(d.pickTitles) != 1 || len(l.opened) != 0 {
		t.Error("First click should open the picker")
	}

	// Assigned: open
	if err := c.HandleSlotClick(4); err != nil {
		t.Fatalf("Second click returned error: %v", err)
	}
	if len(d.pickTitles) != 1 || len(l.opened) != 1 {
		t.Error("Second click should open the file")
	}
	if len(store.saves) != 1 {
		t.Errorf("Expected one save, got %d", len(store.saves))
	}
}

func TestIndexOutOfRange(t *testing.T) {
	c, _, _, _ := newTestController()
	for _, i := range []int{-1, models.SlotCount} {
		if err := c.HandleSlotClick(i); !errors.Is(err, ErrSlotOutOfRange) {
			t.Errorf("HandleSlotClick(%d) = %v, want ErrSlotOutOfRange", i, err)
		}
		if _, err := c.Slot(i); !errors.Is(err, ErrSlotOutOfRange) {
			t.Errorf("Slot(%d) = %v, want ErrSlotOutOfRange", i, err)
		}
	}
}

func TestResetDeclined(t *testing.T) {
	c, store, _, d := newTestController()
	store.loaded = models.FromPaths([]string{"/tmp/a.txt"})
	c.Load()
	d.confirm = false

	ran, err := c.Reset()
	if ran || err != nil {
		t.Errorf("Reset() = (%v, %v), want (false, nil)", ran, err)
	}
	if store.resets != 0 || !c.Slots()[0].Assigned() {
		t.Error("Declined reset must not change anything")
	}
}

func TestResetConfirmed(t *testing.T) {
	c, store, _, d := newTestController()
	store.loaded = models.FromPaths([]string{"/tmp/a.txt", "/tmp/b.txt"})
	c.Load()
	d.confirm = true

	ran, err := c.Reset()
	if !ran || err != nil {
		t.Errorf("Reset() = (%v, %v), want (true, nil)", ran, err)
	}
	if c.Slots() != (models.Slots{}) {
		t.Errorf("Expected empty slots, got %v", c.Slots().Paths())
	}
	if store.resets != 1 {
		t.Errorf("Expected store reset, got %d", store.resets)
	}
	if len(d.infos) != 1 {
		t.Error("Expected a completion notice")
	}
}

func TestResetStoreFailure(t *testing.T) {
	c, store, _, d := newTestController()
	store.resetErr = errors.New("permission denied")
	d.confirm = true

	if _, err := c.Reset(); err == nil {
		t.Error("Expected reset error")
	}
	if len(d.errors) != 1 {
		t.Error("Reset failure should be shown")
	}
}

// TestWithRealStore runs the select and reset flows against files on disk
func TestWithRealStore(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, storage.ConfigFileName)
	target := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(target, []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}

	d := &fakeDialogs{pick: filepath.Join(dir, "missing.txt"), confirm: true}
	c := New(storage.NewManagerAt(configPath), launcher.NewManager(), d)
	c.Load()

	if err := c.SelectSlot(2); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("Expected ErrInvalidSelection, got %v", err)
	}
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		t.Error("Invalid selection must not write the config")
	}

	d.pick = target
	if err := c.SelectSlot(2); err != nil {
		t.Fatalf("SelectSlot returned error: %v", err)
	}

	reloaded := New(storage.NewManagerAt(configPath), launcher.NewManager(), d)
	reloaded.Load()
	if got := reloaded.Slots().Paths(); !reflect.DeepEqual(got, []string{"", "", target, "", "", ""}) {
		t.Errorf("Reloaded paths = %v", got)
	}

	if _, err := reloaded.Reset(); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		t.Error("Config should be deleted after reset")
	}
	if reloaded.Slots() != (models.Slots{}) {
		t.Error("Slots should be empty after reset")
	}
}
