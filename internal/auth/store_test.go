package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	pErrors "github.com/darkai/darkchat/internal/errors"
)

func TestStore_MissingFileIsAnonymous(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope", SessionFileName))
	st, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.SignedIn() {
		t.Error("missing file should be anonymous")
	}
}

func TestStore_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "nested", SessionFileName))
	want := State{
		Username:   "ada",
		Email:      "ada@example.com",
		Token:      "tok",
		SignedInAt: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Username != want.Username || got.Token != want.Token || !got.SignedInAt.Equal(want.SignedInAt) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	info, err := os.Stat(store.Path())
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("permissions = %v, want 0600", info.Mode().Perm())
	}

	entries, _ := os.ReadDir(filepath.Dir(store.Path()))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), SessionFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := NewStore(path).Load()
	if !pErrors.Is(err, pErrors.KindIO) {
		t.Errorf("Load error = %v, want KindIO", err)
	}
}

func TestStore_Clear(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), SessionFileName))
	if err := store.Clear(); err != nil {
		t.Errorf("clearing a missing file should succeed, got %v", err)
	}
	_ = store.Save(State{Username: "ada"})
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if st, _ := store.Load(); st.SignedIn() {
		t.Error("state should be gone")
	}
}

func TestDefaultStore_UsesDarkchatHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DARKCHAT_HOME", dir)

	store, err := DefaultStore()
	if err != nil {
		t.Fatalf("DefaultStore: %v", err)
	}
	if store.Path() != filepath.Join(dir, SessionFileName) {
		t.Errorf("Path() = %q", store.Path())
	}
}
