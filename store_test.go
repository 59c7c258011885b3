package pubdesk

import (
	"errors"
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *PrefStore {
	t.Helper()
	s, err := NewPrefStore(filepath.Join(t.TempDir(), "data", "prefs.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewPrefStore(t *testing.T) {
	s := setupTestStore(t)
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestPrefStoreDefaults(t *testing.T) {
	s := setupTestStore(t)

	got, err := s.Get("42")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != DefaultPreferences() {
		t.Errorf("Get = %+v, want defaults %+v", got, DefaultPreferences())
	}
}

func TestPrefStoreSaveAndGet(t *testing.T) {
	s := setupTestStore(t)

	want := Preferences{Theme: ThemeDark, PostsPerPage: 50, CompactSidebar: true}
	if err := s.Save("42", want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := s.Get("42")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != want {
		t.Errorf("Get = %+v, want %+v", got, want)
	}

	// Another user is unaffected.
	other, err := s.Get("43")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if other != DefaultPreferences() {
		t.Errorf("other user = %+v, want defaults", other)
	}
}

func TestPrefStoreSaveOverwrites(t *testing.T) {
	s := setupTestStore(t)

	if err := s.Save("7", Preferences{Theme: ThemeDark, PostsPerPage: 10, CompactSidebar: true}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	want := Preferences{Theme: ThemeLight, PostsPerPage: 100}
	if err := s.Save("7", want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := s.Get("7")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != want {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
}

func TestPrefStoreRejectsInvalid(t *testing.T) {
	s := setupTestStore(t)

	tests := []struct {
		name string
		p    Preferences
	}{
		{"unknown theme", Preferences{Theme: "neon", PostsPerPage: 20}},
		{"too few posts", Preferences{Theme: ThemeLight, PostsPerPage: 4}},
		{"too many posts", Preferences{Theme: ThemeLight, PostsPerPage: 101}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Save("1", tt.p)
			if !errors.Is(err, ErrInvalidPreference) {
				t.Errorf("Save error = %v, want ErrInvalidPreference", err)
			}
		})
	}
}

func TestPrefStoreIgnoresCorruptRows(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.db.Exec(`INSERT INTO preferences (user_id, key, value) VALUES ('9', 'theme', 'neon')`); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	got, err := s.Get("9")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != DefaultPreferences() {
		t.Errorf("Get = %+v, want defaults", got)
	}
}

func TestPrefStoreDelete(t *testing.T) {
	s := setupTestStore(t)

	if err := s.Save("5", Preferences{Theme: ThemeDark, PostsPerPage: 30}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Delete("5"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got, err := s.Get("5")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != DefaultPreferences() {
		t.Errorf("Get after delete = %+v, want defaults", got)
	}
}
