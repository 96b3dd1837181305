package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinProfilesAreValid(t *testing.T) {
	if err := GenerousConfig().Validate(); err != nil {
		t.Fatalf("generous profile invalid: %v", err)
	}
	if err := StrictConfig().Validate(); err != nil {
		t.Fatalf("strict profile invalid: %v", err)
	}
}

func TestBuiltinProfilesHaveMessages(t *testing.T) {
	for _, cfg := range []Config{GenerousConfig(), StrictConfig()} {
		for _, f := range []FeedbackConfig{cfg.Posture.Feedback, cfg.Gesture.Feedback, cfg.EyeContact.Feedback} {
			if f.PoorMessage == "" || f.GoodMessage == "" || f.ExcellentMessage == "" {
				t.Fatalf("profile %q has empty feedback messages", cfg.Profile)
			}
		}
	}
}

func TestLoadProfileByName(t *testing.T) {
	cfg, err := LoadProfile(ProfileGenerous, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Profile != ProfileGenerous {
		t.Fatalf("profile = %q", cfg.Profile)
	}

	cfg, err = LoadProfile(ProfileStrict, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Posture.MaxScore != 100 {
		t.Fatalf("strict max score = %v, want 100", cfg.Posture.MaxScore)
	}
}

func TestLoadProfileUnknownName(t *testing.T) {
	if _, err := LoadProfile("bogus", ""); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestLoadProfileMissingFile(t *testing.T) {
	if _, err := LoadProfile(ProfileGenerous, "/nonexistent/profiles.yaml"); err == nil {
		t.Fatal("expected error for missing profiles file")
	}
}

func TestLoadProfileRejectsInvalidOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")

	// smoothing factor out of range makes the override invalid
	data := `
profiles:
  generous:
    profile: generous
    smoothing:
      factor: 2.0
      history_size: 20
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadProfile(ProfileGenerous, path); err == nil {
		t.Fatal("expected validation error for invalid override")
	}
}
