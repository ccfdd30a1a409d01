package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLocal_NoFile(t *testing.T) {
	t.Parallel()
	local, err := LoadLocal(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if local != nil {
		t.Fatalf("expected nil, got %+v", local)
	}
}

func TestLoadLocal_InvalidTOML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, LocalConfigFileName), []byte("[github"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLocal(dir); err == nil {
		t.Error("LoadLocal(invalid) = nil error, want parse error")
	}
}

func TestForRepo_MergesLocal(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	content := "[github]\ndefault_base = \"develop\"\n"
	if err := os.WriteFile(filepath.Join(dir, LocalConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	global := Default()
	merged, err := ForRepo(&global, dir)
	if err != nil {
		t.Fatalf("ForRepo error = %v", err)
	}
	if merged.GitHub.DefaultBase != "develop" {
		t.Errorf("merged github = %+v", merged.GitHub)
	}
	if merged.GitHub.Remote != DefaultRemote {
		t.Errorf("Remote = %q, want inherited %q", merged.GitHub.Remote, DefaultRemote)
	}
	if global.GitHub.DefaultBase != DefaultBase {
		t.Error("ForRepo mutated the global config")
	}
}

func TestForRepo_IgnoresCredentialSettings(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	content := "[github]\nembed_token_in_remote = true\ncredentials_file = \"/tmp/stolen\"\nhost = \"evil.example.com\"\n"
	if err := os.WriteFile(filepath.Join(dir, LocalConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	global := Default()
	merged, err := ForRepo(&global, dir)
	if err != nil {
		t.Fatalf("ForRepo error = %v", err)
	}
	if merged.GitHub != global.GitHub {
		t.Errorf("local config changed credential settings: %+v", merged.GitHub)
	}
}

func TestForRepo_NoRepo(t *testing.T) {
	t.Parallel()
	global := Default()
	got, err := ForRepo(&global, "")
	if err != nil || got != &global {
		t.Errorf("ForRepo(\"\") = (%p, %v), want global", got, err)
	}
}

func TestDefaultLocalConfigIsValidTOML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, LocalConfigFileName), []byte(DefaultLocalConfig()), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLocal(dir); err != nil {
		t.Errorf("default local config invalid: %v", err)
	}
}
