package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	appErrors "viewtree/internal/errors"
)

func TestInitializeLoadsDefaults(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	userCfg := filepath.Join(tmp, "user.yaml")

	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg)); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if got := GetString(KeyAPIBaseURL); got != DefaultAPIBaseURL {
		t.Fatalf("expected default %s to be %q, got %q", KeyAPIBaseURL, DefaultAPIBaseURL, got)
	}
	if got := GetString(KeySource); got != SourceHTTP {
		t.Fatalf("expected default %s to be http, got %q", KeySource, got)
	}
	if GetBool(KeySearchCollapseOnClear) {
		t.Fatalf("expected default %s to be false", KeySearchCollapseOnClear)
	}
	if got := GetDuration(KeyAPITimeout); got != DefaultAPITimeout {
		t.Fatalf("expected default %s to be %s, got %s", KeyAPITimeout, DefaultAPITimeout, got)
	}
	if got := GetInt(KeyAutoRefreshSeconds); got != 0 {
		t.Fatalf("expected auto refresh to default off, got %d", got)
	}
	if got := GetString(KeyOutputFormat); got != "rich" {
		t.Fatalf("expected default %s to be rich, got %q", KeyOutputFormat, got)
	}
}

func TestProjectConfigOverridesUser(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectDir := filepath.Join(tmp, "site")
	mustMkdir(t, filepath.Join(projectDir, ".viewtree"))
	projectCfg := filepath.Join(projectDir, ".viewtree", "config.yaml")
	writeFile(t, projectCfg, `
project: PRJ-PROJECT
api:
  timeout: 30s
search:
  collapse-on-clear: true
`)

	userCfg := filepath.Join(tmp, "user.yaml")
	writeFile(t, userCfg, `
project: PRJ-USER
api:
  token: user-token
  timeout: 5s
`)

	nested := filepath.Join(projectDir, "floors", "level-2")
	mustMkdir(t, nested)

	if err := Initialize(
		WithWorkingDir(nested),
		WithUserConfig(userCfg),
	); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if got := GetString(KeyProject); got != "PRJ-PROJECT" {
		t.Fatalf("expected project config to win for %s, got %q", KeyProject, got)
	}
	if got := GetString(KeyAPIToken); got != "user-token" {
		t.Fatalf("expected user token to survive merge, got %q", got)
	}
	if got := GetDuration(KeyAPITimeout); got != 30*time.Second {
		t.Fatalf("expected project timeout 30s, got %s", got)
	}
	if !GetBool(KeySearchCollapseOnClear) {
		t.Fatalf("expected %s from project config", KeySearchCollapseOnClear)
	}
}

func TestEnvironmentAndOverridesPrecedence(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectDir := filepath.Join(tmp, "site")
	projectCfg := filepath.Join(projectDir, ".viewtree", "config.yaml")
	writeFile(t, projectCfg, `
api:
  base-url: https://project.example
database:
  path: /project/views.db
`)

	t.Setenv("VT_API_BASE_URL", "https://env.example")
	t.Setenv("VT_DATABASE_PATH", "/env/views.db")

	if err := Initialize(
		WithWorkingDir(projectDir),
		WithProjectConfig(projectCfg),
		WithUserConfig(filepath.Join(tmp, "missing.yaml")),
	); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if got := GetString(KeyAPIBaseURL); got != "https://env.example" {
		t.Fatalf("expected env override for %s, got %q", KeyAPIBaseURL, got)
	}
	if got := GetString(KeyDatabasePath); got != "/env/views.db" {
		t.Fatalf("expected env override for %s, got %q", KeyDatabasePath, got)
	}

	if err := ApplyOverrides(map[string]any{KeyAPIBaseURL: "https://flag.example"}); err != nil {
		t.Fatalf("ApplyOverrides returned error: %v", err)
	}
	if got := GetString(KeyAPIBaseURL); got != "https://flag.example" {
		t.Fatalf("expected CLI override for %s, got %q", KeyAPIBaseURL, got)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		overrides map[string]any
		wantErr   bool
	}{
		"defaults":            {overrides: nil},
		"sqlite without path": {overrides: map[string]any{KeySource: SourceSQLite}, wantErr: true},
		"sqlite with path":    {overrides: map[string]any{KeySource: SourceSQLite, KeyDatabasePath: "/tmp/views.db"}},
		"unknown source":      {overrides: map[string]any{KeySource: "ftp"}, wantErr: true},
		"blank base url":      {overrides: map[string]any{KeyAPIBaseURL: "  "}, wantErr: true},
		"negative refresh":    {overrides: map[string]any{KeyAutoRefreshSeconds: -1}, wantErr: true},
		"negative retries":    {overrides: map[string]any{KeyAPIRetryMax: -2}, wantErr: true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			reset()
			t.Cleanup(reset)
			tmp := t.TempDir()
			if err := Initialize(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, "user.yaml"))); err != nil {
				t.Fatalf("Initialize returned error: %v", err)
			}
			if err := ApplyOverrides(tc.overrides); err != nil {
				t.Fatalf("ApplyOverrides returned error: %v", err)
			}
			err := Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected validation error")
				}
				if !appErrors.IsCode(err, appErrors.CodeConfigurationError) {
					t.Fatalf("expected configuration_error code, got %q", appErrors.CodeOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestProjectConfigDirectoryIsRejected(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	mustMkdir(t, filepath.Join(tmp, ".viewtree", "config.yaml"))

	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, "user.yaml"))); err == nil {
		t.Fatalf("expected error when project config path is a directory")
	}
}

func mustMkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	mustMkdir(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}
