package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvTeamKey, "")
}

func TestLoadFrom_FieldLayering(t *testing.T) {
	clearEnv(t)
	global := writeConfig(t, t.TempDir(), "api_key=lin_global\nteam=ENG\ndefault_project=Roadmap\n")
	local := writeConfig(t, t.TempDir(), "api_key=lin_local\n")

	cfg, err := LoadFrom(local, global)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "lin_local" {
		t.Errorf("APIKey = %q, want local override", cfg.APIKey)
	}
	if cfg.Team != "ENG" {
		t.Errorf("Team = %q, want inherited global value", cfg.Team)
	}
	if cfg.DefaultProject != "Roadmap" {
		t.Errorf("DefaultProject = %q, want inherited global value", cfg.DefaultProject)
	}
	if cfg.ActivePath() != local {
		t.Errorf("ActivePath = %q, want local file", cfg.ActivePath())
	}
}

func TestLoadFrom_EnvFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "lin_env")
	t.Setenv(EnvTeamKey, "OPS")
	dir := t.TempDir()

	cfg, err := LoadFrom(filepath.Join(dir, FileName), filepath.Join(dir, "missing", FileName))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "lin_env" || cfg.Team != "OPS" {
		t.Errorf("got %q/%q, want env fallbacks", cfg.APIKey, cfg.Team)
	}
	if cfg.ActivePath() != "" {
		t.Errorf("ActivePath = %q, want empty with no files", cfg.ActivePath())
	}
}

func TestLoadFrom_FileShadowsEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "lin_env")
	global := writeConfig(t, t.TempDir(), "api_key=lin_file\nteam=ENG\n")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), FileName), global)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "lin_file" {
		t.Errorf("APIKey = %q, want file value over env", cfg.APIKey)
	}
}

func TestParseLines_AliasSection(t *testing.T) {
	f := parseLines([]string{
		"# credentials",
		"api_key=lin_123",
		"team=ENG",
		"",
		"[aliases]",
		"v2=Version 2",
		"MOB=Mobile App",
		"[other]",
		"stray=ignored by aliases",
	})
	if f.scalar("api_key") != "lin_123" {
		t.Errorf("api_key = %q", f.scalar("api_key"))
	}
	if len(f.aliases) != 2 {
		t.Fatalf("aliases = %+v, want 2 entries", f.aliases)
	}
	// Codes normalize to uppercase; section ends at the next header.
	if f.aliases[0].code != "V2" || f.aliases[0].name != "Version 2" {
		t.Errorf("first alias = %+v", f.aliases[0])
	}
}

func TestResolve_RoundTrip(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "api_key=k\nteam=ENG\n")
	local := filepath.Join(dir, FileName)
	missing := filepath.Join(t.TempDir(), FileName)

	cfg, err := LoadFrom(local, missing)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.SetAlias("V2", "Version 2"); err != nil {
		t.Fatalf("SetAlias: %v", err)
	}

	cfg, err = LoadFrom(local, missing)
	if err != nil {
		t.Fatal(err)
	}
	// Any case of the code resolves; non-codes pass through.
	if got := cfg.Resolve("v2"); got != "Version 2" {
		t.Errorf("Resolve(v2) = %q, want Version 2", got)
	}
	if got := cfg.Resolve("V2"); got != "Version 2" {
		t.Errorf("Resolve(V2) = %q, want Version 2", got)
	}
	if got := cfg.Resolve("vtwo"); got != "vtwo" {
		t.Errorf("Resolve(vtwo) = %q, want passthrough", got)
	}

	if err := cfg.RemoveAlias("V2"); err != nil {
		t.Fatalf("RemoveAlias: %v", err)
	}
	cfg, err = LoadFrom(local, missing)
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Resolve("v2"); got != "v2" {
		t.Errorf("Resolve after remove = %q, want input unchanged", got)
	}

	var notFound *AliasNotFoundError
	if err := cfg.RemoveAlias("V2"); !errors.As(err, &notFound) {
		t.Errorf("second remove error = %v, want AliasNotFoundError", err)
	}
}

func TestSetAlias_NoConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfg, err := LoadFrom(filepath.Join(dir, FileName), filepath.Join(dir, "none", FileName))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.SetAlias("V2", "Version 2"); !errors.Is(err, ErrNoConfigFile) {
		t.Errorf("error = %v, want ErrNoConfigFile", err)
	}
}

func TestSetAlias_PreservesFileContent(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	original := "# my settings\napi_key=k\nteam=ENG\n\n[aliases]\nV2=Version 2\nMOB=Mobile App\n"
	path := writeConfig(t, dir, original)

	cfg, err := LoadFrom(path, filepath.Join(dir, "none", FileName))
	if err != nil {
		t.Fatal(err)
	}

	// Upsert an existing code in place.
	if err := cfg.SetAlias("v2", "Version 2.1"); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	want := "# my settings\napi_key=k\nteam=ENG\n\n[aliases]\nV2=Version 2.1\nMOB=Mobile App\n"
	if string(data) != want {
		t.Errorf("in-place upsert:\ngot:  %q\nwant: %q", data, want)
	}

	// New code appends at the end of the section.
	if err := cfg.SetAlias("API", "API Platform"); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(path)
	if !strings.HasSuffix(string(data), "MOB=Mobile App\nAPI=API Platform\n") {
		t.Errorf("append position wrong:\n%s", data)
	}
}

func TestSetAlias_AppendsSectionWhenMissing(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeConfig(t, dir, "api_key=k\nteam=ENG\n")

	cfg, err := LoadFrom(path, filepath.Join(dir, "none", FileName))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.SetAlias("V2", "Version 2"); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	want := "api_key=k\nteam=ENG\n\n[aliases]\nV2=Version 2\n"
	if string(data) != want {
		t.Errorf("got %q, want %q", data, want)
	}
}

func TestSetScalar_UpsertsBeforeAliasSection(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "# work config\nteam=ENG\n\n[aliases]\nMOB=Mobile App\n")

	if err := SetScalar(path, "api_key", "lin_abc"); err != nil {
		t.Fatal(err)
	}
	if err := SetScalar(path, "team", "OPS"); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	want := "# work config\nteam=OPS\n\napi_key=lin_abc\n[aliases]\nMOB=Mobile App\n"
	if string(data) != want {
		t.Errorf("got %q, want %q", data, want)
	}
}

func TestSetScalar_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := SetScalar(path, "api_key", "lin_new"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "api_key=lin_new\n" {
		t.Errorf("got %q", data)
	}
}

func TestRemoveScalar(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "api_key=k\nteam=ENG\n")

	if err := RemoveScalar(path, "api_key"); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "team=ENG\n" {
		t.Errorf("got %q", data)
	}
	// Missing key and missing file are both no-ops.
	if err := RemoveScalar(path, "api_key"); err != nil {
		t.Fatal(err)
	}
	if err := RemoveScalar(filepath.Join(dir, "nope", FileName), "api_key"); err != nil {
		t.Fatal(err)
	}
}

func TestAliasFor_LongestPrefixWins(t *testing.T) {
	cfg := &Config{Aliases: map[string]string{
		"V":   "Version",
		"V2":  "Version 2",
		"MOB": "Mobile",
	}}
	code, ok := cfg.AliasFor("Version 2.0 Launch")
	if !ok || code != "V2" {
		t.Errorf("AliasFor = %q/%v, want V2", code, ok)
	}
	if _, ok := cfg.AliasFor("Unrelated"); ok {
		t.Error("expected no alias for unrelated name")
	}
}
