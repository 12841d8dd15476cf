package config

import (
	"strings"
	"testing"
	"time"
)

// clearEnv unsets every variable Load reads so one test cannot leak into
// another.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BOT_TOKEN", "CLIENT_ID", "DB_PATH", "SEED_DIR",
		"LOG_LEVEL", "LOG_PRETTY", "HTTP_PORT",
		"BOT_STATUS", "BOT_ACTIVITY_TYPE", "ACTIVITY_NAME",
		"TMDB_API_KEY", "TMDB_TIMEOUT", "TMDB_RPS", "TMDB_BURST",
	} {
		t.Setenv(k, "")
	}
}

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("CLIENT_ID", "123456789")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "maeve.db" || cfg.SeedDir != "assets" {
		t.Errorf("paths = %q, %q", cfg.DBPath, cfg.SeedDir)
	}
	if cfg.LogLevel != "info" || cfg.LogPretty {
		t.Errorf("logging = %q pretty=%v", cfg.LogLevel, cfg.LogPretty)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("port = %q", cfg.HTTPPort)
	}
	if cfg.Presence.Status != "online" || cfg.Presence.ActivityType != "WATCHING" {
		t.Errorf("presence = %+v", cfg.Presence)
	}
	if cfg.TMDB.Timeout != 10*time.Second || cfg.TMDB.RPS != 4.0 || cfg.TMDB.Burst != 8 {
		t.Errorf("tmdb = %+v", cfg.TMDB)
	}
}

func TestLoad_RequiredFields(t *testing.T) {
	cases := []struct {
		name  string
		unset string
		want  string
	}{
		{"missing token", "BOT_TOKEN", "BOT_TOKEN"},
		{"missing client id", "CLIENT_ID", "CLIENT_ID"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clearEnv(t)
			setRequired(t)
			t.Setenv(c.unset, "")
			if _, err := Load(); err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("err = %v, want mention of %s", err, c.want)
			}
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	setRequired(t)
	t.Setenv("DB_PATH", "/tmp/other.db")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("TMDB_TIMEOUT", "3s")
	t.Setenv("TMDB_RPS", "2.5")
	t.Setenv("TMDB_BURST", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/tmp/other.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" || !cfg.LogPretty {
		t.Errorf("logging = %q pretty=%v", cfg.LogLevel, cfg.LogPretty)
	}
	if cfg.TMDB.Timeout != 3*time.Second || cfg.TMDB.RPS != 2.5 || cfg.TMDB.Burst != 4 {
		t.Errorf("tmdb = %+v", cfg.TMDB)
	}
}

func TestLoad_WarningAlias(t *testing.T) {
	clearEnv(t)
	setRequired(t)
	t.Setenv("LOG_LEVEL", "warning")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("level = %q, want warn", cfg.LogLevel)
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	clearEnv(t)
	setRequired(t)
	t.Setenv("LOG_LEVEL", "verbose")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid LOG_LEVEL")
	}
}

func TestLoad_PresenceFallback(t *testing.T) {
	clearEnv(t)
	setRequired(t)
	t.Setenv("BOT_STATUS", "away")
	t.Setenv("BOT_ACTIVITY_TYPE", "SLEEPING")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Presence.Status != "online" {
		t.Errorf("status = %q, want fallback online", cfg.Presence.Status)
	}
	if cfg.Presence.ActivityType != "WATCHING" {
		t.Errorf("activity = %q, want fallback WATCHING", cfg.Presence.ActivityType)
	}
}

func TestLoad_PresenceValid(t *testing.T) {
	clearEnv(t)
	setRequired(t)
	t.Setenv("BOT_STATUS", "DND")
	t.Setenv("BOT_ACTIVITY_TYPE", "listening")
	t.Setenv("ACTIVITY_NAME", "the timeline")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Presence.Status != "dnd" || cfg.Presence.ActivityType != "LISTENING" {
		t.Errorf("presence = %+v", cfg.Presence)
	}
	if cfg.Presence.ActivityName != "the timeline" {
		t.Errorf("activity name = %q", cfg.Presence.ActivityName)
	}
}

func TestLoad_TMDBValidation(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{"zero timeout", "TMDB_TIMEOUT", "0s"},
		{"negative timeout", "TMDB_TIMEOUT", "-1s"},
		{"zero burst", "TMDB_BURST", "0"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clearEnv(t)
			setRequired(t)
			t.Setenv(c.key, c.val)
			if _, err := Load(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestMustLoad_PanicsOnInvalid(t *testing.T) {
	clearEnv(t)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustLoad()
}
