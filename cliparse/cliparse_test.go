// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("ADMIN_KEY_SALT", "test-salt")
	os.Setenv("ADMIN_PASSWORD", "test-pass")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" || cfg.DatabaseURL != "votes.db" {
		t.Errorf("expected sqlite defaults, got %s %s", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.AdminUser != "admin" {
		t.Errorf("expected default admin username, got %q", cfg.AdminUser)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-admin-salt", "s1", "-admin-pass", "pw"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_MissingSecrets(t *testing.T) {
	os.Clearenv()

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error without ADMIN_KEY_SALT")
	}
	if _, err := ParseFlags([]string{"-admin-salt", "s1"}); err == nil {
		t.Error("expected error without ADMIN_PASSWORD")
	}
}

func TestParseFlags_PostgresRequiresURL(t *testing.T) {
	os.Clearenv()

	_, err := ParseFlags([]string{"-t", "postgres", "-admin-salt", "s1", "-admin-pass", "pw"})
	if err == nil {
		t.Error("postgres without a URL should be rejected")
	}
}

func TestParseFlags_WorkerDefaults(t *testing.T) {
	os.Clearenv()

	cfg, err := ParseFlags([]string{"-admin-salt", "s1", "-admin-pass", "pw"})
	if err != nil {
		t.Fatal(err)
	}

	if len(cfg.WorkerCommand) != 1 || cfg.WorkerCommand[0] != "./voiceworker" {
		t.Errorf("unexpected worker command %v", cfg.WorkerCommand)
	}
	if cfg.MailboxDir != "run" || cfg.LogDir != "logs" {
		t.Errorf("unexpected dirs %q %q", cfg.MailboxDir, cfg.LogDir)
	}
}

func TestParseFlags_EvictAfter(t *testing.T) {
	os.Clearenv()

	cfg, err := ParseFlags([]string{"-admin-salt", "s1", "-admin-pass", "pw", "-evict-after", "5"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.EvictAfter != 5*time.Minute {
		t.Errorf("expected 5m, got %v", cfg.EvictAfter)
	}
}

func TestWorkerConfigFromEnv(t *testing.T) {
	os.Clearenv()
	os.Setenv("MAILBOX_DIR", "/tmp/mailboxes")
	os.Setenv("LISTEN_COMMAND", "python3 recognize.py")
	defer os.Clearenv()

	cfg, err := WorkerConfigFromEnv()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.DatabaseURL != "votes.db" || cfg.DriverName() != "sqlite" {
		t.Errorf("unexpected db defaults: %+v", cfg)
	}
	if cfg.MailboxDir != "/tmp/mailboxes" {
		t.Errorf("unexpected mailbox dir %q", cfg.MailboxDir)
	}
	if cfg.ListenCommand != "python3 recognize.py" {
		t.Errorf("unexpected listen command %q", cfg.ListenCommand)
	}
}
