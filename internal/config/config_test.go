package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestMustLoadPathRoundTrip(t *testing.T) {
	want := Config{
		Env: "dev",
		BotConfig: BotConfig{
			TgbotApiToken: "123456:test-token",
		},
		ExportConfig: ExportConfig{
			FontPath:     "fonts/Vazirmatn-Regular.ttf",
			TemplatePath: "forms/daily.jpg",
		},
	}

	buf, err := yaml.Marshal(&want)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	got := MustLoadPath(path)

	if got.Env != want.Env {
		t.Errorf("Env = %q, want %q", got.Env, want.Env)
	}
	if got.BotConfig.TgbotApiToken != want.BotConfig.TgbotApiToken {
		t.Errorf("TgbotApiToken = %q, want %q", got.BotConfig.TgbotApiToken, want.BotConfig.TgbotApiToken)
	}
	if got.ExportConfig.FontPath != want.ExportConfig.FontPath {
		t.Errorf("FontPath = %q, want %q", got.ExportConfig.FontPath, want.ExportConfig.FontPath)
	}
	if got.ExportConfig.TemplatePath != want.ExportConfig.TemplatePath {
		t.Errorf("TemplatePath = %q, want %q", got.ExportConfig.TemplatePath, want.ExportConfig.TemplatePath)
	}
}

func TestExportDefaults(t *testing.T) {
	cfgYAML := []byte("env: local\nbot:\n  tgbot_apitoken: \"123:abc\"\n")

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, cfgYAML, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := MustLoadPath(path)

	if cfg.ExportConfig.FontPath == "" {
		t.Error("FontPath default not applied")
	}
	if cfg.ExportConfig.TemplatePath == "" {
		t.Error("TemplatePath default not applied")
	}
}
