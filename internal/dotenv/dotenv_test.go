package dotenv

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile_MissingFileIsNoop(t *testing.T) {
	t.Parallel()
	if err := LoadFile(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("LoadFile missing file error: %v", err)
	}
}

func TestLoadFile_LoadsValuesAndPreservesExisting(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), ".env")
	content := "" +
		"# credentials for local development\n" +
		"GEMINI_API_KEY=file-key\n" +
		"GOOGLE_TTS_API_KEY=\"quoted key\"\n" +
		"export WHISPER_URL=http://localhost:9000\n" +
		"EXISTING=from_file\n" +
		"=no_key\n"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("EXISTING", "already_set")
	t.Setenv("GEMINI_API_KEY", "")
	os.Unsetenv("GEMINI_API_KEY")
	t.Setenv("GOOGLE_TTS_API_KEY", "")
	os.Unsetenv("GOOGLE_TTS_API_KEY")
	t.Setenv("WHISPER_URL", "")
	os.Unsetenv("WHISPER_URL")

	if err := LoadFile(envPath); err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}

	if got := os.Getenv("GEMINI_API_KEY"); got != "file-key" {
		t.Errorf("GEMINI_API_KEY=%q, want %q", got, "file-key")
	}
	if got := os.Getenv("GOOGLE_TTS_API_KEY"); got != "quoted key" {
		t.Errorf("GOOGLE_TTS_API_KEY=%q, want quotes stripped", got)
	}
	if got := os.Getenv("WHISPER_URL"); got != "http://localhost:9000" {
		t.Errorf("WHISPER_URL=%q, want export prefix handled", got)
	}
	if got := os.Getenv("EXISTING"); got != "already_set" {
		t.Errorf("EXISTING=%q, want existing value preserved", got)
	}
}

func TestParseLine(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		key     string
		val     string
		ok      bool
	}{
		{"KEY=value", "KEY", "value", true},
		{"  KEY = value ", "KEY", "value", true},
		{"export KEY=value", "KEY", "value", true},
		{`KEY='single quoted'`, "KEY", "single quoted", true},
		{"# comment", "", "", false},
		{"", "", "", false},
		{"=orphan", "", "", false},
		{"NOEQUALS", "", "", false},
	}
	for _, tc := range cases {
		key, val, ok := parseLine(tc.in)
		if key != tc.key || val != tc.val || ok != tc.ok {
			t.Errorf("parseLine(%q) = %q, %q, %v; want %q, %q, %v", tc.in, key, val, ok, tc.key, tc.val, tc.ok)
		}
	}
}
