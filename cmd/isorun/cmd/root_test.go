package cmd

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestRootCommand_Help(t *testing.T) {
	resetViper()

	stdout, _, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stdout, "freshly spawned child") {
		t.Errorf("expected long description in help, got: %s", stdout)
	}
	if !strings.Contains(stdout, "run") || !strings.Contains(stdout, "batch") {
		t.Errorf("expected subcommands in help, got: %s", stdout)
	}
}

func TestNewRunner_ReadsConfiguration(t *testing.T) {
	resetViper()
	viper.Set("interpreter", "/opt/php/bin/php")
	viper.Set("file_flag", "")
	viper.Set("temp_dir", "/var/tmp/isorun")
	viper.Set("debugger", true)

	r := newRunner()

	if r.Interpreter != "/opt/php/bin/php" {
		t.Errorf("Interpreter = %q", r.Interpreter)
	}
	if r.Flags.File != "" {
		t.Errorf("Flags.File = %q, want empty", r.Flags.File)
	}
	if r.TempDir != "/var/tmp/isorun" {
		t.Errorf("TempDir = %q", r.TempDir)
	}
	if !r.Flags.DebuggerFrontEnd {
		t.Error("expected DebuggerFrontEnd true")
	}
}

func TestNewRunner_Defaults(t *testing.T) {
	resetViper()
	viper.Set("interpreter", "php")
	viper.Set("file_flag", "-f")

	r := newRunner()

	if r.Flags.Setting != "-d" {
		t.Errorf("Flags.Setting = %q, want -d", r.Flags.Setting)
	}
	if r.Flags.ArgSeparator != "--" {
		t.Errorf("Flags.ArgSeparator = %q, want --", r.Flags.ArgSeparator)
	}
}
