package cmd

import (
	"testing"
)

func TestRootCmd_Structure(t *testing.T) {
	expected := []string{"analyze", "report", "hierarchy", "overview", "stats", "extract", "serve", "init"}

	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range expected {
		if !names[want] {
			t.Errorf("missing expected command: %s", want)
		}
	}
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	for _, name := range []string{"verbose", "config", "format", "no-cache"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing global flag: --%s", name)
		}
	}

	verboseFlag := rootCmd.PersistentFlags().Lookup("verbose")
	if verboseFlag.Shorthand != "v" {
		t.Errorf("expected --verbose shorthand 'v', got %q", verboseFlag.Shorthand)
	}

	if rootCmd.Flags().Lookup("for-agents") == nil {
		t.Error("missing --for-agents flag on root command")
	}
}

func TestExportCommands_Args(t *testing.T) {
	// Commands consuming an export source require exactly one argument.
	for _, cmd := range []struct {
		name string
		args func(args []string) error
	}{
		{"analyze", func(args []string) error { return analyzeCmd.Args(analyzeCmd, args) }},
		{"report", func(args []string) error { return reportCmd.Args(reportCmd, args) }},
		{"hierarchy", func(args []string) error { return hierarchyCmd.Args(hierarchyCmd, args) }},
		{"overview", func(args []string) error { return overviewCmd.Args(overviewCmd, args) }},
		{"stats", func(args []string) error { return statsCmd.Args(statsCmd, args) }},
	} {
		if err := cmd.args([]string{}); err == nil {
			t.Errorf("%s: expected error with no args", cmd.name)
		}
		if err := cmd.args([]string{"export.zip"}); err != nil {
			t.Errorf("%s: expected no error with 1 arg, got %v", cmd.name, err)
		}
		if err := cmd.args([]string{"export.zip", "extra"}); err == nil {
			t.Errorf("%s: expected error with 2 args", cmd.name)
		}
	}
}

func TestExtractCmd_Args(t *testing.T) {
	// Extract takes the archive plus an optional destination.
	if err := extractCmd.Args(extractCmd, []string{}); err == nil {
		t.Error("expected error with no args")
	}
	if err := extractCmd.Args(extractCmd, []string{"export.zip"}); err != nil {
		t.Errorf("expected no error with 1 arg, got %v", err)
	}
	if err := extractCmd.Args(extractCmd, []string{"export.zip", "out"}); err != nil {
		t.Errorf("expected no error with 2 args, got %v", err)
	}
	if err := extractCmd.Args(extractCmd, []string{"export.zip", "out", "extra"}); err == nil {
		t.Error("expected error with 3 args")
	}
}

func TestServeCmd_Flags(t *testing.T) {
	for _, name := range []string{"mcp", "export", "tools", "timeout", "status", "stop", "list-tools"} {
		if serveCmd.Flags().Lookup(name) == nil {
			t.Errorf("missing serve flag: --%s", name)
		}
	}

	timeoutFlag := serveCmd.Flags().Lookup("timeout")
	if timeoutFlag.DefValue != "30m" {
		t.Errorf("expected --timeout default 30m, got %q", timeoutFlag.DefValue)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"30m", false},
		{"1h", false},
		{"0", false},
		{"", false},
		{"bogus", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parseDuration(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestBuildCommandInfo(t *testing.T) {
	info := buildCommandInfo(rootCmd)

	if info.Name != "wz" {
		t.Errorf("expected root command name wz, got %q", info.Name)
	}
	if len(info.Subcommands) == 0 {
		t.Error("expected subcommands in agent discovery output")
	}

	found := false
	for _, sub := range info.Subcommands {
		if sub.Name == "analyze" {
			found = true
			if sub.Description == "" {
				t.Error("analyze discovery entry has no description")
			}
		}
	}
	if !found {
		t.Error("analyze command missing from agent discovery output")
	}
}
