package main

import (
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/funtext/internal/config"
	"github.com/verte-zerg/funtext/internal/content"
)

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var cfg config.FileConfig
	if _, err := toml.Decode(defaultConfigTemplate(), &cfg); err != nil {
		t.Fatalf("template must be valid TOML: %v", err)
	}
	if _, err := cfg.Tables(content.DefaultTables()); err != nil {
		t.Fatalf("template must produce valid tables: %v", err)
	}
}

func TestValidatePlayFlags(t *testing.T) {
	tables := content.DefaultTables()
	cases := []struct {
		mode, difficulty string
		ok               bool
	}{
		{"", "whatever", true},
		{"pos", "hard", true},
		{"chess", "easy", false},
		{"objects", "extreme", false},
	}
	for _, tc := range cases {
		playMode, playDifficulty = tc.mode, tc.difficulty
		err := validatePlayFlags(tables)
		if (err == nil) != tc.ok {
			t.Fatalf("mode %q difficulty %q: unexpected error %v", tc.mode, tc.difficulty, err)
		}
	}
	playMode, playDifficulty = "", content.Easy
}

func TestHistoryAndLeaderboardCommandsRegistered(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"history", "leaderboard", "levels", "config"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("expected %s command, got %v", name, err)
		}
	}
	if root.Flags().Lookup("mode") == nil || root.Flags().Lookup("difficulty") == nil {
		t.Fatalf("expected play flags on root")
	}
}
