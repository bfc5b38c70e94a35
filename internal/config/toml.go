// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/funtext/internal/content"
	"github.com/verte-zerg/funtext/internal/wordlist"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Player   PlayerConfig              `toml:"player"`
	Content  ContentConfig             `toml:"content"`
	Assembly map[string]AssemblyConfig `toml:"assembly"`
	Pos      map[string]PosConfig      `toml:"pos"`
	Objects  map[string]ObjectsConfig  `toml:"objects"`
}

// PlayerConfig maps player settings.
type PlayerConfig struct {
	Name *string `toml:"name"`
}

// ContentConfig points at custom corpus files.
type ContentConfig struct {
	Phrases  *string `toml:"phrases"`
	PosWords *string `toml:"pos-words"`
}

// AssemblyConfig overrides one word-assembly difficulty.
type AssemblyConfig struct {
	Label      *string  `toml:"label"`
	TimeLimit  *int     `toml:"time-limit"`
	MinWords   *int     `toml:"min-words"`
	MaxWords   *int     `toml:"max-words"`
	Prefill    *float64 `toml:"prefill"`
	Multiplier *float64 `toml:"multiplier"`
}

// PosConfig overrides one part-of-speech difficulty.
type PosConfig struct {
	Label     *string `toml:"label"`
	TimeLimit *int    `toml:"time-limit"`
	Words     *int    `toml:"words"`
}

// ObjectsConfig overrides one object-selection difficulty.
type ObjectsConfig struct {
	Label     *string `toml:"label"`
	TimeLimit *int    `toml:"time-limit"`
	Count     *int    `toml:"count"`
	Rounds    *int    `toml:"rounds"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Tables applies the difficulty overrides on top of base and validates the result.
// Unknown keys add a difficulty that starts from the medium entry.
func (c FileConfig) Tables(base content.Tables) (content.Tables, error) {
	for key, o := range c.Assembly {
		d, ok := base.Assembly[key]
		if !ok {
			d = base.Assembly[content.Medium]
			d.Label = key
		}
		setString(&d.Label, o.Label)
		setInt(&d.TimeLimit, o.TimeLimit)
		setInt(&d.MinWords, o.MinWords)
		setInt(&d.MaxWords, o.MaxWords)
		setFloat(&d.PrefillProbability, o.Prefill)
		setFloat(&d.ScoreMultiplier, o.Multiplier)
		base.Assembly[key] = d
	}
	for key, o := range c.Pos {
		d, ok := base.Pos[key]
		if !ok {
			d = base.Pos[content.Medium]
			d.Label = key
		}
		setString(&d.Label, o.Label)
		setInt(&d.TimeLimit, o.TimeLimit)
		setInt(&d.WordsCount, o.Words)
		base.Pos[key] = d
	}
	for key, o := range c.Objects {
		d, ok := base.Objects[key]
		if !ok {
			d = base.Objects[content.Medium]
			d.Label = key
		}
		setString(&d.Label, o.Label)
		setInt(&d.TimeLimit, o.TimeLimit)
		setInt(&d.Count, o.Count)
		setInt(&d.Rounds, o.Rounds)
		base.Objects[key] = d
	}
	if err := base.Validate(); err != nil {
		return content.Tables{}, fmt.Errorf("invalid config: %w", err)
	}
	return base, nil
}

// Corpus replaces the built-in phrases and part-of-speech words with the configured files.
func (c FileConfig) Corpus(base content.Corpus) (content.Corpus, error) {
	if c.Content.Phrases != nil && *c.Content.Phrases != "" {
		phrases, err := wordlist.LoadPhrases(*c.Content.Phrases)
		if err != nil {
			return content.Corpus{}, fmt.Errorf("failed to load phrases: %w", err)
		}
		base.Phrases = phrases
	}
	if c.Content.PosWords != nil && *c.Content.PosWords != "" {
		words, err := wordlist.LoadPosWords(*c.Content.PosWords)
		if err != nil {
			return content.Corpus{}, fmt.Errorf("failed to load pos words: %w", err)
		}
		base.PosWords = words
	}
	return base, nil
}

// PlayerName returns the configured default player name, or "".
func (c FileConfig) PlayerName() string {
	if c.Player.Name == nil {
		return ""
	}
	return *c.Player.Name
}

func setString(target, value *string) {
	if value != nil {
		*target = *value
	}
}

func setInt(target, value *int) {
	if value != nil {
		*target = *value
	}
}

func setFloat(target, value *float64) {
	if value != nil {
		*target = *value
	}
}
