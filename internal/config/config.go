package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	IndentTab   = "tab"
	IndentSpace = "space"
)

type EditorOptions struct {
	IndentWidth         int    `toml:"indent-width"`
	Indent              string `toml:"indent"`
	LineNumbers         bool   `toml:"line-numbers"`
	RelativeLineNumbers bool   `toml:"relative-line-numbers"`
	Syntax              bool   `toml:"syntax"`
	QuitTimes           int    `toml:"quit-times"`
}

// IndentByte is the character used for auto-indent.
func (o EditorOptions) IndentByte() byte {
	if o.Indent == IndentSpace {
		return ' '
	}
	return '\t'
}

type Theme struct {
	Theme                      string `toml:"theme"`
	Foreground                 string `toml:"foreground"`
	Background                 string `toml:"background"`
	StatuslineForeground       string `toml:"statusline-foreground"`
	StatuslineBackground       string `toml:"statusline-background"`
	CommandlineForeground      string `toml:"commandline-foreground"`
	CommandlineBackground      string `toml:"commandline-background"`
	LineNumberForeground       string `toml:"line-number-foreground"`
	LineNumberActiveForeground string `toml:"line-number-active-foreground"`
	SelectionForeground        string `toml:"selection-foreground"`
	SelectionBackground        string `toml:"selection-background"`
	SearchMatchForeground      string `toml:"search-foreground"`
	SearchMatchBackground      string `toml:"search-background"`
	SyntaxKeyword              string `toml:"syntax-keyword"`
	SyntaxType                 string `toml:"syntax-type"`
	SyntaxString               string `toml:"syntax-string"`
	SyntaxComment              string `toml:"syntax-comment"`
	SyntaxNumber               string `toml:"syntax-number"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
}

// userEditor mirrors EditorOptions with pointers so that an explicit
// false or zero in the file can be told apart from a missing key.
type userEditor struct {
	IndentWidth         *int    `toml:"indent-width"`
	Indent              *string `toml:"indent"`
	LineNumbers         *bool   `toml:"line-numbers"`
	RelativeLineNumbers *bool   `toml:"relative-line-numbers"`
	Syntax              *bool   `toml:"syntax"`
	QuitTimes           *int    `toml:"quit-times"`
}

type userConfig struct {
	Editor userEditor `toml:"editor"`
	Theme  Theme      `toml:"theme"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			IndentWidth: 8,
			Indent:      IndentTab,
			LineNumbers: true,
			Syntax:      true,
			QuitTimes:   3,
		},
		Theme: Theme{
			Foreground:                 "#B3B1AD",
			Background:                 "#0A0E14",
			StatuslineForeground:       "#0A0E14",
			StatuslineBackground:       "#B3B1AD",
			CommandlineForeground:      "#B3B1AD",
			CommandlineBackground:      "#0A0E14",
			LineNumberForeground:       "#3E4B59",
			LineNumberActiveForeground: "#B3B1AD",
			SelectionForeground:        "#B3B1AD",
			SelectionBackground:        "#27425A",
			SearchMatchForeground:      "#000000",
			SearchMatchBackground:      "#FFD700",
			SyntaxKeyword:              "#FFA759",
			SyntaxType:                 "#5CCFE6",
			SyntaxString:               "#BAE67E",
			SyntaxComment:              "#5C6773",
			SyntaxNumber:               "#D4BFFF",
		},
	}
}

// Load reads config.toml from ConfigDir. A missing file yields defaults.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

func LoadFrom(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg userConfig
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	ue := userCfg.Editor
	if ue.IndentWidth != nil && *ue.IndentWidth > 0 {
		cfg.Editor.IndentWidth = *ue.IndentWidth
	}
	if ue.Indent != nil {
		switch v := strings.ToLower(strings.TrimSpace(*ue.Indent)); v {
		case IndentTab, IndentSpace:
			cfg.Editor.Indent = v
		}
	}
	if ue.LineNumbers != nil {
		cfg.Editor.LineNumbers = *ue.LineNumbers
	}
	if ue.RelativeLineNumbers != nil {
		cfg.Editor.RelativeLineNumbers = *ue.RelativeLineNumbers
	}
	if cfg.Editor.RelativeLineNumbers {
		cfg.Editor.LineNumbers = true
	}
	if ue.Syntax != nil {
		cfg.Editor.Syntax = *ue.Syntax
	}
	if ue.QuitTimes != nil && *ue.QuitTimes >= 0 {
		cfg.Editor.QuitTimes = *ue.QuitTimes
	}

	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.StatuslineForeground != "" {
		dst.StatuslineForeground = src.StatuslineForeground
	}
	if src.StatuslineBackground != "" {
		dst.StatuslineBackground = src.StatuslineBackground
	}
	if src.CommandlineForeground != "" {
		dst.CommandlineForeground = src.CommandlineForeground
	}
	if src.CommandlineBackground != "" {
		dst.CommandlineBackground = src.CommandlineBackground
	}
	if src.LineNumberForeground != "" {
		dst.LineNumberForeground = src.LineNumberForeground
	}
	if src.LineNumberActiveForeground != "" {
		dst.LineNumberActiveForeground = src.LineNumberActiveForeground
	}
	if src.SelectionForeground != "" {
		dst.SelectionForeground = src.SelectionForeground
	}
	if src.SelectionBackground != "" {
		dst.SelectionBackground = src.SelectionBackground
	}
	if src.SearchMatchForeground != "" {
		dst.SearchMatchForeground = src.SearchMatchForeground
	}
	if src.SearchMatchBackground != "" {
		dst.SearchMatchBackground = src.SearchMatchBackground
	}
	if src.SyntaxKeyword != "" {
		dst.SyntaxKeyword = src.SyntaxKeyword
	}
	if src.SyntaxType != "" {
		dst.SyntaxType = src.SyntaxType
	}
	if src.SyntaxString != "" {
		dst.SyntaxString = src.SyntaxString
	}
	if src.SyntaxComment != "" {
		dst.SyntaxComment = src.SyntaxComment
	}
	if src.SyntaxNumber != "" {
		dst.SyntaxNumber = src.SyntaxNumber
	}
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

// LoadTheme accepts both a flat theme file and one wrapped in [theme].
func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var wrap struct {
		Theme *Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err == nil && wrap.Theme != nil {
		return *wrap.Theme, nil
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("KILOVI_CONFIG_HOME"); v != "" {
		return filepath.Clean(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "kilovi"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "kilovi"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
