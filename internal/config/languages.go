package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Language is one [[language]] entry of languages.toml. Keywords ending in
// "|" are highlighted as types.
type Language struct {
	Name             string   `toml:"name"`
	FileTypes        []string `toml:"file-types"`
	Keywords         []string `toml:"keywords"`
	LineComment      string   `toml:"line-comment"`
	BlockComment     []string `toml:"block-comment"`
	HighlightNumbers bool     `toml:"highlight-numbers"`
	HighlightStrings bool     `toml:"highlight-strings"`
	Grammar          string   `toml:"grammar"`
}

// BlockDelimiters returns the block comment start and end, or empty strings
// when the entry does not declare a pair.
func (l Language) BlockDelimiters() (string, string) {
	if len(l.BlockComment) != 2 {
		return "", ""
	}
	return l.BlockComment[0], l.BlockComment[1]
}

type Languages struct {
	Languages []Language `toml:"language"`
}

func (l Languages) Match(path string) *Language {
	base := filepath.Base(path)
	baseLower := strings.ToLower(base)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
	for i := range l.Languages {
		lang := &l.Languages[i]
		for _, ft := range lang.FileTypes {
			ftLower := strings.ToLower(ft)
			if ftLower == ext || ftLower == baseLower {
				return lang
			}
			if strings.HasPrefix(ftLower, ".") && strings.TrimPrefix(ftLower, ".") == ext {
				return lang
			}
		}
	}
	return nil
}

func LoadLanguages() (Languages, error) {
	path, err := LanguagesPath()
	if err != nil {
		return Languages{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Languages{}, nil
		}
		return Languages{}, err
	}

	var cfg Languages
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Languages{}, err
	}
	return cfg, nil
}

func LanguagesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "languages.toml"), nil
}
