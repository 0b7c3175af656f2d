package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Theme holds the four dashboard colors. It is read once at startup and
// never mutated afterward.
type Theme struct {
	PrimaryColor             string `toml:"primaryColor" json:"primaryColor"`
	BackgroundColor          string `toml:"backgroundColor" json:"backgroundColor"`
	SecondaryBackgroundColor string `toml:"secondaryBackgroundColor" json:"secondaryBackgroundColor"`
	TextColor                string `toml:"textColor" json:"textColor"`
}

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// DefaultTheme returns the built-in Groovify palette.
func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:             "#B53E84",
		BackgroundColor:          "#F5EEEF",
		SecondaryBackgroundColor: "#EFC0E3",
		TextColor:                "#2D3748",
	}
}

// LoadTheme reads the theme file. A missing file yields the default
// palette; a present but invalid file is a startup error.
func LoadTheme(path string) (Theme, error) {
	theme := DefaultTheme()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return theme, nil
	}

	if _, err := toml.DecodeFile(path, &theme); err != nil {
		return Theme{}, fmt.Errorf("failed to parse theme file %s: %w", path, err)
	}

	for name, color := range map[string]string{
		"primaryColor":             theme.PrimaryColor,
		"backgroundColor":          theme.BackgroundColor,
		"secondaryBackgroundColor": theme.SecondaryBackgroundColor,
		"textColor":                theme.TextColor,
	} {
		if !hexColorRe.MatchString(color) {
			return Theme{}, fmt.Errorf("theme key %s: %q is not a hex color", name, color)
		}
	}

	return theme, nil
}
