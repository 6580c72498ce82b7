package xdg

import (
	"os"
	"path/filepath"
	"strings"
)

//SPEC: https://specifications.freedesktop.org/basedir-spec/latest/

const (
	DATA_HOME = iota
	CONFIG_HOME
	STATE_HOME
	CACHE_HOME
)

func Get(dir int) string {
	switch dir {
	case DATA_HOME:
		return withfallback("XDG_DATA_HOME", filepath.Join(os.Getenv("HOME"), ".local/share"))
	case CONFIG_HOME:
		return withfallback("XDG_CONFIG_HOME", filepath.Join(os.Getenv("HOME"), ".config"))
	case STATE_HOME:
		return withfallback("XDG_STATE_HOME", filepath.Join(os.Getenv("HOME"), ".local/state"))
	case CACHE_HOME:
		return withfallback("XDG_CACHE_HOME", filepath.Join(os.Getenv("HOME"), ".cache"))
	default:
		panic("invalid or unhandled XDG constant supplied")
	}
}

// DataDirs returns the preference-ordered base directories to search for
// data files, $XDG_DATA_HOME first.
func DataDirs() []string {
	dirs := []string{Get(DATA_HOME)}

	xdgDataDirs := os.Getenv("XDG_DATA_DIRS")
	if xdgDataDirs == "" {
		xdgDataDirs = "/usr/local/share/:/usr/share/"
	}
	for _, d := range strings.Split(xdgDataDirs, ":") {
		if d == "" {
			continue
		}
		dirs = append(dirs, filepath.Clean(d))
	}
	return dirs
}

// ApplicationDirs returns every directory that may hold .desktop files,
// including the flatpak export locations, without duplicates.
func ApplicationDirs() []string {
	var dirs []string
	seen := make(map[string]bool)
	add := func(d string) {
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}

	for _, d := range DataDirs() {
		add(filepath.Join(d, "applications"))
	}
	// flatpak exports its apps outside the regular data dirs on some setups
	add(filepath.Join(os.Getenv("HOME"), ".local/share/flatpak/exports/share/applications"))
	add("/var/lib/flatpak/exports/share/applications")

	return dirs
}

func withfallback(xdg, fallback string) string {
	xdgdir := os.Getenv(xdg)
	if xdgdir == "" {
		return fallback
	}
	return xdgdir
}
