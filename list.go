package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BL-CZY/desktop-file-parser/desktop"
	"github.com/BL-CZY/desktop-file-parser/fancy"
	"github.com/BL-CZY/desktop-file-parser/xdg"
)

func listEntries(locale desktop.Locale, showAll bool) {
	name := fancy.Print{}
	name.Color(fancy.Cyan)
	path := fancy.Print{}
	path.Dim()

	tbl := newTable(30, 12, -1).withFormatters(name, fancy.Print{}, path)
	tbl.printHead("Name", "Type", "Path")

	seen := make(map[string]bool)
	for _, dir := range xdg.ApplicationDirs() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			// most systems won't have every candidate dir, that's fine
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".desktop") {
				continue
			}
			// earlier dirs shadow later ones, per the basedir spec
			if seen[e.Name()] {
				continue
			}
			seen[e.Name()] = true

			full := filepath.Join(dir, e.Name())
			buf, err := os.ReadFile(full)
			if err != nil {
				fmt.Fprintf(os.Stderr, WARNING+"Couldn't read '%s': %s\n", full, err)
				continue
			}
			f, err := desktop.Parse(string(buf))
			if err != nil {
				fmt.Fprintf(os.Stderr, WARNING+"Couldn't parse '%s': %s\n", full, firstLine(err.Error()))
				continue
			}
			if !showAll && (f.Entry.Hidden || f.Entry.NoDisplay) {
				continue
			}
			tbl.printRow(f.Entry.Name.Resolve(locale), f.Entry.Type.Kind().String(), full)
		}
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
