package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BL-CZY/desktop-file-parser/desktop"
	"github.com/BL-CZY/desktop-file-parser/fancy"
)

func showEntry(path string, locale desktop.Locale) {
	f := parseFile(path)
	e := f.Entry

	label := fancy.Print{}
	label.Color(fancy.Cyan)
	row := func(name, value string) {
		if value == "" {
			return
		}
		fmt.Printf("%s: %s\n", label.Format(name), value)
	}

	row("Name", e.Name.Resolve(locale))
	row("Type", e.Type.Kind().String())
	row("Version", e.Version)
	row("GenericName", e.GenericName.Resolve(locale))
	row("Comment", e.Comment.Resolve(locale))
	row("Icon", e.Icon)
	if e.Hidden {
		row("Hidden", "true")
	}
	if e.NoDisplay {
		row("NoDisplay", "true")
	}
	row("OnlyShowIn", strings.Join(e.OnlyShowIn, ", "))
	row("NotShowIn", strings.Join(e.NotShowIn, ", "))

	switch t := e.Type.(type) {
	case *desktop.ApplicationFields:
		row("Exec", t.Exec)
		row("TryExec", t.TryExec)
		row("Path", t.Path)
		if t.Terminal {
			row("Terminal", "true")
		}
		row("Categories", strings.Join(t.Categories, ", "))
		row("MimeType", strings.Join(t.MimeType, ", "))
		row("Keywords", strings.Join(t.Keywords.Resolve(locale), ", "))
	case *desktop.LinkFields:
		row("URL", t.URL)
	}

	for _, a := range f.Actions {
		name := fancy.Print{}
		name.Bold()
		fmt.Printf("%s: %s", label.Format("Action"), name.Format(a.Name.Resolve(locale)))
		if a.Exec != "" {
			fmt.Printf(" (%s)", a.Exec)
		}
		fmt.Print("\n")
	}

	for _, w := range f.Warnings {
		fmt.Fprintf(os.Stderr, WARNING+"%s\n", w)
	}
}

func validateFiles(paths []string) (exitCode int) {
	for _, path := range paths {
		buf, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, ERROR+"Couldn't read '%s': %s\n", path, err)
			exitCode = 1
			continue
		}
		f, err := desktop.Parse(string(buf))
		if err != nil {
			// a joined validation error reports one problem per line
			for _, msg := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(os.Stderr, ERROR+"%s: %s\n", path, msg)
			}
			exitCode = 1
			continue
		}
		for _, w := range f.Warnings {
			fmt.Fprintf(os.Stderr, WARNING+"%s: %s\n", path, w)
		}
		fmt.Printf("%s: OK\n", path)
	}
	return exitCode
}
