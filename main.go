package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/BL-CZY/desktop-file-parser/desktop"
	"github.com/BL-CZY/desktop-file-parser/fancy"
)

const AppName = "dentry"

var WARNING string
var ERROR string

func init() {
	fp := fancy.Print{}
	WARNING = fp.Bold().Color(fancy.Yellow).Format("WARNING: ")
	fp = fancy.Print{}
	ERROR = fp.Bold().Color(fancy.Red).Format("ERROR: ")
}

func main() {
	if len(os.Args) < 2 {
		globalHelp()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "show":
		fs := flag.NewFlagSet("show", flag.ExitOnError)
		locale := fs.String("locale", "", "resolve localized values for this locale (POSIX or BCP 47 form)")
		if err := fs.Parse(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, ERROR+"Unable to parse flags: %s\n", err)
			os.Exit(1)
		}
		if fs.NArg() != 1 {
			fmt.Fprintf(os.Stderr, "usage: %s show [-locale tag] /foo/bar.desktop\n", AppName)
			os.Exit(1)
		}
		showEntry(fs.Arg(0), cliLocale(*locale))
	case "validate":
		if len(os.Args) < 3 {
			fmt.Fprintf(os.Stderr, "usage: %s validate /foo/bar.desktop...\n", AppName)
			os.Exit(1)
		}
		os.Exit(validateFiles(os.Args[2:]))
	case "fmt":
		if len(os.Args) != 3 {
			fmt.Fprintf(os.Stderr, "usage: %s fmt /foo/bar.desktop\n", AppName)
			os.Exit(1)
		}
		fmt.Print(parseFile(os.Args[2]).String())
	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		locale := fs.String("locale", "", "resolve localized values for this locale (POSIX or BCP 47 form)")
		all := fs.Bool("a", false, "include entries marked Hidden or NoDisplay")
		if err := fs.Parse(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, ERROR+"Unable to parse flags: %s\n", err)
			os.Exit(1)
		}
		listEntries(cliLocale(*locale), *all)
	case "help", "-h", "--help":
		globalHelp()
		os.Exit(0)
	default:
		globalHelp()
		os.Exit(1)
	}
}

func globalHelp() {
	fmt.Fprint(os.Stderr,
		"usage "+AppName+" <command>\n"+
			"\n"+
			"  show               Display a parsed desktop entry file\n"+
			"  validate           Check desktop entry files against the spec\n"+
			"  fmt                Parse a desktop entry file and print it normalized\n"+
			"  list               Display desktop entries installed in the XDG application dirs\n"+
			"  help               Display this help\n"+
			"\n"+
			"Call this commands without any arguments for per command help.\n"+
			"")
}

// cliLocale turns the -locale flag into a Locale, falling back to the
// environment when the flag is absent.
func cliLocale(flagval string) desktop.Locale {
	if flagval == "" {
		return desktop.DefaultLocale()
	}
	return desktop.LookupLocale(flagval)
}

func parseFile(path string) *desktop.File {
	buf, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, ERROR+"Couldn't read '%s': %s\n", path, err)
		os.Exit(1)
	}
	f, err := desktop.Parse(string(buf))
	if err != nil {
		fmt.Fprintf(os.Stderr, ERROR+"Couldn't parse '%s': %s\n", path, err)
		os.Exit(1)
	}
	return f
}
