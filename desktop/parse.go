package desktop

import (
	"fmt"
	"strings"
	"unicode"
)

//SPEC: https://specifications.freedesktop.org/desktop-entry-spec/latest/

const (
	groupDesktopEntry  = "Desktop Entry"
	groupDesktopAction = "Desktop Action "
)

// rawLine is one Key[locale]=Value line; value is kept raw (escaped).
type rawLine struct {
	key    string
	locale string
	value  string
	line   int
}

type rawKey struct {
	key    string
	locale string
}

type rawGroup struct {
	name     string
	header   int // line number of the [group] header
	lines    []rawLine
	seen     map[rawKey]bool
	comments []string // comment and blank lines preceding the header
}

// Parse reads the full contents of a desktop entry file and returns the
// typed model.
//
// Lexical and structural problems (malformed lines, a missing or misplaced
// [Desktop Entry] group) abort immediately. Field-level problems inside a
// group are collected and returned together, wrapped in a single error.
// Parse never touches the filesystem; callers hand it the file text.
func Parse(content string) (*File, error) {
	// Desktop entry files are encoded in UTF-8 and interpreted as lines
	// separated by LF. Case is significant everywhere in the file.
	var (
		f          File
		entry      *rawGroup
		entryInner []string
		first      *rawGroup
		actions    []*rawGroup
		actIDs     = make(map[string]bool)
		others     []*rawGroup
		current    *rawGroup
		pending    []string
	)

	// a comment or blank line belongs in front of the next group header;
	// inside a group body it stays with that group
	settle := func() {
		if len(pending) == 0 {
			return
		}
		if current == entry {
			entryInner = append(entryInner, pending...)
		} else {
			current.comments = append(current.comments, pending...)
		}
		pending = nil
	}

	lines := strings.Split(content, "\n")
	// a trailing newline terminates the last line, it is not a blank line
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for i, text := range lines {
		lineNo := i + 1
		// the spec isn't explicit about surrounding whitespace, but failing
		// a parse over a space before a '#' would help nobody
		line := strings.TrimSpace(text)

		// Lines beginning with a # and blank lines are comments. They are
		// uninterpreted but keep their place across a read/write cycle.
		if line == "" || strings.HasPrefix(line, "#") {
			pending = append(pending, text)
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			name := line[1 : len(line)-1]
			if err := checkGroupName(name, lineNo); err != nil {
				return nil, err
			}
			g := &rawGroup{name: name, header: lineNo, seen: make(map[rawKey]bool), comments: pending}
			pending = nil
			if first == nil {
				first = g
			}
			switch {
			case name == groupDesktopEntry:
				if entry != nil {
					return nil, &SyntaxError{Line: lineNo, Msg: "duplicate [Desktop Entry] group"}
				}
				entry = g
			case strings.HasPrefix(name, groupDesktopAction):
				id := strings.TrimPrefix(name, groupDesktopAction)
				if id == "" {
					return nil, &SyntaxError{Line: lineNo, Msg: "action group header is missing its identifier"}
				}
				if actIDs[id] {
					return nil, &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("duplicate group [%s]", name)}
				}
				actIDs[id] = true
				actions = append(actions, g)
			default:
				others = append(others, g)
			}
			current = g
			continue
		}

		// {key,value} pair. There is no default group in this format, so a
		// pair before the first header is fatal.
		if current == nil {
			return nil, &SyntaxError{Line: lineNo, Msg: "key/value line before any group header"}
		}
		key, locale, value, err := splitKeyLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		// Multiple keys in the same group may not have the same name.
		rk := rawKey{key, locale}
		if current.seen[rk] {
			return nil, &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("duplicate key %q in group [%s]", keyWithLocale(key, locale), current.name)}
		}
		current.seen[rk] = true
		current.lines = append(current.lines, rawLine{key: key, locale: locale, value: value, line: lineNo})
		settle()
	}
	if current != nil {
		settle()
	}

	if entry == nil {
		return nil, &MissingGroupError{Msg: "no [Desktop Entry] group in file"}
	}
	if first != entry {
		return nil, &MissingGroupError{Line: first.header, Msg: fmt.Sprintf("the first group must be [Desktop Entry], found [%s]", first.name)}
	}

	f.Comments = entry.comments

	e, err := buildEntry(entry)
	if err != nil {
		return nil, err
	}
	e.Comments = entryInner
	f.Entry = e

	// The Actions key decides which action groups end up in the model, and
	// in which order. A listed identifier without a group is a dangling
	// reference; a group nobody references is merely dubious.
	var listed []string
	if app, ok := e.Type.(*ApplicationFields); ok {
		listed = app.Actions
	}
	byID := make(map[string]*rawGroup, len(actions))
	for _, g := range actions {
		byID[strings.TrimPrefix(g.name, groupDesktopAction)] = g
	}
	for _, id := range listed {
		g, ok := byID[id]
		if !ok {
			return nil, &DanglingActionError{ID: id}
		}
		delete(byID, id)
		a, err := buildAction(g, id)
		if err != nil {
			return nil, err
		}
		f.Actions = append(f.Actions, a)
	}
	for _, g := range actions {
		id := strings.TrimPrefix(g.name, groupDesktopAction)
		if byID[id] != nil {
			f.Warnings = append(f.Warnings, fmt.Sprintf("group [%s] is not referenced by the Actions key", g.name))
		}
	}

	// Everything not understood is carried along verbatim.
	for _, g := range others {
		pg := Group{Name: g.name, Comments: g.comments}
		for _, ln := range g.lines {
			pg.Lines = append(pg.Lines, KeyValue{ln.key, ln.locale, ln.value})
		}
		f.Groups = append(f.Groups, pg)
	}

	return &f, nil
}

// Group names may contain all ASCII characters except for [ and ] and
// control characters.
func checkGroupName(name string, lineNo int) error {
	for _, r := range name {
		if r == '[' || r == ']' || unicode.IsControl(r) {
			return &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("character %q is not allowed in a group name", r)}
		}
	}
	return nil
}

func isKeyChar(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-'
}

// splitKeyLine splits a Key[locale]=Value line. Space before and after the
// equals sign is ignored; the = sign is the actual delimiter. Only the
// characters A-Za-z0-9- may be used in key names.
func splitKeyLine(line string, lineNo int) (key, locale, value string, err error) {
	i := 0
	for i < len(line) && line[i] != '[' && line[i] != '=' {
		i++
	}
	key = strings.TrimRight(line[:i], " \t")
	if key == "" {
		return "", "", "", &SyntaxError{Line: lineNo, Msg: "missing key before '='"}
	}
	for j := 0; j < len(key); j++ {
		if !isKeyChar(key[j]) {
			return "", "", "", &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("character %q is not allowed in a key name", key[j])}
		}
	}

	if i < len(line) && line[i] == '[' {
		end := strings.IndexByte(line[i:], ']')
		if end < 0 {
			return "", "", "", &SyntaxError{Line: lineNo, Msg: "unterminated locale suffix"}
		}
		locale = line[i+1 : i+end]
		if locale == "" {
			return "", "", "", &SyntaxError{Line: lineNo, Msg: "empty locale suffix"}
		}
		i += end + 1
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
	}

	if i >= len(line) || line[i] != '=' {
		return "", "", "", &SyntaxError{Line: lineNo, Msg: "expected key value pair separated by '=', but none found"}
	}
	value = strings.TrimSpace(line[i+1:])
	return key, locale, value, nil
}

func keyWithLocale(key, locale string) string {
	if locale == "" {
		return key
	}
	return key + "[" + locale + "]"
}
