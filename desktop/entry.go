package desktop

import (
	"errors"
)

// Kind discriminates the closed set of entry types defined by the spec.
type Kind int

const (
	Application Kind = iota + 1
	Link
	Directory
)

func (k Kind) String() string {
	switch k {
	case Application:
		return "Application"
	case Link:
		return "Link"
	case Directory:
		return "Directory"
	}
	return "invalid"
}

// EntryType holds the fields specific to one entry kind. It is a closed
// variant: the only implementations are *ApplicationFields, *LinkFields and
// *DirectoryFields, selected once while building the entry.
type EntryType interface {
	Kind() Kind
}

// ApplicationFields are the keys recognized for Type=Application entries.
// Exec is kept raw and unexpanded, field codes (%f, %u, ...) included;
// expanding them is the launcher's job, not ours.
type ApplicationFields struct {
	DBusActivatable      bool
	TryExec              string
	Exec                 string
	Path                 string
	Terminal             bool
	Actions              []string
	MimeType             []string
	Categories           []string
	Implements           []string
	Keywords             LocaleStringList
	StartupNotify        *bool // nil when absent, which the spec treats differently from false
	StartupWMClass       string
	PrefersNonDefaultGPU bool
	SingleMainWindow     bool
}

func (*ApplicationFields) Kind() Kind { return Application }

// LinkFields are the keys recognized for Type=Link entries.
type LinkFields struct {
	URL string
}

func (*LinkFields) Kind() Kind { return Link }

// DirectoryFields has no type-specific keys.
type DirectoryFields struct{}

func (*DirectoryFields) Kind() Kind { return Directory }

// KeyValue is a passthrough line preserved verbatim: Value is the raw text
// as it appeared in the file, escapes included.
type KeyValue struct {
	Key    string
	Locale string
	Value  string
}

// Group is an unrecognized group preserved verbatim for round-trips.
type Group struct {
	Name  string
	Lines []KeyValue

	// Comments holds the comment and blank lines that precede the group
	// header, emitted back in front of it.
	Comments []string
}

// Entry is the parsed [Desktop Entry] group. Icon is an opaque name or
// absolute path; resolving it against an icon theme is up to the caller.
type Entry struct {
	Type        EntryType
	Version     string
	Name        LocaleString
	GenericName LocaleString
	Comment     LocaleString
	Icon        string
	NoDisplay   bool
	Hidden      bool
	OnlyShowIn  []string
	NotShowIn   []string

	// Extra holds syntactically valid but unrecognized keys (X- extensions
	// and the like), in file order.
	Extra []KeyValue

	// Comments holds the comment and blank lines found inside the group
	// body, emitted back right after the header.
	Comments []string
}

// Action is one [Desktop Action <id>] group attached via the Actions key.
type Action struct {
	ID    string
	Name  LocaleString
	Icon  string
	Exec  string
	Extra []KeyValue

	// Comments holds the comment and blank lines that precede the group
	// header, emitted back in front of it.
	Comments []string
}

// File is a fully parsed desktop entry file. Values are not mutated after
// Parse returns; a File may be shared freely across goroutines.
type File struct {
	Entry   Entry
	Actions []Action // in Actions-list order
	Groups  []Group  // unrecognized groups, in file order

	// Comments holds the comment and blank lines that precede the
	// [Desktop Entry] header, verbatim.
	Comments []string
	// Warnings are non-fatal findings, e.g. an unreferenced action group.
	Warnings []string
}

// localizable reports whether a key takes locale-tagged variants.
func localizable(key string) bool {
	switch key {
	case "Name", "GenericName", "Comment", "Keywords":
		return true
	}
	return false
}

type entryBuilder struct {
	errs []error
}

func (b *entryBuilder) str(ln rawLine) string {
	v, err := unescapeString(ln.value)
	if err != nil {
		b.errs = append(b.errs, &SyntaxError{Line: ln.line, Msg: err.Error()})
		return ""
	}
	return v
}

func (b *entryBuilder) boolean(ln rawLine) bool {
	v, err := parseBool(ln.value)
	if err != nil {
		b.errs = append(b.errs, &TypeMismatchError{Line: ln.line, Key: ln.key, Want: "boolean", Value: ln.value})
	}
	return v
}

func (b *entryBuilder) list(ln rawLine) []string {
	v, err := splitList(ln.value)
	if err != nil {
		b.errs = append(b.errs, &SyntaxError{Line: ln.line, Msg: err.Error()})
	}
	return v
}

func (b *entryBuilder) localized(ls *LocaleString, ln rawLine) {
	v := b.str(ln)
	if ln.locale == "" {
		ls.Default = v
		return
	}
	if ls.Variants == nil {
		ls.Variants = make(map[string]string)
	}
	ls.Variants[stripEncoding(ln.locale)] = v
}

func (b *entryBuilder) localizedList(ls *LocaleStringList, ln rawLine) {
	v := b.list(ln)
	if ln.locale == "" {
		ls.Default = v
		return
	}
	if ls.Variants == nil {
		ls.Variants = make(map[string][]string)
	}
	ls.Variants[stripEncoding(ln.locale)] = v
}

// buildEntry turns the raw [Desktop Entry] group into the typed model.
// Field-level problems are collected and reported together so a single run
// surfaces every diagnostic.
func buildEntry(g *rawGroup) (Entry, error) {
	var (
		b        entryBuilder
		e        Entry
		app      ApplicationFields
		link     LinkFields
		typ      string
		typLine  int
		nameSeen bool
		urlSeen  bool
	)

	for _, ln := range g.lines {
		if ln.locale != "" && !localizable(ln.key) {
			e.Extra = append(e.Extra, KeyValue{ln.key, ln.locale, ln.value})
			continue
		}
		switch ln.key {
		case "Type":
			typ = b.str(ln)
			typLine = ln.line
		case "Version":
			// kept as its raw string for round-trips, but it has to be a
			// version number
			if _, err := parseNumber(ln.value); err != nil {
				b.errs = append(b.errs, &TypeMismatchError{Line: ln.line, Key: ln.key, Want: "number", Value: ln.value})
			}
			e.Version = ln.value
		case "Name":
			if ln.locale == "" {
				nameSeen = true
			}
			b.localized(&e.Name, ln)
		case "GenericName":
			b.localized(&e.GenericName, ln)
		case "Comment":
			b.localized(&e.Comment, ln)
		case "Icon":
			e.Icon = b.str(ln)
		case "NoDisplay":
			e.NoDisplay = b.boolean(ln)
		case "Hidden":
			e.Hidden = b.boolean(ln)
		case "OnlyShowIn":
			e.OnlyShowIn = b.list(ln)
		case "NotShowIn":
			e.NotShowIn = b.list(ln)
		case "DBusActivatable":
			app.DBusActivatable = b.boolean(ln)
		case "TryExec":
			app.TryExec = b.str(ln)
		case "Exec":
			app.Exec = b.str(ln)
		case "Path":
			app.Path = b.str(ln)
		case "Terminal":
			app.Terminal = b.boolean(ln)
		case "Actions":
			app.Actions = b.list(ln)
		case "MimeType":
			app.MimeType = b.list(ln)
		case "Categories":
			app.Categories = b.list(ln)
		case "Implements":
			app.Implements = b.list(ln)
		case "Keywords":
			b.localizedList(&app.Keywords, ln)
		case "StartupNotify":
			v := b.boolean(ln)
			app.StartupNotify = &v
		case "StartupWMClass":
			app.StartupWMClass = b.str(ln)
		case "PrefersNonDefaultGPU":
			app.PrefersNonDefaultGPU = b.boolean(ln)
		case "SingleMainWindow":
			app.SingleMainWindow = b.boolean(ln)
		case "URL":
			link.URL = b.str(ln)
			urlSeen = true
		default:
			e.Extra = append(e.Extra, KeyValue{ln.key, ln.locale, ln.value})
		}
	}

	if !nameSeen {
		b.errs = append(b.errs, &MissingRequiredFieldError{Field: "Name", Group: groupDesktopEntry})
	}

	switch typ {
	case "":
		b.errs = append(b.errs, &MissingRequiredFieldError{Field: "Type", Group: groupDesktopEntry})
	case "Application":
		e.Type = &app
	case "Link":
		if !urlSeen {
			b.errs = append(b.errs, &MissingRequiredFieldError{Field: "URL", Group: groupDesktopEntry})
		}
		e.Type = &link
	case "Directory":
		e.Type = &DirectoryFields{}
	default:
		b.errs = append(b.errs, &UnknownTypeError{Line: typLine, Value: typ})
	}

	return e, errors.Join(b.errs...)
}

func buildAction(g *rawGroup, id string) (Action, error) {
	var (
		b        entryBuilder
		a        = Action{ID: id, Comments: g.comments}
		nameSeen bool
	)

	for _, ln := range g.lines {
		if ln.locale != "" && !localizable(ln.key) {
			a.Extra = append(a.Extra, KeyValue{ln.key, ln.locale, ln.value})
			continue
		}
		switch ln.key {
		case "Name":
			if ln.locale == "" {
				nameSeen = true
			}
			b.localized(&a.Name, ln)
		case "Icon":
			a.Icon = b.str(ln)
		case "Exec":
			a.Exec = b.str(ln)
		default:
			a.Extra = append(a.Extra, KeyValue{ln.key, ln.locale, ln.value})
		}
	}

	if !nameSeen {
		b.errs = append(b.errs, &MissingRequiredFieldError{Field: "Name", Group: groupDesktopAction + id})
	}

	return a, errors.Join(b.errs...)
}
