package desktop

import (
	"sort"
	"strings"
)

// String renders the model back to spec-compliant text. The output is
// deterministic: a fixed key order per group, locale suffixes in
// lexicographic order, actions in Actions-list order, passthrough groups
// last and verbatim. Comment and blank lines come out in front of the group
// they preceded; comments from inside a group body come out right after its
// header. Parsing the output yields a model equal to f.
func (f *File) String() string {
	var sb strings.Builder

	writeComments(&sb, f.Comments)

	e := &f.Entry
	sb.WriteString("[" + groupDesktopEntry + "]\n")
	writeComments(&sb, e.Comments)
	if e.Type != nil {
		writeRaw(&sb, "Type", "", e.Type.Kind().String())
	}
	if e.Version != "" {
		writeRaw(&sb, "Version", "", e.Version)
	}
	writeLocaleString(&sb, "Name", e.Name, true)
	writeLocaleString(&sb, "GenericName", e.GenericName, false)
	writeLocaleString(&sb, "Comment", e.Comment, false)
	if e.Icon != "" {
		writeString(&sb, "Icon", e.Icon)
	}
	writeBool(&sb, "NoDisplay", e.NoDisplay)
	writeBool(&sb, "Hidden", e.Hidden)
	writeList(&sb, "OnlyShowIn", e.OnlyShowIn)
	writeList(&sb, "NotShowIn", e.NotShowIn)

	switch t := e.Type.(type) {
	case *ApplicationFields:
		writeBool(&sb, "DBusActivatable", t.DBusActivatable)
		if t.TryExec != "" {
			writeString(&sb, "TryExec", t.TryExec)
		}
		if t.Exec != "" {
			writeString(&sb, "Exec", t.Exec)
		}
		if t.Path != "" {
			writeString(&sb, "Path", t.Path)
		}
		writeBool(&sb, "Terminal", t.Terminal)
		writeList(&sb, "Actions", t.Actions)
		writeList(&sb, "MimeType", t.MimeType)
		writeList(&sb, "Categories", t.Categories)
		writeList(&sb, "Implements", t.Implements)
		writeLocaleList(&sb, "Keywords", t.Keywords)
		if t.StartupNotify != nil {
			if *t.StartupNotify {
				writeRaw(&sb, "StartupNotify", "", "true")
			} else {
				writeRaw(&sb, "StartupNotify", "", "false")
			}
		}
		if t.StartupWMClass != "" {
			writeString(&sb, "StartupWMClass", t.StartupWMClass)
		}
		writeBool(&sb, "PrefersNonDefaultGPU", t.PrefersNonDefaultGPU)
		writeBool(&sb, "SingleMainWindow", t.SingleMainWindow)
	case *LinkFields:
		writeString(&sb, "URL", t.URL)
	}

	for _, kv := range e.Extra {
		writeRaw(&sb, kv.Key, kv.Locale, kv.Value)
	}

	for _, a := range f.Actions {
		writeComments(&sb, a.Comments)
		sb.WriteString("[" + groupDesktopAction + a.ID + "]\n")
		writeLocaleString(&sb, "Name", a.Name, true)
		if a.Icon != "" {
			writeString(&sb, "Icon", a.Icon)
		}
		if a.Exec != "" {
			writeString(&sb, "Exec", a.Exec)
		}
		for _, kv := range a.Extra {
			writeRaw(&sb, kv.Key, kv.Locale, kv.Value)
		}
	}

	for _, g := range f.Groups {
		writeComments(&sb, g.Comments)
		sb.WriteString("[" + g.Name + "]\n")
		for _, kv := range g.Lines {
			writeRaw(&sb, kv.Key, kv.Locale, kv.Value)
		}
	}

	return sb.String()
}

func writeComments(sb *strings.Builder, comments []string) {
	for _, c := range comments {
		sb.WriteString(c)
		sb.WriteByte('\n')
	}
}

func writeRaw(sb *strings.Builder, key, locale, raw string) {
	sb.WriteString(keyWithLocale(key, locale))
	sb.WriteByte('=')
	sb.WriteString(raw)
	sb.WriteByte('\n')
}

func writeString(sb *strings.Builder, key, value string) {
	writeRaw(sb, key, "", escapeString(value))
}

// absent booleans default to false, so false values are simply not emitted
func writeBool(sb *strings.Builder, key string, v bool) {
	if v {
		writeRaw(sb, key, "", "true")
	}
}

func writeList(sb *strings.Builder, key string, items []string) {
	if len(items) == 0 {
		return
	}
	writeRaw(sb, key, "", joinList(items))
}

func writeLocaleString(sb *strings.Builder, key string, ls LocaleString, required bool) {
	if !required && ls.IsZero() {
		return
	}
	if required || ls.Default != "" {
		writeRaw(sb, key, "", escapeString(ls.Default))
	}
	for _, tag := range sortedKeys(ls.Variants) {
		writeRaw(sb, key, tag, escapeString(ls.Variants[tag]))
	}
}

func writeLocaleList(sb *strings.Builder, key string, ls LocaleStringList) {
	if len(ls.Default) > 0 {
		writeRaw(sb, key, "", joinList(ls.Default))
	}
	for _, tag := range sortedKeys(ls.Variants) {
		writeRaw(sb, key, tag, joinList(ls.Variants[tag]))
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
