package desktop

import (
	"errors"
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Locale is a POSIX-style locale as used in localized desktop entry keys:
//
//	lang_COUNTRY.ENCODING@MODIFIER
//
// where _COUNTRY, .ENCODING and @MODIFIER may be omitted. The encoding is
// parsed but ignored when matching variants, per the spec.
type Locale struct {
	Lang     string
	Country  string
	Encoding string
	Modifier string
}

// ErrBadLocale is returned by ParseLocale for strings missing the lang
// component.
var ErrBadLocale = errors.New("malformed locale")

// ParseLocale parses a POSIX locale string. The empty string, "C" and
// "POSIX" are valid and evaluate to the zero Locale, which matches nothing
// and resolves every localized value to its default.
func ParseLocale(s string) (Locale, error) {
	if s == "" || s == "C" || s == "POSIX" {
		return Locale{}, nil
	}

	var l Locale
	i := 0

	for i < len(s) && s[i] != '_' && s[i] != '.' && s[i] != '@' {
		i++
	}
	l.Lang = s[:i]
	if l.Lang == "" {
		return Locale{}, ErrBadLocale
	}

	if i < len(s) && s[i] == '_' {
		start := i + 1
		for i++; i < len(s) && s[i] != '.' && s[i] != '@'; i++ {
		}
		l.Country = s[start:i]
	}

	if i < len(s) && s[i] == '.' {
		start := i + 1
		for i++; i < len(s) && s[i] != '@'; i++ {
		}
		l.Encoding = s[start:i]
	}

	if i < len(s) && s[i] == '@' {
		l.Modifier = s[i+1:]
	}

	return l, nil
}

// FromTag converts a BCP 47 tag (e.g. "de-DE") into the POSIX form used by
// desktop entry files. Only explicitly specified components carry over;
// inferred regions are not treated as a country match.
func FromTag(t language.Tag) Locale {
	base, conf := t.Base()
	if conf == language.No {
		return Locale{}
	}
	l := Locale{Lang: base.String()}
	if region, conf := t.Region(); conf == language.Exact && region.IsCountry() {
		l.Country = region.String()
	}
	return l
}

// LookupLocale builds a Locale from either POSIX ("de_DE@euro") or BCP 47
// ("de-DE") syntax. Unparseable input yields the zero Locale.
func LookupLocale(s string) Locale {
	if strings.ContainsRune(s, '-') {
		if t, err := language.Parse(s); err == nil {
			return FromTag(t)
		}
	}
	l, err := ParseLocale(s)
	if err != nil {
		return Locale{}
	}
	return l
}

// DefaultLocale returns the locale requested by the environment, consulting
// $LANGUAGE, $LC_ALL, $LC_MESSAGES and $LANG in that order.
func DefaultLocale() Locale {
	for _, name := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(name)
		if val == "" {
			continue
		}
		// $LANGUAGE may hold a colon-separated preference list; only the
		// first entry is relevant for lookup here.
		val, _, _ = strings.Cut(val, ":")
		if l, err := ParseLocale(val); err == nil {
			return l
		}
	}
	return Locale{}
}

func (l Locale) String() string {
	var sb strings.Builder
	sb.WriteString(l.Lang)
	if l.Country != "" {
		sb.WriteByte('_')
		sb.WriteString(l.Country)
	}
	if l.Encoding != "" {
		sb.WriteByte('.')
		sb.WriteString(l.Encoding)
	}
	if l.Modifier != "" {
		sb.WriteByte('@')
		sb.WriteString(l.Modifier)
	}
	return sb.String()
}

// variants lists the keys to look up, most specific first:
// lang_COUNTRY@MODIFIER, lang_COUNTRY, lang@MODIFIER, lang.
// A locale without a lang component matches nothing.
func (l Locale) variants() []string {
	if l.Lang == "" {
		return nil
	}
	v := make([]string, 0, 4)
	if l.Country != "" && l.Modifier != "" {
		v = append(v, l.Lang+"_"+l.Country+"@"+l.Modifier)
	}
	if l.Country != "" {
		v = append(v, l.Lang+"_"+l.Country)
	}
	if l.Modifier != "" {
		v = append(v, l.Lang+"@"+l.Modifier)
	}
	return append(v, l.Lang)
}

// stripEncoding drops the .ENCODING component from a locale tag. The
// encoding never participates in matching, so variants are stored without
// it; a key declared as Name[de_DE.UTF-8] is the de_DE variant.
func stripEncoding(tag string) string {
	dot := strings.IndexByte(tag, '.')
	if dot < 0 {
		return tag
	}
	at := strings.IndexByte(tag, '@')
	if at < 0 {
		return tag[:dot]
	}
	if at < dot {
		// the dot is part of the modifier, not an encoding
		return tag
	}
	return tag[:dot] + tag[at:]
}

// LocaleString is a localizable string value: a default plus variants keyed
// by the locale tag they were declared with, minus any encoding component.
type LocaleString struct {
	Default  string
	Variants map[string]string
}

// Resolve returns the best variant for the given locale, falling back to the
// default when no variant matches.
func (s LocaleString) Resolve(l Locale) string {
	for _, key := range l.variants() {
		if v, ok := s.Variants[key]; ok {
			return v
		}
	}
	return s.Default
}

// ResolveTag resolves against a BCP 47 tag.
func (s LocaleString) ResolveTag(t language.Tag) string {
	return s.Resolve(FromTag(t))
}

// IsZero reports whether the value was absent from the file entirely.
func (s LocaleString) IsZero() bool {
	return s.Default == "" && len(s.Variants) == 0
}

// LocaleStringList is a localizable list value, used by the Keywords key.
type LocaleStringList struct {
	Default  []string
	Variants map[string][]string
}

// Resolve returns the best variant for the given locale, falling back to the
// default when no variant matches.
func (s LocaleStringList) Resolve(l Locale) []string {
	for _, key := range l.variants() {
		if v, ok := s.Variants[key]; ok {
			return v
		}
	}
	return s.Default
}

// ResolveTag resolves against a BCP 47 tag.
func (s LocaleStringList) ResolveTag(t language.Tag) []string {
	return s.Resolve(FromTag(t))
}
