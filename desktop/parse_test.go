package desktop_test

import (
	"testing"

	"github.com/BL-CZY/desktop-file-parser/desktop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, content string) *desktop.File {
	t.Helper()
	f, err := desktop.Parse(content)
	require.NoError(t, err)
	return f
}

func appFields(t *testing.T, e desktop.Entry) *desktop.ApplicationFields {
	t.Helper()
	app, ok := e.Type.(*desktop.ApplicationFields)
	require.True(t, ok, "entry type is %T, not Application", e.Type)
	return app
}

func TestParse_BasicApplication(t *testing.T) {
	t.Parallel()

	f := mustParse(t, `[Desktop Entry]
Type=Application
Name=Firefox
Name[de]=Feuerfuchs
Exec=firefox %u
Categories=Network;WebBrowser;
`)

	assert.Equal(t, "Firefox", f.Entry.Name.Default)

	de, err := desktop.ParseLocale("de")
	require.NoError(t, err)
	assert.Equal(t, "Feuerfuchs", f.Entry.Name.Resolve(de))

	fr, err := desktop.ParseLocale("fr")
	require.NoError(t, err)
	assert.Equal(t, "Firefox", f.Entry.Name.Resolve(fr))

	app := appFields(t, f.Entry)
	assert.Equal(t, "firefox %u", app.Exec, "field codes must stay unexpanded")
	assert.Equal(t, []string{"Network", "WebBrowser"}, app.Categories)
}

func TestParse_LocalizedStrings(t *testing.T) {
	t.Parallel()

	f := mustParse(t, `[Desktop Entry]
Name=Text Editor
Name[es]=Editor de texto
Name[fr]=Éditeur de texte
Name[de]=Texteditor
GenericName=Text Editor
GenericName[es]=Editor
Comment=Edit text files
Comment[fr]=Éditer des fichiers texte
Exec=gedit %F
Type=Application
`)

	name := f.Entry.Name
	assert.Equal(t, "Text Editor", name.Default)
	assert.Equal(t, "Editor de texto", name.Variants["es"])
	assert.Equal(t, "Éditeur de texte", name.Variants["fr"])
	assert.Equal(t, "Texteditor", name.Variants["de"])

	assert.Equal(t, "Text Editor", f.Entry.GenericName.Default)
	assert.Equal(t, "Editor", f.Entry.GenericName.Variants["es"])

	assert.Equal(t, "Edit text files", f.Entry.Comment.Default)
	assert.Equal(t, "Éditer des fichiers texte", f.Entry.Comment.Variants["fr"])
}

func TestParse_LocaleEncodingStripped(t *testing.T) {
	t.Parallel()

	// the encoding part of a locale tag never participates in matching, so
	// variants are stored without it
	f := mustParse(t, `[Desktop Entry]
Type=Application
Name=Editor
Name[de_DE.UTF-8]=Texteditor
Name[sr_RS.UTF-8@latin]=Uređivač teksta
`)

	assert.Equal(t, "Texteditor", f.Entry.Name.Variants["de_DE"])
	assert.Equal(t, "Uređivač teksta", f.Entry.Name.Variants["sr_RS@latin"])

	de, err := desktop.ParseLocale("de_DE.UTF-8")
	require.NoError(t, err)
	assert.Equal(t, "Texteditor", f.Entry.Name.Resolve(de))

	sr, err := desktop.ParseLocale("sr_RS@latin")
	require.NoError(t, err)
	assert.Equal(t, "Uređivač teksta", f.Entry.Name.Resolve(sr))
}

func TestParse_Actions(t *testing.T) {
	t.Parallel()

	f := mustParse(t, `[Desktop Entry]
Name=Firefox
Exec=firefox %U
Type=Application
Actions=new-window;new-private-window;

[Desktop Action new-window]
Name=New Window
Name[es]=Nueva ventana
Exec=firefox --new-window
Icon=firefox-new-window

[Desktop Action new-private-window]
Name=New Private Window
Exec=firefox --private-window
`)

	require.Len(t, f.Actions, 2)

	nw := f.Actions[0]
	assert.Equal(t, "new-window", nw.ID)
	assert.Equal(t, "New Window", nw.Name.Default)
	assert.Equal(t, "Nueva ventana", nw.Name.Variants["es"])
	assert.Equal(t, "firefox --new-window", nw.Exec)
	assert.Equal(t, "firefox-new-window", nw.Icon)

	pw := f.Actions[1]
	assert.Equal(t, "new-private-window", pw.ID)
	assert.Equal(t, "New Private Window", pw.Name.Default)
	assert.Equal(t, "firefox --private-window", pw.Exec)
	assert.Empty(t, pw.Icon)
	assert.Empty(t, f.Warnings)
}

func TestParse_ActionsOrderFollowsActionsKey(t *testing.T) {
	t.Parallel()

	// groups appear in the opposite order of the Actions list
	f := mustParse(t, `[Desktop Entry]
Name=App
Type=Application
Actions=b;a;

[Desktop Action a]
Name=A

[Desktop Action b]
Name=B
`)

	require.Len(t, f.Actions, 2)
	assert.Equal(t, "b", f.Actions[0].ID)
	assert.Equal(t, "a", f.Actions[1].ID)
}

func TestParse_Booleans(t *testing.T) {
	t.Parallel()

	f := mustParse(t, `[Desktop Entry]
Name=Test App
Exec=test
Type=Application
Terminal=true
NoDisplay=false
Hidden=true
DBusActivatable=true
StartupNotify=true
PrefersNonDefaultGPU=true
SingleMainWindow=true
`)

	assert.False(t, f.Entry.NoDisplay)
	assert.True(t, f.Entry.Hidden)

	app := appFields(t, f.Entry)
	assert.True(t, app.Terminal)
	assert.True(t, app.DBusActivatable)
	require.NotNil(t, app.StartupNotify)
	assert.True(t, *app.StartupNotify)
	assert.True(t, app.PrefersNonDefaultGPU)
	assert.True(t, app.SingleMainWindow)
}

func TestParse_StartupNotifyAbsentIsNil(t *testing.T) {
	t.Parallel()

	f := mustParse(t, "[Desktop Entry]\nType=Application\nName=Test\n")
	assert.Nil(t, appFields(t, f.Entry).StartupNotify)
}

func TestParse_Lists(t *testing.T) {
	t.Parallel()

	f := mustParse(t, `[Desktop Entry]
Name=Test App
Exec=test
Type=Application
Categories=Development;IDE;Programming;
MimeType=text/plain;application/x-python;
OnlyShowIn=GNOME;KDE;
NotShowIn=XFCE;
Keywords=development;coding;
Keywords[es]=desarrollo;programación;
Implements=org.freedesktop.Application;
`)

	assert.Equal(t, []string{"GNOME", "KDE"}, f.Entry.OnlyShowIn)
	assert.Equal(t, []string{"XFCE"}, f.Entry.NotShowIn)

	app := appFields(t, f.Entry)
	assert.Equal(t, []string{"Development", "IDE", "Programming"}, app.Categories)
	assert.Equal(t, []string{"text/plain", "application/x-python"}, app.MimeType)
	assert.Equal(t, []string{"org.freedesktop.Application"}, app.Implements)
	assert.Equal(t, []string{"development", "coding"}, app.Keywords.Default)
	assert.Equal(t, []string{"desarrollo", "programación"}, app.Keywords.Variants["es"])
}

func TestParse_EntryTypes(t *testing.T) {
	t.Parallel()

	f := mustParse(t, "[Desktop Entry]\nType=Application\nName=Test\nExec=test")
	assert.Equal(t, desktop.Application, f.Entry.Type.Kind())

	f = mustParse(t, "[Desktop Entry]\nType=Link\nName=Test\nURL=https://example.com")
	require.Equal(t, desktop.Link, f.Entry.Type.Kind())
	assert.Equal(t, "https://example.com", f.Entry.Type.(*desktop.LinkFields).URL)

	f = mustParse(t, "[Desktop Entry]\nType=Directory\nName=Test")
	assert.Equal(t, desktop.Directory, f.Entry.Type.Kind())
}

func TestParse_UnknownTypeIsFatal(t *testing.T) {
	t.Parallel()

	_, err := desktop.Parse("[Desktop Entry]\nType=CustomType\nName=Test")
	var typeErr *desktop.UnknownTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "CustomType", typeErr.Value)
	assert.Equal(t, 2, typeErr.Line)
}

func TestParse_IconStaysOpaque(t *testing.T) {
	t.Parallel()

	f := mustParse(t, "[Desktop Entry]\nType=Application\nName=Test\nIcon=test-icon\n")
	assert.Equal(t, "test-icon", f.Entry.Icon)

	f = mustParse(t, "[Desktop Entry]\nType=Application\nName=Test\nIcon=/usr/share/icons/a.png\n")
	assert.Equal(t, "/usr/share/icons/a.png", f.Entry.Icon)
}

func TestParse_MissingName(t *testing.T) {
	t.Parallel()

	_, err := desktop.Parse("[Desktop Entry]\nExec=test\nType=Application\n")
	var missing *desktop.MissingRequiredFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Name", missing.Field)
}

func TestParse_LinkRequiresURL(t *testing.T) {
	t.Parallel()

	_, err := desktop.Parse("[Desktop Entry]\nType=Link\nName=Test\n")
	var missing *desktop.MissingRequiredFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "URL", missing.Field)
}

func TestParse_MissingType(t *testing.T) {
	t.Parallel()

	_, err := desktop.Parse("[Desktop Entry]\nName=Test\n")
	var missing *desktop.MissingRequiredFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Type", missing.Field)
}

func TestParse_ActionRequiresName(t *testing.T) {
	t.Parallel()

	_, err := desktop.Parse(`[Desktop Entry]
Type=Application
Name=Test
Actions=a;

[Desktop Action a]
Exec=test --a
`)
	var missing *desktop.MissingRequiredFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Name", missing.Field)
	assert.Equal(t, "Desktop Action a", missing.Group)
}

func TestParse_FieldErrorsAreBatched(t *testing.T) {
	t.Parallel()

	_, err := desktop.Parse(`[Desktop Entry]
Type=Application
Terminal=maybe
Version=one-point-five
`)
	require.Error(t, err)

	// one run should surface every diagnostic, not just the first
	var mismatch *desktop.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	var missing *desktop.MissingRequiredFieldError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, err.Error(), "Terminal")
	assert.Contains(t, err.Error(), "Version")
	assert.Contains(t, err.Error(), "Name")
}

func TestParse_StructuralErrors(t *testing.T) {
	t.Parallel()

	t.Run("first_group_not_desktop_entry", func(t *testing.T) {
		t.Parallel()
		_, err := desktop.Parse("[X-Other]\nA=b\n\n[Desktop Entry]\nType=Application\nName=x\n")
		var groupErr *desktop.MissingGroupError
		require.ErrorAs(t, err, &groupErr)
		assert.Equal(t, 1, groupErr.Line)
	})

	t.Run("no_desktop_entry_group", func(t *testing.T) {
		t.Parallel()
		_, err := desktop.Parse("# only a comment\n")
		var groupErr *desktop.MissingGroupError
		require.ErrorAs(t, err, &groupErr)
	})

	t.Run("key_before_any_group", func(t *testing.T) {
		t.Parallel()
		_, err := desktop.Parse("Type=Application\n[Desktop Entry]\nName=x\n")
		var synErr *desktop.SyntaxError
		require.ErrorAs(t, err, &synErr)
		assert.Equal(t, 1, synErr.Line)
	})

	t.Run("duplicate_desktop_entry_group", func(t *testing.T) {
		t.Parallel()
		_, err := desktop.Parse("[Desktop Entry]\nType=Application\nName=x\n\n[Desktop Entry]\nName=y\n")
		var synErr *desktop.SyntaxError
		require.ErrorAs(t, err, &synErr)
	})

	t.Run("line_without_equals", func(t *testing.T) {
		t.Parallel()
		_, err := desktop.Parse("[Desktop Entry]\nType Application\n")
		var synErr *desktop.SyntaxError
		require.ErrorAs(t, err, &synErr)
		assert.Equal(t, 2, synErr.Line)
	})

	t.Run("bad_key_character", func(t *testing.T) {
		t.Parallel()
		_, err := desktop.Parse("[Desktop Entry]\nTy pe=Application\n")
		var synErr *desktop.SyntaxError
		require.ErrorAs(t, err, &synErr)
	})

	t.Run("unterminated_locale_suffix", func(t *testing.T) {
		t.Parallel()
		_, err := desktop.Parse("[Desktop Entry]\nName[de=x\n")
		var synErr *desktop.SyntaxError
		require.ErrorAs(t, err, &synErr)
	})
}

func TestParse_DuplicateKeysRejected(t *testing.T) {
	t.Parallel()

	_, err := desktop.Parse("[Desktop Entry]\nType=Application\nName=a\nName=b\n")
	var synErr *desktop.SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, 4, synErr.Line)

	// same key under different locales is fine
	_, err = desktop.Parse("[Desktop Entry]\nType=Application\nName=a\nName[de]=b\n")
	require.NoError(t, err)

	// but the same locale twice is not
	_, err = desktop.Parse("[Desktop Entry]\nType=Application\nName=a\nName[de]=b\nName[de]=c\n")
	require.ErrorAs(t, err, &synErr)
}

func TestParse_DanglingActionReference(t *testing.T) {
	t.Parallel()

	_, err := desktop.Parse(`[Desktop Entry]
Type=Application
Name=Test
Actions=missing;
`)
	var dangling *desktop.DanglingActionError
	require.ErrorAs(t, err, &dangling)
	assert.Equal(t, "missing", dangling.ID)
}

func TestParse_UnreferencedActionGroupWarns(t *testing.T) {
	t.Parallel()

	f := mustParse(t, `[Desktop Entry]
Type=Application
Name=Test

[Desktop Action orphan]
Name=Orphan
`)
	assert.Empty(t, f.Actions)
	require.Len(t, f.Warnings, 1)
	assert.Contains(t, f.Warnings[0], "orphan")
}

func TestParse_Passthrough(t *testing.T) {
	t.Parallel()

	f := mustParse(t, `[Desktop Entry]
Type=Application
Name=Test
X-AppImage-Version=1.2.3
X-Flatpak[de]=anything goes

[X-Vendor Group]
Something=else
`)

	require.Len(t, f.Entry.Extra, 2)
	assert.Equal(t, desktop.KeyValue{Key: "X-AppImage-Version", Value: "1.2.3"}, f.Entry.Extra[0])
	assert.Equal(t, desktop.KeyValue{Key: "X-Flatpak", Locale: "de", Value: "anything goes"}, f.Entry.Extra[1])

	require.Len(t, f.Groups, 1)
	assert.Equal(t, "X-Vendor Group", f.Groups[0].Name)
	assert.Equal(t, []desktop.KeyValue{{Key: "Something", Value: "else"}}, f.Groups[0].Lines)
}

func TestParse_CommentsAndWhitespace(t *testing.T) {
	t.Parallel()

	f := mustParse(t, `# top comment

[Desktop Entry]
# inner comment
Type = Application
Name = Spaced Out
`)

	assert.Equal(t, []string{"# top comment", ""}, f.Comments, "blank lines are kept too")
	assert.Equal(t, []string{"# inner comment"}, f.Entry.Comments)
	assert.Equal(t, "Spaced Out", f.Entry.Name.Default, "space around '=' is not part of the value")
	assert.Equal(t, desktop.Application, f.Entry.Type.Kind())
}

func TestParse_CommentsStayWithTheirGroup(t *testing.T) {
	t.Parallel()

	f := mustParse(t, `[Desktop Entry]
Type=Application
Name=Test
Actions=a;

# action comment
[Desktop Action a]
Name=A

# vendor comment
[X-Vendor Group]
Something=else
`)

	require.Len(t, f.Actions, 1)
	assert.Equal(t, []string{"", "# action comment"}, f.Actions[0].Comments)
	require.Len(t, f.Groups, 1)
	assert.Equal(t, []string{"", "# vendor comment"}, f.Groups[0].Comments)
	assert.Empty(t, f.Comments)
}

func TestParse_EscapesInValues(t *testing.T) {
	t.Parallel()

	f := mustParse(t, `[Desktop Entry]
Type=Application
Name=Two\nLines
Comment=tab\there
`)
	assert.Equal(t, "Two\nLines", f.Entry.Name.Default)
	assert.Equal(t, "tab\there", f.Entry.Comment.Default)

	_, err := desktop.Parse("[Desktop Entry]\nType=Application\nName=bad\\escape\n")
	var synErr *desktop.SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, 3, synErr.Line)
}

func TestParse_LocaleTaggedOnlyKeyHasEmptyDefault(t *testing.T) {
	t.Parallel()

	f := mustParse(t, `[Desktop Entry]
Type=Application
Name=Test
GenericName[de]=Editor
`)
	assert.Empty(t, f.Entry.GenericName.Default)
	assert.Equal(t, "Editor", f.Entry.GenericName.Variants["de"])
}

func TestParse_VersionKeptVerbatim(t *testing.T) {
	t.Parallel()

	f := mustParse(t, "[Desktop Entry]\nType=Application\nName=Test\nVersion=1.5\n")
	assert.Equal(t, "1.5", f.Entry.Version)
}
