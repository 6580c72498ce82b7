package desktop

import "fmt"

// SyntaxError reports a lexically malformed line: a bad key name, a broken
// locale suffix, a missing '=', a bad escape sequence, or a duplicate key.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// MissingGroupError reports a file whose first group is not [Desktop Entry],
// or a file with no [Desktop Entry] group at all (Line is 0 in that case).
type MissingGroupError struct {
	Line int
	Msg  string
}

func (e *MissingGroupError) Error() string {
	if e.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// UnknownTypeError reports a Type value outside Application, Link, Directory.
type UnknownTypeError struct {
	Line  int
	Value string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("line %d: unknown entry type %q", e.Line, e.Value)
}

// MissingRequiredFieldError reports a required key absent from a group.
type MissingRequiredFieldError struct {
	Field string
	Group string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("group [%s]: required key %q is missing", e.Group, e.Field)
}

// TypeMismatchError reports a value that does not decode as the key's
// declared type.
type TypeMismatchError struct {
	Line  int
	Key   string
	Want  string
	Value string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("line %d: key %q: %q is not a valid %s", e.Line, e.Key, e.Value, e.Want)
}

// DanglingActionError reports an identifier listed in Actions with no
// matching [Desktop Action] group.
type DanglingActionError struct {
	ID string
}

func (e *DanglingActionError) Error() string {
	return fmt.Sprintf("Actions references %q but there is no [Desktop Action %s] group", e.ID, e.ID)
}
