package trie

import "errors"

// Parse-time validation failures.
var (
	// ErrNameEmpty is returned when a segment's name is empty after
	// stripping the sigil.
	ErrNameEmpty = errors.New("segment name must not be empty")

	// ErrWildcardNotLast is returned when a wildcard segment appears
	// anywhere but the last position of a template.
	ErrWildcardNotLast = errors.New("wildcard segment must be last")
)

// ParamNotFoundError is returned by Path.Render when the supplied parameters
// are missing a value the template requires.
type ParamNotFoundError struct {
	// Param is the missing parameter, sigil included.
	Param string
}

func (e *ParamNotFoundError) Error() string {
	return "parameter not found: " + e.Param
}

// Is implements matching for errors.Is.
func (e *ParamNotFoundError) Is(target error) bool {
	_, ok := target.(*ParamNotFoundError)
	return ok
}

// PathNotFoundError is returned by Tree.Lookup when no registered route
// matches the requested path.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return "path not found: " + e.Path
}

// Is implements matching for errors.Is.
func (e *PathNotFoundError) Is(target error) bool {
	_, ok := target.(*PathNotFoundError)
	return ok
}

// MethodNotFoundError is returned by Tree.Lookup when the path matched a
// registered route but nothing is registered under the requested method.
// It is a different condition than PathNotFoundError, the same way 405
// differs from 404.
type MethodNotFoundError struct {
	Method string
}

func (e *MethodNotFoundError) Error() string {
	return "method not found: " + e.Method
}

// Is implements matching for errors.Is.
func (e *MethodNotFoundError) Is(target error) bool {
	_, ok := target.(*MethodNotFoundError)
	return ok
}

// AlreadyRegisteredError is returned by Tree.Add on an insertion conflict:
// a duplicate method at a terminal node, or a dynamic segment at a position
// that already has a dynamic child.
type AlreadyRegisteredError struct {
	// Route is the offending route's original template.
	Route string
}

func (e *AlreadyRegisteredError) Error() string {
	return "path already registered: " + e.Route
}

// Is implements matching for errors.Is.
func (e *AlreadyRegisteredError) Is(target error) bool {
	_, ok := target.(*AlreadyRegisteredError)
	return ok
}
