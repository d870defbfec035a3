package trie

import (
	"strings"

	"github.com/valyala/bytebufferpool"
)

// SegmentKind classifies one template segment.
type SegmentKind uint8

const (
	// Static matches only an identical literal path piece.
	Static SegmentKind = iota

	// Param matches exactly one arbitrary path piece, capturing it.
	Param

	// Wildcard matches and captures all remaining path pieces.
	Wildcard
)

// Segment is one separator-delimited unit of a parsed template. Name keeps
// the sigil for dynamic segments; ParamName strips it.
type Segment struct {
	Kind SegmentKind
	Name string
}

// ParamName returns the name captured values are stored under.
func (s Segment) ParamName() string {
	if s.Kind == Static {
		return s.Name
	}

	return s.Name[1:]
}

func (s Segment) validate() error {
	if s.ParamName() == "" {
		return ErrNameEmpty
	}

	return nil
}

// Params maps parameter names to the values captured for them. Wildcard
// values may contain embedded separators.
type Params map[string]string

// Path is a route template parsed for one HTTP method. Immutable once
// parsed.
type Path struct {
	method   string
	segments []Segment
}

// Parse splits template on PathSeparator and classifies every piece by its
// first byte: ':' starts a parameter, '*' a wildcard, anything else is a
// literal. Empty pieces are discarded, so repeated separators collapse and
// a template of only separators parses to the root path.
func Parse(method, template string) (Path, error) {
	p := Path{method: method}

	for _, piece := range strings.Split(template, PathSeparator) {
		if piece == "" {
			continue
		}

		seg := Segment{Kind: Static, Name: piece}
		switch piece[0] {
		case ':':
			seg.Kind = Param
		case '*':
			seg.Kind = Wildcard
		}

		p.segments = append(p.segments, seg)
	}

	if err := p.validate(); err != nil {
		return Path{}, err
	}

	return p, nil
}

func (p Path) validate() error {
	for i, seg := range p.segments {
		if err := seg.validate(); err != nil {
			return err
		}

		if seg.Kind == Wildcard && i != len(p.segments)-1 {
			return ErrWildcardNotLast
		}
	}

	return nil
}

// Method returns the HTTP method the template was parsed for.
func (p Path) Method() string {
	return p.method
}

// Segments returns the parsed segments in template order.
func (p Path) Segments() []Segment {
	return p.segments
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segments)
}

// IsEmpty reports whether the path is the root path.
func (p Path) IsEmpty() bool {
	return len(p.segments) == 0
}

// Render substitutes params into the template and joins the result with
// PathSeparator. Static segments emit their literal name; parameter and
// wildcard segments emit the value stored under their stripped name, or
// fail with ParamNotFoundError when the value is missing.
//
// The result carries no leading separator; the root path renders to "".
func (p Path) Render(params Params) (string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, seg := range p.segments {
		if i > 0 {
			buf.WriteString(PathSeparator)
		}

		if seg.Kind == Static {
			buf.WriteString(seg.Name)
			continue
		}

		value, ok := params[seg.ParamName()]
		if !ok {
			return "", &ParamNotFoundError{Param: seg.Name}
		}

		buf.WriteString(value)
	}

	return buf.String(), nil
}

// RenderOriginal reassembles the template as registered, sigils included.
// Conflict errors use it to describe the offending route.
func (p Path) RenderOriginal() string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, seg := range p.segments {
		if i > 0 {
			buf.WriteString(PathSeparator)
		}

		buf.WriteString(seg.Name)
	}

	return buf.String()
}
