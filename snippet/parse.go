// Package snippet parses content files into a tree of tagged regions.
// A region opens at a "//! [tag]" marker line and closes at the next
// marker line carrying the same tag. Regions nest.
package snippet

import "fmt"

// Region describes one tagged region of a content file. Begin and End
// are indexes into File.Lines of the opening and closing marker. The
// root region has the empty tag and spans the whole file.
type Region struct {
	Tag    string
	Indent string
	Begin  int
	End    int
	Nested []*Region
}

// File is a parsed content file. Lookup maps every tag to its region,
// including the implicit root under the empty tag.
type File struct {
	Lines  []Line
	Lookup map[string]*Region
}

// Parse lexes and parses a content file.
func Parse(content string) (*File, error) {
	f := &File{
		Lines:  Lex(content),
		Lookup: make(map[string]*Region),
	}

	root := &Region{Tag: "", Begin: -1}

	i := 0
	if err := f.parseRegion(root, &i); err != nil {
		return nil, err
	}

	f.Lookup[""] = root

	return f, nil
}

// parseRegion consumes lines until the marker that closes current is
// found. Markers with a new tag open a nested region.
func (f *File) parseRegion(current *Region, i *int) error {
	for *i < len(f.Lines) {
		line := f.Lines[*i]

		if line.Type != MARKER {
			*i++
			continue
		}

		if line.Tag == current.Tag {
			current.End = *i
			*i++
			return nil
		}

		if line.Tag == "" {
			return &EmptyTagError{Line: line.Num}
		}

		nested := &Region{Tag: line.Tag, Indent: line.Indent, Begin: *i}
		*i++

		if err := f.parseRegion(nested, i); err != nil {
			return err
		}

		if _, ok := f.Lookup[nested.Tag]; ok {
			return &DuplicateTagError{Tag: nested.Tag, Line: line.Num}
		}
		f.Lookup[nested.Tag] = nested

		current.Nested = append(current.Nested, nested)
	}

	if current.Tag != "" {
		return &EndMarkerMissingError{Tag: current.Tag}
	}

	// the root region closes at end of file
	current.End = len(f.Lines)
	return nil
}

// EmptyTagError is returned for a marker with nothing between the brackets.
type EmptyTagError struct {
	Line int
}

func (e *EmptyTagError) Error() string {
	return fmt.Sprintf("empty snippet tag on line %d", e.Line)
}

// DuplicateTagError is returned when one file defines the same tag twice.
type DuplicateTagError struct {
	Tag  string
	Line int
}

func (e *DuplicateTagError) Error() string {
	return fmt.Sprintf("duplicate snippet tag %q on line %d", e.Tag, e.Line)
}

// EndMarkerMissingError is returned for a region that is never closed.
type EndMarkerMissingError struct {
	Tag string
}

func (e *EndMarkerMissingError) Error() string {
	return fmt.Sprintf("end marker for snippet tag %q not found", e.Tag)
}
