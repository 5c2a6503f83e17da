// Package markdown splits documentation files into segments around
// snipsync directives. A directive is an HTML comment of the form
//
//	<!-- [snipsync] [path/to/content/file] -->
//	<!-- [snipsync] [path/to/content/file] [tag] -->
//	<!-- [snipsync] [path/to/content/file] [main tag][kept sub tag]... -->
//
// and must be immediately followed by a fenced code block. The body of
// that block is owned by snipsync and replaced on every sync.
package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

// Directive identifies the content to render into the code block that
// follows it. An empty Tags slice selects the whole content file; one
// tag selects a region in full; more than one tag selects the first
// region with every nested region not listed collapsed to an ellipsis.
type Directive struct {
	Path string
	Tags []string
	Line int
}

// Segment is a run of literal document text, optionally ending in a
// directive plus the opening fence of its code block. The closing fence
// belongs to the next segment, so rendered snippet lines slot exactly
// between two segments.
type Segment struct {
	Text      string
	Directive *Directive
}

var (
	directiveRe = regexp.MustCompile(`^<!-- *\[snipsync\] *\[([\w\s./-]*)\] *((?:\[[^\]]*\] *)*)-->`)
	tagRe       = regexp.MustCompile(`\[([^\]]*)\]`)
	fenceRe     = regexp.MustCompile("```")
)

// Parse splits a document into segments.
func Parse(content string) ([]Segment, error) {
	lines := splitLines(content)

	segments := []Segment{{}}
	segment := &segments[0]

	i := 0
	for i < len(lines) {
		line := lines[i]
		segment.Text += line
		i++

		caps := directiveRe.FindStringSubmatch(line)
		if caps == nil {
			continue
		}

		directive := &Directive{
			Path: strings.TrimSpace(caps[1]),
			Line: i,
		}
		for _, tag := range tagRe.FindAllStringSubmatch(caps[2], -1) {
			directive.Tags = append(directive.Tags, strings.TrimSpace(tag[1]))
		}
		segment.Directive = directive

		// the code block must open on the very next line
		if i >= len(lines) || !fenceRe.MatchString(lines[i]) {
			return nil, &CodeBlockMissingError{Path: directive.Path, Line: directive.Line}
		}
		segment.Text += lines[i]
		i++

		// skip the current block body, the closing fence opens the next segment
		closed := false
		for i < len(lines) {
			if fenceRe.MatchString(lines[i]) {
				segments = append(segments, Segment{Text: lines[i]})
				segment = &segments[len(segments)-1]
				closed = true
				i++
				break
			}
			i++
		}

		if !closed {
			return nil, &CodeBlockEndMissingError{Path: directive.Path, Line: directive.Line}
		}
	}

	return segments, nil
}

// splitLines splits content into lines, keeping the trailing newline on
// every line that has one.
func splitLines(content string) []string {
	var lines []string
	for len(content) > 0 {
		i := strings.IndexByte(content, '\n')
		if i < 0 {
			lines = append(lines, content)
			break
		}
		lines = append(lines, content[:i+1])
		content = content[i+1:]
	}
	return lines
}

// CodeBlockMissingError is returned when a directive is not immediately
// followed by a fenced code block.
type CodeBlockMissingError struct {
	Path string
	Line int
}

func (e *CodeBlockMissingError) Error() string {
	return fmt.Sprintf("the code block must immediately follow the snipsync directive for %q on line %d", e.Path, e.Line)
}

// CodeBlockEndMissingError is returned when the code block after a
// directive is never closed.
type CodeBlockEndMissingError struct {
	Path string
	Line int
}

func (e *CodeBlockEndMissingError) Error() string {
	return fmt.Sprintf("the code block after the snipsync directive for %q on line %d is never closed", e.Path, e.Line)
}
