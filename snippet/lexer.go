package snippet

import "strings"

type lineType uint8

const (
	TEXT lineType = iota
	MARKER
)

// Line is one line of a content file. Marker lines carry the tag and the
// indentation in front of the marker.
type Line struct {
	Type   lineType
	Raw    string
	Indent string
	Tag    string
	Num    int
}

// Lex splits a content file into lines and classifies every line as
// either plain text or a snippet marker of the form "//! [tag]".
func Lex(content string) []Line {
	var res []Line

	split := strings.Split(content, "\n")
	if len(split) > 0 && split[len(split)-1] == "" {
		// the final newline terminates the last line, it does not start a new one
		split = split[:len(split)-1]
	}

	for num, raw := range split {
		num = num + 1

		indent, tag, ok := scanMarker(raw)
		if ok {
			res = append(res, Line{Type: MARKER, Raw: raw, Indent: indent, Tag: tag, Num: num})
			continue
		}

		res = append(res, Line{Type: TEXT, Raw: raw, Num: num})
	}

	return res
}

// scanMarker reports whether a line is a snippet marker. A marker is
// optional indentation, the literal "//! [", the tag, and a closing "]"
// followed by nothing but whitespace.
func scanMarker(line string) (indent, tag string, ok bool) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	indent = line[:i]

	rest := line[i:]
	if !strings.HasPrefix(rest, "//! [") {
		return "", "", false
	}
	rest = rest[len("//! ["):]

	end := strings.LastIndexByte(rest, ']')
	if end < 0 {
		return "", "", false
	}
	if strings.TrimSpace(rest[end+1:]) != "" {
		return "", "", false
	}

	return indent, rest[:end], true
}
