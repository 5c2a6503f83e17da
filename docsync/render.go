package docsync

import (
	"strings"

	"github.com/snipsync/snipsync/markdown"
	"github.com/snipsync/snipsync/snippet"
)

// render produces the synced form of one doc file: the literal segment
// text with the snippet lines for each directive slotted in between.
func (d *Documents) render(doc *docFile) (string, error) {
	var b strings.Builder

	for i := range doc.segments {
		segment := &doc.segments[i]
		b.WriteString(segment.Text)

		if segment.Directive == nil {
			continue
		}

		file := d.content[segment.Directive.Path]
		if file == nil {
			return "", &ContentFileNotFoundError{Path: segment.Directive.Path}
		}

		lines, err := renderDirective(file, segment.Directive, d.cfg.Ellipsis)
		if err != nil {
			return "", err
		}

		for _, line := range lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	return b.String(), nil
}

// renderDirective renders the region a directive selects. No tags means
// the whole file, one tag the full region, several tags the first
// region with every unlisted nested region elided.
func renderDirective(file *snippet.File, directive *markdown.Directive, ellipsis string) ([]string, error) {
	if len(directive.Tags) == 0 {
		return renderRegion(file, file.Lookup[""]), nil
	}

	region, ok := file.Lookup[directive.Tags[0]]
	if !ok {
		return nil, &TagNotFoundError{Path: directive.Path, Tag: directive.Tags[0]}
	}

	if len(directive.Tags) == 1 {
		return renderRegion(file, region), nil
	}

	return renderElided(file, region, directive.Tags, ellipsis), nil
}

// bodyStart is the first line index inside a region. The opening and
// closing markers themselves are never part of the body.
func bodyStart(region *snippet.Region) int {
	start := region.Begin + 1
	if start > region.End {
		return region.End
	}
	return start
}

// renderRegion renders a region in full: marker lines dropped, the
// region's own indentation stripped.
func renderRegion(file *snippet.File, region *snippet.Region) []string {
	var out []string

	for i := bodyStart(region); i < region.End; i++ {
		line := file.Lines[i]
		if line.Type == snippet.MARKER {
			continue
		}
		out = append(out, strings.TrimPrefix(line.Raw, region.Indent))
	}

	return out
}

// renderElided renders a region keeping only the listed tags. A nested
// region whose tag is not listed (and has no listed descendant)
// collapses to a single ellipsis line, together with the blank lines
// that only separated it from its surroundings.
func renderElided(file *snippet.File, region *snippet.Region, tags []string, ellipsis string) []string {
	keep := make(map[string]bool, len(tags))
	for _, tag := range tags {
		keep[tag] = true
	}

	elided := make([]bool, len(file.Lines))
	indents := make(map[int]string)

	markElided(region, keep, elided, indents)
	swallowBlanks(file, region, elided)

	var out []string
	inRun := false

	for i := bodyStart(region); i < region.End; i++ {
		if elided[i] {
			if !inRun {
				out = append(out, strings.TrimPrefix(runIndent(elided, indents, i)+ellipsis, region.Indent))
				inRun = true
			}
			continue
		}
		inRun = false

		line := file.Lines[i]
		if line.Type == snippet.MARKER {
			continue
		}
		out = append(out, strings.TrimPrefix(line.Raw, region.Indent))
	}

	return out
}

// markElided marks the line ranges of nested regions that are not kept.
// A region counts as kept if its own tag is listed or any descendant's
// is, so an elided parent never hides a kept child.
func markElided(region *snippet.Region, keep map[string]bool, elided []bool, indents map[int]string) bool {
	keepThis := keep[region.Tag]

	kept := make([]bool, len(region.Nested))
	for i, nested := range region.Nested {
		kept[i] = markElided(nested, keep, elided, indents)
		keepThis = keepThis || kept[i]
	}

	if keepThis {
		for i, nested := range region.Nested {
			if kept[i] {
				continue
			}
			for line := nested.Begin; line <= nested.End; line++ {
				elided[line] = true
			}
			indents[nested.Begin] = nested.Indent
		}
	}

	return keepThis
}

// swallowBlanks extends every elided range over the blank lines that
// directly precede or follow it. Without this the rendered snippet
// keeps the empty lines that only existed to set the elided region
// apart.
func swallowBlanks(file *snippet.File, region *snippet.Region, elided []bool) {
	blank := func(i int) bool {
		return file.Lines[i].Type == snippet.TEXT && strings.TrimSpace(file.Lines[i].Raw) == ""
	}

	start := bodyStart(region)
	for i := start; i < region.End; i++ {
		if !elided[i] {
			continue
		}
		for j := i - 1; j >= start && !elided[j] && blank(j); j-- {
			elided[j] = true
		}
		for j := i + 1; j < region.End && !elided[j] && blank(j); j++ {
			elided[j] = true
		}
	}
}

// runIndent finds the indentation for the ellipsis line of the elided
// run starting at line i: the indent of the first elided region inside
// the run.
func runIndent(elided []bool, indents map[int]string, i int) string {
	for ; i < len(elided) && elided[i]; i++ {
		if indent, ok := indents[i]; ok {
			return indent
		}
	}
	return ""
}
