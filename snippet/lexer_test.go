package snippet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexPlainText(t *testing.T) {
	r := Lex("int main() {\n}\n")

	expected := []Line{
		{Type: TEXT, Raw: "int main() {", Num: 1},
		{Type: TEXT, Raw: "}", Num: 2},
	}

	assert.Equal(t, expected, r)
}

func TestLexMarker(t *testing.T) {
	r := Lex("//! [main function]\n")

	expected := []Line{
		{Type: MARKER, Raw: "//! [main function]", Indent: "", Tag: "main function", Num: 1},
	}

	assert.Equal(t, expected, r)
}

func TestLexIndentedMarker(t *testing.T) {
	r := Lex("    //! [define answer]\n")

	expected := []Line{
		{Type: MARKER, Raw: "    //! [define answer]", Indent: "    ", Tag: "define answer", Num: 1},
	}

	assert.Equal(t, expected, r)
}

func TestLexMarkerWithTrailingSpace(t *testing.T) {
	r := Lex("//! [includes]  \n")

	expected := []Line{
		{Type: MARKER, Raw: "//! [includes]  ", Indent: "", Tag: "includes", Num: 1},
	}

	assert.Equal(t, expected, r)
}

func TestLexMarkerMidLineIsText(t *testing.T) {
	r := Lex("foo(); //! [not a marker]\n")

	expected := []Line{
		{Type: TEXT, Raw: "foo(); //! [not a marker]", Num: 1},
	}

	assert.Equal(t, expected, r)
}

func TestLexMarkerWithTrailingTextIsText(t *testing.T) {
	r := Lex("//! [tag] trailing\n")

	expected := []Line{
		{Type: TEXT, Raw: "//! [tag] trailing", Num: 1},
	}

	assert.Equal(t, expected, r)
}

func TestLexNoTrailingNewline(t *testing.T) {
	r := Lex("last line")

	expected := []Line{
		{Type: TEXT, Raw: "last line", Num: 1},
	}

	assert.Equal(t, expected, r)
}

func TestLexEmptyInput(t *testing.T) {
	assert.Empty(t, Lex(""))
}

func TestLexLineNumbers(t *testing.T) {
	r := Lex("a\n\n//! [x]\nb\n//! [x]\n")

	assert.Equal(t, 1, r[0].Num)
	assert.Equal(t, 2, r[1].Num)
	assert.Equal(t, 3, r[2].Num)
	assert.Equal(t, 4, r[3].Num)
	assert.Equal(t, 5, r[4].Num)
}
