package printer

import (
	"testing"

	"github.com/csstreelang/csscore/internal/lexer"
	"github.com/csstreelang/csscore/internal/parser"
	"github.com/csstreelang/csscore/internal/source"
)

func TestSerializeDefaultIsByteIdentical(t *testing.T) {
	cases := []string{
		"",
		"a{color:red}",
		"  a  {  color : red ; }  ",
		"/* leading */a{color:red}/* trailing */",
		"@media (min-width:100px){a{color:red}}",
		"a,b,c{color:red}",
		"a[href^='https://' i]{color:blue}",
		"\t\na\n{\n\tcolor: red;\n}\n",
	}
	for _, src := range cases {
		src := src
		t.Run(src, func(t *testing.T) {
			buf := source.New("<test>", src)
			p := parser.New(buf, lexer.FeatureSet{})
			sheet := parser.ParseStyleSheet(p)
			got := Serialize(buf, sheet, p.Trivia(), Default())
			if got != src {
				t.Errorf("Serialize mismatch:\n got:  %q\n want: %q", got, src)
			}
		})
	}
}

func TestSerializeDropsWhitespaceWhenDisabled(t *testing.T) {
	buf := source.New("<test>", "  a  {  color : red ;  }  ")
	p := parser.New(buf, lexer.FeatureSet{})
	sheet := parser.ParseStyleSheet(p)

	opts := Default()
	opts.Whitespace = false
	got := Serialize(buf, sheet, p.Trivia(), opts)

	if got != "a{color:red;}" {
		t.Errorf("got %q, want %q", got, "a{color:red;}")
	}
}

func TestSerializeDropsCommentsWhenDisabled(t *testing.T) {
	buf := source.New("<test>", "a{/* keep out */color:red}")
	p := parser.New(buf, lexer.FeatureSet{})
	sheet := parser.ParseStyleSheet(p)

	opts := Default()
	opts.Comments = false
	got := Serialize(buf, sheet, p.Trivia(), opts)

	if got != "a{color:red}" {
		t.Errorf("got %q, want %q", got, "a{color:red}")
	}
}

func TestSerializeDropsTrailingSemicolonAndCDOWhenDisabled(t *testing.T) {
	buf := source.New("<test>", "<!-- a{color:red;} -->")
	p := parser.New(buf, lexer.FeatureSet{})
	sheet := parser.ParseStyleSheet(p)

	opts := Default()
	opts.Trailing = false
	got := Serialize(buf, sheet, p.Trivia(), opts)

	// CDO/CDC and the trailing declaration semicolon are trivia; the
	// surrounding whitespace and comment-free structure survive untouched.
	want := " a{color:red} "
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSerializeUnclosedBlockOmitsMissingCloseCurly(t *testing.T) {
	buf := source.New("<test>", "a{color:red")
	p := parser.New(buf, lexer.FeatureSet{})
	sheet := parser.ParseStyleSheet(p)

	got := Serialize(buf, sheet, p.Trivia(), Default())
	if got != "a{color:red" {
		t.Errorf("got %q, want %q", got, "a{color:red")
	}
}

func TestFilterTriviaKeepsAllWhenAllOptionsEnabled(t *testing.T) {
	buf := source.New("<test>", "a /* c */ { color : red ; } ")
	p := parser.New(buf, lexer.FeatureSet{})
	parser.ParseStyleSheet(p)

	kept := filterTrivia(p.Trivia(), Default())
	if len(kept) != len(p.Trivia()) {
		t.Errorf("expected all %d trivia cursors kept, got %d", len(p.Trivia()), len(kept))
	}
}
