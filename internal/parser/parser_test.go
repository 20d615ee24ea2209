package parser

import (
	"testing"

	"github.com/csstreelang/csscore/internal/ast"
	"github.com/csstreelang/csscore/internal/diag"
	"github.com/csstreelang/csscore/internal/lexer"
	"github.com/csstreelang/csscore/internal/printer"
	"github.com/csstreelang/csscore/internal/source"
	"github.com/csstreelang/csscore/internal/token"
)

// expectRoundTrip parses contents and asserts that serializing the result
// with full trivia preservation reproduces contents byte for byte.
func expectRoundTrip(t *testing.T, contents string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		buf := source.New("<test>", contents)
		p := New(buf, lexer.FeatureSet{})
		sheet := ParseStyleSheet(p)
		got := printer.Serialize(buf, sheet, p.Trivia(), printer.Default())
		if got != contents {
			t.Errorf("round-trip mismatch:\n got:  %q\n want: %q", got, contents)
		}
	})
}

// expectNoErrors parses contents and asserts the error list is empty.
func expectNoErrors(t *testing.T, contents string) {
	t.Helper()
	buf := source.New("<test>", contents)
	p := New(buf, lexer.FeatureSet{})
	ParseStyleSheet(p)
	if errs := p.Errors(); len(errs) != 0 {
		t.Errorf("expected no errors parsing %q, got %v", contents, errs)
	}
}

func TestRoundTripScenarios(t *testing.T) {
	expectRoundTrip(t, "body{width:1px;}")
	expectRoundTrip(t, "@layer foo.bar,baz.bing.baz;")
	expectRoundTrip(t, "[attr|='foo'i]")
	expectRoundTrip(t, "[attr|='foo' s]")
	expectRoundTrip(t, ":not(:is(a,b))")
	expectRoundTrip(t, "rgba(255,20%,255,0.5)")
	expectRoundTrip(t, `@font-face { src: url("a") format("woff2") }`)
	expectRoundTrip(t, "@media (min-width: 300px) and (max-width: 900px) { a{} }")
}

func TestScenarioOneTreeShape(t *testing.T) {
	buf := source.New("<test>", "body{width:1px;}")
	p := New(buf, lexer.FeatureSet{})
	sheet := ParseStyleSheet(p)

	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	rule, ok := sheet.Rules[0].(*ast.QualifiedRule)
	if !ok {
		t.Fatalf("expected *ast.QualifiedRule, got %T", sheet.Rules[0])
	}
	if rule.Selectors == nil || len(rule.Selectors.Selectors) != 1 {
		t.Fatalf("expected 1 compound selector")
	}
	sel := rule.Selectors.Selectors[0]
	if len(sel.Compounds) != 1 || !sel.Compounds[0].HasType || sel.Compounds[0].Type.Name.Text(buf) != "body" {
		t.Fatalf("expected type selector 'body', got %+v", sel)
	}
	if rule.Block == nil || len(rule.Block.Children) != 1 {
		t.Fatalf("expected 1 declaration in block")
	}
	decl, ok := rule.Block.Children[0].(*ast.Declaration)
	if !ok {
		t.Fatalf("expected *ast.Declaration, got %T", rule.Block.Children[0])
	}
	if decl.Name.Text(buf) != "width" {
		t.Fatalf("expected property 'width', got %q", decl.Name.Text(buf))
	}
	if decl.Important {
		t.Fatalf("did not expect !important")
	}
	if len(decl.Value) != 1 || decl.Value[0].Cursor.Kind() != token.Dimension {
		t.Fatalf("expected one Dimension value, got %+v", decl.Value)
	}
}

func TestScenarioTwoLayerPrelude(t *testing.T) {
	buf := source.New("<test>", "@layer foo.bar,baz.bing.baz;")
	p := New(buf, lexer.FeatureSet{})
	sheet := ParseStyleSheet(p)
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	rule, ok := sheet.Rules[0].(*ast.AtRule)
	if !ok || rule.Layer == nil {
		t.Fatalf("expected an @layer rule, got %+v", sheet.Rules[0])
	}
	if len(rule.Layer.Names) != 2 {
		t.Fatalf("expected 2 dotted names, got %d", len(rule.Layer.Names))
	}
	if rule.Block != nil {
		t.Fatalf("expected a semicolon-terminated @layer, got a block")
	}
	if rule.Semicolon.IsZero() {
		t.Fatalf("expected a semicolon terminator")
	}
}

func TestScenarioThreeEmptyLayerThenPreludelessRule(t *testing.T) {
	// The first "{}" closes @layer's block immediately; per CSS Syntax
	// Level 3's "consume a qualified rule" algorithm, an empty prelude
	// followed directly by a block is not an error, so the leftover
	// "{color:red}" parses as a second, prelude-less qualified rule
	// rather than recovering through BadDeclaration. Both halves still
	// round-trip byte-identically.
	buf := source.New("<test>", "@layer foo{}{color:red}")
	p := New(buf, lexer.FeatureSet{})
	sheet := ParseStyleSheet(p)

	if len(sheet.Rules) != 2 {
		t.Fatalf("expected 2 top-level rules, got %d", len(sheet.Rules))
	}
	first, ok := sheet.Rules[0].(*ast.AtRule)
	if !ok || first.Layer == nil || first.Block == nil || len(first.Block.Children) != 0 {
		t.Fatalf("expected an empty-block @layer rule first, got %+v", sheet.Rules[0])
	}
	second, ok := sheet.Rules[1].(*ast.QualifiedRule)
	if !ok {
		t.Fatalf("expected the second rule to parse as *ast.QualifiedRule, got %T", sheet.Rules[1])
	}
	if len(second.Prelude) != 0 {
		t.Fatalf("expected an empty prelude, got %+v", second.Prelude)
	}
	if second.Block == nil || len(second.Block.Children) != 1 {
		t.Fatalf("expected one declaration in the second rule's block")
	}

	got := printer.Serialize(buf, sheet, p.Trivia(), printer.Default())
	if got != "@layer foo{}{color:red}" {
		t.Fatalf("round-trip mismatch: got %q", got)
	}
}

func TestScenarioFourAttributeSelectors(t *testing.T) {
	for _, c := range []struct {
		src      string
		modifier string
	}{
		{"[attr|='foo'i]{}", "i"},
		{"[attr|='foo' s]{}", "s"},
	} {
		buf := source.New("<test>", c.src)
		p := New(buf, lexer.FeatureSet{})
		sheet := ParseStyleSheet(p)
		rule, ok := sheet.Rules[0].(*ast.QualifiedRule)
		if !ok || rule.Selectors == nil {
			t.Fatalf("%s: expected a selector-shaped qualified rule", c.src)
		}
		compound := rule.Selectors.Selectors[0].Compounds[0]
		if len(compound.Components) != 1 {
			t.Fatalf("%s: expected 1 component", c.src)
		}
		attr, ok := compound.Components[0].(*ast.AttributeSelector)
		if !ok {
			t.Fatalf("%s: expected *ast.AttributeSelector, got %T", c.src, compound.Components[0])
		}
		if !attr.HasOp || attr.Op.Kind != ast.AttrOpDashMatch {
			t.Fatalf("%s: expected a dash-match ('|=') operator, got %+v", c.src, attr.Op)
		}
		if !attr.HasModifier || attr.Modifier.Text(buf) != c.modifier {
			t.Fatalf("%s: expected modifier %q, got %+v", c.src, c.modifier, attr)
		}
	}
}

func TestScenarioFiveNestedFunctionalPseudo(t *testing.T) {
	buf := source.New("<test>", ":not(:is(a,b)){}")
	p := New(buf, lexer.FeatureSet{})
	sheet := ParseStyleSheet(p)
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	rule := sheet.Rules[0].(*ast.QualifiedRule)
	outer := rule.Selectors.Selectors[0].Compounds[0].Components[0].(*ast.PseudoSelector)
	if outer.Name.Text(buf) != "not(" || outer.InnerSelectors == nil {
		t.Fatalf("expected :not(...) with an inner selector list, got %+v", outer)
	}
	innerCompound := outer.InnerSelectors.Selectors[0].Compounds[0]
	inner := innerCompound.Components[0].(*ast.PseudoSelector)
	if inner.Name.Text(buf) != "is(" || inner.InnerSelectors == nil {
		t.Fatalf("expected nested :is(...), got %+v", inner)
	}
	if len(inner.InnerSelectors.Selectors) != 2 {
		t.Fatalf("expected 2 selectors inside :is(), got %d", len(inner.InnerSelectors.Selectors))
	}
}

func TestScenarioSixColorFunctionArgs(t *testing.T) {
	buf := source.New("<test>", "rgba(255,20%,255,0.5){}")
	p := New(buf, lexer.FeatureSet{})
	sheet := ParseStyleSheet(p)
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	rule := sheet.Rules[0].(*ast.QualifiedRule)
	if rule.Prelude[0].Cursor.Kind() != token.Function {
		t.Fatalf("expected a Function token prelude, got %+v", rule.Prelude)
	}
	args := rule.Prelude[0].Children
	var commas int
	for _, cv := range args {
		if cv.Cursor.Kind() == token.Comma {
			commas++
		}
	}
	if commas != 3 {
		t.Fatalf("expected 3 top-level commas in rgba() args, got %d", commas)
	}
}

func TestFontFaceAndMediaNoErrors(t *testing.T) {
	expectNoErrors(t, `@font-face { src: url("a") format("woff2") }`)
	expectNoErrors(t, "@media (min-width: 300px) and (max-width: 900px) { a{} }")
}

func TestTryParseLeavesParserUnchanged(t *testing.T) {
	buf := source.New("<test>", "foo: bar;")
	p := New(buf, lexer.FeatureSet{})
	cp := p.Checkpoint()

	// Consume past the point where a hypothetical speculative parse would
	// fail, then rewind; the next real parse must see the same tokens.
	p.Next()
	p.Next()
	p.Rewind(cp)

	c := p.Next()
	if c.Text(buf) != "foo" {
		t.Fatalf("after rewind, expected to see 'foo' again, got %q", c.Text(buf))
	}
}

func TestRecoveryAdvancesPastUnclosedBlock(t *testing.T) {
	// An unclosed block at EOF is accepted for recovery, with Closed left
	// false.
	buf := source.New("<test>", "a{color:red")
	p := New(buf, lexer.FeatureSet{})
	sheet := ParseStyleSheet(p)
	rule := sheet.Rules[0].(*ast.QualifiedRule)
	if rule.Block == nil || rule.Block.Closed {
		t.Fatalf("expected an unclosed block, got %+v", rule.Block)
	}
	if len(p.Errors()) == 0 {
		t.Fatalf("expected an UnexpectedEnd error")
	}
}

func TestImportantTrailer(t *testing.T) {
	buf := source.New("<test>", "a{color:red ! important}")
	p := New(buf, lexer.FeatureSet{})
	sheet := ParseStyleSheet(p)
	rule := sheet.Rules[0].(*ast.QualifiedRule)
	decl := rule.Block.Children[0].(*ast.Declaration)
	if !decl.Important {
		t.Fatalf("expected !important to be detected")
	}
	if len(decl.Value) != 1 || decl.Value[0].Cursor.Text(buf) != "red" {
		t.Fatalf("expected value to exclude the !important trailer, got %+v", decl.Value)
	}

	got := printer.Serialize(buf, sheet, p.Trivia(), printer.Default())
	if got != "a{color:red ! important}" {
		t.Fatalf("round-trip mismatch with !important: got %q", got)
	}
}

func TestDeclarationLeakedIntoRulePositionRecovers(t *testing.T) {
	// A dashed-ident ':' shape at rule-list position is a custom-property-
	// like declaration leaked where a rule was expected; spec.md §4.4 step 2
	// requires this to always recover as a BadDeclaration with a recorded
	// error -- it must never succeed as a real Declaration.
	const src = "--foo: bar; a{}"
	buf := source.New("<test>", src)
	p := New(buf, lexer.FeatureSet{})
	sheet := ParseStyleSheet(p)
	if len(sheet.Rules) != 2 {
		t.Fatalf("expected 2 top-level items, got %d: %+v", len(sheet.Rules), sheet.Rules)
	}
	if _, ok := sheet.Rules[0].(*ast.BadDeclaration); !ok {
		t.Fatalf("expected the first item to recover as a BadDeclaration, got %T", sheet.Rules[0])
	}
	if _, ok := sheet.Rules[1].(*ast.QualifiedRule); !ok {
		t.Fatalf("expected the second item to parse as a QualifiedRule, got %T", sheet.Rules[1])
	}

	errs := p.Errors()
	if len(errs) != 1 || errs[0].Code != diag.BadDeclaration {
		t.Fatalf("expected exactly one BadDeclaration error, got %+v", errs)
	}

	got := printer.Serialize(buf, sheet, p.Trivia(), printer.Default())
	if got != src {
		t.Fatalf("round-trip mismatch: got %q, want %q", got, src)
	}
}

func TestNestedStyleRule(t *testing.T) {
	// CSS Nesting: a qualified rule nested inside a style rule's block.
	expectRoundTrip(t, "a{color:red;&:hover{color:blue}}")
	buf := source.New("<test>", "a{color:red;&:hover{color:blue}}")
	p := New(buf, lexer.FeatureSet{})
	sheet := ParseStyleSheet(p)
	rule := sheet.Rules[0].(*ast.QualifiedRule)
	if len(rule.Block.Children) != 2 {
		t.Fatalf("expected 2 block children, got %d", len(rule.Block.Children))
	}
	nested, ok := rule.Block.Children[1].(*ast.QualifiedRule)
	if !ok {
		t.Fatalf("expected the second block child to be a nested QualifiedRule, got %T", rule.Block.Children[1])
	}
	if nested.Selectors == nil || !nested.Selectors.Selectors[0].Compounds[0].HasNesting {
		t.Fatalf("expected the nested rule's selector to have a nest prefix")
	}
}

func TestMediaFeatureShapes(t *testing.T) {
	cases := []struct {
		src   string
		shape ast.MediaFeatureShape
	}{
		{"@media (color) {}", ast.MediaFeatureBoolean},
		{"@media (orientation: landscape) {}", ast.MediaFeatureDiscrete},
		{"@media (min-width: 300px) {}", ast.MediaFeatureRangedLegacy},
		{"@media (width < 300px) {}", ast.MediaFeatureRangedSingleBound},
		{"@media (300px < width < 900px) {}", ast.MediaFeatureRangedBetween},
	}
	for _, c := range cases {
		c := c
		t.Run(c.src, func(t *testing.T) {
			buf := source.New("<test>", c.src)
			p := New(buf, lexer.FeatureSet{})
			sheet := ParseStyleSheet(p)
			rule := sheet.Rules[0].(*ast.AtRule)
			if rule.Media == nil || len(rule.Media.Queries.Queries) != 1 {
				t.Fatalf("expected one media query, got %+v", rule.Media)
			}
			q := rule.Media.Queries.Queries[0]
			if len(q.Conditions) != 1 || q.Conditions[0].Feature == nil {
				t.Fatalf("expected one parsed feature, got %+v", q)
			}
			if q.Conditions[0].Feature.Shape != c.shape {
				t.Fatalf("shape = %v, want %v", q.Conditions[0].Feature.Shape, c.shape)
			}
		})
	}
}

func TestMediaRangeDoubleEqualsRejected(t *testing.T) {
	// spec.md §4.4: a ranged-between feature forbids "=" on both sides.
	buf := source.New("<test>", "@media (300px = width = 900px) {}")
	p := New(buf, lexer.FeatureSet{})
	sheet := ParseStyleSheet(p)
	rule := sheet.Rules[0].(*ast.AtRule)
	feature := rule.Media.Queries.Queries[0].Conditions[0].Feature
	if feature == nil || feature.Shape != ast.MediaFeatureRangedBetween {
		t.Fatalf("expected a ranged-between feature, got %+v", feature)
	}
	errs := p.Errors()
	var found bool
	for _, e := range errs {
		if e.Code == diag.UnexpectedMediaRangeComparisonEqualsTwice {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected UnexpectedMediaRangeComparisonEqualsTwice, got %+v", errs)
	}
}

func TestMediaRangeSingleEqualsAccepted(t *testing.T) {
	expectNoErrors(t, "@media (300px = width) {}")
}

func TestLayerBlockWithMultipleNamesRejected(t *testing.T) {
	// @layer's comma-separated multi-name form is only valid as a
	// semicolon statement; a block form must name exactly one layer.
	buf := source.New("<test>", "@layer a, b { color: red; }")
	p := New(buf, lexer.FeatureSet{})
	ParseStyleSheet(p)
	errs := p.Errors()
	var found bool
	for _, e := range errs {
		if e.Code == diag.DisallowedLayerBlockWithMultipleNames {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected DisallowedLayerBlockWithMultipleNames, got %+v", errs)
	}
}

func TestLayerBlockWithSingleNameAccepted(t *testing.T) {
	expectNoErrors(t, "@layer a { b { color: red; } }")
}

func TestUnexpectedMarginBoxAtRuleRejected(t *testing.T) {
	buf := source.New("<test>", "@page { @bogus-box { color: red; } }")
	p := New(buf, lexer.FeatureSet{})
	ParseStyleSheet(p)
	errs := p.Errors()
	var found bool
	for _, e := range errs {
		if e.Code == diag.UnexpectedAtRule {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected UnexpectedAtRule, got %+v", errs)
	}
}

func TestKnownMarginBoxAtRuleAccepted(t *testing.T) {
	expectNoErrors(t, "@page { @top-left { content: \"a\"; } }")
}

func TestParseRuleEntirelyRejectsTrailingInput(t *testing.T) {
	buf := source.New("<test>", "a{} b{}")
	p := New(buf, lexer.FeatureSet{})
	rule := ParseRuleEntirely(p)
	if _, ok := rule.(*ast.QualifiedRule); !ok {
		t.Fatalf("expected the first rule to parse as *ast.QualifiedRule, got %T", rule)
	}
	errs := p.Errors()
	if len(errs) != 1 || errs[0].Code != diag.ExpectedEnd {
		t.Fatalf("expected exactly one ExpectedEnd error, got %+v", errs)
	}
	if !p.AtEOF() {
		t.Fatalf("expected trailing input to be drained to EOF")
	}
}

func TestParseRuleEntirelyAcceptsExactlyOneRule(t *testing.T) {
	buf := source.New("<test>", "a{color:red;}")
	p := New(buf, lexer.FeatureSet{})
	rule := ParseRuleEntirely(p)
	if _, ok := rule.(*ast.QualifiedRule); !ok {
		t.Fatalf("expected *ast.QualifiedRule, got %T", rule)
	}
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
}

func TestTrailingSemicolonAccepted(t *testing.T) {
	expectRoundTrip(t, "a{color:red;;;}")
	expectNoErrors(t, "a{color:red;;;}")
}

func TestCommentsAndWhitespacePreserved(t *testing.T) {
	expectRoundTrip(t, "/* top */\na /* sel */ { /* decl */ color : red ; }\n")
}

func TestCDOCDCAtTopLevelIgnored(t *testing.T) {
	expectRoundTrip(t, "<!-- a{} -->")
	expectNoErrors(t, "<!-- a{} -->")
}

func TestReparseRangeMatchesFullParseOfSameSlice(t *testing.T) {
	contents := "a{color:red;width:1px}"
	buf := source.New("<test>", contents)

	// "1px" starts right after "width:" (offset 18) and the declaration
	// value ends at the close curly (offset 21).
	start, end := source.Offset(18), source.Offset(21)

	values, errs, _ := ReparseRange(buf, lexer.FeatureSet{}, start, end)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(values) != 1 {
		t.Fatalf("expected one component value, got %d: %+v", len(values), values)
	}
	got := values[0].Cursor.Text(buf)
	if got != "1px" {
		t.Errorf("ReparseRange value = %q, want %q", got, "1px")
	}
}
