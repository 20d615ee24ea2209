// Package visitor implements typed, per-node-kind traversal over an
// internal/ast tree (spec.md §4.5: "a separate Visitor interface exposes
// typed callbacks per node kind... default implementations recurse; a
// visitor replaces specific callbacks"). It follows go/ast.Visitor's
// shape (see goparser.CallVisitor in the retrieved pack: a Visit(node)
// call that decides whether to keep descending) rather than a
// compile-time-generated double-dispatch visitor, since spec.md §9
// explicitly offers "a runtime registry populated at startup" as the
// substitute for the source repo's macro-generated visitable-node
// enumeration in languages without hygienic macros -- Base's embedding
// trick below is that registry: every node kind's default callback is
// registered once, at compile time, via struct embedding, and a
// concrete visitor overrides only the kinds it cares about.
package visitor

import "github.com/csstreelang/csscore/internal/ast"

// Visitor is the read-only traversal interface. Each method returns
// whether Walk should continue into that node's children; Base's
// default implementations all return true, matching "default
// implementations recurse".
type Visitor interface {
	VisitStyleSheet(s *ast.StyleSheet) bool
	VisitAtRule(r *ast.AtRule) bool
	VisitQualifiedRule(r *ast.QualifiedRule) bool
	VisitDeclaration(d *ast.Declaration) bool
	VisitBadDeclaration(d *ast.BadDeclaration) bool
	VisitBlock(b *ast.Block) bool
	VisitComponentValue(cv *ast.ComponentValue) bool
}

// Base gives every Visitor callback a no-op, recurse-by-default body.
// Embed it in a concrete visitor and override only the callbacks that
// need to look at something; spec.md §4.5 calls this "a visitor
// replaces specific callbacks".
type Base struct{}

func (Base) VisitStyleSheet(*ast.StyleSheet) bool         { return true }
func (Base) VisitAtRule(*ast.AtRule) bool                 { return true }
func (Base) VisitQualifiedRule(*ast.QualifiedRule) bool   { return true }
func (Base) VisitDeclaration(*ast.Declaration) bool       { return true }
func (Base) VisitBadDeclaration(*ast.BadDeclaration) bool { return true }
func (Base) VisitBlock(*ast.Block) bool                   { return true }
func (Base) VisitComponentValue(*ast.ComponentValue) bool { return true }

// Walk implements Accept: a depth-first, source-order traversal of the
// tree, read-only from the walker's side (it never writes back into the
// tree -- see WalkMut for the mutating flavor).
func Walk(sheet *ast.StyleSheet, v Visitor) {
	if !v.VisitStyleSheet(sheet) {
		return
	}
	for _, r := range sheet.Rules {
		walkRule(r, v)
	}
}

func walkRule(r ast.R, v Visitor) {
	switch n := r.(type) {
	case *ast.AtRule:
		if !v.VisitAtRule(n) {
			return
		}
		for i := range n.Prelude {
			walkComponentValue(&n.Prelude[i], v)
		}
		if n.Block != nil {
			walkBlock(n.Block, v)
		}
	case *ast.QualifiedRule:
		if !v.VisitQualifiedRule(n) {
			return
		}
		for i := range n.Prelude {
			walkComponentValue(&n.Prelude[i], v)
		}
		if n.Block != nil {
			walkBlock(n.Block, v)
		}
	case *ast.Declaration:
		if !v.VisitDeclaration(n) {
			return
		}
		for i := range n.Value {
			walkComponentValue(&n.Value[i], v)
		}
	case *ast.BadDeclaration:
		if !v.VisitBadDeclaration(n) {
			return
		}
		for i := range n.Tokens {
			walkComponentValue(&n.Tokens[i], v)
		}
	}
}

func walkBlock(b *ast.Block, v Visitor) {
	if !v.VisitBlock(b) {
		return
	}
	for _, child := range b.Children {
		walkRule(child, v)
	}
}

func walkComponentValue(cv *ast.ComponentValue, v Visitor) {
	if !v.VisitComponentValue(cv) {
		return
	}
	for i := range cv.Children {
		walkComponentValue(&cv.Children[i], v)
	}
}

// MutVisitor is the mutating traversal interface (spec.md §4.5's
// "accept_mut"): each callback returns the replacement rule (or the
// same pointer, unchanged) and whether to keep it at all. Returning
// keep=false drops the node from its parent's children.
type MutVisitor interface {
	MutateAtRule(r *ast.AtRule) (ast.R, bool)
	MutateQualifiedRule(r *ast.QualifiedRule) (ast.R, bool)
	MutateDeclaration(d *ast.Declaration) (ast.R, bool)
	MutateBadDeclaration(d *ast.BadDeclaration) (ast.R, bool)
}

// MutBase defaults every callback to "keep this node unchanged",
// mirroring Base's read-only no-op defaults.
type MutBase struct{}

func (MutBase) MutateAtRule(r *ast.AtRule) (ast.R, bool)                 { return r, true }
func (MutBase) MutateQualifiedRule(r *ast.QualifiedRule) (ast.R, bool)   { return r, true }
func (MutBase) MutateDeclaration(d *ast.Declaration) (ast.R, bool)       { return d, true }
func (MutBase) MutateBadDeclaration(d *ast.BadDeclaration) (ast.R, bool) { return d, true }

// WalkMut implements accept_mut over sheet, rewriting Rules (and every
// nested Block's Children) in place. Children are visited bottom-up so a
// replacement's own children have already settled before the parent's
// callback runs.
func WalkMut(sheet *ast.StyleSheet, v MutVisitor) {
	sheet.Rules = mutateRules(sheet.Rules, v)
}

func mutateRules(rules []ast.R, v MutVisitor) []ast.R {
	out := rules[:0]
	for _, r := range rules {
		if replaced, ok := mutateRule(r, v); ok {
			out = append(out, replaced)
		}
	}
	return out
}

func mutateRule(r ast.R, v MutVisitor) (ast.R, bool) {
	switch n := r.(type) {
	case *ast.AtRule:
		if n.Block != nil {
			n.Block.Children = mutateRules(n.Block.Children, v)
		}
		return v.MutateAtRule(n)
	case *ast.QualifiedRule:
		if n.Block != nil {
			n.Block.Children = mutateRules(n.Block.Children, v)
		}
		return v.MutateQualifiedRule(n)
	case *ast.Declaration:
		return v.MutateDeclaration(n)
	case *ast.BadDeclaration:
		return v.MutateBadDeclaration(n)
	}
	return r, true
}
