// Package pyimports extracts import declarations from Python source using
// the tree-sitter Python grammar. Extraction is per-file and independent of
// the rest of the project; imports nested inside functions or conditionals
// are reported the same as top-level ones.
package pyimports

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Declaration is one parsed import statement, either Absolute or Relative.
type Declaration interface {
	declaration()
}

// Absolute is a non-relative import such as `import a.b` or `from a.b import x`.
type Absolute struct {
	Module string
	Names  []string
}

// Relative is a dotted-prefix import such as `from ..pkg import x`.
// Level counts the leading dots ("." = 1, ".." = 2). Module may be empty,
// as in `from . import sibling`.
type Relative struct {
	Level  int
	Module string
	Names  []string
}

func (Absolute) declaration() {}
func (Relative) declaration() {}

// ParseError reports a file whose source could not be parsed. The file is
// skipped for edge extraction but remains a graph node.
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %s", e.Path, e.Reason)
}

// Extract parses Python source and returns its import declarations in
// source order. Syntax errors yield a *ParseError carrying path.
func Extract(path string, source []byte) ([]Declaration, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, &ParseError{Path: path, Reason: err.Error()}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, &ParseError{Path: path, Reason: "syntax error"}
	}

	return extractFromTree(root, source), nil
}

func extractFromTree(root *sitter.Node, source []byte) []Declaration {
	var decls []Declaration

	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}

		switch n.Type() {
		case "import_statement":
			for _, module := range importedModules(n, source) {
				decls = append(decls, Absolute{Module: module})
			}
		case "import_from_statement", "future_import_statement":
			if decl := fromImportDeclaration(n, source); decl != nil {
				decls = append(decls, decl)
			}
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}

	walk(root)
	return decls
}

// importedModules collects the module targets of a plain import statement,
// one per target (`import a, b` yields both).
func importedModules(node *sitter.Node, source []byte) []string {
	var modules []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if module := moduleName(child, source); module != "" {
			modules = append(modules, module)
		}
	}
	return modules
}

// fromImportDeclaration parses a `from X import ...` statement into a
// Relative or Absolute declaration, keeping the imported names.
func fromImportDeclaration(node *sitter.Node, source []byte) Declaration {
	var module string
	var names []string
	seenImportKeyword := false

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}

		if child.Type() == "import" {
			seenImportKeyword = true
			continue
		}

		if !seenImportKeyword {
			switch child.Type() {
			case "relative_import", "dotted_name":
				module = strings.TrimSpace(child.Content(source))
			}
			continue
		}

		switch child.Type() {
		case "wildcard_import":
			// `from X import *` names nothing resolvable; the module itself
			// is still a dependency.
		default:
			if name := moduleName(child, source); name != "" {
				names = append(names, name)
			}
		}
	}

	if module == "" {
		return nil
	}

	if !strings.HasPrefix(module, ".") {
		return Absolute{Module: module, Names: names}
	}

	level := 0
	for level < len(module) && module[level] == '.' {
		level++
	}
	return Relative{Level: level, Module: module[level:], Names: names}
}

// moduleName extracts the dotted module name from an import target node,
// discarding aliases.
func moduleName(node *sitter.Node, source []byte) string {
	switch node.Type() {
	case "dotted_name", "identifier":
		return strings.TrimSpace(node.Content(source))
	case "aliased_import":
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child == nil {
				continue
			}
			if child.Type() == "dotted_name" || child.Type() == "identifier" {
				return strings.TrimSpace(child.Content(source))
			}
		}
	}
	return ""
}
