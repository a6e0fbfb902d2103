// Package symbols extracts declarations, import bindings and module
// references from parsed TypeScript sources.
package symbols

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/vestigehq/vestige/pkg/models"
	"github.com/vestigehq/vestige/pkg/parser"
)

// Decl is a declaration plus the context the analyzer needs beyond the model.
type Decl struct {
	models.Declaration
	Enclosing string // enclosing function or class name, if resolvable
	Exported  bool   // declaration is wrapped in an export statement
}

// ImportBinding is one name introduced by an import statement.
type ImportBinding struct {
	Name     string
	Kind     models.ImportKind
	Module   string // module specifier with quotes stripped
	Line     int    // 1-based line of the import statement
	TypeOnly bool
}

// declarationNodes maps AST node types to symbol kinds.
var declarationNodes = map[string]models.SymbolKind{
	"function_declaration":           models.KindFunction,
	"generator_function_declaration": models.KindFunction,
	"class_declaration":              models.KindClass,
	"interface_declaration":          models.KindInterface,
	"type_alias_declaration":         models.KindType,
	"enum_declaration":               models.KindEnum,
}

// ExtractDeclarations walks the AST and collects every symbol declaration
// with its exact line and column.
func ExtractDeclarations(res *parser.ParseResult) []Decl {
	var decls []Decl

	parser.Walk(res.Tree.RootNode(), res.Source, func(node *sitter.Node, source []byte) bool {
		nodeType := node.Type()

		// Import bindings are handled by ExtractImports.
		if nodeType == "import_statement" {
			return false
		}

		if kind, ok := declarationNodes[nodeType]; ok {
			if nameNode := node.ChildByFieldName("name"); nameNode != nil {
				decls = append(decls, newDecl(nameNode, source, res.Path, kind, keywordFor(kind), node))
			}
			return true
		}

		if nodeType == "lexical_declaration" || nodeType == "variable_declaration" {
			keyword := "var"
			if nodeType == "lexical_declaration" {
				keyword = lexicalKeyword(node, source)
			}
			for i := range int(node.ChildCount()) {
				child := node.Child(i)
				if child.Type() != "variable_declarator" {
					continue
				}
				nameNode := child.ChildByFieldName("name")
				if nameNode == nil || nameNode.Type() != "identifier" {
					// Destructuring patterns are skipped; the pattern
					// introduces several names with shared liveness.
					continue
				}
				decls = append(decls, newDecl(nameNode, source, res.Path, models.KindVariable, keyword, node))
			}
			return true
		}

		return true
	})

	return decls
}

func newDecl(nameNode *sitter.Node, source []byte, path string, kind models.SymbolKind, keyword string, declNode *sitter.Node) Decl {
	name := parser.GetNodeText(nameNode, source)
	return Decl{
		Declaration: models.Declaration{
			Name:    name,
			Kind:    kind,
			Keyword: keyword,
			File:    path,
			Line:    int(nameNode.StartPoint().Row) + 1,
			Column:  int(nameNode.StartPoint().Column),
		},
		Enclosing: enclosingName(declNode, source),
		Exported:  isExportWrapped(declNode),
	}
}

func keywordFor(kind models.SymbolKind) string {
	switch kind {
	case models.KindFunction:
		return "function"
	case models.KindClass:
		return "class"
	case models.KindInterface:
		return "interface"
	case models.KindType:
		return "type"
	case models.KindEnum:
		return "enum"
	default:
		return string(kind)
	}
}

// lexicalKeyword returns "const" or "let" for a lexical_declaration.
func lexicalKeyword(node *sitter.Node, source []byte) string {
	for i := range int(node.ChildCount()) {
		child := node.Child(i)
		if t := child.Type(); t == "const" || t == "let" {
			return t
		}
	}
	return "let"
}

// isExportWrapped reports whether the declaration's parent is an export
// statement.
func isExportWrapped(node *sitter.Node) bool {
	parent := node.Parent()
	return parent != nil && parent.Type() == "export_statement"
}

// enclosingName climbs the tree looking for a named function or class that
// contains the declaration.
func enclosingName(node *sitter.Node, source []byte) string {
	for cur := node.Parent(); cur != nil; cur = cur.Parent() {
		switch cur.Type() {
		case "function_declaration", "generator_function_declaration", "class_declaration", "method_definition":
			if nameNode := cur.ChildByFieldName("name"); nameNode != nil {
				return parser.GetNodeText(nameNode, source)
			}
		}
	}
	return ""
}

// ExtractImports collects every binding introduced by static import
// statements.
func ExtractImports(res *parser.ParseResult) []ImportBinding {
	var bindings []ImportBinding

	for _, stmt := range parser.FindNodesByType(res.Tree.RootNode(), res.Source, "import_statement") {
		module := importSource(stmt, res.Source)
		line := int(stmt.StartPoint().Row) + 1
		typeOnly := strings.HasPrefix(parser.GetNodeText(stmt, res.Source), "import type")

		for i := range int(stmt.ChildCount()) {
			clause := stmt.Child(i)
			if clause.Type() != "import_clause" {
				continue
			}
			collectClauseBindings(clause, res.Source, module, line, typeOnly, &bindings)
		}
	}

	return bindings
}

func collectClauseBindings(clause *sitter.Node, source []byte, module string, line int, typeOnly bool, out *[]ImportBinding) {
	for i := range int(clause.ChildCount()) {
		child := clause.Child(i)
		switch child.Type() {
		case "identifier":
			*out = append(*out, ImportBinding{
				Name:     parser.GetNodeText(child, source),
				Kind:     models.ImportDefault,
				Module:   module,
				Line:     line,
				TypeOnly: typeOnly,
			})
		case "namespace_import":
			// import * as ns from '...'
			for j := range int(child.ChildCount()) {
				if inner := child.Child(j); inner.Type() == "identifier" {
					*out = append(*out, ImportBinding{
						Name:     parser.GetNodeText(inner, source),
						Kind:     models.ImportNamespace,
						Module:   module,
						Line:     line,
						TypeOnly: typeOnly,
					})
				}
			}
		case "named_imports":
			for j := range int(child.ChildCount()) {
				spec := child.Child(j)
				if spec.Type() != "import_specifier" {
					continue
				}
				nameNode := spec.ChildByFieldName("alias")
				if nameNode == nil {
					nameNode = spec.ChildByFieldName("name")
				}
				if nameNode == nil {
					continue
				}
				specText := parser.GetNodeText(spec, source)
				*out = append(*out, ImportBinding{
					Name:     parser.GetNodeText(nameNode, source),
					Kind:     models.ImportNamed,
					Module:   module,
					Line:     line,
					TypeOnly: typeOnly || strings.HasPrefix(specText, "type "),
				})
			}
		}
	}
}

// importSource returns the quoted module specifier of an import statement,
// with quotes stripped.
func importSource(stmt *sitter.Node, source []byte) string {
	if srcNode := stmt.ChildByFieldName("source"); srcNode != nil {
		return trimQuotes(parser.GetNodeText(srcNode, source))
	}
	return ""
}

// ExtractModuleSpecifiers collects every module path this file references:
// static imports, dynamic import() calls and CommonJS require() calls.
func ExtractModuleSpecifiers(res *parser.ParseResult) []string {
	seen := make(map[string]bool)
	var specs []string

	add := func(spec string) {
		if spec != "" && !seen[spec] {
			seen[spec] = true
			specs = append(specs, spec)
		}
	}

	parser.Walk(res.Tree.RootNode(), res.Source, func(node *sitter.Node, source []byte) bool {
		switch node.Type() {
		case "import_statement":
			add(importSource(node, source))
		case "call_expression":
			fn := node.ChildByFieldName("function")
			if fn == nil {
				return true
			}
			callee := parser.GetNodeText(fn, source)
			if callee != "require" && callee != "import" {
				return true
			}
			if args := node.ChildByFieldName("arguments"); args != nil {
				for i := range int(args.ChildCount()) {
					if arg := args.Child(i); arg.Type() == "string" {
						add(trimQuotes(parser.GetNodeText(arg, source)))
						break
					}
				}
			}
		}
		return true
	})

	return specs
}

// DeclaredNames returns the set of symbol names declared in the file,
// including import bindings. Used by the global symbol indexer.
func DeclaredNames(res *parser.ParseResult) []string {
	seen := make(map[string]bool)
	var names []string

	for _, d := range ExtractDeclarations(res) {
		if !seen[d.Name] {
			seen[d.Name] = true
			names = append(names, d.Name)
		}
	}
	for _, b := range ExtractImports(res) {
		if !seen[b.Name] {
			seen[b.Name] = true
			names = append(names, b.Name)
		}
	}

	return names
}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		switch s[0] {
		case '\'', '"', '`':
			if s[len(s)-1] == s[0] {
				return s[1 : len(s)-1]
			}
		}
	}
	return s
}
