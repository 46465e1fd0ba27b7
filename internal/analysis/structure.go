package analysis

import (
	"github.com/emberlang/ember/internal/arena"
	"github.com/emberlang/ember/internal/ids"
	"github.com/emberlang/ember/internal/itemtree"
	"github.com/emberlang/ember/internal/query"
	"github.com/emberlang/ember/internal/text"
)

// StructureNode is one entry in a file's outline: a top-level item or one
// of its fields/parameters. Children are indices into the flat
// []StructureNode slice FileStructure returns, not a nested array, so a
// host can render a tree without recursive allocation.
//
// Generalized from internal/lsp.DocumentSymbol (a wire-protocol type with
// JSON tags and a nested Children slice) into a protocol-agnostic shape.
type StructureNode struct {
	Name           string
	Kind           ids.SymbolKind
	Span           text.Span
	NavigationSpan text.Span
	Children       []int
}

func fileStructure(qc *query.QueryContext, file ids.FileID) ([]StructureNode, error) {
	tree, err := query.ItemTree(qc, file)
	if err != nil {
		return nil, err
	}

	var noSymbol arena.Symbol
	var nodes []StructureNode
	for _, item := range tree.Items {
		name := ""
		if item.Name != noSymbol {
			name = tree.Interner.Resolve(item.Name)
		}
		node := StructureNode{
			Name:           name,
			Span:           item.Span,
			NavigationSpan: item.NameSpan,
		}

		switch item.Kind {
		case itemtree.ItemFunction:
			node.Kind = ids.SymbolKindFunction
		case itemtree.ItemStruct:
			node.Kind = ids.SymbolKindStruct
			nodes = appendStructFieldChildren(nodes, &node, item)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// appendStructFieldChildren appends one StructureNode per named record
// field of item to nodes and records their indices on parent, so
// FileStructure's flat-with-children-by-index contract covers a struct's
// record fields the way an LSP outline nests them. Tuple and unit structs
// have no named fields to surface as children.
func appendStructFieldChildren(nodes []StructureNode, parent *StructureNode, item itemtree.Item) []StructureNode {
	if item.Struct.Shape != itemtree.FieldShapeRecord {
		return nodes
	}
	for _, f := range item.Struct.Fields {
		if f.Name == "" {
			continue
		}
		nodes = append(nodes, StructureNode{
			Name: f.Name,
			Kind: ids.SymbolKindTypeAlias,
			Span: item.Span,
		})
		parent.Children = append(parent.Children, len(nodes)-1)
	}
	return nodes
}
