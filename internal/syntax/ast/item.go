package ast

import "github.com/emberlang/ember/internal/syntax"

// Visibility is an item's `pub` marker. Its mere presence as a child
// means public; absence (VisibilityOf returning ok=false) means private,
// the default the VisibilityOwner contract specifies.
type Visibility struct{ syn *syntax.SyntaxNode }

func (Visibility) CanCast(k syntax.Kind) bool { return k == syntax.KindVisibility }

func (Visibility) Cast(n *syntax.SyntaxNode) (Visibility, bool) {
	if n == nil || n.Kind() != syntax.KindVisibility {
		return Visibility{}, false
	}
	return Visibility{syn: n}, true
}

func (n Visibility) Syntax() *syntax.SyntaxNode { return n.syn }

// RetType is a function's `-> Type` suffix.
type RetType struct{ syn *syntax.SyntaxNode }

func (RetType) CanCast(k syntax.Kind) bool { return k == syntax.KindRetType }

func (RetType) Cast(n *syntax.SyntaxNode) (RetType, bool) {
	if n == nil || n.Kind() != syntax.KindRetType {
		return RetType{}, false
	}
	return RetType{syn: n}, true
}

func (n RetType) Syntax() *syntax.SyntaxNode { return n.syn }

func (n RetType) TypeRef() (TypeRef, bool) {
	return AscribedType(n)
}

// Param is a single `name: Type` function parameter.
type Param struct{ syn *syntax.SyntaxNode }

func (Param) CanCast(k syntax.Kind) bool { return k == syntax.KindParam }

func (Param) Cast(n *syntax.SyntaxNode) (Param, bool) {
	if n == nil || n.Kind() != syntax.KindParam {
		return Param{}, false
	}
	return Param{syn: n}, true
}

func (n Param) Syntax() *syntax.SyntaxNode { return n.syn }

func (n Param) Pat() (Pat, bool) {
	return castFirstChild(n.syn, Pat{}.Cast)
}

func (n Param) TypeRef() (TypeRef, bool) {
	return AscribedType(n)
}

// ParamList is a parenthesized, comma-separated parameter list.
type ParamList struct{ syn *syntax.SyntaxNode }

func (ParamList) CanCast(k syntax.Kind) bool { return k == syntax.KindParamList }

func (ParamList) Cast(n *syntax.SyntaxNode) (ParamList, bool) {
	if n == nil || n.Kind() != syntax.KindParamList {
		return ParamList{}, false
	}
	return ParamList{syn: n}, true
}

func (n ParamList) Syntax() *syntax.SyntaxNode { return n.syn }

func (n ParamList) Params() []Param {
	return castAllChildren(n.syn, Param{}.Cast)
}

// FunctionDef is a `fn name(params) -> RetType { body }` item.
type FunctionDef struct{ syn *syntax.SyntaxNode }

func (FunctionDef) CanCast(k syntax.Kind) bool { return k == syntax.KindFunctionDef }

func (FunctionDef) Cast(n *syntax.SyntaxNode) (FunctionDef, bool) {
	if n == nil || n.Kind() != syntax.KindFunctionDef {
		return FunctionDef{}, false
	}
	return FunctionDef{syn: n}, true
}

func (n FunctionDef) Syntax() *syntax.SyntaxNode { return n.syn }

func (n FunctionDef) Name() (Name, bool)             { return NameOf(n) }
func (n FunctionDef) Visibility() (Visibility, bool) { return VisibilityOf(n) }
func (n FunctionDef) DocComments() []string          { return DocComments(n) }

func (n FunctionDef) ParamList() (ParamList, bool) {
	return castFirstChild(n.syn, ParamList{}.Cast)
}

func (n FunctionDef) RetType() (RetType, bool) {
	return castFirstChild(n.syn, RetType{}.Cast)
}

func (n FunctionDef) Body() (BlockExpr, bool) {
	return castFirstChild(n.syn, BlockExpr{}.Cast)
}

// RecordFieldDef is one `name: Type` field of a record-style struct.
type RecordFieldDef struct{ syn *syntax.SyntaxNode }

func (RecordFieldDef) CanCast(k syntax.Kind) bool { return k == syntax.KindRecordFieldDef }

func (RecordFieldDef) Cast(n *syntax.SyntaxNode) (RecordFieldDef, bool) {
	if n == nil || n.Kind() != syntax.KindRecordFieldDef {
		return RecordFieldDef{}, false
	}
	return RecordFieldDef{syn: n}, true
}

func (n RecordFieldDef) Syntax() *syntax.SyntaxNode { return n.syn }
func (n RecordFieldDef) Name() (Name, bool)          { return NameOf(n) }
func (n RecordFieldDef) TypeRef() (TypeRef, bool)    { return AscribedType(n) }

// RecordFieldDefList is a brace-delimited list of RecordFieldDef.
type RecordFieldDefList struct{ syn *syntax.SyntaxNode }

func (RecordFieldDefList) CanCast(k syntax.Kind) bool { return k == syntax.KindRecordFieldDefList }

func (RecordFieldDefList) Cast(n *syntax.SyntaxNode) (RecordFieldDefList, bool) {
	if n == nil || n.Kind() != syntax.KindRecordFieldDefList {
		return RecordFieldDefList{}, false
	}
	return RecordFieldDefList{syn: n}, true
}

func (n RecordFieldDefList) Syntax() *syntax.SyntaxNode { return n.syn }

func (n RecordFieldDefList) Fields() []RecordFieldDef {
	return castAllChildren(n.syn, RecordFieldDef{}.Cast)
}

// TupleFieldDef is one unnamed `Type` field of a tuple-style struct.
type TupleFieldDef struct{ syn *syntax.SyntaxNode }

func (TupleFieldDef) CanCast(k syntax.Kind) bool { return k == syntax.KindTupleFieldDef }

func (TupleFieldDef) Cast(n *syntax.SyntaxNode) (TupleFieldDef, bool) {
	if n == nil || n.Kind() != syntax.KindTupleFieldDef {
		return TupleFieldDef{}, false
	}
	return TupleFieldDef{syn: n}, true
}

func (n TupleFieldDef) Syntax() *syntax.SyntaxNode { return n.syn }
func (n TupleFieldDef) TypeRef() (TypeRef, bool)    { return AscribedType(n) }

// TupleFieldDefList is a parenthesized list of TupleFieldDef.
type TupleFieldDefList struct{ syn *syntax.SyntaxNode }

func (TupleFieldDefList) CanCast(k syntax.Kind) bool { return k == syntax.KindTupleFieldDefList }

func (TupleFieldDefList) Cast(n *syntax.SyntaxNode) (TupleFieldDefList, bool) {
	if n == nil || n.Kind() != syntax.KindTupleFieldDefList {
		return TupleFieldDefList{}, false
	}
	return TupleFieldDefList{syn: n}, true
}

func (n TupleFieldDefList) Syntax() *syntax.SyntaxNode { return n.syn }

func (n TupleFieldDefList) Fields() []TupleFieldDef {
	return castAllChildren(n.syn, TupleFieldDef{}.Cast)
}

// StructDef is a `struct Name { ... }` / `struct Name(...)` / `struct
// Name;` item.
type StructDef struct{ syn *syntax.SyntaxNode }

func (StructDef) CanCast(k syntax.Kind) bool { return k == syntax.KindStructDef }

func (StructDef) Cast(n *syntax.SyntaxNode) (StructDef, bool) {
	if n == nil || n.Kind() != syntax.KindStructDef {
		return StructDef{}, false
	}
	return StructDef{syn: n}, true
}

func (n StructDef) Syntax() *syntax.SyntaxNode { return n.syn }

func (n StructDef) Name() (Name, bool)             { return NameOf(n) }
func (n StructDef) Visibility() (Visibility, bool) { return VisibilityOf(n) }
func (n StructDef) DocComments() []string          { return DocComments(n) }

func (n StructDef) RecordFields() (RecordFieldDefList, bool) {
	return castFirstChild(n.syn, RecordFieldDefList{}.Cast)
}

func (n StructDef) TupleFields() (TupleFieldDefList, bool) {
	return castFirstChild(n.syn, TupleFieldDefList{}.Cast)
}

// ModuleItem is the tagged union over top-level items.
type ModuleItem struct{ syn *syntax.SyntaxNode }

func (ModuleItem) CanCast(k syntax.Kind) bool {
	switch k {
	case syntax.KindFunctionDef, syntax.KindStructDef:
		return true
	default:
		return false
	}
}

func (ModuleItem) Cast(n *syntax.SyntaxNode) (ModuleItem, bool) {
	if n == nil || !(ModuleItem{}).CanCast(n.Kind()) {
		return ModuleItem{}, false
	}
	return ModuleItem{syn: n}, true
}

func (n ModuleItem) Syntax() *syntax.SyntaxNode { return n.syn }

// ModuleItemKind is the closed set of ModuleItem alternatives.
type ModuleItemKind interface {
	isModuleItemKind()
}

func (FunctionDef) isModuleItemKind() {}
func (StructDef) isModuleItemKind()   {}

func (n ModuleItem) Kind() ModuleItemKind {
	switch n.syn.Kind() {
	case syntax.KindFunctionDef:
		v, _ := (FunctionDef{}).Cast(n.syn)
		return v
	case syntax.KindStructDef:
		v, _ := (StructDef{}).Cast(n.syn)
		return v
	default:
		panic("ast: ModuleItem.Kind: unreachable syntax kind " + n.syn.Kind().String())
	}
}

// SourceFile is the root node of a parsed file.
type SourceFile struct{ syn *syntax.SyntaxNode }

func (SourceFile) CanCast(k syntax.Kind) bool { return k == syntax.KindSourceFile }

func (SourceFile) Cast(n *syntax.SyntaxNode) (SourceFile, bool) {
	if n == nil || n.Kind() != syntax.KindSourceFile {
		return SourceFile{}, false
	}
	return SourceFile{syn: n}, true
}

func (n SourceFile) Syntax() *syntax.SyntaxNode { return n.syn }

// Items returns every top-level ModuleItem in source order.
func (n SourceFile) Items() []ModuleItem {
	return castAllChildren(n.syn, ModuleItem{}.Cast)
}
