package ast

// Inspect performs a single depth-first traversal of the tree rooted at n,
// calling fn for every node. If fn returns false for a node, its children
// are skipped. n may be a *File, a declaration, a statement, or an
// expression; nil nodes are ignored.
func Inspect(n any, fn func(any) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch node := n.(type) {
	case *File:
		for _, c := range node.Contracts {
			Inspect(c, fn)
		}
	case *ContractDecl:
		for _, p := range node.Parents {
			Inspect(p, fn)
		}
		for _, m := range node.Members {
			Inspect(m, fn)
		}
	case *FunctionDecl:
		for _, p := range node.Params {
			Inspect(p, fn)
		}
		for _, r := range node.Returns {
			Inspect(r, fn)
		}
		for _, s := range node.Body {
			Inspect(s, fn)
		}
	case *FieldDecl:
		Inspect(node.Type, fn)
	case *Param:
		Inspect(node.Type, fn)
	case *NamedType:
		// лист
	case *ArrayType:
		Inspect(node.Elem, fn)
	case *LocalDecl:
		Inspect(node.Type, fn)
		if node.Value != nil {
			Inspect(node.Value, fn)
		}
	case *AssignStmt:
		Inspect(node.LHS, fn)
		Inspect(node.RHS, fn)
	case *ExprStmt:
		Inspect(node.X, fn)
	case *ReturnStmt:
		if node.X != nil {
			Inspect(node.X, fn)
		}
	case *Ident:
		// лист
	case *MemberExpr:
		Inspect(node.X, fn)
	case *IndexExpr:
		Inspect(node.X, fn)
		Inspect(node.Index, fn)
	case *CallExpr:
		Inspect(node.Fun, fn)
		for _, a := range node.Args {
			Inspect(a, fn)
		}
	case *IntLit, *StringLit:
		// листья
	}
}
