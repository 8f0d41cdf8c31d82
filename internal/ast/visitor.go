package ast

// Visitor is a per-node-kind dispatch contract; the Walk functions below
// route a node to its matching method. The semantic analyser and the
// code generator do not drive their traversal through it: both dispatch
// with type switches over the concrete node types.
type Visitor interface {
	VisitIdentifier(*Identifier)
	VisitLiteral(*Literal)
	VisitBinary(*BinaryExpression)
	VisitUnary(*UnaryExpression)
	VisitAddressOf(*AddressOfExpression)
	VisitDereference(*DereferenceExpression)
	VisitCall(*CallExpression)
	VisitFieldAccess(*FieldAccessExpression)
	VisitArrayIndex(*ArrayIndexExpression)
	VisitRange(*RangeExpression)
	VisitSetLiteral(*SetLiteralExpression)
	VisitFormatted(*FormattedExpression)

	VisitExpressionStatement(*ExpressionStatement)
	VisitCompound(*CompoundStatement)
	VisitAssignment(*AssignmentStatement)
	VisitIf(*IfStatement)
	VisitWhile(*WhileStatement)
	VisitFor(*ForStatement)
	VisitRepeat(*RepeatStatement)
	VisitCase(*CaseStatement)
	VisitWith(*WithStatement)
	VisitLabel(*LabelStatement)
	VisitGoto(*GotoStatement)
	VisitBreak(*BreakStatement)
	VisitContinue(*ContinueStatement)

	VisitConstant(*ConstantDeclaration)
	VisitType(*TypeDeclaration)
	VisitVariable(*VariableDeclaration)
	VisitProcedure(*ProcedureDeclaration)
	VisitFunction(*FunctionDeclaration)
}

// WalkExpression dispatches expr to the matching Visitor method. It is
// the single match point every stage should call through rather than
// hand-rolling a type switch at each call site.
func WalkExpression(v Visitor, expr Expression) {
	switch e := expr.(type) {
	case *Identifier:
		v.VisitIdentifier(e)
	case *Literal:
		v.VisitLiteral(e)
	case *BinaryExpression:
		v.VisitBinary(e)
	case *UnaryExpression:
		v.VisitUnary(e)
	case *AddressOfExpression:
		v.VisitAddressOf(e)
	case *DereferenceExpression:
		v.VisitDereference(e)
	case *CallExpression:
		v.VisitCall(e)
	case *FieldAccessExpression:
		v.VisitFieldAccess(e)
	case *ArrayIndexExpression:
		v.VisitArrayIndex(e)
	case *RangeExpression:
		v.VisitRange(e)
	case *SetLiteralExpression:
		v.VisitSetLiteral(e)
	case *FormattedExpression:
		v.VisitFormatted(e)
	}
}

// WalkStatement dispatches stmt to the matching Visitor method.
func WalkStatement(v Visitor, stmt Statement) {
	switch s := stmt.(type) {
	case *ExpressionStatement:
		v.VisitExpressionStatement(s)
	case *CompoundStatement:
		v.VisitCompound(s)
	case *AssignmentStatement:
		v.VisitAssignment(s)
	case *IfStatement:
		v.VisitIf(s)
	case *WhileStatement:
		v.VisitWhile(s)
	case *ForStatement:
		v.VisitFor(s)
	case *RepeatStatement:
		v.VisitRepeat(s)
	case *CaseStatement:
		v.VisitCase(s)
	case *WithStatement:
		v.VisitWith(s)
	case *LabelStatement:
		v.VisitLabel(s)
	case *GotoStatement:
		v.VisitGoto(s)
	case *BreakStatement:
		v.VisitBreak(s)
	case *ContinueStatement:
		v.VisitContinue(s)
	}
}

// WalkDeclaration dispatches decl to the matching Visitor method.
func WalkDeclaration(v Visitor, decl Declaration) {
	switch d := decl.(type) {
	case *ConstantDeclaration:
		v.VisitConstant(d)
	case *TypeDeclaration:
		v.VisitType(d)
	case *VariableDeclaration:
		v.VisitVariable(d)
	case *ProcedureDeclaration:
		v.VisitProcedure(d)
	case *FunctionDeclaration:
		v.VisitFunction(d)
	}
}
