// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ast defines the ECMAScript 5 syntax tree consumed by the control
// flow analysis. The shape follows the ESTree ES5 specification: one struct
// per node kind, with the ESTree field names. Trees are produced either by
// decoding ESTree JSON (Decode) or by converting a parser's tree (see the
// jsparse package), and are treated as read-only afterwards.
package ast

// Kind is the ESTree node type tag.
type Kind string

// The closed set of ES5 node kinds recognized by the analysis.
const (
	KindProgram              Kind = "Program"
	KindEmptyStatement       Kind = "EmptyStatement"
	KindBlockStatement       Kind = "BlockStatement"
	KindExpressionStatement  Kind = "ExpressionStatement"
	KindIfStatement          Kind = "IfStatement"
	KindLabeledStatement     Kind = "LabeledStatement"
	KindBreakStatement       Kind = "BreakStatement"
	KindContinueStatement    Kind = "ContinueStatement"
	KindWithStatement        Kind = "WithStatement"
	KindSwitchStatement      Kind = "SwitchStatement"
	KindSwitchCase           Kind = "SwitchCase"
	KindReturnStatement      Kind = "ReturnStatement"
	KindThrowStatement       Kind = "ThrowStatement"
	KindTryStatement         Kind = "TryStatement"
	KindCatchClause          Kind = "CatchClause"
	KindWhileStatement       Kind = "WhileStatement"
	KindDoWhileStatement     Kind = "DoWhileStatement"
	KindForStatement         Kind = "ForStatement"
	KindForInStatement       Kind = "ForInStatement"
	KindFunctionDeclaration  Kind = "FunctionDeclaration"
	KindVariableDeclaration  Kind = "VariableDeclaration"
	KindVariableDeclarator   Kind = "VariableDeclarator"
	KindThisExpression       Kind = "ThisExpression"
	KindArrayExpression      Kind = "ArrayExpression"
	KindObjectExpression     Kind = "ObjectExpression"
	KindProperty             Kind = "Property"
	KindFunctionExpression   Kind = "FunctionExpression"
	KindSequenceExpression   Kind = "SequenceExpression"
	KindUnaryExpression      Kind = "UnaryExpression"
	KindBinaryExpression     Kind = "BinaryExpression"
	KindAssignmentExpression Kind = "AssignmentExpression"
	KindUpdateExpression     Kind = "UpdateExpression"
	KindLogicalExpression    Kind = "LogicalExpression"
	KindConditionalExpression Kind = "ConditionalExpression"
	KindCallExpression       Kind = "CallExpression"
	KindNewExpression        Kind = "NewExpression"
	KindMemberExpression     Kind = "MemberExpression"
	KindIdentifier           Kind = "Identifier"
	KindLiteral              Kind = "Literal"
)

// Node is implemented by every syntax tree node.
type Node interface {
	Kind() Kind
}

// Program is the root of a parsed source file.
type Program struct {
	Body []Node
}

// EmptyStatement is a lone semicolon. Idx carries no source position:
// neither Decode nor the jsparse converter sets it, so it is 0.
type EmptyStatement struct {
	Idx int
}

// BlockStatement is a braced statement list.
type BlockStatement struct {
	Body []Node
}

// ExpressionStatement wraps an expression in statement position.
type ExpressionStatement struct {
	Expression Node
}

// IfStatement has an optional Alternate.
type IfStatement struct {
	Test       Node
	Consequent Node
	Alternate  Node
}

// LabeledStatement attaches a label to its Body.
type LabeledStatement struct {
	Label *Identifier
	Body  Node
}

// BreakStatement has an optional Label.
type BreakStatement struct {
	Label *Identifier
}

// ContinueStatement has an optional Label.
type ContinueStatement struct {
	Label *Identifier
}

// WithStatement scopes Body under Object.
type WithStatement struct {
	Object Node
	Body   Node
}

// SwitchStatement holds its cases in lexical order; the default case, if
// any, appears at its lexical position with a nil Test.
type SwitchStatement struct {
	Discriminant Node
	Cases        []*SwitchCase
}

// SwitchCase is one case (or default, when Test is nil) of a switch.
type SwitchCase struct {
	Test       Node
	Consequent []Node
}

// ReturnStatement has an optional Argument.
type ReturnStatement struct {
	Argument Node
}

// ThrowStatement always has an Argument in ES5.
type ThrowStatement struct {
	Argument Node
}

// TryStatement requires at least one of Handler and Finalizer.
type TryStatement struct {
	Block     *BlockStatement
	Handler   *CatchClause
	Finalizer *BlockStatement
}

// CatchClause binds Param over Body.
type CatchClause struct {
	Param *Identifier
	Body  *BlockStatement
}

// WhileStatement is a pre-tested loop.
type WhileStatement struct {
	Test Node
	Body Node
}

// DoWhileStatement is a post-tested loop.
type DoWhileStatement struct {
	Body Node
	Test Node
}

// ForStatement has optional Init, Test and Update clauses. Init is either a
// VariableDeclaration or an expression.
type ForStatement struct {
	Init   Node
	Test   Node
	Update Node
	Body   Node
}

// ForInStatement enumerates Right's keys into Left. Left is either a
// VariableDeclaration with a single declarator or an assignable expression.
type ForInStatement struct {
	Left  Node
	Right Node
	Body  Node
}

// FunctionDeclaration declares a named function in statement position.
type FunctionDeclaration struct {
	ID     *Identifier
	Params []*Identifier
	Body   *BlockStatement
}

// FunctionExpression is a function in expression position; ID is optional.
type FunctionExpression struct {
	ID     *Identifier
	Params []*Identifier
	Body   *BlockStatement
}

// VariableDeclaration is a var statement. DeclKind is always "var" in ES5.
type VariableDeclaration struct {
	Declarations []*VariableDeclarator
	DeclKind     string
}

// VariableDeclarator binds ID, optionally initializing it with Init.
type VariableDeclarator struct {
	ID   *Identifier
	Init Node
}

// ThisExpression references the current this binding. Idx carries no
// source position: neither Decode nor the jsparse converter sets it, so it
// is 0.
type ThisExpression struct {
	Idx int
}

// ArrayExpression holds its elements in order; holes are nil.
type ArrayExpression struct {
	Elements []Node
}

// ObjectExpression holds its properties in order.
type ObjectExpression struct {
	Properties []*Property
}

// Property is one member of an object literal. PropKind is "init", "get"
// or "set".
type Property struct {
	Key      Node
	Value    Node
	PropKind string
}

// SequenceExpression is a comma expression.
type SequenceExpression struct {
	Expressions []Node
}

// UnaryExpression covers the prefix operators except ++ and --.
type UnaryExpression struct {
	Operator string
	Argument Node
	Prefix   bool
}

// BinaryExpression covers the non-short-circuit binary operators.
type BinaryExpression struct {
	Operator string
	Left     Node
	Right    Node
}

// AssignmentExpression covers = and the compound assignment operators.
type AssignmentExpression struct {
	Operator string
	Left     Node
	Right    Node
}

// UpdateExpression covers ++ and --.
type UpdateExpression struct {
	Operator string
	Argument Node
	Prefix   bool
}

// LogicalExpression covers the short-circuit operators && and ||.
type LogicalExpression struct {
	Operator string
	Left     Node
	Right    Node
}

// ConditionalExpression is the ternary operator.
type ConditionalExpression struct {
	Test       Node
	Consequent Node
	Alternate  Node
}

// CallExpression applies Callee to Arguments.
type CallExpression struct {
	Callee    Node
	Arguments []Node
}

// NewExpression constructs Callee with Arguments.
type NewExpression struct {
	Callee    Node
	Arguments []Node
}

// MemberExpression accesses Property on Object. When Computed is false the
// property is a static Identifier.
type MemberExpression struct {
	Object   Node
	Property Node
	Computed bool
}

// Identifier is a name, in reference or binding position.
type Identifier struct {
	Name string
}

// Literal is a primitive constant. Value is nil, a bool, a float64 or a
// string; Raw preserves the source spelling when known.
type Literal struct {
	Value interface{}
	Raw   string
}

func (*Program) Kind() Kind               { return KindProgram }
func (*EmptyStatement) Kind() Kind        { return KindEmptyStatement }
func (*BlockStatement) Kind() Kind        { return KindBlockStatement }
func (*ExpressionStatement) Kind() Kind   { return KindExpressionStatement }
func (*IfStatement) Kind() Kind           { return KindIfStatement }
func (*LabeledStatement) Kind() Kind      { return KindLabeledStatement }
func (*BreakStatement) Kind() Kind        { return KindBreakStatement }
func (*ContinueStatement) Kind() Kind     { return KindContinueStatement }
func (*WithStatement) Kind() Kind         { return KindWithStatement }
func (*SwitchStatement) Kind() Kind       { return KindSwitchStatement }
func (*SwitchCase) Kind() Kind            { return KindSwitchCase }
func (*ReturnStatement) Kind() Kind       { return KindReturnStatement }
func (*ThrowStatement) Kind() Kind        { return KindThrowStatement }
func (*TryStatement) Kind() Kind          { return KindTryStatement }
func (*CatchClause) Kind() Kind           { return KindCatchClause }
func (*WhileStatement) Kind() Kind        { return KindWhileStatement }
func (*DoWhileStatement) Kind() Kind      { return KindDoWhileStatement }
func (*ForStatement) Kind() Kind          { return KindForStatement }
func (*ForInStatement) Kind() Kind        { return KindForInStatement }
func (*FunctionDeclaration) Kind() Kind   { return KindFunctionDeclaration }
func (*VariableDeclaration) Kind() Kind   { return KindVariableDeclaration }
func (*VariableDeclarator) Kind() Kind    { return KindVariableDeclarator }
func (*ThisExpression) Kind() Kind        { return KindThisExpression }
func (*ArrayExpression) Kind() Kind       { return KindArrayExpression }
func (*ObjectExpression) Kind() Kind      { return KindObjectExpression }
func (*Property) Kind() Kind              { return KindProperty }
func (*FunctionExpression) Kind() Kind    { return KindFunctionExpression }
func (*SequenceExpression) Kind() Kind    { return KindSequenceExpression }
func (*UnaryExpression) Kind() Kind       { return KindUnaryExpression }
func (*BinaryExpression) Kind() Kind      { return KindBinaryExpression }
func (*AssignmentExpression) Kind() Kind  { return KindAssignmentExpression }
func (*UpdateExpression) Kind() Kind      { return KindUpdateExpression }
func (*LogicalExpression) Kind() Kind     { return KindLogicalExpression }
func (*ConditionalExpression) Kind() Kind { return KindConditionalExpression }
func (*CallExpression) Kind() Kind        { return KindCallExpression }
func (*NewExpression) Kind() Kind         { return KindNewExpression }
func (*MemberExpression) Kind() Kind      { return KindMemberExpression }
func (*Identifier) Kind() Kind            { return KindIdentifier }
func (*Literal) Kind() Kind               { return KindLiteral }
