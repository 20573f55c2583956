package ast

import "math/big"

type NodeType string

const (
	NodeProgram             NodeType = "Program"
	NodeFunctionDefinition  NodeType = "FunctionDefinition"
	NodeLambdaExpression    NodeType = "LambdaExpression"
	NodeFunctionApplication NodeType = "FunctionApplication"
	NodeBinaryOperation     NodeType = "BinaryOperation"
	NodeUnaryOperation      NodeType = "UnaryOperation"
	NodeTernaryOperation    NodeType = "TernaryOperation"
	NodeIntegerLiteral      NodeType = "IntegerLiteral"
	NodeBooleanLiteral      NodeType = "BooleanLiteral"
	NodeIdentifier          NodeType = "Identifier"
)

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type" yaml:"type"`
	Loc  Span     `json:"span,omitempty" yaml:"span,omitempty"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.Loc }
func (n *nodeImpl) setSpan(span Span) { n.Loc = span }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// Literal is a value fixed at parse time.
type Literal interface {
	Expression
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// Program

type Program struct {
	nodeImpl `yaml:",inline"`

	Statements []Statement `json:"statements" yaml:"statements"`
}

func NewProgram(statements []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Statements: statements}
}

// Definitions

// FunctionDefinition binds Name in the defining environment. It is only valid
// as a top-level statement.
type FunctionDefinition struct {
	nodeImpl        `yaml:",inline"`
	statementMarker `json:"-" yaml:"-"`

	Name   string     `json:"name" yaml:"name"`
	Params []string   `json:"params" yaml:"params"`
	Body   Expression `json:"body" yaml:"body"`
}

func NewFunctionDefinition(name string, params []string, body Expression) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), Name: name, Params: params, Body: body}
}

// Expressions

type LambdaExpression struct {
	nodeImpl         `yaml:",inline"`
	expressionMarker `json:"-" yaml:"-"`
	statementMarker  `json:"-" yaml:"-"`

	Params []string   `json:"params" yaml:"params"`
	Body   Expression `json:"body" yaml:"body"`
}

func NewLambdaExpression(params []string, body Expression) *LambdaExpression {
	return &LambdaExpression{nodeImpl: newNodeImpl(NodeLambdaExpression), Params: params, Body: body}
}

type FunctionApplication struct {
	nodeImpl         `yaml:",inline"`
	expressionMarker `json:"-" yaml:"-"`
	statementMarker  `json:"-" yaml:"-"`

	Callee    Expression   `json:"callee" yaml:"callee"`
	Arguments []Expression `json:"arguments" yaml:"arguments"`
}

func NewFunctionApplication(callee Expression, args []Expression) *FunctionApplication {
	return &FunctionApplication{nodeImpl: newNodeImpl(NodeFunctionApplication), Callee: callee, Arguments: args}
}

type BinaryOperation struct {
	nodeImpl         `yaml:",inline"`
	expressionMarker `json:"-" yaml:"-"`
	statementMarker  `json:"-" yaml:"-"`

	Left     Expression `json:"left" yaml:"left"`
	Operator string     `json:"operator" yaml:"operator"`
	Right    Expression `json:"right" yaml:"right"`
}

func NewBinaryOperation(left Expression, operator string, right Expression) *BinaryOperation {
	return &BinaryOperation{nodeImpl: newNodeImpl(NodeBinaryOperation), Left: left, Operator: operator, Right: right}
}

type UnaryOperation struct {
	nodeImpl         `yaml:",inline"`
	expressionMarker `json:"-" yaml:"-"`
	statementMarker  `json:"-" yaml:"-"`

	Operator string     `json:"operator" yaml:"operator"`
	Operand  Expression `json:"operand" yaml:"operand"`
}

func NewUnaryOperation(operator string, operand Expression) *UnaryOperation {
	return &UnaryOperation{nodeImpl: newNodeImpl(NodeUnaryOperation), Operator: operator, Operand: operand}
}

type TernaryOperation struct {
	nodeImpl         `yaml:",inline"`
	expressionMarker `json:"-" yaml:"-"`
	statementMarker  `json:"-" yaml:"-"`

	Condition   Expression `json:"condition" yaml:"condition"`
	TrueBranch  Expression `json:"trueBranch" yaml:"trueBranch"`
	FalseBranch Expression `json:"falseBranch" yaml:"falseBranch"`
}

func NewTernaryOperation(condition, trueBranch, falseBranch Expression) *TernaryOperation {
	return &TernaryOperation{nodeImpl: newNodeImpl(NodeTernaryOperation), Condition: condition, TrueBranch: trueBranch, FalseBranch: falseBranch}
}

// Literals

type IntegerLiteral struct {
	nodeImpl         `yaml:",inline"`
	expressionMarker `json:"-" yaml:"-"`
	statementMarker  `json:"-" yaml:"-"`
	literalMarker    `json:"-" yaml:"-"`

	Value *big.Int `json:"value" yaml:"-"`
}

func NewIntegerLiteral(value *big.Int) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

// MarshalYAML renders the integer in decimal; *big.Int has no YAML form of its own.
func (l *IntegerLiteral) MarshalYAML() (interface{}, error) {
	return struct {
		Type  NodeType `yaml:"type"`
		Span  Span     `yaml:"span,omitempty"`
		Value string   `yaml:"value"`
	}{l.Type, l.Loc, l.Value.String()}, nil
}

type BooleanLiteral struct {
	nodeImpl         `yaml:",inline"`
	expressionMarker `json:"-" yaml:"-"`
	statementMarker  `json:"-" yaml:"-"`
	literalMarker    `json:"-" yaml:"-"`

	Value bool `json:"value" yaml:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

// Identifier

type Identifier struct {
	nodeImpl         `yaml:",inline"`
	expressionMarker `json:"-" yaml:"-"`
	statementMarker  `json:"-" yaml:"-"`

	Name string `json:"name" yaml:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}
