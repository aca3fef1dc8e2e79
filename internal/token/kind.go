package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwVoid represents the 'void' keyword.
	KwVoid
	// KwChar represents the 'char' keyword.
	KwChar
	// KwShort represents the 'short' keyword.
	KwShort
	// KwInt represents the 'int' keyword.
	KwInt
	// KwLong represents the 'long' keyword.
	KwLong
	// KwFloat represents the 'float' keyword.
	KwFloat
	// KwDouble represents the 'double' keyword.
	KwDouble
	// KwSigned represents the 'signed' keyword.
	KwSigned
	// KwUnsigned represents the 'unsigned' keyword.
	KwUnsigned
	// KwBool represents the 'bool' keyword.
	KwBool
	// KwConst represents the 'const' keyword.
	KwConst
	// KwVolatile represents the 'volatile' keyword.
	KwVolatile
	// KwStatic represents the 'static' keyword.
	KwStatic
	// KwExtern represents the 'extern' keyword.
	KwExtern
	// KwInline represents the 'inline' keyword.
	KwInline
	// KwStruct represents the 'struct' keyword.
	KwStruct
	// KwUnion represents the 'union' keyword.
	KwUnion
	// KwEnum represents the 'enum' keyword.
	KwEnum
	// KwClass represents the 'class' keyword.
	KwClass
	// KwTypedef represents the 'typedef' keyword.
	KwTypedef
	// KwUsing represents the 'using' keyword.
	KwUsing
	// KwNamespace represents the 'namespace' keyword.
	KwNamespace
	// KwTemplate represents the 'template' keyword.
	KwTemplate
	// KwTypename represents the 'typename' keyword.
	KwTypename
	// KwAuto represents the 'auto' keyword.
	KwAuto
	// KwReturn represents the 'return' keyword.
	KwReturn
	// KwIf represents the 'if' keyword.
	KwIf
	// KwElse represents the 'else' keyword.
	KwElse
	// KwFor represents the 'for' keyword.
	KwFor
	// KwWhile represents the 'while' keyword.
	KwWhile
	// KwDo represents the 'do' keyword.
	KwDo
	// KwSwitch represents the 'switch' keyword.
	KwSwitch
	// KwCase represents the 'case' keyword.
	KwCase
	// KwDefault represents the 'default' keyword.
	KwDefault
	// KwBreak represents the 'break' keyword.
	KwBreak
	// KwContinue represents the 'continue' keyword.
	KwContinue
	// KwGoto represents the 'goto' keyword.
	KwGoto
	// KwSizeof represents the 'sizeof' keyword.
	KwSizeof
	// KwExport represents the 'export' keyword.
	KwExport
	// KwImport represents the 'import' keyword (C++ modules).
	KwImport
	// KwModule represents the 'module' keyword (C++ modules).
	KwModule
	// KwTrue represents the 'true' keyword.
	KwTrue
	// KwFalse represents the 'false' keyword.
	KwFalse
	// KwNullptr represents the 'nullptr' keyword.
	KwNullptr

	// IntLit represents an integer literal token.
	IntLit
	// FloatLit represents a floating-point literal token.
	FloatLit
	// CharLit represents a character literal token.
	CharLit
	// StringLit represents a string literal token.
	StringLit
	// HeaderName represents an <angle-bracketed> header name token.
	HeaderName

	// Plus represents '+'.
	Plus
	// Minus represents '-'.
	Minus
	// Star represents '*'.
	Star
	// Slash represents '/'.
	Slash
	// Percent represents '%'.
	Percent
	// Assign represents '='.
	Assign
	// EqEq represents '=='.
	EqEq
	// Bang represents '!'.
	Bang
	// BangEq represents '!='.
	BangEq
	// Lt represents '<'.
	Lt
	// LtEq represents '<='.
	LtEq
	// Gt represents '>'.
	Gt
	// GtEq represents '>='.
	GtEq
	// Shl represents '<<'.
	Shl
	// Shr represents '>>'.
	Shr
	// Amp represents '&'.
	Amp
	// AndAnd represents '&&'.
	AndAnd
	// Pipe represents '|'.
	Pipe
	// OrOr represents '||'.
	OrOr
	// Caret represents '^'.
	Caret
	// Tilde represents '~'.
	Tilde
	// Question represents '?'.
	Question
	// Colon represents ':'.
	Colon
	// ColonColon represents '::'.
	ColonColon
	// Semicolon represents ';'.
	Semicolon
	// Comma represents ','.
	Comma
	// Dot represents '.'.
	Dot
	// Ellipsis represents '...'.
	Ellipsis
	// Arrow represents '->'.
	Arrow
	// PlusPlus represents '++'.
	PlusPlus
	// MinusMinus represents '--'.
	MinusMinus
	// PlusAssign represents '+='.
	PlusAssign
	// MinusAssign represents '-='.
	MinusAssign
	// StarAssign represents '*='.
	StarAssign
	// SlashAssign represents '/='.
	SlashAssign
	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace
	// LBracket represents '['.
	LBracket
	// RBracket represents ']'.
	RBracket
	// Hash represents '#' outside a directive position.
	Hash
)

var kindNames = map[Kind]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	IntLit:     "IntLit",
	FloatLit:   "FloatLit",
	CharLit:    "CharLit",
	StringLit:  "StringLit",
	HeaderName: "HeaderName",
	Plus:       "Plus",
	Minus:      "Minus",
	Star:       "Star",
	Slash:      "Slash",
	Percent:    "Percent",
	Assign:     "Assign",
	EqEq:       "EqEq",
	Bang:       "Bang",
	BangEq:     "BangEq",
	Lt:         "Lt",
	LtEq:       "LtEq",
	Gt:         "Gt",
	GtEq:       "GtEq",
	Shl:        "Shl",
	Shr:        "Shr",
	Amp:        "Amp",
	AndAnd:     "AndAnd",
	Pipe:       "Pipe",
	OrOr:       "OrOr",
	Caret:      "Caret",
	Tilde:      "Tilde",
	Question:   "Question",
	Colon:      "Colon",
	ColonColon: "ColonColon",
	Semicolon:  "Semicolon",
	Comma:      "Comma",
	Dot:        "Dot",
	Ellipsis:   "Ellipsis",
	Arrow:      "Arrow",
	PlusPlus:   "PlusPlus",
	MinusMinus: "MinusMinus",
	LParen:     "LParen",
	RParen:     "RParen",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	LBracket:   "LBracket",
	RBracket:   "RBracket",
	Hash:       "Hash",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	if text, ok := keywordNames[k]; ok {
		return "Kw" + text
	}
	return "Kind(?)"
}
