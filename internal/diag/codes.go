package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnterminatedChar         Code = 1004
	LexBadNumber                Code = 1005
	LexBadDirective             Code = 1006

	// Preprocessor
	PPIncludeNotFound    Code = 2001
	PPMacroRedefined     Code = 2002
	PPBadMacroCall       Code = 2003
	PPExpansionTooDeep   Code = 2004
	PPUnknownDirective   Code = 2005
	PPUndefUnknownMacro  Code = 2006
	PPModuleNameMismatch Code = 2007
	PPModuleNotFound     Code = 2008

	// Syntactic
	SynUnexpectedToken   Code = 3001
	SynExpectIdentifier  Code = 3002
	SynExpectSemicolon   Code = 3003
	SynUnclosedBrace     Code = 3004
	SynUnclosedParen     Code = 3005
	SynBadDeclaration    Code = 3006
	SynExpectModuleName  Code = 3007
	SynStrayTopLevel     Code = 3008

	// Session / frontend driver
	DrvBadArgument    Code = 4001
	DrvUnknownTarget  Code = 4002
	DrvMissingInput   Code = 4003
	DrvOutputWrite    Code = 4004
	DrvPreambleStale  Code = 4005
	DrvUnsupportedUse Code = 4006
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	LexUnknownChar:              "unknown character",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexUnterminatedChar:         "unterminated character literal",
	LexBadNumber:                "malformed numeric literal",
	LexBadDirective:             "malformed preprocessor directive",

	PPIncludeNotFound:    "include file not found",
	PPMacroRedefined:     "macro redefined",
	PPBadMacroCall:       "malformed macro invocation",
	PPExpansionTooDeep:   "macro expansion too deep",
	PPUnknownDirective:   "unknown preprocessor directive",
	PPUndefUnknownMacro:  "#undef of unknown macro",
	PPModuleNameMismatch: "module name does not match requested interface",
	PPModuleNotFound:     "no prebuilt interface for imported module",

	SynUnexpectedToken:  "unexpected token",
	SynExpectIdentifier: "expected identifier",
	SynExpectSemicolon:  "expected ';'",
	SynUnclosedBrace:    "unclosed '{'",
	SynUnclosedParen:    "unclosed '('",
	SynBadDeclaration:   "malformed declaration",
	SynExpectModuleName: "expected module name",
	SynStrayTopLevel:    "stray token at top level",

	DrvBadArgument:    "unrecognized command-line argument",
	DrvUnknownTarget:  "unknown target triple",
	DrvMissingInput:   "no input file",
	DrvOutputWrite:    "cannot write output file",
	DrvPreambleStale:  "reused preamble does not match current content",
	DrvUnsupportedUse: "unsupported request",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("PP%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("DRV%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
