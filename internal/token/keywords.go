package token

// keywords maps spelling to keyword kind.
var keywords = map[string]Kind{
	"void":      KwVoid,
	"char":      KwChar,
	"short":     KwShort,
	"int":       KwInt,
	"long":      KwLong,
	"float":     KwFloat,
	"double":    KwDouble,
	"signed":    KwSigned,
	"unsigned":  KwUnsigned,
	"bool":      KwBool,
	"const":     KwConst,
	"volatile":  KwVolatile,
	"static":    KwStatic,
	"extern":    KwExtern,
	"inline":    KwInline,
	"struct":    KwStruct,
	"union":     KwUnion,
	"enum":      KwEnum,
	"class":     KwClass,
	"typedef":   KwTypedef,
	"using":     KwUsing,
	"namespace": KwNamespace,
	"template":  KwTemplate,
	"typename":  KwTypename,
	"auto":      KwAuto,
	"return":    KwReturn,
	"if":        KwIf,
	"else":      KwElse,
	"for":       KwFor,
	"while":     KwWhile,
	"do":        KwDo,
	"switch":    KwSwitch,
	"case":      KwCase,
	"default":   KwDefault,
	"break":     KwBreak,
	"continue":  KwContinue,
	"goto":      KwGoto,
	"sizeof":    KwSizeof,
	"export":    KwExport,
	"import":    KwImport,
	"module":    KwModule,
	"true":      KwTrue,
	"false":     KwFalse,
	"nullptr":   KwNullptr,
}

// keywordNames is the reverse of keywords, for Kind.String.
var keywordNames = func() map[Kind]string {
	out := make(map[Kind]string, len(keywords))
	for text, kind := range keywords {
		out[kind] = text
	}
	return out
}()

// LookupKeyword returns the keyword kind for the given spelling, or
// Ident when the spelling is not a keyword.
func LookupKeyword(text string) Kind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return Ident
}

// KeywordSpellings returns all keyword spellings. The order is not
// deterministic; callers sort if they need stable output.
func KeywordSpellings() []string {
	out := make([]string, 0, len(keywords))
	for text := range keywords {
		out = append(out, text)
	}
	return out
}
