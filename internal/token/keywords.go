package token

var keywords = map[string]Kind{
	"namespace": KwNamespace,
	"type":      KwType,
	"interface": KwInterface,
	"prop":      KwProp,
	"field":     KwField,
	"fn":        KwFn,
	"event":     KwEvent,
	"get":       KwGet,
	"set":       KwSet,
	"pub":       KwPub,
	"priv":      KwPriv,
	"protected": KwProtected,
	"internal":  KwInternal,
	"partial":   KwPartial,
	"static":    KwStatic,
	"abstract":  KwAbstract,
	"virtual":   KwVirtual,
	"override":  KwOverride,
	"sealed":    KwSealed,
	"new":       KwNew,
	"required":  KwRequired,
	"ref":       KwRef,
	"value":     KwValue,
	"return":    KwReturn,
	"if":        KwIf,
	"else":      KwElse,
	"this":      KwThis,
	"null":      KwNull,
	"true":      KwTrue,
	"false":     KwFalse,
}

// LookupKeyword maps an identifier spelling to its keyword kind.
// Non-keywords come back as Ident.
func LookupKeyword(s string) Kind {
	if k, ok := keywords[s]; ok {
		return k
	}
	return Ident
}
