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
	// IntLit represents an integer literal.
	IntLit
	// StringLit represents a string literal.
	StringLit

	// KwNamespace represents the 'namespace' keyword.
	KwNamespace // namespace
	// KwType represents the 'type' keyword.
	KwType // type
	// KwInterface represents the 'interface' keyword.
	KwInterface // interface
	// KwProp represents the 'prop' keyword.
	KwProp // prop
	// KwField represents the 'field' keyword.
	KwField // field
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwEvent represents the 'event' keyword.
	KwEvent // event
	// KwGet represents the 'get' accessor keyword.
	KwGet // get
	// KwSet represents the 'set' accessor keyword.
	KwSet // set

	// KwPub represents the 'pub' accessibility keyword.
	KwPub // pub
	// KwPriv represents the 'priv' accessibility keyword.
	KwPriv // priv
	// KwProtected represents the 'protected' accessibility keyword.
	KwProtected // protected
	// KwInternal represents the 'internal' accessibility keyword.
	KwInternal // internal

	// KwPartial represents the 'partial' modifier keyword.
	KwPartial // partial
	// KwStatic represents the 'static' modifier keyword.
	KwStatic // static
	// KwAbstract represents the 'abstract' modifier keyword.
	KwAbstract // abstract
	// KwVirtual represents the 'virtual' modifier keyword.
	KwVirtual // virtual
	// KwOverride represents the 'override' modifier keyword.
	KwOverride // override
	// KwSealed represents the 'sealed' modifier keyword.
	KwSealed // sealed
	// KwNew represents the 'new' modifier keyword.
	KwNew // new
	// KwRequired represents the 'required' modifier keyword.
	KwRequired // required

	// KwRef represents the 'ref' keyword.
	KwRef // ref
	// KwValue represents the contextual 'value' keyword inside setters.
	KwValue // value
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwThis represents the 'this' keyword.
	KwThis // this
	// KwNull represents the 'null' literal keyword.
	KwNull // null
	// KwTrue represents the 'true' literal keyword.
	KwTrue // true
	// KwFalse represents the 'false' literal keyword.
	KwFalse // false

	// At represents '@'.
	At // @
	// Colon represents ':'.
	Colon // :
	// ColonColon represents '::'.
	ColonColon // ::
	// Semicolon represents ';'.
	Semicolon // ;
	// Comma represents ','.
	Comma // ,
	// Dot represents '.'.
	Dot // .
	// Question represents '?'.
	Question // ?
	// Assign represents '='.
	Assign // =
	// EqEq represents '=='.
	EqEq // ==
	// BangEq represents '!='.
	BangEq // !=
	// Bang represents '!'.
	Bang // !
	// Plus represents '+'.
	Plus // +
	// Minus represents '-'.
	Minus // -
	// Star represents '*'.
	Star // *
	// Slash represents '/'.
	Slash // /
	// Lt represents '<'.
	Lt // <
	// Gt represents '>'.
	Gt // >
	// LParen represents '('.
	LParen // (
	// RParen represents ')'.
	RParen // )
	// LBrace represents '{'.
	LBrace // {
	// RBrace represents '}'.
	RBrace // }
	// LBracket represents '['.
	LBracket // [
	// RBracket represents ']'.
	RBracket // ]
)

var kindNames = map[Kind]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	IntLit:      "IntLit",
	StringLit:   "StringLit",
	KwNamespace: "namespace",
	KwType:      "type",
	KwInterface: "interface",
	KwProp:      "prop",
	KwField:     "field",
	KwFn:        "fn",
	KwEvent:     "event",
	KwGet:       "get",
	KwSet:       "set",
	KwPub:       "pub",
	KwPriv:      "priv",
	KwProtected: "protected",
	KwInternal:  "internal",
	KwPartial:   "partial",
	KwStatic:    "static",
	KwAbstract:  "abstract",
	KwVirtual:   "virtual",
	KwOverride:  "override",
	KwSealed:    "sealed",
	KwNew:       "new",
	KwRequired:  "required",
	KwRef:       "ref",
	KwValue:     "value",
	KwReturn:    "return",
	KwIf:        "if",
	KwElse:      "else",
	KwThis:      "this",
	KwNull:      "null",
	KwTrue:      "true",
	KwFalse:     "false",
	At:          "@",
	Colon:       ":",
	ColonColon:  "::",
	Semicolon:   ";",
	Comma:       ",",
	Dot:         ".",
	Question:    "?",
	Assign:      "=",
	EqEq:        "==",
	BangEq:      "!=",
	Bang:        "!",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	Lt:          "<",
	Gt:          ">",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}
