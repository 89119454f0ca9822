package tomltext

const (
	// ============================================================================
	// Structural Tokens
	// ============================================================================

	// TableOpen and TableClose delimit a standard table header.
	TableOpen  = "["
	TableClose = "]"

	// ArrayTableOpen and ArrayTableClose delimit an array-of-tables header.
	ArrayTableOpen  = "[["
	ArrayTableClose = "]]"

	// KeySeparator joins the segments of a dotted key.
	KeySeparator = "."

	// Assignment separates a key from its value.
	Assignment = "="

	// CommentPrefix starts a comment that runs to the end of the line.
	CommentPrefix = "#"

	// ============================================================================
	// Quoting
	// ============================================================================

	// BasicQuote delimits basic strings, which support escapes.
	BasicQuote = `"`

	// LiteralQuote delimits literal strings, which are taken verbatim.
	LiteralQuote = `'`

	// MultilineBasicQuote delimits multi-line basic strings.
	MultilineBasicQuote = `"""`

	// MultilineLiteralQuote delimits multi-line literal strings.
	MultilineLiteralQuote = `'''`

	// ============================================================================
	// Line Endings
	// ============================================================================

	// LF is the default line ending used for new lines.
	LF = "\n"

	// CRLF is preserved when a document already uses it.
	CRLF = "\r\n"
)

const (
	// maxQuoteRun is the longest run of quotes that may close a multi-line
	// string: up to two quotes of content followed by the three-quote delimiter.
	maxQuoteRun = 5
)
