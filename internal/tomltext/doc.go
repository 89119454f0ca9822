// Package tomltext holds the lexical layer of the document syntax: scanning
// of keys, strings and unquoted literals, quoting of new keys and strings,
// and number and date/time recognition.
//
// The Scanner returns trivia (whitespace, comments, line endings) and raw
// spellings as slices of the source so that callers can reproduce the input
// byte for byte. Validate checks a whole document against the grammar with
// go-toml's parser.
package tomltext
