package tomldoc

import "github.com/joshuapare/tomlkit/internal/tomltext"

// Decor is the trivia printed before and after a node. An unset side falls
// back to a default that depends on where the node is printed.
type Decor struct {
	prefix    string
	suffix    string
	hasPrefix bool
	hasSuffix bool
}

// Prefix returns the leading trivia and whether it was set.
func (d *Decor) Prefix() (string, bool) { return d.prefix, d.hasPrefix }

// Suffix returns the trailing trivia and whether it was set.
func (d *Decor) Suffix() (string, bool) { return d.suffix, d.hasSuffix }

// SetPrefix sets the leading trivia.
func (d *Decor) SetPrefix(s string) {
	d.prefix, d.hasPrefix = s, true
}

// SetSuffix sets the trailing trivia.
func (d *Decor) SetSuffix(s string) {
	d.suffix, d.hasSuffix = s, true
}

// Clear reverts both sides to their defaults.
func (d *Decor) Clear() {
	*d = Decor{}
}

func (d *Decor) prefixOr(def string) string {
	if d.hasPrefix {
		return d.prefix
	}
	return def
}

func (d *Decor) suffixOr(def string) string {
	if d.hasSuffix {
		return d.suffix
	}
	return def
}

// inherit copies each side of old that d leaves unset.
func (d *Decor) inherit(old *Decor) {
	if !d.hasPrefix && old.hasPrefix {
		d.SetPrefix(old.prefix)
	}
	if !d.hasSuffix && old.hasSuffix {
		d.SetSuffix(old.suffix)
	}
}

// key is one segment of a key path as it appears in the source.
type key struct {
	name string
	repr string
	// leaf is used when the key ends a key/value line: its prefix holds the
	// line's leading trivia, its suffix the whitespace before "=".
	leaf Decor
	// dotted is used around the segment inside a dotted key.
	dotted Decor
}

func newKey(name string) key {
	return key{name: name}
}

func (k *key) display() string {
	if k.repr != "" {
		return k.repr
	}
	return tomltext.QuoteKey(k.name)
}
