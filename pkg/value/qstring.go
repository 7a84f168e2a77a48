package value

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ignoring tracks which of case and accent a QString should be compared
// and matched without regard to.
type ignoring uint8

const (
	ignoreNothing ignoring = 0
	ignoreCase    ignoring = 1
	ignoreAccent  ignoring = 2
)

var foldCase = cases.Fold()

// QString is the string type used by Queryable's Str variant. It pairs a
// literal with flags recording whether CASEI/ACCENTI were applied so that
// equality and LIKE matching can honor them independent of each other.
type QString struct {
	inner string
	flags ignoring
}

// PlainString builds an unflagged QString.
func PlainString(s string) QString {
	return QString{inner: s, flags: ignoreNothing}
}

// AndICase returns a copy of q with the case-insensitive flag set.
func (q QString) AndICase() QString {
	q.flags |= ignoreCase
	return q
}

// AndIAccent returns a copy of q with the accent-insensitive flag set.
func (q QString) AndIAccent() QString {
	q.flags |= ignoreAccent
	return q
}

// String returns the underlying literal.
func (q QString) String() string { return q.inner }

func (q QString) isICase() bool   { return q.flags&ignoreCase != 0 }
func (q QString) isIAccent() bool { return q.flags&ignoreAccent != 0 }

// IsICase reports whether q was wrapped in CASEI.
func (q QString) IsICase() bool { return q.isICase() }

// IsIAccent reports whether q was wrapped in ACCENTI.
func (q QString) IsIAccent() bool { return q.isIAccent() }

// Unaccent strips Unicode combining marks (category Mn) from s by
// decomposing to NFD, filtering combining marks, then recomposing to NFC.
func Unaccent(s string) string {
	if s == "" {
		return ""
	}
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if isCombiningMark(r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

// isCombiningMark reports whether r belongs to Unicode general category Mn
// (nonspacing mark), the set stripped by accent-insensitive comparisons.
func isCombiningMark(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// Equal compares two QStrings, applying case/accent-insensitivity if either
// side requests it — matching the CQL2 rule that CASEI/ACCENTI on one
// operand governs the whole comparison.
func (q QString) Equal(other QString) bool {
	icase := q.isICase() || other.isICase()
	iaccent := q.isIAccent() || other.isIAccent()

	a, b := q.inner, other.inner
	if iaccent {
		a, b = Unaccent(a), Unaccent(b)
	}
	if icase {
		a, b = foldCase.String(a), foldCase.String(b)
	}
	return a == b
}

// Like reports whether input matches the SQL-style LIKE pattern, honoring
// `%` (any run), `_` (any one char), and `\c` (literal escape of c). Case
// and accent insensitivity are inherited from either operand's flags.
func Like(input, pattern QString) bool {
	icase := input.isICase() || pattern.isICase()
	iaccent := input.isIAccent() || pattern.isIAccent()

	foldedInput := fold(input.inner, icase, iaccent)
	foldedPattern := fold(pattern.inner, icase, iaccent)

	return likeRecursive([]rune(foldedInput), []rune(foldedPattern))
}

func fold(s string, icase, iaccent bool) string {
	if iaccent {
		s = Unaccent(s)
	}
	if icase {
		s = foldCase.String(s)
	}
	return s
}

func likeRecursive(input, pattern []rune) bool {
	if len(pattern) == 0 {
		return len(input) == 0
	}
	if len(input) == 0 {
		for _, c := range pattern {
			if c != '%' {
				return false
			}
		}
		return true
	}
	if pattern[0] == '\\' && len(pattern) > 1 {
		escaped := pattern[1]
		if input[0] == escaped {
			return likeRecursive(input[1:], pattern[2:])
		}
		return false
	}
	if pattern[0] == '%' {
		return likeRecursive(input[1:], pattern) || likeRecursive(input, pattern[1:])
	}
	if pattern[0] == '_' {
		return likeRecursive(input[1:], pattern[1:])
	}
	return input[0] == pattern[0] && likeRecursive(input[1:], pattern[1:])
}
