package renderer

// smushem decides whether the two runes at a merge column combine, and
// into what. The boolean reports whether a merge happens at all; a
// false return at an overlapped column leaves the buffer untouched.
//
// Rule precedence (order matters, earlier wins):
//  1. Spaces always yield to the other character.
//  2. Width guard: glyphs narrower than two columns never smush.
//  3. Universal overlap when no rule bits are set, with hardblanks
//     yielding to visible characters.
//  4. Hardblank rule, then a hardblank bar: without the rule a
//     hardblank never merges with anything else.
//  5. Equal, underscore, hierarchy, pair and big-X rules in turn.
//
// Direction note: under universal smushing the surviving character is
// the one later in the user's text. Right-to-left puts later glyphs on
// the left, so lch wins there and rch wins for left-to-right.
func (s *state) smushem(lch, rch rune) (rune, bool) {
	if lch == ' ' {
		return rch, true
	}
	if rch == ' ' {
		return lch, true
	}

	if s.prevCharWidth < 2 || s.curCharWidth < 2 {
		return 0, false
	}

	if s.smushMode&smSmush == 0 {
		return 0, false
	}

	if s.smushMode&ruleMask == 0 {
		// Universal overlapping.
		if lch == s.hardblank {
			return rch, true
		}
		if rch == s.hardblank {
			return lch, true
		}
		if s.rightToLeft {
			return lch, true
		}
		return rch, true
	}

	if s.smushMode&smHardblank != 0 {
		if lch == s.hardblank && rch == s.hardblank {
			return lch, true
		}
	}
	if lch == s.hardblank || rch == s.hardblank {
		return 0, false
	}

	if s.smushMode&smEqual != 0 {
		if lch == rch {
			return lch, true
		}
	}

	if s.smushMode&smLowline != 0 {
		if lch == '_' && underscoreBorders[rch] {
			return rch, true
		}
		if rch == '_' && underscoreBorders[lch] {
			return lch, true
		}
	}

	if s.smushMode&smHierarchy != 0 {
		// Each class beats everything below it; the survivor is the
		// character from the lower class. The bar's weaker set lists
		// the bar itself, so '|' against '|' merges under this rule
		// even without the equal rule.
		for i, cls := range hierarchyClasses {
			below := hierarchyBelow[i]
			if containsRune(cls, lch) && below[rch] {
				return rch, true
			}
			if containsRune(cls, rch) && below[lch] {
				return lch, true
			}
		}
	}

	if s.smushMode&smPair != 0 {
		for _, p := range bracketPairs {
			if (lch == p[0] && rch == p[1]) || (rch == p[0] && lch == p[1]) {
				return '|', true
			}
		}
	}

	if s.smushMode&smBigX != 0 {
		if lch == '/' && rch == '\\' {
			return '|', true
		}
		if lch == '\\' && rch == '/' {
			return 'Y', true
		}
		// '<' followed by '>' stays apart; only the crossing pair
		// collapses to an X.
		if lch == '>' && rch == '<' {
			return 'X', true
		}
	}

	return 0, false
}

// underscoreBorders lists the characters an underscore yields to.
var underscoreBorders = map[rune]bool{
	'|': true, '/': true, '\\': true,
	'[': true, ']': true,
	'{': true, '}': true,
	'(': true, ')': true,
	'<': true, '>': true,
}

// hierarchyClasses orders the border classes from strongest to
// weakest. hierarchyBelow[i] holds every character in a class weaker
// than hierarchyClasses[i].
var hierarchyClasses = []string{"|", "/\\", "[]", "{}", "()"}

var hierarchyBelow = []map[rune]bool{
	runeSet("|/\\[]{}()<>"),
	runeSet("[]{}()<>"),
	runeSet("{}()<>"),
	runeSet("()<>"),
	runeSet("<>"),
}

// bracketPairs are the opposite pairs that collapse to a bar, in
// either order.
var bracketPairs = [][2]rune{
	{'[', ']'},
	{'{', '}'},
	{'(', ')'},
}

func runeSet(s string) map[rune]bool {
	m := make(map[rune]bool, len(s))
	for _, r := range s {
		m[r] = true
	}
	return m
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
