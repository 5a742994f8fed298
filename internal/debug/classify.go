package debug

import "github.com/figkit/figkit/internal/common"

// FormatSmushRules returns human-readable names for the active smush
// rules.
func FormatSmushRules(smushMode int) []string {
	var rules []string

	if smushMode&common.SMSmush != 0 {
		rules = append(rules, "SMSmush")
	}
	if smushMode&common.SMKern != 0 {
		rules = append(rules, "SMKern")
	}
	if smushMode&common.SMEqual != 0 {
		rules = append(rules, "Equal")
	}
	if smushMode&common.SMLowline != 0 {
		rules = append(rules, "Lowline")
	}
	if smushMode&common.SMHierarchy != 0 {
		rules = append(rules, "Hierarchy")
	}
	if smushMode&common.SMPair != 0 {
		rules = append(rules, "Pair")
	}
	if smushMode&common.SMBigX != 0 {
		rules = append(rules, "BigX")
	}
	if smushMode&common.SMHardblank != 0 {
		rules = append(rules, "Hardblank")
	}

	if len(rules) == 0 {
		return []string{"None"}
	}
	return rules
}

// ClassifySmushRule returns the name of the rule that produced the
// given merge result. It mirrors the decision order of the renderer's
// merge function; the hardblank rune must be the font's.
func ClassifySmushRule(lch, rch, result rune, smushMode int, hardblank rune) string {
	if lch == ' ' || rch == ' ' {
		return "space"
	}

	if smushMode&common.SMSmush == 0 {
		return "kerning"
	}

	if smushMode&common.RuleMask == 0 {
		return "universal"
	}

	if smushMode&common.SMHardblank != 0 && lch == hardblank && rch == hardblank {
		return "hardblank"
	}

	if smushMode&common.SMEqual != 0 && lch == rch && lch != hardblank {
		return "equal"
	}

	if smushMode&common.SMLowline != 0 {
		if lch == '_' && isUnderscoreBorder(rch) {
			return "underscore"
		}
		if rch == '_' && isUnderscoreBorder(lch) {
			return "underscore"
		}
	}

	if smushMode&common.SMHierarchy != 0 && isHierarchySmush(lch, rch, result) {
		return "hierarchy"
	}

	if smushMode&common.SMPair != 0 && result == '|' && isPairSmush(lch, rch) {
		return "pair"
	}

	if smushMode&common.SMBigX != 0 && isBigXSmush(lch, rch, result) {
		return "bigx"
	}

	return "unknown"
}

// isUnderscoreBorder checks if a character is a border character for
// underscore smushing.
func isUnderscoreBorder(r rune) bool {
	switch r {
	case '|', '/', '\\', '[', ']', '{', '}', '(', ')', '<', '>':
		return true
	}
	return false
}

// isHierarchySmush checks if the result follows hierarchy smushing:
// the survivor comes from the later of the two classes.
func isHierarchySmush(lch, rch, result rune) bool {
	if result != lch && result != rch {
		return false
	}
	classes := []string{"|", "/\\", "[]", "{}", "()", "<>"}
	classOf := func(r rune) int {
		for i, c := range classes {
			for _, m := range c {
				if m == r {
					return i
				}
			}
		}
		return -1
	}
	lc, rc := classOf(lch), classOf(rch)
	if lc < 0 || rc < 0 {
		return false
	}
	if lc <= rc {
		return result == rch
	}
	return result == lch
}

// isPairSmush checks if the characters form an opposite bracket pair.
func isPairSmush(lch, rch rune) bool {
	pairs := [][2]rune{
		{'[', ']'}, {']', '['},
		{'{', '}'}, {'}', '{'},
		{'(', ')'}, {')', '('},
	}
	for _, p := range pairs {
		if lch == p[0] && rch == p[1] {
			return true
		}
	}
	return false
}

// isBigXSmush checks if the result follows Big X smushing rules.
func isBigXSmush(lch, rch, result rune) bool {
	// /\ → |
	if lch == '/' && rch == '\\' && result == '|' {
		return true
	}
	// \/ → Y
	if lch == '\\' && rch == '/' && result == 'Y' {
		return true
	}
	// >< → X
	if lch == '>' && rch == '<' && result == 'X' {
		return true
	}
	return false
}
