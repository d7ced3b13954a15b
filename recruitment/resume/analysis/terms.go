package analysis

import (
	"regexp"
	"sort"
	"strings"
)

var termPattern = regexp.MustCompile(`[A-Za-z][A-Za-z0-9+#]*`)

var stopwords = map[string]bool{
	"about": true, "above": true, "across": true, "after": true, "also": true, "among": true,
	"and": true, "apply": true, "based": true, "been": true, "being": true, "both": true,
	"candidate": true, "company": true, "could": true, "does": true, "each": true, "ensure": true,
	"from": true, "have": true, "having": true, "help": true, "into": true, "just": true,
	"like": true, "looking": true, "make": true, "more": true, "most": true, "must": true,
	"need": true, "only": true, "other": true, "ours": true, "over": true, "part": true,
	"role": true, "should": true, "some": true, "such": true, "team": true, "than": true,
	"that": true, "their": true, "them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "those": true, "through": true, "under": true, "using": true,
	"very": true, "want": true, "well": true, "were": true, "what": true, "when": true,
	"where": true, "which": true, "while": true, "will": true, "with": true, "within": true,
	"work": true, "working": true, "would": true, "year": true, "years": true, "your": true,
	"join": true, "including": true, "strong": true, "ability": true,
	"experience": true, "responsibilities": true, "requirements": true, "preferred": true,
	"required": true, "skills": true, "knowledge": true, "plus": true, "position": true,
}

// TopTerms returns the n most frequent tokens of at least four letters that
// are not stopwords. Ties keep first-appearance order.
func TopTerms(text string, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, tok := range termPattern.FindAllString(text, -1) {
		t := strings.ToLower(tok)
		if len(t) < 4 || stopwords[t] {
			continue
		}
		if counts[t] == 0 {
			order = append(order, t)
		}
		counts[t]++
	}

	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > n {
		order = order[:n]
	}
	return order
}
