package parser

import (
	"strings"

	"github.com/DivaIsReal/catatduit/internal/domain"
)

// CategoryRule binds one expense category to the keywords that select
// it. Rules are ordered: the first rule with a matching keyword wins.
type CategoryRule struct {
	Name     string
	Keywords []string
}

// Classify decides the transaction kind and category for a message.
// Income keywords are checked first; otherwise the expense rules are
// scanned in order. Matching is plain substring containment, not word
// matching, so a keyword inside a longer word still matches ("dapat"
// matches "pendapatan"). That looseness is deliberate: it keeps the
// keyword tables small and the behavior predictable.
func (p *Parser) Classify(text string) (domain.Kind, string) {
	lower := strings.ToLower(text)

	for _, kw := range p.incomeKeywords {
		if strings.Contains(lower, kw) {
			return domain.KindIncome, domain.CategoryIncome
		}
	}

	for _, rule := range p.categoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return domain.KindExpense, rule.Name
			}
		}
	}

	return domain.KindExpense, domain.CategoryOther
}
