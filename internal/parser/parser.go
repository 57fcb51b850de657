// Package parser turns free-form Indonesian chat messages into ledger
// transactions: amount extraction with magnitude shorthand, relative and
// literal date resolution, keyword classification and description
// cleanup. The parser is stateless after construction and safe for
// concurrent use.
package parser

import (
	"errors"
	"strings"
	"time"

	"github.com/DivaIsReal/catatduit/internal/domain"
)

// ErrNoAmount is returned when a message contains no recognizable
// monetary token. It is the only hard failure of a parse: no partial
// transaction is ever produced.
var ErrNoAmount = errors.New("no amount found in message")

// Parser holds the keyword tables and timezone a deployment runs with.
// Both are injected so vocabulary and locale can change without touching
// the parsing logic.
type Parser struct {
	incomeKeywords []string
	categoryRules  []CategoryRule
	loc            *time.Location
}

// New builds a parser from the supplied keyword tables and timezone.
// A nil location defaults to WIB (UTC+7), the zone every synthesized
// timestamp carries.
func New(incomeKeywords []string, categoryRules []CategoryRule, loc *time.Location) *Parser {
	if loc == nil {
		loc = time.FixedZone("WIB", 7*60*60)
	}
	return &Parser{
		incomeKeywords: lowerAll(incomeKeywords),
		categoryRules:  lowerRules(categoryRules),
		loc:            loc,
	}
}

// Parse parses a message against the current wall clock.
func (p *Parser) Parse(text string) (*domain.Transaction, error) {
	return p.ParseAt(text, time.Now().In(p.loc))
}

// ParseAt parses a message with an injected "now", used both for tests
// and by callers that pin the submission time.
//
// The sequence is fixed: extract the amount (fail fast if absent),
// classify, resolve the date from the text (falling back to now), clean
// the description, assemble. The result is complete or nil.
func (p *Parser) ParseAt(text string, now time.Time) (*domain.Transaction, error) {
	return p.parse(text, now, time.Time{})
}

// ParseWithDate parses a message with an explicit timestamp override.
// The override is taken verbatim and text date resolution is skipped
// entirely.
func (p *Parser) ParseWithDate(text string, explicit time.Time) (*domain.Transaction, error) {
	return p.parse(text, time.Now().In(p.loc), explicit)
}

func (p *Parser) parse(text string, now, explicit time.Time) (*domain.Transaction, error) {
	amount, ok := ExtractAmount(text)
	if !ok {
		return nil, ErrNoAmount
	}

	kind, category := p.Classify(text)

	date := explicit
	if date.IsZero() {
		if resolved, ok := p.ResolveDate(text, now); ok {
			date = resolved
		} else {
			date = now.In(p.loc)
		}
	}

	return &domain.Transaction{
		Amount:      amount,
		Kind:        kind,
		Category:    category,
		Description: CleanDescription(text),
		Date:        date,
	}, nil
}

// Location returns the timezone the parser synthesizes timestamps in.
func (p *Parser) Location() *time.Location {
	return p.loc
}

func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}

func lowerRules(rules []CategoryRule) []CategoryRule {
	out := make([]CategoryRule, len(rules))
	for i, r := range rules {
		out[i] = CategoryRule{Name: r.Name, Keywords: lowerAll(r.Keywords)}
	}
	return out
}
