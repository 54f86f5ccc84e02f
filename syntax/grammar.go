package syntax

import (
	"sort"
	"strings"
	"sync"
)

// Production captions. The captions double as the left-hand-side
// identifiers inside the grammar specification table below.
const (
	CaptionStart                          = "start"
	CaptionAnchoredExpression             = "anchored-expression"
	CaptionStartAnchor                    = "start-anchor"
	CaptionEndAnchor                      = "end-anchor"
	CaptionExpression                     = "expression"
	CaptionExpressionPrime                = "expression-prime"
	CaptionAlternation                    = "alternation"
	CaptionAlternationPrime               = "alternation-prime"
	CaptionSimpleExpression               = "simple-expression"
	CaptionSimpleExpressionPrime          = "simple-expression-prime"
	CaptionConcatenation                  = "concatenation"
	CaptionConcatenationPrime             = "concatenation-prime"
	CaptionBasicExpression                = "basic-expression"
	CaptionBasicExpressionPrime           = "basic-expression-prime"
	CaptionStarQuantification             = "star-quantification"
	CaptionPlusQuantification             = "plus-quantification"
	CaptionQuestionMarkQuantification     = "question-mark-quantification"
	CaptionElementaryExpression           = "elementary-expression"
	CaptionElementaryExpressionPrime      = "elementary-expression-prime"
	CaptionGroup                          = "group"
	CaptionBracketExpression              = "bracket-expression"
	CaptionBracketExpressionItems         = "bracket-expression-items"
	CaptionBracketExpressionItemsPrime    = "bracket-expression-items-prime"
	CaptionBracketExpressionItem          = "bracket-expression-item"
	CaptionBracketExpressionItemPrime     = "bracket-expression-item-prime"
	CaptionUpperCaseLetterRange           = "upper-case-letter-range"
	CaptionLowerCaseLetterRange           = "lower-case-letter-range"
	CaptionDigitRange                     = "digit-range"
	CaptionUpperCaseLetter                = "upper-case-letter"
	CaptionLowerCaseLetter                = "lower-case-letter"
	CaptionDigit                          = "digit"
	CaptionSpecialCharacter               = "special-character"
	CaptionRegularMetacharacter           = "regular-metacharacter"
	CaptionBracketExpressionMetacharacter = "bracket-expression-metacharacter"
	CaptionAnyCharacter                   = "any-character"
	CaptionEmptyExpression                = "empty-expression"
	CaptionMetacharacterEscape            = "metacharacter-escape"
)

// epsilonValue is the symbol spelling of the empty derivation.
const epsilonValue = "ε"

// delimiter separates the members of a terminal set. Terminal sets keep
// the terminal count small: one terminal stands for all twenty-six lower
// case letters instead of twenty-six separate symbols.
const delimiter = "-|-"

// delimited expands a string of single characters into a delimited
// terminal-set value.
func delimited(chars string) string {
	parts := make([]string, len(chars))
	for i := 0; i < len(chars); i++ {
		parts[i] = chars[i : i+1]
	}
	return strings.Join(parts, delimiter)
}

type productionSpec struct {
	caption string
	rules   [][]string
}

// grammarSpec is the grammar itself: an ordered set of productions, each
// with its alternative rules. A rule member that names a production is a
// non-terminal; anything else becomes a (de-duplicated) terminal symbol.
var grammarSpec = []productionSpec{
	{CaptionStart, [][]string{
		{CaptionAnchoredExpression, endOfInputContent},
	}},
	{CaptionAnchoredExpression, [][]string{
		{CaptionStartAnchor, CaptionExpression, CaptionEndAnchor},
	}},
	{CaptionStartAnchor, [][]string{
		{"^"},
		{epsilonValue},
	}},
	{CaptionEndAnchor, [][]string{
		{"$"},
		{epsilonValue},
	}},
	{CaptionExpression, [][]string{
		{CaptionSimpleExpression, CaptionExpressionPrime},
	}},
	{CaptionExpressionPrime, [][]string{
		{CaptionAlternation},
		{epsilonValue},
	}},
	{CaptionAlternation, [][]string{
		{"|", CaptionSimpleExpression, CaptionAlternationPrime},
	}},
	{CaptionAlternationPrime, [][]string{
		{CaptionAlternation},
		{epsilonValue},
	}},
	{CaptionSimpleExpression, [][]string{
		{CaptionBasicExpression, CaptionSimpleExpressionPrime},
	}},
	{CaptionSimpleExpressionPrime, [][]string{
		{CaptionConcatenation},
		{epsilonValue},
	}},
	{CaptionConcatenation, [][]string{
		{CaptionBasicExpression, CaptionConcatenationPrime},
	}},
	{CaptionConcatenationPrime, [][]string{
		{CaptionConcatenation},
		{epsilonValue},
	}},
	{CaptionBasicExpression, [][]string{
		{CaptionElementaryExpression, CaptionBasicExpressionPrime},
	}},
	{CaptionBasicExpressionPrime, [][]string{
		{CaptionStarQuantification},
		{CaptionPlusQuantification},
		{CaptionQuestionMarkQuantification},
		{epsilonValue},
	}},
	{CaptionStarQuantification, [][]string{
		{"*"},
	}},
	{CaptionPlusQuantification, [][]string{
		{"+"},
	}},
	{CaptionQuestionMarkQuantification, [][]string{
		{"?"},
	}},
	{CaptionElementaryExpression, [][]string{
		{CaptionGroup},
		{CaptionBracketExpression},
		{CaptionUpperCaseLetter},
		{CaptionLowerCaseLetter},
		{CaptionDigit},
		{CaptionSpecialCharacter},
		{CaptionBracketExpressionMetacharacter},
		{CaptionAnyCharacter},
		{CaptionEmptyExpression},
		{"\\", CaptionElementaryExpressionPrime},
	}},
	{CaptionElementaryExpressionPrime, [][]string{
		{CaptionRegularMetacharacter},
		{CaptionMetacharacterEscape},
	}},
	{CaptionGroup, [][]string{
		{"(", CaptionAnchoredExpression, ")"},
	}},
	{CaptionBracketExpression, [][]string{
		{"[", CaptionBracketExpressionItems, "]"},
	}},
	{CaptionBracketExpressionItems, [][]string{
		{CaptionBracketExpressionItem, CaptionBracketExpressionItemsPrime},
	}},
	{CaptionBracketExpressionItemsPrime, [][]string{
		{CaptionBracketExpressionItems},
		{epsilonValue},
	}},
	{CaptionBracketExpressionItem, [][]string{
		{CaptionUpperCaseLetter, CaptionUpperCaseLetterRange},
		{CaptionLowerCaseLetter, CaptionLowerCaseLetterRange},
		{CaptionDigit, CaptionDigitRange},
		{CaptionSpecialCharacter},
		{CaptionRegularMetacharacter},
		{"\\", CaptionBracketExpressionItemPrime},
	}},
	{CaptionBracketExpressionItemPrime, [][]string{
		{CaptionBracketExpressionMetacharacter},
		{CaptionMetacharacterEscape},
	}},
	{CaptionUpperCaseLetterRange, [][]string{
		{"-", CaptionUpperCaseLetter},
		{epsilonValue},
	}},
	{CaptionLowerCaseLetterRange, [][]string{
		{"-", CaptionLowerCaseLetter},
		{epsilonValue},
	}},
	{CaptionDigitRange, [][]string{
		{"-", CaptionDigit},
		{epsilonValue},
	}},
	{CaptionUpperCaseLetter, [][]string{
		{delimited("ABCDEFGHIJKLMNOPQRSTUVWXYZ")},
	}},
	{CaptionLowerCaseLetter, [][]string{
		{delimited("abcdefghijklmnopqrstuvwxyz")},
	}},
	{CaptionDigit, [][]string{
		{delimited("0123456789")},
	}},
	{CaptionSpecialCharacter, [][]string{
		{delimited("!#%&,/:;>=<@_`{} \n\t")},
	}},
	{CaptionRegularMetacharacter, [][]string{
		{delimited("[()^$*+?|.")},
	}},
	{CaptionBracketExpressionMetacharacter, [][]string{
		{delimited("-]")},
	}},
	{CaptionAnyCharacter, [][]string{
		{"."},
	}},
	{CaptionEmptyExpression, [][]string{
		{""},
	}},
	{CaptionMetacharacterEscape, [][]string{
		{"\\"},
	}},
}

// Symbol is either a Terminal or a NonTerminal.
type Symbol interface {
	isSymbol()
}

// Terminal is a grammar symbol matched against a single lexeme. Its value
// is either a single character or a delimited set of characters;
// membership is tested by binary search over the sorted split values. An
// empty split set matches only the empty-input marker.
type Terminal struct {
	value   string
	values  []string
	epsilon bool
}

func (*Terminal) isSymbol() {}

// IsEpsilon reports whether the terminal is the empty derivation.
func (t *Terminal) IsEpsilon() bool { return t.epsilon }

// Value returns the raw (possibly delimited) terminal value.
func (t *Terminal) Value() string { return t.value }

// Matches reports whether the lexeme content is a member of the
// terminal's value set. The epsilon terminal matches nothing.
func (t *Terminal) Matches(content string) bool {
	if t.epsilon {
		return false
	}
	i := sort.SearchStrings(t.values, content)
	return i < len(t.values) && t.values[i] == content
}

// NonTerminal references the production it expands to.
type NonTerminal struct {
	Production *Production
}

func (*NonTerminal) isSymbol() {}

// Rule is one alternative right-hand side of a production.
type Rule struct {
	Symbols []Symbol

	firstSet       *terminalSet
	derivesEpsilon bool
}

// Production is a grammar left-hand side: a caption and its alternative
// rules, plus the occurrence bookkeeping the follow-set computation
// walks.
type Production struct {
	Caption string
	Rules   []*Rule

	occurrences []occurrence
	firstSet    *terminalSet
	followSet   *terminalSet
}

// occurrence records one position at which a production appears as a
// non-terminal inside some rule.
type occurrence struct {
	owner *Production
	rule  *Rule
	index int
}

type tableKey struct {
	production *Production
	terminal   *Terminal
}

// Grammar is the process-wide singleton: productions, de-duplicated
// terminals, the start production and the LL(1) parsing table.
type Grammar struct {
	Productions []*Production
	Terminals   []*Terminal
	Start       *Production

	epsilon *Terminal
	table   map[tableKey]*Rule
}

var (
	grammarOnce      sync.Once
	grammarSingleton *Grammar
)

// DefaultGrammar returns the grammar singleton, building it (productions,
// FIRST/FOLLOW sets, parsing table) on first use. Construction panics on
// an LL(1) conflict; the grammar is hand-tuned so that this never fires.
func DefaultGrammar() *Grammar {
	grammarOnce.Do(func() {
		grammarSingleton = buildGrammar()
	})
	return grammarSingleton
}

func buildGrammar() *Grammar {
	g := &Grammar{
		table: make(map[tableKey]*Rule),
	}

	productions := make(map[string]*Production, len(grammarSpec))
	terminals := make(map[string]*Terminal)

	// The productions are initialized up front so that they can be
	// referenced as non-terminals while the rules are being defined.
	for _, spec := range grammarSpec {
		p := &Production{Caption: spec.caption}
		productions[spec.caption] = p
		g.Productions = append(g.Productions, p)
	}

	for _, spec := range grammarSpec {
		p := productions[spec.caption]
		for _, ruleSpec := range spec.rules {
			rule := &Rule{}
			for _, value := range ruleSpec {
				if target, ok := productions[value]; ok {
					rule.Symbols = append(rule.Symbols, &NonTerminal{Production: target})
					continue
				}
				rule.Symbols = append(rule.Symbols, g.internTerminal(terminals, value))
			}
			p.Rules = append(p.Rules, rule)
		}
		markOccurrences(p)
	}

	g.Start = productions[CaptionStart]
	g.buildParsingTable()

	return g
}

// internTerminal de-duplicates terminal symbols by value.
func (g *Grammar) internTerminal(terminals map[string]*Terminal, value string) *Terminal {
	if t, ok := terminals[value]; ok {
		return t
	}
	t := &Terminal{value: value}
	if value == epsilonValue {
		t.epsilon = true
	} else {
		t.values = strings.Split(value, delimiter)
		sort.Strings(t.values)
	}
	terminals[value] = t
	g.Terminals = append(g.Terminals, t)
	return t
}

// markOccurrences records, for every non-terminal member of the
// production's rules, the exact position at which its underlying
// production appears. The follow-set computation walks these positions.
func markOccurrences(p *Production) {
	for _, rule := range p.Rules {
		for i, symbol := range rule.Symbols {
			if nt, ok := symbol.(*NonTerminal); ok {
				nt.Production.occurrences = append(nt.Production.occurrences, occurrence{
					owner: p,
					rule:  rule,
					index: i,
				})
			}
		}
	}
}

// Epsilon returns the epsilon terminal.
func (g *Grammar) Epsilon() *Terminal {
	if g.epsilon == nil {
		for _, t := range g.Terminals {
			if t.epsilon {
				g.epsilon = t
				break
			}
		}
	}
	return g.epsilon
}

// Lookup resolves the parsing-table entry for a (production, terminal)
// pair.
func (g *Grammar) Lookup(p *Production, t *Terminal) (*Rule, bool) {
	rule, ok := g.table[tableKey{production: p, terminal: t}]
	return rule, ok
}

// MatchingTerminals enumerates the grammar terminals whose value set
// contains the lexeme content. Several terminals may match the same
// content (a "(" is both the group opener and a member of the
// regular-metacharacter set), which is why the parser probes the table
// with every candidate.
func (g *Grammar) MatchingTerminals(content string) []*Terminal {
	var matched []*Terminal
	for _, t := range g.Terminals {
		if t.Matches(content) {
			matched = append(matched, t)
		}
	}
	return matched
}
