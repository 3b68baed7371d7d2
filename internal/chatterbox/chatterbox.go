// Package chatterbox is a small best-match responder used as an optional
// conversational fallback for inputs that resolve to no known intent. It
// compares the input against a trained list of prompt/reply pairs using
// bag-of-words Jaccard similarity and answers with the closest reply, or
// an error when nothing is close enough.
package chatterbox

import (
	"errors"
	"strings"
	"unicode"
)

// ErrNoMatch is returned when no trained prompt is similar enough to the
// input. Callers treat it as "stay with the static help text".
var ErrNoMatch = errors.New("chatterbox: no sufficiently similar prompt")

// defaultThreshold is the minimum Jaccard similarity for a reply. High on
// purpose: the bot should only answer near-verbatim smalltalk and defer
// everything else to the intent router.
const defaultThreshold = 0.9

// Pair is one trained prompt with its canned reply.
type Pair struct {
	Prompt string
	Reply  string
}

// DefaultTraining returns the built-in smalltalk pairs.
func DefaultTraining() []Pair {
	return []Pair{
		{"Hello", "Hi! I'm CryptoBuddy, your crypto advisor with REAL-TIME data!"},
		{"Hi", "Hey there! Ready to explore live cryptocurrency prices?"},
		{"Hey", "Hello! Let's find you the perfect crypto investment!"},
		{"What's the price of Bitcoin?", "Let me fetch the current Bitcoin price for you!"},
		{"Show me crypto prices", "I'll get you the latest cryptocurrency prices!"},
		{"Which crypto is trending?", "Let me show you the trending cryptocurrencies from the market!"},
		{"What's the most sustainable coin?", "I'll find you the greenest crypto option!"},
		{"Compare Bitcoin and Ethereum", "I'll compare these cryptocurrencies with live data!"},
		{"Help", "I can help with live prices, trends, sustainability, comparisons, and advice!"},
		{"Bye", "Goodbye! Stay green and grow your wealth!"},
	}
}

type entry struct {
	tokens map[string]struct{}
	reply  string
}

// Bot matches inputs against its training pairs. Immutable after New and
// safe for concurrent use.
type Bot struct {
	entries   []entry
	threshold float64
}

// Option configures a Bot.
type Option func(*Bot)

// WithThreshold overrides the minimum similarity. Values outside (0, 1]
// are ignored.
func WithThreshold(t float64) Option {
	return func(b *Bot) {
		if t > 0 && t <= 1 {
			b.threshold = t
		}
	}
}

// New builds a bot from the given pairs. Pairs with empty prompts are
// skipped.
func New(pairs []Pair, opts ...Option) *Bot {
	b := &Bot{threshold: defaultThreshold}
	for _, p := range pairs {
		toks := tokenize(p.Prompt)
		if len(toks) == 0 {
			continue
		}
		b.entries = append(b.entries, entry{tokens: toks, reply: p.Reply})
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Respond returns the reply of the most similar trained prompt. The scan
// keeps the first best match, so ties resolve to training order. Returns
// ErrNoMatch when the best similarity is below the threshold.
func (b *Bot) Respond(text string) (string, error) {
	toks := tokenize(text)
	if len(toks) == 0 {
		return "", ErrNoMatch
	}
	best := -1.0
	reply := ""
	for _, e := range b.entries {
		if sim := jaccard(toks, e.tokens); sim > best {
			best = sim
			reply = e.reply
		}
	}
	if best < b.threshold {
		return "", ErrNoMatch
	}
	return reply, nil
}

// tokenize lowercases the text and splits it into a set of alphanumeric
// words.
func tokenize(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
