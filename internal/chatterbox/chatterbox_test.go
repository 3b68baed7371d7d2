package chatterbox

import (
	"errors"
	"testing"
)

func TestRespondExactPrompt(t *testing.T) {
	b := New(DefaultTraining())

	tests := []struct {
		input string
		want  string
	}{
		{"Hello", "Hi! I'm CryptoBuddy, your crypto advisor with REAL-TIME data!"},
		{"hello", "Hi! I'm CryptoBuddy, your crypto advisor with REAL-TIME data!"},
		{"hello!!!", "Hi! I'm CryptoBuddy, your crypto advisor with REAL-TIME data!"},
		{"Bye", "Goodbye! Stay green and grow your wealth!"},
		{"HELP", "I can help with live prices, trends, sustainability, comparisons, and advice!"},
	}
	for _, tt := range tests {
		got, err := b.Respond(tt.input)
		if err != nil {
			t.Errorf("Respond(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Respond(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRespondWordOrderIgnored(t *testing.T) {
	b := New(DefaultTraining())
	// Same bag of words as "Show me crypto prices".
	got, err := b.Respond("crypto prices, show me")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "I'll get you the latest cryptocurrency prices!" {
		t.Errorf("got %q", got)
	}
}

func TestRespondNoMatch(t *testing.T) {
	b := New(DefaultTraining())
	for _, input := range []string{
		"what is the meaning of life",
		"",
		"   ",
		"!!!",
	} {
		if _, err := b.Respond(input); !errors.Is(err, ErrNoMatch) {
			t.Errorf("Respond(%q): expected ErrNoMatch, got %v", input, err)
		}
	}
}

func TestRespondThreshold(t *testing.T) {
	pairs := []Pair{{"good morning friend", "Morning!"}}

	strict := New(pairs)
	// 2 of 3 tokens shared: similarity 2/3, below the default threshold.
	if _, err := strict.Respond("good morning"); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch at default threshold, got %v", err)
	}

	loose := New(pairs, WithThreshold(0.5))
	got, err := loose.Respond("good morning")
	if err != nil {
		t.Fatalf("unexpected error at loose threshold: %v", err)
	}
	if got != "Morning!" {
		t.Errorf("got %q", got)
	}
}

func TestTiesResolveToTrainingOrder(t *testing.T) {
	b := New([]Pair{
		{"ping", "first"},
		{"ping", "second"},
	})
	got, err := b.Respond("ping")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "first" {
		t.Errorf("expected first trained reply to win ties, got %q", got)
	}
}

func TestEmptyPromptsSkipped(t *testing.T) {
	b := New([]Pair{{"", "never"}, {"ok", "fine"}})
	if len(b.entries) != 1 {
		t.Fatalf("expected 1 usable entry, got %d", len(b.entries))
	}
}
