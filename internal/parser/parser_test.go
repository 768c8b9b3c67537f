package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedCards int
		expectedDeck  string
		expectedFront string
		expectedBack  string
		expectedNotes string
	}{
		{
			name:          "simple front and back",
			input:         "Q: What is the capital of France?\nA: Paris",
			expectedCards: 1,
			expectedDeck:  "default",
			expectedFront: "What is the capital of France?",
			expectedBack:  "Paris",
		},
		{
			name:          "front, back and notes",
			input:         "Q: What is 1+1?\nA: 2\nN: Basic arithmetic",
			expectedCards: 1,
			expectedDeck:  "default",
			expectedFront: "What is 1+1?",
			expectedBack:  "2",
			expectedNotes: "Basic arithmetic",
		},
		{
			name: "multiline back",
			input: `
Q: What are the primary colors?
A: Red
Blue
Yellow
`,
			expectedCards: 1,
			expectedDeck:  "default",
			expectedFront: "What are the primary colors?",
			expectedBack:  "Red\nBlue\nYellow",
		},
		{
			name: "two cards split by new front",
			input: `
Q: First question
A: First answer

Q: Second question
A: Second answer
`,
			expectedCards: 2,
		},
		{
			name: "separator between cards",
			input: `
Q: First
A: One
---
Q: Second
A: Two
`,
			expectedCards: 2,
		},
		{
			name: "deck heading overrides default",
			input: `# Deck: geography

Q: Capital of Peru?
A: Lima
`,
			expectedCards: 1,
			expectedDeck:  "geography",
			expectedFront: "Capital of Peru?",
			expectedBack:  "Lima",
		},
		{
			name:          "no cards, just text",
			input:         "This is a file with no cards in it.",
			expectedCards: 0,
		},
		{
			name:          "prefixes with no space",
			input:         "Q:Front\nA:Back",
			expectedCards: 1,
			expectedDeck:  "default",
			expectedFront: "Front",
			expectedBack:  "Back",
		},
		{
			name:          "back without front is dropped",
			input:         "A: An orphaned answer",
			expectedCards: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cards, err := Parse(strings.NewReader(tc.input), "default")
			if err != nil {
				t.Fatalf("Parse() returned an unexpected error: %v", err)
			}

			if len(cards) != tc.expectedCards {
				t.Fatalf("Expected %d cards, but got %d", tc.expectedCards, len(cards))
			}

			if tc.expectedCards == 1 {
				card := cards[0]
				if card.Deck != tc.expectedDeck {
					t.Errorf("Expected Deck %q, but got %q", tc.expectedDeck, card.Deck)
				}
				if card.Front != tc.expectedFront {
					t.Errorf("Expected Front %q, but got %q", tc.expectedFront, card.Front)
				}
				if card.Back != tc.expectedBack {
					t.Errorf("Expected Back %q, but got %q", tc.expectedBack, card.Back)
				}
				if card.Notes != tc.expectedNotes {
					t.Errorf("Expected Notes %q, but got %q", tc.expectedNotes, card.Notes)
				}
			}
		})
	}
}

func TestParseDeckHeadingMidFile(t *testing.T) {
	input := `Q: One
A: 1
---
# Deck: numbers
Q: Two
A: 2
`
	cards, err := Parse(strings.NewReader(input), "default")
	if err != nil {
		t.Fatalf("Parse() returned an unexpected error: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, but got %d", len(cards))
	}
	if cards[0].Deck != "default" {
		t.Errorf("Expected first card in deck %q, but got %q", "default", cards[0].Deck)
	}
	if cards[1].Deck != "numbers" {
		t.Errorf("Expected second card in deck %q, but got %q", "numbers", cards[1].Deck)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spanish.md")
	content := "Q: hola\nA: hello\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cards, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() returned an unexpected error: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("Expected 1 card, but got %d", len(cards))
	}
	if cards[0].Deck != "spanish" {
		t.Errorf("Expected deck from file stem %q, but got %q", "spanish", cards[0].Deck)
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.md")); err == nil {
		t.Error("ParseFile() on a missing file should return an error")
	}
}
