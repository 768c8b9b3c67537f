// Package parser extracts flashcards from markdown deck files.
//
// A deck file is a sequence of cards written as prefixed blocks:
//
//	# Deck: spanish
//
//	Q: hola
//	A: hello
//	N: greeting, informal
//	---
//	Q: adios
//	A: goodbye
//
// Q: starts a new card, A: and N: attach the back and notes, and each
// block runs until the next prefix, a "---" separator, or end of file.
// Lines without a prefix continue the current block, so fronts and
// backs may span multiple lines.
package parser

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zlatanpham/ankigo/internal/domain"
)

const (
	frontPrefix = "Q:"
	backPrefix  = "A:"
	notesPrefix = "N:"
	deckHeading = "# Deck:"
	separator   = "---"
)

type state int

const (
	seeking state = iota
	readingFront
	readingBack
	readingNotes
)

// ParseFile reads the file at path and extracts all cards. The deck
// name defaults to the file name without extension; a "# Deck:" heading
// inside the file overrides it.
func ParseFile(path string) ([]domain.Card, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	deck := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(file, deck)
}

// Parse reads deck markdown from r and extracts all cards, stamping
// each with the given default deck name.
func Parse(r io.Reader, deck string) ([]domain.Card, error) {
	scanner := bufio.NewScanner(r)
	var cards []domain.Card
	var card domain.Card
	var block []string
	current := seeking

	closeBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.Join(block, "\n")
		switch current {
		case readingFront:
			card.Front = content
		case readingBack:
			card.Back = content
		case readingNotes:
			card.Notes = content
		}
		block = nil
	}

	finishCard := func() {
		closeBlock()
		if !card.Empty() {
			card.Deck = deck
			cards = append(cards, card)
		}
		card = domain.Card{}
		current = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		if line == separator {
			finishCard()
			continue
		}
		if current == seeking && strings.HasPrefix(line, deckHeading) {
			deck = strings.TrimSpace(line[len(deckHeading):])
			continue
		}

		switch {
		case strings.HasPrefix(line, frontPrefix):
			// A new front always starts a new card.
			if current != seeking {
				finishCard()
			}
			current = readingFront
			block = append(block, trimPrefix(line, frontPrefix))
		case strings.HasPrefix(line, backPrefix):
			closeBlock()
			current = readingBack
			block = append(block, trimPrefix(line, backPrefix))
		case strings.HasPrefix(line, notesPrefix):
			closeBlock()
			current = readingNotes
			block = append(block, trimPrefix(line, notesPrefix))
		default:
			if current != seeking {
				block = append(block, line)
			}
		}
	}

	finishCard()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}

// trimPrefix strips the block prefix and one optional following space.
func trimPrefix(line, prefix string) string {
	rest := line[len(prefix):]
	if strings.HasPrefix(rest, " ") {
		rest = rest[1:]
	}
	return rest
}
