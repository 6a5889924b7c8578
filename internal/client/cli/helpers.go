package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iudanet/zennotes/internal/client/data"
)

const previewLength = 60

// preview возвращает первую строку содержимого, обрезанную до previewLength
func preview(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	if utf8.RuneCountInString(line) <= previewLength {
		return line
	}
	runes := []rune(line)
	return string(runes[:previewLength-1]) + "…"
}

// shortID возвращает первые 8 символов идентификатора
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// readContent берёт содержимое из флага, из pipe или интерактивно
func (c *Cli) readContent(flagValue string, flagSet bool) (*string, error) {
	if flagSet {
		return &flagValue, nil
	}
	if c.io.IsInteractive() {
		text, err := c.io.ReadInput("Content: ")
		if err != nil {
			return nil, fmt.Errorf("failed to read content: %w", err)
		}
		return &text, nil
	}

	text, err := c.io.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read content from stdin: %w", err)
	}
	text = strings.TrimRight(text, "\n")
	return &text, nil
}

// dataInput строит ввод с документом, производным от текста
func dataInput(title, content *string) data.NoteInput {
	input := data.NoteInput{Title: title, ContentText: content}
	if content != nil {
		input.ContentJSON = data.PlainDocument(*content)
	}
	return input
}
