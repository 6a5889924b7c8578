package data

import (
	"encoding/json"
	"strings"
)

type docNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text,omitempty"`
	Content []docNode `json:"content,omitempty"`
}

// PlainDocument builds a structured document from plain text,
// one paragraph per line.
func PlainDocument(text string) json.RawMessage {
	doc := docNode{Type: "doc", Content: []docNode{}}
	for _, line := range strings.Split(text, "\n") {
		p := docNode{Type: "paragraph"}
		if line != "" {
			p.Content = []docNode{{Type: "text", Text: line}}
		}
		doc.Content = append(doc.Content, p)
	}

	// Маршалинг фиксированной структуры не может завершиться ошибкой
	raw, _ := json.Marshal(doc)
	return raw
}
