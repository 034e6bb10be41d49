// Package richtext implements the serialized rich-text document codec: a JSON
// tree of typed nodes (root -> blocks -> inline runs) interconvertible with
// plain text. Strings that do not parse into the recognized shape are treated
// as legacy plain text, never as errors.
package richtext

import (
	"encoding/json"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// Node is one node of the document tree. Block nodes (paragraph, heading,
// list, quote, code) carry Children; text leaves carry Text plus format flags.
type Node struct {
	Type      string  `json:"type"`
	Version   int     `json:"version,omitempty"`
	Text      string  `json:"text,omitempty"`
	Format    any     `json:"format,omitempty"`
	Detail    int     `json:"detail,omitempty"`
	Mode      string  `json:"mode,omitempty"`
	Style     string  `json:"style,omitempty"`
	Tag       string  `json:"tag,omitempty"`
	URL       string  `json:"url,omitempty"`
	Direction string  `json:"direction,omitempty"`
	Indent    int     `json:"indent,omitempty"`
	Children  []*Node `json:"children,omitempty"`
}

// Document is the serialized editor state: a single root node of type "root".
type Document struct {
	Root *Node `json:"root"`
}

// IsDocument reports whether value is a serialized document tree: valid JSON
// with a root node whose type is "root". Parse failures and structural
// mismatches mean legacy plain text.
func IsDocument(value string) bool {
	var doc Document
	if err := json.Unmarshal([]byte(value), &doc); err != nil {
		return false
	}
	return doc.Root != nil && doc.Root.Type == "root"
}

// ToPlainText extracts the literal text of a serialized document, joining
// top-level blocks with newlines. Empty or malformed input degrades to ""
// rather than failing the caller.
func ToPlainText(value string) string {
	var doc Document
	if err := json.Unmarshal([]byte(value), &doc); err != nil {
		slog.Debug("richtext: not a document tree, returning empty text", slog.String("error", err.Error()))
		return ""
	}
	if doc.Root == nil || len(doc.Root.Children) == 0 {
		return ""
	}
	parts := make([]string, 0, len(doc.Root.Children))
	for _, block := range doc.Root.Children {
		parts = append(parts, extractText(block))
	}
	return strings.Join(parts, "\n")
}

func extractText(n *Node) string {
	if n == nil {
		return ""
	}
	if n.Type == "text" {
		return n.Text
	}
	var b strings.Builder
	for _, child := range n.Children {
		b.WriteString(extractText(child))
	}
	return b.String()
}

// FromPlainText wraps legacy plain text or markdown into a minimal document
// tree: one paragraph block per blank-line-separated chunk. The conversion is
// lossy and one-way; it exists so legacy content can be opened in the editor.
func FromPlainText(text string) string {
	var children []*Node
	for _, paragraph := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}
		children = append(children, &Node{
			Type:      "paragraph",
			Version:   1,
			Direction: "ltr",
			Children: []*Node{{
				Type:    "text",
				Version: 1,
				Mode:    "normal",
				Text:    paragraph,
			}},
		})
	}
	doc := Document{Root: &Node{
		Type:      "root",
		Version:   1,
		Direction: "ltr",
		Children:  children,
	}}
	out, err := json.Marshal(doc)
	if err != nil {
		// Marshaling a tree of plain structs cannot fail; degrade to an empty root.
		slog.Error("richtext: marshal document", slog.String("error", err.Error()))
		return `{"root":{"type":"root","children":[]}}`
	}
	return string(out)
}

// WordCount counts whitespace-separated tokens in the document's plain text.
func WordCount(value string) int {
	return len(strings.Fields(ToPlainText(value)))
}

// CharCount counts runes in the document's plain text, so multibyte
// characters count once each.
func CharCount(value string) int {
	return utf8.RuneCountInString(ToPlainText(value))
}

// PlainText resolves content of either kind to plain text: document trees are
// walked, anything else is returned as-is.
func PlainText(content string) string {
	if IsDocument(content) {
		return ToPlainText(content)
	}
	return content
}
