// Package markup renders text for Telegram's HTML parse mode
package markup

import (
	"html"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Escape escapes a dynamic value so it can be embedded in an HTML message
func Escape(s string) string {
	return html.EscapeString(s)
}

// Bold wraps an escaped value in bold markers
func Bold(s string) string {
	return "<b>" + Escape(s) + "</b>"
}

// PlainText strips HTML markup and unescapes entities.
// Used when Telegram refuses to parse a message as HTML.
func PlainText(htmlText string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		log.Printf("Error parsing HTML message, sending it unchanged: %v", err)
		return htmlText
	}
	return doc.Find("body").Text()
}
