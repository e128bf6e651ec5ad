// Package i18n renders localized error messages from the embedded catalogs.
package i18n

import (
	"strings"
	"sync"
	"text/template"

	i18ncatalog "github.com/louisbranch/sagashuffle/internal/platform/i18n/catalog"
)

// Code is a machine-readable error code. It mirrors errors.Code, which
// cannot be imported here without a cycle.
type Code = string

// Catalog renders the error messages of one locale.
type Catalog struct {
	locale string
	raw    map[Code]string
	// parsed is nil for messages that are not valid templates.
	parsed map[Code]*template.Template
}

var (
	catalogsMu sync.Mutex
	catalogs   = map[string]*Catalog{}
)

// GetCatalog returns the catalog for locale, built once from the "errors"
// namespace. Unknown locales share the base locale catalog.
func GetCatalog(locale string) *Catalog {
	resolved, messages := i18ncatalog.Default().NamespaceMessagesWithFallback(strings.TrimSpace(locale), "errors")

	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	if c, ok := catalogs[resolved]; ok {
		return c
	}
	c := NewCatalog(resolved, messages)
	catalogs[resolved] = c
	return c
}

// NewCatalog builds a catalog from code to message template.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	c := &Catalog{
		locale: locale,
		raw:    make(map[Code]string, len(messages)),
		parsed: make(map[Code]*template.Template, len(messages)),
	}
	for code, text := range messages {
		c.raw[code] = text
		if t, err := template.New(code).Parse(text); err == nil {
			c.parsed[code] = t
		}
	}
	return c
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for code with metadata. Unknown codes render
// as the code itself and broken templates as their raw text.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	text, ok := c.raw[code]
	if !ok {
		return code
	}
	t := c.parsed[code]
	if t == nil {
		return text
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var b strings.Builder
	if err := t.Execute(&b, metadata); err != nil {
		return text
	}
	return b.String()
}
