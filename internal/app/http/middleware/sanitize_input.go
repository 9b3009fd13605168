package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// markdownKeys hold markdown source and may carry inline HTML.
var markdownKeys = map[string]bool{"description": true}

// SanitizeAndCleanInputMiddleware rejects JSON bodies whose plain-text strings
// carry HTML markup. Bodies without markup reach the handler byte for byte, so
// text like "18+ > kids <3" is stored as typed.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}
		if !strings.HasPrefix(c.ContentType(), "application/json") {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(buf))
		if len(bytes.TrimSpace(buf)) == 0 {
			c.Next()
			return
		}

		var body any
		if err := json.Unmarshal(buf, &body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "error": "Malformed JSON"})
			return
		}
		if hasMarkup(policy, "", body) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "error": "HTML is not allowed"})
			return
		}

		c.Next()
	}
}

// hasMarkup walks nested objects and arrays. A string holds markup when the
// strict policy drops part of it; escaping alone does not count.
func hasMarkup(p *bluemonday.Policy, key string, v any) bool {
	switch t := v.(type) {
	case string:
		if markdownKeys[key] {
			return false
		}
		return plainText(p.Sanitize(t)) != plainText(t)
	case map[string]any:
		for k, inner := range t {
			if hasMarkup(p, k, inner) {
				return true
			}
		}
	case []any:
		for _, inner := range t {
			if hasMarkup(p, key, inner) {
				return true
			}
		}
	}
	return false
}

// plainText folds entities and line endings the way the HTML tokenizer does.
func plainText(s string) string {
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
