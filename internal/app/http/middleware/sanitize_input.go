package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// tagOpen matches the start of anything an HTML parser would read as markup.
var tagOpen = regexp.MustCompile(`<[A-Za-z!/?]`)

// SanitizeAndCleanInputMiddleware strips markup from every string in a JSON
// body, at any depth. Strings without angle brackets are passed through
// untouched so entities like "&" survive a save.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(c *gin.Context) {
		// Only for JSON requests
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				abortTooLarge(c)
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}
		if len(bytes.TrimSpace(buf)) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(buf))
			c.Next()
			return
		}

		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.UseNumber()
		var body interface{}
		if err := dec.Decode(&body); err != nil {
			abortMalformed(c, err)
			return
		}

		newBody, err := json.Marshal(sanitizeValue(policy, body))
		if err != nil {
			abortMalformed(c, err)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}

// abortMalformed answers in the same shape as a rejected document.
func abortMalformed(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":   "Validation failed",
		"details": []gin.H{{"field": "", "message": "malformed JSON: " + err.Error()}},
	})
}

func sanitizeValue(policy *bluemonday.Policy, v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, item := range val {
			val[k] = sanitizeValue(policy, item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = sanitizeValue(policy, item)
		}
		return val
	case string:
		return sanitizeString(policy, val)
	default:
		return v
	}
}

// sanitizeString strips tags, then undoes the entity escaping bluemonday
// applies to the remaining text unless that would reopen a tag.
func sanitizeString(policy *bluemonday.Policy, s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	clean := policy.Sanitize(s)
	if plain := html.UnescapeString(clean); !tagOpen.MatchString(plain) {
		return plain
	}
	return clean
}
