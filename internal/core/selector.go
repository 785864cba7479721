package core

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// GreetingTokens are the accepted openings of a reply, compared case-insensitively
var GreetingTokens = []string{"hello", "hi", "dear", "thank you"}

const defaultGreeting = "Hello,\n\n"

// ReplySelector picks the reply text for a classification
type ReplySelector struct {
	safeDefault string
}

// NewReplySelector creates a selector falling back to safeDefault. The default is
// sent verbatim, so it must already be free of tags and surrounding whitespace
// and open with one of GreetingTokens.
func NewReplySelector(safeDefault string) (*ReplySelector, error) {
	clean := Sanitize(safeDefault)
	switch {
	case clean == "":
		return nil, errors.New("safe default reply is empty after sanitation")
	case clean != safeDefault:
		return nil, errors.New("safe default reply contains markup or surrounding whitespace")
	case !HasGreeting(safeDefault):
		return nil, fmt.Errorf("safe default reply must start with one of %q", GreetingTokens)
	}
	return &ReplySelector{safeDefault: safeDefault}, nil
}

// SafeDefault returns the fallback reply
func (s *ReplySelector) SafeDefault() string {
	return s.safeDefault
}

// Select returns the sanitized reply for c. A nil classification or an unusable draft
// yields the safe default. The result always starts with a greeting token.
func (s *ReplySelector) Select(c *ClassificationResult) string {
	reply := s.safeDefault
	if c != nil {
		var draft string
		switch {
		case c.IsTechnical && c.RequestMeeting:
			draft = c.MeetingSuggestionDraft
		case c.IsTechnical:
			draft = c.SimpleReplyDraft
		default:
			draft = c.NonTechnicalReplyDraft
		}
		if Sanitize(draft) != "" {
			reply = draft
		}
	}

	reply = Sanitize(reply)
	if !HasGreeting(reply) {
		reply = defaultGreeting + reply
	}
	return reply
}

// Sanitize strips tag-like substrings and surrounding whitespace
func Sanitize(text string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(text, ""))
}

// HasGreeting reports whether text opens with one of GreetingTokens
func HasGreeting(text string) bool {
	lower := strings.ToLower(text)
	for _, token := range GreetingTokens {
		if strings.HasPrefix(lower, token) {
			return true
		}
	}
	return false
}
