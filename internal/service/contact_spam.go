package service

import (
	"regexp"
	"strings"

	"github.com/greanworld/grean-contact-api/internal/dto"
)

// spamRepeatThreshold is the shortest run of one character treated as spam.
const spamRepeatThreshold = 11

var (
	spamURLPattern     = regexp.MustCompile(`(?i)https?://`)
	spamKeywordPattern = regexp.MustCompile(`(?i)\b(viagra|casino|lottery|winner|congratulations)\b`)
)

// isSuspiciousContact applies the spam heuristics to the raw submission.
func isSuspiciousContact(req dto.ContactRequest) bool {
	buffer := strings.ToLower(strings.Join([]string{req.Name, req.Email, req.Subject, req.Message}, " "))

	switch {
	case spamURLPattern.MatchString(buffer):
		return true
	case spamKeywordPattern.MatchString(buffer):
		return true
	default:
		return hasRepeatedRun(buffer, spamRepeatThreshold)
	}
}

// hasRepeatedRun reports whether text holds min or more consecutive copies of
// the same character. Line terminators never count towards a run.
func hasRepeatedRun(text string, min int) bool {
	if min <= 1 {
		return text != ""
	}

	var prev rune
	run := 0
	for _, r := range text {
		if isLineTerminator(r) {
			run = 0
			continue
		}
		if run > 0 && r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run >= min {
			return true
		}
	}
	return false
}

func isLineTerminator(r rune) bool {
	switch r {
	case '\n', '\r', '\u2028', '\u2029':
		return true
	}
	return false
}
