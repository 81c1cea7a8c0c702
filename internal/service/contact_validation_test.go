package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greanworld/grean-contact-api/internal/dto"
)

func TestContactViolationsEmail(t *testing.T) {
	v := NewContactValidator()

	cases := map[string]string{
		"":                   "Email is required",
		"plainaddress":       "Please enter a valid email address",
		"user@domain":        "Please enter a valid email address",
		"user name@mail.com": "Please enter a valid email address",
		"a@b@c.com":          "Please enter a valid email address",
		"   ":                "Please enter a valid email address",
	}

	for email, want := range cases {
		req := validRequest()
		req.Email = email

		violations, err := contactViolations(v, req)
		require.NoError(t, err)
		require.Equal(t, []string{want}, violations, "email %q", email)
	}

	req := validRequest()
	req.Email = "  someone@example.co.uk  "
	violations, err := contactViolations(v, req)
	require.NoError(t, err)
	require.Empty(t, violations)
}

func TestContactViolationsPhone(t *testing.T) {
	v := NewContactValidator()

	for _, phone := range []string{"", "   ", "+251 913 330000", "(011) 555-1234", "1234567"} {
		req := validRequest()
		req.Phone = phone
		violations, err := contactViolations(v, req)
		require.NoError(t, err)
		require.Empty(t, violations, "phone %q", phone)
	}

	for _, phone := range []string{"123456", "call me", "+251-913-33O000", "++2519133300"} {
		req := validRequest()
		req.Phone = phone
		violations, err := contactViolations(v, req)
		require.NoError(t, err)
		require.Equal(t, []string{"Please enter a valid phone number"}, violations, "phone %q", phone)
	}
}

func TestContactViolationsTrimBeforeMeasuring(t *testing.T) {
	v := NewContactValidator()

	req := validRequest()
	req.Name = "  A  "
	req.Subject = " Hi "
	req.Message = "     123456789     "

	violations, err := contactViolations(v, req)
	require.NoError(t, err)
	require.Equal(t, []string{
		"Name must be at least 2 characters long",
		"Subject must be at least 3 characters long",
		"Message must be at least 10 characters long",
	}, violations)
}

func TestContactViolationsTrimByteOrderMark(t *testing.T) {
	v := NewContactValidator()

	req := validRequest()
	req.Name = "\uFEFFA\uFEFF"
	req.Email = "\uFEFFa@b.com\u00a0"
	req.Phone = "\uFEFF+251 913 330000\uFEFF"

	violations, err := contactViolations(v, req)
	require.NoError(t, err)
	require.Equal(t, []string{"Name must be at least 2 characters long"}, violations)
}

func TestContactViolationsPhoneReportedLast(t *testing.T) {
	v := NewContactValidator()

	violations, err := contactViolations(v, dto.ContactRequest{Email: "a@b.com", Interest: "Solar", Phone: "abc"})
	require.NoError(t, err)
	require.Equal(t, "Please enter a valid phone number", violations[len(violations)-1])
	require.Len(t, violations, 4)
}

func TestIsSuspiciousContact(t *testing.T) {
	base := validRequest()

	require.False(t, isSuspiciousContact(base))

	withURL := base
	withURL.Message = "my site is https://example.com please look"
	require.True(t, isSuspiciousContact(withURL))

	withKeyword := base
	withKeyword.Name = "Casino Royale"
	require.True(t, isSuspiciousContact(withKeyword))

	partialWord := base
	partialWord.Message = "We are winners of the regional solar tender"
	require.False(t, isSuspiciousContact(partialWord))

	repeated := base
	repeated.Subject = "Pleeeeeeeeeeease"
	require.True(t, isSuspiciousContact(repeated))

	caseFolded := base
	caseFolded.Message = "AAAAAaaaaaa interested in panels"
	require.True(t, isSuspiciousContact(caseFolded))
}

func TestHasRepeatedRun(t *testing.T) {
	require.True(t, hasRepeatedRun(strings.Repeat("x", 11), spamRepeatThreshold))
	require.True(t, hasRepeatedRun("ok "+strings.Repeat("é", 12)+" ok", spamRepeatThreshold))
	require.False(t, hasRepeatedRun(strings.Repeat("x", 10), spamRepeatThreshold))
	require.False(t, hasRepeatedRun(strings.Repeat("\n", 20), spamRepeatThreshold))
	require.False(t, hasRepeatedRun(strings.Repeat("x", 6)+"\n"+strings.Repeat("x", 6), spamRepeatThreshold))
	require.True(t, hasRepeatedRun(strings.Repeat(" ", 11), spamRepeatThreshold))
}
