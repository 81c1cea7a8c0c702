package dto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewContactRequestIgnoresNonStringFields(t *testing.T) {
	req := NewContactRequest(map[string]interface{}{
		"name":     "Abebe",
		"email":    42,
		"phone":    nil,
		"subject":  []interface{}{"x"},
		"interest": "Solar",
		"message":  map[string]interface{}{"a": "b"},
	})

	require.Equal(t, "Abebe", req.Name)
	require.Empty(t, req.Email)
	require.Empty(t, req.Phone)
	require.Empty(t, req.Subject)
	require.Equal(t, "Solar", req.Interest)
	require.Empty(t, req.Message)

	require.Equal(t, ContactRequest{}, NewContactRequest(nil))
}

func TestSanitizedTrimsAndLowercasesEmail(t *testing.T) {
	req := ContactRequest{
		Name:     "  Abebe Kebede ",
		Email:    "  Abebe@Example.COM ",
		Phone:    " +251 911 000000 ",
		Subject:  " Solar quote ",
		Interest: " Solar ",
		Message:  "\n I would like a quote for my home. \n",
	}

	clean := req.Sanitized()
	require.Equal(t, "Abebe Kebede", clean.Name)
	require.Equal(t, "abebe@example.com", clean.Email)
	require.Equal(t, "+251 911 000000", clean.Phone)
	require.Equal(t, "Solar quote", clean.Subject)
	require.Equal(t, "Solar", clean.Interest)
	require.Equal(t, "I would like a quote for my home.", clean.Message)
}

func TestTrimFormSpace(t *testing.T) {
	require.Equal(t, "A", TrimFormSpace("\uFEFFA\uFEFF"))
	require.Equal(t, "Abebe", TrimFormSpace("\u00a0\u2003Abebe\u2028\v"))
	require.Equal(t, "a b", TrimFormSpace(" a b "))
	require.Empty(t, TrimFormSpace("\uFEFF \u3000"))

	clean := ContactRequest{Name: "\uFEFFAbebe\uFEFF", Email: "\uFEFFA@B.com"}.Sanitized()
	require.Equal(t, "Abebe", clean.Name)
	require.Equal(t, "a@b.com", clean.Email)
}
