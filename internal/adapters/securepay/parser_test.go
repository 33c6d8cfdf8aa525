package securepay

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeValue(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		node     string
		expected string
	}{
		{
			name:     "flat field",
			body:     "<statusCode>0</statusCode><statusDescription>Normal</statusDescription>",
			node:     "statusDescription",
			expected: "Normal",
		},
		{
			name:     "nested inside parents",
			body:     "<SecurePayMessage><Status><statusCode>504</statusCode></Status></SecurePayMessage>",
			node:     "statusCode",
			expected: "504",
		},
		{
			name:     "empty text",
			body:     "<txnID></txnID>",
			node:     "txnID",
			expected: "",
		},
		{
			name:     "entities unescaped",
			body:     "<responseText>Card &amp; PIN &lt;invalid&gt;</responseText>",
			node:     "responseText",
			expected: "Card & PIN <invalid>",
		},
		{
			// first open tag, last close tag
			name:     "repeated field spans to last close",
			body:     "<a>1</a><a>2</a>",
			node:     "a",
			expected: "1</a><a>2",
		},
		{
			name:     "does not match longer tag names",
			body:     "<responseCodeX>9</responseCodeX><responseCode>5</responseCode>",
			node:     "responseCode",
			expected: "5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := nodeValue(tt.body, tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNodeValue_Missing(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no tags", "<statusCode>0</statusCode>"},
		{"open only", "<responseCode>0"},
		{"close only", "0</responseCode>"},
		{"close before open", "</responseCode>0<responseCode>"},
		{"empty body", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := nodeValue(tt.body, "responseCode")
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, "responseCode", parseErr.Field)
			assert.Equal(t, tt.body, parseErr.Body)
			assert.Contains(t, err.Error(), "responseCode")
		})
	}
}

func TestNodeInt(t *testing.T) {
	n, err := nodeInt("<responseCode>08</responseCode>", "responseCode")
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	n, err = nodeInt("<statusCode>\n  100\n</statusCode>", "statusCode")
	require.NoError(t, err)
	assert.Equal(t, 100, n)
}

func TestNodeInt_NotNumeric(t *testing.T) {
	body := "<statusCode>OK</statusCode>"

	_, err := nodeInt(body, "statusCode")
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "statusCode", parseErr.Field)
	assert.Equal(t, body, parseErr.Body)

	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr))
}
