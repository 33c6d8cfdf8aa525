package securepay

import (
	"html"
	"strconv"
	"strings"
)

// Response fields read from a Periodic reply
const (
	fieldStatusCode        = "statusCode"
	fieldStatusDescription = "statusDescription"
	fieldResponseCode      = "responseCode"
	fieldResponseText      = "responseText"
	fieldTxnID             = "txnID"
)

// nodeValue returns the text between the first <name> and the last </name>.
// Replies are flat for every field read here, so no DOM is built.
func nodeValue(body, name string) (string, error) {
	open := "<" + name + ">"
	closing := "</" + name + ">"

	start := strings.Index(body, open)
	if start < 0 {
		return "", &ParseError{Field: name, Body: body}
	}
	start += len(open)

	end := strings.LastIndex(body, closing)
	if end < start {
		return "", &ParseError{Field: name, Body: body}
	}

	return html.UnescapeString(body[start:end]), nil
}

// nodeInt is nodeValue for integer fields.
func nodeInt(body, name string) (int, error) {
	text, err := nodeValue(body, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, &ParseError{Field: name, Body: body, Err: err}
	}
	return n, nil
}
