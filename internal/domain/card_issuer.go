package domain

import "regexp"

// CardIssuer is a card network recognised from the shape of its PAN.
type CardIssuer struct {
	pattern *regexp.Regexp
	name    string
}

// Name returns the issuer's display name (e.g. "VISA").
func (i CardIssuer) Name() string {
	return i.name
}

// Pattern returns the regular expression source used to recognise the issuer.
func (i CardIssuer) Pattern() string {
	return i.pattern.String()
}

// Matches reports whether pan has the shape of this issuer's card numbers.
// The PAN must already be stripped to digits.
func (i CardIssuer) Matches(pan string) bool {
	return i.pattern.MatchString(pan)
}

func (i CardIssuer) String() string {
	return i.name
}

// Issuers in match order. A PAN is classified by the first entry it matches.
var (
	IssuerVisa       = CardIssuer{name: "VISA", pattern: regexp.MustCompile(`^4[0-9]{12}(?:[0-9]{3})?$`)}
	IssuerMastercard = CardIssuer{name: "MASTER", pattern: regexp.MustCompile(`^5[1-5][0-9]{14}$`)}
	IssuerAmex       = CardIssuer{name: "AMEX", pattern: regexp.MustCompile(`^3[47][0-9]{13}$`)}
	IssuerDiners     = CardIssuer{name: "Diners", pattern: regexp.MustCompile(`^3(?:0[0-5]|[68][0-9])[0-9]{11}$`)}
	IssuerDiscover   = CardIssuer{name: "DISCOVER", pattern: regexp.MustCompile(`^6(?:011|5[0-9]{2})[0-9]{12}$`)}
	IssuerJCB        = CardIssuer{name: "JCB", pattern: regexp.MustCompile(`^(?:2131|1800|35\d{3})\d{11}$`)}
)

var issuers = []CardIssuer{
	IssuerVisa,
	IssuerMastercard,
	IssuerAmex,
	IssuerDiners,
	IssuerDiscover,
	IssuerJCB,
}

// Issuers returns the issuer table in match order.
func Issuers() []CardIssuer {
	out := make([]CardIssuer, len(issuers))
	copy(out, issuers)
	return out
}

// GleanIssuer returns the first issuer whose pattern matches pan.
// The second return value is false when no issuer matches.
func GleanIssuer(pan string) (CardIssuer, bool) {
	for _, issuer := range issuers {
		if issuer.Matches(pan) {
			return issuer, true
		}
	}
	return CardIssuer{}, false
}

// IssuerByName looks an issuer up by its exact display name.
func IssuerByName(name string) (CardIssuer, bool) {
	for _, issuer := range issuers {
		if issuer.name == name {
			return issuer, true
		}
	}
	return CardIssuer{}, false
}
