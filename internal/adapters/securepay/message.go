package securepay

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kevin07696/securepay-periodic/internal/adapters/ports"
	"github.com/kevin07696/securepay-periodic/internal/domain"
	"github.com/kevin07696/securepay-periodic/pkg/encoding"
	"github.com/kevin07696/securepay-periodic/pkg/timeutil"
)

const (
	apiVersion   = "spxml-4.2"
	requestType  = "Periodic"
	timeoutValue = 60

	// periodicType 4 = card stored for later triggered payments
	periodicTypeTriggered = "4"

	// add requires an amount although nothing is charged
	placeholderAmount = "1"

	maxMessageIDLength = 30

	// yyyy dd MM hh mm ss; hh is the 12-hour clock
	timestampLayout = "20060201030405"
)

// Periodic request document
type periodicMessage struct {
	XMLName      xml.Name     `xml:"SecurePayMessage"`
	MessageInfo  messageInfo  `xml:"MessageInfo"`
	MerchantInfo merchantInfo `xml:"MerchantInfo"`
	RequestType  string       `xml:"RequestType"`
	Periodic     periodicBody `xml:"Periodic"`
}

type messageInfo struct {
	MessageID        string `xml:"messageID"`
	MessageTimestamp string `xml:"messageTimestamp"`
	TimeoutValue     int    `xml:"timeoutValue"`
	APIVersion       string `xml:"apiVersion"`
}

type merchantInfo struct {
	MerchantID string `xml:"merchantID"`
	Password   string `xml:"password"`
}

type periodicBody struct {
	PeriodicList periodicList `xml:"PeriodicList"`
}

type periodicList struct {
	Count int          `xml:"count,attr"`
	Item  periodicItem `xml:"PeriodicItem"`
}

type periodicItem struct {
	ID                   int             `xml:"ID,attr"`
	ActionType           string          `xml:"actionType"`
	TransactionReference string          `xml:"transactionReference,omitempty"`
	ClientID             string          `xml:"clientID"`
	CreditCardInfo       *creditCardInfo `xml:"CreditCardInfo,omitempty"`
	Amount               string          `xml:"amount,omitempty"`
	PeriodicType         string          `xml:"periodicType,omitempty"`
}

type creditCardInfo struct {
	CardNumber string `xml:"cardNumber"`
	ExpiryDate string `xml:"expiryDate"`
}

// outboundMessage is a rendered request and the ID it was sent under
type outboundMessage struct {
	ID     string
	Action ports.PeriodicAction
	XML    string
}

// messageBuilder renders Periodic requests for one merchant
type messageBuilder struct {
	merchant  domain.Merchant
	now       func() time.Time
	messageID func() string
}

func newMessageBuilder(merchant domain.Merchant) *messageBuilder {
	return &messageBuilder{
		merchant:  merchant,
		now:       time.Now,
		messageID: newMessageID,
	}
}

// buildAdd renders actionType=add for storing a new card
func (b *messageBuilder) buildAdd(card domain.Card) (*outboundMessage, error) {
	return b.render(ports.PeriodicActionAdd, periodicItem{
		ClientID: card.ClientID,
		CreditCardInfo: &creditCardInfo{
			CardNumber: card.Digits(),
			ExpiryDate: card.Expiry,
		},
		Amount:       placeholderAmount,
		PeriodicType: periodicTypeTriggered,
	})
}

// buildEdit renders actionType=edit; no amount is sent
func (b *messageBuilder) buildEdit(card domain.Card) (*outboundMessage, error) {
	return b.render(ports.PeriodicActionEdit, periodicItem{
		ClientID: card.ClientID,
		CreditCardInfo: &creditCardInfo{
			CardNumber: card.Digits(),
			ExpiryDate: card.Expiry,
		},
		PeriodicType: periodicTypeTriggered,
	})
}

// buildTrigger renders actionType=trigger debiting amount in minor units
func (b *messageBuilder) buildTrigger(clientID, reference string, amount domain.Money) (*outboundMessage, error) {
	minor, err := amount.MinorUnitString()
	if err != nil {
		return nil, err
	}
	return b.render(ports.PeriodicActionTrigger, periodicItem{
		TransactionReference: reference,
		ClientID:             clientID,
		Amount:               minor,
	})
}

func (b *messageBuilder) render(action ports.PeriodicAction, item periodicItem) (*outboundMessage, error) {
	id := b.messageID()

	item.ID = 1
	item.ActionType = string(action)

	msg := periodicMessage{
		MessageInfo: messageInfo{
			MessageID:        id,
			MessageTimestamp: formatTimestamp(b.now(), b.merchant.ZoneOffsetMinutes()),
			TimeoutValue:     timeoutValue,
			APIVersion:       apiVersion,
		},
		MerchantInfo: merchantInfo{
			MerchantID: b.merchant.ID(),
			Password:   b.merchant.Password(),
		},
		RequestType: requestType,
		Periodic: periodicBody{
			PeriodicList: periodicList{Count: 1, Item: item},
		},
	}

	doc, err := encoding.EncodeXMLDocument(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s request: %w", action, err)
	}

	return &outboundMessage{ID: id, Action: action, XML: doc}, nil
}

// newMessageID returns a random UUID without dashes, cut to 30 characters
func newMessageID() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	if len(id) > maxMessageIDLength {
		id = id[:maxMessageIDLength]
	}
	return id
}

// formatTimestamp renders t in the gateway's messageTimestamp format:
// yyyyddMMhhmmssSSS000 in the merchant's zone, then the signed offset in minutes.
func formatTimestamp(t time.Time, offsetMinutes int) string {
	local := timeutil.InOffset(t, offsetMinutes)

	sign := "+"
	if offsetMinutes < 0 {
		sign = "-"
		offsetMinutes = -offsetMinutes
	}

	return fmt.Sprintf("%s%03d000%s%d", local.Format(timestampLayout), timeutil.Milliseconds(local), sign, offsetMinutes)
}
