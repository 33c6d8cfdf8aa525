package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kevin07696/securepay-periodic/internal/domain"
)

var resultHeader = []string{
	"line", "client_id", "reference", "amount", "status",
	"response_code", "response_text", "txn_id", "error",
}

// ParseCSV reads client_id,reference,amount rows. A first row starting with
// "client_id" is treated as a header. Blank lines are skipped.
func ParseCSV(r io.Reader, currency domain.Currency) ([]DebitInstruction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var instructions []DebitInstruction
	first := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read batch file: %w", err)
		}
		line, _ := reader.FieldPos(0)

		isHeader := first && strings.EqualFold(strings.TrimSpace(record[0]), "client_id")
		first = false
		if isHeader {
			continue
		}
		if len(record) != 3 {
			return nil, domain.NewDomainError(domain.ErrorCodeValidationFailed,
				fmt.Sprintf("line %d: expected client_id,reference,amount, got %d fields", line, len(record)))
		}

		clientID := strings.TrimSpace(record[0])
		reference := strings.TrimSpace(record[1])
		if clientID == "" {
			return nil, domain.NewDomainError(domain.ErrorCodeCardClientIDMissing, fmt.Sprintf("line %d: client_id is required", line))
		}
		if reference == "" {
			return nil, domain.NewDomainError(domain.ErrorCodeValidationMissingField, fmt.Sprintf("line %d: reference is required", line))
		}

		amount, err := domain.NewMoney(strings.TrimSpace(record[2]), currency)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if _, err := amount.MinorUnits(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		instructions = append(instructions, DebitInstruction{
			Line:      line,
			ClientID:  clientID,
			Reference: reference,
			Amount:    amount,
		})
	}

	return instructions, nil
}

// WriteResultsCSV writes one row per result, in order, after a header row
func WriteResultsCSV(w io.Writer, results []DebitResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(resultHeader); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			strconv.Itoa(r.Instruction.Line),
			r.Instruction.ClientID,
			r.Instruction.Reference,
			r.Instruction.Amount.String(),
			r.Status(),
			"", "", "", "",
		}
		if r.Response != nil {
			row[5] = strconv.Itoa(r.Response.ResponseCode)
			row[6] = r.Response.ResponseText
			row[7] = r.Response.TransactionID
		}
		if r.Err != nil {
			row[8] = r.Err.Error()
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
