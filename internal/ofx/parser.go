// Package ofx reads card and bank statements in OFX/QFX format and turns their
// debits into purchase candidates.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Debit is one outgoing statement line.
type Debit struct {
	Posted  time.Time
	ID      string
	Account string
	Payee   string
	Memo    string
	Amount  float64
}

// Parser reads statements with ofxgo.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new OFX parser.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// preprocessOFX fixes exports ofxgo rejects: leading blank lines, mixed-case
// SEVERITY values and opening tags missing their closing bracket.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseDebits parses an OFX/QFX file and returns its debits in statement
// order. Credits, deposits and zero-amount lines are skipped.
func (p *Parser) ParseDebits(ctx context.Context, reader io.Reader) ([]Debit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var (
		debits            []Debit
		bankStmts, ccStmt int
		skipped           int
	)

	collect := func(list *ofxgo.TransactionList, account string) {
		if list == nil {
			return
		}
		for _, tx := range list.Transactions {
			d, ok := convertTransaction(tx, account)
			if !ok {
				skipped++
				continue
			}
			debits = append(debits, d)
		}
	}

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			collect(stmt.BankTranList, string(stmt.BankAcctFrom.AcctID))
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmt++
			collect(stmt.BankTranList, string(stmt.CCAcctFrom.AcctID))
		}
	}

	p.logger.Info("Parsed OFX file",
		"debits", len(debits),
		"skipped", skipped,
		"bank_statements", bankStmts,
		"cc_statements", ccStmt)

	return debits, nil
}

// convertTransaction maps an OFX line to a Debit. OFX amounts are negative
// for money leaving the account.
func convertTransaction(tx ofxgo.Transaction, account string) (Debit, bool) {
	amount, _ := tx.TrnAmt.Float64()
	if amount >= 0 {
		return Debit{}, false
	}

	return Debit{
		ID:      account + ":" + string(tx.FiTID),
		Account: account,
		Posted:  tx.DtPosted.Time,
		Payee:   payeeName(tx),
		Memo:    strings.TrimSpace(string(tx.Memo)),
		Amount:  -amount,
	}, true
}

// cardPrefixes are processor labels banks put in front of the merchant.
var cardPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"ACH DEBIT ",
}

var (
	leadingDate   = regexp.MustCompile(`^\d{2}/\d{2}\s+`)
	trailingNoise = regexp.MustCompile(`(\s+#\d+|\*[A-Z0-9]+)$`)
)

// payeeName picks the most specific merchant text on a line and strips card
// processor prefixes, dates, store numbers and order references from it.
func payeeName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && isGenericDescription(name) {
		name = strings.TrimSpace(string(tx.Memo))
	}

	upper := strings.ToUpper(name)
	for _, prefix := range cardPrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}

	name = leadingDate.ReplaceAllString(name, "")
	return strings.TrimSpace(trailingNoise.ReplaceAllString(name, ""))
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}

// Dedupe drops debits whose ID was already seen, keeping first occurrences.
func Dedupe(debits []Debit) []Debit {
	seen := make(map[string]bool, len(debits))
	out := debits[:0:0]
	for _, d := range debits {
		if seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		out = append(out, d)
	}
	return out
}
