package ofx

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readStatement(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestParseDebits(t *testing.T) {
	checking := readStatement(t, "checking.qfx")
	card := readStatement(t, "card.ofx")

	tests := []struct {
		name      string
		input     string
		wantPayee []string
		wantErr   bool
	}{
		{
			name:      "checking drops the deposit",
			input:     checking,
			wantPayee: []string{"THRIFT TOWN", "Green Grocer Co-op", "CHECK"},
		},
		{
			name:      "credit card",
			input:     card,
			wantPayee: []string{"BESTBUY.COM", "Corner Cafe"},
		},
		{
			name:      "blank lines before header",
			input:     "\r\n\n\t" + card,
			wantPayee: []string{"BESTBUY.COM", "Corner Cafe"},
		},
		{name: "not OFX", input: "category,brand,price\n", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	parser := NewParser(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debits, err := parser.ParseDebits(context.Background(), strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			payees := make([]string, len(debits))
			for i, d := range debits {
				payees[i] = d.Payee
				assert.Positive(t, d.Amount)
			}
			assert.Equal(t, tt.wantPayee, payees)
		})
	}
}

func TestParseDebits_Fields(t *testing.T) {
	debits, err := NewParser(nil).ParseDebits(context.Background(), strings.NewReader(readStatement(t, "checking.qfx")))
	require.NoError(t, err)
	require.Len(t, debits, 3)

	got := debits[1]
	assert.Equal(t, "9876543210:2026091001", got.ID)
	assert.Equal(t, "9876543210", got.Account)
	assert.InDelta(t, 86.40, got.Amount, 1e-9)
	assert.True(t, got.Posted.Equal(time.Date(2026, 9, 10, 17, 45, 0, 0, time.UTC)))
}

func TestParseDebits_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser(nil).ParseDebits(ctx, strings.NewReader(readStatement(t, "card.ofx")))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPayeeName(t *testing.T) {
	tests := []struct {
		tx   ofxgo.Transaction
		want string
	}{
		{tx: ofxgo.Transaction{Name: "POS 88", Payee: &ofxgo.Payee{Name: " Repair Cafe "}}, want: "Repair Cafe"},
		{tx: ofxgo.Transaction{Name: "POS PURCHASE Second-Hand Books"}, want: "Second-Hand Books"},
		{tx: ofxgo.Transaction{Name: "check card 09/14 Bike Kitchen"}, want: "Bike Kitchen"},
		{tx: ofxgo.Transaction{Name: "PURCHASE", Memo: "Farmers Market"}, want: "Farmers Market"},
		{tx: ofxgo.Transaction{Name: "THRIFT TOWN #42"}, want: "THRIFT TOWN"},
		{tx: ofxgo.Transaction{Name: "AMZN Mktp US*2K4L"}, want: "AMZN Mktp US"},
		{tx: ofxgo.Transaction{Name: "Hemp Apparel"}, want: "Hemp Apparel"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, payeeName(tt.tx))
		})
	}
}

func TestConvertTransaction(t *testing.T) {
	refund := ofxgo.Transaction{Name: "Refund", TrnAmt: ofxgo.Amount{Rat: *big.NewRat(15, 1)}}
	_, ok := convertTransaction(refund, "acct")
	assert.False(t, ok, "credits are not purchases")

	zero := ofxgo.Transaction{Name: "Hold"}
	_, ok = convertTransaction(zero, "acct")
	assert.False(t, ok, "zero amounts are skipped")

	coffee := ofxgo.Transaction{Name: "Corner Cafe", FiTID: "t9", TrnAmt: ofxgo.Amount{Rat: *big.NewRat(-9, 2)}}
	d, ok := convertTransaction(coffee, "acct")
	require.True(t, ok)
	assert.InDelta(t, 4.5, d.Amount, 1e-9)
	assert.Equal(t, "acct:t9", d.ID)
}

func TestDedupe(t *testing.T) {
	debits := []Debit{
		{ID: "card:1", Payee: "kept"},
		{ID: "card:2"},
		{ID: "card:1", Payee: "duplicate"},
		{ID: "checking:1"},
	}

	got := Dedupe(debits)
	require.Len(t, got, 3)
	assert.Equal(t, "kept", got[0].Payee)
	assert.Len(t, debits, 4, "input untouched")
}

func TestPreprocessOFX(t *testing.T) {
	out := preprocessOFX("\n  <SEVERITY>Warn</SEVERITY>\n<TRNUID\n")
	assert.True(t, strings.HasPrefix(out, "<SEVERITY>WARN</SEVERITY>"))
	assert.Contains(t, out, "<TRNUID>")
}
