package cli

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/smart-finance/internal/model"
)

// FormatMoney renders amount in currency using the currency's symbol and
// minor unit digits. Unknown currencies fall back to two decimals followed by
// the code.
func FormatMoney(amount decimal.Decimal, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	cur := money.GetCurrency(code)
	if cur == nil {
		if code == "" {
			return amount.StringFixed(2)
		}
		return amount.StringFixed(2) + " " + code
	}

	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// FormatSigned renders a transaction amount with its direction: "+" and the
// income color for money in, "-" and the expense color for money out.
func FormatSigned(amount decimal.Decimal, sign model.Sign, currency string) string {
	text := FormatMoney(amount.Abs(), currency)
	if sign == model.SignNegative {
		return ExpenseStyle.Render("-" + text)
	}
	return IncomeStyle.Render("+" + text)
}
