package entity

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyARS Currency = "ARS"
	CurrencyBRL Currency = "BRL"
	CurrencyMXN Currency = "MXN"
	CurrencyCOP Currency = "COP"
	CurrencyCLP Currency = "CLP"
	CurrencyPEN Currency = "PEN"
)

const DefaultCurrency = CurrencyUSD

var SupportedCurrencies = []Currency{
	CurrencyUSD,
	CurrencyEUR,
	CurrencyARS,
	CurrencyBRL,
	CurrencyMXN,
	CurrencyCOP,
	CurrencyCLP,
	CurrencyPEN,
}

func IsSupportedCurrency(code string) bool {
	for _, c := range SupportedCurrencies {
		if string(c) == code {
			return true
		}
	}
	return false
}

// CurrencyOrDefault returns code, or the default currency when code is empty.
func CurrencyOrDefault(code string) string {
	if code == "" {
		return string(DefaultCurrency)
	}
	return code
}
