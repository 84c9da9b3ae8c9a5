package zko

type CheckStatus string

const (
	CheckOK       CheckStatus = "OK"
	CheckNeedsFix CheckStatus = "NEEDS_FIX"
)

type Totals struct {
	Order   int `json:"zko"`
	Pallets int `json:"palety"`
	Ledger  int `json:"tabela_ilosc"`
}

// QuantityCheck: результат сверки трёх итогов заказа. Не хранится, считается по запросу.
type QuantityCheck struct {
	OrderID         int64       `json:"zko_id"`
	Totals          Totals      `json:"total_sztuk"`
	FormatkaTypes   int         `json:"typy_formatek"`
	PalletCount     int         `json:"liczba_palet"`
	LedgerEntries   int         `json:"wpisy"`
	OrderVsPallets  bool        `json:"zko_vs_palety"`
	PalletsVsLedger bool        `json:"palety_vs_ilosc"`
	LedgerFilled    bool        `json:"tabela_ilosc_wypelniona"`
	Status          CheckStatus `json:"status"`
	ServerStatus    CheckStatus `json:"status_serwera,omitempty"`
}

func (q QuantityCheck) Consistent() bool {
	return q.Status == CheckOK
}
