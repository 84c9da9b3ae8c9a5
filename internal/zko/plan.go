package zko

// PlanParams: тело POST /api/pallets/zko/{id}/plan-modular.
type PlanParams struct {
	MaxWysokoscMM       int    `json:"max_wysokosc_mm"`
	MaxFormatekNaPalete int    `json:"max_formatek_na_palete"`
	NadpiszIstniejace   bool   `json:"nadpisz_istniejace"`
	Operator            string `json:"operator"`
}

func (p PlanParams) Validate() error {
	const op = "zko.PlanParams.Validate"

	if p.MaxWysokoscMM <= 0 {
		return NewValidationError(op, "max_wysokosc_mm musi być dodatnie")
	}
	if p.MaxFormatekNaPalete <= 0 {
		return NewValidationError(op, "max_formatek_na_palete musi być dodatnie")
	}
	if p.Operator == "" {
		return NewValidationError(op, "operator jest wymagany")
	}
	return nil
}

// PlanResult: нормализованный ответ планирования.
// NeedsConfirmation означает, что сервер ничего не изменил и ждёт разрешения на перезапись.
type PlanResult struct {
	Komunikat         string         `json:"komunikat"`
	NeedsConfirmation bool           `json:"potrzeba_potwierdzenia"`
	CreatedPalletIDs  []int64        `json:"palety_utworzone"`
	Pallets           []Pallet       `json:"palety_szczegoly"`
	Stats             map[string]any `json:"statystyki,omitempty"`
	Version           string         `json:"wersja,omitempty"`
}
