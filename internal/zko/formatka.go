package zko

// Formatka: тип вырезанной детали внутри позиции.
type Formatka struct {
	ID             int64   `json:"id"`
	PozycjaID      int64   `json:"pozycja_id"`
	Nazwa          string  `json:"nazwa,omitempty"`
	Dlugosc        float64 `json:"dlugosc"`
	Szerokosc      float64 `json:"szerokosc"`
	Grubosc        float64 `json:"grubosc"`
	Kolor          string  `json:"kolor"`
	IloscPlanowana int     `json:"ilosc_planowana"`
	IloscWPaletach int     `json:"ilosc_w_paletach"`
	IloscDostepna  int     `json:"ilosc_dostepna"`
}

// Available = planowana - w_paletach, без обрезки до нуля.
func (f Formatka) Available() int {
	return f.IloscPlanowana - f.IloscWPaletach
}

type AvailabilityViolation struct {
	FormatkaID int64  `json:"formatka_id"`
	Planned    int    `json:"ilosc_planowana"`
	Assigned   int    `json:"ilosc_w_paletach"`
	Reported   int    `json:"ilosc_dostepna_serwer"`
	Computed   int    `json:"ilosc_dostepna"`
	Reason     string `json:"powod"`
}

// CheckAvailability пересчитывает ilosc_dostepna и возвращает нарушения инварианта.
// Отрицательный остаток не обнуляется: он остаётся в данных и попадает в список нарушений.
func CheckAvailability(items []Formatka) ([]Formatka, []AvailabilityViolation) {
	out := make([]Formatka, 0, len(items))
	var violations []AvailabilityViolation

	for _, f := range items {
		computed := f.Available()
		switch {
		case computed < 0:
			violations = append(violations, AvailabilityViolation{
				FormatkaID: f.ID,
				Planned:    f.IloscPlanowana,
				Assigned:   f.IloscWPaletach,
				Reported:   f.IloscDostepna,
				Computed:   computed,
				Reason:     "przydzielono więcej niż zaplanowano",
			})
		case computed != f.IloscDostepna:
			violations = append(violations, AvailabilityViolation{
				FormatkaID: f.ID,
				Planned:    f.IloscPlanowana,
				Assigned:   f.IloscWPaletach,
				Reported:   f.IloscDostepna,
				Computed:   computed,
				Reason:     "ilość dostępna niezgodna z serwerem",
			})
		}
		f.IloscDostepna = computed
		out = append(out, f)
	}

	return out, violations
}

// AvailableFormatki: только то, что ещё можно положить на палету.
func AvailableFormatki(items []Formatka) []Formatka {
	out := make([]Formatka, 0, len(items))
	for _, f := range items {
		if f.Available() > 0 {
			out = append(out, f)
		}
	}
	return out
}
