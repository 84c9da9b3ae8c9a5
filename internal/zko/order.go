package zko

import "time"

type Order struct {
	ID             int64      `json:"id"`
	Numer          string     `json:"numer_zko,omitempty"`
	Status         StatusCode `json:"status"`
	Kooperant      string     `json:"kooperant,omitempty"`
	Priorytet      int        `json:"priorytet"`
	DataUtworzenia time.Time  `json:"data_utworzenia"`
	IloscPozycji   int        `json:"ilosc_pozycji"`
	IloscFormatek  int        `json:"ilosc_formatek"`
}

// Position: одна комбинация раскроя/материала внутри ZKO.
type Position struct {
	ID         int64  `json:"id"`
	ZkoID      int64  `json:"zko_id"`
	KolorPlyty string `json:"kolor_plyty"`
	NazwaPlyty string `json:"nazwa_plyty"`
	IloscPlyt  int    `json:"ilosc_plyt"`
	Kolejnosc  int    `json:"kolejnosc"`
	Uwagi      string `json:"uwagi,omitempty"`
}

// PositionPatch: частичное обновление, уходят только заполненные поля.
type PositionPatch struct {
	KolorPlyty *string `json:"kolor_plyty,omitempty"`
	NazwaPlyty *string `json:"nazwa_plyty,omitempty"`
	IloscPlyt  *int    `json:"ilosc_plyt,omitempty"`
	Kolejnosc  *int    `json:"kolejnosc,omitempty"`
	Uwagi      *string `json:"uwagi,omitempty"`
	Uzytkownik string  `json:"uzytkownik,omitempty"`
}

func (p PositionPatch) Empty() bool {
	return p.KolorPlyty == nil && p.NazwaPlyty == nil && p.IloscPlyt == nil && p.Kolejnosc == nil && p.Uwagi == nil
}

func (p PositionPatch) Validate() error {
	const op = "zko.PositionPatch.Validate"

	if p.Empty() {
		return NewValidationError(op, "brak zmian do zapisania")
	}
	if p.IloscPlyt != nil && *p.IloscPlyt <= 0 {
		return NewValidationError(op, "ilosc_plyt musi być dodatnia")
	}
	if p.Kolejnosc != nil && *p.Kolejnosc < 0 {
		return NewValidationError(op, "kolejnosc nie może być ujemna")
	}
	return nil
}

type DeletePosition struct {
	Uzytkownik string `json:"uzytkownik"`
	Powod      string `json:"powod"`
}

type DeletePositionResult struct {
	Komunikat        string `json:"komunikat"`
	UsunieteFormatki int    `json:"usuniete_formatki"`
	UsunietePalety   int    `json:"usuniete_palety"`
}
