package zko

type PalletFormatka struct {
	FormatkaID int64  `json:"formatka_id"`
	Ilosc      int    `json:"ilosc"`
	Nazwa      string `json:"nazwa,omitempty"`
	Kolor      string `json:"kolor,omitempty"`
}

type Pallet struct {
	ID            int64            `json:"id"`
	Numer         string           `json:"numer_palety"`
	ZkoID         int64            `json:"zko_id,omitempty"`
	Przeznaczenie string           `json:"przeznaczenie,omitempty"`
	Status        string           `json:"status,omitempty"`
	SztukTotal    int              `json:"sztuk_total"`
	WysokoscStosu float64          `json:"wysokosc_stosu"`
	WagaKg        float64          `json:"waga_kg"`
	Kolory        []string         `json:"kolory,omitempty"`
	Formatki      []PalletFormatka `json:"formatki"`
}

// Pieces: sztuk_total, а если сервер его не прислал, сумма по форматкам.
func (p Pallet) Pieces() int {
	if p.SztukTotal > 0 {
		return p.SztukTotal
	}
	total := 0
	for _, f := range p.Formatki {
		total += f.Ilosc
	}
	return total
}

// Colors: манифест цветов палеты в порядке появления.
func (p Pallet) Colors() []string {
	seen := make(map[string]struct{})
	var out []string

	add := func(c string) {
		if c == "" {
			return
		}
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}

	for _, c := range p.Kolory {
		add(c)
	}
	for _, f := range p.Formatki {
		add(f.Kolor)
	}
	return out
}

func TotalPieces(pallets []Pallet) int {
	total := 0
	for _, p := range pallets {
		total += p.Pieces()
	}
	return total
}

// Limits: ограничения стопки. Нулевое значение означает «не проверять».
type Limits struct {
	MaxHeightMM float64
	MaxWeightKG float64
}

type LimitFlags struct {
	OverHeight bool `json:"przekroczona_wysokosc"`
	OverWeight bool `json:"przekroczona_waga"`
}

func (f LimitFlags) Any() bool {
	return f.OverHeight || f.OverWeight
}

// Check только помечает палету, ничего не отклоняет.
func (l Limits) Check(p Pallet) LimitFlags {
	return LimitFlags{
		OverHeight: l.MaxHeightMM > 0 && p.WysokoscStosu > l.MaxHeightMM,
		OverWeight: l.MaxWeightKG > 0 && p.WagaKg > l.MaxWeightKG,
	}
}

// Assignment: назначение форматки на палету.
type Assignment struct {
	FormatkaID int64  `json:"formatka_id"`
	Ilosc      int    `json:"ilosc"`
	Operator   string `json:"operator"`
}

func (a Assignment) Validate() error {
	const op = "zko.Assignment.Validate"

	if a.FormatkaID <= 0 {
		return NewValidationError(op, "formatka_id jest wymagane")
	}
	if a.Ilosc <= 0 {
		return NewValidationError(op, "ilosc musi być dodatnia")
	}
	if a.Operator == "" {
		return NewValidationError(op, "operator jest wymagany")
	}
	return nil
}
