package zko

// StatusCode: этап ZKO. Порядок в stationSequence совпадает с движением заказа по цеху.
type StatusCode string

const (
	StatusNowe           StatusCode = "NOWE"
	StatusCiecieStart    StatusCode = "CIECIE_START"
	StatusCiecieStop     StatusCode = "CIECIE_STOP"
	StatusTransport1     StatusCode = "TRANSPORT_1"
	StatusOklejanieStart StatusCode = "OKLEJANIE_START"
	StatusOklejanieStop  StatusCode = "OKLEJANIE_STOP"
	StatusTransport2     StatusCode = "TRANSPORT_2"
	StatusWiercenieStart StatusCode = "WIERCENIE_START"
	StatusWiercenieStop  StatusCode = "WIERCENIE_STOP"
	StatusTransport3     StatusCode = "TRANSPORT_3"
	StatusPakowanie      StatusCode = "PAKOWANIE"
	StatusMagazyn        StatusCode = "MAGAZYN"
	StatusWyslano        StatusCode = "WYSLANO"
	StatusZakonczone     StatusCode = "ZAKONCZONE"
	StatusAnulowane      StatusCode = "ANULOWANE"
)

var stationSequence = []StatusCode{
	StatusNowe,
	StatusCiecieStart,
	StatusCiecieStop,
	StatusTransport1,
	StatusOklejanieStart,
	StatusOklejanieStop,
	StatusTransport2,
	StatusWiercenieStart,
	StatusWiercenieStop,
	StatusTransport3,
	StatusPakowanie,
	StatusMagazyn,
	StatusWyslano,
	StatusZakonczone,
}

// KnownStatus проверяет код по закрытому списку этапов.
func KnownStatus(code StatusCode) bool {
	return code == StatusAnulowane || StatusIndex(code) >= 0
}

// StatusIndex: позиция этапа в последовательности, -1 для неизвестных и для ANULOWANE.
func StatusIndex(code StatusCode) int {
	for i, s := range stationSequence {
		if s == code {
			return i
		}
	}
	return -1
}

// Stations возвращает копию последовательности этапов.
func Stations() []StatusCode {
	out := make([]StatusCode, len(stationSequence))
	copy(out, stationSequence)
	return out
}

// StatusChange: тело запроса /api/zko/status/change.
type StatusChange struct {
	ZkoID       int64      `json:"zko_id"`
	NowyEtapKod StatusCode `json:"nowy_etap_kod"`
	Operator    string     `json:"operator"`
	Uzytkownik  string     `json:"uzytkownik,omitempty"`
	Lokalizacja string     `json:"lokalizacja,omitempty"`
	Komentarz   string     `json:"komentarz,omitempty"`
}

// Validate отсекает запрос до сети.
func (s StatusChange) Validate() error {
	const op = "zko.StatusChange.Validate"

	if s.ZkoID <= 0 {
		return NewValidationError(op, "zko_id musi być dodatnie")
	}
	if !KnownStatus(s.NowyEtapKod) {
		return NewValidationError(op, "nieznany kod etapu: "+string(s.NowyEtapKod))
	}
	if s.Operator == "" {
		return NewValidationError(op, "operator jest wymagany")
	}
	return nil
}
