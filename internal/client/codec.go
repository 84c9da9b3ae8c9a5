package client

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// node-pg отдаёт bigint/numeric строками, поэтому числа принимаем в обоих видах.

type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	v, err := parseInteger(b)
	if err != nil {
		return err
	}
	*f = flexInt(v)
	return nil
}

type flexInt64 int64

func (f *flexInt64) UnmarshalJSON(b []byte) error {
	v, err := parseInteger(b)
	if err != nil {
		return err
	}
	*f = flexInt64(v)
	return nil
}

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	v, err := parseNumber(b)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

func numberText(b []byte) string {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		return ""
	}
	return strings.Trim(s, `"`)
}

func parseNumber(b []byte) (float64, error) {
	s := numberText(b)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// parseInteger: id и штуки без потери точности. numeric вида "12.0" допускается,
// дробная часть или выход за int64 дают ошибку.
func parseInteger(b []byte) (int64, error) {
	s := numberText(b)
	if s == "" {
		return 0, nil
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return v, nil
	}

	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int64(f), nil
}

type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = flexString(v)
		return nil
	}
	*f = flexString(s)
	return nil
}

// flexStrings: массив строк или строка через запятую ("BIALY, DAB").
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = nil
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var v []string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = v
		return nil
	}

	var joined string
	if err := json.Unmarshal(b, &joined); err != nil {
		return err
	}
	var out []string
	for _, part := range strings.Split(joined, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*f = out
	return nil
}

// envelope: общие поля ответов бэкенда.
type envelope struct {
	Sukces    *bool  `json:"sukces"`
	Komunikat string `json:"komunikat"`
	Error     string `json:"error"`
}

func (e envelope) message() string {
	if e.Komunikat != "" {
		return e.Komunikat
	}
	return e.Error
}

func isArray(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}
