package zko

import (
	"errors"
	"fmt"
)

// Kind классифицирует ошибку для UI и для решения о повторе.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindRemote
	KindNetwork
	KindDecode
	KindTransient
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindRemote:
		return "remote_fault"
	case KindNetwork:
		return "network"
	case KindDecode:
		return "decode"
	case KindTransient:
		return "transient"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error: единая ошибка клиента и оркестратора.
// Message хранит текст, который прислал сервер (komunikat), если он был.
type Error struct {
	Kind       Kind
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (http %d): %s", e.Op, e.Kind, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidationError(op, msg string) error {
	return &Error{Kind: KindValidation, Op: op, Message: msg}
}

func NewNotFoundError(op, msg string) error {
	return &Error{Kind: KindNotFound, Op: op, Message: msg}
}

func NewRemoteFault(op string, status int, msg string) error {
	return &Error{Kind: KindRemote, Op: op, StatusCode: status, Message: msg}
}

func NewNetworkError(op string, err error) error {
	return &Error{Kind: KindNetwork, Op: op, Err: err}
}

func NewDecodeError(op string, err error) error {
	return &Error{Kind: KindDecode, Op: op, Err: err}
}

func NewConflictError(op, msg string) error {
	return &Error{Kind: KindConflict, Op: op, Message: msg}
}

// Transient оборачивает сетевые ошибки и ошибки разбора, исходный Kind остаётся в цепочке.
func Transient(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindTransient, Op: op, Err: err}
}

// IsKind проходит всю цепочку, а не только первую *Error.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}

// KindOf возвращает Kind самой внешней *Error в цепочке (0, если такой нет).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// UserMessage возвращает текст для пользователя: сообщение сервера, если есть, иначе общий текст.
func UserMessage(err error) string {
	for cur := err; cur != nil; {
		var e *Error
		if !errors.As(cur, &e) {
			break
		}
		if e.Message != "" {
			return e.Message
		}
		cur = e.Err
	}

	switch {
	case IsKind(err, KindValidation):
		return "Nieprawidłowe dane"
	case IsKind(err, KindNotFound):
		return "Nie znaleziono"
	case IsKind(err, KindConflict):
		return "Operacja dla tego ZKO jest już w toku"
	case IsKind(err, KindNetwork):
		return "Brak połączenia z serwerem"
	case IsKind(err, KindDecode):
		return "Nieprawidłowa odpowiedź serwera"
	default:
		return "Wystąpił błąd serwera"
	}
}
