package reconcile

import (
	"context"
	"log/slog"

	"zko-backend/internal/zko"
)

// QuantitySource: то, что умеет отдавать сырые итоги заказа.
type QuantitySource interface {
	CheckQuantities(ctx context.Context, orderID int64) (*zko.QuantityCheck, error)
}

// Checker сверяет три независимых итога: заказ, палеты и таблицу ilosc.
type Checker struct {
	log    *slog.Logger
	source QuantitySource
}

func NewChecker(log *slog.Logger, source QuantitySource) *Checker {
	return &Checker{log: log, source: source}
}

// Check только читает. Расхождение итогов считается успешным ответом со статусом NEEDS_FIX,
// а не ошибкой. Сетевые ошибки и ошибки разбора возвращаются как KindTransient.
func (c *Checker) Check(ctx context.Context, orderID int64) (*zko.QuantityCheck, error) {
	const op = "reconcile.Checker.Check"

	if orderID <= 0 {
		return nil, zko.NewValidationError(op, "zko_id musi być dodatnie")
	}

	res, err := c.source.CheckQuantities(ctx, orderID)
	if err != nil {
		if zko.IsKind(err, zko.KindNetwork) || zko.IsKind(err, zko.KindDecode) {
			return nil, zko.Transient(op, err)
		}
		return nil, err
	}

	verdict := Evaluate(res.Totals, res.LedgerEntries)
	verdict.OrderID = orderID
	verdict.FormatkaTypes = res.FormatkaTypes
	verdict.PalletCount = res.PalletCount
	verdict.ServerStatus = res.ServerStatus

	if res.ServerStatus != "" && res.ServerStatus != verdict.Status {
		c.log.Warn("статус сервера расходится с пересчётом",
			slog.String("op", op),
			slog.Int64("zko_id", orderID),
			slog.String("server", string(res.ServerStatus)),
			slog.String("local", string(verdict.Status)),
		)
	}

	return &verdict, nil
}

// Evaluate: строгое И по трём проверкам.
// Пустой заказ (0 штук) не требует записей в таблице ilosc.
func Evaluate(t zko.Totals, ledgerEntries int) zko.QuantityCheck {
	res := zko.QuantityCheck{
		Totals:          t,
		LedgerEntries:   ledgerEntries,
		OrderVsPallets:  t.Order == t.Pallets,
		PalletsVsLedger: t.Pallets == t.Ledger,
		LedgerFilled:    ledgerEntries > 0 || t.Order == 0,
	}

	res.Status = zko.CheckNeedsFix
	if res.OrderVsPallets && res.PalletsVsLedger && res.LedgerFilled {
		res.Status = zko.CheckOK
	}
	return res
}
