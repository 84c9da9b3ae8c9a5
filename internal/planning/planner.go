package planning

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/EagleChen/mapmutex"
	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"zko-backend/internal/config"
	"zko-backend/internal/metrics"
	"zko-backend/internal/storage"
	"zko-backend/internal/zko"
)

type Checker interface {
	Check(ctx context.Context, orderID int64) (*zko.QuantityCheck, error)
}

type Remote interface {
	PlanModular(ctx context.Context, orderID int64, params zko.PlanParams) (*zko.PlanResult, error)
	PalletDetails(ctx context.Context, orderID int64) ([]zko.Pallet, error)
}

type Journal interface {
	SaveRun(ctx context.Context, run storage.PlanningRun) error
}

type Request struct {
	OrderID            int64
	MaxHeightMM        int
	MaxPiecesPerPallet int
	Overwrite          bool
	Operator           string
}

// Confirmation: то, что показывается оператору перед перезаписью палет.
type Confirmation struct {
	Message            string          `json:"komunikat,omitempty"`
	PalletCount        int             `json:"liczba_palet"`
	TotalPieces        int             `json:"total_sztuk"`
	Status             zko.CheckStatus `json:"status"`
	RecommendOverwrite bool            `json:"zalecane_nadpisanie"`
	ExpiresAt          time.Time       `json:"wygasa"`
}

type Outcome struct {
	RunID        string             `json:"run_id"`
	OrderID      int64              `json:"zko_id"`
	State        State              `json:"state"`
	Token        string             `json:"token,omitempty"`
	Confirmation *Confirmation      `json:"confirmation,omitempty"`
	Plan         *zko.PlanResult    `json:"plan,omitempty"`
	Check        *zko.QuantityCheck `json:"check,omitempty"`
	InitialCheck *zko.QuantityCheck `json:"initial_check,omitempty"`
	Pallets      []zko.Pallet       `json:"palety"`
	Warnings     []string           `json:"warnings,omitempty"`
}

// run: состояние одного прогона. После постановки в ожидание им владеет
// тот, кто первым выставил claimed: Confirm или истечение сессии.
type run struct {
	outcome   Outcome
	req       Request
	machine   *fsm.FSM
	overwrite bool
	err       error
	started   time.Time
	claimed   atomic.Bool
}

func (r *run) snapshot() *Outcome {
	out := r.outcome
	if r.outcome.Warnings != nil {
		out.Warnings = append([]string(nil), r.outcome.Warnings...)
	}
	return &out
}

// Planner проводит заказ через проверку, планирование, подтверждение перезаписи и сверку.
// На один заказ одновременно допускается один незавершённый прогон.
type Planner struct {
	log      *slog.Logger
	checker  Checker
	remote   Remote
	journal  Journal
	cfg      config.Planning
	guard    *mapmutex.Mutex
	sessions *cache.Cache
	now      func() time.Time
}

func New(log *slog.Logger, checker Checker, remote Remote, journal Journal, cfg config.Planning) *Planner {
	if cfg.ConfirmationTTL <= 0 {
		cfg.ConfirmationTTL = 10 * time.Minute
	}

	p := &Planner{
		log:     log,
		checker: checker,
		remote:  remote,
		journal: journal,
		cfg:     cfg,
		// одна попытка: второй вызов для того же заказа сразу получает отказ
		guard:    mapmutex.NewCustomizedMapMutex(1, 100000000, 10, 1.1, 0.2),
		sessions: cache.New(cfg.ConfirmationTTL, cleanupInterval(cfg.ConfirmationTTL)),
		now:      time.Now,
	}
	p.sessions.OnEvicted(p.expire)

	return p
}

// cleanupInterval: janitor go-cache проходит несколько раз за TTL, но не чаще раза в секунду.
func cleanupInterval(ttl time.Duration) time.Duration {
	return min(max(ttl/4, time.Second), time.Minute)
}

func (p *Planner) normalize(req Request) (Request, error) {
	const op = "planning.Planner.normalize"

	if req.OrderID <= 0 {
		return req, zko.NewValidationError(op, "zko_id musi być dodatnie")
	}
	if req.MaxHeightMM < 0 || req.MaxPiecesPerPallet < 0 {
		return req, zko.NewValidationError(op, "parametry planowania nie mogą być ujemne")
	}
	if req.Operator == "" {
		return req, zko.NewValidationError(op, "operator jest wymagany")
	}
	if req.MaxHeightMM == 0 {
		req.MaxHeightMM = p.cfg.MaxHeightMM
	}
	if req.MaxPiecesPerPallet == 0 {
		req.MaxPiecesPerPallet = p.cfg.MaxPiecesPerPallet
	}
	return req, nil
}

// Start запускает прогон. Если сервер просит подтвердить перезапись, прогон
// приостанавливается в AWAITING_CONFIRMATION и ждёт Confirm по токену.
func (p *Planner) Start(ctx context.Context, req Request) (*Outcome, error) {
	const op = "planning.Planner.Start"

	req, err := p.normalize(req)
	if err != nil {
		return nil, err
	}

	// Get уже не видит истёкшую сессию, а janitor мог до неё не дойти:
	// вытесняем сейчас, чтобы expire отпустил заказ
	p.sessions.DeleteExpired()

	if !p.guard.TryLock(req.OrderID) {
		return nil, zko.NewConflictError(op, fmt.Sprintf("Planowanie ZKO %d jest już w toku", req.OrderID))
	}
	suspended := false
	defer func() {
		if !suspended {
			p.guard.Unlock(req.OrderID)
		}
	}()

	r := p.newRun(req)
	p.log.Info("планирование запущено",
		slog.String("op", op),
		slog.String("run_id", r.outcome.RunID),
		slog.Int64("zko_id", req.OrderID),
		slog.String("operator", req.Operator),
		slog.Bool("overwrite", req.Overwrite),
	)

	out, err := p.begin(ctx, r)
	if err == nil && out.State == StateAwaitingConfirmation {
		suspended = true
		return out, nil
	}

	p.finish(ctx, r)
	return out, err
}

func (p *Planner) newRun(req Request) *run {
	r := &run{
		req:     req,
		started: p.now(),
		outcome: Outcome{
			RunID:   uuid.NewString(),
			OrderID: req.OrderID,
			State:   StateCheckingInitial,
		},
	}
	r.machine = newMachine(p.log, req.OrderID, func(s State) {
		r.outcome.State = s
	})
	return r
}

func (p *Planner) begin(ctx context.Context, r *run) (*Outcome, error) {
	const op = "planning.Planner.begin"

	check, err := p.checker.Check(ctx, r.req.OrderID)
	if err != nil {
		return p.fail(ctx, r, fmt.Errorf("%s: initial check: %w", op, err))
	}
	r.outcome.InitialCheck = check

	if check.Consistent() {
		// повторный вызов на согласованном заказе ничего не меняет
		pallets, err := p.remote.PalletDetails(ctx, r.req.OrderID)
		if err != nil {
			return p.fail(ctx, r, fmt.Errorf("%s: details: %w", op, err))
		}
		r.outcome.Check = check
		r.outcome.Pallets = pallets
		if err := p.event(ctx, r, eventConsistent); err != nil {
			return nil, err
		}
		return r.snapshot(), nil
	}

	if err := p.event(ctx, r, eventNeedsFix); err != nil {
		return nil, err
	}

	// с момента отправки мутации прогон доводится до конца, отмена запроса его не обрывает
	ctx = context.WithoutCancel(ctx)

	res, err := p.plan(ctx, r, r.req.Overwrite)
	if err != nil {
		return p.fail(ctx, r, err)
	}

	if res.NeedsConfirmation {
		if r.req.Overwrite {
			return p.fail(ctx, r, zko.NewRemoteFault(op, 0, "Serwer żąda potwierdzenia mimo nadpisania"))
		}
		if err := p.event(ctx, r, eventConfirmationRequired); err != nil {
			return nil, err
		}
		return p.suspend(r, res), nil
	}

	r.outcome.Plan = res
	if err := p.event(ctx, r, eventPlanned); err != nil {
		return nil, err
	}
	if err := p.event(ctx, r, eventVerify); err != nil {
		return nil, err
	}
	return p.verify(ctx, r)
}

// plan: единственная мутация. Никогда не повторяется и не отменяется вызывающим,
// время ограничено только таймаутом клиента.
func (p *Planner) plan(ctx context.Context, r *run, overwrite bool) (*zko.PlanResult, error) {
	const op = "planning.Planner.plan"

	r.overwrite = r.overwrite || overwrite
	res, err := p.remote.PlanModular(ctx, r.req.OrderID, zko.PlanParams{
		MaxWysokoscMM:       r.req.MaxHeightMM,
		MaxFormatekNaPalete: r.req.MaxPiecesPerPallet,
		NadpiszIstniejace:   overwrite,
		Operator:            r.req.Operator,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// verify перечитывает сверку и детали палет. NEEDS_FIX после планирования даёт
// только предупреждение, прогон всё равно завершается в DONE.
func (p *Planner) verify(ctx context.Context, r *run) (*Outcome, error) {
	const op = "planning.Planner.verify"

	var (
		check    *zko.QuantityCheck
		checkErr error
		pallets  []zko.Pallet
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		check, checkErr = p.checker.Check(gctx, r.req.OrderID)
		return nil
	})
	g.Go(func() error {
		var err error
		pallets, err = p.remote.PalletDetails(gctx, r.req.OrderID)
		return err
	})
	if err := g.Wait(); err != nil {
		return p.fail(ctx, r, fmt.Errorf("%s: details: %w", op, err))
	}

	switch {
	case checkErr != nil:
		p.log.Warn("повторная сверка не удалась",
			slog.String("op", op),
			slog.Int64("zko_id", r.req.OrderID),
			slog.String("error", checkErr.Error()),
		)
		r.outcome.Warnings = append(r.outcome.Warnings, "Nie udało się ponownie sprawdzić ilości: "+zko.UserMessage(checkErr))
	case !check.Consistent():
		p.log.Warn("после планирования количества не сходятся",
			slog.String("op", op),
			slog.Int64("zko_id", r.req.OrderID),
			slog.Int("zko", check.Totals.Order),
			slog.Int("palety", check.Totals.Pallets),
			slog.Int("tabela_ilosc", check.Totals.Ledger),
		)
		r.outcome.Warnings = append(r.outcome.Warnings, "Po planowaniu ilości nadal się nie zgadzają (NEEDS_FIX)")
	}

	r.outcome.Check = check
	r.outcome.Pallets = pallets
	if err := p.event(ctx, r, eventVerified); err != nil {
		return nil, err
	}
	return r.snapshot(), nil
}

func (p *Planner) suspend(r *run, res *zko.PlanResult) *Outcome {
	initial := r.outcome.InitialCheck

	r.outcome.Token = uuid.NewString()
	r.outcome.Confirmation = &Confirmation{
		Message:            res.Komunikat,
		PalletCount:        initial.PalletCount,
		TotalPieces:        initial.Totals.Pallets,
		Status:             initial.Status,
		RecommendOverwrite: initial.Status == zko.CheckNeedsFix,
		ExpiresAt:          p.now().Add(p.cfg.ConfirmationTTL),
	}

	out := r.snapshot()
	p.sessions.SetDefault(r.outcome.Token, r)
	metrics.PendingConfirmations.Inc()

	p.log.Info("ожидание подтверждения перезаписи",
		slog.String("run_id", r.outcome.RunID),
		slog.Int64("zko_id", r.req.OrderID),
		slog.Int("palety", initial.PalletCount),
	)
	return out
}

// Confirm завершает приостановленный прогон: accept=false отменяет без изменений,
// accept=true повторяет планирование с перезаписью и сверяет результат.
func (p *Planner) Confirm(ctx context.Context, token string, accept bool) (*Outcome, error) {
	const op = "planning.Planner.Confirm"

	v, ok := p.sessions.Get(token)
	if !ok {
		p.sessions.DeleteExpired()
		return nil, zko.NewNotFoundError(op, "Sesja potwierdzenia wygasła lub nie istnieje")
	}
	r := v.(*run)
	if !r.claimed.CompareAndSwap(false, true) {
		return nil, zko.NewNotFoundError(op, "Sesja potwierdzenia wygasła lub nie istnieje")
	}
	p.sessions.Delete(token)
	metrics.PendingConfirmations.Dec()
	defer p.guard.Unlock(r.req.OrderID)

	r.outcome.Token = ""

	var (
		out *Outcome
		err error
	)
	if accept {
		out, err = p.overwrite(ctx, r)
	} else {
		out, err = p.cancel(ctx, r)
	}

	p.finish(ctx, r)
	return out, err
}

// cancel возвращает состояние до планирования; палеты не трогаются.
func (p *Planner) cancel(ctx context.Context, r *run) (*Outcome, error) {
	const op = "planning.Planner.cancel"

	if err := p.event(ctx, r, eventCancel); err != nil {
		return nil, err
	}

	r.outcome.Check = r.outcome.InitialCheck
	pallets, err := p.remote.PalletDetails(ctx, r.req.OrderID)
	if err != nil {
		p.log.Warn("не удалось получить палеты после отмены",
			slog.String("op", op),
			slog.Int64("zko_id", r.req.OrderID),
			slog.String("error", err.Error()),
		)
		r.outcome.Warnings = append(r.outcome.Warnings, "Nie udało się odczytać palet: "+zko.UserMessage(err))
	} else {
		r.outcome.Pallets = pallets
	}

	return r.snapshot(), nil
}

func (p *Planner) overwrite(ctx context.Context, r *run) (*Outcome, error) {
	const op = "planning.Planner.overwrite"

	if err := p.event(ctx, r, eventOverwrite); err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)
	res, err := p.plan(ctx, r, true)
	if err != nil {
		return p.fail(ctx, r, err)
	}
	if res.NeedsConfirmation {
		return p.fail(ctx, r, zko.NewRemoteFault(op, 0, "Serwer ponownie żąda potwierdzenia mimo nadpisania"))
	}

	r.outcome.Plan = res
	if err := p.event(ctx, r, eventReplanned); err != nil {
		return nil, err
	}
	return p.verify(ctx, r)
}

// expire вызывается go-cache и срабатывает и на истечении TTL, и на Delete из Confirm.
// Во втором случае прогон уже забран и колбэк ничего не делает.
func (p *Planner) expire(token string, v interface{}) {
	r, ok := v.(*run)
	if !ok || !r.claimed.CompareAndSwap(false, true) {
		return
	}
	metrics.PendingConfirmations.Dec()
	defer p.guard.Unlock(r.req.OrderID)

	ctx := context.Background()
	if err := p.event(ctx, r, eventExpire); err != nil {
		return
	}
	r.outcome.Token = ""
	r.outcome.Warnings = append(r.outcome.Warnings, "Sesja potwierdzenia wygasła")

	p.log.Info("сессия подтверждения истекла",
		slog.String("run_id", r.outcome.RunID),
		slog.Int64("zko_id", r.req.OrderID),
	)
	p.finish(ctx, r)
}

// fail переводит прогон в FAILED. Ошибка возвращается вызывающему как есть.
func (p *Planner) fail(ctx context.Context, r *run, err error) (*Outcome, error) {
	r.err = err
	if evErr := p.event(ctx, r, eventFail); evErr != nil {
		return nil, evErr
	}
	p.log.Error("планирование прервано",
		slog.String("run_id", r.outcome.RunID),
		slog.Int64("zko_id", r.req.OrderID),
		slog.String("error", err.Error()),
	)
	return nil, err
}

// event выполняет переход. Отмена запроса не должна обрывать переход на полпути.
func (p *Planner) event(ctx context.Context, r *run, name string) error {
	const op = "planning.Planner.event"

	if err := r.machine.Event(context.WithoutCancel(ctx), name); err != nil {
		p.log.Error("недопустимый переход",
			slog.String("op", op),
			slog.String("event", name),
			slog.String("state", r.machine.Current()),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%s: %s: %w", op, name, err)
	}
	return nil
}

// finish пишет журнал и метрики. Ошибка журнала не влияет на результат прогона.
func (p *Planner) finish(ctx context.Context, r *run) {
	const op = "planning.Planner.finish"

	state := r.outcome.State
	metrics.PlanningRuns.WithLabelValues(string(state)).Inc()

	rec := storage.PlanningRun{
		RunID:       r.outcome.RunID,
		ZkoID:       r.req.OrderID,
		Operator:    r.req.Operator,
		State:       string(state),
		Overwrite:   r.overwrite,
		MaxHeightMM: r.req.MaxHeightMM,
		MaxPieces:   r.req.MaxPiecesPerPallet,
		PalletCount: len(r.outcome.Pallets),
		TotalPieces: zko.TotalPieces(r.outcome.Pallets),
		StartedAt:   r.started,
		FinishedAt:  p.now(),
	}
	if r.outcome.InitialCheck != nil {
		rec.InitialStatus = string(r.outcome.InitialCheck.Status)
	}
	if r.outcome.Check != nil {
		rec.FinalStatus = string(r.outcome.Check.Status)
	}
	if r.outcome.Plan != nil {
		rec.Message = r.outcome.Plan.Komunikat
	}
	if len(r.outcome.Warnings) > 0 {
		rec.Message = r.outcome.Warnings[len(r.outcome.Warnings)-1]
	}
	if r.err != nil {
		rec.Error = r.err.Error()
	}

	if p.journal == nil {
		return
	}

	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := p.journal.SaveRun(jctx, rec); err != nil {
		p.log.Error("не удалось записать прогон в журнал",
			slog.String("op", op),
			slog.String("run_id", rec.RunID),
			slog.String("error", err.Error()),
		)
	}
}
