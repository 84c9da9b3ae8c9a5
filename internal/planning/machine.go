package planning

import (
	"context"
	"log/slog"

	"github.com/looplab/fsm"
)

type State string

const (
	StateCheckingInitial         State = "CHECKING_INITIAL"
	StateAlreadyOK               State = "ALREADY_OK"
	StatePlanning                State = "PLANNING"
	StatePlanningDone            State = "PLANNING_DONE"
	StateVerifying               State = "VERIFYING"
	StateAwaitingConfirmation    State = "AWAITING_CONFIRMATION"
	StateCancelled               State = "CANCELLED"
	StateReplanningWithOverwrite State = "REPLANNING_WITH_OVERWRITE"
	StateVerifyingAfterOverwrite State = "VERIFYING_AFTER_OVERWRITE"
	StateDone                    State = "DONE"
	StateFailed                  State = "FAILED"
)

// Terminal: прогон больше не продолжится.
func (s State) Terminal() bool {
	switch s {
	case StateAlreadyOK, StateCancelled, StateDone, StateFailed:
		return true
	}
	return false
}

const (
	eventConsistent           = "consistent"
	eventNeedsFix             = "needs_fix"
	eventConfirmationRequired = "confirmation_required"
	eventPlanned              = "planned"
	eventVerify               = "verify"
	eventVerified             = "verified"
	eventCancel               = "cancel"
	eventExpire               = "expire"
	eventOverwrite            = "overwrite"
	eventReplanned            = "replanned"
	eventFail                 = "fail"
)

var transitions = fsm.Events{
	{Name: eventConsistent, Src: []string{string(StateCheckingInitial)}, Dst: string(StateAlreadyOK)},
	{Name: eventNeedsFix, Src: []string{string(StateCheckingInitial)}, Dst: string(StatePlanning)},
	{Name: eventConfirmationRequired, Src: []string{string(StatePlanning)}, Dst: string(StateAwaitingConfirmation)},
	{Name: eventPlanned, Src: []string{string(StatePlanning)}, Dst: string(StatePlanningDone)},
	{Name: eventVerify, Src: []string{string(StatePlanningDone)}, Dst: string(StateVerifying)},
	{Name: eventVerified, Src: []string{string(StateVerifying), string(StateVerifyingAfterOverwrite)}, Dst: string(StateDone)},
	{Name: eventCancel, Src: []string{string(StateAwaitingConfirmation)}, Dst: string(StateCancelled)},
	{Name: eventExpire, Src: []string{string(StateAwaitingConfirmation)}, Dst: string(StateCancelled)},
	{Name: eventOverwrite, Src: []string{string(StateAwaitingConfirmation)}, Dst: string(StateReplanningWithOverwrite)},
	{Name: eventReplanned, Src: []string{string(StateReplanningWithOverwrite)}, Dst: string(StateVerifyingAfterOverwrite)},
	{Name: eventFail, Src: []string{
		string(StateCheckingInitial),
		string(StatePlanning),
		string(StatePlanningDone),
		string(StateVerifying),
		string(StateReplanningWithOverwrite),
		string(StateVerifyingAfterOverwrite),
	}, Dst: string(StateFailed)},
}

// newMachine создаёт автомат одного прогона. onEnter вызывается на каждом входе в состояние.
func newMachine(log *slog.Logger, orderID int64, onEnter func(State)) *fsm.FSM {
	return fsm.NewFSM(
		string(StateCheckingInitial),
		transitions,
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				log.Debug("переход состояния планирования",
					slog.Int64("zko_id", orderID),
					slog.String("event", e.Event),
					slog.String("from", e.Src),
					slog.String("to", e.Dst),
				)
				onEnter(State(e.Dst))
			},
		},
	)
}
