package timing

import (
	"log"
	"reflect"

	"github.com/sarchlab/rwmem/sim/hooking"
)

// EventLogger is a hook that prints the event information.
type EventLogger struct {
	logger *log.Logger
}

// NewEventLogger returns a new EventLogger which writes into the logger.
func NewEventLogger(logger *log.Logger) *EventLogger {
	h := new(EventLogger)

	h.logger = logger

	return h
}

type named interface {
	Name() string
}

// Func writes the event information into the logger.
func (h *EventLogger) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	if comp, ok := evt.Handler().(named); ok {
		h.logger.Printf("cycle %d, %s -> %s",
			evt.Time(), reflect.TypeOf(evt), comp.Name())
		return
	}

	h.logger.Printf("cycle %d, %s", evt.Time(), reflect.TypeOf(evt))
}
