package timing

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/sarchlab/rwmem/sim/hooking"
)

// A SerialEngine is an Engine that always runs events one after another.
type SerialEngine struct {
	hooking.HookableBase

	timeLock sync.RWMutex
	now      VTimeInCycle

	queue          eventQueue
	secondaryQueue eventQueue

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex

	singleRunLock sync.Mutex
}

// NewSerialEngine creates a SerialEngine.
func NewSerialEngine() *SerialEngine {
	e := new(SerialEngine)

	e.queue = newEventQueue()
	e.secondaryQueue = newEventQueue()

	return e
}

// Schedule registers an event to happen in the future.
func (e *SerialEngine) Schedule(evt Event) {
	now := e.readNow()
	if evt.Time() < now {
		panic(fmt.Sprintf(
			"timing: cannot schedule event in the past, evt %s @ %d, now %d",
			reflect.TypeOf(evt), evt.Time(), now,
		))
	}

	if evt.IsSecondary() {
		e.secondaryQueue.Push(evt)
		return
	}

	e.queue.Push(evt)
}

func (e *SerialEngine) readNow() VTimeInCycle {
	e.timeLock.RLock()
	t := e.now
	e.timeLock.RUnlock()
	return t
}

func (e *SerialEngine) writeNow(t VTimeInCycle) {
	e.timeLock.Lock()
	e.now = t
	e.timeLock.Unlock()
}

// Run processes all the events scheduled in the SerialEngine.
func (e *SerialEngine) Run() error {
	e.singleRunLock.Lock()
	defer e.singleRunLock.Unlock()

	for {
		if e.noMoreEvent() {
			return nil
		}

		e.runNextEvent()
	}
}

// RunUntil processes every event scheduled at or before the given cycle and
// leaves the current time at that cycle, even if no event is scheduled there.
func (e *SerialEngine) RunUntil(cycle VTimeInCycle) error {
	e.singleRunLock.Lock()
	defer e.singleRunLock.Unlock()

	for {
		if e.noMoreEvent() || e.peekNextEvent().Time() > cycle {
			if cycle > e.readNow() {
				e.writeNow(cycle)
			}
			return nil
		}

		e.runNextEvent()
	}
}

func (e *SerialEngine) runNextEvent() {
	e.pauseLock.Lock()

	evt := e.nextEvent()
	now := e.readNow()
	if evt.Time() < now {
		panic(fmt.Sprintf(
			"timing: cannot run event in the past, evt %s @ %d, now %d",
			reflect.TypeOf(evt), evt.Time(), now,
		))
	}

	e.writeNow(evt.Time())

	hookCtx := hooking.HookCtx{
		Domain: e,
		Pos:    HookPosBeforeEvent,
		Item:   evt,
	}
	e.InvokeHook(hookCtx)

	handler := evt.Handler()
	_ = handler.Handle(evt)

	hookCtx.Pos = HookPosAfterEvent
	e.InvokeHook(hookCtx)

	e.pauseLock.Unlock()
}

func (e *SerialEngine) noMoreEvent() bool {
	return e.queue.Len() == 0 && e.secondaryQueue.Len() == 0
}

func (e *SerialEngine) peekNextEvent() Event {
	if e.queue.Len() == 0 {
		return e.secondaryQueue.Peek()
	}

	if e.secondaryQueue.Len() == 0 {
		return e.queue.Peek()
	}

	primary := e.queue.Peek()
	secondary := e.secondaryQueue.Peek()

	if primary.Time() <= secondary.Time() {
		return primary
	}

	return secondary
}

func (e *SerialEngine) nextEvent() Event {
	if e.queue.Len() == 0 {
		return e.secondaryQueue.Pop()
	}

	if e.secondaryQueue.Len() == 0 {
		return e.queue.Pop()
	}

	primary := e.queue.Peek()
	secondary := e.secondaryQueue.Peek()

	if primary.Time() <= secondary.Time() {
		e.queue.Pop()
		return primary
	}

	e.secondaryQueue.Pop()
	return secondary
}

// Pause prevents the SerialEngine from triggering more events.
func (e *SerialEngine) Pause() {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	if e.isPaused {
		return
	}

	e.pauseLock.Lock()
	e.isPaused = true
}

// Continue allows the SerialEngine to trigger more events.
func (e *SerialEngine) Continue() {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	if !e.isPaused {
		return
	}

	e.pauseLock.Unlock()
	e.isPaused = false
}

// Now returns the cycle of the most recently executed event.
func (e *SerialEngine) Now() VTimeInCycle {
	return e.readNow()
}
