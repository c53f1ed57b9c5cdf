package engine

// EventName identifies an event channel.
type EventName string

const (
	EventNaturalDrop  EventName = "naturalDrop"
	EventRowCleared   EventName = "rowCleared"
	EventUpdate       EventName = "update"
	EventStart        EventName = "start"
	EventEnd          EventName = "end"
	EventHold         EventName = "hold"
	EventPiecePlaced  EventName = "piecePlaced"
	EventQueueChange  EventName = "queueChange"
	EventLevelChange  EventName = "levelChange"
	EventScoreChange  EventName = "scoreChange"
	EventStatusChange EventName = "statusChange"
)

// Payload is the data carried by an event. Each payload type belongs to
// exactly one channel.
type Payload interface {
	EventName() EventName
}

// NaturalDrop is dispatched before each gravity step. Preventing it skips
// the step.
type NaturalDrop struct {
	Cell bool
}

// RowCleared reports the rows removed by one placement.
type RowCleared struct {
	TotalRowsCleared int
	ClearedThisPlace int
	Rows             []int
	TSpin            bool
}

// Update fires after every update pass.
type Update struct{}

// Started fires when a session starts.
type Started struct{}

// Ended fires when a session ends.
type Ended struct{}

// HoldSwap reports a hold: Previous went into the hold slot, Next is the
// new current piece.
type HoldSwap struct {
	Previous Cell
	Next     Cell
}

// PiecePlaced fires right before a piece is locked into the board.
type PiecePlaced struct {
	Type Cell
}

// QueueChange carries the types in the next-queue, front first.
type QueueChange struct {
	Queue []Cell
}

// LevelChange fires when the level policy moves to a new level.
type LevelChange struct {
	NewLevel int
}

// ScoreChange fires when a placement changes the score.
type ScoreChange struct {
	OldScore int
	NewScore int
}

// StatusChange fires on every session status transition.
type StatusChange struct {
	Old Status
	New Status
}

func (NaturalDrop) EventName() EventName  { return EventNaturalDrop }
func (RowCleared) EventName() EventName   { return EventRowCleared }
func (Update) EventName() EventName       { return EventUpdate }
func (Started) EventName() EventName      { return EventStart }
func (Ended) EventName() EventName        { return EventEnd }
func (HoldSwap) EventName() EventName     { return EventHold }
func (PiecePlaced) EventName() EventName  { return EventPiecePlaced }
func (QueueChange) EventName() EventName  { return EventQueueChange }
func (LevelChange) EventName() EventName  { return EventLevelChange }
func (ScoreChange) EventName() EventName  { return EventScoreChange }
func (StatusChange) EventName() EventName { return EventStatusChange }

// Event is what a listener receives.
type Event struct {
	Name    EventName
	Payload Payload

	prevented bool
}

// PreventDefault cancels the default action of a cancelable event.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

// Listener handles events of one channel.
type Listener func(e *Event)

// Dispatcher holds at most one listener per channel. Registering a second
// listener for a channel replaces the first.
type Dispatcher struct {
	listeners map[EventName]Listener
}

// NewDispatcher creates a dispatcher with no listeners.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[EventName]Listener)}
}

// On sets the listener for a channel. A nil listener removes it.
func (d *Dispatcher) On(name EventName, l Listener) {
	if l == nil {
		d.Off(name)
		return
	}
	d.listeners[name] = l
}

// Off removes the listener for a channel.
func (d *Dispatcher) Off(name EventName) {
	delete(d.listeners, name)
}

// Dispatch delivers payload to its channel's listener and reports whether
// the listener prevented the default action. Without a listener it is a
// no-op that returns false.
func (d *Dispatcher) Dispatch(p Payload) bool {
	l, ok := d.listeners[p.EventName()]
	if !ok {
		return false
	}
	e := &Event{Name: p.EventName(), Payload: p}
	l(e)
	return e.prevented
}
