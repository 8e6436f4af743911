package audit

import "log"

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Sink persists one audit entry. *Logger is the production sink.
type Sink interface {
	Log(userID *uint, action string, entity string, entityID *uint, metadata any) error
}

type Dispatcher struct {
	logger Sink
	queue  chan Event
}

func NewDispatcher(logger Sink) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Println("audit error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// queue full: drop the event rather than block the request path
		log.Println("audit queue full, dropping event")
	}
}
