package audit

import "log"

// Ações auditadas pelo engine.
const (
	ActionHoldCreated      = "hold_created"
	ActionHoldConflict     = "hold_conflict"
	ActionHoldReleased     = "hold_released"
	ActionHoldConverted    = "hold_converted"
	ActionHoldsExpired     = "holds_expired"
	ActionBookingCancelled = "booking_cancelled"
	ActionWaitlistJoined   = "waitlist_joined"
	ActionWaitlistLeft     = "waitlist_left"
	ActionWaitlistPromoted = "waitlist_promoted"
	ActionRuleUpserted     = "availability_rule_upserted"
	ActionTimeOffCreated   = "time_off_created"
)

type Event struct {
	TenantID uint
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100), // buffer seguro
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if d.logger == nil {
			continue
		}
		if err := d.logger.Log(
			ev.TenantID,
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
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		log.Println("audit queue full, dropping event")
	}
}
