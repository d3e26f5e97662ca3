// Package notify entrega eventos opacos ao colaborador de
// notificação (e-mail/SMS ficam do outro lado da interface).
// Fire-and-forget: nunca bloqueia a mutação que originou o evento.
package notify

import "log"

const (
	EventWaitlistPromoted = "waitlist_promoted"
	EventHoldExpired      = "hold_expired"
)

type Event struct {
	Type     string         `json:"type"`
	TenantID uint           `json:"tenant_id"`
	Payload  map[string]any `json:"payload"`
}

// Notifier é implementado pelo canal concreto escolhido na
// configuração. O engine não pergunta qual.
type Notifier interface {
	Notify(ev Event) error
}

// LogNotifier é o fallback de desenvolvimento.
type LogNotifier struct{}

func (LogNotifier) Notify(ev Event) error {
	log.Printf("notify: %s tenant=%d payload=%v", ev.Type, ev.TenantID, ev.Payload)
	return nil
}

// ===============================
// Dispatcher
// ===============================

type Dispatcher struct {
	notifier Notifier
	queue    chan Event
}

func NewDispatcher(n Notifier) *Dispatcher {
	d := &Dispatcher{
		notifier: n,
		queue:    make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.notifier.Notify(ev); err != nil {
			log.Println("notify error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		log.Println("notify queue full, dropping event")
	}
}
