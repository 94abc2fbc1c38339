package notification

import (
	"context"
	"fmt"
	"sync"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/logger"
)

// Observer receives completed-operation events. Implementations persist
// their own record shape; delivery failures stay inside the observer
// boundary.
type Observer interface {
	Name() string
	Update(ctx context.Context, event domain.AccountEvent) error
}

// Subject fans one event out to every registered observer. Delivery is
// best-effort and order-independent: an error or panic inside one observer
// is logged and never reaches the caller or sibling observers.
type Subject struct {
	mu        sync.RWMutex
	observers []Observer
}

func NewSubject(observers ...Observer) *Subject {
	s := &Subject{}
	for _, o := range observers {
		s.Attach(o)
	}
	return s
}

// Attach registers an observer. Attaching the same observer name twice is a
// no-op, so wiring the full known set repeatedly is safe.
func (s *Subject) Attach(observer Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.observers {
		if existing.Name() == observer.Name() {
			return
		}
	}
	s.observers = append(s.observers, observer)
}

func (s *Subject) Detach(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.observers {
		if existing.Name() == name {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

func (s *Subject) NotifyObservers(ctx context.Context, event domain.AccountEvent) {
	s.mu.RLock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, observer := range observers {
		s.deliver(ctx, observer, event)
	}
}

func (s *Subject) deliver(ctx context.Context, observer Observer, event domain.AccountEvent) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("observer panicked during delivery", fmt.Errorf("panic: %v", r), logger.Fields{
				"observer":  observer.Name(),
				"eventType": string(event.Type),
			})
		}
	}()

	if err := observer.Update(ctx, event); err != nil {
		logger.Error("observer delivery failed", err, logger.Fields{
			"observer":      observer.Name(),
			"eventType":     string(event.Type),
			"accountNumber": event.Account.AccountNumber,
		})
	}
}
