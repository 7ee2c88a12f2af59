package testkit

import (
	"context"
	"sync"
	"time"

	"TravelLedger/pkg/amqp"
	"TravelLedger/pkg/redis"
)

type Redis struct {
	mu     sync.Mutex
	Values map[string]string
	Err    error
}

func NewRedis() *Redis {
	return &Redis{Values: map[string]string{}}
}

func (r *Redis) Set(_ context.Context, key string, value string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Values[key] = value
	return nil
}

func (r *Redis) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return "", r.Err
	}
	v, ok := r.Values[key]
	if !ok {
		return "", redis.ErrCacheMiss
	}
	return v, nil
}

func (r *Redis) Del(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	delete(r.Values, key)
	return nil
}

func (r *Redis) Has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.Values[key]
	return ok
}

type SentInvitation struct {
	To          string
	InviterName string
	TripName    string
	Token       string
}

type Mailer struct {
	mu   sync.Mutex
	Sent []SentInvitation
	Err  error
}

func (m *Mailer) SendTripInvitation(to string, inviterName string, tripName string, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentInvitation{To: to, InviterName: inviterName, TripName: tripName, Token: token})
	return nil
}

type Publisher struct {
	mu     sync.Mutex
	Events []amqp.ExpenseEvent
	Err    error
}

func (p *Publisher) PublishExpenseEvent(_ context.Context, event amqp.ExpenseEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, event)
	return nil
}

func (p *Publisher) Close() error {
	return nil
}

func (p *Publisher) Types() []amqp.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]amqp.EventType, 0, len(p.Events))
	for _, e := range p.Events {
		types = append(types, e.Type)
	}
	return types
}
