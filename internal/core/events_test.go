package core

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"restaurantcore/pkg/domain"
)

type capturePublisher struct {
	mu     sync.Mutex
	queues []string
	events []ChangeEvent
	err    error
}

func (p *capturePublisher) Publish(_ context.Context, queueName string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	var event ChangeEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}
	p.queues = append(p.queues, queueName)
	p.events = append(p.events, event)
	return nil
}

func TestChangeEventsCollapsePerRecord(t *testing.T) {
	changes := []domain.Change{
		{Entity: domain.EntityDish, Action: domain.ActionCreate, ID: 1},
		{Entity: domain.EntityIngredient, Action: domain.ActionUpdate, ID: 7},
		{Entity: domain.EntityDish, Action: domain.ActionUpdate, ID: 1},
		{Entity: domain.EntityIngredient, Action: domain.ActionDelete, ID: 7},
		{Entity: domain.EntityOrder, Action: domain.ActionUpdate, ID: 2},
	}
	events := changeEvents(changes, fixedNow)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %+v", events)
	}
	want := []struct {
		entity domain.EntityType
		action domain.Action
	}{
		{domain.EntityDish, domain.ActionCreate},
		{domain.EntityIngredient, domain.ActionDelete},
		{domain.EntityOrder, domain.ActionUpdate},
	}
	seen := make(map[string]bool)
	for i, w := range want {
		if events[i].Entity != w.entity || events[i].Action != w.action {
			t.Fatalf("event %d: got %s/%s", i, events[i].Entity, events[i].Action)
		}
		if events[i].ID == "" || seen[events[i].ID] {
			t.Fatalf("event ids must be unique, got %q", events[i].ID)
		}
		seen[events[i].ID] = true
		if !events[i].OccurredAt.Equal(fixedNow) {
			t.Fatalf("unexpected timestamp %v", events[i].OccurredAt)
		}
	}
}

func TestServicePublishesCommittedChanges(t *testing.T) {
	pub := &capturePublisher{}
	svc := newTestService(t, WithPublisher(pub, ""))
	ctx := context.Background()
	person := must(svc.CreatePerson(ctx, PersonInput{Name: "Ada", Email: "ada@example.com"}))
	if _, err := svc.CreatePerson(ctx, PersonInput{Name: "Dup", Email: "ada@example.com"}); err == nil {
		t.Fatalf("expected conflict")
	}
	if len(pub.events) != 1 {
		t.Fatalf("rolled back writes must not publish, got %+v", pub.events)
	}
	if pub.queues[0] != DefaultEventQueue || pub.events[0].EntityID != person.ID || pub.events[0].Action != domain.ActionCreate {
		t.Fatalf("unexpected event %+v on %s", pub.events[0], pub.queues[0])
	}
	if _, err := svc.ListPersons(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pub.events) != 1 {
		t.Fatalf("reads must not publish")
	}
}

func TestPublishFailureIsLoggedNotReturned(t *testing.T) {
	obsCore, logs := observer.New(zapcore.InfoLevel)
	pub := &capturePublisher{err: errors.New("broker down")}
	svc := newTestService(t, WithPublisher(pub, "custom"), WithLogger(zap.New(obsCore).Sugar()))
	if _, err := svc.CreatePerson(context.Background(), PersonInput{Name: "Ada", Email: "ada@example.com"}); err != nil {
		t.Fatalf("publish failure must not fail the write: %v", err)
	}
	failures := logs.FilterMessage("publish change event").All()
	if len(failures) != 1 {
		t.Fatalf("expected one publish warning, got %d", len(failures))
	}
	if q, _ := failures[0].ContextMap()["queue"].(string); q != "custom" {
		t.Fatalf("expected queue field, got %+v", failures[0].ContextMap())
	}
	if persons, _ := svc.ListPersons(context.Background()); len(persons) != 1 {
		t.Fatalf("write must be committed")
	}
}

func TestRejectedOperationsLogWarnings(t *testing.T) {
	obsCore, logs := observer.New(zapcore.InfoLevel)
	svc := newTestService(t, WithLogger(zap.New(obsCore).Sugar()))
	if _, err := svc.GetDish(context.Background(), 9); err == nil {
		t.Fatalf("expected not found")
	}
	rejected := logs.FilterMessage("operation rejected").All()
	if len(rejected) != 1 || rejected[0].Level != zapcore.WarnLevel {
		t.Fatalf("expected one warning, got %+v", logs.All())
	}
	if op, _ := rejected[0].ContextMap()["operation"].(string); op != "dish.get" {
		t.Fatalf("unexpected operation field %q", op)
	}
}
