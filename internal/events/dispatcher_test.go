package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishInvokesSubscribersForAction(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(ActionReportCreate, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	d.Subscribe(ActionItemCreate, func(_ context.Context, e Event) error {
		t.Fatal("handler for another action must not fire")
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "evt-1", Action: ActionReportCreate, CompanyCode: "C001"})
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "evt-1", got[0].ID)
}

func TestPublishFailingHandlerDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	reached := false
	d.Subscribe(ActionAccountDelete, func(context.Context, Event) error {
		return errors.New("audit sink down")
	})
	d.Subscribe(ActionAccountDelete, func(context.Context, Event) error {
		reached = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Action: ActionAccountDelete})
	assert.NoError(t, err)
	assert.True(t, reached)
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Action: ActionCompanyCreate}))
}

func TestAuditedActionsCoverEveryMutation(t *testing.T) {
	actions := AuditedActions()
	assert.Len(t, actions, 21)

	seen := map[Action]bool{}
	for _, action := range actions {
		assert.False(t, seen[action], "duplicate audited action %s", action)
		seen[action] = true
	}
	assert.True(t, seen[ActionReportStatusUpdate])
	assert.True(t, seen[ActionItemImport])
	assert.True(t, seen[ActionPartnerDelete])
	assert.True(t, seen[ActionSettingUpdate])
}
