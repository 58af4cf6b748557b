package mqtt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"elderguard-data/internal/service"
)

type fakeFallTrigger struct {
	userID   string
	location string
	calls    int
}

func (f *fakeFallTrigger) TriggerFallAlert(ctx context.Context, userID, location string) (*service.TriggerFallAlertResponse, error) {
	f.userID = userID
	f.location = location
	f.calls++
	return &service.TriggerFallAlertResponse{Status: "alert_sent"}, nil
}

func TestHandleMessage_TriggersAlert(t *testing.T) {
	trigger := &fakeFallTrigger{}
	listener := NewFallListener(trigger, "elderguard/fall", zap.NewNop())

	err := listener.HandleMessage("elderguard/fall", []byte(`{"user_id":"user-1","location":"Bathroom"}`))

	require.NoError(t, err)
	assert.Equal(t, 1, trigger.calls)
	assert.Equal(t, "user-1", trigger.userID)
	assert.Equal(t, "Bathroom", trigger.location)
}

func TestHandleMessage_InvalidPayload(t *testing.T) {
	trigger := &fakeFallTrigger{}
	listener := NewFallListener(trigger, "elderguard/fall", zap.NewNop())

	err := listener.HandleMessage("elderguard/fall", []byte(`not json`))

	assert.Error(t, err)
	assert.Equal(t, 0, trigger.calls)
}

func TestHandleMessage_MissingUserID(t *testing.T) {
	trigger := &fakeFallTrigger{}
	listener := NewFallListener(trigger, "elderguard/fall", zap.NewNop())

	err := listener.HandleMessage("elderguard/fall", []byte(`{"location":"Kitchen"}`))

	assert.Error(t, err)
	assert.Equal(t, 0, trigger.calls)
}
