package jobs

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVerificationEmailTask(t *testing.T) {
	task, err := NewVerificationEmailTask(VerificationEmailPayload{To: "a@x.com", Token: "tok-123"})
	require.NoError(t, err)
	assert.Equal(t, TaskTypeVerificationEmail, task.Type())

	var payload VerificationEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "a@x.com", payload.To)
	assert.Equal(t, "tok-123", payload.Token)
}

func TestEnqueueVerificationEmail(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewClient(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer func() {
		_ = client.Close()
	}()

	info, err := client.EnqueueVerificationEmail(context.Background(), VerificationEmailPayload{To: "a@x.com", Token: "tok-123"})
	require.NoError(t, err)
	assert.Equal(t, TaskTypeVerificationEmail, info.Type)
	assert.Equal(t, QueueDefault, info.Queue)
}

func TestVerificationMessageEmbedsLink(t *testing.T) {
	sender := NewSMTPSender(SMTPConfig{
		From:    "no-reply@test.local",
		BaseURL: "http://localhost:8080/",
	})

	msg := string(sender.message(VerificationEmailPayload{To: "a@x.com", Token: "tok-123"}))
	assert.Contains(t, msg, "To: a@x.com")
	assert.Contains(t, msg, "Subject: Welcome")
	assert.Contains(t, msg, "http://localhost:8080/api/users/verify/tok-123")
}
