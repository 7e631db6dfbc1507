package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeVerificationEmail is the task type for account verification mail.
	TaskTypeVerificationEmail = "mail:verification"
)

// VerificationEmailPayload describes one verification message to deliver.
type VerificationEmailPayload struct {
	To    string `json:"to"`
	Token string `json:"token"`
}

// NewVerificationEmailTask constructs an Asynq task.
func NewVerificationEmailTask(payload VerificationEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeVerificationEmail, data), nil
}
