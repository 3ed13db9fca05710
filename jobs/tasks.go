package jobs

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskApprovalDigest summarises pending approvals per project.
	TaskApprovalDigest = "approvals:digest"
	// TaskSettingsWarmup pre-loads workflow settings into the cache.
	TaskSettingsWarmup = "settings:warmup"
)

// ApprovalDigestPayload scopes a digest run. A nil ProjectID covers
// every active project.
type ApprovalDigestPayload struct {
	ProjectID *uuid.UUID `json:"project_id,omitempty"`
}

// NewApprovalDigestTask constructs an approval digest task.
func NewApprovalDigestTask(payload ApprovalDigestPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskApprovalDigest, data), nil
}

// NewSettingsWarmupTask constructs a cache warmup task.
func NewSettingsWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskSettingsWarmup, nil)
}
