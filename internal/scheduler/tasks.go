package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskLeadScoreRescore = "leads.score.rescore"

type LeadScoreRescorePayload struct {
	LeadScoreID string `json:"leadScoreId"`
	TenantID    string `json:"tenantId"`
}

func NewLeadScoreRescoreTask(payload LeadScoreRescorePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadScoreRescore, data), nil
}

func ParseLeadScoreRescorePayload(task *asynq.Task) (LeadScoreRescorePayload, error) {
	var payload LeadScoreRescorePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadScoreRescorePayload{}, err
	}
	return payload, nil
}
