package model

import "time"

// JobRun 一次数仓任务触发的结果
type JobRun struct {
	JobID            int64     `json:"job_id"`
	RunID            int64     `json:"run_id"`
	NumberInJob      int64     `json:"number_in_job"`
	IdempotencyToken string    `json:"idempotency_token"`
	TriggeredAt      time.Time `json:"triggered_at"`
}
