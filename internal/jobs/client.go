package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"MatchBoard/internal/config"
	"MatchBoard/internal/model"
	"MatchBoard/internal/utils/httpclient"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const runNowPath = "/api/2.1/jobs/run-now"

// ErrNotConfigured 未配置任务地址、令牌或任务 ID
var ErrNotConfigured = errors.New("jobs: 未配置 base_url/token/job_id")

// Client 数仓任务 API 客户端，用于触发比赛事实表刷新
type Client struct {
	baseURL    string
	token      string
	jobID      int64
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient 创建任务客户端
func NewClient(cfg config.JobsConfig, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		token:      cfg.Token,
		jobID:      cfg.JobID,
		httpClient: httpclient.NewHTTPClient(cfg.HTTP(), logger),
		logger:     logger,
	}
}

// runNowRequest run-now 请求体
type runNowRequest struct {
	JobID            int64  `json:"job_id"`
	IdempotencyToken string `json:"idempotency_token"`
}

// runNowResponse run-now 响应
type runNowResponse struct {
	RunID       int64  `json:"run_id"`
	NumberInJob int64  `json:"number_in_job"`
	ErrorCode   string `json:"error_code,omitempty"`
	Message     string `json:"message,omitempty"`
}

// RunNow 触发一次任务运行，每次调用使用新的幂等令牌
func (c *Client) RunNow(ctx context.Context) (*model.JobRun, error) {
	if c.baseURL == "" || c.token == "" || c.jobID == 0 {
		return nil, ErrNotConfigured
	}

	token := uuid.New().String()
	body, err := json.Marshal(runNowRequest{JobID: c.jobID, IdempotencyToken: token})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+runNowPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("run-now HTTP 请求失败")
		return nil, fmt.Errorf("jobs: 请求失败: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	var result runNowResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		c.logger.WithError(err).WithField("body", string(respBody)).Warn("run-now 响应解析失败")
		return nil, fmt.Errorf("jobs: 响应解析失败(%d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := result.Message
		if msg == "" {
			msg = string(respBody)
		}
		c.logger.WithFields(logrus.Fields{
			"status":     resp.StatusCode,
			"error_code": result.ErrorCode,
		}).Warn("run-now 返回错误")
		return nil, fmt.Errorf("jobs: 错误 %d %s: %s", resp.StatusCode, result.ErrorCode, msg)
	}

	run := &model.JobRun{
		JobID:            c.jobID,
		RunID:            result.RunID,
		NumberInJob:      result.NumberInJob,
		IdempotencyToken: token,
		TriggeredAt:      time.Now().UTC(),
	}
	c.logger.WithFields(logrus.Fields{
		"job_id": run.JobID,
		"run_id": run.RunID,
	}).Info("数仓任务已触发")
	return run, nil
}
