package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"MatchBoard/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTrigger struct {
	run *model.JobRun
	err error
}

func (f *fakeTrigger) RunNow(ctx context.Context) (*model.JobRun, error) {
	return f.run, f.err
}

func TestRefreshService_InvalidatesSnapshot(t *testing.T) {
	src := &fakeSource{table: factsTable()}
	dashboard := newService(src, time.Hour)
	_, err := dashboard.Matches(context.Background())
	require.NoError(t, err)

	svc := NewRefreshService(&fakeTrigger{run: &model.JobRun{RunID: 11}}, dashboard, logrus.New())
	run, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(11), run.RunID)

	_, err = dashboard.Matches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestRefreshService_TriggerError(t *testing.T) {
	src := &fakeSource{table: factsTable()}
	dashboard := newService(src, time.Hour)
	_, err := dashboard.Matches(context.Background())
	require.NoError(t, err)

	boom := errors.New("401")
	svc := NewRefreshService(&fakeTrigger{err: boom}, dashboard, logrus.New())
	_, err = svc.Refresh(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = dashboard.Matches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}
