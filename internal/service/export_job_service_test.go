package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/school-erp-api/internal/models"
	"github.com/noah-isme/school-erp-api/internal/repository"
	appErrors "github.com/noah-isme/school-erp-api/pkg/errors"
	"github.com/noah-isme/school-erp-api/pkg/jobs"
)

type recordingQueue struct {
	mu   sync.Mutex
	jobs []jobs.Job
	err  error
}

func (q *recordingQueue) Enqueue(job jobs.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

type failingGenerator struct{ err error }

func (g failingGenerator) Generate(context.Context, *models.ExportJob) (*ExportResult, error) {
	return nil, g.err
}

func TestExportJobServiceLifecycle(t *testing.T) {
	store := repository.NewMemoryStore()
	exporter := newExportServiceForTest(t, store)
	queue := &recordingQueue{}
	svc := NewExportJobService(store, queue, exporter, nil, zap.NewNop(), ExportJobServiceConfig{})
	worker := NewExportWorker(store, exporter, nil, 2, zap.NewNop())
	ctx := context.Background()

	created, err := svc.CreateJob(ctx, CreateExportRequest{Type: models.ExportTypeStudents, Format: models.ExportFormatCSV}, "admin001")
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusQueued, created.Status)
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, created.ID, queue.jobs[0].ID)

	require.NoError(t, worker.Handle(ctx, queue.jobs[0]))

	status, err := svc.GetStatus(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusFinished, status.Status)
	assert.Equal(t, 100, status.Progress)
	require.NotNil(t, status.ResultURL)
	assert.Nil(t, status.Error)

	download, err := svc.ResolveDownload(ctx, extractToken(*status.ResultURL))
	require.NoError(t, err)
	defer download.File.Close()
	assert.Equal(t, "students_20240720_093000.csv", download.Filename)
	assert.Equal(t, "text/csv", download.ContentType)
}

func TestExportJobServiceCreateValidation(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewExportJobService(store, &recordingQueue{}, newExportServiceForTest(t, store), nil, nil, ExportJobServiceConfig{})

	_, err := svc.CreateJob(context.Background(), CreateExportRequest{Type: "grades", Format: models.ExportFormatCSV}, "admin001")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportJobServiceEnqueueFailureMarksJobFailed(t *testing.T) {
	store := repository.NewMemoryStore()
	queue := &recordingQueue{err: jobs.ErrQueueStopped}
	svc := NewExportJobService(store, queue, newExportServiceForTest(t, store), nil, nil, ExportJobServiceConfig{})

	_, err := svc.CreateJob(context.Background(), CreateExportRequest{Type: models.ExportTypeNotes, Format: models.ExportFormatPDF}, "admin001")
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, appErrors.FromError(err).Status)

	failed, err := store.ListFinishedExportJobsBefore(context.Background(), time.Now().Add(time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, failed)
	queued, err := store.ListQueuedExportJobs(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, queued)
}

func TestExportJobServiceStatusNotFound(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewExportJobService(store, &recordingQueue{}, newExportServiceForTest(t, store), nil, nil, ExportJobServiceConfig{})

	_, err := svc.GetStatus(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestExportJobServiceRejectsBadTokens(t *testing.T) {
	store := repository.NewMemoryStore()
	exporter := newExportServiceForTest(t, store)
	svc := NewExportJobService(store, &recordingQueue{}, exporter, nil, nil, ExportJobServiceConfig{})
	ctx := context.Background()

	_, err := svc.ResolveDownload(ctx, "garbage")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, appErrors.FromError(err).Status)

	job := &models.ExportJob{Type: models.ExportTypeStudents, Format: models.ExportFormatCSV}
	require.NoError(t, store.CreateExportJob(ctx, job))
	result, err := exporter.Generate(ctx, job)
	require.NoError(t, err)

	// signed for the job but never attached to it
	_, err = svc.ResolveDownload(ctx, result.Token)
	require.Error(t, err)
	assert.Equal(t, "token mismatch", appErrors.FromError(err).Message)
}

func TestExportWorkerRetriesThenFails(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()
	job := &models.ExportJob{Type: models.ExportTypeAttendance, Format: models.ExportFormatCSV}
	require.NoError(t, store.CreateExportJob(ctx, job))
	worker := NewExportWorker(store, failingGenerator{err: errors.New("disk full")}, nil, 1, nil)

	err := worker.Handle(ctx, jobs.Job{ID: job.ID, Attempt: 0})
	require.Error(t, err)
	record, err := store.GetExportJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusQueued, record.Status)
	assert.Equal(t, "disk full", *record.ErrorMessage)

	err = worker.Handle(ctx, jobs.Job{ID: job.ID, Attempt: 1})
	require.Error(t, err)
	record, err = store.GetExportJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusFailed, record.Status)
	assert.Equal(t, 100, record.Progress)
	assert.NotNil(t, record.FinishedAt)
}

func TestExportJobServiceRecoverPendingJobs(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		require.NoError(t, store.CreateExportJob(ctx, &models.ExportJob{Type: models.ExportTypeStudents, Format: models.ExportFormatCSV}))
	}
	queue := &recordingQueue{}
	svc := NewExportJobService(store, queue, newExportServiceForTest(t, store), nil, nil, ExportJobServiceConfig{})

	svc.RecoverPendingJobs(ctx)
	assert.Len(t, queue.jobs, 2)
}

func TestExportJobServiceCleanupExpired(t *testing.T) {
	store := repository.NewMemoryStore()
	exporter := newExportServiceForTest(t, store)
	queue := &recordingQueue{}
	svc := NewExportJobService(store, queue, exporter, nil, nil, ExportJobServiceConfig{ResultTTL: time.Nanosecond})
	worker := NewExportWorker(store, exporter, nil, 0, nil)
	ctx := context.Background()

	created, err := svc.CreateJob(ctx, CreateExportRequest{Type: models.ExportTypeStudents, Format: models.ExportFormatCSV}, "admin001")
	require.NoError(t, err)
	require.NoError(t, worker.Handle(ctx, queue.jobs[0]))
	status, err := svc.GetStatus(ctx, created.ID)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	svc.cleanupExpired(ctx)

	_, err = svc.ResolveDownload(ctx, extractToken(*status.ResultURL))
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestExportJobServiceFullQueueAnswersUnavailable(t *testing.T) {
	store := repository.NewMemoryStore()
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	queue := jobs.NewQueue("exports", func(context.Context, jobs.Job) error {
		started <- struct{}{}
		<-release
		return nil
	}, jobs.QueueConfig{Workers: 1, BufferSize: 1})
	queue.Start(context.Background())
	defer queue.Stop()
	defer close(release)

	svc := NewExportJobService(store, queue, newExportServiceForTest(t, store), nil, nil, ExportJobServiceConfig{})
	ctx := context.Background()
	req := CreateExportRequest{Type: models.ExportTypeStudents, Format: models.ExportFormatCSV}

	_, err := svc.CreateJob(ctx, req, "admin01")
	require.NoError(t, err)
	<-started
	_, err = svc.CreateJob(ctx, req, "admin01")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := svc.CreateJob(ctx, req, "admin01")
		done <- err
	}()
	select {
	case err = <-done:
	case <-time.After(time.Second):
		t.Fatal("CreateJob blocked on a full queue")
	}
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, appErrors.FromError(err).Status)
	assert.ErrorIs(t, err, jobs.ErrQueueFull)

	queued, err := store.ListQueuedExportJobs(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, queued, 2)
}
