package job

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/submaker/backend/internal/db"
)

func newTestQueue(t *testing.T) *JobQueue {
	t.Helper()
	database, err := db.NewSQLite(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	q := NewJobQueue(database.DB())
	t.Cleanup(q.Stop)
	return q
}

// waitForStatus polls until the job reaches one of the wanted statuses.
func waitForStatus(t *testing.T, q *JobQueue, id string, want ...JobStatus) *Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		j, err := q.GetJob(id)
		if err != nil {
			t.Fatalf("get job: %v", err)
		}
		for _, s := range want {
			if j.Status == s {
				return j
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	j, _ := q.GetJob(id)
	t.Fatalf("job %s stuck in status %s, wanted %v", id, j.Status, want)
	return nil
}

func TestEnqueueAndComplete(t *testing.T) {
	q := newTestQueue(t)
	q.RegisterHandler(JobSubtitle, func(ctx context.Context, j *Job, report Reporter) error {
		report.MaxProgress(3)
		for i := 1; i <= 3; i++ {
			report.Progress(float64(i))
		}
		report.Message("Complete! Successfully processed 3 out of 3 segments.")
		j.Result = json.RawMessage(`{"output_path":"talk.srt"}`)
		return nil
	})

	j, err := q.Enqueue(JobSubtitle, "talk.mp3", SubtitleParams{TargetLang: "en-US"})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	done := waitForStatus(t, q, j.ID, StatusCompleted)
	if done.Progress != 3 {
		t.Errorf("progress = %v, want 3", done.Progress)
	}
	if done.MaxProgress != 3 {
		t.Errorf("max progress = %v, want 3", done.MaxProgress)
	}
	if string(done.Result) != `{"output_path":"talk.srt"}` {
		t.Errorf("result = %s", done.Result)
	}
	if done.CompletedAt == nil {
		t.Error("completed_at not set")
	}
}

func TestFailedJobRecordsError(t *testing.T) {
	q := newTestQueue(t)
	q.RegisterHandler(JobSubtitle, func(ctx context.Context, j *Job, report Reporter) error {
		return fmt.Errorf("audio decode failed: exit status 1")
	})

	j, err := q.Enqueue(JobSubtitle, "talk.mp3", SubtitleParams{TargetLang: "en-US"})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	failed := waitForStatus(t, q, j.ID, StatusFailed)
	if failed.Error == "" {
		t.Error("error message not recorded")
	}
}

func TestCancelRunningJob(t *testing.T) {
	q := newTestQueue(t)
	started := make(chan struct{})
	q.RegisterHandler(JobSubtitle, func(ctx context.Context, j *Job, report Reporter) error {
		close(started)
		<-ctx.Done() // cooperative: a real run checks at segment boundaries
		return nil
	})

	j, err := q.Enqueue(JobSubtitle, "talk.mp3", SubtitleParams{TargetLang: "ta-IN"})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("job never started")
	}

	if err := q.CancelJob(j.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	waitForStatus(t, q, j.ID, StatusCancelled)
}

func TestRetryFailedJob(t *testing.T) {
	q := newTestQueue(t)
	attempts := 0
	q.RegisterHandler(JobSubtitle, func(ctx context.Context, j *Job, report Reporter) error {
		attempts++
		if attempts == 1 {
			return fmt.Errorf("connection refused")
		}
		return nil
	})

	j, err := q.Enqueue(JobSubtitle, "talk.mp3", SubtitleParams{TargetLang: "en-US"})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	waitForStatus(t, q, j.ID, StatusFailed)

	if err := q.RetryJob(j.ID); err != nil {
		t.Fatalf("retry: %v", err)
	}
	waitForStatus(t, q, j.ID, StatusCompleted)

	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestRetryRequiresTerminalFailure(t *testing.T) {
	q := newTestQueue(t)
	q.RegisterHandler(JobSubtitle, func(ctx context.Context, j *Job, report Reporter) error {
		return nil
	})

	j, err := q.Enqueue(JobSubtitle, "talk.mp3", SubtitleParams{TargetLang: "en-US"})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	waitForStatus(t, q, j.ID, StatusCompleted)

	if err := q.RetryJob(j.ID); err == nil {
		t.Error("retrying a completed job should fail")
	}
}

func TestListJobsNewestFirst(t *testing.T) {
	q := newTestQueue(t)
	q.RegisterHandler(JobSubtitle, func(ctx context.Context, j *Job, report Reporter) error {
		return nil
	})

	first, err := q.Enqueue(JobSubtitle, "a.mp3", SubtitleParams{TargetLang: "en-US"})
	if err != nil {
		t.Fatal(err)
	}
	waitForStatus(t, q, first.ID, StatusCompleted)
	time.Sleep(20 * time.Millisecond) // distinct created_at

	second, err := q.Enqueue(JobSubtitle, "b.mp3", SubtitleParams{TargetLang: "en-US"})
	if err != nil {
		t.Fatal(err)
	}
	waitForStatus(t, q, second.ID, StatusCompleted)

	jobs, err := q.ListJobs()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("len = %d, want 2", len(jobs))
	}
	if jobs[0].ID != second.ID {
		t.Errorf("newest job not first: %s", jobs[0].FilePath)
	}
}
