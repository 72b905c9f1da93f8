package main

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ledgerly/internal/shared/auth"
)

// DefaultRehashWorkers bounds concurrent bcrypt work.
const DefaultRehashWorkers = 4

var rehashTracer = otel.Tracer("ledgerly/admin")

type passwordStore interface {
	ListPasswords(ctx context.Context) (map[int64]string, error)
	// ReplacePassword writes newHash only while the stored value still equals old.
	ReplacePassword(ctx context.Context, id int64, old, newHash string) (bool, error)
}

// RehashResult summarises a rehash-passwords run.
type RehashResult struct {
	UsersChecked int
	Rehashed     int
	Skipped      int // changed by someone else between listing and writing
	Errors       []string
}

type rehashJob struct {
	userID   int64
	password string
}

type rehashWorkerResult struct {
	rehashed bool
	skipped  bool
	err      error
}

// rehashPasswords replaces every stored password that is not already a bcrypt
// hash. Already-hashed values are left untouched, so reruns are no-ops.
func rehashPasswords(ctx context.Context, store passwordStore, workers int, dryRun bool) (*RehashResult, error) {
	passwords, err := store.ListPasswords(ctx)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = DefaultRehashWorkers
	}

	ids := make([]int64, 0, len(passwords))
	for id := range passwords {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := &RehashResult{UsersChecked: len(ids), Errors: []string{}}

	var pending []rehashJob
	for _, id := range ids {
		if auth.IsHashed(passwords[id]) {
			continue
		}
		pending = append(pending, rehashJob{userID: id, password: passwords[id]})
	}

	if dryRun {
		for _, job := range pending {
			log.Printf("User %d has a plaintext password", job.userID)
		}
		result.Rehashed = len(pending)
		return result, nil
	}

	jobs := make(chan rehashJob, len(pending))
	results := make(chan rehashWorkerResult, len(pending))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go rehashWorker(ctx, store, jobs, results, &wg)
	}

	for _, job := range pending {
		jobs <- job
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		if r.err != nil {
			result.Errors = append(result.Errors, r.err.Error())
			continue
		}
		switch {
		case r.rehashed:
			result.Rehashed++
		case r.skipped:
			result.Skipped++
		}
	}
	sort.Strings(result.Errors)

	log.Printf("Rehash completed: checked=%d, rehashed=%d, skipped=%d, errors=%d",
		result.UsersChecked, result.Rehashed, result.Skipped, len(result.Errors))

	return result, nil
}

func rehashWorker(ctx context.Context, store passwordStore, jobs <-chan rehashJob, results chan<- rehashWorkerResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			results <- rehashWorkerResult{err: ctx.Err()}
			return
		default:
			results <- rehashOne(ctx, store, job)
		}
	}
}

func rehashOne(ctx context.Context, store passwordStore, job rehashJob) rehashWorkerResult {
	ctx, span := rehashTracer.Start(ctx, "admin.rehash_password",
		trace.WithAttributes(attribute.Int64("user.id", job.userID)),
	)
	defer span.End()

	var replaced bool
	hash, err := auth.HashPassword(job.password)
	if err == nil {
		replaced, err = store.ReplacePassword(ctx, job.userID, job.password, hash)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return rehashWorkerResult{err: fmt.Errorf("user %d: %w", job.userID, err)}
	}
	if !replaced {
		span.SetAttributes(attribute.Bool("rehash.skipped", true))
		log.Printf("Password for user %d changed since listing, leaving it alone", job.userID)
		return rehashWorkerResult{skipped: true}
	}

	log.Printf("Rehashed password for user %d", job.userID)
	return rehashWorkerResult{rehashed: true}
}
