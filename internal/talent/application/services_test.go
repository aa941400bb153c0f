package application_test

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/sngm3741/talentflow/api/internal/infrastructure/kv"
	"github.com/sngm3741/talentflow/api/internal/infrastructure/storage"
	"github.com/sngm3741/talentflow/api/internal/metrics"
	"github.com/sngm3741/talentflow/api/internal/talent/application"
	"github.com/sngm3741/talentflow/api/internal/talent/domain"
)

type fixture struct {
	store       *storage.Store
	metrics     *metrics.Metrics
	jobs        application.JobService
	candidates  application.CandidateService
	assessments application.AssessmentService
}

func newFixture(t *testing.T, policy application.WritePolicy, seed bool) fixture {
	t.Helper()
	store := storage.New(kv.NewMemory(), storage.WithSeedOnEmpty(seed))
	if err := store.Open(context.Background()); err != nil {
		t.Fatalf("open store: %v", err)
	}
	m := metrics.NewMetrics()
	gate := application.NewWriteGate(policy, m, nil)
	return fixture{
		store:       store,
		metrics:     m,
		jobs:        application.NewJobService(store, gate),
		candidates:  application.NewCandidateService(store, gate),
		assessments: application.NewAssessmentService(store, store, store, gate),
	}
}

func intPtr(v int) *int { return &v }

// tickingClock advances one minute per reading so consecutive writes get distinct timestamps.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	current := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Minute)
		return current
	}
}

func newTickingFixture(t *testing.T) fixture {
	t.Helper()
	store := storage.New(kv.NewMemory(), storage.WithSeedOnEmpty(false), storage.WithClock(tickingClock()))
	if err := store.Open(context.Background()); err != nil {
		t.Fatalf("open store: %v", err)
	}
	m := metrics.NewMetrics()
	gate := application.NewWriteGate(application.NoopWritePolicy{}, m, nil)
	return fixture{
		store:       store,
		metrics:     m,
		jobs:        application.NewJobService(store, gate),
		candidates:  application.NewCandidateService(store, gate),
		assessments: application.NewAssessmentService(store, store, store, gate),
	}
}

// withoutUpdatedAt renders v as a JSON object with updatedAt removed.
func withoutUpdatedAt(t *testing.T, v any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	delete(fields, "updatedAt")
	return fields
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(raw)
}

func TestJobListSearchStatusAndOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, application.NoopWritePolicy{}, false)
	for _, cmd := range []application.CreateJobCommand{
		{Title: "Go Engineer", Order: intPtr(3)},
		{Title: "Frontend Engineer", Order: intPtr(1)},
		{Title: "Designer", Order: intPtr(2), Status: domain.JobStatusArchived},
	} {
		if _, err := f.jobs.Create(ctx, cmd); err != nil {
			t.Fatalf("create %q: %v", cmd.Title, err)
		}
	}

	page, err := f.jobs.List(ctx, application.JobQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Pagination.PageSize != application.DefaultJobPageSize || page.Pagination.Total != 3 || page.Pagination.TotalPages != 1 {
		t.Fatalf("unexpected pagination: %+v", page.Pagination)
	}
	if page.Data[0].Title != "Frontend Engineer" || page.Data[2].Title != "Go Engineer" {
		t.Fatalf("jobs not sorted by order: %+v", page.Data)
	}

	page, _ = f.jobs.List(ctx, application.JobQuery{Search: "ENGINEER", Status: domain.JobStatusActive})
	if page.Pagination.Total != 2 {
		t.Fatalf("expected two active engineers, got %d", page.Pagination.Total)
	}
	page, _ = f.jobs.List(ctx, application.JobQuery{Search: "go-eng"})
	if page.Pagination.Total != 1 {
		t.Fatalf("search should match slug, got %d", page.Pagination.Total)
	}
}

func TestJobCreateDefaultsAndValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, application.NoopWritePolicy{}, true)

	job, err := f.jobs.Create(ctx, application.CreateJobCommand{Title: "  Staff SRE (Remote) ", Tags: []string{"sre", "sre", " oncall "}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if job.Slug != "staff-sre-remote" || job.Status != domain.JobStatusActive || job.Order != 11 {
		t.Fatalf("unexpected defaults: %+v", job)
	}
	if len(job.Tags) != 2 {
		t.Fatalf("tags not normalised: %v", job.Tags)
	}

	if _, err := f.jobs.Create(ctx, application.CreateJobCommand{Title: "  "}); !errors.Is(err, application.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := f.jobs.Create(ctx, application.CreateJobCommand{Title: "X", Status: "draft"}); !errors.Is(err, application.ErrValidation) {
		t.Fatalf("expected validation error for status, got %v", err)
	}
}

func TestJobUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, application.NoopWritePolicy{}, false)
	job, _ := f.jobs.Create(ctx, application.CreateJobCommand{Title: "Old title"})

	title := "New Title"
	updated, err := f.jobs.Update(ctx, job.ID, domain.JobPatch{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "new-title" || updated.Order != job.Order {
		t.Fatalf("unexpected update: %+v", updated)
	}

	if _, err := f.jobs.Update(ctx, "missing", domain.JobPatch{Title: &title}); !errors.Is(err, application.ErrJobNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEmptyPatchOnlyTouchesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	f := newTickingFixture(t)

	job, err := f.jobs.Create(ctx, application.CreateJobCommand{
		Title:       "Platform Engineer",
		Tags:        []string{"go", "remote"},
		Description: "Owns the build pipeline.",
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	updatedJob, err := f.jobs.Update(ctx, job.ID, domain.JobPatch{})
	if err != nil {
		t.Fatalf("update job: %v", err)
	}
	if !reflect.DeepEqual(withoutUpdatedAt(t, job), withoutUpdatedAt(t, updatedJob)) {
		t.Fatalf("empty job patch changed fields:\n%s\n%s", mustJSON(t, job), mustJSON(t, updatedJob))
	}
	if !updatedJob.UpdatedAt.After(job.UpdatedAt) {
		t.Fatalf("updatedAt should advance: %v -> %v", job.UpdatedAt, updatedJob.UpdatedAt)
	}

	candidate, err := f.candidates.Create(ctx, application.CreateCandidateCommand{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		JobID: job.ID,
		Notes: []domain.Note{{Text: "Referred by Charles."}},
	})
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	updatedCandidate, err := f.candidates.Update(ctx, candidate.ID, domain.CandidatePatch{})
	if err != nil {
		t.Fatalf("update candidate: %v", err)
	}
	if !reflect.DeepEqual(withoutUpdatedAt(t, candidate), withoutUpdatedAt(t, updatedCandidate)) {
		t.Fatalf("empty candidate patch changed fields:\n%s\n%s", mustJSON(t, candidate), mustJSON(t, updatedCandidate))
	}
}

func TestCreatedRecordsRoundTripThroughList(t *testing.T) {
	ctx := context.Background()
	f := newTickingFixture(t)

	job, err := f.jobs.Create(ctx, application.CreateJobCommand{
		Title:       "Data Engineer",
		Slug:        "data-eng",
		Status:      domain.JobStatusArchived,
		Tags:        []string{"sql", "python"},
		Description: "Pipelines and warehouses.",
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if job.CreatedAt.IsZero() || job.UpdatedAt.IsZero() {
		t.Fatalf("job timestamps not populated: %+v", job)
	}
	jobs, err := f.jobs.List(ctx, application.JobQuery{})
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(jobs.Data) != 1 || mustJSON(t, jobs.Data[0]) != mustJSON(t, job) {
		t.Fatalf("listed job differs from created one: %+v", jobs.Data)
	}

	candidate, err := f.candidates.Create(ctx, application.CreateCandidateCommand{
		Name:     "Grace Hopper",
		Email:    "grace@example.com",
		JobID:    job.ID,
		Phone:    "+1-555-0100",
		LinkedIn: "https://linkedin.com/in/grace",
	})
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	if candidate.AppliedAt.IsZero() || candidate.UpdatedAt.IsZero() {
		t.Fatalf("candidate timestamps not populated: %+v", candidate)
	}
	candidates, err := f.candidates.List(ctx, application.CandidateQuery{})
	if err != nil {
		t.Fatalf("list candidates: %v", err)
	}
	if len(candidates.Data) != 1 || mustJSON(t, candidates.Data[0]) != mustJSON(t, candidate) {
		t.Fatalf("listed candidate differs from created one: %+v", candidates.Data)
	}
}

func TestJobReorder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, application.NoopWritePolicy{}, true)

	if err := f.jobs.Reorder(ctx, 1, 4); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	page, _ := f.jobs.List(ctx, application.JobQuery{})
	seen := map[int]bool{}
	for _, job := range page.Data {
		if seen[job.Order] {
			t.Fatalf("duplicate order %d after reorder", job.Order)
		}
		seen[job.Order] = true
	}
	if err := f.jobs.Reorder(ctx, 1, 999); !errors.Is(err, application.ErrJobsToReorderNotFound) {
		t.Fatalf("expected reorder not found, got %v", err)
	}
}

func TestFailedWriteLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, application.NewRandomWritePolicy(application.WritePolicyConfig{MinFailureRate: 1, MaxFailureRate: 1}, nil), true)

	before, _ := f.jobs.List(ctx, application.JobQuery{PageSize: 1})
	target := before.Data[0]
	title := "Should not stick"
	if _, err := f.jobs.Update(ctx, target.ID, domain.JobPatch{Title: &title}); !errors.Is(err, application.ErrSimulatedFailure) {
		t.Fatalf("expected simulated failure, got %v", err)
	}
	if _, err := f.jobs.Create(ctx, application.CreateJobCommand{Title: "Ghost"}); !errors.Is(err, application.ErrSimulatedFailure) {
		t.Fatalf("expected simulated failure, got %v", err)
	}
	after, _ := f.jobs.List(ctx, application.JobQuery{PageSize: 1})
	if after.Data[0].Title != target.Title || after.Pagination.Total != before.Pagination.Total {
		t.Fatalf("failed writes mutated state")
	}
	if snap := f.metrics.GetSnapshot(); snap.InjectedFailures != 2 {
		t.Fatalf("expected two injected failures, got %+v", snap)
	}
}

func TestCancelledWriteLeavesStoreUnchanged(t *testing.T) {
	f := newFixture(t, application.NewRandomWritePolicy(application.WritePolicyConfig{MinDelay: time.Minute, MaxDelay: time.Minute}, nil), false)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := f.jobs.Create(ctx, application.CreateJobCommand{Title: "Slow"}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if stats := f.store.Stats(context.Background()); stats.Jobs != 0 {
		t.Fatalf("cancelled create was stored")
	}
}

func TestCandidateListFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, application.NoopWritePolicy{}, true)

	page, err := f.candidates.List(ctx, application.CandidateQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Pagination.PageSize != application.DefaultCandidatePageSize || len(page.Data) != 20 {
		t.Fatalf("unexpected page: %+v", page.Pagination)
	}
	for i := 1; i < len(page.Data); i++ {
		if page.Data[i].AppliedAt.After(page.Data[i-1].AppliedAt) {
			t.Fatalf("candidates not sorted newest first")
		}
	}

	page, _ = f.candidates.List(ctx, application.CandidateQuery{Search: "GRACE", Stage: domain.StageTech})
	if page.Pagination.Total != 1 || page.Data[0].Name != "Grace Hopper" {
		t.Fatalf("search+stage filter failed: %+v", page.Data)
	}
	page, _ = f.candidates.List(ctx, application.CandidateQuery{Search: "grace", Stage: domain.StageHired})
	if page.Pagination.Total != 0 {
		t.Fatalf("filters should AND together")
	}
}

func TestCandidateCreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, application.NoopWritePolicy{}, false)
	job, _ := f.jobs.Create(ctx, application.CreateJobCommand{Title: "Backend"})

	cases := []application.CreateCandidateCommand{
		{Email: "a@b.c", JobID: job.ID},
		{Name: "Ada", Email: "not-an-email", JobID: job.ID},
		{Name: "Ada", Email: "a@b.c"},
		{Name: "Ada", Email: "a@b.c", JobID: job.ID, Stage: "interview"},
	}
	for i, cmd := range cases {
		if _, err := f.candidates.Create(ctx, cmd); !errors.Is(err, application.ErrValidation) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}

	c, err := f.candidates.Create(ctx, application.CreateCandidateCommand{
		Name:  "Ada",
		Email: "ada@example.com",
		JobID: job.ID,
		Notes: []domain.Note{{Text: "referred by Alan"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Stage != domain.StageApplied || c.JobTitle != "Backend" {
		t.Fatalf("unexpected candidate: %+v", c)
	}
	if c.Notes[0].ID == "" || c.Notes[0].CreatedAt.IsZero() {
		t.Fatalf("note not completed: %+v", c.Notes[0])
	}
}

func TestCandidateUpdateDetailTimeline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, application.NoopWritePolicy{}, false)
	job, _ := f.jobs.Create(ctx, application.CreateJobCommand{Title: "Backend"})
	c, _ := f.candidates.Create(ctx, application.CreateCandidateCommand{Name: "Ada", Email: "ada@example.com", JobID: job.ID})

	stage := domain.StageOffer
	forged := "Forged title"
	updated, err := f.candidates.Update(ctx, c.ID, domain.CandidatePatch{Stage: &stage, JobTitle: &forged})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Stage != domain.StageOffer || updated.JobTitle != "Backend" {
		t.Fatalf("unexpected update: %+v", updated)
	}

	bad := domain.Stage("limbo")
	if _, err := f.candidates.Update(ctx, c.ID, domain.CandidatePatch{Stage: &bad}); !errors.Is(err, application.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := f.candidates.Update(ctx, "missing", domain.CandidatePatch{Stage: &stage}); !errors.Is(err, application.ErrCandidateNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if _, err := f.candidates.Detail(ctx, "missing"); !errors.Is(err, application.ErrCandidateNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	detail, err := f.candidates.Detail(ctx, c.ID)
	if err != nil || detail.Stage != domain.StageOffer {
		t.Fatalf("detail: %+v %v", detail, err)
	}

	timeline, err := f.candidates.Timeline(ctx, c.ID)
	if err != nil || timeline.CandidateID != c.ID || timeline.Events == nil || len(timeline.Events) != 0 {
		t.Fatalf("unexpected timeline: %+v %v", timeline, err)
	}
}

func TestAssessmentSaveAndRespond(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, application.NoopWritePolicy{}, false)
	job, _ := f.jobs.Create(ctx, application.CreateJobCommand{Title: "Backend"})
	c, _ := f.candidates.Create(ctx, application.CreateCandidateCommand{Name: "Ada", Email: "ada@example.com", JobID: job.ID})

	got, err := f.assessments.ByJob(ctx, job.ID)
	if err != nil || got != nil {
		t.Fatalf("expected no assessment, got %+v %v", got, err)
	}

	if _, err := f.assessments.Save(ctx, "missing", application.SaveAssessmentCommand{Title: "x"}); !errors.Is(err, application.ErrJobNotFound) {
		t.Fatalf("expected job not found, got %v", err)
	}
	_, err = f.assessments.Save(ctx, job.ID, application.SaveAssessmentCommand{
		Sections: []domain.Section{{Questions: []domain.Question{{Type: "essay", Question: "?"}}}},
	})
	if !errors.Is(err, application.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	first, err := f.assessments.Save(ctx, job.ID, application.SaveAssessmentCommand{
		Title: "Go screen",
		Sections: []domain.Section{{
			Title: "Basics",
			Questions: []domain.Question{
				{ID: "q1", Type: domain.QuestionShortText, Question: "Favourite package?", Required: true},
				{Type: domain.QuestionSingleChoice, Question: "Tabs?", Options: []string{"yes", "no"}},
			},
		}},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if first.Sections[0].ID == "" || first.Sections[0].Questions[1].ID == "" {
		t.Fatalf("ids not assigned: %+v", first.Sections)
	}

	second, err := f.assessments.Save(ctx, job.ID, application.SaveAssessmentCommand{ID: "other", Title: "Go screen v2", Sections: first.Sections})
	if err != nil {
		t.Fatalf("resave: %v", err)
	}
	if second.ID != first.ID || !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("resave changed identity: %+v", second)
	}

	if _, err := f.assessments.SubmitResponse(ctx, application.SubmitResponseCommand{AssessmentID: first.ID, CandidateID: c.ID, Responses: map[string]any{"q1": " "}}); !errors.Is(err, application.ErrValidation) {
		t.Fatalf("expected required-question validation, got %v", err)
	}
	if _, err := f.assessments.SubmitResponse(ctx, application.SubmitResponseCommand{AssessmentID: "nope", CandidateID: c.ID}); !errors.Is(err, application.ErrAssessmentNotFound) {
		t.Fatalf("expected assessment not found, got %v", err)
	}
	if _, err := f.assessments.SubmitResponse(ctx, application.SubmitResponseCommand{AssessmentID: first.ID, CandidateID: "ghost", Responses: map[string]any{"q1": "net/http"}}); !errors.Is(err, application.ErrCandidateNotFound) {
		t.Fatalf("expected candidate not found, got %v", err)
	}

	resp, err := f.assessments.SubmitResponse(ctx, application.SubmitResponseCommand{AssessmentID: first.ID, CandidateID: c.ID, Responses: map[string]any{"q1": "net/http"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.ID == "" || resp.SubmittedAt.IsZero() {
		t.Fatalf("unexpected response: %+v", resp)
	}
	list, _ := f.assessments.Responses(ctx, c.ID)
	if len(list) != 1 || list[0].Responses["q1"] != "net/http" {
		t.Fatalf("unexpected responses: %+v", list)
	}
}
