package storage

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/sngm3741/talentflow/api/internal/talent/domain"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type fixtureSet struct {
	Jobs        []jobFixture        `yaml:"jobs"`
	Candidates  []candidateFixture  `yaml:"candidates"`
	Assessments []assessmentFixture `yaml:"assessments"`
}

type jobFixture struct {
	Key         string   `yaml:"key"`
	Title       string   `yaml:"title"`
	Status      string   `yaml:"status"`
	Tags        []string `yaml:"tags"`
	Description string   `yaml:"description"`
}

type candidateFixture struct {
	Name     string   `yaml:"name"`
	Email    string   `yaml:"email"`
	Stage    string   `yaml:"stage"`
	Job      string   `yaml:"job"`
	Phone    string   `yaml:"phone"`
	LinkedIn string   `yaml:"linkedin"`
	Notes    []string `yaml:"notes"`
}

type assessmentFixture struct {
	Job         string           `yaml:"job"`
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	Sections    []sectionFixture `yaml:"sections"`
}

type sectionFixture struct {
	Title     string            `yaml:"title"`
	Questions []questionFixture `yaml:"questions"`
}

type questionFixture struct {
	Type       string   `yaml:"type"`
	Question   string   `yaml:"question"`
	Options    []string `yaml:"options"`
	Required   bool     `yaml:"required"`
	Min        *int     `yaml:"min"`
	Max        *int     `yaml:"max"`
	MaxLength  *int     `yaml:"max_length"`
	NumericMin *float64 `yaml:"numeric_min"`
	NumericMax *float64 `yaml:"numeric_max"`
}

const (
	jobSpacing       = 72 * time.Hour
	candidateSpacing = 13 * time.Hour
)

func parseFixtures(data []byte) (fixtureSet, error) {
	var set fixtureSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return fixtureSet{}, fmt.Errorf("parse fixtures: %w", err)
	}
	return set, nil
}

// seedLocked replaces jobs, candidates and assessments with the embedded fixtures
// and persists them. Responses are left as they are.
// Timestamps count back from the store clock so later fixtures are older.
func (s *Store) seedLocked(ctx context.Context) error {
	set, err := parseFixtures(fixturesYAML)
	if err != nil {
		return err
	}
	now := s.timestamp()

	jobIDs := make(map[string]string, len(set.Jobs))
	jobTitles := make(map[string]string, len(set.Jobs))
	jobs := make([]domain.Job, 0, len(set.Jobs))
	for i, f := range set.Jobs {
		status, err := domain.NewJobStatus(f.Status)
		if err != nil {
			return fmt.Errorf("job fixture %q: %w", f.Key, err)
		}
		created := now.Add(-time.Duration(i+1) * jobSpacing)
		job := domain.Job{
			ID:          s.newID(),
			Title:       f.Title,
			Slug:        domain.Slugify(f.Title),
			Status:      status,
			Tags:        domain.NewTagList(f.Tags),
			Order:       i + 1,
			Description: f.Description,
			CreatedAt:   created,
			UpdatedAt:   created,
		}
		jobIDs[f.Key] = job.ID
		jobTitles[f.Key] = job.Title
		jobs = append(jobs, job)
	}

	candidates := make([]domain.Candidate, 0, len(set.Candidates))
	for i, f := range set.Candidates {
		jobID, ok := jobIDs[f.Job]
		if !ok {
			return fmt.Errorf("candidate fixture %q: unknown job %q", f.Name, f.Job)
		}
		stage, err := domain.NewStage(f.Stage)
		if err != nil {
			return fmt.Errorf("candidate fixture %q: %w", f.Name, err)
		}
		applied := now.Add(-time.Duration(i+1) * candidateSpacing)
		candidate := domain.Candidate{
			ID:        s.newID(),
			Name:      f.Name,
			Email:     f.Email,
			Stage:     stage,
			JobID:     jobID,
			JobTitle:  jobTitles[f.Job],
			AppliedAt: applied,
			UpdatedAt: applied,
			Phone:     f.Phone,
			LinkedIn:  f.LinkedIn,
		}
		for _, text := range f.Notes {
			candidate.Notes = append(candidate.Notes, domain.Note{ID: s.newID(), Text: text, CreatedAt: applied})
		}
		candidates = append(candidates, candidate)
	}

	assessments := make([]domain.Assessment, 0, len(set.Assessments))
	for i, f := range set.Assessments {
		jobID, ok := jobIDs[f.Job]
		if !ok {
			return fmt.Errorf("assessment fixture %q: unknown job %q", f.Title, f.Job)
		}
		created := now.Add(-time.Duration(i+1) * jobSpacing)
		assessment := domain.Assessment{
			ID:          s.newID(),
			JobID:       jobID,
			Title:       f.Title,
			Description: f.Description,
			Sections:    make([]domain.Section, 0, len(f.Sections)),
			CreatedAt:   created,
			UpdatedAt:   created,
		}
		for _, sf := range f.Sections {
			section := domain.Section{ID: s.newID(), Title: sf.Title, Questions: make([]domain.Question, 0, len(sf.Questions))}
			for _, qf := range sf.Questions {
				qt := domain.QuestionType(qf.Type)
				if !qt.Valid() {
					return fmt.Errorf("assessment fixture %q: invalid question type %q", f.Title, qf.Type)
				}
				section.Questions = append(section.Questions, domain.Question{
					ID:         s.newID(),
					Type:       qt,
					Question:   qf.Question,
					Options:    qf.Options,
					Required:   qf.Required,
					Min:        qf.Min,
					Max:        qf.Max,
					MaxLength:  qf.MaxLength,
					NumericMin: qf.NumericMin,
					NumericMax: qf.NumericMax,
				})
			}
			assessment.Sections = append(assessment.Sections, section)
		}
		assessments = append(assessments, assessment)
	}

	s.jobs = jobs
	s.candidates = candidates
	s.assessments = assessments
	s.save(ctx)
	s.logger.Info("storage seeded",
		zap.Int("jobs", len(jobs)),
		zap.Int("candidates", len(candidates)),
		zap.Int("assessments", len(assessments)),
	)
	return nil
}
