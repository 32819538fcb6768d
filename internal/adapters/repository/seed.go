package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/folio/portfolio/internal/domain/entities"
	"github.com/folio/portfolio/internal/infrastructure/logger"
	"github.com/folio/portfolio/internal/ports"
)

// Fixture is a set of records to load into empty collections.
type Fixture struct {
	ContactInfo      *entities.ContactInfo       `json:"contactInfo"`
	Blogs            []*entities.Blog            `json:"blogs"`
	LinkedinPosts    []*entities.LinkedinPost    `json:"linkedinPosts"`
	Skills           []*entities.Skill           `json:"skills"`
	Certifications   []*entities.Certification   `json:"certifications"`
	Education        []*entities.Education       `json:"education"`
	SelectedProjects []*entities.SelectedProject `json:"selectedProjects"`
	Projects         []*entities.Project         `json:"projects"`
}

// ParseFixture reads a YAML fixture. Keys and field names are the same as in
// the stored JSON documents.
func ParseFixture(data []byte) (*Fixture, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert fixture: %w", err)
	}

	var f Fixture
	if err := json.Unmarshal(encoded, &f); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}
	return &f, nil
}

// DefaultFixture is written on first start so a fresh site is not empty.
func DefaultFixture() *Fixture {
	return &Fixture{
		ContactInfo: &entities.ContactInfo{
			ID:          1,
			Email:       "hello@example.com",
			LinkedinURL: entities.StringPtr("https://linkedin.com/in/example"),
			GithubURL:   entities.StringPtr("https://github.com/example"),
			Location:    entities.StringPtr("Remote"),
		},
		Blogs: []*entities.Blog{
			{
				Base:        entities.Base{Featured: true},
				Title:       "Building Voice-Driven Assistants with Modern NLP",
				URL:         "https://medium.com/@example/voice-assistants",
				Description: entities.StringPtr("A guide to speech recognition and intent handling for voice assistants."),
				PublishedAt: entities.MustParseDate("2024-01-15"),
			},
			{
				Base:        entities.Base{Featured: true},
				Title:       "Machine Learning Pipeline Optimization in Production",
				URL:         "https://dev.to/example/ml-pipeline-optimization",
				Description: entities.StringPtr("Practical notes on running ML pipelines in production."),
				PublishedAt: entities.MustParseDate("2024-02-01"),
			},
		},
		Certifications: []*entities.Certification{
			{
				Base:        entities.Base{Featured: true},
				Title:       "AWS Certified AI Practitioner",
				Issuer:      "AWS",
				Year:        "2024",
				Description: entities.StringPtr("Foundational knowledge of AWS AI and ML services."),
			},
			{
				Base:        entities.Base{Featured: true},
				Title:       "Data Analysis with Python",
				Issuer:      "IBM",
				Year:        "2023",
				Description: entities.StringPtr("Data analysis using Python."),
			},
		},
		Skills: []*entities.Skill{
			{
				Base:     entities.Base{Featured: true},
				Name:     "Python",
				Category: "Programming",
				LogoURL:  entities.StringPtr("https://cdn.jsdelivr.net/gh/devicons/devicon/icons/python/python-original.svg"),
			},
			{
				Base:     entities.Base{Featured: true},
				Name:     "TensorFlow",
				Category: "Machine Learning",
				LogoURL:  entities.StringPtr("https://cdn.jsdelivr.net/gh/devicons/devicon/icons/tensorflow/tensorflow-original.svg"),
			},
			{
				Base:     entities.Base{Featured: true},
				Name:     "AWS",
				Category: "Cloud",
				LogoURL:  entities.StringPtr("https://cdn.jsdelivr.net/gh/devicons/devicon/icons/amazonwebservices/amazonwebservices-original.svg"),
			},
		},
	}
}

// Seeder loads fixtures into collections that hold no records yet.
type Seeder struct {
	repos  *Repositories
	logger *logger.Logger
	now    func() time.Time
}

// NewSeeder creates a seeder for repos.
func NewSeeder(repos *Repositories, appLogger *logger.Logger) *Seeder {
	return &Seeder{
		repos:  repos,
		logger: appLogger.WithComponent("seeder"),
		now:    time.Now,
	}
}

// Apply writes each part of f whose collection is empty or missing and
// returns how many records were written per collection.
func (s *Seeder) Apply(ctx context.Context, f *Fixture) (map[string]int, error) {
	seeded := make(map[string]int)
	now := s.now().UTC()

	if f.ContactInfo != nil {
		info := *f.ContactInfo
		info.ID = 1
		if info.CreatedAt.IsZero() {
			info.CreatedAt = now
		}
		written, err := s.repos.ContactInfo.saveIfMissing(ctx, &info)
		if err != nil {
			return seeded, err
		}
		if written {
			seeded[ContactInfoDocument] = 1
		}
	}

	steps := []struct {
		name string
		run  func() (int, error)
	}{
		{BlogsCollection, func() (int, error) { return s.repos.Blogs.seed(ctx, f.Blogs, now) }},
		{LinkedinPostsCollection, func() (int, error) { return s.repos.LinkedinPosts.seed(ctx, f.LinkedinPosts, now) }},
		{SkillsCollection, func() (int, error) { return s.repos.Skills.seed(ctx, f.Skills, now) }},
		{CertificationsCollection, func() (int, error) { return s.repos.Certifications.seed(ctx, f.Certifications, now) }},
		{EducationCollection, func() (int, error) { return s.repos.Education.seed(ctx, f.Education, now) }},
		{SelectedProjectsCollection, func() (int, error) { return s.repos.SelectedProjects.seed(ctx, f.SelectedProjects, now) }},
		{ProjectsCollection, func() (int, error) { return s.repos.Projects.seed(ctx, f.Projects, now) }},
	}

	for _, step := range steps {
		n, err := step.run()
		if err != nil {
			return seeded, fmt.Errorf("failed to seed %s: %w", step.name, err)
		}
		if n > 0 {
			seeded[step.name] = n
			s.logger.Infow("Seeded collection", "collection", step.name, "records", n)
		}
	}

	return seeded, nil
}

// SeedDefaults applies DefaultFixture.
func (s *Seeder) SeedDefaults(ctx context.Context) error {
	_, err := s.Apply(ctx, DefaultFixture())
	return err
}

// seed stores records when the collection is empty. Records keep their ids
// when set; the rest are numbered after them.
func (c *Collection[T]) seed(ctx context.Context, records []T, now time.Time) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	written := 0
	err := c.mutate(ctx, "seed", func(existing []T) ([]T, error) {
		if len(existing) > 0 {
			return nil, ErrSkipWrite
		}

		out := make([]T, 0, len(records))
		for _, r := range records {
			if isNil(r) {
				continue
			}
			out = append(out, r)
		}
		for _, r := range out {
			if r.GetID() <= 0 {
				r.SetID(nextID(out))
			}
			r.SetCreatedAt(now)
		}
		written = len(out)
		return out, nil
	})
	if errors.Is(err, ErrSkipWrite) {
		return 0, nil
	}
	return written, err
}

func (d *Document[T]) saveIfMissing(ctx context.Context, value *T) (bool, error) {
	written := false
	err := d.store.backend.Mutate(ctx, d.name, func(current []byte) ([]byte, error) {
		_, err := d.decode(current)
		if err == nil {
			return nil, ErrSkipWrite
		}
		if !errors.Is(err, ports.ErrNotFound) {
			return nil, err
		}
		written = true
		return encode(value)
	})
	if errors.Is(err, ErrSkipWrite) {
		return false, nil
	}
	return written, err
}
