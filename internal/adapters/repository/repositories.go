package repository

import (
	"github.com/folio/portfolio/internal/domain/entities"
)

// Collection names. With the file backend each maps to <name>.json.
const (
	BlogsCollection            = "blogs"
	LinkedinPostsCollection    = "linkedinPosts"
	SkillsCollection           = "skills"
	CertificationsCollection   = "certifications"
	EducationCollection        = "education"
	SelectedProjectsCollection = "selectedProjects"
	ProjectsCollection         = "projects"
	ContactMessagesCollection  = "contactMessages"
	ContactInfoDocument        = "contactInfo"
)

// Repositories groups every collection of the site.
type Repositories struct {
	Blogs            *Collection[*entities.Blog]
	LinkedinPosts    *Collection[*entities.LinkedinPost]
	Skills           *Collection[*entities.Skill]
	Certifications   *Collection[*entities.Certification]
	Education        *Collection[*entities.Education]
	SelectedProjects *Collection[*entities.SelectedProject]
	Projects         *Collection[*entities.Project]
	ContactMessages  *Collection[*entities.ContactMessage]
	ContactInfo      *Document[entities.ContactInfo]
}

// NewRepositories wires every collection onto store.
func NewRepositories(store *Store) *Repositories {
	return &Repositories{
		Blogs: NewCollection[*entities.Blog](store, BlogsCollection,
			WithNaturalOrder(func(a, b *entities.Blog) bool {
				return a.PublishedAt.After(b.PublishedAt.Time)
			}),
			WithInsertHook(appendPosition[*entities.Blog]),
		),
		LinkedinPosts: NewCollection[*entities.LinkedinPost](store, LinkedinPostsCollection,
			WithNaturalOrder(func(a, b *entities.LinkedinPost) bool {
				return a.PublishedAt.After(b.PublishedAt.Time)
			}),
			WithInsertHook(appendPosition[*entities.LinkedinPost]),
		),
		Skills: NewCollection[*entities.Skill](store, SkillsCollection,
			WithInsertHook(appendPosition[*entities.Skill]),
		),
		Certifications: NewCollection[*entities.Certification](store, CertificationsCollection,
			WithInsertHook(appendPosition[*entities.Certification]),
		),
		Education: NewCollection[*entities.Education](store, EducationCollection,
			WithInsertHook(appendPosition[*entities.Education]),
		),
		SelectedProjects: NewCollection[*entities.SelectedProject](store, SelectedProjectsCollection,
			WithInsertHook(func(existing []*entities.SelectedProject, p *entities.SelectedProject) {
				if p.DisplayOrder < 0 {
					p.DisplayOrder = len(existing)
					if last := lastPosition(existing); len(existing) > 0 && p.DisplayOrder <= last {
						p.DisplayOrder = last + 1
					}
				}
			}),
		),
		Projects:        NewCollection[*entities.Project](store, ProjectsCollection),
		ContactMessages: NewCollection[*entities.ContactMessage](store, ContactMessagesCollection),
		ContactInfo:     NewDocument[entities.ContactInfo](store, ContactInfoDocument),
	}
}
