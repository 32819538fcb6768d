package entities

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrInvalidDate            = errors.New("invalid date")
	ErrInvalidEducationStatus = errors.New("invalid education status")
)

// UnsortedPosition is the sort index given to records left out of a reorder.
const UnsortedPosition = 999

// Record is implemented by every list-stored content entity.
type Record interface {
	GetID() int
	SetID(id int)
	SetCreatedAt(t time.Time)
	Position() int
	SetPosition(p int)
	IsFeatured() bool
}

// EducationStatus describes where a course stands
type EducationStatus string

const (
	EducationStatusCompleted  EducationStatus = "completed"
	EducationStatusInProgress EducationStatus = "in progress"
	EducationStatusToBegin    EducationStatus = "to begin"
	EducationStatusDroppedOff EducationStatus = "dropped off"
)

// Valid reports whether s is one of the known statuses.
func (s EducationStatus) Valid() bool {
	switch s {
	case EducationStatusCompleted, EducationStatusInProgress, EducationStatusToBegin, EducationStatusDroppedOff:
		return true
	}
	return false
}

// Base carries the fields shared by the ordered content records
type Base struct {
	ID        int       `json:"id"`
	Featured  bool      `json:"featured"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

func (b *Base) GetID() int               { return b.ID }
func (b *Base) SetID(id int)             { b.ID = id }
func (b *Base) SetCreatedAt(t time.Time) { b.CreatedAt = t }
func (b *Base) Position() int            { return b.SortOrder }
func (b *Base) SetPosition(p int)        { b.SortOrder = p }
func (b *Base) IsFeatured() bool         { return b.Featured }

// Blog represents an external blog article
type Blog struct {
	Base
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	PublishedAt Date    `json:"publishedAt"`
}

// LinkedinPost represents a LinkedIn post shown on the homepage
type LinkedinPost struct {
	Base
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	PostURL     string  `json:"postUrl"`
	ImageURL    *string `json:"imageUrl"`
	Likes       int     `json:"likes"`
	Comments    int     `json:"comments"`
	PublishedAt Date    `json:"publishedAt"`
}

// Skill represents a technology or tool
type Skill struct {
	Base
	Name     string  `json:"name"`
	Category string  `json:"category"`
	LogoURL  *string `json:"logoUrl"`
}

// Certification represents a professional certification
type Certification struct {
	Base
	Title       string  `json:"title"`
	Issuer      string  `json:"issuer"`
	Year        string  `json:"year"`
	ImageURL    *string `json:"imageUrl"`
	Description *string `json:"description"`
}

// Education represents a course of study
type Education struct {
	Base
	CourseName  string          `json:"courseName"`
	CollegeName string          `json:"collegeName"`
	StartMonth  string          `json:"startMonth"`
	StartYear   int             `json:"startYear"`
	EndMonth    string          `json:"endMonth"`
	EndYear     int             `json:"endYear"`
	Status      EducationStatus `json:"status"`
}

// SelectedProject is an admin-curated copy of a GitHub repository's metadata.
// Its display position is kept in DisplayOrder rather than SortOrder.
type SelectedProject struct {
	ID                int       `json:"id"`
	GithubRepoID      int64     `json:"githubRepoId"`
	Name              string    `json:"name"`
	Description       *string   `json:"description"`
	HTMLURL           string    `json:"htmlUrl"`
	Language          *string   `json:"language"`
	StargazersCount   int       `json:"stargazersCount"`
	ForksCount        int       `json:"forksCount"`
	IsSelected        bool      `json:"isSelected"`
	CustomDescription *string   `json:"customDescription"`
	ImageURL          *string   `json:"imageUrl"`
	Featured          bool      `json:"featured"`
	DisplayOrder      int       `json:"displayOrder"`
	CreatedAt         time.Time `json:"createdAt"`
}

func (p *SelectedProject) GetID() int               { return p.ID }
func (p *SelectedProject) SetID(id int)             { p.ID = id }
func (p *SelectedProject) SetCreatedAt(t time.Time) { p.CreatedAt = t }
func (p *SelectedProject) Position() int            { return p.DisplayOrder }
func (p *SelectedProject) SetPosition(pos int)      { p.DisplayOrder = pos }
func (p *SelectedProject) IsFeatured() bool         { return p.Featured }

// Project is a GitHub repository enriched with portfolio media
type Project struct {
	Base
	GithubID          int64   `json:"githubId"`
	Name              string  `json:"name"`
	Description       *string `json:"description"`
	ImageURL          *string `json:"imageUrl"`
	VideoURL          *string `json:"videoUrl"`
	Category          *string `json:"category"`
	CustomDescription *string `json:"customDescription"`
}

// ContactInfo holds the single set of public contact details
type ContactInfo struct {
	ID          int       `json:"id"`
	Email       string    `json:"email"`
	LinkedinURL *string   `json:"linkedinUrl"`
	GithubURL   *string   `json:"githubUrl"`
	PhoneNumber *string   `json:"phoneNumber"`
	Location    *string   `json:"location"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ContactMessage is a message submitted through the contact form
type ContactMessage struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m *ContactMessage) GetID() int               { return m.ID }
func (m *ContactMessage) SetID(id int)             { m.ID = id }
func (m *ContactMessage) SetCreatedAt(t time.Time) { m.CreatedAt = t }
func (m *ContactMessage) Position() int            { return 0 }
func (m *ContactMessage) SetPosition(int)          {}
func (m *ContactMessage) IsFeatured() bool         { return false }

// GitHubRepo is the subset of GitHub's repository payload the site uses
type GitHubRepo struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     *string   `json:"description"`
	HTMLURL         string    `json:"html_url"`
	Language        *string   `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	UpdatedAt       time.Time `json:"updated_at"`
	Topics          []string  `json:"topics"`
	Homepage        *string   `json:"homepage"`
	Fork            bool      `json:"fork"`
}

// ShowcaseImage is the result of probing a repository for a showcase image
type ShowcaseImage struct {
	URL    *string `json:"url"`
	Format *string `json:"format"`
}

// Found reports whether an image was located.
func (s ShowcaseImage) Found() bool {
	return s.URL != nil
}
