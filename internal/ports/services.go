package ports

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/folio/portfolio/internal/domain/entities"
)

// Creator builds a new record from a validated create request
type Creator[T entities.Record] interface {
	Entity() T
}

// Patcher applies the fields present in an update request to an existing record
type Patcher[T entities.Record] interface {
	Apply(record T)
}

// ContentService interface for the admin-managed content collections
type ContentService[T entities.Record] interface {
	List(ctx context.Context) ([]T, error)
	Featured(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int) (T, error)
	Create(ctx context.Context, req Creator[T]) (T, error)
	Update(ctx context.Context, id int, req Patcher[T]) (T, error)
	Delete(ctx context.Context, id int) error
	Reorder(ctx context.Context, ids []int) ([]T, error)
	Move(ctx context.Context, id, position int) ([]T, error)
}

// AuthService interface for admin authentication
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Authorize(token string) error
}

// ContactService interface for contact form messages
type ContactService interface {
	Submit(ctx context.Context, req CreateContactMessageRequest) (*entities.ContactMessage, error)
	List(ctx context.Context) ([]*entities.ContactMessage, error)
	Delete(ctx context.Context, id int) error
}

// ContactInfoService interface for the public contact details
type ContactInfoService interface {
	Get(ctx context.Context) (*entities.ContactInfo, error)
	Create(ctx context.Context, req CreateContactInfoRequest) (*entities.ContactInfo, error)
	Update(ctx context.Context, id int, req UpdateContactInfoRequest) (*entities.ContactInfo, error)
}

// ProjectService interface for GitHub-linked projects
type ProjectService interface {
	List(ctx context.Context) ([]*entities.Project, error)
	Upsert(ctx context.Context, req UpsertProjectRequest) (*entities.Project, error)
	AttachMedia(ctx context.Context, id int, upload MediaUpload) (*entities.Project, error)
}

// GitHubService interface for the repository proxy
type GitHubService interface {
	ListRepos(ctx context.Context, username string) ([]entities.GitHubRepo, error)
}

// ShowcaseService interface for filling selected project images from GitHub
type ShowcaseService interface {
	RefreshShowcaseImages(ctx context.Context) (*ShowcaseRefreshResult, error)
}

// optional normalizes an optional text field so that blank input is stored as null.
func optional(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func boolValue(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}

func intValue(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

// Auth related types
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Ordering related types
type ReorderRequest struct {
	ReorderedIDs []int `json:"reorderedIds" validate:"required,min=1,unique,dive,gt=0"`
}

type MoveRequest struct {
	Position *int `json:"position" validate:"required,gte=0"`
}

// Blog related types
type CreateBlogRequest struct {
	Title       string         `json:"title" validate:"required,notblank,max=300"`
	URL         string         `json:"url" validate:"required,url"`
	Description *string        `json:"description" validate:"omitempty,max=2000"`
	ImageURL    *string        `json:"imageUrl" validate:"omitempty,optional_url"`
	PublishedAt *entities.Date `json:"publishedAt" validate:"required"`
	Featured    *bool          `json:"featured"`
}

func (r *CreateBlogRequest) Entity() *entities.Blog {
	blog := &entities.Blog{
		Title:       strings.TrimSpace(r.Title),
		URL:         r.URL,
		Description: optional(r.Description),
		ImageURL:    optional(r.ImageURL),
		PublishedAt: *r.PublishedAt,
	}
	blog.Featured = boolValue(r.Featured, false)
	return blog
}

type UpdateBlogRequest struct {
	Title       *string        `json:"title" validate:"omitempty,notblank,max=300"`
	URL         *string        `json:"url" validate:"omitempty,url"`
	Description *string        `json:"description" validate:"omitempty,max=2000"`
	ImageURL    *string        `json:"imageUrl" validate:"omitempty,optional_url"`
	PublishedAt *entities.Date `json:"publishedAt"`
	Featured    *bool          `json:"featured"`
}

func (r *UpdateBlogRequest) Apply(blog *entities.Blog) {
	if r.Title != nil {
		blog.Title = strings.TrimSpace(*r.Title)
	}
	if r.URL != nil {
		blog.URL = *r.URL
	}
	if r.Description != nil {
		blog.Description = optional(r.Description)
	}
	if r.ImageURL != nil {
		blog.ImageURL = optional(r.ImageURL)
	}
	if r.PublishedAt != nil && !r.PublishedAt.IsZero() {
		blog.PublishedAt = *r.PublishedAt
	}
	if r.Featured != nil {
		blog.Featured = *r.Featured
	}
}

// LinkedIn post related types
type CreateLinkedinPostRequest struct {
	Title       string         `json:"title" validate:"required,notblank,max=300"`
	Content     string         `json:"content" validate:"required,notblank,max=10000"`
	PostURL     string         `json:"postUrl" validate:"required,url"`
	ImageURL    *string        `json:"imageUrl" validate:"omitempty,optional_url"`
	Likes       *int           `json:"likes" validate:"omitempty,gte=0"`
	Comments    *int           `json:"comments" validate:"omitempty,gte=0"`
	PublishedAt *entities.Date `json:"publishedAt" validate:"required"`
	Featured    *bool          `json:"featured"`
}

func (r *CreateLinkedinPostRequest) Entity() *entities.LinkedinPost {
	post := &entities.LinkedinPost{
		Title:       strings.TrimSpace(r.Title),
		Content:     r.Content,
		PostURL:     r.PostURL,
		ImageURL:    optional(r.ImageURL),
		Likes:       intValue(r.Likes, 0),
		Comments:    intValue(r.Comments, 0),
		PublishedAt: *r.PublishedAt,
	}
	post.Featured = boolValue(r.Featured, false)
	return post
}

type UpdateLinkedinPostRequest struct {
	Title       *string        `json:"title" validate:"omitempty,notblank,max=300"`
	Content     *string        `json:"content" validate:"omitempty,notblank,max=10000"`
	PostURL     *string        `json:"postUrl" validate:"omitempty,url"`
	ImageURL    *string        `json:"imageUrl" validate:"omitempty,optional_url"`
	Likes       *int           `json:"likes" validate:"omitempty,gte=0"`
	Comments    *int           `json:"comments" validate:"omitempty,gte=0"`
	PublishedAt *entities.Date `json:"publishedAt"`
	Featured    *bool          `json:"featured"`
}

func (r *UpdateLinkedinPostRequest) Apply(post *entities.LinkedinPost) {
	if r.Title != nil {
		post.Title = strings.TrimSpace(*r.Title)
	}
	if r.Content != nil {
		post.Content = *r.Content
	}
	if r.PostURL != nil {
		post.PostURL = *r.PostURL
	}
	if r.ImageURL != nil {
		post.ImageURL = optional(r.ImageURL)
	}
	if r.Likes != nil {
		post.Likes = *r.Likes
	}
	if r.Comments != nil {
		post.Comments = *r.Comments
	}
	if r.PublishedAt != nil && !r.PublishedAt.IsZero() {
		post.PublishedAt = *r.PublishedAt
	}
	if r.Featured != nil {
		post.Featured = *r.Featured
	}
}

// Skill related types
type CreateSkillRequest struct {
	Name     string  `json:"name" validate:"required,notblank,max=100"`
	Category string  `json:"category" validate:"required,notblank,max=100"`
	LogoURL  *string `json:"logoUrl" validate:"omitempty,optional_url"`
	Featured *bool   `json:"featured"`
}

func (r *CreateSkillRequest) Entity() *entities.Skill {
	skill := &entities.Skill{
		Name:     strings.TrimSpace(r.Name),
		Category: strings.TrimSpace(r.Category),
		LogoURL:  optional(r.LogoURL),
	}
	skill.Featured = boolValue(r.Featured, false)
	return skill
}

type UpdateSkillRequest struct {
	Name     *string `json:"name" validate:"omitempty,notblank,max=100"`
	Category *string `json:"category" validate:"omitempty,notblank,max=100"`
	LogoURL  *string `json:"logoUrl" validate:"omitempty,optional_url"`
	Featured *bool   `json:"featured"`
}

func (r *UpdateSkillRequest) Apply(skill *entities.Skill) {
	if r.Name != nil {
		skill.Name = strings.TrimSpace(*r.Name)
	}
	if r.Category != nil {
		skill.Category = strings.TrimSpace(*r.Category)
	}
	if r.LogoURL != nil {
		skill.LogoURL = optional(r.LogoURL)
	}
	if r.Featured != nil {
		skill.Featured = *r.Featured
	}
}

// Certification related types
type CreateCertificationRequest struct {
	Title       string  `json:"title" validate:"required,notblank,max=300"`
	Issuer      string  `json:"issuer" validate:"required,notblank,max=200"`
	Year        string  `json:"year" validate:"required,notblank,max=20"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,optional_url"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Featured    *bool   `json:"featured"`
}

func (r *CreateCertificationRequest) Entity() *entities.Certification {
	cert := &entities.Certification{
		Title:       strings.TrimSpace(r.Title),
		Issuer:      strings.TrimSpace(r.Issuer),
		Year:        strings.TrimSpace(r.Year),
		ImageURL:    optional(r.ImageURL),
		Description: optional(r.Description),
	}
	cert.Featured = boolValue(r.Featured, false)
	return cert
}

type UpdateCertificationRequest struct {
	Title       *string `json:"title" validate:"omitempty,notblank,max=300"`
	Issuer      *string `json:"issuer" validate:"omitempty,notblank,max=200"`
	Year        *string `json:"year" validate:"omitempty,notblank,max=20"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,optional_url"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Featured    *bool   `json:"featured"`
}

func (r *UpdateCertificationRequest) Apply(cert *entities.Certification) {
	if r.Title != nil {
		cert.Title = strings.TrimSpace(*r.Title)
	}
	if r.Issuer != nil {
		cert.Issuer = strings.TrimSpace(*r.Issuer)
	}
	if r.Year != nil {
		cert.Year = strings.TrimSpace(*r.Year)
	}
	if r.ImageURL != nil {
		cert.ImageURL = optional(r.ImageURL)
	}
	if r.Description != nil {
		cert.Description = optional(r.Description)
	}
	if r.Featured != nil {
		cert.Featured = *r.Featured
	}
}

// Education related types
type CreateEducationRequest struct {
	CourseName  string                   `json:"courseName" validate:"required,notblank,max=300"`
	CollegeName string                   `json:"collegeName" validate:"required,notblank,max=300"`
	StartMonth  string                   `json:"startMonth" validate:"required,notblank,max=20"`
	StartYear   int                      `json:"startYear" validate:"required,gte=1900,lte=2200"`
	EndMonth    string                   `json:"endMonth" validate:"required,notblank,max=20"`
	EndYear     int                      `json:"endYear" validate:"required,gte=1900,lte=2200"`
	Status      entities.EducationStatus `json:"status" validate:"required,education_status"`
	Featured    *bool                    `json:"featured"`
}

func (r *CreateEducationRequest) Entity() *entities.Education {
	edu := &entities.Education{
		CourseName:  strings.TrimSpace(r.CourseName),
		CollegeName: strings.TrimSpace(r.CollegeName),
		StartMonth:  r.StartMonth,
		StartYear:   r.StartYear,
		EndMonth:    r.EndMonth,
		EndYear:     r.EndYear,
		Status:      r.Status,
	}
	edu.Featured = boolValue(r.Featured, false)
	return edu
}

type UpdateEducationRequest struct {
	CourseName  *string                   `json:"courseName" validate:"omitempty,notblank,max=300"`
	CollegeName *string                   `json:"collegeName" validate:"omitempty,notblank,max=300"`
	StartMonth  *string                   `json:"startMonth" validate:"omitempty,notblank,max=20"`
	StartYear   *int                      `json:"startYear" validate:"omitempty,gte=1900,lte=2200"`
	EndMonth    *string                   `json:"endMonth" validate:"omitempty,notblank,max=20"`
	EndYear     *int                      `json:"endYear" validate:"omitempty,gte=1900,lte=2200"`
	Status      *entities.EducationStatus `json:"status" validate:"omitempty,education_status"`
	Featured    *bool                     `json:"featured"`
}

func (r *UpdateEducationRequest) Apply(edu *entities.Education) {
	if r.CourseName != nil {
		edu.CourseName = strings.TrimSpace(*r.CourseName)
	}
	if r.CollegeName != nil {
		edu.CollegeName = strings.TrimSpace(*r.CollegeName)
	}
	if r.StartMonth != nil {
		edu.StartMonth = *r.StartMonth
	}
	if r.StartYear != nil {
		edu.StartYear = *r.StartYear
	}
	if r.EndMonth != nil {
		edu.EndMonth = *r.EndMonth
	}
	if r.EndYear != nil {
		edu.EndYear = *r.EndYear
	}
	if r.Status != nil {
		edu.Status = *r.Status
	}
	if r.Featured != nil {
		edu.Featured = *r.Featured
	}
}

// Selected project related types
type CreateSelectedProjectRequest struct {
	GithubRepoID      int64   `json:"githubRepoId" validate:"required,gt=0"`
	Name              string  `json:"name" validate:"required,notblank,max=200"`
	Description       *string `json:"description" validate:"omitempty,max=2000"`
	HTMLURL           string  `json:"htmlUrl" validate:"required,url"`
	Language          *string `json:"language" validate:"omitempty,max=100"`
	StargazersCount   *int    `json:"stargazersCount" validate:"omitempty,gte=0"`
	ForksCount        *int    `json:"forksCount" validate:"omitempty,gte=0"`
	IsSelected        *bool   `json:"isSelected"`
	CustomDescription *string `json:"customDescription" validate:"omitempty,max=2000"`
	ImageURL          *string `json:"imageUrl" validate:"omitempty,optional_url"`
	Featured          *bool   `json:"featured"`
	DisplayOrder      *int    `json:"displayOrder" validate:"omitempty,gte=0"`
}

// Entity leaves DisplayOrder negative when the request did not set one so the
// repository can place the record after the existing ones.
func (r *CreateSelectedProjectRequest) Entity() *entities.SelectedProject {
	return &entities.SelectedProject{
		GithubRepoID:      r.GithubRepoID,
		Name:              strings.TrimSpace(r.Name),
		Description:       optional(r.Description),
		HTMLURL:           r.HTMLURL,
		Language:          optional(r.Language),
		StargazersCount:   intValue(r.StargazersCount, 0),
		ForksCount:        intValue(r.ForksCount, 0),
		IsSelected:        boolValue(r.IsSelected, true),
		CustomDescription: optional(r.CustomDescription),
		ImageURL:          optional(r.ImageURL),
		Featured:          boolValue(r.Featured, false),
		DisplayOrder:      intValue(r.DisplayOrder, -1),
	}
}

type UpdateSelectedProjectRequest struct {
	Name              *string `json:"name" validate:"omitempty,notblank,max=200"`
	Description       *string `json:"description" validate:"omitempty,max=2000"`
	HTMLURL           *string `json:"htmlUrl" validate:"omitempty,url"`
	Language          *string `json:"language" validate:"omitempty,max=100"`
	StargazersCount   *int    `json:"stargazersCount" validate:"omitempty,gte=0"`
	ForksCount        *int    `json:"forksCount" validate:"omitempty,gte=0"`
	IsSelected        *bool   `json:"isSelected"`
	CustomDescription *string `json:"customDescription" validate:"omitempty,max=2000"`
	ImageURL          *string `json:"imageUrl" validate:"omitempty,optional_url"`
	Featured          *bool   `json:"featured"`
	DisplayOrder      *int    `json:"displayOrder" validate:"omitempty,gte=0"`
}

func (r *UpdateSelectedProjectRequest) Apply(p *entities.SelectedProject) {
	if r.Name != nil {
		p.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		p.Description = optional(r.Description)
	}
	if r.HTMLURL != nil {
		p.HTMLURL = *r.HTMLURL
	}
	if r.Language != nil {
		p.Language = optional(r.Language)
	}
	if r.StargazersCount != nil {
		p.StargazersCount = *r.StargazersCount
	}
	if r.ForksCount != nil {
		p.ForksCount = *r.ForksCount
	}
	if r.IsSelected != nil {
		p.IsSelected = *r.IsSelected
	}
	if r.CustomDescription != nil {
		p.CustomDescription = optional(r.CustomDescription)
	}
	if r.ImageURL != nil {
		p.ImageURL = optional(r.ImageURL)
	}
	if r.Featured != nil {
		p.Featured = *r.Featured
	}
	if r.DisplayOrder != nil {
		p.DisplayOrder = *r.DisplayOrder
	}
}

type ShowcaseRefreshResult struct {
	Checked int                         `json:"checked"`
	Updated []*entities.SelectedProject `json:"updated"`
}

// Project related types
type UpsertProjectRequest struct {
	GithubID          int64   `json:"githubId" validate:"required,gt=0"`
	Name              string  `json:"name" validate:"required,notblank,max=200"`
	Description       *string `json:"description" validate:"omitempty,max=2000"`
	ImageURL          *string `json:"imageUrl" validate:"omitempty,max=2000"`
	VideoURL          *string `json:"videoUrl" validate:"omitempty,max=2000"`
	Category          *string `json:"category" validate:"omitempty,max=100"`
	CustomDescription *string `json:"customDescription" validate:"omitempty,max=2000"`
	Featured          *bool   `json:"featured"`
}

func (r *UpsertProjectRequest) Entity() *entities.Project {
	p := &entities.Project{
		GithubID:          r.GithubID,
		Name:              strings.TrimSpace(r.Name),
		Description:       optional(r.Description),
		ImageURL:          optional(r.ImageURL),
		VideoURL:          optional(r.VideoURL),
		Category:          optional(r.Category),
		CustomDescription: optional(r.CustomDescription),
	}
	p.Featured = boolValue(r.Featured, false)
	return p
}

// Apply overwrites the stored project with the fields the request carries.
func (r *UpsertProjectRequest) Apply(p *entities.Project) {
	p.Name = strings.TrimSpace(r.Name)
	if r.Description != nil {
		p.Description = optional(r.Description)
	}
	if r.ImageURL != nil {
		p.ImageURL = optional(r.ImageURL)
	}
	if r.VideoURL != nil {
		p.VideoURL = optional(r.VideoURL)
	}
	if r.Category != nil {
		p.Category = optional(r.Category)
	}
	if r.CustomDescription != nil {
		p.CustomDescription = optional(r.CustomDescription)
	}
	if r.Featured != nil {
		p.Featured = *r.Featured
	}
}

// MediaUpload is an uploaded file handed to the project service
type MediaUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Contact related types
type CreateContactMessageRequest struct {
	Name    string `json:"name" validate:"required,notblank,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,notblank,max=300"`
	Message string `json:"message" validate:"required,notblank,max=5000"`
}

type CreateContactInfoRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	LinkedinURL *string `json:"linkedinUrl" validate:"omitempty,optional_url"`
	GithubURL   *string `json:"githubUrl" validate:"omitempty,optional_url"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=50"`
	Location    *string `json:"location" validate:"omitempty,max=200"`
}

type UpdateContactInfoRequest struct {
	Email       *string `json:"email" validate:"omitempty,email"`
	LinkedinURL *string `json:"linkedinUrl" validate:"omitempty,optional_url"`
	GithubURL   *string `json:"githubUrl" validate:"omitempty,optional_url"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=50"`
	Location    *string `json:"location" validate:"omitempty,max=200"`
}

func (r *UpdateContactInfoRequest) Apply(info *entities.ContactInfo) {
	if r.Email != nil {
		info.Email = strings.TrimSpace(*r.Email)
	}
	if r.LinkedinURL != nil {
		info.LinkedinURL = optional(r.LinkedinURL)
	}
	if r.GithubURL != nil {
		info.GithubURL = optional(r.GithubURL)
	}
	if r.PhoneNumber != nil {
		info.PhoneNumber = optional(r.PhoneNumber)
	}
	if r.Location != nil {
		info.Location = optional(r.Location)
	}
}

// Response types
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
