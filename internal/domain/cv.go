package domain

import (
	"context"
	"time"
)

// CV is the header record for one uploaded résumé. A user's "current"
// CV is always the most recently created one; all child collections
// below are owned exclusively by their CV and cascade on delete.
type CV struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}

// CVMeta is the 1:1 identity block extracted from the résumé.
type CVMeta struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Bio      string `json:"bio"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Domain   string `json:"domain,omitempty"`
}

type Education struct {
	Degree      string `json:"degree"`
	University  string `json:"university"`
	Location    string `json:"location"`
	GPA         string `json:"gpa"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type Experience struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Project is a project listed on the résumé itself. Tools are stored as
// a comma-delimited string and reconstituted as a list on read; Links
// holds zero or more validated absolute URLs.
type Project struct {
	Name        string   `json:"name"`
	Tools       []string `json:"tools"`
	Description string   `json:"description"`
	Links       []string `json:"link"`
}

type Course struct {
	Skill       string  `json:"skill"`
	Level       string  `json:"level"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	Duration    string  `json:"duration"`
}

// ParsedCV is the normalized record tree produced by the response
// normalizer: schema-conformant, ready for direct structural mapping.
type ParsedCV struct {
	Meta          CVMeta
	Education     []Education
	Experience    []Experience
	Skills        []string
	Projects      []Project
	Domain        string
	MissingSkills []string
}

// CVSnapshot is the canonical external representation of a CV and its
// full derived graph. It is a view over relational state, reproducible
// at any time, never a cached artifact.
type CVSnapshot struct {
	ID                string             `json:"id"`
	Filename          string             `json:"filename"`
	CreatedAt         time.Time          `json:"created_at"`
	Meta              CVMeta             `json:"meta"`
	Education         []Education        `json:"education"`
	Experience        []Experience       `json:"experience"`
	Skills            []string           `json:"skills"`
	MissingSkills     []string           `json:"missing_skills"`
	Projects          []Project          `json:"projects"`
	Courses           []Course           `json:"courses"`
	SuggestedProjects []SuggestedProject `json:"suggested_projects"`
}

type CVRepository interface {
	// CreateSnapshot persists a complete CV snapshot (header, meta,
	// education, experience, skills, projects, missing skills) in one
	// transaction and returns the new CV id.
	CreateSnapshot(ctx context.Context, userID, filename string, parsed *ParsedCV) (string, error)
	// Delete removes a CV header; the database cascades to every child
	// collection including suggestion chat threads.
	Delete(ctx context.Context, cvID string) error
	// GetLatestByUser reassembles the full snapshot of the most recently
	// created CV. Returns ErrNotFound when the user has no CV.
	GetLatestByUser(ctx context.Context, userID string) (*CVSnapshot, error)
}

type CourseRepository interface {
	// ReplaceForCV deletes all prior course rows for the CV and inserts
	// the replacement set atomically.
	ReplaceForCV(ctx context.Context, cvID string, courses []Course) error
}

type CVUsecase interface {
	// IngestCV runs the full pipeline. Each call fully replaces the
	// user's derived data; not safe to run concurrently for one user
	// without external serialization.
	IngestCV(ctx context.Context, userID, filename string, document []byte) (*CVSnapshot, error)
	GetCVSnapshot(ctx context.Context, userID string) (*CVSnapshot, error)
}
