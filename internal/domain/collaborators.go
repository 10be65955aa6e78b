package domain

import "context"

// Proficiency levels queried against the course catalog.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// CourseLevels returns the proficiency levels in query order.
func CourseLevels() []string {
	return []string{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

// Extraction is the raw material pulled out of an uploaded document.
type Extraction struct {
	Text   string
	Links  []string
	Images []string
}

// DocumentExtractor is the PDF extraction collaborator. Fails with
// ErrExtractionFailed on unreadable or corrupt input.
type DocumentExtractor interface {
	Extract(path string) (*Extraction, error)
}

// ModelClient is the language-model collaborator. No contract on output
// shape; fails with ErrCollaboratorUnavailable or ErrCollaboratorTimeout.
type ModelClient interface {
	// Complete runs the CV-parsing / generation model.
	Complete(ctx context.Context, prompt string) (string, error)
	// Chat runs the conversational model.
	Chat(ctx context.Context, prompt string) (string, error)
}

// CourseResult is one hit from the course catalog.
type CourseResult struct {
	Title       string
	URL         string
	Description string
	Rating      float64
	Duration    string
}

// CourseSearcher is the course catalog collaborator. May return an
// empty list; callers treat failures as empty results (fail-open).
type CourseSearcher interface {
	SearchCourses(ctx context.Context, skill, level string) ([]CourseResult, error)
}
