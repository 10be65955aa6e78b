// Package normalizer repairs language-model replies into the
// schema-conformant shapes the rest of the pipeline persists. Models
// wrap JSON in prose and code fences and drift on field types; this
// package recovers the payload and applies a fixed set of idempotent
// coercion rules. It never repairs truly unparsable input, it only
// tolerates the drift it knows about.
package normalizer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Hadi891/CareerCompass/internal/domain"
)

// ExtractObject recovers the JSON object embedded in a model reply by
// slicing from the first '{' to the last '}'. Prose and code fences
// around the object are discarded.
func ExtractObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("%w: no JSON object in reply", domain.ErrMalformedResponse)
	}
	return raw[start : end+1], nil
}

// ExtractArray recovers the JSON array embedded in a model reply by
// slicing from the first '[' to the last ']'.
func ExtractArray(raw string) (string, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("%w: no JSON array in reply", domain.ErrMalformedResponse)
	}
	return raw[start : end+1], nil
}

type rawMeta struct {
	Name     FlexString `json:"name"`
	Email    FlexString `json:"email"`
	Phone    FlexString `json:"phone"`
	Bio      FlexString `json:"bio"`
	LinkedIn FlexString `json:"linkedin"`
	GitHub   FlexString `json:"github"`
}

type rawEducation struct {
	Degree      FlexString `json:"degree"`
	University  FlexString `json:"university"`
	Location    FlexString `json:"location"`
	GPA         FlexString `json:"gpa"`
	Description FlexString `json:"description"`
	StartDate   FlexString `json:"start_date"`
	EndDate     FlexString `json:"end_date"`
}

type rawExperience struct {
	Role        FlexString `json:"role"`
	Company     FlexString `json:"company"`
	Location    FlexString `json:"location"`
	Date        FlexString `json:"date"`
	Description FlexString `json:"description"`
}

type rawProject struct {
	Name        FlexString   `json:"name"`
	Tools       StringOrList `json:"tools"`
	Description FlexString   `json:"description"`
	Link        OneOrMany    `json:"link"`
}

type rawCV struct {
	Meta          *rawMeta                 `json:"meta"`
	Name          FlexString               `json:"name"`
	Email         FlexString               `json:"email"`
	Phone         FlexString               `json:"phone"`
	Bio           FlexString               `json:"bio"`
	LinkedIn      FlexString               `json:"linkedin"`
	GitHub        FlexString               `json:"github"`
	Domain        FlexString               `json:"domain"`
	Education     EntryList[rawEducation]  `json:"education"`
	Experience    EntryList[rawExperience] `json:"experience"`
	Skills        EntryList[NameOrString]  `json:"skills"`
	Projects      EntryList[rawProject]    `json:"projects"`
	MissingSkills EntryList[FlexString]    `json:"missing_skills"`
}

// Normalize parses a model reply into a ParsedCV. Coercions applied,
// in order: identity fields are lifted into a meta block when the
// model emitted them at the top level; skills collapse to names;
// tool strings split on commas; project links keep only absolute
// http(s) URLs; linkedin/github values are stripped of stray quotes;
// domain and missing_skills are lifted out of the record tree.
// Missing or partial sections never fail the parse; only bracket-less
// or unparsable input does, with ErrMalformedResponse.
func Normalize(raw string) (*domain.ParsedCV, error) {
	payload, err := ExtractObject(raw)
	if err != nil {
		return nil, err
	}

	var rc rawCV
	if err := json.Unmarshal([]byte(payload), &rc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	meta := rawMeta{
		Name:     rc.Name,
		Email:    rc.Email,
		Phone:    rc.Phone,
		Bio:      rc.Bio,
		LinkedIn: rc.LinkedIn,
		GitHub:   rc.GitHub,
	}
	if rc.Meta != nil {
		meta = *rc.Meta
	}

	parsed := &domain.ParsedCV{
		Meta: domain.CVMeta{
			Name:     meta.Name.String(),
			Email:    meta.Email.String(),
			Phone:    meta.Phone.String(),
			Bio:      meta.Bio.String(),
			LinkedIn: stripQuotes(meta.LinkedIn.String()),
			GitHub:   stripQuotes(meta.GitHub.String()),
		},
		Domain:        strings.TrimSpace(rc.Domain.String()),
		MissingSkills: []string{},
	}

	for _, e := range rc.Education {
		parsed.Education = append(parsed.Education, domain.Education{
			Degree:      e.Degree.String(),
			University:  e.University.String(),
			Location:    e.Location.String(),
			GPA:         e.GPA.String(),
			Description: e.Description.String(),
			StartDate:   e.StartDate.String(),
			EndDate:     e.EndDate.String(),
		})
	}
	for _, e := range rc.Experience {
		parsed.Experience = append(parsed.Experience, domain.Experience{
			Role:        e.Role.String(),
			Company:     e.Company.String(),
			Location:    e.Location.String(),
			Date:        e.Date.String(),
			Description: e.Description.String(),
		})
	}
	for _, s := range rc.Skills {
		if s.Valid {
			parsed.Skills = append(parsed.Skills, s.Name)
		}
	}
	for _, p := range rc.Projects {
		parsed.Projects = append(parsed.Projects, domain.Project{
			Name:        p.Name.String(),
			Tools:       p.Tools,
			Description: p.Description.String(),
			Links:       filterURLs(p.Link),
		})
	}
	for _, ms := range rc.MissingSkills {
		if s := strings.TrimSpace(ms.String()); s != "" {
			parsed.MissingSkills = append(parsed.MissingSkills, s)
		}
	}

	return parsed, nil
}

type rawSuggestion struct {
	Name        FlexString   `json:"name"`
	Description FlexString   `json:"description"`
	Tools       StringOrList `json:"tools"`
	Difficulty  FlexString   `json:"difficulty"`
	Tasks       OneOrMany    `json:"tasks"`
}

// NormalizeSuggestions parses a project-suggestion reply and enforces
// the batch shape: exactly four entries, one easy, two medium, one
// hard, six tasks each. A batch violating the shape is rejected
// wholesale with ErrMalformedResponse; partially valid batches are
// never repaired.
func NormalizeSuggestions(raw string) ([]domain.SuggestedProject, error) {
	payload, err := ExtractArray(raw)
	if err != nil {
		return nil, err
	}

	var items []rawSuggestion
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if len(items) != domain.SuggestionBatchSize {
		return nil, fmt.Errorf("%w: expected %d suggestions, got %d",
			domain.ErrMalformedResponse, domain.SuggestionBatchSize, len(items))
	}

	counts := map[string]int{}
	projects := make([]domain.SuggestedProject, 0, len(items))
	for _, item := range items {
		difficulty := strings.ToLower(strings.TrimSpace(item.Difficulty.String()))
		counts[difficulty]++
		if len(item.Tasks) != domain.SuggestionTaskCount {
			return nil, fmt.Errorf("%w: suggestion %q has %d tasks, want %d",
				domain.ErrMalformedResponse, item.Name.String(), len(item.Tasks), domain.SuggestionTaskCount)
		}
		projects = append(projects, domain.SuggestedProject{
			Name:        item.Name.String(),
			Description: item.Description.String(),
			Tools:       item.Tools,
			Difficulty:  difficulty,
			Tasks:       item.Tasks,
		})
	}

	if counts[domain.DifficultyEasy] != 1 || counts[domain.DifficultyMedium] != 2 || counts[domain.DifficultyHard] != 1 {
		return nil, fmt.Errorf("%w: difficulty distribution easy=%d medium=%d hard=%d",
			domain.ErrMalformedResponse,
			counts[domain.DifficultyEasy], counts[domain.DifficultyMedium], counts[domain.DifficultyHard])
	}

	return projects, nil
}

// filterURLs keeps only absolute http(s) URLs; everything else,
// including relative paths and other schemes, is dropped.
func filterURLs(links []string) []string {
	var out []string
	for _, l := range links {
		l = strings.TrimSpace(l)
		if strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://") {
			out = append(out, l)
		}
	}
	return out
}

// stripQuotes removes stray leading and trailing quote characters that
// models occasionally leave around profile URLs.
func stripQuotes(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}
