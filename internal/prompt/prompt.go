// Package prompt builds the text prompts sent to the language-model
// collaborators. Prompts are plain strings; conversational context is
// reconstructed from durable storage on every turn, never kept in
// model-side session state.
package prompt

import (
	"fmt"
	"strings"

	"github.com/Hadi891/CareerCompass/internal/domain"
)

// BuildParse builds the CV extraction prompt. Profile links detected in
// the document are surfaced to the model so it fills the linkedin and
// github fields even when the PDF stores them as bare hyperlinks.
func BuildParse(text string, links []string) string {
	var linkedin, github string
	for _, l := range links {
		switch {
		case linkedin == "" && strings.Contains(l, "linkedin.com"):
			linkedin = l
		case github == "" && strings.Contains(l, "github.com"):
			github = l
		}
	}

	var b strings.Builder
	b.WriteString("You are a resume parser. Extract the following resume into a single JSON object.\n")
	b.WriteString("Return ONLY the JSON object, no commentary.\n\n")
	b.WriteString("The object must have these keys:\n")
	b.WriteString(`  "meta": {"name", "email", "phone", "bio", "linkedin", "github"}` + "\n")
	b.WriteString(`  "domain": the candidate's professional domain, e.g. "Backend Development"` + "\n")
	b.WriteString(`  "education": [{"degree", "university", "location", "gpa", "description", "start_date", "end_date"}]` + "\n")
	b.WriteString(`  "experience": [{"role", "company", "location", "date", "description"}]` + "\n")
	b.WriteString(`  "skills": ["skill name", ...]` + "\n")
	b.WriteString(`  "projects": [{"name", "tools", "description", "link"}]` + "\n")
	b.WriteString(`  "missing_skills": skills commonly expected in the domain that the resume lacks` + "\n\n")

	if linkedin != "" {
		fmt.Fprintf(&b, "The candidate's LinkedIn profile is %s\n", linkedin)
	}
	if github != "" {
		fmt.Fprintf(&b, "The candidate's GitHub profile is %s\n", github)
	}

	b.WriteString("\nResume text:\n")
	b.WriteString(text)
	return b.String()
}

// BuildSuggestions builds the project-idea generation prompt. The
// contract with the model is strict: four ideas, one easy, two medium,
// one hard, each with exactly six tasks and three to five tools, as a
// top-level JSON array.
func BuildSuggestions(domainName string, skills []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest 4 portfolio project ideas for a %s candidate with these skills: %s.\n\n",
		domainName, strings.Join(skills, ", "))
	b.WriteString("Exactly one project must be easy, exactly two medium, exactly one hard.\n")
	b.WriteString("Each project must have:\n")
	b.WriteString(`  "name": short project title` + "\n")
	b.WriteString(`  "description": one paragraph` + "\n")
	b.WriteString(`  "tools": 3 to 5 tool names` + "\n")
	b.WriteString(`  "difficulty": "easy", "medium" or "hard"` + "\n")
	b.WriteString(`  "tasks": exactly 6 ordered implementation steps` + "\n\n")
	b.WriteString("Return ONLY a JSON array of the 4 project objects, no commentary.\n")
	return b.String()
}

// BuildChat builds the chat prompt for one turn: the project context,
// the full stored history as "sender: content" lines, the new
// utterance, and a trailing assistant cue.
func BuildChat(project *domain.SuggestedProject, history []domain.ChatMessage, utterance string) string {
	var b strings.Builder
	b.WriteString("You are a helpful mentor guiding a developer through a portfolio project.\n\n")
	fmt.Fprintf(&b, "Project: %s\n", project.Name)
	fmt.Fprintf(&b, "Description: %s\n", project.Description)
	fmt.Fprintf(&b, "Tools: %s\n", strings.Join(project.Tools, ", "))
	b.WriteString("Tasks:\n")
	for i, task := range project.Tasks {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, task)
	}
	b.WriteString("\nConversation so far:\n")
	for _, msg := range history {
		fmt.Fprintf(&b, "%s: %s\n", msg.Sender, msg.Content)
	}
	fmt.Fprintf(&b, "user: %s\nassistant:", utterance)
	return b.String()
}
