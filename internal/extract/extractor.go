// Package extract turns raw resume bytes into a best-effort guess of the
// candidate's contact details. Every field of the result is optional; callers
// must treat an empty field as "unknown", not as an error.
package extract

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"code.sajari.com/docconv"
)

// Contact is the structured guess produced from one resume.
type Contact struct {
	Name   string
	Email  string
	Phone  string
	Skills []string
}

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract converts the PDF bytes to text and scans it for contact details.
func (e *Extractor) Extract(data []byte) (Contact, error) {
	res, err := docconv.Convert(bytes.NewReader(data), "application/pdf", true)
	if err != nil {
		return Contact{}, fmt.Errorf("failed to parse document: %w", err)
	}
	return FromText(res.Body), nil
}

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d?[\s.\-]?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`)
)

// Common skill keywords scanned for in the resume text.
var skillKeywords = []string{
	"Go", "Golang", "Python", "Java", "JavaScript", "TypeScript",
	"React", "Vue", "Angular", "Node.js", "Docker", "Kubernetes",
	"PostgreSQL", "MySQL", "MongoDB", "Redis", "AWS", "Azure", "GCP",
	"GraphQL", "REST", "API", "Microservices", "Git", "CI/CD",
	"Machine Learning", "AI", "Data Science", "DevOps",
}

// FromText scans extracted resume text for an email, a phone number, a name
// guess and skill keywords. Purely heuristic: the first email/phone found
// wins, and the name guess is the first short line that doesn't look like
// contact info.
func FromText(text string) Contact {
	c := Contact{
		Email: emailRe.FindString(text),
		Phone: phoneRe.FindString(text),
		Name:  guessName(text),
	}

	textLower := strings.ToLower(text)
	for _, skill := range skillKeywords {
		if strings.Contains(textLower, strings.ToLower(skill)) {
			c.Skills = append(c.Skills, skill)
		}
	}
	return c
}

// guessName picks the first line of at most four words that contains no
// digits and no @. Resumes almost always lead with the candidate's name.
func guessName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.ContainsAny(line, "@0123456789") {
			continue
		}
		words := strings.Fields(line)
		if len(words) > 4 {
			continue
		}
		return strings.Join(words, " ")
	}
	return ""
}
