// Package profile holds the candidate profile fixture used for matching and
// document generation. The profile is embedded at compile time, parsed once,
// and treated as read-only for the life of the process.
package profile

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed profile.json
var profileJSON []byte

// Education is one degree held by the candidate.
type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Location    string `json:"location,omitempty"`
	Year        int    `json:"year"`
}

// Contact holds the candidate's contact details, used only for cover letters.
type Contact struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// ExperienceSummary is the condensed career summary used in match prompts.
type ExperienceSummary struct {
	TotalAdminYears    int      `json:"total_admin_years"`
	TotalTeachingYears int      `json:"total_teaching_years"`
	CurrentRole        string   `json:"current_role"`
	Highlights         []string `json:"highlights"`
}

// Position is one role in the candidate's full work history, used for
// resume-highlight suggestions.
type Position struct {
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	Location     string   `json:"location"`
	Dates        string   `json:"dates"`
	Highlights   []string `json:"highlights"`
}

// Teaching summarizes classroom experience prior to administration.
type Teaching struct {
	Years      int      `json:"years"`
	Levels     string   `json:"levels"`
	Subjects   string   `json:"subjects"`
	Highlights []string `json:"highlights"`
}

// CandidateProfile is the full structured description of the candidate.
// Instances are immutable by convention: nothing in this repository mutates a
// profile after load, so one value can be shared across concurrent requests.
type CandidateProfile struct {
	Name                  string            `json:"name"`
	Contact               Contact           `json:"contact"`
	Education             []Education       `json:"education"`
	Certifications        []string          `json:"certifications"`
	Experience            ExperienceSummary `json:"experience"`
	Positions             []Position        `json:"positions"`
	Teaching              Teaching          `json:"teaching"`
	Publications          []string          `json:"publications"`
	GeographicPreferences []string          `json:"geographic_preferences"`
	Strengths             []string          `json:"strengths"`
}

var (
	defaultOnce    sync.Once
	defaultProfile CandidateProfile
	defaultErr     error
)

// Default returns the embedded candidate profile. The embedded fixture is
// parsed on first use; a malformed fixture is a build defect and panics.
func Default() CandidateProfile {
	defaultOnce.Do(func() {
		defaultErr = json.Unmarshal(profileJSON, &defaultProfile)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("embedded profile.json is invalid: %v", defaultErr))
	}
	return defaultProfile
}

// Load parses a candidate profile from JSON, for callers that want to run the
// assistant with an alternate profile.
func Load(data []byte) (CandidateProfile, error) {
	var p CandidateProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return CandidateProfile{}, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	if p.Name == "" {
		return CandidateProfile{}, fmt.Errorf("profile is missing a name")
	}
	return p, nil
}
