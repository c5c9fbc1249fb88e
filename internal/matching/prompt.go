// Package matching implements the job-matching pipeline: prompt construction,
// the single outbound model call, balanced-bracket recovery of the model's
// JSON answer, and per-element normalization back to structured results.
package matching

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dgentry/jobsearch-agent/internal/profile"
	"github.com/dgentry/jobsearch-agent/internal/prompts"
	"github.com/dgentry/jobsearch-agent/internal/types"
)

// notSpecified marks absent salary bounds and deadlines in the prompt.
// A literal "null" here tends to leak into the model's answer.
const notSpecified = "Not specified"

// BuildMatchPrompt renders the candidate profile and an ordered job batch
// into the single instruction string sent to the model. Identical inputs
// produce byte-identical output: no timestamps, no randomness, stable
// iteration order throughout.
func BuildMatchPrompt(p profile.CandidateProfile, jobs []types.JobPosting) string {
	template := prompts.MustGet("matching.json", "score-jobs")
	return prompts.Format(template, map[string]string{
		"ProfileBlock": buildProfileBlock(p),
		"JobsBlock":    buildJobsBlock(jobs),
	})
}

// buildProfileBlock enumerates the candidate's credentials in fixture order.
func buildProfileBlock(p profile.CandidateProfile) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "**Name:** %s\n\n", p.Name)

	sb.WriteString("**Education:**\n")
	for _, e := range p.Education {
		fmt.Fprintf(&sb, "- %s in %s, %s (%d)\n", e.Degree, e.Field, e.Institution, e.Year)
	}

	sb.WriteString("\n**Certifications:**\n")
	for _, c := range p.Certifications {
		fmt.Fprintf(&sb, "- %s\n", c)
	}

	sb.WriteString("\n**Experience:**\n")
	fmt.Fprintf(&sb, "- Total Administrative Experience: %d years\n", p.Experience.TotalAdminYears)
	fmt.Fprintf(&sb, "- Total Teaching Experience: %d years\n", p.Experience.TotalTeachingYears)
	fmt.Fprintf(&sb, "- Current Role: %s\n", p.Experience.CurrentRole)

	sb.WriteString("\n**Key Accomplishments:**\n")
	for _, h := range p.Experience.Highlights {
		fmt.Fprintf(&sb, "- %s\n", h)
	}

	sb.WriteString("\n**Publications:**\n")
	for _, pub := range p.Publications {
		fmt.Fprintf(&sb, "- %s\n", pub)
	}

	fmt.Fprintf(&sb, "\n**Geographic Preferences:** %s\n", strings.Join(p.GeographicPreferences, ", "))

	sb.WriteString("\n**Key Strengths:**\n")
	for _, s := range p.Strengths {
		fmt.Fprintf(&sb, "- %s\n", s)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// buildJobsBlock enumerates each job with a 1-based index and its job_id.
// The job_id line is what lets the normalizer re-associate answers.
func buildJobsBlock(jobs []types.JobPosting) string {
	var sb strings.Builder

	for i, job := range jobs {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "### Job %d: %s\n", i+1, job.Title)
		fmt.Fprintf(&sb, "- **Organization:** %s\n", job.Organization)
		fmt.Fprintf(&sb, "- **Location:** %s\n", job.Location)
		fmt.Fprintf(&sb, "- **Salary Range:** %s\n", formatSalaryRange(job.SalaryMin, job.SalaryMax))
		fmt.Fprintf(&sb, "- **Deadline:** %s\n", orNotSpecified(job.Deadline))
		fmt.Fprintf(&sb, "- **Source:** %s\n", job.Source)
		fmt.Fprintf(&sb, "- **Job ID:** %s\n", job.JobID)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatSalaryRange(minSalary, maxSalary *float64) string {
	if minSalary == nil && maxSalary == nil {
		return notSpecified
	}
	return fmt.Sprintf("%s - %s", formatSalary(minSalary), formatSalary(maxSalary))
}

func formatSalary(v *float64) string {
	if v == nil {
		return notSpecified
	}
	return "$" + groupThousands(int64(*v))
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}

// groupThousands formats n with comma separators, e.g. 125000 -> "125,000".
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var sb strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}
