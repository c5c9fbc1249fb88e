package jobstore

import "github.com/dgentry/jobsearch-agent/internal/types"

// SampleJobs returns the built-in demo dataset used when the external store
// is not configured or unreachable. Returns a fresh slice each call so
// callers can mutate their copy freely.
func SampleJobs() []types.JobPosting {
	return []types.JobPosting{
		{
			JobID:        "edj-123456",
			Source:       "EdJoin",
			Title:        "Principal - Elementary School",
			Organization: "Sacramento City Unified School District",
			Location:     "Sacramento, CA",
			State:        "CA",
			SalaryMin:    salary(125000),
			SalaryMax:    salary(155000),
			Deadline:     "2025-02-15",
			URL:          "https://edjoin.org/Home/JobPosting/123456",
			DatePosted:   "2025-01-15",
			DateScraped:  "2025-01-19",
			IsNew:        true,
			IsActive:     true,
			MatchScore:   score(92),
			MatchNotes:   "Strong match: Ed.D., 20 years admin experience, CA credential",
			Status:       "New",
		},
		{
			JobID:        "wasa-789012",
			Source:       "WASA",
			Title:        "Superintendent",
			Organization: "Spokane Public Schools",
			Location:     "Spokane, WA",
			State:        "WA",
			SalaryMin:    salary(180000),
			SalaryMax:    salary(220000),
			Deadline:     "2025-02-28",
			URL:          "https://wasa-oly.org/jobs/789012",
			DatePosted:   "2025-01-10",
			DateScraped:  "2025-01-19",
			IsNew:        true,
			IsActive:     true,
			MatchScore:   score(88),
			MatchNotes:   "Excellent match: Superintendent cert, district leadership experience",
			Status:       "New",
		},
		{
			JobID:        "ss-345678",
			Source:       "SchoolSpring",
			Title:        "Assistant Superintendent of Curriculum & Instruction",
			Organization: "Portland Public Schools",
			Location:     "Portland, OR",
			State:        "OR",
			SalaryMin:    salary(145000),
			SalaryMax:    salary(175000),
			Deadline:     "2025-02-20",
			URL:          "https://schoolspring.com/job/345678",
			DatePosted:   "2025-01-12",
			DateScraped:  "2025-01-19",
			IsActive:     true,
			MatchScore:   score(85),
			MatchNotes:   "Good match: Curriculum leadership experience, ASCD academy graduate",
			Status:       "New",
		},
		{
			JobID:        "hej-901234",
			Source:       "HigherEdJobs",
			Title:        "Dean of Education",
			Organization: "University of Nevada, Reno",
			Location:     "Reno, NV",
			State:        "NV",
			SalaryMin:    salary(150000),
			SalaryMax:    salary(190000),
			Deadline:     "2025-03-01",
			URL:          "https://higheredjobs.com/job/901234",
			DatePosted:   "2025-01-08",
			DateScraped:  "2025-01-19",
			IsActive:     true,
			MatchScore:   score(78),
			MatchNotes:   "Good match: Ed.D., publications, but limited higher ed admin experience",
			Status:       "New",
		},
		{
			JobID:        "edj-567890",
			Source:       "EdJoin",
			Title:        "Director of Student Services",
			Organization: "Fairfield-Suisun Unified School District",
			Location:     "Fairfield, CA",
			State:        "CA",
			SalaryMin:    salary(135000),
			SalaryMax:    salary(160000),
			Deadline:     "2025-02-10",
			URL:          "https://edjoin.org/Home/JobPosting/567890",
			DatePosted:   "2025-01-14",
			DateScraped:  "2025-01-19",
			IsNew:        true,
			IsActive:     true,
			MatchScore:   score(94),
			MatchNotes:   "Excellent match: Current FSUSD employee, strong student services background",
			Status:       "New",
		},
	}
}

func salary(v float64) *float64 { return &v }

func score(v int) *int { return &v }
