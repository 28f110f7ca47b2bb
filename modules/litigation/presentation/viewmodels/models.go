package viewmodels

// Case is the API shape of a litigation case. Dates are ISO strings; empty
// optionals are omitted.
type Case struct {
	ID                  string   `json:"id"`
	CaseID              string   `json:"case_id"`
	Forum               string   `json:"forum"`
	CaseType            string   `json:"case_type,omitempty"`
	CaseNo              string   `json:"case_no,omitempty"`
	ConnectedCaseNos    string   `json:"connected_case_nos,omitempty"`
	IsAppeal            bool     `json:"is_appeal"`
	LowerCourt          string   `json:"lower_court,omitempty"`
	LowerCourtCaseNo    string   `json:"lower_court_case_no,omitempty"`
	LowerCourtOrderDate string   `json:"lower_court_order_date,omitempty"`
	CounselName         string   `json:"counsel_name,omitempty"`
	CounselContact      string   `json:"counsel_contact,omitempty"`
	ASGEngaged          bool     `json:"asg_engaged"`
	BriefFacts          string   `json:"brief_facts,omitempty"`
	LastHearingDate     string   `json:"last_hearing_date,omitempty"`
	NextHearingDate     string   `json:"next_hearing_date,omitempty"`
	AffidavitStatus     string   `json:"affidavit_status,omitempty"`
	CaseStatus          string   `json:"case_status"`
	FinalOrderDate      string   `json:"final_order_date,omitempty"`
	Petitioners         []Party  `json:"petitioners"`
	Respondents         []Party  `json:"respondents"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}

type Party struct {
	PartyType string `json:"party_type"`
	Number    int    `json:"number"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
}

type Hearing struct {
	ID          string `json:"id"`
	CaseID      string `json:"case_id"`
	HearingDate string `json:"hearing_date"`
	Brief       string `json:"brief,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type CaseList struct {
	Items   []Case `json:"items"`
	Total   int64  `json:"total"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type ForumCount struct {
	Forum string `json:"forum"`
	Count int64  `json:"count"`
}

type Stats struct {
	TotalCases      int64         `json:"total_cases"`
	ByStatus        []StatusCount `json:"by_status"`
	ByForum         []ForumCount  `json:"by_forum"`
	UpcomingCases   []Case        `json:"upcoming_cases"`
	RecentlyUpdated []Case        `json:"recently_updated"`
}

// ImportResult mirrors the importer outcome; Errors is capped by
// configuration with ErrorsOmitted carrying the overflow count.
type ImportResult struct {
	BatchID       string   `json:"batch_id"`
	Success       int      `json:"success_count"`
	Failed        int      `json:"error_count"`
	Errors        []string `json:"errors"`
	ErrorsOmitted int      `json:"errors_omitted,omitempty"`
	Unrecognized  []string `json:"unrecognized_columns,omitempty"`
}
