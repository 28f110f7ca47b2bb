package importing

import (
	"sort"
	"strings"

	"github.com/courtdesk/courtdesk/modules/litigation/domain/aggregates/caserecord"
)

// Enum cells go through the same normalization as headers before the alias
// lookup, so "High Court", "high court", and "HIGH-COURT" all resolve.

var forumAliases = map[string]caserecord.Forum{
	"cat":                            caserecord.ForumCAT,
	"central administrative tribunal": caserecord.ForumCAT,
	"hc":                             caserecord.ForumHC,
	"high court":                     caserecord.ForumHC,
	"sc":                             caserecord.ForumSC,
	"supreme court":                  caserecord.ForumSC,
	"other":                          caserecord.ForumOther,
	"other tribunals":                caserecord.ForumOther,
	"tribunal":                       caserecord.ForumOther,
	"ngt":                            caserecord.ForumOther,
	"nclt":                           caserecord.ForumOther,
	"itat":                           caserecord.ForumOther,
}

var statusAliases = map[string]caserecord.Status{
	"filed":                 caserecord.StatusFiled,
	"new":                   caserecord.StatusFiled,
	"admission":             caserecord.StatusAdmission,
	"admitted":              caserecord.StatusAdmission,
	"hearing":               caserecord.StatusHearing,
	"in hearing":            caserecord.StatusHearing,
	"under hearing":         caserecord.StatusHearing,
	"dismissed":             caserecord.StatusDismissed,
	"closed":                caserecord.StatusDismissed,
	"adjourned":             caserecord.StatusAdjourned,
	"reserved":              caserecord.StatusReserved,
	"reserved for judgment": caserecord.StatusReserved,
	"allowed":               caserecord.StatusAllowed,
	"disposed":              caserecord.StatusAllowed,
	"decided":               caserecord.StatusAllowed,
}

var affidavitAliases = map[string]caserecord.AffidavitStatus{
	"filed":                     caserecord.AffidavitFiled,
	"pwc submitted":             caserecord.AffidavitPWCToSC,
	"pwc submitted to sc":       caserecord.AffidavitPWCToSC,
	"pwc pending":               caserecord.AffidavitPWCPending,
	"pending":                   caserecord.AffidavitPWCPending,
	"affidavit submitted":       caserecord.AffidavitSubmittedSC,
	"affidavit submitted to sc": caserecord.AffidavitSubmittedSC,
	"draft received":            caserecord.AffidavitDraftRecv,
	"draft affidavit received":  caserecord.AffidavitDraftRecv,
	"sent for vetting":          caserecord.AffidavitVetting,
	"vetting":                   caserecord.AffidavitVetting,
}

// ParseForum resolves the required forum column. Strict mode fails on both
// missing and unrecognized values; lenient mode falls back to Other
// Tribunals.
func ParseForum(raw string, strict bool) (caserecord.Forum, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		if strict {
			return "", validationf("Forum", "Forum is required")
		}
		return caserecord.ForumOther, nil
	}

	if forum, ok := forumAliases[NormalizeHeader(s)]; ok {
		return forum, nil
	}
	if strict {
		return "", validationf("Forum",
			"Invalid forum '%s'. Valid values: %s", raw, joinValues(forumValues()))
	}
	return caserecord.ForumOther, nil
}

// ParseStatus resolves case status. An absent value defaults to Filed in
// both modes; only an unrecognized non-empty value distinguishes them.
func ParseStatus(raw string, strict bool) (caserecord.Status, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return caserecord.StatusFiled, nil
	}

	if status, ok := statusAliases[NormalizeHeader(s)]; ok {
		return status, nil
	}
	if strict {
		return "", validationf("Case Status",
			"Invalid case status '%s'. Valid values: %s", raw, joinValues(statusValues()))
	}
	return caserecord.StatusFiled, nil
}

// ParseAffidavitStatus resolves the optional affidavit column; absence is
// not an error in either mode.
func ParseAffidavitStatus(raw string, strict bool) (caserecord.AffidavitStatus, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return caserecord.AffidavitNone, nil
	}

	if status, ok := affidavitAliases[NormalizeHeader(s)]; ok {
		return status, nil
	}
	if strict {
		return "", validationf("Affidavit Status",
			"Invalid affidavit status '%s'. Valid values: %s", raw, joinValues(affidavitValues()))
	}
	return caserecord.AffidavitNone, nil
}

func forumValues() []string {
	seen := map[string]struct{}{}
	for _, v := range forumAliases {
		seen[string(v)] = struct{}{}
	}
	return keys(seen)
}

func statusValues() []string {
	seen := map[string]struct{}{}
	for _, v := range statusAliases {
		seen[string(v)] = struct{}{}
	}
	return keys(seen)
}

func affidavitValues() []string {
	seen := map[string]struct{}{}
	for _, v := range affidavitAliases {
		seen[string(v)] = struct{}{}
	}
	return keys(seen)
}

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func joinValues(values []string) string {
	return strings.Join(values, ", ")
}
