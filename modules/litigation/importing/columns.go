// Package importing turns spreadsheet workbooks with unpredictable column
// naming into validated case records. Column headers are matched against a
// fixed alias table after normalization; cell values go through field-level
// parsers whose strictness is toggled per import.
package importing

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Field is a canonical column name understood by the importer.
type Field string

const (
	FieldCaseID           Field = "case_id"
	FieldForum            Field = "forum"
	FieldCaseType         Field = "case_type"
	FieldCaseNo           Field = "case_no"
	FieldConnectedCaseNos Field = "connected_case_nos"
	FieldIsAppeal         Field = "is_appeal"
	FieldLowerCourtCaseNo Field = "lower_court_case_no"
	FieldLowerCourt       Field = "lower_court"
	FieldLowerCourtDate   Field = "lower_court_order_date"
	FieldCounselName      Field = "counsel_name"
	FieldCounselContact   Field = "counsel_contact"
	FieldASGEngaged       Field = "asg_engaged"
	FieldBriefFacts       Field = "brief_facts"
	FieldLastHearingDate  Field = "last_hearing_date"
	FieldNextHearingDate  Field = "next_hearing_date"
	FieldAffidavitStatus  Field = "affidavit_status"
	FieldCaseStatus       Field = "case_status"
	FieldFinalOrderDate   Field = "final_order_date"

	FieldPetitioner1Name    Field = "petitioner_1_name"
	FieldPetitioner1Address Field = "petitioner_1_address"
	FieldPetitioner2Name    Field = "petitioner_2_name"
	FieldPetitioner2Address Field = "petitioner_2_address"
	FieldPetitioner3Name    Field = "petitioner_3_name"
	FieldPetitioner3Address Field = "petitioner_3_address"
	FieldRespondent1Name    Field = "respondent_1_name"
	FieldRespondent1Address Field = "respondent_1_address"
	FieldRespondent2Name    Field = "respondent_2_name"
	FieldRespondent2Address Field = "respondent_2_address"
	FieldRespondent3Name    Field = "respondent_3_name"
	FieldRespondent3Address Field = "respondent_3_address"
)

type fieldAliases struct {
	field   Field
	aliases []string
}

// columnMappings maps each canonical field to the header spellings seen in
// the wild. Order matters twice: fields are resolved in declared order, and
// within a field the first alias present in the sheet wins.
var columnMappings = []fieldAliases{
	{FieldCaseID, []string{
		"case id", "caseid", "case_id", "system id", "systemid", "id", "case identifier",
	}},
	{FieldForum, []string{
		"forum", "court", "court type", "forum type", "tribunal", "court/forum",
	}},
	{FieldCaseType, []string{
		"case type", "casetype", "case_type", "type", "matter type", "type of case",
	}},
	{FieldCaseNo, []string{
		"case no", "case no.", "caseno", "case_no", "case number", "casenumber",
		"case_number", "writ no", "petition no", "appeal no", "case ref",
	}},
	{FieldConnectedCaseNos, []string{
		"connected case", "connected cases", "connected case nos", "connected case no",
		"connected_case_nos", "related cases", "linked cases",
	}},
	{FieldIsAppeal, []string{
		"is appeal", "appeal", "is_appeal", "isappeal", "appeal case", "whether appeal",
	}},
	{FieldLowerCourtCaseNo, []string{
		"lower court case no", "lower court case", "lower_court_case_no",
		"original case no", "lower court ref", "appealed case no",
	}},
	{FieldLowerCourt, []string{
		"lower court", "lower_court", "lowercourt", "original court",
		"court below", "appealed from",
	}},
	{FieldLowerCourtDate, []string{
		"lower court order date", "lower_court_order_date", "lc order date",
		"original order date", "impugned order date",
	}},
	{FieldCounselName, []string{
		"counsel", "counsel name", "counsel_name", "counselname", "advocate",
		"lawyer", "counsel on record", "cor", "attorney",
	}},
	{FieldCounselContact, []string{
		"counsel contact", "counsel_contact", "contact", "contact no",
		"phone", "mobile", "counsel phone", "advocate contact",
	}},
	{FieldASGEngaged, []string{
		"asg engaged", "asg_engaged", "asgengaged", "asg", "additional solicitor general",
	}},
	{FieldBriefFacts, []string{
		"brief facts", "brief_facts", "brieffacts", "facts", "case summary",
		"summary", "description", "case details", "matter details",
	}},
	{FieldLastHearingDate, []string{
		"last hearing date", "last_hearing_date", "lasthearingdate",
		"previous hearing", "last date", "prev hearing date",
	}},
	{FieldNextHearingDate, []string{
		"next hearing date", "next_hearing_date", "nexthearingdate",
		"next date", "upcoming hearing", "next hearing", "scheduled date",
	}},
	{FieldAffidavitStatus, []string{
		"affidavit status", "affidavit_status", "affidavitstatus",
		"dept affidavit status", "affidavit",
	}},
	{FieldCaseStatus, []string{
		"case status", "case_status", "casestatus", "status", "current status",
		"matter status", "stage",
	}},
	{FieldFinalOrderDate, []string{
		"final order date", "final_order_date", "finalorderdate",
		"order date", "judgment date", "decision date",
	}},
	{FieldPetitioner1Name, []string{
		"petitioner", "petitioner 1", "petitioner1", "petitioner_1", "petitioner name",
		"petitioner 1 name", "p1", "p1 name", "first petitioner", "appellant",
		"applicant", "complainant",
	}},
	{FieldPetitioner1Address, []string{
		"petitioner address", "petitioner 1 address", "petitioner_1_address",
		"p1 address", "petitioner addr", "appellant address",
	}},
	{FieldPetitioner2Name, []string{
		"petitioner 2", "petitioner2", "petitioner_2", "p2", "p2 name",
		"second petitioner", "petitioner 2 name",
	}},
	{FieldPetitioner2Address, []string{
		"petitioner 2 address", "petitioner_2_address", "p2 address",
	}},
	{FieldPetitioner3Name, []string{
		"petitioner 3", "petitioner3", "petitioner_3", "p3", "p3 name",
	}},
	{FieldPetitioner3Address, []string{
		"petitioner 3 address", "petitioner_3_address", "p3 address",
	}},
	{FieldRespondent1Name, []string{
		"respondent", "respondent 1", "respondent1", "respondent_1", "respondent name",
		"respondent 1 name", "r1", "r1 name", "first respondent", "defendant",
		"opposite party", "op",
	}},
	{FieldRespondent1Address, []string{
		"respondent address", "respondent 1 address", "respondent_1_address",
		"r1 address", "respondent addr", "defendant address",
	}},
	{FieldRespondent2Name, []string{
		"respondent 2", "respondent2", "respondent_2", "r2", "r2 name",
		"second respondent", "respondent 2 name",
	}},
	{FieldRespondent2Address, []string{
		"respondent 2 address", "respondent_2_address", "r2 address",
	}},
	{FieldRespondent3Name, []string{
		"respondent 3", "respondent3", "respondent_3", "r3", "r3 name",
	}},
	{FieldRespondent3Address, []string{
		"respondent 3 address", "respondent_3_address", "r3 address",
	}},
}

var (
	nonAlnumRe    = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	petitionerMap = [3]struct{ name, addr Field }{
		{FieldPetitioner1Name, FieldPetitioner1Address},
		{FieldPetitioner2Name, FieldPetitioner2Address},
		{FieldPetitioner3Name, FieldPetitioner3Address},
	}
	respondentMap = [3]struct{ name, addr Field }{
		{FieldRespondent1Name, FieldRespondent1Address},
		{FieldRespondent2Name, FieldRespondent2Address},
		{FieldRespondent3Name, FieldRespondent3Address},
	}
)

// NormalizeHeader folds a header for alias matching: lowercase, strip
// everything outside [a-z0-9 ], collapse whitespace runs, trim. Idempotent.
func NormalizeHeader(header string) string {
	normalized := nonAlnumRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(header)), "")
	normalized = whitespaceRe.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}

// NormalizeAny normalizes arbitrary cell content used as a header. Strings
// take the full path; anything else is stringified, lowercased, and trimmed
// without character stripping.
func NormalizeAny(v any) string {
	s, ok := v.(string)
	if !ok {
		return strings.TrimSpace(strings.ToLower(fmt.Sprint(v)))
	}
	return NormalizeHeader(s)
}

// ColumnMap binds canonical fields to the sheet headers that matched them.
type ColumnMap map[Field]string

func (m ColumnMap) Has(f Field) bool {
	_, ok := m[f]
	return ok
}

func (m ColumnMap) Header(f Field) string { return m[f] }

// ResolveColumns builds the column map for one workbook. Headers are
// normalized once up front; each field binds to the first of its aliases
// present in the sheet. Unmatched fields are simply absent.
func ResolveColumns(headers []string) ColumnMap {
	normalized := make(map[string]string, len(headers))
	for _, h := range headers {
		key := NormalizeHeader(h)
		if _, seen := normalized[key]; !seen {
			normalized[key] = h
		}
	}

	out := ColumnMap{}
	for _, fa := range columnMappings {
		for _, alias := range fa.aliases {
			if actual, ok := normalized[NormalizeHeader(alias)]; ok {
				out[fa.field] = actual
				break
			}
		}
	}
	return out
}

// UnrecognizedHeaders lists sheet headers that bound to no canonical field,
// each with a closest-alias suggestion when one ranks near enough.
func UnrecognizedHeaders(headers []string, m ColumnMap) []string {
	bound := make(map[string]struct{}, len(m))
	for _, actual := range m {
		bound[actual] = struct{}{}
	}

	var out []string
	for _, h := range headers {
		if strings.TrimSpace(h) == "" {
			continue
		}
		if _, ok := bound[h]; ok {
			continue
		}
		if hint := closestAlias(h); hint != "" {
			out = append(out, fmt.Sprintf("%s (did you mean %q?)", h, hint))
		} else {
			out = append(out, h)
		}
	}
	return out
}

func closestAlias(header string) string {
	target := NormalizeHeader(header)
	if target == "" {
		return ""
	}
	best := ""
	bestRank := -1
	for _, fa := range columnMappings {
		for _, alias := range fa.aliases {
			rank := fuzzy.RankMatchNormalizedFold(target, NormalizeHeader(alias))
			if rank < 0 {
				continue
			}
			if bestRank < 0 || rank < bestRank {
				best, bestRank = alias, rank
			}
		}
	}
	// Rank counts inserted characters; far-off aliases are noise, not help.
	if bestRank < 0 || bestRank > 10 {
		return ""
	}
	return best
}
