package caserecord

// Canonical enum values are fixed by the legacy case store and appear
// verbatim in persisted rows, API payloads, and import error messages.

type Forum string

const (
	ForumCAT   Forum = "CAT"
	ForumHC    Forum = "HC"
	ForumSC    Forum = "SC"
	ForumOther Forum = "Other Tribunals"
)

func Forums() []Forum {
	return []Forum{ForumCAT, ForumHC, ForumSC, ForumOther}
}

func (f Forum) Valid() bool {
	switch f {
	case ForumCAT, ForumHC, ForumSC, ForumOther:
		return true
	}
	return false
}

type Status string

const (
	StatusFiled     Status = "Filed"
	StatusAdmission Status = "Admission"
	StatusHearing   Status = "Hearing"
	StatusDismissed Status = "Dismissed"
	StatusAdjourned Status = "Adjourned"
	StatusReserved  Status = "Reserved"
	StatusAllowed   Status = "Allowed"
)

func Statuses() []Status {
	return []Status{
		StatusFiled, StatusAdmission, StatusHearing, StatusDismissed,
		StatusAdjourned, StatusReserved, StatusAllowed,
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusFiled, StatusAdmission, StatusHearing, StatusDismissed,
		StatusAdjourned, StatusReserved, StatusAllowed:
		return true
	}
	return false
}

// AffidavitStatus is optional on a case; the empty string means "not set".
type AffidavitStatus string

const (
	AffidavitNone        AffidavitStatus = ""
	AffidavitFiled       AffidavitStatus = "Filed"
	AffidavitPWCToSC     AffidavitStatus = "PWC Submitted to SC"
	AffidavitPWCPending  AffidavitStatus = "PWC Pending"
	AffidavitSubmittedSC AffidavitStatus = "Affidavit Submitted to SC"
	AffidavitDraftRecv   AffidavitStatus = "Draft Affidavit Received"
	AffidavitVetting     AffidavitStatus = "Sent for Vetting"
)

func AffidavitStatuses() []AffidavitStatus {
	return []AffidavitStatus{
		AffidavitFiled, AffidavitPWCToSC, AffidavitPWCPending,
		AffidavitSubmittedSC, AffidavitDraftRecv, AffidavitVetting,
	}
}

func (a AffidavitStatus) Valid() bool {
	if a == AffidavitNone {
		return true
	}
	for _, v := range AffidavitStatuses() {
		if a == v {
			return true
		}
	}
	return false
}
