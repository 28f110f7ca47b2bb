package importing

import "github.com/courtdesk/courtdesk/pkg/excel"

// TemplateFilename is the attachment name the download endpoint serves.
const TemplateFilename = "litigation_tracker_template.xlsx"

var templateHeaders = []string{
	"Forum", "Case Type", "Case No.", "Connected Case Nos", "Is Appeal",
	"Lower Court", "Lower Court Case No", "Lower Court Order Date",
	"Counsel Name", "Counsel Contact", "ASG Engaged",
	"Brief Facts", "Last Hearing Date", "Next Hearing Date",
	"Affidavit Status", "Case Status",
	"Petitioner 1 Name", "Petitioner 1 Address",
	"Petitioner 2 Name", "Petitioner 2 Address",
	"Respondent 1 Name", "Respondent 1 Address",
	"Respondent 2 Name", "Respondent 2 Address",
}

var templateExampleRow = []string{
	"HC", "Writ Petition", "WP(C) 1234/2024", "", "No",
	"", "", "",
	"John Doe", "9876543210", "No",
	"Sample case facts...", "2024-01-15", "2024-02-20",
	"Filed", "Hearing",
	"ABC Corporation", "123 Main Street, City",
	"", "",
	"Union of India", "Ministry of Law, New Delhi",
	"", "",
}

// SampleTemplate builds the downloadable reference workbook: the headers
// the importer recognizes plus one filled-in example row.
func SampleTemplate() ([]byte, error) {
	return excel.NewSheetBuilder("Cases").
		Headers(templateHeaders...).
		AddRow(templateExampleRow...).
		Bytes()
}
