package template

const (
	// Generator names the tool in the comment header of a template.
	Generator = "patgen"

	headerRuleWidth   = 80
	descriptionIndent = "#     "
	statementIndent   = "  "
)

// Verification messages.
const (
	msgEmptyTestData  = "test data is empty."
	msgNoRecord       = "There is no record after parsed."
	msgRowCountDiffer = "Parsed-row-count is %d while expected-row-count is %d."
	msgRowCountEqual  = "Parsed-row-count and expected-row-count are %d."
	msgResultEqual    = "Parsed result and expected result are matched."
	msgResultDiffer   = "Parsed result and expected result are different."
	msgHasRecords     = "Parsed result has record(s)."
)
