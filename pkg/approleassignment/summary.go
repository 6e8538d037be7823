package approleassignment

import "github.com/praetorian-inc/m365/pkg/types"

func Summarize(assignments []Assignment) []Summary {
	summaries := make([]Summary, 0, len(assignments))
	for _, a := range assignments {
		summaries = append(summaries, Summary{
			ResourceDisplayName: a.ResourceDisplayName,
			RoleName:            a.RoleName,
		})
	}
	return summaries
}

// SummaryTable renders the summary view as a table for text and markdown
// output.
func SummaryTable(assignments []Assignment) types.MarkdownTable {
	table := types.MarkdownTable{
		TableHeading: "App role assignments",
		Headers:      []string{"resourceDisplayName", "roleName"},
	}
	for _, s := range Summarize(assignments) {
		table.Rows = append(table.Rows, []string{s.ResourceDisplayName, s.RoleName})
	}
	return table
}
