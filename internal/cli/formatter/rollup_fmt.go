package formatter

import (
	"fmt"
	"strings"

	"github.com/avoronkov/trackdeck/internal/rollup"
)

// SprintColumn names one sprint column of the person table.
type SprintColumn struct {
	ID   string
	Name string
}

// FormatEpicHours renders the Epic×Sprint hour table: one section per epic
// with its sprint and backlog partitions, the sprint-independent epic-level
// row, and the epic's total.
func FormatEpicHours(rows []rollup.EpicRollupRow) string {
	if len(rows) == 0 {
		return Dim("No epics in scope.")
	}

	var b strings.Builder
	for i, epic := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header(epic.Title))
		b.WriteString("\n")

		tableRows := make([][]string, 0, len(epic.Partitions)+1)
		for _, p := range epic.Partitions {
			tableRows = append(tableRows, partitionCells(p))
		}
		tableRows = append(tableRows, partitionCells(epic.EpicOnly))
		b.WriteString(RenderTable([]string{"Partition", "Hours", "FTE", "People"}, tableRows))

		b.WriteString(Bold(fmt.Sprintf("Total: %s (%s FTE)",
			Hours(epic.TotalHours), FTEValue(epic.TotalFTE))))
		b.WriteString("\n")
	}
	return b.String()
}

func partitionCells(p rollup.PartitionRow) []string {
	persons := make([]string, 0, len(p.Persons))
	for _, ph := range p.Persons {
		persons = append(persons, fmt.Sprintf("%s %s", ph.PersonName, Hours(ph.Hours)))
	}
	return []string{
		p.Name,
		Hours(p.TotalHours),
		FTEValue(p.FTE),
		strings.Join(persons, ", "),
	}
}

// FormatPersonHours renders the Person×Sprint hour table. Columns follow the
// given sprint order so the table lines up with the epic rollup.
func FormatPersonHours(rows []rollup.PersonRollupRow, columns []SprintColumn) string {
	if len(rows) == 0 {
		return Dim("No assignments in scope.")
	}

	headers := []string{"Person"}
	for _, c := range columns {
		headers = append(headers, c.Name)
	}
	headers = append(headers, "Backlog", "Epic-level", "Total")

	tableRows := make([][]string, 0, len(rows)+1)
	totals := make([]float64, len(columns))
	var backlogTotal, epicOnlyTotal, grandTotal float64

	for _, r := range rows {
		cells := []string{r.PersonName}
		for i, c := range columns {
			h := r.SprintHours[c.ID]
			totals[i] += h
			cells = append(cells, Hours(h))
		}
		backlogTotal += r.BacklogHours
		epicOnlyTotal += r.EpicOnlyHours
		grandTotal += r.TotalHours
		cells = append(cells, Hours(r.BacklogHours), Hours(r.EpicOnlyHours), Bold(Hours(r.TotalHours)))
		tableRows = append(tableRows, cells)
	}

	footer := []string{Bold("Total")}
	for _, t := range totals {
		footer = append(footer, Bold(Hours(t)))
	}
	footer = append(footer, Bold(Hours(backlogTotal)), Bold(Hours(epicOnlyTotal)), Bold(Hours(grandTotal)))
	tableRows = append(tableRows, footer)

	return RenderTable(headers, tableRows)
}

// FormatCostRollup renders the per-epic cost table with its three buckets and
// category breakdowns.
func FormatCostRollup(rows []rollup.EpicCostRow) string {
	if len(rows) == 0 {
		return Dim("No epics in scope.")
	}

	var b strings.Builder
	for i, epic := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header(epic.Title))
		b.WriteString("\n")

		tableRows := [][]string{
			costCells("epic-level", epic.EpicLevel),
			costCells("backlog", epic.Backlog),
			costCells("sprint", epic.Sprint),
		}
		b.WriteString(RenderTable([]string{"Bucket", "Amount", "Categories"}, tableRows))

		b.WriteString(Bold(fmt.Sprintf("Total: %s", Money(epic.TotalCost))))
		b.WriteString("\n")
	}
	return b.String()
}

func costCells(name string, bucket rollup.CostBucket) []string {
	cats := make([]string, 0, len(bucket.Categories))
	for _, c := range bucket.Categories {
		cats = append(cats, fmt.Sprintf("%s %s", c.Category, Money(c.Amount)))
	}
	return []string{name, Money(bucket.Amount), strings.Join(cats, ", ")}
}
