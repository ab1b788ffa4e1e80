package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/entity"
)

var actionPlanHeaders = []string{
	"Livrable", "Lot Technique", "Indice", "Resp. Exécution", "Resp. Validation",
	"Date Limite Initiale", "Dernière Limite", "Statut", "Criticité",
	"Cause Glissement", "Commentaire",
}

var actionPlanWidths = []float64{40, 14, 8, 22, 22, 18, 18, 22, 20, 30, 30}

// ExportActionPlan writes one row per action into an xlsx workbook,
// owner ids resolved to contact names.
func ExportActionPlan(projectName string, actions []entity.Action, contacts []entity.Contact) (*excelize.File, string, error) {
	names := contactNames(contacts)
	resolve := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return id
	}

	f := excelize.NewFile()
	sheet := "Plan d'Actions"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	for i, h := range actionPlanHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for i, a := range actions {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), a.DeliverableName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), a.TechnicalLot)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), a.VersionIndex)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), resolve(a.ExecutionOwnerID))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), resolve(a.ValidationOwnerID))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), a.InitialDueDate)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), a.CurrentDueDate)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), string(a.KanbanStatus))
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), string(a.AlertCriticality))
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), a.SlippageReason)
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), a.StatusComment)
	}

	for i, w := range actionPlanWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("Plan_Actions_%s.xlsx", sanitizeFilename(projectName))
	return f, filename, nil
}

func sanitizeFilename(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r == ' ':
			out = append(out, '_')
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' || r == '"' || r == '<' || r == '>' || r == '|':
			// skipped
		default:
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return "projet"
	}
	return string(out)
}
