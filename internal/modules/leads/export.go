package leads

import (
	"context"
	"fmt"

	"minicrm/internal/domain"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Leads"

var exportHeader = []interface{}{"Name", "Email", "Phone", "Status", "Rep"}

// Export builds a workbook with the leads the user may see. The caller
// closes the file.
func (s *Service) Export(ctx context.Context, sess *domain.Session) (*excelize.File, error) {
	leads, err := s.fetch(ctx, sess)
	if err != nil {
		return nil, err
	}
	return buildWorkbook(leads)
}

func buildWorkbook(leads []domain.Lead) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"0D6EFD"}},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, "A1", "E1", header); err != nil {
		f.Close()
		return nil, err
	}

	for i, l := range leads {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []interface{}{l.Name, l.Email, l.Phone, string(l.Status), l.Owner.DisplayName()}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write lead %s: %w", l.ID, err)
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "E", 24); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
