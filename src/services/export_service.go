package services

import (
	"context"
	"fmt"
	"strconv"

	"ledger/src/utils"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

type ExportServiceI interface {
	GenerateWorkbook(ctx context.Context, portfolioID string) (*excelize.File, error)
}

// ExportService renders the derived views into a downloadable workbook, one
// sheet per view. The dataframes are built from the same aggregation service
// the JSON endpoints use, so the export can never drift from them.
type ExportService struct {
	aggregation AggregationServiceI
}

func NewExportService(aggregation AggregationServiceI) *ExportService {
	return &ExportService{aggregation: aggregation}
}

func (s *ExportService) GenerateWorkbook(ctx context.Context, portfolioID string) (*excelize.File, error) {
	monthlyDf, err := s.monthlyNetDataframe(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	categoryDf, err := s.categoryTotalsDataframe(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	importsDf, err := s.importsDataframe(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	file, err := s.writeDataframeSheet(nil, monthlyDf, "Monthly Net")
	if err != nil {
		return nil, err
	}
	file, err = s.writeDataframeSheet(file, categoryDf, "Category Totals")
	if err != nil {
		return nil, err
	}
	file, err = s.writeDataframeSheet(file, importsDf, "Imports")
	if err != nil {
		return nil, err
	}
	if err := s.applyStyles(file); err != nil {
		return nil, err
	}
	return file, nil
}

func (s *ExportService) monthlyNetDataframe(ctx context.Context, portfolioID string) (*dataframe.DataFrame, error) {
	rows, err := s.aggregation.MonthlyNet(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	months := make([]string, 0, len(rows))
	income := make([]float64, 0, len(rows))
	expense := make([]float64, 0, len(rows))
	net := make([]float64, 0, len(rows))
	for _, row := range rows {
		months = append(months, row.Month)
		income = append(income, row.Income)
		expense = append(expense, row.Expense)
		net = append(net, row.Net)
	}
	df := dataframe.New(
		series.New(months, series.String, "Month"),
		series.New(income, series.Float, "Income"),
		series.New(expense, series.Float, "Expense"),
		series.New(net, series.Float, "Net"),
	)
	return &df, nil
}

func (s *ExportService) categoryTotalsDataframe(ctx context.Context, portfolioID string) (*dataframe.DataFrame, error) {
	rows, err := s.aggregation.CategoryTotals(ctx, portfolioID, "")
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(rows))
	totals := make([]float64, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, row.Category)
		totals = append(totals, row.Total)
	}
	df := dataframe.New(
		series.New(categories, series.String, "Category"),
		series.New(totals, series.Float, "Total"),
	)
	return &df, nil
}

func (s *ExportService) importsDataframe(ctx context.Context, portfolioID string) (*dataframe.DataFrame, error) {
	rows, err := s.aggregation.ImportSummaries(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	institutions := make([]string, 0, len(rows))
	committed := make([]string, 0, len(rows))
	counts := make([]int, 0, len(rows))
	amounts := make([]float64, 0, len(rows))
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ImportID.String())
		institutions = append(institutions, row.SourceInstitution)
		committed = append(committed, row.CommittedAt.Format(utils.ShortDashDateLayout))
		counts = append(counts, row.RowCount)
		amounts = append(amounts, row.TotalAmount)
		values = append(values, row.TotalValue)
	}
	df := dataframe.New(
		series.New(ids, series.String, "Import"),
		series.New(institutions, series.String, "Institution"),
		series.New(committed, series.String, "Committed"),
		series.New(counts, series.Int, "Rows"),
		series.New(amounts, series.Float, "Total Amount"),
		series.New(values, series.Float, "Total Value"),
	)
	return &df, nil
}

func (s *ExportService) writeDataframeSheet(f *excelize.File, df *dataframe.DataFrame, sheetName string) (*excelize.File, error) {
	if df == nil || df.Ncol() == 0 {
		return f, nil
	}

	if f == nil {
		f = excelize.NewFile()
		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			return nil, err
		}
	} else {
		index, err := f.NewSheet(sheetName)
		if err != nil {
			return nil, err
		}
		defer f.SetActiveSheet(index)
	}

	for colIndex, name := range df.Names() {
		cell := fmt.Sprintf("%s1", s.toAlphaString(colIndex+1))
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return nil, err
		}
	}

	for rowIndex, row := range df.Records()[1:] {
		for colIndex, cellValue := range row {
			cell := fmt.Sprintf("%s%d", s.toAlphaString(colIndex+1), rowIndex+2)
			if numeric, err := strconv.ParseFloat(cellValue, 64); err == nil {
				if err := f.SetCellValue(sheetName, cell, numeric); err != nil {
					return nil, err
				}
			} else {
				if err := f.SetCellValue(sheetName, cell, cellValue); err != nil {
					return nil, err
				}
			}
		}
	}

	return f, nil
}

func (s *ExportService) applyStyles(f *excelize.File) error {
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			continue
		}
		lastCol := len(rows[0])

		headerStyle, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{
				Type:    "pattern",
				Color:   []string{"#E6E6E6"},
				Pattern: 1,
			},
			Alignment: &excelize.Alignment{
				Horizontal: "center",
				Vertical:   "center",
			},
		})
		if err != nil {
			return err
		}
		err = f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", s.toAlphaString(lastCol)), headerStyle)
		if err != nil {
			return err
		}

		for i := 1; i <= lastCol; i++ {
			colName := s.toAlphaString(i)
			if err := f.SetColWidth(sheetName, colName, colName, 18); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *ExportService) toAlphaString(column int) string {
	result := ""
	for column > 0 {
		column--
		result = string(rune('A'+column%26)) + result
		column /= 26
	}
	return result
}
