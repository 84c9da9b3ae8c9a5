package generate_excel

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"zko-backend/internal/zko"
)

const (
	palletSheet   = "Palety"
	formatkaSheet = "Formatki"
)

type PalletStorage interface {
	PalletDetails(ctx context.Context, orderID int64) ([]zko.Pallet, error)
}

type GenerateExcelService struct {
	storage PalletStorage
	limits  zko.Limits
}

func NewGenerateService(storage PalletStorage, limits zko.Limits) *GenerateExcelService {
	return &GenerateExcelService{storage: storage, limits: limits}
}

// GenerateExcel строит манифест палет заказа. Лист палет с итогом и лист форматок по палетам.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, orderID int64) ([]byte, error) {
	const op = "service.generate_excel.GenerateExcel"

	pallets, err := g.storage.PalletDetails(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch pallets: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", palletSheet); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := f.NewSheet(formatkaSheet); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// подсветка палет с превышением высоты или веса
	alertStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F8D7DA"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	palletHeaders := []string{"Nr palety", "ID", "Sztuk", "Wysokość (mm)", "Waga (kg)", "Kolory", "Przekroczenia"}
	writeHeader(f, palletSheet, palletHeaders, headerStyle)

	formatkaHeaders := []string{"Nr palety", "Formatka ID", "Nazwa", "Kolor", "Ilość"}
	writeHeader(f, formatkaSheet, formatkaHeaders, headerStyle)

	formatkaRow := 2
	for i, p := range pallets {
		row := i + 2
		flags := g.limits.Check(p)

		f.SetCellValue(palletSheet, cellName(1, row), p.Numer)
		f.SetCellValue(palletSheet, cellName(2, row), p.ID)
		f.SetCellValue(palletSheet, cellName(3, row), p.Pieces())
		f.SetCellValue(palletSheet, cellName(4, row), p.WysokoscStosu)
		f.SetCellValue(palletSheet, cellName(5, row), p.WagaKg)
		f.SetCellValue(palletSheet, cellName(6, row), strings.Join(p.Colors(), ", "))
		f.SetCellValue(palletSheet, cellName(7, row), describeFlags(flags))

		if flags.Any() {
			f.SetCellStyle(palletSheet, cellName(1, row), cellName(len(palletHeaders), row), alertStyle)
		}

		for _, item := range p.Formatki {
			f.SetCellValue(formatkaSheet, cellName(1, formatkaRow), p.Numer)
			f.SetCellValue(formatkaSheet, cellName(2, formatkaRow), item.FormatkaID)
			f.SetCellValue(formatkaSheet, cellName(3, formatkaRow), item.Nazwa)
			f.SetCellValue(formatkaSheet, cellName(4, formatkaRow), item.Kolor)
			f.SetCellValue(formatkaSheet, cellName(5, formatkaRow), item.Ilosc)
			formatkaRow++
		}
	}

	// Итог: количество палет и сумма штук
	totalRow := len(pallets) + 2
	f.SetCellValue(palletSheet, cellName(1, totalRow), "Razem")
	f.SetCellValue(palletSheet, cellName(2, totalRow), len(pallets))
	f.SetCellValue(palletSheet, cellName(3, totalRow), zko.TotalPieces(pallets))
	f.SetCellStyle(palletSheet, cellName(1, totalRow), cellName(3, totalRow), headerStyle)

	for _, sheet := range []string{palletSheet, formatkaSheet} {
		f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
	}
	f.SetColWidth(palletSheet, "A", "A", 18)
	f.SetColWidth(palletSheet, "F", "G", 24)
	f.SetColWidth(formatkaSheet, "C", "C", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) {
	for i, name := range headers {
		f.SetCellValue(sheet, cellName(i+1, 1), name)
	}
	f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), style)
}

func describeFlags(flags zko.LimitFlags) string {
	var out []string
	if flags.OverHeight {
		out = append(out, "wysokość")
	}
	if flags.OverWeight {
		out = append(out, "waga")
	}
	return strings.Join(out, ", ")
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
