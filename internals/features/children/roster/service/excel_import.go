package service

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"preschool_backend/internals/features/children/roster/dto"
	"preschool_backend/internals/helpers/dbtime"
)

// Urutan kolom file roster (baris pertama = header)
const (
	colSeq = iota
	colName
	colGender
	colAge
	colDOB
	colClass
	colParent
	colPhone
	colAddress
)

var dobLayouts = []string{
	dbtime.DateLayout,
	"02/01/2006",
	"2/1/2006",
	"01-02-06",
	"2006/01/02",
	"02-01-2006",
}

// ParseRosterXLSX membaca sheet pertama. Baris kosong dilewati;
// error per baris dikumpulkan lalu dikembalikan sekaligus (400).
func ParseRosterXLSX(r io.Reader) ([]dto.ChildUpsertRequest, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File is not a valid .xlsx workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Cannot read first sheet")
	}

	out := make([]dto.ChildUpsertRequest, 0, len(rows))
	var problems []string
	for i, row := range rows {
		if i == 0 || isBlankRow(row) {
			continue
		}
		item, err := parseRosterRow(row)
		if err != nil {
			problems = append(problems, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		out = append(out, item)
	}

	if len(problems) > 0 {
		if len(problems) > 20 {
			problems = append(problems[:20], fmt.Sprintf("... and %d more", len(problems)-20))
		}
		return nil, fiber.NewError(fiber.StatusBadRequest, strings.Join(problems, "; "))
	}
	if len(out) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No data rows found")
	}
	return out, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseRosterRow(row []string) (dto.ChildUpsertRequest, error) {
	var item dto.ChildUpsertRequest

	seq, err := parseWholeNumber(cell(row, colSeq))
	if err != nil || seq <= 0 {
		return item, fmt.Errorf("invalid seq %q", cell(row, colSeq))
	}
	item.ChildSeq = seq

	item.Name = cell(row, colName)
	if item.Name == "" {
		return item, fmt.Errorf("name is required")
	}
	item.Gender = cell(row, colGender)

	if s := cell(row, colAge); s != "" {
		age, err := parseWholeNumber(s)
		if err != nil || age < 0 {
			return item, fmt.Errorf("invalid age %q", s)
		}
		item.Age = &age
	}

	if s := cell(row, colDOB); s != "" {
		dob, err := ParseDOB(s)
		if err != nil {
			return item, err
		}
		item.DateOfBirth = dbtime.FormatDate(dob)
	}

	item.ClassName = cell(row, colClass)
	item.ParentName = cell(row, colParent)
	item.Phone = cell(row, colPhone)
	item.Address = cell(row, colAddress)
	item.Normalize()
	return item, nil
}

// parseWholeNumber: "12" atau "12.0" (angka dari Excel) → 12
func parseWholeNumber(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("not a whole number: %q", s)
	}
	return int(f), nil
}

// ParseDOB: teks tanggal (beberapa format umum) atau nomor seri tanggal Excel
func ParseDOB(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return calendarDate(t), nil
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return calendarDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date_of_birth %q", s)
}

// tanggal kalender apa adanya (tanpa konversi timezone)
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
