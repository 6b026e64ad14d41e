package domain

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	headerRows   = 3
	paramRows    = 32
	idRow        = 1
	firstCropCol = 2

	// terminator ends the crop identifier scan.
	terminator = "0"
)

var (
	errTooFewRows  = errors.New("need 3 header rows and at least 2 data rows")
	errMissingRow  = errors.New("missing parameter row")
	errZeroCropID  = errors.New("crop identifier must be non-zero")
	errInvalidInt  = errors.New("not an integer")
	errInvalidReal = errors.New("not a number")
)

// ReadCropParameters opens and parses a crop parameter file.
// Open failures are returned as *NotFoundError, parse failures as *FormatError.
func ReadCropParameters(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}
	defer f.Close()

	return ParseCropParameters(f)
}

// ParseCropParameters parses the tab-separated crop parameter matrix.
// See the package documentation for the layout. The returned table is
// complete; on any error no table is returned.
func ParseCropParameters(r io.Reader) (*Table, error) {
	rows, err := readMatrix(r)
	if err != nil {
		return nil, err
	}
	if len(rows) <= idRow {
		return nil, &FormatError{Row: -1, Column: -1, Err: errTooFewRows}
	}

	table := NewTable()
	for col := firstCropCol; col < len(rows[idRow]); col++ {
		cell := numericCell(rows[idRow][col])
		if cell == terminator {
			break
		}
		n, err := strconv.Atoi(cell)
		if err != nil {
			return nil, &FormatError{Row: idRow, Column: col, Field: "crop_id", Value: cell, Err: errInvalidInt}
		}
		id := abs(n)
		if id == 0 {
			return nil, &FormatError{Row: idRow, Column: col, Field: "crop_id", Value: cell, Err: errZeroCropID}
		}

		rec, err := parseCropColumn(rows, col)
		if err != nil {
			return nil, err
		}
		table.Put(id, rec)
	}
	return table, nil
}

// readMatrix skips the header rows and returns at most paramRows data rows
// split into raw cells.
func readMatrix(r io.Reader) ([][]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var (
		line int
		rows [][]string
	)
	for sc.Scan() {
		line++
		if line <= headerRows {
			continue
		}
		text := strings.TrimRight(sc.Text(), "\r")
		if text == "" {
			continue
		}
		rows = append(rows, strings.Split(text, "\t"))
		if len(rows) == paramRows {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read crop parameters: %w", err)
	}
	return rows, nil
}

// parseCropColumn builds one record from a column of the matrix.
func parseCropColumn(rows [][]string, col int) (CropParameters, error) {
	f := &fieldReader{rows: rows, col: col}

	classField := f.intField(1, "class_number")
	rec := CropParameters{
		Name:        f.textField(0),
		ClassNumber: abs(classField),
		IsAnnual:    classField < 0,

		IrrigationFlag:              f.intField(2, "irrigation_flag"),
		DaysAfterPlantingIrrigation: f.intField(3, "days_after_planting_irrigation"),
		CropFW:                      f.intField(4, "crop_fw"),
		WinterSurfaceCoverClass:     f.intField(5, "winter_surface_cover_class"),
		CropKcMax:                   f.floatField(6, "crop_kc_max"),
		MADInitial:                  f.intField(7, "mad_initial"),
		MADMidseason:                f.intField(8, "mad_midseason"),
		RootingDepthInitial:         f.floatField(9, "rooting_depth_initial"),
		RootingDepthMaximum:         f.floatField(10, "rooting_depth_maximum"),
		EndOfRootGrowthFractionTime: f.floatField(11, "end_of_root_growth_fraction_time"),
		HeightInitial:               f.floatField(12, "height_initial"),
		HeightMaximum:               f.floatField(13, "height_maximum"),

		CurveNumber:                  f.intField(14, "curve_number"),
		CurveName:                    f.textField(15),
		CurveType:                    f.intField(16, "curve_type"),
		FlagForMeansToEstimatePlOrGu: f.intField(17, "flag_for_means_to_estimate_pl_or_gu"),
		T30ForPlOrGuOrCGDD:           f.floatField(18, "t30_for_pl_or_gu_or_cgdd"),
		DateOfPlOrGu:                 f.floatField(19, "date_of_pl_or_gu"),
		TBase:                        f.floatField(20, "tbase"),
		CGDDForEFC:                   f.intField(21, "cgdd_for_efc"),
		CGDDForTermination:           f.intField(22, "cgdd_for_termination"),
		// row 23 reserved
		TimeForEFC:              f.intField(24, "time_for_efc"),
		TimeForHarvest:          f.intField(25, "time_for_harvest"),
		KillingFrostTemperature: f.floatField(26, "killing_frost_temperature"),
		InvokeStress:            f.intField(27, "invoke_stress"),
		// row 28 reserved
		CNCoarseSoil: f.intField(29, "cn_coarse_soil"),
		CNMediumSoil: f.intField(30, "cn_medium_soil"),
		CNFineSoil:   f.intField(31, "cn_fine_soil"),
	}
	if f.err != nil {
		return CropParameters{}, f.err
	}

	rec.Season, rec.CropGDDTriggerDOY = SeasonForCurve(rec.CurveName)
	return rec, nil
}

// fieldReader extracts typed cells from one column. The first failure is
// kept and later reads become no-ops.
type fieldReader struct {
	rows [][]string
	col  int
	err  error
}

func (f *fieldReader) cell(row int) (string, bool) {
	if f.err != nil {
		return "", false
	}
	if row >= len(f.rows) {
		f.err = &FormatError{Row: row, Column: f.col, Err: errMissingRow}
		return "", false
	}
	// Short rows read as empty cells.
	if f.col >= len(f.rows[row]) {
		return "", true
	}
	return f.rows[row][f.col], true
}

func (f *fieldReader) textField(row int) string {
	v, ok := f.cell(row)
	if !ok {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(v, `"`, ""))
}

func (f *fieldReader) intField(row int, field string) int {
	v, ok := f.cell(row)
	if !ok {
		return 0
	}
	v = numericCell(v)
	n, err := strconv.Atoi(v)
	if err != nil {
		f.err = &FormatError{Row: row, Column: f.col, Field: field, Value: v, Err: errInvalidInt}
		return 0
	}
	return n
}

func (f *fieldReader) floatField(row int, field string) float64 {
	v, ok := f.cell(row)
	if !ok {
		return 0
	}
	v = numericCell(v)
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		f.err = &FormatError{Row: row, Column: f.col, Field: field, Value: v, Err: errInvalidReal}
		return 0
	}
	return n
}

// numericCell trims a cell and substitutes "0" for empty values.
func numericCell(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "0"
	}
	return v
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
