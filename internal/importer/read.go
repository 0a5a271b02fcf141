package importer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadTSV splits r into tab-separated rows. Blank lines are dropped; line numbers are 1-based
// positions in r.
func ReadTSV(r io.Reader) ([]Row, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var rows []Row
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		rows = append(rows, Row{Line: line, Cells: strings.Split(text, "\t")})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read price list: %w", err)
	}
	return rows, nil
}

// ReadXLSX returns the rows of the first sheet of the workbook in r. Empty rows are dropped, as
// is a leading header row (one whose price cell is not a number).
func ReadXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("get rows for sheet %q: %w", sheets[0], err)
	}

	var rows []Row
	for i, c := range cells {
		if isBlank(c) {
			continue
		}
		if len(rows) == 0 && isHeader(c) {
			continue
		}
		rows = append(rows, Row{Line: i + 1, Cells: c})
	}
	return rows, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isHeader(cells []string) bool {
	if len(cells) < 3 {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(cells[2]), 64)
	return err != nil
}
