package export

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/banshee-data/contour.report/internal/contour"
)

// Unmarshal parses contour text data: one point per line, at least two
// whitespace-separated numeric fields. Blank lines are skipped.
func Unmarshal(data []byte) ([]contour.Point, error) {
	var pts []contour.Point
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: want at least 2 fields, got %d", line, len(fields))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse x: %w", line, err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse y: %w", line, err)
		}
		pts = append(pts, contour.Point{X: x, Y: y})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return pts, nil
}

// ReadFile loads a contour text file from disk.
func ReadFile(name string) ([]contour.Point, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read contour file: %w", err)
	}
	return Unmarshal(data)
}
