package workload

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ScheduleHeader captures metadata stored next to a CSV schedule.
type ScheduleHeader struct {
	Version   int    `yaml:"schedule_version"`
	TimeUnit  string `yaml:"time_unit"`
	CreatedAt string `yaml:"created_at,omitempty"`
	Windows   int    `yaml:"windows"`
	Students  int    `yaml:"students"`
	Source    string `yaml:"source,omitempty"`
}

// CSV column headers for schedule files.
var scheduleColumns = []string{"arrival_tick", "service_amount"}

// ExportScheduleCSV writes the schedule header (YAML) and students (CSV, one
// row per student) to separate files.
func ExportScheduleCSV(s *Schedule, header *ScheduleHeader, headerPath, dataPath string) error {
	h := ScheduleHeader{Version: 1, TimeUnit: "tick"}
	if header != nil {
		h = *header
	}
	h.Windows = s.NumWindows
	h.Students = s.NumStudents()

	headerData, err := yaml.Marshal(&h)
	if err != nil {
		return fmt.Errorf("marshaling schedule header: %w", err)
	}
	if err := os.WriteFile(headerPath, headerData, 0644); err != nil {
		return fmt.Errorf("writing schedule header: %w", err)
	}

	file, err := os.Create(dataPath)
	if err != nil {
		return fmt.Errorf("creating schedule data file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := WriteScheduleCSV(file, s); err != nil {
		return err
	}
	return file.Close()
}

// WriteScheduleCSV writes the column header and one row per student.
func WriteScheduleCSV(w io.Writer, s *Schedule) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(scheduleColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	row := 0
	for _, b := range s.Batches {
		for _, amount := range b.Amounts {
			record := []string{
				strconv.FormatInt(b.ArrivalTick, 10),
				strconv.FormatInt(amount, 10),
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("writing CSV row %d: %w", row, err)
			}
			row++
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// LoadScheduleCSV reads a schedule header (YAML) and its student rows (CSV).
func LoadScheduleCSV(headerPath, dataPath string) (*Schedule, *ScheduleHeader, error) {
	headerData, err := os.ReadFile(headerPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading schedule header: %w", err)
	}
	var header ScheduleHeader
	decoder := yaml.NewDecoder(bytes.NewReader(headerData))
	decoder.KnownFields(true)
	if err := decoder.Decode(&header); err != nil {
		return nil, nil, fmt.Errorf("parsing schedule header: %w", err)
	}

	file, err := os.Open(dataPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening schedule data: %w", err)
	}
	defer func() { _ = file.Close() }()

	s, err := ReadScheduleCSV(file, header.Windows)
	if err != nil {
		return nil, nil, fmt.Errorf("schedule data %s: %w", dataPath, err)
	}
	if header.Students != 0 && header.Students != s.NumStudents() {
		return nil, nil, fmt.Errorf("schedule header lists %d students, data has %d", header.Students, s.NumStudents())
	}
	return s, &header, nil
}

// ReadScheduleCSV parses student rows. Consecutive rows with the same arrival
// tick form one batch.
func ReadScheduleCSV(r io.Reader, numWindows int) (*Schedule, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(scheduleColumns)

	// Skip header row
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	s := &Schedule{NumWindows: numWindows}
	rowIdx := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV row %d: %w", rowIdx, err)
		}
		arrival, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("CSV row %d: invalid arrival_tick %q: %w", rowIdx, row[0], err)
		}
		amount, err := strconv.ParseInt(row[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("CSV row %d: invalid service_amount %q: %w", rowIdx, row[1], err)
		}

		if n := len(s.Batches); n > 0 && s.Batches[n-1].ArrivalTick == arrival {
			s.Batches[n-1].Amounts = append(s.Batches[n-1].Amounts, amount)
		} else {
			s.Batches = append(s.Batches, Batch{ArrivalTick: arrival, Amounts: []int64{amount}})
		}
		rowIdx++
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
