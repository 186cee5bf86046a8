package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/registrar-sim/registrar-sim/sim/workload"
)

// --- registrar convert ---

var (
	convertInPath     string
	convertHeaderPath string
	convertDataPath   string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a text arrival schedule to a YAML header plus CSV data",
	Long:  "Convert a whitespace-separated text schedule (window count followed by arrival batches) into a YAML header and a CSV file with one row per student. The result can be replayed with `registrar run --csv-header`.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := convertSchedule(convertInPath, convertHeaderPath, convertDataPath); err != nil {
			logrus.Fatalf("Schedule conversion failed: %v", err)
		}
	},
}

func convertSchedule(inPath, headerPath, dataPath string) error {
	if inPath == "" || headerPath == "" || dataPath == "" {
		return fmt.Errorf("--in, --header and --data are required")
	}
	s, err := workload.LoadSchedule(inPath)
	if err != nil {
		return err
	}
	header := &workload.ScheduleHeader{
		Version:   1,
		TimeUnit:  "tick",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Source:    inPath,
	}
	if err := workload.ExportScheduleCSV(s, header, headerPath, dataPath); err != nil {
		return err
	}
	logrus.Infof("Converted %s: %d students -> %s, %s", inPath, s.NumStudents(), headerPath, dataPath)
	return nil
}

func init() {
	convertCmd.Flags().StringVar(&convertInPath, "in", "", "Text schedule to convert")
	convertCmd.Flags().StringVar(&convertHeaderPath, "header", "", "Output path of the YAML header")
	convertCmd.Flags().StringVar(&convertDataPath, "data", "", "Output path of the CSV data")
}
