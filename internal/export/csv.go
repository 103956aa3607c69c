package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"field-rounds-service/internal/domain"
)

var csvHeader = []string{
	"day", "kind", "name", "arrive", "depart",
	"stay_min", "travel_min", "wait_min", "remark",
}

// WriteCSV writes every timetable row of every day as one combined CSV.
func WriteCSV(w io.Writer, tables []domain.DayTimetable) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv: header: %w", err)
	}

	for _, t := range tables {
		for _, e := range t.Entries {
			record := []string{
				strconv.Itoa(t.Day),
				e.Kind.String(),
				e.Name,
				clockPtr(e.Arrive),
				clockPtr(e.Depart),
				strconv.Itoa(e.StayMinutes),
				strconv.Itoa(e.TravelMinutes),
				strconv.Itoa(e.WaitMinutes),
				e.Remark,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("write csv: day %d row %q: %w", t.Day, e.Name, err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: flush: %w", err)
	}
	return nil
}
