package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	domain "github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
	cal "github.com/BruksfildServices01/booking-calendar/internal/domain/calendar"
	"github.com/BruksfildServices01/booking-calendar/internal/dto"
	ucCalendar "github.com/BruksfildServices01/booking-calendar/internal/usecase/calendar"
)

var (
	layoutFile string
	layoutDate string
	layoutAll  bool
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the lane layout of a day",
	Long: `Reads a JSON array of appointments (file or stdin) and prints the
hour grid with the lane each appointment lands in. Hours without
appointments are skipped unless --all is set.`,
	Args: cobra.NoArgs,
	RunE: runLayout,
}

func init() {
	layoutCmd.Flags().StringVarP(&layoutFile, "file", "f", "-", "appointments JSON, - for stdin")
	layoutCmd.Flags().StringVar(&layoutDate, "date", "", "day to print (YYYY-MM-DD), default today")
	layoutCmd.Flags().BoolVar(&layoutAll, "all", false, "print all 24 hours")
}

func runLayout(cmd *cobra.Command, _ []string) error {
	apps, err := readAppointments(cmd.InOrStdin(), layoutFile)
	if err != nil {
		return err
	}

	today := cal.StartOfDay(time.Now())
	day := today
	if layoutDate != "" {
		day, err = time.ParseInLocation(cal.DateLayout, layoutDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", layoutDate, err)
		}
	}

	dayApps := make([]domain.Appointment, 0, len(apps))
	for _, a := range apps {
		if domain.OnDate(a.Date, day.Format(cal.DateLayout)) {
			dayApps = append(dayApps, a)
		}
	}

	view := ucCalendar.NewDayView(0, day, today, dayApps, cal.DefaultRowHeightPx)
	return printDayView(cmd.OutOrStdout(), view, layoutAll)
}

func readAppointments(stdin io.Reader, path string) ([]domain.Appointment, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var apps []domain.Appointment
	if err := json.NewDecoder(r).Decode(&apps); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}
	return apps, nil
}

func printDayView(w io.Writer, view *dto.DayViewDTO, all bool) error {
	fmt.Fprintln(w, view.Title)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"HOUR"}
	for lane := 0; lane < view.LaneCount; lane++ {
		header = append(header, fmt.Sprintf("LANE %d", lane))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range view.Hours {
		if !all && len(row.Appointments) == 0 && len(row.Continuing) == 0 {
			continue
		}

		cells := make([]string, view.LaneCount)
		for _, ref := range row.Continuing {
			cells[ref.Lane] = addCell(cells[ref.Lane], "| "+ref.ID)
		}
		for _, p := range row.Appointments {
			text := p.ID + " " + p.TimeRange
			if p.Overflow {
				text += " (overflow)"
			}
			cells[p.Lane] = addCell(cells[p.Lane], text)
		}

		fmt.Fprintln(tw, row.Label+"\t"+strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, c := range view.Unplaced {
		fmt.Fprintf(w, "unplaced: %s %s\n", c.ID, c.TimeRange)
	}
	return nil
}

func addCell(cell, text string) string {
	if cell == "" {
		return text
	}
	return cell + ", " + text
}
