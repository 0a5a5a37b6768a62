package app

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/maruel/natural"
	"github.com/pterm/pterm"

	"github.com/perchapp/perch/internal/models"
	"github.com/perchapp/perch/internal/timeutil"
	"github.com/perchapp/perch/internal/ui"
)

const noSessionsMsg = "No sessions found for the specified time range"

const listTimeFormat = "Jan 02, 2006 03:04 PM"

// sessionTableBody builds the table rows for the given sessions.
func sessionTableBody(sessions []*models.Session) [][]string {
	tableBody := make([][]string, len(sessions))

	for i := range sessions {
		sess := sessions[i]

		endDate := sess.EndedAt.Format(listTimeFormat)
		if sess.EndedAt.IsZero() {
			endDate = ""
		}

		mins := timeutil.Round(sess.Actual.Minutes())

		row := []string{
			fmt.Sprintf("%d", i+1),
			sess.StartedAt.Format(listTimeFormat),
			endDate,
			sess.Location,
			fmt.Sprintf("%d mins", mins),
			fmt.Sprintf("%d", sess.CoinsEarned),
			ui.StatusColor(string(sess.Status), string(sess.Status)),
		}

		tableBody[i] = row
	}

	return tableBody
}

// printSessionsTable prints a session table to the command-line.
func printSessionsTable(w io.Writer, sessions []*models.Session) {
	tableBody := append([][]string{
		{"#", "STARTED", "ENDED", "LOCATION", "FOCUSED", "COINS", "STATUS"},
	}, sessionTableBody(sessions)...)

	ui.PrintTable(tableBody, w)
}

// locationTotals sums completed focus time per location, ordered naturally
// by location name so "desk 2" sorts before "desk 10".
func locationTotals(sessions []*models.Session) [][]string {
	totals := make(map[string]time.Duration)

	for _, sess := range sessions {
		if sess.Status != models.StatusCompleted {
			continue
		}

		totals[sess.Location] += sess.Actual
	}

	locations := make([]string, 0, len(totals))
	for loc := range totals {
		locations = append(locations, loc)
	}

	sort.Sort(natural.StringSlice(locations))

	rows := make([][]string, 0, len(locations))

	for _, loc := range locations {
		hrs, mins := timeutil.MinsToHoursAndMins(
			timeutil.Round(totals[loc].Minutes()),
		)

		rows = append(rows, []string{
			loc,
			fmt.Sprintf("%02dh %02dm", hrs, mins),
		})
	}

	return rows
}

// listSessions prints out a table of sessions followed by the completed
// focus time at each location.
func listSessions(sessions []*models.Session) error {
	if len(sessions) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return nil
	}

	printSessionsTable(os.Stdout, sessions)

	totals := locationTotals(sessions)
	if len(totals) == 0 {
		return nil
	}

	tableBody := append([][]string{
		{"LOCATION", "COMPLETED"},
	}, totals...)

	ui.PrintTable(tableBody, os.Stdout)

	return nil
}
