package app

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/perchapp/perch/internal/models"
	"github.com/perchapp/perch/store"
)

// delSessions deletes all the specified sessions. It requests for confirmation
// before proceeding with the operation.
func delSessions(
	db store.DB,
	sessions []*models.Session,
) error {
	if len(sessions) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return nil
	}

	printSessionsTable(os.Stdout, sessions)

	warning := pterm.Warning.Sprint(
		"The above sessions will be deleted permanently. Press ENTER to proceed",
	)

	fmt.Fprint(os.Stdout, warning)

	reader := bufio.NewReader(os.Stdin)

	_, _ = reader.ReadString('\n')

	return db.DeleteSessions(sessions)
}
