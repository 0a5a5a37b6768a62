// Package app wires the session engine to its collaborators and implements
// the command-line actions.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	bolt "go.etcd.io/bbolt"

	"github.com/perchapp/perch/config"
	"github.com/perchapp/perch/engine"
	"github.com/perchapp/perch/gameview"
	"github.com/perchapp/perch/group"
	"github.com/perchapp/perch/internal/models"
	"github.com/perchapp/perch/internal/static"
	"github.com/perchapp/perch/internal/timeutil"
	"github.com/perchapp/perch/internal/ui"
	"github.com/perchapp/perch/lifecycle"
	"github.com/perchapp/perch/notify"
	"github.com/perchapp/perch/store"
)

const (
	envNoColor      = "NO_COLOR"
	envPerchNoColor = "PERCH_NO_COLOR"
)

// listenerStopTimeout bounds how long shutdown waits for in-flight group
// notifications.
const listenerStopTimeout = 2 * time.Second

// The wiring below is only valid while the concrete collaborators satisfy
// the engine's ports.
var (
	_ engine.Notifier     = (*notify.Desktop)(nil)
	_ engine.GameView     = (*gameview.Bridge)(nil)
	_ engine.GroupGateway = (*group.Client)(nil)
	_ store.DB            = (*store.Client)(nil)
)

// sessionHelper retrieves the sessions matching the command-line filters.
func sessionHelper(ctx *cli.Context) ([]*models.Session, store.DB, error) {
	conf := config.Filter(ctx)

	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return nil, nil, err
	}

	sessions, err := db.GetSessions(conf.StartTime, conf.EndTime, conf.Locations)
	if err != nil {
		return nil, nil, err
	}

	return sessions, db, nil
}

// DeleteAction handles the delete command which deletes one or more
// sessions.
func DeleteAction(ctx *cli.Context) error {
	sessions, db, err := sessionHelper(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = db.Close()
	}()

	return delSessions(db, sessions)
}

// SessionsAction handles the sessions command and prints a table of all the
// sessions started within a time period.
func SessionsAction(ctx *cli.Context) error {
	sessions, db, err := sessionHelper(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = db.Close()
	}()

	if ctx.Bool("json") {
		b, err := json.Marshal(sessions)
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	return listSessions(sessions)
}

// StatusAction handles the status command and prints the status of the
// currently running session.
func StatusAction(_ *cli.Context) error {
	return reportStatus()
}

// reportStatus prints the phase and remaining time of the session a running
// perch instance mirrors to the status file. The running instance holds an
// exclusive lock on the database, so the lock being free means there is
// nothing to report.
func reportStatus() error {
	dbFilePath := config.DBFilePath()
	statusFilePath := config.StatusFilePath()

	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(dbFilePath, fileMode, &bolt.Options{
		Timeout: 100 * time.Millisecond,
	})
	// This means perch is not running, so no status to report
	if err == nil {
		_ = db.Close()

		return nil
	}

	if !errors.Is(err, bolt.ErrDatabaseOpen) &&
		!errors.Is(err, bolt.ErrTimeout) {
		return err
	}

	s, err := engine.ReadStatus(statusFilePath)
	if err != nil {
		// a missing status file should not return an error
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return err
	}

	var text string

	switch s.Phase {
	case engine.Active:
		text = "[Focusing]"
		if s.DeepFocus {
			text = "[Deep focus]"
		}
	case engine.Break:
		text = "[On break]"
	default:
		pterm.Printfln("[%s]", s.Phase)
		return nil
	}

	remaining := int(time.Until(s.EndTime).Seconds())
	if remaining < 0 {
		return nil
	}

	pterm.Printfln("%s %s: %s", text, s.Location, timeutil.FormatClock(remaining))

	return nil
}

// DefaultAction seats the user at their study location and runs the
// interactive session surface until they leave.
func DefaultAction(ctx *cli.Context) error {
	cfg := config.Get(ctx)

	ui.DarkTheme = cfg.DarkTheme

	dbClient, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}

	defer func() {
		_ = dbClient.Close()
	}()

	sweepStaleSessions(dbClient, cfg.HeartbeatInterval)

	eng := engine.New(dbClient, cfg)

	eng.SetNotifier(notify.NewDesktop(cfg.Notify, cfg.CompletionSound))

	var groupClient *group.Client

	if cfg.GroupID != "" && cfg.CoordinatorURL != "" {
		groupClient = group.NewClient(cfg.CoordinatorURL, cfg.UserID)
		eng.SetGroupGateway(groupClient)
	}

	var listener *group.Listener

	if cfg.ListenAddr != "" {
		listener = group.NewListener(cfg.ListenAddr, func(groupID string) {
			if groupID == cfg.GroupID {
				eng.HandleGroupFailure()
			}
		})

		listener.Start()
	}

	monitor := lifecycle.NewMonitor(cfg.InactiveThreshold, lifecycle.Events{
		OnScreenLock: eng.HandleScreenLock,
		OnAppSwitch:  eng.HandleAppSwitch,
		OnForeground: eng.HandleForeground,
	})

	bridge := gameview.NewBridge(eng, monitor)
	eng.SetGameView(bridge)

	if cfg.Location != "" {
		if err = eng.SeatAt(cfg.Location); err != nil {
			return err
		}
	}

	err = bridge.Run()

	// The listener stops before the engine closes so that no group failure
	// can reach a drained dispatcher.
	if listener != nil {
		stopCtx, cancel := context.WithTimeout(
			context.Background(),
			listenerStopTimeout,
		)
		defer cancel()

		_ = listener.Stop(stopCtx)
	}

	if groupClient != nil {
		groupClient.Close()
	}

	if cerr := eng.Close(); cerr != nil && err == nil {
		err = cerr
	}

	return err
}

// BeforeAction runs before every command: it resolves the data paths, sets
// up logging, installs the bundled assets, and configures terminal output.
func BeforeAction(ctx *cli.Context) error {
	config.InitializePaths()

	config.InitLog(ctx.Bool("verbose"))

	if err := static.Install(); err != nil {
		slog.Warn("unable to install bundled assets", slog.Any("error", err))
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if PERCH_NO_COLOR is set
	if _, exists := os.LookupEnv(envPerchNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}
