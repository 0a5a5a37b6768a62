// Package perch assembles the perch command-line application.
package perch

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/perchapp/perch/app"
	"github.com/perchapp/perch/config"
)

var (
	durationFlag = &cli.UintFlag{
		Name:    "duration",
		Aliases: []string{"t"},
		Usage:   "Session duration in minutes (default: 25)",
	}

	breakFlag = &cli.UintFlag{
		Name:    "break",
		Aliases: []string{"b"},
		Usage:   "Break duration in minutes (default: 5)",
	}

	deepFocusFlag = &cli.BoolFlag{
		Name:    "deep-focus",
		Aliases: []string{"df"},
		Usage:   "Fail the session immediately when you switch away instead of granting a grace period",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a session is completed",
	}

	soundFlag = &cli.StringFlag{
		Name:  "sound",
		Usage: "Sound to play when a session is completed. Default options: bell, loud_bell, chime.\n\t\t\t\tDisable sound by setting to 'off'",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each session",
	}

	userFlag = &cli.StringFlag{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "Identify this user to the study group coordinator",
	}

	groupFlag = &cli.StringFlag{
		Name:    "group",
		Aliases: []string{"g"},
		Usage:   "Join a study group for this session. The session fails if any member fails theirs",
	}

	coordinatorFlag = &cli.StringFlag{
		Name:  "coordinator",
		Usage: "Base URL of the study group coordinator",
	}

	listenFlag = &cli.StringFlag{
		Name:  "listen",
		Usage: "Address on which to receive study group events (e.g. ':9163')",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Specify a time period (defaults to 7days). Possible values are: today, yesterday, 7days, 14days, 30days, 90days, 180days, 365days, all-time",
		Value:   "7days",
	}

	startTimeFlag = &cli.StringFlag{
		Name:    "start",
		Aliases: []string{"s"},
		Usage:   "Specify a start date in the following format: YYYY-MM-DD [HH:MM:SS PM]",
	}

	endTimeFlag = &cli.StringFlag{
		Name:    "end",
		Aliases: []string{"e"},
		Usage:   "Specify an end date in the following format: YYYY-MM-DD [HH:MM:SS PM] (defaults to the current time)",
	}

	locationFlag = &cli.StringFlag{
		Name:    "location",
		Aliases: []string{"l"},
		Usage:   "Filter sessions by a comma-delimited list of locations",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "List perch sessions in JSON format",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "Log debug-level diagnostics",
	}
)

// GetApp retrieves the perch app instance.
func GetApp() *cli.App {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	// Override the default version printer
	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/perchapp/perch/releases/%s\n",
			c.App.Version,
		)
	}

	filterFlags := []cli.Flag{
		startTimeFlag,
		endTimeFlag,
		periodFlag,
		locationFlag,
		noColorFlag,
		verboseFlag,
	}

	perchApp := &cli.App{
		Name: "perch",
		Authors: []*cli.Author{
			{
				Name:  "The perch authors",
				Email: "hello@perchapp.dev",
			},
		},
		Usage: `
		Perch is a focus companion for the command-line. Sit down at a study
		location, start a session, and stay until the timer runs out: switching
		away for more than a moment forfeits the session and its reward.`,
		UsageText:            "[COMMAND] [OPTIONS] [LOCATION]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "delete",
				Usage:  "Permanently delete the specified sessions",
				Action: app.DeleteAction,
				Flags:  filterFlags,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: app.EditConfigAction,
			},
			{
				Name:    "sessions",
				Aliases: []string{"list"},
				Usage:   "List all the sessions within the specified time period",
				Action:  app.SessionsAction,
				Flags:   append(filterFlags, jsonFlag),
			},
			{
				Name:   "status",
				Usage:  "Print the status of the current session",
				Action: app.StatusAction,
			},
		},
		Flags: []cli.Flag{
			durationFlag,
			breakFlag,
			deepFocusFlag,
			disableNotificationFlag,
			soundFlag,
			sessionCmdFlag,
			userFlag,
			groupFlag,
			coordinatorFlag,
			listenFlag,
			noColorFlag,
			verboseFlag,
		},
		Action: app.DefaultAction,
		Before: app.BeforeAction,
	}

	return perchApp
}
