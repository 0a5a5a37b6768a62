package config

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
██████╗ ███████╗██████╗  ██████╗██╗  ██╗
██╔══██╗██╔════╝██╔══██╗██╔════╝██║  ██║
██████╔╝█████╗  ██████╔╝██║     ███████║
██╔═══╝ ██╔══╝  ██╔══██╗██║     ██╔══██║
██║     ███████╗██║  ██║╚██████╗██║  ██║
╚═╝     ╚══════╝╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	SessionMinutes int
	BreakMinutes   int
	DeepFocus      bool
}

// promptUser handles the interactive configuration process on first run.
func promptUser() (PromptOptions, error) {
	var opts PromptOptions

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure Perch for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file directly to change any settings later.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Focus session length").
				Options(
					huh.NewOption("25 minutes", 25).Selected(true),
					huh.NewOption("35 minutes", 35),
					huh.NewOption("50 minutes", 50),
					huh.NewOption("90 minutes", 90),
				).
				Value(&opts.SessionMinutes),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Break length").
				Options(
					huh.NewOption("5 minutes", 5).Selected(true),
					huh.NewOption("10 minutes", 10),
					huh.NewOption("15 minutes", 15),
				).
				Value(&opts.BreakMinutes),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable deep focus mode?").
				Description("Switching away from the app fails the session immediately.").
				Value(&opts.DeepFocus),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}
