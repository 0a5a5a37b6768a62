// Package config is responsible for setting the program config from
// the config file and command-line arguments.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

// Version is the program version.
const Version = "v0.1.0"

var appCfg = &Config{}

var once sync.Once

var (
	configDir      = "perch"
	configFileName = "config.yml"
	dbFileName     = "perch.db"
	statusFileName = "status.json"
	logFileName    = "perch.log"
	dbFilePath     string
	configFilePath string
	statusFilePath string
	logFilePath    string
)

const (
	defaultSessionMinutes = 25
	defaultBreakMinutes   = 5
	defaultCoinRate       = 0.4
)

const (
	defaultInactiveThreshold = 200 * time.Millisecond
	defaultGracePeriod       = 15 * time.Second
	defaultHeartbeatInterval = 30 * time.Second
)

const (
	configSessionMinutes    = "session_mins"
	configBreakMinutes      = "break_mins"
	configCoinRate          = "coin_rate"
	configDeepFocus         = "deep_focus"
	configInactiveThreshold = "inactive_threshold"
	configGracePeriod       = "grace_period"
	configHeartbeatInterval = "heartbeat_interval"
	configNotify            = "notify"
	configCompletionSound   = "completion_sound"
	configSessionCmd        = "session_cmd"
	configDarkTheme         = "dark_theme"
	configTwentyFourHour    = "24hr_clock"
	configUserID            = "user_id"
	configCoordinatorURL    = "group.coordinator_url"
	configListenAddr        = "group.listen_addr"
)

// Config represents the program configuration derived from the config file
// and command-line arguments.
type Config struct {
	Stderr io.Writer `json:"-"`
	Stdout io.Writer `json:"-"`
	Stdin  io.Reader `json:"-"`

	PathToConfig string `json:"path_to_config"`
	PathToDB     string `json:"path_to_db"`

	UserID   string `json:"user_id"`
	Location string `json:"location"`
	GroupID  string `json:"group_id,omitempty"`

	SessionMinutes int     `json:"session_mins"`
	BreakMinutes   int     `json:"break_mins"`
	CoinRate       float64 `json:"coin_rate"`

	InactiveThreshold time.Duration `json:"inactive_threshold"`
	GracePeriod       time.Duration `json:"grace_period"`
	HeartbeatInterval time.Duration `json:"heartbeat_interval"`

	CoordinatorURL string `json:"coordinator_url,omitempty"`
	ListenAddr     string `json:"listen_addr,omitempty"`

	CompletionSound string `json:"completion_sound"`
	SessionCmd      string `json:"session_cmd"`

	DeepFocus           bool `json:"deep_focus"`
	Notify              bool `json:"notify"`
	DarkTheme           bool `json:"dark_theme"`
	TwentyFourHourClock bool `json:"twenty_four_hour_clock"`
}

func Dir() string {
	return configDir
}

func DBFilePath() string {
	return dbFilePath
}

func StatusFilePath() string {
	return statusFilePath
}

func LogFilePath() string {
	return logFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

// InitializePaths resolves the config, database, status, and log file paths,
// honouring PERCH_ENV so development and testing runs stay isolated from
// regular usage.
func InitializePaths() {
	perchEnv := strings.TrimSpace(os.Getenv("PERCH_ENV"))
	if perchEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", perchEnv)
		dbFileName = fmt.Sprintf("perch_%s.db", perchEnv)
		statusFileName = fmt.Sprintf("status_%s.json", perchEnv)
		logFileName = fmt.Sprintf("perch_%s.log", perchEnv)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath, err = xdg.DataFile(filepath.Join(configDir, dbFileName))
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	statusFilePath, err = xdg.DataFile(filepath.Join(configDir, statusFileName))
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	logFilePath, err = xdg.DataFile(filepath.Join(configDir, "log", logFileName))
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

// setDefaults sets the program's default configuration values.
func setDefaults() {
	viper.SetDefault(configSessionMinutes, defaultSessionMinutes)
	viper.SetDefault(configBreakMinutes, defaultBreakMinutes)
	viper.SetDefault(configCoinRate, defaultCoinRate)
	viper.SetDefault(configDeepFocus, false)
	viper.SetDefault(configInactiveThreshold, defaultInactiveThreshold.String())
	viper.SetDefault(configGracePeriod, defaultGracePeriod.String())
	viper.SetDefault(configHeartbeatInterval, defaultHeartbeatInterval.String())
	viper.SetDefault(configNotify, true)
	viper.SetDefault(configCompletionSound, "bell")
	viper.SetDefault(configSessionCmd, "")
	viper.SetDefault(configDarkTheme, true)
	viper.SetDefault(configTwentyFourHour, false)
	viper.SetDefault(configUserID, uuid.NewString())
	viper.SetDefault(configCoordinatorURL, "")
	viper.SetDefault(configListenAddr, "")
}

// initConfig reads the configuration file, creating it with defaults (and
// first-run prompts) when it does not exist yet.
func initConfig() error {
	viper.SetConfigName(strings.TrimSuffix(configFileName, ".yml"))
	viper.SetConfigType("yaml")
	viper.AddConfigPath(filepath.Dir(configFilePath))

	setDefaults()

	appCfg.PathToConfig = configFilePath

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return createConfig()
		}

		return errReadConfig.Wrap(err)
	}

	return nil
}

// createConfig prompts the user for their preferred values for key settings
// and saves the result to the config directory.
func createConfig() error {
	if os.Getenv("PERCH_ENV") != "testing" {
		opts, err := promptUser()
		if err != nil {
			return err
		}

		viper.Set(configSessionMinutes, opts.SessionMinutes)
		viper.Set(configBreakMinutes, opts.BreakMinutes)
		viper.Set(configDeepFocus, opts.DeepFocus)
	}

	err := viper.WriteConfigAs(configFilePath)
	if err != nil {
		return errWriteConfig.Wrap(err)
	}

	return nil
}

// setConfig loads the configuration values, applying command-line overrides
// on top of the config file.
func setConfig(ctx *cli.Context) {
	appCfg.Stderr = os.Stderr
	appCfg.Stdout = os.Stdout
	appCfg.Stdin = os.Stdin

	appCfg.PathToDB = dbFilePath

	// set from config file
	appCfg.SessionMinutes = viper.GetInt(configSessionMinutes)
	appCfg.BreakMinutes = viper.GetInt(configBreakMinutes)
	appCfg.CoinRate = viper.GetFloat64(configCoinRate)
	appCfg.DeepFocus = viper.GetBool(configDeepFocus)
	appCfg.InactiveThreshold = viper.GetDuration(configInactiveThreshold)
	appCfg.GracePeriod = viper.GetDuration(configGracePeriod)
	appCfg.HeartbeatInterval = viper.GetDuration(configHeartbeatInterval)
	appCfg.Notify = viper.GetBool(configNotify)
	appCfg.CompletionSound = viper.GetString(configCompletionSound)
	appCfg.SessionCmd = viper.GetString(configSessionCmd)
	appCfg.TwentyFourHourClock = viper.GetBool(configTwentyFourHour)
	appCfg.UserID = viper.GetString(configUserID)
	appCfg.CoordinatorURL = viper.GetString(configCoordinatorURL)
	appCfg.ListenAddr = viper.GetString(configListenAddr)

	if viper.IsSet(configDarkTheme) {
		appCfg.DarkTheme = viper.GetBool(configDarkTheme)
	} else {
		appCfg.DarkTheme = true
	}

	// set from command-line arguments
	if ctx.Args().First() != "" {
		appCfg.Location = ctx.Args().First()
	}

	if ctx.Uint("duration") > 0 {
		appCfg.SessionMinutes = int(ctx.Uint("duration"))
	}

	if ctx.Uint("break") > 0 {
		appCfg.BreakMinutes = int(ctx.Uint("break"))
	}

	if ctx.Bool("deep-focus") {
		appCfg.DeepFocus = true
	}

	if ctx.Bool("disable-notification") {
		appCfg.Notify = false
	}

	if ctx.String("sound") != "" {
		if ctx.String("sound") == "off" {
			appCfg.CompletionSound = ""
		} else {
			appCfg.CompletionSound = ctx.String("sound")
		}
	}

	if ctx.String("session-cmd") != "" {
		appCfg.SessionCmd = ctx.String("session-cmd")
	}

	if ctx.String("user") != "" {
		appCfg.UserID = ctx.String("user")
	}

	if ctx.String("group") != "" {
		appCfg.GroupID = ctx.String("group")
	}

	if ctx.String("coordinator") != "" {
		appCfg.CoordinatorURL = ctx.String("coordinator")
	}

	if ctx.String("listen") != "" {
		appCfg.ListenAddr = ctx.String("listen")
	}
}

// Get initializes and returns the application configuration. The
// initialization is done just once no matter how many times it is called.
func Get(ctx *cli.Context) *Config {
	once.Do(func() {
		err := initConfig()
		if err != nil {
			pterm.Error.Printfln("%s: %s", errInitFailed.Error(), err.Error())
			os.Exit(1)
		}

		setConfig(ctx)

		if err := appCfg.Validate(); err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
	})

	return appCfg
}
