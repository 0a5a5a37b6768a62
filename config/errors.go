package config

import "github.com/perchapp/perch/internal/apperr"

var (
	errInitFailed = &apperr.Error{
		Message: "unable to initialise perch settings from the configuration file",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidDuration = &apperr.Error{
		Message: "%s duration must be a positive number of minutes, got %d",
	}

	errInvalidCoinRate = &apperr.Error{
		Message: "coin rate must be greater than zero, got %v",
	}

	errInvalidInterval = &apperr.Error{
		Message: "%s must be a positive duration, got %v",
	}

	errInvalidSoundFormat = &apperr.Error{
		Message: "invalid sound file format: %s (must be mp3, ogg, flac, or wav)",
	}

	errInvalidPeriod = &apperr.Error{
		Message: "please provide a valid time period",
	}

	errInvalidStartDate = &apperr.Error{
		Message: "please provide a valid start date",
	}

	errInvalidDateRange = &apperr.Error{
		Message: "the start time must be earlier than the end time",
	}
)
