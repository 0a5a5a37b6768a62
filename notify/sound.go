package notify

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/perchapp/perch/config"
	"github.com/perchapp/perch/internal/apperr"
)

var errInvalidSoundFormat = &apperr.Error{
	Message: "sound file must be in mp3, ogg, flac, or wav format",
}

// prepSoundStream returns an audio stream for the specified sound. Built-in
// sound names resolve to WAV files in the data directory; anything else is
// treated as a path to an audio file.
func prepSoundStream(sound string) (beep.StreamSeekCloser, error) {
	var (
		f      *os.File
		err    error
		stream beep.StreamSeekCloser
		format beep.Format
	)

	ext := filepath.Ext(sound)
	// without extension, treat as a built-in WAV file
	if ext == "" {
		sound += ".wav"

		var path string

		path, err = xdg.SearchDataFile(
			filepath.Join(config.Dir(), "sounds", sound),
		)
		if err != nil {
			return nil, err
		}

		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
	} else {
		f, err = os.Open(sound)
		if err != nil {
			return nil, err
		}
	}

	ext = filepath.Ext(sound)

	switch ext {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		_ = f.Close()
		return nil, errInvalidSoundFormat
	}

	if err != nil {
		_ = f.Close()
		return nil, err
	}

	bufferSize := 10

	err = speaker.Init(
		format.SampleRate,
		format.SampleRate.N(time.Duration(int(time.Second)/bufferSize)),
	)
	if err != nil {
		return nil, err
	}

	err = stream.Seek(0)
	if err != nil {
		return nil, err
	}

	return stream, nil
}

// play renders a sound to completion and tears the stream down afterwards.
func play(sound string) error {
	stream, err := prepSoundStream(sound)
	if err != nil {
		return err
	}

	done := make(chan bool)

	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		done <- true
	})))

	<-done

	return stream.Close()
}
