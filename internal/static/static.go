// Package static embeds bundled assets into the binary and installs them
// into the user's data directory.
package static

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/perchapp/perch/config"
	"github.com/perchapp/perch/internal/osutil"
)

const (
	filesDir = "files"
)

//go:embed files
var embeddedFiles embed.FS

// Install copies the embedded assets to the user's data directory. Files
// that already exist are left untouched so user customisations survive
// upgrades.
func Install() error {
	return fs.WalkDir(
		embeddedFiles,
		filesDir,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			b, err := embeddedFiles.ReadFile(path)
			if err != nil {
				return err
			}

			stripped := strings.TrimPrefix(
				path,
				filesDir+string(os.PathSeparator),
			)

			relPath := filepath.Join(config.Dir(), stripped)

			destPath, err := xdg.DataFile(relPath)
			if err != nil {
				return err
			}

			// Only write if file does not already exist
			if _, err := os.Stat(destPath); os.IsNotExist(err) {
				if err := os.MkdirAll(filepath.Dir(destPath), osutil.DirPermission); err != nil {
					return err
				}

				if err := os.WriteFile(destPath, b, 0o644); err != nil {
					return err
				}
			}

			return nil
		},
	)
}
