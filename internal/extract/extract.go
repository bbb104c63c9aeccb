// Package extract unpacks downloaded release archives.
package extract

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Extracting unpacks an archive inside its containing directory.
type Extracting interface {
	Extract(ctx context.Context, archivePath string) error
}

// TarExtractor shells out to the system tar utility. The archive is
// extracted in place: entries land next to the archive file. A failed
// extraction leaves whatever tar left on disk.
type TarExtractor struct{}

func (TarExtractor) Extract(ctx context.Context, archivePath string) error {
	cmd := exec.CommandContext(ctx, "tar", "-xzf", filepath.Base(archivePath))
	cmd.Dir = filepath.Dir(archivePath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("tar extract %s: %v: %s", filepath.Base(archivePath), err, strings.TrimSpace(string(output)))
	}
	return nil
}

var _ Extracting = TarExtractor{}
