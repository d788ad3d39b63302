package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kem-a/AppManager/internal/registry"
)

// Installer replaces an installed AppImage with a downloaded one. The update
// engine hands it a record and the path of the verified download; everything
// about how the file lands on disk is the installer's business.
type Installer interface {
	Upgrade(ctx context.Context, rec *registry.InstallationRecord, assetPath string) error
}

// FileInstaller performs an atomic in-place replacement: back up the current
// file, stage the new one next to the target, then rename over it.
type FileInstaller struct{}

// New returns the default file-replacement installer.
func New() Installer { return FileInstaller{} }

// Upgrade installs assetPath over rec.Path. The previous file is kept at
// rec.Path + ".backup" until the next upgrade overwrites it.
func (FileInstaller) Upgrade(ctx context.Context, rec *registry.InstallationRecord, assetPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rec.Path == "" {
		return fmt.Errorf("record %q has no install path", rec.Name)
	}

	mode := os.FileMode(0o755)
	if info, err := os.Stat(rec.Path); err == nil {
		mode = info.Mode()
		if err := copyFile(rec.Path, rec.Path+".backup"); err != nil {
			return fmt.Errorf("backup current file: %w", err)
		}
	}

	dir := filepath.Dir(rec.Path)
	tmp, err := os.CreateTemp(dir, ".appman-upgrade-*")
	if err != nil {
		return fmt.Errorf("stage upgrade: %w", err)
	}
	tmpPath := tmp.Name()

	src, err := os.Open(assetPath)
	if err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("open downloaded asset: %w", err)
	}
	_, err = io.Copy(tmp, src)
	src.Close()
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write staged file: %w", err)
	}

	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("set permissions: %w", err)
	}

	// Same-directory rename keeps the swap atomic.
	if err := os.Rename(tmpPath, rec.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("install file: %w", err)
	}
	return nil
}

// Rollback restores the backup left by the previous Upgrade.
func Rollback(installedPath string) error {
	backup := installedPath + ".backup"
	if _, err := os.Stat(backup); os.IsNotExist(err) {
		return fmt.Errorf("no backup for %s", installedPath)
	}
	return os.Rename(backup, installedPath)
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	dest, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = dest.Close() }()

	_, err = io.Copy(dest, source)
	return err
}
