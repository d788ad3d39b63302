package registry

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Desktop-entry keys carrying AppImage metadata. AppImageKit writes the
// version key at packaging time; the update link keys are this manager's own
// extensions.
const (
	keyName       = "Name"
	keyVersion    = "X-AppImage-Version"
	keyUpdateLink = "X-AppImage-UpdateURL"
)

// DesktopEntry holds the subset of a .desktop file this manager cares about.
type DesktopEntry struct {
	Name       string
	Version    string
	UpdateLink string
}

// ParseDesktopFile reads the [Desktop Entry] group of a .desktop file.
func ParseDesktopFile(path string) (*DesktopEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseDesktop(f)
}

// ParseDesktop parses a desktop-entry stream. Only keys inside the
// [Desktop Entry] group are honored; localized keys (Name[xx]) are ignored.
func ParseDesktop(r io.Reader) (*DesktopEntry, error) {
	entry := &DesktopEntry{}
	inGroup := false
	seen := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inGroup = line == "[Desktop Entry]"
			if inGroup {
				seen = true
			}
			continue
		}
		if !inGroup {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case keyName:
			entry.Name = strings.TrimSpace(value)
		case keyVersion:
			entry.Version = strings.TrimSpace(value)
		case keyUpdateLink:
			entry.UpdateLink = strings.TrimSpace(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !seen {
		return nil, fmt.Errorf("no [Desktop Entry] group")
	}
	return entry, nil
}

// Record converts a desktop entry into a fresh installation record for the
// given AppImage path.
func (e *DesktopEntry) Record(appImagePath string) *InstallationRecord {
	return &InstallationRecord{
		Name:               e.Name,
		Path:               appImagePath,
		Version:            e.Version,
		OriginalUpdateLink: e.UpdateLink,
	}
}
