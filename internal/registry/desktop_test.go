package registry

import (
	"strings"
	"testing"
)

const sampleDesktop = `# generated by appimagetool
[Desktop Entry]
Type=Application
Name=My Tool
Name[de]=Mein Werkzeug
Exec=mytool %U
X-AppImage-Version=1.2.0
X-AppImage-UpdateURL=https://github.com/acme/mytool

[Desktop Action New]
Name=Should Not Leak
`

func TestParseDesktop(t *testing.T) {
	entry, err := ParseDesktop(strings.NewReader(sampleDesktop))
	if err != nil {
		t.Fatalf("ParseDesktop: %v", err)
	}
	if entry.Name != "My Tool" {
		t.Errorf("Name = %q, want My Tool", entry.Name)
	}
	if entry.Version != "1.2.0" {
		t.Errorf("Version = %q, want 1.2.0", entry.Version)
	}
	if entry.UpdateLink != "https://github.com/acme/mytool" {
		t.Errorf("UpdateLink = %q", entry.UpdateLink)
	}
}

func TestParseDesktopIgnoresOtherGroups(t *testing.T) {
	in := "[Desktop Action New]\nName=Wrong\n\n[Desktop Entry]\nName=Right\n"
	entry, err := ParseDesktop(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if entry.Name != "Right" {
		t.Errorf("Name = %q, want Right", entry.Name)
	}
}

func TestParseDesktopNoGroup(t *testing.T) {
	if _, err := ParseDesktop(strings.NewReader("Name=Orphan\n")); err == nil {
		t.Fatal("want error for stream without [Desktop Entry] group")
	}
}

func TestParseDesktopOptionalKeys(t *testing.T) {
	entry, err := ParseDesktop(strings.NewReader("[Desktop Entry]\nName=Bare\n"))
	if err != nil {
		t.Fatal(err)
	}
	if entry.Version != "" || entry.UpdateLink != "" {
		t.Errorf("entry = %+v, want empty optionals", entry)
	}
}

func TestDesktopEntryRecord(t *testing.T) {
	e := &DesktopEntry{Name: "My Tool", Version: "1.2.0", UpdateLink: "https://github.com/acme/mytool"}
	rec := e.Record("/apps/mytool.AppImage")
	if rec.Name != "My Tool" || rec.Path != "/apps/mytool.AppImage" || rec.Version != "1.2.0" {
		t.Errorf("record = %+v", rec)
	}
	if rec.OriginalUpdateLink != "https://github.com/acme/mytool" || rec.CustomUpdateLink != "" {
		t.Errorf("links = %q / %q", rec.OriginalUpdateLink, rec.CustomUpdateLink)
	}
}
