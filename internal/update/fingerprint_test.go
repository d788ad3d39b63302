package update

import (
	"errors"
	"testing"
)

func TestBuildFingerprint(t *testing.T) {
	tests := []struct {
		name          string
		lastModified  string
		contentLength string
		want          string
		wantErr       error
	}{
		{
			name:          "both headers",
			lastModified:  "Wed, 10 Dec 2025 12:39:35 GMT",
			contentLength: "336828920",
			want:          "Wed, 10 Dec 2025 12:39:35 GMT|336828920",
		},
		{
			name:          "length only",
			contentLength: "1024",
			want:          "size:1024",
		},
		{
			name:         "modified only keeps separator",
			lastModified: "Wed, 10 Dec 2025 12:39:35 GMT",
			want:         "Wed, 10 Dec 2025 12:39:35 GMT|",
		},
		{
			name:    "neither header",
			wantErr: ErrNoTrackingHeaders,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildFingerprint(tt.lastModified, tt.contentLength)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("BuildFingerprint() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildFingerprint() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("BuildFingerprint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildFingerprintDeterministic(t *testing.T) {
	a, _ := BuildFingerprint("Mon, 01 Jan 2024 00:00:00 GMT", "42")
	b, _ := BuildFingerprint("Mon, 01 Jan 2024 00:00:00 GMT", "42")
	if a != b {
		t.Errorf("same inputs produced %q and %q", a, b)
	}

	c, _ := BuildFingerprint("Mon, 01 Jan 2024 00:00:00 GMT", "43")
	if a == c {
		t.Error("differing Content-Length produced identical fingerprints")
	}
	d, _ := BuildFingerprint("Tue, 02 Jan 2024 00:00:00 GMT", "42")
	if a == d {
		t.Error("differing Last-Modified produced identical fingerprints")
	}
}
