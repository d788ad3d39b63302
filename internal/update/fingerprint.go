package update

import "errors"

// ErrNoTrackingHeaders is returned when a direct-URL source exposes neither
// Last-Modified nor Content-Length, leaving nothing to fingerprint.
var ErrNoTrackingHeaders = errors.New("no change-tracking headers")

// BuildFingerprint derives the change-detection fingerprint for a direct-URL
// source from its response headers. Last-Modified plus Content-Length are
// mirror-invariant, unlike entity tags which vary across CDN nodes for the
// same logical file.
//
// The format is fixed: "{lastModified}|{contentLength}" when Last-Modified
// is present, "size:{contentLength}" otherwise. With neither header there is
// no fingerprint to build.
func BuildFingerprint(lastModified, contentLength string) (string, error) {
	switch {
	case lastModified != "":
		return lastModified + "|" + contentLength, nil
	case contentLength != "":
		return "size:" + contentLength, nil
	}
	return "", ErrNoTrackingHeaders
}
