package restaurant

import "time"

// Photo references a previously uploaded blob by URL. UploadDate is stamped
// when the reference is attached to a restaurant or review, not when the
// blob itself was stored.
type Photo struct {
	URL        string
	UploadDate time.Time
}

// PhotosFromRefs converts photo URL references into Photo entries stamped
// with the given time.
func PhotosFromRefs(refs []string, now time.Time) []Photo {
	photos := make([]Photo, 0, len(refs))
	for _, ref := range refs {
		photos = append(photos, Photo{URL: ref, UploadDate: now})
	}
	return photos
}
