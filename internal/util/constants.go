package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	MimeImage       = "image/"
	MimeAudio       = "audio/"
	MimePDF         = "application/pdf"
	MimeOctetStream = "application/octet-stream"
)

// Bounded-log retention: only the most recent entries are kept per user.
const (
	MaxRetainedSessions    = 100
	MaxRetainedQuizResults = 100
)
