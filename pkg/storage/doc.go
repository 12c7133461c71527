// Package storage keeps converted files and audit reports.
//
// Two backends implement Storage: Local writes under a directory and
// S3Storage uploads to any S3-compatible bucket. Keys have the form
// "{prefix}/{name}"; without a prefix a random UUID groups the upload so
// repeated conversions of the same file never overwrite each other.
//
//	store, err := storage.NewLocal("./out")
//	info, err := store.Put(ctx, "menu [A12].txt", bytes.NewReader(data), int64(len(data)),
//		storage.WithPrefix(runID),
//	)
//
// Errors are normalized to the sentinels in errors.go; S3 API errors are
// mapped through their error codes.
package storage
