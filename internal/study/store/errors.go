package store

import "studylab/pkg/platform/sentinel"

// ErrNotFound is returned by every study store when no study matches.
var ErrNotFound = sentinel.ErrNotFound
