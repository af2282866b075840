package storage

import "errors"

var (
	ErrStoreUnreachable   = errors.New("vector store unreachable")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrLengthMismatch     = errors.New("ids, documents and metadatas must have equal length")
)
