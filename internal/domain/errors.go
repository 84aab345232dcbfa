package domain

import "errors"

// Error taxonomy for collection operations. Callers branch with
// errors.Is; operations wrap the underlying cause alongside the
// sentinel so both survive the chain.
var (
	// ErrLoad means the initial fetch of an owner's data failed.
	// Fatal to the session view; zero rows is not a load error.
	ErrLoad = errors.New("collection load failed")

	// ErrAdd means metadata fetch or remote persist failed while
	// adding a bookmark. No partial bookmark is created.
	ErrAdd = errors.New("add bookmark failed")

	// ErrUpdate means a remote partial update failed. The local
	// optimistic change has been rolled back.
	ErrUpdate = errors.New("update failed")

	// ErrDelete means a remote delete failed. Local state unchanged.
	ErrDelete = errors.New("delete failed")

	// ErrNotFound means the entity id is not in the local collection.
	ErrNotFound = errors.New("not found")

	// ErrBusy means another mutation on the same entity id is still
	// waiting on its remote call. The caller should retry later.
	ErrBusy = errors.New("operation in flight for entity")

	// ErrEmptyURL rejects bookmark input without a URL.
	ErrEmptyURL = errors.New("url must not be empty")
)
