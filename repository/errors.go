package repository

import "errors"

// ErrDuplicate is returned by Create when the unique key is already taken,
// meaning a concurrent request created the record first.
var ErrDuplicate = errors.New("record already exists")
