package imaging

// SetMaxLoadSize lowers the Load limit for the duration of a test.
func SetMaxLoadSize(n int64) (restore func()) {
	old := maxLoadSize
	maxLoadSize = n
	return func() { maxLoadSize = old }
}
