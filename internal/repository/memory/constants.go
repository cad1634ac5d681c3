package memory

const (
	errUserNotFound    = "user not found"
	errProductNotFound = "product not found"
)
