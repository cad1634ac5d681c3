package user

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type CreateUserInput struct {
	Username string
	Email    string
}

// Seed is the user collection present at startup
func Seed() []User {
	return []User{
		{ID: 1, Username: "john", Email: "john@example.com"},
		{ID: 2, Username: "jane", Email: "jane@example.com"},
	}
}
