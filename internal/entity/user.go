package entity

type User struct {
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash"`
}
