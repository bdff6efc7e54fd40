package entity

type Admin struct {
	BaseSimple
	Username     string `db:"username"`
	PasswordHash string `db:"password"`
}
