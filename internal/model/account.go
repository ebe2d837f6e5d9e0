package model

type Account struct {
	ID      int64
	Balance int64
}
