package config

const (
	DefaultDatabasePath = "./bookshelf.db"
	DefaultCoversDir    = "./covers"
)
