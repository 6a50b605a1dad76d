package repository

type Config struct {
	Dsn string `yaml:"dsn" validate:"required"`
}
