package migrator

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}
