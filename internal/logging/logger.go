package logging

import (
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel определяет уровни логирования
type LogLevel int32

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel разбирает уровень из конфигурации ("debug", "INFO", ...)
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TRACE, nil
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", s)
	}
}

// Options задаёт параметры создаваемых логгеров
type Options struct {
	Level  string // trace|debug|info|warn|error
	Format string // "json" или "console"
}

// Logger представляет логгер одного компонента.
// Фильтрация по уровню делается здесь, zap пишет всё, что пропущено.
type Logger struct {
	component string
	sugar     *zap.SugaredLogger
	minLevel  atomic.Int32
}

var (
	defaultOptions = Options{Level: "info", Format: "console"}
	defaultLogger  *Logger
)

// Configure задаёт параметры по умолчанию для всех новых логгеров.
// Вызывать до InitDefaultLogger / GetComponentLogger.
func Configure(opts Options) {
	defaultOptions = opts
}

// NewLogger создаёт логгер компонента с параметрами по умолчанию
func NewLogger(component string) (*Logger, error) {
	return NewLoggerWithOptions(component, defaultOptions)
}

// NewLoggerWithOptions создаёт логгер компонента на основе zap
func NewLoggerWithOptions(component string, opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var zapCfg zap.Config
	if opts.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)

	zl, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger for %s: %w", component, err)
	}

	l := &Logger{
		component: component,
		sugar:     zl.Named(component).Sugar(),
	}
	l.minLevel.Store(int32(level))
	return l, nil
}

// newNopLogger возвращает логгер, который ничего не пишет
func newNopLogger(component string) *Logger {
	l := &Logger{component: component, sugar: zap.NewNop().Sugar()}
	l.minLevel.Store(int32(ERROR + 1))
	return l
}

// Component возвращает имя компонента
func (l *Logger) Component() string { return l.component }

// SetLevel меняет минимальный уровень во время работы
func (l *Logger) SetLevel(level LogLevel) {
	l.minLevel.Store(int32(level))
}

// Level возвращает текущий минимальный уровень
func (l *Logger) Level() LogLevel {
	return LogLevel(l.minLevel.Load())
}

// Enabled сообщает, будет ли записано сообщение указанного уровня
func (l *Logger) Enabled(level LogLevel) bool {
	return l != nil && level >= l.Level()
}

func (l *Logger) Trace(format string, args ...interface{}) {
	if l.Enabled(TRACE) {
		l.sugar.Debugf("[TRACE] "+format, args...)
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.Enabled(DEBUG) {
		l.sugar.Debugf(format, args...)
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	if l.Enabled(INFO) {
		l.sugar.Infof(format, args...)
	}
}

func (l *Logger) Warn(format string, args ...interface{}) {
	if l.Enabled(WARN) {
		l.sugar.Warnf(format, args...)
	}
}

func (l *Logger) Error(format string, args ...interface{}) {
	if l.Enabled(ERROR) {
		l.sugar.Errorf(format, args...)
	}
}

// Close сбрасывает буферы zap
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	// Sync на stderr/stdout возвращает EINVAL на части платформ: игнорируем
	_ = l.sugar.Sync()
	return nil
}

// InitDefaultLogger инициализирует глобальный логгер, которым пользуются
// пакетные функции Info/Debug/....
func InitDefaultLogger(component string) error {
	l, err := NewLogger(component)
	if err != nil {
		return fmt.Errorf("ошибка инициализации логгера: %w", err)
	}
	defaultLogger = l
	return nil
}

// CloseDefaultLogger закрывает глобальный логгер
func CloseDefaultLogger() {
	if defaultLogger != nil {
		_ = defaultLogger.Close()
		defaultLogger = nil
	}
}

// До инициализации пакетные функции ничего не делают.

func Trace(format string, args ...interface{}) { defaultLogger.Trace(format, args...) }
func Debug(format string, args ...interface{}) { defaultLogger.Debug(format, args...) }
func Info(format string, args ...interface{})  { defaultLogger.Info(format, args...) }
func Warn(format string, args ...interface{})  { defaultLogger.Warn(format, args...) }
func Error(format string, args ...interface{}) { defaultLogger.Error(format, args...) }
