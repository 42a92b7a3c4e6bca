package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Level defines the log level
type Level int32

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (l Level) String() string {
	if l < DebugLevel || l > FatalLevel {
		return fmt.Sprintf("Level(%d)", int32(l))
	}
	return levelNames[l]
}

var (
	currentLevel atomic.Int32
	std          = log.New(os.Stderr, "", log.LstdFlags)
)

func init() {
	currentLevel.Store(int32(WarnLevel))
}

// ParseLevel 将字符串解析为日志级别，无法识别时返回 InfoLevel 和 false
func ParseLevel(levelStr string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return DebugLevel, true
	case "info":
		return InfoLevel, true
	case "warn", "warning":
		return WarnLevel, true
	case "error":
		return ErrorLevel, true
	case "fatal":
		return FatalLevel, true
	}
	return InfoLevel, false
}

// SetLevel sets the global log level
func SetLevel(levelStr string) {
	lvl, _ := ParseLevel(levelStr)
	currentLevel.Store(int32(lvl))
}

// GetLevel returns the active log level
func GetLevel() Level {
	return Level(currentLevel.Load())
}

// VerbosityLevel 命令行调试开关到日志级别的映射：
// 0 -> warn，1 (-d) -> info，2 (-dd) -> debug
func VerbosityLevel(verbosity int) string {
	switch {
	case verbosity >= 2:
		return "debug"
	case verbosity == 1:
		return "info"
	default:
		return "warn"
	}
}

// Enabled reports whether messages at level would be written
func Enabled(level Level) bool {
	return level >= GetLevel()
}

// SetOutput sets the output destination for the logger
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// Debug logs a message at DebugLevel
func Debug(v ...interface{}) {
	if Enabled(DebugLevel) {
		output(DebugLevel, fmt.Sprint(v...))
	}
}

// Debugf logs a formatted message at DebugLevel
func Debugf(format string, v ...interface{}) {
	if Enabled(DebugLevel) {
		output(DebugLevel, fmt.Sprintf(format, v...))
	}
}

// Info logs a message at InfoLevel
func Info(v ...interface{}) {
	if Enabled(InfoLevel) {
		output(InfoLevel, fmt.Sprint(v...))
	}
}

// Infof logs a formatted message at InfoLevel
func Infof(format string, v ...interface{}) {
	if Enabled(InfoLevel) {
		output(InfoLevel, fmt.Sprintf(format, v...))
	}
}

// Warn logs a message at WarnLevel
func Warn(v ...interface{}) {
	if Enabled(WarnLevel) {
		output(WarnLevel, fmt.Sprint(v...))
	}
}

// Warnf logs a formatted message at WarnLevel
func Warnf(format string, v ...interface{}) {
	if Enabled(WarnLevel) {
		output(WarnLevel, fmt.Sprintf(format, v...))
	}
}

// Error logs a message at ErrorLevel
func Error(v ...interface{}) {
	if Enabled(ErrorLevel) {
		output(ErrorLevel, fmt.Sprint(v...))
	}
}

// Errorf logs a formatted message at ErrorLevel
func Errorf(format string, v ...interface{}) {
	if Enabled(ErrorLevel) {
		output(ErrorLevel, fmt.Sprintf(format, v...))
	}
}

// Fatal logs a message at FatalLevel and exits
func Fatal(v ...interface{}) {
	output(FatalLevel, fmt.Sprint(v...))
	os.Exit(1)
}

// Fatalf logs a formatted message at FatalLevel and exits
func Fatalf(format string, v ...interface{}) {
	output(FatalLevel, fmt.Sprintf(format, v...))
	os.Exit(1)
}

func output(level Level, msg string) {
	// log.Logger 自身负责时间戳和并发写入
	std.Output(3, "["+level.String()+"] "+msg)
}
