package constellation

import (
	"log"
	"os"
)

// LogFunc is the common logging func type used throughout the coordinator.
type LogFunc func(string, ...interface{})

// Logger is the default package logger, used when no logging funcs are
// supplied via CoordinatorOption.
var Logger = log.New(os.Stderr, "constellation ", log.LstdFlags)

func defaultLogf(s string, v ...interface{})   { Logger.Printf(s, v...) }
func defaultDebugf(s string, v ...interface{}) {}
