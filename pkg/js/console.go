package js

import (
	"strings"

	"github.com/dop251/goja"
	"go.uber.org/zap"
)

func registerConsole(vm *goja.Runtime, logger *zap.Logger) {
	console := vm.NewObject()
	level := func(log func(string, ...zap.Field)) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			log(formatArgs(call.Arguments))
			return goja.Undefined()
		}
	}
	console.Set("log", level(logger.Info))
	console.Set("info", level(logger.Info))
	console.Set("debug", level(logger.Debug))
	console.Set("warn", level(logger.Warn))
	console.Set("error", level(logger.Error))
	vm.Set("console", console)
}

func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return strings.Join(parts, " ")
}
