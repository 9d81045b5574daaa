package chart

import (
	"errors"
	"fmt"
	"time"

	"github.com/dop251/goja"
)

// scriptTimeout bounds one evaluation of an axis label script.
const scriptTimeout = 100 * time.Millisecond

// ScriptFormatter compiles a JavaScript expression into an axis label
// formatter. The expression reads the tick in the variable value, for
// example `value.toFixed(1) + " CHF"`. Evaluation failures fall back to the
// plain number.
func ScriptFormatter(src string) (func(float64) string, error) {
	prog, err := goja.Compile("axis-label", src, false)
	if err != nil {
		return nil, fmt.Errorf("chart: compile label script: %w", err)
	}
	vm := goja.New()
	return func(v float64) string {
		s, err := runScript(vm, prog, v)
		if err != nil {
			return defaultFormat(v)
		}
		return s
	}, nil
}

func runScript(vm *goja.Runtime, prog *goja.Program, v float64) (string, error) {
	if err := vm.Set("value", v); err != nil {
		return "", err
	}
	defer vm.ClearInterrupt()
	timer := time.AfterFunc(scriptTimeout, func() {
		vm.Interrupt(errors.New("label script timed out"))
	})
	defer timer.Stop()
	res, err := vm.RunProgram(prog)
	if err != nil {
		return "", err
	}
	if res == nil || goja.IsUndefined(res) || goja.IsNull(res) {
		return "", errors.New("label script returned no value")
	}
	return res.String(), nil
}
