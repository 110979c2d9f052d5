/*
 * Copyright 2024 The TickerFlow Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package js provides JavaScript execution for script-driven node components,
// implemented on the goja library. Virtual machines are pooled and reused;
// scripts are compiled once and interrupted when they exceed the configured
// execution timeout.
package js

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dop251/goja"
	"github.com/tickerflow/tickerflow/api/types"
)

const (
	//GlobalKey global properties key, scripts read them through global.xx
	GlobalKey = "global"
)

// GojaJsEngine goja js engine
type GojaJsEngine struct {
	vmPool   sync.Pool
	config   types.Config
	jsScript *goja.Program
}

// NewGojaJsEngine Create a new instance of the JavaScript engine
func NewGojaJsEngine(config types.Config, jsScript string) (*GojaJsEngine, error) {
	program, err := goja.Compile("", jsScript, true)
	if err != nil {
		return nil, err
	}
	jsEngine := &GojaJsEngine{
		config:   config,
		jsScript: program,
	}
	jsEngine.vmPool = sync.Pool{
		New: func() interface{} {
			return jsEngine.NewVm(config)
		},
	}
	return jsEngine, nil
}

// NewVm new a js VM
func (g *GojaJsEngine) NewVm(config types.Config) *goja.Runtime {
	vm := goja.New()

	if len(config.Properties) != 0 {
		if err := vm.Set(GlobalKey, config.Properties); err != nil {
			config.Logger.Printf("set global properties error: %s", err.Error())
		}
	}

	timer := g.startTimeout(vm)
	_, err := vm.RunProgram(g.jsScript)
	g.stopTimeout(timer)

	if err != nil {
		config.Logger.Printf("js vm error: %s", err.Error())
	}
	return vm
}

// Execute Execute JavaScript script
func (g *GojaJsEngine) Execute(functionName string, argumentList ...interface{}) (out interface{}, err error) {
	defer func() {
		if caught := recover(); caught != nil {
			err = fmt.Errorf("%s", caught)
		}
	}()

	vm := g.vmPool.Get().(*goja.Runtime)
	defer g.vmPool.Put(vm)

	var timer *time.Timer
	if g.config.ScriptMaxExecutionTime > 0 {
		timer = g.startTimeout(vm)
		defer g.stopTimeout(timer)
	}

	f, ok := goja.AssertFunction(vm.Get(functionName))
	if !ok {
		return nil, errors.New(functionName + " is not a function")
	}

	var params []goja.Value
	if len(argumentList) > 0 {
		params = make([]goja.Value, len(argumentList))
		for i, v := range argumentList {
			params[i] = vm.ToValue(v)
		}
	}

	res, err := f(goja.Undefined(), params...)
	if err != nil {
		return nil, err
	}
	return res.Export(), nil
}

func (g *GojaJsEngine) Stop() {
}

// startTimeout starts a timeout for JS script execution using time.AfterFunc
// Returns nil if timeout is not configured
func (g *GojaJsEngine) startTimeout(vm *goja.Runtime) *time.Timer {
	if g.config.ScriptMaxExecutionTime <= 0 {
		return nil
	}
	return time.AfterFunc(g.config.ScriptMaxExecutionTime, func() {
		vm.Interrupt("execution timeout")
	})
}

// stopTimeout stops the timeout timer
func (g *GojaJsEngine) stopTimeout(timer *time.Timer) {
	if timer != nil {
		timer.Stop()
	}
}
