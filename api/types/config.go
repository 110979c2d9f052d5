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

package types

import (
	"time"
)

// Config defines the engine-level configuration shared by all node instances.
type Config struct {
	// Logger is the logging interface, defaulting to `DefaultLogger()`.
	Logger Logger
	// ScriptMaxExecutionTime is the maximum execution time for scripts,
	// defaulting to 2000 milliseconds. Zero disables the interrupt timer.
	ScriptMaxExecutionTime time.Duration
	// Properties are global properties in key-value format. Script nodes
	// expose them through the `global` variable.
	Properties map[string]string
}

// NewConfig creates a new Config with default values and applies the provided options.
func NewConfig(opts ...Option) Config {
	c := &Config{
		ScriptMaxExecutionTime: time.Millisecond * 2000,
		Logger:                 DefaultLogger(),
		Properties:             make(map[string]string),
	}
	for _, opt := range opts {
		_ = opt(c)
	}
	return *c
}
