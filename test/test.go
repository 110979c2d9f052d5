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

// Package test provides helpers for testing single node components without a
// host orchestrator.
package test

import (
	"github.com/tickerflow/tickerflow/api/types"
)

// NodeTestContext
// 只为测试单节点，临时创建的上下文
// NodeTestContext is a throwaway NodeContext for single-node tests. Params
// maps a parameter name to a per-record-index resolver function.
type NodeTestContext struct {
	config types.Config
	params map[string]func(index int) interface{}
}

// NewNodeContext 创建测试上下文，params可以为nil
// NewNodeContext creates a test context. params may be nil.
func NewNodeContext(params map[string]func(index int) interface{}) types.NodeContext {
	return &NodeTestContext{
		config: types.NewConfig(),
		params: params,
	}
}

// StaticParam 每个记录下标都返回同一个值的参数函数
// StaticParam builds a parameter function returning the same value for every
// record index.
func StaticParam(value interface{}) func(index int) interface{} {
	return func(index int) interface{} {
		return value
	}
}

func (ctx *NodeTestContext) GetParam(name string, recordIndex int) (interface{}, bool) {
	if ctx.params == nil {
		return nil, false
	}
	fn, ok := ctx.params[name]
	if !ok {
		return nil, false
	}
	return fn(recordIndex), true
}

func (ctx *NodeTestContext) RunId() string {
	return "test"
}

func (ctx *NodeTestContext) Config() types.Config {
	return ctx.config
}
