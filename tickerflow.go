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

// Package tickerflow is a library of batch transform nodes for the workflow
// engine of the trading terminal. A node is pure and synchronous: the host
// orchestrator materializes the input record lists, resolves parameter
// expressions, invokes the node once, and receives one ordered record list
// per declared output port. Scheduling, retries and cancellation between
// nodes belong to the orchestrator; nothing in this package suspends or
// keeps state between invocations.
//
// 示例 Example:
//
//	outputs, err := tickerflow.ExecuteNode("filter", types.NewConfig(), types.Configuration{
//		"operation":        "keep",
//		"combineOperation": "and",
//		"conditions": []map[string]interface{}{
//			{"field": "price.close", "operator": "greaterThan", "value": "50"},
//		},
//	}, nil, input)
package tickerflow

import (
	"github.com/gofrs/uuid/v5"
	"github.com/tickerflow/tickerflow/api/types"
)

// ExecuteNode 创建、初始化并执行一次节点调用
// ExecuteNode creates a node of the given type from the default registry,
// initializes it with the host-resolved configuration, runs one invocation
// over inputs and destroys the instance. resolver supplies record-scoped
// parameter values and may be nil.
func ExecuteNode(nodeType string, config types.Config, configuration types.Configuration,
	resolver types.ParamResolver, inputs ...types.RecordList) ([]types.RecordList, error) {
	node, err := Registry.NewNode(nodeType)
	if err != nil {
		return nil, err
	}
	defer node.Destroy()
	if err = node.Init(config, configuration); err != nil {
		return nil, err
	}
	return node.OnBatch(NewNodeContext(config, resolver), inputs)
}

// NewNodeContext 创建一次节点调用上下文，并通过uuid生成调用ID
// NewNodeContext creates a per-invocation context with a uuid run id.
func NewNodeContext(config types.Config, resolver types.ParamResolver) types.NodeContext {
	uuId, _ := uuid.NewV4()
	return &nodeContext{
		config:   config,
		resolver: resolver,
		runId:    uuId.String(),
	}
}

// nodeContext 默认的节点调用上下文
// nodeContext is the default NodeContext implementation.
type nodeContext struct {
	config   types.Config
	resolver types.ParamResolver
	runId    string
}

func (ctx *nodeContext) GetParam(name string, recordIndex int) (interface{}, bool) {
	if ctx.resolver == nil {
		return nil, false
	}
	return ctx.resolver(name, recordIndex)
}

func (ctx *nodeContext) RunId() string {
	return ctx.runId
}

func (ctx *nodeContext) Config() types.Config {
	return ctx.config
}
