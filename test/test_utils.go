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

package test

import (
	"reflect"
	"testing"

	"github.com/tickerflow/tickerflow/api/types"
	"github.com/tickerflow/tickerflow/test/assert"
)

// CreateAndInitNode 创建并初始化一个节点实例
// CreateAndInitNode creates and initializes a node instance from a package
// registry.
func CreateAndInitNode(targetNodeType string, initConfig types.Configuration, registry *types.SafeComponentSlice) (types.Node, error) {
	var nodeFactory types.Node
	for _, component := range registry.Components() {
		if component.Type() == targetNodeType {
			nodeFactory = component
		}
	}
	node := nodeFactory.New()

	err := node.Init(types.NewConfig(), initConfig)
	return node, err
}

// NodeNew 测试创建节点实例
// NodeNew checks that the registry holds the component and that New creates
// an instance of the same kind.
func NodeNew(t *testing.T, targetNodeType string, targetNode types.Node, registry *types.SafeComponentSlice) {
	var nodeFactory types.Node
	for _, component := range registry.Components() {
		if component.Type() == targetNode.Type() {
			nodeFactory = component
		}
	}
	assert.NotNil(t, nodeFactory)
	assert.Equal(t, targetNodeType, nodeFactory.Type())

	node := nodeFactory.New()
	assert.True(t, reflect.ValueOf(node).Kind() == reflect.ValueOf(targetNode).Kind())
	assert.Equal(t, targetNodeType, node.Type())
}

// NodeOnBatch 初始化节点并执行一次调用，校验输出端口数量
// NodeOnBatch initializes a node, runs one invocation with the given context
// and inputs, and checks the declared output port count.
func NodeOnBatch(t *testing.T, targetNodeType string, initConfig types.Configuration,
	ctx types.NodeContext, registry *types.SafeComponentSlice, inputs ...types.RecordList) []types.RecordList {
	node, err := CreateAndInitNode(targetNodeType, initConfig, registry)
	assert.Nil(t, err)
	defer node.Destroy()

	outputs, err := node.OnBatch(ctx, inputs)
	assert.Nil(t, err)
	assert.Equal(t, node.Outputs(), len(outputs))
	return outputs
}
