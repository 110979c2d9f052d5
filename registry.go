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

package tickerflow

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tickerflow/tickerflow/api/types"
	"github.com/tickerflow/tickerflow/components/filter"
	"github.com/tickerflow/tickerflow/components/transform"
)

// Registry 节点组件默认注册器
// Registry is the default component registry.
var Registry = new(NodeComponentRegistry)

// 注册默认组件
// register the built-in components
func init() {
	var components []types.Node
	components = append(components, filter.Registry.Components()...)
	components = append(components, transform.Registry.Components()...)

	for _, node := range components {
		_ = Registry.Register(node)
	}
}

// NodeComponentRegistry 组件注册器
// NodeComponentRegistry is a concurrency-safe ComponentRegistry implementation.
type NodeComponentRegistry struct {
	//节点组件列表
	components map[string]types.Node
	sync.RWMutex
}

// Register 注册节点组件
// Register adds a component; it fails if the type is already registered.
func (r *NodeComponentRegistry) Register(node types.Node) error {
	r.Lock()
	defer r.Unlock()
	if r.components == nil {
		r.components = make(map[string]types.Node)
	}
	if _, ok := r.components[node.Type()]; ok {
		return errors.New("the component already exists. nodeType=" + node.Type())
	}
	r.components[node.Type()] = node
	return nil
}

// Unregister 删除节点组件
// Unregister removes a component by type.
func (r *NodeComponentRegistry) Unregister(nodeType string) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.components[nodeType]; !ok {
		return fmt.Errorf("component not found.componentType=%s", nodeType)
	}
	delete(r.components, nodeType)
	return nil
}

// NewNode 通过nodeType创建一个新的节点实例
// NewNode creates a fresh instance of the component with the given type.
func (r *NodeComponentRegistry) NewNode(nodeType string) (types.Node, error) {
	r.RLock()
	defer r.RUnlock()
	if node, ok := r.components[nodeType]; !ok {
		return nil, fmt.Errorf("component not found.componentType=%s", nodeType)
	} else {
		return node.New(), nil
	}
}

// GetComponents 获取所有注册组件列表
// GetComponents returns all registered components keyed by type.
func (r *NodeComponentRegistry) GetComponents() map[string]types.Node {
	r.RLock()
	defer r.RUnlock()
	var components = make(map[string]types.Node)
	for k, v := range r.components {
		components[k] = v
	}
	return components
}

// 编译期检查注册器实现
var _ types.ComponentRegistry = (*NodeComponentRegistry)(nil)
