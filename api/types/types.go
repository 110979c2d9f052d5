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
	"sync"
)

// 脚本和表达式环境变量名
// environment variable names exposed to router expressions and scripts
const (
	// MsgKey 通过`msg`变量访问当前记录，例如 `msg.price.close > 50`
	// MsgKey exposes the current record, e.g. `msg.price.close > 50`
	MsgKey = "msg"
	// IndexKey 通过`index`变量访问当前记录在输入列表中的下标
	// IndexKey exposes the index of the current record within the input list
	IndexKey = "index"
)

// Configuration 组件配置类型
// Configuration is the raw, host-resolved configuration map for one node
// instance. The host resolves any embedded parameter expressions before the
// map reaches Node.Init.
type Configuration map[string]interface{}

// ParamResolver 按记录下标解析参数值
// ParamResolver resolves a named parameter for the record at recordIndex.
// Record-scoped parameters (conditions, rules) may yield a different value per
// index; node-scoped parameters are resolved once with index 0.
// The second return value reports whether the parameter is set at all.
type ParamResolver func(name string, recordIndex int) (interface{}, bool)

// Node 批量转换节点组件接口
// Node is the contract between a transform node and its host orchestrator.
// One invocation is synchronous and stateless: the full input lists go in,
// one ordered RecordList per declared output port comes out.
// 实现方式参考`components`包，然后注册到默认注册器：
// tickerflow.Registry.Register(&MyNode{})
type Node interface {
	// New 创建一个组件新实例
	// New creates a new instance of the component. Every node placed in a
	// workflow gets its own instance with independent configuration.
	New() Node
	// Type 组件类型，类型不能重复
	// Type returns the unique component type identifier used by the registry.
	Type() string
	// Init 组件初始化，绑定并校验节点级配置
	// Init binds and validates the node-scoped configuration. A returned
	// error (typically *ConfigError) is fatal for the node.
	Init(ruleConfig Config, configuration Configuration) error
	// OnBatch 处理一次节点调用：输入记录列表，返回每个输出端口一个记录列表
	// OnBatch performs one invocation over the materialized input lists and
	// returns exactly Outputs() ordered record lists. Record-scoped
	// parameters are re-read through ctx for every record index.
	// Configuration problems abort the invocation with an error; per-record
	// evaluation failures never do.
	OnBatch(ctx NodeContext, inputs []RecordList) ([]RecordList, error)
	// Outputs 静态声明的输出端口数量
	// Outputs reports the statically declared number of output ports.
	Outputs() int
	// Destroy 销毁，做一些资源释放操作
	// Destroy releases any resources held by the instance.
	Destroy()
}

// NodeContext 节点单次调用上下文
// NodeContext is the per-invocation context handed to OnBatch.
type NodeContext interface {
	// GetParam 按记录下标解析参数，未配置返回 false
	// GetParam resolves a parameter for the record at recordIndex.
	// It reports false when the host has no value for the parameter.
	GetParam(name string, recordIndex int) (interface{}, bool)
	// RunId 本次调用的唯一ID，用于日志关联
	// RunId returns the unique id of this invocation, for log correlation.
	RunId() string
	// Config 获取引擎配置
	// Config returns the engine configuration.
	Config() Config
}

// ComponentRegistry 节点组件注册器
// ComponentRegistry manages the set of registered node components.
type ComponentRegistry interface {
	// Register 注册组件，如果`node.Type()`已经存在则返回一个`已存在`错误
	// Register adds a component; it fails if node.Type() already exists.
	Register(node Node) error
	// Unregister 删除组件
	// Unregister removes a component by type.
	Unregister(nodeType string) error
	// NewNode 通过nodeType创建一个新的node实例
	// NewNode creates a fresh instance of the component with the given type.
	NewNode(nodeType string) (Node, error)
	// GetComponents 获取所有注册组件列表
	// GetComponents returns all registered components keyed by type.
	GetComponents() map[string]Node
}

// SafeComponentSlice 并发安全的组件列表，组件包用它声明包级Registry
// SafeComponentSlice is a concurrency-safe component list. Component packages
// declare a package-level Registry of this type and add their nodes in init().
type SafeComponentSlice struct {
	sync.Mutex
	components []Node
}

// Add 添加组件
// Add appends components to the slice.
func (p *SafeComponentSlice) Add(nodes ...Node) {
	p.Lock()
	defer p.Unlock()
	p.components = append(p.components, nodes...)
}

// Components 获取所有组件
// Components returns the registered components.
func (p *SafeComponentSlice) Components() []Node {
	p.Lock()
	defer p.Unlock()
	return p.components
}
