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

package filter

//节点配置示例：
//{
//        "id": "f1",
//        "type": "filter",
//        "configuration": {
//          "operation": "keep",
//          "combineOperation": "and",
//          "conditions": [
//            {"field": "price.close", "operator": "greaterThan", "value": "50"}
//          ]
//        }
//      }
import (
	"github.com/tickerflow/tickerflow/api/types"
	"github.com/tickerflow/tickerflow/components/base"
	"github.com/tickerflow/tickerflow/utils/maps"
	"github.com/tickerflow/tickerflow/utils/str"
)

func init() {
	Registry.Add(&FilterNode{})
}

// 操作和组合方式取值
// operation and combine operation values
const (
	OperationKeep   = "keep"
	OperationRemove = "remove"

	CombineAnd = "and"
	CombineOr  = "or"
)

// 记录级参数名
// record-scoped parameter names
const (
	// ParamConditions 每条记录重新解析的条件列表参数
	// ParamConditions is the per-record conditions parameter.
	ParamConditions = "conditions"
)

// FilterNodeConfiguration 节点配置
// FilterNodeConfiguration is the Filter node configuration.
type FilterNodeConfiguration struct {
	// Operation `keep`保留匹配的记录，`remove`移除匹配的记录
	// Operation is `keep` to retain matching records or `remove` to drop them.
	Operation string
	// CombineOperation 多条件组合方式：`and`全部为真，`or`任一为真
	// CombineOperation combines the condition results: `and` requires all,
	// `or` requires at least one. With no conditions, `and` matches every
	// record and `or` matches none.
	CombineOperation string
	// Conditions 条件列表，当上下文没有提供记录级`conditions`参数时使用
	// Conditions is the static condition list, used when the invocation
	// context provides no record-scoped `conditions` parameter.
	Conditions []base.Condition
}

// FilterNode 按条件保留或移除记录，一个输入一个输出
// FilterNode keeps or discards records by combining field conditions.
// One input port, one output port. For a fixed configuration, keep and remove
// partition the input into two disjoint, order-preserving subsequences.
// 条件针对每条记录通过参数解析器重新解析，支持随下标变化的动态条件值。
// Conditions are re-resolved through the parameter resolver for every record
// index, which supports condition values that vary across the input list.
type FilterNode struct {
	//节点配置
	Config FilterNodeConfiguration
}

// Type 组件类型
func (x *FilterNode) Type() string {
	return "filter"
}

func (x *FilterNode) New() types.Node {
	return &FilterNode{Config: FilterNodeConfiguration{
		Operation:        OperationKeep,
		CombineOperation: CombineAnd,
	}}
}

// Init 初始化
func (x *FilterNode) Init(ruleConfig types.Config, configuration types.Configuration) error {
	if err := maps.Map2Struct(configuration, &x.Config); err != nil {
		return err
	}
	if x.Config.Operation == "" {
		x.Config.Operation = OperationKeep
	}
	if x.Config.CombineOperation == "" {
		x.Config.CombineOperation = CombineAnd
	}
	if !str.Contains([]string{OperationKeep, OperationRemove}, x.Config.Operation) {
		return types.NewConfigError(x.Type(), "operation", "must be keep or remove")
	}
	if !str.Contains([]string{CombineAnd, CombineOr}, x.Config.CombineOperation) {
		return types.NewConfigError(x.Type(), "combineOperation", "must be and or or")
	}
	return nil
}

// OnBatch 处理一批记录
// OnBatch evaluates every record and appends the surviving ones, in input
// order, to the single output list.
func (x *FilterNode) OnBatch(ctx types.NodeContext, inputs []types.RecordList) ([]types.RecordList, error) {
	var input types.RecordList
	if len(inputs) > 0 {
		input = inputs[0]
	}
	var output types.RecordList
	for i, record := range input {
		conditions := x.conditionsFor(ctx, i)
		var matches bool
		if x.Config.CombineOperation == CombineOr {
			matches = base.EvaluateAny(record, conditions)
		} else {
			matches = base.EvaluateAll(record, conditions)
		}
		shouldKeep := (x.Config.Operation == OperationKeep && matches) ||
			(x.Config.Operation == OperationRemove && !matches)
		if shouldKeep {
			output = append(output, record)
		}
	}
	return []types.RecordList{output}, nil
}

// Outputs 输出端口数量
func (x *FilterNode) Outputs() int {
	return 1
}

// Destroy 销毁
func (x *FilterNode) Destroy() {
}

// conditionsFor 解析当前记录下标的条件列表
// conditionsFor resolves the condition list for one record index. The lookup
// happens inside the per-record loop on purpose: hosts may resolve a
// different value per index, so the result is never cached.
func (x *FilterNode) conditionsFor(ctx types.NodeContext, index int) []base.Condition {
	if ctx == nil {
		return x.Config.Conditions
	}
	if v, ok := ctx.GetParam(ParamConditions, index); ok {
		var conditions []base.Condition
		if err := maps.Map2Struct(v, &conditions); err == nil {
			return conditions
		}
	}
	return x.Config.Conditions
}
