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
//        "id": "f2",
//        "type": "exprFilter",
//        "configuration": {
//          "expr": "msg.price.close > 50"
//        }
//      }
import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/tickerflow/tickerflow/api/types"
	"github.com/tickerflow/tickerflow/components/base"
	"github.com/tickerflow/tickerflow/utils/maps"
)

func init() {
	Registry.Add(&ExprFilterNode{})
}

// ExprFilterNodeConfiguration 节点配置
type ExprFilterNodeConfiguration struct {
	// Expr 过滤表达式，返回true保留记录
	// 通过`msg`变量访问记录字段，例如 `msg.price.close > 50`
	// 通过`index`变量访问记录下标
	// Expr is the filter expression; records for which it returns true are
	// kept. The record is exposed as `msg`, its position as `index`.
	Expr string
}

// ExprFilterNode 使用expr表达式过滤记录，一个输入一个输出
// ExprFilterNode keeps the records for which the expr program returns true.
// A per-record evaluation error or a non-boolean result drops the record and
// never aborts the batch. One input port, one output port.
type ExprFilterNode struct {
	//节点配置
	Config  ExprFilterNodeConfiguration
	program *vm.Program
}

// Type 组件类型
func (x *ExprFilterNode) Type() string {
	return "exprFilter"
}

func (x *ExprFilterNode) New() types.Node {
	return &ExprFilterNode{}
}

// Init 初始化
func (x *ExprFilterNode) Init(ruleConfig types.Config, configuration types.Configuration) error {
	if err := maps.Map2Struct(configuration, &x.Config); err != nil {
		return err
	}
	program, err := expr.Compile(x.Config.Expr, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return types.NewConfigError(x.Type(), "expr", err.Error())
	}
	x.program = program
	return nil
}

// OnBatch 处理一批记录
func (x *ExprFilterNode) OnBatch(ctx types.NodeContext, inputs []types.RecordList) ([]types.RecordList, error) {
	var input types.RecordList
	if len(inputs) > 0 {
		input = inputs[0]
	}
	var output types.RecordList
	for i, record := range input {
		out, err := vm.Run(x.program, base.NodeUtils.GetEvn(record, i))
		if err != nil {
			continue
		}
		if keep, ok := out.(bool); ok && keep {
			output = append(output, record)
		}
	}
	return []types.RecordList{output}, nil
}

// Outputs 输出端口数量
func (x *ExprFilterNode) Outputs() int {
	return 1
}

// Destroy 销毁
func (x *ExprFilterNode) Destroy() {
}
