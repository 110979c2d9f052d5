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
//        "id": "s1",
//        "type": "switch",
//        "configuration": {
//          "mode": "expression",
//          "expression": "msg.qty > 100 ? 0 : 1",
//          "fallbackOutput": 3
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
	Registry.Add(&SwitchNode{})
}

// 路由模式
// routing modes
const (
	ModeRules      = "rules"
	ModeExpression = "expression"
)

// SwitchOutputCount 固定输出端口数量：输出1..3加一个兜底输出
// SwitchOutputCount is the fixed number of output ports: Output 1..3 plus Fallback.
const SwitchOutputCount = 4

// DiscardOutput 丢弃记录的fallbackOutput取值
// DiscardOutput is the fallbackOutput value that discards unmatched records.
const DiscardOutput = -1

// 记录级参数名
// record-scoped parameter names
const (
	// ParamRules 每条记录重新解析的路由规则参数
	// ParamRules is the per-record rules parameter.
	ParamRules = "rules"
)

// OutputSlot 一条记录的路由结果，命名取代越界下标的隐式语义
// OutputSlot names the routing outcome of one record, replacing the bare
// index sentinel: Output1..Output3, Fallback, or Discard.
type OutputSlot int

const (
	SlotOutput1 OutputSlot = iota
	SlotOutput2
	SlotOutput3
	SlotFallback
	// SlotDiscard 记录不进入任何输出
	// SlotDiscard drops the record from every output.
	SlotDiscard
)

// slotOf 把配置的输出下标映射成路由槽位
// slotOf maps a configured output index to a routing slot. Index 3 addresses
// the fallback port like any other target; -1 and anything outside 0..3
// discard the record.
func slotOf(index int) OutputSlot {
	if index >= 0 && index < SwitchOutputCount {
		return OutputSlot(index)
	}
	return SlotDiscard
}

// Rule 一条路由规则：条件加目标输出下标
// Rule pairs one condition with the output index 0..3 it routes to.
type Rule struct {
	// Field 字段路径
	Field string `json:"field"`
	// Operator 比较操作符
	Operator base.Operator `json:"operator"`
	// Value 比较值
	Value string `json:"value"`
	// Output 目标输出下标 0..3，越界丢弃
	// Output is the target output index 0..3; anything else discards.
	Output int `json:"output"`
}

// condition 规则对应的比较条件
func (r Rule) condition() base.Condition {
	return base.Condition{Field: r.Field, Operator: r.Operator, Value: r.Value}
}

// SwitchNodeConfiguration 节点配置
// SwitchNodeConfiguration is the Switch node configuration.
type SwitchNodeConfiguration struct {
	// Mode `rules`按序匹配规则，`expression`运行路由表达式
	// Mode is `rules` for ordered rule matching or `expression` for a router
	// expression.
	Mode string
	// Rules 规则列表，按声明顺序匹配，第一条命中的规则生效
	// Rules are evaluated in declared order; the first matching rule wins.
	// Used when the context provides no record-scoped `rules` parameter.
	Rules []Rule
	// Expression 路由表达式，应返回输出下标 0..3
	// 通过`msg`变量访问记录字段，例如 `msg.qty > 100 ? 0 : 1`
	// 通过`index`变量访问记录下标
	// Expression is the router expression; it should yield an output index
	// in 0..3. The record is exposed as `msg`, its position as `index`.
	Expression string
	// FallbackOutput 无规则命中时的输出下标 0..3，-1表示丢弃
	// FallbackOutput is the output index 0..3 used when nothing matches;
	// -1 discards the record.
	FallbackOutput int
}

// SwitchNode 把每条记录路由到四个输出端口之一或者丢弃
// SwitchNode routes each record to exactly one of four outputs, or discards
// it. Dispatch is per record and stateless; every output preserves the
// relative input order of the records routed to it, and no record ever
// appears in more than one output.
type SwitchNode struct {
	//节点配置
	Config  SwitchNodeConfiguration
	program *vm.Program
}

// Type 组件类型
func (x *SwitchNode) Type() string {
	return "switch"
}

func (x *SwitchNode) New() types.Node {
	return &SwitchNode{Config: SwitchNodeConfiguration{
		Mode:           ModeRules,
		FallbackOutput: int(SlotFallback),
	}}
}

// Init 初始化
func (x *SwitchNode) Init(ruleConfig types.Config, configuration types.Configuration) error {
	x.Config = SwitchNodeConfiguration{Mode: ModeRules, FallbackOutput: int(SlotFallback)}
	if err := maps.Map2Struct(configuration, &x.Config); err != nil {
		return err
	}
	switch x.Config.Mode {
	case ModeRules:
		x.program = nil
	case ModeExpression:
		program, err := expr.Compile(x.Config.Expression, expr.AllowUndefinedVariables())
		if err != nil {
			return types.NewConfigError(x.Type(), "expression", err.Error())
		}
		x.program = program
	default:
		return types.NewConfigError(x.Type(), "mode", "must be rules or expression")
	}
	return nil
}

// OnBatch 处理一批记录
// OnBatch routes every record and returns the four output lists, in port
// order: Output 1, Output 2, Output 3, Fallback.
func (x *SwitchNode) OnBatch(ctx types.NodeContext, inputs []types.RecordList) ([]types.RecordList, error) {
	var input types.RecordList
	if len(inputs) > 0 {
		input = inputs[0]
	}
	outputs := make([]types.RecordList, SwitchOutputCount)
	for i, record := range input {
		var slot OutputSlot
		if x.Config.Mode == ModeExpression {
			slot = x.routeByExpression(record, i)
		} else {
			slot = x.routeByRules(ctx, record, i)
		}
		if slot != SlotDiscard {
			outputs[slot] = append(outputs[slot], record)
		}
	}
	return outputs, nil
}

// Outputs 输出端口数量
func (x *SwitchNode) Outputs() int {
	return SwitchOutputCount
}

// Destroy 销毁
func (x *SwitchNode) Destroy() {
}

// routeByRules 按声明顺序匹配规则，第一条命中的规则生效
// routeByRules walks the rules in declared order; the first rule whose
// condition matches routes the record. No match falls back.
func (x *SwitchNode) routeByRules(ctx types.NodeContext, record types.Record, index int) OutputSlot {
	for _, rule := range x.rulesFor(ctx, index) {
		if rule.condition().Evaluate(record) {
			return slotOf(rule.Output)
		}
	}
	return slotOf(x.Config.FallbackOutput)
}

// routeByExpression 运行路由表达式取输出下标
// routeByExpression runs the router expression against the record. An
// evaluation error or a non-integer result falls back; an integer result is
// routed like a rule target, so -1 and out-of-range indexes discard.
func (x *SwitchNode) routeByExpression(record types.Record, index int) OutputSlot {
	out, err := vm.Run(x.program, base.NodeUtils.GetEvn(record, index))
	if err != nil {
		return slotOf(x.Config.FallbackOutput)
	}
	target, ok := toOutputIndex(out)
	if !ok {
		return slotOf(x.Config.FallbackOutput)
	}
	return slotOf(target)
}

// rulesFor 解析当前记录下标的规则列表
// rulesFor resolves the rule list for one record index, fresh on every
// iteration; hosts may resolve different rule values per index.
func (x *SwitchNode) rulesFor(ctx types.NodeContext, index int) []Rule {
	if ctx == nil {
		return x.Config.Rules
	}
	if v, ok := ctx.GetParam(ParamRules, index); ok {
		var rules []Rule
		if err := maps.Map2Struct(v, &rules); err == nil {
			return rules
		}
	}
	return x.Config.Rules
}

// toOutputIndex 表达式结果转输出下标，只接受整数值
// toOutputIndex converts an expression result to an output index. Only
// integral values convert; everything else reports false.
func toOutputIndex(out interface{}) (int, bool) {
	switch v := out.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
		return 0, false
	default:
		return 0, false
	}
}
