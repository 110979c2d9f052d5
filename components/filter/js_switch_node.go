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
//        "id": "s2",
//        "type": "jsSwitch",
//        "configuration": {
//          "jsScript": "return msg.qty > 100 ? 0 : 1;",
//          "fallbackOutput": 3
//        }
//      }
import (
	"fmt"

	"github.com/tickerflow/tickerflow/api/types"
	"github.com/tickerflow/tickerflow/utils/js"
	"github.com/tickerflow/tickerflow/utils/maps"
)

func init() {
	Registry.Add(&JsSwitchNode{})
}

// JsSwitchNodeConfiguration 节点配置
type JsSwitchNodeConfiguration struct {
	// JsScript JS路由函数体，应返回输出下标 0..3
	// 记录可以通过`msg`变量访问，例如 `return msg.qty > 100 ? 0 : 1;`
	// 记录下标可以通过`index`变量访问
	// JsScript is the body of the router function; it should return an
	// output index in 0..3. The record is exposed as `msg`, its position as
	// `index`.
	JsScript string
	// FallbackOutput 脚本出错或返回非整数时的输出下标 0..3，-1表示丢弃
	// FallbackOutput is the output index 0..3 used when the script fails or
	// returns a non-integer; -1 discards the record.
	FallbackOutput int
}

// JsSwitchNode 执行JS脚本把每条记录路由到四个输出端口之一或者丢弃
// JsSwitchNode routes each record with a JavaScript function. Routing
// semantics match SwitchNode: exactly one output per record or a discard,
// input order preserved per output, -1 and out-of-range indexes discard.
type JsSwitchNode struct {
	//节点配置
	Config   JsSwitchNodeConfiguration
	jsEngine *js.GojaJsEngine
}

// Type 组件类型
func (x *JsSwitchNode) Type() string {
	return "jsSwitch"
}

func (x *JsSwitchNode) New() types.Node {
	return &JsSwitchNode{Config: JsSwitchNodeConfiguration{
		FallbackOutput: int(SlotFallback),
	}}
}

// Init 初始化
func (x *JsSwitchNode) Init(ruleConfig types.Config, configuration types.Configuration) error {
	x.Config = JsSwitchNodeConfiguration{FallbackOutput: int(SlotFallback)}
	if err := maps.Map2Struct(configuration, &x.Config); err != nil {
		return err
	}
	jsScript := fmt.Sprintf("function Switch(msg, index) { %s }", x.Config.JsScript)
	jsEngine, err := js.NewGojaJsEngine(ruleConfig, jsScript)
	if err != nil {
		return types.NewConfigError(x.Type(), "jsScript", err.Error())
	}
	x.jsEngine = jsEngine
	return nil
}

// OnBatch 处理一批记录
func (x *JsSwitchNode) OnBatch(ctx types.NodeContext, inputs []types.RecordList) ([]types.RecordList, error) {
	var input types.RecordList
	if len(inputs) > 0 {
		input = inputs[0]
	}
	outputs := make([]types.RecordList, SwitchOutputCount)
	for i, record := range input {
		slot := x.route(record, i)
		if slot != SlotDiscard {
			outputs[slot] = append(outputs[slot], record)
		}
	}
	return outputs, nil
}

// Outputs 输出端口数量
func (x *JsSwitchNode) Outputs() int {
	return SwitchOutputCount
}

// Destroy 销毁
func (x *JsSwitchNode) Destroy() {
	if x.jsEngine != nil {
		x.jsEngine.Stop()
	}
}

// route 运行JS函数取输出下标，出错或非整数结果走兜底输出
// route runs the JS function for one record. Script errors and non-integer
// results fall back; integer results route like rule targets.
func (x *JsSwitchNode) route(record types.Record, index int) OutputSlot {
	out, err := x.jsEngine.Execute("Switch", map[string]interface{}(record), index)
	if err != nil {
		return slotOf(x.Config.FallbackOutput)
	}
	target, ok := toOutputIndex(out)
	if !ok {
		return slotOf(x.Config.FallbackOutput)
	}
	return slotOf(target)
}
