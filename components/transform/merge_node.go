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

package transform

//节点配置示例：
//{
//        "id": "m1",
//        "type": "merge",
//        "configuration": {
//          "mode": "mergeByKey",
//          "key1": "sym",
//          "key2": "sym",
//          "joinMode": "inner"
//        }
//      }
import (
	"github.com/tickerflow/tickerflow/api/types"
	"github.com/tickerflow/tickerflow/utils/maps"
	"github.com/tickerflow/tickerflow/utils/str"
)

func init() {
	Registry.Add(&MergeNode{})
}

// 合并模式
// merge modes
const (
	ModeAppend          = "append"
	ModeMergeByPosition = "mergeByPosition"
	ModeMergeByKey      = "mergeByKey"
	ModeChooseBranch    = "chooseBranch"
)

// 按位置合并的字段冲突处理方式
// positional merge clash handling
const (
	ClashPreferFirst  = "preferFirst"
	ClashPreferSecond = "preferSecond"
	ClashAddSuffix    = "addSuffix"
)

// 按键合并的连接方式
// key join modes
const (
	JoinInner = "inner"
	JoinLeft  = "left"
	JoinOuter = "outer"
)

// chooseBranch模式的输出选择
// chooseBranch output selection
const (
	OutputInput1 = "input1"
	OutputInput2 = "input2"
)

// addSuffix冲突键后缀
// addSuffix clash key suffixes
const (
	suffixFirst  = "_1"
	suffixSecond = "_2"
)

// MergeNodeConfiguration 节点配置
// MergeNodeConfiguration is the Merge node configuration.
type MergeNodeConfiguration struct {
	// Mode 合并模式：append、mergeByPosition、mergeByKey、chooseBranch
	// Mode selects the merge strategy.
	Mode string
	// ClashHandling 按位置合并时同名字段的处理方式：
	// preferFirst第一路的值生效，preferSecond第二路的值生效，
	// addSuffix冲突键改写为`key_1`和`key_2`
	// ClashHandling resolves same-name fields for mergeByPosition only.
	// mergeByKey always merges with second-input precedence ({...a, ...b})
	// regardless of this setting; that asymmetry is inherited behavior.
	ClashHandling string
	// Key1 第一路输入的连接键字段路径，mergeByKey模式必填
	// Key1 is the join key path in the first input; required for mergeByKey.
	Key1 string
	// Key2 第二路输入的连接键字段路径，mergeByKey模式必填
	// Key2 is the join key path in the second input; required for mergeByKey.
	Key2 string
	// JoinMode 连接方式：inner、left、outer
	// JoinMode selects which unmatched records survive a key join.
	JoinMode string
	// Output chooseBranch模式透传哪一路输入：input1或者input2
	// Output selects which input chooseBranch passes through unmodified.
	Output string
}

// MergeNode 合并两路记录列表，两个输入一个输出
// MergeNode combines two record lists. Two input ports, one output port.
// Matched records are merged into new records; the node never mutates its
// inputs, and every output record traces to at least one input record.
type MergeNode struct {
	//节点配置
	Config MergeNodeConfiguration
}

// Type 组件类型
func (x *MergeNode) Type() string {
	return "merge"
}

func (x *MergeNode) New() types.Node {
	return &MergeNode{Config: MergeNodeConfiguration{
		Mode:          ModeAppend,
		ClashHandling: ClashPreferSecond,
		JoinMode:      JoinInner,
		Output:        OutputInput1,
	}}
}

// Init 初始化，校验配置：非法模式或者缺失连接键直接失败
// Init binds and validates the configuration. A missing join key or an
// unsupported mode value is a configuration error and fails the node, unlike
// per-record evaluation which degrades silently.
func (x *MergeNode) Init(ruleConfig types.Config, configuration types.Configuration) error {
	x.Config = MergeNodeConfiguration{
		Mode:          ModeAppend,
		ClashHandling: ClashPreferSecond,
		JoinMode:      JoinInner,
		Output:        OutputInput1,
	}
	if err := maps.Map2Struct(configuration, &x.Config); err != nil {
		return err
	}
	switch x.Config.Mode {
	case ModeAppend:
	case ModeMergeByPosition:
		if !str.Contains([]string{ClashPreferFirst, ClashPreferSecond, ClashAddSuffix}, x.Config.ClashHandling) {
			return types.NewConfigError(x.Type(), "clashHandling", "must be preferFirst, preferSecond or addSuffix")
		}
	case ModeMergeByKey:
		if x.Config.Key1 == "" {
			return types.NewConfigError(x.Type(), "key1", "required for mergeByKey")
		}
		if x.Config.Key2 == "" {
			return types.NewConfigError(x.Type(), "key2", "required for mergeByKey")
		}
		if !str.Contains([]string{JoinInner, JoinLeft, JoinOuter}, x.Config.JoinMode) {
			return types.NewConfigError(x.Type(), "joinMode", "must be inner, left or outer")
		}
	case ModeChooseBranch:
		if !str.Contains([]string{OutputInput1, OutputInput2}, x.Config.Output) {
			return types.NewConfigError(x.Type(), "output", "must be input1 or input2")
		}
	default:
		return types.NewConfigError(x.Type(), "mode", "must be append, mergeByPosition, mergeByKey or chooseBranch")
	}
	return nil
}

// OnBatch 处理一次合并
func (x *MergeNode) OnBatch(ctx types.NodeContext, inputs []types.RecordList) ([]types.RecordList, error) {
	var first, second types.RecordList
	if len(inputs) > 0 {
		first = inputs[0]
	}
	if len(inputs) > 1 {
		second = inputs[1]
	}
	var output types.RecordList
	switch x.Config.Mode {
	case ModeMergeByPosition:
		output = x.mergeByPosition(first, second)
	case ModeMergeByKey:
		output = x.mergeByKey(first, second)
	case ModeChooseBranch:
		if x.Config.Output == OutputInput2 {
			output = second
		} else {
			output = first
		}
	default:
		output = mergeAppend(first, second)
	}
	return []types.RecordList{output}, nil
}

// Outputs 输出端口数量
func (x *MergeNode) Outputs() int {
	return 1
}

// Destroy 销毁
func (x *MergeNode) Destroy() {
}

// mergeAppend 第一路接第二路
// mergeAppend concatenates the two inputs, first then second.
func mergeAppend(first, second types.RecordList) types.RecordList {
	output := make(types.RecordList, 0, len(first)+len(second))
	output = append(output, first...)
	output = append(output, second...)
	return output
}

// mergeByPosition 按下标对齐合并，较短一路用空记录补齐
// mergeByPosition pairs records by index; the shorter input pads with empty
// records, so the output length is the longer input's length.
func (x *MergeNode) mergeByPosition(first, second types.RecordList) types.RecordList {
	length := len(first)
	if len(second) > length {
		length = len(second)
	}
	output := make(types.RecordList, 0, length)
	for i := 0; i < length; i++ {
		var left, right types.Record
		if i < len(first) {
			left = first[i]
		}
		if i < len(second) {
			right = second[i]
		}
		output = append(output, x.mergePair(left, right))
	}
	return output
}

// mergePair 按冲突策略合并一对记录
// mergePair merges one index-aligned pair per the clash handling policy.
func (x *MergeNode) mergePair(left, right types.Record) types.Record {
	switch x.Config.ClashHandling {
	case ClashPreferFirst:
		merged := right.Copy()
		for k, v := range left {
			merged[k] = v
		}
		return merged
	case ClashAddSuffix:
		merged := make(types.Record, len(left)+len(right))
		for k, v := range left {
			if _, clash := right[k]; clash {
				merged[k+suffixFirst] = v
			} else {
				merged[k] = v
			}
		}
		for k, v := range right {
			if _, clash := left[k]; clash {
				merged[k+suffixSecond] = v
			} else {
				merged[k] = v
			}
		}
		return merged
	default:
		merged := left.Copy()
		for k, v := range right {
			merged[k] = v
		}
		return merged
	}
}

// mergeByKey 关系连接：对第二路建哈希索引，遍历第一路查找匹配
// mergeByKey performs a relational join. The second input is hash-indexed by
// its key value; each first-input record looks up its key and every match
// produces a separate merged record (cross product on duplicate keys). Field
// clashes always resolve in favor of the second input ({...a, ...b}).
// A record whose key path is absent never matches.
func (x *MergeNode) mergeByKey(first, second types.RecordList) types.RecordList {
	index := make(map[string]types.RecordList)
	for _, record := range second {
		if v, ok := record.Resolve(x.Config.Key2); ok {
			key := str.ToString(v)
			index[key] = append(index[key], record)
		}
	}

	keepUnmatched := x.Config.JoinMode == JoinLeft || x.Config.JoinMode == JoinOuter

	//第一路已出现过的键值集合，重复键值只记一次
	//keys seen while walking the first input; a set, not a count
	seen := make(map[string]struct{})
	var output types.RecordList
	for _, record := range first {
		v, ok := record.Resolve(x.Config.Key1)
		if !ok {
			if keepUnmatched {
				output = append(output, record)
			}
			continue
		}
		key := str.ToString(v)
		seen[key] = struct{}{}
		matches := index[key]
		if len(matches) == 0 {
			if keepUnmatched {
				output = append(output, record)
			}
			continue
		}
		for _, match := range matches {
			merged := record.Copy()
			for k, vv := range match {
				merged[k] = vv
			}
			output = append(output, merged)
		}
	}

	if x.Config.JoinMode == JoinOuter {
		for _, record := range second {
			v, ok := record.Resolve(x.Config.Key2)
			if !ok {
				output = append(output, record)
				continue
			}
			if _, matched := seen[str.ToString(v)]; !matched {
				output = append(output, record)
			}
		}
	}
	return output
}
