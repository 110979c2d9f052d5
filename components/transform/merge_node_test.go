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

import (
	"testing"

	"github.com/tickerflow/tickerflow/api/types"
	"github.com/tickerflow/tickerflow/test"
	"github.com/tickerflow/tickerflow/test/assert"
)

func TestMergeNode(t *testing.T) {
	var targetNodeType = "merge"

	t.Run("NewNode", func(t *testing.T) {
		test.NodeNew(t, targetNodeType, &MergeNode{}, Registry)
	})

	t.Run("InitInvalidMode", func(t *testing.T) {
		_, err := test.CreateAndInitNode(targetNodeType, types.Configuration{
			"mode": "zip",
		}, Registry)
		assert.NotNil(t, err)
		_, ok := err.(*types.ConfigError)
		assert.True(t, ok)
	})

	//mergeByKey缺失连接键是配置错误，整次调用失败
	t.Run("InitMissingJoinKeys", func(t *testing.T) {
		_, err := test.CreateAndInitNode(targetNodeType, types.Configuration{
			"mode": "mergeByKey", "key2": "sym",
		}, Registry)
		assert.NotNil(t, err)
		configErr, ok := err.(*types.ConfigError)
		assert.True(t, ok)
		assert.Equal(t, "key1", configErr.Field)

		_, err = test.CreateAndInitNode(targetNodeType, types.Configuration{
			"mode": "mergeByKey", "key1": "sym",
		}, Registry)
		assert.NotNil(t, err)
	})

	t.Run("InitInvalidJoinMode", func(t *testing.T) {
		_, err := test.CreateAndInitNode(targetNodeType, types.Configuration{
			"mode": "mergeByKey", "key1": "sym", "key2": "sym", "joinMode": "cross",
		}, Registry)
		assert.NotNil(t, err)
	})

	t.Run("InitInvalidClashHandling", func(t *testing.T) {
		_, err := test.CreateAndInitNode(targetNodeType, types.Configuration{
			"mode": "mergeByPosition", "clashHandling": "explode",
		}, Registry)
		assert.NotNil(t, err)
	})

	t.Run("Append", func(t *testing.T) {
		first := types.RecordList{{"a": 1}, {"a": 2}}
		second := types.RecordList{{"b": 1}}
		outputs := test.NodeOnBatch(t, targetNodeType, types.Configuration{
			"mode": "append",
		}, test.NewNodeContext(nil), Registry, first, second)
		assert.Equal(t, len(first)+len(second), len(outputs[0]))
		assert.Equal(t, types.RecordList{{"a": 1}, {"a": 2}, {"b": 1}}, outputs[0])
	})

	t.Run("MergeByPositionLength", func(t *testing.T) {
		first := types.RecordList{{"a": 1}}
		second := types.RecordList{{"b": 1}, {"b": 2}, {"b": 3}}
		outputs := test.NodeOnBatch(t, targetNodeType, types.Configuration{
			"mode": "mergeByPosition", "clashHandling": "preferSecond",
		}, test.NewNodeContext(nil), Registry, first, second)
		assert.Equal(t, 3, len(outputs[0]))
		assert.Equal(t, types.Record{"a": 1, "b": 1}, outputs[0][0])
		//较短一路用空记录补齐
		assert.Equal(t, types.Record{"b": 2}, outputs[0][1])
		assert.Equal(t, types.Record{"b": 3}, outputs[0][2])
	})

	t.Run("MergeByPositionPreferFirst", func(t *testing.T) {
		outputs := test.NodeOnBatch(t, targetNodeType, types.Configuration{
			"mode": "mergeByPosition", "clashHandling": "preferFirst",
		}, test.NewNodeContext(nil), Registry,
			types.RecordList{{"x": 1, "y": 2}}, types.RecordList{{"x": 9, "z": 3}})
		assert.Equal(t, types.Record{"x": 1, "y": 2, "z": 3}, outputs[0][0])
	})

	t.Run("MergeByPositionPreferSecond", func(t *testing.T) {
		outputs := test.NodeOnBatch(t, targetNodeType, types.Configuration{
			"mode": "mergeByPosition", "clashHandling": "preferSecond",
		}, test.NewNodeContext(nil), Registry,
			types.RecordList{{"x": 1, "y": 2}}, types.RecordList{{"x": 9, "z": 3}})
		assert.Equal(t, types.Record{"x": 9, "y": 2, "z": 3}, outputs[0][0])
	})

	//冲突键移除原键，改写为key_1和key_2，非冲突键原样透传
	t.Run("MergeByPositionAddSuffix", func(t *testing.T) {
		outputs := test.NodeOnBatch(t, targetNodeType, types.Configuration{
			"mode": "mergeByPosition", "clashHandling": "addSuffix",
		}, test.NewNodeContext(nil), Registry,
			types.RecordList{{"x": 1, "y": 2}}, types.RecordList{{"x": 9, "z": 3}})
		assert.Equal(t, types.Record{"y": 2, "z": 3, "x_1": 1, "x_2": 9}, outputs[0][0])
	})

	//重复键产生叉积：每个匹配单独产出一条合并记录
	t.Run("MergeByKeyInnerCrossProduct", func(t *testing.T) {
		first := types.RecordList{{"sym": "AAPL", "qty": 10}}
		second := types.RecordList{
			{"sym": "AAPL", "price": 150},
			{"sym": "AAPL", "price": 151},
		}
		outputs := test.NodeOnBatch(t, targetNodeType, types.Configuration{
			"mode": "mergeByKey", "key1": "sym", "key2": "sym", "joinMode": "inner",
		}, test.NewNodeContext(nil), Registry, first, second)
		assert.Equal(t, types.RecordList{
			{"sym": "AAPL", "qty": 10, "price": 150},
			{"sym": "AAPL", "qty": 10, "price": 151},
		}, outputs[0])
	})

	t.Run("MergeByKeyInnerDropsUnmatched", func(t *testing.T) {
		first := types.RecordList{{"sym": "AAPL", "qty": 10}, {"sym": "TSLA", "qty": 5}}
		second := types.RecordList{{"sym": "AAPL", "price": 150}}
		outputs := test.NodeOnBatch(t, targetNodeType, types.Configuration{
			"mode": "mergeByKey", "key1": "sym", "key2": "sym", "joinMode": "inner",
		}, test.NewNodeContext(nil), Registry, first, second)
		assert.Equal(t, types.RecordList{{"sym": "AAPL", "qty": 10, "price": 150}}, outputs[0])
	})

	t.Run("MergeByKeyLeftKeepsUnmatchedFirst", func(t *testing.T) {
		first := types.RecordList{{"sym": "AAPL", "qty": 10}, {"sym": "TSLA", "qty": 5}}
		second := types.RecordList{{"sym": "AAPL", "price": 150}}
		outputs := test.NodeOnBatch(t, targetNodeType, types.Configuration{
			"mode": "mergeByKey", "key1": "sym", "key2": "sym", "joinMode": "left",
		}, test.NewNodeContext(nil), Registry, first, second)
		assert.Equal(t, types.RecordList{
			{"sym": "AAPL", "qty": 10, "price": 150},
			{"sym": "TSLA", "qty": 5},
		}, outputs[0])
	})

	//外连接：第二路未匹配的记录按原顺序追加在末尾
	t.Run("MergeByKeyOuter", func(t *testing.T) {
		first := types.RecordList{{"sym": "AAPL", "qty": 10}, {"sym": "TSLA", "qty": 5}}
		second := types.RecordList{
			{"sym": "NVDA", "price": 800},
			{"sym": "AAPL", "price": 150},
			{"sym": "AMD", "price": 120},
		}
		outputs := test.NodeOnBatch(t, targetNodeType, types.Configuration{
			"mode": "mergeByKey", "key1": "sym", "key2": "sym", "joinMode": "outer",
		}, test.NewNodeContext(nil), Registry, first, second)
		assert.Equal(t, types.RecordList{
			{"sym": "AAPL", "qty": 10, "price": 150},
			{"sym": "TSLA", "qty": 5},
			{"sym": "NVDA", "price": 800},
			{"sym": "AMD", "price": 120},
		}, outputs[0])
	})

	//第一路重复键值：已匹配集合是集合语义而不是计数
	t.Run("MergeByKeyOuterDuplicateLeftKeys", func(t *testing.T) {
		first := types.RecordList{
			{"sym": "AAPL", "qty": 10},
			{"sym": "AAPL", "qty": 20},
		}
		second := types.RecordList{{"sym": "AAPL", "price": 150}, {"sym": "NVDA", "price": 800}}
		outputs := test.NodeOnBatch(t, targetNodeType, types.Configuration{
			"mode": "mergeByKey", "key1": "sym", "key2": "sym", "joinMode": "outer",
		}, test.NewNodeContext(nil), Registry, first, second)
		assert.Equal(t, types.RecordList{
			{"sym": "AAPL", "qty": 10, "price": 150},
			{"sym": "AAPL", "qty": 20, "price": 150},
			{"sym": "NVDA", "price": 800},
		}, outputs[0])
	})

	//按键合并的字段冲突始终第二路生效，与clashHandling配置无关
	t.Run("MergeByKeySecondSidePrecedence", func(t *testing.T) {
		first := types.RecordList{{"sym": "AAPL", "src": "orders"}}
		second := types.RecordList{{"sym": "AAPL", "src": "quotes"}}
		outputs := test.NodeOnBatch(t, targetNodeType, types.Configuration{
			"mode": "mergeByKey", "key1": "sym", "key2": "sym", "joinMode": "inner",
			"clashHandling": "preferFirst",
		}, test.NewNodeContext(nil), Registry, first, second)
		assert.Equal(t, types.RecordList{{"sym": "AAPL", "src": "quotes"}}, outputs[0])
	})

	//连接键路径缺失的记录不参与匹配
	t.Run("MergeByKeyAbsentKeys", func(t *testing.T) {
		first := types.RecordList{{"qty": 10}, {"sym": "AAPL", "qty": 20}}
		second := types.RecordList{{"sym": "AAPL", "price": 150}, {"price": 120}}
		outputs := test.NodeOnBatch(t, targetNodeType, types.Configuration{
			"mode": "mergeByKey", "key1": "sym", "key2": "sym", "joinMode": "outer",
		}, test.NewNodeContext(nil), Registry, first, second)
		assert.Equal(t, types.RecordList{
			{"qty": 10},
			{"sym": "AAPL", "qty": 20, "price": 150},
			{"price": 120},
		}, outputs[0])
	})

	//嵌套路径作为连接键
	t.Run("MergeByKeyNestedPath", func(t *testing.T) {
		first := types.RecordList{{"order": map[string]interface{}{"sym": "AAPL"}, "qty": 10}}
		second := types.RecordList{{"sym": "AAPL", "price": 150}}
		outputs := test.NodeOnBatch(t, targetNodeType, types.Configuration{
			"mode": "mergeByKey", "key1": "order.sym", "key2": "sym", "joinMode": "inner",
		}, test.NewNodeContext(nil), Registry, first, second)
		assert.Equal(t, 1, len(outputs[0]))
		assert.Equal(t, 150, outputs[0][0]["price"])
	})

	//合并不改写输入记录
	t.Run("InputsNotMutated", func(t *testing.T) {
		first := types.RecordList{{"sym": "AAPL", "qty": 10}}
		second := types.RecordList{{"sym": "AAPL", "price": 150}}
		test.NodeOnBatch(t, targetNodeType, types.Configuration{
			"mode": "mergeByKey", "key1": "sym", "key2": "sym", "joinMode": "inner",
		}, test.NewNodeContext(nil), Registry, first, second)
		assert.Equal(t, types.Record{"sym": "AAPL", "qty": 10}, first[0])
		assert.Equal(t, types.Record{"sym": "AAPL", "price": 150}, second[0])
	})

	t.Run("ChooseBranch", func(t *testing.T) {
		first := types.RecordList{{"a": 1}}
		second := types.RecordList{{"b": 2}}
		outputs := test.NodeOnBatch(t, targetNodeType, types.Configuration{
			"mode": "chooseBranch", "output": "input1",
		}, test.NewNodeContext(nil), Registry, first, second)
		assert.Equal(t, first, outputs[0])

		outputs = test.NodeOnBatch(t, targetNodeType, types.Configuration{
			"mode": "chooseBranch", "output": "input2",
		}, test.NewNodeContext(nil), Registry, first, second)
		assert.Equal(t, second, outputs[0])
	})

	t.Run("MissingSecondInput", func(t *testing.T) {
		first := types.RecordList{{"a": 1}}
		outputs := test.NodeOnBatch(t, targetNodeType, types.Configuration{
			"mode": "append",
		}, test.NewNodeContext(nil), Registry, first)
		assert.Equal(t, first, outputs[0])
	})
}
