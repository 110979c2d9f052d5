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
	"testing"

	"github.com/tickerflow/tickerflow/api/types"
	"github.com/tickerflow/tickerflow/test/assert"
)

func TestExecuteNode(t *testing.T) {
	t.Run("Filter", func(t *testing.T) {
		input := types.RecordList{
			{"price": map[string]interface{}{"close": 60}},
			{"price": map[string]interface{}{"close": 40}},
		}
		outputs, err := ExecuteNode("filter", types.NewConfig(), types.Configuration{
			"operation":        "keep",
			"combineOperation": "and",
			"conditions": []map[string]interface{}{
				{"field": "price.close", "operator": "greaterThan", "value": "50"},
			},
		}, nil, input)
		assert.Nil(t, err)
		assert.Equal(t, 1, len(outputs))
		assert.Equal(t, types.RecordList{{"price": map[string]interface{}{"close": 60}}}, outputs[0])
	})

	t.Run("Switch", func(t *testing.T) {
		input := types.RecordList{{"qty": 500}, {"qty": 5}}
		outputs, err := ExecuteNode("switch", types.NewConfig(), types.Configuration{
			"rules": []map[string]interface{}{
				{"field": "qty", "operator": "greaterThan", "value": "100", "output": 0},
			},
			"fallbackOutput": 1,
		}, nil, input)
		assert.Nil(t, err)
		assert.Equal(t, 4, len(outputs))
		assert.Equal(t, 1, len(outputs[0]))
		assert.Equal(t, 1, len(outputs[1]))
	})

	//解析器提供逐记录参数
	t.Run("WithResolver", func(t *testing.T) {
		input := types.RecordList{{"p": 10}, {"p": 10}}
		resolver := func(name string, recordIndex int) (interface{}, bool) {
			if name != "conditions" {
				return nil, false
			}
			if recordIndex == 0 {
				return []map[string]interface{}{
					{"field": "p", "operator": "greaterThan", "value": "5"},
				}, true
			}
			return []map[string]interface{}{
				{"field": "p", "operator": "greaterThan", "value": "100"},
			}, true
		}
		outputs, err := ExecuteNode("filter", types.NewConfig(), types.Configuration{
			"operation": "keep",
		}, resolver, input)
		assert.Nil(t, err)
		assert.Equal(t, 1, len(outputs[0]))
	})

	t.Run("ConfigError", func(t *testing.T) {
		_, err := ExecuteNode("filter", types.NewConfig(), types.Configuration{
			"operation": "invert",
		}, nil, types.RecordList{})
		assert.NotNil(t, err)
		_, ok := err.(*types.ConfigError)
		assert.True(t, ok)
	})

	t.Run("UnknownNodeType", func(t *testing.T) {
		_, err := ExecuteNode("notFound", types.NewConfig(), nil, nil)
		assert.NotNil(t, err)
	})
}

func TestNewNodeContext(t *testing.T) {
	config := types.NewConfig()
	ctx := NewNodeContext(config, nil)
	assert.True(t, ctx.RunId() != "")
	_, ok := ctx.GetParam("conditions", 0)
	assert.False(t, ok)

	other := NewNodeContext(config, nil)
	assert.NotEqual(t, ctx.RunId(), other.RunId())
}
