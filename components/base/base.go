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

// Package base holds the evaluation primitives shared by the node components:
// the condition evaluator and the environment builder for router expressions
// and scripts.
package base

import (
	"github.com/tickerflow/tickerflow/api/types"
)

var NodeUtils = &nodeUtils{}

type nodeUtils struct {
}

// GetEvn 构建表达式和脚本的环境变量
// GetEvn builds the variable environment a router expression or script sees
// for one record: `msg` is the record, `index` its position in the input list.
func (n *nodeUtils) GetEvn(record types.Record, index int) map[string]interface{} {
	var evn = make(map[string]interface{})
	evn[types.MsgKey] = map[string]interface{}(record)
	evn[types.IndexKey] = index
	return evn
}
