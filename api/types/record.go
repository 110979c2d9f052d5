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
	"strings"

	"github.com/tickerflow/tickerflow/utils/json"
)

// PathSeparator 字段路径分隔符
// PathSeparator separates the segments of a field path, e.g. "price.close".
const PathSeparator = "."

// Record 一条流经节点的结构化数据
// Record is one structured data item flowing through a node: string keys to
// dynamically typed values (string, number, bool, nil, nested object, list).
// Records are treated as immutable once produced; transform operations build
// new records instead of mutating their inputs.
type Record map[string]interface{}

// RecordList 一次节点调用中一个输入或者输出端口的有序记录集合
// RecordList is the ordered content of one input or output port for a single
// node invocation. Order is significant and nodes preserve it.
type RecordList []Record

// Resolve 按`.`分隔的路径安全取值
// Resolve walks the record along a dot-separated path. It reports false when
// any segment is absent or an intermediate value is not an object, never an
// error. A present nil value resolves to (nil, true), which keeps the
// absent / null / empty-string distinctions testable.
// 不支持通配符和数组下标语法
// Wildcards and array index syntax are not supported.
func (r Record) Resolve(path string) (interface{}, bool) {
	var current interface{} = map[string]interface{}(r)
	for _, segment := range strings.Split(path, PathSeparator) {
		m, ok := asObject(current)
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Get 按路径取值，不存在返回nil
// Get returns the value at path, or nil when absent.
func (r Record) Get(path string) interface{} {
	v, _ := r.Resolve(path)
	return v
}

// Has 检查路径是否存在
// Has reports whether path resolves to a value, nil included.
func (r Record) Has(path string) bool {
	_, ok := r.Resolve(path)
	return ok
}

// Copy 顶层浅拷贝
// Copy returns a top-level copy of the record. Nested values are shared;
// merge operations only ever add or replace top-level fields.
func (r Record) Copy() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// asObject 把嵌套值规整成对象，用于路径下钻
// asObject normalizes a nested value into an object for path descent.
func asObject(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case Record:
		return m, true
	default:
		return nil, false
	}
}

// Marshal 记录列表序列化为JSON数组，保序
// Marshal serializes the list as an order-preserving JSON array of objects.
// This is the wire shape at any persistence boundary the host uses.
func (l RecordList) Marshal() ([]byte, error) {
	if l == nil {
		l = RecordList{}
	}
	return json.Marshal(l)
}

// ParseRecordList JSON数组反序列化为记录列表
// ParseRecordList parses a JSON array of objects into a RecordList.
func ParseRecordList(data []byte) (RecordList, error) {
	var l RecordList
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	return l, nil
}
