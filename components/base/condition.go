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

package base

import (
	"strings"

	"github.com/tickerflow/tickerflow/api/types"
	"github.com/tickerflow/tickerflow/utils/str"
)

// Operator 条件比较操作符
// Operator identifies one condition comparison.
type Operator string

const (
	Equal              Operator = "equal"
	NotEqual           Operator = "notEqual"
	GreaterThan        Operator = "greaterThan"
	GreaterThanOrEqual Operator = "greaterThanOrEqual"
	LessThan           Operator = "lessThan"
	LessThanOrEqual    Operator = "lessThanOrEqual"
	Contains           Operator = "contains"
	NotContains        Operator = "notContains"
	StartsWith         Operator = "startsWith"
	EndsWith           Operator = "endsWith"
	IsEmpty            Operator = "isEmpty"
	IsNotEmpty         Operator = "isNotEmpty"
)

// Condition 一条字段比较条件
// Condition is one (field, operator, value) comparison against a record.
type Condition struct {
	// Field 字段路径，支持`.`分隔的嵌套路径，例如 `price.close`
	// Field is the dot path addressing the compared field, e.g. "price.close".
	Field string `json:"field"`
	// Operator 比较操作符
	// Operator selects the comparison.
	Operator Operator `json:"operator"`
	// Value 比较值，isEmpty/isNotEmpty 操作符忽略该值
	// Value is the comparison operand; isEmpty/isNotEmpty ignore it.
	Value string `json:"value"`
}

// Evaluate 对一条记录求值
// Evaluate resolves the condition field on record and applies the operator.
// Evaluation is pure and fails closed: a missing field, a type-mismatched
// numeric comparison or an unrecognized operator all yield false, never an
// error. A malformed per-record condition must not abort a whole batch.
func (c Condition) Evaluate(record types.Record) bool {
	resolved, ok := record.Resolve(c.Field)
	switch c.Operator {
	case Equal:
		return str.ToString(resolved) == c.Value
	case NotEqual:
		return str.ToString(resolved) != c.Value
	case GreaterThan:
		left, right, numeric := numericOperands(resolved, c.Value)
		return numeric && left > right
	case GreaterThanOrEqual:
		left, right, numeric := numericOperands(resolved, c.Value)
		return numeric && left >= right
	case LessThan:
		left, right, numeric := numericOperands(resolved, c.Value)
		return numeric && left < right
	case LessThanOrEqual:
		left, right, numeric := numericOperands(resolved, c.Value)
		return numeric && left <= right
	case Contains:
		return strings.Contains(foldedString(resolved), strings.ToLower(c.Value))
	case NotContains:
		return !strings.Contains(foldedString(resolved), strings.ToLower(c.Value))
	case StartsWith:
		return strings.HasPrefix(foldedString(resolved), strings.ToLower(c.Value))
	case EndsWith:
		return strings.HasSuffix(foldedString(resolved), strings.ToLower(c.Value))
	case IsEmpty:
		return isEmptyValue(resolved, ok)
	case IsNotEmpty:
		return !isEmptyValue(resolved, ok)
	default:
		// 未知操作符视为不匹配
		// unknown operators never match
		return false
	}
}

// EvaluateAll 所有条件都为真才为真，空条件列表为真
// EvaluateAll reports whether every condition matches the record.
// An empty condition list vacuously matches.
func EvaluateAll(record types.Record, conditions []Condition) bool {
	for _, condition := range conditions {
		if !condition.Evaluate(record) {
			return false
		}
	}
	return true
}

// EvaluateAny 任一条件为真即为真，空条件列表为假
// EvaluateAny reports whether at least one condition matches the record.
// An empty condition list never matches.
func EvaluateAny(record types.Record, conditions []Condition) bool {
	for _, condition := range conditions {
		if condition.Evaluate(record) {
			return true
		}
	}
	return false
}

// numericOperands 两侧数值转换，任一侧非数值则比较结果为false
// numericOperands coerces both comparison sides to float64. Either side
// failing to coerce makes every ordering comparison false.
func numericOperands(resolved interface{}, value string) (float64, float64, bool) {
	left, leftOk := str.ToFloat64MaybeErr(resolved)
	right, rightOk := str.ToFloat64MaybeErr(value)
	return left, right, leftOk && rightOk
}

// foldedString 大小写无关比较用的字符串表示
// foldedString is the lower-cased string cast used by the substring operators.
func foldedString(resolved interface{}) string {
	return strings.ToLower(str.ToString(resolved))
}

// isEmptyValue 缺失、null和空字符串视为空
// isEmptyValue treats an absent field, a present nil and the empty string as
// empty. Everything else, zero numbers included, is non-empty.
func isEmptyValue(resolved interface{}, ok bool) bool {
	if !ok || resolved == nil {
		return true
	}
	s, isString := resolved.(string)
	return isString && s == ""
}
