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

// Package assert provides minimal test assertions.
package assert

import (
	"reflect"
	"testing"
)

// Equal 断言相等
// Equal asserts that expected and actual are deeply equal.
func Equal(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Errorf("not equal. expected=%v(%T), actual=%v(%T)", expected, expected, actual, actual)
	}
}

// NotEqual 断言不相等
// NotEqual asserts that expected and actual are not deeply equal.
func NotEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if reflect.DeepEqual(expected, actual) {
		t.Errorf("should not be equal. value=%v(%T)", actual, actual)
	}
}

// True 断言为真
// True asserts that actual is true.
func True(t *testing.T, actual bool) {
	t.Helper()
	if !actual {
		t.Errorf("should be true")
	}
}

// False 断言为假
// False asserts that actual is false.
func False(t *testing.T, actual bool) {
	t.Helper()
	if actual {
		t.Errorf("should be false")
	}
}

// Nil 断言为nil
// Nil asserts that object is nil.
func Nil(t *testing.T, object interface{}) {
	t.Helper()
	if !isNil(object) {
		t.Errorf("should be nil. value=%v(%T)", object, object)
	}
}

// NotNil 断言不为nil
// NotNil asserts that object is not nil.
func NotNil(t *testing.T, object interface{}) {
	t.Helper()
	if isNil(object) {
		t.Errorf("should not be nil")
	}
}

// isNil 检查对象是否为nil，包括带类型的nil
// isNil reports whether object is nil, typed nils included.
func isNil(object interface{}) bool {
	if object == nil {
		return true
	}
	value := reflect.ValueOf(object)
	switch value.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return value.IsNil()
	default:
		return false
	}
}
