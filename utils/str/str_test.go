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

package str

import (
	"errors"
	"testing"

	"github.com/tickerflow/tickerflow/test/assert"
)

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "aa", ToString("aa"))
	assert.Equal(t, "true", ToString(true))
	assert.Equal(t, "5", ToString(5))
	assert.Equal(t, "5", ToString(int64(5)))
	assert.Equal(t, "5.1", ToString(5.1))
	//整数值的浮点数没有小数点
	assert.Equal(t, "150", ToString(float64(150)))
	assert.Equal(t, "aa", ToString([]byte("aa")))
	assert.Equal(t, "boom", ToString(errors.New("boom")))
	assert.Equal(t, `{"name":"lala"}`, ToString(map[string]interface{}{"name": "lala"}))
}

func TestToFloat64MaybeErr(t *testing.T) {
	v, ok := ToFloat64MaybeErr(5)
	assert.True(t, ok)
	assert.Equal(t, float64(5), v)

	v, ok = ToFloat64MaybeErr("5.1")
	assert.True(t, ok)
	assert.Equal(t, 5.1, v)

	_, ok = ToFloat64MaybeErr("aa")
	assert.False(t, ok)

	_, ok = ToFloat64MaybeErr(nil)
	assert.False(t, ok)

	_, ok = ToFloat64MaybeErr(true)
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"aa", "bb"}, "aa"))
	assert.False(t, Contains([]string{"aa", "bb"}, "cc"))
	assert.False(t, Contains(nil, "aa"))
}

func TestToLowerFirst(t *testing.T) {
	assert.Equal(t, "", ToLowerFirst(""))
	assert.Equal(t, "aaBB", ToLowerFirst("AaBB"))
	assert.Equal(t, "aa", ToLowerFirst("aa"))
}
