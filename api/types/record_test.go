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
	"testing"
)

func TestRecordResolve(t *testing.T) {
	record := Record{
		"symbol": "AAPL",
		"price": map[string]interface{}{
			"close": 150.5,
			"open":  nil,
		},
		"meta": Record{
			"exchange": "NASDAQ",
		},
		"note": nil,
	}

	t.Run("TopLevel", func(t *testing.T) {
		v, ok := record.Resolve("symbol")
		if !ok || v != "AAPL" {
			t.Fatalf("expected AAPL, got %v ok=%v", v, ok)
		}
	})

	t.Run("Nested", func(t *testing.T) {
		v, ok := record.Resolve("price.close")
		if !ok || v != 150.5 {
			t.Fatalf("expected 150.5, got %v ok=%v", v, ok)
		}
	})

	t.Run("NestedRecordType", func(t *testing.T) {
		v, ok := record.Resolve("meta.exchange")
		if !ok || v != "NASDAQ" {
			t.Fatalf("expected NASDAQ, got %v ok=%v", v, ok)
		}
	})

	t.Run("AbsentLeaf", func(t *testing.T) {
		_, ok := record.Resolve("price.high")
		if ok {
			t.Fatal("expected absent")
		}
	})

	t.Run("AbsentIntermediate", func(t *testing.T) {
		_, ok := record.Resolve("volume.total")
		if ok {
			t.Fatal("expected absent")
		}
	})

	t.Run("NullIntermediate", func(t *testing.T) {
		//中间值为null时停止下钻，返回缺失而不是错误
		_, ok := record.Resolve("note.text")
		if ok {
			t.Fatal("expected absent when descending through nil")
		}
	})

	t.Run("ScalarIntermediate", func(t *testing.T) {
		_, ok := record.Resolve("symbol.length")
		if ok {
			t.Fatal("expected absent when descending through a scalar")
		}
	})

	t.Run("PresentNullIsNotAbsent", func(t *testing.T) {
		v, ok := record.Resolve("price.open")
		if !ok || v != nil {
			t.Fatalf("expected present nil, got %v ok=%v", v, ok)
		}
	})
}

func TestRecordCopy(t *testing.T) {
	record := Record{"a": 1, "b": 2}
	copied := record.Copy()
	copied["a"] = 100
	if record["a"] != 1 {
		t.Fatal("copy must not share top-level fields")
	}
	if copied["b"] != 2 {
		t.Fatal("copy must carry all fields")
	}
}

func TestRecordListWire(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		list := RecordList{
			{"sym": "AAPL", "qty": 10.0},
			{"sym": "MSFT", "qty": 5.0},
		}
		data, err := list.Marshal()
		if err != nil {
			t.Fatal(err)
		}
		parsed, err := ParseRecordList(data)
		if err != nil {
			t.Fatal(err)
		}
		if len(parsed) != 2 || parsed[0]["sym"] != "AAPL" || parsed[1]["qty"] != 5.0 {
			t.Fatalf("unexpected parse result: %v", parsed)
		}
	})

	t.Run("NilMarshalsAsEmptyArray", func(t *testing.T) {
		var list RecordList
		data, err := list.Marshal()
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "[]" {
			t.Fatalf("expected [], got %s", data)
		}
	})

	t.Run("RejectsNonArray", func(t *testing.T) {
		if _, err := ParseRecordList([]byte(`{"sym":"AAPL"}`)); err == nil {
			t.Fatal("expected error for a non-array payload")
		}
	})
}
