package json

import "testing"

func TestMarshal(t *testing.T) {
	v, err := Marshal(map[string]interface{}{"name": "<lala>"})
	if err != nil {
		t.Fatal(err)
	}
	//默认不转义HTML字符
	if string(v) != `{"name":"<lala>"}` {
		t.Fatalf("unexpected marshal result: %s", v)
	}

	v, err = Marshal2(map[string]interface{}{"name": "<lala>"}, true)
	if err != nil {
		t.Fatal(err)
	}
	//开启转义后HTML字符输出为\u序列
	if string(v) != "{\"name\":\"\\u003clala\\u003e\"}" {
		t.Fatalf("unexpected marshal result: %s", v)
	}
}

func TestUnmarshal(t *testing.T) {
	var m map[string]interface{}
	if err := Unmarshal([]byte(`{"name":"lala"}`), &m); err != nil {
		t.Fatal(err)
	}
	if m["name"] != "lala" {
		t.Fatalf("unexpected unmarshal result: %v", m)
	}
}
