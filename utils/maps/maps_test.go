package maps

import "testing"

func TestMap2Struct(t *testing.T) {
	type user struct {
		UserName string
		Age      int
	}
	var u user
	err := Map2Struct(map[string]interface{}{"userName": "lala", "age": 5}, &u)
	if err != nil {
		t.Fatal(err)
	}
	if u.UserName != "lala" || u.Age != 5 {
		t.Fatalf("unexpected decode result: %+v", u)
	}
}
