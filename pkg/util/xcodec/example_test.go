package xcodec_test

import (
	"fmt"
	"log"

	"github.com/omeyang/rediskit/pkg/util/xcodec"
)

// Example 演示规范化编码的确定性：键排序与非 ASCII 转义。
func Example() {
	data, err := xcodec.Marshal(map[string]any{
		"城市": "北京",
		"n":  1,
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))

	var v map[string]any
	if err := xcodec.Unmarshal(data, &v); err != nil {
		log.Fatal(err)
	}
	fmt.Println(v["城市"])

	// Output:
	// {"n":1,"\u57ce\u5e02":"\u5317\u4eac"}
	// 北京
}
