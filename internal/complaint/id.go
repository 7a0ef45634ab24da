package complaint

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
)

// GenerateID 生成投诉编号，形如 DEL-WAT-1A2B3C4D
//
// 编号由州、部门前三位加 blake2b 4 字节摘要（州+部门+时刻）构成。
// 摘要只有 4 字节，编号不保证全局唯一，仅用于展示与邮件关联。
func GenerateID(state, department string, at time.Time) string {
	h, _ := blake2b.New(4, nil)
	h.Write([]byte(state + department + at.String()))
	digest := strings.ToUpper(hex.EncodeToString(h.Sum(nil)))
	return fmt.Sprintf("%s-%s-%s", prefix3(state), prefix3(department), digest)
}

// prefix3 取前三个字符并大写，不足三位时取全部
func prefix3(s string) string {
	runes := []rune(s)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}
