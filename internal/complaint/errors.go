package complaint

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoCitizenEmail 表示投诉提交时市民邮箱槽位未设置
var ErrNoCitizenEmail = errors.New("email slot not set")

// 邮件派送的两条腿
const (
	LegDepartment = "department" // 发往部门信箱
	LegCitizen    = "citizen"    // 发往市民确认
)

// ValidationError 表示投诉槽位缺失，Missing 保持槽位检查顺序
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required slots: %s", strings.Join(e.Missing, ", "))
}

// DispatchError 表示某条派送腿的邮件发送失败
//
// Leg 为 LegCitizen 时部门邮件已经发出，属于部分成功。
type DispatchError struct {
	Leg       string
	Recipient string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("could not send email to %s (%s leg)", e.Recipient, e.Leg)
}
