package domain

import "time"

// ComplaintDraft 是提交前的投诉槽位快照，由对话跟踪器收集
type ComplaintDraft struct {
	State            string `json:"state"`
	Area             string `json:"area"`
	Department       string `json:"department"`
	ComplaintDetails string `json:"complaint_details"`
	Language         string `json:"language"` // ISO 639-1 语言码，留空按 "en" 处理
	Email            string `json:"email"`    // 市民邮箱，起草阶段可为空
}

// Complaint 是派送成功后的投诉记录
type Complaint struct {
	ID          string    `json:"id"` // 形如 DEL-WAT-1A2B3C4D
	State       string    `json:"state"`
	Area        string    `json:"area"`
	Department  string    `json:"department"`
	Details     string    `json:"details"`
	Recipient   string    `json:"recipient"` // 部门收件邮箱
	SubmittedAt time.Time `json:"submittedAt"`
}
