package action

import "fmt"

// Request 是动作服务器 webhook 的请求体（Rasa SDK 约定）
type Request struct {
	NextAction string  `json:"next_action"`
	SenderID   string  `json:"sender_id"`
	Tracker    Tracker `json:"tracker"`
}

// Tracker 是对话跟踪器快照
type Tracker struct {
	SenderID      string         `json:"sender_id"`
	Slots         map[string]any `json:"slots"`
	LatestMessage LatestMessage  `json:"latest_message"`
}

// LatestMessage 用户最近一条消息
type LatestMessage struct {
	Text string `json:"text"`
}

// Slot 读取字符串槽位值，缺失或非字符串返回空串
func (t *Tracker) Slot(name string) string {
	if t.Slots == nil {
		return ""
	}
	value, ok := t.Slots[name]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

// Event 是返回给对话引擎的事件
type Event struct {
	Event string `json:"event"`
	Name  string `json:"name,omitempty"`
	Value any    `json:"value,omitempty"`
}

// SlotSet 构造槽位写入事件
func SlotSet(name string, value any) Event {
	return Event{Event: "slot", Name: name, Value: value}
}

// Response 是发给用户的一条消息
type Response struct {
	Text string `json:"text"`
}

// Result 是动作执行结果，events 和 responses 序列化为空数组而不是 null
type Result struct {
	Events    []Event    `json:"events"`
	Responses []Response `json:"responses"`
}

// NewResult 创建空结果
func NewResult() Result {
	return Result{Events: []Event{}, Responses: []Response{}}
}

// WithEvent 追加事件
func (r Result) WithEvent(e Event) Result {
	r.Events = append(r.Events, e)
	return r
}

// WithMessage 追加用户消息
func (r Result) WithMessage(text string) Result {
	r.Responses = append(r.Responses, Response{Text: text})
	return r
}
