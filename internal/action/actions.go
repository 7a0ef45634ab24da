package action

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"upaay/backend/internal/complaint"
	"upaay/backend/internal/domain"
	"upaay/backend/internal/translate"
)

// 注册的自定义动作名称
const (
	ActionSetEmailSlot    = "action_set_email_slot"
	ActionDetectLanguage  = "action_detect_language"
	ActionGenerateDraft   = "action_generate_draft"
	ActionSubmitComplaint = "action_submit_complaint"
	ActionAskDepartment   = "action_ask_department"
)

// Handler 执行一个自定义动作
type Handler func(ctx context.Context, req *Request) Result

// Actions 自定义动作集合，业务错误转为用户消息，从不向上抛出
type Actions struct {
	complaints *complaint.Service
	translator *translate.Service
	logger     *zap.Logger
	registry   map[string]Handler
}

// NewActions 创建动作集合并注册全部处理器
func NewActions(complaints *complaint.Service, translator *translate.Service, logger *zap.Logger) *Actions {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Actions{
		complaints: complaints,
		translator: translator,
		logger:     logger,
	}
	a.registry = map[string]Handler{
		ActionSetEmailSlot:    a.setEmailSlot,
		ActionDetectLanguage:  a.detectLanguage,
		ActionGenerateDraft:   a.generateDraft,
		ActionSubmitComplaint: a.submitComplaint,
		ActionAskDepartment:   a.askDepartment,
	}
	return a
}

// Lookup 按名称查找处理器
func (a *Actions) Lookup(name string) (Handler, bool) {
	h, ok := a.registry[name]
	return h, ok
}

// Names 返回已注册动作名称列表
func (a *Actions) Names() []string {
	names := make([]string, 0, len(a.registry))
	for name := range a.registry {
		names = append(names, name)
	}
	return names
}

// draftFromTracker 把跟踪器槽位整理为投诉草稿
func draftFromTracker(req *Request) domain.ComplaintDraft {
	return domain.ComplaintDraft{
		State:            req.Tracker.Slot("state"),
		Area:             req.Tracker.Slot("area"),
		Department:       req.Tracker.Slot("department"),
		ComplaintDetails: req.Tracker.Slot("complaint_details"),
		Language:         req.Tracker.Slot("language"),
		Email:            req.Tracker.Slot("email"),
	}
}

// slotContext 把跟踪器槽位整理为翻译占位符上下文
func slotContext(req *Request) *translate.SlotContext {
	return &translate.SlotContext{
		State:      req.Tracker.Slot("state"),
		Area:       req.Tracker.Slot("area"),
		Department: req.Tracker.Slot("department"),
		Language:   req.Tracker.Slot("language"),
	}
}

// language 读取语言槽位，未设置时回退 "en"
func language(req *Request) string {
	if lang := req.Tracker.Slot("language"); lang != "" {
		return lang
	}
	return "en"
}

// setEmailSlot 把认证层传入的 sender_id 写入 email 槽位
func (a *Actions) setEmailSlot(_ context.Context, req *Request) Result {
	sender := req.Tracker.SenderID
	if sender == "" {
		sender = req.SenderID
	}
	a.logger.Info("setting email slot", zap.String("sender", sender))

	// sender_id 必须形如邮箱才写入
	if sender != "" && strings.Contains(sender, "@") {
		return NewResult().WithEvent(SlotSet("email", sender))
	}
	a.logger.Warn("sender_id is not an email, slot not set", zap.String("sender", sender))
	return NewResult()
}

// detectLanguage 识别用户最近一条消息的语言并写入 language 槽位
func (a *Actions) detectLanguage(ctx context.Context, req *Request) Result {
	lang := a.translator.Detect(ctx, req.Tracker.LatestMessage.Text)
	return NewResult().WithEvent(SlotSet("language", lang))
}

// generateDraft 渲染正式投诉信草稿并回显给用户
func (a *Actions) generateDraft(ctx context.Context, req *Request) Result {
	draft := draftFromTracker(req)
	lang := language(req)

	text, err := a.complaints.Draft(draft)
	if err != nil {
		var valErr *complaint.ValidationError
		if errors.As(err, &valErr) {
			msg := fmt.Sprintf("⚠️ Cannot generate draft. Missing: %s", strings.Join(valErr.Missing, ", "))
			a.logger.Warn(msg)
			return NewResult().WithMessage(msg)
		}
		a.logger.Error("draft generation failed", zap.Error(err))
		return NewResult().WithMessage("Sorry, something went wrong while drafting your complaint.")
	}

	reply := a.translator.Translate(ctx, "Here is your draft email:\n\n"+text, lang, slotContext(req))
	return NewResult().WithMessage(reply)
}

// submitComplaint 提交投诉并回报结果，所有失败都转为一条本地化消息
func (a *Actions) submitComplaint(ctx context.Context, req *Request) Result {
	draft := draftFromTracker(req)
	lang := language(req)
	slots := slotContext(req)

	registered, err := a.complaints.Submit(draft)
	if err == nil {
		msg := a.translator.Translate(ctx, fmt.Sprintf(
			"✅ Complaint registered successfully! ID: %s\n• Department: %s\n• Location: %s, %s\nA confirmation has been sent to your email.",
			registered.ID, registered.Department, registered.Area, registered.State), lang, slots)
		return NewResult().WithMessage(msg)
	}

	if errors.Is(err, complaint.ErrNoCitizenEmail) {
		msg := a.translator.Translate(ctx,
			"⚠️ Complaint submission failed: Email slot not set. Please provide your email address to receive confirmation.",
			lang, slots)
		return NewResult().WithMessage(msg)
	}

	var dispErr *complaint.DispatchError
	if errors.As(err, &dispErr) {
		a.logger.Error("complaint dispatch failed",
			zap.String("leg", dispErr.Leg),
			zap.Error(err))
		msg := a.translator.Translate(ctx, "⚠️ Failed to submit complaint: Could not send email(s).", lang, slots)
		return NewResult().WithMessage(msg)
	}

	a.logger.Error("complaint submission failed", zap.Error(err))
	msg := a.translator.Translate(ctx, fmt.Sprintf("⚠️ Failed to submit complaint: %s", err.Error()), lang, slots)
	return NewResult().WithMessage(msg)
}

// askDepartment 用本地化示例询问部门
func (a *Actions) askDepartment(ctx context.Context, req *Request) Result {
	lang := language(req)
	examples := domain.DepartmentExamples(lang)

	question := a.translator.Translate(ctx, "Please select department (e.g. {examples}):", lang, slotContext(req))
	question = strings.ReplaceAll(question, "{examples}", examples)
	return NewResult().WithMessage(question)
}
