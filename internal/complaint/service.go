package complaint

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"upaay/backend/internal/addressbook"
	"upaay/backend/internal/domain"
	"upaay/backend/internal/mailer"
	"upaay/backend/internal/monitoring"
)

// requiredSlots 是起草和提交都必须填写的槽位，顺序即校验报告顺序
var requiredSlots = []string{"state", "area", "department", "complaint_details"}

// Service 投诉编排服务：校验槽位、解析收件人、派送两条邮件腿
type Service struct {
	resolver   *addressbook.Resolver
	dispatcher mailer.Dispatcher
	metrics    *monitoring.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// NewService 创建投诉编排服务
func NewService(resolver *addressbook.Resolver, dispatcher mailer.Dispatcher, metrics *monitoring.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		resolver:   resolver,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// Validate 校验必填槽位，缺失时返回 ValidationError（市民邮箱不在其中）
func (s *Service) Validate(draft domain.ComplaintDraft) error {
	values := map[string]string{
		"state":             draft.State,
		"area":              draft.Area,
		"department":        draft.Department,
		"complaint_details": draft.ComplaintDetails,
	}

	var missing []string
	for _, slot := range requiredSlots {
		if strings.TrimSpace(values[slot]) == "" {
			missing = append(missing, slot)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Draft 渲染正式投诉信草稿，不派送邮件，不要求市民邮箱
func (s *Service) Draft(draft domain.ComplaintDraft) (string, error) {
	if err := s.Validate(draft); err != nil {
		return "", err
	}
	dept := addressbook.Normalize(draft.Department)
	return DraftText(dept, draft.Area, draft.State, draft.ComplaintDetails), nil
}

// Submit 提交投诉：先发部门信箱（Reply-To 指向市民），再发市民确认
//
// 部门腿失败时整单失败；市民腿失败时部门邮件已发出，
// 返回已生成的投诉记录和 LegCitizen 的 DispatchError 表示部分成功。
func (s *Service) Submit(draft domain.ComplaintDraft) (*domain.Complaint, error) {
	if err := s.Validate(draft); err != nil {
		s.metrics.RecordComplaintFailure("validation")
		return nil, err
	}

	if strings.TrimSpace(draft.Email) == "" {
		s.metrics.RecordComplaintFailure("no_email")
		return nil, ErrNoCitizenEmail
	}

	state := strings.ToLower(strings.TrimSpace(draft.State))
	dept := addressbook.Normalize(draft.Department)

	recipient, err := s.resolver.Resolve(state, dept)
	if err != nil {
		s.metrics.RecordComplaintFailure("resolution")
		return nil, err
	}

	now := s.now()
	id := GenerateID(state, dept, now)

	sentToDept := s.dispatcher.Send(mailer.Message{
		To:      recipient,
		Subject: departmentSubject(id, dept, draft.Area, state),
		Body:    departmentBody(id, draft.Email, dept, draft.Area, state, draft.ComplaintDetails, now),
		ReplyTo: draft.Email,
	})
	s.metrics.RecordDispatchLeg(LegDepartment, sentToDept)
	if !sentToDept {
		s.metrics.RecordComplaintFailure("dispatch_department")
		return nil, &DispatchError{Leg: LegDepartment, Recipient: recipient}
	}

	complaint := &domain.Complaint{
		ID:          id,
		State:       state,
		Area:        draft.Area,
		Department:  dept,
		Details:     draft.ComplaintDetails,
		Recipient:   recipient,
		SubmittedAt: now,
	}

	sentToCitizen := s.dispatcher.Send(mailer.Message{
		To:      draft.Email,
		Subject: confirmationSubject(id),
		Body:    confirmationBody(id, dept, draft.Area, state, draft.ComplaintDetails),
	})
	s.metrics.RecordDispatchLeg(LegCitizen, sentToCitizen)
	if !sentToCitizen {
		s.metrics.RecordComplaintFailure("dispatch_citizen")
		s.logger.Warn("department notified but citizen confirmation failed",
			zap.String("complaint_id", id),
			zap.String("citizen", draft.Email))
		return complaint, &DispatchError{Leg: LegCitizen, Recipient: draft.Email}
	}

	s.metrics.RecordComplaintSubmitted()
	s.logger.Info("complaint dispatched",
		zap.String("complaint_id", id),
		zap.String("state", state),
		zap.String("department", dept),
		zap.String("recipient", recipient))
	return complaint, nil
}
