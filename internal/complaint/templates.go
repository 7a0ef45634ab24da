package complaint

import (
	"fmt"
	"time"
)

// dispatchDateFormat 是部门邮件正文里的时间格式（日-月-年 时:分）
const dispatchDateFormat = "02-01-2006 15:04"

// DraftText 渲染正式投诉信草稿，供市民确认后提交
func DraftText(department, area, state, details string) string {
	return fmt.Sprintf(
		"Subject: Grievance Submission Regarding the %s Department in %s, %s\n\n"+
			"Dear Sir/Madam,\n\n"+
			"I am writing to formally raise a concern regarding an issue related to the %s department in %s, %s.\n\n"+
			"Details of the issue:\n%s\n\n"+
			"I kindly request that this matter be addressed at the earliest convenience.\n\n"+
			"Thank you for your attention to this issue.\n\n"+
			"Sincerely,\nA Concerned Citizen",
		department, area, state, department, area, state, details)
}

// departmentSubject 渲染部门邮件主题
func departmentSubject(id, department, area, state string) string {
	return fmt.Sprintf("Complaint ID: %s - %s Issue in %s, %s", id, department, area, state)
}

// departmentBody 渲染部门邮件正文
func departmentBody(id, citizenEmail, department, area, state, details string, at time.Time) string {
	return fmt.Sprintf(
		"Complaint ID: %s\nDate: %s\nFrom: %s\n\n"+
			"Department: %s\nLocation: %s, %s\n\nDetails:\n%s\n\n"+
			"Expected Resolution Time: 3-5 working days\n\n---\nAuto-generated from Central Grievance Portal",
		id, at.Format(dispatchDateFormat), citizenEmail, department, area, state, details)
}

// confirmationSubject 渲染市民确认邮件主题
func confirmationSubject(id string) string {
	return fmt.Sprintf("Complaint Registered: %s", id)
}

// confirmationBody 渲染市民确认邮件正文
func confirmationBody(id, department, area, state, details string) string {
	return fmt.Sprintf(
		"Your complaint has been registered.\n\nID: %s\nDepartment: %s\n"+
			"Location: %s, %s\n\nDetails:\n%s\n\nExpected Resolution: 3-5 working days",
		id, department, area, state, details)
}
