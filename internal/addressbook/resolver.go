package addressbook

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ResolutionError 表示州/部门组合无法解析到收件邮箱（含兜底键）
type ResolutionError struct {
	State      string
	Department string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no email for %s in %s", e.Department, e.State)
}

// Table 是两级地址簿：州 → 部门 → 收件邮箱
type Table map[string]map[string]string

// Resolver 将州/部门组合解析为部门收件邮箱
type Resolver struct {
	table              Table
	fallbackState      string
	fallbackDepartment string
	logger             *zap.Logger
}

// Load 从 YAML 文件加载地址簿并构建解析器
func Load(path, fallbackState, fallbackDepartment string, logger *zap.Logger) (*Resolver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read address book %s: %w", path, err)
	}

	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse address book %s: %w", path, err)
	}

	return New(table, fallbackState, fallbackDepartment, logger), nil
}

// New 用内存表构建解析器，供测试和自定义装载使用
func New(table Table, fallbackState, fallbackDepartment string, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		table:              table,
		fallbackState:      fallbackState,
		fallbackDepartment: fallbackDepartment,
		logger:             logger,
	}
}

// Resolve 解析州/部门组合的收件邮箱
//
// 州键小写匹配，部门键经 Normalize 归一化；精确命中失败时
// 回退到兜底键（default/default），仍未命中返回 ResolutionError。
func (r *Resolver) Resolve(state, department string) (string, error) {
	stateKey := strings.ToLower(strings.TrimSpace(state))
	deptKey := Normalize(department)

	if email := r.lookup(stateKey, deptKey); email != "" {
		return email, nil
	}

	if email := r.lookup(r.fallbackState, r.fallbackDepartment); email != "" {
		r.logger.Warn("address book miss, using fallback recipient",
			zap.String("state", stateKey),
			zap.String("department", deptKey))
		return email, nil
	}

	return "", &ResolutionError{State: stateKey, Department: deptKey}
}

func (r *Resolver) lookup(state, department string) string {
	departments, ok := r.table[state]
	if !ok {
		return ""
	}
	return departments[department]
}

// Normalize 归一化部门名：小写、去首尾空白、剔除 "board"/"department" 子串
//
// 归一化是幂等的，对已归一化的输入返回原值。
func Normalize(department string) string {
	if department == "" {
		return ""
	}
	dept := strings.TrimSpace(strings.ToLower(department))
	if strings.Contains(dept, "board") {
		dept = strings.TrimSpace(strings.ReplaceAll(dept, "board", ""))
	}
	if strings.Contains(dept, "department") {
		dept = strings.TrimSpace(strings.ReplaceAll(dept, "department", ""))
	}
	return dept
}
