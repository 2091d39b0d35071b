package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vaibhav992/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSubmissions = errors.New("该作业暂无提交")
	ErrExportGenerateFail  = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - Excel 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response
//   - DeadlineCalendar 生成全部作业截止时间的 iCalendar (RFC 5545) 订阅内容
type ExportService interface {
	// ExportSubmissions 导出某作业的全部提交为 Excel (.xlsx)
	ExportSubmissions(ctx context.Context, assignmentID string) (*bytes.Buffer, string, error)
	// DeadlineCalendar 生成作业截止时间的 ICS 日历
	DeadlineCalendar(ctx context.Context) (string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportSubmissions 导出提交明细为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：单 Sheet，列为 学生 / 邮箱 / 文件 / 提交时间 / 分数 / 评语。
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportSubmissions(ctx context.Context, assignmentID string) (*bytes.Buffer, string, error) {
	// 1. 作业必须存在
	assignment, err := s.repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrAssignmentNotFound
		}
		s.logger.Error("查询作业失败", zap.Error(err))
		return nil, "", err
	}

	// 2. 查询提交
	submissions, err := s.repo.Submission.ListByAssignment(ctx, assignmentID)
	if err != nil {
		s.logger.Error("查询提交失败", zap.Error(err))
		return nil, "", err
	}
	if len(submissions) == 0 {
		return nil, "", ErrExportNoSubmissions
	}

	// 3. 写入 Excel
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	headers := []string{"学生", "邮箱", "文件", "提交时间", "分数", "评语"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			s.logger.Error("写入表头失败", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	for row := range submissions {
		sub := &submissions[row]

		name, email := "", ""
		if sub.Student != nil {
			name = sub.Student.Name
			email = sub.Student.Email
		}

		values := []interface{}{
			name,
			email,
			sub.FileURL,
			sub.SubmittedAt.UTC().Format(time.RFC3339),
		}
		if sub.Grade != nil {
			values = append(values, *sub.Grade)
		} else {
			values = append(values, "")
		}
		if sub.Feedback != nil {
			values = append(values, *sub.Feedback)
		} else {
			values = append(values, "")
		}

		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				s.logger.Error("写入单元格失败", zap.Error(err))
				return nil, "", ErrExportGenerateFail
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("序列化 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s-提交明细.xlsx", assignment.Title)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// DeadlineCalendar 作业截止时间 ICS 日历
// ═══════════════════════════════════════════════════════════
//
// 每份作业一个 VEVENT，DTSTART = 截止时间；供学生订阅提醒。

func (s *exportService) DeadlineCalendar(ctx context.Context) (string, error) {
	assignments, err := s.repo.Assignment.List(ctx)
	if err != nil {
		s.logger.Error("列出作业失败", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//coursework-backend//deadlines//EN")

	for i := range assignments {
		a := &assignments[i]
		event := cal.AddEvent(a.AssignmentID + "@coursework-backend")
		event.SetCreatedTime(a.CreatedAt)
		event.SetDtStampTime(a.CreatedAt)
		event.SetStartAt(a.Deadline)
		event.SetEndAt(a.Deadline)
		event.SetSummary(fmt.Sprintf("作业截止: %s", a.Title))
		event.SetDescription(a.Description)
	}

	return cal.Serialize(), nil
}
