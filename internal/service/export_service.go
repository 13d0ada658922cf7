package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"assignhub/backend/internal/authz"
	"assignhub/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// ExportService 导出业务接口
//
// 设计说明：
//   - 授课教授将某作业的全部提交导出为成绩单 Excel (.xlsx)
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportSubmissions 导出某作业的提交成绩单
	ExportSubmissions(ctx context.Context, assignmentID, callerID string) (*bytes.Buffer, string, error)
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
// ExportSubmissions — 导出作业成绩单为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "成绩单"
//   - 表头: | 学生 | 提交时间 | 是否逾期 | 状态 | 分数 | 反馈 |
//   - 标题行: 课程名 — 作业名

func (s *exportService) ExportSubmissions(ctx context.Context, assignmentID, callerID string) (*bytes.Buffer, string, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrAssignmentNotFound
		}
		s.logger.Error("查询作业失败", zap.String("id", assignmentID), zap.Error(err))
		return nil, "", err
	}
	if assignment.Course == nil || !authz.IsCourseProfessor(callerID, assignment.Course) {
		return nil, "", ErrNotCourseProfessor
	}

	submissions, err := s.repo.Submission.ListByAssignment(ctx, assignmentID)
	if err != nil {
		s.logger.Error("查询作业提交失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "成绩单"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "B", 22)
	f.SetColWidth(sheetName, "C", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 8)
	f.SetColWidth(sheetName, "F", "F", 40)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — %s", assignment.Course.Name, assignment.Title))
	f.MergeCell(sheetName, "A1", "F1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"学生", "提交时间", "是否逾期", "状态", "分数", "反馈"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}

	// 数据行
	row := 3
	for i := range submissions {
		sub := &submissions[i]

		studentName := sub.StudentID
		if sub.Student != nil {
			studentName = sub.Student.Username
		}
		lateText := "否"
		if sub.IsLate {
			lateText = "是"
		}

		f.SetCellValue(sheetName, cell("A", row), studentName)
		f.SetCellValue(sheetName, cell("B", row), sub.SubmittedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheetName, cell("C", row), lateText)
		f.SetCellValue(sheetName, cell("D", row), sub.Status())
		if sub.Grade != nil {
			f.SetCellValue(sheetName, cell("E", row), *sub.Grade)
		} else {
			f.SetCellValue(sheetName, cell("E", row), "-")
		}
		f.SetCellValue(sheetName, cell("F", row), sub.Feedback)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("成绩单_%s.xlsx", assignment.Title)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
