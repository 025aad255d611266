package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cetprep/mocktest-service/internal/models"
	"github.com/cetprep/mocktest-service/internal/repositories"
	"github.com/cetprep/mocktest-service/internal/utils"
	"github.com/xuri/excelize/v2"
)

// ImportService loads questions into the bank from an XLSX workbook.
// Expected columns, in order:
// standard, subject_code, chapter, difficulty, question_text,
// option_1..option_4, correct_option, solution (optional).
type ImportService interface {
	ImportQuestions(ctx context.Context, r io.Reader) (*models.ImportSummary, error)
}

type importService struct {
	repo      repositories.Repository
	validator *utils.Validator
	logger    utils.Logger
}

func NewImportService(repo repositories.Repository, validator *utils.Validator, logger utils.Logger) ImportService {
	return &importService{repo: repo, validator: validator, logger: logger}
}

// Columns 0..9 are required; the trailing solution column is optional.
const importColumns = 10

func (s *importService) ImportQuestions(ctx context.Context, r io.Reader) (*models.ImportSummary, error) {
	start := time.Now()

	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open workbook: %v", ErrValidationFailed, err)
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read sheet %q: %v", ErrValidationFailed, sheet, err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("%w: workbook has no data rows", ErrValidationFailed)
	}

	summary := &models.ImportSummary{}
	var questions []*models.Question

	// Row 0 is the header.
	for i, row := range rows[1:] {
		rowNum := i + 2
		summary.TotalRows++

		question, err := s.parseRow(ctx, row)
		if err != nil {
			summary.ErrorCount++
			summary.Errors = append(summary.Errors, models.ImportRowError{Row: rowNum, Message: err.Error()})
			continue
		}
		questions = append(questions, question)
	}

	if len(questions) > 0 {
		if err := s.repo.Question().CreateBatch(ctx, questions); err != nil {
			return nil, NewPersistenceError("create questions", err)
		}
		for _, q := range questions {
			summary.SuccessCount++
			summary.CreatedQuestions = append(summary.CreatedQuestions, q.ID)
		}
	}

	summary.ProcessingTime = time.Since(start)
	s.logger.Info("Question import finished",
		"total_rows", summary.TotalRows,
		"imported", summary.SuccessCount,
		"rejected", summary.ErrorCount,
		"duration", summary.ProcessingTime.String())
	return summary, nil
}

func (s *importService) parseRow(ctx context.Context, row []string) (*models.Question, error) {
	if len(row) < importColumns {
		return nil, fmt.Errorf("expected at least %d columns, got %d", importColumns, len(row))
	}

	level := models.StandardLevel(strings.TrimSpace(row[0]))
	if level != models.Standard11 && level != models.Standard12 {
		return nil, fmt.Errorf("unknown standard %q", row[0])
	}
	code := models.SubjectCode(strings.TrimSpace(row[1]))

	standard, err := s.repo.Catalog().GetStandard(ctx, level)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("standard %s not seeded", level)
		}
		return nil, NewPersistenceError("get standard", err)
	}
	subject, err := s.repo.Catalog().GetSubject(ctx, standard.ID, code)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("unknown subject code %q for %s", code, level)
		}
		return nil, NewPersistenceError("get subject", err)
	}

	chapterName := strings.TrimSpace(row[2])
	chapter, err := s.repo.Catalog().GetChapterByName(ctx, subject.ID, chapterName)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("unknown chapter %q", chapterName)
		}
		return nil, NewPersistenceError("get chapter", err)
	}

	correct, err := strconv.Atoi(strings.TrimSpace(row[9]))
	if err != nil || correct < 1 || correct > models.OptionsPerQuestion {
		return nil, fmt.Errorf("correct option must be 1..%d, got %q", models.OptionsPerQuestion, row[9])
	}

	question := &models.Question{
		ChapterID:          chapter.ID,
		SubjectID:          subject.ID,
		Standard:           level,
		Difficulty:         models.DifficultyLevel(strings.ToUpper(strings.TrimSpace(row[3]))),
		QuestionText:       strings.TrimSpace(row[4]),
		CorrectOptionOrder: correct,
	}
	if len(row) > 10 {
		if solution := strings.TrimSpace(row[10]); solution != "" {
			question.Solution = &solution
		}
	}
	for i := 0; i < models.OptionsPerQuestion; i++ {
		text := strings.TrimSpace(row[5+i])
		if text == "" {
			return nil, fmt.Errorf("option %d is empty", i+1)
		}
		question.Options = append(question.Options, models.Option{
			Order:      i + 1,
			OptionText: text,
		})
	}

	if err := s.validator.Validate(question); err != nil {
		return nil, err
	}
	if err := question.ValidateShape(); err != nil {
		return nil, err
	}
	return question, nil
}
