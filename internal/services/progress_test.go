package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/xr50/training-asset-repository/internal/apierr"
	"github.com/xr50/training-asset-repository/internal/types"
)

func setupProgram(t *testing.T, env *testEnv, materialCount int) (*types.TrainingProgram, []*types.Material) {
	t.Helper()
	ctx := testCtx(t)

	program := &types.TrainingProgram{Name: "Program"}
	if _, err := env.programRepo.Create(ctx, nil, program); err != nil {
		t.Fatalf("create program: %v", err)
	}
	materials := make([]*types.Material, 0, materialCount)
	for i := 0; i < materialCount; i++ {
		m := env.mustCreate(t, &types.Material{Name: "m", Type: types.MaterialTypeDefault})
		if err := env.relationships.AssignToTrainingProgram(ctx, m.ID, program.ID, "", nil); err != nil {
			t.Fatalf("assign material: %v", err)
		}
		materials = append(materials, m)
	}
	return program, materials
}

func TestProgramProgressRounds(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)
	userID := uuid.New()

	program, materials := setupProgram(t, env, 4)

	// Two of four completed.
	for _, m := range materials[:2] {
		if _, err := env.progress.MarkComplete(ctx, userID, m.ID, nil, nil); err != nil {
			t.Fatalf("mark complete: %v", err)
		}
	}

	p, err := env.progress.CalculateProgramProgress(ctx, userID, program.ID, nil)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if p != 50 {
		t.Fatalf("expected 50, got %d", p)
	}

	// One of three completed rounds to 33.
	env2 := newTestEnv(t)
	program2, materials2 := setupProgram(t, env2, 3)
	if _, err := env2.progress.MarkComplete(ctx, userID, materials2[0].ID, nil, nil); err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	p, err = env2.progress.CalculateProgramProgress(ctx, userID, program2.ID, nil)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if p != 33 {
		t.Fatalf("expected 33, got %d", p)
	}
}

func TestProgramProgressCountsMaterialsOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)
	userID := uuid.New()

	program, materials := setupProgram(t, env, 2)

	// A second edge under a different relationship type must not inflate
	// the denominator.
	if err := env.relationships.AssignToTrainingProgram(ctx, materials[0].ID, program.ID, types.RelationshipPrerequisite, nil); err != nil {
		t.Fatalf("assign prerequisite: %v", err)
	}

	if _, err := env.progress.MarkComplete(ctx, userID, materials[0].ID, nil, nil); err != nil {
		t.Fatalf("mark complete: %v", err)
	}

	p, err := env.progress.CalculateProgramProgress(ctx, userID, program.ID, nil)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if p != 50 {
		t.Fatalf("expected 50 with one of two materials done, got %d", p)
	}
}

func TestEmptyProgramIsComplete(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	program, _ := setupProgram(t, env, 0)
	p, err := env.progress.CalculateProgramProgress(ctx, uuid.New(), program.ID, nil)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if p != 100 {
		t.Fatalf("empty program must read 100, got %d", p)
	}
}

func TestProgressUnknownContainers(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)
	userID := uuid.New()

	if _, err := env.progress.CalculateProgramProgress(ctx, userID, 777, nil); !apierr.IsNotFound(err) {
		t.Fatalf("expected not_found for program, got %v", err)
	}
	if _, err := env.progress.CalculateLearningPathProgress(ctx, userID, 777, nil); !apierr.IsNotFound(err) {
		t.Fatalf("expected not_found for path, got %v", err)
	}
}

func TestJustCompletedCountsBeforeVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)
	userID := uuid.New()

	program, materials := setupProgram(t, env, 2)

	// No score rows exist yet; the in-flight material still counts.
	p, err := env.progress.CalculateProgramProgress(ctx, userID, program.ID, &materials[0].ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if p != 50 {
		t.Fatalf("expected 50 with in-flight completion, got %d", p)
	}

	// An id outside the program changes nothing.
	foreign := uint(9999)
	p, err = env.progress.CalculateProgramProgress(ctx, userID, program.ID, &foreign)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if p != 0 {
		t.Fatalf("foreign in-flight id must not count, got %d", p)
	}
}

func TestProgramProgressSpansPathMaterials(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)
	userID := uuid.New()

	program, direct := setupProgram(t, env, 1)
	path := &types.LearningPath{Name: "Path", ProgramID: &program.ID}
	if _, err := env.pathRepo.Create(ctx, nil, path); err != nil {
		t.Fatalf("create path: %v", err)
	}
	pathOnly := env.mustCreate(t, &types.Material{Name: "path material", Type: types.MaterialTypeDefault})
	if err := env.relationships.AssignToLearningPath(ctx, pathOnly.ID, path.ID, "", nil); err != nil {
		t.Fatalf("assign to path: %v", err)
	}
	// The direct material is also on the path; it must not be double counted.
	if err := env.relationships.AssignToLearningPath(ctx, direct[0].ID, path.ID, "", nil); err != nil {
		t.Fatalf("assign direct to path: %v", err)
	}

	if _, err := env.progress.MarkComplete(ctx, userID, direct[0].ID, nil, nil); err != nil {
		t.Fatalf("mark complete: %v", err)
	}

	p, err := env.progress.CalculateProgramProgress(ctx, userID, program.ID, nil)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if p != 50 {
		t.Fatalf("expected 50 over the deduplicated set, got %d", p)
	}
}

func TestMarkCompletePreservesExistingScore(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)
	userID := uuid.New()

	quiz := createQuiz(t, env, booleanQuestion("Q1", 3, true))
	q := &quiz.Questions[0]
	if _, err := env.quizzes.Submit(ctx, userID, quiz.ID, &types.QuizSubmission{
		Questions: []types.SubmittedQuestion{{QuestionID: q.ID, Answer: types.SubmittedAnswer{AnswerIDs: answerIDsFor(t, q, true)}}},
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	row, err := env.progress.MarkComplete(ctx, userID, quiz.ID, nil, nil)
	if err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	if row.Score != 3 {
		t.Fatalf("existing score must be preserved, got %v", row.Score)
	}
	if len(row.Data) == 0 {
		t.Fatalf("existing grading data must be preserved")
	}
}

func TestForSubmissionConcurrentRecompute(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)
	userID := uuid.New()

	program, materials := setupProgram(t, env, 2)
	path := &types.LearningPath{Name: "Path", ProgramID: &program.ID}
	if _, err := env.pathRepo.Create(ctx, nil, path); err != nil {
		t.Fatalf("create path: %v", err)
	}
	if err := env.relationships.AssignToLearningPath(ctx, materials[0].ID, path.ID, "", nil); err != nil {
		t.Fatalf("assign to path: %v", err)
	}

	programProgress, pathProgress, err := env.progress.ForSubmission(ctx, userID, materials[0].ID, &program.ID, &path.ID)
	if err != nil {
		t.Fatalf("for submission: %v", err)
	}
	if programProgress == nil || *programProgress != 50 {
		t.Fatalf("expected program progress 50, got %+v", programProgress)
	}
	if pathProgress == nil || *pathProgress != 100 {
		t.Fatalf("expected path progress 100, got %+v", pathProgress)
	}

	programProgress, pathProgress, err = env.progress.ForSubmission(ctx, userID, materials[0].ID, nil, nil)
	if err != nil {
		t.Fatalf("for submission without containers: %v", err)
	}
	if programProgress != nil || pathProgress != nil {
		t.Fatalf("nil containers must yield nil percentages")
	}
}
