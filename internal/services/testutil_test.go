package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/repos"
	"github.com/xr50/training-asset-repository/internal/types"
)

var testDBCounter atomic.Int64

// testEnv wires the full service stack against an in-memory database. Each
// call gets an isolated database.
type testEnv struct {
	db            *gorm.DB
	materials     MaterialService
	relationships RelationshipService
	quizzes       QuizService
	progress      ProgressService

	materialRepo repos.MaterialRepo
	pathRepo     repos.LearningPathRepo
	programRepo  repos.TrainingProgramRepo
	scoreRepo    repos.UserScoreRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("underlying db: %v", err)
	}
	// In-memory sqlite does not tolerate concurrent writers; one connection
	// serializes everything.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&types.Material{},
		&types.ChecklistEntry{},
		&types.WorkflowStep{},
		&types.QuestionnaireEntry{},
		&types.VideoTimestamp{},
		&types.QuizQuestion{},
		&types.QuizAnswer{},
		&types.ImageAnnotation{},
		&types.MaterialRelationship{},
		&types.ComponentRelationship{},
		&types.TrainingProgram{},
		&types.LearningPath{},
		&types.UserMaterialScore{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	log := logger.NewNop()
	materialRepo := repos.NewMaterialRepo(db, log)
	checklistRepo := repos.NewChecklistEntryRepo(db, log)
	stepRepo := repos.NewWorkflowStepRepo(db, log)
	questionnaireRepo := repos.NewQuestionnaireEntryRepo(db, log)
	timestampRepo := repos.NewVideoTimestampRepo(db, log)
	questionRepo := repos.NewQuizQuestionRepo(db, log)
	annotationRepo := repos.NewImageAnnotationRepo(db, log)
	materialRelRepo := repos.NewMaterialRelationshipRepo(db, log)
	componentRelRepo := repos.NewComponentRelationshipRepo(db, log)
	scoreRepo := repos.NewUserScoreRepo(db, log)
	pathRepo := repos.NewLearningPathRepo(db, log)
	programRepo := repos.NewTrainingProgramRepo(db, log)

	relationships := NewRelationshipService(db, log, materialRepo, materialRelRepo, componentRelRepo, pathRepo, programRepo)
	materials := NewMaterialService(db, log, materialRepo, checklistRepo, stepRepo, questionnaireRepo, timestampRepo, questionRepo, annotationRepo, materialRelRepo, componentRelRepo, scoreRepo, relationships)
	progress := NewProgressService(db, log, scoreRepo, pathRepo, programRepo, materialRelRepo)
	quizzes := NewQuizService(db, log, materialRepo, questionRepo, scoreRepo, pathRepo, programRepo, materialRelRepo, progress)

	return &testEnv{
		db:            db,
		materials:     materials,
		relationships: relationships,
		quizzes:       quizzes,
		progress:      progress,
		materialRepo:  materialRepo,
		pathRepo:      pathRepo,
		programRepo:   programRepo,
		scoreRepo:     scoreRepo,
	}
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	return context.Background()
}

func (e *testEnv) mustCreate(t *testing.T, m *types.Material) *types.Material {
	t.Helper()
	created, err := e.materials.CreateComplete(testCtx(t), m)
	if err != nil {
		t.Fatalf("create material %q: %v", m.Name, err)
	}
	return created
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func uintPtr(u uint) *uint    { return &u }
