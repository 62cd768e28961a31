package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/xr50/training-asset-repository/internal/apierr"
	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/repos"
	"github.com/xr50/training-asset-repository/internal/types"
)

// ProgressService computes per-user completion percentages over training
// programs and learning paths. A material counts as completed once the user
// has a score record for it.
type ProgressService interface {
	CalculateProgramProgress(ctx context.Context, userID uuid.UUID, programID uint, justCompleted *uint) (int, error)
	CalculateLearningPathProgress(ctx context.Context, userID uuid.UUID, pathID uint, justCompleted *uint) (int, error)
	ForSubmission(ctx context.Context, userID uuid.UUID, materialID uint, programID, pathID *uint) (*int, *int, error)
	MarkComplete(ctx context.Context, userID uuid.UUID, materialID uint, programID, pathID *uint) (*types.UserMaterialScore, error)
}

type progressService struct {
	db            *gorm.DB
	log           *logger.Logger
	userScores    repos.UserScoreRepo
	learningPaths repos.LearningPathRepo
	programs      repos.TrainingProgramRepo
	materialRels  repos.MaterialRelationshipRepo
}

func NewProgressService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userScores repos.UserScoreRepo,
	learningPaths repos.LearningPathRepo,
	programs repos.TrainingProgramRepo,
	materialRels repos.MaterialRelationshipRepo,
) ProgressService {
	return &progressService{
		db:            db,
		log:           baseLog.With("service", "ProgressService"),
		userScores:    userScores,
		learningPaths: learningPaths,
		programs:      programs,
		materialRels:  materialRels,
	}
}

// percentage rounds completed/total to a whole percent. A container with no
// materials counts as fully complete.
func percentage(completed, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// progressOver counts how many of the given materials the user has a score
// record for. justCompleted covers the submission currently in flight,
// whose record may not be visible yet.
func (s *progressService) progressOver(ctx context.Context, userID uuid.UUID, materialIDs []uint, justCompleted *uint) (int, error) {
	if len(materialIDs) == 0 {
		return 100, nil
	}
	scored, err := s.userScores.GetScoredMaterialIDs(ctx, nil, userID, materialIDs)
	if err != nil {
		return 0, apierr.Store(err)
	}
	done := make(map[uint]bool, len(scored))
	for _, id := range scored {
		done[id] = true
	}
	if justCompleted != nil {
		for _, id := range materialIDs {
			if id == *justCompleted {
				done[id] = true
				break
			}
		}
	}
	return percentage(len(done), len(materialIDs)), nil
}

// programMaterialIDs collects the deduplicated material set of a program:
// materials assigned to the program directly plus those assigned to any of
// its learning paths.
func (s *progressService) programMaterialIDs(ctx context.Context, programID uint) ([]uint, error) {
	direct, err := s.materialRels.GetAssignedMaterialIDs(ctx, nil, programID, types.RelatedEntityTrainingProgram)
	if err != nil {
		return nil, apierr.Store(err)
	}
	paths, err := s.learningPaths.GetByProgramID(ctx, nil, programID)
	if err != nil {
		return nil, apierr.Store(err)
	}

	seen := make(map[uint]bool, len(direct))
	ids := make([]uint, 0, len(direct))
	for _, id := range direct {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, path := range paths {
		pathIDs, err := s.materialRels.GetAssignedMaterialIDs(ctx, nil, path.ID, types.RelatedEntityLearningPath)
		if err != nil {
			return nil, apierr.Store(err)
		}
		for _, id := range pathIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

func (s *progressService) CalculateProgramProgress(ctx context.Context, userID uuid.UUID, programID uint, justCompleted *uint) (int, error) {
	exists, err := s.programs.Exists(ctx, nil, programID)
	if err != nil {
		return 0, apierr.Store(err)
	}
	if !exists {
		return 0, apierr.NotFound("training program %d not found", programID)
	}
	ids, err := s.programMaterialIDs(ctx, programID)
	if err != nil {
		return 0, err
	}
	return s.progressOver(ctx, userID, ids, justCompleted)
}

func (s *progressService) CalculateLearningPathProgress(ctx context.Context, userID uuid.UUID, pathID uint, justCompleted *uint) (int, error) {
	exists, err := s.learningPaths.Exists(ctx, nil, pathID)
	if err != nil {
		return 0, apierr.Store(err)
	}
	if !exists {
		return 0, apierr.NotFound("learning path %d not found", pathID)
	}
	ids, err := s.materialRels.GetAssignedMaterialIDs(ctx, nil, pathID, types.RelatedEntityLearningPath)
	if err != nil {
		return 0, apierr.Store(err)
	}
	return s.progressOver(ctx, userID, ids, justCompleted)
}

// ForSubmission recomputes program and learning-path progress for a quiz
// submission that is about to be recorded. The two reads are independent
// and run concurrently. Nil container ids yield nil percentages.
func (s *progressService) ForSubmission(ctx context.Context, userID uuid.UUID, materialID uint, programID, pathID *uint) (*int, *int, error) {
	var programProgress, pathProgress *int
	g, gctx := errgroup.WithContext(ctx)
	if programID != nil {
		g.Go(func() error {
			p, err := s.CalculateProgramProgress(gctx, userID, *programID, &materialID)
			if err != nil {
				return err
			}
			programProgress = &p
			return nil
		})
	}
	if pathID != nil {
		g.Go(func() error {
			p, err := s.CalculateLearningPathProgress(gctx, userID, *pathID, &materialID)
			if err != nil {
				return err
			}
			pathProgress = &p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return programProgress, pathProgress, nil
}

// MarkComplete records non-quiz completion: a score record with zero score
// unless one already exists, in which case the existing score and grading
// data are preserved.
func (s *progressService) MarkComplete(ctx context.Context, userID uuid.UUID, materialID uint, programID, pathID *uint) (*types.UserMaterialScore, error) {
	if userID == uuid.Nil {
		return nil, apierr.Validation("caller identity is required")
	}
	existing, err := s.userScores.GetByUserAndMaterial(ctx, nil, userID, materialID)
	if err != nil {
		return nil, apierr.Store(err)
	}

	row := &types.UserMaterialScore{
		UserID:         userID,
		MaterialID:     materialID,
		ProgramID:      programID,
		LearningPathID: pathID,
		UpdatedAt:      time.Now().UTC(),
	}
	if existing != nil {
		row.Score = existing.Score
		row.Data = existing.Data
	}

	progress := 100
	if programID != nil {
		progress, err = s.CalculateProgramProgress(ctx, userID, *programID, &materialID)
		if err != nil {
			return nil, err
		}
	}
	row.Progress = progress

	saved, err := s.userScores.Upsert(ctx, nil, row)
	if err != nil {
		return nil, apierr.Store(err)
	}
	s.log.Info("Marked material complete",
		"user_id", userID, "material_id", materialID, "progress", progress)
	return saved, nil
}
