package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/xr50/training-asset-repository/internal/apierr"
	"github.com/xr50/training-asset-repository/internal/logger"
	"github.com/xr50/training-asset-repository/internal/repos"
	"github.com/xr50/training-asset-repository/internal/types"
)

const (
	// DefaultHierarchyDepth caps containment traversal when the caller does
	// not ask for a specific depth.
	DefaultHierarchyDepth = 5

	// maxCycleSearchDepth bounds the reachability search against
	// already-corrupt data. Correctness relies on the visited set, not this.
	maxCycleSearchDepth = 100
)

// RelationshipService manages the directed edge graph: material to material,
// material to container, and subcomponent to material. The "contains" subset
// between materials is kept acyclic.
type RelationshipService interface {
	Assign(ctx context.Context, parentID, childID uint, relationshipType string, displayOrder *int) (*types.MaterialRelationship, error)
	Remove(ctx context.Context, parentID, childID uint) error
	GetChildren(ctx context.Context, parentID uint, relationshipType string) ([]types.RelatedRef, error)
	GetParents(ctx context.Context, childID uint, relationshipType string) ([]types.RelatedRef, error)
	Reorder(ctx context.Context, parentID uint, orderMap map[uint]int) error
	WouldCreateCycle(ctx context.Context, parentID, childID uint) (bool, error)
	GetHierarchy(ctx context.Context, rootID uint, maxDepth int) (*types.HierarchyNode, error)

	AssignToLearningPath(ctx context.Context, materialID, pathID uint, relationshipType string, displayOrder *int) error
	RemoveFromLearningPath(ctx context.Context, materialID, pathID uint) error
	GetLearningPathMaterialIDs(ctx context.Context, pathID uint) ([]uint, error)
	AssignToTrainingProgram(ctx context.Context, materialID, programID uint, relationshipType string, displayOrder *int) error
	RemoveFromTrainingProgram(ctx context.Context, materialID, programID uint) error
	GetTrainingProgramMaterialIDs(ctx context.Context, programID uint) ([]uint, error)
	CreateDependency(ctx context.Context, materialID, prerequisiteID uint) error
	RemoveDependency(ctx context.Context, materialID, prerequisiteID uint) error
	GetDependencies(ctx context.Context, materialID uint) ([]types.RelatedRef, error)

	AssignToComponent(ctx context.Context, componentID uint, componentType types.ComponentType, materialID uint, relationshipType string, displayOrder *int) (*types.ComponentRelationship, error)
	RemoveFromComponent(ctx context.Context, componentID uint, componentType types.ComponentType, materialID uint) error
	GetComponentMaterials(ctx context.Context, componentID uint, componentType types.ComponentType) ([]types.RelatedRef, error)

	ComponentRelationships
}

type relationshipService struct {
	db            *gorm.DB
	log           *logger.Logger
	materials     repos.MaterialRepo
	materialRels  repos.MaterialRelationshipRepo
	componentRels repos.ComponentRelationshipRepo
	learningPaths repos.LearningPathRepo
	programs      repos.TrainingProgramRepo
}

func NewRelationshipService(
	db *gorm.DB,
	baseLog *logger.Logger,
	materials repos.MaterialRepo,
	materialRels repos.MaterialRelationshipRepo,
	componentRels repos.ComponentRelationshipRepo,
	learningPaths repos.LearningPathRepo,
	programs repos.TrainingProgramRepo,
) RelationshipService {
	return &relationshipService{
		db:            db,
		log:           baseLog.With("service", "RelationshipService"),
		materials:     materials,
		materialRels:  materialRels,
		componentRels: componentRels,
		learningPaths: learningPaths,
		programs:      programs,
	}
}

func (s *relationshipService) requireMaterial(ctx context.Context, id uint) error {
	exists, err := s.materials.Exists(ctx, nil, id)
	if err != nil {
		return apierr.Store(err)
	}
	if !exists {
		return apierr.NotFound("material %d not found", id)
	}
	return nil
}

// Assign creates a directed material-to-material edge. A "contains" edge is
// rejected when it would close a containment cycle; the check happens before
// anything is written.
func (s *relationshipService) Assign(ctx context.Context, parentID, childID uint, relationshipType string, displayOrder *int) (*types.MaterialRelationship, error) {
	if relationshipType == "" {
		relationshipType = types.RelationshipContains
	}
	if err := s.requireMaterial(ctx, parentID); err != nil {
		return nil, err
	}
	if err := s.requireMaterial(ctx, childID); err != nil {
		return nil, err
	}

	if relationshipType == types.RelationshipContains {
		cycle, err := s.WouldCreateCycle(ctx, parentID, childID)
		if err != nil {
			return nil, err
		}
		if cycle {
			return nil, apierr.TypeMismatch("assigning material %d under %d would create a containment cycle", childID, parentID)
		}
	}

	exists, err := s.materialRels.Exists(ctx, nil, parentID, childID, types.RelatedEntityMaterial, relationshipType)
	if err != nil {
		return nil, apierr.Store(err)
	}
	if exists {
		// Idempotent: the edge is already in place.
		edges, err := s.materialRels.GetChildren(ctx, nil, parentID, relationshipType)
		if err != nil {
			return nil, apierr.Store(err)
		}
		for _, e := range edges {
			if e.RelatedEntityID == childID && e.RelatedEntityType == types.RelatedEntityMaterial {
				return e, nil
			}
		}
	}

	edge := &types.MaterialRelationship{
		MaterialID:        parentID,
		RelatedEntityID:   childID,
		RelatedEntityType: types.RelatedEntityMaterial,
		RelationshipType:  relationshipType,
		DisplayOrder:      displayOrder,
	}
	created, err := s.materialRels.Create(ctx, nil, edge)
	if err != nil {
		return nil, apierr.Store(err)
	}
	return created, nil
}

func (s *relationshipService) Remove(ctx context.Context, parentID, childID uint) error {
	if err := s.materialRels.Delete(ctx, nil, parentID, childID, types.RelatedEntityMaterial); err != nil {
		return apierr.Store(err)
	}
	return nil
}

func (s *relationshipService) GetChildren(ctx context.Context, parentID uint, relationshipType string) ([]types.RelatedRef, error) {
	edges, err := s.materialRels.GetChildren(ctx, nil, parentID, relationshipType)
	if err != nil {
		return nil, apierr.Store(err)
	}
	return s.refsForEdges(ctx, edges, false)
}

func (s *relationshipService) GetParents(ctx context.Context, childID uint, relationshipType string) ([]types.RelatedRef, error) {
	edges, err := s.materialRels.GetParents(ctx, nil, childID, types.RelatedEntityMaterial, relationshipType)
	if err != nil {
		return nil, apierr.Store(err)
	}
	return s.refsForEdges(ctx, edges, true)
}

// refsForEdges resolves edges to boundary references, decorating material
// endpoints with name and type. Container endpoints keep the raw entity type.
func (s *relationshipService) refsForEdges(ctx context.Context, edges []*types.MaterialRelationship, parentSide bool) ([]types.RelatedRef, error) {
	refs := make([]types.RelatedRef, 0, len(edges))
	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		id := e.RelatedEntityID
		if parentSide {
			id = e.MaterialID
		}
		if parentSide || e.RelatedEntityType == types.RelatedEntityMaterial {
			ids = append(ids, id)
		}
	}
	materials, err := s.materials.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, apierr.Store(err)
	}
	byID := make(map[uint]*types.Material, len(materials))
	for _, m := range materials {
		byID[m.ID] = m
	}

	for _, e := range edges {
		ref := types.RelatedRef{
			RelationshipType: e.RelationshipType,
			DisplayOrder:     e.DisplayOrder,
		}
		if parentSide {
			ref.ID = e.MaterialID
		} else {
			ref.ID = e.RelatedEntityID
			if e.RelatedEntityType != types.RelatedEntityMaterial {
				ref.Type = string(e.RelatedEntityType)
			}
		}
		if m, ok := byID[ref.ID]; ok {
			ref.Name = m.Name
			ref.Type = string(m.Type)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// Reorder writes display order for containment edges owned by parentID.
// Ids in the map that are not children of the parent are ignored. The write
// is all-or-nothing.
func (s *relationshipService) Reorder(ctx context.Context, parentID uint, orderMap map[uint]int) error {
	if len(orderMap) == 0 {
		return nil
	}
	if err := s.requireMaterial(ctx, parentID); err != nil {
		return err
	}

	edges, err := s.materialRels.GetChildren(ctx, nil, parentID, "")
	if err != nil {
		return apierr.Store(err)
	}
	owned := make(map[uint]bool, len(edges))
	for _, e := range edges {
		owned[e.RelatedEntityID] = true
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for childID, order := range orderMap {
			if !owned[childID] {
				continue
			}
			if err := s.materialRels.UpdateDisplayOrder(ctx, tx, parentID, childID, order); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apierr.Store(err)
	}
	return nil
}

// WouldCreateCycle reports whether inserting a "contains" edge parent→child
// would make the containment graph cyclic: a depth-first reachability search
// from child looking for parent, following only "contains" edges. The
// visited set keeps the walk correct over redundant paths; the depth ceiling
// is only a guard against corrupt data.
func (s *relationshipService) WouldCreateCycle(ctx context.Context, parentID, childID uint) (bool, error) {
	if parentID == childID {
		return true, nil
	}

	type frame struct {
		id    uint
		depth int
	}
	visited := map[uint]bool{childID: true}
	stack := []frame{{id: childID, depth: 0}}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current.depth >= maxCycleSearchDepth {
			s.log.Warn("Containment reachability search hit depth ceiling",
				"start_material_id", childID, "depth", current.depth)
			continue
		}
		childIDs, err := s.materialRels.GetContainsChildIDs(ctx, nil, current.id)
		if err != nil {
			return false, apierr.Store(err)
		}
		for _, id := range childIDs {
			if id == parentID {
				return true, nil
			}
			if visited[id] {
				continue
			}
			visited[id] = true
			stack = append(stack, frame{id: id, depth: current.depth + 1})
		}
	}
	return false, nil
}

// GetHierarchy returns the containment tree rooted at rootID, capped at
// maxDepth levels. The visited set tolerates any cycle that slipped past
// prevention without looping.
func (s *relationshipService) GetHierarchy(ctx context.Context, rootID uint, maxDepth int) (*types.HierarchyNode, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultHierarchyDepth
	}
	root, err := s.materials.GetByID(ctx, nil, rootID)
	if err != nil {
		return nil, apierr.Store(err)
	}
	if root == nil {
		return nil, apierr.NotFound("material %d not found", rootID)
	}

	visited := map[uint]bool{rootID: true}
	node, err := s.buildHierarchy(ctx, root, maxDepth, visited)
	if err != nil {
		return nil, err
	}
	return node, nil
}

func (s *relationshipService) buildHierarchy(ctx context.Context, m *types.Material, depthLeft int, visited map[uint]bool) (*types.HierarchyNode, error) {
	node := &types.HierarchyNode{
		MaterialID: m.ID,
		Name:       m.Name,
		Type:       m.Type,
	}
	if depthLeft <= 1 {
		return node, nil
	}

	edges, err := s.materialRels.GetChildren(ctx, nil, m.ID, types.RelationshipContains)
	if err != nil {
		return nil, apierr.Store(err)
	}
	for _, e := range edges {
		if e.RelatedEntityType != types.RelatedEntityMaterial {
			continue
		}
		if visited[e.RelatedEntityID] {
			s.log.Warn("Skipping containment edge that revisits a material",
				"material_id", m.ID, "child_material_id", e.RelatedEntityID)
			continue
		}
		visited[e.RelatedEntityID] = true
		child, err := s.materials.GetByID(ctx, nil, e.RelatedEntityID)
		if err != nil {
			return nil, apierr.Store(err)
		}
		if child == nil {
			continue
		}
		childNode, err := s.buildHierarchy(ctx, child, depthLeft-1, visited)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, childNode)
	}
	return node, nil
}

func (s *relationshipService) assignToContainer(ctx context.Context, materialID, containerID uint, containerType types.RelatedEntityType, relationshipType string, displayOrder *int) error {
	if relationshipType == "" {
		relationshipType = types.RelationshipAssigned
	}
	if err := s.requireMaterial(ctx, materialID); err != nil {
		return err
	}

	var (
		exists bool
		err    error
	)
	switch containerType {
	case types.RelatedEntityLearningPath:
		exists, err = s.learningPaths.Exists(ctx, nil, containerID)
	case types.RelatedEntityTrainingProgram:
		exists, err = s.programs.Exists(ctx, nil, containerID)
	default:
		return apierr.Validation("unknown container type %q", containerType)
	}
	if err != nil {
		return apierr.Store(err)
	}
	if !exists {
		return apierr.NotFound("%s %d not found", containerType, containerID)
	}

	present, err := s.materialRels.Exists(ctx, nil, materialID, containerID, containerType, relationshipType)
	if err != nil {
		return apierr.Store(err)
	}
	if present {
		return nil
	}

	edge := &types.MaterialRelationship{
		MaterialID:        materialID,
		RelatedEntityID:   containerID,
		RelatedEntityType: containerType,
		RelationshipType:  relationshipType,
		DisplayOrder:      displayOrder,
	}
	if _, err := s.materialRels.Create(ctx, nil, edge); err != nil {
		return apierr.Store(err)
	}
	return nil
}

func (s *relationshipService) AssignToLearningPath(ctx context.Context, materialID, pathID uint, relationshipType string, displayOrder *int) error {
	return s.assignToContainer(ctx, materialID, pathID, types.RelatedEntityLearningPath, relationshipType, displayOrder)
}

func (s *relationshipService) RemoveFromLearningPath(ctx context.Context, materialID, pathID uint) error {
	if err := s.materialRels.Delete(ctx, nil, materialID, pathID, types.RelatedEntityLearningPath); err != nil {
		return apierr.Store(err)
	}
	return nil
}

func (s *relationshipService) GetLearningPathMaterialIDs(ctx context.Context, pathID uint) ([]uint, error) {
	ids, err := s.materialRels.GetAssignedMaterialIDs(ctx, nil, pathID, types.RelatedEntityLearningPath)
	if err != nil {
		return nil, apierr.Store(err)
	}
	return ids, nil
}

func (s *relationshipService) AssignToTrainingProgram(ctx context.Context, materialID, programID uint, relationshipType string, displayOrder *int) error {
	return s.assignToContainer(ctx, materialID, programID, types.RelatedEntityTrainingProgram, relationshipType, displayOrder)
}

func (s *relationshipService) RemoveFromTrainingProgram(ctx context.Context, materialID, programID uint) error {
	if err := s.materialRels.Delete(ctx, nil, materialID, programID, types.RelatedEntityTrainingProgram); err != nil {
		return apierr.Store(err)
	}
	return nil
}

func (s *relationshipService) GetTrainingProgramMaterialIDs(ctx context.Context, programID uint) ([]uint, error) {
	ids, err := s.materialRels.GetAssignedMaterialIDs(ctx, nil, programID, types.RelatedEntityTrainingProgram)
	if err != nil {
		return nil, apierr.Store(err)
	}
	return ids, nil
}

// CreateDependency marks prerequisiteID as required before materialID.
func (s *relationshipService) CreateDependency(ctx context.Context, materialID, prerequisiteID uint) error {
	if materialID == prerequisiteID {
		return apierr.TypeMismatch("material %d cannot be its own prerequisite", materialID)
	}
	_, err := s.Assign(ctx, materialID, prerequisiteID, types.RelationshipPrerequisite, nil)
	return err
}

func (s *relationshipService) RemoveDependency(ctx context.Context, materialID, prerequisiteID uint) error {
	return s.Remove(ctx, materialID, prerequisiteID)
}

func (s *relationshipService) GetDependencies(ctx context.Context, materialID uint) ([]types.RelatedRef, error) {
	return s.GetChildren(ctx, materialID, types.RelationshipPrerequisite)
}

// AssignToComponent links a subcomponent to a material. The edge is unique
// on (component id, component type, material id); a duplicate is a conflict.
func (s *relationshipService) AssignToComponent(ctx context.Context, componentID uint, componentType types.ComponentType, materialID uint, relationshipType string, displayOrder *int) (*types.ComponentRelationship, error) {
	if !componentType.Valid() {
		return nil, apierr.Validation("unknown component type %q", componentType)
	}
	if relationshipType == "" {
		relationshipType = types.RelationshipAssigned
	}
	if err := s.requireMaterial(ctx, materialID); err != nil {
		return nil, err
	}

	exists, err := s.componentRels.Exists(ctx, nil, componentID, componentType, materialID)
	if err != nil {
		return nil, apierr.Store(err)
	}
	if exists {
		return nil, apierr.Conflict("%s %d is already linked to material %d", componentType, componentID, materialID)
	}

	edge := &types.ComponentRelationship{
		ComponentID:       componentID,
		ComponentType:     componentType,
		RelatedMaterialID: materialID,
		RelationshipType:  relationshipType,
		DisplayOrder:      displayOrder,
	}
	created, err := s.componentRels.Create(ctx, nil, edge)
	if err != nil {
		return nil, apierr.Store(err)
	}
	return created, nil
}

func (s *relationshipService) RemoveFromComponent(ctx context.Context, componentID uint, componentType types.ComponentType, materialID uint) error {
	if err := s.componentRels.Delete(ctx, nil, componentID, componentType, materialID); err != nil {
		return apierr.Store(err)
	}
	return nil
}

func (s *relationshipService) GetComponentMaterials(ctx context.Context, componentID uint, componentType types.ComponentType) ([]types.RelatedRef, error) {
	edges, err := s.componentRels.GetByComponent(ctx, nil, componentID, componentType)
	if err != nil {
		return nil, apierr.Store(err)
	}

	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.RelatedMaterialID)
	}
	materials, err := s.materials.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, apierr.Store(err)
	}
	byID := make(map[uint]*types.Material, len(materials))
	for _, m := range materials {
		byID[m.ID] = m
	}

	refs := make([]types.RelatedRef, 0, len(edges))
	for _, e := range edges {
		ref := types.RelatedRef{
			ID:               e.RelatedMaterialID,
			RelationshipType: e.RelationshipType,
			DisplayOrder:     e.DisplayOrder,
		}
		if m, ok := byID[e.RelatedMaterialID]; ok {
			ref.Name = m.Name
			ref.Type = string(m.Type)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
